package timezone

import (
	"strings"
	"time"
)

var (
	BST *time.Location // UTC+6 - Bangladesh Standard Time
	IST *time.Location // UTC+5:30 - India
	GST *time.Location // UTC+4 - Gulf (Dubai, Abu Dhabi)
	AST *time.Location // UTC+3 - Arabia (Doha, Jeddah, Riyadh)
	ICT *time.Location // UTC+7 - Indochina (Bangkok)
	SGT *time.Location // UTC+8 - Singapore, Kuala Lumpur
	NPT *time.Location // UTC+5:45 - Nepal
)

func init() {
	BST = time.FixedZone("BST", 6*60*60)
	IST = time.FixedZone("IST", 5*60*60+30*60)
	GST = time.FixedZone("GST", 4*60*60)
	AST = time.FixedZone("AST", 3*60*60)
	ICT = time.FixedZone("ICT", 7*60*60)
	SGT = time.FixedZone("SGT", 8*60*60)
	NPT = time.FixedZone("NPT", 5*60*60+45*60)
}

var airportTimezones = map[string]string{
	// BST (UTC+6) - Bangladesh domestic network
	"DAC": "BST", // Dhaka - Hazrat Shahjalal
	"CGP": "BST", // Chattogram - Shah Amanat
	"ZYL": "BST", // Sylhet - Osmani
	"CXB": "BST", // Cox's Bazar
	"JSR": "BST", // Jashore
	"SPD": "BST", // Saidpur
	"RJH": "BST", // Rajshahi - Shah Makhdum
	"BZL": "BST", // Barishal

	// Frequent international points
	"CCU": "IST", // Kolkata - Netaji Subhas Chandra Bose
	"DEL": "IST", // Delhi - Indira Gandhi
	"BOM": "IST", // Mumbai - Chhatrapati Shivaji Maharaj
	"MAA": "IST", // Chennai
	"KTM": "NPT", // Kathmandu - Tribhuvan
	"DXB": "GST", // Dubai
	"AUH": "GST", // Abu Dhabi
	"SHJ": "GST", // Sharjah
	"MCT": "GST", // Muscat
	"DOH": "AST", // Doha - Hamad
	"JED": "AST", // Jeddah - King Abdulaziz
	"RUH": "AST", // Riyadh - King Khalid
	"MED": "AST", // Madinah
	"KWI": "AST", // Kuwait
	"BKK": "ICT", // Bangkok - Suvarnabhumi
	"DMK": "ICT", // Bangkok - Don Mueang
	"SIN": "SGT", // Singapore - Changi
	"KUL": "SGT", // Kuala Lumpur
}

func GetTimezoneByAirport(code string) string {
	code = strings.ToUpper(code)
	if tz, ok := airportTimezones[code]; ok {
		return tz
	}
	return "BST"
}

func GetLocationByAirport(code string) *time.Location {
	return GetLocationByName(GetTimezoneByAirport(code))
}

func GetLocationByName(name string) *time.Location {
	switch strings.ToUpper(name) {
	case "IST", "UTC+5:30":
		return IST
	case "GST", "UTC+4":
		return GST
	case "AST", "UTC+3":
		return AST
	case "ICT", "UTC+7":
		return ICT
	case "SGT", "MYT", "UTC+8":
		return SGT
	case "NPT", "UTC+5:45":
		return NPT
	case "BST", "UTC+6":
		return BST
	default:
		if loc, err := time.LoadLocation(name); err == nil {
			return loc
		}
		return BST
	}
}

// ParseSegmentTime parses a supplier timestamp. Aggregator feeds mix offset
// and offset-less forms; offset-less times are read in the airport's zone.
func ParseSegmentTime(timeStr string, airportCode string) (time.Time, error) {
	formats := []string{
		time.RFC3339,
		"2006-01-02T15:04:05-07:00",
		"2006-01-02T15:04:05-0700",
		"2006-01-02T15:04:05Z",
	}

	for _, format := range formats {
		if t, err := time.Parse(format, timeStr); err == nil {
			return t, nil
		}
	}

	loc := GetLocationByAirport(airportCode)
	localFormats := []string{
		"2006-01-02T15:04:05",
		"2006-01-02 15:04:05",
		"2006-01-02T15:04",
		"2006-01-02 15:04",
	}
	for _, format := range localFormats {
		if t, err := time.ParseInLocation(format, timeStr, loc); err == nil {
			return t, nil
		}
	}

	return time.Time{}, &time.ParseError{
		Value:   timeStr,
		Message: "unable to parse time string",
	}
}

func ConvertToTimezone(t time.Time, airportCode string) time.Time {
	return t.In(GetLocationByAirport(airportCode))
}
