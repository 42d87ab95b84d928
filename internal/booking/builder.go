package booking

import (
	"fmt"
	"strings"
	"time"

	"github.com/nazmulhs/farebridge/internal/models"
)

// BuildError points at the form field that made the order payload unbuildable.
type BuildError struct {
	Pax   int // passenger index, -1 for request-level problems
	Field string
	Msg   string
}

func (e *BuildError) Error() string {
	if e.Pax < 0 {
		return e.Field + ": " + e.Msg
	}
	return fmt.Sprintf("passenger %d, %s: %s", e.Pax+1, e.Field, e.Msg)
}

// BuildOrderCreate turns the booking form into the supplier's order payload.
// Infants are paired to adults positionally (first infant to first adult and
// so on); a form with more infants than adults is rejected outright rather
// than sent upstream with dangling infant rows.
func BuildOrderCreate(input models.OrderCreateInput) (models.OrderSellRequest, error) {
	if input.TraceID == "" {
		return models.OrderSellRequest{}, &BuildError{Pax: -1, Field: "trace_id", Msg: "required"}
	}
	if len(input.OfferIDs) == 0 {
		return models.OrderSellRequest{}, &BuildError{Pax: -1, Field: "offer_ids", Msg: "at least one offer is required"}
	}
	if input.Contact.Phone == "" {
		return models.OrderSellRequest{}, &BuildError{Pax: -1, Field: "contact.phone", Msg: "required"}
	}
	if input.Contact.Email == "" {
		return models.OrderSellRequest{}, &BuildError{Pax: -1, Field: "contact.email", Msg: "required"}
	}
	if len(input.Passengers) == 0 {
		return models.OrderSellRequest{}, &BuildError{Pax: -1, Field: "passengers", Msg: "at least one passenger is required"}
	}

	paxList := make([]models.PaxWire, 0, len(input.Passengers))
	var adults []models.Individual
	infantCount := 0

	for i, form := range input.Passengers {
		pax, err := buildPax(i, form, input.PassportRequired)
		if err != nil {
			return models.OrderSellRequest{}, err
		}

		switch models.ParsePaxType(form.PaxType) {
		case models.PaxAdult:
			adults = append(adults, pax.Individual)
		case models.PaxInfant:
			infantCount++
		}
		paxList = append(paxList, pax)
	}

	if infantCount > len(adults) {
		return models.OrderSellRequest{}, &BuildError{
			Pax:   -1,
			Field: "passengers",
			Msg:   fmt.Sprintf("%d infants but only %d adults to carry them", infantCount, len(adults)),
		}
	}

	// Positional pairing: the i-th infant travels on the i-th adult's lap.
	infantIdx := 0
	for i := range paxList {
		if paxList[i].PTC != string(models.PaxInfant) {
			continue
		}
		adult := adults[infantIdx]
		paxList[i].Individual.AssociatePax = &models.AssociatePax{
			GivenName: adult.GivenName,
			Surname:   adult.Surname,
		}
		infantIdx++
	}

	return models.OrderSellRequest{
		TraceID: input.TraceID,
		OfferID: input.OfferIDs,
		Request: models.OrderRequestBody{
			ContactInfo: models.ContactInfo{
				Phone: strings.TrimSpace(input.Contact.Phone),
				Email: strings.TrimSpace(input.Contact.Email),
			},
			PaxList: paxList,
		},
	}, nil
}

func buildPax(idx int, form models.PaxForm, passportRequired bool) (models.PaxWire, error) {
	ptc := models.ParsePaxType(form.PaxType)

	if strings.TrimSpace(form.GivenName) == "" {
		return models.PaxWire{}, &BuildError{Pax: idx, Field: "given_name", Msg: "required"}
	}
	if strings.TrimSpace(form.Surname) == "" {
		return models.PaxWire{}, &BuildError{Pax: idx, Field: "surname", Msg: "required"}
	}

	birthdate, err := NormalizeDate(form.Birthdate)
	if err != nil {
		return models.PaxWire{}, &BuildError{Pax: idx, Field: "birthdate", Msg: err.Error()}
	}

	individual := models.Individual{
		GivenName:   strings.ToUpper(strings.TrimSpace(form.GivenName)),
		Surname:     strings.ToUpper(strings.TrimSpace(form.Surname)),
		Gender:      normalizeGender(form.Gender),
		Birthdate:   birthdate,
		Nationality: strings.ToUpper(strings.TrimSpace(form.Nationality)),
	}

	// Passport data is mandatory for adults and children on international
	// itineraries; lap infants travel on the accompanying adult's booking.
	if passportRequired && ptc != models.PaxInfant {
		if form.PassportNumber == "" {
			return models.PaxWire{}, &BuildError{Pax: idx, Field: "passport_number", Msg: "required for international itinerary"}
		}
		expiry, err := NormalizeDate(form.PassportExpiry)
		if err != nil {
			return models.PaxWire{}, &BuildError{Pax: idx, Field: "passport_expiry", Msg: err.Error()}
		}
		individual.IdentityDoc = &models.IdentityDoc{
			IdentityDocType: "Passport",
			IdentityDocID:   strings.ToUpper(strings.TrimSpace(form.PassportNumber)),
			ExpiryDate:      expiry,
		}
	}

	pax := models.PaxWire{PTC: string(ptc), Individual: individual}
	for _, code := range form.SSRCodes {
		if code == "" {
			continue
		}
		pax.SellSSR = append(pax.SellSSR, models.SSRWire{SSRCode: code})
	}

	return pax, nil
}

func normalizeGender(s string) string {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "f", "female":
		return "Female"
	default:
		return "Male"
	}
}

// NormalizeDate converts a form date to YYYY-MM-DD. Accepts YYYY-MM-DD,
// DD-MM-YYYY and MM-DD-YYYY (also with slashes); for the two ambiguous
// two-digit-first forms, a leading value above 12 must be a day, otherwise
// the value is read month-first.
func NormalizeDate(s string) (string, error) {
	s = strings.TrimSpace(strings.ReplaceAll(s, "/", "-"))
	if s == "" {
		return "", fmt.Errorf("date is required")
	}

	parts := strings.Split(s, "-")
	if len(parts) != 3 {
		return "", fmt.Errorf("unrecognized date %q", s)
	}

	var candidate string
	if len(parts[0]) == 4 {
		candidate = s
	} else {
		first := atoi2(parts[0])
		if first > 12 {
			// day-first
			candidate = parts[2] + "-" + parts[1] + "-" + parts[0]
		} else {
			// month-first
			candidate = parts[2] + "-" + parts[0] + "-" + parts[1]
		}
	}

	t, err := time.Parse("2006-1-2", candidate)
	if err != nil {
		return "", fmt.Errorf("unrecognized date %q", s)
	}
	return t.Format("2006-01-02"), nil
}

func atoi2(s string) int {
	n := 0
	for _, r := range s {
		if r < '0' || r > '9' {
			return -1
		}
		n = n*10 + int(r-'0')
	}
	return n
}
