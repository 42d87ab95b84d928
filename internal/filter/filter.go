package filter

import (
	"sort"
	"strings"
	"time"

	"github.com/nazmulhs/farebridge/internal/fare"
	"github.com/nazmulhs/farebridge/internal/models"
)

// Apply filters a normalized offer list by airline and sorts it for display.
// Sorting happens after markup, so "total" orders by what the caller would
// actually pay.
func Apply(offers []models.Offer, airlines []string, sortBy, sortOrder string) []models.Offer {
	filtered := filterAirlines(offers, airlines)
	return applySort(filtered, sortBy, sortOrder)
}

func filterAirlines(offers []models.Offer, airlines []string) []models.Offer {
	if len(airlines) == 0 {
		return offers
	}

	result := make([]models.Offer, 0, len(offers))
	for _, o := range offers {
		for _, airline := range airlines {
			if strings.EqualFold(o.ValidatingCarrier, airline) {
				result = append(result, o)
				break
			}
		}
	}
	return result
}

func applySort(offers []models.Offer, sortBy, sortOrder string) []models.Offer {
	if len(offers) == 0 {
		return offers
	}

	ascending := strings.ToLower(sortOrder) != "desc"

	switch strings.ToLower(sortBy) {
	case "duration":
		sort.SliceStable(offers, func(i, j int) bool {
			if ascending {
				return offers[i].TotalDurationMinutes() < offers[j].TotalDurationMinutes()
			}
			return offers[i].TotalDurationMinutes() > offers[j].TotalDurationMinutes()
		})

	case "departure":
		sort.SliceStable(offers, func(i, j int) bool {
			ti, tj := departureTime(offers[i]), departureTime(offers[j])
			if ascending {
				return ti.Before(tj)
			}
			return ti.After(tj)
		})

	case "discount":
		sort.SliceStable(offers, func(i, j int) bool {
			di, dj := fare.DiscountTotal(offers[i]), fare.DiscountTotal(offers[j])
			if ascending {
				return di < dj
			}
			return di > dj
		})

	default: // "total"
		sort.SliceStable(offers, func(i, j int) bool {
			if ascending {
				return offers[i].Price.TotalPayable < offers[j].Price.TotalPayable
			}
			return offers[i].Price.TotalPayable > offers[j].Price.TotalPayable
		})
	}

	return offers
}

func departureTime(o models.Offer) time.Time {
	if len(o.Segments) == 0 {
		return time.Time{}
	}
	return o.Segments[0].Departure.Scheduled
}
