package fare

import (
	"math"

	"go.uber.org/zap"

	"github.com/nazmulhs/farebridge/internal/models"
)

// RoundHalfAway rounds to the nearest whole unit with halves going away from
// zero, the rounding the unit-of-account currency requires.
func RoundHalfAway(x float64) models.Money {
	return models.Money(math.Round(x))
}

// Commission is the markup amount for a base fare at the given percent. The
// magnitude is the same whichever way the percent points; the sign only
// decides whether the amount is added to or removed from the base fare.
func Commission(base models.Money, percent float64) models.Money {
	return RoundHalfAway(math.Abs(percent) / 100 * float64(base))
}

type Normalizer struct {
	log *zap.Logger
}

func NewNormalizer(log *zap.Logger) *Normalizer {
	if log == nil {
		log = zap.NewNop()
	}
	return &Normalizer{log: log}
}

// Apply returns a copy of the offer with percent markup applied to every
// fare row that has not seen markup yet. Rows already carrying markup are
// left untouched, so applying twice is a no-op; the gate is the Applied flag,
// never a recomputation. The offer-level payable total is re-derived as the
// sum of row subtotals either way.
func (n *Normalizer) Apply(offer models.Offer, percent float64) models.Offer {
	out := offer
	out.Fares = make([]models.FareLine, len(offer.Fares))
	copy(out.Fares, offer.Fares)

	currency := ""
	for i := range out.Fares {
		line := &out.Fares[i]

		if currency == "" {
			currency = line.Original.Currency
		} else if line.Original.Currency != "" && line.Original.Currency != currency {
			n.log.Warn("fare rows carry mixed currencies",
				zap.String("offer_id", offer.OfferID),
				zap.String("expected", currency),
				zap.String("got", line.Original.Currency),
				zap.String("pax_type", string(line.Original.PaxType)),
			)
		}

		if line.Applied {
			continue
		}

		orig := line.Original
		commission := Commission(orig.BaseFare, percent)

		adjusted := orig
		if percent < 0 {
			adjusted.BaseFare = orig.BaseFare - commission
		} else {
			adjusted.BaseFare = orig.BaseFare + commission
		}
		adjusted.Discount = commission
		adjusted.SubTotal = adjusted.BaseFare + adjusted.Tax + adjusted.VAT

		line.Adjusted = adjusted
		line.Applied = true
	}

	total := models.Money(0)
	for _, line := range out.Fares {
		total += line.Current().SubTotal
	}
	out.Price.TotalPayable = total
	out.MarkupApplied = true
	out.MarkupPercent = percent

	return out
}

// DiscountTotal sums the per-row markup amounts of an offer, the figure the
// result pages show as "amount added/removed".
func DiscountTotal(offer models.Offer) models.Money {
	total := models.Money(0)
	for _, line := range offer.Fares {
		if line.Applied {
			total += line.Adjusted.Discount
		}
	}
	return total
}
