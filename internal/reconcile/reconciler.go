package reconcile

import (
	"strings"

	"github.com/nazmulhs/farebridge/internal/models"
)

// Shape classifies how many logical offers a supplier response carries and
// how the client is meant to select among them.
type Shape string

const (
	// ShapeSingle: exactly one offer.
	ShapeSingle Shape = "single"
	// ShapeCombined: a multi-offer response deduplicated down to the one
	// pre-combined round-trip fare.
	ShapeCombined Shape = "combined"
	// ShapeSplit: independent selectable offers; the client picks one per
	// leg.
	ShapeSplit Shape = "split"
	// ShapePairedOneWay: special return, separate outbound and inbound
	// collections that are never merged.
	ShapePairedOneWay Shape = "paired_oneway"
)

type Result struct {
	Shape              Shape
	Offers             []models.Offer
	Outbound           []models.Offer
	Inbound            []models.Offer
	TraceID            string
	OfferChange        *models.OfferChangeNotice
	PassportRequired   bool
	AvailableSSR       []string
	PartialPaymentInfo *models.PartialPaymentInfo
}

// PairedOneWay reports whether the caller must pick one outbound and one
// inbound offer and sum their totals at checkout.
func (r Result) PairedOneWay() bool {
	return r.Shape == ShapePairedOneWay
}

// Reconcile classifies a search or offer-price response into one of the four
// offer shapes and produces the logical offer list. prevTraceID is the trace
// known from the previous step of the flow: a response trace supersedes it,
// but an absent response trace never clears it.
func Reconcile(resp *models.ShoppingResponse, prevTraceID string) Result {
	result := Result{TraceID: prevTraceID}
	if resp == nil {
		result.Shape = ShapeSingle
		return result
	}

	if resp.TraceID != "" {
		result.TraceID = resp.TraceID
	}
	result.PassportRequired = resp.PassportRequired
	result.AvailableSSR = resp.AvailableSSR
	result.PartialPaymentInfo = resp.PartialPaymentInfo

	if resp.OfferChangeInfo != nil && resp.OfferChangeInfo.TypeOfChange != "" {
		// Reconciliation only flags the change; accepting the new offer is
		// the caller's decision.
		result.OfferChange = &models.OfferChangeNotice{
			TypeOfChange:         resp.OfferChangeInfo.TypeOfChange,
			ConfirmationRequired: true,
		}
	}

	if len(resp.OffersGroup) == 0 && hasSpecialReturn(resp) {
		result.Shape = ShapePairedOneWay
		result.Outbound = mapNodes(resp.SpecialReturnOffersGroup.OB)
		result.Inbound = mapNodes(resp.SpecialReturnOffersGroup.IB)
		return result
	}

	offers := mapNodes(resp.OffersGroup)

	switch {
	case len(offers) <= 1:
		result.Shape = ShapeSingle
		result.Offers = offers

	case sameValidatingCarrier(offers):
		if combined, ok := findCombinedOffer(offers); ok {
			// The split _OB/_IB halves duplicate the combined fare; only
			// the combined offer is selectable.
			result.Shape = ShapeCombined
			result.Offers = []models.Offer{combined}
		} else {
			// Airline-specific oddity: same carrier on both legs but no
			// pre-combined fare. Fall back to offering the split legs.
			result.Shape = ShapeSplit
			result.Offers = offers
		}

	default:
		result.Shape = ShapeSplit
		result.Offers = offers
	}

	return result
}

func hasSpecialReturn(resp *models.ShoppingResponse) bool {
	g := resp.SpecialReturnOffersGroup
	return g != nil && (len(g.OB) > 0 || len(g.IB) > 0)
}

func mapNodes(nodes []models.OfferNode) []models.Offer {
	offers := make([]models.Offer, 0, len(nodes))
	for _, node := range nodes {
		offers = append(offers, MapOffer(node.Offer))
	}
	return offers
}

func sameValidatingCarrier(offers []models.Offer) bool {
	carrier := offers[0].ValidatingCarrier
	for _, o := range offers[1:] {
		if o.ValidatingCarrier != carrier {
			return false
		}
	}
	return true
}

// findCombinedOffer looks for the pre-combined round-trip fare: the offer
// whose id carries neither leg suffix.
func findCombinedOffer(offers []models.Offer) (models.Offer, bool) {
	for _, o := range offers {
		if !IsLegOffer(o.OfferID) {
			return o, true
		}
	}
	return models.Offer{}, false
}

// IsLegOffer reports whether an offer id denotes one half of a combined
// round trip (_OB outbound, _IB inbound).
func IsLegOffer(offerID string) bool {
	return strings.HasSuffix(offerID, "_OB") || strings.HasSuffix(offerID, "_IB")
}
