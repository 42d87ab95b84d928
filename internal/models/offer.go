package models

import "time"

type Carrier struct {
	DesignatorCode string `json:"designator_code"`
	Name           string `json:"name"`
}

type SegmentPoint struct {
	LocationCode string    `json:"location_code"`
	Scheduled    time.Time `json:"scheduled"`
	Terminal     *string   `json:"terminal,omitempty"`
}

type Segment struct {
	Departure       SegmentPoint `json:"departure"`
	Arrival         SegmentPoint `json:"arrival"`
	Carrier         Carrier      `json:"carrier"`
	FlightNumber    string       `json:"flight_number"`
	CabinType       string       `json:"cabin_type"`
	DurationMinutes int          `json:"duration_minutes"`
	// SegmentGroup partitions a round-trip offer: 0 outbound, 1 inbound.
	SegmentGroup int `json:"segment_group"`
}

type FareDetail struct {
	PaxType  PaxType `json:"pax_type"`
	PaxCount int     `json:"pax_count"`
	BaseFare Money   `json:"base_fare"`
	Tax      Money   `json:"tax"`
	OtherFee Money   `json:"other_fee"`
	VAT      Money   `json:"vat"`
	Discount Money   `json:"discount"`
	SubTotal Money   `json:"sub_total"`
	Currency string  `json:"currency"`
}

// DisplayAmount is the presentation total some views show alongside SubTotal.
// Unlike SubTotal it includes OtherFee; SubTotal stays the canonical checkout
// figure. The two totals intentionally coexist.
func (f FareDetail) DisplayAmount() Money {
	return f.BaseFare + f.Tax + f.OtherFee + f.VAT
}

// FareLine pairs the fare row as quoted by the airline with its
// markup-adjusted form. Original is captured before the first adjustment and
// never changes afterwards; Applied gates re-application so markup can never
// be layered twice onto the same row.
type FareLine struct {
	Original FareDetail `json:"original"`
	Adjusted FareDetail `json:"adjusted"`
	Applied  bool       `json:"applied"`
}

// Current returns the row the caller should display: the adjusted row once
// markup has run, the airline-quoted row before that.
func (l FareLine) Current() FareDetail {
	if l.Applied {
		return l.Adjusted
	}
	return l.Original
}

type OfferPrice struct {
	Gross        Money `json:"gross"`
	TotalPayable Money `json:"total_payable"`
}

// UpSellBrand is an alternative branded fare for the same itinerary. The
// price is the airline's quote; picking a brand re-prices through the offer
// flow, so no markup is applied here.
type UpSellBrand struct {
	OfferID   string `json:"offer_id"`
	BrandName string `json:"brand_name"`
	Price     Money  `json:"price"`
}

// Offer is one priced itinerary candidate. Offers are rebuilt from scratch on
// every supplier response; the fare normalizer returns a new value rather
// than mutating in place.
type Offer struct {
	OfferID           string     `json:"offer_id"`
	ValidatingCarrier string     `json:"validating_carrier"`
	Segments          []Segment  `json:"segments"`
	Fares             []FareLine `json:"fares"`
	Price             OfferPrice `json:"price"`
	MarkupApplied     bool       `json:"markup_applied"`
	MarkupPercent     float64    `json:"markup_percent"`

	UpSellBrands []UpSellBrand `json:"upsell_brands,omitempty"`
}

func (o Offer) OutboundSegments() []Segment {
	return o.segmentsInGroup(0)
}

func (o Offer) InboundSegments() []Segment {
	return o.segmentsInGroup(1)
}

func (o Offer) segmentsInGroup(group int) []Segment {
	var out []Segment
	for _, s := range o.Segments {
		if s.SegmentGroup == group {
			out = append(out, s)
		}
	}
	return out
}

// Origin returns the first departure airport, or "" for a segment-less offer.
func (o Offer) Origin() string {
	if len(o.Segments) == 0 {
		return ""
	}
	return o.Segments[0].Departure.LocationCode
}

// Destination returns the last arrival airport of the outbound leg. For a
// round trip the final segment lands back at the origin, so the outbound
// group is the one that identifies the route.
func (o Offer) Destination() string {
	ob := o.OutboundSegments()
	if len(ob) == 0 {
		if len(o.Segments) == 0 {
			return ""
		}
		ob = o.Segments
	}
	return ob[len(ob)-1].Arrival.LocationCode
}

func (o Offer) TotalDurationMinutes() int {
	total := 0
	for _, s := range o.Segments {
		total += s.DurationMinutes
	}
	return total
}

func (o Offer) Stops() int {
	n := len(o.OutboundSegments())
	if n == 0 {
		n = len(o.Segments)
	}
	if n == 0 {
		return 0
	}
	return n - 1
}
