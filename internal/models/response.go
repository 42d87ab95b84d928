package models

type SearchMetadata struct {
	TotalOffers  int    `json:"total_offers"`
	Shape        string `json:"shape"`
	Generation   string `json:"generation"`
	SearchTimeMs int64  `json:"search_time_ms"`
	CacheHit     bool   `json:"cache_hit"`
}

// OfferSummary is an offer plus the display figures the pages render.
type OfferSummary struct {
	Offer          Offer  `json:"offer"`
	TotalFormatted string `json:"total_formatted"`
	DiscountTotal  Money  `json:"discount_total"`
}

type SearchResponse struct {
	TraceID  string         `json:"trace_id"`
	Metadata SearchMetadata `json:"metadata"`
	Offers   []OfferSummary `json:"offers"`
	// Outbound/Inbound are populated instead of Offers for a paired
	// one-way (special return) result.
	Outbound []OfferSummary `json:"outbound,omitempty"`
	Inbound  []OfferSummary `json:"inbound,omitempty"`
}

// OfferChangeNotice tells the client the priced offer differs from what was
// searched. Nothing proceeds past it until the client confirms.
type OfferChangeNotice struct {
	TypeOfChange         string `json:"type_of_change"`
	ConfirmationRequired bool   `json:"confirmation_required"`
}

type PriceResponse struct {
	TraceID            string              `json:"trace_id"`
	Offers             []OfferSummary      `json:"offers"`
	Outbound           []OfferSummary      `json:"outbound,omitempty"`
	Inbound            []OfferSummary      `json:"inbound,omitempty"`
	OfferChange        *OfferChangeNotice  `json:"offer_change,omitempty"`
	PassportRequired   bool                `json:"passport_required"`
	AvailableSSR       []string            `json:"available_ssr,omitempty"`
	PartialPaymentInfo *PartialPaymentInfo `json:"partial_payment_info,omitempty"`
}

type OrderView struct {
	OrderReference     string              `json:"order_reference"`
	OrderStatus        string              `json:"order_status"`
	TraceID            string              `json:"trace_id"`
	Offers             []OfferSummary      `json:"offers"`
	PaxList            []PaxWire           `json:"pax_list"`
	PartialPaymentInfo *PartialPaymentInfo `json:"partial_payment_info,omitempty"`
	OrderChange        *OfferChangeNotice  `json:"order_change,omitempty"`
}

type ErrorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message"`
	Code    int    `json:"code"`
}
