package models

import "errors"

// Wire shapes for the airline aggregator API. The aggregator wraps every
// payload in an envelope that either carries a response object or an explicit
// success=false with an error message. Field names follow the upstream
// contract, not our own conventions.

type SupplierError struct {
	Op  string
	Msg string
}

func (e *SupplierError) Error() string {
	return "supplier " + e.Op + ": " + e.Msg
}

var ErrEmptyResponse = errors.New("supplier returned an empty response")

type ReplyError struct {
	ErrorCode    string `json:"errorCode,omitempty"`
	ErrorMessage string `json:"errorMessage"`
}

type ReplyInfo struct {
	Error *ReplyError `json:"error,omitempty"`
}

// ShoppingReply is the envelope for both AirShopping (search) and OfferPrice
// responses; the two share a shape upstream.
type ShoppingReply struct {
	Success  *bool             `json:"success,omitempty"`
	Info     *ReplyInfo        `json:"info,omitempty"`
	Response *ShoppingResponse `json:"response,omitempty"`
}

// Err reports the upstream failure carried by the envelope, or nil when the
// reply holds a usable response.
func (r *ShoppingReply) Err(op string) error {
	if r.Success != nil && !*r.Success {
		msg := "unknown error"
		if r.Info != nil && r.Info.Error != nil && r.Info.Error.ErrorMessage != "" {
			msg = r.Info.Error.ErrorMessage
		}
		return &SupplierError{Op: op, Msg: msg}
	}
	if r.Response == nil {
		return ErrEmptyResponse
	}
	return nil
}

type ShoppingResponse struct {
	TraceID                  string              `json:"traceId"`
	OffersGroup              []OfferNode         `json:"offersGroup"`
	SpecialReturn            bool                `json:"specialReturn,omitempty"`
	SpecialReturnOffersGroup *SpecialReturnGroup `json:"specialReturnOffersGroup,omitempty"`
	OfferChangeInfo          *OfferChangeInfo    `json:"offerChangeInfo,omitempty"`
	PassportRequired         bool                `json:"passportRequired,omitempty"`
	AvailableSSR             []string            `json:"availableSSR,omitempty"`
	PartialPaymentInfo       *PartialPaymentInfo `json:"partialPaymentInfo,omitempty"`
}

type SpecialReturnGroup struct {
	OB []OfferNode `json:"ob"`
	IB []OfferNode `json:"ib"`
}

type OfferChangeInfo struct {
	TypeOfChange string `json:"typeOfChange"`
}

type PartialPaymentInfo struct {
	TotalPayableAmount Money  `json:"totalPayableAmount"`
	MinimumPayable     Money  `json:"minimumPayableAmount"`
	DueDate            string `json:"dueDate,omitempty"`
}

type OfferNode struct {
	Offer OfferWire `json:"offer"`
}

type OfferWire struct {
	OfferID           string            `json:"offerId"`
	ValidatingCarrier string            `json:"validatingCarrier"`
	FareDetailList    []FareDetailNode  `json:"fareDetailList"`
	PaxSegmentList    []PaxSegmentNode  `json:"paxSegmentList"`
	Price             OfferPriceWire    `json:"price"`
	UpSellBrandList   []UpSellBrandNode `json:"upSellBrandList,omitempty"`
}

type OfferPriceWire struct {
	Gross        PriceTotalWire `json:"gross"`
	TotalPayable PriceTotalWire `json:"totalPayable"`
}

type PriceTotalWire struct {
	Total    Money  `json:"total"`
	Currency string `json:"currency,omitempty"`
}

type FareDetailNode struct {
	FareDetail FareDetailWire `json:"fareDetail"`
}

type FareDetailWire struct {
	PaxType  string `json:"paxType"`
	PaxCount int    `json:"paxCount"`
	BaseFare Money  `json:"baseFare"`
	Tax      Money  `json:"tax"`
	OtherFee Money  `json:"otherFee"`
	VAT      Money  `json:"vat"`
	Discount Money  `json:"discount"`
	SubTotal Money  `json:"subTotal"`
	Currency string `json:"currency"`
}

type PaxSegmentNode struct {
	PaxSegment PaxSegmentWire `json:"paxSegment"`
}

type PaxSegmentWire struct {
	Departure       SegmentPointWire `json:"departure"`
	Arrival         SegmentPointWire `json:"arrival"`
	MarketingInfo   CarrierWire      `json:"marketingCarrierInfo"`
	FlightNumber    string           `json:"flightNumber"`
	CabinType       string           `json:"cabinType"`
	DurationMinutes int              `json:"duration"`
	SegmentGroup    int              `json:"segmentGroup"`
}

type SegmentPointWire struct {
	IATALocationCode string `json:"iatA_LocationCode"`
	TerminalName     string `json:"terminalName,omitempty"`
	ScheduledTime    string `json:"aircraftScheduledDateTime"`
}

type CarrierWire struct {
	DesignatorCode string `json:"carrierDesignatorCode"`
	Name           string `json:"carrierName"`
}

type UpSellBrandNode struct {
	OfferID   string `json:"offerId"`
	BrandName string `json:"brandName"`
	Price     Money  `json:"price"`
}

// OrderSellRequest doubles as the OrderCreate payload; upstream uses the same
// body for both calls.
type OrderSellRequest struct {
	TraceID string           `json:"traceId"`
	OfferID []string         `json:"offerId"`
	Request OrderRequestBody `json:"request"`
}

type OrderRequestBody struct {
	ContactInfo ContactInfo `json:"contactInfo"`
	PaxList     []PaxWire   `json:"paxList"`
}

type ContactInfo struct {
	Phone string `json:"phone"`
	Email string `json:"email"`
}

type PaxWire struct {
	PTC        string     `json:"ptc"`
	Individual Individual `json:"individual"`
	SellSSR    []SSRWire  `json:"sellSSR,omitempty"`
}

type Individual struct {
	GivenName    string        `json:"givenName"`
	Surname      string        `json:"surname"`
	Gender       string        `json:"gender"`
	Birthdate    string        `json:"birthdate"`
	Nationality  string        `json:"nationality,omitempty"`
	IdentityDoc  *IdentityDoc  `json:"identityDoc,omitempty"`
	AssociatePax *AssociatePax `json:"associatePax,omitempty"`
}

type IdentityDoc struct {
	IdentityDocType string `json:"identityDocType"`
	IdentityDocID   string `json:"identityDocID"`
	ExpiryDate      string `json:"expiryDate"`
}

// AssociatePax links an infant row to the adult carrying it.
type AssociatePax struct {
	GivenName string `json:"givenName"`
	Surname   string `json:"surname"`
}

type SSRWire struct {
	SSRCode   string `json:"ssrCode"`
	LoyaltyID string `json:"loyaltyProgramAccount,omitempty"`
}

type OrderReply struct {
	Success  *bool          `json:"success,omitempty"`
	Info     *ReplyInfo     `json:"info,omitempty"`
	Response *OrderResponse `json:"response,omitempty"`
}

func (r *OrderReply) Err(op string) error {
	if r.Success != nil && !*r.Success {
		msg := "unknown error"
		if r.Info != nil && r.Info.Error != nil && r.Info.Error.ErrorMessage != "" {
			msg = r.Info.Error.ErrorMessage
		}
		return &SupplierError{Op: op, Msg: msg}
	}
	if r.Response == nil {
		return ErrEmptyResponse
	}
	return nil
}

type OrderResponse struct {
	OrderReference     string              `json:"orderReference"`
	OrderStatus        string              `json:"orderStatus"`
	TraceID            string              `json:"traceId,omitempty"`
	OrderItem          []OfferNode         `json:"orderItem"`
	PaxList            []PaxWire           `json:"paxList"`
	PartialPaymentInfo *PartialPaymentInfo `json:"partialPaymentInfo,omitempty"`
	OrderChangeInfo    *OfferChangeInfo    `json:"orderChangeInfo,omitempty"`
	ExchangeDetails    map[string]any      `json:"exchangeDetails,omitempty"`
}
