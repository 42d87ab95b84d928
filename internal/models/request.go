package models

type SearchRequest struct {
	Origin        string   `json:"origin"`
	Destination   string   `json:"destination"`
	DepartureDate string   `json:"departure_date"`
	ReturnDate    *string  `json:"return_date,omitempty"`
	Adults        int      `json:"adults"`
	Children      int      `json:"children"`
	Infants       int      `json:"infants"`
	CabinClass    string   `json:"cabin_class"`
	SortBy        string   `json:"sort_by,omitempty"`
	SortOrder     string   `json:"sort_order,omitempty"`
	Airlines      []string `json:"airlines,omitempty"`
}

func (r *SearchRequest) Validate() error {
	if r.Origin == "" {
		return ErrMissingOrigin
	}
	if r.Destination == "" {
		return ErrMissingDestination
	}
	if r.DepartureDate == "" {
		return ErrMissingDepartureDate
	}
	if r.Adults <= 0 {
		r.Adults = 1
	}
	if r.Infants > r.Adults {
		return ErrTooManyInfants
	}
	if r.CabinClass == "" {
		r.CabinClass = "Economy"
	}
	if r.SortBy == "" {
		r.SortBy = "total"
	}
	if r.SortOrder == "" {
		r.SortOrder = "asc"
	}
	return nil
}

// PriceRequest asks for a firm quote on offers picked from a search. A
// paired one-way selection carries two offer ids, one per direction.
type PriceRequest struct {
	TraceID  string   `json:"trace_id"`
	OfferIDs []string `json:"offer_ids"`
}

func (r *PriceRequest) Validate() error {
	if r.TraceID == "" {
		return ErrMissingTraceID
	}
	if len(r.OfferIDs) == 0 {
		return ErrMissingOfferID
	}
	return nil
}

// PaxForm is one passenger as entered in the booking form. Dates arrive in
// whatever format the form produced; the booking builder normalizes them.
type PaxForm struct {
	PaxType        string   `json:"pax_type"`
	GivenName      string   `json:"given_name"`
	Surname        string   `json:"surname"`
	Gender         string   `json:"gender"`
	Birthdate      string   `json:"birthdate"`
	Nationality    string   `json:"nationality,omitempty"`
	PassportNumber string   `json:"passport_number,omitempty"`
	PassportExpiry string   `json:"passport_expiry,omitempty"`
	SSRCodes       []string `json:"ssr_codes,omitempty"`
}

type ContactForm struct {
	Phone string `json:"phone"`
	Email string `json:"email"`
}

type OrderCreateInput struct {
	TraceID          string      `json:"trace_id"`
	OfferIDs         []string    `json:"offer_ids"`
	Contact          ContactForm `json:"contact"`
	Passengers       []PaxForm   `json:"passengers"`
	PassportRequired bool        `json:"passport_required"`
	// ConfirmChange acknowledges a previously surfaced offer-change notice.
	ConfirmChange bool `json:"confirm_change,omitempty"`
}

type ValidationError string

func (e ValidationError) Error() string {
	return string(e)
}

const (
	ErrMissingOrigin        ValidationError = "origin is required"
	ErrMissingDestination   ValidationError = "destination is required"
	ErrMissingDepartureDate ValidationError = "departure_date is required"
	ErrMissingTraceID       ValidationError = "trace_id is required"
	ErrMissingOfferID       ValidationError = "at least one offer_id is required"
	ErrTooManyInfants       ValidationError = "infant count cannot exceed adult count"
)
