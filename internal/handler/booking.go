package handler

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	"github.com/nazmulhs/farebridge/internal/cache"
	"github.com/nazmulhs/farebridge/internal/enrich"
	"github.com/nazmulhs/farebridge/internal/fare"
	"github.com/nazmulhs/farebridge/internal/filter"
	"github.com/nazmulhs/farebridge/internal/kvstore"
	"github.com/nazmulhs/farebridge/internal/models"
	"github.com/nazmulhs/farebridge/internal/reconcile"
	"github.com/nazmulhs/farebridge/internal/supplier"
	"github.com/nazmulhs/farebridge/pkg/currency"
)

// sessionHeader carries the client's booking-session id; the trace id that
// links search to price to order is keyed by it server-side.
const sessionHeader = "X-Booking-Session"

const traceTTL = 30 * time.Minute

type BookingHandler struct {
	api       supplier.API
	enricher  *enrich.Enricher
	cache     cache.Cache
	sessions  kvstore.Store
	jwtSecret string
	log       *zap.Logger
}

func NewBookingHandler(api supplier.API, enricher *enrich.Enricher, c cache.Cache, sessions kvstore.Store, jwtSecret string, log *zap.Logger) *BookingHandler {
	if log == nil {
		log = zap.NewNop()
	}
	return &BookingHandler{
		api:       api,
		enricher:  enricher,
		cache:     c,
		sessions:  sessions,
		jwtSecret: jwtSecret,
		log:       log,
	}
}

func (h *BookingHandler) Search(c echo.Context) error {
	startTime := time.Now()
	ctx := c.Request().Context()

	var req models.SearchRequest
	if err := c.Bind(&req); err != nil {
		return errorJSON(c, http.StatusBadRequest, "invalid_request", "Failed to parse request body: "+err.Error())
	}
	if err := req.Validate(); err != nil {
		return errorJSON(c, http.StatusBadRequest, "validation_error", err.Error())
	}

	role := h.callerRole(c)
	sid := h.session(c)

	if cached, found := h.cache.Get(ctx, req, role); found {
		h.saveTrace(ctx, sid, cached.TraceID)
		return c.JSON(http.StatusOK, h.buildSearchResponse(req, cached, "", startTime, true))
	}

	generation := h.enricher.Begin(sid)

	resp, err := h.api.Search(ctx, req)
	if err != nil {
		return supplierError(c, err)
	}

	result := reconcile.Reconcile(resp, h.prevTrace(ctx, sid))
	h.saveTrace(ctx, sid, result.TraceID)

	enriched, ok := h.enrichResult(ctx, sid, generation, role, &result)
	if !ok {
		return errorJSON(c, http.StatusConflict, "search_superseded", "A newer search replaced this one; repeat the search.")
	}

	cached := cache.CachedSearch{
		TraceID:  result.TraceID,
		Shape:    string(result.Shape),
		Offers:   enriched.offers,
		Outbound: enriched.outbound,
		Inbound:  enriched.inbound,
	}
	_ = h.cache.Set(ctx, req, role, cached)

	return c.JSON(http.StatusOK, h.buildSearchResponse(req, cached, generation, startTime, false))
}

func (h *BookingHandler) Price(c echo.Context) error {
	ctx := c.Request().Context()

	var req models.PriceRequest
	if err := c.Bind(&req); err != nil {
		return errorJSON(c, http.StatusBadRequest, "invalid_request", "Failed to parse request body: "+err.Error())
	}
	if err := req.Validate(); err != nil {
		return errorJSON(c, http.StatusBadRequest, "validation_error", err.Error())
	}

	role := h.callerRole(c)
	sid := h.session(c)

	resp, err := h.api.OfferPrice(ctx, req.TraceID, req.OfferIDs)
	if err != nil {
		return supplierError(c, err)
	}

	// The price page re-derives everything; any still-running search
	// enrichment of this session is superseded.
	generation := h.enricher.Begin(sid)

	result := reconcile.Reconcile(resp, req.TraceID)
	h.saveTrace(ctx, sid, result.TraceID)

	enriched, ok := h.enrichResult(ctx, sid, generation, role, &result)
	if !ok {
		return errorJSON(c, http.StatusConflict, "price_superseded", "A newer request replaced this one; re-price the offer.")
	}

	return c.JSON(http.StatusOK, models.PriceResponse{
		TraceID:            result.TraceID,
		Offers:             summarize(enriched.offers),
		Outbound:           summarize(enriched.outbound),
		Inbound:            summarize(enriched.inbound),
		OfferChange:        result.OfferChange,
		PassportRequired:   result.PassportRequired,
		AvailableSSR:       result.AvailableSSR,
		PartialPaymentInfo: result.PartialPaymentInfo,
	})
}

type enrichedOffers struct {
	offers   []models.Offer
	outbound []models.Offer
	inbound  []models.Offer
}

func (h *BookingHandler) enrichResult(ctx context.Context, sid, generation string, role models.Role, result *reconcile.Result) (enrichedOffers, bool) {
	var out enrichedOffers
	var ok bool

	if result.PairedOneWay() {
		// Each direction prices independently; checkout sums the two picks.
		out.outbound, ok = h.enricher.Enrich(ctx, sid, generation, role, result.Outbound)
		if !ok {
			return out, false
		}
		out.inbound, ok = h.enricher.Enrich(ctx, sid, generation, role, result.Inbound)
		return out, ok
	}

	out.offers, ok = h.enricher.Enrich(ctx, sid, generation, role, result.Offers)
	return out, ok
}

func (h *BookingHandler) buildSearchResponse(req models.SearchRequest, cached cache.CachedSearch, generation string, startTime time.Time, cacheHit bool) models.SearchResponse {
	offers := filter.Apply(cached.Offers, req.Airlines, req.SortBy, req.SortOrder)

	total := len(offers)
	if cached.Shape == string(reconcile.ShapePairedOneWay) {
		total = len(cached.Outbound) + len(cached.Inbound)
	}

	return models.SearchResponse{
		TraceID: cached.TraceID,
		Metadata: models.SearchMetadata{
			TotalOffers:  total,
			Shape:        cached.Shape,
			Generation:   generation,
			SearchTimeMs: time.Since(startTime).Milliseconds(),
			CacheHit:     cacheHit,
		},
		Offers:   summarize(offers),
		Outbound: summarize(cached.Outbound),
		Inbound:  summarize(cached.Inbound),
	}
}

func (h *BookingHandler) session(c echo.Context) string {
	sid := c.Request().Header.Get(sessionHeader)
	if sid == "" {
		sid = uuid.NewString()
	}
	c.Response().Header().Set(sessionHeader, sid)
	return sid
}

func (h *BookingHandler) prevTrace(ctx context.Context, sid string) string {
	trace, _ := h.sessions.Get(ctx, "trace:"+sid)
	return trace
}

func (h *BookingHandler) saveTrace(ctx context.Context, sid, trace string) {
	if trace == "" {
		return
	}
	if err := h.sessions.Set(ctx, "trace:"+sid, trace, traceTTL); err != nil {
		h.log.Warn("failed to persist trace id", zap.String("session", sid), zap.Error(err))
	}
}

func summarize(offers []models.Offer) []models.OfferSummary {
	if len(offers) == 0 {
		return nil
	}
	out := make([]models.OfferSummary, 0, len(offers))
	for _, o := range offers {
		out = append(out, models.OfferSummary{
			Offer:          o,
			TotalFormatted: currency.FormatBDT(float64(o.Price.TotalPayable)),
			DiscountTotal:  fare.DiscountTotal(o),
		})
	}
	return out
}

func errorJSON(c echo.Context, code int, errKey, msg string) error {
	return c.JSON(code, models.ErrorResponse{
		Error:   errKey,
		Message: msg,
		Code:    code,
	})
}

func supplierError(c echo.Context, err error) error {
	var supErr *models.SupplierError
	if errors.As(err, &supErr) {
		return errorJSON(c, http.StatusBadGateway, "supplier_error", supErr.Msg)
	}
	if errors.Is(err, models.ErrEmptyResponse) {
		return errorJSON(c, http.StatusBadGateway, "supplier_error", err.Error())
	}
	return errorJSON(c, http.StatusInternalServerError, "internal_error", err.Error())
}

func HealthHandler(c echo.Context) error {
	return c.JSON(http.StatusOK, map[string]string{
		"status": "ok",
	})
}
