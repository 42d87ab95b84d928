package handler

import (
	"context"
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	"github.com/nazmulhs/farebridge/internal/booking"
	"github.com/nazmulhs/farebridge/internal/models"
	"github.com/nazmulhs/farebridge/internal/reconcile"
)

// CreateOrder runs the sell-then-create leg of the flow. OrderSell re-prices
// the selection; if the supplier reports a price or booking-class change the
// order is not placed until the client repeats the call with confirm_change.
func (h *BookingHandler) CreateOrder(c echo.Context) error {
	ctx := c.Request().Context()

	var input models.OrderCreateInput
	if err := c.Bind(&input); err != nil {
		return errorJSON(c, http.StatusBadRequest, "invalid_request", "Failed to parse request body: "+err.Error())
	}

	sellReq, err := booking.BuildOrderCreate(input)
	if err != nil {
		var buildErr *booking.BuildError
		if errors.As(err, &buildErr) {
			return errorJSON(c, http.StatusBadRequest, "validation_error", buildErr.Error())
		}
		return errorJSON(c, http.StatusBadRequest, "validation_error", err.Error())
	}

	role := h.callerRole(c)
	sid := h.session(c)

	sellResp, err := h.api.OrderSell(ctx, sellReq)
	if err != nil {
		return supplierError(c, err)
	}

	sellResult := reconcile.Reconcile(sellResp, input.TraceID)
	h.saveTrace(ctx, sid, sellResult.TraceID)

	if sellResult.OfferChange != nil && !input.ConfirmChange {
		h.log.Info("order blocked pending offer-change confirmation",
			zap.String("trace_id", sellResult.TraceID),
			zap.String("type_of_change", sellResult.OfferChange.TypeOfChange),
		)
		return c.JSON(http.StatusConflict, models.PriceResponse{
			TraceID:     sellResult.TraceID,
			Offers:      summarize(h.enrichOrFallback(ctx, sid, role, sellResult.Offers)),
			OfferChange: sellResult.OfferChange,
		})
	}

	// The sell step may rotate the trace id; the create call must use the
	// rotated one.
	sellReq.TraceID = sellResult.TraceID

	orderResp, err := h.api.OrderCreate(ctx, sellReq)
	if err != nil {
		return supplierError(c, err)
	}

	h.saveTrace(ctx, sid, orderResp.TraceID)
	return c.JSON(http.StatusCreated, h.buildOrderView(ctx, sid, role, sellResult.TraceID, orderResp))
}

func (h *BookingHandler) RetrieveOrder(c echo.Context) error {
	ctx := c.Request().Context()

	orderRef := c.Param("ref")
	if orderRef == "" {
		return errorJSON(c, http.StatusBadRequest, "validation_error", "order reference is required")
	}

	role := h.callerRole(c)
	sid := h.session(c)

	resp, err := h.api.OrderRetrieve(ctx, orderRef)
	if err != nil {
		return supplierError(c, err)
	}

	trace := resp.TraceID
	if trace == "" {
		trace = h.prevTrace(ctx, sid)
	}

	return c.JSON(http.StatusOK, h.buildOrderView(ctx, sid, role, trace, resp))
}

// buildOrderView re-derives display fares from the retrieved order, the same
// normalization the search and price pages run.
func (h *BookingHandler) buildOrderView(ctx context.Context, sid string, role models.Role, trace string, resp *models.OrderResponse) models.OrderView {
	offers := make([]models.Offer, 0, len(resp.OrderItem))
	for _, node := range resp.OrderItem {
		offers = append(offers, reconcile.MapOffer(node.Offer))
	}

	if resp.TraceID != "" {
		trace = resp.TraceID
	}

	view := models.OrderView{
		OrderReference:     resp.OrderReference,
		OrderStatus:        resp.OrderStatus,
		TraceID:            trace,
		Offers:             summarize(h.enrichOrFallback(ctx, sid, role, offers)),
		PaxList:            resp.PaxList,
		PartialPaymentInfo: resp.PartialPaymentInfo,
	}
	if resp.OrderChangeInfo != nil && resp.OrderChangeInfo.TypeOfChange != "" {
		view.OrderChange = &models.OfferChangeNotice{
			TypeOfChange:         resp.OrderChangeInfo.TypeOfChange,
			ConfirmationRequired: true,
		}
	}
	return view
}

// enrichOrFallback prefers markup-adjusted offers but falls back to the
// as-quoted ones when enrichment was superseded mid-flight; an order page
// with airline-quoted fares beats no order page.
func (h *BookingHandler) enrichOrFallback(ctx context.Context, sid string, role models.Role, offers []models.Offer) []models.Offer {
	generation := h.enricher.Begin(sid)
	enriched, ok := h.enricher.Enrich(ctx, sid, generation, role, offers)
	if !ok {
		return offers
	}
	return enriched
}
