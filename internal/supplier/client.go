package supplier

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/nazmulhs/farebridge/internal/models"
	"github.com/nazmulhs/farebridge/internal/ratelimit"
)

type Config struct {
	BaseURL     string
	APIKey      string
	Timeout     time.Duration
	RetryDelays []time.Duration
	Limiter     *ratelimit.EndpointLimiter
}

type Client struct {
	baseURL     string
	apiKey      string
	httpClient  *http.Client
	limiter     *ratelimit.EndpointLimiter
	retryDelays []time.Duration
	log         *zap.Logger
}

func NewClient(cfg Config, log *zap.Logger) *Client {
	if cfg.Timeout <= 0 {
		cfg.Timeout = 30 * time.Second
	}
	if len(cfg.RetryDelays) == 0 {
		cfg.RetryDelays = []time.Duration{
			100 * time.Millisecond,
			200 * time.Millisecond,
			400 * time.Millisecond,
		}
	}
	if log == nil {
		log = zap.NewNop()
	}

	return &Client{
		baseURL:     strings.TrimRight(cfg.BaseURL, "/"),
		apiKey:      cfg.APIKey,
		httpClient:  &http.Client{Timeout: cfg.Timeout},
		limiter:     cfg.Limiter,
		retryDelays: cfg.RetryDelays,
		log:         log,
	}
}

// Shopping request wire shape. Field names follow the upstream contract.

type shoppingRequest struct {
	PointOfSale string           `json:"pointOfSale"`
	Request     shoppingCriteria `json:"request"`
}

type shoppingCriteria struct {
	OriginDest []originDest `json:"originDest"`
	Pax        []paxRequest `json:"pax"`
	Shopping   shoppingOpts `json:"shoppingCriteria"`
}

type originDest struct {
	OriginDepRequest   pointRequest `json:"originDepRequest"`
	DestArrivalRequest pointRequest `json:"destArrivalRequest"`
}

type pointRequest struct {
	IATALocationCode string `json:"iatA_LocationCode"`
	Date             string `json:"date,omitempty"`
}

type paxRequest struct {
	PaxID string `json:"paxID"`
	PTC   string `json:"ptc"`
}

type shoppingOpts struct {
	TripType          string   `json:"tripType"`
	TravelPreferences prefOpts `json:"travelPreferences"`
	ReturnUPSellInfo  bool     `json:"returnUPSellInfo"`
}

type prefOpts struct {
	CabinCode  string   `json:"cabinCode"`
	VendorPref []string `json:"vendorPref,omitempty"`
}

func buildShoppingRequest(req models.SearchRequest) shoppingRequest {
	tripType := "Oneway"
	dests := []originDest{{
		OriginDepRequest:   pointRequest{IATALocationCode: req.Origin, Date: req.DepartureDate},
		DestArrivalRequest: pointRequest{IATALocationCode: req.Destination},
	}}
	if req.ReturnDate != nil && *req.ReturnDate != "" {
		tripType = "Return"
		dests = append(dests, originDest{
			OriginDepRequest:   pointRequest{IATALocationCode: req.Destination, Date: *req.ReturnDate},
			DestArrivalRequest: pointRequest{IATALocationCode: req.Origin},
		})
	}

	var pax []paxRequest
	n := 0
	addPax := func(count int, ptc models.PaxType) {
		for i := 0; i < count; i++ {
			n++
			pax = append(pax, paxRequest{PaxID: fmt.Sprintf("PAX%d", n), PTC: string(ptc)})
		}
	}
	addPax(req.Adults, models.PaxAdult)
	addPax(req.Children, models.PaxChild)
	addPax(req.Infants, models.PaxInfant)

	return shoppingRequest{
		PointOfSale: "BD",
		Request: shoppingCriteria{
			OriginDest: dests,
			Pax:        pax,
			Shopping: shoppingOpts{
				TripType:          tripType,
				TravelPreferences: prefOpts{CabinCode: req.CabinClass, VendorPref: req.Airlines},
				ReturnUPSellInfo:  true,
			},
		},
	}
}

func (c *Client) Search(ctx context.Context, req models.SearchRequest) (*models.ShoppingResponse, error) {
	var reply models.ShoppingReply
	if err := c.post(ctx, "AirShopping", buildShoppingRequest(req), &reply); err != nil {
		return nil, err
	}
	if err := reply.Err("AirShopping"); err != nil {
		return nil, err
	}
	return reply.Response, nil
}

func (c *Client) OfferPrice(ctx context.Context, traceID string, offerIDs []string) (*models.ShoppingResponse, error) {
	body := map[string]any{"traceId": traceID, "offerId": offerIDs}

	var reply models.ShoppingReply
	if err := c.post(ctx, "OfferPrice", body, &reply); err != nil {
		return nil, err
	}
	if err := reply.Err("OfferPrice"); err != nil {
		return nil, err
	}
	return reply.Response, nil
}

func (c *Client) OrderSell(ctx context.Context, req models.OrderSellRequest) (*models.ShoppingResponse, error) {
	var reply models.ShoppingReply
	if err := c.post(ctx, "OrderSell", req, &reply); err != nil {
		return nil, err
	}
	if err := reply.Err("OrderSell"); err != nil {
		return nil, err
	}
	return reply.Response, nil
}

func (c *Client) OrderCreate(ctx context.Context, req models.OrderSellRequest) (*models.OrderResponse, error) {
	var reply models.OrderReply
	if err := c.post(ctx, "OrderCreate", req, &reply); err != nil {
		return nil, err
	}
	if err := reply.Err("OrderCreate"); err != nil {
		return nil, err
	}
	return reply.Response, nil
}

func (c *Client) OrderRetrieve(ctx context.Context, orderRef string) (*models.OrderResponse, error) {
	body := map[string]any{"orderReference": orderRef}

	var reply models.OrderReply
	if err := c.post(ctx, "OrderRetrieve", body, &reply); err != nil {
		return nil, err
	}
	if err := reply.Err("OrderRetrieve"); err != nil {
		return nil, err
	}
	return reply.Response, nil
}

// post sends one JSON call with the retry ladder: transport errors and 5xx
// replies retry, anything the supplier answered deliberately does not.
func (c *Client) post(ctx context.Context, endpoint string, body any, out any) error {
	if c.limiter != nil {
		if err := c.limiter.Wait(ctx, endpoint); err != nil {
			return err
		}
	}

	payload, err := json.Marshal(body)
	if err != nil {
		return fmt.Errorf("encode %s request: %w", endpoint, err)
	}

	var lastErr error
	for attempt := 0; attempt <= len(c.retryDelays); attempt++ {
		if attempt > 0 {
			delay := c.retryDelays[attempt-1]
			select {
			case <-time.After(delay):
			case <-ctx.Done():
				return ctx.Err()
			}
			c.log.Debug("retrying supplier call",
				zap.String("endpoint", endpoint),
				zap.Int("attempt", attempt+1),
			)
		}

		retryable, err := c.doOnce(ctx, endpoint, payload, out)
		if err == nil {
			return nil
		}
		lastErr = err
		if !retryable {
			return err
		}
		c.log.Warn("supplier call failed",
			zap.String("endpoint", endpoint),
			zap.Int("attempt", attempt+1),
			zap.Error(err),
		)
	}

	return lastErr
}

func (c *Client) doOnce(ctx context.Context, endpoint string, payload []byte, out any) (retryable bool, err error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/"+endpoint, bytes.NewReader(payload))
	if err != nil {
		return false, fmt.Errorf("build %s request: %w", endpoint, err)
	}
	req.Header.Set("Content-Type", "application/json")
	if c.apiKey != "" {
		req.Header.Set("X-API-KEY", c.apiKey)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return true, fmt.Errorf("%s request: %w", endpoint, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= http.StatusInternalServerError {
		return true, &models.SupplierError{Op: endpoint, Msg: resp.Status}
	}
	if resp.StatusCode >= http.StatusBadRequest {
		return false, &models.SupplierError{Op: endpoint, Msg: resp.Status}
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return false, fmt.Errorf("decode %s response: %w", endpoint, err)
	}
	return false, nil
}
