package supplier

import (
	"context"

	"github.com/nazmulhs/farebridge/internal/models"
)

// API is the airline aggregator the booking flow talks to. It is an opaque
// remote service; only the request/response shapes are ours to see.
type API interface {
	Search(ctx context.Context, req models.SearchRequest) (*models.ShoppingResponse, error)
	OfferPrice(ctx context.Context, traceID string, offerIDs []string) (*models.ShoppingResponse, error)
	OrderSell(ctx context.Context, req models.OrderSellRequest) (*models.ShoppingResponse, error)
	OrderCreate(ctx context.Context, req models.OrderSellRequest) (*models.OrderResponse, error)
	OrderRetrieve(ctx context.Context, orderRef string) (*models.OrderResponse, error)
}
