package enrich

import (
	"context"
	"sync"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/nazmulhs/farebridge/internal/fare"
	"github.com/nazmulhs/farebridge/internal/markup"
	"github.com/nazmulhs/farebridge/internal/models"
)

// Enricher applies role-dependent markup to a list of offers, resolving each
// offer's percent concurrently. Every search mints a generation id scoped to
// the caller's booking session; markup results are keyed by (session,
// generation, offerID) and results arriving for a generation that the same
// session has since superseded are dropped, so a stale search can never patch
// its replacement. Sessions are independent: one client's new search never
// invalidates another client's in-flight work. There is no incremental update
// path: a new search always re-derives everything.
type Enricher struct {
	resolver   *markup.Resolver
	normalizer *fare.Normalizer
	log        *zap.Logger

	mu      sync.Mutex
	current map[string]string
}

func NewEnricher(resolver *markup.Resolver, normalizer *fare.Normalizer, log *zap.Logger) *Enricher {
	if log == nil {
		log = zap.NewNop()
	}
	return &Enricher{
		resolver:   resolver,
		normalizer: normalizer,
		log:        log,
		current:    make(map[string]string),
	}
}

// Begin starts a new search generation for one booking session, superseding
// any in-flight generation of that session.
func (e *Enricher) Begin(session string) string {
	gen := uuid.NewString()
	e.mu.Lock()
	e.current[session] = gen
	e.mu.Unlock()
	return gen
}

func (e *Enricher) isCurrent(session, gen string) bool {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.current[session] == gen
}

type offerResult struct {
	session    string
	generation string
	offerID    string
	idx        int
	offer      models.Offer
}

// Enrich resolves and applies markup for every offer of one generation. The
// returned ok is false when the session superseded the generation while work
// was in flight; the caller must discard the result wholesale.
func (e *Enricher) Enrich(ctx context.Context, session, generation string, role models.Role, offers []models.Offer) ([]models.Offer, bool) {
	if len(offers) == 0 {
		return offers, e.isCurrent(session, generation)
	}

	resultCh := make(chan offerResult, len(offers))
	var wg sync.WaitGroup

	for i, o := range offers {
		wg.Add(1)
		go func(idx int, offer models.Offer) {
			defer wg.Done()

			percent := e.resolver.Resolve(ctx, offer.ValidatingCarrier, role, offer.Origin(), offer.Destination())
			resultCh <- offerResult{
				session:    session,
				generation: generation,
				offerID:    offer.OfferID,
				idx:        idx,
				offer:      e.normalizer.Apply(offer, percent),
			}
		}(i, o)
	}

	go func() {
		wg.Wait()
		close(resultCh)
	}()

	out := make([]models.Offer, len(offers))
	copy(out, offers)

	for r := range resultCh {
		if !e.isCurrent(r.session, r.generation) {
			e.log.Debug("dropping markup result from superseded search",
				zap.String("session", r.session),
				zap.String("generation", r.generation),
				zap.String("offer_id", r.offerID),
			)
			continue
		}
		out[r.idx] = r.offer
	}

	if !e.isCurrent(session, generation) {
		return nil, false
	}
	return out, true
}
