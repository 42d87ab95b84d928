package markup

import (
	"context"
	"strings"

	"go.uber.org/zap"

	"github.com/nazmulhs/farebridge/internal/models"
)

// Query identifies one markup rule. Empty Origin/Dest means the airline-wide
// rule for the role.
type Query struct {
	Airline string
	Role    models.Role
	Origin  string
	Dest    string
}

func (q Query) normalized() Query {
	q.Airline = strings.ToUpper(strings.TrimSpace(q.Airline))
	q.Origin = strings.ToUpper(strings.TrimSpace(q.Origin))
	q.Dest = strings.ToUpper(strings.TrimSpace(q.Dest))
	q.Role = models.NormalizeRole(string(q.Role))
	return q
}

// RuleStore answers exact-key lookups; precedence between keys is the
// resolver's business, not the store's.
type RuleStore interface {
	Lookup(ctx context.Context, q Query) (percent float64, found bool, err error)
}

type Resolver struct {
	store RuleStore
	log   *zap.Logger
}

func NewResolver(store RuleStore, log *zap.Logger) *Resolver {
	if log == nil {
		log = zap.NewNop()
	}
	return &Resolver{store: store, log: log}
}

// Resolve returns the signed markup percent for an airline, caller role and
// route. Route-specific rules beat airline-wide rules; no rule, an unusable
// store, or a lookup error all resolve to 0 so pricing display degrades to
// the airline-quoted fare instead of blocking the page.
func (r *Resolver) Resolve(ctx context.Context, airline string, role models.Role, origin, dest string) float64 {
	if r.store == nil {
		return 0
	}
	q := Query{Airline: airline, Role: role, Origin: origin, Dest: dest}.normalized()
	if q.Airline == "" {
		return 0
	}

	if q.Origin != "" && q.Dest != "" {
		if percent, ok := r.lookup(ctx, q); ok {
			return percent
		}
	}

	airlineWide := q
	airlineWide.Origin = ""
	airlineWide.Dest = ""
	if percent, ok := r.lookup(ctx, airlineWide); ok {
		return percent
	}

	return 0
}

func (r *Resolver) lookup(ctx context.Context, q Query) (float64, bool) {
	percent, found, err := r.store.Lookup(ctx, q)
	if err != nil {
		r.log.Warn("markup lookup failed, pricing without markup",
			zap.String("airline", q.Airline),
			zap.String("role", string(q.Role)),
			zap.String("origin", q.Origin),
			zap.String("dest", q.Dest),
			zap.Error(err),
		)
		return 0, false
	}
	return percent, found
}

// StaticStore serves rules from memory; used in tests and for
// config-file-driven deployments without a rules database.
type StaticStore struct {
	rules map[Query]float64
}

type Rule struct {
	Airline string
	Role    models.Role
	Origin  string
	Dest    string
	Percent float64
}

func NewStaticStore(rules []Rule) *StaticStore {
	m := make(map[Query]float64, len(rules))
	for _, rule := range rules {
		q := Query{Airline: rule.Airline, Role: rule.Role, Origin: rule.Origin, Dest: rule.Dest}.normalized()
		m[q] = rule.Percent
	}
	return &StaticStore{rules: m}
}

func (s *StaticStore) Lookup(_ context.Context, q Query) (float64, bool, error) {
	percent, ok := s.rules[q.normalized()]
	return percent, ok, nil
}
