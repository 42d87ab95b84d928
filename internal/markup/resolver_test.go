package markup

import (
	"context"
	"errors"
	"testing"

	"github.com/nazmulhs/farebridge/internal/models"
)

type failingStore struct {
	calls int
}

func (s *failingStore) Lookup(context.Context, Query) (float64, bool, error) {
	s.calls++
	return 0, false, errors.New("rules database unavailable")
}

func testRules() []Rule {
	return []Rule{
		{Airline: "BG", Role: models.RoleUser, Percent: -5},
		{Airline: "BG", Role: models.RoleAgent, Percent: 7},
		{Airline: "BG", Role: models.RoleUser, Origin: "DAC", Dest: "CXB", Percent: -10},
		{Airline: "BS", Role: models.RoleAgent, Percent: 4},
	}
}

func TestResolveRoutePrecedesAirlineWide(t *testing.T) {
	r := NewResolver(NewStaticStore(testRules()), nil)
	ctx := context.Background()

	if got := r.Resolve(ctx, "BG", models.RoleUser, "DAC", "CXB"); got != -10 {
		t.Errorf("route-specific rule: got %v, want -10", got)
	}
	if got := r.Resolve(ctx, "BG", models.RoleUser, "DAC", "ZYL"); got != -5 {
		t.Errorf("airline-wide fallback: got %v, want -5", got)
	}
	if got := r.Resolve(ctx, "BG", models.RoleUser, "", ""); got != -5 {
		t.Errorf("no route given: got %v, want -5", got)
	}
}

func TestResolveRoleSeparation(t *testing.T) {
	r := NewResolver(NewStaticStore(testRules()), nil)
	ctx := context.Background()

	if got := r.Resolve(ctx, "BG", models.RoleAgent, "DAC", "ZYL"); got != 7 {
		t.Errorf("agent rule: got %v, want 7", got)
	}
	// Unknown role prices as USER.
	if got := r.Resolve(ctx, "BG", models.Role("SUPERVISOR"), "", ""); got != -5 {
		t.Errorf("unknown role: got %v, want USER rule -5", got)
	}
	// AGENT-only airline has no USER rule.
	if got := r.Resolve(ctx, "BS", models.RoleUser, "", ""); got != 0 {
		t.Errorf("missing rule: got %v, want 0", got)
	}
}

func TestResolveFailsOpen(t *testing.T) {
	store := &failingStore{}
	r := NewResolver(store, nil)

	if got := r.Resolve(context.Background(), "BG", models.RoleUser, "DAC", "CXB"); got != 0 {
		t.Errorf("failing store: got %v, want 0", got)
	}
	if store.calls == 0 {
		t.Error("store was never consulted")
	}
}

func TestResolveWithoutStore(t *testing.T) {
	r := NewResolver(nil, nil)
	if got := r.Resolve(context.Background(), "BG", models.RoleUser, "DAC", "CXB"); got != 0 {
		t.Errorf("nil store: got %v, want 0", got)
	}
}

func TestResolveNormalizesInput(t *testing.T) {
	r := NewResolver(NewStaticStore(testRules()), nil)

	if got := r.Resolve(context.Background(), " bg ", models.RoleUser, "dac", "cxb"); got != -10 {
		t.Errorf("case/space-insensitive lookup: got %v, want -10", got)
	}
	if got := r.Resolve(context.Background(), "", models.RoleUser, "DAC", "CXB"); got != 0 {
		t.Errorf("empty airline: got %v, want 0", got)
	}
}
