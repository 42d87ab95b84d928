package ratelimit

import (
	"context"
	"testing"
	"time"
)

func tightLimits() Limits {
	return Limits{
		"OrderCreate": {PerSecond: 0.001, Burst: 1},
		"AirShopping": {PerSecond: 0.001, Burst: 1},
	}
}

func waitWithTimeout(l *EndpointLimiter, endpoint string) error {
	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
	defer cancel()
	return l.Wait(ctx, endpoint)
}

func TestWaitEnforcesBurst(t *testing.T) {
	l := NewEndpointLimiter(tightLimits(), Config{PerSecond: 1, Burst: 1})

	if err := waitWithTimeout(l, "OrderCreate"); err != nil {
		t.Fatalf("first call should pass: %v", err)
	}
	if err := waitWithTimeout(l, "OrderCreate"); err == nil {
		t.Fatal("second call should exceed the burst within the deadline")
	}
}

func TestEndpointsHaveIndependentBuckets(t *testing.T) {
	l := NewEndpointLimiter(tightLimits(), Config{PerSecond: 1, Burst: 1})

	if err := waitWithTimeout(l, "OrderCreate"); err != nil {
		t.Fatalf("first call should pass: %v", err)
	}
	// Exhausting OrderCreate's bucket must not touch AirShopping's.
	if err := waitWithTimeout(l, "AirShopping"); err != nil {
		t.Errorf("other endpoint throttled: %v", err)
	}
}

func TestUnknownEndpointUsesFallback(t *testing.T) {
	l := NewEndpointLimiter(tightLimits(), Config{PerSecond: 0.001, Burst: 1})

	if err := waitWithTimeout(l, "SeatMap"); err != nil {
		t.Fatalf("first fallback call should pass: %v", err)
	}
	if err := waitWithTimeout(l, "SeatMap"); err == nil {
		t.Fatal("fallback bucket should also be enforced")
	}
}

func TestDefaultLimitsCoverOrderEndpoints(t *testing.T) {
	limits := DefaultLimits()
	for _, endpoint := range []string{"AirShopping", "OfferPrice", "OrderSell", "OrderCreate", "OrderRetrieve"} {
		cfg, ok := limits[endpoint]
		if !ok {
			t.Errorf("%s missing from default limits", endpoint)
			continue
		}
		if cfg.PerSecond <= 0 || cfg.Burst <= 0 {
			t.Errorf("%s has unusable limit %+v", endpoint, cfg)
		}
	}
	// Order mutations must be metered tighter than shopping.
	if limits["OrderCreate"].PerSecond >= limits["AirShopping"].PerSecond {
		t.Error("order creation should be throttled harder than shopping")
	}
}
