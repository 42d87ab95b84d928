package filter

import (
	"testing"

	"github.com/nazmulhs/farebridge/internal/models"
)

func offer(id, carrier string, total models.Money, duration int) models.Offer {
	return models.Offer{
		OfferID:           id,
		ValidatingCarrier: carrier,
		Price:             models.OfferPrice{TotalPayable: total},
		Segments: []models.Segment{
			{DurationMinutes: duration},
		},
	}
}

func TestApplySortsByTotalByDefault(t *testing.T) {
	offers := []models.Offer{
		offer("OF1", "BG", 9000, 60),
		offer("OF2", "BS", 7000, 90),
		offer("OF3", "VQ", 8000, 45),
	}

	sorted := Apply(offers, nil, "total", "asc")

	want := []string{"OF2", "OF3", "OF1"}
	for i, id := range want {
		if sorted[i].OfferID != id {
			t.Errorf("position %d: got %s, want %s", i, sorted[i].OfferID, id)
		}
	}
}

func TestApplySortDescending(t *testing.T) {
	offers := []models.Offer{
		offer("OF1", "BG", 9000, 60),
		offer("OF2", "BS", 7000, 90),
	}

	sorted := Apply(offers, nil, "total", "desc")
	if sorted[0].OfferID != "OF1" {
		t.Errorf("descending sort: got %s first", sorted[0].OfferID)
	}
}

func TestApplySortsByDuration(t *testing.T) {
	offers := []models.Offer{
		offer("OF1", "BG", 9000, 60),
		offer("OF2", "BS", 7000, 90),
		offer("OF3", "VQ", 8000, 45),
	}

	sorted := Apply(offers, nil, "duration", "asc")
	if sorted[0].OfferID != "OF3" {
		t.Errorf("duration sort: got %s first, want OF3", sorted[0].OfferID)
	}
}

func TestApplyFiltersAirlines(t *testing.T) {
	offers := []models.Offer{
		offer("OF1", "BG", 9000, 60),
		offer("OF2", "BS", 7000, 90),
		offer("OF3", "bg", 8000, 45),
	}

	filtered := Apply(offers, []string{"BG"}, "total", "asc")
	if len(filtered) != 2 {
		t.Fatalf("filtered count = %d, want 2 (case-insensitive)", len(filtered))
	}
	for _, o := range filtered {
		if o.ValidatingCarrier != "BG" && o.ValidatingCarrier != "bg" {
			t.Errorf("unexpected carrier %s", o.ValidatingCarrier)
		}
	}
}

func TestApplyEmptyList(t *testing.T) {
	if got := Apply(nil, nil, "total", "asc"); len(got) != 0 {
		t.Errorf("empty input should stay empty, got %d", len(got))
	}
}
