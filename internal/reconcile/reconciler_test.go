package reconcile

import (
	"testing"

	"github.com/nazmulhs/farebridge/internal/models"
)

func offerNode(offerID, carrier string) models.OfferNode {
	return models.OfferNode{Offer: models.OfferWire{
		OfferID:           offerID,
		ValidatingCarrier: carrier,
		FareDetailList: []models.FareDetailNode{{FareDetail: models.FareDetailWire{
			PaxType:  "ADT",
			PaxCount: 1,
			BaseFare: 4000,
			Tax:      400,
			VAT:      80,
			SubTotal: 4480,
			Currency: "BDT",
		}}},
		Price: models.OfferPriceWire{
			Gross:        models.PriceTotalWire{Total: 4480},
			TotalPayable: models.PriceTotalWire{Total: 4480},
		},
	}}
}

func TestReconcileSingleOffer(t *testing.T) {
	resp := &models.ShoppingResponse{
		TraceID:     "trace-1",
		OffersGroup: []models.OfferNode{offerNode("OF1", "BG")},
	}

	result := Reconcile(resp, "")

	if result.Shape != ShapeSingle {
		t.Fatalf("shape = %s, want %s", result.Shape, ShapeSingle)
	}
	if len(result.Offers) != 1 || result.Offers[0].OfferID != "OF1" {
		t.Fatalf("unexpected offers: %+v", result.Offers)
	}
	if result.TraceID != "trace-1" {
		t.Errorf("trace id = %q, want trace-1", result.TraceID)
	}
}

func TestReconcileCombinedOfferWins(t *testing.T) {
	resp := &models.ShoppingResponse{
		TraceID: "trace-2",
		OffersGroup: []models.OfferNode{
			offerNode("OF9_OB", "BG"),
			offerNode("OF9_IB", "BG"),
			offerNode("OF9", "BG"),
		},
	}

	result := Reconcile(resp, "")

	if result.Shape != ShapeCombined {
		t.Fatalf("shape = %s, want %s", result.Shape, ShapeCombined)
	}
	if len(result.Offers) != 1 {
		t.Fatalf("offer count = %d, want 1", len(result.Offers))
	}
	if got := result.Offers[0].OfferID; got != "OF9" {
		t.Errorf("offer id = %q, want the suffix-less combined offer", got)
	}
}

func TestReconcileSameCarrierWithoutCombinedFallsBack(t *testing.T) {
	resp := &models.ShoppingResponse{
		OffersGroup: []models.OfferNode{
			offerNode("OF9_OB", "BG"),
			offerNode("OF9_IB", "BG"),
		},
	}

	result := Reconcile(resp, "")

	if result.Shape != ShapeSplit {
		t.Fatalf("shape = %s, want %s", result.Shape, ShapeSplit)
	}
	if len(result.Offers) != 2 {
		t.Fatalf("offer count = %d, want both split legs", len(result.Offers))
	}
}

func TestReconcileMixedCarriersStaySplit(t *testing.T) {
	resp := &models.ShoppingResponse{
		OffersGroup: []models.OfferNode{
			offerNode("OF1_OB", "BG"),
			offerNode("OF2_IB", "BS"),
		},
	}

	result := Reconcile(resp, "")

	if result.Shape != ShapeSplit {
		t.Fatalf("shape = %s, want %s", result.Shape, ShapeSplit)
	}
	if len(result.Offers) != 2 {
		t.Fatalf("offer count = %d, want 2", len(result.Offers))
	}
}

func TestReconcileSpecialReturn(t *testing.T) {
	resp := &models.ShoppingResponse{
		TraceID:       "trace-sr",
		SpecialReturn: true,
		SpecialReturnOffersGroup: &models.SpecialReturnGroup{
			OB: []models.OfferNode{offerNode("SR1_OB", "BG"), offerNode("SR2_OB", "BG")},
			IB: []models.OfferNode{offerNode("SR1_IB", "BG")},
		},
	}

	result := Reconcile(resp, "")

	if result.Shape != ShapePairedOneWay {
		t.Fatalf("shape = %s, want %s", result.Shape, ShapePairedOneWay)
	}
	if !result.PairedOneWay() {
		t.Error("PairedOneWay() should report true")
	}
	if len(result.Outbound) != 2 || len(result.Inbound) != 1 {
		t.Fatalf("outbound/inbound = %d/%d, want 2/1", len(result.Outbound), len(result.Inbound))
	}
	if len(result.Offers) != 0 {
		t.Errorf("paired one-way must not merge collections into Offers")
	}
}

func TestReconcileTraceContinuity(t *testing.T) {
	// A response without a trace id retains the previous one.
	resp := &models.ShoppingResponse{
		OffersGroup: []models.OfferNode{offerNode("OF1", "BG")},
	}
	result := Reconcile(resp, "trace-prev")
	if result.TraceID != "trace-prev" {
		t.Errorf("trace id = %q, want previous trace retained", result.TraceID)
	}

	// A response with a trace id supersedes the previous one.
	resp.TraceID = "trace-new"
	result = Reconcile(resp, "trace-prev")
	if result.TraceID != "trace-new" {
		t.Errorf("trace id = %q, want trace-new", result.TraceID)
	}
}

func TestReconcileOfferChangeRequiresConfirmation(t *testing.T) {
	resp := &models.ShoppingResponse{
		TraceID:         "trace-3",
		OffersGroup:     []models.OfferNode{offerNode("OF1", "BG")},
		OfferChangeInfo: &models.OfferChangeInfo{TypeOfChange: "PriceChanged"},
	}

	result := Reconcile(resp, "")

	if result.OfferChange == nil {
		t.Fatal("offer change notice missing")
	}
	if !result.OfferChange.ConfirmationRequired {
		t.Error("offer change must require confirmation")
	}
	if result.OfferChange.TypeOfChange != "PriceChanged" {
		t.Errorf("type of change = %q", result.OfferChange.TypeOfChange)
	}
}

func TestReconcileNilResponse(t *testing.T) {
	result := Reconcile(nil, "trace-prev")
	if result.TraceID != "trace-prev" {
		t.Errorf("trace id = %q, want previous trace retained", result.TraceID)
	}
	if len(result.Offers) != 0 {
		t.Errorf("nil response must yield no offers")
	}
}

func TestMapOfferDerivesMissingTotals(t *testing.T) {
	node := offerNode("OF1", "BG")
	node.Offer.Price = models.OfferPriceWire{}

	offer := MapOffer(node.Offer)

	if offer.Price.TotalPayable != 4480 {
		t.Errorf("payable total = %d, want sum of fare rows", offer.Price.TotalPayable)
	}
}

func TestMapOfferCarriesUpSellBrands(t *testing.T) {
	node := offerNode("OF1", "BG")
	node.Offer.UpSellBrandList = []models.UpSellBrandNode{
		{OfferID: "OF1-FLEX", BrandName: "Flex", Price: 5200},
		{OfferID: "OF1-PREM", BrandName: "Premium Flex", Price: 6100},
	}

	offer := MapOffer(node.Offer)

	if len(offer.UpSellBrands) != 2 {
		t.Fatalf("brand count = %d, want 2", len(offer.UpSellBrands))
	}
	if offer.UpSellBrands[0].BrandName != "Flex" || offer.UpSellBrands[0].Price != 5200 {
		t.Errorf("first brand = %+v", offer.UpSellBrands[0])
	}
	if offer.UpSellBrands[1].OfferID != "OF1-PREM" {
		t.Errorf("second brand offer id = %q", offer.UpSellBrands[1].OfferID)
	}
}

func TestMapOfferDefensiveDefaults(t *testing.T) {
	offer := MapOffer(models.OfferWire{OfferID: "OF-EMPTY"})

	if offer.Segments == nil || offer.Fares == nil {
		t.Fatal("lists must be empty, not nil")
	}
	if offer.Price.TotalPayable != 0 {
		t.Errorf("payable total = %d, want 0", offer.Price.TotalPayable)
	}
}

func TestIsLegOffer(t *testing.T) {
	cases := []struct {
		id   string
		want bool
	}{
		{"OF9_OB", true},
		{"OF9_IB", true},
		{"OF9", false},
		{"OF9_OBX", false},
	}
	for _, tc := range cases {
		if got := IsLegOffer(tc.id); got != tc.want {
			t.Errorf("IsLegOffer(%q) = %v, want %v", tc.id, got, tc.want)
		}
	}
}
