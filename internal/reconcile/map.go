package reconcile

import (
	"github.com/nazmulhs/farebridge/internal/models"
	"github.com/nazmulhs/farebridge/internal/timezone"
)

// MapOffer converts one supplier offer into the domain shape. All the
// optional-field messiness of the upstream payload is absorbed here so
// downstream code works with fully populated values: missing lists become
// empty, an unparseable timestamp becomes the zero time, a missing payable
// total is re-derived from the fare rows.
func MapOffer(w models.OfferWire) models.Offer {
	offer := models.Offer{
		OfferID:           w.OfferID,
		ValidatingCarrier: w.ValidatingCarrier,
		Segments:          make([]models.Segment, 0, len(w.PaxSegmentList)),
		Fares:             make([]models.FareLine, 0, len(w.FareDetailList)),
	}

	for _, node := range w.PaxSegmentList {
		offer.Segments = append(offer.Segments, mapSegment(node.PaxSegment))
	}

	for _, node := range w.FareDetailList {
		offer.Fares = append(offer.Fares, mapFareLine(node.FareDetail))
	}

	for _, brand := range w.UpSellBrandList {
		offer.UpSellBrands = append(offer.UpSellBrands, models.UpSellBrand{
			OfferID:   brand.OfferID,
			BrandName: brand.BrandName,
			Price:     brand.Price,
		})
	}

	offer.Price.Gross = w.Price.Gross.Total
	offer.Price.TotalPayable = w.Price.TotalPayable.Total
	if offer.Price.TotalPayable == 0 {
		for _, line := range offer.Fares {
			offer.Price.TotalPayable += line.Original.SubTotal
		}
	}

	return offer
}

func mapSegment(w models.PaxSegmentWire) models.Segment {
	return models.Segment{
		Departure:       mapPoint(w.Departure),
		Arrival:         mapPoint(w.Arrival),
		Carrier:         models.Carrier{DesignatorCode: w.MarketingInfo.DesignatorCode, Name: w.MarketingInfo.Name},
		FlightNumber:    w.FlightNumber,
		CabinType:       w.CabinType,
		DurationMinutes: w.DurationMinutes,
		SegmentGroup:    w.SegmentGroup,
	}
}

func mapPoint(w models.SegmentPointWire) models.SegmentPoint {
	point := models.SegmentPoint{LocationCode: w.IATALocationCode}
	if w.TerminalName != "" {
		terminal := w.TerminalName
		point.Terminal = &terminal
	}
	if t, err := timezone.ParseSegmentTime(w.ScheduledTime, w.IATALocationCode); err == nil {
		point.Scheduled = t
	}
	return point
}

func mapFareLine(w models.FareDetailWire) models.FareLine {
	row := models.FareDetail{
		PaxType:  models.ParsePaxType(w.PaxType),
		PaxCount: w.PaxCount,
		BaseFare: w.BaseFare,
		Tax:      w.Tax,
		OtherFee: w.OtherFee,
		VAT:      w.VAT,
		Discount: w.Discount,
		SubTotal: w.SubTotal,
		Currency: w.Currency,
	}
	if row.PaxCount < 1 {
		row.PaxCount = 1
	}
	if row.SubTotal == 0 {
		row.SubTotal = row.BaseFare + row.Tax + row.VAT
	}

	// Original and Adjusted start identical; the normalizer fills Adjusted
	// when markup runs.
	return models.FareLine{Original: row, Adjusted: row, Applied: false}
}
