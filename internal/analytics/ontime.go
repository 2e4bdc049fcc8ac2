package analytics

import (
	"math"
	"sort"

	"github.com/google/uuid"
	"tracking-service/internal/lifecycle"
	"tracking-service/internal/models"
)

// IsOnTime reports whether a delivered shipment qualifies for the on-time
// rate and, if so, whether it arrived on time. Shipments missing the
// estimate are not qualifying.
func IsOnTime(s *models.Shipment) (qualifies, onTime bool) {
	if s == nil || s.EstimatedDelivery == nil || s.UpdatedAt.IsZero() {
		return false, false
	}
	if lifecycle.Canonicalize(string(s.Status)) != models.ShipmentStatusDelivered {
		return false, false
	}
	return true, !s.UpdatedAt.After(*s.EstimatedDelivery)
}

// Rate returns onTime/max(qualifying,1) as a whole percentage in [0,100]
func Rate(onTime, qualifying int) int {
	if qualifying < 1 {
		qualifying = 1
	}
	if onTime < 0 {
		onTime = 0
	}
	if onTime > qualifying {
		onTime = qualifying
	}
	return int(math.Round(float64(onTime) / float64(qualifying) * percentageScale))
}

// TierFor maps a rate to its presentation tier: above 90 is favorable,
// 70 through 90 cautionary, below 70 poor.
func TierFor(rate int) models.DeliveryTier {
	switch {
	case rate > favorableAbove:
		return models.DeliveryTierFavorable
	case rate >= cautionaryFrom:
		return models.DeliveryTierCautionary
	default:
		return models.DeliveryTierPoor
	}
}

// CarrierOnTimeRate computes the rate of one carrier. A carrier with no
// qualifying shipment reports 0.
func CarrierOnTimeRate(shipments []*models.Shipment, carrierID uuid.UUID, names CarrierNames) models.CarrierOnTimeRate {
	var qualifying, onTime int
	for _, s := range shipments {
		if s == nil || !s.HasCarrier() || *s.CarrierID != carrierID {
			continue
		}
		q, ok := IsOnTime(s)
		if !q {
			continue
		}
		qualifying++
		if ok {
			onTime++
		}
	}

	rate := 0
	if qualifying > 0 {
		rate = Rate(onTime, qualifying)
	}
	name := names[carrierID]
	if name == "" {
		name = carrierID.String()
	}
	return models.CarrierOnTimeRate{
		CarrierID:   carrierID,
		CarrierName: name,
		Delivered:   qualifying,
		OnTime:      onTime,
		Rate:        rate,
		Tier:        TierFor(rate),
	}
}

// OnTimeRates computes the rate of every carrier seen in the snapshot, in
// first-seen order. Carriers known only through names are appended with
// rate 0 so registered carriers with no shipments still show up.
func OnTimeRates(shipments []*models.Shipment, names CarrierNames) []models.CarrierOnTimeRate {
	order := make([]uuid.UUID, 0)
	seen := map[uuid.UUID]bool{}
	for _, s := range shipments {
		if s == nil || !s.HasCarrier() || seen[*s.CarrierID] {
			continue
		}
		seen[*s.CarrierID] = true
		order = append(order, *s.CarrierID)
	}

	out := make([]models.CarrierOnTimeRate, 0, len(order))
	for _, id := range order {
		out = append(out, CarrierOnTimeRate(shipments, id, names))
	}
	for _, id := range sortedExtra(names, seen) {
		out = append(out, CarrierOnTimeRate(nil, id, names))
	}
	return out
}

// sortedExtra returns the carriers in names that are not in seen, ordered by
// name then ID so map iteration order never leaks into the output.
func sortedExtra(names CarrierNames, seen map[uuid.UUID]bool) []uuid.UUID {
	extra := make([]uuid.UUID, 0)
	for id := range names {
		if !seen[id] {
			extra = append(extra, id)
		}
	}
	sort.Slice(extra, func(i, j int) bool {
		ni, nj := names[extra[i]], names[extra[j]]
		if ni != nj {
			return ni < nj
		}
		return extra[i].String() < extra[j].String()
	})
	return extra
}
