// Package analytics reduces a shipment snapshot into per-status, per-carrier
// and per-zone counts and per-carrier on-time delivery rates.
//
// Every reduction is pure: it reads an immutable snapshot and never fails.
// Missing or unrecognized values fall into fallback buckets, so the counts
// of each reduction always sum to the number of shipments.
package analytics

import (
	"strings"

	"github.com/google/uuid"
	"tracking-service/internal/lifecycle"
	"tracking-service/internal/models"
)

const (
	// UnassignedCarrierName labels shipments with no carrier
	UnassignedCarrierName = "unassigned"
	// UnassignedZone labels shipments with no zone
	UnassignedZone = "unassigned"

	favorableAbove  = 90
	cautionaryFrom  = 70
	percentageScale = 100
)

// CarrierNames resolves carrier IDs to display names. A missing entry falls
// back to the ID itself.
type CarrierNames map[uuid.UUID]string

// NamesFrom builds a CarrierNames lookup from carrier records
func NamesFrom(carriers []*models.Carrier) CarrierNames {
	names := make(CarrierNames, len(carriers))
	for _, c := range carriers {
		if c != nil {
			names[c.ID] = c.Name
		}
	}
	return names
}

// Summarize runs every reduction over the snapshot
func Summarize(shipments []*models.Shipment, names CarrierNames) *models.ShipmentAnalytics {
	return &models.ShipmentAnalytics{
		Total:         countNonNil(shipments),
		StatusCounts:  ByStatus(shipments),
		CarrierCounts: ByCarrier(shipments, names),
		ZoneCounts:    ByZone(shipments),
		OnTimeRates:   OnTimeRates(shipments, names),
	}
}

func countNonNil(shipments []*models.Shipment) int {
	n := 0
	for _, s := range shipments {
		if s != nil {
			n++
		}
	}
	return n
}

// ByStatus groups by status in first-seen order. Aliases are resolved and
// anything else lands in the unknown bucket.
func ByStatus(shipments []*models.Shipment) []models.StatusCount {
	out := []models.StatusCount{}
	index := map[models.ShipmentStatus]int{}
	for _, s := range shipments {
		if s == nil {
			continue
		}
		key := lifecycle.Canonicalize(string(s.Status))
		if i, ok := index[key]; ok {
			out[i].Count++
			continue
		}
		index[key] = len(out)
		out = append(out, models.StatusCount{Status: key, Count: 1})
	}
	return out
}

// ByCarrier groups by carrier in first-seen order. Shipments without a
// carrier share one bucket with an empty CarrierID.
func ByCarrier(shipments []*models.Shipment, names CarrierNames) []models.CarrierCount {
	out := []models.CarrierCount{}
	index := map[string]int{}
	for _, s := range shipments {
		if s == nil {
			continue
		}
		key := s.CarrierKey()
		if i, ok := index[key]; ok {
			out[i].Count++
			continue
		}
		index[key] = len(out)
		out = append(out, models.CarrierCount{
			CarrierID:   key,
			CarrierName: carrierName(s, names),
			Count:       1,
		})
	}
	return out
}

func carrierName(s *models.Shipment, names CarrierNames) string {
	if !s.HasCarrier() {
		return UnassignedCarrierName
	}
	if name, ok := names[*s.CarrierID]; ok && name != "" {
		return name
	}
	return s.CarrierID.String()
}

// ByZone groups by the supplied zone in first-seen order. Zones compare
// case-insensitively and keep the first spelling seen.
func ByZone(shipments []*models.Shipment) []models.ZoneCount {
	out := []models.ZoneCount{}
	index := map[string]int{}
	for _, s := range shipments {
		if s == nil {
			continue
		}
		zone := strings.TrimSpace(s.Zone)
		if zone == "" {
			zone = UnassignedZone
		}
		key := strings.ToLower(zone)
		if i, ok := index[key]; ok {
			out[i].Count++
			continue
		}
		index[key] = len(out)
		out = append(out, models.ZoneCount{Zone: zone, Count: 1})
	}
	return out
}
