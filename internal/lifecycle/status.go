// Package lifecycle holds the shipment status state machine: the canonical
// status set, the quick-advance rule, the alias table used at the boundary and
// the badge table every view renders from.
package lifecycle

import (
	"strings"

	"tracking-service/internal/models"
)

// canonical lists the known statuses in progression order
var canonical = []models.ShipmentStatus{
	models.ShipmentStatusPending,
	models.ShipmentStatusInTransit,
	models.ShipmentStatusDelivered,
	models.ShipmentStatusDelayed,
}

var advance = map[models.ShipmentStatus]models.ShipmentStatus{
	models.ShipmentStatusPending:   models.ShipmentStatusInTransit,
	models.ShipmentStatusInTransit: models.ShipmentStatusDelivered,
	models.ShipmentStatusDelivered: models.ShipmentStatusDelivered,
	models.ShipmentStatusDelayed:   models.ShipmentStatusInTransit,
}

// aliases maps every accepted spelling to its canonical status. Keys are
// normalized with normalizeKey.
var aliases = map[string]models.ShipmentStatus{
	"pending":        models.ShipmentStatusPending,
	"en_preparation": models.ShipmentStatusPending,
	"en_attente":     models.ShipmentStatusPending,
	"created":        models.ShipmentStatusPending,

	"in_transit": models.ShipmentStatusInTransit,
	"intransit":  models.ShipmentStatusInTransit,
	"en_transit": models.ShipmentStatusInTransit,
	"en_cours":   models.ShipmentStatusInTransit,
	"shipped":    models.ShipmentStatusInTransit,
	"expedie":    models.ShipmentStatusInTransit,
	"expédié":    models.ShipmentStatusInTransit,

	"delivered": models.ShipmentStatusDelivered,
	"livre":     models.ShipmentStatusDelivered,
	"livré":     models.ShipmentStatusDelivered,

	"delayed": models.ShipmentStatusDelayed,
	"retarde": models.ShipmentStatusDelayed,
	"retardé": models.ShipmentStatusDelayed,
	"late":    models.ShipmentStatusDelayed,
}

func normalizeKey(raw string) string {
	key := strings.ToLower(strings.TrimSpace(raw))
	key = strings.ReplaceAll(key, "-", "_")
	key = strings.ReplaceAll(key, " ", "_")
	return key
}

// Statuses returns the canonical statuses in progression order
func Statuses() []models.ShipmentStatus {
	out := make([]models.ShipmentStatus, len(canonical))
	copy(out, canonical)
	return out
}

// IsKnown reports whether status is one of the canonical values
func IsKnown(status models.ShipmentStatus) bool {
	_, ok := advance[status]
	return ok
}

// Parse resolves a raw status string, canonical or alias, to its canonical
// value. The second result is false when the spelling is not recognized.
func Parse(raw string) (models.ShipmentStatus, bool) {
	status, ok := aliases[normalizeKey(raw)]
	return status, ok
}

// Canonicalize is Parse without the flag: unrecognized values map to unknown
func Canonicalize(raw string) models.ShipmentStatus {
	if status, ok := Parse(raw); ok {
		return status
	}
	return models.ShipmentStatusUnknown
}

// Next returns the quick-advance target of status. Statuses outside the
// table map to themselves.
func Next(status models.ShipmentStatus) models.ShipmentStatus {
	if next, ok := advance[status]; ok {
		return next
	}
	return status
}

// IsTerminal reports whether status is the terminal state
func IsTerminal(status models.ShipmentStatus) bool {
	return status == models.ShipmentStatusDelivered
}

// CanQuickAdvance reports whether the one-click advance should be offered.
// Setting a terminal status again through the store stays legal.
func CanQuickAdvance(status models.ShipmentStatus) bool {
	return IsKnown(status) && !IsTerminal(status)
}

// Rank is the position of status in the delivery progression, used by the
// history synthesizer. Unknown statuses rank 0.
func Rank(status models.ShipmentStatus) int {
	switch status {
	case models.ShipmentStatusPending:
		return 1
	case models.ShipmentStatusInTransit:
		return 3
	case models.ShipmentStatusDelayed:
		return 4
	case models.ShipmentStatusDelivered:
		return 5
	default:
		return 0
	}
}
