package lifecycle

import "tracking-service/internal/models"

// Badge is the presentation of one status
type Badge struct {
	Icon       string `json:"icon"`
	LabelKey   string `json:"labelKey"`
	ColorClass string `json:"colorClass"`
}

var unknownBadge = Badge{Icon: "help-circle", LabelKey: "shipments.status.unknown", ColorClass: "unknown"}

var badges = map[models.ShipmentStatus]Badge{
	models.ShipmentStatusPending:   {Icon: "clock", LabelKey: "shipments.status.pending", ColorClass: "warning"},
	models.ShipmentStatusInTransit: {Icon: "truck", LabelKey: "shipments.status.in_transit", ColorClass: "info"},
	models.ShipmentStatusDelivered: {Icon: "check-circle", LabelKey: "shipments.status.delivered", ColorClass: "success"},
	models.ShipmentStatusDelayed:   {Icon: "alert-triangle", LabelKey: "shipments.status.delayed", ColorClass: "danger"},
}

// BadgeFor returns the badge of status. Anything outside the canonical set
// renders as unknown.
func BadgeFor(status models.ShipmentStatus) Badge {
	if badge, ok := badges[status]; ok {
		return badge
	}
	return unknownBadge
}

// BadgeForRaw resolves aliases before looking up the badge
func BadgeForRaw(raw string) Badge {
	return BadgeFor(Canonicalize(raw))
}

// Describe returns the full presentation record of every canonical status
func Describe() []models.StatusInfo {
	infos := make([]models.StatusInfo, 0, len(canonical))
	for _, status := range canonical {
		badge := BadgeFor(status)
		infos = append(infos, models.StatusInfo{
			Status:          status,
			Icon:            badge.Icon,
			LabelKey:        badge.LabelKey,
			ColorClass:      badge.ColorClass,
			Next:            Next(status),
			CanQuickAdvance: CanQuickAdvance(status),
			Terminal:        IsTerminal(status),
		})
	}
	return infos
}
