// Package tracking derives a presentable step-by-step history from a
// shipment's current status. The steps are synthetic: they are anchored to
// the render time, never stored, and always returned flagged as such next to
// the recorded status events.
package tracking

import (
	"fmt"
	"time"

	"tracking-service/internal/lifecycle"
	"tracking-service/internal/models"
)

const (
	DateLayout = "2006-01-02"
	TimeLayout = "15:04"

	day = 24 * time.Hour
)

type stepDef struct {
	key       string
	offset    time.Duration
	threshold int
	location  func(origin, destination string) string
	describe  func(origin, destination string) string
}

func atOrigin(origin, _ string) string {
	return origin
}

func atDestination(_, destination string) string {
	return destination
}

var steps = []stepDef{
	{
		key: "received", offset: -3 * day, threshold: 0, location: atOrigin,
		describe: func(o, _ string) string { return fmt.Sprintf("Shipment registered at %s", o) },
	},
	{
		key: "prepared", offset: -3*day + 4*time.Hour, threshold: 1, location: atOrigin,
		describe: func(_, _ string) string { return "Parcel prepared and labelled" },
	},
	{
		key: "shipped", offset: -2 * day, threshold: 2, location: atOrigin,
		describe: func(o, _ string) string { return fmt.Sprintf("Handed to carrier at %s", o) },
	},
	{
		key: "in_transit", offset: -2*day + 6*time.Hour, threshold: 3,
		location: func(o, d string) string { return fmt.Sprintf("%s - %s", o, d) },
		describe: func(_, d string) string { return fmt.Sprintf("On the way to %s", d) },
	},
	{
		key: "delayed", offset: -1 * day, threshold: 4, location: atDestination,
		describe: func(_, _ string) string { return "Delivery delayed" },
	},
	{
		key: "delivered", offset: 0, threshold: 5, location: atDestination,
		describe: func(_, d string) string { return fmt.Sprintf("Delivered at %s", d) },
	},
}

// Synthesize returns the synthetic steps of s as seen at now. The output
// depends only on the status, origin, destination and now. The delayed step
// is present only for delayed shipments; the delivered step is always
// present and active only once delivered.
func Synthesize(s *models.Shipment, now time.Time) []models.TrackingStep {
	if s == nil {
		return []models.TrackingStep{}
	}
	status := lifecycle.Canonicalize(string(s.Status))
	rank := lifecycle.Rank(status)

	out := make([]models.TrackingStep, 0, len(steps))
	for _, def := range steps {
		if def.key == "delayed" && status != models.ShipmentStatusDelayed {
			continue
		}
		at := now.Add(def.offset)
		out = append(out, models.TrackingStep{
			Key:         def.key,
			Date:        at.Format(DateLayout),
			Time:        at.Format(TimeLayout),
			Timestamp:   at,
			Location:    def.location(s.Origin, s.Destination),
			StatusLabel: "tracking.step." + def.key,
			Description: def.describe(s.Origin, s.Destination),
			IsActive:    rank >= def.threshold,
		})
	}
	return out
}

// History combines the recorded events of s with its synthetic steps
func History(s *models.Shipment, events []models.ShipmentEvent, now time.Time) *models.TrackingHistoryResponse {
	if events == nil {
		events = []models.ShipmentEvent{}
	}
	return &models.TrackingHistoryResponse{
		ShipmentID:     s.ID,
		TrackingNumber: s.TrackingNumber,
		Status:         s.Status,
		Events:         events,
		Steps:          Synthesize(s, now),
		Synthetic:      true,
	}
}
