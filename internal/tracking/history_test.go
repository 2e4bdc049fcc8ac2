package tracking

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"tracking-service/internal/models"
)

var renderTime = time.Date(2026, 5, 20, 15, 30, 0, 0, time.UTC)

func shipment(status models.ShipmentStatus) *models.Shipment {
	return &models.Shipment{
		ID:             uuid.New(),
		TrackingNumber: "TRK-0042",
		Origin:         "Oran",
		Destination:    "Alger",
		Status:         status,
	}
}

func keys(steps []models.TrackingStep) []string {
	out := make([]string, len(steps))
	for i, s := range steps {
		out[i] = s.Key
	}
	return out
}

func active(steps []models.TrackingStep) []string {
	out := []string{}
	for _, s := range steps {
		if s.IsActive {
			out = append(out, s.Key)
		}
	}
	return out
}

func TestSynthesize_Delivered(t *testing.T) {
	steps := Synthesize(shipment(models.ShipmentStatusDelivered), renderTime)

	assert.Equal(t, []string{"received", "prepared", "shipped", "in_transit", "delivered"}, keys(steps))
	assert.Equal(t, keys(steps), active(steps))

	last := steps[len(steps)-1]
	assert.Equal(t, renderTime, last.Timestamp)
	assert.Equal(t, "2026-05-20", last.Date)
	assert.Equal(t, "15:30", last.Time)
	assert.Equal(t, "Alger", last.Location)
}

func TestSynthesize_DelayedStopsAtDelayed(t *testing.T) {
	steps := Synthesize(shipment(models.ShipmentStatusDelayed), renderTime)

	assert.Equal(t, []string{"received", "prepared", "shipped", "in_transit", "delayed", "delivered"}, keys(steps))
	assert.Equal(t, []string{"received", "prepared", "shipped", "in_transit", "delayed"}, active(steps))
	assert.Equal(t, renderTime.Add(-24*time.Hour), steps[4].Timestamp)
}

func TestSynthesize_PendingAndInTransit(t *testing.T) {
	assert.Equal(t, []string{"received", "prepared"}, active(Synthesize(shipment(models.ShipmentStatusPending), renderTime)))
	assert.Equal(t,
		[]string{"received", "prepared", "shipped", "in_transit"},
		active(Synthesize(shipment(models.ShipmentStatusInTransit), renderTime)))
}

func TestSynthesize_Offsets(t *testing.T) {
	steps := Synthesize(shipment(models.ShipmentStatusInTransit), renderTime)
	require.Len(t, steps, 5)

	assert.Equal(t, renderTime.Add(-72*time.Hour), steps[0].Timestamp)
	assert.Equal(t, renderTime.Add(-68*time.Hour), steps[1].Timestamp)
	assert.Equal(t, renderTime.Add(-48*time.Hour), steps[2].Timestamp)
	assert.Equal(t, renderTime.Add(-42*time.Hour), steps[3].Timestamp)
	for i := 1; i < len(steps); i++ {
		assert.True(t, steps[i].Timestamp.After(steps[i-1].Timestamp))
	}
	assert.Equal(t, "Oran", steps[0].Location)
}

func TestSynthesize_AliasAndUnknownStatus(t *testing.T) {
	assert.Equal(t,
		active(Synthesize(shipment(models.ShipmentStatusDelivered), renderTime)),
		active(Synthesize(shipment("livre"), renderTime)))

	assert.Equal(t, []string{"received"}, active(Synthesize(shipment("teleported"), renderTime)))
}

func TestSynthesize_DeterministicAndPure(t *testing.T) {
	s := shipment(models.ShipmentStatusDelayed)
	before := *s

	first := Synthesize(s, renderTime)
	second := Synthesize(s, renderTime)

	assert.Equal(t, first, second)
	assert.Equal(t, before, *s)
}

func TestHistory_FlagsSyntheticSteps(t *testing.T) {
	s := shipment(models.ShipmentStatusPending)
	h := History(s, nil, renderTime)

	assert.True(t, h.Synthetic)
	assert.Equal(t, s.ID, h.ShipmentID)
	assert.NotNil(t, h.Events)
	assert.Empty(t, h.Events)
	assert.Len(t, h.Steps, 5)
}

func TestSynthesize_Nil(t *testing.T) {
	assert.Empty(t, Synthesize(nil, renderTime))
}
