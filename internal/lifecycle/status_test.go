package lifecycle

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"tracking-service/internal/models"
)

func TestNext_AdvanceTable(t *testing.T) {
	tests := []struct {
		from models.ShipmentStatus
		want models.ShipmentStatus
	}{
		{models.ShipmentStatusPending, models.ShipmentStatusInTransit},
		{models.ShipmentStatusInTransit, models.ShipmentStatusDelivered},
		{models.ShipmentStatusDelivered, models.ShipmentStatusDelivered},
		{models.ShipmentStatusDelayed, models.ShipmentStatusInTransit},
	}

	for _, tt := range tests {
		t.Run(string(tt.from), func(t *testing.T) {
			assert.Equal(t, tt.want, Next(tt.from))
		})
	}
}

func TestNext_ClosedOverKnownStatuses(t *testing.T) {
	for _, status := range Statuses() {
		assert.True(t, IsKnown(Next(status)), "next(%s) escaped the canonical set", status)
	}
}

func TestNext_TerminalIsIdempotent(t *testing.T) {
	delivered := models.ShipmentStatusDelivered
	assert.Equal(t, delivered, Next(delivered))
	assert.Equal(t, Next(delivered), Next(Next(delivered)))
}

func TestNext_UnknownMapsToItself(t *testing.T) {
	assert.Equal(t, models.ShipmentStatus("lost_at_sea"), Next("lost_at_sea"))
	assert.Equal(t, models.ShipmentStatus(""), Next(""))
}

func TestQuickAdvanceScenario(t *testing.T) {
	status := models.ShipmentStatusPending
	status = Next(status)
	assert.Equal(t, models.ShipmentStatusInTransit, status)
	status = Next(status)
	assert.Equal(t, models.ShipmentStatusDelivered, status)
	status = Next(status)
	assert.Equal(t, models.ShipmentStatusDelivered, status)
}

func TestCanQuickAdvance(t *testing.T) {
	assert.True(t, CanQuickAdvance(models.ShipmentStatusPending))
	assert.True(t, CanQuickAdvance(models.ShipmentStatusDelayed))
	assert.False(t, CanQuickAdvance(models.ShipmentStatusDelivered))
	assert.False(t, CanQuickAdvance("bogus"))
}

func TestParse_Aliases(t *testing.T) {
	tests := []struct {
		raw  string
		want models.ShipmentStatus
	}{
		{"pending", models.ShipmentStatusPending},
		{"en_preparation", models.ShipmentStatusPending},
		{"In Transit", models.ShipmentStatusInTransit},
		{"in-transit", models.ShipmentStatusInTransit},
		{"livre", models.ShipmentStatusDelivered},
		{"LIVRÉ", models.ShipmentStatusDelivered},
		{"retarde", models.ShipmentStatusDelayed},
		{" delayed ", models.ShipmentStatusDelayed},
	}

	for _, tt := range tests {
		t.Run(tt.raw, func(t *testing.T) {
			got, ok := Parse(tt.raw)
			assert.True(t, ok)
			assert.Equal(t, tt.want, got)
		})
	}

	_, ok := Parse("teleported")
	assert.False(t, ok)
	assert.Equal(t, models.ShipmentStatusUnknown, Canonicalize("teleported"))
}

func TestBadgeFor_UnknownDegrades(t *testing.T) {
	assert.Equal(t, "success", BadgeFor(models.ShipmentStatusDelivered).ColorClass)
	assert.Equal(t, "unknown", BadgeFor("whatever").ColorClass)
	assert.Equal(t, "unknown", BadgeFor("").ColorClass)
	assert.Equal(t, "danger", BadgeForRaw("retardé").ColorClass)
}

func TestDescribe(t *testing.T) {
	infos := Describe()
	assert.Len(t, infos, 4)
	for _, info := range infos {
		assert.Equal(t, Next(info.Status), info.Next)
		assert.NotEmpty(t, info.LabelKey)
	}
	assert.False(t, infos[2].CanQuickAdvance)
	assert.True(t, infos[2].Terminal)
}
