package models

import "github.com/google/uuid"

// DeliveryTier is the presentation tier of an on-time delivery rate
type DeliveryTier string

const (
	DeliveryTierFavorable  DeliveryTier = "favorable"
	DeliveryTierCautionary DeliveryTier = "cautionary"
	DeliveryTierPoor       DeliveryTier = "poor"
)

// StatusCount is one bucket of the by-status reduction
type StatusCount struct {
	Status ShipmentStatus `json:"status"`
	Count  int            `json:"count"`
}

// CarrierCount is one bucket of the by-carrier reduction. CarrierID is empty
// for the unassigned bucket.
type CarrierCount struct {
	CarrierID   string `json:"carrierId"`
	CarrierName string `json:"carrierName"`
	Count       int    `json:"count"`
}

// ZoneCount is one bucket of the by-zone reduction
type ZoneCount struct {
	Zone  string `json:"zone"`
	Count int    `json:"count"`
}

// CarrierOnTimeRate is the on-time delivery rate of a single carrier
type CarrierOnTimeRate struct {
	CarrierID   uuid.UUID    `json:"carrierId"`
	CarrierName string       `json:"carrierName"`
	Delivered   int          `json:"delivered"` // delivered shipments with both timestamps present
	OnTime      int          `json:"onTime"`
	Rate        int          `json:"rate"` // whole percent, 0-100
	Tier        DeliveryTier `json:"tier"`
}

// ShipmentAnalytics is the payload of GET /shipments/analytics
type ShipmentAnalytics struct {
	Total         int                 `json:"total"`
	StatusCounts  []StatusCount       `json:"statusCounts"`
	CarrierCounts []CarrierCount      `json:"carrierCounts"`
	ZoneCounts    []ZoneCount         `json:"zoneCounts"`
	OnTimeRates   []CarrierOnTimeRate `json:"onTimeRates"`
}

// EmptyAnalytics returns a zeroed aggregate with non-nil slices
func EmptyAnalytics() *ShipmentAnalytics {
	return &ShipmentAnalytics{
		StatusCounts:  []StatusCount{},
		CarrierCounts: []CarrierCount{},
		ZoneCounts:    []ZoneCount{},
		OnTimeRates:   []CarrierOnTimeRate{},
	}
}

// StatusInfo describes one canonical status for presentation
type StatusInfo struct {
	Status          ShipmentStatus `json:"status"`
	Icon            string         `json:"icon"`
	LabelKey        string         `json:"labelKey"`
	ColorClass      string         `json:"colorClass"`
	Next            ShipmentStatus `json:"next"`
	CanQuickAdvance bool           `json:"canQuickAdvance"`
	Terminal        bool           `json:"terminal"`
}
