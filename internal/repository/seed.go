package repository

import (
	"context"
	"fmt"
	"log"

	"github.com/shopspring/decimal"
	"tracking-service/internal/models"
)

// DefaultTenantID is the tenant used when no X-Tenant-ID header is present
const DefaultTenantID = "00000000-0000-0000-0000-000000000001"

func dec(v string) *decimal.Decimal {
	d := decimal.RequireFromString(v)
	return &d
}

// DemoCarriers returns the carriers seeded for demo tenants
func DemoCarriers(tenantID string) []models.Carrier {
	return []models.Carrier{
		{
			TenantID:           tenantID,
			Name:               "Yalidine Express",
			Description:        "Nationwide express parcel delivery with home and desk pickup.",
			Website:            "https://yalidine.app",
			SupportPhone:       "+213 23 00 00 01",
			MaxWeight:          dec("30.00"),
			BasePrice:          dec("400.00"),
			IsActive:           true,
			DeliversNationwide: true,
			ServiceAreas:       models.StringArray{},
		},
		{
			TenantID:     tenantID,
			Name:         "ZR Express",
			Description:  "Regional courier covering the northern wilayas.",
			Website:      "https://zrexpress.dz",
			SupportPhone: "+213 23 00 00 02",
			MaxWeight:    dec("20.00"),
			BasePrice:    dec("350.00"),
			IsActive:     true,
			ServiceAreas: models.StringArray{"Alger", "Oran", "Blida", "Constantine", "Setif"},
		},
		{
			TenantID:     tenantID,
			Name:         "Maystro Delivery",
			Description:  "Same-day delivery inside major cities.",
			Website:      "https://maystro-delivery.com",
			SupportPhone: "+213 23 00 00 03",
			MaxWeight:    dec("10.00"),
			BasePrice:    dec("300.00"),
			IsActive:     false,
			ServiceAreas: models.StringArray{"Alger", "Oran"},
		},
	}
}

// SeedDemoCarriers registers the demo carriers for tenantID when the tenant
// has none yet. It is safe to call on every start.
func SeedDemoCarriers(ctx context.Context, repo CarrierRepository, tenantID string) error {
	count, err := repo.Count(ctx, tenantID)
	if err != nil {
		return err
	}
	if count > 0 {
		return nil
	}

	carriers := DemoCarriers(tenantID)
	for i := range carriers {
		if err := repo.Create(ctx, &carriers[i]); err != nil {
			return fmt.Errorf("seed carrier %s: %w", carriers[i].Name, err)
		}
	}

	log.Printf("Seeded %d demo carriers for tenant %s", len(carriers), tenantID)
	return nil
}
