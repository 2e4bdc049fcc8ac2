// Package filtering narrows a shipment snapshot by free text, status and
// carrier. Filtering is stable and never mutates the input.
package filtering

import (
	"strings"

	"tracking-service/internal/lifecycle"
	"tracking-service/internal/models"
)

// All is the facet value that disables the status or carrier predicate
const All = "all"

// Criteria holds the three facets. Empty Status or Carrier behaves like All.
type Criteria struct {
	Search  string
	Status  string
	Carrier string
}

// NewCriteria builds criteria from raw query values, resolving status
// aliases so "livre" filters delivered shipments.
func NewCriteria(search, status, carrier string) Criteria {
	c := Criteria{Search: search, Status: strings.TrimSpace(status), Carrier: strings.TrimSpace(carrier)}
	if c.Status != "" && !strings.EqualFold(c.Status, All) {
		if canonical, ok := lifecycle.Parse(c.Status); ok {
			c.Status = string(canonical)
		}
	}
	return c
}

// IsZero reports whether the criteria match everything
func (c Criteria) IsZero() bool {
	return strings.TrimSpace(c.Search) == "" && isAll(c.Status) && isAll(c.Carrier)
}

func isAll(v string) bool {
	return v == "" || strings.EqualFold(v, All)
}

// Filter returns the shipments matching every facet, in input order. The
// result is a new slice sharing the same shipment pointers.
func Filter(shipments []*models.Shipment, c Criteria) []*models.Shipment {
	term := strings.ToLower(strings.TrimSpace(c.Search))
	out := make([]*models.Shipment, 0, len(shipments))
	for _, s := range shipments {
		if s == nil {
			continue
		}
		if !matchesSearch(s, term) {
			continue
		}
		if !isAll(c.Status) && string(s.Status) != c.Status {
			continue
		}
		if !isAll(c.Carrier) && s.CarrierKey() != c.Carrier {
			continue
		}
		out = append(out, s)
	}
	return out
}

// matchesSearch expects term already lowercased and trimmed
func matchesSearch(s *models.Shipment, term string) bool {
	if term == "" {
		return true
	}
	for _, field := range []string{s.TrackingNumber, s.CustomerName, s.OrderID, s.Origin, s.Destination} {
		if strings.Contains(strings.ToLower(field), term) {
			return true
		}
	}
	return false
}
