package persistence

import (
	"strings"
)

// ValidateSortOrder validates and normalizes the sort order to ASC or DESC.
// Returns "DESC" as the default if the input is invalid or empty.
func ValidateSortOrder(orderDir string) string {
	normalized := strings.ToUpper(strings.TrimSpace(orderDir))
	if normalized == "ASC" {
		return "ASC"
	}
	return "DESC"
}

// ValidateSortField validates the sort field against a whitelist of allowed fields.
// Returns the defaultField if the input is invalid, empty, or not in the whitelist.
func ValidateSortField(sortField string, allowedFields map[string]bool, defaultField string) string {
	trimmed := strings.TrimSpace(sortField)
	if trimmed == "" {
		return defaultField
	}
	if allowedFields[trimmed] {
		return trimmed
	}
	return defaultField
}

// InventoryLineSortFields contains allowed sort fields for inventory lines
var InventoryLineSortFields = map[string]bool{
	"id":            true,
	"created_at":    true,
	"updated_at":    true,
	"identifier":    true,
	"product_name":  true,
	"full_units":    true,
	"partial_units": true,
}

// ReturnPackageSortFields contains allowed sort fields for return packages
var ReturnPackageSortFields = map[string]bool{
	"id":               true,
	"created_at":       true,
	"updated_at":       true,
	"distributor_name": true,
	"status":           true,
	"shipped_at":       true,
	"delivered_at":     true,
}

// DistributorSortFields contains allowed sort fields for distributors
var DistributorSortFields = map[string]bool{
	"id":         true,
	"created_at": true,
	"updated_at": true,
	"name":       true,
	"city":       true,
	"state":      true,
}
