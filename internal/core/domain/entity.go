// internal/core/domain/entity.go
package domain

import "math"

// Entity identifies one of the record types managed by the client.
type Entity string

// Entity constants
const (
	EntityStock    Entity = "stock"
	EntityProduct  Entity = "product"
	EntityOrder    Entity = "order"
	EntityCustomer Entity = "customer"
	EntitySupplier Entity = "supplier"
	EntityReturn   Entity = "return"
	EntityRepair   Entity = "repair"
)

// Label returns the human-readable name used in user-facing messages.
func (e Entity) Label() string {
	switch e {
	case EntityStock:
		return "stock"
	case EntityProduct:
		return "product"
	case EntityOrder:
		return "order"
	case EntityCustomer:
		return "customer"
	case EntitySupplier:
		return "supplier"
	case EntityReturn:
		return "return"
	case EntityRepair:
		return "repair"
	default:
		return string(e)
	}
}

// StatusFilter narrows a listing to a lifecycle state.
type StatusFilter string

// Status filter constants
const (
	StatusAll      StatusFilter = "all"
	StatusActive   StatusFilter = "active"
	StatusInactive StatusFilter = "inactive"
)

// Availability is the product-specific extra listing filter.
type Availability string

// Availability constants
const (
	AvailabilityAll         Availability = "all"
	AvailabilityForSale     Availability = "available_for_sale"
	AvailabilityNotInRepair Availability = "not_in_repair"
)

// OptionRef is a picker option: an entity id paired with its display label.
type OptionRef struct {
	Value string `json:"value"`
	Label string `json:"label"`
}

// TotalPages computes pagination metadata from a total count and page size.
// An empty collection still renders as a single page.
func TotalPages(totalCount int64, pageSize int) int {
	if pageSize <= 0 {
		return 1
	}
	pages := int(math.Ceil(float64(totalCount) / float64(pageSize)))
	if pages < 1 {
		pages = 1
	}
	return pages
}
