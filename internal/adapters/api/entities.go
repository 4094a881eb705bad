// internal/adapters/api/entities.go
package api

import (
	"github.com/stockline/stockline-go/internal/core/domain"
	"github.com/stockline/stockline-go/internal/core/ports"
)

// Statically assert that resources satisfy the gateway port.
var _ ports.Gateway[domain.Stock] = (*Resource[domain.Stock])(nil)

// Stocks returns the stock gateway.
func Stocks(c *Client) *Resource[domain.Stock] {
	return NewResource[domain.Stock](c, domain.EntityStock, "/api/v1/stocks")
}

// Products returns the product gateway.
func Products(c *Client) *Resource[domain.Product] {
	return NewResource[domain.Product](c, domain.EntityProduct, "/api/v1/products")
}

// Orders returns the order gateway.
func Orders(c *Client) *Resource[domain.Order] {
	return NewResource[domain.Order](c, domain.EntityOrder, "/api/v1/orders")
}

// Customers returns the customer gateway.
func Customers(c *Client) *Resource[domain.Customer] {
	return NewResource[domain.Customer](c, domain.EntityCustomer, "/api/v1/customers")
}

// Suppliers returns the supplier gateway.
func Suppliers(c *Client) *Resource[domain.Supplier] {
	return NewResource[domain.Supplier](c, domain.EntitySupplier, "/api/v1/suppliers")
}

// Returns returns the return gateway.
func Returns(c *Client) *Resource[domain.Return] {
	return NewResource[domain.Return](c, domain.EntityReturn, "/api/v1/returns")
}

// Repairs returns the repair gateway.
func Repairs(c *Client) *Resource[domain.Repair] {
	return NewResource[domain.Repair](c, domain.EntityRepair, "/api/v1/repairs")
}
