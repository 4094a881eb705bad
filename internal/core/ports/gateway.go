// internal/core/ports/gateway.go
package ports

import (
	"context"

	"github.com/google/uuid"

	"github.com/stockline/stockline-go/internal/core/domain"
)

// ListParams holds the fetch parameters for one page of a collection.
type ListParams struct {
	Page     int
	PageSize int
	Search   string
	Status   domain.StatusFilter
	// Filter is an entity-specific extra discriminant, e.g. the product
	// availability filter.
	Filter string
}

// ListResult holds one immutable page snapshot. It is superseded wholesale
// by the next fetch, never patched incrementally.
type ListResult[T any] struct {
	Items      []T   `json:"items"`
	Page       int   `json:"page"`
	PageSize   int   `json:"page_size"`
	TotalCount int64 `json:"total_count"`
	TotalPages int   `json:"total_pages"`
}

// Gateway is the remote CRUD contract for one entity. Implemented by the
// HTTP adapter; the controllers never know the transport.
type Gateway[T any] interface {
	List(ctx context.Context, params ListParams) (*ListResult[T], error)
	Get(ctx context.Context, id uuid.UUID) (*T, error)
	Create(ctx context.Context, payload *T) (*T, error)
	Update(ctx context.Context, id uuid.UUID, payload *T) (*T, error)
	Delete(ctx context.Context, id uuid.UUID) error
}

// FetchFunc loads one page for a collection controller.
type FetchFunc[T any] func(ctx context.Context, params ListParams) (*ListResult[T], error)

// SaveFunc persists a form's current state, dispatching to create or
// update as chosen when the form was bound.
type SaveFunc func(ctx context.Context, state *domain.FormState) error

// OptionPage is one page of async picker options. NextPage is the cursor
// to pass back in for the following page.
type OptionPage struct {
	Options  []domain.OptionRef
	HasMore  bool
	NextPage int
}

// OptionLoader pages picker options matching a search term.
type OptionLoader func(ctx context.Context, search string, page int) (OptionPage, error)
