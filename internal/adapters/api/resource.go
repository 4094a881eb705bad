// internal/adapters/api/resource.go
package api

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strconv"

	"github.com/google/uuid"

	"github.com/stockline/stockline-go/internal/core/domain"
	"github.com/stockline/stockline-go/internal/core/ports"
)

// Resource is the gateway for one entity collection. Every entity shares
// the same list/get/create/update/delete shape; only the path and payload
// type differ.
type Resource[T any] struct {
	client *Client
	entity domain.Entity
	path   string
}

// NewResource binds a gateway to an entity path, e.g. "/api/v1/stocks".
func NewResource[T any](client *Client, entity domain.Entity, path string) *Resource[T] {
	return &Resource[T]{client: client, entity: entity, path: path}
}

// defaultOptionPageSize matches the default collection page size.
const defaultOptionPageSize = 20

type listResponse[T any] struct {
	Items      []T   `json:"items"`
	TotalCount int64 `json:"total_count"`
}

// List fetches one filtered, searched page of the collection.
func (r *Resource[T]) List(ctx context.Context, params ports.ListParams) (*ports.ListResult[T], error) {
	query := url.Values{}
	query.Set("page", strconv.Itoa(params.Page))
	query.Set("page_size", strconv.Itoa(params.PageSize))
	if params.Search != "" {
		query.Set("search", params.Search)
	}
	if params.Status != "" && params.Status != domain.StatusAll {
		query.Set("status", string(params.Status))
	}
	if params.Filter != "" {
		query.Set("filter", params.Filter)
	}

	var resp listResponse[T]
	if err := r.client.do(ctx, http.MethodGet, r.path, query, nil, &resp); err != nil {
		return nil, fmt.Errorf("list %s: %w", r.entity, err)
	}

	return &ports.ListResult[T]{
		Items:      resp.Items,
		Page:       params.Page,
		PageSize:   params.PageSize,
		TotalCount: resp.TotalCount,
		TotalPages: domain.TotalPages(resp.TotalCount, params.PageSize),
	}, nil
}

// Get fetches one entity by id.
func (r *Resource[T]) Get(ctx context.Context, id uuid.UUID) (*T, error) {
	var out T
	if err := r.client.do(ctx, http.MethodGet, r.path+"/"+id.String(), nil, nil, &out); err != nil {
		return nil, fmt.Errorf("get %s: %w", r.entity, err)
	}
	return &out, nil
}

// Create posts a new entity and returns the stored version.
func (r *Resource[T]) Create(ctx context.Context, payload *T) (*T, error) {
	var out T
	if err := r.client.do(ctx, http.MethodPost, r.path, nil, payload, &out); err != nil {
		return nil, fmt.Errorf("create %s: %w", r.entity, err)
	}
	return &out, nil
}

// Update puts an existing entity and returns the stored version.
func (r *Resource[T]) Update(ctx context.Context, id uuid.UUID, payload *T) (*T, error) {
	var out T
	if err := r.client.do(ctx, http.MethodPut, r.path+"/"+id.String(), nil, payload, &out); err != nil {
		return nil, fmt.Errorf("update %s: %w", r.entity, err)
	}
	return &out, nil
}

// Delete removes an entity. Row-level confirmation happens in the UI
// before this is called.
func (r *Resource[T]) Delete(ctx context.Context, id uuid.UUID) error {
	if err := r.client.do(ctx, http.MethodDelete, r.path+"/"+id.String(), nil, nil, nil); err != nil {
		return fmt.Errorf("delete %s: %w", r.entity, err)
	}
	return nil
}

// Fetch adapts the resource for a collection controller.
func (r *Resource[T]) Fetch() ports.FetchFunc[T] {
	return r.List
}

// Options adapts the resource into a paginated option loader, re-keying
// each listed entity into a {value, label} pair. pageSize normally flows
// from the configured client page size; non-positive values fall back to
// the default.
func (r *Resource[T]) Options(toRef func(*T) domain.OptionRef, pageSize int) ports.OptionLoader {
	if pageSize <= 0 {
		pageSize = defaultOptionPageSize
	}
	return func(ctx context.Context, search string, page int) (ports.OptionPage, error) {
		if page < 1 {
			page = 1
		}
		res, err := r.List(ctx, ports.ListParams{
			Page:     page,
			PageSize: pageSize,
			Search:   search,
			Status:   domain.StatusActive,
		})
		if err != nil {
			return ports.OptionPage{}, err
		}
		options := make([]domain.OptionRef, 0, len(res.Items))
		for i := range res.Items {
			options = append(options, toRef(&res.Items[i]))
		}
		return ports.OptionPage{
			Options:  options,
			HasMore:  page < res.TotalPages && len(res.Items) > 0,
			NextPage: page + 1,
		}, nil
	}
}
