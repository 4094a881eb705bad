// cmd/stockline/main.go

// stockline is a terminal front end for the client core: it wires the
// config, session, API gateway and a collection controller together and
// prints one page of an entity listing. It doubles as a smoke test for
// the whole stack against a live backend.
package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"time"

	"github.com/stockline/stockline-go/internal/adapters/api"
	"github.com/stockline/stockline-go/internal/adapters/session"
	"github.com/stockline/stockline-go/internal/core/controller"
	"github.com/stockline/stockline-go/internal/core/domain"
	"github.com/stockline/stockline-go/internal/core/ports"
	"github.com/stockline/stockline-go/internal/pkg/config"
	"github.com/stockline/stockline-go/internal/pkg/logger"
)

// Build information injected at compile time
var (
	Version   = "dev"
	BuildTime = "unknown"
)

func main() {
	var (
		entity = flag.String("entity", "stock", "entity to list: stock, product, order, customer, supplier, return, repair")
		search = flag.String("search", "", "search term")
		page   = flag.Int("page", 1, "page number")
	)
	flag.Parse()

	slogger := logger.SetupLogger("debug", "text")

	slogger.Info("starting stockline client",
		slog.String("version", Version),
		slog.String("build_time", BuildTime),
	)

	cfg, err := config.Load(slogger)
	if err != nil {
		slogger.Error("failed to load configuration", slog.String("error", err.Error()))
		os.Exit(1)
	}

	slogger = logger.SetupLogger(cfg.App.LogLevel, cfg.App.LogFormat)

	sessions := session.NewStore()
	if cfg.API.AuthToken != "" {
		sessions.SignIn(cfg.API.AuthToken, "")
	}

	client, err := api.NewClient(api.ClientConfig{
		BaseURL:        cfg.API.BaseURL,
		Timeout:        cfg.API.Timeout,
		RateLimitRPS:   cfg.API.RateLimitRPS,
		RateLimitBurst: cfg.API.RateLimitBurst,
		Tokens:         sessions,
		Logger:         slogger,
	})
	if err != nil {
		slogger.Error("failed to build API client", slog.String("error", err.Error()))
		os.Exit(1)
	}

	ctx, cancel := context.WithTimeout(context.Background(), cfg.API.Timeout+5*time.Second)
	defer cancel()

	if err := listEntity(ctx, cfg, client, slogger, *entity, *search, *page); err != nil {
		slogger.Error("listing failed", slog.String("error", err.Error()))
		os.Exit(1)
	}
}

// listEntity runs one collection fetch for the requested entity and prints
// the resulting page.
func listEntity(ctx context.Context, cfg *config.Config, client *api.Client, slogger *slog.Logger, entity, search string, page int) error {
	switch domain.Entity(entity) {
	case domain.EntityStock:
		return runList(ctx, cfg, slogger, domain.EntityStock, api.Stocks(client).Fetch(), search, page,
			func(s domain.Stock) string {
				return fmt.Sprintf("%-36s  %-30s  qty=%-5d  sell=%s", s.ID, s.Name, s.Quantity, s.SellPrice)
			})
	case domain.EntityProduct:
		return runList(ctx, cfg, slogger, domain.EntityProduct, api.Products(client).Fetch(), search, page,
			func(p domain.Product) string {
				return fmt.Sprintf("%-36s  %-30s  price=%s", p.ID, p.Name, p.Price)
			})
	case domain.EntityOrder:
		return runList(ctx, cfg, slogger, domain.EntityOrder, api.Orders(client).Fetch(), search, page,
			func(o domain.Order) string {
				return fmt.Sprintf("%-36s  qty=%-5d  total=%-12s paid=%s", o.ID, o.Quantity, o.TotalPrice, o.TotalPaid)
			})
	case domain.EntityCustomer:
		return runList(ctx, cfg, slogger, domain.EntityCustomer, api.Customers(client).Fetch(), search, page,
			func(c domain.Customer) string {
				return fmt.Sprintf("%-36s  %-30s  %s", c.ID, c.Name, c.Phone)
			})
	case domain.EntitySupplier:
		return runList(ctx, cfg, slogger, domain.EntitySupplier, api.Suppliers(client).Fetch(), search, page,
			func(s domain.Supplier) string {
				return fmt.Sprintf("%-36s  %-30s  %s", s.ID, s.Name, s.Company)
			})
	case domain.EntityReturn:
		return runList(ctx, cfg, slogger, domain.EntityReturn, api.Returns(client).Fetch(), search, page,
			func(r domain.Return) string {
				return fmt.Sprintf("%-36s  order=%-36s  refund=%s", r.ID, r.OrderID, r.RefundAmount)
			})
	case domain.EntityRepair:
		return runList(ctx, cfg, slogger, domain.EntityRepair, api.Repairs(client).Fetch(), search, page,
			func(r domain.Repair) string {
				return fmt.Sprintf("%-36s  %-40s  cost=%s", r.ID, r.Description, r.Cost)
			})
	default:
		return fmt.Errorf("unknown entity %q", entity)
	}
}

func runList[T any](ctx context.Context, cfg *config.Config, slogger *slog.Logger, entity domain.Entity, fetch ports.FetchFunc[T], search string, page int, format func(T) string) error {
	done := make(chan struct{}, 1)
	col := controller.NewCollection(fetch, controller.CollectionConfig{
		Entity:   entity,
		PageSize: cfg.Client.DefaultPageSize,
		Debounce: cfg.Client.SearchDebounce,
		Logger:   slogger,
		OnChange: func() {
			select {
			case done <- struct{}{}:
			default:
			}
		},
	})
	defer col.Close()

	// Parameters are staged before Start so the eager fetch already
	// carries them.
	if search != "" {
		col.SetSearch(search)
	}
	if page > 1 {
		col.SetPage(page)
	}
	col.Start(ctx)

	for {
		select {
		case <-done:
			snap := col.Snapshot()
			if !snap.Loading {
				if snap.Err != "" {
					return fmt.Errorf("%s", snap.Err)
				}
				fmt.Printf("%s page %d/%d (%d total)\n", entity.Label(), snap.Page, snap.TotalPages, snap.TotalCount)
				for _, item := range snap.Items {
					fmt.Println(format(item))
				}
				return nil
			}
		case <-ctx.Done():
			return fmt.Errorf("timed out waiting for %s page: %w", entity.Label(), ctx.Err())
		}
	}
}
