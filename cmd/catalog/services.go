package main

import (
	"context"
	"fmt"
	"slices"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/kbukum/servicebox/di"
	apperrors "github.com/kbukum/servicebox/errors"
	"github.com/kbukum/servicebox/logger"
	"github.com/kbukum/servicebox/resilience"
	"github.com/kbukum/servicebox/server"
)

// Item is a catalog entry.
type Item struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	CreatedAt time.Time `json:"created_at"`
}

// ItemStore keeps items in memory.
type ItemStore struct {
	mu       sync.RWMutex
	items    []Item
	maxItems int
}

func NewItemStore(maxItems int) *ItemStore {
	return &ItemStore{maxItems: maxItems}
}

func (s *ItemStore) Add(item Item) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.maxItems > 0 && len(s.items) >= s.maxItems {
		return apperrors.Conflict(fmt.Sprintf("Catalog is full (%d items).", s.maxItems))
	}
	s.items = append(s.items, item)
	return nil
}

func (s *ItemStore) List() []Item {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return slices.Clone(s.items)
}

// Close drops every stored item.
func (s *ItemStore) Close(context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.items = nil
	return nil
}

// Auditor records catalog changes in the log.
type Auditor struct {
	log *logger.Logger
}

func NewAuditor(l *logger.Logger) *Auditor {
	return &Auditor{log: l}
}

func (a *Auditor) ItemCreated(ctx context.Context, item Item) {
	a.log.WithContext(ctx).Info("item created", map[string]interface{}{
		"item_id": item.ID,
		"name":    item.Name,
	})
}

// Catalog is the application service behind the /items routes.
type Catalog struct {
	store   *ItemStore
	auditor *Auditor
	now     func() time.Time
}

func NewCatalog(store *ItemStore, auditor *Auditor) *Catalog {
	return &Catalog{store: store, auditor: auditor, now: time.Now}
}

func (c *Catalog) Create(ctx context.Context, name string) (Item, error) {
	item := Item{ID: uuid.NewString(), Name: name, CreatedAt: c.now().UTC()}
	if err := c.store.Add(item); err != nil {
		return Item{}, err
	}
	c.auditor.ItemCreated(ctx, item)
	return item, nil
}

func (c *Catalog) List(context.Context) []Item {
	return c.store.List()
}

var (
	storeKey   = di.NewKey[*ItemStore]("store")
	auditorKey = di.NewKey[*Auditor]("auditor")
	catalogKey = di.NewKey[*Catalog]("catalog")
	httpKey    = di.NewKey[*server.Server]("http")
)

var (
	catalogSchema = di.MustSchema(storeKey, auditorKey, catalogKey, httpKey)
	builder       = di.NewBuilder(catalogSchema)

	// routeServices is what the HTTP layer may see of the container.
	routeServices = builder.MustProjectionSelector(di.Select(catalogKey))
)

// setupServices declares the catalog services. Nothing is constructed
// until first use.
func setupServices(cfg *CatalogConfig, log *logger.Logger) di.SetupFunc {
	return func(_ context.Context, c *di.Container) (*di.Container, error) {
		logger.RegisterDefaults(log, "audit")

		openStore := func(context.Context, *di.Container) (*ItemStore, error) {
			return NewItemStore(cfg.Store.MaxItems), nil
		}
		di.Declare(c, storeKey,
			resilience.TimeoutFactory(cfg.Store.OpenTimeout, resilience.RetryFactory(resilience.DefaultRetryConfig(), openStore)),
			func(ctx context.Context, s *ItemStore) error { return s.Close(ctx) },
		)

		di.Declare(c, auditorKey, func(context.Context, *di.Container) (*Auditor, error) {
			return NewAuditor(logger.Get("audit")), nil
		})

		di.Declare(c, catalogKey, func(ctx context.Context, c *di.Container) (*Catalog, error) {
			store, err := di.Resolve(ctx, c, storeKey)
			if err != nil {
				return nil, err
			}
			auditor, err := di.Resolve(ctx, c, auditorKey)
			if err != nil {
				return nil, err
			}
			return NewCatalog(store, auditor), nil
		})

		di.Declare(c, httpKey, func(ctx context.Context, c *di.Container) (*server.Server, error) {
			services, err := c.GetProjection(ctx, routeServices)
			if err != nil {
				return nil, err
			}
			catalog, _ := di.Lookup(services, catalogKey)

			srv := server.New(cfg.Server, log)
			registerRoutes(srv.Engine(), catalog, cfg.Server.AuthToken)
			return srv, nil
		})

		return c, nil
	}
}
