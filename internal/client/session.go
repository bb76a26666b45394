package client

import (
	"context"
	"fmt"
	"slices"

	"golang.org/x/sync/errgroup"

	"github.com/RodrigoMBrauna/SistemaDeEstoque/internal/model"
	"github.com/RodrigoMBrauna/SistemaDeEstoque/internal/service"
)

// Session holds a local copy of both collections for one operator.
// The cache only changes after the server confirms a mutation or on Reload.
// A Session is not safe for concurrent use.
type Session struct {
	api      *Client
	products []model.Product
	users    []model.User
}

// NewSession creates an empty session. Call Reload to populate it.
func NewSession(api *Client) *Session {
	return &Session{api: api}
}

// Reload fetches both collections. On failure the previous cache is kept.
func (s *Session) Reload(ctx context.Context) error {
	var (
		products []model.Product
		users    []model.User
	)
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		products, err = s.api.ListProducts(gctx, "")
		return err
	})
	g.Go(func() error {
		var err error
		users, err = s.api.ListUsers(gctx, "")
		return err
	})
	if err := g.Wait(); err != nil {
		return fmt.Errorf("reload: %w", err)
	}
	s.products = products
	s.users = users
	return nil
}

// Initialize seeds the server and refreshes the cache.
func (s *Session) Initialize(ctx context.Context) (service.InitResult, error) {
	result, err := s.api.Initialize(ctx)
	if err != nil {
		return result, err
	}
	return result, s.Reload(ctx)
}

// Products returns a copy of the cached catalog.
func (s *Session) Products() []model.Product {
	return slices.Clone(s.products)
}

// Users returns a copy of the cached staff list.
func (s *Session) Users() []model.User {
	return slices.Clone(s.users)
}

// FilterProducts searches the cached catalog by name, SKU or category.
func (s *Session) FilterProducts(term string) []model.Product {
	return service.FilterProducts(s.products, term)
}

// FilterUsers searches the cached staff list by name, email, role or department.
func (s *Session) FilterUsers(term string) []model.User {
	return service.FilterUsers(s.users, term)
}

// Stats summarizes the cached catalog.
func (s *Session) Stats() service.Stats {
	return service.ComputeStats(s.products)
}

// Chart builds the chart series from the cached catalog.
func (s *Session) Chart() []service.ChartPoint {
	return service.BuildChartSeries(s.products)
}

// AddProduct creates a product on the server and then caches it.
func (s *Session) AddProduct(ctx context.Context, p model.Product) (model.Product, error) {
	created, err := s.api.CreateProduct(ctx, p)
	if err != nil {
		return model.Product{}, err
	}
	s.products = append(s.products, created)
	return created, nil
}

// UpdateProduct replaces a product on the server and then in the cache.
func (s *Session) UpdateProduct(ctx context.Context, p model.Product) (model.Product, error) {
	updated, err := s.api.UpdateProduct(ctx, p)
	if err != nil {
		return model.Product{}, err
	}
	s.products = replaceByID(s.products, updated)
	return updated, nil
}

// DeleteProduct removes a product on the server and then from the cache.
func (s *Session) DeleteProduct(ctx context.Context, id string) error {
	if err := s.api.DeleteProduct(ctx, id); err != nil {
		return err
	}
	s.products = removeByID(s.products, id)
	return nil
}

// AddUser creates a user on the server and then caches it.
func (s *Session) AddUser(ctx context.Context, u model.User) (model.User, error) {
	created, err := s.api.CreateUser(ctx, u)
	if err != nil {
		return model.User{}, err
	}
	s.users = append(s.users, created)
	return created, nil
}

// UpdateUser replaces a user on the server and then in the cache.
func (s *Session) UpdateUser(ctx context.Context, u model.User) (model.User, error) {
	updated, err := s.api.UpdateUser(ctx, u)
	if err != nil {
		return model.User{}, err
	}
	s.users = replaceByID(s.users, updated)
	return updated, nil
}

// DeleteUser removes a user on the server and then from the cache.
func (s *Session) DeleteUser(ctx context.Context, id string) error {
	if err := s.api.DeleteUser(ctx, id); err != nil {
		return err
	}
	s.users = removeByID(s.users, id)
	return nil
}

type identified interface {
	EntityID() string
}

func replaceByID[T identified](items []T, item T) []T {
	for i := range items {
		if items[i].EntityID() == item.EntityID() {
			out := slices.Clone(items)
			out[i] = item
			return out
		}
	}
	return append(slices.Clone(items), item)
}

func removeByID[T identified](items []T, id string) []T {
	return slices.DeleteFunc(slices.Clone(items), func(item T) bool {
		return item.EntityID() == id
	})
}
