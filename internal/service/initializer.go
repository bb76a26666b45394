package service

import (
	"context"
	"fmt"
	"log/slog"

	"golang.org/x/sync/errgroup"
	"golang.org/x/sync/singleflight"

	"github.com/RodrigoMBrauna/SistemaDeEstoque/internal/model"
	"github.com/RodrigoMBrauna/SistemaDeEstoque/internal/repository"
)

// InitResult reports how many baseline records each collection received.
type InitResult struct {
	ProductsSeeded int `json:"productsSeeded"`
	UsersSeeded    int `json:"usersSeeded"`
}

// Initializer seeds empty collections with baseline data.
type Initializer interface {
	Initialize(ctx context.Context) (InitResult, error)
}

type initializer struct {
	products repository.ProductRepository
	users    repository.UserRepository
	logger   *slog.Logger
	group    singleflight.Group
}

// NewInitializer creates the seeding routine.
func NewInitializer(products repository.ProductRepository, users repository.UserRepository, logger *slog.Logger) Initializer {
	if logger == nil {
		logger = slog.Default()
	}
	return &initializer{products: products, users: users, logger: logger}
}

// Initialize writes the baseline set into each collection that is empty and
// leaves populated collections untouched.
//
// Overlapping calls in this process share one run. The run is detached from
// the caller's cancellation so one caller going away neither fails the others
// nor leaves a collection half seeded; a cancelled caller stops waiting and
// the run completes in the background. Separate processes can still both
// observe an empty collection and both write; because the baseline ids are
// fixed the second write lands on the same keys.
func (s *initializer) Initialize(ctx context.Context) (InitResult, error) {
	ch := s.group.DoChan("initialize", func() (any, error) {
		return s.seed(context.WithoutCancel(ctx))
	})
	select {
	case <-ctx.Done():
		return InitResult{}, ctx.Err()
	case res := <-ch:
		if res.Err != nil {
			return InitResult{}, res.Err
		}
		return res.Val.(InitResult), nil
	}
}

func (s *initializer) seed(ctx context.Context) (InitResult, error) {
	var (
		products []model.Product
		users    []model.User
	)
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		products, err = s.products.List(gctx)
		return err
	})
	g.Go(func() error {
		var err error
		users, err = s.users.List(gctx)
		return err
	})
	if err := g.Wait(); err != nil {
		return InitResult{}, fmt.Errorf("initialize: %w", err)
	}

	var result InitResult
	if len(products) == 0 {
		for _, p := range BaselineProducts() {
			if err := s.products.Put(ctx, p); err != nil {
				return result, fmt.Errorf("initialize: seed product %s: %w", p.ID, err)
			}
			result.ProductsSeeded++
		}
	}
	if len(users) == 0 {
		for _, u := range BaselineUsers() {
			if err := s.users.Put(ctx, u); err != nil {
				return result, fmt.Errorf("initialize: seed user %s: %w", u.ID, err)
			}
			result.UsersSeeded++
		}
	}

	s.logger.Info("initialization finished",
		slog.Int("products_seeded", result.ProductsSeeded),
		slog.Int("users_seeded", result.UsersSeeded))
	return result, nil
}
