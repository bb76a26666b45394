package service

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	apperrors "github.com/RodrigoMBrauna/SistemaDeEstoque/internal/errors"
	"github.com/RodrigoMBrauna/SistemaDeEstoque/internal/kv"
	"github.com/RodrigoMBrauna/SistemaDeEstoque/internal/model"
	"github.com/RodrigoMBrauna/SistemaDeEstoque/internal/repository"
)

func newRepos() (repository.ProductRepository, repository.UserRepository, *kv.MemoryStore) {
	store := kv.NewMemoryStore()
	return repository.NewProductRepository(store, nil), repository.NewUserRepository(store, nil), store
}

func TestInitializer_SeedsEmptyStore(t *testing.T) {
	ctx := context.Background()
	products, users, _ := newRepos()
	seeder := NewInitializer(products, users, nil)

	result, err := seeder.Initialize(ctx)
	require.NoError(t, err)
	assert.Equal(t, InitResult{ProductsSeeded: 6, UsersSeeded: 3}, result)

	plist, err := products.List(ctx)
	require.NoError(t, err)
	assert.ElementsMatch(t, BaselineProducts(), plist)

	ulist, err := users.List(ctx)
	require.NoError(t, err)
	assert.ElementsMatch(t, BaselineUsers(), ulist)
}

func TestInitializer_SecondRunIsNoop(t *testing.T) {
	ctx := context.Background()
	products, users, store := newRepos()
	seeder := NewInitializer(products, users, nil)

	_, err := seeder.Initialize(ctx)
	require.NoError(t, err)
	before, err := products.List(ctx)
	require.NoError(t, err)

	result, err := seeder.Initialize(ctx)
	require.NoError(t, err)
	assert.Equal(t, InitResult{}, result)
	assert.Equal(t, 9, store.Len())

	after, err := products.List(ctx)
	require.NoError(t, err)
	assert.ElementsMatch(t, before, after)
}

func TestInitializer_CollectionsAreIndependent(t *testing.T) {
	ctx := context.Background()
	products, users, _ := newRepos()

	custom, err := products.Create(ctx, model.Product{Name: "Único", Quantity: 1})
	require.NoError(t, err)

	result, err := NewInitializer(products, users, nil).Initialize(ctx)
	require.NoError(t, err)
	assert.Equal(t, InitResult{ProductsSeeded: 0, UsersSeeded: 3}, result)

	plist, err := products.List(ctx)
	require.NoError(t, err)
	assert.Equal(t, []model.Product{custom}, plist)
}

func TestInitializer_ConcurrentCalls(t *testing.T) {
	ctx := context.Background()
	products, users, store := newRepos()
	seeder := NewInitializer(products, users, nil)

	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := seeder.Initialize(ctx)
			assert.NoError(t, err)
		}()
	}
	wg.Wait()

	assert.Equal(t, 9, store.Len())
}

// gatedStore holds every scan until release is closed, honouring the
// caller's context while it waits.
type gatedStore struct {
	*kv.MemoryStore
	entered chan struct{}
	release chan struct{}
	once    sync.Once
}

func (s *gatedStore) ScanPrefix(ctx context.Context, prefix string) ([][]byte, error) {
	s.once.Do(func() { close(s.entered) })
	select {
	case <-ctx.Done():
		return nil, ctx.Err()
	case <-s.release:
	}
	return s.MemoryStore.ScanPrefix(ctx, prefix)
}

func TestInitializer_CancelledCallerDoesNotFailOthers(t *testing.T) {
	store := &gatedStore{
		MemoryStore: kv.NewMemoryStore(),
		entered:     make(chan struct{}),
		release:     make(chan struct{}),
	}
	products := repository.NewProductRepository(store, nil)
	users := repository.NewUserRepository(store, nil)
	seeder := NewInitializer(products, users, nil)

	ctxA, cancelA := context.WithCancel(context.Background())
	defer cancelA()
	errA := make(chan error, 1)
	go func() {
		_, err := seeder.Initialize(ctxA)
		errA <- err
	}()
	<-store.entered

	type outcome struct {
		result InitResult
		err    error
	}
	outB := make(chan outcome, 1)
	go func() {
		result, err := seeder.Initialize(context.Background())
		outB <- outcome{result, err}
	}()

	cancelA()
	assert.ErrorIs(t, <-errA, context.Canceled)

	// let the second caller join the in-flight run
	time.Sleep(20 * time.Millisecond)
	close(store.release)

	b := <-outB
	require.NoError(t, b.err)
	assert.Equal(t, InitResult{ProductsSeeded: 6, UsersSeeded: 3}, b.result)
	assert.Equal(t, 9, store.Len())
}

func TestInitializer_CancelledSoleCallerStillCompletesSeed(t *testing.T) {
	store := &gatedStore{
		MemoryStore: kv.NewMemoryStore(),
		entered:     make(chan struct{}),
		release:     make(chan struct{}),
	}
	seeder := NewInitializer(repository.NewProductRepository(store, nil), repository.NewUserRepository(store, nil), nil)

	ctx, cancel := context.WithCancel(context.Background())
	errc := make(chan error, 1)
	go func() {
		_, err := seeder.Initialize(ctx)
		errc <- err
	}()
	<-store.entered
	cancel()
	assert.ErrorIs(t, <-errc, context.Canceled)

	close(store.release)
	assert.Eventually(t, func() bool { return store.Len() == 9 }, time.Second, 5*time.Millisecond)
}

func TestInitializer_StorageFailure(t *testing.T) {
	ctx := context.Background()
	storageErr := apperrors.NewStorageError("scan", "user:", errors.New("connection reset"))

	mockProducts := new(MockProductRepository)
	mockProducts.On("List", mock.Anything).Return([]model.Product{}, nil)
	mockUsers := new(MockUserRepository)
	mockUsers.On("List", mock.Anything).Return(nil, storageErr)

	_, err := NewInitializer(mockProducts, mockUsers, nil).Initialize(ctx)
	assert.ErrorIs(t, err, apperrors.ErrStorage)
	mockProducts.AssertNotCalled(t, "Put", mock.Anything, mock.Anything)
}

func TestInitializer_WriteFailureIsReported(t *testing.T) {
	ctx := context.Background()
	writeErr := apperrors.NewStorageError("set", "product:3", errors.New("disk full"))

	mockProducts := new(MockProductRepository)
	mockProducts.On("List", mock.Anything).Return([]model.Product{}, nil)
	mockProducts.On("Put", mock.Anything, mock.MatchedBy(func(p model.Product) bool { return p.ID != "3" })).Return(nil)
	mockProducts.On("Put", mock.Anything, mock.MatchedBy(func(p model.Product) bool { return p.ID == "3" })).Return(writeErr)
	mockUsers := new(MockUserRepository)
	mockUsers.On("List", mock.Anything).Return([]model.User{{ID: "1"}}, nil)

	result, err := NewInitializer(mockProducts, mockUsers, nil).Initialize(ctx)
	assert.ErrorIs(t, err, apperrors.ErrStorage)
	assert.Equal(t, InitResult{}, result)
	mockProducts.AssertNumberOfCalls(t, "Put", 3)
}
