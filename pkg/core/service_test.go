package core_test

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aretw0/notes/pkg/core"
)

// MockRepository implements core.Repository in memory.
// It deliberately does NOT implement core.Locker or core.Watchable.
type MockRepository struct {
	notes   core.Collection
	saves   int
	loadErr error
	saveErr error
}

func (m *MockRepository) Load(ctx context.Context) (core.Collection, error) {
	if m.loadErr != nil {
		return nil, m.loadErr
	}
	out := make(core.Collection, len(m.notes))
	copy(out, m.notes)
	return out, nil
}

func (m *MockRepository) Save(ctx context.Context, c core.Collection) error {
	if m.saveErr != nil {
		return m.saveErr
	}
	m.saves++
	m.notes = append(core.Collection(nil), c...)
	return nil
}

// lockingRepository adds a counting core.Locker to MockRepository.
type lockingRepository struct {
	MockRepository
	locks, unlocks int
}

func (l *lockingRepository) Lock(ctx context.Context) (func(), error) {
	l.locks++
	return func() { l.unlocks++ }, nil
}

func TestService_CRUD(t *testing.T) {
	repo := &MockRepository{}
	service := core.NewService(repo, core.ServiceConfig{})
	ctx := context.TODO()

	// 1. Add
	require.NoError(t, service.Add(ctx, "a", "x"))
	require.NoError(t, service.Add(ctx, "b", "y"))

	// 2. Read
	n, err := service.Read(ctx, "a")
	require.NoError(t, err)
	assert.Equal(t, core.Note{Title: "a", Body: "x"}, n)

	// 3. List
	titles, err := service.List(ctx)
	require.NoError(t, err)
	assert.Equal(t, []string{"a", "b"}, titles)

	// 4. Remove
	removed, err := service.Remove(ctx, "a")
	require.NoError(t, err)
	assert.Equal(t, 1, removed)

	_, err = service.Read(ctx, "a")
	assert.ErrorIs(t, err, core.ErrNotFound)
	assert.Equal(t, 3, repo.saves)
}

func TestService_Add_Duplicate(t *testing.T) {
	repo := &MockRepository{notes: core.Collection{{Title: "Shopping", Body: "Milk"}}}
	service := core.NewService(repo, core.ServiceConfig{})

	err := service.Add(context.TODO(), "Shopping", "Bread")
	require.ErrorIs(t, err, core.ErrDuplicateTitle)
	assert.Zero(t, repo.saves, "duplicate add must not write")
	assert.Equal(t, core.Collection{{Title: "Shopping", Body: "Milk"}}, repo.notes)
}

func TestService_Add_CaseSensitive(t *testing.T) {
	repo := &MockRepository{notes: core.Collection{{Title: "shopping", Body: "Milk"}}}
	service := core.NewService(repo, core.ServiceConfig{})

	require.NoError(t, service.Add(context.TODO(), "Shopping", "Bread"))
	assert.Len(t, repo.notes, 2)
}

func TestService_Add_EmptyStrings(t *testing.T) {
	repo := &MockRepository{}
	service := core.NewService(repo, core.ServiceConfig{})

	require.NoError(t, service.Add(context.TODO(), "", ""))
	n, err := service.Read(context.TODO(), "")
	require.NoError(t, err)
	assert.Equal(t, core.Note{}, n)
}

func TestService_Remove_NotFound(t *testing.T) {
	repo := &MockRepository{notes: core.Collection{{Title: "a", Body: "x"}}}
	service := core.NewService(repo, core.ServiceConfig{})

	removed, err := service.Remove(context.TODO(), "missing")
	require.ErrorIs(t, err, core.ErrNotFound)
	assert.Zero(t, removed)
	assert.Zero(t, repo.saves, "a miss must not write")
}

func TestService_Remove_Duplicates(t *testing.T) {
	// A hand-edited store may hold the same title twice.
	repo := &MockRepository{notes: core.Collection{
		{Title: "dup", Body: "1"},
		{Title: "keep", Body: "k"},
		{Title: "dup", Body: "2"},
	}}
	service := core.NewService(repo, core.ServiceConfig{})

	n, err := service.Read(context.TODO(), "dup")
	require.NoError(t, err)
	assert.Equal(t, "1", n.Body, "first match wins")

	removed, err := service.Remove(context.TODO(), "dup")
	require.NoError(t, err)
	assert.Equal(t, 2, removed)
	assert.Equal(t, core.Collection{{Title: "keep", Body: "k"}}, repo.notes)
}

func TestService_List_Empty(t *testing.T) {
	service := core.NewService(&MockRepository{}, core.ServiceConfig{})

	titles, err := service.List(context.TODO())
	require.NoError(t, err)
	assert.NotNil(t, titles)
	assert.Empty(t, titles)
}

func TestService_SaveFailurePropagates(t *testing.T) {
	diskFull := errors.New("no space left on device")
	repo := &MockRepository{saveErr: diskFull}
	service := core.NewService(repo, core.ServiceConfig{})

	err := service.Add(context.TODO(), "a", "x")
	require.ErrorIs(t, err, diskFull)
	require.ErrorIs(t, err, core.ErrStorageUnwritable)

	repo.notes = core.Collection{{Title: "a"}}
	_, err = service.Remove(context.TODO(), "a")
	require.ErrorIs(t, err, diskFull)
}

func TestService_LoadFailurePropagates(t *testing.T) {
	repo := &MockRepository{loadErr: core.ErrStorageCorrupt}
	service := core.NewService(repo, core.ServiceConfig{})

	_, err := service.List(context.TODO())
	assert.ErrorIs(t, err, core.ErrStorageCorrupt)
	_, err = service.Read(context.TODO(), "a")
	assert.ErrorIs(t, err, core.ErrStorageCorrupt)
	assert.ErrorIs(t, service.Add(context.TODO(), "a", "x"), core.ErrStorageCorrupt)
}

func TestService_ReadOnly(t *testing.T) {
	repo := &MockRepository{notes: core.Collection{{Title: "a", Body: "x"}}}
	service := core.NewService(repo, core.ServiceConfig{ReadOnly: true})

	assert.ErrorIs(t, service.Add(context.TODO(), "b", "y"), core.ErrReadOnly)
	_, err := service.Remove(context.TODO(), "a")
	assert.ErrorIs(t, err, core.ErrReadOnly)

	n, err := service.Read(context.TODO(), "a")
	require.NoError(t, err)
	assert.Equal(t, "x", n.Body)
	assert.Zero(t, repo.saves)
}

func TestService_Locking(t *testing.T) {
	t.Run("Holds Lock Around Mutations", func(t *testing.T) {
		repo := &lockingRepository{}
		service := core.NewService(repo, core.ServiceConfig{Locking: true})

		require.NoError(t, service.Add(context.TODO(), "a", "x"))
		require.ErrorIs(t, service.Add(context.TODO(), "a", "x"), core.ErrDuplicateTitle)
		_, err := service.List(context.TODO())
		require.NoError(t, err)

		assert.Equal(t, 2, repo.locks, "reads do not lock")
		assert.Equal(t, 2, repo.unlocks)
	})

	t.Run("Adapter Without Lock Still Mutates", func(t *testing.T) {
		repo := &MockRepository{}
		service := core.NewService(repo, core.ServiceConfig{Locking: true})

		require.NoError(t, service.Add(context.TODO(), "a", "x"))
		removed, err := service.Remove(context.TODO(), "a")
		require.NoError(t, err)
		assert.Equal(t, 1, removed)
	})
}

func TestService_Watch_Unsupported(t *testing.T) {
	service := core.NewService(&MockRepository{}, core.ServiceConfig{})

	_, err := service.Watch(context.TODO())
	require.Error(t, err)
	assert.Equal(t, "repository does not support watching", err.Error())
}

func TestService_State(t *testing.T) {
	service := core.NewService(&MockRepository{}, core.ServiceConfig{Locking: false})
	require.NoError(t, service.Add(context.TODO(), "a", "x"))

	state, ok := service.State().(core.ServiceState)
	require.True(t, ok)
	assert.Equal(t, "repository", state.RepositoryType)
	assert.Equal(t, 1, state.Loads)
	assert.Equal(t, 1, state.Saves)
	assert.Equal(t, "service", service.ComponentType())
}
