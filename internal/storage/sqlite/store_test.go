package sqlite

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hammamikhairi/levain/internal/domain"
	"github.com/hammamikhairi/levain/internal/logger"
)

func openTempStore(t *testing.T) *Store {
	t.Helper()
	path := filepath.Join(t.TempDir(), "levain.db")
	store, err := Open(path, logger.New(logger.LevelOff, nil))
	require.NoError(t, err)
	t.Cleanup(func() { _ = store.Close() })
	return store
}

func TestOpenRequiresPath(t *testing.T) {
	t.Parallel()

	_, err := Open("  ", logger.New(logger.LevelOff, nil))
	require.Error(t, err)
}

func TestSaveAndLoad(t *testing.T) {
	t.Parallel()
	store := openTempStore(t)
	ctx := context.Background()

	snap := &domain.Snapshot{
		PresetID: "focaccia",
		Recipe: domain.RecipeForm{
			Mode: "dough", Dough: "1000",
			Hydration: "85", Salt: "2.5", Starter: "15", StarterHydration: "100",
		},
		Temperature: domain.TemperatureForm{Room: "22", Flour: "22", Friction: "2", Target: "26"},
		LevainRatio: "5",
	}
	require.NoError(t, store.Save(ctx, snap))
	require.NotEmpty(t, snap.ID)

	got, err := store.Load(ctx, snap.ID)
	require.NoError(t, err)
	assert.Equal(t, snap.PresetID, got.PresetID)
	assert.Equal(t, snap.Recipe, got.Recipe)
	assert.Equal(t, snap.Temperature, got.Temperature)
	assert.Equal(t, snap.LevainRatio, got.LevainRatio)
	assert.Equal(t, snap.SavedAt.UnixMilli(), got.SavedAt.UnixMilli())
}

func TestSaveOverwrites(t *testing.T) {
	t.Parallel()
	store := openTempStore(t)
	ctx := context.Background()

	snap := &domain.Snapshot{ID: "fixed", Recipe: domain.RecipeForm{Mode: "flour", Flour: "500"}}
	require.NoError(t, store.Save(ctx, snap))

	snap.Recipe.Flour = "750"
	require.NoError(t, store.Save(ctx, snap))

	list, err := store.List(ctx, 0)
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Equal(t, "750", list[0].Recipe.Flour)
}

func TestLatestAndList(t *testing.T) {
	t.Parallel()
	store := openTempStore(t)
	ctx := context.Background()

	_, err := store.Latest(ctx)
	require.ErrorIs(t, err, domain.ErrNotFound)

	base := time.Date(2026, 3, 1, 8, 0, 0, 0, time.UTC)
	for i, flour := range []string{"400", "500", "600"} {
		require.NoError(t, store.Save(ctx, &domain.Snapshot{
			ID:      flour,
			Recipe:  domain.RecipeForm{Mode: "flour", Flour: flour},
			SavedAt: base.Add(time.Duration(i) * time.Minute),
		}))
	}

	latest, err := store.Latest(ctx)
	require.NoError(t, err)
	assert.Equal(t, "600", latest.Recipe.Flour)

	list, err := store.List(ctx, 2)
	require.NoError(t, err)
	require.Len(t, list, 2)
	assert.Equal(t, "600", list[0].ID)
	assert.Equal(t, "500", list[1].ID)

	all, err := store.List(ctx, 0)
	require.NoError(t, err)
	assert.Len(t, all, 3)
}

func TestDelete(t *testing.T) {
	t.Parallel()
	store := openTempStore(t)
	ctx := context.Background()

	require.NoError(t, store.Save(ctx, &domain.Snapshot{ID: "gone"}))
	require.NoError(t, store.Delete(ctx, "gone"))

	_, err := store.Load(ctx, "gone")
	require.ErrorIs(t, err, domain.ErrNotFound)
	require.ErrorIs(t, store.Delete(ctx, "gone"), domain.ErrNotFound)
}

func TestMigrationsAreIdempotent(t *testing.T) {
	t.Parallel()
	path := filepath.Join(t.TempDir(), "levain.db")
	log := logger.New(logger.LevelOff, nil)

	first, err := Open(path, log)
	require.NoError(t, err)
	require.NoError(t, first.Save(context.Background(), &domain.Snapshot{ID: "kept"}))
	require.NoError(t, first.Close())

	second, err := Open(path, log)
	require.NoError(t, err)
	defer second.Close()

	_, err = second.Load(context.Background(), "kept")
	require.NoError(t, err)
}

func TestUpSection(t *testing.T) {
	t.Parallel()

	got := upSection("-- +migrate Up\nCREATE TABLE a (x INT);\n-- +migrate Down\nDROP TABLE a;\n")
	assert.Equal(t, "\nCREATE TABLE a (x INT);\n", got)
	assert.Equal(t, "SELECT 1;", upSection("SELECT 1;"))
}
