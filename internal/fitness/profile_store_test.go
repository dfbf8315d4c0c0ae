package fitness

import (
	"io"
	"log"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestStore(t *testing.T) (*JSONProfileStore, string) {
	t.Helper()
	path := filepath.Join(t.TempDir(), "profile.json")
	return NewJSONProfileStore(path, log.New(io.Discard, "", 0)), path
}

func TestNewJSONProfileStore_NilLogger(t *testing.T) {
	assert.Panics(t, func() {
		NewJSONProfileStore("x.json", nil)
	})
}

func TestJSONProfileStore_LoadMissingFile(t *testing.T) {
	store, _ := newTestStore(t)

	profile, err := store.Load()
	require.NoError(t, err)
	assert.Nil(t, profile)
}

func TestJSONProfileStore_SaveLoadRoundtrip(t *testing.T) {
	store, _ := newTestStore(t)

	saved := UserProfile{
		Name:              "Ada",
		Age:               30,
		Weight:            70,
		Height:            175,
		Gender:            GenderFemale,
		Level:             LevelIntermediate,
		XP:                350,
		Streak:            4,
		CompletedWorkouts: []string{"beg-1", "int-1"},
		LastWorkoutDate:   "2026-08-29",
		WaterIntake:       750,
		LastWaterDate:     "2026-08-29",
		WorkoutHistory:    []HistoryEntry{{Date: "2026-08-29", Value: 2}},
		WaterHistory:      []HistoryEntry{{Date: "2026-08-29", Value: 750}},
		WeightHistory:     []HistoryEntry{{Date: "2026-08-29", Value: 70}},
	}
	require.NoError(t, store.Save(saved))

	loaded, err := store.Load()
	require.NoError(t, err)
	require.NotNil(t, loaded)
	assert.Equal(t, saved, *loaded)
}

func TestJSONProfileStore_LoadFillsMissingCollections(t *testing.T) {
	store, path := newTestStore(t)

	// An older document without the collection fields
	raw := []byte(`{"schema_version":1,"profile":{"name":"Old","age":40,"weight":80,"height":180,"gender":"male","level":"beginner"}}`)
	require.NoError(t, os.WriteFile(path, raw, 0644))

	loaded, err := store.Load()
	require.NoError(t, err)
	require.NotNil(t, loaded)
	assert.Equal(t, "Old", loaded.Name)
	assert.NotNil(t, loaded.CompletedWorkouts)
	assert.NotNil(t, loaded.WorkoutHistory)
	assert.NotNil(t, loaded.WaterHistory)
	assert.NotNil(t, loaded.WeightHistory)
}

func TestJSONProfileStore_LoadCorruptFile(t *testing.T) {
	store, path := newTestStore(t)
	require.NoError(t, os.WriteFile(path, []byte("not json"), 0644))

	_, err := store.Load()
	assert.Error(t, err)
}

func TestJSONProfileStore_SaveCreatesDirectory(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "deeper", "profile.json")
	store := NewJSONProfileStore(path, log.New(io.Discard, "", 0))

	require.NoError(t, store.Save(UserProfile{Name: "Ada"}))
	_, err := os.Stat(path)
	assert.NoError(t, err)
}

func TestJSONProfileStore_Clear(t *testing.T) {
	store, path := newTestStore(t)
	require.NoError(t, store.Save(UserProfile{Name: "Ada"}))

	require.NoError(t, store.Clear())
	_, err := os.Stat(path)
	assert.True(t, os.IsNotExist(err))

	// Clearing again is not an error
	assert.NoError(t, store.Clear())
}
