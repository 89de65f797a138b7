package roster

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tracklight/replay/pkg/core"
)

func TestNew_Valid(t *testing.T) {
	r, err := New([]core.Entity{
		{ID: 1, Name: "Max Verstappen", Team: "Red Bull", Color: "#1E41FF"},
		{ID: 44, Name: "Lewis Hamilton", Team: "Mercedes", Color: "#00D2BE"},
	})

	require.NoError(t, err)
	assert.Equal(t, 2, r.Len())
}

func TestNew_Empty(t *testing.T) {
	_, err := New(nil)
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrEmptyRoster)
}

func TestNew_DuplicateID(t *testing.T) {
	_, err := New([]core.Entity{
		{ID: 1, Name: "A"},
		{ID: 1, Name: "B"},
	})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "duplicate")
}

func TestIDs_PreserveOrder(t *testing.T) {
	r, err := New([]core.Entity{
		{ID: 44, Name: "Lewis Hamilton"},
		{ID: 1, Name: "Max Verstappen"},
		{ID: 16, Name: "Charles Leclerc"},
	})
	require.NoError(t, err)

	assert.Equal(t, []core.EntityID{44, 1, 16}, r.IDs())
}

func TestEntity_Lookup(t *testing.T) {
	r, err := New([]core.Entity{
		{ID: 4, Name: "Lando Norris", Team: "McLaren", Color: "#FF8700"},
	})
	require.NoError(t, err)

	e, ok := r.Entity(4)
	require.True(t, ok)
	assert.Equal(t, "Lando Norris", e.Name)
	assert.Equal(t, "McLaren", e.Team)

	_, ok = r.Entity(99)
	assert.False(t, ok)
}

func TestColor_FallsBackToWhite(t *testing.T) {
	r, err := New([]core.Entity{
		{ID: 16, Name: "Charles Leclerc", Color: "#DC0000"},
	})
	require.NoError(t, err)

	assert.Equal(t, core.Color("#DC0000"), r.Color(16))
	assert.Equal(t, core.ColorWhite, r.Color(99))
}

func TestEntities_ReturnsCopy(t *testing.T) {
	r, err := New([]core.Entity{{ID: 1, Name: "Max Verstappen"}})
	require.NoError(t, err)

	got := r.Entities()
	got[0].Name = "changed"

	again := r.Entities()
	assert.Equal(t, "Max Verstappen", again[0].Name)
}

func TestDefaultRoster(t *testing.T) {
	r := DefaultRoster()

	assert.Equal(t, 20, r.Len())

	// Known entries from the 2023 Zandvoort grid.
	ver, ok := r.Entity(1)
	require.True(t, ok)
	assert.Equal(t, "Max Verstappen", ver.Name)

	ham, ok := r.Entity(44)
	require.True(t, ok)
	assert.Equal(t, "Mercedes", ham.Team)

	law, ok := r.Entity(40)
	require.True(t, ok)
	assert.Equal(t, "Liam Lawson", law.Name)

	// Declaration order is ascending racing number for this roster.
	ids := r.IDs()
	assert.Equal(t, core.EntityID(1), ids[0])
	assert.Equal(t, core.EntityID(81), ids[len(ids)-1])
}

func TestParse(t *testing.T) {
	raw := []byte(`{
		"entities": [
			{"id": 1, "name": "Max Verstappen", "team": "Red Bull", "color": "#1E41FF"},
			{"id": 44, "name": "Lewis Hamilton", "team": "Mercedes", "color": "#00D2BE"}
		]
	}`)

	r, err := Parse(raw)
	require.NoError(t, err)
	assert.Equal(t, 2, r.Len())
	assert.Equal(t, core.Color("#00D2BE"), r.Color(44))
}

func TestParse_Malformed(t *testing.T) {
	_, err := Parse([]byte(`{"entities": [`))
	require.Error(t, err)
}

func TestLoadFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "roster.json")
	content := `{"entities": [{"id": 81, "name": "Oscar Piastri", "team": "McLaren", "color": "#FF8700"}]}`
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))

	r, err := LoadFile(path)
	require.NoError(t, err)
	assert.Equal(t, 1, r.Len())
}

func TestLoadFile_Missing(t *testing.T) {
	_, err := LoadFile(filepath.Join(t.TempDir(), "missing.json"))
	require.Error(t, err)
}
