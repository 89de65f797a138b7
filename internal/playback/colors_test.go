package playback

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tracklight/replay/internal/roster"
	"github.com/tracklight/replay/pkg/core"
)

func testRosterColors(t *testing.T) *roster.Roster {
	t.Helper()
	ros, err := roster.New([]core.Entity{
		{ID: 44, Name: "Lewis Hamilton", Team: "Mercedes", Color: "#00D2BE"},
		{ID: 16, Name: "Charles Leclerc", Team: "Ferrari", Color: "#DC0000"},
	})
	require.NoError(t, err)
	return ros
}

func TestColorsMapsAssignments(t *testing.T) {
	f := core.NewFrame([]core.Assignment{
		{Entity: 44, Position: 7},
		{Entity: 16, Position: 12},
	})

	lit := Colors(f, testRosterColors(t))
	require.Len(t, lit, 2)
	assert.Equal(t, core.Color("#00D2BE"), lit[7])
	assert.Equal(t, core.Color("#DC0000"), lit[12])
}

func TestColorsUnknownEntityFallsBackToWhite(t *testing.T) {
	f := core.NewFrame([]core.Assignment{{Entity: 99, Position: 3}})

	lit := Colors(f, testRosterColors(t))
	assert.Equal(t, core.ColorWhite, lit[3])
}

func TestColorsLaterAssignmentWins(t *testing.T) {
	f := core.NewFrame([]core.Assignment{
		{Entity: 44, Position: 5},
		{Entity: 16, Position: 5},
	})

	lit := Colors(f, testRosterColors(t))
	require.Len(t, lit, 1)
	assert.Equal(t, core.Color("#DC0000"), lit[5])
}

func TestColorsEmptyFrame(t *testing.T) {
	lit := Colors(core.Frame{}, testRosterColors(t))
	assert.Empty(t, lit)
}
