package playback

import (
	"github.com/tracklight/replay/internal/roster"
	"github.com/tracklight/replay/pkg/core"
)

// Colors derives the lit-position mapping for one frame. It is a pure
// function of the frame and roster, rebuilt every tick so no stale display
// state can accumulate. When several assignments in a frame name the same
// position, the later one wins, matching draw order.
func Colors(f core.Frame, ros *roster.Roster) map[core.PositionID]core.Color {
	lit := make(map[core.PositionID]core.Color, f.Len())
	for _, a := range f.Assignments {
		lit[a.Position] = ros.Color(a.Entity)
	}
	return lit
}
