package roster

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/tracklight/replay/pkg/core"
)

// rosterFile is the on-disk roster format.
type rosterFile struct {
	Entities []core.Entity `json:"entities"`
}

// LoadFile reads a roster from a JSON file. A missing or unreadable file is
// a startup input error and aborts initialization.
func LoadFile(path string) (*Roster, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading roster file: %w", err)
	}
	roster, err := Parse(raw)
	if err != nil {
		return nil, fmt.Errorf("roster file %s: %w", path, err)
	}
	return roster, nil
}

// Parse builds a roster from raw JSON.
func Parse(raw []byte) (*Roster, error) {
	var rf rosterFile
	if err := json.Unmarshal(raw, &rf); err != nil {
		return nil, fmt.Errorf("parsing roster: %w", err)
	}
	return New(rf.Entities)
}
