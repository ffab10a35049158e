package command

import (
	"fmt"
	"os"

	"github.com/calderagame/caldera/internal/maps"
	"github.com/calderagame/caldera/internal/storage"
)

type MapsConfig struct {
	Path string `json:"path"`

	// Active names the map record driving terrain generation. Empty
	// falls back to the world section's seed.
	Active string `json:"active"`
}

func (c *MapsConfig) Validate() error {
	if c.Path == "" {
		return fmt.Errorf("maps: path is required")
	}
	_, err := os.Stat(c.Path)
	if err != nil {
		return fmt.Errorf("maps: invalid path %q: %w", c.Path, err)
	}

	return nil
}

func (c *MapsConfig) BuildLibrary() (*maps.Library, error) {
	store, err := storage.NewFileStore[*maps.Record](c.Path)
	if err != nil {
		return nil, fmt.Errorf("creating map record store: %w", err)
	}
	return maps.NewLibrary(store), nil
}
