package command

import (
	"fmt"

	"github.com/pixil98/go-errors"

	"github.com/calderagame/caldera/internal/maps"
	"github.com/calderagame/caldera/internal/world"
)

type WorldConfig struct {
	MaxEnemies   int     `json:"max_enemies"`
	GridSize     int     `json:"grid_size"`
	TerrainScale float64 `json:"terrain_scale"`
	Seed         int64   `json:"seed"`

	// Style and Density control asset scattering; both are overridden
	// by the active map record when one is configured.
	Style   string  `json:"style"`
	Density float64 `json:"density"`
}

func (c *WorldConfig) Validate() error {
	el := errors.NewErrorList()

	if c.MaxEnemies < 0 {
		el.Add(fmt.Errorf("max_enemies must not be negative"))
	}
	if c.GridSize < 0 {
		el.Add(fmt.Errorf("grid_size must not be negative"))
	}
	if c.TerrainScale < 0 {
		el.Add(fmt.Errorf("terrain_scale must not be negative"))
	}

	switch c.Style {
	case "", maps.StyleVolcanic, maps.StyleAshen:
	default:
		el.Add(fmt.Errorf("invalid style: %s (must be %s or %s)", c.Style, maps.StyleVolcanic, maps.StyleAshen))
	}
	if c.Density < 0 {
		el.Add(fmt.Errorf("density must not be negative"))
	}

	return el.Err()
}

// BuildWorld constructs the world container, generates its terrain,
// and scatters the style's object mix over it. A zero seed still
// produces deterministic terrain; vary it per run in config when
// variety matters.
func (c *WorldConfig) BuildWorld(pub world.Publisher) *world.State {
	w := world.New(pub, world.Config{
		MaxEnemies:   c.MaxEnemies,
		GridSize:     c.GridSize,
		TerrainScale: c.TerrainScale,
	})

	style := c.Style
	if style == "" {
		style = maps.StyleVolcanic
	}

	w.GenerateTerrain(c.Seed)
	w.ScatterAssets(style, c.Density)
	return w
}
