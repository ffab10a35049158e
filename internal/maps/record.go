// Package maps persists map records: the seed and styling inputs the
// terrain pipeline needs to rebuild a map, plus a visibility flag for
// sharing.
package maps

import (
	"fmt"

	"github.com/pixil98/go-errors"
)

const (
	StyleVolcanic = "volcanic"
	StyleAshen    = "ashen"

	minMapSize = 100
	maxMapSize = 2000
)

// Record describes one saved map.
type Record struct {
	Name              string  `json:"name"`
	Seed              int64   `json:"seed"`
	Size              int     `json:"size"`
	StylePreset       string  `json:"style_preset"`
	DensityMultiplier float64 `json:"density_multiplier"`
	Public            bool    `json:"public"`
}

// Validate satisfies storage.ValidatingSpec.
func (r *Record) Validate() error {
	el := errors.NewErrorList()

	if r.Name == "" {
		el.Add(fmt.Errorf("name is required"))
	}

	if r.Size < minMapSize || r.Size > maxMapSize {
		el.Add(fmt.Errorf("size %d outside [%d, %d]", r.Size, minMapSize, maxMapSize))
	}

	switch r.StylePreset {
	case StyleVolcanic, StyleAshen:
		// valid
	case "":
		el.Add(fmt.Errorf("style_preset is required (must be %s or %s)", StyleVolcanic, StyleAshen))
	default:
		el.Add(fmt.Errorf("invalid style_preset: %s (must be %s or %s)", r.StylePreset, StyleVolcanic, StyleAshen))
	}

	if r.DensityMultiplier < 0.1 || r.DensityMultiplier > 5 {
		el.Add(fmt.Errorf("density_multiplier %v outside [0.1, 5]", r.DensityMultiplier))
	}

	return el.Err()
}
