package command

import (
	"fmt"
	"time"

	"github.com/pixil98/go-errors"
)

type Config struct {
	TickInterval string       `json:"tick_interval"`
	WaveInterval string       `json:"wave_interval"`
	Nats         NatsConfig   `json:"nats"`
	World        WorldConfig  `json:"world"`
	Player       PlayerConfig `json:"player"`
	Maps         MapsConfig   `json:"maps"`
}

func (c *Config) Validate() error {
	el := errors.NewErrorList()

	if c.TickInterval != "" {
		d, err := time.ParseDuration(c.TickInterval)
		if err != nil {
			el.Add(fmt.Errorf("parsing tick_interval: %w", err))
		} else if d <= 0 {
			el.Add(fmt.Errorf("tick_interval must be positive"))
		}
	}

	if c.WaveInterval != "" {
		d, err := time.ParseDuration(c.WaveInterval)
		if err != nil {
			el.Add(fmt.Errorf("parsing wave_interval: %w", err))
		} else if d <= 0 {
			el.Add(fmt.Errorf("wave_interval must be positive"))
		}
	}

	el.Add(c.Nats.Validate())
	el.Add(c.World.Validate())
	el.Add(c.Player.Validate())
	el.Add(c.Maps.Validate())

	return el.Err()
}
