package command

import (
	"fmt"

	"github.com/pixil98/go-errors"

	"github.com/calderagame/caldera/internal/player"
)

type PlayerConfig struct {
	MaxHealth float64 `json:"max_health"`
	MaxShield float64 `json:"max_shield"`
}

func (c *PlayerConfig) Validate() error {
	el := errors.NewErrorList()

	if c.MaxHealth < 0 {
		el.Add(fmt.Errorf("max_health must not be negative"))
	}
	if c.MaxShield < 0 {
		el.Add(fmt.Errorf("max_shield must not be negative"))
	}

	return el.Err()
}

func (c *PlayerConfig) BuildPlayer() *player.State {
	var opts []player.Opt
	if c.MaxHealth > 0 {
		opts = append(opts, player.WithMaxHealth(c.MaxHealth))
	}
	if c.MaxShield > 0 {
		opts = append(opts, player.WithMaxShield(c.MaxShield))
	}
	return player.New(opts...)
}
