package command

import (
	"fmt"
	"time"

	service "github.com/pixil98/go-service"

	"github.com/calderagame/caldera/internal/driver"
	"github.com/calderagame/caldera/internal/event"
	"github.com/calderagame/caldera/internal/feed"
	"github.com/calderagame/caldera/internal/messaging"
	"github.com/calderagame/caldera/internal/session"
	"github.com/calderagame/caldera/internal/sim"
	"github.com/calderagame/caldera/internal/splash"
)

func BuildWorkers(config interface{}) (service.WorkerList, error) {
	cfg, ok := config.(*Config)
	if !ok {
		return nil, fmt.Errorf("unable to cast config")
	}

	bus := event.NewBus()

	sess := session.New(bus)
	pl := cfg.Player.BuildPlayer()

	// The map library decides which terrain the world generates.
	library, err := cfg.Maps.BuildLibrary()
	if err != nil {
		return nil, fmt.Errorf("creating map library: %w", err)
	}

	worldCfg := cfg.World
	if cfg.Maps.Active != "" {
		_, record, err := library.FindByName(cfg.Maps.Active)
		if err != nil {
			return nil, fmt.Errorf("looking up active map %q: %w", cfg.Maps.Active, err)
		}
		worldCfg.Seed = record.Seed
		worldCfg.Style = record.StylePreset
		worldCfg.Density = record.DensityMultiplier
	}
	w := worldCfg.BuildWorld(bus)

	resolver := splash.NewResolver(sim.NewWorldIndex(w), w,
		splash.WithKillCredit(pl),
		splash.WithPublisher(bus),
	)

	var simOpts []sim.Opt
	if cfg.WaveInterval != "" {
		d, err := time.ParseDuration(cfg.WaveInterval)
		if err != nil {
			return nil, fmt.Errorf("parsing wave_interval: %w", err)
		}
		simOpts = append(simOpts, sim.WithWaveInterval(d))
	}
	simulation := sim.New(sess, pl, w, resolver, simOpts...)

	var driverOpts []driver.GameDriverOpt
	if cfg.TickInterval != "" {
		d, err := time.ParseDuration(cfg.TickInterval)
		if err != nil {
			return nil, fmt.Errorf("parsing tick_interval: %w", err)
		}
		driverOpts = append(driverOpts, driver.WithTickLength(d))
	}
	gameDriver := driver.NewGameDriver([]driver.Manager{simulation}, driverOpts...)

	natsServer, err := cfg.Nats.BuildNatsServer()
	if err != nil {
		return nil, fmt.Errorf("creating nats server: %w", err)
	}

	// Outbound: every bus event mirrored to NATS, raw and as feed
	// lines. Inbound: splash submissions off the wire.
	relay := messaging.NewRelay(bus, natsServer)
	intake := messaging.NewIntake(natsServer, resolver)

	activity := feed.NewFeed(feed.WithSink(func(line string) {
		// Dropped lines are acceptable before the server is up.
		_ = natsServer.Publish(messaging.SubjectFeed, []byte(line))
	}))
	activity.Attach(bus)

	return service.WorkerList{
		"nats":   natsServer,
		"relay":  relay,
		"intake": intake,
		"driver": gameDriver,
	}, nil
}
