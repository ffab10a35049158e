package event

// Topic names published by the state containers. Reactive consumers
// (UI shell, audio triggers, achievement tracking) subscribe to these;
// the messaging relay mirrors them onto NATS subjects.
const (
	TopicSessionChanged = "session.changed"

	TopicEnemySpawned = "enemy.spawned"
	TopicEnemyDied    = "enemy.died"

	TopicWorldEffectExpired = "world.effect.expired"

	TopicObjectDestroyed = "world.object.destroyed"

	TopicAudioZoneEntered = "audio.zone.entered"
	TopicAudioZoneExited  = "audio.zone.exited"

	TopicAtmosphereChanged = "atmosphere.changed"

	TopicSplashResolved = "splash.resolved"
)

// Topics lists every topic the core publishes, in a stable order.
// Used by the relay to mirror the full surface.
func Topics() []string {
	return []string{
		TopicSessionChanged,
		TopicEnemySpawned,
		TopicEnemyDied,
		TopicWorldEffectExpired,
		TopicObjectDestroyed,
		TopicAudioZoneEntered,
		TopicAudioZoneExited,
		TopicAtmosphereChanged,
		TopicSplashResolved,
	}
}
