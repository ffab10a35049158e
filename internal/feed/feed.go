// Package feed renders bus events into human-readable activity lines.
// It keeps a bounded history of the most recent lines so overlays and
// debug surfaces can show "what just happened" without replaying the
// bus themselves.
package feed

import (
	"bytes"
	"fmt"
	"strings"
	"sync"
	"text/template"

	"github.com/Masterminds/sprig/v3"
	"github.com/muesli/reflow/wordwrap"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"github.com/calderagame/caldera/internal/event"
)

const (
	DefaultHistory = 50
	DefaultWidth   = 80
)

// templateFuncs provides utility functions for line templates.
var templateFuncs = sprig.TxtFuncMap()

var titler = cases.Title(language.English)

// defaultTemplates maps topics to line templates. Topics without an
// entry fall back to a label-only line.
var defaultTemplates = map[string]string{
	event.TopicSessionChanged:     "session is now {{ .Mode }}",
	event.TopicEnemySpawned:       "enemy {{ .ID | trunc 8 }} spawned",
	event.TopicEnemyDied:          "enemy {{ .ID | trunc 8 }} died",
	event.TopicObjectDestroyed:    "{{ .Type }} destroyed",
	event.TopicWorldEffectExpired: "{{ .Kind }} effect faded",
	event.TopicAudioZoneEntered:   "entered {{ .SoundID }} zone",
	event.TopicAudioZoneExited:    "left {{ .SoundID }} zone",
	event.TopicAtmosphereChanged:  "weather shifted to {{ .Weather }}",
	event.TopicSplashResolved:     "explosion hit {{ .Hits }} target{{ if ne .Hits 1 }}s{{ end }}",
}

// Feed formats events into lines and retains the newest ones.
type Feed struct {
	mu        sync.Mutex
	templates map[string]*template.Template
	lines     []string
	history   int
	sink      func(line string)
}

type FeedOpt func(*Feed)

// WithHistory overrides the number of retained lines.
func WithHistory(n int) FeedOpt {
	return func(f *Feed) {
		if n > 0 {
			f.history = n
		}
	}
}

// WithTemplate replaces or adds the line template for a topic. An
// unparsable template is ignored and the topic keeps its previous
// rendering.
func WithTemplate(topic, tmpl string) FeedOpt {
	return func(f *Feed) {
		parsed, err := template.New(topic).Funcs(templateFuncs).Parse(tmpl)
		if err != nil {
			return
		}
		f.templates[topic] = parsed
	}
}

// WithSink mirrors every recorded line to fn in addition to the
// history. fn runs on the publishing goroutine; keep it fast.
func WithSink(fn func(line string)) FeedOpt {
	return func(f *Feed) { f.sink = fn }
}

func NewFeed(opts ...FeedOpt) *Feed {
	f := &Feed{
		templates: make(map[string]*template.Template, len(defaultTemplates)),
		history:   DefaultHistory,
	}
	for topic, tmpl := range defaultTemplates {
		f.templates[topic] = template.Must(template.New(topic).Funcs(templateFuncs).Parse(tmpl))
	}
	for _, opt := range opts {
		opt(f)
	}
	return f
}

// Attach subscribes the feed to every known topic on the bus and
// returns the handles so the caller can detach later.
func (f *Feed) Attach(bus *event.Bus) []event.Subscription {
	topics := event.Topics()
	subs := make([]event.Subscription, 0, len(topics))
	for _, topic := range topics {
		topic := topic
		subs = append(subs, bus.Subscribe(topic, func(payload any) {
			f.Record(topic, payload)
		}))
	}
	return subs
}

// Record renders one event into a line and appends it to the history.
// Lines wrap at DefaultWidth so consumers can blit them straight into
// a fixed-width overlay.
func (f *Feed) Record(topic string, payload any) {
	line := wordwrap.String(f.render(topic, payload), DefaultWidth)

	f.mu.Lock()
	f.lines = append(f.lines, line)
	if len(f.lines) > f.history {
		f.lines = f.lines[len(f.lines)-f.history:]
	}
	sink := f.sink
	f.mu.Unlock()

	if sink != nil {
		sink(line)
	}
}

func (f *Feed) render(topic string, payload any) string {
	f.mu.Lock()
	tmpl := f.templates[topic]
	f.mu.Unlock()

	if tmpl == nil {
		return Label(topic)
	}

	var buf bytes.Buffer
	if err := tmpl.Execute(&buf, payload); err != nil {
		return fmt.Sprintf("%s: %v", Label(topic), err)
	}
	return buf.String()
}

// Lines returns the retained lines, oldest first.
func (f *Feed) Lines() []string {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := make([]string, len(f.lines))
	copy(out, f.lines)
	return out
}

// Label turns a topic name into a display heading, e.g.
// "enemy.died" becomes "Enemy Died".
func Label(topic string) string {
	return titler.String(strings.ReplaceAll(topic, ".", " "))
}
