// Package character derives the companion's render state from its mood,
// the user's toggles and short-lived interaction overlays.
package character

import (
	"log/slog"
	"math"
	"math/rand"
	"time"

	"github.com/diogo/pawsitive/internal/mood"
	"github.com/diogo/pawsitive/internal/timer"
)

// Zone names a clickable part of the character
type Zone string

const (
	ZoneNone     Zone = ""
	ZoneHead     Zone = "head"
	ZoneFur      Zone = "fur"
	ZoneEar      Zone = "ear"
	ZoneHatArea  Zone = "hat-area"
	ZoneNeckArea Zone = "neck-area"
	ZoneTail     Zone = "tail"
	ZoneBody     Zone = "body"
	ZoneMouth    Zone = "mouth"
)

// Event is what a scheduled timer does when it fires
type Event int

const (
	EventBounce Event = iota + 1
	EventBlink
	EventBlinkEnd
	EventPetEnd
	EventTailRevert
	EventEarRevert
)

func (e Event) String() string {
	switch e {
	case EventBounce:
		return "bounce"
	case EventBlink:
		return "blink"
	case EventBlinkEnd:
		return "blink-end"
	case EventPetEnd:
		return "pet-end"
	case EventTailRevert:
		return "tail-revert"
	case EventEarRevert:
		return "ear-revert"
	default:
		return "unknown"
	}
}

// Timer is a delayed event the caller must deliver back through Fire
type Timer struct {
	timer.Request
	Event Event
}

const (
	// mood-scoped timers are dropped whenever the mood changes
	scopeMood timer.Scope = "character/mood"
	scopePet  timer.Scope = "character/pet"
)

// Timing holds the delays and animation constants
type Timing struct {
	BounceDelay     time.Duration
	BlinkMin        time.Duration
	BlinkJitter     time.Duration
	BlinkDuration   time.Duration
	PetDuration     time.Duration
	PetTailDuration time.Duration
	EarDuration     time.Duration
	BreathStep      float64
	BreathAmplitude float64
}

// DefaultTiming returns the standard animation timing
func DefaultTiming() Timing {
	return Timing{
		BounceDelay:     300 * time.Millisecond,
		BlinkMin:        3 * time.Second,
		BlinkJitter:     2 * time.Second,
		BlinkDuration:   200 * time.Millisecond,
		PetDuration:     time.Second,
		PetTailDuration: 2 * time.Second,
		EarDuration:     time.Second,
		BreathStep:      0.01,
		BreathAmplitude: 0.01,
	}
}

// Character is the animation state machine. Mood is the primary state;
// blink, breathing, petting and click-driven flags are overlays.
type Character struct {
	mood   mood.Mood
	timing Timing
	timers *timer.Registry
	rnd    *rand.Rand
	logger *slog.Logger

	flags         Flags
	hat           bool
	bowtie        bool
	petted        bool
	blinking      bool
	blinkInterval time.Duration

	phase float64
	frame uint64
}

// Option configures a Character
type Option func(*Character)

// WithRand sets the random source for blink intervals
func WithRand(r *rand.Rand) Option {
	return func(c *Character) {
		c.rnd = r
	}
}

// WithTiming overrides the animation timing
func WithTiming(t Timing) Option {
	return func(c *Character) {
		c.timing = t
	}
}

// WithRegistry shares a timer registry with other components
func WithRegistry(r *timer.Registry) Option {
	return func(c *Character) {
		c.timers = r
	}
}

// WithLogger sets the logger
func WithLogger(l *slog.Logger) Option {
	return func(c *Character) {
		c.logger = l
	}
}

// WithMood sets the initial mood
func WithMood(m mood.Mood) Option {
	return func(c *Character) {
		c.mood = m
	}
}

// New creates a Character. Call Start to derive the initial flags and arm the
// blink cycle.
func New(opts ...Option) *Character {
	c := &Character{
		mood:   mood.DefaultMood,
		timing: DefaultTiming(),
	}
	for _, opt := range opts {
		opt(c)
	}
	if c.timers == nil {
		c.timers = timer.NewRegistry()
	}
	if c.rnd == nil {
		c.rnd = rand.New(rand.NewSource(time.Now().UnixNano()))
	}
	if c.logger == nil {
		c.logger = slog.Default()
	}
	if !c.mood.Valid() {
		c.mood = mood.DefaultMood
	}
	return c
}

// Start applies the initial mood
func (c *Character) Start() []Timer {
	return c.SetMood(c.mood)
}

// Mood returns the current mood
func (c *Character) Mood() mood.Mood {
	return c.mood
}

// Flags returns the current animation flags
func (c *Character) Flags() Flags {
	return c.flags
}

// BlinkInterval returns the blink period drawn on the last mood change
func (c *Character) BlinkInterval() time.Duration {
	return c.blinkInterval
}

// SetMood switches mood: pending mood timers are canceled, every flag is
// reset and then re-derived, and a new blink cycle starts.
func (c *Character) SetMood(m mood.Mood) []Timer {
	if !m.Valid() {
		m = mood.DefaultMood
	}
	c.timers.CancelScope(scopeMood)
	c.mood = m
	c.flags = Flags{}
	c.blinking = false

	var timers []Timer
	switch m {
	case mood.Happy:
		c.flags.TailWag = true
		c.flags.Panting = true
		timers = append(timers, c.schedule(scopeMood, c.timing.BounceDelay, EventBounce))
	case mood.Excited:
		c.flags = Flags{TailWag: true, EarWiggle: true, Bounce: true, Panting: true}
	case mood.Thinking:
		c.flags.EarWiggle = true
	}

	c.blinkInterval = c.timing.BlinkMin
	if c.timing.BlinkJitter > 0 {
		c.blinkInterval += time.Duration(c.rnd.Int63n(int64(c.timing.BlinkJitter)))
	}
	timers = append(timers, c.schedule(scopeMood, c.blinkInterval, EventBlink))

	c.logger.Debug("character mood set", "mood", m, "blink_interval", c.blinkInterval)
	return timers
}

// Interact handles a click on zone
func (c *Character) Interact(z Zone) []Timer {
	var timers []Timer
	switch z {
	case ZoneHead, ZoneFur:
		c.petted = true
		timers = append(timers, c.schedule(scopePet, c.timing.PetDuration, EventPetEnd))
		if c.mood != mood.Happy {
			c.flags.TailWag = true
			timers = append(timers, c.schedule(scopeMood, c.timing.PetTailDuration, EventTailRevert))
		}
	case ZoneEar:
		c.flags.EarWiggle = true
		timers = append(timers, c.schedule(scopeMood, c.timing.EarDuration, EventEarRevert))
	case ZoneHatArea:
		c.hat = !c.hat
	case ZoneNeckArea:
		c.bowtie = !c.bowtie
	default:
		return nil
	}
	c.logger.Debug("character interaction", "zone", z, "mood", c.mood)
	return timers
}

// Fire delivers an elapsed timer. Canceled timers are ignored.
func (c *Character) Fire(t Timer) []Timer {
	if !c.timers.Fire(t.Handle) {
		return nil
	}

	switch t.Event {
	case EventBounce:
		c.flags.Bounce = true
	case EventBlink:
		c.blinking = true
		return []Timer{
			c.schedule(scopeMood, c.timing.BlinkDuration, EventBlinkEnd),
			c.schedule(scopeMood, c.blinkInterval, EventBlink),
		}
	case EventBlinkEnd:
		c.blinking = false
	case EventPetEnd:
		c.petted = false
	case EventTailRevert:
		if c.mood != mood.Happy {
			c.flags.TailWag = false
		}
	case EventEarRevert:
		if c.mood != mood.Excited && c.mood != mood.Thinking {
			c.flags.EarWiggle = false
		}
	}
	return nil
}

// Frame advances the breathing oscillation by one animation frame
func (c *Character) Frame() {
	c.frame++
	c.phase = math.Mod(c.phase+c.timing.BreathStep, 2*math.Pi)
}

// BreathingScale returns the current breathing multiplier
func (c *Character) BreathingScale() float64 {
	return 1 + math.Sin(c.phase)*c.timing.BreathAmplitude
}

// Stop cancels every pending timer
func (c *Character) Stop() {
	c.timers.CancelScope(scopeMood)
	c.timers.CancelScope(scopePet)
}

// Descriptor derives the render state for the current frame
func (c *Character) Descriptor() Descriptor {
	d := Descriptor{
		Mood:      c.mood,
		Indicator: c.mood.Emoji(),
		Eyes:      eyesFor(c.mood, c.blinking),
		Mouth:     mouthFor(c.mood, c.flags.Panting),
		Tongue:    tongueFor(c.mood, c.flags.Panting),
		Flags:     c.flags,
		Hat:       c.hat,
		Bowtie:    c.bowtie,
		Petted:    c.petted,
		Blinking:  c.blinking,
		Scale:     c.BreathingScale(),
		Phase:     c.phase,
		Frame:     c.frame,
	}
	if c.petted {
		d.HeadOffsetY = 2
	}
	return d
}

func (c *Character) schedule(scope timer.Scope, delay time.Duration, ev Event) Timer {
	return Timer{Request: c.timers.Schedule(scope, delay), Event: ev}
}
