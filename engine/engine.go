package engine

import (
	"fmt"
	"sync"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/vincent-heng/goblin-clicker/identity"
)

// DefaultRespawnDelay leaves time to read the defeat message before the next goblin shows up
const DefaultRespawnDelay = time.Second

// Engine owns one player session and its current monster.
// It is safe for concurrent use: respawns run on the scheduler goroutine.
type Engine struct {
	mu        sync.Mutex
	scheduler Scheduler
	delay     time.Duration
	logger    zerolog.Logger

	player     identity.Provider
	started    bool
	session    Session
	monster    Monster
	pending    Timer
	generation uint64

	lmu       sync.Mutex
	listeners []subscription
	nextSub   int

	qmu        sync.Mutex
	queue      []Event
	delivering bool
}

type subscription struct {
	id int
	fn Listener
}

// Option configures an Engine
type Option func(*Engine)

// WithRespawnDelay sets the pause between a defeat and the next spawn
func WithRespawnDelay(d time.Duration) Option {
	return func(e *Engine) {
		if d >= 0 {
			e.delay = d
		}
	}
}

// WithScheduler replaces the runtime timers. f must not be run before AfterFunc returns.
func WithScheduler(s Scheduler) Option {
	return func(e *Engine) {
		if s != nil {
			e.scheduler = s
		}
	}
}

// WithLogger sets the base logger
func WithLogger(l zerolog.Logger) Option {
	return func(e *Engine) {
		e.logger = l
	}
}

// New creates an engine with a fresh session. No monster exists until Start.
func New(opts ...Option) *Engine {
	e := &Engine{
		scheduler: RealClock(),
		delay:     DefaultRespawnDelay,
		logger:    log.Logger,
		session:   NewSession(),
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Subscribe registers l for every future event. The returned func removes it.
func (e *Engine) Subscribe(l Listener) func() {
	e.lmu.Lock()
	defer e.lmu.Unlock()

	e.nextSub++
	id := e.nextSub
	e.listeners = append(e.listeners, subscription{id: id, fn: l})

	return func() {
		e.lmu.Lock()
		defer e.lmu.Unlock()
		for i := range e.listeners {
			if e.listeners[i].id == id {
				e.listeners = append(e.listeners[:i], e.listeners[i+1:]...)
				return
			}
		}
	}
}

// Start spawns the first monster once the player is ready. A missing or not
// ready provider is replaced by an anonymous one. Calling Start twice is a no-op.
func (e *Engine) Start(p identity.Provider) State {
	p = identity.OrAnonymous(p)

	e.mu.Lock()
	if e.started {
		st := e.stateLocked()
		e.mu.Unlock()
		return st
	}
	e.started = true
	e.player = p
	e.logger = e.logger.With().Str("player", p.ID()).Logger()
	e.monster = SpawnMonster(e.session.Level)
	ev := e.eventLocked(MonsterSpawned)
	e.queueLocked(ev)
	e.mu.Unlock()

	e.logger.Info().Int("level", ev.State.Monster.Level).Msg("session started")
	e.flush()
	return ev.State
}

// Started reports whether Start was called
func (e *Engine) Started() bool {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.started
}

// Snapshot returns a copy of the current state
func (e *Engine) Snapshot() State {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.stateLocked()
}

// ClickResult describes the outcome of a click
type ClickResult struct {
	Ignored    bool
	Damage     int
	Defeated   bool
	GoldEarned int
	State      State
}

// ApplyClick hits the current monster with the session click damage.
// Clicking a defeated monster, or before Start, is ignored.
func (e *Engine) ApplyClick() ClickResult {
	e.mu.Lock()
	if !e.monster.Alive() {
		st := e.stateLocked()
		e.mu.Unlock()
		return ClickResult{Ignored: true, State: st}
	}

	damage := e.session.ClickDamage
	e.monster.CurrentHP -= damage

	events := []Event{e.eventLocked(MonsterHit)}
	events[0].Damage = damage

	res := ClickResult{Damage: damage}
	if !e.monster.Alive() {
		res.Defeated = true
		res.GoldEarned = GoldFor(e.session.Level)
		e.session.Gold += res.GoldEarned
		e.session.Kills++
		e.scheduleRespawnLocked(e.session.Level + 1)

		defeated := e.eventLocked(MonsterDefeated)
		defeated.GoldEarned = res.GoldEarned
		events = append(events, defeated)
	}
	res.State = e.stateLocked()
	e.queueLocked(events...)
	e.mu.Unlock()

	if res.Defeated {
		e.logger.Info().
			Int("level", res.State.Monster.Level).
			Int("gold_earned", res.GoldEarned).
			Int("gold", res.State.Session.Gold).
			Msg("monster defeated")
	}
	e.flush()
	return res
}

// PurchaseUpgrade buys one point of click damage. Without enough gold it
// returns ErrInsufficientFunds and leaves the session untouched.
func (e *Engine) PurchaseUpgrade() (State, error) {
	e.mu.Lock()
	if !e.session.CanAfford() {
		ev := e.eventLocked(UpgradeRejected)
		e.queueLocked(ev)
		e.mu.Unlock()

		e.logger.Debug().
			Int("gold", ev.State.Session.Gold).
			Int("cost", ev.State.Session.UpgradeCost).
			Msg("upgrade rejected")
		e.flush()
		return ev.State, fmt.Errorf("gold %d, cost %d: %w",
			ev.State.Session.Gold, ev.State.Session.UpgradeCost, ErrInsufficientFunds)
	}

	e.session.Gold -= e.session.UpgradeCost
	e.session.ClickDamage++
	e.session.UpgradeCost = NextUpgradeCost(e.session.UpgradeCost)
	ev := e.eventLocked(UpgradePurchased)
	e.queueLocked(ev)
	e.mu.Unlock()

	e.logger.Info().
		Int("click_damage", ev.State.Session.ClickDamage).
		Int("next_cost", ev.State.Session.UpgradeCost).
		Msg("upgrade purchased")
	e.flush()
	return ev.State, nil
}

// Reset starts the run over. A pending respawn is cancelled.
func (e *Engine) Reset() State {
	e.mu.Lock()
	e.cancelPendingLocked()
	e.session = NewSession()
	if e.started {
		e.monster = SpawnMonster(e.session.Level)
	} else {
		e.monster = Monster{}
	}
	ev := e.eventLocked(SessionReset)
	e.queueLocked(ev)
	e.mu.Unlock()

	e.logger.Info().Msg("session reset")
	e.flush()
	return ev.State
}

// Close cancels a pending respawn. The engine keeps answering reads.
func (e *Engine) Close() {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.cancelPendingLocked()
}

func (e *Engine) scheduleRespawnLocked(level int) {
	generation := e.generation
	e.pending = e.scheduler.AfterFunc(e.delay, func() {
		e.respawn(generation, level)
	})
}

func (e *Engine) respawn(generation uint64, level int) {
	e.mu.Lock()
	if generation != e.generation {
		e.mu.Unlock()
		e.logger.Debug().Int("level", level).Msg("stale respawn dropped")
		return
	}
	e.pending = nil
	e.session.Level = level
	e.monster = SpawnMonster(level)
	ev := e.eventLocked(MonsterSpawned)
	e.queueLocked(ev)
	e.mu.Unlock()

	e.logger.Debug().Int("level", level).Int("hp", ev.State.Monster.MaxHP).Msg("monster spawned")
	e.flush()
}

func (e *Engine) cancelPendingLocked() {
	e.generation++
	if e.pending != nil {
		e.pending.Stop()
		e.pending = nil
	}
}

func (e *Engine) stateLocked() State {
	st := State{
		Session: e.session,
		Monster: e.monster,
	}
	if e.player != nil {
		st.PlayerID = e.player.ID()
	}
	return st
}

func (e *Engine) eventLocked(t EventType) Event {
	return Event{Type: t, State: e.stateLocked()}
}

// queueLocked appends events in the order the state changed. Called with e.mu held.
func (e *Engine) queueLocked(events ...Event) {
	e.qmu.Lock()
	e.queue = append(e.queue, events...)
	e.qmu.Unlock()
}

// flush delivers queued events one at a time, in queue order. Only one goroutine
// delivers at once; the others leave their events to it.
func (e *Engine) flush() {
	e.qmu.Lock()
	if e.delivering {
		e.qmu.Unlock()
		return
	}
	e.delivering = true

	for len(e.queue) > 0 {
		ev := e.queue[0]
		e.queue = e.queue[1:]
		e.qmu.Unlock()

		e.deliver(ev)

		e.qmu.Lock()
	}
	e.delivering = false
	e.qmu.Unlock()
}

func (e *Engine) deliver(ev Event) {
	e.lmu.Lock()
	listeners := make([]Listener, len(e.listeners))
	for i := range e.listeners {
		listeners[i] = e.listeners[i].fn
	}
	e.lmu.Unlock()

	for _, l := range listeners {
		l(ev)
	}
}
