package terminal

import (
	"sync"

	"github.com/gdamore/tcell/v2"
	"github.com/rs/zerolog/log"

	"github.com/vincent-heng/goblin-clicker/engine"
	"github.com/vincent-heng/goblin-clicker/sound"
)

type action int

const (
	actionNone action = iota
	actionClick
	actionBuy
	actionReset
	actionQuit
)

// UI plays one engine session on a terminal screen
type UI struct {
	screen tcell.Screen
	engine *engine.Engine
	sound  sound.Player

	message string
	frame   frame
	buttons tcell.ButtonMask

	mu      sync.Mutex
	pending []engine.Event
}

// New wires a UI. The screen must already be initialized.
func New(screen tcell.Screen, eng *engine.Engine, snd sound.Player) *UI {
	if snd == nil {
		snd = sound.Silent{}
	}
	return &UI{
		screen:  screen,
		engine:  eng,
		sound:   snd,
		message: "Frappez le gobelin pour commencer !",
	}
}

func actionFor(ev *tcell.EventKey) action {
	switch ev.Key() {
	case tcell.KeyEscape, tcell.KeyCtrlC:
		return actionQuit
	case tcell.KeyEnter:
		return actionClick
	case tcell.KeyRune:
		switch ev.Rune() {
		case ' ':
			return actionClick
		case 'u', 'U':
			return actionBuy
		case 'r', 'R':
			return actionReset
		case 'q', 'Q':
			return actionQuit
		}
	}
	return actionNone
}

// Run handles input until the player quits
func (u *UI) Run() {
	u.screen.EnableMouse()

	unsubscribe := u.engine.Subscribe(func(ev engine.Event) {
		u.mu.Lock()
		u.pending = append(u.pending, ev)
		u.mu.Unlock()
		// any queued event wakes the loop, a full queue is fine
		_ = u.screen.PostEvent(tcell.NewEventInterrupt(nil))
	})
	defer unsubscribe()

	u.redraw()
	for {
		ev := u.screen.PollEvent()
		if ev == nil {
			return
		}

		if !u.handle(ev) {
			return
		}
		u.drainEvents()
		u.redraw()
	}
}

func (u *UI) handle(ev tcell.Event) bool {
	switch ev := ev.(type) {
	case *tcell.EventKey:
		return u.do(actionFor(ev))
	case *tcell.EventMouse:
		pressed := ev.Buttons()&tcell.Button1 != 0 && u.buttons&tcell.Button1 == 0
		u.buttons = ev.Buttons()
		if !pressed {
			// release, motion or drag with the button held
			return true
		}
		_, y := ev.Position()
		_, height := u.screen.Size()
		top := u.frame.top(height)
		if y >= top+u.frame.goblinFirst && y <= top+u.frame.goblinLast {
			return u.do(actionClick)
		}
	case *tcell.EventResize:
		u.screen.Sync()
	}
	return true
}

func (u *UI) do(a action) bool {
	switch a {
	case actionQuit:
		log.Info().Msg("player quit")
		return false
	case actionClick:
		u.engine.ApplyClick()
	case actionBuy:
		// rejection is reported through the UpgradeRejected event
		_, _ = u.engine.PurchaseUpgrade()
	case actionReset:
		u.engine.Reset()
	}
	return true
}

func (u *UI) drainEvents() {
	u.mu.Lock()
	events := u.pending
	u.pending = nil
	u.mu.Unlock()

	for _, ev := range events {
		switch ev.Type {
		case engine.MonsterHit:
			u.sound.Hit()
		case engine.MonsterDefeated:
			u.sound.Defeat()
		}
		if msg, ok := messageFor(ev); ok {
			u.message = msg
		}
	}
}

func (u *UI) redraw() {
	u.frame = layout(u.engine.Snapshot(), u.message)
	draw(u.screen, u.frame)
}
