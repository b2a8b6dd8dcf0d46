package terminal

import (
	"strings"
	"testing"
	"time"

	"github.com/gdamore/tcell/v2"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vincent-heng/goblin-clicker/engine"
	"github.com/vincent-heng/goblin-clicker/identity"
)

type countingSound struct {
	hits, defeats int
}

func (c *countingSound) Hit()    { c.hits++ }
func (c *countingSound) Defeat() { c.defeats++ }
func (c *countingSound) Close()  {}

func newScreen(t *testing.T) tcell.SimulationScreen {
	t.Helper()
	screen := tcell.NewSimulationScreen("UTF-8")
	require.NoError(t, screen.Init())
	screen.SetSize(80, 30)
	t.Cleanup(screen.Fini)
	return screen
}

func newEngine() *engine.Engine {
	e := engine.New(engine.WithRespawnDelay(time.Hour), engine.WithLogger(zerolog.Nop()))
	e.Start(identity.Static("terminal-player"))
	return e
}

// screenText returns the screen rows with trailing blanks removed
func screenText(screen tcell.SimulationScreen) string {
	width, height := screen.Size()
	rows := make([]string, 0, height)
	for y := 0; y < height; y++ {
		var sb strings.Builder
		for x := 0; x < width; x++ {
			r, _, _, _ := screen.GetContent(x, y)
			if r == 0 {
				r = ' '
			}
			sb.WriteRune(r)
		}
		rows = append(rows, strings.TrimRight(sb.String(), " "))
	}
	return strings.Join(rows, "\n")
}

// run plays inject against a running UI and waits for it to quit
func run(t *testing.T, ui *UI, screen tcell.SimulationScreen, inject func()) {
	t.Helper()
	done := make(chan struct{})
	go func() {
		ui.Run()
		close(done)
	}()

	inject()
	screen.InjectKey(tcell.KeyRune, 'q', tcell.ModNone)

	select {
	case <-done:
	case <-time.After(5 * time.Second):
		t.Fatal("ui did not quit")
	}
}

func TestActionFor(t *testing.T) {
	tests := []struct {
		key  tcell.Key
		r    rune
		want action
	}{
		{tcell.KeyRune, ' ', actionClick},
		{tcell.KeyEnter, 0, actionClick},
		{tcell.KeyRune, 'u', actionBuy},
		{tcell.KeyRune, 'R', actionReset},
		{tcell.KeyRune, 'q', actionQuit},
		{tcell.KeyEscape, 0, actionQuit},
		{tcell.KeyCtrlC, 0, actionQuit},
		{tcell.KeyRune, 'x', actionNone},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, actionFor(tcell.NewEventKey(tt.key, tt.r, tcell.ModNone)), "%v %q", tt.key, tt.r)
	}
}

func TestLayout(t *testing.T) {
	st := engine.State{
		PlayerID: "abc",
		Session:  engine.Session{Level: 3, Gold: 12, ClickDamage: 2, UpgradeCost: 15},
		Monster:  engine.Monster{Level: 3, MaxHP: 80, CurrentHP: -2},
	}

	f := layout(st, "hello")
	text := f.text()
	assert.Contains(t, text, "Or : 12   Niveau : 3   Dégâts par clic : 2")
	assert.Contains(t, text, "ID : abc")
	assert.Contains(t, text, "0 / 80 HP")
	assert.Contains(t, text, "hello")
	assert.Contains(t, text, "- 15 or")

	assert.Equal(t, "Gobelin Niv. 3", f.lines[f.goblinFirst].text)
	assert.Equal(t, "0 / 80 HP", f.lines[f.goblinLast].text)
	assert.Equal(t, styleShopOff, f.lines[len(f.lines)-3].style)

	st.Session.Gold = 15
	assert.Equal(t, styleShopOn, layout(st, "").lines[len(f.lines)-3].style)
}

func TestMessageFor(t *testing.T) {
	msg, ok := messageFor(engine.Event{Type: engine.MonsterDefeated, GoldEarned: 10})
	require.True(t, ok)
	assert.Equal(t, "Gobelin vaincu ! Vous gagnez 10 or.", msg)

	msg, ok = messageFor(engine.Event{
		Type:  engine.UpgradePurchased,
		State: engine.State{Session: engine.Session{ClickDamage: 3}},
	})
	require.True(t, ok)
	assert.Equal(t, "Clic renforcé acheté ! Dégâts par clic : 3", msg)

	_, ok = messageFor(engine.Event{Type: engine.MonsterHit})
	assert.False(t, ok)
}

func TestRunClicks(t *testing.T) {
	screen := newScreen(t)
	eng := newEngine()
	snd := &countingSound{}
	ui := New(screen, eng, snd)

	run(t, ui, screen, func() {
		for i := 0; i < 5; i++ {
			screen.InjectKey(tcell.KeyRune, ' ', tcell.ModNone)
		}
		screen.InjectKey(tcell.KeyRune, 'u', tcell.ModNone)
	})

	st := eng.Snapshot()
	assert.Equal(t, 55, st.Monster.CurrentHP)
	assert.Equal(t, 1, st.Session.ClickDamage)
	assert.Equal(t, 5, snd.hits)

	text := screenText(screen)
	assert.Contains(t, text, "55 / 60 HP")
	assert.Contains(t, text, "Pas assez d'or pour cette amélioration !")
}

func TestRunDefeat(t *testing.T) {
	screen := newScreen(t)
	eng := newEngine()
	snd := &countingSound{}
	ui := New(screen, eng, snd)

	run(t, ui, screen, func() {
		for i := 0; i < 60; i++ {
			screen.InjectKey(tcell.KeyEnter, 0, tcell.ModNone)
		}
	})

	st := eng.Snapshot()
	assert.False(t, st.Monster.Alive())
	assert.Equal(t, 5, st.Session.Gold)
	assert.Equal(t, 1, snd.defeats)
	assert.Contains(t, screenText(screen), "Gobelin vaincu ! Vous gagnez 5 or.")
}

func TestRunMouseClickOnGoblin(t *testing.T) {
	screen := newScreen(t)
	eng := newEngine()
	ui := New(screen, eng, nil)

	f := layout(eng.Snapshot(), ui.message)
	_, height := screen.Size()
	goblinRow := f.top(height) + f.goblinFirst + 2

	run(t, ui, screen, func() {
		screen.InjectMouse(40, goblinRow, tcell.Button1, tcell.ModNone)
		screen.InjectMouse(40, 0, tcell.Button1, tcell.ModNone)
		screen.InjectMouse(40, goblinRow, tcell.ButtonNone, tcell.ModNone)
	})

	assert.Equal(t, 59, eng.Snapshot().Monster.CurrentHP)
}

func TestRunMouseDragCountsOneClick(t *testing.T) {
	screen := newScreen(t)
	eng := newEngine()
	ui := New(screen, eng, nil)

	f := layout(eng.Snapshot(), ui.message)
	_, height := screen.Size()
	goblinRow := f.top(height) + f.goblinFirst + 2

	run(t, ui, screen, func() {
		screen.InjectMouse(40, goblinRow, tcell.Button1, tcell.ModNone)
		for x := 31; x < 40; x++ {
			screen.InjectMouse(x, goblinRow, tcell.Button1, tcell.ModNone)
		}
		screen.InjectMouse(30, goblinRow, tcell.ButtonNone, tcell.ModNone)
		// a second press after the release is a new click
		screen.InjectMouse(30, goblinRow, tcell.Button1, tcell.ModNone)
	})

	assert.Equal(t, 58, eng.Snapshot().Monster.CurrentHP)
}

func TestRunReset(t *testing.T) {
	screen := newScreen(t)
	eng := newEngine()
	ui := New(screen, eng, nil)

	run(t, ui, screen, func() {
		screen.InjectKey(tcell.KeyRune, ' ', tcell.ModNone)
		screen.InjectKey(tcell.KeyRune, 'r', tcell.ModNone)
	})

	assert.Equal(t, 60, eng.Snapshot().Monster.CurrentHP)
	assert.Contains(t, screenText(screen), "Nouvelle partie !")
}
