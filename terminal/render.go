package terminal

import (
	"strconv"
	"strings"

	"github.com/gdamore/tcell/v2"

	"github.com/vincent-heng/goblin-clicker/bot/util"
	"github.com/vincent-heng/goblin-clicker/engine"
)

const hpBarWidth = 30

var goblinArt = []string{
	`  .-"""-.  `,
	` / o   o \ `,
	`|    ^    |`,
	` \ '---' / `,
	`  '-...-'  `,
}

var (
	styleTitle    = tcell.StyleDefault.Foreground(tcell.ColorYellow).Bold(true)
	styleStats    = tcell.StyleDefault.Foreground(tcell.ColorWhite)
	styleID       = tcell.StyleDefault.Foreground(tcell.ColorGray)
	styleGoblin   = tcell.StyleDefault.Foreground(tcell.ColorGreen)
	styleDefeated = tcell.StyleDefault.Foreground(tcell.ColorGray)
	styleHP       = tcell.StyleDefault.Foreground(tcell.ColorRed)
	styleMessage  = tcell.StyleDefault.Foreground(tcell.ColorAqua)
	styleShopOn   = tcell.StyleDefault.Foreground(tcell.ColorLime).Bold(true)
	styleShopOff  = tcell.StyleDefault.Foreground(tcell.ColorGray).Dim(true)
	styleHelp     = tcell.StyleDefault.Foreground(tcell.ColorGray)
)

type line struct {
	text  string
	style tcell.Style
}

// frame is a laid out screen. Goblin rows are the clickable area.
type frame struct {
	lines       []line
	goblinFirst int
	goblinLast  int
}

func layout(st engine.State, message string) frame {
	var f frame
	add := func(text string, style tcell.Style) {
		f.lines = append(f.lines, line{text: text, style: style})
	}

	s := st.Session
	m := st.Monster

	add("Gobelin Clicker", styleTitle)
	add("", styleStats)
	add("Or : "+strconv.Itoa(s.Gold)+"   Niveau : "+strconv.Itoa(s.Level)+
		"   Dégâts par clic : "+strconv.Itoa(s.ClickDamage), styleStats)
	if st.PlayerID != "" {
		add("ID : "+st.PlayerID, styleID)
	}
	add("", styleStats)

	goblin := styleGoblin
	if !m.Alive() {
		goblin = styleDefeated
	}
	f.goblinFirst = len(f.lines)
	add("Gobelin Niv. "+strconv.Itoa(m.Level), goblin)
	for _, art := range goblinArt {
		add(art, goblin)
	}
	add("["+util.HPBar(m.HPPercent(), hpBarWidth)+"]", styleHP)
	add(strconv.Itoa(m.DisplayHP())+" / "+strconv.Itoa(m.MaxHP)+" HP", styleHP)
	f.goblinLast = len(f.lines) - 1

	add("", styleStats)
	add(message, styleMessage)
	add("", styleStats)

	shop := styleShopOff
	if st.UpgradeAffordable() {
		shop = styleShopOn
	}
	add("[u] Clic renforcé (+1 dégât) - "+strconv.Itoa(s.UpgradeCost)+" or", shop)
	add("", styleStats)
	add("[espace] frapper  [u] acheter  [r] recommencer  [q] quitter", styleHelp)

	return f
}

// top returns the first row so that the frame is vertically centered
func (f frame) top(height int) int {
	y := (height - len(f.lines)) / 2
	if y < 0 {
		return 0
	}
	return y
}

func draw(screen tcell.Screen, f frame) {
	screen.Clear()
	width, height := screen.Size()

	y := f.top(height)
	for _, l := range f.lines {
		if y >= height {
			break
		}
		drawCentered(screen, y, width, l)
		y++
	}
	screen.Show()
}

func drawCentered(screen tcell.Screen, y, width int, l line) {
	runes := []rune(l.text)
	x := (width - len(runes)) / 2
	if x < 0 {
		x = 0
	}
	for _, r := range runes {
		if x >= width {
			return
		}
		screen.SetContent(x, y, r, nil, l.style)
		x++
	}
}

// messageFor is the line shown after an engine event
func messageFor(ev engine.Event) (string, bool) {
	switch ev.Type {
	case engine.MonsterSpawned:
		return "Un gobelin Niv. " + strconv.Itoa(ev.State.Monster.Level) + " apparaît !", true
	case engine.MonsterDefeated:
		return "Gobelin vaincu ! Vous gagnez " + strconv.Itoa(ev.GoldEarned) + " or.", true
	case engine.UpgradePurchased:
		return "Clic renforcé acheté ! Dégâts par clic : " + strconv.Itoa(ev.State.Session.ClickDamage), true
	case engine.UpgradeRejected:
		return "Pas assez d'or pour cette amélioration !", true
	case engine.SessionReset:
		return "Nouvelle partie ! Un gobelin Niv. 1 apparaît !", true
	}
	return "", false
}

func (f frame) text() string {
	var sb strings.Builder
	for _, l := range f.lines {
		sb.WriteString(l.text)
		sb.WriteByte('\n')
	}
	return sb.String()
}
