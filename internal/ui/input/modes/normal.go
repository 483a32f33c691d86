package modes

import (
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"hunterprice/internal/ui/input/types"
)

type NormalMode struct {
	lastKeyWasG bool
	lastGTime   time.Time
}

func NewNormalMode() *NormalMode {
	return &NormalMode{}
}

func (m *NormalMode) Name() string {
	return "normal"
}

func (m *NormalMode) Enter(ctx types.Context) []types.Action {
	return nil
}

func (m *NormalMode) Exit(ctx types.Context) []types.Action {
	return nil
}

func (m *NormalMode) HandleKey(msg tea.KeyMsg, ctx types.Context) ([]types.Action, bool) {
	switch msg.Type {
	case tea.KeyCtrlC:
		return []types.Action{types.QuitAction{Force: true}}, true

	case tea.KeyUp:
		return []types.Action{types.NavigateAction{Direction: "up"}}, true

	case tea.KeyDown:
		return []types.Action{types.NavigateAction{Direction: "down"}}, true

	case tea.KeyLeft, tea.KeyShiftTab:
		return []types.Action{types.NavigateAction{Direction: "left"}}, true

	case tea.KeyRight, tea.KeyTab:
		return []types.Action{types.NavigateAction{Direction: "right"}}, true

	case tea.KeyPgUp:
		return []types.Action{types.NavigateAction{Direction: "pageup"}}, true

	case tea.KeyPgDown:
		return []types.Action{types.NavigateAction{Direction: "pagedown"}}, true

	case tea.KeyHome:
		return []types.Action{types.NavigateAction{Direction: "home"}}, true

	case tea.KeyEnd:
		return []types.Action{types.NavigateAction{Direction: "end"}}, true

	case tea.KeyEnter:
		if ctx.TotalItems() > 0 {
			return []types.Action{types.OpenAction{}}, true
		}
		return nil, false

	case tea.KeyEsc, tea.KeyBackspace:
		if ctx.Screen() == types.ScreenHome {
			return nil, true
		}
		return []types.Action{types.BackAction{}}, true
	}

	switch msg.String() {
	case "j":
		return []types.Action{types.NavigateAction{Direction: "down"}}, true

	case "k":
		return []types.Action{types.NavigateAction{Direction: "up"}}, true

	case "/", "s":
		return []types.Action{types.ChangeModeAction{Mode: types.ModeSearch}}, true

	case "c":
		return []types.Action{types.ShowScreenAction{Screen: types.ScreenCategories}}, true

	case "F":
		return []types.Action{types.ShowScreenAction{Screen: types.ScreenFavorites}}, true

	case "1", "2", "3", "4", "5":
		digit := int(msg.String()[0] - '0')
		switch ctx.Screen() {
		case types.ScreenProduct:
			return []types.Action{types.RateAction{Stars: digit}}, true
		case types.ScreenCategories:
			return []types.Action{types.SelectTabAction{Index: digit - 1}}, true
		}
		return nil, true

	case "f":
		if ctx.Screen() == types.ScreenProduct {
			return []types.Action{types.ToggleLikeAction{}}, true
		}
		return nil, true

	case "h", "H":
		switch ctx.Screen() {
		case types.ScreenProduct, types.ScreenCategories:
			return []types.Action{types.PriceHistoryAction{}}, true
		}
		return nil, true

	case "r":
		return []types.Action{types.ReloadAction{}}, true

	case "?":
		return []types.Action{types.ToggleHelpAction{}}, true

	case "q":
		return []types.Action{types.QuitAction{Force: false}}, true

	case "g":
		if m.lastKeyWasG && time.Since(m.lastGTime) < 500*time.Millisecond {
			// gg - go to top (within timeout)
			m.lastKeyWasG = false
			return []types.Action{types.NavigateAction{Direction: "home"}}, true
		}
		m.lastKeyWasG = true
		m.lastGTime = time.Now()
		return nil, true

	case "G":
		m.lastKeyWasG = false
		return []types.Action{types.NavigateAction{Direction: "end"}}, true

	default:
		// Any other key cancels the 'g' prefix
		m.lastKeyWasG = false
	}

	return nil, false
}
