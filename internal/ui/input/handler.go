package input

import (
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"hunterprice/internal/ui/input/modes"
	"hunterprice/internal/ui/input/types"
)

type Handler struct {
	currentMode types.Mode
	modes       map[types.Mode]types.ModeHandler
	textInput   *textinput.Model // Shared text input for text modes
}

func New() *Handler {
	ti := textinput.New()
	ti.Placeholder = "zapatos, camisa, laptop..."
	ti.CharLimit = 120

	h := &Handler{
		currentMode: types.ModeNormal,
		textInput:   &ti,
		modes:       make(map[types.Mode]types.ModeHandler),
	}

	h.modes[types.ModeNormal] = modes.NewNormalMode()
	h.modes[types.ModeSearch] = modes.NewSearchMode(h.textInput)

	return h
}

func (h *Handler) HandleKey(msg tea.KeyMsg, ctx types.Context) ([]types.Action, tea.Cmd) {
	handler := h.modes[h.currentMode]
	if handler == nil {
		return nil, nil
	}

	actions, consumed := handler.HandleKey(msg, ctx)

	// If not consumed and we're in text mode, we'll handle it below
	if !consumed && !h.isTextMode(h.currentMode) {
		return nil, nil
	}

	var cmd tea.Cmd
	var allActions []types.Action

	for _, action := range actions {
		changeMode, ok := action.(types.ChangeModeAction)
		if !ok {
			allActions = append(allActions, action)
			continue
		}
		allActions = append(allActions, h.switchMode(changeMode, ctx)...)
		if h.isTextMode(h.currentMode) {
			cmd = textinput.Blink
		}
	}

	// If we're in a text mode and didn't handle the key, pass it to text input
	if h.isTextMode(h.currentMode) && !consumed {
		var textCmd tea.Cmd
		*h.textInput, textCmd = h.textInput.Update(msg)
		cmd = textCmd
		// Always append an update action when in text mode to keep view in sync
		allActions = append(allActions, types.UpdateTextAction{Text: h.textInput.Value()})
	}

	return allActions, cmd
}

// switchMode runs the exit and enter hooks of a mode change. Entering a
// text mode reports the initial text so the model can follow it.
func (h *Handler) switchMode(change types.ChangeModeAction, ctx types.Context) []types.Action {
	var actions []types.Action
	if current := h.modes[h.currentMode]; current != nil {
		actions = append(actions, current.Exit(ctx)...)
	}

	h.currentMode = change.Mode

	if next := h.modes[h.currentMode]; next != nil {
		actions = append(actions, next.Enter(ctx)...)
	}

	if h.isTextMode(h.currentMode) {
		if text, ok := change.Data.(string); ok {
			h.textInput.SetValue(text)
			h.textInput.CursorEnd()
		}
		actions = append(actions, types.UpdateTextAction{Text: h.textInput.Value()})
	}
	return actions
}

func (h *Handler) CurrentMode() types.Mode {
	return h.currentMode
}

// ModeName returns the display name of the current mode
func (h *Handler) ModeName() string {
	if mode := h.modes[h.currentMode]; mode != nil {
		return mode.Name()
	}
	return ""
}

func (h *Handler) TextInput() *textinput.Model {
	if h.isTextMode(h.currentMode) {
		return h.textInput
	}
	return nil
}

func (h *Handler) isTextMode(mode types.Mode) bool {
	return mode == types.ModeSearch
}

func (h *Handler) Reset() {
	h.currentMode = types.ModeNormal
	h.textInput.Reset()
	h.textInput.Blur()
}

// Update handles non-keyboard messages for text input
func (h *Handler) Update(msg tea.Msg) tea.Cmd {
	if h.isTextMode(h.currentMode) {
		var cmd tea.Cmd
		*h.textInput, cmd = h.textInput.Update(msg)
		return cmd
	}
	return nil
}

// ChangeMode changes the current input mode outside of key handling
func (h *Handler) ChangeMode(mode types.Mode, data string) tea.Cmd {
	h.currentMode = mode
	if h.isTextMode(mode) {
		h.textInput.Reset()
		h.textInput.SetValue(data)
		h.textInput.CursorEnd()
		h.textInput.Prompt = ""
		return h.textInput.Focus()
	}
	h.textInput.Blur()
	return nil
}
