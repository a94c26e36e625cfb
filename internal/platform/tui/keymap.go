package tui

import (
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/vovakirdan/tui-maze/internal/core"
	"github.com/vovakirdan/tui-maze/internal/games/pacman"
	"github.com/vovakirdan/tui-maze/internal/input"
)

// KeyMapper translates Bubble Tea key messages to session actions.
// Movement keys are left to the input dispatcher; the mapper only picks out
// what the host itself acts on.
type KeyMapper struct {
	Game       pacman.KeyMap
	Help       key.Binding
	Screenshot key.Binding
}

// NewKeyMapper creates a key mapper over the game's bindings.
func NewKeyMapper(keys pacman.KeyMap) *KeyMapper {
	return &KeyMapper{
		Game: keys,
		Help: key.NewBinding(
			key.WithKeys("?"),
			key.WithHelp("?", "more"),
		),
		Screenshot: key.NewBinding(
			key.WithKeys("ctrl+s"),
			key.WithHelp("ctrl+s", "screenshot"),
		),
	}
}

// MapKey returns the action bound to msg and whether it is a quit request.
func (km *KeyMapper) MapKey(msg tea.KeyMsg) (action core.Action, isQuit bool) {
	action = km.Game.Action(input.Canonical(msg.String()))
	return action, action == core.ActionQuit
}

// ShortHelp implements help.KeyMap.
func (km *KeyMapper) ShortHelp() []key.Binding {
	return append(km.Game.ShortHelp(), km.Help)
}

// FullHelp implements help.KeyMap.
func (km *KeyMapper) FullHelp() [][]key.Binding {
	return append(km.Game.FullHelp(), []key.Binding{km.Screenshot, km.Help})
}
