package modeloverlay

import (
	"strings"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/log"

	"github.com/alexmk92/modelpicker/ui/theme"
	"github.com/alexmk92/modelpicker/ui/types"
)

// lockedView is shown once the assistant has answered. The backend needs the
// same model for the whole run, so all the user can do is close it.
type lockedView struct {
	opts   Options
	exited bool
}

func newLockedView(opts Options) *lockedView {
	return &lockedView{opts: opts}
}

func (v *lockedView) init() tea.Cmd {
	return nil
}

func (v *lockedView) update(msg tea.Msg) tea.Cmd {
	keyMsg, ok := msg.(tea.KeyMsg)
	if !ok || !key.Matches(keyMsg, v.opts.Keys.Dismiss) {
		return nil
	}
	if v.exited {
		return nil
	}

	v.exited = true
	log.Debug("Locked model overlay dismissed", "model", v.opts.CurrentModel)
	return callExit(v.opts)
}

func (v *lockedView) render() string {
	var b strings.Builder
	b.WriteString(theme.ErrorStyle.Render("Unable to switch model"))
	b.WriteString("\n")
	b.WriteString("You can only pick a model before the assistant sends its first response. " +
		"To use a different model please start a new chat.")
	b.WriteString("\n")
	b.WriteString(theme.DimStyle.Render("press esc or enter to close"))

	return theme.BoxStyle.Width(boxWidth).Render(b.String())
}

func (v *lockedView) state() types.OverlayState {
	return types.StateLocked
}
