package ui

import (
	"fmt"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/log"

	"github.com/alexmk92/modelpicker/ui/modeloverlay"
	"github.com/alexmk92/modelpicker/ui/theme"
)

// Catalog is the model service as the host sees it: what the overlay needs plus
// the recommended check for the idle screen
type Catalog interface {
	modeloverlay.Catalog
	IsRecommended(model string) bool
}

// Options configures the host screen
type Options struct {
	CurrentModel    string
	HasLastResponse bool
	GroupLabel      string
	FetchTimeout    time.Duration
	// OnModelChanged is called after the user picked a model, an error is shown
	// but does not undo the switch.
	OnModelChanged func(model string) error
}

// UIManager is the host screen: it mounts the model overlay, takes the
// selection back and unmounts it again.
type UIManager struct {
	catalog Catalog
	opts    Options

	// Current step in the flow
	currentStep FlowStep

	currentModel string
	changed      bool
	notice       string
	err          error

	overlay *modeloverlay.Overlay

	// Viewport dimensions
	width  int
	height int
}

// FlowStep represents what the host screen is showing
type FlowStep int

const (
	StepOverlay FlowStep = iota
	StepIdle
	StepQuit
)

// Messages from the overlay callbacks
type modelSelectedMsg struct {
	model string
}

type overlayClosedMsg struct{}

// Start creates the host screen with the overlay already open
func Start(catalog Catalog, opts Options) *UIManager {
	return &UIManager{
		catalog:      catalog,
		opts:         opts,
		currentModel: opts.CurrentModel,
		currentStep:  StepOverlay,
	}
}

// Init mounts the overlay
func (u *UIManager) Init() tea.Cmd {
	return u.openOverlay()
}

// Update handles all messages for the host screen
func (u *UIManager) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		u.width = msg.Width
		u.height = msg.Height
		if u.overlay != nil {
			_, cmd := u.overlay.Update(u.overlaySize())
			return u, cmd
		}
		return u, nil

	case tea.KeyMsg:
		if msg.String() == "ctrl+c" {
			u.closeOverlay()
			u.currentStep = StepQuit
			return u, tea.Quit
		}
		if u.currentStep == StepIdle {
			return u.handleIdleKey(msg)
		}

	case modelSelectedMsg:
		return u.handleSelected(msg.model)

	case overlayClosedMsg:
		u.closeOverlay()
		u.currentStep = StepIdle
		return u, nil
	}

	if u.overlay != nil {
		_, cmd := u.overlay.Update(msg)
		return u, cmd
	}
	return u, nil
}

func (u *UIManager) handleIdleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "m":
		u.notice = ""
		u.err = nil
		u.currentStep = StepOverlay
		return u, u.openOverlay()
	case "q", "esc":
		u.currentStep = StepQuit
		return u, tea.Quit
	}
	return u, nil
}

// handleSelected records the new model and closes the overlay, the overlay
// itself never closes on selection.
func (u *UIManager) handleSelected(model string) (tea.Model, tea.Cmd) {
	u.closeOverlay()
	u.currentStep = StepIdle

	if model == u.currentModel {
		u.notice = fmt.Sprintf("Still using %s", model)
		return u, nil
	}

	previous := u.currentModel
	u.currentModel = model
	u.changed = true
	u.notice = fmt.Sprintf("Switched model from %s to %s", previous, model)
	log.Info("Model switched", "from", previous, "to", model)

	if u.opts.OnModelChanged != nil {
		if err := u.opts.OnModelChanged(model); err != nil {
			u.err = err
			log.Error("Failed to persist model", "model", model, "error", err)
		}
	}

	return u, nil
}

func (u *UIManager) openOverlay() tea.Cmd {
	u.closeOverlay()
	u.overlay = modeloverlay.New(modeloverlay.Options{
		CurrentModel:    u.currentModel,
		HasLastResponse: u.opts.HasLastResponse,
		Catalog:         u.catalog,
		GroupLabel:      u.opts.GroupLabel,
		FetchTimeout:    u.opts.FetchTimeout,
		OnSelect: func(model string) tea.Cmd {
			return func() tea.Msg { return modelSelectedMsg{model: model} }
		},
		OnExit: func() tea.Cmd {
			return func() tea.Msg { return overlayClosedMsg{} }
		},
	})

	cmds := []tea.Cmd{u.overlay.Init()}
	if u.width > 0 {
		_, cmd := u.overlay.Update(u.overlaySize())
		cmds = append(cmds, cmd)
	}
	return tea.Batch(cmds...)
}

func (u *UIManager) closeOverlay() {
	if u.overlay == nil {
		return
	}
	u.overlay.Close()
	u.overlay = nil
}

// overlaySize is the window size handed to the overlay, it keeps room for the header
func (u *UIManager) overlaySize() tea.WindowSizeMsg {
	width := u.width
	if width <= 0 {
		width = 80
	}
	height := u.height - 2
	if height < 10 {
		height = 10
	}
	return tea.WindowSizeMsg{Width: width, Height: height}
}

// View renders the current step
func (u *UIManager) View() string {
	vw := u.width
	if vw == 0 {
		vw = 80
	}
	box := lipgloss.NewStyle().
		Padding(0, 1).
		Width(min(vw-2, 84))

	switch u.currentStep {
	case StepOverlay:
		if u.overlay == nil {
			return box.Render("Opening model picker...")
		}
		return u.overlay.View()

	case StepIdle:
		content := fmt.Sprintf("%s %s",
			theme.InfoStyle.Render("Current model:"),
			theme.CurrentModelStyle.Render(u.currentModel))
		if u.catalog != nil && u.catalog.IsRecommended(u.currentModel) {
			content += theme.DimStyle.Render(" (recommended)")
		}
		if u.notice != "" {
			content += "\n" + theme.AccentStyle.Render(u.notice)
		}
		if u.err != nil {
			content += "\n" + theme.ErrorStyle.Render("✗ "+u.err.Error())
		}
		content += "\n\n" + theme.HintStyle.Render("m switch model • q quit")
		return box.Render(content)

	case StepQuit:
		return ""
	}

	return box.Render("Unknown state")
}

// CurrentModel returns the model the session ends up with
func (u *UIManager) CurrentModel() string {
	return u.currentModel
}

// Step returns what the host screen is showing
func (u *UIManager) Step() FlowStep {
	return u.currentStep
}

// FinalOutput returns the line printed after the TUI exits, the chosen model
// when it changed so the tool can be used as model=$(modelpicker).
func (u *UIManager) FinalOutput() string {
	if !u.changed {
		return ""
	}
	return u.currentModel
}
