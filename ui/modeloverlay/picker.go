package modeloverlay

import (
	"context"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/log"

	"github.com/alexmk92/modelpicker/core"
	coreTypes "github.com/alexmk92/modelpicker/core/types"
	"github.com/alexmk92/modelpicker/ui/theme"
	"github.com/alexmk92/modelpicker/ui/typeahead"
	"github.com/alexmk92/modelpicker/ui/types"
)

// modelsLoadedMsg carries the result of the one fetch an overlay makes. The id
// keeps a late answer for an overlay that was already replaced from leaking in.
type modelsLoadedMsg struct {
	id     uint64
	models []string
	err    error
}

// pickerView is the interactive variant: root shows the recommended models and
// the group entry, the secondary group shows everything else.
type pickerView struct {
	ctx  context.Context
	id   uint64
	opts Options

	current   types.OverlayState
	fetch     types.FetchState
	fetchErr  error
	started   bool
	partition coreTypes.Partition

	picker  typeahead.Model
	spinner spinner.Model
	exited  bool

	width  int
	height int
}

func newPickerView(ctx context.Context, id uint64, opts Options) *pickerView {
	p := &pickerView{
		ctx:     ctx,
		id:      id,
		opts:    opts,
		current: types.StateRoot,
		fetch:   types.FetchLoading,
		spinner: theme.NewSpinner(),
	}
	p.picker = p.newPicker()
	return p
}

func (p *pickerView) init() tea.Cmd {
	// Init can be called again by a host that re-renders, the fetch still only happens once
	if p.started {
		return nil
	}
	p.started = true

	return tea.Batch(p.fetchModels(), p.spinner.Tick, p.picker.Init())
}

func (p *pickerView) fetchModels() tea.Cmd {
	ctx, id, catalog, timeout := p.ctx, p.id, p.opts.Catalog, p.opts.FetchTimeout

	return func() tea.Msg {
		if catalog == nil {
			return modelsLoadedMsg{id: id, err: errNoCatalog}
		}

		if timeout > 0 {
			var cancel context.CancelFunc
			ctx, cancel = context.WithTimeout(ctx, timeout)
			defer cancel()
		}

		models, err := catalog.AvailableModels(ctx)
		return modelsLoadedMsg{id: id, models: models, err: err}
	}
}

func (p *pickerView) update(msg tea.Msg) tea.Cmd {
	switch msg := msg.(type) {
	case modelsLoadedMsg:
		if msg.id != p.id {
			return nil
		}
		p.handleLoaded(msg)
		return nil

	case spinner.TickMsg:
		if p.fetch != types.FetchLoading {
			return nil
		}
		var cmd tea.Cmd
		p.spinner, cmd = p.spinner.Update(msg)
		return cmd

	case typeahead.SelectMsg:
		return p.handleSelect(msg.Value)

	case typeahead.ExitMsg:
		if p.exited {
			return nil
		}
		p.exited = true
		return callExit(p.opts)

	case tea.WindowSizeMsg:
		p.width, p.height = msg.Width, msg.Height
		p.picker.SetSize(p.pickerSize())
		return nil
	}

	var cmd tea.Cmd
	p.picker, cmd = p.picker.Update(msg)
	return cmd
}

func (p *pickerView) handleLoaded(msg modelsLoadedMsg) {
	if msg.err != nil {
		p.fetch = types.FetchFailed
		p.fetchErr = msg.err
		log.Warn("Failed to load available models", "error", msg.err)
		return
	}

	p.fetch = types.FetchReady
	p.partition = core.Partition(msg.models, p.opts.Catalog.Recommended())
	log.Debug("Available models loaded",
		"recommended", len(p.partition.Recommended),
		"other", len(p.partition.Other))

	// Same view state, so keep whatever the user already typed
	p.picker.SetItems(p.items())
}

func (p *pickerView) handleSelect(value string) tea.Cmd {
	switch {
	case p.current == types.StateRoot && value == groupValue:
		if len(p.partition.Other) == 0 {
			return nil
		}
		p.current = types.StateSecondaryGroup
		p.picker = p.newPicker()
		return p.picker.Init()

	case p.current == types.StateSecondaryGroup && value == backValue:
		p.current = types.StateRoot
		p.picker = p.newPicker()
		return p.picker.Init()
	}

	log.Debug("Model selected", "model", value, "view", p.current)
	return callSelect(p.opts, value)
}

// items builds the candidates for the current view state
func (p *pickerView) items() []typeahead.Item {
	if p.current == types.StateSecondaryGroup {
		items := make([]typeahead.Item, 0, len(p.partition.Other)+1)
		items = append(items, typeahead.Item{Label: backLabel, Value: backValue})
		for _, m := range p.partition.Other {
			items = append(items, typeahead.Item{Label: m, Value: m})
		}
		return items
	}

	items := make([]typeahead.Item, 0, len(p.partition.Recommended)+1)
	for _, m := range p.partition.Recommended {
		items = append(items, typeahead.Item{Label: recommendedPrefix + m, Value: m})
	}
	if len(p.partition.Other) > 0 {
		items = append(items, typeahead.Item{Label: p.opts.GroupLabel, Value: groupValue})
	}
	return items
}

func (p *pickerView) newPicker() typeahead.Model {
	width, height := p.pickerSize()
	return typeahead.New(typeahead.Config{
		Title:        overlayTitle,
		Description:  "Current model: " + theme.CurrentModelStyle.Render(p.opts.CurrentModel),
		Items:        p.items(),
		CurrentValue: p.opts.CurrentModel,
		Keys:         &p.opts.Keys.Picker,
		Width:        width,
		Height:       height,
	})
}

// pickerSize fits the typeahead inside the box, zero means "use the typeahead default"
func (p *pickerView) pickerSize() (int, int) {
	width := boxWidth - 4
	if p.width > 0 && p.width < boxWidth {
		width = max(p.width-4, 20)
	}
	height := 0
	if p.height > 0 {
		height = max(p.height-4, 10)
	}
	return width, height
}

func (p *pickerView) render() string {
	var b strings.Builder
	b.WriteString(p.picker.View())

	switch p.fetch {
	case types.FetchLoading:
		b.WriteString("\n")
		b.WriteString(p.spinner.View())
		b.WriteString(theme.HintStyle.Render(" loading models…"))
	case types.FetchReady:
		if p.partition.Empty() {
			b.WriteString("\n")
			b.WriteString(theme.HintStyle.Render("The backend did not report any models"))
		}
	case types.FetchFailed:
		b.WriteString("\n")
		b.WriteString(theme.ErrorStyle.Render(fmt.Sprintf("Could not load models: %v", p.fetchErr)))
	}

	return theme.BoxStyle.Width(boxWidth).Render(b.String())
}

func (p *pickerView) state() types.OverlayState {
	return p.current
}
