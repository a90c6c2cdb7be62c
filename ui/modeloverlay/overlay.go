// Package modeloverlay implements the "Switch model" overlay: a typeahead over
// the recommended models with a drill-down into everything else the backend
// offers, or a read-only notice once the session can no longer switch.
package modeloverlay

import (
	"context"
	"errors"
	"sync/atomic"
	"time"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/alexmk92/modelpicker/ui/typeahead"
	"github.com/alexmk92/modelpicker/ui/types"
)

const (
	// DefaultGroupLabel is the root entry that opens the secondary group
	DefaultGroupLabel = "OpenAI"

	groupValue        = "__OPENAI_GROUP__"
	backValue         = "__BACK__"
	backLabel         = "← Back"
	recommendedPrefix = "⭐ "
	overlayTitle      = "Switch model"
	boxWidth          = 80
)

// errNoCatalog is reported through the failed fetch state when the host forgot the catalog
var errNoCatalog = errors.New("no model catalog configured")

// Catalog is what the overlay needs from the host to fill the lists
type Catalog interface {
	AvailableModels(ctx context.Context) ([]string, error)
	Recommended() []string
}

// KeyMap holds the dismiss gesture of the locked view and the picker bindings.
// Both views only look at bindings, never at raw key strings.
type KeyMap struct {
	Dismiss key.Binding
	Picker  typeahead.KeyMap
}

// DefaultKeyMap returns esc/enter to dismiss the notice and the default typeahead keys
func DefaultKeyMap() KeyMap {
	return KeyMap{
		Dismiss: key.NewBinding(key.WithKeys("esc", "enter"), key.WithHelp("esc/enter", "close")),
		Picker:  typeahead.DefaultKeyMap(),
	}
}

// Options configures an overlay. OnSelect and OnExit may return a command for
// the host program, nil is fine.
type Options struct {
	CurrentModel    string
	HasLastResponse bool
	Catalog         Catalog
	GroupLabel      string
	Keys            *KeyMap
	FetchTimeout    time.Duration
	OnSelect        func(model string) tea.Cmd
	OnExit          func() tea.Cmd
}

// view is one of the two overlay variants, picked once in New
type view interface {
	init() tea.Cmd
	update(msg tea.Msg) tea.Cmd
	render() string
	state() types.OverlayState
}

var overlayIDs atomic.Uint64

// Overlay is the model picker overlay. It is mounted by the host and lives until
// the host drops it; Close must be called on unmount to abandon a pending fetch.
type Overlay struct {
	id     uint64
	ctx    context.Context
	cancel context.CancelFunc
	active view
}

// New creates an overlay. Whether it is locked is decided here and never again.
func New(opts Options) *Overlay {
	if opts.GroupLabel == "" {
		opts.GroupLabel = DefaultGroupLabel
	}
	if opts.Keys == nil {
		keys := DefaultKeyMap()
		opts.Keys = &keys
	}

	o := &Overlay{id: overlayIDs.Add(1)}
	o.ctx, o.cancel = context.WithCancel(context.Background())

	if opts.HasLastResponse {
		o.active = newLockedView(opts)
	} else {
		o.active = newPickerView(o.ctx, o.id, opts)
	}

	return o
}

// Init starts the model fetch for the picker, the locked view has nothing to start
func (o *Overlay) Init() tea.Cmd {
	return o.active.init()
}

// Update forwards the message to the active view
func (o *Overlay) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	return o, o.active.update(msg)
}

// View renders the active view
func (o *Overlay) View() string {
	return o.active.render()
}

// Close abandons any in-flight fetch. Safe to call more than once.
func (o *Overlay) Close() {
	o.cancel()
}

// State returns the current view state
func (o *Overlay) State() types.OverlayState {
	return o.active.state()
}

// FetchState returns the state of the model fetch, ok is false for the locked view
// which never fetches.
func (o *Overlay) FetchState() (state types.FetchState, ok bool) {
	p, ok := o.active.(*pickerView)
	if !ok {
		return types.FetchLoading, false
	}
	return p.fetch, true
}

// Items returns the candidates currently handed to the typeahead, nil when locked
func (o *Overlay) Items() []typeahead.Item {
	p, ok := o.active.(*pickerView)
	if !ok {
		return nil
	}
	return p.picker.Items()
}

func callSelect(opts Options, model string) tea.Cmd {
	if opts.OnSelect == nil {
		return nil
	}
	return opts.OnSelect(model)
}

func callExit(opts Options) tea.Cmd {
	if opts.OnExit == nil {
		return nil
	}
	return opts.OnExit()
}
