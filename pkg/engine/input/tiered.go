// Package input turns device key codes into viewer intents in layers:
// raw event, debounced event, binding lookup, intent.
package input

import (
	"errors"
	"fmt"
	"sort"
	"strings"
	"time"
)

// Device represents a physical input source.
type Device int

const (
	DeviceUnknown Device = iota
	DeviceKeyboard
	DeviceMouse
)

// Action represents a high-level intent in the viewer.
type Action int

const (
	ActionNone Action = iota

	ActionRegenerate
	ActionToggleSockets
	ActionScreenshot // Save the layout as HTML
	ActionDump       // Write the layout debug dump
	ActionZoomIn
	ActionZoomOut
	ActionQuit
)

// Intent is the top-layer description of what the user wants to do.
type Intent struct {
	Action Action
}

// RawInput is the first-layer event emitted directly from an input device.
// Code is a device-specific identifier (e.g. "r", "escape", "wheel_up").
type RawInput struct {
	Device    Device
	Code      string
	Timestamp time.Time
}

// DebouncedInput is the second-layer representation after deduplication.
type DebouncedInput struct {
	Device Device
	Code   string
}

// Debouncer drops repeats of the same code within Window
type Debouncer struct {
	Window time.Duration

	last     map[string]time.Time
	lastSeen time.Time
}

// NewDebouncer creates a debouncer with the given repeat window
func NewDebouncer(window time.Duration) *Debouncer {
	return &Debouncer{Window: window, last: make(map[string]time.Time)}
}

// Accept returns the debounced event and true, or false if raw repeats a code
// seen less than Window ago. Events without a timestamp are always accepted.
func (d *Debouncer) Accept(raw RawInput) (DebouncedInput, bool) {
	ev := DebouncedInput{Device: raw.Device, Code: raw.Code}
	if raw.Timestamp.IsZero() {
		return ev, true
	}
	if prev, ok := d.last[raw.Code]; ok && raw.Timestamp.Sub(prev) < d.Window {
		return ev, false
	}
	d.last[raw.Code] = raw.Timestamp
	return ev, true
}

// defaultBindings maps raw codes to actions. Multiple codes may share an action.
var defaultBindings = map[string]Action{
	"r":     ActionRegenerate,
	"space": ActionRegenerate,

	"s": ActionToggleSockets,

	"p":  ActionScreenshot,
	"f2": ActionScreenshot,

	"d": ActionDump,

	"=":          ActionZoomIn,
	"+":          ActionZoomIn,
	"numpad_add": ActionZoomIn,
	"wheel_up":   ActionZoomIn,

	"-":               ActionZoomOut,
	"numpad_subtract": ActionZoomOut,
	"wheel_down":      ActionZoomOut,

	"q":      ActionQuit,
	"escape": ActionQuit,
}

// Bindings is a mutable code-to-action table
type Bindings struct {
	codes map[string]Action
}

// DefaultBindings returns a fresh copy of the default key table
func DefaultBindings() *Bindings {
	b := &Bindings{codes: make(map[string]Action, len(defaultBindings))}
	for code, act := range defaultBindings {
		b.codes[code] = act
	}
	return b
}

// MapToIntent applies the bindings to a debounced input and returns an Intent.
func (b *Bindings) MapToIntent(ev DebouncedInput) Intent {
	if act, ok := b.codes[ev.Code]; ok {
		return Intent{Action: act}
	}
	return Intent{Action: ActionNone}
}

// Codes returns the sorted codes bound to an action
func (b *Bindings) Codes(action Action) []string {
	var codes []string
	for code, act := range b.codes {
		if act == action {
			codes = append(codes, code)
		}
	}
	sort.Strings(codes)
	return codes
}

// SetSingleBinding replaces all bindings for the given action with a single code.
// "escape" always stays bound to ActionQuit.
func (b *Bindings) SetSingleBinding(action Action, code string) {
	for c, a := range b.codes {
		if c == "escape" {
			continue
		}
		if a == action {
			delete(b.codes, c)
		}
	}
	if code != "" && code != "escape" {
		b.codes[code] = action
	}
}

// ErrBadBinding is wrapped by ParseBinding failures
var ErrBadBinding = errors.New("invalid key binding")

// actionsByFlag names the rebindable actions on the command line
var actionsByFlag = map[string]Action{
	"regenerate": ActionRegenerate,
	"sockets":    ActionToggleSockets,
	"html":       ActionScreenshot,
	"dump":       ActionDump,
	"zoom-in":    ActionZoomIn,
	"zoom-out":   ActionZoomOut,
	"quit":       ActionQuit,
}

// Binding assigns a single code to an action
type Binding struct {
	Action Action
	Code   string
}

// ParseBinding parses "action=code", e.g. "regenerate=n"
func ParseBinding(s string) (Binding, error) {
	name, code, ok := strings.Cut(s, "=")
	name = strings.ToLower(strings.TrimSpace(name))
	code = strings.ToLower(strings.TrimSpace(code))
	if !ok || code == "" {
		return Binding{}, fmt.Errorf("%w %q: want action=key", ErrBadBinding, s)
	}
	act, known := actionsByFlag[name]
	if !known {
		return Binding{}, fmt.Errorf("%w %q: unknown action %q", ErrBadBinding, s, name)
	}
	return Binding{Action: act, Code: code}, nil
}

// Apply replaces the codes of each bound action, in order
func (b *Bindings) Apply(binds ...Binding) {
	for _, bind := range binds {
		b.SetSingleBinding(bind.Action, bind.Code)
	}
}

// ActionName returns a human-friendly name for an action.
func ActionName(a Action) string {
	switch a {
	case ActionRegenerate:
		return "Regenerate"
	case ActionToggleSockets:
		return "Toggle Sockets"
	case ActionScreenshot:
		return "Save HTML"
	case ActionDump:
		return "Dump"
	case ActionZoomIn:
		return "Zoom In"
	case ActionZoomOut:
		return "Zoom Out"
	case ActionQuit:
		return "Quit"
	default:
		return "None"
	}
}
