package input

import (
	"fmt"

	"github.com/vovakirdan/underground/internal/core"
)

// Binding pairs the actions run when a source is pressed and released.
type Binding struct {
	Press   Action
	Release Action
}

// BindingSpec is the configuration form of one binding.
type BindingSpec struct {
	Source  string `yaml:"source"`
	Press   string `yaml:"press"`
	Release string `yaml:"release,omitempty"`
}

// Entry is one bound source of a Table.
type Entry struct {
	Source  Source
	Binding Binding
}

// Table maps sources to bindings. A Table is immutable after construction
// and safe to share between goroutines.
type Table struct {
	bindings [NumSources]Binding
	bound    [NumSources]bool
}

// NewTable builds a table from a source map. Invalid sources are ignored.
func NewTable(bindings map[Source]Binding) *Table {
	t := &Table{}
	for src, b := range bindings {
		if !src.Valid() {
			continue
		}
		t.bindings[src] = b
		t.bound[src] = true
	}
	return t
}

// DefaultTable returns the built-in bindings: WASD pans, left click places
// an object, space and 1/2/3 select zoom presets, J/L simulate scrolling.
func DefaultTable() *Table {
	return NewTable(DefaultBindings())
}

// DefaultBindings returns the built-in source map.
func DefaultBindings() map[Source]Binding {
	pan := func(axis core.Axis, sign core.Sign) Binding {
		return Binding{Press: Pan(axis, sign), Release: Pan(axis, sign)}
	}
	press := func(a Action) Binding {
		return Binding{Press: a}
	}

	return map[Source]Binding{
		SourceW:         pan(core.AxisY, core.Negative),
		SourceS:         pan(core.AxisY, core.Positive),
		SourceA:         pan(core.AxisX, core.Negative),
		SourceD:         pan(core.AxisX, core.Positive),
		SourceMouseLeft: press(PlaceObject()),
		SourceSpace:     press(ZoomPreset(1)),
		SourceDigit1:    press(ZoomPreset(1)),
		SourceDigit2:    press(ZoomPreset(2)),
		SourceDigit3:    press(ZoomPreset(0.5)),
		SourceJ:         press(SimulateScroll(core.Positive)),
		SourceL:         press(SimulateScroll(core.Negative)),
	}
}

// DefaultSpecs returns the built-in bindings in configuration form.
func DefaultSpecs() []BindingSpec {
	return DefaultTable().Specs()
}

// TableFromConfig builds a table from configuration entries.
// Returns an error naming the first unknown source or malformed action.
func TableFromConfig(specs []BindingSpec) (*Table, error) {
	bindings := make(map[Source]Binding, len(specs))
	for i, spec := range specs {
		src, ok := ParseSource(spec.Source)
		if !ok {
			return nil, fmt.Errorf("input: binding %d: unknown source %q", i, spec.Source)
		}
		if _, dup := bindings[src]; dup {
			return nil, fmt.Errorf("input: binding %d: source %q bound twice", i, spec.Source)
		}
		press, err := ParseAction(spec.Press)
		if err != nil {
			return nil, fmt.Errorf("input: binding %d press: %w", i, err)
		}
		release, err := ParseAction(spec.Release)
		if err != nil {
			return nil, fmt.Errorf("input: binding %d release: %w", i, err)
		}
		bindings[src] = Binding{Press: press, Release: release}
	}
	return NewTable(bindings), nil
}

// Lookup returns the binding for src.
func (t *Table) Lookup(src Source) (Binding, bool) {
	if !src.Valid() || !t.bound[src] {
		return Binding{}, false
	}
	return t.bindings[src], true
}

// Entries returns the bound sources in index order.
func (t *Table) Entries() []Entry {
	var entries []Entry
	for i := range t.bindings {
		if t.bound[i] {
			entries = append(entries, Entry{Source: Source(i), Binding: t.bindings[i]})
		}
	}
	return entries
}

// Specs converts the table back to configuration form.
func (t *Table) Specs() []BindingSpec {
	entries := t.Entries()
	specs := make([]BindingSpec, 0, len(entries))
	for _, e := range entries {
		spec := BindingSpec{Source: e.Source.String(), Press: e.Binding.Press.String()}
		if e.Binding.Release.Kind != ActionNone {
			spec.Release = e.Binding.Release.String()
		}
		specs = append(specs, spec)
	}
	return specs
}
