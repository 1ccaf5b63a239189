package input

import (
	"testing"

	"github.com/vovakirdan/underground/internal/core"
)

func TestDefaultTable(t *testing.T) {
	table := DefaultTable()

	tests := []struct {
		src     Source
		press   Action
		release Action
	}{
		{SourceW, Pan(core.AxisY, core.Negative), Pan(core.AxisY, core.Negative)},
		{SourceS, Pan(core.AxisY, core.Positive), Pan(core.AxisY, core.Positive)},
		{SourceA, Pan(core.AxisX, core.Negative), Pan(core.AxisX, core.Negative)},
		{SourceD, Pan(core.AxisX, core.Positive), Pan(core.AxisX, core.Positive)},
		{SourceMouseLeft, PlaceObject(), Action{}},
		{SourceSpace, ZoomPreset(1), Action{}},
		{SourceDigit2, ZoomPreset(2), Action{}},
		{SourceDigit3, ZoomPreset(0.5), Action{}},
		{SourceJ, SimulateScroll(core.Positive), Action{}},
		{SourceL, SimulateScroll(core.Negative), Action{}},
	}

	for _, tt := range tests {
		b, ok := table.Lookup(tt.src)
		if !ok {
			t.Errorf("Lookup(%v) not bound", tt.src)
			continue
		}
		if b.Press != tt.press || b.Release != tt.release {
			t.Errorf("Lookup(%v) = %+v, expected press %+v release %+v", tt.src, b, tt.press, tt.release)
		}
	}

	for _, src := range []Source{SourceMouseRight, SourceMouseMiddle, SourceCtrl, Source(-1), Source(NumSources)} {
		if _, ok := table.Lookup(src); ok {
			t.Errorf("Lookup(%v) should be unbound", src)
		}
	}
}

func TestParseAction(t *testing.T) {
	tests := []struct {
		in       string
		expected Action
		wantErr  bool
	}{
		{"", Action{}, false},
		{"none", Action{}, false},
		{"place", PlaceObject(), false},
		{"pan:-y", Pan(core.AxisY, core.Negative), false},
		{"PAN:+x", Pan(core.AxisX, core.Positive), false},
		{"zoom:0.5", ZoomPreset(0.5), false},
		{"scroll:+1", SimulateScroll(core.Positive), false},
		{"scroll:-1", SimulateScroll(core.Negative), false},
		{"scroll:1", SimulateScroll(core.Positive), false},
		{"pan:y", Action{}, true},
		{"pan:*z", Action{}, true},
		{"zoom:0", Action{}, true},
		{"zoom:abc", Action{}, true},
		{"zoom:inf", Action{}, true},
		{"zoom:-Inf", Action{}, true},
		{"zoom:NaN", Action{}, true},
		{"scroll:2", Action{}, true},
		{"teleport", Action{}, true},
	}

	for _, tt := range tests {
		got, err := ParseAction(tt.in)
		if (err != nil) != tt.wantErr {
			t.Errorf("ParseAction(%q) error = %v, wantErr %v", tt.in, err, tt.wantErr)
			continue
		}
		if !tt.wantErr && got != tt.expected {
			t.Errorf("ParseAction(%q) = %+v, expected %+v", tt.in, got, tt.expected)
		}
	}
}

func TestActionStringParses(t *testing.T) {
	for _, e := range DefaultTable().Entries() {
		for _, a := range []Action{e.Binding.Press, e.Binding.Release} {
			got, err := ParseAction(a.String())
			if err != nil || got != a {
				t.Errorf("ParseAction(%q) = %+v, %v; expected %+v", a.String(), got, err, a)
			}
		}
	}
}

func TestTableFromConfig(t *testing.T) {
	table, err := TableFromConfig(DefaultSpecs())
	if err != nil {
		t.Fatalf("TableFromConfig(DefaultSpecs()) failed: %v", err)
	}
	if len(table.Entries()) != len(DefaultTable().Entries()) {
		t.Errorf("Entries() len = %d, expected %d", len(table.Entries()), len(DefaultTable().Entries()))
	}

	custom, err := TableFromConfig([]BindingSpec{
		{Source: "ctrl", Press: "zoom:4"},
	})
	if err != nil {
		t.Fatalf("TableFromConfig() failed: %v", err)
	}
	if b, ok := custom.Lookup(SourceCtrl); !ok || b.Press != ZoomPreset(4) {
		t.Errorf("Lookup(ctrl) = %+v, %v", b, ok)
	}
	if _, ok := custom.Lookup(SourceW); ok {
		t.Error("custom table should not include default bindings")
	}

	bad := [][]BindingSpec{
		{{Source: "f1", Press: "place"}},
		{{Source: "w", Press: "fly"}},
		{{Source: "w", Press: "place", Release: "zoom:-1"}},
		{{Source: "space", Press: "zoom:inf"}},
		{{Source: "w", Press: "place"}, {Source: "W", Press: "none"}},
	}
	for i, specs := range bad {
		if _, err := TableFromConfig(specs); err == nil {
			t.Errorf("case %d: TableFromConfig() should fail", i)
		}
	}
}

func TestSourceLookup(t *testing.T) {
	tests := []struct {
		code KeyCode
		src  Source
		ok   bool
	}{
		{"w", SourceW, true},
		{"W", SourceW, true},
		{" ", SourceSpace, true},
		{"space", SourceSpace, true},
		{"ctrl", SourceCtrl, true},
		{"3", SourceDigit3, true},
		{"mouse_left", 0, false},
		{"x", 0, false},
	}

	for _, tt := range tests {
		src, ok := SourceForKey(tt.code)
		if ok != tt.ok || (ok && src != tt.src) {
			t.Errorf("SourceForKey(%q) = %v, %v; expected %v, %v", tt.code, src, ok, tt.src, tt.ok)
		}
	}

	if src, ok := SourceForButton(ButtonMiddle); !ok || src != SourceMouseMiddle {
		t.Errorf("SourceForButton(middle) = %v, %v", src, ok)
	}
	if _, ok := SourceForButton(ButtonOther(0)); ok {
		t.Error("SourceForButton(other) should fail")
	}

	for i := 0; i < NumSources; i++ {
		src := Source(i)
		if parsed, ok := ParseSource(src.String()); !ok || parsed != src {
			t.Errorf("ParseSource(%q) = %v, %v", src.String(), parsed, ok)
		}
	}
}
