package core

import "testing"

func TestAxisStateReduceTable(t *testing.T) {
	tests := []struct {
		state    AxisState
		ev       AxisEvent
		expected AxisState
	}{
		{AxisNone, Press(Positive), AxisPositive},
		{AxisNone, Press(Negative), AxisNegative},
		{AxisNone, Release(Positive), AxisNone},
		{AxisNone, Release(Negative), AxisNone},

		{AxisPositive, Press(Positive), AxisPositive},
		{AxisPositive, Press(Negative), AxisBoth},
		{AxisPositive, Release(Positive), AxisNone},
		{AxisPositive, Release(Negative), AxisPositive},

		{AxisNegative, Press(Positive), AxisBoth},
		{AxisNegative, Press(Negative), AxisNegative},
		{AxisNegative, Release(Positive), AxisNegative},
		{AxisNegative, Release(Negative), AxisNone},

		{AxisBoth, Press(Positive), AxisBoth},
		{AxisBoth, Press(Negative), AxisBoth},
		{AxisBoth, Release(Positive), AxisNegative},
		{AxisBoth, Release(Negative), AxisPositive},
	}

	for _, tc := range tests {
		got := tc.state.Reduce(tc.ev)
		if got != tc.expected {
			t.Errorf("%v.Reduce(pressed=%v sign=%v) = %v, expected %v",
				tc.state, tc.ev.Pressed, tc.ev.Sign, got, tc.expected)
		}
	}
}

func TestAxisStateSequences(t *testing.T) {
	tests := []struct {
		name     string
		events   []AxisEvent
		expected AxisState
	}{
		{"press both then release positive", []AxisEvent{Press(Positive), Press(Negative), Release(Positive)}, AxisNegative},
		{"press both then release negative", []AxisEvent{Press(Negative), Press(Positive), Release(Negative)}, AxisPositive},
		{"press and release", []AxisEvent{Press(Positive), Release(Positive)}, AxisNone},
		{"release both", []AxisEvent{Press(Positive), Press(Negative), Release(Positive), Release(Negative)}, AxisNone},
		{"stray release", []AxisEvent{Release(Negative), Press(Positive)}, AxisPositive},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			state := AxisNone
			for _, ev := range tc.events {
				state = state.Reduce(ev)
			}
			if state != tc.expected {
				t.Errorf("final state = %v, expected %v", state, tc.expected)
			}
		})
	}
}

func TestAxisStateFactor(t *testing.T) {
	tests := []struct {
		state    AxisState
		expected float64
	}{
		{AxisNone, 0},
		{AxisPositive, 1},
		{AxisNegative, -1},
		{AxisBoth, 0},
	}

	for _, tc := range tests {
		if got := tc.state.Factor(); got != tc.expected {
			t.Errorf("%v.Factor() = %v, expected %v", tc.state, got, tc.expected)
		}
	}
}
