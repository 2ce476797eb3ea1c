package scale

import (
	"math"
	"testing"
	"time"

	"github.com/matzehuels/stackchart/pkg/chart/data"
)

func TestLinear(t *testing.T) {
	l := NewLinear(0, 10, 0, 100)
	tests := []struct {
		in   any
		want float64
	}{
		{0.0, 0},
		{5, 50},
		{int64(10), 100},
		{-1.0, -10},
	}
	for _, tt := range tests {
		if got := l.Scale(tt.in); got != tt.want {
			t.Errorf("Scale(%v) = %v, want %v", tt.in, got, tt.want)
		}
	}
	if !math.IsNaN(l.Scale("x")) {
		t.Error("non-numeric value should map to NaN")
	}
	if got := l.Invert(25); got != 2.5 {
		t.Errorf("Invert(25) = %v, want 2.5", got)
	}
	if got := l.Invert(500); got != 10.0 {
		t.Errorf("clamped Invert(500) = %v, want 10", got)
	}
	flat := NewLinear(3, 3, 0, 100)
	if got := flat.Scale(3.0); got != 50 {
		t.Errorf("collapsed domain Scale = %v, want 50", got)
	}
}

func TestLinearInverted(t *testing.T) {
	l := NewLinear(0, 1, 200, 0)
	if got := l.Scale(0.25); got != 150 {
		t.Errorf("Scale(0.25) = %v, want 150", got)
	}
}

func TestTime(t *testing.T) {
	t0 := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	t1 := t0.Add(10 * 24 * time.Hour)
	s := NewTime(t0, t1, 0, 100)
	if got := s.Scale(t0.Add(5 * 24 * time.Hour)); math.Abs(got-50) > 1e-9 {
		t.Errorf("Scale(mid) = %v, want 50", got)
	}
	if got := s.Scale("2024-01-06"); math.Abs(got-50) > 1e-9 {
		t.Errorf("Scale(date string) = %v, want 50", got)
	}
	inv, ok := s.Invert(10).(time.Time)
	if !ok || !inv.Equal(t0.Add(24*time.Hour)) {
		t.Errorf("Invert(10) = %v", inv)
	}
	if !math.IsNaN(s.Scale("not a date")) {
		t.Error("unparseable string should map to NaN")
	}
}

func TestPoint(t *testing.T) {
	p := NewPoint([]any{"a", "b", "c"}, 0, 100)
	for i, want := range []float64{0, 50, 100} {
		if got := p.Scale(p.Domain[i]); got != want {
			t.Errorf("Scale(%v) = %v, want %v", p.Domain[i], got, want)
		}
	}
	if !math.IsNaN(p.Scale("z")) {
		t.Error("unknown key should map to NaN")
	}
	tests := []struct {
		px   float64
		want any
	}{
		{-20, "a"},
		{24, "a"},
		{26, "b"},
		{74, "b"},
		{90, "c"},
		{300, "c"},
	}
	for _, tt := range tests {
		if got := p.Invert(tt.px); got != tt.want {
			t.Errorf("Invert(%v) = %v, want %v", tt.px, got, tt.want)
		}
	}
	single := NewPoint([]any{"only"}, 0, 100)
	if got := single.Scale("only"); got != 50 {
		t.Errorf("single key Scale = %v, want 50", got)
	}
}

func TestForX(t *testing.T) {
	t.Run("ordinal", func(t *testing.T) {
		s := data.Shape{Points: []data.Point{{Key: "a"}, {Key: "b"}}}
		if _, ok := ForX(s, 100).(*Point); !ok {
			t.Error("string keys should produce a point scale")
		}
	})
	t.Run("numeric", func(t *testing.T) {
		s := data.Shape{Points: []data.Point{{Key: 1.0}, {Key: 3.0}}}
		x := ForX(s, 100)
		if _, ok := x.(*Linear); !ok {
			t.Fatal("numeric keys should produce a linear scale")
		}
		if got := x.Scale(3.0); got != 100 {
			t.Errorf("Scale(max) = %v, want 100", got)
		}
	})
	t.Run("temporal", func(t *testing.T) {
		t0 := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
		s := data.Shape{Points: []data.Point{{Key: t0}, {Key: t0.Add(time.Hour)}}}
		if _, ok := ForX(s, 100).(*Time); !ok {
			t.Error("time keys should produce a time scale")
		}
	})
}

func TestForY(t *testing.T) {
	nested := data.Shape{Kind: data.Nested, Series: []data.Series{
		{Key: "s1", Data: []data.Point{{Key: "a", Data: 1}, {Key: "b", Data: 2}}},
		{Key: "s2", Data: []data.Point{{Key: "a", Data: 3}, {Key: "b", Data: 4}}},
	}}
	tests := []struct {
		name string
		typ  data.ChartType
		want float64
	}{
		{"grouped", data.Grouped, 4},
		{"stacked", data.Stacked, 6},
		{"normalized", data.StackedNormalized, 1},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			y := ForY(nested, tt.typ, 200)
			if y.Domain[1] != tt.want {
				t.Errorf("domain max = %v, want %v", y.Domain[1], tt.want)
			}
			if y.Scale(0.0) != 200 {
				t.Errorf("zero should map to the bottom, got %v", y.Scale(0.0))
			}
		})
	}
}
