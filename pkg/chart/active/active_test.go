package active

import (
	"math"
	"testing"

	"github.com/matzehuels/stackchart/pkg/chart/data"
	"github.com/matzehuels/stackchart/pkg/chart/geom"
	"github.com/matzehuels/stackchart/pkg/chart/scale"
)

func hoverOn(key any, px float64) Hover {
	return Hover{Keys: []any{key}, Values: []data.Point{{Key: key, Data: 1}}, Coordinate: px}
}

func TestStoreEnterIdempotent(t *testing.T) {
	s := NewStore()
	s.Enter(hoverOn("a", 10))
	once, v1 := s.Current(), s.Version()

	s.Enter(hoverOn("a", 10))
	if !s.Current().Equal(once) {
		t.Errorf("second enter changed selection: %+v vs %+v", s.Current(), once)
	}
	if s.Version() != v1 {
		t.Errorf("version bumped on identical hover: %d -> %d", v1, s.Version())
	}
}

func TestStoreReplaceIsAtomic(t *testing.T) {
	s := NewStore()
	s.Enter(hoverOn("a", 10))
	s.Move(hoverOn("b", 20))
	cur := s.Current()
	if !cur.Active || cur.Keys[0] != "b" || cur.Coordinate != 20 {
		t.Errorf("selection = %+v, want active on b", cur)
	}
	if s.Version() != 2 {
		t.Errorf("version = %d, want 2", s.Version())
	}
}

func TestStoreLeaveAlwaysResets(t *testing.T) {
	tests := []struct {
		name  string
		setup func(*Store)
	}{
		{"from idle", func(*Store) {}},
		{"from active", func(s *Store) { s.Enter(hoverOn("a", 1)) }},
		{"after move", func(s *Store) { s.Enter(hoverOn("a", 1)); s.Move(hoverOn("b", 2)) }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := NewStore()
			tt.setup(s)
			s.Leave()
			if s.Current().Active {
				t.Error("store still active after Leave")
			}
			if !s.Current().Equal(Selection{}) {
				t.Errorf("selection = %+v, want idle", s.Current())
			}
		})
	}
}

func TestStoreCurrentIsCopy(t *testing.T) {
	s := NewStore()
	s.Enter(hoverOn("a", 1))
	cur := s.Current()
	cur.Keys[0] = "mutated"
	if s.Current().Keys[0] != "a" {
		t.Error("mutating Current() leaked into the store")
	}
}

func TestSelectionMatches(t *testing.T) {
	idle := Selection{}
	if !idle.Matches("anything") {
		t.Error("idle selection should match every key")
	}
	sel := Selection{Active: true, Keys: []any{"a"}, Series: []any{"s1"}}
	tests := []struct {
		key  any
		want bool
	}{
		{"a", true},
		{"s1", true},
		{"b", false},
		{nil, true},
	}
	for _, tt := range tests {
		if got := sel.Matches(tt.key); got != tt.want {
			t.Errorf("Matches(%v) = %v, want %v", tt.key, got, tt.want)
		}
	}
}

type recorder struct {
	events []string
	last   Hover
}

func (r *recorder) Enter(h Hover) { r.events = append(r.events, "enter"); r.last = h }
func (r *recorder) Move(h Hover)  { r.events = append(r.events, "move"); r.last = h }
func (r *recorder) Leave()        { r.events = append(r.events, "leave") }

func TestSurfaceShallow(t *testing.T) {
	shape := data.Shape{Points: []data.Point{{Key: "a", Data: 10}, {Key: "b", Data: 20}, {Key: "c", Data: 30}}}
	rec := &recorder{}
	s := &Surface{Handler: rec, XScale: scale.ForX(shape, 100), Shape: shape, Width: 100, Height: 50}

	s.Pointer(40, 10)
	if rec.last.Keys[0] != "b" || rec.last.Coordinate != 50 {
		t.Errorf("hover = %+v, want key b at 50", rec.last)
	}
	if len(rec.last.Values) != 1 || rec.last.Values[0].Data != 20 {
		t.Errorf("values = %+v", rec.last.Values)
	}
	s.Pointer(95, 10)
	s.Pointer(150, 10)
	s.Pointer(10, 10)
	want := []string{"enter", "move", "leave", "enter"}
	if len(rec.events) != len(want) {
		t.Fatalf("events = %v, want %v", rec.events, want)
	}
	for i := range want {
		if rec.events[i] != want[i] {
			t.Errorf("events = %v, want %v", rec.events, want)
			break
		}
	}
}

func TestSurfaceNested(t *testing.T) {
	shape := data.Shape{Kind: data.Nested, Series: []data.Series{
		{Key: "s1", Data: []data.Point{{Key: "a", Data: 1}, {Key: "b", Data: 2}}},
		{Key: "s2", Data: []data.Point{{Key: "a", Data: 3}, {Key: "b", Data: 4}}},
	}}
	store := NewStore()
	s := &Surface{Handler: store, XScale: scale.ForX(shape, 100), Shape: shape, Width: 100, Height: 100}
	s.Pointer(90, 50)

	sel := store.Current()
	if !sel.Active || sel.Keys[0] != "b" {
		t.Fatalf("selection = %+v, want b", sel)
	}
	if len(sel.Values) != 2 || sel.Values[0].Data != 2 || sel.Values[1].Data != 4 {
		t.Errorf("values = %+v, want one per series", sel.Values)
	}
	if len(sel.Series) != 2 {
		t.Errorf("series = %v", sel.Series)
	}
	s.PointerLeave()
	if store.Current().Active {
		t.Error("PointerLeave did not reset the store")
	}
}

func TestHitArc(t *testing.T) {
	c := geom.Pt(100, 100)
	arcs := []geom.Arc{
		{Key: "a", StartAngle: 0, EndAngle: math.Pi, OuterRadius: 50, Center: c},
		{Key: "b", StartAngle: math.Pi, EndAngle: geom.Tau, InnerRadius: 20, OuterRadius: 50, Center: c},
	}
	tests := []struct {
		name   string
		p      geom.Point
		want   any
		wantOK bool
	}{
		{"right half", geom.Pt(130, 100), "a", true},
		{"left half", geom.Pt(70, 100), "b", true},
		{"inside hole", geom.Pt(90, 100), nil, false},
		{"outside", geom.Pt(200, 100), nil, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := HitArc(arcs, tt.p)
			if ok != tt.wantOK || (ok && got.Key != tt.want) {
				t.Errorf("HitArc(%v) = %v, %v; want %v, %v", tt.p, got.Key, ok, tt.want, tt.wantOK)
			}
		})
	}
}

func TestPieSurface(t *testing.T) {
	store := NewStore()
	arcs := []geom.Arc{{Key: "x", Value: 1, StartAngle: 0, EndAngle: geom.Tau, OuterRadius: 10}}
	s := &PieSurface{Handler: store, Arcs: arcs}
	s.Pointer(3, 3)
	if sel := store.Current(); !sel.Active || sel.Keys[0] != "x" {
		t.Errorf("selection = %+v", sel)
	}
	s.Pointer(30, 30)
	if store.Current().Active {
		t.Error("pointer outside every arc should leave")
	}
}
