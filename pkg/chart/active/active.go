// Package active holds the hover selection shared by every sub-element of
// a chart.
//
// A chart root owns one [Store]. Interaction surfaces ([Surface] for
// area charts, [PieSurface] for arc charts) translate pointer positions
// into hover events on the store, and the geometry builders read the
// current [Selection] by value on every render. There is no event queue:
// the store holds only the latest selection, so bursts of pointer moves
// coalesce and no consumer observes a selection from an earlier gesture.
package active

import (
	"slices"

	"github.com/matzehuels/stackchart/pkg/chart/data"
)

// Selection is the current hover state. The zero value is Idle.
type Selection struct {
	// Active is false while idle.
	Active bool `json:"active"`
	// Keys are the hovered point keys.
	Keys []any `json:"keys,omitempty"`
	// Series are the series keys highlighted along with Keys.
	Series []any `json:"series,omitempty"`
	// Values are the hovered points, one per highlighted series.
	Values []data.Point `json:"values,omitempty"`
	// Coordinate is the pixel position of the hovered key: x for area
	// charts, the bisector angle for arcs.
	Coordinate float64 `json:"coordinate"`
}

// Matches reports whether an element keyed k belongs to the selection.
// Everything matches while idle, and a nil key denotes an element that
// belongs to the whole chart.
func (s Selection) Matches(k any) bool {
	if !s.Active || k == nil {
		return true
	}
	return containsKey(s.Keys, k) || containsKey(s.Series, k)
}

// Equal reports whether two selections describe the same state.
func (s Selection) Equal(o Selection) bool {
	if s.Active != o.Active {
		return false
	}
	if !s.Active {
		return true
	}
	return s.Coordinate == o.Coordinate &&
		slices.EqualFunc(s.Keys, o.Keys, data.KeyEqual) &&
		slices.EqualFunc(s.Series, o.Series, data.KeyEqual) &&
		slices.EqualFunc(s.Values, o.Values, func(a, b data.Point) bool {
			return data.KeyEqual(a.Key, b.Key) && a.Data == b.Data
		})
}

// Clone returns a deep copy of the selection's slices.
func (s Selection) Clone() Selection {
	s.Keys = slices.Clone(s.Keys)
	s.Series = slices.Clone(s.Series)
	s.Values = slices.Clone(s.Values)
	return s
}

// Hover is the payload of an enter or move event.
type Hover struct {
	Keys       []any
	Series     []any
	Values     []data.Point
	Coordinate float64
}

func (h Hover) selection() Selection {
	return Selection{
		Active:     true,
		Keys:       slices.Clone(h.Keys),
		Series:     slices.Clone(h.Series),
		Values:     slices.Clone(h.Values),
		Coordinate: h.Coordinate,
	}
}

// Handler receives hover events from an interaction surface.
type Handler interface {
	Enter(Hover)
	Move(Hover)
	Leave()
}

func containsKey(keys []any, k any) bool {
	return slices.ContainsFunc(keys, func(x any) bool { return data.KeyEqual(x, k) })
}
