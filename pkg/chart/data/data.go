// Package data classifies raw chart input into the two canonical shapes
// consumed by the geometry builders.
//
// A shallow shape is one ordered sequence of [Point] values and backs
// single-series charts (standard area, pie). A nested shape is an ordered
// sequence of [Series], each holding its own points, and backs grouped and
// stacked area charts. [Normalize] accepts already-typed slices as well as
// the generic values produced by decoding JSON or TOML, and rejects input
// whose shape does not fit the requested [ChartType].
package data

import (
	"fmt"
	"math"
	"time"
)

// Point is one key/value pair of a single series. Key must be comparable;
// numeric keys are held as float64 and temporal keys as [time.Time].
type Point struct {
	Key      any     `json:"key" toml:"key" bson:"key"`
	Data     float64 `json:"data" toml:"data" bson:"data"`
	Metadata any     `json:"metadata,omitempty" toml:"metadata,omitempty" bson:"metadata,omitempty"`
}

// Series is a named sequence of points.
type Series struct {
	Key  any     `json:"key" toml:"key" bson:"key"`
	Data []Point `json:"data" toml:"data" bson:"data"`
}

// Kind tags which field of a [Shape] is populated.
type Kind int

const (
	// Shallow data is a single sequence of points.
	Shallow Kind = iota
	// Nested data is a list of series, each a sequence of points.
	Nested
)

func (k Kind) String() string {
	if k == Nested {
		return "nested"
	}
	return "shallow"
}

// Shape is the canonical chart input: Points when Kind is Shallow, Series
// when Kind is Nested.
type Shape struct {
	Kind   Kind
	Points []Point
	Series []Series
}

// Keys returns the x-axis keys in input order. For nested shapes the keys
// of the first series are returned.
func (s Shape) Keys() []any {
	pts := s.Points
	if s.Kind == Nested {
		if len(s.Series) == 0 {
			return nil
		}
		pts = s.Series[0].Data
	}
	keys := make([]any, len(pts))
	for i, p := range pts {
		keys[i] = p.Key
	}
	return keys
}

// AllKeys returns every distinct point key across all series, in first-seen
// order.
func (s Shape) AllKeys() []any {
	if s.Kind == Shallow {
		return s.Keys()
	}
	var keys []any
	seen := make(map[any]struct{})
	for _, ser := range s.Series {
		for _, p := range ser.Data {
			ck, _ := canonical(p.Key)
			if _, ok := seen[ck]; ok {
				continue
			}
			seen[ck] = struct{}{}
			keys = append(keys, p.Key)
		}
	}
	return keys
}

// SeriesKeys returns the series keys of a nested shape, nil otherwise.
func (s Shape) SeriesKeys() []any {
	if s.Kind != Nested {
		return nil
	}
	keys := make([]any, len(s.Series))
	for i, ser := range s.Series {
		keys[i] = ser.Key
	}
	return keys
}

// Len returns the number of points (shallow) or series (nested).
func (s Shape) Len() int {
	if s.Kind == Nested {
		return len(s.Series)
	}
	return len(s.Points)
}

// KeyEqual reports whether two keys denote the same value. Times compare
// by instant and integers compare equal to the same float64.
func KeyEqual(a, b any) bool {
	ca, okA := canonical(a)
	cb, okB := canonical(b)
	return okA && okB && ca == cb
}

// KeyString formats a key for ids, labels and cache keys.
func KeyString(k any) string {
	switch v := k.(type) {
	case nil:
		return ""
	case string:
		return v
	case time.Time:
		return v.UTC().Format(time.RFC3339)
	case float64:
		return fmt.Sprintf("%g", v)
	default:
		return fmt.Sprint(v)
	}
}

// Find returns the index of the point with key k, or -1.
func Find(pts []Point, k any) int {
	for i, p := range pts {
		if KeyEqual(p.Key, k) {
			return i
		}
	}
	return -1
}

// canonical maps a key to a hashable value with one representation per
// logical key.
func canonical(k any) (any, bool) {
	switch v := k.(type) {
	case nil:
		return nil, true
	case time.Time:
		return timeKey(v.UnixNano()), true
	case float32:
		return float64(v), true
	case int:
		return float64(v), true
	case int32:
		return float64(v), true
	case int64:
		return float64(v), true
	case uint:
		return float64(v), true
	case uint64:
		return float64(v), true
	case float64:
		if math.IsNaN(v) {
			return nil, false
		}
		return v, true
	case string, bool:
		return v, true
	}
	return nil, false
}

type timeKey int64
