// Package scale maps data-domain values to pixel coordinates.
//
// Builders treat scales as opaque monotonic functions: [Scale] maps a value
// to a pixel and [Invertible] additionally maps a pixel back to the nearest
// domain value, which the interaction surface uses to resolve hover
// positions. Three implementations are provided: [Linear] for numbers,
// [Time] for timestamps and [Point] for ordinal keys.
package scale

import (
	"encoding/json"
	"math"
	"time"
)

// Scale maps a domain value to a pixel coordinate. Values the scale cannot
// place map to NaN.
type Scale interface {
	Scale(v any) float64
}

// Invertible is a Scale that can map pixels back to domain values.
type Invertible interface {
	Scale
	Invert(px float64) any
}

// Linear is a continuous numeric scale.
type Linear struct {
	Domain [2]float64
	Range  [2]float64
	// Clamp restricts Invert output to the domain.
	Clamp bool
}

// NewLinear returns a linear scale from domain [d0, d1] to range [r0, r1].
func NewLinear(d0, d1, r0, r1 float64) *Linear {
	return &Linear{Domain: [2]float64{d0, d1}, Range: [2]float64{r0, r1}, Clamp: true}
}

// Scale implements [Scale]. A collapsed domain maps everything to the
// middle of the range.
func (l *Linear) Scale(v any) float64 {
	f, ok := Float(v)
	if !ok {
		return math.NaN()
	}
	d0, d1 := l.Domain[0], l.Domain[1]
	r0, r1 := l.Range[0], l.Range[1]
	if d0 == d1 {
		return (r0 + r1) / 2
	}
	return r0 + (f-d0)/(d1-d0)*(r1-r0)
}

// Invert implements [Invertible] and returns a float64.
func (l *Linear) Invert(px float64) any {
	d0, d1 := l.Domain[0], l.Domain[1]
	r0, r1 := l.Range[0], l.Range[1]
	if r0 == r1 {
		return d0
	}
	v := d0 + (px-r0)/(r1-r0)*(d1-d0)
	if l.Clamp {
		v = math.Max(math.Min(d0, d1), math.Min(math.Max(d0, d1), v))
	}
	return v
}

// Time is a continuous scale over timestamps.
type Time struct {
	Domain [2]time.Time
	Range  [2]float64
}

// NewTime returns a time scale from [t0, t1] to [r0, r1].
func NewTime(t0, t1 time.Time, r0, r1 float64) *Time {
	return &Time{Domain: [2]time.Time{t0, t1}, Range: [2]float64{r0, r1}}
}

func (t *Time) linear() *Linear {
	return NewLinear(unixMilli(t.Domain[0]), unixMilli(t.Domain[1]), t.Range[0], t.Range[1])
}

// Scale implements [Scale]. It accepts [time.Time], RFC 3339 or
// YYYY-MM-DD strings, and Unix milliseconds.
func (t *Time) Scale(v any) float64 {
	ts, ok := AsTime(v)
	if !ok {
		return math.NaN()
	}
	return t.linear().Scale(unixMilli(ts))
}

// Invert implements [Invertible] and returns a [time.Time].
func (t *Time) Invert(px float64) any {
	ms := t.linear().Invert(px).(float64)
	return time.UnixMilli(int64(math.Round(ms))).In(t.Domain[0].Location())
}

// Point is an ordinal scale placing each domain key at evenly spaced
// positions across the range.
type Point struct {
	Domain []any
	Range  [2]float64
	// Padding is the outer padding in multiples of the step.
	Padding float64
	// Equal reports whether two keys are the same. Defaults to ==.
	Equal func(a, b any) bool
}

// NewPoint returns a point scale over keys spread across [r0, r1].
func NewPoint(keys []any, r0, r1 float64) *Point {
	return &Point{Domain: keys, Range: [2]float64{r0, r1}}
}

func (p *Point) step() (start, step float64) {
	n := float64(len(p.Domain))
	r0, r1 := p.Range[0], p.Range[1]
	step = (r1 - r0) / math.Max(1, n-1+p.Padding*2)
	start = r0 + (r1-r0-step*(n-1))/2
	return start, step
}

func (p *Point) index(v any) int {
	eq := p.Equal
	if eq == nil {
		eq = func(a, b any) bool { return a == b }
	}
	for i, k := range p.Domain {
		if eq(k, v) {
			return i
		}
	}
	return -1
}

// Scale implements [Scale]. Keys outside the domain map to NaN.
func (p *Point) Scale(v any) float64 {
	i := p.index(v)
	if i < 0 {
		return math.NaN()
	}
	start, step := p.step()
	return start + step*float64(i)
}

// Invert implements [Invertible] and returns the nearest domain key, or
// nil for an empty domain.
func (p *Point) Invert(px float64) any {
	if len(p.Domain) == 0 {
		return nil
	}
	start, step := p.step()
	if step == 0 {
		return p.Domain[0]
	}
	i := int(math.Round((px - start) / step))
	i = max(0, min(len(p.Domain)-1, i))
	return p.Domain[i]
}

// Float converts a numeric domain value to float64.
func Float(v any) (float64, bool) {
	switch n := v.(type) {
	case float64:
		return n, true
	case float32:
		return float64(n), true
	case int:
		return float64(n), true
	case int32:
		return float64(n), true
	case int64:
		return float64(n), true
	case uint:
		return float64(n), true
	case uint64:
		return float64(n), true
	case json.Number:
		f, err := n.Float64()
		return f, err == nil
	case time.Time:
		return unixMilli(n), true
	}
	return 0, false
}

// AsTime converts a temporal domain value to [time.Time].
func AsTime(v any) (time.Time, bool) {
	switch t := v.(type) {
	case time.Time:
		return t, true
	case string:
		for _, layout := range []string{time.RFC3339Nano, time.DateTime, time.DateOnly} {
			if ts, err := time.Parse(layout, t); err == nil {
				return ts, true
			}
		}
		return time.Time{}, false
	}
	if f, ok := Float(v); ok {
		return time.UnixMilli(int64(f)).UTC(), true
	}
	return time.Time{}, false
}

func unixMilli(t time.Time) float64 {
	return float64(t.UnixNano()) / 1e6
}
