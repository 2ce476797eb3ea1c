package scale

import (
	"math"
	"time"

	"github.com/matzehuels/stackchart/pkg/chart/data"
)

// ForX picks an x scale for the shape's keys spanning [0, width]: [Linear]
// when every key is numeric, [Time] when every key is temporal, [Point]
// otherwise.
func ForX(s data.Shape, width float64) Invertible {
	keys := s.AllKeys()
	if len(keys) == 0 {
		return NewPoint(nil, 0, width)
	}
	numeric, temporal := true, true
	for _, k := range keys {
		switch k.(type) {
		case time.Time:
			numeric = false
		case string, nil, bool:
			numeric, temporal = false, false
		default:
			if _, ok := Float(k); !ok {
				numeric, temporal = false, false
			}
			temporal = false
		}
	}
	switch {
	case numeric:
		lo, hi := math.Inf(1), math.Inf(-1)
		for _, k := range keys {
			f, _ := Float(k)
			lo, hi = math.Min(lo, f), math.Max(hi, f)
		}
		return NewLinear(lo, hi, 0, width)
	case temporal:
		lo, hi := keys[0].(time.Time), keys[0].(time.Time)
		for _, k := range keys[1:] {
			ts := k.(time.Time)
			if ts.Before(lo) {
				lo = ts
			}
			if ts.After(hi) {
				hi = ts
			}
		}
		return NewTime(lo, hi, 0, width)
	}
	p := NewPoint(keys, 0, width)
	p.Equal = data.KeyEqual
	return p
}

// ForY returns a y scale spanning [height, 0] (SVG y grows downward) whose
// domain covers the values of s as laid out by t. Stacked layouts cover
// the per-key totals and normalized layouts cover [0, 1]. The domain
// always includes zero.
func ForY(s data.Shape, t data.ChartType, height float64) *Linear {
	lo, hi := 0.0, 0.0
	switch {
	case t == data.StackedNormalized:
		hi = 1
	case t.IsStacked() && s.Kind == data.Nested:
		for _, k := range s.AllKeys() {
			pos, neg := 0.0, 0.0
			for _, ser := range s.Series {
				if i := data.Find(ser.Data, k); i >= 0 {
					if v := ser.Data[i].Data; v >= 0 {
						pos += v
					} else {
						neg += v
					}
				}
			}
			hi, lo = math.Max(hi, pos), math.Min(lo, neg)
		}
	default:
		visit := func(pts []data.Point) {
			for _, p := range pts {
				hi, lo = math.Max(hi, p.Data), math.Min(lo, p.Data)
			}
		}
		visit(s.Points)
		for _, ser := range s.Series {
			visit(ser.Data)
		}
	}
	if lo == hi {
		hi = lo + 1
	}
	return NewLinear(lo, hi, height, 0)
}
