package area

import (
	"github.com/matzehuels/stackchart/pkg/chart/data"
	"github.com/matzehuels/stackchart/pkg/errors"
)

// Band is one point of a laid-out series: the value and the band it
// occupies between baseline Y0 and top Y1, in data units.
type Band struct {
	Key   any
	Value float64
	Y0    float64
	Y1    float64
}

// Stack lays out the series of s for chart type t. The result holds one
// band slice per series, in input order. Standard input is treated as a
// single series.
//
// Grouped series all sit on zero. Stacked series sit on the running total
// of the series before them at the same key, and normalized stacks divide
// every band by the per-key total so each key sums to one. Both stacked
// modes require every series to share the same keys in the same order.
func Stack(s data.Shape, t data.ChartType) ([][]Band, error) {
	series := seriesPoints(s)
	out := make([][]Band, len(series))

	if !t.IsStacked() {
		for i, pts := range series {
			out[i] = make([]Band, len(pts))
			for j, p := range pts {
				out[i][j] = Band{Key: p.Key, Value: p.Data, Y1: p.Data}
			}
		}
		return out, nil
	}

	if err := checkAligned(s); err != nil {
		return nil, err
	}
	if len(series) == 0 {
		return out, nil
	}
	n := len(series[0])
	totals := make([]float64, n)
	if t == data.StackedNormalized {
		for _, pts := range series {
			for j, p := range pts {
				totals[j] += p.Data
			}
		}
	}
	base := make([]float64, n)
	for i, pts := range series {
		out[i] = make([]Band, n)
		for j, p := range pts {
			v := p.Data
			if t == data.StackedNormalized {
				if totals[j] == 0 {
					v = 0
				} else {
					v /= totals[j]
				}
			}
			out[i][j] = Band{Key: p.Key, Value: p.Data, Y0: base[j], Y1: base[j] + v}
			base[j] += v
		}
	}
	return out, nil
}

func seriesPoints(s data.Shape) [][]data.Point {
	if s.Kind == data.Shallow {
		return [][]data.Point{s.Points}
	}
	out := make([][]data.Point, len(s.Series))
	for i, ser := range s.Series {
		out[i] = ser.Data
	}
	return out
}

func checkAligned(s data.Shape) error {
	if s.Kind != data.Nested || len(s.Series) == 0 {
		return nil
	}
	ref := s.Series[0]
	for _, ser := range s.Series[1:] {
		if len(ser.Data) != len(ref.Data) {
			return errors.StackAlignment("series %q has %d points, series %q has %d",
				data.KeyString(ser.Key), len(ser.Data), data.KeyString(ref.Key), len(ref.Data))
		}
		for j, p := range ser.Data {
			if !data.KeyEqual(p.Key, ref.Data[j].Key) {
				return errors.StackAlignment("series %q point %d has key %q, series %q has %q",
					data.KeyString(ser.Key), j, data.KeyString(p.Key), data.KeyString(ref.Key), data.KeyString(ref.Data[j].Key))
			}
		}
	}
	return nil
}
