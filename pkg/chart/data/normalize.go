package data

import (
	"encoding/json"
	"math"
	"time"

	"github.com/matzehuels/stackchart/pkg/errors"
)

// Normalize classifies raw into a canonical [Shape] and checks it fits t.
//
// raw may be a [Shape], []Point, []Series, or the generic []any /
// []map[string]any produced by decoding JSON or TOML. A generic element is
// nested when its "data" field is a list and shallow when it is a number.
//
// Multi-series types given shallow input, or single-series types given
// nested input, fail with SHAPE_MISMATCH. Empty input, mixed element kinds,
// non-finite values and duplicate keys fail with INVALID_INPUT.
func Normalize(raw any, t ChartType) (Shape, error) {
	t, err := ParseChartType(string(t))
	if err != nil {
		return Shape{}, err
	}
	shape, err := classify(raw)
	if err != nil {
		return Shape{}, err
	}
	if err := validate(shape); err != nil {
		return Shape{}, err
	}
	if shape.Kind != t.Kind() {
		return Shape{}, errors.ShapeMismatch("chart type %q requires %s data, got %s", t, t.Kind(), shape.Kind)
	}
	return shape, nil
}

func classify(raw any) (Shape, error) {
	switch v := raw.(type) {
	case nil:
		return Shape{}, errors.New(errors.ErrCodeInvalidInput, "no data")
	case Shape:
		return v, nil
	case *Shape:
		if v == nil {
			return Shape{}, errors.New(errors.ErrCodeInvalidInput, "no data")
		}
		return *v, nil
	case []Point:
		return Shape{Kind: Shallow, Points: v}, nil
	case []Series:
		return Shape{Kind: Nested, Series: v}, nil
	case []map[string]any:
		elems := make([]any, len(v))
		for i, m := range v {
			elems[i] = m
		}
		return decodeElements(elems)
	case []any:
		return decodeElements(v)
	case json.RawMessage:
		var elems []any
		if err := json.Unmarshal(v, &elems); err != nil {
			return Shape{}, errors.Wrap(errors.ErrCodeInvalidFormat, err, "decode data")
		}
		return decodeElements(elems)
	}
	return Shape{}, errors.New(errors.ErrCodeInvalidInput, "unsupported data type %T", raw)
}

func decodeElements(elems []any) (Shape, error) {
	if len(elems) == 0 {
		return Shape{}, errors.New(errors.ErrCodeInvalidInput, "no data")
	}
	var shape Shape
	for i, e := range elems {
		m, ok := e.(map[string]any)
		if !ok {
			return Shape{}, errors.New(errors.ErrCodeInvalidInput, "element %d: expected an object with key and data, got %T", i, e)
		}
		key, err := decodeKey(m["key"])
		if err != nil {
			return Shape{}, errors.Wrap(errors.ErrCodeInvalidInput, err, "element %d", i)
		}
		kind := Shallow
		if isList(m["data"]) {
			kind = Nested
		}
		if i == 0 {
			shape.Kind = kind
		} else if kind != shape.Kind {
			return Shape{}, errors.New(errors.ErrCodeInvalidInput, "element %d: cannot mix %s and %s elements", i, shape.Kind, kind)
		}

		if kind == Shallow {
			p, err := decodePoint(m)
			if err != nil {
				return Shape{}, errors.Wrap(errors.ErrCodeInvalidInput, err, "element %d", i)
			}
			shape.Points = append(shape.Points, p)
			continue
		}
		ser := Series{Key: key}
		for j, pe := range asList(m["data"]) {
			pm, ok := pe.(map[string]any)
			if !ok {
				return Shape{}, errors.New(errors.ErrCodeInvalidInput, "series %v point %d: expected an object, got %T", KeyString(key), j, pe)
			}
			if isList(pm["data"]) {
				return Shape{}, errors.New(errors.ErrCodeInvalidInput, "series %v point %d: series cannot nest further", KeyString(key), j)
			}
			p, err := decodePoint(pm)
			if err != nil {
				return Shape{}, errors.Wrap(errors.ErrCodeInvalidInput, err, "series %v point %d", KeyString(key), j)
			}
			ser.Data = append(ser.Data, p)
		}
		shape.Series = append(shape.Series, ser)
	}
	return shape, nil
}

func decodePoint(m map[string]any) (Point, error) {
	key, err := decodeKey(m["key"])
	if err != nil {
		return Point{}, err
	}
	v, ok := toFloat(m["data"])
	if !ok {
		return Point{}, errors.New(errors.ErrCodeInvalidInput, "key %v: data must be a number, got %T", KeyString(key), m["data"])
	}
	return Point{Key: key, Data: v, Metadata: m["metadata"]}, nil
}

func decodeKey(v any) (any, error) {
	switch k := v.(type) {
	case nil:
		return nil, errors.New(errors.ErrCodeInvalidInput, "missing key")
	case string, time.Time:
		return k, nil
	}
	if f, ok := toFloat(v); ok {
		return f, nil
	}
	return nil, errors.New(errors.ErrCodeInvalidInput, "unsupported key type %T", v)
}

func validate(s Shape) error {
	if s.Len() == 0 {
		return errors.New(errors.ErrCodeInvalidInput, "no data")
	}
	if s.Kind == Shallow {
		return validatePoints(s.Points, "")
	}
	seen := make(map[any]struct{}, len(s.Series))
	for _, ser := range s.Series {
		ck, ok := canonical(ser.Key)
		if !ok || ser.Key == nil {
			return errors.New(errors.ErrCodeInvalidInput, "invalid series key %v", ser.Key)
		}
		if _, dup := seen[ck]; dup {
			return errors.New(errors.ErrCodeInvalidInput, "duplicate series key %q", KeyString(ser.Key))
		}
		seen[ck] = struct{}{}
		if len(ser.Data) == 0 {
			return errors.New(errors.ErrCodeInvalidInput, "series %q has no points", KeyString(ser.Key))
		}
		if err := validatePoints(ser.Data, KeyString(ser.Key)); err != nil {
			return err
		}
	}
	return nil
}

func validatePoints(pts []Point, series string) error {
	where := ""
	if series != "" {
		where = "series " + series + ": "
	}
	seen := make(map[any]struct{}, len(pts))
	for i, p := range pts {
		ck, ok := canonical(p.Key)
		if !ok || p.Key == nil {
			return errors.New(errors.ErrCodeInvalidInput, "%spoint %d: invalid key %v", where, i, p.Key)
		}
		if _, dup := seen[ck]; dup {
			return errors.New(errors.ErrCodeInvalidInput, "%sduplicate key %q", where, KeyString(p.Key))
		}
		seen[ck] = struct{}{}
		if math.IsNaN(p.Data) || math.IsInf(p.Data, 0) {
			return errors.New(errors.ErrCodeInvalidInput, "%skey %q: value must be finite", where, KeyString(p.Key))
		}
	}
	return nil
}

func isList(v any) bool {
	switch v.(type) {
	case []any, []map[string]any:
		return true
	}
	return false
}

func asList(v any) []any {
	switch l := v.(type) {
	case []any:
		return l
	case []map[string]any:
		out := make([]any, len(l))
		for i, m := range l {
			out[i] = m
		}
		return out
	}
	return nil
}

func toFloat(v any) (float64, bool) {
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
	case uint64:
		return float64(n), true
	case json.Number:
		f, err := n.Float64()
		return f, err == nil
	}
	return 0, false
}
