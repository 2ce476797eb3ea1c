package data

import (
	"strings"

	"github.com/matzehuels/stackchart/pkg/errors"
)

// ChartType selects the layout a shape is rendered with.
type ChartType string

const (
	Standard          ChartType = "standard"
	Grouped           ChartType = "grouped"
	Stacked           ChartType = "stacked"
	StackedNormalized ChartType = "stackedNormalized"
	Pie               ChartType = "pie"
)

// ChartTypes lists every supported chart type.
var ChartTypes = []ChartType{Standard, Grouped, Stacked, StackedNormalized, Pie}

// ParseChartType validates s and returns the matching type. Matching is
// case-insensitive; the empty string selects [Standard].
func ParseChartType(s string) (ChartType, error) {
	if s == "" {
		return Standard, nil
	}
	for _, t := range ChartTypes {
		if strings.EqualFold(string(t), s) {
			return t, nil
		}
	}
	return "", errors.New(errors.ErrCodeInvalidType, "unknown chart type %q (valid: standard, grouped, stacked, stackedNormalized, pie)", s)
}

// IsMultiSeries reports whether t requires nested input.
func (t ChartType) IsMultiSeries() bool {
	return t == Grouped || t == Stacked || t == StackedNormalized
}

// IsStacked reports whether series are stacked on top of each other.
func (t ChartType) IsStacked() bool {
	return t == Stacked || t == StackedNormalized
}

// Kind returns the shape kind t requires.
func (t ChartType) Kind() Kind {
	if t.IsMultiSeries() {
		return Nested
	}
	return Shallow
}
