package core

import (
	"math"
	"strconv"
	"strings"

	"github.com/montanaflynn/stats"
)

// RowSummary describes the numeric spread of a parameter row.
type RowSummary struct {
	Min    float64 `json:"min"`
	Max    float64 `json:"max"`
	Mean   float64 `json:"mean"`
	Spread float64 `json:"spread"`
}

// SummarizeRow computes a RowSummary when every value parses as a number.
// Rows containing Sentinel, non-numeric text, or a non-finite value such as
// NaN or Inf return false.
func SummarizeRow(values []string) (RowSummary, bool) {
	if len(values) == 0 {
		return RowSummary{}, false
	}

	data := make(stats.Float64Data, 0, len(values))
	for _, v := range values {
		f, err := strconv.ParseFloat(strings.TrimSpace(v), 64)
		if err != nil || math.IsNaN(f) || math.IsInf(f, 0) {
			return RowSummary{}, false
		}
		data = append(data, f)
	}

	lo, err := stats.Min(data)
	if err != nil {
		return RowSummary{}, false
	}
	hi, err := stats.Max(data)
	if err != nil {
		return RowSummary{}, false
	}
	mean, err := stats.Mean(data)
	if err != nil {
		return RowSummary{}, false
	}

	return RowSummary{Min: lo, Max: hi, Mean: mean, Spread: hi - lo}, true
}

// Summaries returns numeric summaries for the divergent rows of m, keyed by
// parameter name.
func Summaries(m ComparisonMatrix) map[string]RowSummary {
	out := make(map[string]RowSummary)
	for _, row := range m.Rows {
		if !row.Divergent {
			continue
		}
		if s, ok := SummarizeRow(row.Values); ok {
			out[row.Parameter] = s
		}
	}
	return out
}
