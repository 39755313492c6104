package viewer

import (
	"fmt"
	"math"
	"sort"
)

// NullLabel is the category label used for missing values in value counts.
const NullLabel = "(null)"

// scanBatchSize bounds how many values are materialized at once while
// scanning a full column.
const scanBatchSize = 8192

// ValueCount is one entry of a per-column frequency table.
type ValueCount struct {
	Value   string  `json:"value"`
	Count   int64   `json:"count"`
	Percent float64 `json:"percent"`
}

// ValueCounts is the frequency distribution of one column across the entire
// dataset, sorted descending by count. Ties keep first-encountered order.
type ValueCounts struct {
	Column string       `json:"column"`
	Total  int64        `json:"total"`
	Counts []ValueCount `json:"counts"`
}

// Analyze computes value counts for the named column by scanning every row
// of the source in bounded batches. Missing values are grouped into a single
// NullLabel category. Percentages are rounded to two decimals. An empty
// dataset yields an empty result.
func Analyze(src TableSource, column string) (ValueCounts, error) {
	index := -1
	for i, name := range src.Columns() {
		if name == column {
			index = i
			break
		}
	}
	if index < 0 {
		return ValueCounts{}, fmt.Errorf("%q: %w", column, ErrColumnNotFound)
	}

	total := src.NumRows()
	result := ValueCounts{Column: column, Total: total}
	if total == 0 {
		return result, nil
	}

	counts := make(map[string]int64)
	var seen []string // first-encountered order, for stable ties
	for offset := int64(0); offset < total; offset += scanBatchSize {
		length := int64(scanBatchSize)
		if offset+length > total {
			length = total - offset
		}
		values, err := src.ColumnValues(index, offset, length)
		if err != nil {
			return ValueCounts{}, fmt.Errorf("scan column %q: %w", column, err)
		}
		for _, v := range values {
			key := NullLabel
			if v != nil {
				key = *v
			}
			if _, ok := counts[key]; !ok {
				seen = append(seen, key)
			}
			counts[key]++
		}
	}

	result.Counts = make([]ValueCount, 0, len(seen))
	for _, value := range seen {
		count := counts[value]
		percent := math.Round(float64(count)/float64(total)*100*100) / 100
		result.Counts = append(result.Counts, ValueCount{Value: value, Count: count, Percent: percent})
	}
	sort.SliceStable(result.Counts, func(i, j int) bool {
		return result.Counts[i].Count > result.Counts[j].Count
	})

	return result, nil
}
