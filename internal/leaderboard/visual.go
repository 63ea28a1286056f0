package leaderboard

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/mwiater/lrmeval/internal/catalog"
	"github.com/mwiater/lrmeval/internal/ranking"
)

// ParseScore splits a "<mean> ± <std>" cell into its two numbers. The
// separator must match ranking.ScoreSeparator exactly.
func ParseScore(cell string) (mean, std float64, err error) {
	parts := strings.Split(strings.TrimSpace(cell), ranking.ScoreSeparator)
	if len(parts) != 2 {
		return 0, 0, fmt.Errorf("score %q: want \"<mean>%s<std>\"", cell, ranking.ScoreSeparator)
	}
	mean, err = strconv.ParseFloat(strings.TrimSpace(parts[0]), 64)
	if err != nil {
		return 0, 0, fmt.Errorf("score %q: mean: %w", cell, err)
	}
	std, err = strconv.ParseFloat(strings.TrimSpace(parts[1]), 64)
	if err != nil {
		return 0, 0, fmt.Errorf("score %q: std: %w", cell, err)
	}
	if !finite(mean) || !finite(std) {
		return 0, 0, fmt.Errorf("score %q: not a finite number", cell)
	}
	if std < 0 {
		return 0, 0, fmt.Errorf("score %q: negative std", cell)
	}
	return mean, std, nil
}

func finite(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}

// ParseVisual turns the visual results CSV into per-category buckets. The
// header row names the categories; unknown headers are ignored and empty
// cells are skipped. A row may be shorter than the header.
func ParseVisual(data []byte, cat catalog.Catalog) (Buckets, error) {
	reader := csv.NewReader(bytes.NewReader(data))
	reader.FieldsPerRecord = -1
	reader.TrimLeadingSpace = true

	records, err := reader.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("csv: parse visual results: %w", err)
	}
	if len(records) == 0 {
		return nil, fmt.Errorf("csv: visual results are empty (no header row)")
	}

	headers := records[0]
	buckets := VisualTaxonomy().Empty()
	seen := make(map[string]map[string]bool)

	for i, record := range records[1:] {
		if len(record) == 0 {
			continue
		}
		name := strings.TrimSpace(record[0])
		if name == "" {
			continue
		}
		info := cat.Lookup(name)

		for col := 1; col < len(headers) && col < len(record); col++ {
			category, ok := visualHeaders[strings.TrimSpace(headers[col])]
			cell := strings.TrimSpace(record[col])
			if !ok || cell == "" {
				continue
			}
			mean, std, err := ParseScore(cell)
			if err != nil {
				return nil, fmt.Errorf("csv: row %d column %q: %w", i+2, headers[col], err)
			}
			if seen[category] == nil {
				seen[category] = make(map[string]bool)
			}
			if seen[category][name] {
				return nil, fmt.Errorf("csv: row %d: duplicate model %q", i+2, name)
			}
			seen[category][name] = true
			buckets[category] = append(buckets[category], ranking.Result{
				Model:    name,
				Accuracy: mean,
				StdDev:   std,
				Category: category,
				Info:     info,
			})
		}
	}
	return buckets, nil
}
