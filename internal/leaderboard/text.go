package leaderboard

import (
	"encoding/json"
	"fmt"
	"sort"
	"strings"

	"github.com/mwiater/lrmeval/internal/catalog"
	"github.com/mwiater/lrmeval/internal/ranking"
	"github.com/xeipuuv/gojsonschema"
)

// Buckets holds the results of one task grouping keyed by category.
type Buckets map[string][]ranking.Result

// Count returns the total number of results across all categories.
func (b Buckets) Count() int {
	n := 0
	for _, results := range b {
		n += len(results)
	}
	return n
}

// textResultsSchema is the accepted shape of the text results document.
var textResultsSchema = map[string]any{
	"type":     "object",
	"required": []string{"models"},
	"properties": map[string]any{
		"models": map[string]any{
			"type": "object",
			"additionalProperties": map[string]any{
				"type": "object",
				"properties": map[string]any{
					"accuracy": map[string]any{
						"type": []string{"object", "null"},
						"properties": map[string]any{
							"mean": map[string]any{"type": []string{"number", "null"}},
							"std":  map[string]any{"type": []string{"number", "null"}, "minimum": 0},
						},
					},
					"per_benchmark": map[string]any{
						"type":       []string{"object", "null"},
						"properties": benchmarkSchemas(),
					},
				},
			},
		},
	},
}

// benchmarkSchemas constrains the per_benchmark entries that map to a
// category. Other keys are ignored, whatever their shape.
func benchmarkSchemas() map[string]any {
	props := make(map[string]any, len(textBenchmarkKeys))
	for _, k := range textBenchmarkKeys {
		props[k.Key] = map[string]any{
			"type": []string{"object", "null"},
			"properties": map[string]any{
				"accuracy":     map[string]any{"type": []string{"number", "null"}},
				"accuracy_std": map[string]any{"type": []string{"number", "null"}, "minimum": 0},
			},
		}
	}
	return props
}

type textDocument struct {
	Models map[string]textModel `json:"models"`
}

type textModel struct {
	Accuracy     *meanStd                   `json:"accuracy"`
	PerBenchmark map[string]json.RawMessage `json:"per_benchmark"`
}

type meanStd struct {
	Mean *float64 `json:"mean"`
	Std  *float64 `json:"std"`
}

type benchmarkScore struct {
	Accuracy    *float64 `json:"accuracy"`
	AccuracyStd *float64 `json:"accuracy_std"`
}

// ValidateText checks data against the text results schema.
func ValidateText(data []byte) error {
	result, err := gojsonschema.Validate(
		gojsonschema.NewGoLoader(textResultsSchema),
		gojsonschema.NewBytesLoader(data),
	)
	if err != nil {
		return fmt.Errorf("schema validation error: %w", err)
	}
	if result.Valid() {
		return nil
	}
	var details []string
	for _, desc := range result.Errors() {
		details = append(details, desc.String())
	}
	return fmt.Errorf("text results failed validation: %s", strings.Join(details, "; "))
}

// ParseText turns the text results document into per-category buckets.
//
// The overall bucket gets a model only when both its mean and std are set.
// Per-benchmark entries without accuracy_std fall back to DefaultStd. A model
// appears at most once per category.
func ParseText(data []byte, cat catalog.Catalog) (Buckets, error) {
	if err := ValidateText(data); err != nil {
		return nil, err
	}
	var doc textDocument
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("decode text results: %w", err)
	}

	buckets := TextTaxonomy().Empty()

	names := make([]string, 0, len(doc.Models))
	for name := range doc.Models {
		names = append(names, name)
	}
	sort.Strings(names)

	for _, name := range names {
		m := doc.Models[name]
		info := cat.Lookup(name)

		if m.Accuracy != nil && m.Accuracy.Mean != nil && m.Accuracy.Std != nil {
			buckets[Overall] = append(buckets[Overall], ranking.Result{
				Model:    name,
				Accuracy: *m.Accuracy.Mean,
				StdDev:   *m.Accuracy.Std,
				Category: Overall,
				Info:     info,
			})
		}

		seen := make(map[string]bool)
		for _, k := range textBenchmarkKeys {
			raw, ok := m.PerBenchmark[k.Key]
			if !ok || seen[k.Category] {
				continue
			}
			var bench *benchmarkScore
			if err := json.Unmarshal(raw, &bench); err != nil {
				return nil, fmt.Errorf("decode %s/%s: %w", name, k.Key, err)
			}
			if bench == nil || bench.Accuracy == nil {
				continue
			}
			std := DefaultStd
			if bench.AccuracyStd != nil {
				std = *bench.AccuracyStd
			}
			seen[k.Category] = true
			buckets[k.Category] = append(buckets[k.Category], ranking.Result{
				Model:    name,
				Accuracy: *bench.Accuracy,
				StdDev:   std,
				Category: k.Category,
				Info:     info,
			})
		}
	}
	return buckets, nil
}
