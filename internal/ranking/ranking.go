// internal/ranking/ranking.go
// Package ranking orders benchmark results by accuracy and assigns shared
// ranks to models whose one-standard-deviation bands mutually overlap.
package ranking

import (
	"sort"

	"github.com/mwiater/lrmeval/internal/catalog"
)

// Result is one model's score on one benchmark category.
type Result struct {
	Model    string       `json:"model"`
	Accuracy float64      `json:"accuracy"`
	StdDev   float64      `json:"std"`
	Category string       `json:"category"`
	Info     catalog.Info `json:"info"`
}

// Ranked is a Result with its position on the leaderboard.
type Ranked struct {
	Result
	Rank int `json:"rank"`
}

// Group is a run of results, contiguous in sorted order, that all share one
// rank.
type Group []Result

// Tied reports whether each result's accuracy falls inside the other's
// accuracy ± std band. Bounds are inclusive.
func Tied(a, b Result) bool {
	return within(b.Accuracy, a) && within(a.Accuracy, b)
}

func within(v float64, r Result) bool {
	return v >= r.Accuracy-r.StdDev && v <= r.Accuracy+r.StdDev
}

// Sort returns a copy of results ordered by accuracy, highest first. Results
// with equal accuracy keep their input order.
func Sort(results []Result) []Result {
	sorted := make([]Result, len(results))
	copy(sorted, results)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].Accuracy > sorted[j].Accuracy
	})
	return sorted
}

// GroupTies splits accuracy-sorted results into tie groups.
//
// A result joins the open group only if it is tied with every current member
// and, once added, every pair in the enlarged group is still tied. Otherwise
// the open group is closed and the result starts the next one. Tied is not
// transitive, so a chain A~B, B~C with A!~C never collapses into one group.
func GroupTies(sorted []Result) []Group {
	if len(sorted) == 0 {
		return nil
	}

	var groups []Group
	current := Group{sorted[0]}
	for _, candidate := range sorted[1:] {
		if current.tiedWithAll(candidate) {
			enlarged := append(append(Group{}, current...), candidate)
			if enlarged.allPairsTied() {
				current = enlarged
				continue
			}
		}
		groups = append(groups, current)
		current = Group{candidate}
	}
	return append(groups, current)
}

func (g Group) tiedWithAll(r Result) bool {
	for _, member := range g {
		if !Tied(r, member) {
			return false
		}
	}
	return true
}

func (g Group) allPairsTied() bool {
	for i := range g {
		for j := range g {
			if i != j && !Tied(g[i], g[j]) {
				return false
			}
		}
	}
	return true
}

// Rank sorts results and assigns ranks. Every member of a tie group gets the
// same rank, and the next group starts at 1 + the number of results placed
// before it, so a three-way tie at 1 is followed by rank 4.
func Rank(results []Result) []Ranked {
	ranked := make([]Ranked, 0, len(results))
	rank := 1
	for _, group := range GroupTies(Sort(results)) {
		for _, r := range group {
			ranked = append(ranked, Ranked{Result: r, Rank: rank})
		}
		rank += len(group)
	}
	return ranked
}

// Ranks returns just the rank numbers of ranked, in order.
func Ranks(ranked []Ranked) []int {
	out := make([]int, len(ranked))
	for i, r := range ranked {
		out[i] = r.Rank
	}
	return out
}
