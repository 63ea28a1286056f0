package ranking

import (
	"fmt"
	"strconv"
)

// ScoreSeparator sits between the mean and the standard deviation wherever a
// score is written out, in the result CSV as well as on the page.
const ScoreSeparator = " ± "

// Available reports whether the result carries a real score. An accuracy of
// exactly zero means the category has no data for the model.
func (r Result) Available() bool {
	return r.Accuracy > 0
}

// Medal returns the medal for the top three ranks, or "" otherwise. Results
// without a score never get a medal.
func Medal(rank int, accuracy float64) string {
	if accuracy <= 0 {
		return ""
	}
	switch rank {
	case 1:
		return "🥇"
	case 2:
		return "🥈"
	case 3:
		return "🥉"
	default:
		return ""
	}
}

// RankLabel is the rank as displayed: the number, or "-" when there is no
// score.
func RankLabel(r Ranked) string {
	if !r.Available() {
		return "-"
	}
	return strconv.Itoa(r.Rank)
}

// FormatScore renders accuracy ± std to one decimal place, or "N/A" when the
// result has no score.
func FormatScore(r Result) string {
	if !r.Available() {
		return "N/A"
	}
	return fmt.Sprintf("%.1f%s%.1f", r.Accuracy, ScoreSeparator, r.StdDev)
}

// Podium reports whether the rank gets the highlighted top-three styling.
func (r Ranked) Podium() bool {
	return r.Available() && r.Rank <= 3
}
