package ranking

import "testing"

func TestMedal(t *testing.T) {
	cases := []struct {
		rank int
		acc  float64
		want string
	}{
		{1, 80, "🥇"},
		{2, 80, "🥈"},
		{3, 80, "🥉"},
		{4, 80, ""},
		{1, 0, ""},
	}
	for _, tc := range cases {
		if got := Medal(tc.rank, tc.acc); got != tc.want {
			t.Fatalf("Medal(%d, %v) = %q, want %q", tc.rank, tc.acc, got, tc.want)
		}
	}
}

func TestRankLabelAndScore(t *testing.T) {
	scored := Ranked{Result: Result{Accuracy: 61.14, StdDev: 0.56}, Rank: 7}
	if got := RankLabel(scored); got != "7" {
		t.Fatalf("RankLabel = %q, want 7", got)
	}
	if got := FormatScore(scored.Result); got != "61.1 ± 0.6" {
		t.Fatalf("FormatScore = %q", got)
	}

	missing := Ranked{Result: Result{Accuracy: 0, StdDev: 0}, Rank: 12}
	if got := RankLabel(missing); got != "-" {
		t.Fatalf("RankLabel(no data) = %q, want -", got)
	}
	if got := FormatScore(missing.Result); got != "N/A" {
		t.Fatalf("FormatScore(no data) = %q, want N/A", got)
	}
	if missing.Podium() {
		t.Fatal("missing result should not be on the podium")
	}
}
