package popularity

import (
	"testing"
	"time"

	"github.com/wwwqqqzzz/blog-sub000/internal/domain/post"
)

var fixedNow = time.Date(2024, 6, 20, 15, 0, 0, 0, time.UTC)

func clock() time.Time { return fixedNow }

func daysAgo(n int) string {
	return post.FormatDate(fixedNow.AddDate(0, 0, -n))
}

func TestScore_PopularityScenario(t *testing.T) {
	p := post.New(post.Fields{Link: "/a", Featured: true, Date: daysAgo(3)})
	got := NewScorer(DefaultWeights(), clock).Score(p, 10)

	if got.Detail.Views != 5 || got.Detail.Featured != 3 || got.Detail.Recency != 3 {
		t.Errorf("Detail = %+v, want views=5 featured=3 recency=3", got.Detail)
	}
	if got.Total != 11 {
		t.Errorf("Total = %v, want 11", got.Total)
	}
}

func TestScore_Views(t *testing.T) {
	tests := []struct {
		views int64
		want  float64
	}{
		{0, 0},
		{1, 0},
		{3, 1},
		{9, 4},
		{10, 5},
		{1000, 5},
		{-4, 0},
	}
	s := NewScorer(DefaultWeights(), clock)
	for _, tc := range tests {
		p := post.New(post.Fields{Link: "/a"})
		if got := s.Score(p, tc.views).Detail.Views; got != tc.want {
			t.Errorf("views=%d: got %v, want %v", tc.views, got, tc.want)
		}
	}
}

func TestScore_Recency(t *testing.T) {
	tests := []struct {
		name string
		date string
		want float64
	}{
		{"today", daysAgo(0), 3},
		{"7 days", daysAgo(7), 3},
		{"8 days", daysAgo(8), 2},
		{"14 days", daysAgo(14), 2},
		{"30 days", daysAgo(30), 1},
		{"31 days", daysAgo(31), 0},
		{"future", post.FormatDate(fixedNow.AddDate(0, 0, 5)), 3},
		{"no date", post.NoDate, 0},
		{"garbage", "soon", 0},
	}
	s := NewScorer(DefaultWeights(), clock)
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			p := post.New(post.Fields{Link: "/a", Date: tc.date})
			if got := s.Score(p, 0).Detail.Recency; got != tc.want {
				t.Errorf("Recency = %v, want %v", got, tc.want)
			}
		})
	}
}

func TestNewScorer_Defaults(t *testing.T) {
	s := NewScorer(Weights{}, nil)
	p := post.New(post.Fields{Link: "/a", Featured: true})
	if got := s.Score(p, 4).Total; got != 5 {
		t.Errorf("Total = %v, want 5 (2 views + 3 featured)", got)
	}
}
