package stats

import (
	"fmt"
	"reflect"
	"testing"
)

func TestDeriveLanguageBreakdown(t *testing.T) {
	repoEdges := [][]LanguageEdge{
		{
			{Name: "Go", Color: "#00ADD8", Size: 6000},
			{Name: "Shell", Color: "#89e051", Size: 1000},
		},
		{
			{Name: "Go", Color: "#00ADD8", Size: 2000},
			{Name: "Rust", Color: "#dea584", Size: 1000},
		},
	}

	got := DeriveLanguageBreakdown(repoEdges)

	if got.TopLanguage == nil || *got.TopLanguage != "Go" {
		t.Fatalf("TopLanguage = %v, want Go", got.TopLanguage)
	}

	want := []LanguageBreakdown{
		{Lang: "Go", Color: "#00ADD8", Commits: 800, Percentage: 80},
		{Lang: "Shell", Color: "#89e051", Commits: 100, Percentage: 10},
		{Lang: "Rust", Color: "#dea584", Commits: 100, Percentage: 10},
	}
	if !reflect.DeepEqual(got.Breakdown, want) {
		t.Errorf("Breakdown = %+v, want %+v", got.Breakdown, want)
	}
}

func TestDeriveLanguageBreakdownEmpty(t *testing.T) {
	tests := []struct {
		name      string
		repoEdges [][]LanguageEdge
	}{
		{"nil input", nil},
		{"no edges", [][]LanguageEdge{{}, {}}},
		{"zero bytes", [][]LanguageEdge{{{Name: "Go", Size: 0}}}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := DeriveLanguageBreakdown(tt.repoEdges)
			if got.TopLanguage != nil {
				t.Errorf("TopLanguage = %q, want nil", *got.TopLanguage)
			}
			if got.Breakdown == nil || len(got.Breakdown) != 0 {
				t.Errorf("Breakdown = %v, want empty slice", got.Breakdown)
			}
		})
	}
}

func TestDeriveLanguageBreakdownDefaultColor(t *testing.T) {
	got := DeriveLanguageBreakdown([][]LanguageEdge{
		{{Name: "Makefile", Color: "", Size: 500}},
	})

	if len(got.Breakdown) != 1 {
		t.Fatalf("Breakdown has %d entries, want 1", len(got.Breakdown))
	}
	if got.Breakdown[0].Color != "#000000" {
		t.Errorf("Color = %q, want #000000", got.Breakdown[0].Color)
	}
}

func TestDeriveLanguageBreakdownTruncates(t *testing.T) {
	var edges []LanguageEdge
	for i := 0; i < 15; i++ {
		edges = append(edges, LanguageEdge{
			Name: fmt.Sprintf("Lang%d", i),
			Size: int64(1000 * (15 - i)),
		})
	}

	got := DeriveLanguageBreakdown([][]LanguageEdge{edges})

	if len(got.Breakdown) != 10 {
		t.Fatalf("Breakdown has %d entries, want 10", len(got.Breakdown))
	}
	if got.Breakdown[0].Lang != "Lang0" {
		t.Errorf("top language = %q, want Lang0", got.Breakdown[0].Lang)
	}
}

func TestDeriveLanguageBreakdownBounds(t *testing.T) {
	repoEdges := [][]LanguageEdge{
		{
			{Name: "Go", Size: 3},
			{Name: "Rust", Size: 3},
			{Name: "C", Size: 1},
		},
	}

	got := DeriveLanguageBreakdown(repoEdges)

	for _, b := range got.Breakdown {
		if b.Percentage < 0 || b.Percentage > 100 {
			t.Errorf("%s: Percentage = %d out of [0, 100]", b.Lang, b.Percentage)
		}
		if b.Commits < 0 || b.Commits > 1000 {
			t.Errorf("%s: Commits = %d out of [0, 1000]", b.Lang, b.Commits)
		}
	}

	for i := 1; i < len(got.Breakdown); i++ {
		if got.Breakdown[i].Percentage > got.Breakdown[i-1].Percentage {
			t.Errorf("breakdown not sorted at %d: %d > %d", i,
				got.Breakdown[i].Percentage, got.Breakdown[i-1].Percentage)
		}
	}
}

func TestDeriveLanguageBreakdownIdempotent(t *testing.T) {
	repoEdges := [][]LanguageEdge{
		{
			{Name: "Go", Color: "#00ADD8", Size: 7000},
			{Name: "Python", Color: "#3572A5", Size: 3000},
		},
	}

	first := DeriveLanguageBreakdown(repoEdges)
	second := DeriveLanguageBreakdown(repoEdges)

	if !reflect.DeepEqual(first, second) {
		t.Errorf("results differ: %+v vs %+v", first, second)
	}
}
