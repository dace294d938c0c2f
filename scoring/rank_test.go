package scoring

import (
	"errors"
	"reflect"
	"testing"
)

func scoreAll(t *testing.T, a *Aggregator, votesByProject map[string][]Vote) map[string]ScoreResult {
	t.Helper()
	scores := make(map[string]ScoreResult, len(votesByProject))
	for id, votes := range votesByProject {
		result, err := a.ComputeProjectScore(id, votes)
		if err != nil {
			t.Fatalf("ComputeProjectScore(%s) failed: %v", id, err)
		}
		scores[id] = result
	}
	return scores
}

func rankedIDs(ranked []RankedProject) []string {
	ids := make([]string, len(ranked))
	for i, r := range ranked {
		ids[i] = r.Project.ID
	}
	return ids
}

func TestRankProjects_FinalAndPopularDiverge(t *testing.T) {
	a := newTestAggregator(t)

	projects := []Project{{ID: "A", Title: "Crowd favourite"}, {ID: "B", Title: "Jury pick"}}
	scores := scoreAll(t, a, map[string][]Vote{
		"A": publicVotes("A", 5, 5, 5, 5, 5, 5, 5, 5, 5, 5),
		"B": juryVotes("B", 5, 5),
	})

	if got := scores["B"].Display().FinalScore; got != 3.5 {
		t.Errorf("Expected B final score 3.5, got %v", got)
	}
	// No jury votes: 0*0.7 + 5*0.3
	if got := scores["A"].Display().FinalScore; got != 1.5 {
		t.Errorf("Expected A final score 1.5, got %v", got)
	}
	if got := scores["A"].TotalVoteCount(); got != 10 {
		t.Errorf("Expected A total votes 10, got %d", got)
	}

	final, err := a.RankProjects(projects, scores, ModeFinal)
	if err != nil {
		t.Fatalf("RankProjects(final) failed: %v", err)
	}
	if ids := rankedIDs(final); !reflect.DeepEqual(ids, []string{"B", "A"}) {
		t.Errorf("Final mode: expected [B A], got %v", ids)
	}

	popular, err := a.RankProjects(projects, scores, ModePopular)
	if err != nil {
		t.Fatalf("RankProjects(popular) failed: %v", err)
	}
	if ids := rankedIDs(popular); !reflect.DeepEqual(ids, []string{"A", "B"}) {
		t.Errorf("Popular mode: expected [A B], got %v", ids)
	}
}

func TestRankProjects_TiesAreDeterministic(t *testing.T) {
	a := newTestAggregator(t)

	projects := []Project{{ID: "c"}, {ID: "a"}, {ID: "d"}, {ID: "b"}}
	scores := scoreAll(t, a, map[string][]Vote{
		"a": juryVotes("a", 6),
		"b": juryVotes("b", 6),
		"c": juryVotes("c", 6),
		"d": juryVotes("d", 9),
	})

	for _, mode := range []Mode{ModeFinal, ModePopular} {
		t.Run(string(mode), func(t *testing.T) {
			first, err := a.RankProjects(projects, scores, mode)
			if err != nil {
				t.Fatalf("RankProjects failed: %v", err)
			}
			second, err := a.RankProjects(projects, scores, mode)
			if err != nil {
				t.Fatalf("RankProjects failed: %v", err)
			}

			if !reflect.DeepEqual(rankedIDs(first), rankedIDs(second)) {
				t.Errorf("Ordering changed between calls: %v vs %v", rankedIDs(first), rankedIDs(second))
			}

			expected := []string{"d", "a", "b", "c"}
			if mode == ModePopular {
				// every project has exactly one vote
				expected = []string{"a", "b", "c", "d"}
			}
			if ids := rankedIDs(first); !reflect.DeepEqual(ids, expected) {
				t.Errorf("Expected %v, got %v", expected, ids)
			}

			for i, r := range first {
				if r.Rank != i+1 {
					t.Errorf("Expected rank %d, got %d for %s", i+1, r.Rank, r.Project.ID)
				}
			}
		})
	}
}

func TestRankProjects_MissingScoreRanksAsZero(t *testing.T) {
	a := newTestAggregator(t)

	projects := []Project{{ID: "new"}, {ID: "voted"}}
	scores := scoreAll(t, a, map[string][]Vote{
		"voted": publicVotes("voted", 2),
	})

	ranked, err := a.RankProjects(projects, scores, ModeFinal)
	if err != nil {
		t.Fatalf("RankProjects failed: %v", err)
	}
	if ids := rankedIDs(ranked); !reflect.DeepEqual(ids, []string{"voted", "new"}) {
		t.Errorf("Expected [voted new], got %v", ids)
	}

	last := ranked[1]
	if last.Score.ProjectID != "new" || last.Score.TotalVoteCount() != 0 || !last.Score.FinalScore.IsZero() {
		t.Errorf("Expected zero score for unvoted project, got %+v", last.Score)
	}
}

func TestRankProjects_Empty(t *testing.T) {
	a := newTestAggregator(t)

	ranked, err := a.RankProjects(nil, nil, ModeFinal)
	if err != nil {
		t.Fatalf("RankProjects failed: %v", err)
	}
	if len(ranked) != 0 {
		t.Errorf("Expected no ranked projects, got %d", len(ranked))
	}
}

func TestRankProjects_InvalidMode(t *testing.T) {
	a := newTestAggregator(t)

	_, err := a.RankProjects([]Project{{ID: "a"}}, nil, Mode("loudest"))
	if !errors.Is(err, ErrValidation) {
		t.Errorf("Expected ErrValidation, got %v", err)
	}
}

func TestParseMode(t *testing.T) {
	tests := []struct {
		input    string
		expected Mode
		wantErr  bool
	}{
		{"", ModeFinal, false},
		{"final", ModeFinal, false},
		{"FINAL", ModeFinal, false},
		{" popular ", ModePopular, false},
		{"votes", "", true},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			mode, err := ParseMode(tt.input)
			if tt.wantErr {
				if !errors.Is(err, ErrValidation) {
					t.Errorf("Expected ErrValidation, got %v", err)
				}
				return
			}
			if err != nil {
				t.Fatalf("Unexpected error: %v", err)
			}
			if mode != tt.expected {
				t.Errorf("Expected %q, got %q", tt.expected, mode)
			}
		})
	}
}

func TestSummarize(t *testing.T) {
	a := newTestAggregator(t)

	scores := scoreAll(t, a, map[string][]Vote{
		"a": append(juryVotes("a", 4, 5), publicVotes("a", 3)...), // 4.05
		"b": juryVotes("b", 5, 5),                                   // 3.5
		"c": nil,                                                    // 0
	})

	results := []ScoreResult{scores["a"], scores["b"], scores["c"]}
	summary := a.Summarize(results)

	if summary.ProjectCount != 3 {
		t.Errorf("Expected 3 projects, got %d", summary.ProjectCount)
	}
	if summary.JuryVoteCount != 4 || summary.PublicVoteCount != 1 || summary.TotalVoteCount != 5 {
		t.Errorf("Unexpected vote counts: %+v", summary)
	}
	// (4.05 + 3.5 + 0) / 3 = 2.5166...
	if summary.AverageFinalScore != 2.5 {
		t.Errorf("Expected average final score 2.5, got %v", summary.AverageFinalScore)
	}
	if summary.Weights != DefaultWeights {
		t.Errorf("Expected default weights, got %+v", summary.Weights)
	}

	if empty := a.Summarize(nil); empty.AverageFinalScore != 0 || empty.ProjectCount != 0 {
		t.Errorf("Expected zero summary, got %+v", empty)
	}
}
