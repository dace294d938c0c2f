package scoring

import (
	"errors"
	"math"
	"testing"

	"github.com/shopspring/decimal"
	"go.uber.org/goleak"
)

func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m)
}

func newTestAggregator(t *testing.T) *Aggregator {
	t.Helper()
	a, err := NewAggregator(DefaultWeights, DefaultScale)
	if err != nil {
		t.Fatalf("NewAggregator failed: %v", err)
	}
	return a
}

func juryVotes(projectID string, values ...float64) []Vote {
	return makeVotes(projectID, ClassJury, values...)
}

func publicVotes(projectID string, values ...float64) []Vote {
	return makeVotes(projectID, ClassPublic, values...)
}

func makeVotes(projectID string, class VoterClass, values ...float64) []Vote {
	votes := make([]Vote, len(values))
	for i, v := range values {
		votes[i] = Vote{ProjectID: projectID, VoterClass: class, Value: v}
	}
	return votes
}

func TestComputeProjectScore_Scenario(t *testing.T) {
	a := newTestAggregator(t)

	votes := append(juryVotes("p1", 4, 5), publicVotes("p1", 3)...)
	result, err := a.ComputeProjectScore("p1", votes)
	if err != nil {
		t.Fatalf("ComputeProjectScore failed: %v", err)
	}

	if !result.FinalScore.Equal(decimal.RequireFromString("4.05")) {
		t.Errorf("Expected full precision final score 4.05, got %s", result.FinalScore)
	}

	view := result.Display()
	expected := ScoreView{
		ProjectID:       "p1",
		JuryAverage:     4.5,
		PublicAverage:   3.0,
		FinalScore:      4.1,
		JuryVoteCount:   2,
		PublicVoteCount: 1,
		TotalVoteCount:  3,
		Weights:         DefaultWeights,
	}
	if view != expected {
		t.Errorf("Expected %+v, got %+v", expected, view)
	}
}

func TestComputeProjectScore_Empty(t *testing.T) {
	a := newTestAggregator(t)

	for _, votes := range [][]Vote{nil, {}} {
		result, err := a.ComputeProjectScore("p1", votes)
		if err != nil {
			t.Fatalf("Empty vote list must not fail: %v", err)
		}

		view := result.Display()
		if view.JuryAverage != 0 || view.PublicAverage != 0 || view.FinalScore != 0 {
			t.Errorf("Expected zero scores, got %+v", view)
		}
		if view.JuryVoteCount != 0 || view.PublicVoteCount != 0 {
			t.Errorf("Expected zero counts, got %+v", view)
		}
		if !result.FinalScore.IsZero() {
			t.Errorf("Expected zero final score, got %s", result.FinalScore)
		}
	}
}

func TestComputeProjectScore_Weighting(t *testing.T) {
	tests := []struct {
		name          string
		votes         []Vote
		juryAverage   float64
		publicAverage float64
		finalScore    float64
	}{
		{
			name:          "both classes",
			votes:         append(juryVotes("p", 7, 8, 9), publicVotes("p", 5, 6)...),
			juryAverage:   8.0,
			publicAverage: 5.5,
			finalScore:    7.3, // 5.6 + 1.65 = 7.25
		},
		{
			name:          "half rounds away from zero",
			votes:         append(juryVotes("p", 1, 2), publicVotes("p", 10)...),
			juryAverage:   1.5,
			publicAverage: 10.0,
			finalScore:    4.1, // 1.05 + 3.0 = 4.05
		},
		{
			name:          "jury only",
			votes:         juryVotes("p", 3),
			juryAverage:   3.0,
			publicAverage: 0,
			finalScore:    2.1,
		},
		{
			name:          "public only",
			votes:         publicVotes("p", 5, 5, 5, 5),
			juryAverage:   0,
			publicAverage: 5.0,
			finalScore:    1.5,
		},
		{
			name:          "repeating average",
			votes:         juryVotes("p", 1, 2, 2),
			juryAverage:   1.7,
			publicAverage: 0,
			finalScore:    1.2,
		},
	}

	a := newTestAggregator(t)
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result, err := a.ComputeProjectScore("p", tt.votes)
			if err != nil {
				t.Fatalf("ComputeProjectScore failed: %v", err)
			}

			view := result.Display()
			if view.JuryAverage != tt.juryAverage {
				t.Errorf("Expected jury average %v, got %v", tt.juryAverage, view.JuryAverage)
			}
			if view.PublicAverage != tt.publicAverage {
				t.Errorf("Expected public average %v, got %v", tt.publicAverage, view.PublicAverage)
			}
			if view.FinalScore != tt.finalScore {
				t.Errorf("Expected final score %v, got %v", tt.finalScore, view.FinalScore)
			}

			// final == round(juryAvg*0.7 + publicAvg*0.3, 1) on the unrounded averages
			weighted := result.JuryAverage.Mul(decimal.RequireFromString("0.7")).
				Add(result.PublicAverage.Mul(decimal.RequireFromString("0.3")))
			if got := Round1(weighted); got != view.FinalScore {
				t.Errorf("Final score %v does not match weighted averages %v", view.FinalScore, got)
			}
		})
	}
}

func TestComputeProjectScore_CustomWeights(t *testing.T) {
	a, err := NewAggregator(Weights{Jury: 0.5, Public: 0.5}, Scale{Min: 0, Max: 5})
	if err != nil {
		t.Fatalf("NewAggregator failed: %v", err)
	}

	votes := append(juryVotes("p", 4), publicVotes("p", 2)...)
	result, err := a.ComputeProjectScore("p", votes)
	if err != nil {
		t.Fatalf("ComputeProjectScore failed: %v", err)
	}

	view := result.Display()
	if view.FinalScore != 3.0 {
		t.Errorf("Expected final score 3.0, got %v", view.FinalScore)
	}
	if view.Weights != (Weights{Jury: 0.5, Public: 0.5}) {
		t.Errorf("Expected result to carry weights in force, got %+v", view.Weights)
	}
}

func TestComputeProjectScore_Idempotent(t *testing.T) {
	a := newTestAggregator(t)
	votes := append(juryVotes("p", 6, 9, 7), publicVotes("p", 2, 4, 8, 10)...)
	before := append([]Vote(nil), votes...)

	first, err := a.ComputeProjectScore("p", votes)
	if err != nil {
		t.Fatalf("first call failed: %v", err)
	}
	second, err := a.ComputeProjectScore("p", votes)
	if err != nil {
		t.Fatalf("second call failed: %v", err)
	}

	if first.Display() != second.Display() {
		t.Errorf("Expected identical output, got %+v and %+v", first.Display(), second.Display())
	}
	if !first.FinalScore.Equal(second.FinalScore) {
		t.Errorf("Full precision drifted: %s vs %s", first.FinalScore, second.FinalScore)
	}
	for i := range votes {
		if votes[i] != before[i] {
			t.Errorf("Input vote %d was mutated", i)
		}
	}
}

func TestComputeProjectScore_Invalid(t *testing.T) {
	tests := []struct {
		name  string
		vote  Vote
		field string
	}{
		{"unknown class", Vote{ProjectID: "p", VoterClass: "ALIEN", Value: 5}, "voter class"},
		{"empty class", Vote{ProjectID: "p", Value: 5}, "voter class"},
		{"NaN value", Vote{ProjectID: "p", VoterClass: ClassJury, Value: math.NaN()}, "vote value"},
		{"infinite value", Vote{ProjectID: "p", VoterClass: ClassPublic, Value: math.Inf(1)}, "vote value"},
		{"above scale", Vote{ProjectID: "p", VoterClass: ClassJury, Value: 11}, "vote value"},
		{"below scale", Vote{ProjectID: "p", VoterClass: ClassPublic, Value: 0}, "vote value"},
		{"other project", Vote{ProjectID: "q", VoterClass: ClassJury, Value: 5}, "vote project"},
	}

	a := newTestAggregator(t)
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			votes := append(juryVotes("p", 5), tt.vote)
			result, err := a.ComputeProjectScore("p", votes)
			if err == nil {
				t.Fatal("Expected validation error, got nil")
			}
			if !errors.Is(err, ErrValidation) {
				t.Errorf("Expected ErrValidation, got %v", err)
			}

			var verr *ValidationError
			if !errors.As(err, &verr) {
				t.Fatalf("Expected *ValidationError, got %T", err)
			}
			if verr.Field != tt.field {
				t.Errorf("Expected field %q, got %q", tt.field, verr.Field)
			}

			if result.JuryVoteCount != 0 || result.PublicVoteCount != 0 {
				t.Errorf("Rejected input must not fill any bucket, got %+v", result)
			}
		})
	}
}

func TestNewAggregator_InvalidSettings(t *testing.T) {
	tests := []struct {
		name    string
		weights Weights
		scale   Scale
	}{
		{"negative jury weight", Weights{Jury: -0.1, Public: 1}, DefaultScale},
		{"negative public weight", Weights{Jury: 1, Public: -1}, DefaultScale},
		{"zero weights", Weights{}, DefaultScale},
		{"NaN weight", Weights{Jury: math.NaN(), Public: 0.3}, DefaultScale},
		{"inverted scale", DefaultWeights, Scale{Min: 10, Max: 1}},
		{"empty scale", DefaultWeights, Scale{Min: 5, Max: 5}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := NewAggregator(tt.weights, tt.scale); !errors.Is(err, ErrValidation) {
				t.Errorf("Expected ErrValidation, got %v", err)
			}
		})
	}
}
