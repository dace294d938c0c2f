package scoring

import (
	"math"

	"github.com/shopspring/decimal"
)

// VoterClass is the weight class a vote belongs to.
type VoterClass string

// Voter classes
const (
	ClassJury   VoterClass = "jury"
	ClassPublic VoterClass = "public"
)

// Valid reports whether c is a recognised voter class.
func (c VoterClass) Valid() bool {
	switch c {
	case ClassJury, ClassPublic:
		return true
	}
	return false
}

// Vote is one scored judgment of one project.
type Vote struct {
	ID         string
	ProjectID  string
	VoterClass VoterClass
	Value      float64
}

// Weights is the share each voter class contributes to the final score.
type Weights struct {
	Jury   float64 `json:"jury"`
	Public float64 `json:"public"`
}

// DefaultWeights is the 70/30 jury/public split.
var DefaultWeights = Weights{Jury: 0.7, Public: 0.3}

// Validate rejects negative or non-finite weights and the all-zero split.
func (w Weights) Validate() error {
	if !finite(w.Jury) || w.Jury < 0 {
		return invalid("jury weight", w.Jury, "must be a non-negative number")
	}
	if !finite(w.Public) || w.Public < 0 {
		return invalid("public weight", w.Public, "must be a non-negative number")
	}
	if w.Jury == 0 && w.Public == 0 {
		return invalid("weights", w, "at least one weight must be positive")
	}
	return nil
}

// Scale bounds accepted vote values, inclusive.
type Scale struct {
	Min float64 `json:"min"`
	Max float64 `json:"max"`
}

// DefaultScale accepts values from 1 to 10.
var DefaultScale = Scale{Min: 1, Max: 10}

func (s Scale) Validate() error {
	if !finite(s.Min) || !finite(s.Max) {
		return invalid("scale", s, "bounds must be finite")
	}
	if s.Min >= s.Max {
		return invalid("scale", s, "min must be lower than max")
	}
	return nil
}

// Contains reports whether v lies within the scale.
func (s Scale) Contains(v float64) bool {
	return v >= s.Min && v <= s.Max
}

// ScoreResult is the aggregate for one project at full precision.
type ScoreResult struct {
	ProjectID       string
	JuryAverage     decimal.Decimal
	PublicAverage   decimal.Decimal
	FinalScore      decimal.Decimal
	JuryVoteCount   int
	PublicVoteCount int
	Weights         Weights
}

// TotalVoteCount is the number of votes across both classes.
func (r ScoreResult) TotalVoteCount() int {
	return r.JuryVoteCount + r.PublicVoteCount
}

// ScoreView is the display form of a ScoreResult.
type ScoreView struct {
	ProjectID       string  `json:"project_id"`
	JuryAverage     float64 `json:"jury_average"`
	PublicAverage   float64 `json:"public_average"`
	FinalScore      float64 `json:"final_score"`
	JuryVoteCount   int     `json:"jury_vote_count"`
	PublicVoteCount int     `json:"public_vote_count"`
	TotalVoteCount  int     `json:"total_vote_count"`
	Weights         Weights `json:"weights"`
}

// Display rounds averages and final score to one decimal.
func (r ScoreResult) Display() ScoreView {
	return ScoreView{
		ProjectID:       r.ProjectID,
		JuryAverage:     Round1(r.JuryAverage),
		PublicAverage:   Round1(r.PublicAverage),
		FinalScore:      Round1(r.FinalScore),
		JuryVoteCount:   r.JuryVoteCount,
		PublicVoteCount: r.PublicVoteCount,
		TotalVoteCount:  r.TotalVoteCount(),
		Weights:         r.Weights,
	}
}

// Round1 rounds half away from zero to one decimal place.
func Round1(d decimal.Decimal) float64 {
	return d.Round(1).InexactFloat64()
}

func finite(f float64) bool {
	return !math.IsNaN(f) && !math.IsInf(f, 0)
}
