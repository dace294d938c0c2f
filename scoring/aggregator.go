package scoring

import (
	"github.com/shopspring/decimal"
)

// Aggregator computes weighted project scores. It holds no mutable state
// and is safe for concurrent use.
type Aggregator struct {
	weights Weights
	scale   Scale

	juryWeight   decimal.Decimal
	publicWeight decimal.Decimal
}

// NewAggregator validates the weights and scale and returns an Aggregator.
func NewAggregator(weights Weights, scale Scale) (*Aggregator, error) {
	if err := weights.Validate(); err != nil {
		return nil, err
	}
	if err := scale.Validate(); err != nil {
		return nil, err
	}

	return &Aggregator{
		weights:      weights,
		scale:        scale,
		juryWeight:   decimal.NewFromFloat(weights.Jury),
		publicWeight: decimal.NewFromFloat(weights.Public),
	}, nil
}

// MustNewAggregator is like NewAggregator but panics on invalid settings.
// Use it only with settings that were validated at startup.
func MustNewAggregator(weights Weights, scale Scale) *Aggregator {
	a, err := NewAggregator(weights, scale)
	if err != nil {
		panic(err)
	}
	return a
}

func (a *Aggregator) Weights() Weights { return a.weights }

func (a *Aggregator) Scale() Scale { return a.scale }

// ComputeProjectScore aggregates the votes of a single project.
//
// Every vote is validated before any bucket is filled, so a malformed vote
// fails the whole call instead of being skipped or misfiled.
func (a *Aggregator) ComputeProjectScore(projectID string, votes []Vote) (ScoreResult, error) {
	for _, v := range votes {
		if err := a.validateVote(projectID, v); err != nil {
			return ScoreResult{}, err
		}
	}

	result := ScoreResult{
		ProjectID:     projectID,
		JuryAverage:   decimal.Zero,
		PublicAverage: decimal.Zero,
		FinalScore:    decimal.Zero,
		Weights:       a.weights,
	}
	if len(votes) == 0 {
		return result, nil
	}

	jurySum, publicSum := decimal.Zero, decimal.Zero
	for _, v := range votes {
		value := decimal.NewFromFloat(v.Value)
		if v.VoterClass == ClassJury {
			jurySum = jurySum.Add(value)
			result.JuryVoteCount++
		} else {
			publicSum = publicSum.Add(value)
			result.PublicVoteCount++
		}
	}

	result.JuryAverage = mean(jurySum, result.JuryVoteCount)
	result.PublicAverage = mean(publicSum, result.PublicVoteCount)
	result.FinalScore = result.JuryAverage.Mul(a.juryWeight).
		Add(result.PublicAverage.Mul(a.publicWeight))

	return result, nil
}

func (a *Aggregator) validateVote(projectID string, v Vote) error {
	if !v.VoterClass.Valid() {
		return invalid("voter class", v.VoterClass, "must be jury or public")
	}
	if !finite(v.Value) {
		return invalid("vote value", v.Value, "must be a finite number")
	}
	if !a.scale.Contains(v.Value) {
		return invalid("vote value", v.Value, "outside configured scale")
	}
	if v.ProjectID != "" && v.ProjectID != projectID {
		return invalid("vote project", v.ProjectID, "does not belong to project "+projectID)
	}
	return nil
}

func mean(sum decimal.Decimal, n int) decimal.Decimal {
	if n == 0 {
		return decimal.Zero
	}
	return sum.Div(decimal.NewFromInt(int64(n)))
}
