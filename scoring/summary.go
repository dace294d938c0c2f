package scoring

import "github.com/shopspring/decimal"

// Summary is the contest-wide aggregate shown on the admin dashboard.
type Summary struct {
	ProjectCount      int     `json:"project_count"`
	JuryVoteCount     int     `json:"jury_vote_count"`
	PublicVoteCount   int     `json:"public_vote_count"`
	TotalVoteCount    int     `json:"total_vote_count"`
	AverageFinalScore float64 `json:"average_final_score"`
	Weights           Weights `json:"weights"`
}

// Summarize folds per-project results into a Summary.
func (a *Aggregator) Summarize(results []ScoreResult) Summary {
	s := Summary{
		ProjectCount: len(results),
		Weights:      a.weights,
	}

	total := decimal.Zero
	for _, r := range results {
		s.JuryVoteCount += r.JuryVoteCount
		s.PublicVoteCount += r.PublicVoteCount
		total = total.Add(r.FinalScore)
	}
	s.TotalVoteCount = s.JuryVoteCount + s.PublicVoteCount
	s.AverageFinalScore = Round1(mean(total, len(results)))

	return s
}
