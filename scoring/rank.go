package scoring

import (
	"sort"
	"strings"

	"github.com/shopspring/decimal"
)

// Mode selects the ranking key.
type Mode string

// Ranking modes
const (
	ModeFinal   Mode = "final"
	ModePopular Mode = "popular"
)

// ParseMode maps a query value to a Mode. Empty means ModeFinal.
func ParseMode(s string) (Mode, error) {
	switch Mode(strings.ToLower(strings.TrimSpace(s))) {
	case "", ModeFinal:
		return ModeFinal, nil
	case ModePopular:
		return ModePopular, nil
	}
	return "", invalid("ranking mode", s, "must be final or popular")
}

// Project is the part of a contest project that ranking needs.
type Project struct {
	ID       string
	Title    string
	Category string
}

// RankedProject is a project with its positional rank.
type RankedProject struct {
	Rank    int
	Project Project
	Score   ScoreResult
}

// RankProjects orders projects by mode and assigns 1-indexed ranks.
// Projects missing from scoresByProject rank with a zero score.
func (a *Aggregator) RankProjects(projects []Project, scoresByProject map[string]ScoreResult, mode Mode) ([]RankedProject, error) {
	if mode != ModeFinal && mode != ModePopular {
		return nil, invalid("ranking mode", mode, "must be final or popular")
	}

	ranked := make([]RankedProject, len(projects))
	for i, p := range projects {
		score, ok := scoresByProject[p.ID]
		if !ok {
			score = ScoreResult{
				ProjectID:     p.ID,
				JuryAverage:   decimal.Zero,
				PublicAverage: decimal.Zero,
				FinalScore:    decimal.Zero,
				Weights:       a.weights,
			}
		}
		ranked[i] = RankedProject{Project: p, Score: score}
	}

	sort.Slice(ranked, func(i, j int) bool {
		x, y := ranked[i], ranked[j]

		if mode == ModePopular {
			if xt, yt := x.Score.TotalVoteCount(), y.Score.TotalVoteCount(); xt != yt {
				return xt > yt
			}
		} else if c := x.Score.FinalScore.Cmp(y.Score.FinalScore); c != 0 {
			return c > 0
		}

		// Stable tie-breaking by project ID (ascending)
		return x.Project.ID < y.Project.ID
	})

	for i := range ranked {
		ranked[i].Rank = i + 1
	}

	return ranked, nil
}
