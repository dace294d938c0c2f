package models

import (
	"time"

	"github.com/yepeleya/jig-projet/scoring"
)

// Voter class constants, as stored in vote.voter_class
const (
	ClassJury   = string(scoring.ClassJury)
	ClassPublic = string(scoring.ClassPublic)
)

// Request types

type CreateProjectRequest struct {
	Title       string `json:"title"`
	Category    string `json:"category"`
	Description string `json:"description"`
}

type CreateJuryMemberRequest struct {
	Name string `json:"name"`
}

type ClaimVoterRequest struct {
	Username string `json:"username"`
}

type CastVoteRequest struct {
	Value *float64 `json:"value"`
}

// Response types

type CreateProjectResponse struct {
	ProjectID string `json:"project_id"`
}

type CreateJuryMemberResponse struct {
	JuryID    string `json:"jury_id"`
	JuryToken string `json:"jury_token"`
}

type ClaimVoterResponse struct {
	VoterToken string `json:"voter_token"`
}

type CastVoteResponse struct {
	VoteID string             `json:"vote_id"`
	Score  *scoring.ScoreView `json:"score,omitempty"`
}

type ListProjectsResponse struct {
	Projects []Project `json:"projects"`
}

type ProjectWithScore struct {
	Project Project           `json:"project"`
	Score   scoring.ScoreView `json:"score"`
}

type RankedProjectView struct {
	Rank      int               `json:"rank"`
	RankLabel string            `json:"rank_label"`
	ProjectID string            `json:"project_id"`
	Title     string            `json:"title"`
	Category  string            `json:"category"`
	Score     scoring.ScoreView `json:"score"`
}

type ClassementResponse struct {
	Mode     string              `json:"mode"`
	Rankings []RankedProjectView `json:"rankings"`
}

type RecomputeAllResponse struct {
	Recomputed int `json:"recomputed"`
}

type ScoringConfigResponse struct {
	Weights scoring.Weights `json:"weights"`
	Scale   scoring.Scale   `json:"scale"`
}

type ListVotesResponse struct {
	Votes []Vote `json:"votes"`
}

type ListJuryResponse struct {
	Members []JuryMember `json:"members"`
}

// Domain types

// Project is a contest entry. StoredScore and TotalVoteCount are a cache
// of the last scoring pass and are always recomputable from the votes.
type Project struct {
	ID             string    `json:"id"`
	Title          string    `json:"title"`
	Category       string    `json:"category"`
	Description    string    `json:"description"`
	StoredScore    float64   `json:"stored_score"`
	TotalVoteCount int       `json:"total_vote_count"`
	CreatedAt      time.Time `json:"created_at"`
}

// Scoring returns the fields ranking needs.
func (p Project) Scoring() scoring.Project {
	return scoring.Project{ID: p.ID, Title: p.Title, Category: p.Category}
}

type Vote struct {
	ID         string    `json:"id"`
	ProjectID  string    `json:"project_id"`
	VoterClass string    `json:"voter_class"`
	VoterRef   string    `json:"-"` // jury id or voter token, never exposed
	Value      float64   `json:"value"`
	CreatedAt  time.Time `json:"created_at"`
	IPHash     *string   `json:"-"`
}

type JuryMember struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	CreatedAt time.Time `json:"created_at"`
}

// Error response

type ErrorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message,omitempty"`
}
