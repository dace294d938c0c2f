package db

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/yepeleya/jig-projet/models"
	"github.com/yepeleya/jig-projet/scoring"
)

var ErrNotFound = errors.New("not found")

// Store is the data access the scoring code depends on.
type Store struct {
	db *sql.DB
}

func NewStore(db *sql.DB) *Store {
	return &Store{db: db}
}

// GetProject returns one project or ErrNotFound
func (s *Store) GetProject(ctx context.Context, id string) (models.Project, error) {
	var p models.Project
	err := s.db.QueryRowContext(ctx, `
		SELECT id, title, category, description, stored_score, total_vote_count, created_at
		FROM project
		WHERE id = $1
	`, id).Scan(&p.ID, &p.Title, &p.Category, &p.Description, &p.StoredScore, &p.TotalVoteCount, &p.CreatedAt)

	if err == sql.ErrNoRows {
		return models.Project{}, ErrNotFound
	}
	if err != nil {
		return models.Project{}, fmt.Errorf("failed to query project: %w", err)
	}

	return p, nil
}

// FetchAllProjects returns every project ordered by ID
func (s *Store) FetchAllProjects(ctx context.Context) ([]models.Project, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT id, title, category, description, stored_score, total_vote_count, created_at
		FROM project
		ORDER BY id
	`)
	if err != nil {
		return nil, fmt.Errorf("failed to query projects: %w", err)
	}
	defer rows.Close()

	projects := []models.Project{}
	for rows.Next() {
		var p models.Project
		if err := rows.Scan(&p.ID, &p.Title, &p.Category, &p.Description, &p.StoredScore, &p.TotalVoteCount, &p.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan project: %w", err)
		}
		projects = append(projects, p)
	}

	return projects, rows.Err()
}

// FetchVotesForProject returns the votes of one project. Voter classes are
// passed through untouched so the aggregator can reject unknown ones.
func (s *Store) FetchVotesForProject(ctx context.Context, projectID string) ([]scoring.Vote, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT id, project_id, voter_class, value
		FROM vote
		WHERE project_id = $1
		ORDER BY id
	`, projectID)
	if err != nil {
		return nil, fmt.Errorf("failed to query votes: %w", err)
	}
	defer rows.Close()

	return scanVotes(rows)
}

// FetchVotesByProject returns all votes grouped by project in one query
func (s *Store) FetchVotesByProject(ctx context.Context) (map[string][]scoring.Vote, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT id, project_id, voter_class, value
		FROM vote
		ORDER BY project_id, id
	`)
	if err != nil {
		return nil, fmt.Errorf("failed to query votes: %w", err)
	}
	defer rows.Close()

	votes, err := scanVotes(rows)
	if err != nil {
		return nil, err
	}

	grouped := make(map[string][]scoring.Vote)
	for _, v := range votes {
		grouped[v.ProjectID] = append(grouped[v.ProjectID], v)
	}
	return grouped, nil
}

// SaveProjectScore writes the derived score fields of a project. Only
// stored_score and total_vote_count are touched; writing the same values
// twice is a no-op.
func (s *Store) SaveProjectScore(ctx context.Context, projectID string, finalScore float64, totalVotes int) error {
	res, err := s.db.ExecContext(ctx, `
		UPDATE project
		SET stored_score = $1, total_vote_count = $2
		WHERE id = $3
	`, finalScore, totalVotes, projectID)
	if err != nil {
		return fmt.Errorf("failed to save project score: %w", err)
	}

	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to save project score: %w", err)
	}
	if n == 0 {
		return ErrNotFound
	}

	return nil
}

func scanVotes(rows *sql.Rows) ([]scoring.Vote, error) {
	votes := []scoring.Vote{}
	for rows.Next() {
		var v scoring.Vote
		var class string
		if err := rows.Scan(&v.ID, &v.ProjectID, &class, &v.Value); err != nil {
			return nil, fmt.Errorf("failed to scan vote: %w", err)
		}
		v.VoterClass = scoring.VoterClass(class)
		votes = append(votes, v)
	}

	return votes, rows.Err()
}
