package db_test

import (
	"context"
	"errors"
	"testing"

	"github.com/yepeleya/jig-projet/db"
	"github.com/yepeleya/jig-projet/models"
	"github.com/yepeleya/jig-projet/scoring"
	"github.com/yepeleya/jig-projet/testutil"
)

func TestCreateSchema_Idempotent(t *testing.T) {
	conn := testutil.SetupTestDB(t)

	if err := db.CreateSchema(conn); err != nil {
		t.Fatalf("Second CreateSchema failed: %v", err)
	}
}

func TestOpen_UnsupportedType(t *testing.T) {
	if _, err := db.Open("mysql", "whatever"); err == nil {
		t.Error("Expected error for unsupported database type")
	}
}

func TestStore_FetchVotesForProject(t *testing.T) {
	conn := testutil.SetupTestDB(t)
	store := db.NewStore(conn)
	ctx := context.Background()

	p1 := testutil.CreateTestProject(t, conn, "Robot", "tech")
	p2 := testutil.CreateTestProject(t, conn, "Mural", "art")

	testutil.AddTestVote(t, conn, p1, models.ClassJury, "jury-1", 4)
	testutil.AddTestVote(t, conn, p1, models.ClassPublic, "voter-1", 3)
	testutil.AddTestVote(t, conn, p2, models.ClassPublic, "voter-1", 5)

	votes, err := store.FetchVotesForProject(ctx, p1)
	if err != nil {
		t.Fatalf("FetchVotesForProject failed: %v", err)
	}
	if len(votes) != 2 {
		t.Fatalf("Expected 2 votes, got %d", len(votes))
	}

	classes := map[scoring.VoterClass]float64{}
	for _, v := range votes {
		if v.ProjectID != p1 {
			t.Errorf("Vote %s belongs to %s, expected %s", v.ID, v.ProjectID, p1)
		}
		classes[v.VoterClass] = v.Value
	}
	if classes[scoring.ClassJury] != 4 || classes[scoring.ClassPublic] != 3 {
		t.Errorf("Unexpected votes: %+v", votes)
	}

	empty, err := store.FetchVotesForProject(ctx, "missing")
	if err != nil {
		t.Fatalf("FetchVotesForProject failed: %v", err)
	}
	if len(empty) != 0 {
		t.Errorf("Expected no votes, got %d", len(empty))
	}
}

func TestStore_FetchVotesByProject(t *testing.T) {
	conn := testutil.SetupTestDB(t)
	store := db.NewStore(conn)

	p1 := testutil.CreateTestProject(t, conn, "Robot", "tech")
	p2 := testutil.CreateTestProject(t, conn, "Mural", "art")
	testutil.AddTestVote(t, conn, p1, models.ClassJury, "jury-1", 4)
	testutil.AddTestVote(t, conn, p1, models.ClassJury, "jury-2", 6)
	testutil.AddTestVote(t, conn, p2, models.ClassPublic, "voter-1", 5)

	grouped, err := store.FetchVotesByProject(context.Background())
	if err != nil {
		t.Fatalf("FetchVotesByProject failed: %v", err)
	}
	if len(grouped[p1]) != 2 || len(grouped[p2]) != 1 {
		t.Errorf("Unexpected grouping: %d / %d", len(grouped[p1]), len(grouped[p2]))
	}
}

func TestStore_UnknownClassIsPassedThrough(t *testing.T) {
	conn := testutil.SetupTestDB(t)
	store := db.NewStore(conn)

	p := testutil.CreateTestProject(t, conn, "Robot", "tech")
	testutil.AddTestVote(t, conn, p, "ALIEN", "x", 5)

	votes, err := store.FetchVotesForProject(context.Background(), p)
	if err != nil {
		t.Fatalf("FetchVotesForProject failed: %v", err)
	}
	if len(votes) != 1 || votes[0].VoterClass != "ALIEN" {
		t.Fatalf("Expected the ALIEN vote to be returned as is, got %+v", votes)
	}

	agg := scoring.MustNewAggregator(scoring.DefaultWeights, scoring.DefaultScale)
	if _, err := agg.ComputeProjectScore(p, votes); !errors.Is(err, scoring.ErrValidation) {
		t.Errorf("Expected aggregator to reject stored ALIEN vote, got %v", err)
	}
}

func TestStore_ProjectsAndScore(t *testing.T) {
	conn := testutil.SetupTestDB(t)
	store := db.NewStore(conn)
	ctx := context.Background()

	p := testutil.CreateTestProject(t, conn, "Robot", "tech")

	projects, err := store.FetchAllProjects(ctx)
	if err != nil {
		t.Fatalf("FetchAllProjects failed: %v", err)
	}
	if len(projects) != 1 || projects[0].ID != p {
		t.Fatalf("Unexpected projects: %+v", projects)
	}

	// Writing the same derived values twice leaves the same state
	for i := 0; i < 2; i++ {
		if err := store.SaveProjectScore(ctx, p, 4.05, 3); err != nil {
			t.Fatalf("SaveProjectScore failed: %v", err)
		}
	}

	got, err := store.GetProject(ctx, p)
	if err != nil {
		t.Fatalf("GetProject failed: %v", err)
	}
	if got.StoredScore != 4.05 || got.TotalVoteCount != 3 {
		t.Errorf("Expected stored 4.05/3, got %v/%d", got.StoredScore, got.TotalVoteCount)
	}
	if got.Title != "Robot" || got.Category != "tech" {
		t.Errorf("Non-derived fields changed: %+v", got)
	}

	if _, err := store.GetProject(ctx, "missing"); !errors.Is(err, db.ErrNotFound) {
		t.Errorf("Expected ErrNotFound, got %v", err)
	}
	if err := store.SaveProjectScore(ctx, "missing", 1, 1); !errors.Is(err, db.ErrNotFound) {
		t.Errorf("Expected ErrNotFound, got %v", err)
	}
}
