package testutil

import (
	"bytes"
	"database/sql"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/yepeleya/jig-projet/auth"
	"github.com/yepeleya/jig-projet/cliparse"
	"github.com/yepeleya/jig-projet/db"
	"github.com/yepeleya/jig-projet/scoring"
)

// TestAdminKey is the admin key of GetTestConfig
const TestAdminKey = "test-admin-key"

// SetupTestDB creates a fresh in-memory SQLite database with the full schema
func SetupTestDB(t *testing.T) *sql.DB {
	t.Helper()

	conn, err := db.Open(cliparse.DatabaseSQLite, ":memory:")
	if err != nil {
		t.Fatalf("Failed to open test database: %v", err)
	}
	t.Cleanup(func() { conn.Close() })

	if err := db.CreateSchema(conn); err != nil {
		t.Fatalf("Failed to create schema: %v", err)
	}

	return conn
}

// GetTestConfig returns a standard test configuration
func GetTestConfig() cliparse.Config {
	return cliparse.Config{
		Port:          3318,
		DatabaseURL:   ":memory:",
		DatabaseType:  cliparse.DatabaseSQLite,
		AdminKey:      TestAdminKey,
		JuryTokenSalt: "test-jury-salt",
		IPHashSalt:    "test-ip-salt",
		Weights:       scoring.DefaultWeights,
		Scale:         scoring.DefaultScale,
	}
}

// AdminHeaders returns headers authenticating as admin
func AdminHeaders() map[string]string {
	return map[string]string{"X-Admin-Key": TestAdminKey}
}

// CreateTestProject inserts a project and returns its ID
func CreateTestProject(t *testing.T, conn *sql.DB, title, category string) string {
	t.Helper()

	projectID := auth.NewID()
	_, err := conn.Exec(`
		INSERT INTO project (id, title, category, description, created_at)
		VALUES ($1, $2, $3, 'A test project', $4)
	`, projectID, title, category, time.Now())
	if err != nil {
		t.Fatalf("Failed to create test project: %v", err)
	}

	return projectID
}

// CreateTestJuryMember inserts a juror and returns its ID and token
func CreateTestJuryMember(t *testing.T, conn *sql.DB, cfg cliparse.Config, name string) (juryID, juryToken string) {
	t.Helper()

	juryID = auth.NewID()
	_, err := conn.Exec(`
		INSERT INTO jury_member (id, name, created_at)
		VALUES ($1, $2, $3)
	`, juryID, name, time.Now())
	if err != nil {
		t.Fatalf("Failed to create test jury member: %v", err)
	}

	return juryID, auth.GenerateJuryToken(juryID, cfg.JuryTokenSalt)
}

// CreateTestVoter claims a username and returns the voter token
func CreateTestVoter(t *testing.T, conn *sql.DB, username string) string {
	t.Helper()

	voterToken, _ := auth.GenerateVoterToken()
	_, err := conn.Exec(`
		INSERT INTO voter_claim (voter_token, username, created_at)
		VALUES ($1, $2, $3)
	`, voterToken, username, time.Now())
	if err != nil {
		t.Fatalf("Failed to create test voter: %v", err)
	}

	return voterToken
}

// AddTestVote inserts a vote directly, bypassing handler validation
func AddTestVote(t *testing.T, conn *sql.DB, projectID, voterClass, voterRef string, value float64) string {
	t.Helper()

	voteID := auth.NewID()
	_, err := conn.Exec(`
		INSERT INTO vote (id, project_id, voter_class, voter_ref, value, created_at)
		VALUES ($1, $2, $3, $4, $5, $6)
	`, voteID, projectID, voterClass, voterRef, value, time.Now())
	if err != nil {
		t.Fatalf("Failed to create test vote: %v", err)
	}

	return voteID
}

// MakeRequest creates an HTTP test request
func MakeRequest(method, path string, body interface{}, headers map[string]string) *http.Request {
	var req *http.Request
	if body != nil {
		jsonBody, _ := json.Marshal(body)
		req = httptest.NewRequest(method, path, bytes.NewReader(jsonBody))
		req.Header.Set("Content-Type", "application/json")
	} else {
		req = httptest.NewRequest(method, path, nil)
	}

	for k, v := range headers {
		req.Header.Set(k, v)
	}

	return req
}

// AssertStatus checks that the response has the expected status code
func AssertStatus(t *testing.T, w *httptest.ResponseRecorder, expected int) {
	t.Helper()
	if w.Code != expected {
		t.Errorf("Expected status %d, got %d. Body: %s", expected, w.Code, w.Body.String())
	}
}

// AssertJSON decodes the response body into the provided struct
func AssertJSON(t *testing.T, w *httptest.ResponseRecorder, v interface{}) {
	t.Helper()
	if err := json.NewDecoder(w.Body).Decode(v); err != nil {
		t.Fatalf("Failed to decode JSON response: %v", err)
	}
}
