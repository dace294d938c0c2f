/*
Package db handles database connections, schema creation, and the data
access used by scoring.

# Connections

Open selects the driver from the configured type:

	conn, err := db.Open("postgres", cfg.DatabaseURL) // lib/pq
	conn, err := db.Open("sqlite", "file:jig.db")     // modernc.org/sqlite

SQLite connections are limited to a single open connection.

# Schema Creation

	if err := db.CreateSchema(conn); err != nil {
		log.Fatal(err)
	}

Safe to call multiple times - uses IF NOT EXISTS for all tables and indexes.

# Tables

  - project: Contest entries plus cached stored_score / total_vote_count
  - jury_member: Jurors allowed to cast jury votes
  - voter_claim: Maps public usernames to voter tokens
  - vote: One vote per (project, voter class, voter)

# Store

Store wraps the queries the scoring code needs:

	store := db.NewStore(conn)
	votes, err := store.FetchVotesForProject(ctx, projectID)
	projects, err := store.FetchAllProjects(ctx)
	err = store.SaveProjectScore(ctx, projectID, final, total)

SaveProjectScore only writes the two derived columns.
*/
package db
