/*
Package handlers contains HTTP request handlers for the contest scoring API.

# Handler Types

Each handler is a struct with database and config dependencies:

  - ProjectHandler: Project creation, listing, deletion
  - JuryHandler: Jury member creation and listing
  - VotingHandler: Username claims and vote casting
  - VoteAdminHandler: Vote listing and removal
  - ResultsHandler: Scores, rankings, recomputation, stats

Handlers that touch scores also take the ranking cache:

	votingHandler := handlers.NewVotingHandler(db, cfg, rankingCache)

# Voting Flow

Public voters claim a username once and receive a voter token:

	POST /voters                     → ClaimVoter (returns voter_token)
	POST /projects/{id}/votes/public → CastPublicVote (X-Voter-Token)

Jurors are created by an admin and receive an HMAC token:

	POST /jury                     → CreateJuryMember (returns jury_token)
	POST /projects/{id}/votes/jury → CastJuryVote (X-Jury-ID, X-Jury-Token)

A voter gets one vote per project; a second attempt is 409 Conflict.
Values outside the configured scale are rejected with 400.

# Scores

Every accepted or removed vote triggers a recomputation of that project:
the votes are read, aggregated by scoring.Aggregator, and the final score
and vote count are written back to the project row. Rankings are always
computed from the votes, never from the stored columns.

Stored votes the aggregator rejects (unknown class, value off scale) surface
as 422 Unprocessable Entity.

Admin operations require the X-Admin-Key header.
*/
package handlers
