/*
Package models defines request, response, and domain types for the API.

# Request Types

Types for parsing incoming JSON:

  - CreateProjectRequest: title, category, description
  - CreateJuryMemberRequest: name
  - ClaimVoterRequest: username
  - CastVoteRequest: value

# Response Types

Types for JSON responses:

  - CreateProjectResponse: project_id
  - CreateJuryMemberResponse: jury_id, jury_token
  - ClaimVoterResponse: voter_token
  - CastVoteResponse: vote_id, score (absent if the recompute failed)
  - ProjectWithScore: project, score
  - ClassementResponse: mode, rankings
  - ErrorResponse: error, message

Scores are rendered through scoring.ScoreView, which rounds to one decimal
and carries the weights that produced it.

# Domain Types

  - Project: contest entry with its cached stored_score
  - Vote: one jury or public judgment
  - JuryMember: a juror allowed to cast jury votes
*/
package models
