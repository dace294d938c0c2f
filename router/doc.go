/*
Package router defines HTTP routes for the contest scoring API.

# Route Registration

NewRouter returns a chi.Mux with request IDs, real IP resolution, panic
recovery, CORS and request metrics installed:

	r := router.NewRouter(db, cfg, rankingCache)

# Endpoints

Health and metrics:

	GET /health
	GET /metrics

Projects:

	POST   /projects      - Create project (admin)
	GET    /projects      - List projects with stored scores
	GET    /projects/{id} - Project and live score
	DELETE /projects/{id} - Delete project and its votes (admin)

Jury (admin):

	POST /jury - Create juror, returns jury token
	GET  /jury - List jurors

Voting:

	POST /voters                      - Claim a public username
	POST /projects/{id}/votes/public  - Public vote (X-Voter-Token)
	POST /projects/{id}/votes/jury    - Jury vote (X-Jury-ID, X-Jury-Token)

Results:

	GET  /projects/{id}/score     - Live score
	GET  /classement?mode=        - Ranking, final (default) or popular
	GET  /scoring                 - Weights and scale in force
	POST /projects/{id}/recompute - Persist one project's score (admin)

Administration (X-Admin-Key):

	GET    /admin/votes?project_id= - List votes
	DELETE /admin/votes/{id}        - Remove a vote
	POST   /admin/recompute         - Persist every project's score
	GET    /admin/stats             - Contest summary
*/
package router
