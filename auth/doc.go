/*
Package auth provides authentication and token generation utilities.

# Admin Key

Admin routes require the X-Admin-Key header to match the configured key:

	err := auth.ValidateAdminKey(r.Header.Get("X-Admin-Key"), cfg.AdminKey)

The comparison is constant time.

# Jury Tokens

Jury tokens use HMAC-SHA256 over the juror ID:

	token := auth.GenerateJuryToken(juryID, salt)
	err := auth.ValidateJuryToken(juryID, token, salt)

The token is URL-safe base64 encoded without padding. Since it's
deterministic, it is handed out once when the juror is created and never
stored.

# Voter Tokens

Public voter tokens are random 24-byte (192-bit) secrets:

	token, err := auth.GenerateVoterToken()

Each public voter gets a token when claiming a username; the token is what
makes a public vote unique per project.

# ID Generation

Random UUIDs for database records:

	id := auth.NewID()

# IP Hashing

For privacy-preserving fraud detection:

	hash := auth.HashIP(ipAddress, salt)

Returns first 8 bytes (16 hex chars) of HMAC-SHA256.
*/
package auth
