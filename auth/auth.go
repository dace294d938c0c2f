package auth

import (
	"crypto/hmac"
	"crypto/rand"
	"crypto/sha256"
	"encoding/base64"
	"encoding/hex"
	"errors"
	"fmt"

	"github.com/google/uuid"
)

var (
	ErrInvalidAdminKey  = errors.New("invalid admin key")
	ErrInvalidJuryToken = errors.New("invalid jury token")
)

// voterTokenBytes is the entropy of a public voter token (192 bits)
const voterTokenBytes = 24

// NewID returns a random UUIDv4 for database records
func NewID() string {
	return uuid.NewString()
}

func mac(key, msg string) []byte {
	h := hmac.New(sha256.New, []byte(key))
	h.Write([]byte(msg))
	return h.Sum(nil)
}

// DeriveKey derives an independent key for purpose from secret, so one
// configured secret can seed several unrelated HMAC keys.
func DeriveKey(secret, purpose string) string {
	return hex.EncodeToString(mac(secret, purpose))
}

// ValidateAdminKey compares the provided key to the configured one in
// constant time. An empty configured key never validates.
func ValidateAdminKey(provided, expected string) error {
	if expected == "" || !hmac.Equal([]byte(provided), []byte(expected)) {
		return ErrInvalidAdminKey
	}
	return nil
}

// GenerateJuryToken derives a juror's token from its ID. The token is
// reproducible from the salt, so it is handed out once and never stored.
func GenerateJuryToken(juryID, salt string) string {
	return base64.RawURLEncoding.EncodeToString(mac(salt, juryID))
}

// ValidateJuryToken checks a token against the juror it claims to belong to
func ValidateJuryToken(juryID, token, salt string) error {
	if juryID == "" {
		return ErrInvalidJuryToken
	}
	if !hmac.Equal([]byte(token), []byte(GenerateJuryToken(juryID, salt))) {
		return ErrInvalidJuryToken
	}
	return nil
}

// GenerateVoterToken returns a fresh secret identifying one public voter.
// A public vote is unique per (project, voter token).
func GenerateVoterToken() (string, error) {
	b := make([]byte, voterTokenBytes)
	if _, err := rand.Read(b); err != nil {
		return "", fmt.Errorf("failed to generate voter token: %w", err)
	}
	return base64.RawURLEncoding.EncodeToString(b), nil
}

// HashIP keys the voter's address with the salt and keeps 64 bits,
// enough to spot ballot stuffing from one address without storing it.
func HashIP(ip, salt string) string {
	return hex.EncodeToString(mac(salt, ip)[:8])
}
