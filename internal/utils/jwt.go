package utils // package utils provides helpers for token creation and hashing

import (
	"crypto/sha256" // SHA-256 hashing for stored refresh tokens
	"encoding/hex"  // hex encoding of digests
	"errors"        // sentinel error value
	"time"          // expiry arithmetic

	"github.com/golang-jwt/jwt/v5" // JWT library for signed tokens
	"github.com/google/uuid"       // user identifiers embedded as the subject claim
)

// ErrInvalidToken is returned by ParseToken for every failure mode:
// malformed structure, signature mismatch, wrong algorithm, expiry, or a
// subject that is not a UUID. Callers must not be able to tell which
// check failed.
var ErrInvalidToken = errors.New("invalid token")

// AccessToken is a signed short-lived JWT proving identity for a single
// session window, returned to the client in the login/register response.
type AccessToken struct {
	Token string    // the serialized JWT string
	Exp   time.Time // UTC expiration time
}

// RefreshToken is a longer-lived credential minted with the same signing
// mechanism. The raw string is persisted server-side (hashed) so that
// logout can revoke every session; it is never returned to the client by
// the current API.
type RefreshToken struct {
	Raw string    // serialized JWT string
	Exp time.Time // UTC expiration time
}

// NewAccessToken builds and signs an HS256 JWT for a user. Claims are the
// subject (sub, the user's UUID), expiration (exp, now + ttlMin minutes)
// and issued-at (iat).
func NewAccessToken(secret string, userID uuid.UUID, ttlMin int) (AccessToken, error) {
	exp := time.Now().UTC().Add(time.Duration(ttlMin) * time.Minute)
	signed, err := signToken(secret, userID, exp)
	if err != nil {
		return AccessToken{}, err
	}
	return AccessToken{Token: signed, Exp: exp}, nil
}

// NewRefreshToken mints a refresh token with the same signing mechanism
// as access tokens but a TTL measured in days.
func NewRefreshToken(secret string, userID uuid.UUID, ttlDays int) (RefreshToken, error) {
	exp := time.Now().UTC().Add(time.Duration(ttlDays) * 24 * time.Hour)
	signed, err := signToken(secret, userID, exp)
	if err != nil {
		return RefreshToken{}, err
	}
	return RefreshToken{Raw: signed, Exp: exp}, nil
}

func signToken(secret string, userID uuid.UUID, exp time.Time) (string, error) {
	claims := jwt.MapClaims{
		"sub": userID.String(),
		"exp": exp.Unix(),
		"iat": time.Now().UTC().Unix(),
	}
	t := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return t.SignedString([]byte(secret))
}

// ParseToken verifies the signature and expiry of a token and returns the
// embedded subject UUID. Any failure yields ErrInvalidToken.
func ParseToken(secret, raw string) (uuid.UUID, error) {
	tok, err := jwt.Parse(raw, func(t *jwt.Token) (interface{}, error) {
		// Only HMAC-signed tokens are accepted.
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, ErrInvalidToken
		}
		return []byte(secret), nil
	})
	if err != nil || !tok.Valid {
		return uuid.Nil, ErrInvalidToken
	}
	claims, ok := tok.Claims.(jwt.MapClaims)
	if !ok {
		return uuid.Nil, ErrInvalidToken
	}
	sub, ok := claims["sub"].(string)
	if !ok {
		return uuid.Nil, ErrInvalidToken
	}
	id, err := uuid.Parse(sub)
	if err != nil {
		return uuid.Nil, ErrInvalidToken
	}
	return id, nil
}

// HashRefreshRaw returns the SHA-256 hash of a raw refresh token as a hex
// string. Only the hash is stored in the database, so leaked rows cannot
// be replayed as sessions.
func HashRefreshRaw(raw string) string {
	sum := sha256.Sum256([]byte(raw))
	return hex.EncodeToString(sum[:])
}
