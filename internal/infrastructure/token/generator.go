// Package token implements opaque, versioned token generation with embedded
// expiry. Tokens are unguessable without the subject seed but the store, not
// the token payload, stays authoritative for validity.
package token

import (
	"crypto/sha256"
	"encoding/base64"
	"fmt"
	"strconv"
	"time"
)

// Token is one generated token with its lifecycle timestamps.
type Token struct {
	Value     string
	CreatedAt time.Time
	ExpiresAt time.Time
}

// Generator produces access and refresh tokens from a subject seed and an
// issuance instant. Pure apart from the caller-supplied clock; no storage.
type Generator interface {
	AccessToken(seed string, now time.Time) Token
	RefreshToken(seed string, now time.Time) Token
}

type generator struct {
	version         string
	accessDuration  time.Duration
	refreshDuration time.Duration
}

// NewGenerator creates a Generator. version is a short marker embedded in
// every token so the format can evolve.
func NewGenerator(version string, accessDuration, refreshDuration time.Duration) Generator {
	return &generator{
		version:         version,
		accessDuration:  accessDuration,
		refreshDuration: refreshDuration,
	}
}

func (g *generator) AccessToken(seed string, now time.Time) Token {
	return g.generate(seed, now, g.accessDuration)
}

func (g *generator) RefreshToken(seed string, now time.Time) Token {
	return g.generate(seed, now, g.refreshDuration)
}

// generate builds version NUL unix-expiry NUL sha256(seed+nanos) and encodes
// it with the URL-safe alphabet. Nanosecond precision in the hash input keeps
// tokens distinct even when two issuances share a wall-clock second.
func (g *generator) generate(seed string, now time.Time, duration time.Duration) Token {
	createdAt := now.UTC().Truncate(time.Second)
	expiresAt := createdAt.Add(duration)

	digest := sha256.Sum256([]byte(seed + strconv.FormatInt(now.UnixNano(), 10)))

	payload := make([]byte, 0, len(g.version)+1+20+1+sha256.Size)
	payload = append(payload, g.version...)
	payload = append(payload, 0)
	payload = append(payload, fmt.Sprintf("%d", expiresAt.Unix())...)
	payload = append(payload, 0)
	payload = append(payload, digest[:]...)

	return Token{
		Value:     base64.RawURLEncoding.EncodeToString(payload),
		CreatedAt: createdAt,
		ExpiresAt: expiresAt,
	}
}
