package utils

import (
	"crypto/rand"
	"encoding/base64"
	"time"

	"github.com/google/uuid"
)

// ==================== UUID & TOKEN ====================

func GenerateUUID() uuid.UUID {
	return uuid.New()
}

func ParseUUID(uuidStr string) (uuid.UUID, error) {
	return uuid.Parse(uuidStr)
}

func GenerateSessionToken() uuid.UUID {
	return uuid.New()
}

// GenerateStateToken returns a random URL-safe value for the OAuth state round trip.
func GenerateStateToken() (string, error) {
	b := make([]byte, 32)
	if _, err := rand.Read(b); err != nil {
		return "", err
	}
	return base64.URLEncoding.EncodeToString(b), nil
}

// ==================== TIME ====================

// Now returns the current UTC time truncated to the microsecond precision
// of Postgres timestamptz, so created values match what is read back.
func Now() time.Time {
	return time.Now().UTC().Truncate(time.Microsecond)
}
