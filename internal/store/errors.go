package store

import (
	"errors"
	"strings"
)

var (
	// ErrUnavailable is returned by writes when no persistence backend is
	// configured. Handlers map it to 503.
	ErrUnavailable = errors.New("no persistence backend configured")

	// ErrDuplicateKey is returned when a write violates a uniqueness
	// constraint other than the upsert's own natural key, e.g. a power stone
	// claiming an id that already belongs to another slot. Handlers map it
	// to 409.
	ErrDuplicateKey = errors.New("duplicate key")
)

// pgUniqueViolation is the Postgres error code PostgREST reports for
// uniqueness violations. postgrest-go folds the code into the error string,
// so matching on it is the only detection available.
const pgUniqueViolation = "23505"

func isDuplicateKey(err error) bool {
	return err != nil && strings.Contains(err.Error(), pgUniqueViolation)
}
