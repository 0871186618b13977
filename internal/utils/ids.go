package utils

import "github.com/google/uuid"

// IsUUID reports whether s parses as a canonical UUID. Path ids are checked
// before they ever reach the store, so a garbled id is a 400, not a 404.
func IsUUID(s string) bool {
	_, err := uuid.Parse(s)
	return err == nil
}
