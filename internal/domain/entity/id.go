package entity

import "github.com/google/uuid"

// ValidID indica si id es un UUID en forma canónica (8-4-4-4-12).
// uuid.Parse también acepta urn:uuid:, llaves y 32 hex, que PostgreSQL no recibe.
func ValidID(id string) bool {
	if len(id) != 36 {
		return false
	}
	_, err := uuid.Parse(id)
	return err == nil
}
