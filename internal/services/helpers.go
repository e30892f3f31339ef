package services

import (
	"errors"

	"adminportal/internal/common"
)

// hashPassword hashes plaintext and reports inputs bcrypt refuses as a
// validation failure on field.
func hashPassword(passwords PasswordService, field, plaintext string) (string, error) {
	hash, err := passwords.Hash(plaintext)
	if err != nil {
		if errors.Is(err, ErrInvalidHashInput) {
			return "", common.NewValidationError([]common.FieldError{{
				Field:   field,
				Message: "Password must be at most 72 bytes",
			}})
		}
		return "", common.NewStoreError("hash password", err)
	}
	return hash, nil
}

// verifyPassword maps a corrupt stored hash to an internal error.
func verifyPassword(passwords PasswordService, plaintext, hash string) (bool, error) {
	ok, err := passwords.Verify(plaintext, hash)
	if err != nil {
		return false, common.NewStoreError("verify password", err)
	}
	return ok, nil
}
