package services

import (
	"errors"
	"fmt"

	"golang.org/x/crypto/bcrypt"
)

const (
	DefaultHashCost = 12

	// bcrypt only reads the first 72 bytes of its input.
	maxPasswordBytes = 72
)

var (
	ErrInvalidHashInput = errors.New("password: input cannot be hashed")
	ErrCorruptHash      = errors.New("password: stored hash is malformed")
)

// PasswordService hashes and verifies principal secrets.
type PasswordService interface {
	Hash(plaintext string) (string, error)
	Verify(plaintext, hash string) (bool, error)
}

type bcryptPasswordService struct {
	cost int
}

func NewPasswordService(cost int) (PasswordService, error) {
	if cost == 0 {
		cost = DefaultHashCost
	}
	if cost < bcrypt.MinCost || cost > bcrypt.MaxCost {
		return nil, fmt.Errorf("password: cost %d outside [%d, %d]", cost, bcrypt.MinCost, bcrypt.MaxCost)
	}
	return &bcryptPasswordService{cost: cost}, nil
}

func (s *bcryptPasswordService) Hash(plaintext string) (string, error) {
	if plaintext == "" || len(plaintext) > maxPasswordBytes {
		return "", ErrInvalidHashInput
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(plaintext), s.cost)
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrInvalidHashInput, err)
	}
	return string(hash), nil
}

// Verify compares in constant time. A mismatch is not an error.
func (s *bcryptPasswordService) Verify(plaintext, hash string) (bool, error) {
	err := bcrypt.CompareHashAndPassword([]byte(hash), []byte(plaintext))
	switch {
	case err == nil:
		return true, nil
	case errors.Is(err, bcrypt.ErrMismatchedHashAndPassword):
		return false, nil
	default:
		return false, fmt.Errorf("%w: %v", ErrCorruptHash, err)
	}
}
