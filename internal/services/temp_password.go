package services

import (
	"crypto/rand"
	"fmt"
	"math/big"
	"strconv"
)

// TempPasswordGenerator mints the one-time secret handed to a new trainer.
type TempPasswordGenerator func() (string, error)

var tempPasswordSpan = big.NewInt(900000)

// GenerateTempPassword returns a 6-digit code uniform over [100000, 999999].
func GenerateTempPassword() (string, error) {
	n, err := rand.Int(rand.Reader, tempPasswordSpan)
	if err != nil {
		return "", fmt.Errorf("generate temp password: %w", err)
	}
	return strconv.FormatInt(n.Int64()+100000, 10), nil
}
