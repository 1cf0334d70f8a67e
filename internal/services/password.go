package services

import (
	"crypto/rand"
	"fmt"
	"math/big"
)

const (
	passwordLower   = "abcdefghijkmnopqrstuvwxyz"
	passwordUpper   = "ABCDEFGHJKLMNPQRSTUVWXYZ"
	passwordDigits  = "23456789"
	passwordSymbols = "!@#$%^&*-_=+"

	// MinSuppliedPasswordLen is the shortest caller-supplied password the
	// provisioning repair path will accept before substituting a generated
	// one.
	MinSuppliedPasswordLen = 8

	// GeneratedPasswordLen is always >= 10 and covers all four classes.
	GeneratedPasswordLen = 12
)

// GeneratePassword returns a random password of the given length (floored
// at 10) containing at least one lowercase, uppercase, digit and symbol
// character.
func GeneratePassword(length int) (string, error) {
	if length < 10 {
		length = 10
	}
	classes := []string{passwordLower, passwordUpper, passwordDigits, passwordSymbols}
	all := passwordLower + passwordUpper + passwordDigits + passwordSymbols

	buf := make([]byte, 0, length)
	for _, class := range classes {
		ch, err := randomChar(class)
		if err != nil {
			return "", err
		}
		buf = append(buf, ch)
	}
	for len(buf) < length {
		ch, err := randomChar(all)
		if err != nil {
			return "", err
		}
		buf = append(buf, ch)
	}

	// Fisher-Yates so the class-guaranteed characters are not always first.
	for i := len(buf) - 1; i > 0; i-- {
		j, err := rand.Int(rand.Reader, big.NewInt(int64(i+1)))
		if err != nil {
			return "", fmt.Errorf("shuffle password: %w", err)
		}
		buf[i], buf[j.Int64()] = buf[j.Int64()], buf[i]
	}
	return string(buf), nil
}

func randomChar(set string) (byte, error) {
	n, err := rand.Int(rand.Reader, big.NewInt(int64(len(set))))
	if err != nil {
		return 0, fmt.Errorf("generate password char: %w", err)
	}
	return set[n.Int64()], nil
}
