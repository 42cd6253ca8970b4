package utils

import (
	"crypto/rand"
	"encoding/hex"
	"fmt"
	"strings"
)

// GenerateSecureRandomString generates a cryptographically secure random string of the specified byte length,
// then hex encodes it. For example, lengthInBytes=32 will result in a 64-character hex string.
func GenerateSecureRandomString(lengthInBytes int) (string, error) {
	if lengthInBytes <= 0 {
		return "", fmt.Errorf("lengthInBytes must be positive")
	}
	b := make([]byte, lengthInBytes)
	_, err := rand.Read(b)
	if err != nil {
		return "", fmt.Errorf("failed to read random bytes: %w", err)
	}
	return hex.EncodeToString(b), nil
}

// referralCodeBytes gives a 10-character uppercase hex code, short enough to
// share and large enough that collisions are resolved by a single retry.
const referralCodeBytes = 5

// GenerateReferralCode generates a new shareable referral code.
func GenerateReferralCode() (string, error) {
	s, err := GenerateSecureRandomString(referralCodeBytes)
	if err != nil {
		return "", err
	}
	return strings.ToUpper(s), nil
}
