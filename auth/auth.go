// Copyright (c) 2025 Ben Eddy.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package auth

import (
	"crypto/hmac"
	"crypto/rand"
	"crypto/sha256"
	"encoding/base64"
	"encoding/hex"
	"errors"
	"fmt"
	"strings"
)

var (
	ErrInvalidFarmerKey = errors.New("invalid farmer key")
	ErrInvalidToken     = errors.New("invalid token format")
)

// farmerRealm is the fixed input the back-office key is derived from. There
// is a single farmer role (no multi-tenant accounts), so one key per salt.
const farmerRealm = "farmer-backoffice"

// GenerateID creates a random hex ID of the specified byte length
func GenerateID(byteLen int) (string, error) {
	b := make([]byte, byteLen)
	_, err := rand.Read(b)
	if err != nil {
		return "", fmt.Errorf("failed to generate random ID: %w", err)
	}
	return hex.EncodeToString(b), nil
}

// GenerateSessionToken creates a random secure token for a shopper session.
// The token scopes the session's cart and referral state.
func GenerateSessionToken() (string, error) {
	b := make([]byte, 24) // 24 bytes = 192 bits of entropy
	_, err := rand.Read(b)
	if err != nil {
		return "", fmt.Errorf("failed to generate session token: %w", err)
	}
	// URL-safe base64 without padding
	return strings.TrimRight(base64.URLEncoding.EncodeToString(b), "="), nil
}

// GenerateFarmerKey derives the back-office access key from the salt.
// Deterministic and verifiable, same construction as an HMAC admin key.
func GenerateFarmerKey(salt string) string {
	h := hmac.New(sha256.New, []byte(salt))
	h.Write([]byte(farmerRealm))
	sum := h.Sum(nil)
	return strings.TrimRight(base64.URLEncoding.EncodeToString(sum), "=")
}

// ValidateFarmerKey checks a presented back-office key against the salt
func ValidateFarmerKey(key, salt string) error {
	expected := GenerateFarmerKey(salt)
	if !hmac.Equal([]byte(key), []byte(expected)) {
		return ErrInvalidFarmerKey
	}
	return nil
}

// RandomBase36 returns n random uppercase base-36 characters (0-9, A-Z),
// the alphabet referral codes are built from.
func RandomBase36(n int) (string, error) {
	const alphabet = "0123456789ABCDEFGHIJKLMNOPQRSTUVWXYZ"

	b := make([]byte, n)
	_, err := rand.Read(b)
	if err != nil {
		return "", fmt.Errorf("failed to generate random code: %w", err)
	}
	out := make([]byte, n)
	for i, v := range b {
		out[i] = alphabet[int(v)%len(alphabet)]
	}
	return string(out), nil
}
