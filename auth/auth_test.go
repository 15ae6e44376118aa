// Copyright (c) 2025 Ben Eddy.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package auth

import (
	"strings"
	"testing"
)

func TestGenerateID(t *testing.T) {
	tests := []struct {
		name    string
		byteLen int
		wantLen int // hex encoded length = byteLen * 2
	}{
		{"8 bytes", 8, 16},
		{"16 bytes", 16, 32},
		{"24 bytes", 24, 48},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			id, err := GenerateID(tt.byteLen)
			if err != nil {
				t.Fatalf("GenerateID() error = %v", err)
			}
			if len(id) != tt.wantLen {
				t.Errorf("GenerateID() length = %d, want %d", len(id), tt.wantLen)
			}
			// Verify it's valid hex
			for _, c := range id {
				if !((c >= '0' && c <= '9') || (c >= 'a' && c <= 'f')) {
					t.Errorf("GenerateID() contains invalid hex char: %c", c)
				}
			}
		})
	}

	// Two IDs should be different
	id1, _ := GenerateID(16)
	id2, _ := GenerateID(16)
	if id1 == id2 {
		t.Error("GenerateID() produced duplicate IDs (extremely unlikely)")
	}
}

func TestGenerateSessionToken(t *testing.T) {
	token, err := GenerateSessionToken()
	if err != nil {
		t.Fatalf("GenerateSessionToken() error = %v", err)
	}
	if token == "" {
		t.Fatal("GenerateSessionToken() returned empty string")
	}
	if strings.Contains(token, "=") {
		t.Error("GenerateSessionToken() contains padding characters")
	}

	other, _ := GenerateSessionToken()
	if token == other {
		t.Error("GenerateSessionToken() produced duplicate tokens (extremely unlikely)")
	}
}

func TestGenerateFarmerKey(t *testing.T) {
	key := GenerateFarmerKey("secret-salt")

	if key == "" {
		t.Fatal("GenerateFarmerKey() returned empty string")
	}

	// Deterministic for the same salt
	if key != GenerateFarmerKey("secret-salt") {
		t.Error("GenerateFarmerKey() is not deterministic")
	}

	// Different salts produce different keys
	if key == GenerateFarmerKey("other-salt") {
		t.Error("GenerateFarmerKey() produced same key for different salts")
	}

	// URL-safe, no padding
	if strings.Contains(key, "=") {
		t.Error("GenerateFarmerKey() contains padding characters")
	}
}

func TestValidateFarmerKey(t *testing.T) {
	salt := "secret-salt"
	key := GenerateFarmerKey(salt)

	if err := ValidateFarmerKey(key, salt); err != nil {
		t.Errorf("ValidateFarmerKey() rejected valid key: %v", err)
	}
	if err := ValidateFarmerKey(key, "other-salt"); err == nil {
		t.Error("ValidateFarmerKey() accepted key for wrong salt")
	}
	if err := ValidateFarmerKey("", salt); err == nil {
		t.Error("ValidateFarmerKey() accepted empty key")
	}
	if err := ValidateFarmerKey(key+"x", salt); err == nil {
		t.Error("ValidateFarmerKey() accepted tampered key")
	}
}

func TestRandomBase36(t *testing.T) {
	code, err := RandomBase36(8)
	if err != nil {
		t.Fatalf("RandomBase36() error = %v", err)
	}
	if len(code) != 8 {
		t.Errorf("RandomBase36(8) length = %d, want 8", len(code))
	}
	for _, c := range code {
		if !((c >= '0' && c <= '9') || (c >= 'A' && c <= 'Z')) {
			t.Errorf("RandomBase36() contains invalid char: %c", c)
		}
	}

	// Two codes should be different
	other, _ := RandomBase36(8)
	if code == other {
		t.Error("RandomBase36() produced duplicate codes (unlikely)")
	}
}
