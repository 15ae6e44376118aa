// Copyright (c) 2025 Ben Eddy.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package auth provides token and key generation utilities.

# Session Tokens

Session tokens are random 24-byte (192-bit) secrets:

	token, err := auth.GenerateSessionToken()

Tokens are URL-safe base64 encoded without padding and scope a shopper's
cart and referral state.

# Farmer Keys

The back-office key uses HMAC-SHA256 to create a deterministic, verifiable
key from the configured salt:

	key := auth.GenerateFarmerKey(salt)
	err := auth.ValidateFarmerKey(key, salt)

Since it's deterministic, the same salt always produces the same key. This
allows validation without storing the key in the database. There is a single
farmer role; no per-farmer accounts.

# ID Generation

Random hex IDs for database records:

	id, err := auth.GenerateID(16)  // 32 hex characters

# Referral Code Characters

Random uppercase base-36 strings for referral codes:

	suffix, err := auth.RandomBase36(8)
*/
package auth
