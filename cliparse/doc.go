// Copyright (c) 2025 Ben Eddy.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package cliparse handles command-line argument parsing and configuration.

# Configuration

ParseFlags returns a Config struct with all settings:

	cfg, err := cliparse.ParseFlags(os.Args[1:])

A .env file in the working directory is loaded first (via godotenv); CLI
flags win over environment variables.

# Config Fields

  - Port: Server listen port (default: 4117)
  - DatabaseType: "sqlite" or "postgres" (default: sqlite)
  - DatabaseURL: Connection string or sqlite file path
  - CatalogPath: External catalog YAML (default: embedded catalog)
  - FarmerKeySalt: Secret for the back-office key HMAC (required)
  - ReferralPrefix: Referral code prefix (default: ATX)
  - DeliveryFee: Flat monthly delivery fee (default: 5.99)

# CLI Flags

	-p               Server port
	-t               Database type
	-d               Database URL
	-catalog         Catalog YAML path
	-farmer-salt     Farmer back-office key salt
	-referral-prefix Referral code prefix
	-delivery-fee    Delivery fee

# Environment Variables

Flags fall back to environment variables:

	PORT            → -p
	DATABASE_TYPE   → -t
	DATABASE_URL    → -d
	CATALOG_PATH    → -catalog
	FARMER_KEY_SALT → -farmer-salt
	REFERRAL_PREFIX → -referral-prefix
	DELIVERY_FEE    → -delivery-fee
*/
package cliparse
