package cliparse

import (
	"errors"
	"flag"
	"os"
	"strconv"

	"github.com/joho/godotenv"
)

type Config struct {
	Port           int
	DatabaseURL    string
	DatabaseType   string
	FarmerKeySalt  string
	CatalogPath    string
	ReferralPrefix string
	DeliveryFee    float64
}

// ParseFlags validates flags, applies .env/environment fallbacks, and sets
// defaults. CLI flags win over environment variables.
func ParseFlags(args []string) (Config, error) {
	// Best-effort .env load; a missing file is not an error
	_ = godotenv.Load()

	var cfg Config

	fs := flag.NewFlagSet("crowdharvest", flag.ContinueOnError)

	// Network and storage config (can be CLI args or env)
	fs.IntVar(&cfg.Port, "p", 0, "Server port")
	fs.StringVar(&cfg.DatabaseURL, "d", "", "Database URL (postgres DSN or sqlite file path)")
	fs.StringVar(&cfg.DatabaseType, "t", "", "Database type (sqlite or postgres)")
	fs.StringVar(&cfg.CatalogPath, "catalog", "", "Catalog YAML file (defaults to the embedded catalog)")

	// Secrets (prefer env variables, but allow CLI for dev)
	fs.StringVar(&cfg.FarmerKeySalt, "farmer-salt", "", "Farmer back-office key salt (prefer env)")

	// Storefront knobs
	fs.StringVar(&cfg.ReferralPrefix, "referral-prefix", "", "Referral code prefix")
	fs.Float64Var(&cfg.DeliveryFee, "delivery-fee", 0, "Flat delivery fee per order")

	if err := fs.Parse(args); err != nil {
		return Config{}, err
	}

	// Fall back to environment variables
	if cfg.Port == 0 {
		if portStr := os.Getenv("PORT"); portStr != "" {
			port, err := strconv.Atoi(portStr)
			if err != nil {
				return Config{}, errors.New("invalid PORT env variable")
			}
			cfg.Port = port
		} else {
			cfg.Port = 4117 // default
		}
	}

	if cfg.DatabaseType == "" {
		cfg.DatabaseType = os.Getenv("DATABASE_TYPE")
		if cfg.DatabaseType == "" {
			cfg.DatabaseType = "sqlite"
		}
	}
	if cfg.DatabaseType != "sqlite" && cfg.DatabaseType != "postgres" {
		return Config{}, errors.New("database type must be sqlite or postgres")
	}

	if cfg.DatabaseURL == "" {
		cfg.DatabaseURL = os.Getenv("DATABASE_URL")
	}
	if cfg.DatabaseURL == "" {
		if cfg.DatabaseType == "sqlite" {
			cfg.DatabaseURL = "crowdharvest.db"
		} else {
			return Config{}, errors.New("database URL required for postgres (use -d or DATABASE_URL env)")
		}
	}

	if cfg.CatalogPath == "" {
		cfg.CatalogPath = os.Getenv("CATALOG_PATH")
	}

	// Secret - MUST be provided
	if cfg.FarmerKeySalt == "" {
		cfg.FarmerKeySalt = os.Getenv("FARMER_KEY_SALT")
	}
	if cfg.FarmerKeySalt == "" {
		return Config{}, errors.New("FARMER_KEY_SALT required")
	}

	if cfg.ReferralPrefix == "" {
		cfg.ReferralPrefix = os.Getenv("REFERRAL_PREFIX")
		if cfg.ReferralPrefix == "" {
			cfg.ReferralPrefix = "ATX"
		}
	}

	if cfg.DeliveryFee == 0 {
		if feeStr := os.Getenv("DELIVERY_FEE"); feeStr != "" {
			fee, err := strconv.ParseFloat(feeStr, 64)
			if err != nil || fee < 0 {
				return Config{}, errors.New("invalid DELIVERY_FEE env variable")
			}
			cfg.DeliveryFee = fee
		} else {
			cfg.DeliveryFee = 5.99 // default flat fee
		}
	}

	return cfg, nil
}
