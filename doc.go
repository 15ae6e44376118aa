// Copyright (c) 2025 Ben Eddy.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package main provides the entry point for the CrowdHarvest ATX API server.

CrowdHarvest ATX is a local-farm subscription storefront: customers build a
monthly basket of farm shares and flat-unit goods, track community commitment
progress per category, and refer friends; farmers manage inventory and
delivery orders through a keyed back office.

# Starting the Server

The server runs against an embedded sqlite database by default:

	FARMER_KEY_SALT=secret go run .

Or against PostgreSQL with flags:

	go run . -t postgres -d "postgres://..." -farmer-salt secret

# Configuration

Required settings:

  - FARMER_KEY_SALT (-farmer-salt): Secret for the back-office key HMAC

Optional settings:

  - PORT (-p): Server port (default: 4117)
  - DATABASE_TYPE (-t): "sqlite" or "postgres" (default: sqlite)
  - DATABASE_URL (-d): Connection string or sqlite path (default: crowdharvest.db)
  - CATALOG_PATH (-catalog): External catalog YAML (default: embedded seed)
  - REFERRAL_PREFIX (-referral-prefix): Referral code prefix (default: ATX)
  - DELIVERY_FEE (-delivery-fee): Monthly delivery fee (default: 5.99)

A .env file in the working directory is loaded before flags are parsed.

# Architecture

The server uses a handler-based architecture with dependency injection:

  - handlers: HTTP request handlers (catalog, cart, referral, dashboard, farmer)
  - router: Route definitions using Go 1.22+ routing
  - middleware: CORS, logging, JSON helpers
  - models: Request/response and domain types
  - catalog: YAML product catalog with share tiers and community progress
  - pricing: Share-tier pricing, cart totals, and cut breakdowns
  - cart: In-memory session-scoped cart store
  - kvstore: Session-scoped key/value persistence
  - referral: Referral codes, tracking, and earnings
  - auth: Token and back-office key generation
  - db: Schema creation and demo seed data
  - cliparse: Configuration parsing

See package documentation for each component.
*/
package main
