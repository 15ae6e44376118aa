// Copyright (c) 2025 Ben Eddy.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package db handles database schema creation and demo seed data.

# Schema Creation

CreateSchema initializes all required tables:

	if err := db.CreateSchema(conn); err != nil {
		log.Fatal(err)
	}

Safe to call multiple times - uses IF NOT EXISTS for all tables and indexes.
The DDL sticks to the dialect both sqlite and postgres accept.

# Tables

The schema includes:

  - session: Shopper session tokens
  - kv: Durable per-session key-value state
  - referral_event: One counted event per referred customer
  - farm_order: Back-office delivery orders
  - order_item: Line items per order
  - inventory: Farmer-editable per-product stock and price

# Relationships

	session 1──* kv
	session 1──* referral_event
	farm_order 1──* order_item

Session-owned rows use ON DELETE CASCADE.

# Seed Data

SeedDemoData loads the back office's starting orders and one inventory row
per catalog product. Idempotent: existing rows are left alone so operator
edits and status advances survive restarts.
*/
package db
