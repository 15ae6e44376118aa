// Copyright (c) 2025 Ben Eddy.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package db

import (
	"database/sql"
	"fmt"

	"github.com/ben-eddy/crowdharvest-atx-basket-sub000/catalog"
)

// CreateSchema creates all tables needed for the application.
// Safe to call multiple times - uses IF NOT EXISTS.
// The DDL is restricted to the SQL dialect both sqlite and postgres accept.
func CreateSchema(db *sql.DB) error {
	_, err := db.Exec(schema)
	if err != nil {
		return fmt.Errorf("failed to create schema: %w", err)
	}

	return nil
}

const schema = `
-- Shopper sessions
CREATE TABLE IF NOT EXISTS session (
    token TEXT PRIMARY KEY,
    created_at TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP
);

-- Durable per-session key-value state (referral code, counters, markers)
CREATE TABLE IF NOT EXISTS kv (
    session_token TEXT NOT NULL REFERENCES session(token) ON DELETE CASCADE,
    key TEXT NOT NULL,
    value TEXT NOT NULL,
    PRIMARY KEY (session_token, key)
);

-- Referral seen-set: at most one counted event per referred customer
CREATE TABLE IF NOT EXISTS referral_event (
    id TEXT PRIMARY KEY,
    session_token TEXT NOT NULL REFERENCES session(token) ON DELETE CASCADE,
    referred_id TEXT NOT NULL,
    created_at TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP,
    UNIQUE (session_token, referred_id)
);

CREATE INDEX IF NOT EXISTS idx_referral_event_session ON referral_event(session_token);

-- Farmer back-office orders ("order" itself is reserved in SQL)
CREATE TABLE IF NOT EXISTS farm_order (
    id TEXT PRIMARY KEY,
    customer TEXT NOT NULL,
    location TEXT NOT NULL,
    status TEXT NOT NULL DEFAULT 'pending' CHECK (status IN ('pending', 'prepared', 'ready', 'delivered')),
    total REAL NOT NULL DEFAULT 0,
    placed_at TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP
);

CREATE INDEX IF NOT EXISTS idx_farm_order_location ON farm_order(location);
CREATE INDEX IF NOT EXISTS idx_farm_order_status ON farm_order(status);

CREATE TABLE IF NOT EXISTS order_item (
    order_id TEXT NOT NULL REFERENCES farm_order(id) ON DELETE CASCADE,
    product_id TEXT NOT NULL,
    name TEXT NOT NULL,
    quantity REAL NOT NULL,
    line_total REAL NOT NULL,
    PRIMARY KEY (order_id, product_id)
);

-- Farmer-editable inventory
CREATE TABLE IF NOT EXISTS inventory (
    product_id TEXT PRIMARY KEY,
    name TEXT NOT NULL,
    unit TEXT NOT NULL,
    stock REAL NOT NULL DEFAULT 0,
    price REAL NOT NULL DEFAULT 0,
    updated_at TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP
);
`

// demoOrder is one seeded back-office record. The back office starts from
// fixed demo data; storefront checkout never writes orders.
type demoOrder struct {
	id       string
	customer string
	location string
	status   string
	total    float64
	items    []demoItem
}

type demoItem struct {
	productID string
	name      string
	quantity  float64
	lineTotal float64
}

var demoOrders = []demoOrder{
	{
		id: "ord-1001", customer: "Maya R.", location: "mueller", status: "pending", total: 348.98,
		items: []demoItem{
			{productID: "beef-share", name: "Monthly Beef Share", quantity: 3, lineTotal: 336.00},
			{productID: "eggs-dozen", name: "Pastured Eggs", quantity: 1, lineTotal: 8.99},
		},
	},
	{
		id: "ord-1002", customer: "Devon C.", location: "mueller", status: "prepared", total: 220.99,
		items: []demoItem{
			{productID: "lamb-share", name: "Monthly Lamb Share", quantity: 2, lineTotal: 180.00},
			{productID: "veggie-box", name: "Seasonal Veggie Box", quantity: 1, lineTotal: 35.00},
		},
	},
	{
		id: "ord-1003", customer: "Priya S.", location: "barton", status: "ready", total: 73.47,
		items: []demoItem{
			{productID: "whole-chicken", name: "Whole Pastured Chicken", quantity: 2, lineTotal: 49.98},
			{productID: "raw-milk", name: "Raw Jersey Milk", quantity: 2.5, lineTotal: 16.25},
		},
	},
	{
		id: "ord-1004", customer: "Jordan A.", location: "eastside", status: "delivered", total: 52.99,
		items: []demoItem{
			{productID: "farmstead-cheese", name: "Farmstead Cheddar", quantity: 1.5, lineTotal: 18.00},
			{productID: "veggie-box", name: "Seasonal Veggie Box", quantity: 1, lineTotal: 35.00},
		},
	},
}

// demoStock maps product id → opening stock for the seeded inventory.
var demoStock = map[string]float64{
	"beef-share":       14,
	"lamb-share":       8,
	"whole-chicken":    60,
	"eggs-dozen":       140,
	"veggie-box":       45,
	"raw-milk":         90,
	"farmstead-cheese": 30,
}

// SeedDemoData loads the farmer back-office's starting orders and an
// inventory row per catalog product. Idempotent: existing rows are left
// alone, so operator edits and status advances survive restarts.
func SeedDemoData(db *sql.DB, cat *catalog.Catalog) error {
	for _, p := range cat.Products {
		_, err := db.Exec(`
			INSERT INTO inventory (product_id, name, unit, stock, price)
			VALUES ($1, $2, $3, $4, $5)
			ON CONFLICT (product_id) DO NOTHING
		`, p.ID, p.Name, p.Unit, demoStock[p.ID], p.Price)
		if err != nil {
			return fmt.Errorf("failed to seed inventory for %s: %w", p.ID, err)
		}
	}

	for _, o := range demoOrders {
		_, err := db.Exec(`
			INSERT INTO farm_order (id, customer, location, status, total)
			VALUES ($1, $2, $3, $4, $5)
			ON CONFLICT (id) DO NOTHING
		`, o.id, o.customer, o.location, o.status, o.total)
		if err != nil {
			return fmt.Errorf("failed to seed order %s: %w", o.id, err)
		}
		for _, it := range o.items {
			_, err := db.Exec(`
				INSERT INTO order_item (order_id, product_id, name, quantity, line_total)
				VALUES ($1, $2, $3, $4, $5)
				ON CONFLICT (order_id, product_id) DO NOTHING
			`, o.id, it.productID, it.name, it.quantity, it.lineTotal)
			if err != nil {
				return fmt.Errorf("failed to seed order item %s/%s: %w", o.id, it.productID, err)
			}
		}
	}

	return nil
}
