// Copyright (c) 2025 Ben Eddy.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package handlers contains HTTP request handlers for the CrowdHarvest API.

# Handler Types

Each handler is a struct with its dependencies injected:

  - SessionHandler: Shopper session issuance and referral capture
  - CatalogHandler: Products, share breakdowns, categories, progress
  - CartHandler: Preview/commit cart flow and checkout
  - ReferralHandler: Referral codes, tracking, and earnings
  - DashboardHandler: Subscription overview, support, suggestions
  - FarmerHandler: Back-office inventory and delivery orders

Handlers are created via constructor functions:

	cartHandler := handlers.NewCartHandler(db, cfg, cat, carts)

# Shopper Sessions

POST /sessions issues a session token; an incoming ?ref= referral marker is
captured at session creation. Session-scoped operations require the
X-Session-Token header and reject unknown tokens with 401.

# Cart Flow

The cart separates slider state from committed lines:

	PUT    /cart/preview/{productID} → SetPreview (clamped, not committed)
	POST   /cart/items/{productID}   → CommitItem (copies preview into cart)
	DELETE /cart/items/{productID}   → RemoveItem
	GET    /cart                     → GetCart (priced view)
	POST   /cart/checkout            → Checkout (summary only, not persisted)

# Order Lifecycle

Back-office orders progress forward only: pending → prepared → ready →
delivered. AdvanceOrder moves one step at a time and returns 409 for
delivered orders or concurrent status changes.

Farmer operations require the X-Farmer-Key header, validated against the
configured salt via HMAC.
*/
package handlers
