// Copyright (c) 2025 Ben Eddy.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package router defines HTTP routes for the CrowdHarvest API.

# Route Registration

NewRouter returns the fully configured handler:

	mux := router.NewRouter(db, cfg, cat)

Routes are registered on an http.ServeMux with Go 1.22+ method patterns, so
a wrong method on a registered route gets ServeMux's 405 with an Allow
header. The mux is wrapped so its plain-text no-match 404 is rewritten into
the API's JSON error envelope; 404s written by handlers are already JSON and
pass through untouched.

# Endpoints

Health:

	GET /health

Sessions:

	POST /sessions - Issue a shopper session token (captures ?ref=)

Storefront catalog (public):

	GET /products                  - List products (?category= filter)
	GET /products/{id}             - Product detail
	GET /products/{id}/breakdown   - Share cut breakdown (?tier=N)
	GET /categories                - Categories with progress and farmers
	GET /categories/{id}/progress  - Community commitment progress

Cart (requires X-Session-Token):

	PUT    /cart/preview/{productID} - Record slider state
	POST   /cart/items/{productID}   - Commit preview into the cart
	DELETE /cart/items/{productID}   - Remove a committed line
	GET    /cart                     - Priced cart view
	POST   /cart/checkout            - Order summary

Referral program (requires X-Session-Token):

	POST /referral/code     - Generate (or return) the session's code
	GET  /referral          - Referral state
	POST /referral/track    - Count a referred customer
	POST /referral/earnings - Credit earnings

Customer dashboard (requires X-Session-Token):

	GET  /dashboard   - Cart, pickup schedule, and referral state
	POST /support     - Log a support request
	POST /suggestions - Log a product suggestion

Farmer back-office (requires X-Farmer-Key):

	GET  /farmer/inventory               - List inventory
	PUT  /farmer/inventory/{productID}   - Update stock/price
	GET  /farmer/orders                  - List orders (?location= filter)
	GET  /farmer/orders/by-location      - Orders grouped per dropoff
	POST /farmer/orders/{id}/advance     - Advance order status
	GET  /farmer/locations               - Pickup locations

# Handler Initialization

The router creates handler instances with dependency injection. The cart and
referral stores are created once and shared across handlers:

	carts := cart.NewStore(cat, cfg.DeliveryFee)
	referrals := referral.New(db, cfg.ReferralPrefix)
*/
package router
