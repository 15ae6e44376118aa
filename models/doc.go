// Copyright (c) 2025 Ben Eddy.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package models defines request, response, and domain types for the API.

# Request Types

Types for parsing incoming JSON:

  - SetPreviewRequest: quantity
  - CheckoutRequest: pickup_location_id, billing_name, billing_email
  - TrackReferralRequest: referred_id
  - AddEarningsRequest: amount
  - UpdateInventoryRequest: stock, price (both optional)
  - SupportRequest: subject, message
  - SuggestionRequest: message

# Response Types

Types for JSON responses:

  - CreateSessionResponse: session_token
  - GenerateCodeResponse: referral_code
  - TrackReferralResponse: total_referrals, counted
  - AddEarningsResponse: referral_earnings
  - CheckoutResponse: cart, pickup_location, billing echo
  - AdvanceOrderResponse: order_id, status
  - DashboardResponse: cart, pickup_schedule, referral
  - AckResponse: message
  - ErrorResponse: error, message

# Domain Types

Internal data structures:

  - Product: flat-unit or share-based catalog item
  - ShareOption: one tier of a share product (label + price multiplier)
  - Category, CategoryProgress, ProgressView: community commitment data
  - Farmer, PickupLocation: catalog metadata
  - CartEntry, CartLine, CartView: cart state and priced projection
  - BreakdownCut, ShareBreakdown: estimated monthly cuts for a share tier
  - ReferralState: code, earnings, and referral count for a session
  - Order, OrderItem, OrdersByLocation: back-office delivery orders
  - InventoryItem: per-product stock and price

# Constants

Order status flow (forward-only):

	StatusPending   = "pending"
	StatusPrepared  = "prepared"
	StatusReady     = "ready"
	StatusDelivered = "delivered"
*/
package models
