package models

import "time"

// Order status constants
const (
	StatusPending   = "pending"
	StatusPrepared  = "prepared"
	StatusReady     = "ready"
	StatusDelivered = "delivered"
)

// OrderStatusFlow is the forward-only order lifecycle. Operators advance an
// order one step at a time; there is no regression transition.
var OrderStatusFlow = []string{StatusPending, StatusPrepared, StatusReady, StatusDelivered}

// Request types

type SetPreviewRequest struct {
	Quantity float64 `json:"quantity"`
}

type CheckoutRequest struct {
	PickupLocationID string `json:"pickup_location_id"`
	BillingName      string `json:"billing_name"`
	BillingEmail     string `json:"billing_email"`
}

type TrackReferralRequest struct {
	ReferredID string `json:"referred_id"`
}

type AddEarningsRequest struct {
	Amount float64 `json:"amount"`
}

type UpdateInventoryRequest struct {
	Stock *float64 `json:"stock,omitempty"`
	Price *float64 `json:"price,omitempty"`
}

type SupportRequest struct {
	Subject string `json:"subject"`
	Message string `json:"message"`
}

type SuggestionRequest struct {
	Message string `json:"message"`
}

// Response types

type CreateSessionResponse struct {
	SessionToken string `json:"session_token"`
}

type GenerateCodeResponse struct {
	ReferralCode string `json:"referral_code"`
}

type TrackReferralResponse struct {
	TotalReferrals int  `json:"total_referrals"`
	Counted        bool `json:"counted"`
}

type AddEarningsResponse struct {
	ReferralEarnings float64 `json:"referral_earnings"`
}

type CheckoutResponse struct {
	Cart           CartView       `json:"cart"`
	PickupLocation PickupLocation `json:"pickup_location"`
	BillingName    string         `json:"billing_name"`
	BillingEmail   string         `json:"billing_email"`
}

type AdvanceOrderResponse struct {
	OrderID string `json:"order_id"`
	Status  string `json:"status"`
}

type AckResponse struct {
	Message string `json:"message"`
}

type DashboardResponse struct {
	Cart           CartView         `json:"cart"`
	PickupSchedule []PickupLocation `json:"pickup_schedule"`
	Referral       ReferralState    `json:"referral"`
}

// Domain types

// ShareOption is one selectable tier of a share-based product. Options are
// index-addressed: Value always equals the option's position in the slice,
// and PriceMultiplier is strictly increasing across the slice.
type ShareOption struct {
	Value           int     `json:"value" yaml:"value"`
	Label           string  `json:"label" yaml:"label"`
	PriceMultiplier float64 `json:"price_multiplier" yaml:"price_multiplier"`
}

// Product is either flat-unit (no ShareOptions; line total = quantity × Price)
// or share-based (ShareOptions present; the cart quantity is a tier index and
// Price is the per-pound base).
type Product struct {
	ID           string        `json:"id" yaml:"id"`
	Name         string        `json:"name" yaml:"name"`
	Category     string        `json:"category" yaml:"category"`
	Price        float64       `json:"price" yaml:"price"`
	Unit         string        `json:"unit" yaml:"unit"`
	MaxMonthly   float64       `json:"max_monthly" yaml:"max_monthly"`
	QuantityStep float64       `json:"quantity_step,omitempty" yaml:"quantity_step,omitempty"`
	ShareOptions []ShareOption `json:"share_options,omitempty" yaml:"share_options,omitempty"`
}

// IsShare reports whether the product uses share-tier pricing.
func (p Product) IsShare() bool { return len(p.ShareOptions) > 0 }

// Step returns the slider step for the product (1 unless the catalog sets a
// finer step, e.g. 0.5 for dairy).
func (p Product) Step() float64 {
	if p.QuantityStep > 0 {
		return p.QuantityStep
	}
	return 1
}

type Category struct {
	ID       string `json:"id" yaml:"id"`
	Name     string `json:"name" yaml:"name"`
	Icon     string `json:"icon" yaml:"icon"`
	Color    string `json:"color" yaml:"color"`
	Progress int    `json:"progress" yaml:"progress"`
}

// CategoryProgress is the community commitment aggregate for a category.
// Amounts are static seed data, not derived from cart state.
type CategoryProgress struct {
	Category        string  `json:"category" yaml:"category"`
	CurrentAmount   float64 `json:"current_amount" yaml:"current_amount"`
	TargetAmount    float64 `json:"target_amount" yaml:"target_amount"`
	Unit            string  `json:"unit" yaml:"unit"`
	PriceDropAmount float64 `json:"price_drop_amount" yaml:"price_drop_amount"`
}

// ProgressView is the derived, display-ready projection of a CategoryProgress.
type ProgressView struct {
	CategoryProgress
	Percentage   float64 `json:"percentage"`
	Remaining    float64 `json:"remaining"`
	RemainingStr string  `json:"remaining_str"`
	Subscribers  int     `json:"subscribers"`
}

type Farmer struct {
	ID             string   `json:"id" yaml:"id"`
	Name           string   `json:"name" yaml:"name"`
	Location       string   `json:"location" yaml:"location"`
	Description    string   `json:"description" yaml:"description"`
	Specialties    []string `json:"specialties" yaml:"specialties"`
	Certifications []string `json:"certifications" yaml:"certifications"`
	Categories     []string `json:"categories" yaml:"categories"`
}

type PickupLocation struct {
	ID       string `json:"id" yaml:"id"`
	Name     string `json:"name" yaml:"name"`
	Address  string `json:"address" yaml:"address"`
	Schedule string `json:"schedule" yaml:"schedule"`
}

// CartEntry is a committed cart line. For share products Quantity is the
// integer tier index into ShareOptions, not a literal amount.
type CartEntry struct {
	ProductID string  `json:"product_id"`
	Quantity  float64 `json:"quantity"`
}

type CartLine struct {
	Product   Product `json:"product"`
	Quantity  float64 `json:"quantity"`
	LineTotal float64 `json:"line_total"`
}

type CartView struct {
	Lines       []CartLine `json:"lines"`
	Subtotal    float64    `json:"subtotal"`
	DeliveryFee float64    `json:"delivery_fee"`
	Total       float64    `json:"total"`
}

// BreakdownCut is one estimated cut in a share breakdown. Amount is a
// display string ("5.2 lbs", "12.8 oz", "3-4 lbs").
type BreakdownCut struct {
	Cut    string `json:"cut"`
	Amount string `json:"amount"`
}

type ShareBreakdown struct {
	Tier         int            `json:"tier"`
	Label        string         `json:"label"`
	MonthlyPrice float64        `json:"monthly_price"`
	Cuts         []BreakdownCut `json:"cuts"`
}

type ReferralState struct {
	ReferralCode     *string `json:"referral_code"`
	ReferralEarnings float64 `json:"referral_earnings"`
	TotalReferrals   int     `json:"total_referrals"`
}

type Order struct {
	ID       string      `json:"id"`
	Customer string      `json:"customer"`
	Location string      `json:"location"`
	Status   string      `json:"status"`
	Total    float64     `json:"total"`
	PlacedAt time.Time   `json:"placed_at"`
	Items    []OrderItem `json:"items,omitempty"`
}

type OrderItem struct {
	OrderID   string  `json:"order_id"`
	ProductID string  `json:"product_id"`
	Name      string  `json:"name"`
	Quantity  float64 `json:"quantity"`
	LineTotal float64 `json:"line_total"`
}

type OrdersByLocation struct {
	Location string  `json:"location"`
	Orders   []Order `json:"orders"`
}

type InventoryItem struct {
	ProductID string    `json:"product_id"`
	Name      string    `json:"name"`
	Unit      string    `json:"unit"`
	Stock     float64   `json:"stock"`
	Price     float64   `json:"price"`
	UpdatedAt time.Time `json:"updated_at"`
}

// Error response

type ErrorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message,omitempty"`
}
