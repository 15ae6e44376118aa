// Copyright (c) 2025 Ben Eddy.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

// Package referral owns the referral program's durable state: the
// session's share code, its reward counters, and the incoming-referral
// marker captured from ?ref= at session start.
package referral

import (
	"database/sql"
	"errors"
	"fmt"
	"strconv"

	"github.com/google/uuid"

	"github.com/ben-eddy/crowdharvest-atx-basket-sub000/auth"
	"github.com/ben-eddy/crowdharvest-atx-basket-sub000/kvstore"
	"github.com/ben-eddy/crowdharvest-atx-basket-sub000/models"
)

// Storage keys, string-valued: earnings as a decimal string, referrals as
// an integer string.
const (
	KeyReferralCode         = "referralCode"
	KeyReferralEarnings     = "referralEarnings"
	KeyTotalReferrals       = "totalReferrals"
	KeyIncomingReferralCode = "incomingReferralCode"
)

const codeRandomLen = 8

var (
	ErrNegativeAmount    = errors.New("earnings amount must be non-negative")
	ErrMissingReferredID = errors.New("referred id required")
)

// Store is an explicit, injectable container; no ambient singleton.
type Store struct {
	db     *sql.DB
	kv     *kvstore.Store
	prefix string
}

func New(db *sql.DB, prefix string) *Store {
	return &Store{db: db, kv: kvstore.New(db), prefix: prefix}
}

// GenerateCode returns the session's referral code, creating it on first
// call: prefix + 8 random base-36 uppercase characters. Idempotent by
// contract - repeat calls return the stored code, and two racing calls
// agree on one winner.
func (s *Store) GenerateCode(token string) (string, error) {
	if code, ok, err := s.kv.Get(token, KeyReferralCode); err != nil {
		return "", err
	} else if ok {
		return code, nil
	}

	random, err := auth.RandomBase36(codeRandomLen)
	if err != nil {
		return "", err
	}
	return s.kv.SetIfAbsent(token, KeyReferralCode, s.prefix+random)
}

// State loads the session's referral state, defaulting to no code and zero
// counters for keys that were never written.
func (s *Store) State(token string) (models.ReferralState, error) {
	var state models.ReferralState

	if code, ok, err := s.kv.Get(token, KeyReferralCode); err != nil {
		return state, err
	} else if ok {
		state.ReferralCode = &code
	}

	if raw, ok, err := s.kv.Get(token, KeyReferralEarnings); err != nil {
		return state, err
	} else if ok {
		earnings, err := strconv.ParseFloat(raw, 64)
		if err != nil {
			return state, fmt.Errorf("corrupt %s value %q: %w", KeyReferralEarnings, raw, err)
		}
		state.ReferralEarnings = earnings
	}

	if raw, ok, err := s.kv.Get(token, KeyTotalReferrals); err != nil {
		return state, err
	} else if ok {
		total, err := strconv.Atoi(raw)
		if err != nil {
			return state, fmt.Errorf("corrupt %s value %q: %w", KeyTotalReferrals, raw, err)
		}
		state.TotalReferrals = total
	}

	return state, nil
}

// Track counts a referral at most once per referred customer. The seen-set
// lives in the referral_event table; a repeated id leaves the counter
// untouched and reports counted=false.
func (s *Store) Track(token, referredID string) (total int, counted bool, err error) {
	if referredID == "" {
		return 0, false, ErrMissingReferredID
	}

	res, err := s.db.Exec(`
		INSERT INTO referral_event (id, session_token, referred_id)
		VALUES ($1, $2, $3)
		ON CONFLICT (session_token, referred_id) DO NOTHING
	`, uuid.NewString(), token, referredID)
	if err != nil {
		return 0, false, fmt.Errorf("failed to record referral event: %w", err)
	}

	inserted, err := res.RowsAffected()
	if err != nil {
		return 0, false, fmt.Errorf("failed to read referral insert result: %w", err)
	}
	if inserted == 0 {
		state, err := s.State(token)
		if err != nil {
			return 0, false, err
		}
		return state.TotalReferrals, false, nil
	}

	total, err = s.kv.AddInt(token, KeyTotalReferrals, 1)
	if err != nil {
		return 0, false, err
	}
	return total, true, nil
}

// AddEarnings atomically adds a non-negative amount to the session's
// referral earnings and returns the new balance.
func (s *Store) AddEarnings(token string, amount float64) (float64, error) {
	if amount < 0 {
		return 0, ErrNegativeAmount
	}
	return s.kv.AddFloat(token, KeyReferralEarnings, amount)
}

// CaptureIncoming persists the ?ref= attribution marker. Capture only -
// no redemption logic reads it back yet.
func (s *Store) CaptureIncoming(token, code string) error {
	if code == "" {
		return nil
	}
	return s.kv.Set(token, KeyIncomingReferralCode, code)
}

// IncomingCode reads the captured attribution marker, if any.
func (s *Store) IncomingCode(token string) (string, bool, error) {
	return s.kv.Get(token, KeyIncomingReferralCode)
}
