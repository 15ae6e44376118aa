// Copyright (c) 2025 Ben Eddy.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package testutil

import (
	"bytes"
	"database/sql"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	_ "modernc.org/sqlite"

	"github.com/ben-eddy/crowdharvest-atx-basket-sub000/auth"
	"github.com/ben-eddy/crowdharvest-atx-basket-sub000/catalog"
	"github.com/ben-eddy/crowdharvest-atx-basket-sub000/cliparse"
	"github.com/ben-eddy/crowdharvest-atx-basket-sub000/db"
)

// SetupTestDB creates a fresh in-memory sqlite database with the full
// schema. Each test gets an isolated database; no external server needed.
func SetupTestDB(t *testing.T) *sql.DB {
	t.Helper()

	conn, err := sql.Open("sqlite", ":memory:")
	if err != nil {
		t.Fatalf("Failed to open test database: %v", err)
	}
	// A single connection keeps every statement on the same in-memory DB
	conn.SetMaxOpenConns(1)
	t.Cleanup(func() { conn.Close() })

	if err := db.CreateSchema(conn); err != nil {
		t.Fatalf("Failed to create schema: %v", err)
	}

	return conn
}

// SeedBackOffice loads the demo orders and inventory into a test database.
func SeedBackOffice(t *testing.T, conn *sql.DB, cat *catalog.Catalog) {
	t.Helper()

	if err := db.SeedDemoData(conn, cat); err != nil {
		t.Fatalf("Failed to seed demo data: %v", err)
	}
}

// GetTestConfig returns a standard test configuration
func GetTestConfig() cliparse.Config {
	return cliparse.Config{
		Port:           4117,
		DatabaseURL:    ":memory:",
		DatabaseType:   "sqlite",
		FarmerKeySalt:  "test-farmer-salt",
		ReferralPrefix: "ATX",
		DeliveryFee:    5.99,
	}
}

// LoadTestCatalog parses the embedded default catalog
func LoadTestCatalog(t *testing.T) *catalog.Catalog {
	t.Helper()

	cat, err := catalog.Default()
	if err != nil {
		t.Fatalf("Failed to load default catalog: %v", err)
	}
	return cat
}

// CreateTestSession inserts a shopper session and returns its token
func CreateTestSession(t *testing.T, conn *sql.DB) string {
	t.Helper()

	token, err := auth.GenerateSessionToken()
	if err != nil {
		t.Fatalf("Failed to generate session token: %v", err)
	}
	if _, err := conn.Exec(`INSERT INTO session (token) VALUES ($1)`, token); err != nil {
		t.Fatalf("Failed to create test session: %v", err)
	}
	return token
}

// FarmerKey derives the back-office key matching GetTestConfig
func FarmerKey() string {
	return auth.GenerateFarmerKey(GetTestConfig().FarmerKeySalt)
}

// MakeRequest creates an HTTP test request
func MakeRequest(method, path string, body interface{}, headers map[string]string) *http.Request {
	var req *http.Request
	if body != nil {
		jsonBody, _ := json.Marshal(body)
		req = httptest.NewRequest(method, path, bytes.NewReader(jsonBody))
		req.Header.Set("Content-Type", "application/json")
	} else {
		req = httptest.NewRequest(method, path, nil)
	}

	for k, v := range headers {
		req.Header.Set(k, v)
	}

	return req
}

// AssertStatus checks that the response has the expected status code
func AssertStatus(t *testing.T, w *httptest.ResponseRecorder, expected int) {
	t.Helper()
	if w.Code != expected {
		t.Errorf("Expected status %d, got %d. Body: %s", expected, w.Code, w.Body.String())
	}
}

// AssertJSON decodes the response body into the provided struct
func AssertJSON(t *testing.T, w *httptest.ResponseRecorder, v interface{}) {
	t.Helper()
	if err := json.NewDecoder(w.Body).Decode(v); err != nil {
		t.Fatalf("Failed to decode JSON response: %v", err)
	}
}
