//go:build integration

package handler_test

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"
	"github.com/testcontainers/testcontainers-go"
	tcpostgres "github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"
	"golang.org/x/crypto/bcrypt"

	"github.com/menuhq/pos-admin/internal/config"
	"github.com/menuhq/pos-admin/internal/database"
	"github.com/menuhq/pos-admin/internal/router"
	"github.com/menuhq/pos-admin/internal/ws"
)

// Monday 19 October 2026, 16:00 in Asia/Jakarta.
const happyHourAt = "2026-10-19T09:00:00Z"

// TestIntegrationFlow runs the migrations and the full router against a real
// PostgreSQL database: catalog setup, Happy Hour pricing, a quote and
// deletes that cascade to child rows.
func TestIntegrationFlow(t *testing.T) {
	ctx := context.Background()

	pgContainer, connStr, cleanup := setupPostgresContainer(t, ctx)
	defer cleanup()

	version, err := database.Migrate(connStr)
	if err != nil {
		t.Fatalf("migrate: %v", err)
	}
	if version == 0 {
		t.Fatal("expected a non-zero schema version")
	}

	pool, err := pgxpool.New(ctx, connStr)
	if err != nil {
		t.Fatalf("create pool: %v", err)
	}
	defer pool.Close()

	cfg := &config.Config{
		Port:              "8081",
		DatabaseURL:       connStr,
		JWTSecret:         "integration-test-secret",
		AuthRatePerMinute: 60,
	}
	hubCtx, stopHub := context.WithCancel(ctx)
	defer stopHub()
	hub := ws.NewHub()
	go hub.Run(hubCtx)

	server := httptest.NewServer(router.New(cfg, router.Deps{Pool: pool, Hub: hub}))
	defer server.Close()

	outletID := createOutlet(t, ctx, pool)
	createOwnerUser(t, ctx, pool, outletID)
	token := login(t, server, "owner@test.com", "password123")
	base := fmt.Sprintf("/outlets/%s", outletID)

	// --- Catalog ---
	tax := httpPostJSON(t, server, base+"/taxes", map[string]interface{}{"name": "PPN", "rate": "10"}, token)
	category := httpPostJSON(t, server, base+"/categories", map[string]interface{}{
		"code": "DRINKS", "name": "Drinks", "tax_id": tax["id"],
	}, token)
	item := httpPostJSON(t, server, base+"/items", map[string]interface{}{
		"category_id": category["id"], "code": "LATTE", "name": "Latte", "base_price": "250",
	}, token)
	itemID := item["id"].(string)

	// --- Base price before any event ---
	latte := menuEntry(t, server, base, itemID, token)
	if latte["price"] != "250.00" || latte["orderable"] != true {
		t.Fatalf("menu before event: got %v", latte)
	}

	// --- Happy Hour ---
	event := httpPostJSON(t, server, base+"/events", map[string]interface{}{
		"code": "HAPPY_HOUR", "name": "Happy Hour", "amount_discount": "50",
		"windows": []map[string]interface{}{{"day": "MONDAY", "start": "15:00", "end": "18:00"}},
	}, token)
	eventID := event["id"].(string)

	latte = menuEntry(t, server, base, itemID, token)
	if latte["base_price"] != "250.00" || latte["price"] != "200.00" || latte["event_code"] != "HAPPY_HOUR" {
		t.Fatalf("menu during happy hour: got %v", latte)
	}

	// --- Quote: 2 x 200 + 10% tax ---
	quote := httpPostJSON(t, server, base+"/quotes", map[string]interface{}{
		"at":    happyHourAt,
		"lines": []map[string]interface{}{{"item_id": itemID, "quantity": 2}},
	}, token)
	assertDecimal(t, "quote subtotal", quote["subtotal"], "400")
	assertDecimal(t, "quote tax", quote["tax"], "40")
	assertDecimal(t, "quote total", quote["total"], "440")

	// --- Deleting the event removes its windows ---
	if n := countRows(t, ctx, pool, "time_event_windows", "event_id", eventID); n != 1 {
		t.Fatalf("windows before delete: got %d, want 1", n)
	}
	httpDelete(t, server, base+"/events/"+eventID, token, http.StatusNoContent)
	if n := countRows(t, ctx, pool, "time_event_windows", "event_id", eventID); n != 0 {
		t.Fatalf("windows after delete: got %d, want 0", n)
	}
	latte = menuEntry(t, server, base, itemID, token)
	if latte["price"] != "250.00" {
		t.Fatalf("menu after event delete: got %v", latte)
	}

	// --- Availabilities: in use is refused, unused cascades its rows ---
	breakfast := httpPostJSON(t, server, base+"/availabilities", map[string]interface{}{
		"name": "Breakfast",
		"rows": []map[string]interface{}{{"day": "ALL_DAYS", "start": "06:00", "end": "11:00"}},
	}, token)
	breakfastID := breakfast["id"].(string)
	httpPostJSON(t, server, base+"/categories", map[string]interface{}{
		"code": "BREAKFAST", "name": "Breakfast", "availability_id": breakfastID,
	}, token)
	httpDelete(t, server, base+"/availabilities/"+breakfastID, token, http.StatusConflict)

	brunch := httpPostJSON(t, server, base+"/availabilities", map[string]interface{}{
		"name": "Brunch",
		"rows": []map[string]interface{}{{"day": "SATURDAY"}, {"day": "SUNDAY"}},
	}, token)
	brunchID := brunch["id"].(string)
	if n := countRows(t, ctx, pool, "availability_rows", "availability_id", brunchID); n != 2 {
		t.Fatalf("availability rows before delete: got %d, want 2", n)
	}
	httpDelete(t, server, base+"/availabilities/"+brunchID, token, http.StatusNoContent)
	if n := countRows(t, ctx, pool, "availability_rows", "availability_id", brunchID); n != 0 {
		t.Fatalf("availability rows after delete: got %d, want 0", n)
	}

	// --- Soft-deleted item leaves the menu ---
	httpDelete(t, server, base+"/items/"+itemID, token, http.StatusNoContent)
	menu := httpGetJSON(t, server, base+"/menu?at="+happyHourAt, token)
	if items, _ := menu["items"].([]interface{}); len(items) != 0 {
		t.Fatalf("menu after item delete: got %d items, want 0", len(items))
	}

	t.Logf("Integration test passed: container=%s, outlet=%s", pgContainer.GetContainerID(), outletID)
}

// --- Setup helpers ---

func setupPostgresContainer(t *testing.T, ctx context.Context) (testcontainers.Container, string, func()) {
	t.Helper()

	pgContainer, err := tcpostgres.Run(ctx,
		"postgres:16-alpine",
		tcpostgres.WithDatabase("pos_test"),
		tcpostgres.WithUsername("pos"),
		tcpostgres.WithPassword("pos"),
		testcontainers.WithWaitStrategy(
			wait.ForLog("database system is ready to accept connections").
				WithOccurrence(2).
				WithStartupTimeout(60*time.Second)),
	)
	if err != nil {
		t.Fatalf("start postgres container: %v", err)
	}

	connStr, err := pgContainer.ConnectionString(ctx, "sslmode=disable")
	if err != nil {
		t.Fatalf("get connection string: %v", err)
	}

	cleanup := func() {
		if err := pgContainer.Terminate(ctx); err != nil {
			t.Logf("terminate container: %v", err)
		}
	}
	return pgContainer, connStr, cleanup
}

func createOutlet(t *testing.T, ctx context.Context, pool *pgxpool.Pool) uuid.UUID {
	t.Helper()
	var id uuid.UUID
	err := pool.QueryRow(ctx,
		`INSERT INTO outlets (name, timezone) VALUES ($1, $2) RETURNING id`,
		"Kopi Sudut", "Asia/Jakarta",
	).Scan(&id)
	if err != nil {
		t.Fatalf("create outlet: %v", err)
	}
	return id
}

func createOwnerUser(t *testing.T, ctx context.Context, pool *pgxpool.Pool, outletID uuid.UUID) uuid.UUID {
	t.Helper()
	hashedPassword, err := bcrypt.GenerateFromPassword([]byte("password123"), bcrypt.MinCost)
	if err != nil {
		t.Fatalf("hash password: %v", err)
	}

	var id uuid.UUID
	err = pool.QueryRow(ctx,
		`INSERT INTO users (outlet_id, email, hashed_password, full_name, role)
		 VALUES ($1, $2, $3, $4, $5)
		 RETURNING id`,
		outletID, "owner@test.com", string(hashedPassword), "Test Owner", "OWNER",
	).Scan(&id)
	if err != nil {
		t.Fatalf("create owner user: %v", err)
	}
	return id
}

func countRows(t *testing.T, ctx context.Context, pool *pgxpool.Pool, table, column, id string) int {
	t.Helper()
	var n int
	query := fmt.Sprintf("SELECT count(*) FROM %s WHERE %s = $1", table, column)
	if err := pool.QueryRow(ctx, query, id).Scan(&n); err != nil {
		t.Fatalf("count %s: %v", table, err)
	}
	return n
}

// --- API call helpers ---

func login(t *testing.T, server *httptest.Server, email, password string) string {
	t.Helper()
	body := map[string]interface{}{
		"email":    email,
		"password": password,
	}
	resp := httpPostJSON(t, server, "/auth/login", body, "")
	token, ok := resp["access_token"].(string)
	if !ok || token == "" {
		t.Fatalf("login failed: no access_token in response: %+v", resp)
	}
	return token
}

func menuEntry(t *testing.T, server *httptest.Server, base, itemID, token string) map[string]interface{} {
	t.Helper()
	menu := httpGetJSON(t, server, base+"/menu?at="+happyHourAt, token)
	items, _ := menu["items"].([]interface{})
	for _, raw := range items {
		entry := raw.(map[string]interface{})
		if entry["item_id"] == itemID {
			return entry
		}
	}
	t.Fatalf("item %s not in menu: %v", itemID, menu)
	return nil
}

func assertDecimal(t *testing.T, name string, got interface{}, want string) {
	t.Helper()
	s, ok := got.(string)
	if !ok {
		t.Fatalf("%s: got %v (%T), want a decimal string", name, got, got)
	}
	if !decimal.RequireFromString(s).Equal(decimal.RequireFromString(want)) {
		t.Fatalf("%s: got %s, want %s", name, s, want)
	}
}

// --- HTTP helpers ---

func httpPostJSON(t *testing.T, server *httptest.Server, path string, body map[string]interface{}, token string) map[string]interface{} {
	t.Helper()
	b, err := json.Marshal(body)
	if err != nil {
		t.Fatalf("marshal body: %v", err)
	}

	req, err := http.NewRequest(http.MethodPost, server.URL+path, bytes.NewReader(b))
	if err != nil {
		t.Fatalf("create request: %v", err)
	}
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		t.Fatalf("do request: %v", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		var errResp map[string]interface{}
		json.NewDecoder(resp.Body).Decode(&errResp)
		t.Fatalf("POST %s: status %d, body: %v", path, resp.StatusCode, errResp)
	}

	var result map[string]interface{}
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	return result
}

func httpGetJSON(t *testing.T, server *httptest.Server, path string, token string) map[string]interface{} {
	t.Helper()
	req, err := http.NewRequest(http.MethodGet, server.URL+path, nil)
	if err != nil {
		t.Fatalf("create request: %v", err)
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		t.Fatalf("do request: %v", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		var errResp map[string]interface{}
		json.NewDecoder(resp.Body).Decode(&errResp)
		t.Fatalf("GET %s: status %d, body: %v", path, resp.StatusCode, errResp)
	}

	var result map[string]interface{}
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	return result
}

func httpDelete(t *testing.T, server *httptest.Server, path, token string, wantStatus int) {
	t.Helper()
	req, err := http.NewRequest(http.MethodDelete, server.URL+path, nil)
	if err != nil {
		t.Fatalf("create request: %v", err)
	}
	req.Header.Set("Authorization", "Bearer "+token)

	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		t.Fatalf("do request: %v", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != wantStatus {
		var errResp map[string]interface{}
		json.NewDecoder(resp.Body).Decode(&errResp)
		t.Fatalf("DELETE %s: status %d, want %d, body: %v", path, resp.StatusCode, wantStatus, errResp)
	}
}
