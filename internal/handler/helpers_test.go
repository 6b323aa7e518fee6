package handler_test

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgtype"
)

func doRequest(t *testing.T, router http.Handler, method, path string, body interface{}) *httptest.ResponseRecorder {
	t.Helper()
	var req *http.Request
	if body != nil {
		b, err := json.Marshal(body)
		if err != nil {
			t.Fatalf("marshal request: %v", err)
		}
		req = httptest.NewRequest(method, path, bytes.NewReader(b))
		req.Header.Set("Content-Type", "application/json")
	} else {
		req = httptest.NewRequest(method, path, nil)
	}
	rr := httptest.NewRecorder()
	router.ServeHTTP(rr, req)
	return rr
}

func decodeObject(t *testing.T, rr *httptest.ResponseRecorder) map[string]interface{} {
	t.Helper()
	var resp map[string]interface{}
	if err := json.NewDecoder(rr.Body).Decode(&resp); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	return resp
}

func decodeList(t *testing.T, rr *httptest.ResponseRecorder) []map[string]interface{} {
	t.Helper()
	var resp []map[string]interface{}
	if err := json.NewDecoder(rr.Body).Decode(&resp); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	return resp
}

var (
	errUnique = &pgconn.PgError{Code: "23505"}
	errFK     = &pgconn.PgError{Code: "23503"}
)

type change struct {
	OutletID uuid.UUID
	Entity   string
	Action   string
	EntityID uuid.UUID
}

// recordingNotifier captures every MenuChanged call.
type recordingNotifier struct {
	mu      sync.Mutex
	changes []change
}

func (n *recordingNotifier) MenuChanged(ctx context.Context, outletID uuid.UUID, entity, action string, entityID uuid.UUID) {
	if ctx.Err() != nil {
		panic("notifier received a cancelled context")
	}
	n.mu.Lock()
	defer n.mu.Unlock()
	n.changes = append(n.changes, change{outletID, entity, action, entityID})
}

func (n *recordingNotifier) all() []change {
	n.mu.Lock()
	defer n.mu.Unlock()
	return append([]change(nil), n.changes...)
}

func (n *recordingNotifier) expectOne(t *testing.T, entity, action string) change {
	t.Helper()
	got := n.all()
	if len(got) != 1 {
		t.Fatalf("expected 1 notification, got %d: %+v", len(got), got)
	}
	if got[0].Entity != entity || got[0].Action != action {
		t.Errorf("notification: got %s/%s, want %s/%s", got[0].Entity, got[0].Action, entity, action)
	}
	return got[0]
}

func (n *recordingNotifier) expectNone(t *testing.T) {
	t.Helper()
	if got := n.all(); len(got) != 0 {
		t.Errorf("expected no notification, got %+v", got)
	}
}

func testNumeric(s string) pgtype.Numeric {
	var n pgtype.Numeric
	if err := n.Scan(s); err != nil {
		panic(err)
	}
	return n
}

func int32Ptr(v int32) *int32 {
	return &v
}
