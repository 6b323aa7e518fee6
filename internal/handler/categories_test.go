package handler_test

import (
	"context"
	"net/http"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgtype"

	"github.com/menuhq/pos-admin/internal/database"
	"github.com/menuhq/pos-admin/internal/enum"
	"github.com/menuhq/pos-admin/internal/handler"
)

// --- Mock store ---

type mockCategoryStore struct {
	categories map[uuid.UUID]database.Category      // keyed by category ID
	groups     map[uuid.UUID]database.ModifierGroup // keyed by group ID
	links      map[uuid.UUID]map[uuid.UUID]bool     // category ID -> group IDs
	createErr  error
}

func newMockCategoryStore() *mockCategoryStore {
	return &mockCategoryStore{
		categories: make(map[uuid.UUID]database.Category),
		groups:     make(map[uuid.UUID]database.ModifierGroup),
		links:      make(map[uuid.UUID]map[uuid.UUID]bool),
	}
}

func (m *mockCategoryStore) ListCategoriesByOutlet(_ context.Context, outletID uuid.UUID) ([]database.Category, error) {
	var result []database.Category
	for _, c := range m.categories {
		if c.OutletID == outletID && c.IsActive {
			result = append(result, c)
		}
	}
	return result, nil
}

func (m *mockCategoryStore) GetCategory(_ context.Context, arg database.GetCategoryParams) (database.Category, error) {
	c, ok := m.categories[arg.ID]
	if !ok || c.OutletID != arg.OutletID || !c.IsActive {
		return database.Category{}, pgx.ErrNoRows
	}
	return c, nil
}

func (m *mockCategoryStore) CreateCategory(_ context.Context, arg database.CreateCategoryParams) (database.Category, error) {
	if m.createErr != nil {
		return database.Category{}, m.createErr
	}
	for _, c := range m.categories {
		if c.OutletID == arg.OutletID && c.Code == arg.Code {
			return database.Category{}, errUnique
		}
	}
	c := database.Category{
		ID:             uuid.New(),
		OutletID:       arg.OutletID,
		MenuMasterID:   arg.MenuMasterID,
		Code:           arg.Code,
		Name:           arg.Name,
		Description:    arg.Description,
		Color:          arg.Color,
		SortOrder:      arg.SortOrder,
		TaxID:          arg.TaxID,
		AvailabilityID: arg.AvailabilityID,
		IsActive:       true,
		CreatedAt:      time.Now(),
	}
	m.categories[c.ID] = c
	return c, nil
}

func (m *mockCategoryStore) UpdateCategory(_ context.Context, arg database.UpdateCategoryParams) (database.Category, error) {
	c, ok := m.categories[arg.ID]
	if !ok || c.OutletID != arg.OutletID || !c.IsActive {
		return database.Category{}, pgx.ErrNoRows
	}
	c.Code = arg.Code
	c.Name = arg.Name
	c.Description = arg.Description
	c.SortOrder = arg.SortOrder
	c.TaxID = arg.TaxID
	c.AvailabilityID = arg.AvailabilityID
	m.categories[c.ID] = c
	return c, nil
}

func (m *mockCategoryStore) SoftDeleteCategory(_ context.Context, arg database.SoftDeleteCategoryParams) (uuid.UUID, error) {
	c, ok := m.categories[arg.ID]
	if !ok || c.OutletID != arg.OutletID || !c.IsActive {
		return uuid.Nil, pgx.ErrNoRows
	}
	c.IsActive = false
	m.categories[c.ID] = c
	return c.ID, nil
}

func (m *mockCategoryStore) ListCategoryModifierGroupIDs(_ context.Context, categoryID uuid.UUID) ([]uuid.UUID, error) {
	var ids []uuid.UUID
	for id := range m.links[categoryID] {
		ids = append(ids, id)
	}
	return ids, nil
}

func (m *mockCategoryStore) GetModifierGroup(_ context.Context, arg database.GetModifierGroupParams) (database.ModifierGroup, error) {
	g, ok := m.groups[arg.ID]
	if !ok || g.OutletID != arg.OutletID || !g.IsActive {
		return database.ModifierGroup{}, pgx.ErrNoRows
	}
	return g, nil
}

func (m *mockCategoryStore) AttachCategoryModifierGroup(_ context.Context, arg database.AttachCategoryModifierGroupParams) error {
	if m.links[arg.CategoryID] == nil {
		m.links[arg.CategoryID] = make(map[uuid.UUID]bool)
	}
	m.links[arg.CategoryID][arg.ModifierGroupID] = true
	return nil
}

func (m *mockCategoryStore) DetachCategoryModifierGroup(_ context.Context, arg database.DetachCategoryModifierGroupParams) (int64, error) {
	if !m.links[arg.CategoryID][arg.ModifierGroupID] {
		return 0, nil
	}
	delete(m.links[arg.CategoryID], arg.ModifierGroupID)
	return 1, nil
}

// --- Helpers ---

func setupCategoryRouter(store *mockCategoryStore) (*chi.Mux, *recordingNotifier) {
	n := &recordingNotifier{}
	h := handler.NewCategoryHandler(store, n)
	r := chi.NewRouter()
	r.Route("/outlets/{oid}/categories", h.RegisterRoutes)
	return r, n
}

func (m *mockCategoryStore) seed(outletID uuid.UUID, code, name string) database.Category {
	c := database.Category{
		ID: uuid.New(), OutletID: outletID, Code: code, Name: name,
		SortOrder: 1, IsActive: true, CreatedAt: time.Now(),
	}
	m.categories[c.ID] = c
	return c
}

// --- List tests ---

func TestCategoryList_ReturnsOutletCategories(t *testing.T) {
	store := newMockCategoryStore()
	outletID := uuid.New()
	store.seed(outletID, "DRINKS", "Drinks")
	store.seed(uuid.New(), "DESSERT", "Desserts")
	deleted := store.seed(outletID, "OLD", "Old")
	deleted.IsActive = false
	store.categories[deleted.ID] = deleted

	router, _ := setupCategoryRouter(store)
	rr := doRequest(t, router, "GET", "/outlets/"+outletID.String()+"/categories", nil)

	if rr.Code != http.StatusOK {
		t.Fatalf("status: got %d, want %d", rr.Code, http.StatusOK)
	}
	resp := decodeList(t, rr)
	if len(resp) != 1 {
		t.Fatalf("expected 1 category, got %d", len(resp))
	}
	if resp[0]["code"] != "DRINKS" {
		t.Errorf("expected DRINKS, got %v", resp[0]["code"])
	}
}

func TestCategoryList_InvalidOutletID(t *testing.T) {
	router, _ := setupCategoryRouter(newMockCategoryStore())

	rr := doRequest(t, router, "GET", "/outlets/not-a-uuid/categories", nil)
	if rr.Code != http.StatusBadRequest {
		t.Errorf("status: got %d, want %d", rr.Code, http.StatusBadRequest)
	}
}

// --- Get tests ---

func TestCategoryGet_IncludesModifierGroups(t *testing.T) {
	store := newMockCategoryStore()
	outletID := uuid.New()
	c := store.seed(outletID, "DRINKS", "Drinks")
	groupID := uuid.New()
	store.links[c.ID] = map[uuid.UUID]bool{groupID: true}

	router, _ := setupCategoryRouter(store)
	rr := doRequest(t, router, "GET", "/outlets/"+outletID.String()+"/categories/"+c.ID.String(), nil)

	if rr.Code != http.StatusOK {
		t.Fatalf("status: got %d, want %d; body: %s", rr.Code, http.StatusOK, rr.Body.String())
	}
	resp := decodeObject(t, rr)
	ids, ok := resp["modifier_group_ids"].([]interface{})
	if !ok || len(ids) != 1 || ids[0] != groupID.String() {
		t.Errorf("modifier_group_ids: got %v", resp["modifier_group_ids"])
	}
}

func TestCategoryGet_WrongOutlet(t *testing.T) {
	store := newMockCategoryStore()
	c := store.seed(uuid.New(), "DRINKS", "Drinks")

	router, _ := setupCategoryRouter(store)
	rr := doRequest(t, router, "GET", "/outlets/"+uuid.New().String()+"/categories/"+c.ID.String(), nil)
	if rr.Code != http.StatusNotFound {
		t.Errorf("status: got %d, want %d", rr.Code, http.StatusNotFound)
	}
}

// --- Create tests ---

func TestCategoryCreate_Valid(t *testing.T) {
	store := newMockCategoryStore()
	router, notifier := setupCategoryRouter(store)
	outletID := uuid.New()
	taxID := uuid.New()

	rr := doRequest(t, router, "POST", "/outlets/"+outletID.String()+"/categories", map[string]interface{}{
		"code":        "BEV",
		"name":        "Beverages",
		"description": "All drinks",
		"sort_order":  2,
		"tax_id":      taxID.String(),
	})

	if rr.Code != http.StatusCreated {
		t.Fatalf("status: got %d, want %d; body: %s", rr.Code, http.StatusCreated, rr.Body.String())
	}
	resp := decodeObject(t, rr)
	if resp["code"] != "BEV" {
		t.Errorf("code: got %v, want BEV", resp["code"])
	}
	if resp["description"] != "All drinks" {
		t.Errorf("description: got %v", resp["description"])
	}
	// JSON numbers decode as float64
	if resp["sort_order"] != float64(2) {
		t.Errorf("sort_order: got %v, want 2", resp["sort_order"])
	}
	if resp["tax_id"] != taxID.String() {
		t.Errorf("tax_id: got %v, want %s", resp["tax_id"], taxID)
	}
	if resp["availability_id"] != nil {
		t.Errorf("availability_id: got %v, want null", resp["availability_id"])
	}

	ch := notifier.expectOne(t, enum.EntityCategory, enum.ActionCreated)
	if ch.OutletID != outletID {
		t.Errorf("notified outlet %s, want %s", ch.OutletID, outletID)
	}
}

func TestCategoryCreate_Validation(t *testing.T) {
	tests := []struct {
		name string
		body interface{}
	}{
		{"missing code", map[string]interface{}{"name": "Drinks"}},
		{"blank name", map[string]interface{}{"code": "D", "name": "  "}},
		{"bad tax id", map[string]interface{}{"code": "D", "name": "Drinks", "tax_id": "nope"}},
		{"bad availability id", map[string]interface{}{"code": "D", "name": "Drinks", "availability_id": "nope"}},
		{"unknown field", map[string]interface{}{"code": "D", "name": "Drinks", "colour": "red"}},
		{"not an object", "just a string"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			router, notifier := setupCategoryRouter(newMockCategoryStore())
			rr := doRequest(t, router, "POST", "/outlets/"+uuid.New().String()+"/categories", tt.body)
			if rr.Code != http.StatusBadRequest {
				t.Errorf("status: got %d, want %d; body: %s", rr.Code, http.StatusBadRequest, rr.Body.String())
			}
			notifier.expectNone(t)
		})
	}
}

func TestCategoryCreate_DuplicateCode(t *testing.T) {
	store := newMockCategoryStore()
	outletID := uuid.New()
	store.seed(outletID, "DRINKS", "Drinks")

	router, notifier := setupCategoryRouter(store)
	rr := doRequest(t, router, "POST", "/outlets/"+outletID.String()+"/categories", map[string]interface{}{
		"code": "DRINKS", "name": "More drinks",
	})
	if rr.Code != http.StatusConflict {
		t.Errorf("status: got %d, want %d", rr.Code, http.StatusConflict)
	}
	notifier.expectNone(t)
}

func TestCategoryCreate_UnknownReference(t *testing.T) {
	store := newMockCategoryStore()
	store.createErr = errFK

	router, _ := setupCategoryRouter(store)
	rr := doRequest(t, router, "POST", "/outlets/"+uuid.New().String()+"/categories", map[string]interface{}{
		"code": "D", "name": "Drinks", "tax_id": uuid.New().String(),
	})
	if rr.Code != http.StatusBadRequest {
		t.Errorf("status: got %d, want %d", rr.Code, http.StatusBadRequest)
	}
}

// --- Update tests ---

func TestCategoryUpdate_Valid(t *testing.T) {
	store := newMockCategoryStore()
	outletID := uuid.New()
	c := store.seed(outletID, "DRINKS", "Drinks")
	availID := uuid.New()

	router, notifier := setupCategoryRouter(store)
	rr := doRequest(t, router, "PUT", "/outlets/"+outletID.String()+"/categories/"+c.ID.String(), map[string]interface{}{
		"code": "DRINKS", "name": "Cold Drinks", "availability_id": availID.String(),
	})

	if rr.Code != http.StatusOK {
		t.Fatalf("status: got %d, want %d; body: %s", rr.Code, http.StatusOK, rr.Body.String())
	}
	resp := decodeObject(t, rr)
	if resp["name"] != "Cold Drinks" {
		t.Errorf("name: got %v", resp["name"])
	}
	if got := store.categories[c.ID].AvailabilityID; got != (pgtype.UUID{Bytes: availID, Valid: true}) {
		t.Errorf("availability not stored: %v", got)
	}
	notifier.expectOne(t, enum.EntityCategory, enum.ActionUpdated)
}

func TestCategoryUpdate_NotFound(t *testing.T) {
	router, notifier := setupCategoryRouter(newMockCategoryStore())

	rr := doRequest(t, router, "PUT", "/outlets/"+uuid.New().String()+"/categories/"+uuid.New().String(), map[string]interface{}{
		"code": "X", "name": "X",
	})
	if rr.Code != http.StatusNotFound {
		t.Errorf("status: got %d, want %d", rr.Code, http.StatusNotFound)
	}
	notifier.expectNone(t)
}

func TestCategoryUpdate_InvalidCategoryID(t *testing.T) {
	router, _ := setupCategoryRouter(newMockCategoryStore())

	rr := doRequest(t, router, "PUT", "/outlets/"+uuid.New().String()+"/categories/bad", map[string]interface{}{
		"code": "X", "name": "X",
	})
	if rr.Code != http.StatusBadRequest {
		t.Errorf("status: got %d, want %d", rr.Code, http.StatusBadRequest)
	}
}

// --- Delete tests ---

func TestCategoryDelete_SoftDeletes(t *testing.T) {
	store := newMockCategoryStore()
	outletID := uuid.New()
	c := store.seed(outletID, "DRINKS", "Drinks")

	router, notifier := setupCategoryRouter(store)
	rr := doRequest(t, router, "DELETE", "/outlets/"+outletID.String()+"/categories/"+c.ID.String(), nil)

	if rr.Code != http.StatusNoContent {
		t.Fatalf("status: got %d, want %d", rr.Code, http.StatusNoContent)
	}
	got, ok := store.categories[c.ID]
	if !ok {
		t.Fatal("category should still exist in store after soft delete")
	}
	if got.IsActive {
		t.Error("category should be inactive after delete")
	}
	ch := notifier.expectOne(t, enum.EntityCategory, enum.ActionDeleted)
	if ch.EntityID != c.ID {
		t.Errorf("notified entity %s, want %s", ch.EntityID, c.ID)
	}
}

func TestCategoryDelete_WrongOutlet(t *testing.T) {
	store := newMockCategoryStore()
	c := store.seed(uuid.New(), "DRINKS", "Drinks")

	router, _ := setupCategoryRouter(store)
	rr := doRequest(t, router, "DELETE", "/outlets/"+uuid.New().String()+"/categories/"+c.ID.String(), nil)

	if rr.Code != http.StatusNotFound {
		t.Errorf("status: got %d, want %d", rr.Code, http.StatusNotFound)
	}
	if !store.categories[c.ID].IsActive {
		t.Error("category in another outlet must not be deleted")
	}
}

// --- Modifier group link tests ---

func TestCategoryAttachModifierGroup(t *testing.T) {
	store := newMockCategoryStore()
	outletID := uuid.New()
	c := store.seed(outletID, "DRINKS", "Drinks")
	g := database.ModifierGroup{ID: uuid.New(), OutletID: outletID, Name: "Size", IsActive: true}
	store.groups[g.ID] = g

	router, notifier := setupCategoryRouter(store)
	path := "/outlets/" + outletID.String() + "/categories/" + c.ID.String() + "/modifier-groups/" + g.ID.String()

	rr := doRequest(t, router, "PUT", path, nil)
	if rr.Code != http.StatusNoContent {
		t.Fatalf("status: got %d, want %d; body: %s", rr.Code, http.StatusNoContent, rr.Body.String())
	}
	if !store.links[c.ID][g.ID] {
		t.Error("link not stored")
	}
	notifier.expectOne(t, enum.EntityCategory, enum.ActionAttached)

	rr = doRequest(t, router, "DELETE", path, nil)
	if rr.Code != http.StatusNoContent {
		t.Fatalf("detach status: got %d, want %d", rr.Code, http.StatusNoContent)
	}
	if store.links[c.ID][g.ID] {
		t.Error("link not removed")
	}

	rr = doRequest(t, router, "DELETE", path, nil)
	if rr.Code != http.StatusNotFound {
		t.Errorf("second detach: got %d, want %d", rr.Code, http.StatusNotFound)
	}
}

func TestCategoryAttachModifierGroup_OtherOutletGroup(t *testing.T) {
	store := newMockCategoryStore()
	outletID := uuid.New()
	c := store.seed(outletID, "DRINKS", "Drinks")
	g := database.ModifierGroup{ID: uuid.New(), OutletID: uuid.New(), Name: "Size", IsActive: true}
	store.groups[g.ID] = g

	router, notifier := setupCategoryRouter(store)
	rr := doRequest(t, router, "PUT", "/outlets/"+outletID.String()+"/categories/"+c.ID.String()+"/modifier-groups/"+g.ID.String(), nil)

	if rr.Code != http.StatusNotFound {
		t.Errorf("status: got %d, want %d", rr.Code, http.StatusNotFound)
	}
	if len(store.links[c.ID]) != 0 {
		t.Error("cross-outlet link must not be stored")
	}
	notifier.expectNone(t)
}
