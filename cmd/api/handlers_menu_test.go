package main

import (
	"context"
	"encoding/json"
	"net/http"
	"testing"

	"github.com/gin-gonic/gin"

	"github.com/mominahmadrao/SmartResturantSystem/internal/menu"
)

// stubMenuRepo implements menu.Repository in memory.
type stubMenuRepo struct {
	items map[string]*menu.Item
	cats  map[string]*menu.Category
}

func newStubMenuRepo() *stubMenuRepo {
	return &stubMenuRepo{items: map[string]*menu.Item{}, cats: map[string]*menu.Category{}}
}

func (s *stubMenuRepo) CreateItem(ctx context.Context, it *menu.Item) error {
	if _, ok := s.cats[it.CategoryID]; !ok {
		return menu.ErrNotFound
	}
	cp := *it
	s.items[it.ID] = &cp
	return nil
}

func (s *stubMenuRepo) GetByID(ctx context.Context, id string) (*menu.Item, error) {
	it, ok := s.items[id]
	if !ok {
		return nil, menu.ErrNotFound
	}
	cp := *it
	return &cp, nil
}

func (s *stubMenuRepo) List(ctx context.Context) ([]menu.ItemWithCategory, error) {
	var out []menu.ItemWithCategory
	for _, it := range s.items {
		out = append(out, menu.ItemWithCategory{Item: *it, CategoryName: s.cats[it.CategoryID].Name})
	}
	return out, nil
}

func (s *stubMenuRepo) UpdateItem(ctx context.Context, id string, upd menu.ItemUpdate) (*menu.Item, error) {
	it, ok := s.items[id]
	if !ok {
		return nil, menu.ErrNotFound
	}
	if upd.Name != nil {
		it.Name = *upd.Name
	}
	if upd.Description != nil {
		it.Description = *upd.Description
	}
	if upd.Price != nil {
		it.Price = *upd.Price
	}
	if upd.ImageURL != nil {
		it.ImageURL = *upd.ImageURL
	}
	if upd.Available != nil {
		it.Available = *upd.Available
	}
	cp := *it
	return &cp, nil
}

func (s *stubMenuRepo) DeleteItem(ctx context.Context, id string) (bool, error) {
	if _, ok := s.items[id]; !ok {
		return false, nil
	}
	delete(s.items, id)
	return true, nil
}

func (s *stubMenuRepo) ListCategories(ctx context.Context) ([]menu.Category, error) {
	var out []menu.Category
	for _, c := range s.cats {
		out = append(out, *c)
	}
	return out, nil
}

func (s *stubMenuRepo) CreateCategory(ctx context.Context, c *menu.Category) error {
	cp := *c
	s.cats[c.ID] = &cp
	return nil
}

func menuTestRouter(repo menu.Repository) *gin.Engine {
	r := gin.New()
	r.GET("/menu", listMenuHandler(repo))
	r.GET("/menu/categories", listCategoriesHandler(repo))
	r.POST("/menu", createMenuItemHandler(repo))
	r.POST("/menu/categories", createCategoryHandler(repo))
	r.PUT("/menu/:id", updateMenuItemHandler(repo))
	r.DELETE("/menu/:id", deleteMenuItemHandler(repo))
	return r
}

func TestMenu_CreateAndList(t *testing.T) {
	t.Parallel()

	repo := newStubMenuRepo()
	r := menuTestRouter(repo)

	w := doJSON(r, http.MethodPost, "/menu/categories", `{"name":"Burgers"}`)
	if w.Code != http.StatusCreated {
		t.Fatalf("category: status=%d body=%s", w.Code, w.Body.String())
	}
	var cat menu.Category
	if err := json.Unmarshal(w.Body.Bytes(), &cat); err != nil {
		t.Fatalf("json: %v", err)
	}

	body := `{"name":"Cheese Burger","price":"500","category_id":"` + cat.ID + `"}`
	w = doJSON(r, http.MethodPost, "/menu", body)
	if w.Code != http.StatusCreated {
		t.Fatalf("item: status=%d body=%s", w.Code, w.Body.String())
	}
	var it menu.Item
	if err := json.Unmarshal(w.Body.Bytes(), &it); err != nil {
		t.Fatalf("json: %v", err)
	}
	if it.Price != "500.00" {
		t.Fatalf("price=%q, want normalized 500.00", it.Price)
	}
	if !it.Available {
		t.Fatal("availability should default to true")
	}

	w = doJSON(r, http.MethodGet, "/menu", "")
	if w.Code != http.StatusOK {
		t.Fatalf("list: status=%d", w.Code)
	}
	var wrap struct {
		Items []menu.ItemWithCategory `json:"items"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &wrap); err != nil {
		t.Fatalf("json: %v", err)
	}
	if len(wrap.Items) != 1 || wrap.Items[0].CategoryName != "Burgers" {
		t.Fatalf("items=%+v", wrap.Items)
	}
}

func TestMenu_CreateItemRejections(t *testing.T) {
	t.Parallel()

	repo := newStubMenuRepo()
	repo.cats["cat-1"] = &menu.Category{ID: "cat-1", Name: "Burgers"}
	r := menuTestRouter(repo)

	for name, body := range map[string]string{
		"negative price":   `{"name":"B","price":"-1","category_id":"cat-1"}`,
		"junk price":       `{"name":"B","price":"abc","category_id":"cat-1"}`,
		"missing price":    `{"name":"B","category_id":"cat-1"}`,
		"unknown category": `{"name":"B","price":"10","category_id":"nope"}`,
	} {
		if w := doJSON(r, http.MethodPost, "/menu", body); w.Code != http.StatusBadRequest {
			t.Fatalf("%s: status=%d, want 400", name, w.Code)
		}
	}
}

func TestMenu_PartialUpdate(t *testing.T) {
	t.Parallel()

	repo := newStubMenuRepo()
	repo.cats["cat-1"] = &menu.Category{ID: "cat-1", Name: "Burgers"}
	repo.items["it-1"] = &menu.Item{
		ID: "it-1", Name: "Cheese Burger", Price: "500.00", CategoryID: "cat-1", Available: true,
	}
	r := menuTestRouter(repo)

	w := doJSON(r, http.MethodPut, "/menu/it-1", `{"available":false}`)
	if w.Code != http.StatusOK {
		t.Fatalf("status=%d body=%s", w.Code, w.Body.String())
	}
	var it menu.Item
	if err := json.Unmarshal(w.Body.Bytes(), &it); err != nil {
		t.Fatalf("json: %v", err)
	}
	if it.Available {
		t.Fatal("available should be false")
	}
	if it.Name != "Cheese Burger" || it.Price != "500.00" {
		t.Fatalf("untouched fields changed: %+v", it)
	}

	if w := doJSON(r, http.MethodPut, "/menu/it-1", `{"price":"-5"}`); w.Code != http.StatusBadRequest {
		t.Fatalf("negative price update: status=%d, want 400", w.Code)
	}
	if w := doJSON(r, http.MethodPut, "/menu/ghost", `{"available":false}`); w.Code != http.StatusNotFound {
		t.Fatalf("missing item: status=%d, want 404", w.Code)
	}
}

func TestMenu_Delete(t *testing.T) {
	t.Parallel()

	repo := newStubMenuRepo()
	repo.cats["cat-1"] = &menu.Category{ID: "cat-1", Name: "Burgers"}
	repo.items["it-1"] = &menu.Item{ID: "it-1", Name: "Cheese Burger", Price: "500.00", CategoryID: "cat-1"}
	r := menuTestRouter(repo)

	if w := doJSON(r, http.MethodDelete, "/menu/it-1", ""); w.Code != http.StatusNoContent {
		t.Fatalf("status=%d, want 204", w.Code)
	}
	if w := doJSON(r, http.MethodDelete, "/menu/it-1", ""); w.Code != http.StatusNotFound {
		t.Fatalf("second delete: status=%d, want 404", w.Code)
	}
}
