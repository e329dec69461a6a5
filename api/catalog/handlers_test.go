package catalog_test

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"

	"github.com/kbukum/webdemo/api/catalog"
	apperrors "github.com/kbukum/webdemo/errors"
	"github.com/kbukum/webdemo/logger"
	"github.com/kbukum/webdemo/store"
)

func testRouter(t *testing.T) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)

	db, err := store.Open(context.Background(), store.Config{
		DSN:        ":memory:",
		MaxRetries: 1,
		LogLevel:   "silent",
	}, logger.NewDefault("test"))
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	t.Cleanup(func() { _ = db.Close() })
	if err := db.AutoMigrate(); err != nil {
		t.Fatalf("AutoMigrate: %v", err)
	}

	handler := catalog.New(store.NewRepository(db), logger.NewDefault("test"))

	r := gin.New()
	handler.Register(r.Group("/api/v1"))
	return r
}

func do(t *testing.T, r *gin.Engine, method, path, body string) *httptest.ResponseRecorder {
	t.Helper()
	var req *http.Request
	if body == "" {
		req = httptest.NewRequest(method, path, http.NoBody)
	} else {
		req = httptest.NewRequest(method, path, strings.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
	}
	rr := httptest.NewRecorder()
	r.ServeHTTP(rr, req)
	return rr
}

func decodeData(t *testing.T, rr *httptest.ResponseRecorder, out any) {
	t.Helper()
	var envelope struct {
		Data json.RawMessage `json:"data"`
	}
	if err := json.Unmarshal(rr.Body.Bytes(), &envelope); err != nil {
		t.Fatalf("invalid envelope: %v: %s", err, rr.Body.String())
	}
	if err := json.Unmarshal(envelope.Data, out); err != nil {
		t.Fatalf("invalid data: %v", err)
	}
}

func errorCode(t *testing.T, rr *httptest.ResponseRecorder) apperrors.ErrorCode {
	t.Helper()
	var body apperrors.ErrorResponse
	if err := json.Unmarshal(rr.Body.Bytes(), &body); err != nil {
		t.Fatalf("invalid error body: %v: %s", err, rr.Body.String())
	}
	return body.Error.Code
}

func TestCreateUser(t *testing.T) {
	r := testRouter(t)

	rr := do(t, r, "POST", "/api/v1/catalog/users", `{"username":"john"}`)
	if rr.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d: %s", rr.Code, rr.Body.String())
	}
	var user store.User
	decodeData(t, rr, &user)
	if user.ID == 0 || user.Username != "john" {
		t.Errorf("user = %+v", user)
	}

	rr = do(t, r, "POST", "/api/v1/catalog/users", `{"username":"john"}`)
	if rr.Code != http.StatusConflict {
		t.Fatalf("expected 409 for duplicate, got %d", rr.Code)
	}
	if code := errorCode(t, rr); code != apperrors.ErrCodeAlreadyExists {
		t.Errorf("code = %s", code)
	}
}

func TestCreateUserValidation(t *testing.T) {
	r := testRouter(t)

	tests := []struct {
		name string
		body string
	}{
		{"empty body", `{}`},
		{"blank username", `{"username":""}`},
		{"too long", fmt.Sprintf(`{"username":%q}`, strings.Repeat("x", 33))},
		{"malformed json", `{"username":`},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			rr := do(t, r, "POST", "/api/v1/catalog/users", tc.body)
			if rr.Code != http.StatusBadRequest {
				t.Fatalf("expected 400, got %d: %s", rr.Code, rr.Body.String())
			}
		})
	}
}

func TestGetUserWithProfileAndPosts(t *testing.T) {
	r := testRouter(t)

	do(t, r, "POST", "/api/v1/catalog/users", `{"username":"sam"}`)

	rr := do(t, r, "POST", "/api/v1/catalog/users/sam/profile", `{"first_name":"Sam","last_name":"Smith","bio":"hi"}`)
	if rr.Code != http.StatusCreated {
		t.Fatalf("create profile: expected 201, got %d: %s", rr.Code, rr.Body.String())
	}

	rr = do(t, r, "POST", "/api/v1/catalog/users/sam/posts", `{"posts":[{"title":"first","body":"text"},{"title":"second"}]}`)
	if rr.Code != http.StatusCreated {
		t.Fatalf("create posts: expected 201, got %d: %s", rr.Code, rr.Body.String())
	}

	rr = do(t, r, "GET", "/api/v1/catalog/users/sam", "")
	if rr.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", rr.Code, rr.Body.String())
	}
	var user store.User
	decodeData(t, rr, &user)
	if user.Profile == nil || user.Profile.FirstName != "Sam" {
		t.Errorf("profile not preloaded: %+v", user.Profile)
	}
	if len(user.Posts) != 2 {
		t.Errorf("expected 2 posts, got %d", len(user.Posts))
	}

	rr = do(t, r, "GET", "/api/v1/catalog/users/ghost", "")
	if rr.Code != http.StatusNotFound {
		t.Fatalf("expected 404, got %d", rr.Code)
	}
}

func TestDuplicateProfileConflicts(t *testing.T) {
	r := testRouter(t)

	do(t, r, "POST", "/api/v1/catalog/users", `{"username":"sam"}`)
	do(t, r, "POST", "/api/v1/catalog/users/sam/profile", `{"first_name":"Sam","last_name":"Smith"}`)

	rr := do(t, r, "POST", "/api/v1/catalog/users/sam/profile", `{"first_name":"Other","last_name":"Name"}`)
	if rr.Code != http.StatusConflict {
		t.Fatalf("expected 409, got %d: %s", rr.Code, rr.Body.String())
	}
}

func TestPostsForUnknownUser(t *testing.T) {
	r := testRouter(t)

	rr := do(t, r, "POST", "/api/v1/catalog/users/ghost/posts", `{"posts":[{"title":"x"}]}`)
	if rr.Code != http.StatusNotFound {
		t.Fatalf("expected 404, got %d: %s", rr.Code, rr.Body.String())
	}
}

func TestListPostsWithAuthor(t *testing.T) {
	r := testRouter(t)

	do(t, r, "POST", "/api/v1/catalog/users", `{"username":"john"}`)
	do(t, r, "POST", "/api/v1/catalog/users/john/posts", `{"posts":[{"title":"hello"}]}`)

	rr := do(t, r, "GET", "/api/v1/catalog/posts", "")
	if rr.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rr.Code)
	}
	var posts []store.Post
	decodeData(t, rr, &posts)
	if len(posts) != 1 {
		t.Fatalf("expected 1 post, got %d", len(posts))
	}
	if posts[0].User == nil || posts[0].User.Username != "john" {
		t.Errorf("author not joined: %+v", posts[0].User)
	}
}

func TestProducts(t *testing.T) {
	r := testRouter(t)

	rr := do(t, r, "POST", "/api/v1/catalog/products", `{"name":"Keyboard","description":"Mechanical","price":120}`)
	if rr.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d: %s", rr.Code, rr.Body.String())
	}

	rr = do(t, r, "POST", "/api/v1/catalog/products", `{"name":"Broken","description":"No price","price":-1}`)
	if rr.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 for negative price, got %d", rr.Code)
	}

	rr = do(t, r, "GET", "/api/v1/catalog/products", "")
	if rr.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rr.Code)
	}
	var products []store.Product
	decodeData(t, rr, &products)
	if len(products) != 1 || products[0].Price != 120 {
		t.Errorf("products = %+v", products)
	}
}

func TestOrderLifecycle(t *testing.T) {
	r := testRouter(t)

	rr := do(t, r, "POST", "/api/v1/catalog/products", `{"name":"Mouse","description":"Wireless","price":40}`)
	var product store.Product
	decodeData(t, rr, &product)

	// Orders may be created with an empty body.
	rr = do(t, r, "POST", "/api/v1/catalog/orders", "")
	if rr.Code != http.StatusCreated {
		t.Fatalf("create order: expected 201, got %d: %s", rr.Code, rr.Body.String())
	}
	var order store.Order
	decodeData(t, rr, &order)

	rr = do(t, r, "POST", "/api/v1/catalog/orders", `{"promocode":"SAVE10"}`)
	if rr.Code != http.StatusCreated {
		t.Fatalf("create order with promocode: expected 201, got %d", rr.Code)
	}
	var promoOrder store.Order
	decodeData(t, rr, &promoOrder)
	if promoOrder.Promocode == nil || *promoOrder.Promocode != "SAVE10" {
		t.Errorf("promocode = %v", promoOrder.Promocode)
	}

	body := fmt.Sprintf(`{"product_id":%d,"unit_price":40}`, product.ID)
	rr = do(t, r, "POST", fmt.Sprintf("/api/v1/catalog/orders/%d/products", order.ID), body)
	if rr.Code != http.StatusCreated {
		t.Fatalf("add product: expected 201, got %d: %s", rr.Code, rr.Body.String())
	}
	var assoc store.OrderProduct
	decodeData(t, rr, &assoc)
	if assoc.Count != 1 {
		t.Errorf("count must default to 1, got %d", assoc.Count)
	}

	// Adding the same product twice conflicts.
	rr = do(t, r, "POST", fmt.Sprintf("/api/v1/catalog/orders/%d/products", order.ID), body)
	if rr.Code != http.StatusConflict {
		t.Fatalf("expected 409 for duplicate association, got %d", rr.Code)
	}

	// Unknown order is a 404.
	rr = do(t, r, "POST", "/api/v1/catalog/orders/999/products", body)
	if rr.Code != http.StatusNotFound {
		t.Fatalf("expected 404 for unknown order, got %d", rr.Code)
	}

	// Non-numeric order id is a validation error.
	rr = do(t, r, "POST", "/api/v1/catalog/orders/abc/products", body)
	if rr.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 for bad id, got %d", rr.Code)
	}

	rr = do(t, r, "GET", "/api/v1/catalog/orders", "")
	if rr.Code != http.StatusOK {
		t.Fatalf("list orders: expected 200, got %d", rr.Code)
	}
	var orders []store.Order
	decodeData(t, rr, &orders)
	if len(orders) != 2 {
		t.Fatalf("expected 2 orders, got %d", len(orders))
	}
	if len(orders[0].Products) != 1 {
		t.Fatalf("expected 1 product on first order, got %d", len(orders[0].Products))
	}
	if orders[0].Products[0].Product == nil || orders[0].Products[0].Product.Name != "Mouse" {
		t.Errorf("product details not preloaded: %+v", orders[0].Products[0].Product)
	}
}

func TestListUsersIncludesProfiles(t *testing.T) {
	r := testRouter(t)

	do(t, r, "POST", "/api/v1/catalog/users", `{"username":"a"}`)
	do(t, r, "POST", "/api/v1/catalog/users", `{"username":"b"}`)
	do(t, r, "POST", "/api/v1/catalog/users/a/profile", `{"first_name":"Aa","last_name":"Aa"}`)

	rr := do(t, r, "GET", "/api/v1/catalog/users", "")
	if rr.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rr.Code)
	}
	var users []store.User
	decodeData(t, rr, &users)
	if len(users) != 2 {
		t.Fatalf("expected 2 users, got %d", len(users))
	}
	var withProfile int
	for _, u := range users {
		if u.Profile != nil {
			withProfile++
		}
	}
	if withProfile != 1 {
		t.Errorf("expected exactly one profile, got %d", withProfile)
	}
}
