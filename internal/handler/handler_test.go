package handler

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"sync"
	"testing"

	"github.com/gorilla/mux"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"storefront/internal/apiclient"
	"storefront/internal/auth"
	"storefront/internal/models"
	"storefront/internal/notify"
	"storefront/internal/router"
	"storefront/internal/service"
	"storefront/internal/storage"
	"storefront/internal/store"
)

// shopAPI - упрощенный сервер магазина
type shopAPI struct {
	mu    sync.Mutex
	cart  []models.CartItem
	next  int
	wish  []models.WishlistItem
	token string

	// cartDown/wishDown - GET /cart и GET /wishlists отвечают 500
	cartDown bool
	wishDown bool
}

func (s *shopAPI) setDown(cart, wish bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.cartDown, s.wishDown = cart, wish
}

func (s *shopAPI) handler() http.Handler {
	m := mux.NewRouter()
	writeJSON := func(w http.ResponseWriter, status int, v interface{}) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(status)
		json.NewEncoder(w).Encode(v)
	}
	authorized := func(next http.HandlerFunc) http.HandlerFunc {
		return func(w http.ResponseWriter, r *http.Request) {
			if r.Header.Get("Authorization") != auth.BearerHeader(s.token) {
				writeJSON(w, http.StatusUnauthorized, map[string]string{"error": "Unauthorized"})
				return
			}
			s.mu.Lock()
			defer s.mu.Unlock()
			next(w, r)
		}
	}

	m.HandleFunc("/auth/login", func(w http.ResponseWriter, r *http.Request) {
		var c models.Credentials
		json.NewDecoder(r.Body).Decode(&c)
		if c.Password != "x" {
			writeJSON(w, http.StatusUnauthorized, map[string]string{"error": "Invalid credentials"})
			return
		}
		writeJSON(w, http.StatusOK, map[string]interface{}{
			"user":  map[string]interface{}{"id": 1, "email": c.Email, "role": "user"},
			"token": s.token,
		})
	}).Methods(http.MethodPost)
	m.HandleFunc("/products", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, []models.Product{{ID: 1, Name: "Tee", Price: 10}})
	}).Methods(http.MethodGet)
	m.HandleFunc("/products/{id}", func(w http.ResponseWriter, r *http.Request) {
		if mux.Vars(r)["id"] != "1" {
			writeJSON(w, http.StatusNotFound, map[string]string{"error": "Product not found"})
			return
		}
		writeJSON(w, http.StatusOK, models.Product{ID: 1, Name: "Tee", Price: 10})
	}).Methods(http.MethodGet)
	m.HandleFunc("/cart", authorized(func(w http.ResponseWriter, r *http.Request) {
		if s.cartDown {
			writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "cart unavailable"})
			return
		}
		writeJSON(w, http.StatusOK, s.cart)
	})).Methods(http.MethodGet)
	m.HandleFunc("/cart", authorized(func(w http.ResponseWriter, r *http.Request) {
		var req models.AddCartItemRequest
		json.NewDecoder(r.Body).Decode(&req)
		s.next++
		s.cart = append(s.cart, models.CartItem{ID: s.next, ProductID: req.ProductID, VariantID: req.VariantID, Quantity: req.Quantity, UnitPrice: 10})
		writeJSON(w, http.StatusCreated, map[string]string{"message": "ok"})
	})).Methods(http.MethodPost)
	m.HandleFunc("/cart/{id}", authorized(func(w http.ResponseWriter, r *http.Request) {
		id := mux.Vars(r)["id"]
		kept := s.cart[:0]
		for _, item := range s.cart {
			if strings.TrimSpace(id) != itoa(item.ID) {
				kept = append(kept, item)
			}
		}
		s.cart = kept
		w.WriteHeader(http.StatusNoContent)
	})).Methods(http.MethodDelete)
	m.HandleFunc("/wishlists", authorized(func(w http.ResponseWriter, r *http.Request) {
		if s.wishDown {
			writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "wishlist unavailable"})
			return
		}
		writeJSON(w, http.StatusOK, s.wish)
	})).Methods(http.MethodGet)
	m.HandleFunc("/wishlist", authorized(func(w http.ResponseWriter, r *http.Request) {
		var req models.AddWishlistRequest
		json.NewDecoder(r.Body).Decode(&req)
		s.wish = append(s.wish, models.WishlistItem{ID: len(s.wish) + 1, ProductID: req.ProductID})
		w.WriteHeader(http.StatusCreated)
	})).Methods(http.MethodPost)
	return m
}

func itoa(i int) string {
	b, _ := json.Marshal(i)
	return string(b)
}

type shell struct {
	http.Handler
	api     *shopAPI
	session *store.Session
	cart    *store.Cart
}

func newShell(t *testing.T) *shell {
	t.Helper()
	api := &shopAPI{token: "tok"}
	server := httptest.NewServer(api.handler())
	t.Cleanup(server.Close)

	var session *store.Session
	reg := prometheus.NewRegistry()
	client := apiclient.New(apiclient.Config{BaseURL: server.URL},
		apiclient.WithTokenSource(func() string { return session.Token() }),
		apiclient.WithMetrics(apiclient.NewMetrics(reg)))

	flash := &notify.Recorder{}
	session = store.NewSession(context.Background(), service.NewAuthService(client), storage.NewMemory(), flash, nil)
	stores := Stores{
		Session:  session,
		Cart:     store.NewCart(service.NewCartService(client), nil),
		Products: store.NewProducts(service.NewProductService(client), nil),
		Wishlist: store.NewWishlist(service.NewWishlistService(client), nil),
		Flash:    flash,
	}

	rt, err := router.New(router.DefaultRoutes())
	require.NoError(t, err)

	h, err := NewHandler(stores, rt, reg, nil).Routes()
	require.NoError(t, err)
	return &shell{Handler: h, api: api, session: session, cart: stores.Cart}
}

func (s *shell) do(method, target string, form url.Values) *httptest.ResponseRecorder {
	var body *strings.Reader
	if form != nil {
		body = strings.NewReader(form.Encode())
	} else {
		body = strings.NewReader("")
	}
	req := httptest.NewRequest(method, target, body)
	if form != nil {
		req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	}
	rec := httptest.NewRecorder()
	s.ServeHTTP(rec, req)
	return rec
}

func decodePage(t *testing.T, rec *httptest.ResponseRecorder) models.PageData {
	t.Helper()
	var data models.PageData
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &data))
	return data
}

func (s *shell) login(t *testing.T) {
	t.Helper()
	rec := s.do(http.MethodPost, "/login", url.Values{"email": {"a@b.com"}, "password": {"x"}})
	require.Equal(t, http.StatusSeeOther, rec.Code)
}

func TestGuardRedirectsAnonymousToLogin(t *testing.T) {
	s := newShell(t)

	rec := s.do(http.MethodGet, "/cart", nil)
	assert.Equal(t, http.StatusFound, rec.Code)
	assert.Equal(t, "/login?redirect=%2Fcart", rec.Header().Get("Location"))

	rec = s.do(http.MethodGet, "/orders/5?x=1", nil)
	assert.Equal(t, "/login?redirect=%2Forders%2F5%3Fx%3D1", rec.Header().Get("Location"))
}

func TestLoginRedirectsBackAndGuestRoutesClose(t *testing.T) {
	s := newShell(t)

	rec := s.do(http.MethodPost, "/login?redirect=%2Fcart", url.Values{"email": {"a@b.com"}, "password": {"x"}})
	assert.Equal(t, http.StatusSeeOther, rec.Code)
	assert.Equal(t, "/cart", rec.Header().Get("Location"))
	assert.True(t, s.session.IsAuthenticated())

	rec = s.do(http.MethodGet, "/login", nil)
	assert.Equal(t, http.StatusFound, rec.Code)
	assert.Equal(t, "/", rec.Header().Get("Location"))

	rec = s.do(http.MethodGet, "/profile", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	page := decodePage(t, rec)
	assert.Equal(t, "a@b.com", page.User.Email)
	assert.Equal(t, "Profile", page.View)
}

func TestLoginFailure(t *testing.T) {
	s := newShell(t)

	rec := s.do(http.MethodPost, "/login", url.Values{"email": {"a@b.com"}, "password": {"bad"}})
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.Equal(t, "Invalid credentials", decodePage(t, rec).Error)
	assert.False(t, s.session.IsAuthenticated())
}

func TestCartFlow(t *testing.T) {
	s := newShell(t)
	s.login(t)

	rec := s.do(http.MethodPost, "/cart", url.Values{"product_id": {"1"}, "variant_id": {"2"}, "quantity": {"3"}})
	assert.Equal(t, http.StatusSeeOther, rec.Code)
	rec = s.do(http.MethodPost, "/cart", url.Values{"product_id": {"1"}, "variant_id": {"3"}, "quantity": {"1"}})
	assert.Equal(t, http.StatusSeeOther, rec.Code)

	rec = s.do(http.MethodGet, "/cart", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	page := decodePage(t, rec)
	assert.Len(t, page.CartItems, 2)
	assert.Equal(t, 4, page.CartCount)
	assert.Equal(t, 40.0, page.CartTotal)

	rec = s.do(http.MethodDelete, "/cart/1", nil)
	assert.Equal(t, http.StatusSeeOther, rec.Code)
	assert.Equal(t, 1, s.cart.Count())

	rec = s.do(http.MethodPost, "/cart", url.Values{"product_id": {"x"}})
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestWishlistFlow(t *testing.T) {
	s := newShell(t)
	s.login(t)

	rec := s.do(http.MethodPost, "/wishlist", url.Values{"product_id": {"1"}})
	assert.Equal(t, http.StatusSeeOther, rec.Code)

	rec = s.do(http.MethodGet, "/wishlist", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Len(t, decodePage(t, rec).Wishlist, 1)
}

func TestProductPages(t *testing.T) {
	s := newShell(t)

	rec := s.do(http.MethodGet, "/", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Len(t, decodePage(t, rec).Products, 1)

	rec = s.do(http.MethodGet, "/products/1", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "Tee", decodePage(t, rec).Title)

	rec = s.do(http.MethodGet, "/products/2", nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)

	rec = s.do(http.MethodGet, "/nowhere", nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestLogout(t *testing.T) {
	s := newShell(t)
	s.login(t)

	rec := s.do(http.MethodPost, "/logout", nil)
	assert.Equal(t, http.StatusSeeOther, rec.Code)
	assert.False(t, s.session.IsAuthenticated())

	rec = s.do(http.MethodGet, "/cart", nil)
	assert.Equal(t, http.StatusFound, rec.Code)
}

func TestMetricsEndpoint(t *testing.T) {
	s := newShell(t)
	s.do(http.MethodGet, "/products", nil)

	rec := s.do(http.MethodGet, "/metrics", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "storefront_api_client_requests_total")
}

func TestWishlistPageSurvivesCartFailure(t *testing.T) {
	s := newShell(t)
	s.login(t)
	s.do(http.MethodPost, "/wishlist", url.Values{"product_id": {"1"}})

	s.api.setDown(true, false)
	rec := s.do(http.MethodGet, "/wishlist", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Len(t, decodePage(t, rec).Wishlist, 1)
}

func TestWishlistFailureKeepsCart(t *testing.T) {
	s := newShell(t)
	s.login(t)
	rec := s.do(http.MethodPost, "/cart", url.Values{"product_id": {"1"}, "variant_id": {"2"}, "quantity": {"2"}})
	require.Equal(t, http.StatusSeeOther, rec.Code)
	require.Equal(t, 2, s.cart.Count())

	s.api.setDown(false, true)
	rec = s.do(http.MethodGet, "/wishlist", nil)
	assert.Equal(t, http.StatusBadGateway, rec.Code)
	assert.Equal(t, "wishlist unavailable", decodePage(t, rec).Error)
	assert.Equal(t, 2, s.cart.Count())
}

func TestHomeSurvivesCartFailure(t *testing.T) {
	s := newShell(t)
	s.login(t)

	s.api.setDown(true, false)
	rec := s.do(http.MethodGet, "/", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Len(t, decodePage(t, rec).Products, 1)
}

func TestPathIDOutOfRange(t *testing.T) {
	s := newShell(t)
	s.login(t)

	rec := s.do(http.MethodDelete, "/cart/99999999999999999999", nil)
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = s.do(http.MethodPut, "/cart/99999999999999999999", url.Values{"quantity": {"1"}})
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = s.do(http.MethodDelete, "/wishlist/99999999999999999999", nil)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestSessionNotificationsShownOnce(t *testing.T) {
	s := newShell(t)
	s.login(t)

	rec := s.do(http.MethodGet, "/profile", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.NotEmpty(t, decodePage(t, rec).Success)

	rec = s.do(http.MethodGet, "/profile", nil)
	assert.Empty(t, decodePage(t, rec).Success)

	s.do(http.MethodPost, "/logout", nil)
	rec = s.do(http.MethodGet, "/", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.NotEmpty(t, decodePage(t, rec).Success)
}
