package handler

import (
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/gorilla/mux"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	"storefront/internal/apiclient"
	"storefront/internal/models"
	"storefront/internal/notify"
	"storefront/internal/router"
	"storefront/internal/store"
	"storefront/pkg/logger"
)

// Stores - состояние клиента, которое показывает локальная витрина
type Stores struct {
	Session  *store.Session
	Cart     *store.Cart
	Products *store.Products
	Wishlist *store.Wishlist
	// Flash - уведомления сессии, которые показываются на следующей странице
	Flash *notify.Recorder
}

// Handler содержит зависимости
type Handler struct {
	stores  Stores
	router  *router.Router
	metrics prometheus.Gatherer
	log     *zap.Logger
}

// NewHandler создает новый экземпляр Handler
func NewHandler(stores Stores, rt *router.Router, metrics prometheus.Gatherer, log *zap.Logger) *Handler {
	return &Handler{
		stores:  stores,
		router:  rt,
		metrics: metrics,
		log:     logger.OrNop(log),
	}
}

// Routes - все маршруты таблицы плюс действия форм и /metrics
func (h *Handler) Routes() (http.Handler, error) {
	views := map[string]http.HandlerFunc{
		"home":           h.HomeHandler,
		"products":       h.ProductsHandler,
		"product-detail": h.ProductDetailHandler,
		"cart":           h.CartHandler,
		"checkout":       h.CheckoutHandler,
		"orders":         h.OrdersHandler,
		"order-detail":   h.OrderDetailHandler,
		"profile":        h.ProfileHandler,
		"wishlist":       h.WishlistHandler,
		"login":          h.LoginPageHandler,
		"register":       h.RegisterPageHandler,
		"vouchers":       h.VouchersHandler,
	}

	m := mux.NewRouter()
	for _, route := range h.router.Routes() {
		view, ok := views[route.Name]
		if !ok {
			return nil, fmt.Errorf("нет представления для маршрута %q", route.Name)
		}
		m.Handle(route.Path, h.requireAccess(route, "", view)).Methods(http.MethodGet).Name(route.Name)
	}

	login, _ := h.router.Route("login")
	register, _ := h.router.Route("register")
	cart, _ := h.router.Route("cart")
	wishlist, _ := h.router.Route("wishlist")

	m.Handle("/login", h.requireAccess(login, "", http.HandlerFunc(h.LoginHandler))).Methods(http.MethodPost)
	m.Handle("/register", h.requireAccess(register, "", http.HandlerFunc(h.RegisterHandler))).Methods(http.MethodPost)
	m.HandleFunc("/logout", h.LogoutHandler).Methods(http.MethodPost)

	m.Handle("/cart", h.requireAccess(cart, cart.Path, http.HandlerFunc(h.AddToCartHandler))).Methods(http.MethodPost)
	m.Handle("/cart/{itemId:[0-9]+}", h.requireAccess(cart, cart.Path, http.HandlerFunc(h.UpdateCartItemHandler))).Methods(http.MethodPost, http.MethodPut)
	m.Handle("/cart/{itemId:[0-9]+}", h.requireAccess(cart, cart.Path, http.HandlerFunc(h.RemoveFromCartHandler))).Methods(http.MethodDelete)

	m.Handle("/wishlist", h.requireAccess(wishlist, wishlist.Path, http.HandlerFunc(h.AddToWishlistHandler))).Methods(http.MethodPost)
	m.Handle("/wishlist/{productId:[0-9]+}", h.requireAccess(wishlist, wishlist.Path, http.HandlerFunc(h.RemoveFromWishlistHandler))).Methods(http.MethodDelete)

	if h.metrics != nil {
		m.Handle("/metrics", promhttp.HandlerFor(h.metrics, promhttp.HandlerOpts{}))
	}

	m.NotFoundHandler = http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		h.render(w, http.StatusNotFound, models.PageData{Title: "Не найдено", Error: "Страница не найдена"})
	})
	return m, nil
}

// setEncoding устанавливает правильную кодировку
func (h *Handler) setEncoding(w http.ResponseWriter) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
}

// page - общие поля страницы из состояния сессии
func (h *Handler) page(title, current string) models.PageData {
	session := h.stores.Session
	route, _ := h.router.Route(current)
	data := models.PageData{
		Title:           title,
		CurrentPage:     current,
		View:            route.View,
		IsAuthenticated: session.IsAuthenticated(),
		IsAdmin:         session.IsAdmin(),
		User:            session.User(),
		CartCount:       h.stores.Cart.Count(),
		CartTotal:       h.stores.Cart.Total(),
	}
	if n, ok := h.stores.Flash.Take(); ok {
		switch n.Level {
		case notify.LevelSuccess:
			data.Success = n.Message
		case notify.LevelError:
			data.Error = n.Message
		}
	}
	return data
}

func (h *Handler) render(w http.ResponseWriter, status int, data models.PageData) {
	h.setEncoding(w)
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(data); err != nil {
		h.log.Error("❌ Ошибка отображения страницы", zap.String("page", data.CurrentPage), zap.Error(err))
	}
}

// renderError - страница с ошибкой API; статус сервера сохраняется для 4xx
func (h *Handler) renderError(w http.ResponseWriter, data models.PageData, err error) {
	status := apiclient.StatusCode(err)
	if status < 400 || status >= 500 {
		status = http.StatusBadGateway
	}
	data.Error = err.Error()
	if msg := apiclient.Message(err); msg != "" {
		data.Error = msg
	}
	h.log.Warn("❌ Ошибка запроса к API", zap.String("page", data.CurrentPage), zap.Error(err))
	h.render(w, status, data)
}
