package handler

import (
	"context"
	"net/http"

	"github.com/gorilla/mux"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"storefront/internal/apiclient"
	"storefront/internal/models"
)

// HomeHandler - главная страница: каталог и корзина загружаются параллельно
func (h *Handler) HomeHandler(w http.ResponseWriter, r *http.Request) {
	var products []models.Product

	err := h.withCart(r.Context(), func(ctx context.Context) error {
		var err error
		products, err = h.stores.Products.FetchProducts(ctx)
		return err
	})
	data := h.page("Главная", "home")
	if err != nil {
		h.renderError(w, data, err)
		return
	}

	data.Products = products
	h.render(w, http.StatusOK, data)
}

// ProductsHandler - список товаров
func (h *Handler) ProductsHandler(w http.ResponseWriter, r *http.Request) {
	data := h.page("Товары", "products")

	products, err := h.stores.Products.FetchProducts(r.Context())
	if err != nil {
		h.renderError(w, data, err)
		return
	}

	h.log.Debug("✅ Найдено товаров", zap.Int("count", len(products)))
	data.Products = products
	h.render(w, http.StatusOK, data)
}

// ProductDetailHandler - детальная страница товара
func (h *Handler) ProductDetailHandler(w http.ResponseWriter, r *http.Request) {
	id := mux.Vars(r)["id"]
	data := h.page("Товар", "product-detail")
	data.Params = map[string]string{"id": id}

	product, err := h.stores.Products.FetchProductByID(r.Context(), id)
	if err != nil {
		if apiclient.IsNotFound(err) {
			data.Title = "Не найдено"
			data.Error = "Товар не найден"
			h.render(w, http.StatusNotFound, data)
			return
		}
		h.renderError(w, data, err)
		return
	}

	data.Title = product.Name
	data.Product = &product
	h.render(w, http.StatusOK, data)
}

// withCart - данные страницы вместе с корзиной для счетчика в шапке.
// Ошибка корзины страницу не ломает, а ошибка load не отменяет загрузку корзины.
func (h *Handler) withCart(ctx context.Context, load func(context.Context) error) error {
	var g errgroup.Group
	g.Go(func() error { return load(ctx) })
	if h.stores.Session.IsAuthenticated() {
		g.Go(func() error {
			if err := h.stores.Cart.FetchCart(ctx); err != nil {
				h.log.Debug("корзина не загружена", zap.Error(err))
			}
			return nil
		})
	}
	return g.Wait()
}
