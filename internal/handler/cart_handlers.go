package handler

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"storefront/internal/models"
	"storefront/internal/store"
)

// CartHandler - корзина
func (h *Handler) CartHandler(w http.ResponseWriter, r *http.Request) {
	h.cartPage(w, r, "Корзина", "cart")
}

// CheckoutHandler - оформление заказа, показывает итог корзины
func (h *Handler) CheckoutHandler(w http.ResponseWriter, r *http.Request) {
	h.cartPage(w, r, "Оформление заказа", "checkout")
}

func (h *Handler) cartPage(w http.ResponseWriter, r *http.Request, title, current string) {
	if err := h.stores.Cart.FetchCart(r.Context()); err != nil {
		h.renderError(w, h.page(title, current), err)
		return
	}

	data := h.page(title, current)
	data.CartItems = h.stores.Cart.Items()
	h.render(w, http.StatusOK, data)
}

// AddToCartHandler - POST /cart
func (h *Handler) AddToCartHandler(w http.ResponseWriter, r *http.Request) {
	productID, err1 := strconv.Atoi(r.FormValue("product_id"))
	variantID, err2 := strconv.Atoi(r.FormValue("variant_id"))
	quantity, err3 := strconv.Atoi(r.FormValue("quantity"))
	if err := errors.Join(err1, err2, err3); err != nil {
		h.render(w, http.StatusBadRequest, models.PageData{Title: "Корзина", CurrentPage: "cart", Error: "Неверные данные формы"})
		return
	}

	err := h.stores.Cart.AddToCart(r.Context(), models.AddCartItemRequest{
		ProductID: productID,
		VariantID: variantID,
		Quantity:  quantity,
	})
	if h.cartActionFailed(w, err) {
		return
	}
	http.Redirect(w, r, "/cart", http.StatusSeeOther)
}

// UpdateCartItemHandler - POST/PUT /cart/{itemId}
func (h *Handler) UpdateCartItemHandler(w http.ResponseWriter, r *http.Request) {
	itemID, ok := h.pathID(w, r, "itemId", "cart")
	if !ok {
		return
	}
	quantity, err := strconv.Atoi(r.FormValue("quantity"))
	if err != nil {
		h.render(w, http.StatusBadRequest, models.PageData{Title: "Корзина", CurrentPage: "cart", Error: "Неверное количество"})
		return
	}

	if h.cartActionFailed(w, h.stores.Cart.UpdateCartItem(r.Context(), itemID, quantity)) {
		return
	}
	http.Redirect(w, r, "/cart", http.StatusSeeOther)
}

// RemoveFromCartHandler - DELETE /cart/{itemId}
func (h *Handler) RemoveFromCartHandler(w http.ResponseWriter, r *http.Request) {
	itemID, ok := h.pathID(w, r, "itemId", "cart")
	if !ok {
		return
	}

	if h.cartActionFailed(w, h.stores.Cart.RemoveFromCart(r.Context(), itemID)) {
		return
	}
	http.Redirect(w, r, "/cart", http.StatusSeeOther)
}

func (h *Handler) cartActionFailed(w http.ResponseWriter, err error) bool {
	switch {
	case err == nil:
		return false
	case errors.Is(err, store.ErrInvalidQuantity):
		data := h.page("Корзина", "cart")
		data.Error = err.Error()
		h.render(w, http.StatusBadRequest, data)
	default:
		h.renderError(w, h.page("Корзина", "cart"), err)
	}
	return true
}

// WishlistHandler - избранное
func (h *Handler) WishlistHandler(w http.ResponseWriter, r *http.Request) {
	err := h.withCart(r.Context(), h.stores.Wishlist.FetchWishlist)
	data := h.page("Избранное", "wishlist")
	if err != nil {
		h.renderError(w, data, err)
		return
	}

	data.Wishlist = h.stores.Wishlist.Items()
	h.render(w, http.StatusOK, data)
}

// AddToWishlistHandler - POST /wishlist
func (h *Handler) AddToWishlistHandler(w http.ResponseWriter, r *http.Request) {
	productID, err := strconv.Atoi(r.FormValue("product_id"))
	if err != nil {
		h.render(w, http.StatusBadRequest, models.PageData{Title: "Избранное", CurrentPage: "wishlist", Error: "Неверный товар"})
		return
	}

	if err := h.stores.Wishlist.AddToWishlist(r.Context(), productID); err != nil {
		h.renderError(w, h.page("Избранное", "wishlist"), err)
		return
	}
	http.Redirect(w, r, "/wishlist", http.StatusSeeOther)
}

// RemoveFromWishlistHandler - DELETE /wishlist/{productId}
func (h *Handler) RemoveFromWishlistHandler(w http.ResponseWriter, r *http.Request) {
	productID, ok := h.pathID(w, r, "productId", "wishlist")
	if !ok {
		return
	}

	if err := h.stores.Wishlist.RemoveFromWishlist(r.Context(), productID); err != nil {
		h.renderError(w, h.page("Избранное", "wishlist"), err)
		return
	}
	http.Redirect(w, r, "/wishlist", http.StatusSeeOther)
}

// pathID - числовой параметр пути; значение вне диапазона int дает 400
func (h *Handler) pathID(w http.ResponseWriter, r *http.Request, name, current string) (int, bool) {
	id, err := strconv.Atoi(mux.Vars(r)[name])
	if err != nil {
		data := h.page("Неверный запрос", current)
		data.Error = "Неверный идентификатор"
		h.render(w, http.StatusBadRequest, data)
		return 0, false
	}
	return id, true
}
