package handler

import (
	"net/http"

	"github.com/gorilla/mux"
)

// У API заказов и купонов нет клиентских сервисов: страницы отдают только общие поля.

// OrdersHandler - список заказов
func (h *Handler) OrdersHandler(w http.ResponseWriter, r *http.Request) {
	h.render(w, http.StatusOK, h.page("Мои заказы", "orders"))
}

// OrderDetailHandler - заказ
func (h *Handler) OrderDetailHandler(w http.ResponseWriter, r *http.Request) {
	data := h.page("Заказ", "order-detail")
	data.Params = map[string]string{"id": mux.Vars(r)["id"]}
	h.render(w, http.StatusOK, data)
}

// VouchersHandler - купоны
func (h *Handler) VouchersHandler(w http.ResponseWriter, r *http.Request) {
	h.render(w, http.StatusOK, h.page("Купоны", "vouchers"))
}
