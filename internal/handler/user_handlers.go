package handler

import (
	"net/http"
	"net/url"

	"go.uber.org/zap"

	"storefront/internal/models"
	"storefront/internal/router"
)

// LoginPageHandler - страница входа
func (h *Handler) LoginPageHandler(w http.ResponseWriter, r *http.Request) {
	data := h.page("Вход", "login")
	data.Redirect = r.URL.Query().Get(router.RedirectParam)
	h.render(w, http.StatusOK, data)
}

// RegisterPageHandler - страница регистрации
func (h *Handler) RegisterPageHandler(w http.ResponseWriter, r *http.Request) {
	data := h.page("Регистрация", "register")
	data.Redirect = r.URL.Query().Get(router.RedirectParam)
	h.render(w, http.StatusOK, data)
}

// LoginHandler - POST /login, после входа возврат на исходную страницу
func (h *Handler) LoginHandler(w http.ResponseWriter, r *http.Request) {
	email := r.FormValue("email")
	h.log.Debug("🔐 Попытка входа", zap.String("email", email))

	_, err := h.stores.Session.Login(r.Context(), models.Credentials{
		Email:    email,
		Password: r.FormValue("password"),
	})
	if err != nil {
		data := h.page("Вход", "login")
		data.Redirect = r.FormValue(router.RedirectParam)
		h.renderError(w, data, err)
		return
	}

	h.redirectAfterAuth(w, r)
}

// RegisterHandler - POST /register
func (h *Handler) RegisterHandler(w http.ResponseWriter, r *http.Request) {
	_, err := h.stores.Session.Register(r.Context(), models.RegisterRequest{
		Name:     r.FormValue("name"),
		Username: r.FormValue("username"),
		Email:    r.FormValue("email"),
		Password: r.FormValue("password"),
		Phone:    r.FormValue("phone"),
	})
	if err != nil {
		data := h.page("Регистрация", "register")
		data.Redirect = r.FormValue(router.RedirectParam)
		h.renderError(w, data, err)
		return
	}

	h.redirectAfterAuth(w, r)
}

func (h *Handler) redirectAfterAuth(w http.ResponseWriter, r *http.Request) {
	target := h.router.RedirectTarget(url.Values{router.RedirectParam: {r.FormValue(router.RedirectParam)}})
	h.log.Info("✅ Вход выполнен", zap.String("user", h.stores.Session.User().DisplayName()), zap.String("redirect", target))
	http.Redirect(w, r, target, http.StatusSeeOther)
}

// LogoutHandler - выход, локальная сессия очищается
func (h *Handler) LogoutHandler(w http.ResponseWriter, r *http.Request) {
	if err := h.stores.Session.Logout(r.Context()); err != nil {
		h.log.Warn("сессия очищена не полностью", zap.Error(err))
	}
	http.Redirect(w, r, "/", http.StatusSeeOther)
}

// ProfileHandler - профиль текущего пользователя
func (h *Handler) ProfileHandler(w http.ResponseWriter, r *http.Request) {
	h.render(w, http.StatusOK, h.page("Профиль", "profile"))
}
