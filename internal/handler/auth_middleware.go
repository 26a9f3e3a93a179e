package handler

import (
	"net/http"

	"go.uber.org/zap"

	"storefront/internal/router"
)

// requireAccess - охранник навигации для маршрута.
// returnTo - путь для параметра redirect; пустой - путь текущего запроса.
func (h *Handler) requireAccess(route router.Route, returnTo string, next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		fullPath := returnTo
		if fullPath == "" {
			fullPath = r.URL.RequestURI()
		}

		decision := router.Guard(route, fullPath, h.stores.Session)
		if decision.Allowed {
			next.ServeHTTP(w, r)
			return
		}

		target, err := h.router.URL(decision.RedirectName)
		if err != nil {
			h.log.Error("❌ Маршрут перенаправления не найден", zap.String("name", decision.RedirectName), zap.Error(err))
			http.Error(w, "Ошибка сервера", http.StatusInternalServerError)
			return
		}
		if len(decision.Query) > 0 {
			target += "?" + decision.Query.Encode()
		}

		h.log.Debug("🔐 Переход запрещен",
			zap.String("route", route.Name),
			zap.String("path", fullPath),
			zap.String("redirect", target))
		http.Redirect(w, r, target, http.StatusFound)
	})
}
