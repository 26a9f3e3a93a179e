package router

import (
	"net/url"
)

// SessionState - то, что охраннику нужно знать о сессии
type SessionState interface {
	IsAuthenticated() bool
	IsAdmin() bool
}

// Decision - результат проверки перехода
type Decision struct {
	Allowed bool
	// RedirectName - имя маршрута для перенаправления
	RedirectName string
	// Query - параметры перенаправления (redirect для входа)
	Query url.Values
}

// Guard - проверка перед каждым переходом, правила применяются по порядку
func Guard(to Route, fullPath string, session SessionState) Decision {
	authenticated := session != nil && session.IsAuthenticated()

	switch {
	case to.Meta.RequiresAuth && !authenticated:
		return Decision{
			RedirectName: RouteLogin,
			Query:        url.Values{RedirectParam: []string{fullPath}},
		}
	case to.Meta.Guest && authenticated:
		return Decision{RedirectName: RouteHome}
	case to.Meta.RequiresAdmin && !(session != nil && session.IsAdmin()):
		return Decision{RedirectName: RouteHome}
	default:
		return Decision{Allowed: true}
	}
}

// Navigation - итог перехода: открытый маршрут или адрес перенаправления
type Navigation struct {
	Match
	Allowed  bool
	Redirect string
}

// Navigate - находит маршрут и применяет охранника.
// При перенаправлении Match указывает на маршрут назначения.
func (r *Router) Navigate(fullPath string, session SessionState) (Navigation, error) {
	match, err := r.Resolve(fullPath)
	if err != nil {
		return Navigation{}, err
	}

	decision := Guard(match.Route, match.FullPath, session)
	if decision.Allowed {
		return Navigation{Match: match, Allowed: true}, nil
	}

	target, err := r.URL(decision.RedirectName)
	if err != nil {
		return Navigation{}, err
	}
	if len(decision.Query) > 0 {
		target += "?" + decision.Query.Encode()
	}

	redirected, err := r.Resolve(target)
	if err != nil {
		return Navigation{}, err
	}
	return Navigation{Match: redirected, Redirect: target}, nil
}

// RedirectTarget - куда вернуться после входа: значение redirect, если это локальный путь
func (r *Router) RedirectTarget(query url.Values) string {
	target := query.Get(RedirectParam)
	if target == "" || target[0] != '/' || (len(target) > 1 && (target[1] == '/' || target[1] == '\\')) {
		home, _ := r.URL(RouteHome)
		return home
	}
	if _, err := r.Resolve(target); err != nil {
		home, _ := r.URL(RouteHome)
		return home
	}
	return target
}
