// Package router - таблица маршрутов витрины и охранник навигации.
package router

import (
	"errors"
	"fmt"
	"net/http"
	"net/url"

	"github.com/gorilla/mux"
)

var (
	ErrRouteNotFound  = errors.New("маршрут не найден")
	ErrDuplicateRoute = errors.New("имя маршрута уже используется")
)

// Router - сопоставление путей с маршрутами
type Router struct {
	routes []Route
	byName map[string]Route
	mux    *mux.Router
}

// New - проверяет таблицу и строит сопоставитель путей
func New(routes []Route) (*Router, error) {
	r := &Router{
		routes: append([]Route(nil), routes...),
		byName: make(map[string]Route, len(routes)),
		mux:    mux.NewRouter().StrictSlash(true),
	}

	for _, route := range routes {
		if route.Name == "" {
			return nil, fmt.Errorf("маршрут %s: пустое имя", route.Path)
		}
		if _, exists := r.byName[route.Name]; exists {
			return nil, fmt.Errorf("%w: %s", ErrDuplicateRoute, route.Name)
		}
		r.byName[route.Name] = route
		r.mux.Path(route.Path).Name(route.Name)
	}

	for _, name := range []string{RouteHome, RouteLogin} {
		if _, ok := r.byName[name]; !ok {
			return nil, fmt.Errorf("в таблице нет обязательного маршрута %q", name)
		}
	}
	return r, nil
}

// Routes - копия таблицы маршрутов
func (r *Router) Routes() []Route {
	return append([]Route(nil), r.routes...)
}

// Route - маршрут по имени
func (r *Router) Route(name string) (Route, bool) {
	route, ok := r.byName[name]
	return route, ok
}

// Match - найденный маршрут и параметры пути
type Match struct {
	Route    Route
	Params   map[string]string
	FullPath string
}

// Resolve - маршрут для полного пути (с query)
func (r *Router) Resolve(fullPath string) (Match, error) {
	u, err := url.Parse(fullPath)
	if err != nil {
		return Match{}, fmt.Errorf("неверный путь %q: %w", fullPath, err)
	}
	if u.Path == "" {
		u.Path = "/"
	}

	req := &http.Request{Method: http.MethodGet, URL: u}
	var rm mux.RouteMatch
	if !r.mux.Match(req, &rm) || rm.Route == nil {
		return Match{}, fmt.Errorf("%w: %s", ErrRouteNotFound, u.Path)
	}

	return Match{
		Route:    r.byName[rm.Route.GetName()],
		Params:   rm.Vars,
		FullPath: u.RequestURI(),
	}, nil
}

// URL - путь маршрута по имени; pairs - пары ключ/значение параметров
func (r *Router) URL(name string, pairs ...string) (string, error) {
	route := r.mux.Get(name)
	if route == nil {
		return "", fmt.Errorf("%w: %s", ErrRouteNotFound, name)
	}
	u, err := route.URL(pairs...)
	if err != nil {
		return "", err
	}
	return u.Path, nil
}
