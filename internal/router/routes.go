package router

// Meta - ограничения доступа маршрута
type Meta struct {
	RequiresAuth  bool `yaml:"requiresAuth,omitempty" json:"requires_auth,omitempty"`
	Guest         bool `yaml:"guest,omitempty" json:"guest,omitempty"`
	RequiresAdmin bool `yaml:"requiresAdmin,omitempty" json:"requires_admin,omitempty"`
}

// Route - путь, уникальное имя и представление
type Route struct {
	Path string `yaml:"path" json:"path"`
	Name string `yaml:"name" json:"name"`
	View string `yaml:"view" json:"view"`
	Meta Meta   `yaml:"meta,omitempty" json:"meta"`
}

// Имена маршрутов, на которые ссылается охранник
const (
	RouteHome  = "home"
	RouteLogin = "login"
)

// RedirectParam - параметр запроса с исходным путем для возврата после входа
const RedirectParam = "redirect"

// DefaultRoutes - таблица маршрутов витрины
func DefaultRoutes() []Route {
	return []Route{
		{Path: "/", Name: "home", View: "Home"},
		{Path: "/products", Name: "products", View: "Products"},
		{Path: "/products/{id}", Name: "product-detail", View: "ProductDetail"},
		{Path: "/cart", Name: "cart", View: "Cart", Meta: Meta{RequiresAuth: true}},
		{Path: "/checkout", Name: "checkout", View: "Checkout", Meta: Meta{RequiresAuth: true}},
		{Path: "/orders", Name: "orders", View: "Orders", Meta: Meta{RequiresAuth: true}},
		{Path: "/orders/{id}", Name: "order-detail", View: "OrderDetail", Meta: Meta{RequiresAuth: true}},
		{Path: "/profile", Name: "profile", View: "Profile", Meta: Meta{RequiresAuth: true}},
		{Path: "/wishlist", Name: "wishlist", View: "Wishlist", Meta: Meta{RequiresAuth: true}},
		{Path: "/login", Name: "login", View: "Login", Meta: Meta{Guest: true}},
		{Path: "/register", Name: "register", View: "Register", Meta: Meta{Guest: true}},
		{Path: "/vouchers", Name: "vouchers", View: "Voucher", Meta: Meta{RequiresAuth: true}},
	}
}
