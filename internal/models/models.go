package models

import (
	"time"

	"storefront/internal/domain"
)

// Credentials - данные для входа
type Credentials struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// RegisterRequest - данные для регистрации
type RegisterRequest struct {
	Name     string `json:"name,omitempty"`
	Username string `json:"username,omitempty"`
	Email    string `json:"email"`
	Password string `json:"password"`
	Phone    string `json:"phone,omitempty"`
}

// AuthResponse - ответ /auth/login и /auth/register
type AuthResponse struct {
	User  domain.User `json:"user"`
	Token string      `json:"token"`
}

type CartItem struct {
	ID        int     `json:"id"`
	ProductID int     `json:"product_id"`
	VariantID int     `json:"variant_id"`
	Quantity  int     `json:"quantity"`
	UnitPrice float64 `json:"unit_price"`
	Name      string  `json:"product_name,omitempty"`
	ImageURL  string  `json:"image_url,omitempty"`
}

// Subtotal - стоимость позиции
func (i CartItem) Subtotal() float64 {
	return float64(i.Quantity) * i.UnitPrice
}

// AddCartItemRequest - тело POST /cart
type AddCartItemRequest struct {
	ProductID int `json:"product_id"`
	VariantID int `json:"variant_id"`
	Quantity  int `json:"quantity"`
}

// UpdateCartItemRequest - тело PUT /cart/:itemId
type UpdateCartItemRequest struct {
	Quantity int `json:"quantity"`
}

type Product struct {
	ID          int              `json:"id"`
	Name        string           `json:"name"`
	Description string           `json:"description,omitempty"`
	Price       float64          `json:"price"`
	ImageURL    string           `json:"image_url,omitempty"`
	Category    string           `json:"category,omitempty"`
	Variants    []ProductVariant `json:"variants,omitempty"`
	CreatedAt   *time.Time       `json:"created_at,omitempty"`
}

type ProductVariant struct {
	ID    int     `json:"id"`
	Size  string  `json:"size,omitempty"`
	Color string  `json:"color,omitempty"`
	Price float64 `json:"price,omitempty"`
	Stock int     `json:"stock"`
}

type WishlistItem struct {
	ID        int      `json:"id"`
	ProductID int      `json:"product_id"`
	Product   *Product `json:"product,omitempty"`
}

// AddWishlistRequest - тело POST /wishlist
type AddWishlistRequest struct {
	ProductID int `json:"product_id"`
}

// PageData - данные представления, которые отдает локальная витрина
type PageData struct {
	Title           string            `json:"title"`
	CurrentPage     string            `json:"current_page"`
	View            string            `json:"view"`
	Params          map[string]string `json:"params,omitempty"`
	IsAuthenticated bool              `json:"is_authenticated"`
	IsAdmin         bool              `json:"is_admin"`
	User            *domain.User      `json:"user,omitempty"`
	Products        []Product         `json:"products,omitempty"`
	Product         *Product          `json:"product,omitempty"`
	CartItems       []CartItem        `json:"cart_items,omitempty"`
	CartCount       int               `json:"cart_count"`
	CartTotal       float64           `json:"cart_total"`
	Wishlist        []WishlistItem    `json:"wishlist,omitempty"`
	Redirect        string            `json:"redirect,omitempty"`
	Error           string            `json:"error,omitempty"`
	Success         string            `json:"success,omitempty"`
}
