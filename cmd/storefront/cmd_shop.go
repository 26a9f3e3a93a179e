package main

import (
	"fmt"
	"io"
	"net/url"
	"strconv"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/spf13/cobra"

	"storefront/internal/models"
)

func printTable(out io.Writer, headers []string, rows [][]string) {
	t := table.New().
		Border(lipgloss.NormalBorder()).
		Headers(headers...).
		Rows(rows...)
	fmt.Fprintln(out, t)
}

func money(v float64) string {
	return strconv.FormatFloat(v, 'f', 2, 64)
}

func intArg(args []string, i int, name string) (int, error) {
	v, err := strconv.Atoi(args[i])
	if err != nil {
		return 0, fmt.Errorf("%s должен быть числом: %q", name, args[i])
	}
	return v, nil
}

// productsCmd - каталог
var productsCmd = &cobra.Command{
	Use:   "products",
	Short: "Каталог товаров",
}

var productsListCmd = &cobra.Command{
	Use:   "list",
	Short: "Список товаров",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		if _, err := a.enter("/products"); err != nil {
			return err
		}
		products, err := a.products.FetchProducts(cmd.Context())
		if err != nil {
			return err
		}

		rows := make([][]string, 0, len(products))
		for _, p := range products {
			rows = append(rows, []string{strconv.Itoa(p.ID), p.Name, p.Category, money(p.Price)})
		}
		printTable(cmd.OutOrStdout(), []string{"ID", "Название", "Категория", "Цена"}, rows)
		return nil
	},
}

var productsShowCmd = &cobra.Command{
	Use:   "show ID",
	Short: "Карточка товара",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		nav, err := a.enter("/products/" + url.PathEscape(args[0]))
		if err != nil {
			return err
		}
		p, err := a.products.FetchProductByID(cmd.Context(), nav.Params["id"])
		if err != nil {
			return err
		}

		out := cmd.OutOrStdout()
		fmt.Fprintf(out, "%s (#%d)\n", p.Name, p.ID)
		fmt.Fprintf(out, "Цена: %s\n", money(p.Price))
		if p.Description != "" {
			fmt.Fprintln(out, p.Description)
		}
		if len(p.Variants) > 0 {
			rows := make([][]string, 0, len(p.Variants))
			for _, v := range p.Variants {
				rows = append(rows, []string{strconv.Itoa(v.ID), v.Size, v.Color, money(v.Price), strconv.Itoa(v.Stock)})
			}
			printTable(out, []string{"Вариант", "Размер", "Цвет", "Цена", "Остаток"}, rows)
		}
		return nil
	},
}

// cartCmd - корзина
var cartCmd = &cobra.Command{
	Use:   "cart",
	Short: "Корзина",
}

var (
	addProduct  int
	addVariant  int
	addQuantity int
)

func showCart(cmd *cobra.Command) error {
	if err := a.cart.FetchCart(cmd.Context()); err != nil {
		return err
	}
	printCart(cmd.OutOrStdout(), a.cart.Items(), a.cart.Count(), a.cart.Total())
	return nil
}

func printCart(out io.Writer, items []models.CartItem, count int, total float64) {
	rows := make([][]string, 0, len(items))
	for _, item := range items {
		rows = append(rows, []string{
			strconv.Itoa(item.ID),
			strconv.Itoa(item.ProductID),
			strconv.Itoa(item.VariantID),
			item.Name,
			strconv.Itoa(item.Quantity),
			money(item.UnitPrice),
			money(item.Subtotal()),
		})
	}
	printTable(out, []string{"ID", "Товар", "Вариант", "Название", "Кол-во", "Цена", "Сумма"}, rows)
	fmt.Fprintf(out, "Товаров: %d, итого: %s\n", count, money(total))
}

var cartShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Показать корзину",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		if _, err := a.enter("/cart"); err != nil {
			return err
		}
		return showCart(cmd)
	},
}

var cartAddCmd = &cobra.Command{
	Use:   "add",
	Short: "Добавить товар в корзину",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		if _, err := a.enter("/cart"); err != nil {
			return err
		}
		err := a.cart.AddToCart(cmd.Context(), models.AddCartItemRequest{
			ProductID: addProduct,
			VariantID: addVariant,
			Quantity:  addQuantity,
		})
		if err != nil {
			return err
		}
		printCart(cmd.OutOrStdout(), a.cart.Items(), a.cart.Count(), a.cart.Total())
		return nil
	},
}

var cartUpdateCmd = &cobra.Command{
	Use:   "update ITEM_ID QUANTITY",
	Short: "Изменить количество",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		if _, err := a.enter("/cart"); err != nil {
			return err
		}
		itemID, err := intArg(args, 0, "ITEM_ID")
		if err != nil {
			return err
		}
		quantity, err := intArg(args, 1, "QUANTITY")
		if err != nil {
			return err
		}
		if err := a.cart.UpdateCartItem(cmd.Context(), itemID, quantity); err != nil {
			return err
		}
		printCart(cmd.OutOrStdout(), a.cart.Items(), a.cart.Count(), a.cart.Total())
		return nil
	},
}

var cartRemoveCmd = &cobra.Command{
	Use:   "remove ITEM_ID",
	Short: "Удалить позицию",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		if _, err := a.enter("/cart"); err != nil {
			return err
		}
		itemID, err := intArg(args, 0, "ITEM_ID")
		if err != nil {
			return err
		}
		// локальный список нужен, чтобы удаление отразилось без повторной загрузки
		if err := a.cart.FetchCart(cmd.Context()); err != nil {
			return err
		}
		if err := a.cart.RemoveFromCart(cmd.Context(), itemID); err != nil {
			return err
		}
		printCart(cmd.OutOrStdout(), a.cart.Items(), a.cart.Count(), a.cart.Total())
		return nil
	},
}

// wishlistCmd - избранное
var wishlistCmd = &cobra.Command{
	Use:   "wishlist",
	Short: "Избранное",
}

func printWishlist(out io.Writer, items []models.WishlistItem) {
	rows := make([][]string, 0, len(items))
	for _, item := range items {
		name := ""
		if item.Product != nil {
			name = item.Product.Name
		}
		rows = append(rows, []string{strconv.Itoa(item.ID), strconv.Itoa(item.ProductID), name})
	}
	printTable(out, []string{"ID", "Товар", "Название"}, rows)
}

var wishlistShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Показать избранное",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		if _, err := a.enter("/wishlist"); err != nil {
			return err
		}
		if err := a.wishlist.FetchWishlist(cmd.Context()); err != nil {
			return err
		}
		printWishlist(cmd.OutOrStdout(), a.wishlist.Items())
		return nil
	},
}

var wishlistAddCmd = &cobra.Command{
	Use:   "add PRODUCT_ID",
	Short: "Добавить товар в избранное",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		if _, err := a.enter("/wishlist"); err != nil {
			return err
		}
		productID, err := intArg(args, 0, "PRODUCT_ID")
		if err != nil {
			return err
		}
		if err := a.wishlist.AddToWishlist(cmd.Context(), productID); err != nil {
			return err
		}
		printWishlist(cmd.OutOrStdout(), a.wishlist.Items())
		return nil
	},
}

var wishlistRemoveCmd = &cobra.Command{
	Use:   "remove PRODUCT_ID",
	Short: "Удалить товар из избранного",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		if _, err := a.enter("/wishlist"); err != nil {
			return err
		}
		productID, err := intArg(args, 0, "PRODUCT_ID")
		if err != nil {
			return err
		}
		if err := a.wishlist.FetchWishlist(cmd.Context()); err != nil {
			return err
		}
		if err := a.wishlist.RemoveFromWishlist(cmd.Context(), productID); err != nil {
			return err
		}
		printWishlist(cmd.OutOrStdout(), a.wishlist.Items())
		return nil
	},
}

func init() {
	productsCmd.AddCommand(productsListCmd, productsShowCmd)

	cartAddCmd.Flags().IntVar(&addProduct, "product", 0, "ID товара")
	cartAddCmd.Flags().IntVar(&addVariant, "variant", 0, "ID варианта")
	cartAddCmd.Flags().IntVar(&addQuantity, "quantity", 1, "количество")
	_ = cartAddCmd.MarkFlagRequired("product")
	cartCmd.AddCommand(cartShowCmd, cartAddCmd, cartUpdateCmd, cartRemoveCmd)

	wishlistCmd.AddCommand(wishlistShowCmd, wishlistAddCmd, wishlistRemoveCmd)
}
