package main

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"storefront/internal/auth"
	"storefront/internal/models"
)

var (
	authEmail    string
	authPassword string
	authName     string
	authPhone    string
)

// loginCmd - вход
var loginCmd = &cobra.Command{
	Use:   "login",
	Short: "Войти в магазин",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		if _, err := a.enter("/login"); err != nil {
			return err
		}
		resp, err := a.session.Login(cmd.Context(), models.Credentials{
			Email:    authEmail,
			Password: authPassword,
		})
		if err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "Пользователь: %s (%s)\n", resp.User.DisplayName(), resp.User.Role)
		return nil
	},
}

// registerCmd - регистрация
var registerCmd = &cobra.Command{
	Use:   "register",
	Short: "Зарегистрироваться",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		if _, err := a.enter("/register"); err != nil {
			return err
		}
		resp, err := a.session.Register(cmd.Context(), models.RegisterRequest{
			Name:     authName,
			Email:    authEmail,
			Password: authPassword,
			Phone:    authPhone,
		})
		if err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "Пользователь: %s\n", resp.User.DisplayName())
		return nil
	},
}

// logoutCmd - выход
var logoutCmd = &cobra.Command{
	Use:   "logout",
	Short: "Выйти и удалить сохраненную сессию",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return a.session.Logout(cmd.Context())
	},
}

// whoamiCmd - текущая сессия
var whoamiCmd = &cobra.Command{
	Use:   "whoami",
	Short: "Показать текущего пользователя",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		out := cmd.OutOrStdout()
		if !a.session.IsAuthenticated() {
			fmt.Fprintln(out, "Вход не выполнен")
			return nil
		}

		user := a.session.User()
		if user != nil {
			fmt.Fprintf(out, "Пользователь: %s <%s>\n", user.DisplayName(), user.Email)
			fmt.Fprintf(out, "Роль: %s\n", user.Role)
		}
		if exp, ok := auth.ExpiresAt(a.session.Token()); ok {
			state := "действует"
			if time.Now().After(exp) {
				state = "истек"
			}
			fmt.Fprintf(out, "Токен до: %s (%s)\n", exp.Local().Format(time.RFC1123), state)
		}
		return nil
	},
}

func init() {
	for _, cmd := range []*cobra.Command{loginCmd, registerCmd} {
		cmd.Flags().StringVar(&authEmail, "email", "", "email")
		cmd.Flags().StringVar(&authPassword, "password", "", "пароль")
		_ = cmd.MarkFlagRequired("email")
		_ = cmd.MarkFlagRequired("password")
	}
	registerCmd.Flags().StringVar(&authName, "name", "", "имя")
	registerCmd.Flags().StringVar(&authPhone, "phone", "", "телефон")
}
