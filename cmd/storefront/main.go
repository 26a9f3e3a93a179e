package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"storefront/internal/notify"
)

var (
	flags overrides
	a     *app
)

// rootCmd - базовая команда
var rootCmd = &cobra.Command{
	Use:   "storefront",
	Short: "Клиент интернет-магазина",
	Long: `storefront - клиент REST API магазина.

Сессия (пользователь и токен) сохраняется в локальном хранилище и
восстанавливается при следующем запуске. Команды, привязанные к
закрытым страницам (корзина, избранное, профиль), проходят через тот же
охранник навигации, что и локальная витрина (storefront serve).`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		flags.shell = cmd.Annotations[annotationShell] == "true"

		var err error
		a, err = newApp(cmd.Context(), flags, notify.NewConsole(cmd.ErrOrStderr()))
		return err
	},
}

func init() {
	rootCmd.PersistentFlags().StringVar(&flags.apiURL, "api", "", "адрес API (по умолчанию API_BASE_URL)")
	rootCmd.PersistentFlags().StringVar(&flags.storage, "storage", "", "драйвер хранилища: sqlite, postgres, redis, memory")
	rootCmd.PersistentFlags().BoolVarP(&flags.verbose, "verbose", "v", false, "подробный лог")

	rootCmd.AddCommand(registerCmd, loginCmd, logoutCmd, whoamiCmd)
	rootCmd.AddCommand(productsCmd, cartCmd, wishlistCmd)
	rootCmd.AddCommand(openCmd, routesCmd, serveCmd)
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := execute(ctx, os.Args[1:]); err != nil {
		fmt.Fprintln(os.Stderr, "Ошибка:", err)
		stop()
		os.Exit(1)
	}
}

// execute - запуск команды; приложение закрывается и после ошибки команды
func execute(ctx context.Context, args []string) error {
	rootCmd.SetArgs(args)
	err := rootCmd.ExecuteContext(ctx)
	if a != nil {
		a.close()
		a = nil
	}
	return err
}
