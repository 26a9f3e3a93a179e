package main

import (
	"fmt"
	"io"
	"sort"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"storefront/internal/router"
)

// openCmd - переход по пути через охранника, без запросов к API
var openCmd = &cobra.Command{
	Use:   "open PATH",
	Short: "Открыть страницу витрины по пути",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		nav, err := a.router.Navigate(args[0], a.session)
		if err != nil {
			return err
		}
		printNavigation(cmd.OutOrStdout(), nav)
		return nil
	},
}

func printNavigation(out io.Writer, nav router.Navigation) {
	if !nav.Allowed {
		fmt.Fprintf(out, "→ перенаправление: %s\n", nav.Redirect)
	}
	fmt.Fprintf(out, "маршрут: %s\n", nav.Route.Name)
	fmt.Fprintf(out, "представление: %s\n", nav.Route.View)
	fmt.Fprintf(out, "путь: %s\n", nav.FullPath)

	keys := make([]string, 0, len(nav.Params))
	for k := range nav.Params {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	for _, k := range keys {
		fmt.Fprintf(out, "  %s = %s\n", k, nav.Params[k])
	}
}

// routesCmd - таблица маршрутов в YAML
var routesCmd = &cobra.Command{
	Use:   "routes",
	Short: "Показать таблицу маршрутов",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return writeRoutes(cmd.OutOrStdout(), a.router.Routes())
	},
}

func writeRoutes(out io.Writer, routes []router.Route) error {
	enc := yaml.NewEncoder(out)
	enc.SetIndent(2)
	if err := enc.Encode(struct {
		Routes []router.Route `yaml:"routes"`
	}{routes}); err != nil {
		return err
	}
	return enc.Close()
}
