package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

// annotationShell - отметка команды, которой нужны уведомления витрины
const annotationShell = "shell"

var serveCmd = &cobra.Command{
	Use:         "serve",
	Short:       "Запустить локальную витрину",
	Args:        cobra.NoArgs,
	Annotations: map[string]string{annotationShell: "true"},
	RunE: func(cmd *cobra.Command, args []string) error {
		routes, err := a.handler().Routes()
		if err != nil {
			return err
		}

		srv := &http.Server{
			Addr:              ":" + a.cfg.Server.Port,
			Handler:           routes,
			ReadHeaderTimeout: 10 * time.Second,
		}

		errCh := make(chan error, 1)
		go func() {
			a.log.Info(fmt.Sprintf("🚀 Витрина запущена на http://localhost:%s", a.cfg.Server.Port),
				zap.String("api", a.client.BaseURL()))
			errCh <- srv.ListenAndServe()
		}()

		select {
		case err := <-errCh:
			if errors.Is(err, http.ErrServerClosed) {
				return nil
			}
			return err
		case <-cmd.Context().Done():
		}

		a.log.Info("🛑 Остановка витрины")
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		return srv.Shutdown(ctx)
	},
}
