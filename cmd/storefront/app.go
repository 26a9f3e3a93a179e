package main

import (
	"context"
	"fmt"
	"os"

	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus"
	"go.uber.org/zap"

	"storefront/config"
	"storefront/internal/apiclient"
	"storefront/internal/handler"
	"storefront/internal/notify"
	"storefront/internal/router"
	"storefront/internal/service"
	"storefront/internal/storage"
	"storefront/internal/store"
	"storefront/pkg/logger"
)

// app - собранное состояние клиента для одной команды
type app struct {
	cfg      *config.Config
	log      *zap.Logger
	storage  storage.Storage
	client   *apiclient.Client
	registry *prometheus.Registry
	router   *router.Router

	session  *store.Session
	cart     *store.Cart
	products *store.Products
	wishlist *store.Wishlist
	// flash - уведомления для локальной витрины, только в режиме serve
	flash *notify.Recorder
}

// overrides - значения флагов, которые заменяют переменные окружения
type overrides struct {
	apiURL  string
	storage string
	verbose bool
	// shell - команда запускает локальную витрину
	shell bool
}

func newApp(ctx context.Context, o overrides, n notify.Notifier) (*app, error) {
	// Загружаем .env файл
	envErr := godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		return nil, fmt.Errorf("ошибка загрузки конфигурации: %w", err)
	}
	if o.apiURL != "" {
		cfg.API.BaseURL = o.apiURL
	}
	if o.storage != "" {
		cfg.Storage.Driver = o.storage
	}
	if o.verbose {
		cfg.Log.Level = "debug"
	}

	log, err := logger.New(cfg.Log.Level, cfg.Server.Env)
	if err != nil {
		return nil, err
	}
	if envErr != nil && !os.IsNotExist(envErr) {
		log.Warn("файл .env не прочитан", zap.Error(envErr))
	}

	st, err := storage.Open(ctx, cfg.Storage, log)
	if err != nil {
		return nil, fmt.Errorf("ошибка открытия хранилища: %w", err)
	}

	rt, err := router.New(router.DefaultRoutes())
	if err != nil {
		st.Close()
		return nil, err
	}

	a := &app{
		cfg:      cfg,
		log:      log,
		storage:  st,
		registry: prometheus.NewRegistry(),
		router:   rt,
	}

	a.client = apiclient.New(apiclient.Config{
		BaseURL:   cfg.API.BaseURL,
		Timeout:   cfg.API.Timeout,
		RateLimit: cfg.API.RateLimit,
		RateBurst: cfg.API.RateBurst,
	},
		apiclient.WithTokenSource(func() string { return a.session.Token() }),
		apiclient.WithLogger(log),
		apiclient.WithMetrics(apiclient.NewMetrics(a.registry)),
	)

	if o.shell {
		a.flash = &notify.Recorder{}
		n = notify.Multi{n, notify.NewLog(log), a.flash}
	}

	a.session = store.NewSession(ctx, service.NewAuthService(a.client), st, n, log)
	a.cart = store.NewCart(service.NewCartService(a.client), log)
	a.products = store.NewProducts(service.NewProductService(a.client), log)
	a.wishlist = store.NewWishlist(service.NewWishlistService(a.client), log)

	log.Debug("клиент готов",
		zap.String("api", a.client.BaseURL()),
		zap.String("storage", cfg.Storage.Driver),
		zap.Bool("authenticated", a.session.IsAuthenticated()))
	return a, nil
}

func (a *app) handler() *handler.Handler {
	return handler.NewHandler(handler.Stores{
		Session:  a.session,
		Cart:     a.cart,
		Products: a.products,
		Wishlist: a.wishlist,
		Flash:    a.flash,
	}, a.router, a.registry, a.log)
}

// enter - проход через охранника навигации перед командой, привязанной к маршруту
func (a *app) enter(path string) (router.Navigation, error) {
	nav, err := a.router.Navigate(path, a.session)
	if err != nil {
		return router.Navigation{}, err
	}
	if !nav.Allowed {
		if nav.Route.Name == router.RouteLogin {
			return nav, fmt.Errorf("страница %s доступна только после входа: выполните storefront login", path)
		}
		return nav, fmt.Errorf("страница %s недоступна, перенаправление на %s", path, nav.Redirect)
	}
	return nav, nil
}

func (a *app) close() {
	if err := a.storage.Close(); err != nil {
		a.log.Warn("хранилище закрыто с ошибкой", zap.Error(err))
	}
	_ = a.log.Sync()
}
