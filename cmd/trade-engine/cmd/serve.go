package cmd

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/danielgtaylor/huma/v2"
	"github.com/danielgtaylor/huma/v2/adapters/humaecho"
	"github.com/labstack/echo/v4"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/spf13/cobra"

	"github.com/yahuti/trade-engine/internal/api/handlers"
	"github.com/yahuti/trade-engine/internal/api/middleware"
	"github.com/yahuti/trade-engine/internal/auth"
	"github.com/yahuti/trade-engine/internal/config"
	"github.com/yahuti/trade-engine/internal/dashboard"
	"github.com/yahuti/trade-engine/internal/ebay"
	"github.com/yahuti/trade-engine/internal/g2a"
	"github.com/yahuti/trade-engine/internal/market"
	"github.com/yahuti/trade-engine/internal/notify"
	"github.com/yahuti/trade-engine/internal/session"
	"github.com/yahuti/trade-engine/pkg/logger"
	domain "github.com/yahuti/trade-engine/pkg/types"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the API server and session sweeper",
	RunE:  runServe,
}

func init() {
	rootCmd.AddCommand(serveCmd)
}

func runServe(_ *cobra.Command, _ []string) error {
	cfg, err := config.Load(cfgFile)
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}

	log := logger.New(cfg.Logging.Level, cfg.Logging.Format)

	ctx := context.Background()

	store, err := session.NewPostgresStore(ctx, cfg.Session.Database.DSN())
	if err != nil {
		return fmt.Errorf("connecting to session store: %w", err)
	}
	defer store.Close()

	if err := store.Migrate(ctx); err != nil {
		return fmt.Errorf("migrating session store: %w", err)
	}

	// eBay clients: app-level client-credentials for search, user-level
	// authorization-code flow for session tokens.
	appTokens := ebay.NewOAuthTokenProvider(
		cfg.Ebay.AppID, cfg.Ebay.CertID,
		ebay.WithTokenURL(cfg.Ebay.TokenURL),
	)
	rl := ebay.NewRateLimiter(
		cfg.Ebay.RateLimit.PerSecond,
		cfg.Ebay.RateLimit.Burst,
		cfg.Ebay.RateLimit.DailyLimit,
	)
	browse := ebay.NewBrowseClient(appTokens,
		ebay.WithBrowseURL(cfg.Ebay.BrowseURL),
		ebay.WithItemURL(itemURLFrom(cfg.Ebay.BrowseURL)),
		ebay.WithMarketplace(cfg.Ebay.Marketplace),
		ebay.WithRateLimiter(rl),
	)
	finding := ebay.NewFindingClient(cfg.Ebay.AppID,
		ebay.WithFindingURL(cfg.Ebay.FindingURL),
	)
	userTokens := ebay.NewUserTokenSource(
		cfg.Ebay.AppID, cfg.Ebay.CertID,
		cfg.Ebay.OAuth.RedirectURI,
		cfg.Ebay.OAuth.Scopes,
		ebay.WithUserTokenURL(cfg.Ebay.TokenURL),
		ebay.WithAuthorizeURL(cfg.Ebay.AuthorizeURL),
	)

	g2aClient := g2a.NewProductsClient(
		cfg.G2A.APIHash, cfg.G2A.APISecret,
		g2a.WithProductsURL(cfg.G2A.ProductsURL),
	)

	// eBay tries Browse first and the legacy Finding API second; every
	// vendor adapter is then wrapped in the simulation fallback so callers
	// never see a hard vendor failure.
	ebayChain := market.NewChain(
		market.NewEbayBrowseAdapter(browse),
		market.NewEbayFindingAdapter(finding),
		log,
	)
	ebayAdapter := market.NewFallback(ebayChain, log)
	g2aAdapter := market.NewFallback(market.NewG2AAdapter(g2aClient), log)
	adapters := map[domain.Vendor]market.Adapter{
		domain.VendorEbay: ebayAdapter,
		domain.VendorG2A:  g2aAdapter,
	}

	aggregator := dashboard.New(
		ebayAdapter,
		cfg.Dashboard.Keywords,
		cfg.Dashboard.CallTimeout,
		cfg.Dashboard.Featured,
		log,
	)

	flow := auth.NewFlow(userTokens, store, log)
	secure := cfg.Ebay.Environment == config.EnvProduction
	cookies := session.NewCookieCodec(cfg.Session.CookieTTL, secure)

	var notifier notify.Notifier = notify.NewNoOpNotifier(log)
	if cfg.Notify.DiscordWebhookURL != "" {
		notifier = notify.NewDiscordNotifier(cfg.Notify.DiscordWebhookURL)
	}

	sweeper, err := auth.NewSweeper(
		flow, store,
		cfg.Schedule.RefreshSweepInterval,
		cfg.Schedule.RefreshWatermark,
		notifier,
		log,
	)
	if err != nil {
		return fmt.Errorf("creating session sweeper: %w", err)
	}

	e := echo.New()
	e.HideBanner = true
	e.HidePort = true
	e.Server.ReadTimeout = cfg.Server.ReadTimeout
	e.Server.WriteTimeout = cfg.Server.WriteTimeout

	e.Use(middleware.Recovery(log))
	e.Use(middleware.RequestLog(log))
	e.Use(middleware.Metrics())

	healthHandler := handlers.NewHealthHandler(store)
	e.GET("/healthz", healthHandler.Healthz)
	e.GET("/readyz", healthHandler.Readyz)
	e.GET("/metrics", echo.WrapHandler(promhttp.Handler()))

	oauthHandler := handlers.NewOAuthHandler(flow, cookies, secure, cfg.Server.BaseURL)
	e.GET("/auth/ebay/login", oauthHandler.Login)
	e.GET("/auth/ebay/callback", oauthHandler.Callback)
	e.GET("/auth/ebay/logout", oauthHandler.Logout)

	api := humaecho.New(e, huma.DefaultConfig("Yahuti Trade Engine", Version))
	handlers.RegisterSearchRoutes(api, handlers.NewSearchHandler(adapters))
	handlers.RegisterItemRoutes(api, handlers.NewItemHandler(ebayAdapter))
	handlers.RegisterDashboardRoutes(api, handlers.NewDashboardHandler(aggregator))
	handlers.RegisterSessionRoutes(api, handlers.NewSessionHandler(flow))
	handlers.RegisterQuotaRoutes(api, handlers.NewQuotaHandler(rl))

	sweeper.Start()

	addr := fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port)
	log.Info("starting server", "addr", addr, "environment", cfg.Ebay.Environment)

	go func() {
		if err := e.Start(addr); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Error("server error", "error", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info("shutting down server")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	<-sweeper.Stop().Done()

	if err := e.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("shutting down server: %w", err)
	}

	log.Info("server stopped")
	return nil
}

// itemURLFrom derives the Browse API item endpoint from the search endpoint.
func itemURLFrom(browseURL string) string {
	return strings.Replace(browseURL, "item_summary/search", "item/", 1)
}
