package main

import (
	"context"
	"fmt"
	"os"
	"os/exec"
	"os/signal"
	"path/filepath"
	"runtime"
	"syscall"
	"time"

	"campus-notify/config"
	"campus-notify/internal/api"
	apiClient "campus-notify/internal/api/client"
	"campus-notify/internal/badge"
	badgeUC "campus-notify/internal/badge/usecase"
	"campus-notify/internal/connection"
	connUC "campus-notify/internal/connection/usecase"
	"campus-notify/internal/desktop"
	"campus-notify/internal/event"
	routerUC "campus-notify/internal/router/usecase"
	"campus-notify/internal/server"
	"campus-notify/internal/session"
	"campus-notify/internal/session/credstore"
	sessionUC "campus-notify/internal/session/usecase"
	"campus-notify/internal/toast"
	"campus-notify/internal/view"
	"campus-notify/pkg/log"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Println("Failed to load config:", err)
		return
	}

	logger := log.Init(log.ZapConfig{
		Level:        cfg.Logger.Level,
		Mode:         cfg.Logger.Mode,
		Encoding:     cfg.Logger.Encoding,
		ColorEnabled: cfg.Logger.ColorEnabled,
	})

	ctx := context.Background()
	logger.Info(ctx, "Starting campus-notify agent...")

	// Credential chain: keyring, then token file, then cookie file.
	creds := credstore.New(credstore.Config{
		ServiceName: cfg.Creds.ServiceName,
		TokenFile:   cfg.Creds.TokenFile,
		CookieFile:  cfg.Creds.CookieFile,
		CookieName:  cfg.Creds.CookieName,
	}, logger)

	// A 401/403 on any authenticated call invalidates the whole session,
	// not just the credential chain. The manager is constructed right
	// after the client, so the hook resolves it lazily.
	var sessionMgr session.Manager
	portal := apiClient.New(api.Config{
		BaseURL: cfg.API.BaseURL,
		Timeout: cfg.API.Timeout,
	}, creds, logger,
		apiClient.WithUnauthorizedHook(func(hookCtx context.Context) {
			if sessionMgr == nil {
				return
			}
			if err := sessionMgr.Invalidate(hookCtx); err != nil {
				logger.Warnf(hookCtx, "session invalidation after rejected call: %v", err)
			}
		}),
	)

	sessionMgr = sessionUC.New(portal, creds, logger,
		sessionUC.WithStateFile(stateFilePath(cfg)),
	)

	// Navigation binding: no in-process handlers in the headless agent, so
	// every section falls back to opening its portal URL.
	binding, err := view.NewBinding(view.Config{
		URLs: map[event.Section]string{
			event.SectionMessages:      cfg.API.BaseURL + "/messages",
			event.SectionAnnouncements: cfg.API.BaseURL + "/announcements",
			event.SectionEnrollment:    cfg.API.BaseURL + "/enrollment",
			event.SectionGrades:        cfg.API.BaseURL + "/grades",
			event.SectionDashboard:     cfg.API.BaseURL + "/dashboard",
		},
		Opener: openURL,
	}, logger)
	if err != nil {
		logger.Fatalf(ctx, "navigation binding: %v", err)
	}

	// Resolved by the first authoritative badge state, whether it arrives
	// by push or by the post-auth poll.
	badgeSynced := view.NewGate()
	reconciler := badgeUC.New(portal, binding, logger, func(badge.State) {
		badgeSynced.Resolve()
	})

	toastMgr := toast.New(toast.NewLogPresenter(logger), reconciler, cfg.Toast.Duration, logger)

	sinks := []routerUC.NamedSink{
		{Name: "toast", Sink: toastMgr},
	}
	if cfg.Toast.DesktopEnabled {
		desktopSink := desktop.New(cfg.Toast.DesktopAppName, cfg.Toast.DesktopIconPath, logger)
		sinks = append(sinks, routerUC.NamedSink{Name: "desktop", Sink: desktopSink})
	}

	eventRouter := routerUC.New(logger, reconciler, sinks...)

	connMgr := connUC.New(connection.Config{
		URL:              cfg.Socket.URL,
		HandshakeTimeout: cfg.Socket.HandshakeTimeout,
		RetryDelay:       cfg.Socket.RetryDelay,
		BackoffBase:      cfg.Socket.BackoffBase,
		BackoffCeiling:   cfg.Socket.BackoffCeiling,
		MaxAttempts:      cfg.Socket.MaxAttempts,
		PingInterval:     cfg.Socket.PingInterval,
		PongWait:         cfg.Socket.PongWait,
		WriteWait:        cfg.Socket.WriteWait,
	}, sessionMgr, creds, eventRouter, reconciler, logger)

	if err := connMgr.Initialize(ctx); err != nil {
		logger.Warnf(ctx, "initial connect: %v", err)
	}

	go func() {
		waitCtx, cancel := context.WithTimeout(ctx, 2*time.Minute)
		defer cancel()
		if err := badgeSynced.Wait(waitCtx); err != nil {
			logger.Warn(ctx, "no badge state received within the startup window")
			return
		}
		logger.Infof(ctx, "badge synchronized: %s unread", reconciler.Snapshot().Text())
	}()

	srv := server.New(server.Config{
		Host:       cfg.Server.Host,
		Port:       cfg.Server.Port,
		Mode:       cfg.Server.Mode,
		Logger:     logger,
		Connection: connMgr,
		Reconciler: reconciler,
		Router:     eventRouter,
		API:        portal,
	})
	go func() {
		if err := srv.Start(); err != nil {
			logger.Errorf(ctx, "status server: %v", err)
		}
	}()

	// SIGHUP stands in for the page regaining visibility: the only way
	// back from the failed state.
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM, syscall.SIGHUP)
	for sig := range quit {
		if sig == syscall.SIGHUP {
			connMgr.Wake()
			continue
		}
		break
	}

	logger.Info(ctx, "Shutting down gracefully...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()

	if err := connMgr.Shutdown(shutdownCtx); err != nil {
		logger.Errorf(ctx, "connection shutdown: %v", err)
	}
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Errorf(ctx, "status server shutdown: %v", err)
	}

	logger.Info(ctx, "Agent shutdown complete")
}

// stateFilePath returns the identity fallback cache location.
func stateFilePath(cfg *config.Config) string {
	if cfg.Creds.StateFile != "" {
		return cfg.Creds.StateFile
	}
	dir, err := os.UserCacheDir()
	if err != nil {
		dir = os.TempDir()
	}
	return filepath.Join(dir, "campus-notify", "session.json")
}

// openURL is the navigation fallback: open the portal section in the
// system browser.
func openURL(ctx context.Context, url string) error {
	switch runtime.GOOS {
	case "darwin":
		return exec.CommandContext(ctx, "open", url).Start()
	case "windows":
		return exec.CommandContext(ctx, "rundll32", "url.dll,FileProtocolHandler", url).Start()
	default:
		return exec.CommandContext(ctx, "xdg-open", url).Start()
	}
}
