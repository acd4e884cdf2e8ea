package commands

import (
	"context"
	"fmt"
	"path/filepath"

	"github.com/rs/zerolog"

	"github.com/unilife-dev/unilife/internal/cli/auth"
	"github.com/unilife-dev/unilife/internal/cli/cache"
	"github.com/unilife-dev/unilife/internal/cli/client"
	"github.com/unilife-dev/unilife/internal/cli/config"
	"github.com/unilife-dev/unilife/internal/cli/portalselect"
	"github.com/unilife-dev/unilife/internal/cli/session"
	"github.com/unilife-dev/unilife/internal/cli/userconfig"
	"github.com/unilife-dev/unilife/internal/logger"
)

// appContext bundles everything a command needs to talk to one portal
type appContext struct {
	portal *config.Portal
	store  session.Store
	api    *client.Client
	auth   *auth.Manager
	log    zerolog.Logger
}

// newAppContext loads config, resolves the portal and wires the store,
// client and session manager. The persisted session is screened locally
// (expired token → cleared) before the command runs.
func newAppContext(ctx context.Context, portalAlias string) (*appContext, error) {
	cfg, err := config.LoadFromCurrentDir()
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w\nRun 'unilife init' to create a configuration file", err)
	}

	logger.Init(cfg.LogLevel, cfg.LogFormat)
	log := logger.GetLogger()

	portal, err := portalselect.ResolvePortal(cfg, portalAlias)
	if err != nil {
		return nil, err
	}

	if portal.URL == "" {
		return nil, fmt.Errorf("portal URL is empty. Please edit %s and add a valid portal URL", config.ConfigFileName)
	}

	stateDir, err := userconfig.GetConfigDir()
	if err != nil {
		return nil, err
	}

	store := session.NewFileStore(filepath.Join(stateDir, "session.json"))
	api := client.New(portal.URL, portal.Key(), store)
	manager := auth.New(portal.Key(), store, api, log)

	manager.Bootstrap(ctx, false)

	return &appContext{
		portal: portal,
		store:  store,
		api:    api,
		auth:   manager,
		log:    log,
	}, nil
}

// openCache opens the local read cache. Cache trouble is logged and the
// command proceeds without one.
func (a *appContext) openCache() *cache.Cache {
	stateDir, err := userconfig.GetConfigDir()
	if err != nil {
		a.log.Warn().Err(err).Msg("cache disabled")
		return nil
	}

	c, err := cache.Open(filepath.Join(stateDir, "cache.db"))
	if err != nil {
		a.log.Warn().Err(err).Msg("cache disabled")
		return nil
	}
	return c
}

// requireView evaluates the view gate for the current session and turns a
// non-allow decision into a user-facing error
func requireView(manager *auth.Manager, requireAdmin bool) error {
	decision := auth.Evaluate(manager.Snapshot(), requireAdmin)

	switch decision.Verdict {
	case auth.VerdictAllow:
		return nil
	case auth.VerdictLoading:
		return fmt.Errorf("a login is still in progress, try again")
	}

	switch decision.RedirectTo {
	case auth.RouteAdminLogin:
		return fmt.Errorf("admin access requires login. Run 'unilife login --admin' first")
	case auth.RouteHome:
		return fmt.Errorf("admin access required")
	default:
		return fmt.Errorf("not authenticated. Run 'unilife login' first")
	}
}
