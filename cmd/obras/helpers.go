package main

import (
	"context"
	"fmt"

	"github.com/spf13/viper"

	"github.com/nbourbon/admin-obras-sub001/internal/api"
	"github.com/nbourbon/admin-obras-sub001/internal/common"
	"github.com/nbourbon/admin-obras-sub001/internal/config"
	"github.com/nbourbon/admin-obras-sub001/internal/project"
	"github.com/nbourbon/admin-obras-sub001/internal/session"
	"github.com/nbourbon/admin-obras-sub001/internal/storage"
)

// app bundles the long-lived services every command needs: the local
// state store, the API client, and the session and project stores built
// on top of them.
type app struct {
	store    *storage.Store
	api      *api.Client
	session  *session.Manager
	selector *project.Selector
}

// initApp wires the application services. The caller must Close it.
func initApp(ctx context.Context) (*app, error) {
	apiURL := viper.GetString("api.url")
	if apiURL == "" {
		return nil, fmt.Errorf("%w: set api.url in config or pass --api-url", common.ErrMissingConfig)
	}

	dbPath := viper.GetString("state.path")
	if dbPath == "" {
		dbPath = config.DefaultStatePath()
	} else {
		dbPath = config.ExpandPath(dbPath)
	}

	store, err := storage.Open(dbPath)
	if err != nil {
		return nil, err
	}
	if err := store.Migrate(ctx); err != nil {
		_ = store.Close()
		return nil, fmt.Errorf("failed to migrate state database: %w", err)
	}

	client := api.New(apiURL)

	return &app{
		store:    store,
		api:      client,
		session:  session.NewManager(store, client),
		selector: project.NewSelector(client, store),
	}, nil
}

func (a *app) Close() {
	_ = a.store.Close()
}

// requireSession rehydrates the session and fails when no verified user
// is present.
func (a *app) requireSession(ctx context.Context) error {
	if err := a.session.CheckAuth(ctx); err != nil {
		return err
	}
	if !a.session.IsAuthenticated() {
		return fmt.Errorf("%w: run 'obras login' first", common.ErrNotAuthenticated)
	}
	return nil
}

// requireProject resolves the active project after establishing the
// session; commands that read or mutate project-scoped data call this.
func (a *app) requireProject(ctx context.Context) error {
	if err := a.requireSession(ctx); err != nil {
		return err
	}
	if err := a.selector.Load(ctx); err != nil {
		return err
	}
	if a.selector.Current() == nil {
		return fmt.Errorf("%w: create a project first", common.ErrNoProject)
	}
	return nil
}
