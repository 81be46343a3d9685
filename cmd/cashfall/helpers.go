package main

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/spf13/viper"

	"github.com/mossfell/cashfall/internal/config"
	"github.com/mossfell/cashfall/internal/session"
	"github.com/mossfell/cashfall/internal/storage"
)

// initStorage opens the database and brings the schema up to date.
func initStorage(ctx context.Context) (*storage.SQLiteStorage, error) {
	dbPath := viper.GetString("database.path")
	if dbPath == "" {
		dbPath = config.DefaultDatabasePath()
	} else {
		dbPath = config.ExpandPath(dbPath)
	}

	store, err := storage.NewSQLiteStorage(dbPath)
	if err != nil {
		return nil, err
	}

	if err := store.Migrate(ctx); err != nil {
		return nil, fmt.Errorf("failed to run migrations: %w", err)
	}

	return store, nil
}

// initIdentity builds the local identity provider on the shared database.
func initIdentity(store *storage.SQLiteStorage) (*storage.LocalIdentity, error) {
	tokenPath := viper.GetString("session.token_path")
	if tokenPath == "" {
		tokenPath = config.DefaultSessionTokenPath()
	} else {
		tokenPath = config.ExpandPath(tokenPath)
	}
	return storage.NewLocalIdentity(store, tokenPath)
}

// initSession wires storage, identity, and the session manager for the
// currently signed-in user. The returned cleanup flushes any pending save
// and closes the database; call it via defer.
func initSession(ctx context.Context) (*session.Manager, func(), error) {
	store, err := initStorage(ctx)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to initialize storage: %w", err)
	}

	identity, err := initIdentity(store)
	if err != nil {
		_ = store.Close()
		return nil, nil, err
	}

	sess, err := identity.CurrentSession(ctx)
	if err != nil {
		_ = store.Close()
		return nil, nil, fmt.Errorf("sign in first with 'cashfall auth signin': %w", err)
	}

	mgr := session.NewManager(store, session.SystemClock{}, sess.UserID)
	if err := mgr.Load(ctx); err != nil {
		_ = store.Close()
		return nil, nil, fmt.Errorf("failed to load state: %w", err)
	}

	cleanup := func() {
		if flushErr := mgr.Flush(context.Background()); flushErr != nil {
			slog.Error("save failed; your last change was not persisted", "error", flushErr)
		}
		if closeErr := store.Close(); closeErr != nil {
			slog.Error("failed to close storage", "error", closeErr)
		}
	}
	return mgr, cleanup, nil
}
