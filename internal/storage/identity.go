package storage

import (
	"context"
	"crypto/rand"
	"crypto/sha256"
	"crypto/subtle"
	"database/sql"
	"encoding/hex"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"github.com/google/uuid"

	"github.com/mossfell/cashfall/internal/common"
	"github.com/mossfell/cashfall/internal/service"
)

// LocalIdentity implements service.Identity against the same sqlite
// database the documents live in. The current sign-in is a session token
// kept in a file under the user's config directory, so the CLI stays
// signed in across invocations.
type LocalIdentity struct {
	store     *SQLiteStorage
	tokenPath string

	mu          sync.Mutex
	subscribers map[int]func(*service.Session)
	nextSub     int
}

// NewLocalIdentity creates an identity provider backed by the given
// storage, persisting the active session token at tokenPath.
func NewLocalIdentity(store *SQLiteStorage, tokenPath string) (*LocalIdentity, error) {
	if store == nil {
		return nil, errors.New("store cannot be nil")
	}
	if err := validateString(tokenPath, "tokenPath"); err != nil {
		return nil, err
	}
	return &LocalIdentity{
		store:       store,
		tokenPath:   tokenPath,
		subscribers: make(map[int]func(*service.Session)),
	}, nil
}

// SignUp registers a new user and signs them in.
func (l *LocalIdentity) SignUp(ctx context.Context, email, password string) (*service.Session, error) {
	email = strings.ToLower(strings.TrimSpace(email))
	if err := validateCredentials(email, password); err != nil {
		return nil, err
	}

	salt, err := randomHex(16)
	if err != nil {
		return nil, fmt.Errorf("failed to generate salt: %w", err)
	}

	userID := uuid.NewString()
	_, err = l.store.db.ExecContext(ctx,
		`INSERT INTO users (id, email, password_salt, password_hash) VALUES (?, ?, ?, ?)`,
		userID, email, salt, hashPassword(salt, password))
	if err != nil {
		if strings.Contains(err.Error(), "UNIQUE") {
			return nil, common.NewUserError("An account with that email already exists", common.ErrDuplicateUser)
		}
		return nil, fmt.Errorf("failed to create user: %w", err)
	}

	return l.openSession(ctx, userID, email)
}

// SignIn verifies credentials and establishes a session.
func (l *LocalIdentity) SignIn(ctx context.Context, email, password string) (*service.Session, error) {
	email = strings.ToLower(strings.TrimSpace(email))
	if err := validateCredentials(email, password); err != nil {
		return nil, err
	}

	var userID, salt, hash string
	err := l.store.db.QueryRowContext(ctx,
		`SELECT id, password_salt, password_hash FROM users WHERE email = ?`, email,
	).Scan(&userID, &salt, &hash)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, common.NewUserError("No account found for that email", common.ErrAuthFailed)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to look up user: %w", err)
	}

	if subtle.ConstantTimeCompare([]byte(hash), []byte(hashPassword(salt, password))) != 1 {
		return nil, common.NewUserError("Incorrect password", common.ErrAuthFailed)
	}

	return l.openSession(ctx, userID, email)
}

// SignOut removes the active session, if any, and notifies subscribers.
func (l *LocalIdentity) SignOut(ctx context.Context) error {
	token, err := l.readToken()
	if err == nil && token != "" {
		if _, dbErr := l.store.db.ExecContext(ctx, `DELETE FROM sessions WHERE token = ?`, token); dbErr != nil {
			return fmt.Errorf("failed to remove session: %w", dbErr)
		}
	}
	if rmErr := os.Remove(l.tokenPath); rmErr != nil && !os.IsNotExist(rmErr) {
		return fmt.Errorf("failed to clear session token: %w", rmErr)
	}
	l.notify(nil)
	return nil
}

// CurrentSession resolves the persisted token to a session, or
// common.ErrNoSession when nobody is signed in.
func (l *LocalIdentity) CurrentSession(ctx context.Context) (*service.Session, error) {
	token, err := l.readToken()
	if err != nil || token == "" {
		return nil, common.ErrNoSession
	}

	var userID, email string
	err = l.store.db.QueryRowContext(ctx,
		`SELECT u.id, u.email FROM sessions s JOIN users u ON u.id = s.user_id WHERE s.token = ?`,
		token,
	).Scan(&userID, &email)
	if errors.Is(err, sql.ErrNoRows) {
		// Stale token file; treat as signed out.
		_ = os.Remove(l.tokenPath)
		return nil, common.ErrNoSession
	}
	if err != nil {
		return nil, fmt.Errorf("failed to resolve session: %w", err)
	}

	return &service.Session{UserID: userID, Email: email}, nil
}

// Subscribe registers a session-change callback and returns an unsubscribe
// func.
func (l *LocalIdentity) Subscribe(fn func(*service.Session)) func() {
	l.mu.Lock()
	defer l.mu.Unlock()
	id := l.nextSub
	l.nextSub++
	l.subscribers[id] = fn
	return func() {
		l.mu.Lock()
		defer l.mu.Unlock()
		delete(l.subscribers, id)
	}
}

func (l *LocalIdentity) openSession(ctx context.Context, userID, email string) (*service.Session, error) {
	token := uuid.NewString()
	if _, err := l.store.db.ExecContext(ctx,
		`INSERT INTO sessions (token, user_id) VALUES (?, ?)`, token, userID); err != nil {
		return nil, fmt.Errorf("failed to create session: %w", err)
	}

	if err := os.MkdirAll(filepath.Dir(l.tokenPath), 0700); err != nil {
		return nil, fmt.Errorf("failed to create session directory: %w", err)
	}
	if err := os.WriteFile(l.tokenPath, []byte(token), 0600); err != nil {
		return nil, fmt.Errorf("failed to persist session token: %w", err)
	}

	session := &service.Session{UserID: userID, Email: email}
	l.notify(session)
	return session, nil
}

func (l *LocalIdentity) notify(session *service.Session) {
	l.mu.Lock()
	fns := make([]func(*service.Session), 0, len(l.subscribers))
	for _, fn := range l.subscribers {
		fns = append(fns, fn)
	}
	l.mu.Unlock()

	for _, fn := range fns {
		fn(session)
	}
}

func (l *LocalIdentity) readToken() (string, error) {
	data, err := os.ReadFile(l.tokenPath)
	if err != nil {
		return "", err
	}
	return strings.TrimSpace(string(data)), nil
}

func validateCredentials(email, password string) error {
	if email == "" || !strings.Contains(email, "@") {
		return common.NewUserError("Please provide a valid email address", common.ErrAuthFailed)
	}
	if len(password) < 8 {
		return common.NewUserError("Password must be at least 8 characters", common.ErrAuthFailed)
	}
	return nil
}

func hashPassword(salt, password string) string {
	sum := sha256.Sum256([]byte(salt + ":" + password))
	return hex.EncodeToString(sum[:])
}

func randomHex(n int) (string, error) {
	buf := make([]byte, n)
	if _, err := rand.Read(buf); err != nil {
		return "", err
	}
	return hex.EncodeToString(buf), nil
}
