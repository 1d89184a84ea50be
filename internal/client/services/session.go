// Package services contains the application services of the siniestros
// console: session management and bootstrap, catalog loading, incident
// queries, and the multi-step submission sequence.
package services

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"sync"

	"github.com/Loth-Lorien/SiniestrosAPI-sub000/internal/client/client"
	"github.com/Loth-Lorien/SiniestrosAPI-sub000/internal/client/models"
	"github.com/Loth-Lorien/SiniestrosAPI-sub000/internal/client/repositories/localstate"
	"github.com/Loth-Lorien/SiniestrosAPI-sub000/internal/common"
	"github.com/Loth-Lorien/SiniestrosAPI-sub000/internal/dbx"
	"github.com/Loth-Lorien/SiniestrosAPI-sub000/internal/logging"
)

// SessionState tracks what the store knows about authentication.
type SessionState string

const (
	// StateUnknown holds until the bootstrapper reaches a verdict.
	StateUnknown SessionState = "unknown"
	// StateAuthenticated means a session exists in memory and both records
	// exist in local state.
	StateAuthenticated SessionState = "authenticated"
	// StateAnonymous means no session; persisted records may still exist if
	// bootstrap was merely inconclusive.
	StateAnonymous SessionState = "anonymous"
)

// SessionStore holds the current authenticated identity. It is the single
// writer of session state: the CLI only ever reads through Current, and all
// mutation goes through Login, Logout, or the bootstrapper's rehydrate.
type SessionStore struct {
	mu      sync.RWMutex
	state   SessionState
	session *models.Session

	client client.Client
	db     *sql.DB
	log    logging.Logger
}

// NewSessionStore constructs a store bound to the API client and the local
// state database. The initial state is Unknown until bootstrap decides.
func NewSessionStore(apiClient client.Client, db *sql.DB, log logging.Logger) *SessionStore {
	return &SessionStore{
		state:  StateUnknown,
		client: apiClient,
		db:     db,
		log:    log,
	}
}

func (s *SessionStore) repo(db dbx.DBTX) localstate.Repository {
	return localstate.NewSQLiteRepository(db)
}

// Login authenticates against the API with HTTP Basic credentials. On
// success it persists the credential and identity records atomically and
// transitions to Authenticated. A 401 from the probe surfaces as
// common.ErrInvalidCredentials and leaves the state Anonymous; a network
// failure surfaces as client.ErrUnavailable.
func (s *SessionStore) Login(ctx context.Context, username, password string) (*models.Session, error) {
	users, err := s.client.Login(ctx, username, password)
	if err != nil {
		if errors.Is(err, client.ErrUnauthorized) {
			s.markAnonymous()
			return nil, common.ErrInvalidCredentials
		}
		return nil, err
	}

	session := &models.Session{
		Identity:    resolveIdentity(username, users),
		Credentials: models.Credentials{Username: username, Password: password},
	}

	if err := s.persist(ctx, session); err != nil {
		return nil, fmt.Errorf("persisting session: %w", err)
	}

	s.mu.Lock()
	s.session = session
	s.state = StateAuthenticated
	s.mu.Unlock()

	s.log.Info(ctx, "session established",
		"user", session.Identity.Username, "role", session.Identity.Role)
	return session, nil
}

// persist writes both session records in one transaction so the store never
// observes partial presence that it wrote itself.
func (s *SessionStore) persist(ctx context.Context, session *models.Session) error {
	credData, err := json.Marshal(session.Credentials)
	if err != nil {
		return err
	}
	identityData, err := json.Marshal(session.Identity)
	if err != nil {
		return err
	}

	return dbx.WithTx(ctx, s.db, nil, func(ctx context.Context, tx dbx.DBTX) error {
		repo := s.repo(tx)
		if err := repo.Set(ctx, localstate.KeyCredentials, credData); err != nil {
			return err
		}
		return repo.Set(ctx, localstate.KeyUserData, identityData)
	})
}

// Logout clears both persisted records and drops the in-memory session.
// It always succeeds from the caller's perspective and is idempotent.
func (s *SessionStore) Logout(ctx context.Context) error {
	err := dbx.WithTx(ctx, s.db, nil, func(ctx context.Context, tx dbx.DBTX) error {
		repo := s.repo(tx)
		if err := repo.Delete(ctx, localstate.KeyCredentials); err != nil {
			return err
		}
		return repo.Delete(ctx, localstate.KeyUserData)
	})
	if err != nil {
		s.log.Warn(ctx, "clearing persisted session failed", "error", err)
	}

	s.mu.Lock()
	hadSession := s.session != nil
	s.session = nil
	s.state = StateAnonymous
	s.mu.Unlock()

	if hadSession {
		s.log.Info(ctx, "session cleared")
	}
	return nil
}

// Current returns the in-memory session or nil. It never performs I/O.
func (s *SessionStore) Current() *models.Session {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.session
}

// State reports the store's current verdict.
func (s *SessionStore) State() SessionState {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.state
}

// BasicCredentials is the credentials provider handed to the REST client.
func (s *SessionStore) BasicCredentials() (models.Credentials, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.session == nil {
		return models.Credentials{}, false
	}
	return s.session.Credentials, true
}

// HandleUnauthorized is the REST client's 401 hook: the server no longer
// accepts our credentials, so the session is cleared before the error
// reaches the caller.
func (s *SessionStore) HandleUnauthorized(ctx context.Context) {
	if s.Current() == nil {
		return
	}
	s.log.Warn(ctx, "authorization expired, clearing session")
	_ = s.Logout(ctx)
}

// markAnonymous records a "no session" verdict without touching persisted
// data. Only Logout and an observed 401 may clear the records.
func (s *SessionStore) markAnonymous() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.session = nil
	s.state = StateAnonymous
}

// rehydrate attempts to restore a session from persisted records. It
// returns true when both records were present and parsed; false when either
// is absent or unreadable, which the bootstrapper treats as "not yet
// decided" rather than "logged out".
func (s *SessionStore) rehydrate(ctx context.Context) (bool, error) {
	repo := s.repo(s.db)

	credData, err := repo.Get(ctx, localstate.KeyCredentials)
	if err != nil {
		return false, err
	}
	identityData, err := repo.Get(ctx, localstate.KeyUserData)
	if err != nil {
		return false, err
	}
	if credData == nil || identityData == nil {
		return false, nil
	}

	var creds models.Credentials
	if err := json.Unmarshal(credData, &creds); err != nil {
		s.log.Warn(ctx, "persisted credentials unreadable", "error", err)
		return false, nil
	}
	var identity models.Identity
	if err := json.Unmarshal(identityData, &identity); err != nil {
		s.log.Warn(ctx, "persisted identity unreadable", "error", err)
		return false, nil
	}

	s.mu.Lock()
	s.session = &models.Session{Identity: identity, Credentials: creds}
	s.state = StateAuthenticated
	s.mu.Unlock()

	s.log.Info(ctx, "session restored",
		"user", identity.Username, "role", identity.Role)
	return true, nil
}

// resolveIdentity builds the identity record from the authenticated user
// listing. When the username is not listed the identity degrades to a
// minimal record with an operator role, matching the original console.
func resolveIdentity(username string, users []models.User) models.Identity {
	for _, u := range users {
		if strings.EqualFold(u.Username, username) {
			return models.Identity{
				ID:          u.ID,
				Username:    u.Username,
				DisplayName: u.Username,
				Role:        roleForLevel(u.LevelID),
			}
		}
	}
	return models.Identity{
		ID:          0,
		Username:    username,
		DisplayName: username,
		Role:        "operador",
	}
}

// roleForLevel maps the server's numeric user level to a role name.
func roleForLevel(level int) string {
	switch level {
	case 1:
		return "administrador"
	case 2:
		return "coordinador"
	default:
		return "operador"
	}
}
