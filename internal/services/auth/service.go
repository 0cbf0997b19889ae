package auth

import (
	"context"
	"crypto/rand"
	"encoding/base64"
	"errors"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"github.com/dmaraujo/treinos/internal/dependencies/clock"
	"github.com/dmaraujo/treinos/internal/model"
	"github.com/dmaraujo/treinos/internal/storage"
)

// Errors
var (
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrInvalidSession     = errors.New("invalid or expired session")
)

// MinPasswordLength is the minimum accepted password length
const MinPasswordLength = 4

// Session represents an authenticated session
type Session struct {
	Token     string
	UserID    model.UserID
	User      model.User
	CreatedAt time.Time
	ExpiresAt time.Time
}

// Service handles accounts and session management
type Service struct {
	storage storage.Storage
	clock   clock.Clock

	mu       sync.RWMutex
	sessions map[string]*Session

	sessionDuration time.Duration
	adminCharacter  string
}

// Config holds configuration for the auth service
type Config struct {
	SessionDuration time.Duration
	// AdminCharacter is the character name that registers with admin
	// privileges
	AdminCharacter string
}

// DefaultConfig returns default auth configuration
func DefaultConfig() Config {
	return Config{
		SessionDuration: 24 * time.Hour,
		AdminCharacter:  "White Widow",
	}
}

// New creates a new auth service
func New(storage storage.Storage, clock clock.Clock, cfg Config) *Service {
	if cfg.SessionDuration == 0 {
		cfg.SessionDuration = DefaultConfig().SessionDuration
	}
	if cfg.AdminCharacter == "" {
		cfg.AdminCharacter = DefaultConfig().AdminCharacter
	}
	return &Service{
		storage:         storage,
		clock:           clock,
		sessions:        make(map[string]*Session),
		sessionDuration: cfg.SessionDuration,
		adminCharacter:  cfg.AdminCharacter,
	}
}

// Register creates an account and its session. The character name is
// also registered as a tracked player so the new member shows up in
// standings right away.
func (s *Service) Register(ctx context.Context, characterName, password string, vocation model.Vocation) (*Session, error) {
	characterName = strings.TrimSpace(characterName)
	if characterName == "" {
		return nil, model.ErrEmptyCharacterName
	}
	if len(password) < MinPasswordLength {
		return nil, model.ErrPasswordTooShort
	}
	if !vocation.Valid() {
		return nil, model.ErrInvalidVocation
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}

	now := s.clock.Now()

	user := &model.User{
		ID:            model.UserID(uuid.NewString()),
		CharacterName: characterName,
		PasswordHash:  string(hash),
		Vocation:      vocation,
		IsAdmin:       characterName == s.adminCharacter,
		CreatedAt:     now,
		UpdatedAt:     now,
	}
	if err := s.storage.CreateUser(ctx, user); err != nil {
		return nil, err
	}

	// The player record may already exist from an earlier report or
	// payment; that is fine
	player := &model.Player{
		ID:            model.PlayerID(uuid.NewString()),
		CharacterName: characterName,
		CreatedAt:     now,
	}
	if err := s.storage.CreatePlayer(ctx, player); err != nil && !errors.Is(err, model.ErrPlayerExists) {
		return nil, err
	}

	return s.createSession(user), nil
}

// Login authenticates a user and creates a session
func (s *Service) Login(ctx context.Context, characterName, password string) (*Session, error) {
	user, err := s.storage.GetUserByName(ctx, strings.TrimSpace(characterName))
	if err != nil {
		if errors.Is(err, model.ErrUserNotFound) {
			return nil, ErrInvalidCredentials
		}
		return nil, err
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		return nil, ErrInvalidCredentials
	}

	return s.createSession(user), nil
}

// ValidateSession checks if a session token is valid and returns the session
func (s *Service) ValidateSession(token string) (*Session, error) {
	s.mu.RLock()
	session, ok := s.sessions[token]
	s.mu.RUnlock()

	if !ok {
		return nil, ErrInvalidSession
	}

	if s.clock.Now().After(session.ExpiresAt) {
		s.mu.Lock()
		delete(s.sessions, token)
		s.mu.Unlock()
		return nil, ErrInvalidSession
	}

	return session, nil
}

// InvalidateSession removes a session
func (s *Service) InvalidateSession(token string) {
	s.mu.Lock()
	delete(s.sessions, token)
	s.mu.Unlock()
}

// GetUser returns the user for a session token
func (s *Service) GetUser(token string) (*model.User, error) {
	session, err := s.ValidateSession(token)
	if err != nil {
		return nil, err
	}
	return &session.User, nil
}

// createSession creates a new session for a user
func (s *Service) createSession(user *model.User) *Session {
	token := generateToken()
	now := s.clock.Now()

	session := &Session{
		Token:     token,
		UserID:    user.ID,
		User:      *user,
		CreatedAt: now,
		ExpiresAt: now.Add(s.sessionDuration),
	}

	s.mu.Lock()
	s.sessions[token] = session
	s.mu.Unlock()

	return session
}

// generateToken generates a random session token
func generateToken() string {
	b := make([]byte, 16)
	_, _ = rand.Read(b)
	return "sess_" + base64.RawURLEncoding.EncodeToString(b)
}

// CleanExpiredSessions removes expired sessions (call periodically)
func (s *Service) CleanExpiredSessions() {
	now := s.clock.Now()
	s.mu.Lock()
	defer s.mu.Unlock()

	for token, session := range s.sessions {
		if now.After(session.ExpiresAt) {
			delete(s.sessions, token)
		}
	}
}
