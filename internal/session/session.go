// Package session implements the admin gate: a credential check that
// issues an expiring signed token, validation of that token per request,
// and logout through a revocation table.
package session

import (
	"context"
	"crypto/rand"
	"crypto/subtle"
	"encoding/hex"
	"errors"
	"fmt"
	"strings"
	"time"

	"gallery-app/internal/domain/access"

	"github.com/golang-jwt/jwt/v5"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

const roleAdmin = "admin"

var (
	ErrInvalidCredential = errors.New("invalid credential")
	ErrInvalidToken      = errors.New("invalid or expired session")
)

// Revocation marks a token id as logged out until the token would have expired anyway.
type Revocation struct {
	TokenID   string    `gorm:"primaryKey;size:64"`
	ExpiresAt time.Time `gorm:"not null;index"`
	CreatedAt time.Time
}

func (Revocation) TableName() string { return "revoked_sessions" }

// Session is a validated admin session.
type Session struct {
	ID        string
	State     access.State
	ExpiresAt time.Time
}

// Config holds the admin secret and signing parameters.
type Config struct {
	AdminPassword     string // plaintext, compared in constant time
	AdminPasswordHash string // bcrypt; takes precedence when set
	Secret            []byte
	TTL               time.Duration
}

type claims struct {
	Role string `json:"role"`
	jwt.RegisteredClaims
}

// Manager is safe for concurrent use.
type Manager struct {
	db  *gorm.DB
	cfg Config
	now func() time.Time
}

func NewManager(db *gorm.DB, cfg Config) (*Manager, error) {
	if db == nil {
		return nil, fmt.Errorf("db is nil")
	}
	if len(cfg.Secret) == 0 {
		return nil, fmt.Errorf("signing secret is empty")
	}
	if cfg.AdminPassword == "" && cfg.AdminPasswordHash == "" {
		return nil, fmt.Errorf("admin credential not configured")
	}
	if cfg.TTL <= 0 {
		cfg.TTL = 24 * time.Hour
	}
	return &Manager{db: db, cfg: cfg, now: time.Now}, nil
}

// Login checks the credential and issues a token.
func (m *Manager) Login(ctx context.Context, credential string) (string, Session, error) {
	if !m.checkCredential(credential) {
		return "", Session{}, ErrInvalidCredential
	}

	id, err := newTokenID()
	if err != nil {
		return "", Session{}, err
	}
	now := m.now()
	exp := now.Add(m.cfg.TTL)

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims{
		Role: roleAdmin,
		RegisteredClaims: jwt.RegisteredClaims{
			ID:        id,
			Subject:   roleAdmin,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(exp),
		},
	})
	signed, err := token.SignedString(m.cfg.Secret)
	if err != nil {
		return "", Session{}, fmt.Errorf("sign token: %w", err)
	}

	return signed, Session{ID: id, State: access.StateAdmin, ExpiresAt: exp}, nil
}

// Validate parses a token and checks it has not been revoked.
func (m *Manager) Validate(ctx context.Context, tokenString string) (Session, error) {
	tokenString = strings.TrimSpace(tokenString)
	if tokenString == "" {
		return Session{}, ErrInvalidToken
	}

	var c claims
	token, err := jwt.ParseWithClaims(tokenString, &c, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return m.cfg.Secret, nil
	}, jwt.WithTimeFunc(m.now), jwt.WithExpirationRequired())
	if err != nil || !token.Valid || c.Role != roleAdmin || c.ID == "" {
		return Session{}, ErrInvalidToken
	}

	var n int64
	if err := m.db.WithContext(ctx).Model(&Revocation{}).Where("token_id = ?", c.ID).Count(&n).Error; err != nil {
		return Session{}, fmt.Errorf("check revocation: %w", err)
	}
	if n > 0 {
		return Session{}, ErrInvalidToken
	}

	return Session{ID: c.ID, State: access.StateAdmin, ExpiresAt: c.ExpiresAt.Time}, nil
}

// Logout revokes the session. Revoking twice is not an error.
func (m *Manager) Logout(ctx context.Context, s Session) error {
	if s.ID == "" {
		return nil
	}
	return m.db.WithContext(ctx).
		Clauses(clause.OnConflict{DoNothing: true}).
		Create(&Revocation{TokenID: s.ID, ExpiresAt: s.ExpiresAt}).Error
}

// PruneRevocations drops revocations whose tokens have expired.
func (m *Manager) PruneRevocations(ctx context.Context) (int64, error) {
	res := m.db.WithContext(ctx).Where("expires_at < ?", m.now()).Delete(&Revocation{})
	return res.RowsAffected, res.Error
}

func (m *Manager) checkCredential(credential string) bool {
	if credential == "" {
		return false
	}
	if m.cfg.AdminPasswordHash != "" {
		return bcrypt.CompareHashAndPassword([]byte(m.cfg.AdminPasswordHash), []byte(credential)) == nil
	}
	return subtle.ConstantTimeCompare([]byte(credential), []byte(m.cfg.AdminPassword)) == 1
}

func newTokenID() (string, error) {
	b := make([]byte, 16)
	if _, err := rand.Read(b); err != nil {
		return "", fmt.Errorf("generate token id: %w", err)
	}
	return hex.EncodeToString(b), nil
}
