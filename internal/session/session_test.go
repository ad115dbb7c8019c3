package session

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"gallery-app/internal/domain/access"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func openDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(filepath.Join(t.TempDir(), "s.db")), &gorm.Config{Logger: logger.Discard})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(&Revocation{}))
	sqlDB, err := db.DB()
	require.NoError(t, err)
	t.Cleanup(func() { sqlDB.Close() })
	return db
}

func newManager(t *testing.T, cfg Config) *Manager {
	t.Helper()
	if cfg.Secret == nil {
		cfg.Secret = []byte("test-secret")
	}
	m, err := NewManager(openDB(t), cfg)
	require.NoError(t, err)
	return m
}

func TestLoginAndValidate(t *testing.T) {
	m := newManager(t, Config{AdminPassword: "hunter2"})
	ctx := context.Background()

	token, s, err := m.Login(ctx, "hunter2")
	require.NoError(t, err)
	assert.NotEmpty(t, token)
	assert.Equal(t, access.StateAdmin, s.State)
	assert.WithinDuration(t, time.Now().Add(24*time.Hour), s.ExpiresAt, time.Minute)

	got, err := m.Validate(ctx, token)
	require.NoError(t, err)
	assert.Equal(t, s.ID, got.ID)
	assert.True(t, got.State.Authenticated())
}

func TestLoginRejectsWrongCredential(t *testing.T) {
	m := newManager(t, Config{AdminPassword: "hunter2"})

	for _, pw := range []string{"", "hunter", "hunter22", "HUNTER2"} {
		_, _, err := m.Login(context.Background(), pw)
		assert.ErrorIs(t, err, ErrInvalidCredential, pw)
	}
}

func TestLoginWithBcryptHash(t *testing.T) {
	hash, err := bcrypt.GenerateFromPassword([]byte("s3cret"), bcrypt.MinCost)
	require.NoError(t, err)
	m := newManager(t, Config{AdminPassword: "ignored", AdminPasswordHash: string(hash)})

	_, _, err = m.Login(context.Background(), "s3cret")
	assert.NoError(t, err)
	_, _, err = m.Login(context.Background(), "ignored")
	assert.ErrorIs(t, err, ErrInvalidCredential)
}

func TestValidateExpiry(t *testing.T) {
	m := newManager(t, Config{AdminPassword: "pw", TTL: time.Hour})
	base := time.Now()
	m.now = func() time.Time { return base }

	token, _, err := m.Login(context.Background(), "pw")
	require.NoError(t, err)

	m.now = func() time.Time { return base.Add(59 * time.Minute) }
	_, err = m.Validate(context.Background(), token)
	assert.NoError(t, err)

	m.now = func() time.Time { return base.Add(61 * time.Minute) }
	_, err = m.Validate(context.Background(), token)
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestValidateRejectsForeignTokens(t *testing.T) {
	m := newManager(t, Config{AdminPassword: "pw"})
	ctx := context.Background()

	_, err := m.Validate(ctx, "")
	assert.ErrorIs(t, err, ErrInvalidToken)
	_, err = m.Validate(ctx, "not-a-jwt")
	assert.ErrorIs(t, err, ErrInvalidToken)

	other := newManager(t, Config{AdminPassword: "pw", Secret: []byte("other-secret")})
	token, _, err := other.Login(ctx, "pw")
	require.NoError(t, err)
	_, err = m.Validate(ctx, token)
	assert.ErrorIs(t, err, ErrInvalidToken)

	userToken := jwt.NewWithClaims(jwt.SigningMethodHS256, claims{
		Role: "user",
		RegisteredClaims: jwt.RegisteredClaims{
			ID:        "abc",
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
		},
	})
	signed, err := userToken.SignedString([]byte("test-secret"))
	require.NoError(t, err)
	_, err = m.Validate(ctx, signed)
	assert.ErrorIs(t, err, ErrInvalidToken)

	noExp := jwt.NewWithClaims(jwt.SigningMethodHS256, claims{
		Role:             roleAdmin,
		RegisteredClaims: jwt.RegisteredClaims{ID: "abc"},
	})
	signed, err = noExp.SignedString([]byte("test-secret"))
	require.NoError(t, err)
	_, err = m.Validate(ctx, signed)
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestLogoutRevokes(t *testing.T) {
	m := newManager(t, Config{AdminPassword: "pw"})
	ctx := context.Background()

	token, s, err := m.Login(ctx, "pw")
	require.NoError(t, err)

	require.NoError(t, m.Logout(ctx, s))
	require.NoError(t, m.Logout(ctx, s))
	require.NoError(t, m.Logout(ctx, Session{}))

	_, err = m.Validate(ctx, token)
	assert.ErrorIs(t, err, ErrInvalidToken)

	fresh, _, err := m.Login(ctx, "pw")
	require.NoError(t, err)
	_, err = m.Validate(ctx, fresh)
	assert.NoError(t, err)
}

func TestPruneRevocations(t *testing.T) {
	m := newManager(t, Config{AdminPassword: "pw"})
	ctx := context.Background()
	now := time.Now()

	require.NoError(t, m.Logout(ctx, Session{ID: "old", ExpiresAt: now.Add(-time.Hour)}))
	require.NoError(t, m.Logout(ctx, Session{ID: "live", ExpiresAt: now.Add(time.Hour)}))

	n, err := m.PruneRevocations(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(1), n)

	var left []Revocation
	require.NoError(t, m.db.Find(&left).Error)
	require.Len(t, left, 1)
	assert.Equal(t, "live", left[0].TokenID)
}

func TestNewManagerValidation(t *testing.T) {
	db := openDB(t)
	_, err := NewManager(nil, Config{AdminPassword: "pw", Secret: []byte("s")})
	assert.Error(t, err)
	_, err = NewManager(db, Config{AdminPassword: "pw"})
	assert.Error(t, err)
	_, err = NewManager(db, Config{Secret: []byte("s")})
	assert.Error(t, err)

	m, err := NewManager(db, Config{AdminPassword: "pw", Secret: []byte("s")})
	require.NoError(t, err)
	assert.Equal(t, 24*time.Hour, m.cfg.TTL)
}
