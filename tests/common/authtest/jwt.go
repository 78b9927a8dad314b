//go:build unit || e2e

package authtest

import (
	"testing"
	"time"

	"rental-engine/internal/domain/user"
	"rental-engine/internal/pkg/config"
	"rental-engine/internal/pkg/jwt"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
)

type JWTHelper struct {
	cfg config.JWTConfig
}

func NewJWTHelper(cfg config.JWTConfig) *JWTHelper {
	return &JWTHelper{cfg: cfg}
}

func (h *JWTHelper) GenerateToken(t *testing.T, userID uuid.UUID, role user.Role) string {
	t.Helper()
	duration, err := time.ParseDuration(h.cfg.Duration)
	require.NoError(t, err)
	token, err := jwt.NewService(h.cfg.Secret, duration).GenerateToken(userID, role)
	require.NoError(t, err)
	return token
}

// ActorToken issues a token for a fresh user with the given role.
func (h *JWTHelper) ActorToken(t *testing.T, role user.Role) (user.Actor, string) {
	t.Helper()
	actor := user.Actor{ID: uuid.New(), Role: role}
	return actor, h.GenerateToken(t, actor.ID, role)
}

func (h *JWTHelper) CreateExpiredToken(t *testing.T, userID uuid.UUID, role user.Role) string {
	t.Helper()
	token, err := jwt.NewService(h.cfg.Secret, time.Millisecond).GenerateToken(userID, role)
	require.NoError(t, err)
	time.Sleep(10 * time.Millisecond)
	return token
}
