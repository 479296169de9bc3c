package persistence

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/vibecatcher/event-service/internal/config"
)

func TestNewPostgresRequiresDSN(t *testing.T) {
	pg, err := NewPostgres(context.Background(), config.PostgresConfig{}, zap.NewNop())
	require.Error(t, err)
	assert.Nil(t, pg)
	assert.Contains(t, err.Error(), "POSTGRES_DSN")
}

func TestNewPostgresRejectsMalformedDSN(t *testing.T) {
	cfg := config.PostgresConfig{DSN: "not a dsn ::"}
	_, err := NewPostgres(context.Background(), cfg, zap.NewNop())
	require.Error(t, err)
}
