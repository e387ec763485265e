package logging

import (
	"context"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zapcore"
)

func TestParseEnv(t *testing.T) {
	req := require.New(t)
	req.Equal(EnvProd, ParseEnv("Production"))
	req.Equal(EnvStage, ParseEnv(" staging "))
	req.Equal(EnvDev, ParseEnv(""))
	req.Equal(EnvDev, ParseEnv("local"))
}

func TestFromContextFallsBackToDefault(t *testing.T) {
	req := require.New(t)
	base := Init(Config{Env: EnvDev, Backend: BackendStd})

	req.Same(base, FromContext(context.Background()))

	scoped := base.With("req_id", "abc")
	req.Same(scoped, FromContext(WithLogger(context.Background(), scoped)))
}

func TestInitZapBackend(t *testing.T) {
	l := Init(Config{Env: EnvProd, Backend: BackendZap, Service: "test"})
	require.NotNil(t, l)
	require.Same(t, l, slog.Default())
}

func TestToZapLevel(t *testing.T) {
	req := require.New(t)
	req.Equal(zapcore.DebugLevel, toZapLevel(slog.LevelDebug))
	req.Equal(zapcore.InfoLevel, toZapLevel(slog.LevelInfo))
	req.Equal(zapcore.WarnLevel, toZapLevel(slog.LevelWarn))
	req.Equal(zapcore.ErrorLevel, toZapLevel(slog.LevelError))
}
