package logging

import (
	"log/slog"
	"os"
	"strings"
)

type Backend string

const (
	BackendStd Backend = "std" // text in dev, JSON otherwise
	BackendZap Backend = "zap"
)

type Env string

const (
	EnvDev   Env = "dev"
	EnvStage Env = "stage"
	EnvProd  Env = "prod"
)

// Config controls logger construction.
type Config struct {
	Service   string
	Version   string
	Env       Env
	Backend   Backend
	Level     slog.Level
	Debug     bool
	AddSource bool

	// zap sampling, per second
	SampleInitial    int
	SampleThereafter int
}

// ParseEnv normalises APP_ENV style values.
func ParseEnv(raw string) Env {
	switch strings.ToLower(strings.TrimSpace(raw)) {
	case "prod", "production":
		return EnvProd
	case "stage", "staging", "preprod":
		return EnvStage
	default:
		return EnvDev
	}
}

func detectEnv() Env {
	return ParseEnv(os.Getenv("APP_ENV"))
}
