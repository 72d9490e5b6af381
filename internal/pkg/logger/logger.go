package logger

import (
	"io"
	"os"
	"strings"
	"time"

	"github.com/GnanaJothi-79/elite-device-boutique/internal/constants"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

// Setup 設定全域 logger
// debug/development 用 console 格式，其餘輸出 json
func Setup(env string, level string) zerolog.Logger {
	return SetupWithWriter(os.Stdout, env, level)
}

func SetupWithWriter(w io.Writer, env string, level string) zerolog.Logger {
	zerolog.TimeFieldFormat = time.RFC3339Nano

	lvl, err := zerolog.ParseLevel(strings.ToLower(strings.TrimSpace(level)))
	if err != nil || level == "" {
		lvl = zerolog.InfoLevel
	}
	zerolog.SetGlobalLevel(lvl)

	out := w
	switch constants.ENV(env) {
	case constants.Debug, constants.Dev:
		out = zerolog.ConsoleWriter{Out: w, TimeFormat: time.RFC3339}
	}

	logger := zerolog.New(out).With().Timestamp().Str("service", "elite-device-boutique").Logger()
	log.Logger = logger
	return logger
}
