// Package logging builds the zap logger used at the effect boundary.
// Write failures there are logged and swallowed, never surfaced.
package logging

import (
	"os"
	"path/filepath"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

const logFile = ".pantry/pantry.log"

// New returns a file-backed logger under baseDir. If the log file cannot
// be opened a no-op logger is returned; logging must never break the app.
func New(baseDir string) *zap.Logger {
	path := filepath.Join(baseDir, logFile)
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return zap.NewNop()
	}
	f, err := os.OpenFile(path, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0644)
	if err != nil {
		return zap.NewNop()
	}

	encCfg := zap.NewProductionEncoderConfig()
	encCfg.EncodeTime = zapcore.ISO8601TimeEncoder
	core := zapcore.NewCore(zapcore.NewJSONEncoder(encCfg), zapcore.AddSync(f), zapcore.InfoLevel)
	return zap.New(core)
}
