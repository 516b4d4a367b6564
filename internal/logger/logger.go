package logger

import (
	"go.elastic.co/ecszap"
	"go.uber.org/zap"
)

// New builds an ECS-compatible JSON logger writing at the given level ("debug", "info", ...).
func New(level string) (*zap.Logger, error) {
	atomic, err := zap.ParseAtomicLevel(level)
	if err != nil {
		return nil, err
	}
	config := zap.NewProductionConfig()
	config.Level = atomic
	config.EncoderConfig = ecszap.ECSCompatibleEncoderConfig(config.EncoderConfig)
	return config.Build(ecszap.WrapCoreOption(), zap.AddCaller())
}

// Nop returns a logger that discards everything, for tests and tools.
func Nop() *zap.Logger {
	return zap.NewNop()
}
