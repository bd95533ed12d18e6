package util

import (
	"github.com/berfenger/beckon/internal/config"

	"go.uber.org/zap"
)

func LoadTestConfig() config.Config {
	return config.Config{
		LogLevel: zap.DebugLevel,
		Door: config.DoorConfig{
			TravelMillis:    50,
			AutoCloseMillis: 0,
			PIN:             "1234",
		},
		Port: 8080,
	}
}
