package config

import (
	"errors"
	"regexp"

	"go.uber.org/zap/zapcore"
)

type Config struct {
	LogLevel zapcore.Level

	Door DoorConfig `mapstructure:"door"`

	Port    uint `mapstructure:"port"`
	HttpLog bool `mapstructure:"http_log"`
}

type DoorConfig struct {
	// travel time of the simulated door drive
	TravelMillis uint32 `mapstructure:"travel_millis"`
	// 0 disables auto close
	AutoCloseMillis uint32 `mapstructure:"auto_close_millis"`
	PIN             string `mapstructure:"pin"`
}

func CheckPIN(pin string) (string, error) {
	pinRegexp := regexp.MustCompile("^[0-9]{4,8}$")
	matches := pinRegexp.FindAllStringSubmatch(pin, 1)
	if len(matches) <= 0 {
		return "", errors.New("invalid pin. must be 4 to 8 digits")
	}
	return pin, nil
}
