// Package config provides configuration helpers for go-haptic commands.
package config

import (
	"os"
	"strconv"
)

// Default demo configuration.
const (
	DefaultHTTPPort  = "8080"
	DefaultFrameRate = 60
	DefaultLogLevel  = "info"
)

// HTTPPort returns the dashboard listen port from HAPTIC_HTTP_PORT.
// Falls back to DefaultHTTPPort if not set.
func HTTPPort() string {
	if port := os.Getenv("HAPTIC_HTTP_PORT"); port != "" {
		return port
	}
	return DefaultHTTPPort
}

// BridgeAddr returns the device bridge address from BRIDGE_ADDR,
// e.g. "ws://192.168.68.80:9001/ws/device". Empty means no bridge:
// the demo runs against the in-process simulated device.
func BridgeAddr() string {
	return os.Getenv("BRIDGE_ADDR")
}

// FrameRate returns the render loop rate in Hz from FRAME_RATE_HZ.
// Falls back to DefaultFrameRate if unset or unparsable.
func FrameRate() int {
	if v := os.Getenv("FRAME_RATE_HZ"); v != "" {
		if hz, err := strconv.Atoi(v); err == nil && hz > 0 {
			return hz
		}
	}
	return DefaultFrameRate
}

// LogLevel returns the log level from LOG_LEVEL or the default.
func LogLevel() string {
	if lvl := os.Getenv("LOG_LEVEL"); lvl != "" {
		return lvl
	}
	return DefaultLogLevel
}
