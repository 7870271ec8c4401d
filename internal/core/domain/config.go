package domain

import (
	"net"
	"strconv"
	"time"
)

const (
	// DefaultHost is the dev server host.
	DefaultHost = "localhost"

	// DefaultPort is the dev server port.
	DefaultPort = 3000

	// DefaultDebounce is the watch coalescing window.
	DefaultDebounce = 50 * time.Millisecond
)

// Config is the resolved project configuration.
type Config struct {
	Layout Layout
	Server ServerConfig
	Watch  WatchConfig
	Tools  Tools
}

// ServerConfig configures the development server.
type ServerConfig struct {
	Host string
	Port int
	Open bool
}

// Address returns the host:port the server listens on.
func (s ServerConfig) Address() string {
	return net.JoinHostPort(s.Host, strconv.Itoa(s.Port))
}

// URL returns the browsable address of the server.
func (s ServerConfig) URL() string {
	return "http://" + s.Address() + "/"
}

// WatchConfig configures the watch dispatcher.
type WatchConfig struct {
	Debounce time.Duration
}

// Tools names the external binaries the pipeline shells out to.
type Tools struct {
	Sass    string
	OptiPNG string
	CJPEG   string
	CWebP   string
}

// DefaultTools returns binaries looked up on PATH.
func DefaultTools() Tools {
	return Tools{
		Sass:    "sass",
		OptiPNG: "optipng",
		CJPEG:   "cjpeg",
		CWebP:   "cwebp",
	}
}

// DefaultConfig returns the configuration used when no press.yaml exists.
func DefaultConfig(root string) *Config {
	return &Config{
		Layout: NewLayout(root),
		Server: ServerConfig{
			Host: DefaultHost,
			Port: DefaultPort,
		},
		Watch: WatchConfig{
			Debounce: DefaultDebounce,
		},
		Tools: DefaultTools(),
	}
}
