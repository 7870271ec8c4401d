// Package ports defines the core interfaces for the application.
package ports

import "go.trai.ch/press/internal/core/domain"

// ConfigLoader defines the interface for loading the project configuration.
//
//go:generate mockgen -source=config_loader.go -destination=mocks/mock_config_loader.go -package=mocks
type ConfigLoader interface {
	// Load discovers press.yaml from cwd upwards and returns the resolved configuration.
	// A missing file yields the defaults rooted at cwd.
	Load(cwd string) (*domain.Config, error)
}
