// Package wiring registers all Graft nodes for the application.
package wiring

import (
	// Register adapter nodes.
	_ "go.trai.ch/press/internal/adapters/cas"
	_ "go.trai.ch/press/internal/adapters/config"
	_ "go.trai.ch/press/internal/adapters/devserver"
	_ "go.trai.ch/press/internal/adapters/esbuild"
	_ "go.trai.ch/press/internal/adapters/fs"
	_ "go.trai.ch/press/internal/adapters/includer"
	_ "go.trai.ch/press/internal/adapters/logger"
	_ "go.trai.ch/press/internal/adapters/minify"
	_ "go.trai.ch/press/internal/adapters/sass"
	_ "go.trai.ch/press/internal/adapters/shell"
	_ "go.trai.ch/press/internal/adapters/sprite"
	_ "go.trai.ch/press/internal/adapters/watcher"
	// Register app nodes.
	_ "go.trai.ch/press/internal/app"
)
