package app

import (
	"context"

	"github.com/grindlemire/graft"
	"go.trai.ch/press/internal/adapters/cas"       //nolint:depguard // Wired in app layer
	"go.trai.ch/press/internal/adapters/config"    //nolint:depguard // Wired in app layer
	"go.trai.ch/press/internal/adapters/devserver" //nolint:depguard // Wired in app layer
	"go.trai.ch/press/internal/adapters/esbuild"   //nolint:depguard // Wired in app layer
	"go.trai.ch/press/internal/adapters/fs"        //nolint:depguard // Wired in app layer
	"go.trai.ch/press/internal/adapters/includer"  //nolint:depguard // Wired in app layer
	"go.trai.ch/press/internal/adapters/logger"    //nolint:depguard // Wired in app layer
	"go.trai.ch/press/internal/adapters/minify"    //nolint:depguard // Wired in app layer
	"go.trai.ch/press/internal/adapters/sass"      //nolint:depguard // Wired in app layer
	"go.trai.ch/press/internal/adapters/shell"     //nolint:depguard // Wired in app layer
	"go.trai.ch/press/internal/adapters/sprite"    //nolint:depguard // Wired in app layer
	"go.trai.ch/press/internal/adapters/watcher"   //nolint:depguard // Wired in app layer
	"go.trai.ch/press/internal/core/ports"
	"go.trai.ch/press/internal/engine/pipeline"
)

const (
	// AppNodeID is the unique identifier for the main App Graft node.
	AppNodeID graft.ID = "app.main"
	// ComponentsNodeID is the unique identifier for the App components Graft node.
	ComponentsNodeID graft.ID = "app.components"
)

func init() {
	graft.Register(graft.Node[*App]{
		ID:        AppNodeID,
		Cacheable: true,
		DependsOn: []graft.ID{
			config.NodeID,
			logger.NodeID,
			fs.ResolverNodeID,
			fs.HasherNodeID,
			cas.NodeID,
			shell.NodeID,
			includer.NodeID,
			minify.NodeID,
			sass.NodeID,
			esbuild.NodeID,
			sprite.NodeID,
			devserver.HubNodeID,
			watcher.NodeID,
		},
		Run: runAppNode,
	})

	graft.Register(graft.Node[*Components]{
		ID:        ComponentsNodeID,
		Cacheable: true,
		DependsOn: []graft.ID{
			AppNodeID,
			logger.NodeID,
		},
		Run: func(ctx context.Context) (*Components, error) {
			app, err := graft.Dep[*App](ctx)
			if err != nil {
				return nil, err
			}

			log, err := graft.Dep[ports.Logger](ctx)
			if err != nil {
				return nil, err
			}

			return &Components{App: app, Logger: log}, nil
		},
	})
}

//nolint:cyclop // one lookup per adapter
func runAppNode(ctx context.Context) (*App, error) {
	loader, err := graft.Dep[ports.ConfigLoader](ctx)
	if err != nil {
		return nil, err
	}

	var deps pipeline.Deps

	if deps.Logger, err = graft.Dep[ports.Logger](ctx); err != nil {
		return nil, err
	}
	if deps.Resolver, err = graft.Dep[ports.InputResolver](ctx); err != nil {
		return nil, err
	}
	if deps.Hasher, err = graft.Dep[ports.Hasher](ctx); err != nil {
		return nil, err
	}
	if deps.Store, err = graft.Dep[ports.ImageStore](ctx); err != nil {
		return nil, err
	}
	if deps.Executor, err = graft.Dep[ports.Executor](ctx); err != nil {
		return nil, err
	}
	if deps.Includer, err = graft.Dep[ports.Includer](ctx); err != nil {
		return nil, err
	}
	if deps.Minifier, err = graft.Dep[ports.Minifier](ctx); err != nil {
		return nil, err
	}
	if deps.Sass, err = graft.Dep[*sass.Compiler](ctx); err != nil {
		return nil, err
	}
	if deps.Bundler, err = graft.Dep[ports.Bundler](ctx); err != nil {
		return nil, err
	}
	if deps.Sprites, err = graft.Dep[ports.SpriteBuilder](ctx); err != nil {
		return nil, err
	}

	hub, err := graft.Dep[*devserver.Hub](ctx)
	if err != nil {
		return nil, err
	}
	w, err := graft.Dep[ports.Watcher](ctx)
	if err != nil {
		return nil, err
	}

	return New(loader, deps, hub, w), nil
}
