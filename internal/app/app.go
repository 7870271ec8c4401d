// Package app implements the application layer for press.
package app

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"text/tabwriter"

	"go.trai.ch/press/internal/adapters/detector"
	"go.trai.ch/press/internal/adapters/devserver"
	"go.trai.ch/press/internal/adapters/linear"
	"go.trai.ch/press/internal/adapters/telemetry"
	"go.trai.ch/press/internal/core/domain"
	"go.trai.ch/press/internal/core/ports"
	"go.trai.ch/press/internal/engine/dispatcher"
	"go.trai.ch/press/internal/engine/pipeline"
	"go.trai.ch/press/internal/engine/runner"
	"go.trai.ch/press/internal/ui/output"
	"go.trai.ch/press/internal/ui/style"
	"go.trai.ch/zerr"
)

// App represents the main application logic.
type App struct {
	configLoader ports.ConfigLoader
	deps         pipeline.Deps
	logger       ports.Logger
	hub          *devserver.Hub
	watcher      ports.Watcher

	output      io.Writer
	mode        func() detector.Mode
	openBrowser func(url string) error
}

// New creates a new App instance. hub receives every reload notification.
func New(
	loader ports.ConfigLoader,
	deps pipeline.Deps,
	hub *devserver.Hub,
	watcher ports.Watcher,
) *App {
	deps.Reloader = hub
	return &App{
		configLoader: loader,
		deps:         deps,
		logger:       deps.Logger,
		hub:          hub,
		watcher:      watcher,
		output:       os.Stderr,
		mode:         detector.DetectEnvironment,
	}
}

// WithOutput redirects task progress. This is primarily used for testing.
func (a *App) WithOutput(w io.Writer) *App {
	a.output = w
	return a
}

// WithMode overrides environment detection. This is primarily used for testing.
func (a *App) WithMode(mode detector.Mode) *App {
	a.mode = func() detector.Mode { return mode }
	return a
}

// WithBrowser replaces the function that opens the dev server URL.
func (a *App) WithBrowser(open func(url string) error) *App {
	a.openBrowser = open
	return a
}

// RunOptions configuration for the Run method.
type RunOptions struct {
	// Open opens the dev server in a browser, as does server.open in press.yaml.
	Open bool
	// Quiet suppresses task progress output.
	Quiet bool
}

// Run executes the named tasks in order. No names means "default".
func (a *App) Run(ctx context.Context, targetNames []string, opts RunOptions) error {
	cfg, err := a.load()
	if err != nil {
		return err
	}
	if len(targetNames) == 0 {
		targetNames = []string{pipeline.TaskDefault}
	}

	var tracer ports.Tracer = telemetry.NoOpTracer{}
	if !opts.Quiet {
		otelTracer := telemetry.NewOTelTracer("press", telemetry.NewBridge(linear.NewRenderer(a.output), pipeline.GroupAssets, pipeline.GroupLive))
		defer func() {
			_ = otelTracer.Shutdown(context.WithoutCancel(ctx))
		}()
		tracer = otelTracer
	}
	defer a.closeCompiler()

	sched := runner.NewRunner(tracer)
	reg, err := a.registry(cfg, sched.Trace, opts)
	if err != nil {
		return err
	}

	if err := sched.Run(ctx, reg, targetNames); err != nil {
		var failure *domain.TaskFailure
		if errors.As(err, &failure) {
			if opts.Quiet {
				// Without progress lines the failure is only visible here.
				a.logger.Error(failure)
			}
			return errors.Join(domain.ErrBuildExecutionFailed, err)
		}
		return err
	}
	return nil
}

// Tasks writes the registered task names with their descriptions to w.
func (a *App) Tasks(_ context.Context, w io.Writer) error {
	cfg, err := a.load()
	if err != nil {
		return err
	}
	reg, err := a.registry(cfg, nil, RunOptions{})
	if err != nil {
		return err
	}

	out := output.New(w)
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	for _, info := range reg.Infos() {
		name := out.String(info.Name).Foreground(out.Color(string(style.Teal))).Bold().String()
		_, _ = fmt.Fprintf(tw, "%s\t%s\n", name, info.Description)
	}
	return tw.Flush()
}

// CleanOptions configuration for the Clean method.
type CleanOptions struct {
	// All also removes the .press state directory.
	All bool
}

// Clean removes the build directory and optionally the state directory.
func (a *App) Clean(_ context.Context, options CleanOptions) error {
	cfg, err := a.load()
	if err != nil {
		return err
	}

	var errs error
	remove := func(path string, name string) {
		a.logger.Info(fmt.Sprintf("removing %s...", name))
		if err := os.RemoveAll(path); err != nil {
			errs = errors.Join(errs, zerr.With(zerr.Wrap(err, domain.ErrCleanFailed.Error()), "path", path))
			return
		}
		a.logger.Info(fmt.Sprintf("removed %s", name))
	}

	remove(cfg.Layout.OutputDir(), "build directory")
	if options.All {
		remove(cfg.Layout.StateDir(), "state directory")
	}

	return errs
}

func (a *App) load() (*domain.Config, error) {
	cfg, err := a.configLoader.Load(".")
	if err != nil {
		return nil, zerr.Wrap(err, "failed to load configuration")
	}
	return cfg, nil
}

// registry builds every task for cfg, including the long-running default task.
func (a *App) registry(cfg *domain.Config, decorate pipeline.Decorator, opts RunOptions) (*domain.Registry, error) {
	if decorate == nil {
		decorate = func(t domain.Task) domain.Task { return t }
	}

	p := pipeline.New(cfg, a.deps)
	reg, err := p.Registry(decorate)
	if err != nil {
		return nil, err
	}
	bindings, err := p.Bindings(reg, decorate)
	if err != nil {
		return nil, err
	}
	disp, err := dispatcher.New(cfg.Layout, bindings, cfg.Watch.Debounce, a.deps.Hasher, a.logger)
	if err != nil {
		return nil, err
	}

	server := devserver.NewServer(cfg.Server, cfg.Layout.OutputDir(), a.hub, a.logger)
	if a.openBrowser != nil {
		server.OpenBrowser = a.openBrowser
	}
	open := (opts.Open || cfg.Server.Open) && a.mode().Interactive()
	session := NewSession(cfg.Layout, a.watcher, disp, server, a.logger, open)

	build, err := reg.Lookup(pipeline.TaskBuild)
	if err != nil {
		return nil, err
	}
	live := decorate(domain.Parallel(pipeline.GroupLive,
		decorate(session.WatchTask()),
		decorate(session.ServeTask()),
	))
	if err := reg.Add(decorate(domain.Series(pipeline.TaskDefault, build, live)),
		"Build, then watch and serve with live reload"); err != nil {
		return nil, err
	}
	return reg, nil
}

func (a *App) closeCompiler() {
	if c, ok := a.deps.Sass.(io.Closer); ok {
		if err := c.Close(); err != nil {
			a.logger.Warn("sass: " + err.Error())
		}
	}
}
