package app

import (
	"context"
	"sync"

	"go.trai.ch/press/internal/adapters/devserver"
	"go.trai.ch/press/internal/core/domain"
	"go.trai.ch/press/internal/core/ports"
	"go.trai.ch/press/internal/engine/dispatcher"
)

// Session owns the watcher and the dev server of one long-running invocation.
// Stopping either side stops the other.
type Session struct {
	layout     domain.Layout
	watcher    ports.Watcher
	dispatcher *dispatcher.Dispatcher
	server     *devserver.Server
	logger     ports.Logger
	open       bool

	once    sync.Once
	stopped chan struct{}
}

// NewSession creates a Session. Nothing starts until its tasks run.
func NewSession(
	layout domain.Layout,
	watcher ports.Watcher,
	disp *dispatcher.Dispatcher,
	server *devserver.Server,
	logger ports.Logger,
	open bool,
) *Session {
	return &Session{
		layout:     layout,
		watcher:    watcher,
		dispatcher: disp,
		server:     server,
		logger:     logger,
		open:       open,
		stopped:    make(chan struct{}),
	}
}

// WatchTask watches the project and dispatches changes until stopped.
func (s *Session) WatchTask() domain.Task {
	return domain.NewFunc("watch", func(ctx context.Context) error {
		ctx, cancel := s.scope(ctx)
		defer cancel()
		defer s.Stop()

		if err := s.watcher.Start(ctx, s.layout.Root); err != nil {
			return err
		}
		s.logger.Info("Watching " + s.layout.SourceDir())
		return s.dispatcher.Serve(ctx, s.watcher.Events())
	})
}

// ServeTask serves the build directory until stopped.
func (s *Session) ServeTask() domain.Task {
	return domain.NewFunc("serve", func(ctx context.Context) error {
		ctx, cancel := s.scope(ctx)
		defer cancel()
		defer s.Stop()

		return s.server.Serve(ctx, s.open)
	})
}

// Stop ends both tasks and releases the watcher. It is safe to call more than once.
func (s *Session) Stop() {
	s.once.Do(func() {
		close(s.stopped)
		if err := s.watcher.Stop(); err != nil {
			s.logger.Warn("watcher: " + err.Error())
		}
	})
}

// Stopped is closed once Stop has been called.
func (s *Session) Stopped() <-chan struct{} {
	return s.stopped
}

// scope derives a context that is also cancelled by Stop.
func (s *Session) scope(parent context.Context) (context.Context, context.CancelFunc) {
	ctx, cancel := context.WithCancel(parent)
	go func() {
		select {
		case <-s.stopped:
			cancel()
		case <-ctx.Done():
		}
	}()
	return ctx, cancel
}
