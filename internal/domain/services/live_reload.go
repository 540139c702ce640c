package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"

	"github.com/fallinov/prez-app/internal/domain/ports"
)

// RenderFunc is called after every re-render with its result or error
type RenderFunc func(result *RenderResult, err error)

// LiveRenderService re-renders a deck whenever its source file changes
type LiveRenderService struct {
	watcher     ports.FileWatcher
	decks       *DeckService
	logger      *slog.Logger
	mu          sync.Mutex
	watching    bool
	watchCancel context.CancelFunc
	done        chan struct{}
	request     RenderRequest
	notify      RenderFunc
}

// NewLiveRenderService creates a new live render service
func NewLiveRenderService(watcher ports.FileWatcher, decks *DeckService, logger *slog.Logger) *LiveRenderService {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}

	return &LiveRenderService{
		watcher: watcher,
		decks:   decks,
		logger:  logger.With("service", "live_render"),
	}
}

// Start watches req.DeckPath and renders on every change until Stop or ctx is done
func (s *LiveRenderService) Start(ctx context.Context, req RenderRequest, notify RenderFunc) error {
	s.mu.Lock()
	if s.watching {
		s.mu.Unlock()
		return errors.New("already watching")
	}
	s.watching = true
	s.request = req
	s.notify = notify
	s.mu.Unlock()

	watchCtx, cancel := context.WithCancel(ctx)

	events, err := s.watcher.Watch(watchCtx, req.DeckPath)
	if err != nil {
		cancel()
		s.mu.Lock()
		s.watching = false
		s.mu.Unlock()
		return fmt.Errorf("starting watcher: %w", err)
	}

	done := make(chan struct{})
	s.mu.Lock()
	s.watchCancel = cancel
	s.done = done
	s.mu.Unlock()

	go func() {
		defer close(done)
		s.handleEvents(watchCtx, events)
	}()

	return nil
}

// Stop stops watching and waits for an in-flight render to finish
func (s *LiveRenderService) Stop() error {
	s.mu.Lock()
	if !s.watching {
		s.mu.Unlock()
		return nil
	}

	cancel, done := s.watchCancel, s.done
	s.watching = false
	s.watchCancel = nil
	s.done = nil
	s.mu.Unlock()

	if cancel != nil {
		cancel()
	}
	if done != nil {
		<-done
	}

	return nil
}

// IsWatching returns whether the service is currently watching
func (s *LiveRenderService) IsWatching() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.watching
}

// handleEvents handles file change events
func (s *LiveRenderService) handleEvents(ctx context.Context, events <-chan ports.FileChangeEvent) {
	for {
		select {
		case <-ctx.Done():
			return

		case event, ok := <-events:
			if !ok {
				return
			}

			s.logger.Debug("file change detected",
				slog.String("path", event.Path),
				slog.String("type", event.Type.String()),
				slog.Time("timestamp", event.Timestamp),
			)

			if event.Type == ports.Deleted {
				s.logger.Warn("deck file removed, waiting for it to return", slog.String("path", event.Path))
				continue
			}

			s.mu.Lock()
			req, notify := s.request, s.notify
			s.mu.Unlock()

			result, err := s.decks.Render(ctx, req)
			if err != nil {
				s.logger.Error("failed to re-render deck",
					slog.String("error", err.Error()),
					slog.String("path", event.Path),
					slog.String("change_type", event.Type.String()),
				)
			}

			if notify != nil {
				notify(result, err)
			}
		}
	}
}
