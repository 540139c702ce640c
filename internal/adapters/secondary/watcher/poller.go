package watcher

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/fallinov/prez-app/internal/domain/ports"
)

// PollingWatcher implements file watching using polling. Bursts of changes are
// coalesced into one event once the file has been quiet for the debounce period.
type PollingWatcher struct {
	interval  time.Duration
	debounce  time.Duration
	logger    *slog.Logger
	fileInfos map[string]FileInfo
	events    chan ports.FileChangeEvent
	mu        sync.RWMutex
	wg        sync.WaitGroup
	stopped   bool
	stopCh    chan struct{}
}

// FileInfo stores information about a file
type FileInfo struct {
	Size     int64
	ModTime  time.Time
	Checksum string
}

// NewPollingWatcher creates a new polling-based file watcher
func NewPollingWatcher(interval, debounce time.Duration, logger *slog.Logger) *PollingWatcher {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}

	return &PollingWatcher{
		interval:  interval,
		debounce:  debounce,
		logger:    logger,
		fileInfos: make(map[string]FileInfo),
		events:    make(chan ports.FileChangeEvent, 10),
		stopCh:    make(chan struct{}),
	}
}

// Watch starts watching a file for changes
func (w *PollingWatcher) Watch(ctx context.Context, path string) (<-chan ports.FileChangeEvent, error) {
	absPath, err := filepath.Abs(path)
	if err != nil {
		return nil, fmt.Errorf("resolving path: %w", err)
	}

	if err := w.scanFile(absPath); err != nil {
		return nil, fmt.Errorf("initial scan: %w", err)
	}

	w.mu.RLock()
	stopped := w.stopped
	w.mu.RUnlock()
	if stopped {
		return nil, fmt.Errorf("watcher stopped")
	}

	w.wg.Add(1)
	go func() {
		defer w.wg.Done()
		w.pollLoop(ctx, absPath)
	}()

	w.logger.Debug("watching file", slog.String("path", absPath), slog.Duration("interval", w.interval))

	return w.events, nil
}

// Stop stops the file watcher and closes the event channel
func (w *PollingWatcher) Stop() error {
	w.mu.Lock()
	if w.stopped {
		w.mu.Unlock()
		return nil
	}
	w.stopped = true
	close(w.stopCh)
	w.mu.Unlock()

	w.wg.Wait()
	close(w.events)

	return nil
}

// scanFile scans a file and stores its info
func (w *PollingWatcher) scanFile(path string) error {
	info, err := os.Stat(path)
	if err != nil {
		return fmt.Errorf("stat file: %w", err)
	}

	checksum, err := w.calculateChecksum(path)
	if err != nil {
		return fmt.Errorf("calculate checksum: %w", err)
	}

	w.mu.Lock()
	w.fileInfos[path] = FileInfo{
		Size:     info.Size(),
		ModTime:  info.ModTime(),
		Checksum: checksum,
	}
	w.mu.Unlock()

	return nil
}

// pollLoop polls for changes and emits one event per quiet period
func (w *PollingWatcher) pollLoop(ctx context.Context, path string) {
	ticker := time.NewTicker(w.interval)
	defer ticker.Stop()

	var (
		pending    bool
		pendingTyp ports.ChangeType
		lastChange time.Time
	)

	for {
		select {
		case <-ctx.Done():
			return
		case <-w.stopCh:
			return
		case <-ticker.C:
			changeType, changed, err := w.checkForChanges(path)
			if err != nil {
				w.logger.Warn("watch error", slog.String("path", path), slog.String("error", err.Error()))
				continue
			}

			if changed {
				if !pending || changeType != ports.Modified {
					pendingTyp = changeType
				}
				pending = true
				lastChange = time.Now()
			}

			if !pending || time.Since(lastChange) < w.debounce {
				continue
			}

			event := ports.FileChangeEvent{
				Path:      path,
				Type:      pendingTyp,
				Timestamp: time.Now(),
			}

			select {
			case w.events <- event:
				pending = false
				w.logger.Debug("file changed", slog.String("path", path), slog.String("type", event.Type.String()))
			case <-ctx.Done():
				return
			case <-w.stopCh:
				return
			}
		}
	}
}

// checkForChanges reports whether a file has changed since the last poll and how
func (w *PollingWatcher) checkForChanges(path string) (ports.ChangeType, bool, error) {
	w.mu.RLock()
	oldInfo, exists := w.fileInfos[path]
	w.mu.RUnlock()

	info, err := os.Stat(path)
	if err != nil {
		if os.IsNotExist(err) {
			if !exists {
				return 0, false, nil
			}
			w.mu.Lock()
			delete(w.fileInfos, path)
			w.mu.Unlock()
			return ports.Deleted, true, nil
		}
		return 0, false, fmt.Errorf("stat file: %w", err)
	}

	// Skip the checksum while size and modification time are unchanged
	if exists && oldInfo.Size == info.Size() && oldInfo.ModTime.Equal(info.ModTime()) {
		return 0, false, nil
	}

	checksum, err := w.calculateChecksum(path)
	if err != nil {
		return 0, false, fmt.Errorf("calculate checksum: %w", err)
	}

	current := FileInfo{
		Size:     info.Size(),
		ModTime:  info.ModTime(),
		Checksum: checksum,
	}

	w.mu.Lock()
	w.fileInfos[path] = current
	w.mu.Unlock()

	if !exists {
		return ports.Created, true, nil
	}

	return ports.Modified, oldInfo.Checksum != checksum, nil
}

// calculateChecksum calculates SHA256 checksum of a file
func (w *PollingWatcher) calculateChecksum(path string) (string, error) {
	file, err := os.Open(path) // #nosec G304 - path is validated by caller
	if err != nil {
		return "", err
	}
	defer func() { _ = file.Close() }()

	hash := sha256.New()
	if _, err := io.Copy(hash, file); err != nil {
		return "", err
	}

	return hex.EncodeToString(hash.Sum(nil)), nil
}

// Ensure PollingWatcher implements ports.FileWatcher
var _ ports.FileWatcher = (*PollingWatcher)(nil)
