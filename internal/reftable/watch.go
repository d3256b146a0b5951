package reftable

import (
	"context"
	"fmt"
	"path/filepath"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/jonboulle/clockwork"
)

// Watch перезагружает справочник при изменении файла. Следим за каталогом,
// а не за файлом: редакторы и deploy часто пишут во временный файл и
// переименовывают его. Серия событий схлопывается в одну перезагрузку через
// debounce. Возвращается после отмены ctx.
func Watch(ctx context.Context, s *Store, debounce time.Duration) error {
	if s.path == "" {
		return fmt.Errorf("watch: store has no backing file")
	}
	abs, err := filepath.Abs(s.path)
	if err != nil {
		return fmt.Errorf("watch: %w", err)
	}
	w, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("watch: %w", err)
	}
	defer w.Close()
	if err := w.Add(filepath.Dir(abs)); err != nil {
		return fmt.Errorf("watch %s: %w", filepath.Dir(abs), err)
	}
	s.logger.Info().Str("path", abs).Dur("debounce", debounce).Msg("table watch started")

	var (
		mu    sync.Mutex
		timer clockwork.Timer
		wg    sync.WaitGroup
	)
	schedule := func() {
		mu.Lock()
		defer mu.Unlock()
		if timer != nil && timer.Stop() {
			wg.Done()
		}
		wg.Add(1)
		timer = s.clock.AfterFunc(debounce, func() {
			defer wg.Done()
			if ctx.Err() != nil {
				return
			}
			_ = s.Reload()
		})
	}
	defer func() {
		mu.Lock()
		if timer != nil && timer.Stop() {
			wg.Done()
		}
		mu.Unlock()
		wg.Wait()
	}()

	for {
		select {
		case <-ctx.Done():
			s.logger.Info().Msg("table watch stopped")
			return nil
		case ev, ok := <-w.Events:
			if !ok {
				return nil
			}
			if filepath.Clean(ev.Name) != abs {
				continue
			}
			if ev.Op&(fsnotify.Write|fsnotify.Create|fsnotify.Rename) == 0 {
				continue
			}
			schedule()
		case err, ok := <-w.Errors:
			if !ok {
				return nil
			}
			s.logger.Warn().Err(err).Msg("table watch error")
		}
	}
}
