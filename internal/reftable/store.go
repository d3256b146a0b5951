package reftable

import (
	"fmt"
	"sync"
	"sync/atomic"
	"time"

	"github.com/jonboulle/clockwork"
	"github.com/rs/zerolog"
	"github.com/spf13/afero"

	"psutier/internal/metrics"
	"psutier/internal/tier/service"
)

// Store: текущий справочник. Читатели берут снимок без блокировок,
// перезагрузка подменяет указатель целиком.
type Store struct {
	fs     afero.Fs
	path   string
	logger zerolog.Logger
	clock  clockwork.Clock

	cur atomic.Pointer[service.Table]

	mu         sync.Mutex // сериализует Reload
	lastErr    error
	lastReport LoadReport
	loadedAt   time.Time
	reloads    int
}

type Option func(*Store)

// WithClock подменяет часы (в тестах — clockwork.NewFakeClock).
func WithClock(c clockwork.Clock) Option {
	return func(s *Store) { s.clock = c }
}

// Status: состояние справочника для GET /table.
type Status struct {
	Path         string    `json:"path"`
	Version      string    `json:"version"`
	Brands       int       `json:"brands"`
	Entries      int       `json:"entries"`
	Skipped      int       `json:"skipped"`
	LoadedAt     time.Time `json:"loaded_at"`
	Reloads      int       `json:"reloads"`
	LastError    string    `json:"last_error,omitempty"`
	RulesVersion string    `json:"rules_version"`
}

// Open загружает справочник; без валидного файла сервис не стартует.
func Open(fs afero.Fs, path string, logger zerolog.Logger, opts ...Option) (*Store, error) {
	s := &Store{fs: fs, path: path, logger: logger, clock: clockwork.NewRealClock()}
	for _, o := range opts {
		o(s)
	}
	if err := s.Reload(); err != nil {
		return nil, err
	}
	return s, nil
}

// NewStatic: Store поверх уже построенной таблицы (тесты, CLI).
func NewStatic(t *service.Table) *Store {
	s := &Store{logger: zerolog.Nop(), clock: clockwork.NewRealClock()}
	s.cur.Store(t)
	if t != nil {
		s.lastReport = LoadReport{Brands: t.BrandCount(), Entries: t.EntryCount()}
		s.loadedAt = s.clock.Now()
	}
	return s
}

func (s *Store) Snapshot() *service.Table { return s.cur.Load() }

func (s *Store) Path() string { return s.path }

// Reload перечитывает файл. При ошибке остаётся прежняя таблица.
func (s *Store) Reload() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.fs == nil {
		return fmt.Errorf("reload: store has no backing file")
	}
	t, rep, err := Load(s.fs, s.path)
	if err != nil {
		s.lastErr = err
		metrics.TableReloads.WithLabelValues("error").Inc()
		s.logger.Error().Err(err).Str("path", s.path).Msg("table reload failed, keeping previous")
		return err
	}
	prev := s.cur.Swap(t)
	s.lastErr = nil
	s.lastReport = rep
	s.loadedAt = s.clock.Now()
	s.reloads++
	metrics.TableReloads.WithLabelValues("ok").Inc()
	metrics.TableEntries.Set(float64(rep.Entries))

	ev := s.logger.Info().
		Str("path", s.path).
		Str("version", t.Version()).
		Int("brands", rep.Brands).
		Int("entries", rep.Entries).
		Int("skipped", rep.Skipped)
	if prev != nil {
		ev = ev.Str("prev_version", prev.Version())
	}
	ev.Msg("table loaded")
	return nil
}

func (s *Store) Status() Status {
	s.mu.Lock()
	defer s.mu.Unlock()

	st := Status{
		Path:         s.path,
		Skipped:      s.lastReport.Skipped,
		LoadedAt:     s.loadedAt,
		Reloads:      s.reloads,
		RulesVersion: service.RulesVersion,
	}
	if t := s.cur.Load(); t != nil {
		st.Version = t.Version()
		st.Brands = t.BrandCount()
		st.Entries = t.EntryCount()
	}
	if s.lastErr != nil {
		st.LastError = s.lastErr.Error()
	}
	return st
}
