// Package manager creates, runs and retires tournaments, keeping an
// immutable history of completed runs and a library of reusable
// configuration templates.
package manager

import (
	"context"
	"fmt"
	"log/slog"
	"sync"

	"github.com/inkfold/tourney/models"
	"github.com/inkfold/tourney/tournament"
)

// Option configures a Manager.
type Option func(*Manager)

// WithStore replaces the default in-memory store.
func WithStore(store Store) Option {
	return func(m *Manager) { m.store = store }
}

// WithLogger sets the logger passed down to tournaments.
func WithLogger(logger *slog.Logger) Option {
	return func(m *Manager) { m.logger = logger }
}

// WithRunOptions sets the options used for every Run, notably the
// per-round match concurrency.
func WithRunOptions(opts tournament.Options) Option {
	return func(m *Manager) { m.runOpts = opts }
}

// Manager tracks active tournaments and their completed history.
type Manager struct {
	judge   models.Judge
	store   Store
	logger  *slog.Logger
	runOpts tournament.Options

	mu     sync.Mutex
	active map[string]*tournament.Tournament
}

// New builds a manager around the judge every tournament will use.
func New(judge models.Judge, opts ...Option) *Manager {
	m := &Manager{
		judge:  judge,
		store:  NewMemoryStore(),
		logger: slog.Default(),
		active: map[string]*tournament.Tournament{},
	}
	for _, opt := range opts {
		opt(m)
	}
	return m
}

// Create validates the configuration, seeds the candidates and registers
// a new active tournament. Fewer than two real candidates is a
// configuration error.
func (m *Manager) Create(candidates []models.Candidate, cfg models.TournamentConfig) (*tournament.Tournament, error) {
	t, err := tournament.New(cfg, candidates, m.judge, m.logger)
	if err != nil {
		return nil, err
	}
	m.mu.Lock()
	m.active[t.ID()] = t
	m.mu.Unlock()
	m.logger.Info("tournament created",
		"id", t.ID(), "format", cfg.Format.String(), "candidates", len(candidates))
	return t, nil
}

// Run drives a tournament to completion, snapshots it into history and
// retires it from the active set. Judge degradation never fails a run;
// cancellation and bracket bugs do, and leave the tournament active with
// its played rounds intact.
func (m *Manager) Run(ctx context.Context, t *tournament.Tournament) (TournamentRecord, error) {
	if err := t.Run(ctx, m.runOpts); err != nil {
		return TournamentRecord{}, fmt.Errorf("running tournament %s: %w", t.ID(), err)
	}

	rec, err := NewRecord(t)
	if err != nil {
		return TournamentRecord{}, err
	}
	if err := m.store.SaveRecord(rec); err != nil {
		return TournamentRecord{}, err
	}
	if err := m.store.SaveMatches(rec.MatchRecords()); err != nil {
		return TournamentRecord{}, err
	}

	m.mu.Lock()
	delete(m.active, t.ID())
	m.mu.Unlock()
	m.logger.Info("tournament retired to history", "id", t.ID(), "winner", rec.Winner)
	return rec, nil
}

// Active returns a still-running tournament by id.
func (m *Manager) Active(id string) (*tournament.Tournament, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	t, ok := m.active[id]
	if !ok {
		return nil, fmt.Errorf("active tournament %s: %w", id, models.ErrNotFound)
	}
	return t, nil
}

// History returns the immutable record of a completed tournament.
func (m *Manager) History(id string) (TournamentRecord, error) {
	return m.store.Record(id)
}

// Histories lists every completed tournament.
func (m *Manager) Histories() ([]TournamentRecord, error) {
	return m.store.Records()
}

// Matches lists the flat per-match rows of a completed tournament, for
// tabular reporting.
func (m *Manager) Matches(tournamentID string) ([]MatchRecord, error) {
	return m.store.Matches(tournamentID)
}

// SaveTemplate stores a named, reusable configuration.
func (m *Manager) SaveTemplate(name string, cfg models.TournamentConfig) error {
	return m.store.SaveTemplate(name, cfg)
}

// LoadTemplate retrieves a stored configuration by name.
func (m *Manager) LoadTemplate(name string) (models.TournamentConfig, error) {
	return m.store.Template(name)
}
