package manager

import (
	"fmt"
	"sync"

	"github.com/inkfold/tourney/models"
)

// Store persists completed-tournament history, flat match rows and named
// configuration templates. The zero-dependency default is in memory; the
// storm store survives restarts.
type Store interface {
	SaveRecord(rec TournamentRecord) error
	Record(tournamentID string) (TournamentRecord, error)
	Records() ([]TournamentRecord, error)

	SaveMatches(matches []MatchRecord) error
	Matches(tournamentID string) ([]MatchRecord, error)

	SaveTemplate(name string, cfg models.TournamentConfig) error
	Template(name string) (models.TournamentConfig, error)

	Close() error
}

type memoryStore struct {
	mu        sync.RWMutex
	records   map[string]TournamentRecord
	order     []string
	matches   map[string][]MatchRecord
	templates map[string]models.TournamentConfig
}

// NewMemoryStore returns the default in-process store.
func NewMemoryStore() Store {
	return &memoryStore{
		records:   map[string]TournamentRecord{},
		matches:   map[string][]MatchRecord{},
		templates: map[string]models.TournamentConfig{},
	}
}

func (s *memoryStore) SaveRecord(rec TournamentRecord) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, exists := s.records[rec.TournamentID]; !exists {
		s.order = append(s.order, rec.TournamentID)
	}
	s.records[rec.TournamentID] = rec
	return nil
}

func (s *memoryStore) Record(tournamentID string) (TournamentRecord, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	rec, ok := s.records[tournamentID]
	if !ok {
		return TournamentRecord{}, fmt.Errorf("tournament %s: %w", tournamentID, models.ErrNotFound)
	}
	return rec, nil
}

func (s *memoryStore) Records() ([]TournamentRecord, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]TournamentRecord, 0, len(s.order))
	for _, id := range s.order {
		out = append(out, s.records[id])
	}
	return out, nil
}

func (s *memoryStore) SaveMatches(matches []MatchRecord) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, m := range matches {
		s.matches[m.TournamentID] = append(s.matches[m.TournamentID], m)
	}
	return nil
}

func (s *memoryStore) Matches(tournamentID string) ([]MatchRecord, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return append([]MatchRecord(nil), s.matches[tournamentID]...), nil
}

func (s *memoryStore) SaveTemplate(name string, cfg models.TournamentConfig) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.templates[name] = cfg.Clone()
	return nil
}

func (s *memoryStore) Template(name string) (models.TournamentConfig, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	cfg, ok := s.templates[name]
	if !ok {
		return models.TournamentConfig{}, fmt.Errorf("template %q: %w", name, models.ErrNotFound)
	}
	return cfg.Clone(), nil
}

func (s *memoryStore) Close() error { return nil }
