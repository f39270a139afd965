package manager

import (
	"errors"
	"fmt"

	"github.com/asdine/storm"
	"github.com/asdine/storm/codec/json"

	"github.com/inkfold/tourney/models"
)

// configTemplate is the storm row for a named, reusable configuration.
type configTemplate struct {
	Name   string                  `storm:"id" json:"name"`
	Config models.TournamentConfig `json:"config"`
}

type stormStore struct {
	db *storm.DB
}

// NewStormStore opens (or creates) a storm/bbolt database at path and
// returns a Store backed by it.
func NewStormStore(path string) (Store, error) {
	db, err := storm.Open(path, storm.Codec(json.Codec))
	if err != nil {
		return nil, fmt.Errorf("unable to open tournament store: %w", err)
	}
	return &stormStore{db: db}, nil
}

func (s *stormStore) SaveRecord(rec TournamentRecord) error {
	if err := s.db.Save(&rec); err != nil {
		return fmt.Errorf("saving tournament %s: %w", rec.TournamentID, err)
	}
	return nil
}

func (s *stormStore) Record(tournamentID string) (TournamentRecord, error) {
	var rec TournamentRecord
	if err := s.db.One("TournamentID", tournamentID, &rec); err != nil {
		return TournamentRecord{}, fmt.Errorf("tournament %s: %w", tournamentID, translate(err))
	}
	return rec, nil
}

func (s *stormStore) Records() ([]TournamentRecord, error) {
	var recs []TournamentRecord
	if err := s.db.All(&recs); err != nil {
		return nil, fmt.Errorf("listing tournaments: %w", err)
	}
	return recs, nil
}

func (s *stormStore) SaveMatches(matches []MatchRecord) error {
	for i := range matches {
		if err := s.db.Save(&matches[i]); err != nil {
			return fmt.Errorf("saving match %s: %w", matches[i].ID, err)
		}
	}
	return nil
}

func (s *stormStore) Matches(tournamentID string) ([]MatchRecord, error) {
	var out []MatchRecord
	err := s.db.Find("TournamentID", tournamentID, &out)
	if errors.Is(err, storm.ErrNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("listing matches of %s: %w", tournamentID, err)
	}
	return out, nil
}

func (s *stormStore) SaveTemplate(name string, cfg models.TournamentConfig) error {
	row := configTemplate{Name: name, Config: cfg.Clone()}
	if err := s.db.Save(&row); err != nil {
		return fmt.Errorf("saving template %q: %w", name, err)
	}
	return nil
}

func (s *stormStore) Template(name string) (models.TournamentConfig, error) {
	var row configTemplate
	if err := s.db.One("Name", name, &row); err != nil {
		return models.TournamentConfig{}, fmt.Errorf("template %q: %w", name, translate(err))
	}
	return row.Config.Clone(), nil
}

func (s *stormStore) Close() error { return s.db.Close() }

func translate(err error) error {
	if errors.Is(err, storm.ErrNotFound) {
		return models.ErrNotFound
	}
	return err
}
