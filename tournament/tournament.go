// Package tournament runs competitive evaluation tournaments over a pool
// of candidates, using an external pairwise judge to decide matches. Four
// formats are supported: single elimination, double elimination, round
// robin and Swiss.
package tournament

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/rs/xid"
	"golang.org/x/sync/errgroup"

	"github.com/inkfold/tourney/models"
	"github.com/inkfold/tourney/scoring"
)

// Options tunes a tournament run.
type Options struct {
	// Concurrency bounds how many matches of one round are judged at
	// once. Values below one run matches sequentially. Matches within a
	// round are mutually independent; rounds are not.
	Concurrency int
}

// Tournament owns its seeded candidates, configuration and round history.
// It is built once, run once, and read-only after completion.
type Tournament struct {
	id      string
	config  models.TournamentConfig
	seeded  []models.Candidate
	rounds  []models.Round
	status  models.Status
	bracket bracket
	engine  *scoring.Engine
	logger  *slog.Logger
}

// New seeds the candidates and constructs the bracket for the configured
// format. The caller's candidate values are copied, never mutated. At
// least two real candidates are required.
func New(cfg models.TournamentConfig, candidates []models.Candidate, judge models.Judge, logger *slog.Logger) (*Tournament, error) {
	if logger == nil {
		logger = slog.Default()
	}

	real := make([]models.Candidate, 0, len(candidates))
	for _, c := range candidates {
		if !c.Bye {
			real = append(real, c)
		}
	}
	if len(real) < 2 {
		return nil, models.ErrTooFewCandidates
	}
	if err := cfg.Normalize(); err != nil {
		return nil, err
	}
	if cfg.MaxRounds > 0 && cfg.Format != models.FormatSwiss {
		logger.Debug("max_rounds has no effect for this format", "format", cfg.Format.String())
	}

	seeded := NewSeeder(cfg, logger).Seed(real)
	pool := seeded
	switch cfg.Format {
	case models.FormatSingleElimination, models.FormatDoubleElimination:
		pool = padWithByes(seeded)
	}

	br, err := newBracket(cfg, pool, logger)
	if err != nil {
		return nil, err
	}

	t := &Tournament{
		id:      xid.New().String(),
		config:  cfg,
		seeded:  pool,
		bracket: br,
		logger:  logger,
	}
	t.engine = scoring.New(judge, scoring.Config{
		Criteria:        cfg.Criteria,
		TieBreaker:      cfg.TieBreaker,
		JudgeParameters: cfg.JudgeParameters,
		Logger:          logger,
	})
	return t, nil
}

// Run drives the bracket to completion. Cancellation is cooperative and
// checked between rounds: in-flight matches finish, the next round is not
// started, and already-played rounds are kept. Judge failures never abort
// a run; only cancellation and bracket bugs do.
func (t *Tournament) Run(ctx context.Context, opts Options) error {
	if t.status == models.StatusCompleted {
		return models.ErrCompleted
	}
	t.status = models.StatusOngoing

	for {
		if err := ctx.Err(); err != nil {
			return err
		}
		pairings, err := t.bracket.NextPairings(t.rounds)
		if errors.Is(err, errBracketDone) {
			break
		}
		if err != nil {
			return err
		}
		matches, err := t.playAll(ctx, pairings, opts)
		if err != nil {
			return err
		}
		t.record(matches)
	}

	t.status = models.StatusCompleted
	t.logger.Info("tournament complete",
		"id", t.id, "format", t.config.Format.String(), "rounds", len(t.rounds))
	return nil
}

func (t *Tournament) playAll(ctx context.Context, pairings []Pairing, opts Options) ([]models.Match, error) {
	matches := make([]models.Match, len(pairings))
	limit := opts.Concurrency
	if limit < 1 {
		limit = 1
	}

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(limit)
	for i := range pairings {
		i := i
		p := pairings[i]
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			matches[i] = t.play(gctx, p)
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, fmt.Errorf("round aborted: %w", err)
	}
	return matches, nil
}

// play evaluates one pairing. Byes short-circuit: the real side wins
// without a judge call and the sentinel output is recorded.
func (t *Tournament) play(ctx context.Context, p Pairing) models.Match {
	m := models.Match{A: p.A, B: p.B, Bracket: p.Bracket}
	if p.A.Bye || p.B.Bye {
		m.Winner = p.A
		if p.A.Bye && !p.B.Bye {
			m.Winner = p.B
		}
		m.RawJudgeOutput = models.ByeRawOutput
		return m
	}
	res := t.engine.JudgeMatch(ctx, p.A, p.B)
	m.Winner = res.Winner
	m.RawJudgeOutput = res.RawOutput
	m.Scores = res.Scores
	return m
}

func (t *Tournament) record(matches []models.Match) {
	if t.config.Format == models.FormatRoundRobin {
		// Every round-robin pairing is recorded as its own round,
		// numbered per match.
		for _, m := range matches {
			n := len(t.rounds) + 1
			m.RoundNumber = n
			t.rounds = append(t.rounds, models.Round{Number: n, Matches: []models.Match{m}})
		}
		return
	}
	n := len(t.rounds) + 1
	for i := range matches {
		matches[i].RoundNumber = n
	}
	round := models.Round{Number: n, Matches: matches}
	t.rounds = append(t.rounds, round)
	t.markEliminations(round)
}

// markEliminations annotates the tournament's private candidate copies.
// Single elimination knocks a candidate out on any loss; double
// elimination only on a losers-bracket or grand-final loss.
func (t *Tournament) markEliminations(round models.Round) {
	for _, m := range round.Matches {
		loser := m.Loser()
		if loser.Bye {
			continue
		}
		out := false
		switch t.config.Format {
		case models.FormatSingleElimination:
			out = true
		case models.FormatDoubleElimination:
			out = m.Bracket == models.BracketLosers || m.Bracket == models.BracketFinal
		}
		if !out {
			continue
		}
		for i := range t.seeded {
			if t.seeded[i].Same(loser) {
				t.seeded[i].Status = models.CandidateEliminated
			}
		}
	}
}

// ID returns the generator-assigned tournament id.
func (t *Tournament) ID() string { return t.id }

// Config returns a copy of the normalized configuration.
func (t *Tournament) Config() models.TournamentConfig { return t.config.Clone() }

// Status returns the lifecycle state.
func (t *Tournament) Status() models.Status { return t.status }

// Rounds returns the append-only round history.
func (t *Tournament) Rounds() []models.Round {
	return append([]models.Round(nil), t.rounds...)
}

// Candidates returns the seeded pool, padded with byes for elimination
// formats.
func (t *Tournament) Candidates() []models.Candidate {
	return append([]models.Candidate(nil), t.seeded...)
}

func (t *Tournament) isElimination() bool {
	return t.config.Format == models.FormatSingleElimination ||
		t.config.Format == models.FormatDoubleElimination
}

// Winner returns the tournament winner, or nil while incomplete. For
// elimination formats this is the final match's winner; for round robin
// and Swiss it is the standings leader.
func (t *Tournament) Winner() *models.Candidate {
	if t.status != models.StatusCompleted || len(t.rounds) == 0 {
		return nil
	}
	if t.isElimination() {
		last := t.rounds[len(t.rounds)-1]
		w := last.Matches[len(last.Matches)-1].Winner
		return &w
	}
	standings := t.Standings()
	if len(standings) == 0 {
		return nil
	}
	w := standings[0].Candidate
	return &w
}

// Finalists returns the two participants of the deciding match. Empty for
// round robin and Swiss, and until the tournament completes.
func (t *Tournament) Finalists() []models.Candidate {
	if !t.isElimination() || t.status != models.StatusCompleted || len(t.rounds) == 0 {
		return nil
	}
	last := t.rounds[len(t.rounds)-1]
	final := last.Matches[len(last.Matches)-1]
	return []models.Candidate{final.A, final.B}
}

// Standings aggregates wins, losses, points and opponents for round robin
// and Swiss tournaments, ranked by points then wins. Elimination formats
// have no standings.
func (t *Tournament) Standings() []*models.Standing {
	if t.isElimination() {
		return nil
	}
	byID := make(map[string]*models.Standing, len(t.seeded))
	ordered := make([]*models.Standing, 0, len(t.seeded))
	for _, c := range t.seeded {
		if c.Bye {
			continue
		}
		s := models.NewStanding(c)
		byID[c.ID] = s
		ordered = append(ordered, s)
	}
	for _, round := range t.rounds {
		for _, m := range round.Matches {
			winner, loser := m.Winner, m.Loser()
			if s := byID[winner.ID]; s != nil {
				s.RecordWin(loser)
			}
			if s := byID[loser.ID]; s != nil {
				s.RecordLoss(winner)
			}
		}
	}
	models.SortStandings(ordered)
	return ordered
}
