// Package scoring evaluates a single match under weighted judging
// criteria. Every judge failure is absorbed locally with an audited
// fallback; the engine always produces a winner.
package scoring

import (
	"context"
	"fmt"
	"log/slog"
	"math"
	"math/rand"
	"sort"
	"strings"
	"sync"

	"golang.org/x/sync/errgroup"

	"github.com/inkfold/tourney/models"
)

// TieThreshold is the margin below which weighted totals count as a
// near-tie and the tie-break policy decides instead of direct comparison.
const TieThreshold = 0.1

// Result is the outcome of judging one pairing.
type Result struct {
	Winner    models.Candidate
	RawOutput string
	Scores    map[string]models.ScorePair
}

// Config carries everything the engine needs besides the judge itself.
type Config struct {
	Criteria   []models.JudgingCriterion
	TieBreaker models.TieBreaker

	// JudgeParameters is passed through to every judge call untouched.
	JudgeParameters map[string]string

	// Concurrency bounds the per-criterion judge fan-out within one
	// match. Values below one mean sequential.
	Concurrency int

	// Rand is optional; fallbacks and coin flips use the shared source
	// when nil. Injected by tests for reproducibility.
	Rand *rand.Rand

	Logger *slog.Logger
}

// Engine scores matches by invoking the judge once per criterion and
// combining the results under the criteria weights.
type Engine struct {
	judge models.Judge
	cfg   Config

	mu sync.Mutex // guards cfg.Rand, which is not goroutine safe
}

// New builds an engine. The criteria list must already be normalized
// (non-empty, positive weights, valid ranges).
func New(judge models.Judge, cfg Config) *Engine {
	if cfg.Logger == nil {
		cfg.Logger = slog.Default()
	}
	return &Engine{judge: judge, cfg: cfg}
}

type criterionOutcome struct {
	scores models.ScorePair
	raw    string
}

// JudgeMatch judges one pairing under every criterion. It never fails:
// unavailable criteria contribute neutral mid-range scores, unparseable
// scores fall back to uniform random within range, and every fallback is
// noted in the raw output.
func (e *Engine) JudgeMatch(ctx context.Context, a, b models.Candidate) Result {
	outcomes := make([]criterionOutcome, len(e.cfg.Criteria))

	g, gctx := errgroup.WithContext(ctx)
	limit := e.cfg.Concurrency
	if limit < 1 {
		limit = 1
	}
	g.SetLimit(limit)
	for i := range e.cfg.Criteria {
		i := i
		crit := e.cfg.Criteria[i]
		g.Go(func() error {
			outcomes[i] = e.judgeCriterion(gctx, a, b, crit)
			return nil
		})
	}
	g.Wait() // goroutines never return errors

	scores := make(map[string]models.ScorePair, len(outcomes))
	var totalA, totalB, totalWeight float64
	var rawParts []string
	for i, crit := range e.cfg.Criteria {
		out := outcomes[i]
		scores[crit.Name] = out.scores
		totalA += out.scores.A * crit.Weight
		totalB += out.scores.B * crit.Weight
		totalWeight += crit.Weight
		rawParts = append(rawParts, fmt.Sprintf("[%s] %s", crit.Name, out.raw))
	}
	finalA := totalA / totalWeight
	finalB := totalB / totalWeight

	var winner models.Candidate
	switch {
	case math.Abs(finalA-finalB) < TieThreshold:
		var note string
		winner, note = e.breakTie(a, b, scores)
		rawParts = append(rawParts, note)
	case finalA > finalB:
		winner = a
	default:
		winner = b
	}

	e.cfg.Logger.Debug("match judged",
		"candidate_a", a.Title, "candidate_b", b.Title,
		"score_a", finalA, "score_b", finalB, "winner", winner.Title)

	return Result{
		Winner:    winner,
		RawOutput: strings.Join(rawParts, "\n"),
		Scores:    scores,
	}
}

func (e *Engine) judgeCriterion(ctx context.Context, a, b models.Candidate, crit models.JudgingCriterion) criterionOutcome {
	crit.PromptTemplate = crit.Prompt(a, b)
	verdict, err := e.judge.Judge(ctx, a, b, &crit, e.cfg.JudgeParameters)
	if err != nil {
		// One unavailable criterion never aborts the match: both sides
		// take the neutral midpoint.
		mid := crit.Range.Mid()
		e.cfg.Logger.Warn("criterion unavailable, scoring both sides neutral",
			"criterion", crit.Name, "error", err)
		return criterionOutcome{
			scores: models.ScorePair{A: mid, B: mid},
			raw:    fmt.Sprintf("criterion unavailable (%v): neutral %.1f to both sides", err, mid),
		}
	}
	if !verdict.Scored || math.IsNaN(verdict.ScoreA) || math.IsNaN(verdict.ScoreB) {
		sa := e.randomScore(crit.Range)
		sb := e.randomScore(crit.Range)
		return criterionOutcome{
			scores: models.ScorePair{A: sa, B: sb},
			raw:    fmt.Sprintf("unscored verdict, random fallback %.2f/%.2f; judge said: %s", sa, sb, verdict.RawText),
		}
	}
	return criterionOutcome{
		scores: models.ScorePair{
			A: crit.Range.Clamp(verdict.ScoreA),
			B: crit.Range.Clamp(verdict.ScoreB),
		},
		raw: verdict.RawText,
	}
}

func (e *Engine) breakTie(a, b models.Candidate, scores map[string]models.ScorePair) (models.Candidate, string) {
	if e.cfg.TieBreaker == models.TieBreakCriteriaWeighted {
		crit := e.topCriterion()
		pair := scores[crit.Name]
		if pair.A != pair.B {
			winner := a
			if pair.B > pair.A {
				winner = b
			}
			return winner, fmt.Sprintf("near-tie resolved on highest-weight criterion %q (%.2f vs %.2f)",
				crit.Name, pair.A, pair.B)
		}
		// Even the top criterion agrees; fall through to the coin.
	}
	if e.coinFlip() {
		return a, "near-tie resolved by coin flip"
	}
	return b, "near-tie resolved by coin flip"
}

// topCriterion returns the single highest-weight criterion; list order
// breaks weight ties.
func (e *Engine) topCriterion() models.JudgingCriterion {
	idx := make([]int, len(e.cfg.Criteria))
	for i := range idx {
		idx[i] = i
	}
	sort.SliceStable(idx, func(i, j int) bool {
		return e.cfg.Criteria[idx[i]].Weight > e.cfg.Criteria[idx[j]].Weight
	})
	return e.cfg.Criteria[idx[0]]
}

func (e *Engine) randomScore(r models.ScoreRange) float64 {
	return r.Min + e.randFloat()*r.Width()
}

func (e *Engine) coinFlip() bool {
	return e.randFloat() < 0.5
}

func (e *Engine) randFloat() float64 {
	if e.cfg.Rand == nil {
		return rand.Float64()
	}
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.cfg.Rand.Float64()
}
