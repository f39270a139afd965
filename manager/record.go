package manager

import (
	"bytes"
	"fmt"
	"text/template"
	"time"

	"github.com/rs/xid"

	"github.com/inkfold/tourney/models"
	"github.com/inkfold/tourney/tournament"
)

// MatchRecord is one match flattened for tabular reporting. The same rows
// appear nested in a TournamentRecord and flat in the match table.
type MatchRecord struct {
	ID             string `storm:"id" json:"id"`
	TournamentID   string `storm:"index" json:"tournament_id"`
	RoundNumber    int    `json:"round_number"`
	Bracket        string `json:"bracket,omitempty"`
	CandidateA     string `json:"candidate_a"`
	CandidateB     string `json:"candidate_b"`
	Winner         string `json:"winner"`
	RawJudgeOutput string `json:"raw_judge_output,omitempty"`
}

// RoundRecord is one round of a completed tournament.
type RoundRecord struct {
	Number  int           `json:"number"`
	Matches []MatchRecord `json:"matches"`
}

// StandingRecord is one row of a final standings table.
type StandingRecord struct {
	Candidate string `json:"candidate"`
	Wins      int    `json:"wins"`
	Losses    int    `json:"losses"`
	Points    int    `json:"points"`
}

// TournamentRecord is the immutable snapshot of a completed tournament
// kept in manager history.
type TournamentRecord struct {
	TournamentID      string           `storm:"id" json:"tournament_id"`
	Format            string           `json:"format"`
	TotalParticipants int              `json:"total_participants"`
	Rounds            []RoundRecord    `json:"rounds"`
	Standings         []StandingRecord `json:"standings,omitempty"`
	Winner            string           `json:"winner"`
	Summary           string           `json:"summary"`
	CompletedAt       time.Time        `json:"completed_at"`
}

// MatchRecords flattens the nested rounds into one row per match.
func (r TournamentRecord) MatchRecords() []MatchRecord {
	var out []MatchRecord
	for _, round := range r.Rounds {
		out = append(out, round.Matches...)
	}
	return out
}

const summaryTemplate = `Tournament {{.TournamentID}} ({{.Format}}), {{.TotalParticipants}} participants, {{len .Rounds}} rounds
{{- range .Rounds}}
Round {{.Number}}:
{{- range .Matches}}
  {{.CandidateA}} vs {{.CandidateB}} -> {{.Winner}}
{{- end}}
{{- end}}
{{- if .Standings}}
Standings:
{{- range $i, $s := .Standings}}
  {{rank $i}}. {{$s.Candidate}} ({{$s.Wins}}W/{{$s.Losses}}L, {{$s.Points}} pts)
{{- end}}
{{- end}}
Winner: {{.Winner}}
`

var summaryTmpl = template.Must(template.New("summary").Funcs(template.FuncMap{
	"rank": func(i int) int { return i + 1 },
}).Parse(summaryTemplate))

// NewRecord snapshots a completed tournament into its history form,
// including the human-readable summary.
func NewRecord(t *tournament.Tournament) (TournamentRecord, error) {
	if t.Status() != models.StatusCompleted {
		return TournamentRecord{}, fmt.Errorf("recording %s: tournament has not completed", t.ID())
	}

	participants := 0
	for _, c := range t.Candidates() {
		if !c.Bye {
			participants++
		}
	}

	rec := TournamentRecord{
		TournamentID:      t.ID(),
		Format:            t.Config().Format.String(),
		TotalParticipants: participants,
		CompletedAt:       time.Now().UTC(),
	}
	for _, round := range t.Rounds() {
		rr := RoundRecord{Number: round.Number}
		for _, m := range round.Matches {
			rr.Matches = append(rr.Matches, MatchRecord{
				ID:             xid.New().String(),
				TournamentID:   t.ID(),
				RoundNumber:    m.RoundNumber,
				Bracket:        string(m.Bracket),
				CandidateA:     m.A.Title,
				CandidateB:     m.B.Title,
				Winner:         m.Winner.Title,
				RawJudgeOutput: m.RawJudgeOutput,
			})
		}
		rec.Rounds = append(rec.Rounds, rr)
	}
	for _, s := range t.Standings() {
		rec.Standings = append(rec.Standings, StandingRecord{
			Candidate: s.Candidate.Title,
			Wins:      s.Wins,
			Losses:    s.Losses,
			Points:    s.Points,
		})
	}
	if w := t.Winner(); w != nil {
		rec.Winner = w.Title
	}

	var buf bytes.Buffer
	if err := summaryTmpl.Execute(&buf, rec); err != nil {
		return TournamentRecord{}, fmt.Errorf("rendering summary for %s: %w", t.ID(), err)
	}
	rec.Summary = buf.String()
	return rec, nil
}
