package models

// BracketSide tags a match with the bracket it belongs to. Only double
// elimination uses more than the main bracket.
type BracketSide string

const (
	BracketMain    BracketSide = ""
	BracketWinners BracketSide = "winners"
	BracketLosers  BracketSide = "losers"
	BracketFinal   BracketSide = "final"
)

// ScorePair holds one criterion's scores for the two sides of a match.
type ScorePair struct {
	A float64 `json:"a"`
	B float64 `json:"b"`
}

// Match is one judged comparison between two candidates. Winner is always
// one of the two participants; bye matches are decided without judging and
// carry ByeRawOutput.
type Match struct {
	A      Candidate `json:"candidate_a"`
	B      Candidate `json:"candidate_b"`
	Winner Candidate `json:"winner"`

	RawJudgeOutput string               `json:"raw_judge_output,omitempty"`
	Scores         map[string]ScorePair `json:"scores,omitempty"`

	RoundNumber int         `json:"round_number"`
	Bracket     BracketSide `json:"bracket,omitempty"`
}

// Loser returns the participant that did not win.
func (m Match) Loser() Candidate {
	if m.Winner.Same(m.A) {
		return m.B
	}
	return m.A
}

// IsBye reports whether either side is a bye placeholder.
func (m Match) IsBye() bool {
	return m.A.Bye || m.B.Bye
}
