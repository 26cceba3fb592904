package model

import "strings"

// TeamLetter identifies one of the league's ten fixed teams, A through J.
// The empty string means "no team" (an unassigned player, or an empty slot
// in a game).
type TeamLetter string

var teamLetters = []TeamLetter{"A", "B", "C", "D", "E", "F", "G", "H", "I", "J"}

// Teams returns the fixed set of team letters in order.
func Teams() []TeamLetter {
	out := make([]TeamLetter, len(teamLetters))
	copy(out, teamLetters)
	return out
}

// ParseTeamLetter normalizes and validates a team letter. The empty string
// (after trimming) is returned as-is, meaning "no team".
func ParseTeamLetter(s string) (TeamLetter, error) {
	t := TeamLetter(strings.ToUpper(strings.TrimSpace(s)))
	if t == "" {
		return "", nil
	}
	if !t.Valid() {
		return "", ErrInvalidTeam
	}
	return t, nil
}

// Valid reports whether the letter is one of the ten fixed teams.
func (t TeamLetter) Valid() bool {
	for _, l := range teamLetters {
		if t == l {
			return true
		}
	}
	return false
}

// TeamRecord is a team's win/loss counter pair.
type TeamRecord struct {
	Wins   int `json:"wins"`
	Losses int `json:"losses"`
}

// Add applies a delta to the record, clamping both counters at zero.
func (r TeamRecord) Add(wins, losses int) TeamRecord {
	r.Wins += wins
	if r.Wins < 0 {
		r.Wins = 0
	}
	r.Losses += losses
	if r.Losses < 0 {
		r.Losses = 0
	}
	return r
}

// ScoreKind selects which counter of a TeamRecord a quick adjustment targets.
type ScoreKind string

const (
	ScoreWin  ScoreKind = "win"
	ScoreLose ScoreKind = "lose"
)

// ParseScoreKind validates a score kind string.
func ParseScoreKind(s string) (ScoreKind, error) {
	switch ScoreKind(strings.ToLower(strings.TrimSpace(s))) {
	case ScoreWin:
		return ScoreWin, nil
	case ScoreLose:
		return ScoreLose, nil
	default:
		return "", ErrInvalidScoreKind
	}
}
