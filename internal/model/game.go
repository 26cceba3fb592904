package model

// GameID uniquely identifies a scheduled game.
type GameID string

// Game is a scheduled (or played) game between two teams. Team slots may be
// empty. Date and Time are stored as entered (ISO date, free-form time) and
// carry no behavior here.
type Game struct {
	ID       GameID     `json:"id"`
	Title    string     `json:"title"`
	TeamA    TeamLetter `json:"team_a"`
	TeamB    TeamLetter `json:"team_b"`
	Date     string     `json:"gdate"`
	Time     string     `json:"gtime"`
	Location string     `json:"location"`
	ScoreA   int        `json:"score_a"`
	ScoreB   int        `json:"score_b"`
}

// OutcomeKind classifies a game's derived result.
type OutcomeKind string

const (
	// OutcomeInvalid means at least one team slot is empty.
	OutcomeInvalid OutcomeKind = "invalid"
	// OutcomeTie means both teams are set and the scores are equal.
	OutcomeTie OutcomeKind = "tie"
	// OutcomeDecided means both teams are set and one outscored the other.
	OutcomeDecided OutcomeKind = "decided"
)

// Outcome is the derived result of a game's two scores.
type Outcome struct {
	Kind   OutcomeKind
	Winner TeamLetter
	Loser  TeamLetter
}

// Outcome derives the game's result from its team slots and scores.
func (g Game) Outcome() Outcome {
	if g.TeamA == "" || g.TeamB == "" {
		return Outcome{Kind: OutcomeInvalid}
	}
	if g.ScoreA == g.ScoreB {
		return Outcome{Kind: OutcomeTie}
	}
	if g.ScoreA > g.ScoreB {
		return Outcome{Kind: OutcomeDecided, Winner: g.TeamA, Loser: g.TeamB}
	}
	return Outcome{Kind: OutcomeDecided, Winner: g.TeamB, Loser: g.TeamA}
}

// WinnerLabel is the human-readable result used by list views:
// "Team X" for a decided game, "Tie", or "TBD".
func (g Game) WinnerLabel() string {
	switch o := g.Outcome(); o.Kind {
	case OutcomeDecided:
		return "Team " + string(o.Winner)
	case OutcomeTie:
		return "Tie"
	default:
		return "TBD"
	}
}

// ScoreDelta is a win/loss counter adjustment for one team.
type ScoreDelta struct {
	Team   TeamLetter
	Wins   int
	Losses int
}

// ScoreDeltas computes the counter adjustments needed to move the affected
// teams' records from the outcome of the old game state to the outcome of
// the new one. A decided game that stays decided with the same winner and
// loser produces no delta.
func ScoreDeltas(before, after Game) []ScoreDelta {
	oldOc, newOc := before.Outcome(), after.Outcome()

	switch {
	case oldOc.Kind == OutcomeDecided && newOc.Kind == OutcomeDecided:
		if oldOc.Winner == newOc.Winner && oldOc.Loser == newOc.Loser {
			return nil
		}
		return []ScoreDelta{
			{Team: oldOc.Winner, Wins: -1},
			{Team: oldOc.Loser, Losses: -1},
			{Team: newOc.Winner, Wins: +1},
			{Team: newOc.Loser, Losses: +1},
		}
	case oldOc.Kind != OutcomeDecided && newOc.Kind == OutcomeDecided:
		return []ScoreDelta{
			{Team: newOc.Winner, Wins: +1},
			{Team: newOc.Loser, Losses: +1},
		}
	case oldOc.Kind == OutcomeDecided && newOc.Kind != OutcomeDecided:
		return []ScoreDelta{
			{Team: oldOc.Winner, Wins: -1},
			{Team: oldOc.Loser, Losses: -1},
		}
	default:
		return nil
	}
}

// DeletionDeltas computes the adjustments to apply before removing a game:
// a decided game gives back the win and the loss it awarded.
func DeletionDeltas(g Game) []ScoreDelta {
	return ScoreDeltas(g, Game{})
}
