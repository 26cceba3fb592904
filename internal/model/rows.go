package model

// PlayerRow mirrors one row of the remote players table. The stored
// (encoded) name is the primary key; team and payment metadata ride along.
type PlayerRow struct {
	FullName      string        `json:"full_name"`
	Team          TeamLetter    `json:"team"`
	Paid          bool          `json:"paid"`
	PaymentMethod PaymentMethod `json:"payment_method"`
}

// ScoreRow mirrors one row of the remote team_scores table.
type ScoreRow struct {
	Team   TeamLetter `json:"team"`
	Wins   int        `json:"wins"`
	Losses int        `json:"losses"`
}

// RemoteData is the full contents of the remote store of record, as fetched
// in one round. Players arrive sorted by name, games by title.
type RemoteData struct {
	Players []PlayerRow
	Scores  []ScoreRow
	Games   []Game
}
