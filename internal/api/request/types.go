package request

// LoginRequest is the request body for logging in
type LoginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

// UpdateCredentialRequest is the request body for rotating the admin
// credential. The current password must be re-proven.
type UpdateCredentialRequest struct {
	CurrentPassword string `json:"current_password"`
	NewUsername     string `json:"new_username"`
	NewPassword     string `json:"new_password"`
}

// PlayerRequest is the request body for adding or editing a player
type PlayerRequest struct {
	Name      string   `json:"name"`
	Jersey    string   `json:"jersey,omitempty"`
	Position  string   `json:"position,omitempty"`
	IsCaptain bool     `json:"is_captain,omitempty"`
	Tags      []string `json:"tags,omitempty"`
}

// AssignTeamRequest is the request body for assigning a player to a team.
// An empty team unassigns.
type AssignTeamRequest struct {
	Team string `json:"team"`
}

// SetPaymentRequest is the request body for marking a player's payment
type SetPaymentRequest struct {
	Paid   bool   `json:"paid"`
	Method string `json:"method,omitempty"`
}

// AdjustScoreRequest is the request body for a quick score adjustment
type AdjustScoreRequest struct {
	Kind  string `json:"kind"`
	Delta int    `json:"delta"`
}

// GameRequest is the request body for adding or editing a game
type GameRequest struct {
	Title    string `json:"title,omitempty"`
	TeamA    string `json:"team_a,omitempty"`
	TeamB    string `json:"team_b,omitempty"`
	Date     string `json:"gdate,omitempty"`
	Time     string `json:"gtime,omitempty"`
	Location string `json:"location,omitempty"`
	ScoreA   int    `json:"score_a,omitempty"`
	ScoreB   int    `json:"score_b,omitempty"`
}

// SaveLogRequest is the request body for saving a league log
type SaveLogRequest struct {
	Date string `json:"date"`
}
