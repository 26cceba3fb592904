package cli

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"
	"time"
)

// Output handles formatting output based on the configured format
type Output struct {
	format string
}

// NewOutput creates a new Output formatter
func NewOutput(format string) *Output {
	return &Output{format: format}
}

// Print outputs data in the configured format
func (o *Output) Print(data any) {
	if o.format == "json" {
		o.printJSON(data)
	} else {
		o.printText(data)
	}
}

// PrintError outputs an error
func (o *Output) PrintError(err error) {
	if o.format == "json" {
		errData := map[string]any{
			"error": map[string]string{
				"message": err.Error(),
			},
		}
		data, _ := json.Marshal(errData)
		fmt.Fprintln(os.Stderr, string(data))
	} else {
		fmt.Fprintf(os.Stderr, "Error: %s\n", err)
	}
}

// PrintMessage outputs a simple message
func (o *Output) PrintMessage(msg string) {
	if o.format == "json" {
		data, _ := json.Marshal(map[string]string{"message": msg})
		fmt.Println(string(data))
	} else {
		fmt.Println(msg)
	}
}

func (o *Output) printJSON(data any) {
	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	_ = enc.Encode(data)
}

func (o *Output) printText(data any) {
	switch v := data.(type) {
	case Player:
		o.printPlayer(v)
	case []Player:
		o.printPlayers(v)
	case AuthResult:
		o.printAuthResult(v)
	case TeamScore:
		o.printTeamScore(v)
	case []TeamScore:
		o.printStandings(v)
	case Game:
		o.printGame(v)
	case []Game:
		o.printGames(v)
	case StatusResult:
		o.printStatusResult(v)
	case LogDates:
		o.printLogDates(v)
	case SnapshotResult:
		o.printSnapshot(v)
	case HealthResult:
		o.printHealthResult(v)
	default:
		// Fallback to JSON for unknown types
		o.printJSON(data)
	}
}

// Player response type (matches API)
type Player struct {
	StoredName    string   `json:"stored_name"`
	Name          string   `json:"name"`
	Jersey        string   `json:"jersey,omitempty"`
	Position      string   `json:"position,omitempty"`
	IsCaptain     bool     `json:"is_captain,omitempty"`
	Tags          []string `json:"tags,omitempty"`
	Display       string   `json:"display"`
	Team          string   `json:"team,omitempty"`
	Paid          bool     `json:"paid"`
	PaymentMethod string   `json:"payment_method,omitempty"`
}

// AuthResult is the login response
type AuthResult struct {
	Username     string    `json:"username"`
	SessionToken string    `json:"session_token"`
	ExpiresAt    time.Time `json:"expires_at"`
}

// TeamScore is one team's standing
type TeamScore struct {
	Team   string `json:"team"`
	Wins   int    `json:"wins"`
	Losses int    `json:"losses"`
}

// Game response type
type Game struct {
	ID       string `json:"id"`
	Title    string `json:"title"`
	TeamA    string `json:"team_a,omitempty"`
	TeamB    string `json:"team_b,omitempty"`
	Date     string `json:"gdate,omitempty"`
	Time     string `json:"gtime,omitempty"`
	Location string `json:"location,omitempty"`
	ScoreA   int    `json:"score_a"`
	ScoreB   int    `json:"score_b"`
	Winner   string `json:"winner"`
}

// StatusResult reports server connectivity with its remote store
type StatusResult struct {
	Connectivity string `json:"connectivity"`
	Error        string `json:"error,omitempty"`
}

// LogDates lists saved league log dates
type LogDates struct {
	Dates []string `json:"dates"`
}

// SnapshotResult is the full league view
type SnapshotResult struct {
	Players []Player            `json:"players"`
	Teams   map[string][]string `json:"teams"`
	Scores  []TeamScore         `json:"scores"`
	Games   []Game              `json:"games"`
	SavedAt time.Time           `json:"saved_at"`
}

// HealthResult response type
type HealthResult struct {
	Status string `json:"status"`
}

func (o *Output) printPlayer(p Player) {
	fmt.Printf("Player: %s\n", p.Display)
	fmt.Printf("Stored: %s\n", p.StoredName)
	if p.Team != "" {
		fmt.Printf("Team: %s\n", p.Team)
	}
	paidStr := "no"
	if p.Paid {
		paidStr = "yes"
		if p.PaymentMethod != "" {
			paidStr = fmt.Sprintf("yes (%s)", p.PaymentMethod)
		}
	}
	fmt.Printf("Paid: %s\n", paidStr)
}

func (o *Output) printPlayers(players []Player) {
	if len(players) == 0 {
		fmt.Println("No players registered")
		return
	}
	fmt.Printf("Players (%d):\n", len(players))
	for _, p := range players {
		team := "-"
		if p.Team != "" {
			team = p.Team
		}
		paid := " "
		if p.Paid {
			paid = "$"
		}
		fmt.Printf("  [%s] %s  team %s\n", paid, p.Display, team)
	}
}

func (o *Output) printAuthResult(a AuthResult) {
	fmt.Printf("Logged in as %s\n", a.Username)
	fmt.Printf("Session expires: %s\n", a.ExpiresAt.Format("2006-01-02 15:04:05"))
}

func (o *Output) printTeamScore(s TeamScore) {
	fmt.Printf("Team %s: %d-%d\n", s.Team, s.Wins, s.Losses)
}

func (o *Output) printStandings(scores []TeamScore) {
	fmt.Println("Standings:")
	for _, s := range scores {
		fmt.Printf("  Team %s  %2dW %2dL\n", s.Team, s.Wins, s.Losses)
	}
}

func (o *Output) printGame(g Game) {
	fmt.Printf("Game: %s (%s)\n", g.Title, g.ID)
	if g.TeamA != "" || g.TeamB != "" {
		fmt.Printf("Matchup: Team %s vs Team %s\n", g.TeamA, g.TeamB)
	}
	fmt.Printf("Score: %d - %d\n", g.ScoreA, g.ScoreB)
	if g.Date != "" {
		when := g.Date
		if g.Time != "" {
			when += " " + g.Time
		}
		fmt.Printf("When: %s\n", when)
	}
	if g.Location != "" {
		fmt.Printf("Where: %s\n", g.Location)
	}
	fmt.Printf("Result: %s\n", g.Winner)
}

func (o *Output) printGames(games []Game) {
	if len(games) == 0 {
		fmt.Println("No games scheduled")
		return
	}
	fmt.Printf("Games (%d):\n", len(games))
	for _, g := range games {
		fmt.Printf("  %s: %s vs %s  %d-%d  %s\n",
			g.Title, g.TeamA, g.TeamB, g.ScoreA, g.ScoreB, g.Winner)
	}
}

func (o *Output) printStatusResult(s StatusResult) {
	fmt.Printf("Connectivity: %s\n", s.Connectivity)
	if s.Error != "" {
		fmt.Printf("Last error: %s\n", s.Error)
	}
}

func (o *Output) printLogDates(d LogDates) {
	if len(d.Dates) == 0 {
		fmt.Println("No logs saved")
		return
	}
	fmt.Printf("Saved logs (%d):\n", len(d.Dates))
	for _, date := range d.Dates {
		fmt.Printf("  %s\n", date)
	}
}

func (o *Output) printSnapshot(s SnapshotResult) {
	o.printPlayers(s.Players)
	fmt.Println()
	o.printStandings(s.Scores)
	if len(s.Games) > 0 {
		fmt.Println()
		o.printGames(s.Games)
	}
	if !s.SavedAt.IsZero() {
		fmt.Printf("\nSaved at: %s\n", s.SavedAt.Format("2006-01-02 15:04:05"))
	}
}

func (o *Output) printHealthResult(h HealthResult) {
	fmt.Printf("Status: %s\n", h.Status)
}

// truncate shortens long strings for single-line display
func truncate(s string, max int) string {
	s = strings.ReplaceAll(s, "\n", " ")
	if len(s) > max {
		return s[:max] + "..."
	}
	return s
}
