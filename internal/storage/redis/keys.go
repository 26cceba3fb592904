package redis

import (
	"fmt"

	"github.com/edgewalker/leagueops/internal/model"
)

// Key prefix for all league data
const keyPrefix = "leagueops"

// Key generation functions for each table

// playerKey returns the Redis key for a player row
func playerKey(storedName string) string {
	return fmt.Sprintf("%s:player:%s", keyPrefix, storedName)
}

// playersIndexKey returns the Redis key for the SET of stored player names
func playersIndexKey() string {
	return fmt.Sprintf("%s:idx:players", keyPrefix)
}

// scoresKey returns the Redis key for the team -> record HASH
func scoresKey() string {
	return fmt.Sprintf("%s:team_scores", keyPrefix)
}

// gameKey returns the Redis key for a game row
func gameKey(id model.GameID) string {
	return fmt.Sprintf("%s:game:%s", keyPrefix, id)
}

// gamesIndexKey returns the Redis key for the SET of game ids
func gamesIndexKey() string {
	return fmt.Sprintf("%s:idx:games", keyPrefix)
}

// logKey returns the Redis key for a dated league log payload
func logKey(date string) string {
	return fmt.Sprintf("%s:log:%s", keyPrefix, date)
}

// logsIndexKey returns the Redis key for the SET of log dates
func logsIndexKey() string {
	return fmt.Sprintf("%s:idx:logs", keyPrefix)
}
