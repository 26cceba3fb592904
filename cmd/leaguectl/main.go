package main

import (
	"github.com/edgewalker/leagueops/internal/cli"
)

func main() {
	cli.Execute()
}
