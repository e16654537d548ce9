package main

import (
	"watch-listing-stats/internal/cli"
)

func main() {
	cli.Execute()
}
