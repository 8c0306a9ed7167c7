package main

import "github.com/pfrederiksen/nfl-scrape/internal/cli"

func main() {
	cli.Execute()
}
