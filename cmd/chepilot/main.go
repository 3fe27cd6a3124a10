package main

import (
	"os"

	"github.com/chepilot/menubot/internal/cli"
)

func main() {
	os.Exit(cli.Execute())
}
