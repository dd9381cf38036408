package main

import (
	"os"

	"droplet/internal/cli"
)

func main() {
	os.Exit(cli.Execute())
}
