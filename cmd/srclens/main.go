package main

import (
	"os"

	"github.com/dshills/srclens/internal/cli"
)

func main() {
	os.Exit(cli.Run())
}
