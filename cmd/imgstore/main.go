package main

import (
	"os"

	"github.com/epfl-cs212/imgstore/internal/cli"
)

func main() {
	os.Exit(cli.Run(os.Stdout, os.Stderr, os.Args[1:]))
}
