package main

import (
	_ "github.com/tursodatabase/go-libsql"

	"github.com/emiliopalmerini/mood/internal/cli"
)

func main() {
	cli.Execute()
}
