// Package main is the entry point for the sekr8s CLI.
package main

import (
	"os"

	"github.com/Nordstrom/sekr8s/cmd/sekr8s/app"
)

func main() {
	os.Exit(app.Run())
}
