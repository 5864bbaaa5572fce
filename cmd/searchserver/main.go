// Package main provides the entry point for the searchserver CLI.
package main

import (
	"os"

	"github.com/Adithya-Monish-Kumar-K/search-server/cmd/searchserver/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
