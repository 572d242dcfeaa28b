// Package main is the entry point for the bfrpg rules CLI
package main

import (
	"fmt"
	"os"

	"github.com/KirkDiggler/rpg-toolkit/dice"
)

func main() {
	if err := newRootCmd(dice.DefaultRoller).Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
