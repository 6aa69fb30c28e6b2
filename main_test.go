package main

import (
	"os"
	"testing"
)

func TestMainShowsHelpWithoutExit(t *testing.T) {
	originalArgs := os.Args
	defer func() { os.Args = originalArgs }()

	// No subcommand prints help and exits the function normally;
	// reaching the end of main means os.Exit was not called.
	os.Args = []string{"time-report", "--help"}
	main()
}
