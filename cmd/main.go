package main

import (
	"os"
	// The answer window is defined in a fixed IANA zone; embed zone data so
	// minimal container images can still resolve it.
	_ "time/tzdata"

	"daily-riddle-service/internal/cli"
)

func main() {
	if err := cli.Execute(); err != nil {
		os.Exit(1)
	}
}
