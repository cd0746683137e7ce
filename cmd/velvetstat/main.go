package main

import (
	"velvetstat/internal/cli"
	_ "velvetstat/internal/extract/extractors"
)

// These variables are populated by the build via -ldflags.
var (
	version = "dev"
	commit  = "unknown"
	date    = "unknown"
)

func main() {
	cli.SetBuildInfo(version, commit, date)
	cli.Execute()
}
