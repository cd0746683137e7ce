// Package extractors holds the metric extractors for Velvet output directories.
// Each extractor registers itself with the extract registry on init.
package extractors

// Artifact file names inside a Velvet output directory.
const (
	RoadmapFile  = "Roadmaps"
	ContigsFile  = "contigs.fa"
	CoverageFile = "stats.txt"
)

// Stages fix the extraction order within a directory.
const (
	StageRoadmap = iota
	StageContigs
	StageCoverage
)
