package data

// Key identifies a single named metric, e.g. "N50" or "exp_cov".
type Key string

const (
	// KeyKmerLength is the hash (k-mer) length read from the Roadmaps header.
	KeyKmerLength Key = "kmer_length"

	// Contig metrics, in the order the contigs extractor emits them.
	KeyNSequences      Key = "n_sequences"
	KeyNBases          Key = "n_bases"
	KeyNN              Key = "n_N"
	KeyNNonN           Key = "n_non_N"
	KeyNLongSequences  Key = "n_long_sequences"
	KeyNShortSequences Key = "n_short_sequences"
	KeyMinLength       Key = "min_length"
	KeyMaxLength       Key = "max_length"
	KeyAvgLength       Key = "avg_length"
	KeyN50             Key = "N50"

	// KeyExpCov is the estimated expected (modal) k-mer coverage. It may be
	// nil when no stats row qualifies.
	KeyExpCov Key = "exp_cov"
)
