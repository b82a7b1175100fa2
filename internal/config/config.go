// Package config holds the tunable defaults shared across seqmap's command
// line tools, named constants in the style of the teacher's per-concern
// constant blocks.
package config

// Query loading defaults.
const (
	DefaultQueryCount = 100 // --query_ct default
	DefaultErrors      = 0   // --errors default
)

// naive_search worker-pool defaults.
const (
	DefaultMinBlock = 256 // --min_block default
)
