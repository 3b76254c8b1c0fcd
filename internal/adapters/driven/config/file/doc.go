// Package file implements a TOML-backed configuration store at
// ~/.micronskit/config.toml. Besides the generic key/value interface it
// carries the registry of external bulk-data stores shared by the research
// pipelines.
package file
