// Command clipset prepares video datasets for training pipelines: it builds
// shuffled manifests from JSON metadata, inspects serialized video records,
// reads and probes video files, and maintains a SQLite catalog of ingested
// dataset splits.
package main
