// Package ingest feeds service packages into the catalog.
//
// The Pipeline stores submitted packages immediately, then generates their
// embeddings on a worker pool so submission latency stays independent of
// the embedding model. Embedding failures are logged and retried by the
// backfill job rather than failing the submission.
package ingest
