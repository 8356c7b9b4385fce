// Package ingestion loads catalog feeds into the catalog store.
//
// DecodeFeed turns upstream catalog JSON into media items. The Pipeline type
// manages the write side of ingestion:
//   - Validating items and rejecting the ones the ranking core cannot use
//   - Assigning content-derived IDs and collapsing duplicates
//   - Storing batches concurrently on a worker pool
//
// Rejected items are logged and counted in the returned Report; storage
// failures are joined into the error returned by Ingest.
package ingestion
