// Package prune removes catalog items that can no longer be served.
//
// An item is pruned when its source is missing from the stored source quality
// snapshot or when it fails validation. The Pruner walks the catalog in
// ID-ordered batches, deletes with retry and exponential backoff, and reports
// progress to a writer.
package prune
