// Package diagnostic collects structured errors, warnings and notes produced
// while converting a set of documents.
//
// Key capabilities:
//   - Stable codes per failure kind (missing document, bad JSON, bad item id)
//   - Document and field path attribution
//   - A combined error for callers that only need pass/fail
package diagnostic
