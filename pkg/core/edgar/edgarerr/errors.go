// Package edgarerr defines the error kinds surfaced across the EDGAR
// engine. Every kind carries the document identifier. Only
// InputCorruption records the byte offset where the problem was
// detected; InputCorruption, SchemaViolation, OverLimit and
// Degradation carry a short reason code, XBRLParseError and
// HTMLParsingError carry a context string and the wrapped cause
// instead, and DocumentTooLarge carries the size and the limit.
// Propagation policy: degradation recovers locally and is only
// logged, while input corruption, schema violations, and over-limit
// conditions are always surfaced to the caller.
package edgarerr

import "fmt"

// InputCorruption covers malformed XML, unbalanced HTML past graceful
// recovery, and truncated downloads.
type InputCorruption struct {
	DocID  string
	Offset int64
	Reason string
	Err    error
}

func (e *InputCorruption) Error() string {
	return fmt.Sprintf("input corruption in %s at offset %d: %s", e.DocID, e.Offset, e.Reason)
}

func (e *InputCorruption) Unwrap() error { return e.Err }

// SchemaViolation covers an XBRL concept referenced by the instance
// document that is absent from the schema.
type SchemaViolation struct {
	DocID   string
	Concept string
	Reason  string
}

func (e *SchemaViolation) Error() string {
	return fmt.Sprintf("schema violation in %s: concept %q %s", e.DocID, e.Concept, e.Reason)
}

// OverLimit covers a document exceeding the configured size ceiling or
// a request exceeding the fetcher's rate-limit budget. RetryAfter is
// zero when no retry hint applies.
type OverLimit struct {
	DocID      string
	Limit      int64
	Actual     int64
	RetryAfter int64 // seconds; 0 if not applicable
	Reason     string
}

func (e *OverLimit) Error() string {
	if e.RetryAfter > 0 {
		return fmt.Sprintf("over limit for %s (%s): %d > %d, retry after %ds", e.DocID, e.Reason, e.Actual, e.Limit, e.RetryAfter)
	}
	return fmt.Sprintf("over limit for %s (%s): %d > %d", e.DocID, e.Reason, e.Actual, e.Limit)
}

// XBRLParseError wraps a fatal parse failure in the instance document,
// as opposed to a degraded (warn-and-continue) linkbase failure.
type XBRLParseError struct {
	DocID   string
	Context string
	Err     error
}

func (e *XBRLParseError) Error() string {
	return fmt.Sprintf("xbrl parse error in %s (%s): %v", e.DocID, e.Context, e.Err)
}

func (e *XBRLParseError) Unwrap() error { return e.Err }

// HTMLParsingError wraps a best-effort partial HTML parse failure.
type HTMLParsingError struct {
	DocID   string
	Context string
	Err     error
}

func (e *HTMLParsingError) Error() string {
	return fmt.Sprintf("html parsing error in %s (%s): %v", e.DocID, e.Context, e.Err)
}

func (e *HTMLParsingError) Unwrap() error { return e.Err }

// DocumentTooLarge is returned when a document exceeds MaxDocumentSize.
type DocumentTooLarge struct {
	DocID string
	Size  int64
	Max   int64
}

func (e *DocumentTooLarge) Error() string {
	return fmt.Sprintf("document %s too large: %d bytes exceeds max %d", e.DocID, e.Size, e.Max)
}

// Degradation is never returned from a public API; it is logged as a
// warning (see obslog) and parsing continues with sensible defaults.
// It is still a named type so callers that capture diagnostics (e.g. a
// batch report) have something concrete to collect.
type Degradation struct {
	DocID  string
	Reason string
}

func (e *Degradation) Error() string {
	return fmt.Sprintf("degraded in %s: %s", e.DocID, e.Reason)
}

// BatchResult is the two-arm (successes, failures) result shape used by
// every batch operation named in spec.md: a single bad filing never
// aborts the rest of the batch.
type BatchResult[T any] struct {
	Successes []T
	Failures  []BatchFailure
}

// BatchFailure pairs a failed input identifier with its error.
type BatchFailure struct {
	DocID string
	Err   error
}

func (r *BatchResult[T]) AddSuccess(v T) { r.Successes = append(r.Successes, v) }

func (r *BatchResult[T]) AddFailure(docID string, err error) {
	r.Failures = append(r.Failures, BatchFailure{DocID: docID, Err: err})
}
