// Package retry provides exponential backoff retry logic for transient failures.
//
// The [WithExponentialBackoff] function retries an operation with configurable
// max attempts, initial delay, and maximum delay. It is used for repeated
// health probing after an activation and for offsite backup uploads.
package retry
