// Package retry provides backoff retry logic for transient failures.
//
// The [Do] function retries an operation with a configurable number of
// attempts and either a fixed delay schedule or exponential backoff. It
// is used for GitHub API calls and archive downloads, which may fail
// transiently.
package retry
