// Package sanitizer normalizes free-text input before validation and storage.
//
// All functions are idempotent: applying them twice gives the same result as applying
// them once. Invalid input yields an empty string rather than an error, leaving the
// decision to the validator.
package sanitizer
