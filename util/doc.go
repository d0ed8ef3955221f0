// Package util provides small parsing helpers: human-readable size strings
// for upload limits and secret masking for safe credential logging.
package util
