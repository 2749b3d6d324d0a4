// Package term provides interactive terminal prompts behind a small
// interface so command flows stay testable without a TTY.
package term
