// Package auth implements the clipctl login flows: browser-based OAuth with a
// loopback callback listener, email/password login, the two-factor challenge
// and enrollment flows, and session token storage via keychain or file.
package auth
