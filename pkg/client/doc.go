// Package client implements the HTTP client for the Clipshare API.
package client
