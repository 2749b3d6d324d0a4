// Package cmd implements the cobra command tree for the clipctl CLI:
// authentication, account info, clip sharing, daemon control, configuration,
// and shell completion.
package cmd
