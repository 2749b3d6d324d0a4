// Package system holds the CLI's OS-level collaborators: the capture daemon
// unit, the clipboard, and local clip files. Commands depend on the
// interfaces; the exec-backed defaults are intentionally thin.
package system
