// Package viewer renders bundles for display and resolves the file
// references they contain against local workspace roots.
//
// RenderHTML produces a standalone page: markdown files are rendered and
// sanitized, other files are escaped into code blocks, and file references
// in either become file-reference anchors. RenderTerminal produces styled
// text for a terminal. Panel holds the single bundle currently on display.
package viewer
