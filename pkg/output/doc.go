// Package output renders command results.
//
// Three formats are supported: rich terminal output (lipgloss styles and
// pterm prefix printers), plain text, and JSON. FormatAuto picks terminal or
// text from the output stream's capabilities.
package output
