// Package ui writes run progress to the terminal.
//
// A [Printer] turns [tasks.ProgressUpdate] values into one line each on stderr. Lines are styled with a lipgloss
// [Palette] only when the writer is a terminal, so redirected logs stay plain text. Stdout is never touched here;
// it carries the formatted result.
package ui
