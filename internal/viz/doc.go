// Package viz provides terminal presentation for simulation runs.
//
//   - styles: lipgloss styles for CLI status lines
//   - [Trace]: sampled energy and spread history rendered with asciigraph
//   - [Live]: bubbletea program that steps a simulator and draws the bodies
//     on a braille [Canvas]
//
// Nothing here mutates simulation state except [Live], which drives its
// simulator through Step like any other caller.
package viz
