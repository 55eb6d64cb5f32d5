// Package source provides built-in roster source implementations.
//
// Roster sources supply the job names an engine is populated with.
// The package includes:
//
//   - Static: Fixed list of job names
//   - Spreadsheet: First column of an .xlsx workbook
//
// Custom sources can be implemented by satisfying the types.RosterSource interface.
package source
