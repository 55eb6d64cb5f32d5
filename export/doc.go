// Package export provides result exporters that serialize assignment rounds.
//
// Custom exporters can be implemented by satisfying the types.ResultExporter interface.
package export
