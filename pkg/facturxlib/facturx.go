// Package facturxlib provides a public API for producing hybrid Factur-X
// invoices: a serialized EN16931 payload embedded into a rendered PDF.
//
// Example usage:
//
//	gen := facturxlib.NewGenerator()
//	out, result, err := gen.Generate(ctx, invoice, seller, buyer, pdfBytes)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	os.WriteFile("invoice.pdf", out, 0o644)
package facturxlib

import "github.com/rezonia/facturx-engine/internal/model"

// Re-export core types for public API
type (
	Invoice  = model.Invoice
	LineItem = model.LineItem
	Party    = model.Party
)

// Re-export error types
type (
	ValidationError     = model.ValidationError
	LineItemError       = model.LineItemError
	ContainerParseError = model.ContainerParseError
	EmbedError          = model.EmbedError
)
