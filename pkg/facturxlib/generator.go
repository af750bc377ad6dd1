package facturxlib

import (
	"context"

	"github.com/rezonia/facturx-engine/internal/cii"
	"github.com/rezonia/facturx-engine/internal/facturx"
	"github.com/rezonia/facturx-engine/internal/inspect"
)

// Result carries the serialized payload and the warnings recorded while
// formatting header-level values.
type Result struct {
	// Payload is the structured XML attached to the container.
	Payload []byte `json:"-"`

	// Warnings lists header-level values substituted with zero.
	Warnings []string `json:"warnings,omitempty"`
}

// Generator combines the payload serializer and the container embedder
// into the end-to-end transform an invoice-delivery workflow consumes.
// It is stateless and safe for concurrent use across invoices.
type Generator struct {
	serializer *cii.Serializer
	embedder   *facturx.Embedder
	inspector  *inspect.Inspector
}

// Option configures a Generator
type Option func(*Generator)

// WithEmbedder overrides the default embedder, e.g. to inject a clock.
func WithEmbedder(e *facturx.Embedder) Option {
	return func(g *Generator) {
		g.embedder = e
	}
}

// NewGenerator creates a new generator with default components
func NewGenerator(opts ...Option) *Generator {
	g := &Generator{
		serializer: cii.NewSerializer(),
		embedder:   facturx.NewEmbedder(),
		inspector:  inspect.NewInspector(),
	}
	for _, opt := range opts {
		opt(g)
	}
	return g
}

// Serialize produces the structured payload for one invoice.
func (g *Generator) Serialize(inv *Invoice, seller, buyer *Party) (*Result, error) {
	if err := inv.Validate(); err != nil {
		return nil, err
	}
	r, err := g.serializer.Serialize(inv, seller, buyer)
	if err != nil {
		return nil, err
	}
	return &Result{Payload: r.XML, Warnings: r.Warnings}, nil
}

// Embed attaches an already serialized payload to a rendered container.
func (g *Generator) Embed(ctx context.Context, container, payload []byte) ([]byte, error) {
	return g.embedder.Embed(ctx, container, payload)
}

// Generate serializes the invoice and embeds the payload into the rendered
// container in one call, returning the compliant container bytes.
func (g *Generator) Generate(ctx context.Context, inv *Invoice, seller, buyer *Party, container []byte) ([]byte, *Result, error) {
	result, err := g.Serialize(inv, seller, buyer)
	if err != nil {
		return nil, nil, err
	}

	out, err := g.embedder.Embed(ctx, container, result.Payload)
	if err != nil {
		return nil, nil, err
	}

	return out, result, nil
}

// Inspect reports on a finished container.
func (g *Generator) Inspect(container []byte) (*inspect.Report, error) {
	return g.inspector.Inspect(container)
}

// ExtractPayload returns the embedded payload of a finished container.
func (g *Generator) ExtractPayload(container []byte) ([]byte, error) {
	return g.inspector.Payload(container)
}
