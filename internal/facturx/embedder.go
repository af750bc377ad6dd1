// Package facturx turns a rendered invoice PDF into a hybrid Factur-X
// container: the structured payload is attached under a fixed filename and
// the PDF/A-3 conformance metadata is stamped into the document catalog.
package facturx

import (
	"bytes"
	"context"
	"time"

	"github.com/pdfcpu/pdfcpu/pkg/api"
	pdfmodel "github.com/pdfcpu/pdfcpu/pkg/pdfcpu/model"
	"github.com/pdfcpu/pdfcpu/pkg/pdfcpu/types"
	"github.com/sirupsen/logrus"

	"github.com/rezonia/facturx-engine/internal/model"
)

var logger = logrus.WithField("component", "facturx.embedder")

// Embedded resource contract. Downstream consumers locate the payload by
// this exact filename.
const (
	AttachmentName = "factur-x.xml"
	AttachmentMIME = "text/xml"
	AttachmentDesc = "Factur-X/ZUGFeRD structured invoice data"
)

// Embedder attaches a serialized payload to an existing PDF container and
// stamps the archival conformance metadata. It holds no per-call state and
// is safe for concurrent use; each Embed call is an independent transform
// from old bytes to new bytes.
type Embedder struct {
	now  func() time.Time
	conf *pdfmodel.Configuration
}

// Option configures an Embedder
type Option func(*Embedder)

// WithClock overrides the time source used for attachment timestamps.
func WithClock(now func() time.Time) Option {
	return func(e *Embedder) {
		e.now = now
	}
}

// NewEmbedder creates a new embedder
func NewEmbedder(opts ...Option) *Embedder {
	conf := pdfmodel.NewDefaultConfiguration()
	conf.ValidationMode = pdfmodel.ValidationRelaxed

	e := &Embedder{
		now:  time.Now,
		conf: conf,
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Embed parses the container, attaches the payload as factur-x.xml, writes
// the conformance metadata and serializes the result to fresh bytes. The
// input slices are never modified. A container that cannot be parsed
// surfaces as *model.ContainerParseError; every later failure is wrapped
// into *model.EmbedError so callers see embedding as atomic.
func (e *Embedder) Embed(ctx context.Context, container, payload []byte) ([]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, model.NewEmbedError("begin", "context cancelled", err)
	}

	pdfCtx, err := api.ReadContext(bytes.NewReader(container), e.conf)
	if err != nil {
		return nil, model.NewContainerParseError("unable to read PDF container", err)
	}
	if err := api.ValidateContext(pdfCtx); err != nil {
		return nil, model.NewContainerParseError("PDF container failed validation", err)
	}
	if err := api.OptimizeContext(pdfCtx); err != nil {
		e.fail("optimize", err)
		return nil, model.NewEmbedError("optimize", "unable to prepare container for writing", err)
	}

	modTime := e.now()
	attachment := pdfmodel.Attachment{
		Reader:  bytes.NewReader(payload),
		ID:      AttachmentName,
		Desc:    AttachmentDesc,
		ModTime: &modTime,
	}
	if err := pdfCtx.AddAttachment(attachment, false); err != nil {
		e.fail("attach", err)
		return nil, model.NewEmbedError("attach", "unable to attach "+AttachmentName, err)
	}
	tagPayloadStream(pdfCtx, payload)

	if err := stampMetadata(pdfCtx, modTime); err != nil {
		e.fail("metadata", err)
		return nil, model.NewEmbedError("metadata", "unable to write conformance metadata", err)
	}

	var out bytes.Buffer
	if err := api.WriteContext(pdfCtx, &out); err != nil {
		e.fail("write", err)
		return nil, model.NewEmbedError("write", "unable to serialize container", err)
	}

	logger.WithFields(logrus.Fields{
		"container_bytes": len(container),
		"payload_bytes":   len(payload),
		"output_bytes":    out.Len(),
	}).Debug("embedded structured payload")

	return out.Bytes(), nil
}

// tagPayloadStream declares the MIME type on the embedded file stream
// carrying the payload. AddAttachment creates the stream without a Subtype,
// so the stream is located by its content and tagged before writing.
func tagPayloadStream(ctx *pdfmodel.Context, payload []byte) {
	for _, entry := range ctx.Table {
		if entry == nil || entry.Free || entry.Object == nil {
			continue
		}
		sd, ok := entry.Object.(types.StreamDict)
		if !ok {
			continue
		}
		if typ := sd.Dict.Type(); typ == nil || *typ != "EmbeddedFile" {
			continue
		}
		if !bytes.Equal(sd.Content, payload) {
			continue
		}
		sd.Dict["Subtype"] = types.Name(AttachmentMIME)
	}
}

func (e *Embedder) fail(stage string, err error) {
	logger.WithField("stage", stage).WithError(err).Error("embedding failed")
}
