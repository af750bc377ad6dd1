// Package inspect reads finished hybrid containers back: it locates the
// embedded structured payload by its fixed filename and reports the
// document identifiers a delivery workflow needs for auditing.
package inspect

import (
	"bytes"
	"fmt"
	"io"

	"github.com/beevik/etree"
	"github.com/pdfcpu/pdfcpu/pkg/api"
	pdfmodel "github.com/pdfcpu/pdfcpu/pkg/pdfcpu/model"

	"github.com/rezonia/facturx-engine/internal/facturx"
	"github.com/rezonia/facturx-engine/internal/model"
)

// Report summarizes one inspected container.
type Report struct {
	// AttachmentFound reports whether the container carries factur-x.xml.
	AttachmentFound bool `json:"attachment_found"`

	// PayloadBytes is the size of the extracted payload.
	PayloadBytes int `json:"payload_bytes"`

	// Guideline is the conformance guideline URN declared by the payload.
	Guideline string `json:"guideline,omitempty"`

	// InvoiceNumber is the invoice id carried in the payload header.
	InvoiceNumber string `json:"invoice_number,omitempty"`

	// Attachments lists all embedded file names found in the container.
	Attachments []string `json:"attachments,omitempty"`
}

// Inspector extracts and summarizes embedded invoice payloads.
type Inspector struct {
	conf *pdfmodel.Configuration
}

// NewInspector creates a new inspector
func NewInspector() *Inspector {
	conf := pdfmodel.NewDefaultConfiguration()
	conf.ValidationMode = pdfmodel.ValidationRelaxed
	return &Inspector{conf: conf}
}

// Payload returns the raw bytes of the embedded factur-x.xml attachment.
func (i *Inspector) Payload(container []byte) ([]byte, error) {
	attachments, err := api.ExtractAttachmentsRaw(bytes.NewReader(container), "", []string{facturx.AttachmentName}, i.conf)
	if err != nil {
		return nil, model.NewContainerParseError("unable to extract attachments", err)
	}
	for _, a := range attachments {
		if a.ID == facturx.AttachmentName {
			data, err := io.ReadAll(a)
			if err != nil {
				return nil, model.NewContainerParseError("unable to read attachment stream", err)
			}
			return data, nil
		}
	}
	return nil, fmt.Errorf("no %s attachment found", facturx.AttachmentName)
}

// Inspect produces a report for the given container bytes.
func (i *Inspector) Inspect(container []byte) (*Report, error) {
	attachments, err := api.Attachments(bytes.NewReader(container), i.conf)
	if err != nil {
		return nil, model.NewContainerParseError("unable to list attachments", err)
	}

	names := make([]string, 0, len(attachments))
	for _, a := range attachments {
		names = append(names, a.ID)
	}

	report := &Report{Attachments: names}

	payload, err := i.Payload(container)
	if err != nil {
		// A container without the payload is still reportable.
		return report, nil
	}

	report.AttachmentFound = true
	report.PayloadBytes = len(payload)

	doc := etree.NewDocument()
	if err := doc.ReadFromBytes(payload); err != nil {
		return report, fmt.Errorf("embedded payload is not well-formed XML: %w", err)
	}

	if elem := doc.FindElement("//ram:GuidelineSpecifiedDocumentContextParameter/ram:ID"); elem != nil {
		report.Guideline = elem.Text()
	}
	if elem := doc.FindElement("//rsm:ExchangedDocument/ram:ID"); elem != nil {
		report.InvoiceNumber = elem.Text()
	}

	return report, nil
}
