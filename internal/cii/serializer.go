// Package cii serializes invoice business data into a Factur-X BASIC
// profile CrossIndustryInvoice payload (EN16931 semantic model, CII D16B
// syntax). The payload is assembled from named blocks emitted in the fixed
// order the schema dictates; each block is a pure function of its inputs.
package cii

import (
	"strings"

	"github.com/rezonia/facturx-engine/internal/model"
)

// Schema contract strings. These identify the targeted conformance level
// and document type and are emitted verbatim, never derived from data.
const (
	// GuidelineID is the Factur-X 1.0 BASIC guideline URN.
	GuidelineID = "urn:cen.eu:en16931:2017#compliant#urn:factur-x.eu:1p0:basic"

	// DocumentTypeCode 380 is a commercial invoice (UNTDID 1001).
	DocumentTypeCode = "380"

	// UnitCode C62 is "one" (UN/ECE rec 20), the fixed unit of measure.
	UnitCode = "C62"

	// TaxTypeCode and TaxCategoryStandard select VAT at the standard rate
	// (UNTDID 5153 / 5305).
	TaxTypeCode         = "VAT"
	TaxCategoryStandard = "S"

	// PaymentMeansCode 58 is a SEPA credit transfer (UNTDID 4461).
	PaymentMeansCode = "58"
)

const (
	nsRSM = "urn:un:unece:uncefact:data:standard:CrossIndustryInvoice:100"
	nsRAM = "urn:un:unece:uncefact:data:standard:ReusableAggregateBusinessInformationEntity:100"
	nsUDT = "urn:un:unece:uncefact:data:standard:UnqualifiedDataType:100"
)

// Result holds a serialized payload together with the warnings recorded
// while formatting header-level values.
type Result struct {
	// XML is the UTF-8 encoded CrossIndustryInvoice payload.
	XML []byte

	// Warnings lists header-level values that were substituted with zero.
	Warnings []string
}

// Serializer maps invoice business data onto the CII payload. It is
// stateless and safe for concurrent use.
type Serializer struct{}

// NewSerializer creates a new serializer
func NewSerializer() *Serializer {
	return &Serializer{}
}

// Serialize produces the structured payload for one invoice. Input values
// are never mutated. Header-level formatting problems surface as warnings
// on the Result; line-level formatting problems abort with a typed error
// and no partial payload is returned.
func (s *Serializer) Serialize(inv *model.Invoice, seller, buyer *model.Party) (*Result, error) {
	var warnings []string
	var b strings.Builder

	b.WriteString("<?xml version='1.0' encoding='UTF-8'?>\n")
	b.WriteString("<rsm:CrossIndustryInvoice xmlns:rsm=\"" + nsRSM + "\" xmlns:ram=\"" + nsRAM + "\" xmlns:udt=\"" + nsUDT + "\">\n")

	// Fixed block order per the schema's structural rules.
	b.WriteString(s.contextBlock())
	b.WriteString(s.headerBlock(inv))

	b.WriteString("  <rsm:SupplyChainTradeTransaction>\n")
	for i, item := range inv.Items {
		block, err := s.lineItemBlock(i+1, item)
		if err != nil {
			return nil, err
		}
		b.WriteString(block)
	}
	s.crossCheckTotals(inv, &warnings)

	b.WriteString(s.agreementBlock(seller, buyer))
	b.WriteString(s.deliveryBlock(inv))
	b.WriteString(s.settlementBlock(inv, seller, &warnings))
	b.WriteString("  </rsm:SupplyChainTradeTransaction>\n")

	b.WriteString("</rsm:CrossIndustryInvoice>\n")

	return &Result{
		XML:      []byte(b.String()),
		Warnings: warnings,
	}, nil
}
