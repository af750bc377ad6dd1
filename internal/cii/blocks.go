package cii

import (
	"fmt"
	"strings"

	"github.com/rezonia/facturx-engine/internal/model"
)

// Each block builder returns one named fragment of the payload. Optional
// fragments are guarded by explicit presence predicates so the condition
// for emitting them stays independently testable.

// contextBlock declares the guideline the document conforms to.
func (s *Serializer) contextBlock() string {
	return "" +
		"  <rsm:ExchangedDocumentContext>\n" +
		"    <ram:GuidelineSpecifiedDocumentContextParameter>\n" +
		"      <ram:ID>" + GuidelineID + "</ram:ID>\n" +
		"    </ram:GuidelineSpecifiedDocumentContextParameter>\n" +
		"  </rsm:ExchangedDocumentContext>\n"
}

// headerBlock carries the invoice number, the document type code and the
// issue date in compact numeric form.
func (s *Serializer) headerBlock(inv *model.Invoice) string {
	return "" +
		"  <rsm:ExchangedDocument>\n" +
		"    <ram:ID>" + escapeText(inv.Number) + "</ram:ID>\n" +
		"    <ram:TypeCode>" + DocumentTypeCode + "</ram:TypeCode>\n" +
		"    <ram:IssueDateTime>\n" +
		"      <udt:DateTimeString format=\"102\">" + compactDate(inv.IssueDate) + "</udt:DateTimeString>\n" +
		"    </ram:IssueDateTime>\n" +
		"  </rsm:ExchangedDocument>\n"
}

// lineItemBlock emits one trade line. The line id is the 1-based position
// in the item sequence, independent of any caller-supplied identifier.
// Line amounts use the strict formatter: an unusable value aborts the
// whole serialization.
func (s *Serializer) lineItemBlock(line int, item model.LineItem) (string, error) {
	unitPrice, err := s.lineAmount(line, "unit_price", item.UnitPrice)
	if err != nil {
		return "", err
	}
	quantity, err := s.lineAmount(line, "quantity", item.Quantity)
	if err != nil {
		return "", err
	}
	total, err := s.lineAmount(line, "total_price", item.TotalPrice)
	if err != nil {
		return "", err
	}

	return "" +
		"    <ram:IncludedSupplyChainTradeLineItem>\n" +
		"      <ram:AssociatedDocumentLineDocument>\n" +
		"        <ram:LineID>" + fmt.Sprintf("%d", line) + "</ram:LineID>\n" +
		"      </ram:AssociatedDocumentLineDocument>\n" +
		"      <ram:SpecifiedTradeProduct>\n" +
		"        <ram:Name>" + escapeText(item.Description) + "</ram:Name>\n" +
		"      </ram:SpecifiedTradeProduct>\n" +
		"      <ram:SpecifiedLineTradeAgreement>\n" +
		"        <ram:NetPriceProductTradePrice>\n" +
		"          <ram:ChargeAmount>" + unitPrice + "</ram:ChargeAmount>\n" +
		"        </ram:NetPriceProductTradePrice>\n" +
		"      </ram:SpecifiedLineTradeAgreement>\n" +
		"      <ram:SpecifiedLineTradeDelivery>\n" +
		"        <ram:BilledQuantity unitCode=\"" + UnitCode + "\">" + quantity + "</ram:BilledQuantity>\n" +
		"      </ram:SpecifiedLineTradeDelivery>\n" +
		"      <ram:SpecifiedLineTradeSettlement>\n" +
		"        <ram:ApplicableTradeTax>\n" +
		"          <ram:TypeCode>" + TaxTypeCode + "</ram:TypeCode>\n" +
		"          <ram:CategoryCode>" + TaxCategoryStandard + "</ram:CategoryCode>\n" +
		"        </ram:ApplicableTradeTax>\n" +
		"        <ram:SpecifiedTradeSettlementLineMonetarySummation>\n" +
		"          <ram:LineTotalAmount>" + total + "</ram:LineTotalAmount>\n" +
		"        </ram:SpecifiedTradeSettlementLineMonetarySummation>\n" +
		"      </ram:SpecifiedLineTradeSettlement>\n" +
		"    </ram:IncludedSupplyChainTradeLineItem>\n", nil
}

// agreementBlock emits the seller and buyer trade parties.
func (s *Serializer) agreementBlock(seller, buyer *model.Party) string {
	var b strings.Builder

	b.WriteString("    <ram:ApplicableHeaderTradeAgreement>\n")

	b.WriteString("      <ram:SellerTradeParty>\n")
	b.WriteString("        <ram:Name>" + escapeText(seller.Name) + "</ram:Name>\n")
	// Seller address fields are mandatory upstream; the group is always
	// emitted in full, empty values included.
	b.WriteString(s.fullAddressBlock(seller))
	b.WriteString(s.taxRegistrationBlock(seller))
	b.WriteString("      </ram:SellerTradeParty>\n")

	b.WriteString("      <ram:BuyerTradeParty>\n")
	b.WriteString("        <ram:Name>" + escapeText(buyer.Name) + "</ram:Name>\n")
	if buyer.HasAddress() {
		b.WriteString(s.partialAddressBlock(buyer))
	}
	b.WriteString(s.taxRegistrationBlock(buyer))
	b.WriteString("      </ram:BuyerTradeParty>\n")

	b.WriteString("    </ram:ApplicableHeaderTradeAgreement>\n")
	return b.String()
}

// fullAddressBlock emits the complete postal address group.
func (s *Serializer) fullAddressBlock(p *model.Party) string {
	return "" +
		"        <ram:PostalTradeAddress>\n" +
		"          <ram:PostcodeCode>" + escapeText(p.PostalCode) + "</ram:PostcodeCode>\n" +
		"          <ram:LineOne>" + escapeText(p.Street) + "</ram:LineOne>\n" +
		"          <ram:CityName>" + escapeText(p.City) + "</ram:CityName>\n" +
		"          <ram:CountryID>" + escapeText(p.Country) + "</ram:CountryID>\n" +
		"        </ram:PostalTradeAddress>\n"
}

// partialAddressBlock emits only the populated address sub-fields. A
// partial address is legal; callers guard the group itself with
// Party.HasAddress.
func (s *Serializer) partialAddressBlock(p *model.Party) string {
	var b strings.Builder
	b.WriteString("        <ram:PostalTradeAddress>\n")
	if p.PostalCode != "" {
		b.WriteString("          <ram:PostcodeCode>" + escapeText(p.PostalCode) + "</ram:PostcodeCode>\n")
	}
	if p.Street != "" {
		b.WriteString("          <ram:LineOne>" + escapeText(p.Street) + "</ram:LineOne>\n")
	}
	if p.City != "" {
		b.WriteString("          <ram:CityName>" + escapeText(p.City) + "</ram:CityName>\n")
	}
	if p.Country != "" {
		b.WriteString("          <ram:CountryID>" + escapeText(p.Country) + "</ram:CountryID>\n")
	}
	b.WriteString("        </ram:PostalTradeAddress>\n")
	return b.String()
}

// taxRegistrationBlock emits the VAT registration, present only when the
// party carries a tax id.
func (s *Serializer) taxRegistrationBlock(p *model.Party) string {
	if p.TaxID == "" {
		return ""
	}
	return "" +
		"        <ram:SpecifiedTaxRegistration>\n" +
		"          <ram:ID schemeID=\"VA\">" + escapeText(p.TaxID) + "</ram:ID>\n" +
		"        </ram:SpecifiedTaxRegistration>\n"
}

// deliveryBlock emits the delivery event. The data model has no separate
// delivery date, so the issue date is reused.
func (s *Serializer) deliveryBlock(inv *model.Invoice) string {
	return "" +
		"    <ram:ApplicableHeaderTradeDelivery>\n" +
		"      <ram:ActualDeliverySupplyChainEvent>\n" +
		"        <ram:OccurrenceDateTime>\n" +
		"          <udt:DateTimeString format=\"102\">" + compactDate(inv.IssueDate) + "</udt:DateTimeString>\n" +
		"        </ram:OccurrenceDateTime>\n" +
		"      </ram:ActualDeliverySupplyChainEvent>\n" +
		"    </ram:ApplicableHeaderTradeDelivery>\n"
}

// paymentMeansBlock emits SEPA payment routing. The block exists only when
// the seller has an IBAN; the BIC is nested inside it and can therefore
// never appear without the IBAN.
func (s *Serializer) paymentMeansBlock(seller *model.Party) string {
	if seller.IBAN == "" {
		return ""
	}
	var b strings.Builder
	b.WriteString("      <ram:SpecifiedTradeSettlementPaymentMeans>\n")
	b.WriteString("        <ram:TypeCode>" + PaymentMeansCode + "</ram:TypeCode>\n")
	b.WriteString("        <ram:PayeePartyCreditorFinancialAccount>\n")
	b.WriteString("          <ram:IBANID>" + escapeText(seller.IBAN) + "</ram:IBANID>\n")
	b.WriteString("        </ram:PayeePartyCreditorFinancialAccount>\n")
	if seller.BIC != "" {
		b.WriteString("        <ram:PayeeSpecifiedCreditorFinancialInstitution>\n")
		b.WriteString("          <ram:BICID>" + escapeText(seller.BIC) + "</ram:BICID>\n")
		b.WriteString("        </ram:PayeeSpecifiedCreditorFinancialInstitution>\n")
	}
	b.WriteString("      </ram:SpecifiedTradeSettlementPaymentMeans>\n")
	return b.String()
}

// settlementBlock emits currency, payment means, the invoice-level tax
// total, payment terms and the monetary summation. Header amounts use the
// lenient formatter and record substitutions as warnings.
func (s *Serializer) settlementBlock(inv *model.Invoice, seller *model.Party, warnings *[]string) string {
	taxAmount := s.headerAmount("tax_amount", inv.TaxAmount, warnings)
	subTotal := s.headerAmount("sub_total", inv.SubTotal, warnings)
	totalAmount := s.headerAmount("total_amount", inv.TotalAmount, warnings)
	taxRate := s.headerPercent("tax_rate", inv.TaxRate, warnings)

	var b strings.Builder
	b.WriteString("    <ram:ApplicableHeaderTradeSettlement>\n")
	b.WriteString("      <ram:InvoiceCurrencyCode>" + escapeText(inv.Currency) + "</ram:InvoiceCurrencyCode>\n")
	b.WriteString(s.paymentMeansBlock(seller))
	b.WriteString("      <ram:ApplicableTradeTax>\n")
	b.WriteString("        <ram:CalculatedAmount>" + taxAmount + "</ram:CalculatedAmount>\n")
	b.WriteString("        <ram:TypeCode>" + TaxTypeCode + "</ram:TypeCode>\n")
	b.WriteString("        <ram:BasisAmount>" + subTotal + "</ram:BasisAmount>\n")
	b.WriteString("        <ram:CategoryCode>" + TaxCategoryStandard + "</ram:CategoryCode>\n")
	b.WriteString("        <ram:RateApplicablePercent>" + taxRate + "</ram:RateApplicablePercent>\n")
	b.WriteString("      </ram:ApplicableTradeTax>\n")
	b.WriteString("      <ram:SpecifiedTradePaymentTerms>\n")
	b.WriteString("        <ram:DueDateDateTime>\n")
	b.WriteString("          <udt:DateTimeString format=\"102\">" + compactDate(inv.DueDate) + "</udt:DateTimeString>\n")
	b.WriteString("        </ram:DueDateDateTime>\n")
	b.WriteString("      </ram:SpecifiedTradePaymentTerms>\n")
	b.WriteString("      <ram:SpecifiedTradeSettlementHeaderMonetarySummation>\n")
	b.WriteString("        <ram:LineTotalAmount>" + subTotal + "</ram:LineTotalAmount>\n")
	b.WriteString("        <ram:TaxBasisTotalAmount>" + subTotal + "</ram:TaxBasisTotalAmount>\n")
	b.WriteString("        <ram:TaxTotalAmount currencyID=\"" + escapeText(inv.Currency) + "\">" + taxAmount + "</ram:TaxTotalAmount>\n")
	// No partial-payment concept: the amount due always equals the grand
	// total.
	b.WriteString("        <ram:GrandTotalAmount>" + totalAmount + "</ram:GrandTotalAmount>\n")
	b.WriteString("        <ram:DuePayableAmount>" + totalAmount + "</ram:DuePayableAmount>\n")
	b.WriteString("      </ram:SpecifiedTradeSettlementHeaderMonetarySummation>\n")
	b.WriteString("    </ram:ApplicableHeaderTradeSettlement>\n")
	return b.String()
}
