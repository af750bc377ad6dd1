package model

// Invoice carries the business data of a single invoice as handed over by
// the upstream invoicing layer. Amounts, rates and dates are kept as the
// strings the upstream layer produced; parsing happens only when the values
// cross the presentation boundary into the structured payload. The engine
// never mutates an Invoice.
type Invoice struct {
	// Number is the seller-unique invoice identifier.
	Number string `json:"number"`

	// IssueDate and DueDate are ISO calendar dates (YYYY-MM-DD).
	IssueDate string `json:"issue_date"`
	DueDate   string `json:"due_date"`

	// Currency is the ISO 4217 code, e.g. "EUR".
	Currency string `json:"currency"`

	// SubTotal, TaxAmount and TotalAmount are decimal strings.
	// TotalAmount = SubTotal + TaxAmount is enforced upstream.
	SubTotal    string `json:"sub_total"`
	TaxAmount   string `json:"tax_amount"`
	TotalAmount string `json:"total_amount"`

	// TaxRate is a fraction in [0,1), e.g. "0.19" for 19%.
	TaxRate string `json:"tax_rate"`

	// Items in insertion order; position determines the emitted line number.
	Items []LineItem `json:"items"`
}

// LineItem is a single invoice line. All numeric fields are decimal strings
// and are passed through verbatim; TotalPrice is not recomputed.
type LineItem struct {
	Description string `json:"description"`
	Quantity    string `json:"quantity"`
	UnitPrice   string `json:"unit_price"`
	TotalPrice  string `json:"total_price"`
}

// Party describes an invoice party (seller or buyer). Only Name is
// mandatory. IBAN and BIC are meaningful for the seller only.
type Party struct {
	Name       string `json:"name"`
	Street     string `json:"street,omitempty"`
	PostalCode string `json:"postal_code,omitempty"`
	City       string `json:"city,omitempty"`
	Country    string `json:"country,omitempty"`
	TaxID      string `json:"tax_id,omitempty"`
	IBAN       string `json:"iban,omitempty"`
	BIC        string `json:"bic,omitempty"`
}

// HasAddress reports whether any postal address field is present.
func (p Party) HasAddress() bool {
	return p.Street != "" || p.PostalCode != "" || p.City != "" || p.Country != ""
}

// Validate checks the structural minimum the engine itself depends on.
// Business-rule validation (amount arithmetic, due-date logic) is owned by
// the upstream layer and not repeated here.
func (inv *Invoice) Validate() error {
	if inv.Number == "" {
		return NewValidationError("number", nil, "required", "invoice number is required")
	}
	if inv.IssueDate == "" {
		return NewValidationError("issue_date", nil, "required", "issue date is required")
	}
	if inv.DueDate == "" {
		return NewValidationError("due_date", nil, "required", "due date is required")
	}
	if inv.Currency == "" {
		return NewValidationError("currency", nil, "required", "currency code is required")
	}
	return nil
}
