package cii

import (
	"fmt"
	"strings"

	"github.com/shopspring/decimal"

	dec "github.com/rezonia/facturx-engine/internal/decimal"
	"github.com/rezonia/facturx-engine/internal/model"
)

// The serializer uses two deliberately different numeric formatters.
//
// Header and settlement amounts degrade gracefully: an unparsable value is
// replaced with a fixed-precision zero and the substitution is recorded as
// a warning for the audit trail. Failing the whole document over one bad
// header field is worse than emitting a flagged zero a reviewer will catch.
//
// Line amounts are strict: a line value that cannot be parsed aborts
// serialization with a typed error. A defaulted line amount would corrupt
// the totals the receiver reconciles against.

// headerAmount formats a header-level amount to two fractional digits.
// Unparsable input yields "0.00" and a recorded warning, never an error.
func (s *Serializer) headerAmount(field, raw string, warnings *[]string) string {
	d, err := dec.FromString(strings.TrimSpace(raw))
	if err != nil {
		*warnings = append(*warnings, fmt.Sprintf("%s: unparsable value %q, substituted %s", field, raw, dec.FormatZero()))
		return dec.FormatZero()
	}
	return dec.Format(d)
}

// headerPercent formats a header-level tax rate, rescaling the stored
// fraction of 1 to a percentage of 100 ("0.19" -> "19.00"). Same lenient
// policy as headerAmount.
func (s *Serializer) headerPercent(field, raw string, warnings *[]string) string {
	d, err := dec.FromString(strings.TrimSpace(raw))
	if err != nil {
		*warnings = append(*warnings, fmt.Sprintf("%s: unparsable value %q, substituted %s", field, raw, dec.FormatZero()))
		return dec.FormatZero()
	}
	return dec.Format(dec.RescalePercent(d))
}

// lineAmount formats a line-level amount to two fractional digits.
// Unparsable or empty input is a contract violation and aborts the line.
func (s *Serializer) lineAmount(line int, field, raw string) (string, error) {
	d, err := dec.FromString(strings.TrimSpace(raw))
	if err != nil {
		return "", model.NewLineItemError(line, field, fmt.Sprintf("unparsable value %q", raw), err)
	}
	return dec.Format(d), nil
}

// crossCheckTotals reconciles the declared sub total against the sum of the
// line totals and flags a negative sub total. Header values are
// presentation totals owned upstream, so discrepancies are recorded as
// warnings and never abort serialization. Unparsable values are skipped
// here; the lenient header formatter already warns about those.
func (s *Serializer) crossCheckTotals(inv *model.Invoice, warnings *[]string) {
	sub, err := dec.FromString(strings.TrimSpace(inv.SubTotal))
	if err != nil {
		return
	}
	if !dec.IsNonNegative(sub) {
		*warnings = append(*warnings, fmt.Sprintf("sub_total: negative value %q", inv.SubTotal))
	}

	totals := make([]decimal.Decimal, 0, len(inv.Items))
	for _, item := range inv.Items {
		d, err := dec.FromString(strings.TrimSpace(item.TotalPrice))
		if err != nil {
			return
		}
		totals = append(totals, d)
	}

	if sum := dec.Sum(totals); !sum.Equal(sub) {
		*warnings = append(*warnings, fmt.Sprintf("sub_total: line totals sum to %s, declared %s", dec.Format(sum), dec.Format(sub)))
	}
}

// compactDate turns an ISO calendar date into the compact numeric form
// required by format 102, e.g. "2025-10-31" -> "20251031". This is a
// separator-stripping string transform, not a date-type conversion.
func compactDate(iso string) string {
	return strings.ReplaceAll(strings.TrimSpace(iso), "-", "")
}
