package model_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rezonia/facturx-engine/internal/model"
)

func TestInvoice_Creation(t *testing.T) {
	inv := model.Invoice{
		Number:      "RE-2025-0042",
		IssueDate:   "2025-10-31",
		DueDate:     "2025-11-30",
		Currency:    "EUR",
		SubTotal:    "100.00",
		TaxAmount:   "19.00",
		TotalAmount: "119.00",
		TaxRate:     "0.19",
		Items: []model.LineItem{
			{Description: "Consulting", Quantity: "2", UnitPrice: "50.00", TotalPrice: "100.00"},
		},
	}

	assert.Equal(t, "RE-2025-0042", inv.Number)
	assert.Equal(t, "EUR", inv.Currency)
	assert.Len(t, inv.Items, 1)
	require.NoError(t, inv.Validate())
}

func TestInvoice_Validate(t *testing.T) {
	tests := []struct {
		name    string
		inv     model.Invoice
		wantErr string
	}{
		{
			name:    "missing number",
			inv:     model.Invoice{IssueDate: "2025-01-01", DueDate: "2025-02-01", Currency: "EUR"},
			wantErr: "number",
		},
		{
			name:    "missing issue date",
			inv:     model.Invoice{Number: "1", DueDate: "2025-02-01", Currency: "EUR"},
			wantErr: "issue_date",
		},
		{
			name:    "missing due date",
			inv:     model.Invoice{Number: "1", IssueDate: "2025-01-01", Currency: "EUR"},
			wantErr: "due_date",
		},
		{
			name:    "missing currency",
			inv:     model.Invoice{Number: "1", IssueDate: "2025-01-01", DueDate: "2025-02-01"},
			wantErr: "currency",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.inv.Validate()
			require.Error(t, err)
			var verr *model.ValidationError
			require.ErrorAs(t, err, &verr)
			assert.Equal(t, tt.wantErr, verr.Field)
		})
	}
}

func TestParty_HasAddress(t *testing.T) {
	assert.False(t, model.Party{Name: "ACME"}.HasAddress())
	assert.True(t, model.Party{Name: "ACME", City: "Berlin"}.HasAddress())
	assert.True(t, model.Party{Name: "ACME", Country: "DE"}.HasAddress())
}

func TestLineItemError(t *testing.T) {
	cause := assert.AnError
	err := model.NewLineItemError(3, "quantity", "not a number", cause)

	require.Contains(t, err.Error(), "line 3")
	require.Contains(t, err.Error(), "quantity")
	require.ErrorIs(t, err, cause)
}

func TestContainerParseError(t *testing.T) {
	cause := assert.AnError
	err := model.NewContainerParseError("not a PDF", cause)

	require.Contains(t, err.Error(), "container parse failed")
	require.Contains(t, err.Error(), "not a PDF")
	require.ErrorIs(t, err, cause)
}

func TestEmbedError(t *testing.T) {
	err := model.NewEmbedError("attach", "write failed", assert.AnError)

	require.Contains(t, err.Error(), "[attach]")
	require.Contains(t, err.Error(), "write failed")
	require.ErrorIs(t, err, assert.AnError)
}
