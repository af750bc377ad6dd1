package cmd

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/rezonia/facturx-engine/pkg/facturxlib"
)

var serializeCmd = &cobra.Command{
	Use:   "serialize [invoice.json]",
	Short: "Serialize invoice data to the structured XML payload",
	Long: `Serialize reads an invoice document (invoice + seller + buyer as JSON)
and produces the EN16931 CrossIndustryInvoice payload.

The JSON layout:
  {
    "invoice": { "number": "...", "issue_date": "YYYY-MM-DD", ... },
    "seller":  { "name": "...", ... },
    "buyer":   { "name": "...", ... }
  }`,
	Args: cobra.ExactArgs(1),
	RunE: runSerialize,
}

func init() {
	rootCmd.AddCommand(serializeCmd)
}

// invoiceDocument is the on-disk JSON layout consumed by serialize and
// generate.
type invoiceDocument struct {
	Invoice facturxlib.Invoice `json:"invoice"`
	Seller  facturxlib.Party   `json:"seller"`
	Buyer   facturxlib.Party   `json:"buyer"`
}

func readInvoiceDocument(path string) (*invoiceDocument, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", path, err)
	}

	var doc invoiceDocument
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("invalid invoice JSON in %s: %w", path, err)
	}
	return &doc, nil
}

func writeOutput(data []byte) error {
	if outputFile == "" {
		_, err := os.Stdout.Write(data)
		return err
	}
	return os.WriteFile(outputFile, data, 0o644)
}

func printWarnings(warnings []string) {
	for _, w := range warnings {
		fmt.Fprintf(os.Stderr, "warning: %s\n", w)
	}
}

func runSerialize(cmd *cobra.Command, args []string) error {
	doc, err := readInvoiceDocument(args[0])
	if err != nil {
		return err
	}

	gen := facturxlib.NewGenerator()
	result, err := gen.Serialize(&doc.Invoice, &doc.Seller, &doc.Buyer)
	if err != nil {
		return err
	}

	printWarnings(result.Warnings)
	return writeOutput(result.Payload)
}
