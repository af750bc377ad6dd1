package cmd

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/rezonia/facturx-engine/pkg/facturxlib"
)

var generateTimeout time.Duration

var generateCmd = &cobra.Command{
	Use:   "generate [invoice.json] [rendered.pdf]",
	Short: "Serialize and embed in one step",
	Long: `Generate serializes the invoice document and embeds the resulting
payload into the rendered PDF, producing the final hybrid invoice.`,
	Args: cobra.ExactArgs(2),
	RunE: runGenerate,
}

func init() {
	rootCmd.AddCommand(generateCmd)

	generateCmd.Flags().DurationVar(&generateTimeout, "timeout", 2*time.Minute, "Generation timeout")
}

func runGenerate(cmd *cobra.Command, args []string) error {
	doc, err := readInvoiceDocument(args[0])
	if err != nil {
		return err
	}

	container, err := os.ReadFile(args[1])
	if err != nil {
		return fmt.Errorf("failed to read container %s: %w", args[1], err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), generateTimeout)
	defer cancel()

	gen := facturxlib.NewGenerator()
	out, result, err := gen.Generate(ctx, &doc.Invoice, &doc.Seller, &doc.Buyer, container)
	if err != nil {
		return err
	}

	printWarnings(result.Warnings)
	return writeOutput(out)
}
