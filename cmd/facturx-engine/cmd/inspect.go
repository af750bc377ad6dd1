package cmd

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/rezonia/facturx-engine/pkg/facturxlib"
)

var (
	inspectJSON    bool
	inspectExtract bool
)

var inspectCmd = &cobra.Command{
	Use:   "inspect [invoice.pdf]",
	Short: "Report on a finished hybrid invoice",
	Long: `Inspect reads a finished container and reports whether the structured
payload is attached, which guideline it declares, and the invoice number
it carries.

Examples:
  facturx-engine inspect invoice.pdf
  facturx-engine inspect --json invoice.pdf
  facturx-engine inspect --extract -o factur-x.xml invoice.pdf`,
	Args: cobra.ExactArgs(1),
	RunE: runInspect,
}

func init() {
	rootCmd.AddCommand(inspectCmd)

	inspectCmd.Flags().BoolVar(&inspectJSON, "json", false, "Output report as JSON")
	inspectCmd.Flags().BoolVar(&inspectExtract, "extract", false, "Write the embedded payload instead of a report")
}

func runInspect(cmd *cobra.Command, args []string) error {
	container, err := os.ReadFile(args[0])
	if err != nil {
		return fmt.Errorf("failed to read container %s: %w", args[0], err)
	}

	gen := facturxlib.NewGenerator()

	if inspectExtract {
		payload, err := gen.ExtractPayload(container)
		if err != nil {
			return err
		}
		return writeOutput(payload)
	}

	report, err := gen.Inspect(container)
	if err != nil {
		return err
	}

	if inspectJSON {
		data, err := json.MarshalIndent(report, "", "  ")
		if err != nil {
			return err
		}
		return writeOutput(append(data, '\n'))
	}

	fmt.Printf("File: %s\n", args[0])
	if !report.AttachmentFound {
		fmt.Println("  Payload: not attached")
		return nil
	}
	fmt.Printf("  Payload: attached (%d bytes)\n", report.PayloadBytes)
	for _, name := range report.Attachments {
		fmt.Printf("  Attachment: %s\n", name)
	}
	if report.Guideline != "" {
		fmt.Printf("  Guideline: %s\n", report.Guideline)
	}
	if report.InvoiceNumber != "" {
		fmt.Printf("  Invoice number: %s\n", report.InvoiceNumber)
	}
	return nil
}
