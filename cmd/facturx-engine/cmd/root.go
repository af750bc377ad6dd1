package cmd

import (
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
)

var (
	version = "1.0.0"

	// Global flags
	verbose    bool
	outputFile string
)

var rootCmd = &cobra.Command{
	Use:   "facturx-engine",
	Short: "Assemble Factur-X compliant hybrid invoices",
	Long: `Factur-X Engine serializes invoice business data into an EN16931
CrossIndustryInvoice payload and embeds it into a rendered PDF, producing
a hybrid human-readable/machine-readable invoice document.

Examples:
  # Serialize invoice data to the structured XML payload
  facturx-engine serialize invoice.json -o factur-x.xml

  # Embed an existing payload into a rendered PDF
  facturx-engine embed rendered.pdf factur-x.xml -o invoice.pdf

  # Serialize and embed in one step
  facturx-engine generate invoice.json rendered.pdf -o invoice.pdf

  # Inspect a finished hybrid invoice
  facturx-engine inspect invoice.pdf`,
	Version: version,
}

func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Enable verbose output")
	rootCmd.PersistentFlags().StringVarP(&outputFile, "output", "o", "", "Output file (default: stdout)")

	cobra.OnInitialize(initLogging)
}

func initLogging() {
	if verbose {
		logrus.SetLevel(logrus.DebugLevel)
	} else {
		logrus.SetLevel(logrus.WarnLevel)
	}
}
