package cmd

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/rezonia/facturx-engine/pkg/facturxlib"
)

var embedTimeout time.Duration

var embedCmd = &cobra.Command{
	Use:   "embed [rendered.pdf] [payload.xml]",
	Short: "Embed a structured payload into a rendered PDF",
	Long: `Embed attaches an already serialized payload to an existing rendered
PDF as factur-x.xml and stamps the PDF/A-3 conformance metadata.`,
	Args: cobra.ExactArgs(2),
	RunE: runEmbed,
}

func init() {
	rootCmd.AddCommand(embedCmd)

	embedCmd.Flags().DurationVar(&embedTimeout, "timeout", 2*time.Minute, "Embedding timeout")
}

func runEmbed(cmd *cobra.Command, args []string) error {
	container, err := os.ReadFile(args[0])
	if err != nil {
		return fmt.Errorf("failed to read container %s: %w", args[0], err)
	}
	payload, err := os.ReadFile(args[1])
	if err != nil {
		return fmt.Errorf("failed to read payload %s: %w", args[1], err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), embedTimeout)
	defer cancel()

	gen := facturxlib.NewGenerator()
	out, err := gen.Embed(ctx, container, payload)
	if err != nil {
		return err
	}

	return writeOutput(out)
}
