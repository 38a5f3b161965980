package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/wasmkube/wasmpod/pkg/manifest"
	"github.com/wasmkube/wasmpod/pkg/validate"
)

var validateFile string

var validateCmd = &cobra.Command{
	Use:   "validate",
	Short: "Validate a pod manifest file",
	Long: `Parse a pod manifest and check it against the v1 Pod schema rules a
WASM workload depends on: metadata, containers and port mappings,
nodeSelector, and tolerations. Exits non-zero if the manifest is invalid.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		data, err := os.ReadFile(validateFile)
		if err != nil {
			return fmt.Errorf("failed to read manifest: %w", err)
		}

		pod, err := manifest.Decode(data)
		if err != nil {
			return err
		}

		if errs := validate.ValidatePod(pod); len(errs) > 0 {
			for _, e := range errs {
				fmt.Fprintf(os.Stderr, "  %s: %s\n", e.Field, e.ErrorBody())
			}
			return fmt.Errorf("manifest %s is invalid (%d error(s))", validateFile, len(errs))
		}

		fmt.Printf("Manifest %s is valid\n", validateFile)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(validateCmd)

	validateCmd.Flags().StringVarP(&validateFile, "filename", "f", "", "Manifest file to validate")
	validateCmd.MarkFlagRequired("filename")
}
