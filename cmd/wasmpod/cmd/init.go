package cmd

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/wasmkube/wasmpod/pkg/manifest"
)

var (
	initImage  string
	initPorts  []int32
	initOutput string
)

var initCmd = &cobra.Command{
	Use:   "init NAME",
	Short: "Scaffold a WASM workload pod manifest",
	Long: `Create a pod manifest for a WebAssembly workload, pre-filled with the
wasm32-wasi nodeSelector and the toleration set WASM kubelet nodes require.

Each --port maps the same containerPort and hostPort, matching how WASM
kubelets expose workload ports on the node.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		name := args[0]

		spec := &manifest.WorkloadSpec{
			Name:  name,
			Image: initImage,
		}
		for _, p := range initPorts {
			spec.Ports = append(spec.Ports, manifest.PortMapping{
				ContainerPort: p,
				HostPort:      p,
			})
		}

		data, err := manifest.Encode(spec.Build())
		if err != nil {
			return err
		}

		out := initOutput
		if out == "" {
			out = name + ".yaml"
		}
		if err := os.MkdirAll(filepath.Dir(filepath.Clean(out)), 0o755); err != nil {
			return fmt.Errorf("failed to create output directory: %w", err)
		}
		if err := os.WriteFile(out, data, 0o644); err != nil {
			return fmt.Errorf("failed to write manifest: %w", err)
		}

		fmt.Printf("Wrote %s\n", out)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(initCmd)

	initCmd.Flags().StringVar(&initImage, "image", "", "Workload image reference (OCI registry URL)")
	initCmd.Flags().Int32SliceVar(&initPorts, "port", nil, "Port to expose (repeatable)")
	initCmd.Flags().StringVarP(&initOutput, "output", "o", "", "Output file (default NAME.yaml)")
	initCmd.MarkFlagRequired("image")
}
