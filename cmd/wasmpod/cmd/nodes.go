package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/wasmkube/wasmpod/pkg/kubernetes"
	"github.com/wasmkube/wasmpod/pkg/manifest"
)

var nodesFile string

var nodesCmd = &cobra.Command{
	Use:   "nodes",
	Short: "List WASM-capable nodes in the cluster",
	Long: `List the cluster nodes labeled with the wasm32-wasi architecture.

With -f, instead check a manifest against all cluster nodes and report
which ones satisfy its nodeSelector and tolerate its taints. This is an
observation only; the binding decision stays with the external scheduler.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		config := clusterConfig()
		clientset, err := config.NewClientset()
		if err != nil {
			return err
		}

		client := kubernetes.NewPodClient(clientset, config)
		ctx := cmd.Context()

		if nodesFile != "" {
			data, err := os.ReadFile(nodesFile)
			if err != nil {
				return fmt.Errorf("failed to read manifest: %w", err)
			}
			pod, err := manifest.Decode(data)
			if err != nil {
				return err
			}

			nodes, err := client.SchedulableNodes(ctx, pod)
			if err != nil {
				return err
			}
			if len(nodes) == 0 {
				return fmt.Errorf("no node fits manifest %s", nodesFile)
			}
			for _, node := range nodes {
				fmt.Printf("%s\t%s\n", node.Name, node.Labels[manifest.ArchLabel])
			}
			return nil
		}

		nodes, err := client.ListWASMNodes(ctx)
		if err != nil {
			return err
		}
		if len(nodes) == 0 {
			fmt.Println("No WASM nodes found")
			return nil
		}
		for _, node := range nodes {
			fmt.Printf("%s\t%s\n", node.Name, node.Labels[manifest.ArchLabel])
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(nodesCmd)

	nodesCmd.Flags().StringVarP(&nodesFile, "filename", "f", "", "Manifest to fit-check against cluster nodes")
}
