package cmd

import (
	"fmt"
	"log"
	"os"

	"github.com/spf13/cobra"

	"github.com/wasmkube/wasmpod/pkg/kubernetes"
	"github.com/wasmkube/wasmpod/pkg/manifest"
	"github.com/wasmkube/wasmpod/pkg/rbac"
)

var (
	applyFile     string
	applyWait     bool
	skipPreflight bool
)

var applyCmd = &cobra.Command{
	Use:   "apply",
	Short: "Submit a pod manifest to the cluster",
	Long: `Validate a pod manifest and create it through the Kubernetes API.
The manifest is submitted once; scheduling, execution, and teardown are
owned by the cluster from that point on.

With --wait, apply blocks until the external scheduler binds the pod to
a node or the wait timeout elapses.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		data, err := os.ReadFile(applyFile)
		if err != nil {
			return fmt.Errorf("failed to read manifest: %w", err)
		}

		pod, err := manifest.Decode(data)
		if err != nil {
			return err
		}

		config := clusterConfig()
		clientset, err := config.NewClientset()
		if err != nil {
			return err
		}

		ctx := cmd.Context()

		if !skipPreflight {
			if err := rbac.VerifyPermissions(ctx, clientset, config.Namespace); err != nil {
				return err
			}
		}

		client := kubernetes.NewPodClient(clientset, config)
		created, err := client.Submit(ctx, pod)
		if err != nil {
			return err
		}
		fmt.Printf("Pod %s/%s created\n", created.Namespace, created.Name)

		if applyWait {
			log.Printf("Waiting up to %s for scheduling...", config.WaitTimeout)
			node, err := client.WaitUntilScheduled(ctx, created.Namespace, created.Name)
			if err != nil {
				return err
			}
			fmt.Printf("Pod %s/%s scheduled onto node %s\n", created.Namespace, created.Name, node)
		}

		return nil
	},
}

func init() {
	rootCmd.AddCommand(applyCmd)

	applyCmd.Flags().StringVarP(&applyFile, "filename", "f", "", "Manifest file to apply")
	applyCmd.Flags().BoolVar(&applyWait, "wait", false, "Wait until the pod is scheduled")
	applyCmd.Flags().BoolVar(&skipPreflight, "skip-preflight", false, "Skip the RBAC permission preflight")
	applyCmd.MarkFlagRequired("filename")
}
