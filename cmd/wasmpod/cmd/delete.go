package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/wasmkube/wasmpod/pkg/kubernetes"
)

var deleteCmd = &cobra.Command{
	Use:   "delete NAME",
	Short: "Delete a submitted pod",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		config := clusterConfig()
		clientset, err := config.NewClientset()
		if err != nil {
			return err
		}

		client := kubernetes.NewPodClient(clientset, config)
		if err := client.Delete(cmd.Context(), config.Namespace, args[0]); err != nil {
			return err
		}

		fmt.Printf("Pod %s/%s deleted\n", config.Namespace, args[0])
		return nil
	},
}

func init() {
	rootCmd.AddCommand(deleteCmd)
}
