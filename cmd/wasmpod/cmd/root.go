package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "wasmpod",
	Short: "Author, validate and submit WebAssembly workload pod manifests",
	Long: `wasmpod is a toolkit for Kubernetes pod manifests targeting
WebAssembly (wasm32-wasi) kubelet nodes.

It scaffolds manifests with the nodeSelector and toleration set those
nodes require, validates them against the v1 Pod schema rules they
depend on, and submits them to the cluster. Scheduling and execution
stay with the external control plane.`,
}

func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.CompletionOptions.DisableDefaultCmd = true
	rootCmd.AddCommand(versionCmd)
}

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print version information",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Printf("wasmpod %s (commit %s, built %s)\n", buildVersion, buildCommit, buildDate)
	},
}

var (
	buildVersion = "dev"
	buildCommit  = "none"
	buildDate    = "unknown"
)

// SetVersion injects build metadata from main.
func SetVersion(version, commit, date string) {
	buildVersion = version
	buildCommit = commit
	buildDate = date
}

func getEnvOrDefault(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}
