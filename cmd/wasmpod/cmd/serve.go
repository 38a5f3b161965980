package cmd

import (
	"log"

	"github.com/spf13/cobra"

	"github.com/wasmkube/wasmpod/pkg/webhook"
)

var servePort string

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the manifest validation server",
	Long: `Start the HTTP server that validates pod manifests on demand.

The server exposes:
- POST /v1/validate  validate a YAML or JSON pod manifest
- GET  /healthz      liveness probe
- GET  /metrics      Prometheus metrics`,
	RunE: func(cmd *cobra.Command, args []string) error {
		server, err := webhook.NewServer(&webhook.Config{Port: servePort})
		if err != nil {
			return err
		}

		log.Printf("Starting wasmpod validation server on :%s", servePort)
		return server.Start()
	},
}

func init() {
	rootCmd.AddCommand(serveCmd)

	serveCmd.Flags().StringVar(&servePort, "port", getEnvOrDefault("PORT", "8080"), "HTTP server port")
}
