package cmd

import (
	"github.com/wasmkube/wasmpod/pkg/kubernetes"
)

var (
	namespace  string
	kubeconfig string
)

// clusterConfig builds the cluster config from the persistent flags.
func clusterConfig() *kubernetes.Config {
	config := kubernetes.DefaultConfig()
	config.Namespace = namespace
	config.Kubeconfig = kubeconfig
	return config
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&namespace, "namespace", "n", getEnvOrDefault("WASMPOD_NAMESPACE", "default"), "Kubernetes namespace")
	rootCmd.PersistentFlags().StringVar(&kubeconfig, "kubeconfig", getEnvOrDefault("KUBECONFIG", ""), "Path to kubeconfig (default in-cluster, then ~/.kube/config)")
}
