// Package kubernetes submits WASM workload pod manifests to a cluster and
// observes what the control plane does with them.
package kubernetes

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"k8s.io/client-go/kubernetes"
	"k8s.io/client-go/rest"
	"k8s.io/client-go/tools/clientcmd"
)

// Config holds the cluster-facing configuration.
type Config struct {
	Namespace    string
	Kubeconfig   string
	WaitTimeout  time.Duration
	PollInterval time.Duration
}

// DefaultConfig returns a Config with the defaults used by the CLI.
func DefaultConfig() *Config {
	return &Config{
		Namespace:    "default",
		WaitTimeout:  2 * time.Minute,
		PollInterval: 2 * time.Second,
	}
}

// RestConfig resolves client configuration: in-cluster first, then the
// configured kubeconfig path, then KUBECONFIG, then ~/.kube/config.
func (c *Config) RestConfig() (*rest.Config, error) {
	if config, err := rest.InClusterConfig(); err == nil {
		return config, nil
	}

	path := c.Kubeconfig
	if path == "" {
		path = os.Getenv("KUBECONFIG")
	}
	if path == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, fmt.Errorf("failed to resolve home directory: %w", err)
		}
		path = filepath.Join(home, ".kube", "config")
	}

	config, err := clientcmd.BuildConfigFromFlags("", path)
	if err != nil {
		return nil, fmt.Errorf("failed to load kubeconfig from %s: %w", path, err)
	}
	return config, nil
}

// NewClientset builds a typed clientset from the resolved rest config.
func (c *Config) NewClientset() (kubernetes.Interface, error) {
	config, err := c.RestConfig()
	if err != nil {
		return nil, err
	}

	clientset, err := kubernetes.NewForConfig(config)
	if err != nil {
		return nil, fmt.Errorf("failed to create kubernetes client: %w", err)
	}
	return clientset, nil
}
