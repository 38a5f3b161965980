package kubernetes

import (
	"context"
	"fmt"
	"log"
	"time"

	corev1 "k8s.io/api/core/v1"
	"k8s.io/apimachinery/pkg/api/errors"
	metav1 "k8s.io/apimachinery/pkg/apis/meta/v1"
	"k8s.io/client-go/kubernetes"

	"github.com/wasmkube/wasmpod/pkg/manifest"
	"github.com/wasmkube/wasmpod/pkg/validate"
)

// PodClient handles pod manifest submission for WASM workloads.
type PodClient struct {
	clientset kubernetes.Interface
	config    *Config
}

// NewPodClient creates a new PodClient.
func NewPodClient(clientset kubernetes.Interface, config *Config) *PodClient {
	return &PodClient{
		clientset: clientset,
		config:    config,
	}
}

// Submit validates the manifest and creates the pod. The manifest is
// never mutated after submission: interpretation belongs to the cluster.
func (c *PodClient) Submit(ctx context.Context, pod *corev1.Pod) (*corev1.Pod, error) {
	if err := validate.Validate(pod); err != nil {
		return nil, err
	}

	pod = pod.DeepCopy()
	if pod.Namespace == "" {
		pod.Namespace = c.config.Namespace
	}
	namespace := pod.Namespace

	created, err := c.clientset.CoreV1().Pods(namespace).Create(ctx, pod, metav1.CreateOptions{})
	if err != nil {
		if errors.IsAlreadyExists(err) {
			return nil, fmt.Errorf("pod %s/%s already exists", namespace, pod.Name)
		}
		return nil, fmt.Errorf("failed to create pod: %w", err)
	}

	log.Printf("Created Pod %s/%s", namespace, created.Name)
	return created, nil
}

// namespaceOr resolves the namespace for a pod operation: an explicit
// namespace wins over the configured one, matching Submit.
func (c *PodClient) namespaceOr(namespace string) string {
	if namespace == "" {
		return c.config.Namespace
	}
	return namespace
}

// Get fetches a pod by name. An empty namespace falls back to the
// configured one.
func (c *PodClient) Get(ctx context.Context, namespace, name string) (*corev1.Pod, error) {
	namespace = c.namespaceOr(namespace)
	pod, err := c.clientset.CoreV1().Pods(namespace).Get(ctx, name, metav1.GetOptions{})
	if err != nil {
		return nil, fmt.Errorf("failed to get pod %s/%s: %w", namespace, name, err)
	}
	return pod, nil
}

// Delete removes a pod by name. An empty namespace falls back to the
// configured one.
func (c *PodClient) Delete(ctx context.Context, namespace, name string) error {
	namespace = c.namespaceOr(namespace)
	err := c.clientset.CoreV1().Pods(namespace).Delete(ctx, name, metav1.DeleteOptions{})
	if err != nil {
		if errors.IsNotFound(err) {
			return fmt.Errorf("pod %s/%s not found", namespace, name)
		}
		return fmt.Errorf("failed to delete pod: %w", err)
	}

	log.Printf("Deleted Pod %s/%s", namespace, name)
	return nil
}

// WaitUntilScheduled polls until the external scheduler has bound the pod
// to a node, or the wait timeout elapses. Returns the node name. An empty
// namespace falls back to the configured one.
func (c *PodClient) WaitUntilScheduled(ctx context.Context, namespace, name string) (string, error) {
	namespace = c.namespaceOr(namespace)
	deadline := time.Now().Add(c.config.WaitTimeout)

	for {
		pod, err := c.Get(ctx, namespace, name)
		if err != nil {
			return "", err
		}

		for _, cond := range pod.Status.Conditions {
			if cond.Type == corev1.PodScheduled && cond.Status == corev1.ConditionTrue {
				log.Printf("Pod %s/%s scheduled onto %s", namespace, name, pod.Spec.NodeName)
				return pod.Spec.NodeName, nil
			}
		}

		if time.Now().After(deadline) {
			return "", fmt.Errorf("pod %s/%s not scheduled after %s", namespace, name, c.config.WaitTimeout)
		}

		select {
		case <-ctx.Done():
			return "", ctx.Err()
		case <-time.After(c.config.PollInterval):
		}
	}
}

// ListWASMNodes returns the nodes advertising the wasm32-wasi architecture.
func (c *PodClient) ListWASMNodes(ctx context.Context) ([]corev1.Node, error) {
	nodes, err := c.clientset.CoreV1().Nodes().List(ctx, metav1.ListOptions{
		LabelSelector: fmt.Sprintf("%s=%s", manifest.ArchLabel, manifest.WASMArch),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to list WASM nodes: %w", err)
	}
	return nodes.Items, nil
}

// SchedulableNodes returns the cluster nodes on which the manifest could
// be placed: nodeSelector satisfied and all hard taints tolerated. This
// only inspects live state, the binding decision stays with the external
// scheduler.
func (c *PodClient) SchedulableNodes(ctx context.Context, pod *corev1.Pod) ([]corev1.Node, error) {
	nodes, err := c.clientset.CoreV1().Nodes().List(ctx, metav1.ListOptions{})
	if err != nil {
		return nil, fmt.Errorf("failed to list nodes: %w", err)
	}

	var fits []corev1.Node
	for _, node := range nodes.Items {
		if manifest.MatchesNode(pod, &node) && manifest.ToleratesTaints(pod, &node) {
			fits = append(fits, node)
		}
	}
	return fits, nil
}
