// Package manifest builds and renders Pod manifests for WebAssembly workloads.
package manifest

import (
	corev1 "k8s.io/api/core/v1"
	metav1 "k8s.io/apimachinery/pkg/apis/meta/v1"
)

const (
	// ArchLabel is the node label WASM kubelets advertise.
	ArchLabel = "kubernetes.io/arch"

	// WASMArch is the architecture value for wasm32-wasi nodes.
	WASMArch = "wasm32-wasi"

	// NetworkUnavailableTaint is carried by WASM nodes that never report
	// a container runtime network.
	NetworkUnavailableTaint = "node.kubernetes.io/network-unavailable"
)

// PortMapping is a containerPort/hostPort pair on the workload container.
type PortMapping struct {
	ContainerPort int32 `json:"containerPort"`
	HostPort      int32 `json:"hostPort,omitempty"`
}

// WorkloadSpec is the minimal authoring surface for a WASM workload pod.
// Everything not expressed here is filled with the defaults a wasm32-wasi
// node expects (arch nodeSelector plus the standard toleration set).
type WorkloadSpec struct {
	Name      string            `json:"name"`
	Namespace string            `json:"namespace,omitempty"`
	Image     string            `json:"image"`
	Ports     []PortMapping     `json:"ports,omitempty"`
	Labels    map[string]string `json:"labels,omitempty"`

	// ExtraNodeSelector is merged over the default arch selector.
	ExtraNodeSelector map[string]string `json:"extraNodeSelector,omitempty"`

	// ExtraTolerations is appended after the default WASM-node tolerations.
	ExtraTolerations []corev1.Toleration `json:"extraTolerations,omitempty"`
}

// DefaultTolerations returns the toleration set a pod needs to land on a
// WASM kubelet node: the node is tainted with its architecture for both
// NoSchedule and NoExecute, and reports network-unavailable because it has
// no container runtime network.
func DefaultTolerations() []corev1.Toleration {
	return []corev1.Toleration{
		{
			Key:      NetworkUnavailableTaint,
			Operator: corev1.TolerationOpExists,
			Effect:   corev1.TaintEffectNoSchedule,
		},
		{
			Key:      ArchLabel,
			Operator: corev1.TolerationOpEqual,
			Value:    WASMArch,
			Effect:   corev1.TaintEffectNoExecute,
		},
		{
			Key:      ArchLabel,
			Operator: corev1.TolerationOpEqual,
			Value:    WASMArch,
			Effect:   corev1.TaintEffectNoSchedule,
		},
	}
}

// Build renders the workload into a complete v1 Pod manifest.
func (w *WorkloadSpec) Build() *corev1.Pod {
	nodeSelector := map[string]string{
		ArchLabel: WASMArch,
	}
	for k, v := range w.ExtraNodeSelector {
		nodeSelector[k] = v
	}

	ports := make([]corev1.ContainerPort, 0, len(w.Ports))
	for _, p := range w.Ports {
		ports = append(ports, corev1.ContainerPort{
			ContainerPort: p.ContainerPort,
			HostPort:      p.HostPort,
		})
	}

	return &corev1.Pod{
		TypeMeta: metav1.TypeMeta{
			APIVersion: "v1",
			Kind:       "Pod",
		},
		ObjectMeta: metav1.ObjectMeta{
			Name:      w.Name,
			Namespace: w.Namespace,
			Labels:    w.Labels,
		},
		Spec: corev1.PodSpec{
			Containers: []corev1.Container{
				{
					Name:  w.Name,
					Image: w.Image,
					Ports: ports,
				},
			},
			NodeSelector: nodeSelector,
			Tolerations:  append(DefaultTolerations(), w.ExtraTolerations...),
		},
	}
}
