package manifest

import (
	"fmt"

	corev1 "k8s.io/api/core/v1"
	"sigs.k8s.io/yaml"
)

// Encode marshals a Pod manifest to YAML, stamping apiVersion/kind so the
// output is directly consumable by kubectl.
func Encode(pod *corev1.Pod) ([]byte, error) {
	out := pod.DeepCopy()
	out.APIVersion = "v1"
	out.Kind = "Pod"

	data, err := yaml.Marshal(out)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal pod manifest: %w", err)
	}
	return data, nil
}

// Decode parses a YAML (or JSON) Pod manifest. Documents that declare a
// different apiVersion or kind are rejected rather than silently coerced.
func Decode(data []byte) (*corev1.Pod, error) {
	var pod corev1.Pod
	if err := yaml.UnmarshalStrict(data, &pod); err != nil {
		return nil, fmt.Errorf("failed to parse pod manifest: %w", err)
	}

	if pod.APIVersion != "" && pod.APIVersion != "v1" {
		return nil, fmt.Errorf("unsupported apiVersion %q, expected v1", pod.APIVersion)
	}
	if pod.Kind != "" && pod.Kind != "Pod" {
		return nil, fmt.Errorf("unsupported kind %q, expected Pod", pod.Kind)
	}

	return &pod, nil
}
