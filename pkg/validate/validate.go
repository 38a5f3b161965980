// Package validate checks WASM workload pod manifests against the v1 Pod
// schema rules they depend on, before the API server ever sees them.
package validate

import (
	"fmt"

	corev1 "k8s.io/api/core/v1"
	metav1 "k8s.io/apimachinery/pkg/apis/meta/v1"
	"k8s.io/apimachinery/pkg/util/validation"
	"k8s.io/apimachinery/pkg/util/validation/field"
)

// ValidatePod validates the manifest fields a WASM workload pod carries:
// metadata, containers with their port mappings, nodeSelector, and
// tolerations. The returned list is empty for a valid manifest.
func ValidatePod(pod *corev1.Pod) field.ErrorList {
	allErrs := field.ErrorList{}

	allErrs = append(allErrs, validateMetadata(&pod.ObjectMeta, field.NewPath("metadata"))...)
	allErrs = append(allErrs, validateContainers(pod.Spec.Containers, field.NewPath("spec", "containers"))...)
	allErrs = append(allErrs, validateNodeSelector(pod.Spec.NodeSelector, field.NewPath("spec", "nodeSelector"))...)
	allErrs = append(allErrs, validateTolerations(pod.Spec.Tolerations, field.NewPath("spec", "tolerations"))...)

	return allErrs
}

// Validate is the aggregate form of ValidatePod, wrapping all field errors
// into a single error suitable for CLI output.
func Validate(pod *corev1.Pod) error {
	if errs := ValidatePod(pod); len(errs) > 0 {
		return fmt.Errorf("invalid pod manifest: %w", errs.ToAggregate())
	}
	return nil
}

func validateMetadata(meta *metav1.ObjectMeta, fldPath *field.Path) field.ErrorList {
	allErrs := field.ErrorList{}

	if meta.Name == "" {
		allErrs = append(allErrs, field.Required(fldPath.Child("name"), "pod name is required"))
	} else {
		for _, msg := range validation.IsDNS1123Subdomain(meta.Name) {
			allErrs = append(allErrs, field.Invalid(fldPath.Child("name"), meta.Name, msg))
		}
	}

	if meta.Namespace != "" {
		for _, msg := range validation.IsDNS1123Label(meta.Namespace) {
			allErrs = append(allErrs, field.Invalid(fldPath.Child("namespace"), meta.Namespace, msg))
		}
	}

	return allErrs
}

func validateContainers(containers []corev1.Container, fldPath *field.Path) field.ErrorList {
	allErrs := field.ErrorList{}

	if len(containers) == 0 {
		allErrs = append(allErrs, field.Required(fldPath, "at least one container is required"))
		return allErrs
	}

	names := map[string]bool{}
	hostPorts := map[string]bool{}

	for i, c := range containers {
		idxPath := fldPath.Index(i)

		if c.Name == "" {
			allErrs = append(allErrs, field.Required(idxPath.Child("name"), "container name is required"))
		} else {
			for _, msg := range validation.IsDNS1123Label(c.Name) {
				allErrs = append(allErrs, field.Invalid(idxPath.Child("name"), c.Name, msg))
			}
			if names[c.Name] {
				allErrs = append(allErrs, field.Duplicate(idxPath.Child("name"), c.Name))
			}
			names[c.Name] = true
		}

		if c.Image == "" {
			allErrs = append(allErrs, field.Required(idxPath.Child("image"), "container image is required"))
		}

		allErrs = append(allErrs, validatePorts(c.Ports, hostPorts, idxPath.Child("ports"))...)
	}

	return allErrs
}

func validatePorts(ports []corev1.ContainerPort, hostPorts map[string]bool, fldPath *field.Path) field.ErrorList {
	allErrs := field.ErrorList{}

	containerPorts := map[int32]bool{}
	for i, p := range ports {
		idxPath := fldPath.Index(i)

		if p.ContainerPort == 0 {
			allErrs = append(allErrs, field.Required(idxPath.Child("containerPort"), "containerPort is required"))
		} else {
			for _, msg := range validation.IsValidPortNum(int(p.ContainerPort)) {
				allErrs = append(allErrs, field.Invalid(idxPath.Child("containerPort"), p.ContainerPort, msg))
			}
			if containerPorts[p.ContainerPort] {
				allErrs = append(allErrs, field.Duplicate(idxPath.Child("containerPort"), p.ContainerPort))
			}
			containerPorts[p.ContainerPort] = true
		}

		if p.HostPort != 0 {
			for _, msg := range validation.IsValidPortNum(int(p.HostPort)) {
				allErrs = append(allErrs, field.Invalid(idxPath.Child("hostPort"), p.HostPort, msg))
			}

			// hostPort binds on the node, so the (port, protocol) pair
			// must be unique across the whole pod.
			proto := p.Protocol
			if proto == "" {
				proto = corev1.ProtocolTCP
			}
			key := fmt.Sprintf("%d/%s", p.HostPort, proto)
			if hostPorts[key] {
				allErrs = append(allErrs, field.Duplicate(idxPath.Child("hostPort"), p.HostPort))
			}
			hostPorts[key] = true
		}
	}

	return allErrs
}

func validateNodeSelector(selector map[string]string, fldPath *field.Path) field.ErrorList {
	allErrs := field.ErrorList{}

	for key, value := range selector {
		for _, msg := range validation.IsQualifiedName(key) {
			allErrs = append(allErrs, field.Invalid(fldPath, key, msg))
		}
		for _, msg := range validation.IsValidLabelValue(value) {
			allErrs = append(allErrs, field.Invalid(fldPath.Key(key), value, msg))
		}
	}

	return allErrs
}

func validateTolerations(tolerations []corev1.Toleration, fldPath *field.Path) field.ErrorList {
	allErrs := field.ErrorList{}

	for i, t := range tolerations {
		idxPath := fldPath.Index(i)

		if t.Key != "" {
			for _, msg := range validation.IsQualifiedName(t.Key) {
				allErrs = append(allErrs, field.Invalid(idxPath.Child("key"), t.Key, msg))
			}
		}

		switch t.Operator {
		case corev1.TolerationOpExists:
			if t.Value != "" {
				allErrs = append(allErrs, field.Invalid(idxPath.Child("value"), t.Value,
					"value must be empty when operator is Exists"))
			}
		case corev1.TolerationOpEqual, "":
			// empty key with the default Equal operator matches nothing
			if t.Key == "" {
				allErrs = append(allErrs, field.Invalid(idxPath.Child("operator"), t.Operator,
					"operator must be Exists when key is empty"))
			}
			for _, msg := range validation.IsValidLabelValue(t.Value) {
				allErrs = append(allErrs, field.Invalid(idxPath.Child("value"), t.Value, msg))
			}
		default:
			allErrs = append(allErrs, field.NotSupported(idxPath.Child("operator"), t.Operator,
				[]string{string(corev1.TolerationOpExists), string(corev1.TolerationOpEqual)}))
		}

		switch t.Effect {
		case "", corev1.TaintEffectNoSchedule, corev1.TaintEffectPreferNoSchedule, corev1.TaintEffectNoExecute:
		default:
			allErrs = append(allErrs, field.NotSupported(idxPath.Child("effect"), t.Effect,
				[]string{
					string(corev1.TaintEffectNoSchedule),
					string(corev1.TaintEffectPreferNoSchedule),
					string(corev1.TaintEffectNoExecute),
				}))
		}
	}

	return allErrs
}
