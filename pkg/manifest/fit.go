package manifest

import (
	corev1 "k8s.io/api/core/v1"
)

// MatchesNode reports whether the pod's nodeSelector is satisfied by the
// node's labels. An empty selector matches every node.
func MatchesNode(pod *corev1.Pod, node *corev1.Node) bool {
	for key, value := range pod.Spec.NodeSelector {
		if node.Labels[key] != value {
			return false
		}
	}
	return true
}

// ToleratesTaints reports whether every NoSchedule and NoExecute taint on
// the node is matched by some toleration on the pod. PreferNoSchedule
// taints are soft and never block placement.
func ToleratesTaints(pod *corev1.Pod, node *corev1.Node) bool {
	for _, taint := range node.Spec.Taints {
		if taint.Effect == corev1.TaintEffectPreferNoSchedule {
			continue
		}
		if !tolerated(taint, pod.Spec.Tolerations) {
			return false
		}
	}
	return true
}

func tolerated(taint corev1.Taint, tolerations []corev1.Toleration) bool {
	for _, t := range tolerations {
		if tolerates(t, taint) {
			return true
		}
	}
	return false
}

// tolerates implements the v1 matching rules: an empty effect tolerates
// all effects, an empty key with operator Exists tolerates all taints,
// Exists ignores value, and Equal (the default operator) compares values.
func tolerates(t corev1.Toleration, taint corev1.Taint) bool {
	if t.Effect != "" && t.Effect != taint.Effect {
		return false
	}

	if t.Key == "" {
		return t.Operator == corev1.TolerationOpExists
	}
	if t.Key != taint.Key {
		return false
	}

	switch t.Operator {
	case corev1.TolerationOpExists:
		return true
	case corev1.TolerationOpEqual, "":
		return t.Value == taint.Value
	default:
		return false
	}
}
