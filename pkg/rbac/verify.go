// Package rbac verifies the caller holds the permissions wasmpod needs
// before any manifest is submitted.
package rbac

import (
	"context"
	"fmt"
	"strings"

	authv1 "k8s.io/api/authorization/v1"
	metav1 "k8s.io/apimachinery/pkg/apis/meta/v1"
	"k8s.io/client-go/kubernetes"
)

// RequiredPermission represents a permission that needs to be verified.
type RequiredPermission struct {
	APIGroup  string
	Resource  string
	Verb      string
	Namespace string // empty for cluster-scoped
}

// GetRequiredPermissions returns the permissions wasmpod needs: pod
// lifecycle in the target namespace and read access to nodes for the
// scheduling fit checks.
func GetRequiredPermissions(namespace string) []RequiredPermission {
	return []RequiredPermission{
		// Cluster-scoped: node discovery for fit checks
		{APIGroup: "", Resource: "nodes", Verb: "get", Namespace: ""},
		{APIGroup: "", Resource: "nodes", Verb: "list", Namespace: ""},

		// Namespace-scoped: pod submission lifecycle
		{APIGroup: "", Resource: "pods", Verb: "create", Namespace: namespace},
		{APIGroup: "", Resource: "pods", Verb: "get", Namespace: namespace},
		{APIGroup: "", Resource: "pods", Verb: "list", Namespace: namespace},
		{APIGroup: "", Resource: "pods", Verb: "watch", Namespace: namespace},
		{APIGroup: "", Resource: "pods", Verb: "delete", Namespace: namespace},
	}
}

// VerifyPermissions checks if the current identity has all required
// permissions, aggregating everything missing into a single error.
func VerifyPermissions(ctx context.Context, clientset kubernetes.Interface, namespace string) error {
	permissions := GetRequiredPermissions(namespace)
	var missingPermissions []string

	for _, perm := range permissions {
		allowed, err := CheckPermission(ctx, clientset, perm)
		if err != nil {
			return fmt.Errorf("failed to check permission %s/%s:%s: %w", perm.APIGroup, perm.Resource, perm.Verb, err)
		}

		if !allowed {
			scope := "cluster-scoped"
			if perm.Namespace != "" {
				scope = fmt.Sprintf("namespace=%s", perm.Namespace)
			}
			missingPermissions = append(missingPermissions, fmt.Sprintf("  - %s %s (%s)", perm.Verb, perm.Resource, scope))
		}
	}

	if len(missingPermissions) > 0 {
		return fmt.Errorf("missing required RBAC permissions:\n%s\n\nPlease ensure the ServiceAccount or user has the required permissions as defined in manifests/rbac.yaml",
			strings.Join(missingPermissions, "\n"))
	}

	return nil
}

// CheckPermission verifies if a specific permission is granted.
func CheckPermission(ctx context.Context, clientset kubernetes.Interface, perm RequiredPermission) (bool, error) {
	sar := &authv1.SelfSubjectAccessReview{
		Spec: authv1.SelfSubjectAccessReviewSpec{
			ResourceAttributes: &authv1.ResourceAttributes{
				Verb:      perm.Verb,
				Group:     perm.APIGroup,
				Resource:  perm.Resource,
				Namespace: perm.Namespace,
			},
		},
	}

	result, err := clientset.AuthorizationV1().SelfSubjectAccessReviews().Create(ctx, sar, metav1.CreateOptions{})
	if err != nil {
		return false, err
	}

	return result.Status.Allowed, nil
}
