package rbac_test

import (
	"context"
	"testing"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
	authv1 "k8s.io/api/authorization/v1"
	"k8s.io/apimachinery/pkg/runtime"
	"k8s.io/client-go/kubernetes/fake"
	k8stesting "k8s.io/client-go/testing"

	"github.com/wasmkube/wasmpod/pkg/rbac"
)

func TestRBACSuite(t *testing.T) {
	RegisterFailHandler(Fail)
	RunSpecs(t, "RBAC Verification Suite")
}

// sarReactor installs a reactor answering every access review with the
// given decision, except verbs listed in denied.
func sarReactor(clientset *fake.Clientset, denied map[string]bool) {
	clientset.PrependReactor("create", "selfsubjectaccessreviews", func(action k8stesting.Action) (bool, runtime.Object, error) {
		createAction := action.(k8stesting.CreateAction)
		sar := createAction.GetObject().(*authv1.SelfSubjectAccessReview)
		sar.Status = authv1.SubjectAccessReviewStatus{
			Allowed: !denied[sar.Spec.ResourceAttributes.Verb+"/"+sar.Spec.ResourceAttributes.Resource],
		}
		return true, sar, nil
	})
}

var _ = Describe("RBAC Verification", func() {
	Describe("GetRequiredPermissions", func() {
		It("should return non-empty permission list", func() {
			permissions := rbac.GetRequiredPermissions("wasm")
			Expect(permissions).NotTo(BeEmpty())
		})

		It("should include cluster-scoped node permissions", func() {
			permissions := rbac.GetRequiredPermissions("wasm")

			var hasNodeGet, hasNodeList bool
			for _, perm := range permissions {
				if perm.Resource == "nodes" && perm.Verb == "get" && perm.Namespace == "" {
					hasNodeGet = true
				}
				if perm.Resource == "nodes" && perm.Verb == "list" && perm.Namespace == "" {
					hasNodeList = true
				}
			}

			Expect(hasNodeGet).To(BeTrue(), "Missing cluster-scoped nodes get permission")
			Expect(hasNodeList).To(BeTrue(), "Missing cluster-scoped nodes list permission")
		})

		It("should scope pod permissions to the target namespace", func() {
			namespace := "wasm"
			permissions := rbac.GetRequiredPermissions(namespace)

			var hasPodCreate bool
			for _, perm := range permissions {
				if perm.Resource == "pods" && perm.Verb == "create" && perm.Namespace == namespace {
					hasPodCreate = true
				}
			}

			Expect(hasPodCreate).To(BeTrue(), "Missing namespace-scoped pods create permission")
		})
	})

	Describe("CheckPermission", func() {
		It("should return allowed for permitted actions", func() {
			clientset := fake.NewSimpleClientset()
			sarReactor(clientset, nil)

			perm := rbac.RequiredPermission{
				Resource:  "pods",
				Verb:      "create",
				Namespace: "wasm",
			}

			allowed, err := rbac.CheckPermission(context.Background(), clientset, perm)
			Expect(err).NotTo(HaveOccurred())
			Expect(allowed).To(BeTrue())
		})

		It("should return denied for forbidden actions", func() {
			clientset := fake.NewSimpleClientset()
			sarReactor(clientset, map[string]bool{"delete/pods": true})

			perm := rbac.RequiredPermission{
				Resource:  "pods",
				Verb:      "delete",
				Namespace: "wasm",
			}

			allowed, err := rbac.CheckPermission(context.Background(), clientset, perm)
			Expect(err).NotTo(HaveOccurred())
			Expect(allowed).To(BeFalse())
		})
	})

	Describe("VerifyPermissions", func() {
		It("should succeed when everything is allowed", func() {
			clientset := fake.NewSimpleClientset()
			sarReactor(clientset, nil)

			Expect(rbac.VerifyPermissions(context.Background(), clientset, "wasm")).To(Succeed())
		})

		It("should aggregate every missing permission", func() {
			clientset := fake.NewSimpleClientset()
			sarReactor(clientset, map[string]bool{
				"create/pods": true,
				"list/nodes":  true,
			})

			err := rbac.VerifyPermissions(context.Background(), clientset, "wasm")
			Expect(err).To(HaveOccurred())
			Expect(err.Error()).To(ContainSubstring("create pods"))
			Expect(err.Error()).To(ContainSubstring("list nodes"))
		})
	})
})
