package validate_test

import (
	"testing"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
	corev1 "k8s.io/api/core/v1"
	metav1 "k8s.io/apimachinery/pkg/apis/meta/v1"

	"github.com/wasmkube/wasmpod/pkg/manifest"
	"github.com/wasmkube/wasmpod/pkg/validate"
)

func TestValidateSuite(t *testing.T) {
	RegisterFailHandler(Fail)
	RunSpecs(t, "Manifest Validation Suite")
}

var _ = Describe("Pod manifest validation", func() {
	Context("built workloads", func() {
		It("accepts every manifest produced by the builder", func() {
			spec := &manifest.WorkloadSpec{
				Name:  "built-workload",
				Image: "registry.example.com/app:v1",
				Ports: []manifest.PortMapping{{ContainerPort: 3000, HostPort: 3000}},
			}
			Expect(validate.Validate(spec.Build())).To(Succeed())
		})

		It("accepts a builder pod with extra constraints", func() {
			spec := &manifest.WorkloadSpec{
				Name:  "constrained",
				Image: "registry.example.com/app:v1",
				ExtraNodeSelector: map[string]string{
					"topology.kubernetes.io/zone": "eu-west-1a",
				},
				ExtraTolerations: []corev1.Toleration{
					{Key: "edge", Operator: corev1.TolerationOpExists},
				},
			}
			Expect(validate.Validate(spec.Build())).To(Succeed())
		})
	})

	Context("enum values", func() {
		It("rejects an operator outside Exists and Equal", func() {
			pod := &corev1.Pod{
				ObjectMeta: metav1.ObjectMeta{Name: "p"},
				Spec: corev1.PodSpec{
					Containers:  []corev1.Container{{Name: "c", Image: "img"}},
					Tolerations: []corev1.Toleration{{Key: "k", Operator: "Sometimes"}},
				},
			}
			errs := validate.ValidatePod(pod)
			Expect(errs).NotTo(BeEmpty())
			Expect(errs.ToAggregate().Error()).To(ContainSubstring("operator"))
		})

		It("rejects an effect outside the taint effect set", func() {
			pod := &corev1.Pod{
				ObjectMeta: metav1.ObjectMeta{Name: "p"},
				Spec: corev1.PodSpec{
					Containers: []corev1.Container{{Name: "c", Image: "img"}},
					Tolerations: []corev1.Toleration{
						{Key: "k", Operator: corev1.TolerationOpExists, Effect: "NoOpinion"},
					},
				},
			}
			errs := validate.ValidatePod(pod)
			Expect(errs).NotTo(BeEmpty())
			Expect(errs.ToAggregate().Error()).To(ContainSubstring("effect"))
		})
	})
})
