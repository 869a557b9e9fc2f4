/*
Copyright 2023.

Licensed under the Apache License, Version 2.0 (the "License");
you may not use this file except in compliance with the License.
You may obtain a copy of the License at

    http://www.apache.org/licenses/LICENSE-2.0

Unless required by applicable law or agreed to in writing, software
distributed under the License is distributed on an "AS IS" BASIS,
WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
See the License for the specific language governing permissions and
limitations under the License.
*/

package reconciler

import (
	"context"
	"errors"
	"time"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
	corev1 "k8s.io/api/core/v1"
	metav1 "k8s.io/apimachinery/pkg/apis/meta/v1"
	"k8s.io/apimachinery/pkg/runtime"
	"k8s.io/apimachinery/pkg/types"
	clientgoscheme "k8s.io/client-go/kubernetes/scheme"
	"k8s.io/client-go/tools/record"
	ctrl "sigs.k8s.io/controller-runtime"
	"sigs.k8s.io/controller-runtime/pkg/client"
	"sigs.k8s.io/controller-runtime/pkg/client/fake"

	operrors "github.com/snapp-incubator/sftpgo-operator/internal/errors"
	"github.com/snapp-incubator/sftpgo-operator/pkg/consts"
)

// failingGetClient fails every Get with err.
type failingGetClient struct {
	client.Client
	err error
}

func (c *failingGetClient) Get(context.Context, client.ObjectKey, client.Object, ...client.GetOption) error {
	return c.err
}

type recordingReconciler struct {
	calls  int
	seen   []string
	action Action
	err    error
}

func (r *recordingReconciler) Reconcile(_ context.Context, obj *corev1.ConfigMap, _ *SharedContext) (Action, error) {
	r.calls++
	r.seen = append(r.seen, obj.Data["key"])
	return r.action, r.err
}

var _ = Describe("Driver", func() {
	const (
		namespace = "driver-test"
		name      = "sample"
	)

	var (
		ctx        context.Context
		scheme     *runtime.Scheme
		recorder   *record.FakeRecorder
		shared     *SharedContext
		reconciler *recordingReconciler
		request    ctrl.Request
	)

	newConfigMap := func() *corev1.ConfigMap { return &corev1.ConfigMap{} }

	BeforeEach(func() {
		ctx = context.Background()
		scheme = runtime.NewScheme()
		Expect(clientgoscheme.AddToScheme(scheme)).To(Succeed())

		existing := &corev1.ConfigMap{
			ObjectMeta: metav1.ObjectMeta{Name: name, Namespace: namespace, UID: "uid-1"},
			Data:       map[string]string{"key": "value"},
		}

		recorder = record.NewFakeRecorder(10)
		shared = &SharedContext{
			Client:   fake.NewClientBuilder().WithScheme(scheme).WithObjects(existing).Build(),
			Recorder: recorder,
		}
		reconciler = &recordingReconciler{}
		request = ctrl.Request{NamespacedName: types.NamespacedName{Namespace: namespace, Name: name}}
	})

	Context("When the reconciler succeeds", func() {
		It("Should return its action without error", func() {
			reconciler.action = RequeueAfter(time.Minute)
			driver := NewDriver[*corev1.ConfigMap]("ConfigMap", newConfigMap, reconciler, shared, nil)

			result, err := driver.Reconcile(ctx, request)
			Expect(err).NotTo(HaveOccurred())
			Expect(result).To(Equal(ctrl.Result{RequeueAfter: time.Minute}))
			Expect(reconciler.calls).To(Equal(1))
			Expect(reconciler.seen).To(Equal([]string{"value"}))
			Expect(recorder.Events).To(BeEmpty())
		})

		It("Should not requeue on NoRequeue", func() {
			reconciler.action = NoRequeue()
			driver := NewDriver[*corev1.ConfigMap]("ConfigMap", newConfigMap, reconciler, shared, nil)

			result, err := driver.Reconcile(ctx, request)
			Expect(err).NotTo(HaveOccurred())
			Expect(result).To(Equal(ctrl.Result{}))
		})
	})

	Context("When the reconciler fails", func() {
		DescribeTable("Should requeue after the default delay whatever the error kind",
			func(reconcileErr error, reason string) {
				reconciler.err = reconcileErr
				driver := NewDriver[*corev1.ConfigMap]("ConfigMap", newConfigMap, reconciler, shared, nil)

				result, err := driver.Reconcile(ctx, request)
				Expect(err).NotTo(HaveOccurred())
				Expect(result).To(Equal(ctrl.Result{RequeueAfter: 15 * time.Second}))
				Expect(reconciler.calls).To(Equal(1))

				var event string
				Expect(recorder.Events).To(Receive(&event))
				Expect(event).To(HavePrefix("Warning " + consts.EventReasonReconcileFailed + " " + reason + ":"))
			},
			Entry("external API", operrors.NewExternalAPIError("create_user", 500, errors.New("boom")), operrors.ReasonExternalAPI),
			Entry("user input", operrors.NewUserInputError("spec.fileSystem", "missing"), operrors.ReasonUserInput),
			Entry("token issuance", operrors.NewAuthIssuanceError("http://sftpgo", 401, errors.New("denied")), operrors.ReasonAuthIssuance),
			Entry("decoding", operrors.NewDecodingError("secret", errors.New("bad utf-8")), operrors.ReasonDecoding),
			Entry("unclassified", errors.New("oops"), operrors.ReasonUnknown),
		)

		It("Should consult a custom policy", func() {
			reconciler.err = errors.New("boom")
			var policyErr error
			policy := func(_ context.Context, obj client.Object, err error) Action {
				Expect(obj.GetName()).To(Equal(name))
				policyErr = err
				return RequeueAfter(time.Second)
			}
			driver := NewDriver[*corev1.ConfigMap]("ConfigMap", newConfigMap, reconciler, shared, policy)

			result, err := driver.Reconcile(ctx, request)
			Expect(err).NotTo(HaveOccurred())
			Expect(result.RequeueAfter).To(Equal(time.Second))
			Expect(policyErr).To(MatchError("boom"))
		})
	})

	Context("When the object is gone", func() {
		It("Should not invoke the reconciler nor requeue", func() {
			driver := NewDriver[*corev1.ConfigMap]("ConfigMap", newConfigMap, reconciler, shared, nil)

			result, err := driver.Reconcile(ctx, ctrl.Request{
				NamespacedName: types.NamespacedName{Namespace: namespace, Name: "deleted"},
			})
			Expect(err).NotTo(HaveOccurred())
			Expect(result).To(Equal(ctrl.Result{}))
			Expect(reconciler.calls).To(BeZero())
		})
	})

	Context("When fetching the object fails", func() {
		It("Should route a cluster API error through the policy", func() {
			shared.Client = &failingGetClient{Client: shared.Client, err: errors.New("connection refused")}

			var policyErr error
			policy := func(_ context.Context, obj client.Object, err error) Action {
				Expect(obj.GetNamespace()).To(Equal(namespace))
				Expect(obj.GetName()).To(Equal(name))
				policyErr = err
				return RequeueAfter(DefaultRetryDelay)
			}
			driver := NewDriver[*corev1.ConfigMap]("ConfigMap", newConfigMap, reconciler, shared, policy)

			result, err := driver.Reconcile(ctx, request)
			Expect(err).NotTo(HaveOccurred())
			Expect(result.RequeueAfter).To(Equal(DefaultRetryDelay))
			Expect(reconciler.calls).To(BeZero())
			Expect(operrors.IsClusterAPIError(policyErr)).To(BeTrue())
		})
	})
})

var _ = Describe("Options", func() {
	It("Should default the name, workers and policy", func() {
		opts := newOptions("SftpgoUser", nil)

		Expect(opts.Name).To(Equal("sftpgouser"))
		Expect(opts.MaxConcurrentReconciles).To(Equal(1))
		Expect(opts.ErrorPolicy).NotTo(BeNil())
	})

	It("Should apply the customize hook exactly once", func() {
		calls := 0
		opts := newOptions("SftpgoUser", func(o *Options) {
			calls++
			o.Name = "users"
			o.MaxConcurrentReconciles = 4
		})

		Expect(calls).To(Equal(1))
		Expect(opts.Name).To(Equal("users"))
		Expect(opts.MaxConcurrentReconciles).To(Equal(4))
	})
})

var _ = Describe("FixedDelay", func() {
	obj := &corev1.ConfigMap{ObjectMeta: metav1.ObjectMeta{Name: "sample", Namespace: "ns"}}

	DescribeTable("Should always requeue",
		func(configured, expected time.Duration) {
			action := FixedDelay(configured)(context.Background(), obj, errors.New("boom"))
			Expect(action.IsRequeue()).To(BeTrue())
			Expect(action.RequeueDelay()).To(Equal(expected))
		},
		Entry("default", DefaultRetryDelay, 15*time.Second),
		Entry("configured", 5*time.Second, 5*time.Second),
		Entry("zero falls back", time.Duration(0), 15*time.Second),
		Entry("negative falls back", -time.Second, 15*time.Second),
	)
})

var _ = Describe("Action", func() {
	It("Should convert to a controller result", func() {
		Expect(NoRequeue().Result()).To(Equal(ctrl.Result{}))
		Expect(RequeueAfter(time.Minute).Result()).To(Equal(ctrl.Result{RequeueAfter: time.Minute}))
		Expect(RequeueAfter(0).IsRequeue()).To(BeFalse())
	})
})
