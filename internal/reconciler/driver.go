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

// Package reconciler turns a watch on one kind into calls of a Reconciler and
// applies a single ErrorPolicy to every failure.
package reconciler

import (
	"context"
	"strings"
	"time"

	corev1 "k8s.io/api/core/v1"
	apierrors "k8s.io/apimachinery/pkg/api/errors"
	ctrl "sigs.k8s.io/controller-runtime"
	"sigs.k8s.io/controller-runtime/pkg/builder"
	"sigs.k8s.io/controller-runtime/pkg/client"
	"sigs.k8s.io/controller-runtime/pkg/client/apiutil"
	"sigs.k8s.io/controller-runtime/pkg/controller"
	"sigs.k8s.io/controller-runtime/pkg/log"
	"sigs.k8s.io/controller-runtime/pkg/predicate"
	"sigs.k8s.io/controller-runtime/pkg/reconcile"

	operrors "github.com/snapp-incubator/sftpgo-operator/internal/errors"
	"github.com/snapp-incubator/sftpgo-operator/internal/metrics"
	"github.com/snapp-incubator/sftpgo-operator/pkg/consts"
)

// Reconciler converges one resource. It must be idempotent and return failures
// instead of deciding about retries itself.
type Reconciler[T client.Object] interface {
	Reconcile(ctx context.Context, obj T, shared *SharedContext) (Action, error)
}

// ReconcilerFunc adapts a function to Reconciler.
type ReconcilerFunc[T client.Object] func(ctx context.Context, obj T, shared *SharedContext) (Action, error)

func (f ReconcilerFunc[T]) Reconcile(ctx context.Context, obj T, shared *SharedContext) (Action, error) {
	return f(ctx, obj, shared)
}

// Options configure the controller behind a driver. They are handed to the
// customize hook of Register once, before the controller is built.
type Options struct {
	Name                    string
	Predicates              []predicate.Predicate
	MaxConcurrentReconciles int
	ErrorPolicy             ErrorPolicy
}

func newOptions(kind string, customize func(*Options)) Options {
	opts := Options{
		Name:                    strings.ToLower(kind),
		MaxConcurrentReconciles: 1,
	}
	if customize != nil {
		customize(&opts)
	}
	if opts.ErrorPolicy == nil {
		opts.ErrorPolicy = FixedDelay(DefaultRetryDelay)
	}
	if opts.MaxConcurrentReconciles < 1 {
		opts.MaxConcurrentReconciles = 1
	}
	return opts
}

// Driver fetches the object behind each request and runs the Reconciler on it.
type Driver[T client.Object] struct {
	kind       string
	newObject  func() T
	reconciler Reconciler[T]
	shared     *SharedContext
	policy     ErrorPolicy
}

var _ reconcile.Reconciler = &Driver[client.Object]{}

func NewDriver[T client.Object](kind string, newObject func() T, r Reconciler[T], shared *SharedContext, policy ErrorPolicy) *Driver[T] {
	if policy == nil {
		policy = FixedDelay(DefaultRetryDelay)
	}
	return &Driver[T]{
		kind:       kind,
		newObject:  newObject,
		reconciler: r,
		shared:     shared,
		policy:     policy,
	}
}

// Register builds a controller for T on mgr and returns once it is added; the watch
// runs until the manager stops.
func Register[T client.Object](mgr ctrl.Manager, newObject func() T, r Reconciler[T], shared *SharedContext, customize func(*Options)) error {
	obj := newObject()
	gvk, err := apiutil.GVKForObject(obj, mgr.GetScheme())
	if err != nil {
		return err
	}

	opts := newOptions(gvk.Kind, customize)
	driver := NewDriver(gvk.Kind, newObject, r, shared, opts.ErrorPolicy)

	log.Log.WithName("reconciler").Info("starting reconciler", "kind", gvk.Kind, "name", opts.Name)

	return ctrl.NewControllerManagedBy(mgr).
		Named(opts.Name).
		For(obj, builder.WithPredicates(opts.Predicates...)).
		WithOptions(controller.Options{MaxConcurrentReconciles: opts.MaxConcurrentReconciles}).
		Complete(driver)
}

func (d *Driver[T]) Reconcile(ctx context.Context, req ctrl.Request) (ctrl.Result, error) {
	start := time.Now()
	logger := log.FromContext(ctx).WithValues("kind", d.kind)
	ctx = log.IntoContext(ctx, logger)

	obj := d.newObject()
	if err := d.shared.Client.Get(ctx, req.NamespacedName, obj); err != nil {
		if apierrors.IsNotFound(err) {
			logger.V(1).Info("object is gone, nothing to do")
			metrics.RecordReconcile(d.kind, metrics.ResultSuccess, "", time.Since(start).Seconds())
			return ctrl.Result{}, nil
		}
		obj.SetNamespace(req.Namespace)
		obj.SetName(req.Name)
		return d.fail(ctx, obj, operrors.NewClusterAPIError("get "+d.kind, err), start)
	}

	logger = logger.WithValues("generation", obj.GetGeneration(), "resourceVersion", obj.GetResourceVersion())
	ctx = log.IntoContext(ctx, logger)

	action, err := d.reconciler.Reconcile(ctx, obj, d.shared)
	if err != nil {
		return d.fail(ctx, obj, err, start)
	}

	logger.V(1).Info("reconciled", "action", action.String())
	metrics.RecordReconcile(d.kind, metrics.ResultSuccess, "", time.Since(start).Seconds())
	return action.Result(), nil
}

// fail hands err to the policy. The error itself is not returned to controller-runtime
// so that the policy's delay is honoured instead of the workqueue's rate limiter.
func (d *Driver[T]) fail(ctx context.Context, obj T, err error, start time.Time) (ctrl.Result, error) {
	reason := operrors.Reason(err)
	action := d.policy(ctx, obj, err)

	log.FromContext(ctx).Error(err, "reconciliation failed",
		"reason", reason,
		"requeueAfter", action.RequeueDelay(),
	)

	if d.shared.Recorder != nil && obj.GetUID() != "" {
		d.shared.Recorder.Eventf(obj, corev1.EventTypeWarning, consts.EventReasonReconcileFailed, "%s: %v", reason, err)
	}

	metrics.RecordReconcile(d.kind, metrics.ResultError, reason, time.Since(start).Seconds())
	return action.Result(), nil
}
