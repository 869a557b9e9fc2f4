package common

import (
	"context"
	"strings"

	apiequality "k8s.io/apimachinery/pkg/api/equality"
	genericregistry "k8s.io/apiserver/pkg/registry/generic/registry"
	"sigs.k8s.io/controller-runtime/pkg/client"
	"sigs.k8s.io/controller-runtime/pkg/controller/controllerutil"
	"sigs.k8s.io/controller-runtime/pkg/log"

	sftpgov1alpha1 "github.com/snapp-incubator/sftpgo-operator/api/v1alpha1"
	operrors "github.com/snapp-incubator/sftpgo-operator/internal/errors"
	"github.com/snapp-incubator/sftpgo-operator/internal/reconciler"
	"github.com/snapp-incubator/sftpgo-operator/pkg/consts"
)

// AddCleanupFinalizer makes sure obj is not removed before its SFTPGo counterpart.
func AddCleanupFinalizer(ctx context.Context, c client.Client, obj client.Object) error {
	if objUpdated := controllerutil.AddFinalizer(obj, consts.CleanupFinalizer); objUpdated {
		if err := c.Update(ctx, obj); err != nil {
			return operrors.NewClusterAPIError("add finalizer", err)
		}
	}
	return nil
}

func RemoveCleanupFinalizer(ctx context.Context, c client.Client, obj client.Object) error {
	if objUpdated := controllerutil.RemoveFinalizer(obj, consts.CleanupFinalizer); objUpdated {
		if err := c.Update(ctx, obj); err != nil {
			return operrors.NewClusterAPIError("remove finalizer", err)
		}
	}
	return nil
}

// ReleaseFileSystem removes the RGW user a file system may have been given.
func ReleaseFileSystem(ctx context.Context, shared *reconciler.SharedContext, owner Owner) error {
	if !shared.RgwEnabled() {
		return nil
	}
	return RemoveRgwUser(ctx, shared.Rgw, shared.ClusterName, owner.Namespace, owner.Kind, owner.Name)
}

// UpdateStatus writes desired into the status subresource of obj when it differs from current.
// current must point into obj.
func UpdateStatus(ctx context.Context, c client.Client, obj client.Object, current *sftpgov1alpha1.SftpgoStatus, desired sftpgov1alpha1.SftpgoStatus) error {
	if apiequality.Semantic.DeepEqual(*current, desired) {
		return nil
	}

	*current = desired
	if err := c.Status().Update(ctx, obj); err != nil {
		if strings.Contains(err.Error(), genericregistry.OptimisticLockErrorMsg) {
			log.FromContext(ctx).Info("status update lost an optimistic lock race", "error", err.Error())
		}
		return operrors.NewClusterAPIError("update status", err)
	}
	return nil
}

// ReadyStatus is the status of a resource that matches SFTPGo.
func ReadyStatus(obj client.Object) sftpgov1alpha1.SftpgoStatus {
	return sftpgov1alpha1.SftpgoStatus{
		Ready:              true,
		Reason:             consts.EventReasonSynced,
		ObservedGeneration: obj.GetGeneration(),
	}
}

// MarkFailed records reconcileErr in the status of obj. It is best effort: a failure
// to write the status is logged and the original error stays the one reported.
func MarkFailed(ctx context.Context, c client.Client, obj client.Object, current *sftpgov1alpha1.SftpgoStatus, reconcileErr error) {
	desired := sftpgov1alpha1.SftpgoStatus{
		Ready:              false,
		Reason:             operrors.Reason(reconcileErr),
		ObservedGeneration: obj.GetGeneration(),
	}
	if err := UpdateStatus(ctx, c, obj, current, desired); err != nil {
		log.FromContext(ctx).V(1).Info("failed to record failure in status", "error", err.Error())
	}
}
