package sftpgouser

import (
	"context"

	"github.com/opdev/subreconciler"
	corev1 "k8s.io/api/core/v1"
	ctrl "sigs.k8s.io/controller-runtime"
	"sigs.k8s.io/controller-runtime/pkg/controller/controllerutil"

	"github.com/snapp-incubator/sftpgo-operator/internal/controllers/common"
	"github.com/snapp-incubator/sftpgo-operator/internal/sftpgoclient"
	"github.com/snapp-incubator/sftpgo-operator/pkg/consts"
)

// cleanup removes what was provisioned for the SftpgoUser object
func (r *run) cleanup(ctx context.Context) error {
	if !controllerutil.ContainsFinalizer(r.sftpgoUser, consts.CleanupFinalizer) {
		return nil
	}

	return common.RunSteps(ctx,
		r.removeSftpgoUser,
		r.releaseFileSystem,
		r.removeCleanupFinalizer,
	)
}

func (r *run) removeSftpgoUser(ctx context.Context) (*ctrl.Result, error) {
	if !r.shared.Sftpgo.Has(r.server) {
		r.logger.Info("server is not configured anymore, leaving the SFTPGo user behind")
		return subreconciler.ContinueReconciling()
	}

	client, err := r.shared.Sftpgo.For(r.server)
	if err != nil {
		return subreconciler.RequeueWithError(err)
	}

	switch err := client.DeleteUser(ctx, r.username); {
	case sftpgoclient.IsNotFound(err):
		return subreconciler.ContinueReconciling()
	case err != nil:
		r.logger.Error(err, "failed to remove SFTPGo user")
		return subreconciler.RequeueWithError(err)
	default:
		r.logger.Info("removed SFTPGo user")
		if r.shared.Recorder != nil {
			r.shared.Recorder.Eventf(r.sftpgoUser, corev1.EventTypeNormal, consts.EventReasonDeleted,
				"removed user %s from SFTPGo server %s", r.username, r.server)
		}
		return subreconciler.ContinueReconciling()
	}
}

func (r *run) releaseFileSystem(ctx context.Context) (*ctrl.Result, error) {
	if err := common.ReleaseFileSystem(ctx, r.shared, r.owner); err != nil {
		r.logger.Error(err, "failed to remove RGW user")
		return subreconciler.RequeueWithError(err)
	}
	return subreconciler.ContinueReconciling()
}

func (r *run) removeCleanupFinalizer(ctx context.Context) (*ctrl.Result, error) {
	if err := common.RemoveCleanupFinalizer(ctx, r.shared.Client, r.sftpgoUser); err != nil {
		return subreconciler.RequeueWithError(err)
	}
	return subreconciler.ContinueReconciling()
}
