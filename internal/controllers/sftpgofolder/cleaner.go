package sftpgofolder

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

func (r *run) cleanup(ctx context.Context) error {
	if !controllerutil.ContainsFinalizer(r.sftpgoFolder, consts.CleanupFinalizer) {
		return nil
	}

	return common.RunSteps(ctx,
		r.removeSftpgoFolder,
		r.releaseFileSystem,
		r.removeCleanupFinalizer,
	)
}

func (r *run) removeSftpgoFolder(ctx context.Context) (*ctrl.Result, error) {
	if !r.shared.Sftpgo.Has(r.server) {
		r.logger.Info("server is not configured anymore, leaving the SFTPGo folder behind")
		return subreconciler.ContinueReconciling()
	}

	client, err := r.shared.Sftpgo.For(r.server)
	if err != nil {
		return subreconciler.RequeueWithError(err)
	}

	switch err := client.DeleteFolder(ctx, r.folderName); {
	case sftpgoclient.IsNotFound(err):
		return subreconciler.ContinueReconciling()
	case err != nil:
		r.logger.Error(err, "failed to remove SFTPGo folder")
		return subreconciler.RequeueWithError(err)
	default:
		r.logger.Info("removed SFTPGo folder")
		if r.shared.Recorder != nil {
			r.shared.Recorder.Eventf(r.sftpgoFolder, corev1.EventTypeNormal, consts.EventReasonDeleted,
				"removed folder %s from SFTPGo server %s", r.folderName, r.server)
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
	if err := common.RemoveCleanupFinalizer(ctx, r.shared.Client, r.sftpgoFolder); err != nil {
		return subreconciler.RequeueWithError(err)
	}
	return subreconciler.ContinueReconciling()
}
