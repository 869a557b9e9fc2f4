package sftpgofolder

import (
	"context"

	"github.com/opdev/subreconciler"
	corev1 "k8s.io/api/core/v1"
	ctrl "sigs.k8s.io/controller-runtime"

	"github.com/snapp-incubator/sftpgo-operator/internal/controllers/common"
	"github.com/snapp-incubator/sftpgo-operator/internal/sftpgoclient"
	"github.com/snapp-incubator/sftpgo-operator/pkg/consts"
)

func (r *run) provision(ctx context.Context) error {
	return common.RunSteps(ctx,
		r.validateSpec,
		r.resolveServer,
		r.addCleanupFinalizer,
		r.buildFileSystem,
		r.ensureSftpgoFolder,
		r.updateSftpgoFolderStatus,
	)
}

func (r *run) validateSpec(context.Context) (*ctrl.Result, error) {
	if err := common.ValidationError(r.sftpgoFolder.ValidateSpec()); err != nil {
		return subreconciler.RequeueWithError(err)
	}
	return subreconciler.ContinueReconciling()
}

func (r *run) resolveServer(context.Context) (*ctrl.Result, error) {
	client, err := r.shared.Sftpgo.For(r.server)
	if err != nil {
		return subreconciler.RequeueWithError(err)
	}
	r.sftpgo = client
	return subreconciler.ContinueReconciling()
}

func (r *run) addCleanupFinalizer(ctx context.Context) (*ctrl.Result, error) {
	if err := common.AddCleanupFinalizer(ctx, r.shared.Client, r.sftpgoFolder); err != nil {
		return subreconciler.RequeueWithError(err)
	}
	return subreconciler.ContinueReconciling()
}

func (r *run) buildFileSystem(ctx context.Context) (*ctrl.Result, error) {
	fs, err := common.BuildFileSystem(ctx, r.shared, r.owner, &r.sftpgoFolder.Spec.FileSystem)
	if err != nil {
		return subreconciler.RequeueWithError(err)
	}
	r.fileSystem = fs
	return subreconciler.ContinueReconciling()
}

func (r *run) ensureSftpgoFolder(ctx context.Context) (*ctrl.Result, error) {
	desired := &sftpgoclient.Folder{
		Name:        r.folderName,
		MappedPath:  r.sftpgoFolder.Spec.MappedPath,
		Description: r.sftpgoFolder.Spec.Description,
		FileSystem:  r.fileSystem,
	}

	switch existing, err := r.sftpgo.GetFolder(ctx, r.folderName); {
	case err == nil:
		desired.ID = existing.ID
		if err := r.sftpgo.UpdateFolder(ctx, desired); err != nil {
			r.logger.Error(err, "failed to update SFTPGo folder")
			return subreconciler.RequeueWithError(err)
		}
	case sftpgoclient.IsNotFound(err):
		if _, err := r.sftpgo.CreateFolder(ctx, desired); err != nil {
			r.logger.Error(err, "failed to create SFTPGo folder")
			return subreconciler.RequeueWithError(err)
		}
		r.logger.Info("created SFTPGo folder")
		if r.shared.Recorder != nil {
			r.shared.Recorder.Eventf(r.sftpgoFolder, corev1.EventTypeNormal, consts.EventReasonSynced,
				"created folder %s on SFTPGo server %s", r.folderName, r.server)
		}
	default:
		r.logger.Error(err, "failed to get SFTPGo folder")
		return subreconciler.RequeueWithError(err)
	}

	return subreconciler.ContinueReconciling()
}

func (r *run) updateSftpgoFolderStatus(ctx context.Context) (*ctrl.Result, error) {
	if err := common.UpdateStatus(ctx, r.shared.Client, r.sftpgoFolder, &r.sftpgoFolder.Status, common.ReadyStatus(r.sftpgoFolder)); err != nil {
		return subreconciler.RequeueWithError(err)
	}
	return subreconciler.ContinueReconciling()
}
