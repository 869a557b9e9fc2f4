package sftpgouser

import (
	"context"

	"github.com/opdev/subreconciler"
	corev1 "k8s.io/api/core/v1"
	ctrl "sigs.k8s.io/controller-runtime"

	"github.com/snapp-incubator/sftpgo-operator/internal/controllers/common"
	"github.com/snapp-incubator/sftpgo-operator/internal/sftpgoclient"
	"github.com/snapp-incubator/sftpgo-operator/pkg/consts"
)

// provision makes SFTPGo hold a user matching the SftpgoUser object
func (r *run) provision(ctx context.Context) error {
	return common.RunSteps(ctx,
		r.validateSpec,
		r.resolveServer,
		r.addCleanupFinalizer,
		r.resolvePassword,
		r.buildFileSystem,
		r.ensureSftpgoUser,
		r.updateSftpgoUserStatus,
	)
}

func (r *run) validateSpec(context.Context) (*ctrl.Result, error) {
	if err := common.ValidationError(r.sftpgoUser.ValidateSpec()); err != nil {
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
	if err := common.AddCleanupFinalizer(ctx, r.shared.Client, r.sftpgoUser); err != nil {
		return subreconciler.RequeueWithError(err)
	}
	return subreconciler.ContinueReconciling()
}

func (r *run) resolvePassword(ctx context.Context) (*ctrl.Result, error) {
	ref := r.sftpgoUser.Spec.PasswordSecretRef
	if ref == nil {
		return subreconciler.ContinueReconciling()
	}

	password, err := common.SecretValue(ctx, r.shared.Client, r.sftpgoUser.Namespace, "spec.passwordSecretRef", *ref)
	if err != nil {
		return subreconciler.RequeueWithError(err)
	}
	r.password = password
	return subreconciler.ContinueReconciling()
}

func (r *run) buildFileSystem(ctx context.Context) (*ctrl.Result, error) {
	fs, err := common.BuildFileSystem(ctx, r.shared, r.owner, &r.sftpgoUser.Spec.FileSystem)
	if err != nil {
		return subreconciler.RequeueWithError(err)
	}
	r.fileSystem = fs
	return subreconciler.ContinueReconciling()
}

func (r *run) desiredUser() *sftpgoclient.User {
	spec := r.sftpgoUser.Spec

	status := sftpgoclient.UserStatusEnabled
	if !r.sftpgoUser.IsEnabled() {
		status = sftpgoclient.UserStatusDisabled
	}

	folders := make([]sftpgoclient.VirtualFolder, 0, len(spec.VirtualFolders))
	for _, vf := range spec.VirtualFolders {
		folders = append(folders, sftpgoclient.VirtualFolder{
			Name:        vf.Name,
			VirtualPath: vf.VirtualPath,
			// -1 counts the folder against the user's own quota
			QuotaSize:  derefOr(vf.QuotaSize, -1),
			QuotaFiles: derefOr(vf.QuotaFiles, -1),
		})
	}

	return &sftpgoclient.User{
		Status:         status,
		Username:       r.username,
		Description:    spec.Description,
		Password:       r.password,
		PublicKeys:     spec.PublicKeys,
		HomeDir:        r.sftpgoUser.GetHomeDir(),
		Permissions:    r.sftpgoUser.GetPermissions(),
		QuotaSize:      spec.QuotaSize,
		QuotaFiles:     spec.QuotaFiles,
		FileSystem:     r.fileSystem,
		VirtualFolders: folders,
	}
}

func (r *run) ensureSftpgoUser(ctx context.Context) (*ctrl.Result, error) {
	desired := r.desiredUser()

	switch existing, err := r.sftpgo.GetUser(ctx, r.username); {
	case err == nil:
		desired.ID = existing.ID
		if err := r.sftpgo.UpdateUser(ctx, desired); err != nil {
			r.logger.Error(err, "failed to update SFTPGo user")
			return subreconciler.RequeueWithError(err)
		}
	case sftpgoclient.IsNotFound(err):
		if _, err := r.sftpgo.CreateUser(ctx, desired); err != nil {
			r.logger.Error(err, "failed to create SFTPGo user")
			return subreconciler.RequeueWithError(err)
		}
		r.logger.Info("created SFTPGo user")
		if r.shared.Recorder != nil {
			r.shared.Recorder.Eventf(r.sftpgoUser, corev1.EventTypeNormal, consts.EventReasonSynced,
				"created user %s on SFTPGo server %s", r.username, r.server)
		}
	default:
		r.logger.Error(err, "failed to get SFTPGo user")
		return subreconciler.RequeueWithError(err)
	}

	return subreconciler.ContinueReconciling()
}

func (r *run) updateSftpgoUserStatus(ctx context.Context) (*ctrl.Result, error) {
	if err := common.UpdateStatus(ctx, r.shared.Client, r.sftpgoUser, &r.sftpgoUser.Status, common.ReadyStatus(r.sftpgoUser)); err != nil {
		return subreconciler.RequeueWithError(err)
	}
	return subreconciler.ContinueReconciling()
}

func derefOr[T any](p *T, fallback T) T {
	if p == nil {
		return fallback
	}
	return *p
}
