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

package sftpgofolder

import (
	"context"

	"github.com/go-logr/logr"
	"sigs.k8s.io/controller-runtime/pkg/log"
	"sigs.k8s.io/controller-runtime/pkg/manager"

	sftpgov1alpha1 "github.com/snapp-incubator/sftpgo-operator/api/v1alpha1"
	"github.com/snapp-incubator/sftpgo-operator/internal/controllers/common"
	"github.com/snapp-incubator/sftpgo-operator/internal/reconciler"
	"github.com/snapp-incubator/sftpgo-operator/internal/sftpgoclient"
)

const Kind = "SftpgoFolder"

// Reconciler mirrors SftpgoFolder objects into SFTPGo virtual folders.
type Reconciler struct{}

var _ reconciler.Reconciler[*sftpgov1alpha1.SftpgoFolder] = Reconciler{}

type run struct {
	shared *reconciler.SharedContext
	logger logr.Logger

	sftpgoFolder *sftpgov1alpha1.SftpgoFolder
	owner        common.Owner
	folderName   string
	server       string

	sftpgo     sftpgoclient.Client
	fileSystem sftpgoclient.FileSystem
}

// SetupWithManager registers the SftpgoFolder controller with the manager.
func SetupWithManager(mgr manager.Manager, shared *reconciler.SharedContext, customize func(*reconciler.Options)) error {
	return reconciler.Register[*sftpgov1alpha1.SftpgoFolder](
		mgr,
		func() *sftpgov1alpha1.SftpgoFolder { return &sftpgov1alpha1.SftpgoFolder{} },
		Reconciler{},
		shared,
		customize,
	)
}

func (Reconciler) Reconcile(ctx context.Context, sftpgoFolder *sftpgov1alpha1.SftpgoFolder, shared *reconciler.SharedContext) (reconciler.Action, error) {
	r := &run{
		shared:       shared,
		sftpgoFolder: sftpgoFolder,
		owner: common.Owner{
			Kind:      Kind,
			Namespace: sftpgoFolder.Namespace,
			Name:      sftpgoFolder.Name,
		},
		folderName: sftpgoFolder.GetFolderName(),
		server:     sftpgoFolder.GetServer(),
	}
	r.logger = log.FromContext(ctx).WithValues("server", r.server, "folder", r.folderName)
	ctx = log.IntoContext(ctx, r.logger)

	if sftpgoFolder.GetDeletionTimestamp() != nil {
		return reconciler.NoRequeue(), r.cleanup(ctx)
	}

	if err := r.provision(ctx); err != nil {
		common.MarkFailed(ctx, shared.Client, sftpgoFolder, &sftpgoFolder.Status, err)
		return reconciler.NoRequeue(), err
	}
	return reconciler.NoRequeue(), nil
}
