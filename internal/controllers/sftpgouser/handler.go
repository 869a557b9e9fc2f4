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

package sftpgouser

import (
	"context"

	"github.com/go-logr/logr"
	"sigs.k8s.io/controller-runtime/pkg/log"

	sftpgov1alpha1 "github.com/snapp-incubator/sftpgo-operator/api/v1alpha1"
	"github.com/snapp-incubator/sftpgo-operator/internal/controllers/common"
	"github.com/snapp-incubator/sftpgo-operator/internal/reconciler"
	"github.com/snapp-incubator/sftpgo-operator/internal/sftpgoclient"
)

const Kind = "SftpgoUser"

// Reconciler mirrors SftpgoUser objects into SFTPGo. It holds no per-object state and
// is safe to share between workers.
type Reconciler struct{}

var _ reconciler.Reconciler[*sftpgov1alpha1.SftpgoUser] = Reconciler{}

// run holds what one reconciliation of one SftpgoUser learns along the way.
type run struct {
	shared *reconciler.SharedContext
	logger logr.Logger

	sftpgoUser *sftpgov1alpha1.SftpgoUser
	owner      common.Owner
	username   string
	server     string

	sftpgo     sftpgoclient.Client
	password   string
	fileSystem sftpgoclient.FileSystem
}

func (Reconciler) Reconcile(ctx context.Context, sftpgoUser *sftpgov1alpha1.SftpgoUser, shared *reconciler.SharedContext) (reconciler.Action, error) {
	r := &run{
		shared:     shared,
		sftpgoUser: sftpgoUser,
		owner: common.Owner{
			Kind:      Kind,
			Namespace: sftpgoUser.Namespace,
			Name:      sftpgoUser.Name,
		},
		username: sftpgoUser.GetUsername(),
		server:   sftpgoUser.GetServer(),
	}
	r.logger = log.FromContext(ctx).WithValues("server", r.server, "username", r.username)
	ctx = log.IntoContext(ctx, r.logger)

	if sftpgoUser.GetDeletionTimestamp() != nil {
		return reconciler.NoRequeue(), r.cleanup(ctx)
	}

	if err := r.provision(ctx); err != nil {
		common.MarkFailed(ctx, shared.Client, sftpgoUser, &sftpgoUser.Status, err)
		return reconciler.NoRequeue(), err
	}
	return reconciler.NoRequeue(), nil
}
