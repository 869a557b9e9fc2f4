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
	"sigs.k8s.io/controller-runtime/pkg/manager"

	sftpgov1alpha1 "github.com/snapp-incubator/sftpgo-operator/api/v1alpha1"
	"github.com/snapp-incubator/sftpgo-operator/internal/reconciler"
)

// SetupWithManager registers the SftpgoUser controller with the manager.
func SetupWithManager(mgr manager.Manager, shared *reconciler.SharedContext, customize func(*reconciler.Options)) error {
	return reconciler.Register[*sftpgov1alpha1.SftpgoUser](
		mgr,
		func() *sftpgov1alpha1.SftpgoUser { return &sftpgov1alpha1.SftpgoUser{} },
		Reconciler{},
		shared,
		customize,
	)
}
