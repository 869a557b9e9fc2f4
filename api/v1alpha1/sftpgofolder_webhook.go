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

package v1alpha1

import (
	"context"
	"fmt"

	"k8s.io/apimachinery/pkg/runtime"
	"k8s.io/apimachinery/pkg/util/validation/field"
	ctrl "sigs.k8s.io/controller-runtime"
	logf "sigs.k8s.io/controller-runtime/pkg/log"
	"sigs.k8s.io/controller-runtime/pkg/webhook"

	"github.com/snapp-incubator/sftpgo-operator/pkg/consts"
)

// log is for logging in this package.
var sftpgofolderlog = logf.Log.WithName("sftpgofolder-resource")

func (f *SftpgoFolder) SetupWebhookWithManager(mgr ctrl.Manager) error {
	runtimeClient = mgr.GetAPIReader()
	return ctrl.NewWebhookManagedBy(mgr).
		For(f).
		Complete()
}

//+kubebuilder:webhook:path=/validate-sftpgo-snappcloud-io-v1alpha1-sftpgofolder,mutating=false,failurePolicy=fail,sideEffects=None,groups=sftpgo.snappcloud.io,resources=sftpgofolders,verbs=create;update,versions=v1alpha1,name=vsftpgofolder.kb.io,admissionReviewVersions=v1

var _ webhook.Validator = &SftpgoFolder{}

// ValidateCreate implements webhook.Validator so a webhook will be registered for the type
func (f *SftpgoFolder) ValidateCreate() error {
	sftpgofolderlog.Info("validate create", "name", f.Name, "namespace", f.Namespace)

	allErrs := f.ValidateSpec()
	if len(allErrs) == 0 {
		ctx, cancel := context.WithTimeout(context.Background(), ValidationTimeout)
		defer cancel()

		taken, err := folderNameTaken(ctx, f)
		if err != nil {
			sftpgofolderlog.Error(err, "failed to list sftpgo folders")
			return fmt.Errorf(internalErrorMessage)
		}
		if taken {
			allErrs = append(allErrs, field.Forbidden(field.NewPath("spec").Child("name"), consts.FolderNameTakenErrMessage))
		}
	}

	return toInvalid("SftpgoFolder", f.Name, allErrs)
}

// ValidateUpdate implements webhook.Validator so a webhook will be registered for the type
func (f *SftpgoFolder) ValidateUpdate(old runtime.Object) error {
	sftpgofolderlog.Info("validate update", "name", f.Name, "namespace", f.Namespace)

	oldFolder, ok := old.(*SftpgoFolder)
	if !ok {
		sftpgofolderlog.Info("invalid object passed as old sftpgoFolder", "type", old.GetObjectKind())
		return fmt.Errorf(internalErrorMessage)
	}

	allErrs := field.ErrorList{}
	// objects on their way out only need their finalizers removed
	if f.GetDeletionTimestamp() == nil {
		allErrs = f.ValidateSpec()
	}
	if f.GetServer() != oldFolder.GetServer() {
		allErrs = append(allErrs, field.Forbidden(field.NewPath("spec").Child("server"), consts.ServerImmutableErrMessage))
	}
	if f.GetFolderName() != oldFolder.GetFolderName() {
		allErrs = append(allErrs, field.Forbidden(field.NewPath("spec").Child("name"), consts.FolderNameImmutableErrMessage))
	}

	return toInvalid("SftpgoFolder", f.Name, allErrs)
}

// ValidateDelete implements webhook.Validator so a webhook will be registered for the type
func (f *SftpgoFolder) ValidateDelete() error {
	return nil
}

func folderNameTaken(ctx context.Context, f *SftpgoFolder) (bool, error) {
	if runtimeClient == nil {
		return false, nil
	}

	folderList := &SftpgoFolderList{}
	if err := runtimeClient.List(ctx, folderList); err != nil {
		return false, err
	}
	for i := range folderList.Items {
		other := &folderList.Items[i]
		if other.Namespace == f.Namespace && other.Name == f.Name {
			continue
		}
		if other.GetServer() == f.GetServer() && other.GetFolderName() == f.GetFolderName() {
			return true, nil
		}
	}
	return false, nil
}
