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
	"time"

	apierrors "k8s.io/apimachinery/pkg/api/errors"
	"k8s.io/apimachinery/pkg/runtime"
	"k8s.io/apimachinery/pkg/util/validation/field"
	ctrl "sigs.k8s.io/controller-runtime"
	"sigs.k8s.io/controller-runtime/pkg/client"
	logf "sigs.k8s.io/controller-runtime/pkg/log"
	"sigs.k8s.io/controller-runtime/pkg/webhook"

	"github.com/snapp-incubator/sftpgo-operator/pkg/consts"
)

const (
	internalErrorMessage = "internal error"
)

var (
	sftpgouserlog = logf.Log.WithName("sftpgouser-resource")
	runtimeClient client.Reader

	ValidationTimeout = 10 * time.Second
)

func (u *SftpgoUser) SetupWebhookWithManager(mgr ctrl.Manager) error {
	runtimeClient = mgr.GetAPIReader()

	return ctrl.NewWebhookManagedBy(mgr).
		For(u).
		Complete()
}

//+kubebuilder:webhook:path=/validate-sftpgo-snappcloud-io-v1alpha1-sftpgouser,mutating=false,failurePolicy=fail,sideEffects=None,groups=sftpgo.snappcloud.io,resources=sftpgousers,verbs=create;update,versions=v1alpha1,name=vsftpgouser.kb.io,admissionReviewVersions=v1

var _ webhook.Validator = &SftpgoUser{}

// ValidateCreate implements webhook.Validator so a webhook will be registered for the type
func (u *SftpgoUser) ValidateCreate() error {
	sftpgouserlog.Info("validate create", "name", u.Name, "namespace", u.Namespace)

	allErrs := u.ValidateSpec()
	if len(allErrs) == 0 {
		ctx, cancel := context.WithTimeout(context.Background(), ValidationTimeout)
		defer cancel()

		taken, err := usernameTaken(ctx, u)
		if err != nil {
			sftpgouserlog.Error(err, "failed to list sftpgo users")
			return fmt.Errorf(internalErrorMessage)
		}
		if taken {
			allErrs = append(allErrs, field.Forbidden(field.NewPath("spec").Child("username"), consts.UsernameTakenErrMessage))
		}
	}

	return toInvalid("SftpgoUser", u.Name, allErrs)
}

// ValidateUpdate implements webhook.Validator so a webhook will be registered for the type
func (u *SftpgoUser) ValidateUpdate(old runtime.Object) error {
	sftpgouserlog.Info("validate update", "name", u.Name, "namespace", u.Namespace)

	oldUser, ok := old.(*SftpgoUser)
	if !ok {
		sftpgouserlog.Info("invalid object passed as old sftpgoUser", "type", old.GetObjectKind())
		return fmt.Errorf(internalErrorMessage)
	}

	allErrs := field.ErrorList{}
	// objects on their way out only need their finalizers removed
	if u.GetDeletionTimestamp() == nil {
		allErrs = u.ValidateSpec()
	}
	if u.GetServer() != oldUser.GetServer() {
		allErrs = append(allErrs, field.Forbidden(field.NewPath("spec").Child("server"), consts.ServerImmutableErrMessage))
	}
	if u.GetUsername() != oldUser.GetUsername() {
		allErrs = append(allErrs, field.Forbidden(field.NewPath("spec").Child("username"), consts.UsernameImmutableErrMessage))
	}

	return toInvalid("SftpgoUser", u.Name, allErrs)
}

// ValidateDelete implements webhook.Validator so a webhook will be registered for the type
func (u *SftpgoUser) ValidateDelete() error {
	return nil
}

func usernameTaken(ctx context.Context, u *SftpgoUser) (bool, error) {
	if runtimeClient == nil {
		return false, nil
	}

	userList := &SftpgoUserList{}
	if err := runtimeClient.List(ctx, userList); err != nil {
		return false, err
	}
	for i := range userList.Items {
		other := &userList.Items[i]
		if other.Namespace == u.Namespace && other.Name == u.Name {
			continue
		}
		if other.GetServer() == u.GetServer() && other.GetUsername() == u.GetUsername() {
			return true, nil
		}
	}
	return false, nil
}

func toInvalid(kind, name string, allErrs field.ErrorList) error {
	if len(allErrs) == 0 {
		return nil
	}
	return apierrors.NewInvalid(GroupVersion.WithKind(kind).GroupKind(), name, allErrs)
}
