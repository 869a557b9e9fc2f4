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
	"path"
	"sort"

	corev1 "k8s.io/api/core/v1"
	metav1 "k8s.io/apimachinery/pkg/apis/meta/v1"
	"k8s.io/apimachinery/pkg/util/validation/field"
)

// DefaultHomeDirBase is the parent of home directories that are not set explicitly.
const DefaultHomeDirBase = "/srv/sftpgo/data"

// VirtualFolder maps an SftpgoFolder into the user's tree.
type VirtualFolder struct {
	// name of the folder in SFTPGo
	// +kubebuilder:validation:Required
	Name string `json:"name"`
	// +kubebuilder:validation:Required
	VirtualPath string `json:"virtualPath"`
	// -1 means the user's quota applies
	// +kubebuilder:validation:Optional
	QuotaSize *int64 `json:"quotaSize,omitempty"`
	// +kubebuilder:validation:Optional
	QuotaFiles *int `json:"quotaFiles,omitempty"`
}

// SftpgoUserSpec defines the desired state of SftpgoUser
type SftpgoUserSpec struct {
	// name of the SFTPGo server in the operator configuration
	// +kubebuilder:validation:Optional
	// +kubebuilder:default=default
	Server string `json:"server,omitempty"`

	// defaults to the resource name
	// +kubebuilder:validation:Optional
	Username string `json:"username,omitempty"`

	// +kubebuilder:validation:Optional
	// +kubebuilder:default=true
	Enabled *bool `json:"enabled,omitempty"`

	// +kubebuilder:validation:Optional
	PasswordSecretRef *corev1.SecretKeySelector `json:"passwordSecretRef,omitempty"`

	// +kubebuilder:validation:Optional
	PublicKeys []string `json:"publicKeys,omitempty"`

	// +kubebuilder:validation:Optional
	HomeDir string `json:"homeDir,omitempty"`

	// per-directory permissions, defaults to full access on "/"
	// +kubebuilder:validation:Optional
	Permissions map[string][]string `json:"permissions,omitempty"`

	// +kubebuilder:validation:Required
	FileSystem FileSystem `json:"fileSystem"`

	// +kubebuilder:validation:Optional
	VirtualFolders []VirtualFolder `json:"virtualFolders,omitempty"`

	// +kubebuilder:validation:Optional
	Description string `json:"description,omitempty"`

	// bytes, 0 means unlimited
	// +kubebuilder:validation:Optional
	// +kubebuilder:validation:Minimum=0
	QuotaSize int64 `json:"quotaSize,omitempty"`

	// +kubebuilder:validation:Optional
	// +kubebuilder:validation:Minimum=0
	QuotaFiles int `json:"quotaFiles,omitempty"`
}

//+kubebuilder:object:root=true
//+kubebuilder:subresource:status
// +kubebuilder:printcolumn:name="SERVER",type=string,JSONPath=`.spec.server`
// +kubebuilder:printcolumn:name="READY",type=boolean,JSONPath=`.status.ready`
// +kubebuilder:resource:shortName=sfu

// SftpgoUser is the Schema for the sftpgousers API
type SftpgoUser struct {
	metav1.TypeMeta   `json:",inline"`
	metav1.ObjectMeta `json:"metadata,omitempty"`

	Spec   SftpgoUserSpec `json:"spec,omitempty"`
	Status SftpgoStatus   `json:"status,omitempty"`
}

//+kubebuilder:object:root=true

// SftpgoUserList contains a list of SftpgoUser
type SftpgoUserList struct {
	metav1.TypeMeta `json:",inline"`
	metav1.ListMeta `json:"metadata,omitempty"`
	Items           []SftpgoUser `json:"items"`
}

func init() {
	SchemeBuilder.Register(&SftpgoUser{}, &SftpgoUserList{})
}

func (u *SftpgoUser) GetServer() string {
	return serverOrDefault(u.Spec.Server)
}

func (u *SftpgoUser) GetUsername() string {
	if u.Spec.Username != "" {
		return u.Spec.Username
	}
	return u.Name
}

func (u *SftpgoUser) IsEnabled() bool {
	return u.Spec.Enabled == nil || *u.Spec.Enabled
}

func (u *SftpgoUser) GetHomeDir() string {
	if u.Spec.HomeDir != "" {
		return u.Spec.HomeDir
	}
	return path.Join(DefaultHomeDirBase, u.GetUsername())
}

func (u *SftpgoUser) GetPermissions() map[string][]string {
	if len(u.Spec.Permissions) == 0 {
		return map[string][]string{"/": {"*"}}
	}
	return u.Spec.Permissions
}

// ValidateSpec reports every structural problem of the spec.
func (u *SftpgoUser) ValidateSpec() field.ErrorList {
	allErrs := field.ErrorList{}
	specPath := field.NewPath("spec")

	if u.GetUsername() == "" {
		allErrs = append(allErrs, field.Required(specPath.Child("username"), ""))
	}

	if u.Spec.PasswordSecretRef == nil && len(u.Spec.PublicKeys) == 0 {
		allErrs = append(allErrs, field.Required(specPath.Child("passwordSecretRef"),
			"at least one of passwordSecretRef or publicKeys must be set"))
	}
	if u.Spec.PasswordSecretRef != nil {
		allErrs = append(allErrs, validateSecretKeySelector(u.Spec.PasswordSecretRef, specPath.Child("passwordSecretRef"))...)
	}
	for i, key := range u.Spec.PublicKeys {
		if key == "" {
			allErrs = append(allErrs, field.Required(specPath.Child("publicKeys").Index(i), ""))
		}
	}

	if u.Spec.HomeDir != "" {
		allErrs = append(allErrs, validateAbsolutePath(u.Spec.HomeDir, specPath.Child("homeDir"))...)
	}

	dirs := make([]string, 0, len(u.Spec.Permissions))
	for dir := range u.Spec.Permissions {
		dirs = append(dirs, dir)
	}
	sort.Strings(dirs)
	for _, dir := range dirs {
		permPath := specPath.Child("permissions").Key(dir)
		allErrs = append(allErrs, validateAbsolutePath(dir, permPath)...)
		if len(u.Spec.Permissions[dir]) == 0 {
			allErrs = append(allErrs, field.Required(permPath, "at least one permission must be listed"))
		}
	}

	if u.Spec.QuotaSize < 0 {
		allErrs = append(allErrs, field.Invalid(specPath.Child("quotaSize"), u.Spec.QuotaSize, "must not be negative"))
	}
	if u.Spec.QuotaFiles < 0 {
		allErrs = append(allErrs, field.Invalid(specPath.Child("quotaFiles"), u.Spec.QuotaFiles, "must not be negative"))
	}

	allErrs = append(allErrs, u.Spec.FileSystem.Validate(specPath.Child("fileSystem"))...)

	seen := map[string]bool{}
	for i, vf := range u.Spec.VirtualFolders {
		vfPath := specPath.Child("virtualFolders").Index(i)
		if vf.Name == "" {
			allErrs = append(allErrs, field.Required(vfPath.Child("name"), ""))
		}
		allErrs = append(allErrs, validateAbsolutePath(vf.VirtualPath, vfPath.Child("virtualPath"))...)
		if path.Clean(vf.VirtualPath) == "/" {
			allErrs = append(allErrs, field.Invalid(vfPath.Child("virtualPath"), vf.VirtualPath, "cannot be the root directory"))
		}
		if seen[path.Clean(vf.VirtualPath)] {
			allErrs = append(allErrs, field.Duplicate(vfPath.Child("virtualPath"), vf.VirtualPath))
		}
		seen[path.Clean(vf.VirtualPath)] = true
	}

	return allErrs
}
