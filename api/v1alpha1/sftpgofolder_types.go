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
	metav1 "k8s.io/apimachinery/pkg/apis/meta/v1"
	"k8s.io/apimachinery/pkg/util/validation/field"
)

// SftpgoFolderSpec defines the desired state of SftpgoFolder
type SftpgoFolderSpec struct {
	// +kubebuilder:validation:Optional
	// +kubebuilder:default=default
	Server string `json:"server,omitempty"`

	// defaults to the resource name
	// +kubebuilder:validation:Optional
	Name string `json:"name,omitempty"`

	// absolute path on the SFTPGo host, required for local file systems
	// +kubebuilder:validation:Optional
	MappedPath string `json:"mappedPath,omitempty"`

	// +kubebuilder:validation:Optional
	Description string `json:"description,omitempty"`

	// +kubebuilder:validation:Required
	FileSystem FileSystem `json:"fileSystem"`
}

//+kubebuilder:object:root=true
//+kubebuilder:subresource:status
// +kubebuilder:printcolumn:name="SERVER",type=string,JSONPath=`.spec.server`
// +kubebuilder:printcolumn:name="READY",type=boolean,JSONPath=`.status.ready`
// +kubebuilder:resource:shortName=sff

// SftpgoFolder is the Schema for the sftpgofolders API
type SftpgoFolder struct {
	metav1.TypeMeta   `json:",inline"`
	metav1.ObjectMeta `json:"metadata,omitempty"`

	Spec   SftpgoFolderSpec `json:"spec,omitempty"`
	Status SftpgoStatus     `json:"status,omitempty"`
}

//+kubebuilder:object:root=true

// SftpgoFolderList contains a list of SftpgoFolder
type SftpgoFolderList struct {
	metav1.TypeMeta `json:",inline"`
	metav1.ListMeta `json:"metadata,omitempty"`
	Items           []SftpgoFolder `json:"items"`
}

func init() {
	SchemeBuilder.Register(&SftpgoFolder{}, &SftpgoFolderList{})
}

func (f *SftpgoFolder) GetServer() string {
	return serverOrDefault(f.Spec.Server)
}

func (f *SftpgoFolder) GetFolderName() string {
	if f.Spec.Name != "" {
		return f.Spec.Name
	}
	return f.Name
}

func (f *SftpgoFolder) ValidateSpec() field.ErrorList {
	allErrs := field.ErrorList{}
	specPath := field.NewPath("spec")

	if f.GetFolderName() == "" {
		allErrs = append(allErrs, field.Required(specPath.Child("name"), ""))
	}

	switch {
	case f.Spec.MappedPath != "":
		allErrs = append(allErrs, validateAbsolutePath(f.Spec.MappedPath, specPath.Child("mappedPath"))...)
	case f.Spec.FileSystem.Local != nil:
		allErrs = append(allErrs, field.Required(specPath.Child("mappedPath"), "required for local file systems"))
	}

	allErrs = append(allErrs, f.Spec.FileSystem.Validate(specPath.Child("fileSystem"))...)

	return allErrs
}
