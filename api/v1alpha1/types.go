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

	corev1 "k8s.io/api/core/v1"
	"k8s.io/apimachinery/pkg/util/validation/field"

	"github.com/snapp-incubator/sftpgo-operator/pkg/consts"
)

const (
	DefaultAzurePartSize    int64 = 5
	DefaultAzureConcurrency       = 5
)

// FileSystem is the storage backend of a user or a folder. Exactly one member must be set.
type FileSystem struct {
	// +kubebuilder:validation:Optional
	Local *LocalFileSystem `json:"local,omitempty"`
	// +kubebuilder:validation:Optional
	AzureBlobStorage *AzureBlobStorageFileSystem `json:"azureBlobStorage,omitempty"`
	// +kubebuilder:validation:Optional
	S3 *S3FileSystem `json:"s3,omitempty"`
}

type LocalFileSystem struct {
	// buffer size in MB, 0 disables buffering
	// +kubebuilder:validation:Minimum=0
	ReadBufferSize *int `json:"readBufferSize,omitempty"`
	// +kubebuilder:validation:Minimum=0
	WriteBufferSize *int `json:"writeBufferSize,omitempty"`
}

// +kubebuilder:validation:Enum=Hot;Cool;Archive
type AzureBlobStorageAccessTier string

const (
	AzureBlobStorageAccessTierHot     AzureBlobStorageAccessTier = "Hot"
	AzureBlobStorageAccessTierCool    AzureBlobStorageAccessTier = "Cool"
	AzureBlobStorageAccessTierArchive AzureBlobStorageAccessTier = "Archive"
)

type AzureBlobStorageFileSystem struct {
	// +kubebuilder:validation:Required
	Authorization AzureBlobStorageAuthorization `json:"authorization"`
	// +kubebuilder:validation:Optional
	Endpoint string `json:"endpoint,omitempty"`
	// part size in MB
	// +kubebuilder:default=5
	UploadPartSize *int64 `json:"uploadPartSize,omitempty"`
	// +kubebuilder:default=5
	UploadConcurrency *int `json:"uploadConcurrency,omitempty"`
	// +kubebuilder:default=5
	DownloadPartSize *int64 `json:"downloadPartSize,omitempty"`
	// +kubebuilder:default=5
	DownloadConcurrency *int `json:"downloadConcurrency,omitempty"`
	// +kubebuilder:validation:Optional
	AccessTier AzureBlobStorageAccessTier `json:"accessTier,omitempty"`
	// +kubebuilder:validation:Optional
	KeyPrefix string `json:"keyPrefix,omitempty"`
	// +kubebuilder:validation:Optional
	UseEmulator bool `json:"useEmulator,omitempty"`
}

// AzureBlobStorageAuthorization holds either a shared key or a SAS URL.
type AzureBlobStorageAuthorization struct {
	SharedKey *AzureBlobStorageSharedKey `json:"sharedKey,omitempty"`
	// secret key holding a container SAS URL
	SASURLSecretRef *corev1.SecretKeySelector `json:"sasUrlSecretRef,omitempty"`
}

type AzureBlobStorageSharedKey struct {
	// +kubebuilder:validation:Required
	AccountName string `json:"accountName"`
	// +kubebuilder:validation:Required
	Container string `json:"container"`
	// +kubebuilder:validation:Required
	AccountKeySecretRef corev1.SecretKeySelector `json:"accountKeySecretRef"`
}

type S3FileSystem struct {
	// +kubebuilder:validation:Required
	Bucket string `json:"bucket"`
	// +kubebuilder:validation:Optional
	Region string `json:"region,omitempty"`
	// +kubebuilder:validation:Optional
	Endpoint string `json:"endpoint,omitempty"`
	// +kubebuilder:validation:Optional
	KeyPrefix string `json:"keyPrefix,omitempty"`
	// +kubebuilder:validation:Optional
	ForcePathStyle bool `json:"forcePathStyle,omitempty"`
	// Secret with accessKey and secretKey entries. When omitted, credentials of a Ceph RGW
	// user provisioned for this resource are used.
	// +kubebuilder:validation:Optional
	CredentialsSecretRef *corev1.LocalObjectReference `json:"credentialsSecretRef,omitempty"`
	// create the bucket if it doesn't exist
	// +kubebuilder:validation:Optional
	CreateBucket bool `json:"createBucket,omitempty"`
}

// SftpgoStatus is the observed state shared by every kind.
type SftpgoStatus struct {
	// +kubebuilder:validation:Optional
	// +kubebuilder:default=false
	Ready bool `json:"ready,omitempty"`
	// +kubebuilder:validation:Optional
	Reason string `json:"reason,omitempty"`
	// +kubebuilder:validation:Optional
	ObservedGeneration int64 `json:"observedGeneration,omitempty"`
}

// ServerReferrer is implemented by kinds bound to one configured SFTPGo server.
type ServerReferrer interface {
	GetServer() string
}

// SpecValidator is implemented by kinds whose spec can be checked without cluster access.
type SpecValidator interface {
	ValidateSpec() field.ErrorList
}

func serverOrDefault(server string) string {
	if server == "" {
		return consts.DefaultServerName
	}
	return server
}

// Validate checks the file system at fldPath.
func (fs *FileSystem) Validate(fldPath *field.Path) field.ErrorList {
	allErrs := field.ErrorList{}

	set := 0
	if fs.Local != nil {
		set++
		allErrs = append(allErrs, fs.Local.validate(fldPath.Child("local"))...)
	}
	if fs.AzureBlobStorage != nil {
		set++
		allErrs = append(allErrs, fs.AzureBlobStorage.validate(fldPath.Child("azureBlobStorage"))...)
	}
	if fs.S3 != nil {
		set++
		allErrs = append(allErrs, fs.S3.validate(fldPath.Child("s3"))...)
	}

	switch {
	case set == 0:
		allErrs = append(allErrs, field.Required(fldPath, "one of local, azureBlobStorage or s3 must be set"))
	case set > 1:
		allErrs = append(allErrs, field.Invalid(fldPath, "", "only one of local, azureBlobStorage or s3 may be set"))
	}

	return allErrs
}

func (l *LocalFileSystem) validate(fldPath *field.Path) field.ErrorList {
	allErrs := field.ErrorList{}
	if l.ReadBufferSize != nil && *l.ReadBufferSize < 0 {
		allErrs = append(allErrs, field.Invalid(fldPath.Child("readBufferSize"), *l.ReadBufferSize, "must not be negative"))
	}
	if l.WriteBufferSize != nil && *l.WriteBufferSize < 0 {
		allErrs = append(allErrs, field.Invalid(fldPath.Child("writeBufferSize"), *l.WriteBufferSize, "must not be negative"))
	}
	return allErrs
}

func (a *AzureBlobStorageFileSystem) validate(fldPath *field.Path) field.ErrorList {
	allErrs := field.ErrorList{}

	authPath := fldPath.Child("authorization")
	auth := a.Authorization
	switch {
	case auth.SharedKey == nil && auth.SASURLSecretRef == nil:
		allErrs = append(allErrs, field.Required(authPath, "one of sharedKey or sasUrlSecretRef must be set"))
	case auth.SharedKey != nil && auth.SASURLSecretRef != nil:
		allErrs = append(allErrs, field.Invalid(authPath, "", "only one of sharedKey or sasUrlSecretRef may be set"))
	case auth.SharedKey != nil:
		keyPath := authPath.Child("sharedKey")
		if auth.SharedKey.AccountName == "" {
			allErrs = append(allErrs, field.Required(keyPath.Child("accountName"), ""))
		}
		if auth.SharedKey.Container == "" {
			allErrs = append(allErrs, field.Required(keyPath.Child("container"), ""))
		}
		allErrs = append(allErrs, validateSecretKeySelector(&auth.SharedKey.AccountKeySecretRef, keyPath.Child("accountKeySecretRef"))...)
	default:
		allErrs = append(allErrs, validateSecretKeySelector(auth.SASURLSecretRef, authPath.Child("sasUrlSecretRef"))...)
	}

	if a.UploadPartSize != nil && *a.UploadPartSize <= 0 {
		allErrs = append(allErrs, field.Invalid(fldPath.Child("uploadPartSize"), *a.UploadPartSize, "must be positive"))
	}
	if a.UploadConcurrency != nil && *a.UploadConcurrency <= 0 {
		allErrs = append(allErrs, field.Invalid(fldPath.Child("uploadConcurrency"), *a.UploadConcurrency, "must be positive"))
	}
	if a.DownloadPartSize != nil && *a.DownloadPartSize <= 0 {
		allErrs = append(allErrs, field.Invalid(fldPath.Child("downloadPartSize"), *a.DownloadPartSize, "must be positive"))
	}
	if a.DownloadConcurrency != nil && *a.DownloadConcurrency <= 0 {
		allErrs = append(allErrs, field.Invalid(fldPath.Child("downloadConcurrency"), *a.DownloadConcurrency, "must be positive"))
	}

	switch a.AccessTier {
	case "", AzureBlobStorageAccessTierHot, AzureBlobStorageAccessTierCool, AzureBlobStorageAccessTierArchive:
	default:
		allErrs = append(allErrs, field.NotSupported(fldPath.Child("accessTier"), a.AccessTier,
			[]string{string(AzureBlobStorageAccessTierHot), string(AzureBlobStorageAccessTierCool), string(AzureBlobStorageAccessTierArchive)}))
	}

	return allErrs
}

func (s *S3FileSystem) validate(fldPath *field.Path) field.ErrorList {
	allErrs := field.ErrorList{}
	if s.Bucket == "" {
		allErrs = append(allErrs, field.Required(fldPath.Child("bucket"), ""))
	}
	if s.CredentialsSecretRef != nil && s.CredentialsSecretRef.Name == "" {
		allErrs = append(allErrs, field.Required(fldPath.Child("credentialsSecretRef", "name"), ""))
	}
	return allErrs
}

func validateSecretKeySelector(sel *corev1.SecretKeySelector, fldPath *field.Path) field.ErrorList {
	allErrs := field.ErrorList{}
	if sel.Name == "" {
		allErrs = append(allErrs, field.Required(fldPath.Child("name"), ""))
	}
	if sel.Key == "" {
		allErrs = append(allErrs, field.Required(fldPath.Child("key"), ""))
	}
	return allErrs
}

func validateAbsolutePath(p string, fldPath *field.Path) field.ErrorList {
	if !path.IsAbs(p) {
		return field.ErrorList{field.Invalid(fldPath, p, "must be an absolute path")}
	}
	return nil
}
