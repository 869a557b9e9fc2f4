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
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
	corev1 "k8s.io/api/core/v1"
	metav1 "k8s.io/apimachinery/pkg/apis/meta/v1"
	"k8s.io/apimachinery/pkg/util/validation/field"

	"github.com/snapp-incubator/sftpgo-operator/pkg/consts"
)

var _ = Describe("SftpgoFolder webhook", func() {
	const namespace = "sftpgo-webhook-test"

	BeforeEach(func() {
		useObjects()
	})

	Context("When creating SftpgoFolder", func() {
		It("Should accept a local folder with a mapped path", func() {
			Expect(getSftpgoFolder("shared", namespace).ValidateCreate()).To(Succeed())
		})

		It("Should deny a local folder without a mapped path", func() {
			folder := getSftpgoFolder("shared", namespace)
			folder.Spec.MappedPath = ""

			expectInvalid(folder.ValidateCreate(), "required for local file systems")
		})

		It("Should accept an S3 folder without a mapped path", func() {
			folder := getSftpgoFolder("shared", namespace)
			folder.Spec.MappedPath = ""
			folder.Spec.FileSystem = FileSystem{S3: &S3FileSystem{Bucket: "data"}}

			Expect(folder.ValidateCreate()).To(Succeed())
		})

		It("Should deny a folder name already managed on the same server", func() {
			useObjects(getSftpgoFolder("shared", "another-namespace"))

			expectInvalid(getSftpgoFolder("shared", namespace).ValidateCreate(), consts.FolderNameTakenErrMessage)
		})
	})

	Context("When updating SftpgoFolder", func() {
		It("Should deny renaming the folder", func() {
			old := getSftpgoFolder("shared", namespace)
			folder := old.DeepCopy()
			folder.Spec.Name = "renamed"

			expectInvalid(folder.ValidateUpdate(old), consts.FolderNameImmutableErrMessage)
		})

		It("Should accept a description change", func() {
			old := getSftpgoFolder("shared", namespace)
			folder := old.DeepCopy()
			folder.Spec.Description = "team share"

			Expect(folder.ValidateUpdate(old)).To(Succeed())
		})
	})
})

var _ = Describe("FileSystem validation", func() {
	fldPath := field.NewPath("spec", "fileSystem")

	secretRef := func(name, key string) corev1.SecretKeySelector {
		return corev1.SecretKeySelector{LocalObjectReference: corev1.LocalObjectReference{Name: name}, Key: key}
	}

	DescribeTable("reports problems",
		func(fs FileSystem, expected []string) {
			errs := fs.Validate(fldPath)
			fields := make([]string, 0, len(errs))
			for _, e := range errs {
				fields = append(fields, e.Field)
			}
			Expect(fields).To(Equal(expected))
		},
		Entry("empty", FileSystem{}, []string{"spec.fileSystem"}),
		Entry("local", FileSystem{Local: &LocalFileSystem{ReadBufferSize: pointerTo(2)}}, []string{}),
		Entry("negative buffer", FileSystem{Local: &LocalFileSystem{WriteBufferSize: pointerTo(-1)}},
			[]string{"spec.fileSystem.local.writeBufferSize"}),
		Entry("s3 without bucket", FileSystem{S3: &S3FileSystem{}}, []string{"spec.fileSystem.s3.bucket"}),
		Entry("azure without authorization", FileSystem{AzureBlobStorage: &AzureBlobStorageFileSystem{}},
			[]string{"spec.fileSystem.azureBlobStorage.authorization"}),
		Entry("azure shared key", FileSystem{AzureBlobStorage: &AzureBlobStorageFileSystem{
			Authorization: AzureBlobStorageAuthorization{SharedKey: &AzureBlobStorageSharedKey{
				AccountName:         "account",
				Container:           "container",
				AccountKeySecretRef: secretRef("azure", "key"),
			}},
			AccessTier: AzureBlobStorageAccessTierCool,
		}}, []string{}),
		Entry("azure sas url without key", FileSystem{AzureBlobStorage: &AzureBlobStorageFileSystem{
			Authorization: AzureBlobStorageAuthorization{SASURLSecretRef: &corev1.SecretKeySelector{
				LocalObjectReference: corev1.LocalObjectReference{Name: "azure"},
			}},
		}}, []string{"spec.fileSystem.azureBlobStorage.authorization.sasUrlSecretRef.key"}),
		Entry("azure bad tier and part size", FileSystem{AzureBlobStorage: &AzureBlobStorageFileSystem{
			Authorization:  AzureBlobStorageAuthorization{SASURLSecretRef: pointerTo(secretRef("azure", "url"))},
			UploadPartSize: pointerTo(int64(0)),
			AccessTier:     "Frozen",
		}}, []string{
			"spec.fileSystem.azureBlobStorage.uploadPartSize",
			"spec.fileSystem.azureBlobStorage.accessTier",
		}),
	)
})

func pointerTo[T any](v T) *T {
	return &v
}

func getSftpgoFolder(name, namespace string) *SftpgoFolder {
	return &SftpgoFolder{
		ObjectMeta: metav1.ObjectMeta{
			Name:      name,
			Namespace: namespace,
		},
		Spec: SftpgoFolderSpec{
			MappedPath: "/srv/sftpgo/folders/" + name,
			FileSystem: FileSystem{
				Local: &LocalFileSystem{},
			},
		},
	}
}
