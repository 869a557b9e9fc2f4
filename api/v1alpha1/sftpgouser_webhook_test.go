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
	goerrors "errors"
	"net/http"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
	corev1 "k8s.io/api/core/v1"
	apierrors "k8s.io/apimachinery/pkg/api/errors"
	metav1 "k8s.io/apimachinery/pkg/apis/meta/v1"
	"k8s.io/utils/pointer"

	"github.com/snapp-incubator/sftpgo-operator/pkg/consts"
)

var _ = Describe("SftpgoUser webhook", func() {
	const namespace = "sftpgo-webhook-test"

	BeforeEach(func() {
		useObjects()
	})

	Context("When creating SftpgoUser", func() {
		It("Should accept a valid user", func() {
			Expect(getSftpgoUser("alice", namespace).ValidateCreate()).To(Succeed())
		})

		It("Should deny a user without credentials", func() {
			user := getSftpgoUser("alice", namespace)
			user.Spec.PasswordSecretRef = nil

			expectInvalid(user.ValidateCreate(), "spec.passwordSecretRef")
		})

		It("Should deny a user with two file systems", func() {
			user := getSftpgoUser("alice", namespace)
			user.Spec.FileSystem.S3 = &S3FileSystem{Bucket: "data"}

			expectInvalid(user.ValidateCreate(), "only one of local, azureBlobStorage or s3 may be set")
		})

		It("Should deny relative directories", func() {
			user := getSftpgoUser("alice", namespace)
			user.Spec.HomeDir = "home/alice"
			user.Spec.Permissions = map[string][]string{"uploads": {"upload"}}

			err := user.ValidateCreate()
			expectInvalid(err, "spec.homeDir")
			expectInvalid(err, "spec.permissions[uploads]")
		})

		It("Should deny virtual folders mounted on the root", func() {
			user := getSftpgoUser("alice", namespace)
			user.Spec.VirtualFolders = []VirtualFolder{{Name: "shared", VirtualPath: "/"}}

			expectInvalid(user.ValidateCreate(), "cannot be the root directory")
		})

		It("Should deny duplicate virtual paths", func() {
			user := getSftpgoUser("alice", namespace)
			user.Spec.VirtualFolders = []VirtualFolder{
				{Name: "a", VirtualPath: "/shared"},
				{Name: "b", VirtualPath: "/shared/"},
			}

			expectInvalid(user.ValidateCreate(), "spec.virtualFolders[1].virtualPath")
		})

		It("Should deny a username already managed on the same server", func() {
			existing := getSftpgoUser("alice", "another-namespace")
			useObjects(existing)

			expectInvalid(getSftpgoUser("alice", namespace).ValidateCreate(), consts.UsernameTakenErrMessage)
		})

		It("Should accept the same username on another server", func() {
			existing := getSftpgoUser("alice", "another-namespace")
			existing.Spec.Server = "backup"
			useObjects(existing)

			Expect(getSftpgoUser("alice", namespace).ValidateCreate()).To(Succeed())
		})
	})

	Context("When updating SftpgoUser", func() {
		It("Should deny changing the server", func() {
			old := getSftpgoUser("alice", namespace)
			user := old.DeepCopy()
			user.Spec.Server = "backup"

			expectInvalid(user.ValidateUpdate(old), consts.ServerImmutableErrMessage)
		})

		It("Should deny changing the username", func() {
			old := getSftpgoUser("alice", namespace)
			user := old.DeepCopy()
			user.Spec.Username = "bob"

			expectInvalid(user.ValidateUpdate(old), consts.UsernameImmutableErrMessage)
		})

		It("Should treat an explicit default server as unchanged", func() {
			old := getSftpgoUser("alice", namespace)
			user := old.DeepCopy()
			user.Spec.Server = consts.DefaultServerName
			user.Spec.Description = "updated"

			Expect(user.ValidateUpdate(old)).To(Succeed())
		})

		It("Should let a deleted user drop its finalizer even with an invalid spec", func() {
			old := getSftpgoUser("alice", namespace)
			old.Spec.PasswordSecretRef = nil
			old.Spec.PublicKeys = nil
			now := metav1.Now()
			old.DeletionTimestamp = &now
			old.Finalizers = []string{consts.CleanupFinalizer}
			user := old.DeepCopy()
			user.Finalizers = nil

			Expect(user.ValidateUpdate(old)).To(Succeed())

			user.Spec.Username = "bob"
			expectInvalid(user.ValidateUpdate(old), consts.UsernameImmutableErrMessage)
		})
	})

	Context("Defaults", func() {
		It("Should fill in defaults from metadata", func() {
			user := &SftpgoUser{ObjectMeta: metav1.ObjectMeta{Name: "carol", Namespace: namespace}}

			Expect(user.GetServer()).To(Equal(consts.DefaultServerName))
			Expect(user.GetUsername()).To(Equal("carol"))
			Expect(user.IsEnabled()).To(BeTrue())
			Expect(user.GetHomeDir()).To(Equal("/srv/sftpgo/data/carol"))
			Expect(user.GetPermissions()).To(Equal(map[string][]string{"/": {"*"}}))
		})

		It("Should honour explicit values", func() {
			user := &SftpgoUser{
				ObjectMeta: metav1.ObjectMeta{Name: "carol", Namespace: namespace},
				Spec: SftpgoUserSpec{
					Enabled: pointer.Bool(false),
					HomeDir: "/data/carol",
				},
			}

			Expect(user.IsEnabled()).To(BeFalse())
			Expect(user.GetHomeDir()).To(Equal("/data/carol"))
		})
	})
})

func getSftpgoUser(name, namespace string) *SftpgoUser {
	return &SftpgoUser{
		ObjectMeta: metav1.ObjectMeta{
			Name:      name,
			Namespace: namespace,
		},
		Spec: SftpgoUserSpec{
			PasswordSecretRef: &corev1.SecretKeySelector{
				LocalObjectReference: corev1.LocalObjectReference{Name: name + "-password"},
				Key:                  "password",
			},
			FileSystem: FileSystem{
				Local: &LocalFileSystem{},
			},
		},
	}
}

func expectInvalid(err error, substring string) {
	var apiStatus apierrors.APIStatus
	ExpectWithOffset(1, goerrors.As(err, &apiStatus)).To(BeTrue())
	ExpectWithOffset(1, apiStatus.Status().Code).To(Equal(int32(http.StatusUnprocessableEntity)))
	ExpectWithOffset(1, apiStatus.Status().Message).To(ContainSubstring(substring))
}
