package sftpgouser

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/ceph/go-ceph/rgw/admin"
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
	corev1 "k8s.io/api/core/v1"
	apierrors "k8s.io/apimachinery/pkg/api/errors"
	metav1 "k8s.io/apimachinery/pkg/apis/meta/v1"
	"k8s.io/apimachinery/pkg/types"
	"k8s.io/utils/pointer"
	ctrl "sigs.k8s.io/controller-runtime"
	"sigs.k8s.io/controller-runtime/pkg/client"

	sftpgov1alpha1 "github.com/snapp-incubator/sftpgo-operator/api/v1alpha1"
	operrors "github.com/snapp-incubator/sftpgo-operator/internal/errors"
	"github.com/snapp-incubator/sftpgo-operator/internal/reconciler"
	"github.com/snapp-incubator/sftpgo-operator/internal/sftpgoclient"
	"github.com/snapp-incubator/sftpgo-operator/pkg/consts"
)

const (
	namespace = "team-a"
	name      = "alice"
	rgwUserID = "okd4_test__team_a$sftpgouser-alice"
)

func passwordSecret() *corev1.Secret {
	return &corev1.Secret{
		ObjectMeta: metav1.ObjectMeta{Namespace: namespace, Name: "alice-password"},
		Data:       map[string][]byte{"password": []byte("s3cr3t")},
	}
}

func localUser() *sftpgov1alpha1.SftpgoUser {
	return &sftpgov1alpha1.SftpgoUser{
		ObjectMeta: metav1.ObjectMeta{Namespace: namespace, Name: name, UID: types.UID("uid-alice"), Generation: 3},
		Spec: sftpgov1alpha1.SftpgoUserSpec{
			PasswordSecretRef: &corev1.SecretKeySelector{
				LocalObjectReference: corev1.LocalObjectReference{Name: "alice-password"},
				Key:                  "password",
			},
			FileSystem: sftpgov1alpha1.FileSystem{Local: &sftpgov1alpha1.LocalFileSystem{}},
		},
	}
}

func s3User(createBucket bool) *sftpgov1alpha1.SftpgoUser {
	user := localUser()
	user.Spec.FileSystem = sftpgov1alpha1.FileSystem{S3: &sftpgov1alpha1.S3FileSystem{
		Bucket:       "alice-data",
		Region:       "default",
		CreateBucket: createBucket,
	}}
	return user
}

func deletedUser(user *sftpgov1alpha1.SftpgoUser) *sftpgov1alpha1.SftpgoUser {
	now := metav1.NewTime(time.Now())
	user.DeletionTimestamp = &now
	user.Finalizers = []string{consts.CleanupFinalizer}
	return user
}

var _ = Describe("SftpgoUser reconciler", func() {
	var ctx context.Context

	BeforeEach(func() {
		ctx = context.Background()
	})

	Context("provisioning", func() {
		It("creates the user in SFTPGo and marks the object ready", func() {
			env := newEnvironment(localUser(), passwordSecret())

			Expect(env.reconcile(ctx, namespace, name)).To(Succeed())

			created, ok := env.sftpgo.Users[name]
			Expect(ok).To(BeTrue())
			Expect(created.Password).To(Equal("s3cr3t"))
			Expect(created.Status).To(Equal(sftpgoclient.UserStatusEnabled))
			Expect(created.HomeDir).To(Equal("/srv/sftpgo/data/alice"))
			Expect(created.Permissions).To(Equal(map[string][]string{"/": {"*"}}))
			Expect(created.FileSystem.Provider).To(Equal(sftpgoclient.FileSystemProviderLocal))

			stored := env.fetch(ctx, namespace, name)
			Expect(stored.Finalizers).To(ContainElement(consts.CleanupFinalizer))
			Expect(stored.Status).To(Equal(sftpgov1alpha1.SftpgoStatus{
				Ready:              true,
				Reason:             consts.EventReasonSynced,
				ObservedGeneration: 3,
			}))

			Expect(env.recorder.Events).To(Receive(Equal("Normal Synced created user alice on SFTPGo server default")))
		})

		It("updates an existing user and keeps its id", func() {
			env := newEnvironment(localUser(), passwordSecret())
			env.sftpgo.Users[name] = &sftpgoclient.User{ID: 7, Username: name, HomeDir: "/old"}

			Expect(env.reconcile(ctx, namespace, name)).To(Succeed())

			Expect(env.sftpgo.CallCount("CreateUser")).To(Equal(0))
			Expect(env.sftpgo.CallCount("UpdateUser")).To(Equal(1))
			Expect(env.sftpgo.Users[name].ID).To(Equal(int64(7)))
			Expect(env.sftpgo.Users[name].HomeDir).To(Equal("/srv/sftpgo/data/alice"))
			Expect(env.recorder.Events).NotTo(Receive())
		})

		It("is idempotent", func() {
			env := newEnvironment(localUser(), passwordSecret())

			Expect(env.reconcile(ctx, namespace, name)).To(Succeed())
			Expect(env.reconcile(ctx, namespace, name)).To(Succeed())

			Expect(env.sftpgo.CallCount("CreateUser")).To(Equal(1))
			Expect(env.sftpgo.CallCount("UpdateUser")).To(Equal(1))
			Expect(env.sftpgo.Users).To(HaveLen(1))
		})

		It("maps the rest of the spec onto the SFTPGo user", func() {
			user := localUser()
			user.Spec.Username = "alice-sftp"
			user.Spec.Enabled = pointer.Bool(false)
			user.Spec.PasswordSecretRef = nil
			user.Spec.PublicKeys = []string{"ssh-ed25519 AAAA alice"}
			user.Spec.HomeDir = "/data/alice"
			user.Spec.Permissions = map[string][]string{"/": {"list", "download"}}
			user.Spec.QuotaSize = 1024
			user.Spec.VirtualFolders = []sftpgov1alpha1.VirtualFolder{{Name: "shared", VirtualPath: "/shared"}}
			env := newEnvironment(user)

			Expect(env.reconcile(ctx, namespace, name)).To(Succeed())

			created := env.sftpgo.Users["alice-sftp"]
			Expect(created).NotTo(BeNil())
			Expect(created.Status).To(Equal(sftpgoclient.UserStatusDisabled))
			Expect(created.Password).To(BeEmpty())
			Expect(created.PublicKeys).To(ConsistOf("ssh-ed25519 AAAA alice"))
			Expect(created.HomeDir).To(Equal("/data/alice"))
			Expect(created.Permissions).To(HaveKeyWithValue("/", []string{"list", "download"}))
			Expect(created.QuotaSize).To(Equal(int64(1024)))
			Expect(created.VirtualFolders).To(Equal([]sftpgoclient.VirtualFolder{
				{Name: "shared", VirtualPath: "/shared", QuotaSize: -1, QuotaFiles: -1},
			}))
		})

		It("provisions RGW credentials and the bucket for S3 file systems", func() {
			env := newEnvironment(s3User(true), passwordSecret())

			Expect(env.reconcile(ctx, namespace, name)).To(Succeed())

			Expect(env.rgw.Users).To(HaveKey(rgwUserID))
			s3 := env.sftpgo.Users[name].FileSystem.S3Config
			Expect(s3).NotTo(BeNil())
			Expect(s3.Bucket).To(Equal("alice-data"))
			Expect(s3.Endpoint).To(Equal(testRgwEndpoint))
			Expect(s3.AccessKey).To(Equal("AK-" + rgwUserID))
			Expect(s3.AccessSecret).To(Equal(sftpgoclient.PlainSecret("SK-" + rgwUserID)))

			Expect(env.buckets.buckets).To(ConsistOf("alice-data"))
			Expect(env.buckets.options).To(HaveLen(1))
			Expect(env.buckets.options[0].Endpoint).To(Equal(testRgwEndpoint))
			Expect(env.buckets.options[0].AccessKey).To(Equal("AK-" + rgwUserID))
		})

		It("reuses the RGW user on later reconciliations", func() {
			env := newEnvironment(s3User(false), passwordSecret())

			Expect(env.reconcile(ctx, namespace, name)).To(Succeed())
			Expect(env.reconcile(ctx, namespace, name)).To(Succeed())

			Expect(env.rgw.Users).To(HaveLen(1))
			Expect(env.buckets.buckets).To(BeEmpty())
		})

		It("requires S3 credentials when RGW provisioning is disabled", func() {
			env := newEnvironment(s3User(false), passwordSecret()).withoutRgw()

			err := env.reconcile(ctx, namespace, name)

			Expect(operrors.IsUserInputError(err)).To(BeTrue())
			Expect(err.Error()).To(ContainSubstring("spec.fileSystem.s3.credentialsSecretRef"))
			Expect(env.sftpgo.CallCount("CreateUser")).To(Equal(0))
		})
	})

	Context("failures", func() {
		It("rejects an invalid spec before talking to SFTPGo", func() {
			user := localUser()
			user.Spec.PasswordSecretRef = nil
			env := newEnvironment(user)

			err := env.reconcile(ctx, namespace, name)

			Expect(operrors.IsUserInputError(err)).To(BeTrue())
			Expect(env.sftpgo.Calls).To(BeEmpty())

			stored := env.fetch(ctx, namespace, name)
			Expect(stored.Finalizers).To(BeEmpty())
			Expect(stored.Status.Ready).To(BeFalse())
			Expect(stored.Status.Reason).To(Equal(operrors.ReasonUserInput))
		})

		It("rejects an unknown server", func() {
			user := localUser()
			user.Spec.Server = "eu-west"
			env := newEnvironment(user, passwordSecret())

			err := env.reconcile(ctx, namespace, name)

			Expect(operrors.IsUserInputError(err)).To(BeTrue())
			Expect(err.Error()).To(ContainSubstring("eu-west"))
		})

		It("reports a missing password secret as a cluster API error", func() {
			env := newEnvironment(localUser())

			err := env.reconcile(ctx, namespace, name)

			Expect(operrors.IsClusterAPIError(err)).To(BeTrue())
			Expect(apierrors.IsNotFound(errors.Unwrap(err))).To(BeTrue())
			Expect(env.sftpgo.CallCount("CreateUser")).To(Equal(0))
		})

		It("reports a password secret without the key as user input", func() {
			secret := passwordSecret()
			secret.Data = map[string][]byte{"other": []byte("x")}
			env := newEnvironment(localUser(), secret)

			err := env.reconcile(ctx, namespace, name)

			Expect(operrors.IsUserInputError(err)).To(BeTrue())
			Expect(err.Error()).To(ContainSubstring(`has no key "password"`))
		})

		It("surfaces SFTPGo failures and records them in the status", func() {
			env := newEnvironment(localUser(), passwordSecret())
			env.sftpgo.Errors["CreateUser"] = operrors.NewExternalAPIError("create_user", http.StatusInternalServerError, errors.New("boom"))

			err := env.reconcile(ctx, namespace, name)

			Expect(operrors.IsExternalAPIError(err)).To(BeTrue())
			stored := env.fetch(ctx, namespace, name)
			Expect(stored.Status.Ready).To(BeFalse())
			Expect(stored.Status.Reason).To(Equal(operrors.ReasonExternalAPI))
		})

		It("is retried after the fixed delay when run by the driver", func() {
			env := newEnvironment(localUser(), passwordSecret())
			env.sftpgo.Errors["GetUser"] = operrors.NewAuthIssuanceError("http://sftpgo/api/v2/token", http.StatusUnauthorized, errors.New("invalid credentials"))
			driver := reconciler.NewDriver[*sftpgov1alpha1.SftpgoUser](
				Kind,
				func() *sftpgov1alpha1.SftpgoUser { return &sftpgov1alpha1.SftpgoUser{} },
				Reconciler{},
				env.shared,
				nil,
			)

			result, err := driver.Reconcile(ctx, ctrl.Request{NamespacedName: types.NamespacedName{Namespace: namespace, Name: name}})

			Expect(err).NotTo(HaveOccurred())
			Expect(result.RequeueAfter).To(Equal(reconciler.DefaultRetryDelay))
			Expect(env.recorder.Events).To(Receive(HavePrefix("Warning ReconcileFailed AuthIssuance:")))
		})
	})

	Context("cleanup", func() {
		It("removes the SFTPGo user, the RGW user and the finalizer", func() {
			env := newEnvironment(deletedUser(s3User(false)))
			env.sftpgo.Users[name] = &sftpgoclient.User{ID: 1, Username: name}
			env.rgw.Users[rgwUserID] = admin.User{ID: rgwUserID}

			Expect(env.reconcile(ctx, namespace, name)).To(Succeed())

			Expect(env.sftpgo.Users).To(BeEmpty())
			Expect(env.rgw.Users).To(BeEmpty())
			expectFinalizerGone(ctx, env.client)
			Expect(env.recorder.Events).To(Receive(Equal("Normal Deleted removed user alice from SFTPGo server default")))
		})

		It("tolerates users that are already gone", func() {
			env := newEnvironment(deletedUser(localUser()))

			Expect(env.reconcile(ctx, namespace, name)).To(Succeed())

			Expect(env.sftpgo.CallCount("DeleteUser")).To(Equal(1))
			expectFinalizerGone(ctx, env.client)
		})

		It("does not need a valid spec", func() {
			user := deletedUser(localUser())
			user.Spec.PasswordSecretRef = nil
			env := newEnvironment(user)

			Expect(env.reconcile(ctx, namespace, name)).To(Succeed())
			expectFinalizerGone(ctx, env.client)
		})

		It("lets go of users on servers that are no longer configured", func() {
			user := deletedUser(localUser())
			user.Spec.Server = "retired"
			env := newEnvironment(user)

			Expect(env.reconcile(ctx, namespace, name)).To(Succeed())

			Expect(env.sftpgo.Calls).To(BeEmpty())
			expectFinalizerGone(ctx, env.client)
		})

		It("keeps the finalizer while SFTPGo fails", func() {
			env := newEnvironment(deletedUser(localUser()))
			env.sftpgo.Errors["DeleteUser"] = operrors.NewExternalAPIError("delete_user", http.StatusBadGateway, errors.New("bad gateway"))

			err := env.reconcile(ctx, namespace, name)

			Expect(operrors.IsExternalAPIError(err)).To(BeTrue())
			Expect(env.fetch(ctx, namespace, name).Finalizers).To(ContainElement(consts.CleanupFinalizer))
		})

		It("does nothing once the finalizer is gone", func() {
			user := deletedUser(localUser())
			user.Finalizers = []string{"example.com/other"}
			env := newEnvironment(user)

			Expect(env.reconcile(ctx, namespace, name)).To(Succeed())

			Expect(env.sftpgo.Calls).To(BeEmpty())
		})
	})
})

func expectFinalizerGone(ctx context.Context, c client.Client) {
	stored := &sftpgov1alpha1.SftpgoUser{}
	err := c.Get(ctx, client.ObjectKey{Namespace: namespace, Name: name}, stored)
	if apierrors.IsNotFound(err) {
		return
	}
	ExpectWithOffset(1, err).NotTo(HaveOccurred())
	ExpectWithOffset(1, stored.Finalizers).NotTo(ContainElement(consts.CleanupFinalizer))
}
