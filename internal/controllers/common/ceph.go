package common

import (
	"context"
	"errors"
	"fmt"
	"regexp"
	"strings"

	"github.com/ceph/go-ceph/rgw/admin"
	"k8s.io/utils/pointer"
	"sigs.k8s.io/controller-runtime/pkg/log"

	operrors "github.com/snapp-incubator/sftpgo-operator/internal/errors"
	"github.com/snapp-incubator/sftpgo-operator/internal/rgwclient"
)

// Only alphanumeric characters and underscore are allowed for tenant name
var k8sNameSpecialChars = regexp.MustCompile(`[.-]`)

func GetCephUserTenant(clusterName, namespace string) string {
	return fmt.Sprintf("%s__%s",
		k8sNameSpecialChars.ReplaceAllString(clusterName, "_"),
		k8sNameSpecialChars.ReplaceAllString(namespace, "_"),
	)
}

func GetCephUserId(ownerKind, ownerName string) string {
	return fmt.Sprintf("%s-%s", strings.ToLower(ownerKind), ownerName)
}

// GetCephUserFullId is the id RGW expects in every call involving a tenant user.
func GetCephUserFullId(clusterName, namespace, ownerKind, ownerName string) string {
	return fmt.Sprintf(
		"%s$%s",
		GetCephUserTenant(clusterName, namespace),
		GetCephUserId(ownerKind, ownerName),
	)
}

// S3Credentials is a key pair for the S3 API.
type S3Credentials struct {
	AccessKey string
	SecretKey string
}

// EnsureRgwCredentials returns the S3 keys of the RGW user provisioned for the owner,
// creating the user first if needed.
func EnsureRgwCredentials(ctx context.Context, rgw rgwclient.RgwClient, clusterName, namespace, ownerKind, ownerName string) (S3Credentials, error) {
	desiredUser := admin.User{
		ID:          GetCephUserFullId(clusterName, namespace, ownerKind, ownerName),
		DisplayName: fmt.Sprintf("%s %s in %s.%s", ownerKind, ownerName, namespace, clusterName),
	}
	logger := log.FromContext(ctx).WithValues("userId", desiredUser.ID)

	user, err := rgw.GetUser(ctx, desiredUser)
	switch {
	case err == nil:
	case errors.Is(err, admin.ErrNoSuchUser):
		user, err = rgw.CreateUser(ctx, desiredUser)
		if err != nil {
			return S3Credentials{}, operrors.NewExternalAPIError("rgw create_user", 0, err)
		}
		logger.Info("created rgw user")
	default:
		return S3Credentials{}, operrors.NewExternalAPIError("rgw get_user", 0, err)
	}

	for _, key := range user.Keys {
		if key.AccessKey != "" && key.SecretKey != "" {
			return S3Credentials{AccessKey: key.AccessKey, SecretKey: key.SecretKey}, nil
		}
	}
	return S3Credentials{}, operrors.NewExternalAPIError("rgw get_user", 0,
		fmt.Errorf("rgw user %s has no s3 keys", desiredUser.ID))
}

// RemoveRgwUser deletes the RGW user of the owner. A missing user is not an error.
func RemoveRgwUser(ctx context.Context, rgw rgwclient.RgwClient, clusterName, namespace, ownerKind, ownerName string) error {
	user := admin.User{ID: GetCephUserFullId(clusterName, namespace, ownerKind, ownerName), PurgeData: pointer.Int(1)}
	err := rgw.RemoveUser(ctx, user)
	switch {
	case err == nil:
		log.FromContext(ctx).Info("removed rgw user", "userId", user.ID)
		return nil
	case errors.Is(err, admin.ErrNoSuchUser):
		return nil
	default:
		return operrors.NewExternalAPIError("rgw remove_user", 0, err)
	}
}
