package rgwclient

import (
	"context"

	"github.com/ceph/go-ceph/rgw/admin"
)

// RgwClient is the part of the RGW admin API used to provision per-resource S3 credentials.
type RgwClient interface {
	GetUser(ctx context.Context, user admin.User) (admin.User, error)
	CreateUser(ctx context.Context, user admin.User) (admin.User, error)
	RemoveUser(ctx context.Context, user admin.User) error
}
