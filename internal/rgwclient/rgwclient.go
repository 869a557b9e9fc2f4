package rgwclient

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/ceph/go-ceph/rgw/admin"
)

type rgwClient struct {
	co *admin.API
}

// NewRgwClient connects to the RGW admin API at endpoint.
func NewRgwClient(endpoint, accessKey, secretKey string, timeout time.Duration) (RgwClient, error) {
	co, err := admin.New(endpoint, accessKey, secretKey, &http.Client{Timeout: timeout})
	if err != nil {
		return nil, fmt.Errorf("failed to create rgw admin client, %w", err)
	}
	return &rgwClient{co: co}, nil
}

func (r *rgwClient) GetUser(ctx context.Context, user admin.User) (admin.User, error) {
	return r.co.GetUser(ctx, user)
}

func (r *rgwClient) CreateUser(ctx context.Context, user admin.User) (admin.User, error) {
	return r.co.CreateUser(ctx, user)
}

func (r *rgwClient) RemoveUser(ctx context.Context, user admin.User) error {
	return r.co.RemoveUser(ctx, user)
}
