package sftpgoclient

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	operrors "github.com/snapp-incubator/sftpgo-operator/internal/errors"
	"github.com/snapp-incubator/sftpgo-operator/internal/metrics"
)

// ErrNotFound is wrapped by the error returned when SFTPGo answers 404.
var ErrNotFound = errors.New("not found")

// IsNotFound reports whether err is an SFTPGo 404.
func IsNotFound(err error) bool {
	return errors.Is(err, ErrNotFound)
}

// Client is the subset of the SFTPGo admin API the operator manages.
type Client interface {
	GetUser(ctx context.Context, username string) (*User, error)
	CreateUser(ctx context.Context, user *User) (*User, error)
	UpdateUser(ctx context.Context, user *User) error
	DeleteUser(ctx context.Context, username string) error

	GetFolder(ctx context.Context, name string) (*Folder, error)
	CreateFolder(ctx context.Context, folder *Folder) (*Folder, error)
	UpdateFolder(ctx context.Context, folder *Folder) error
	DeleteFolder(ctx context.Context, name string) error
}

type invalidator interface {
	Invalidate(header string)
}

type client struct {
	server     string
	baseURL    string
	httpClient *http.Client
	auth       AuthContext
}

var _ Client = &client{}

// NewClient returns a Client that authenticates every request through auth.
func NewClient(server, baseURL string, httpClient *http.Client, auth AuthContext) Client {
	return &client{
		server:     server,
		baseURL:    baseURL,
		httpClient: httpClient,
		auth:       auth,
	}
}

func (c *client) GetUser(ctx context.Context, username string) (*User, error) {
	user := &User{}
	if err := c.do(ctx, "get_user", http.MethodGet, "/api/v2/users/"+url.PathEscape(username), nil, user); err != nil {
		return nil, err
	}
	return user, nil
}

func (c *client) CreateUser(ctx context.Context, user *User) (*User, error) {
	created := &User{}
	if err := c.do(ctx, "create_user", http.MethodPost, "/api/v2/users", user, created); err != nil {
		return nil, err
	}
	return created, nil
}

func (c *client) UpdateUser(ctx context.Context, user *User) error {
	return c.do(ctx, "update_user", http.MethodPut, "/api/v2/users/"+url.PathEscape(user.Username), user, nil)
}

func (c *client) DeleteUser(ctx context.Context, username string) error {
	return c.do(ctx, "delete_user", http.MethodDelete, "/api/v2/users/"+url.PathEscape(username), nil, nil)
}

func (c *client) GetFolder(ctx context.Context, name string) (*Folder, error) {
	folder := &Folder{}
	if err := c.do(ctx, "get_folder", http.MethodGet, "/api/v2/folders/"+url.PathEscape(name), nil, folder); err != nil {
		return nil, err
	}
	return folder, nil
}

func (c *client) CreateFolder(ctx context.Context, folder *Folder) (*Folder, error) {
	created := &Folder{}
	if err := c.do(ctx, "create_folder", http.MethodPost, "/api/v2/folders", folder, created); err != nil {
		return nil, err
	}
	return created, nil
}

func (c *client) UpdateFolder(ctx context.Context, folder *Folder) error {
	return c.do(ctx, "update_folder", http.MethodPut, "/api/v2/folders/"+url.PathEscape(folder.Name), folder, nil)
}

func (c *client) DeleteFolder(ctx context.Context, name string) error {
	return c.do(ctx, "delete_folder", http.MethodDelete, "/api/v2/folders/"+url.PathEscape(name), nil, nil)
}

func (c *client) do(ctx context.Context, operation, method, path string, in, out any) error {
	start := time.Now()
	err := c.roundTrip(ctx, operation, method, path, in, out)
	metrics.RecordAPICall(c.server, operation, err, time.Since(start).Seconds())
	return err
}

func (c *client) roundTrip(ctx context.Context, operation, method, path string, in, out any) error {
	header, err := c.auth.AuthHeader(ctx)
	if err != nil {
		return err
	}

	endpoint, err := joinURL(c.baseURL, path)
	if err != nil {
		return operrors.NewExternalAPIError(operation, 0, err)
	}

	var body io.Reader
	if in != nil {
		payload, err := json.Marshal(in)
		if err != nil {
			return operrors.NewDecodingError(operation+" request", err)
		}
		body = bytes.NewReader(payload)
	}

	req, err := http.NewRequestWithContext(ctx, method, endpoint, body)
	if err != nil {
		return operrors.NewExternalAPIError(operation, 0, err)
	}
	req.Header.Set("Authorization", header)
	req.Header.Set("Accept", "application/json")
	if in != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return operrors.NewExternalAPIError(operation, 0, err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return operrors.NewExternalAPIError(operation, resp.StatusCode, err)
	}

	switch {
	case resp.StatusCode == http.StatusNotFound:
		return operrors.NewExternalAPIError(operation, resp.StatusCode, ErrNotFound)
	case resp.StatusCode == http.StatusUnauthorized:
		// Force a fresh token on the next attempt.
		if inv, ok := c.auth.(invalidator); ok {
			inv.Invalidate(header)
		}
		return operrors.NewExternalAPIError(operation, resp.StatusCode, parseAPIError(respBody, resp.Status))
	case resp.StatusCode < 200 || resp.StatusCode > 299:
		return operrors.NewExternalAPIError(operation, resp.StatusCode, parseAPIError(respBody, resp.Status))
	}

	if out == nil || len(respBody) == 0 {
		return nil
	}
	if err := json.Unmarshal(respBody, out); err != nil {
		return operrors.NewDecodingError(operation+" response", err)
	}
	return nil
}

func joinURL(base, path string) (string, error) {
	u, err := url.Parse(base)
	if err != nil {
		return "", err
	}
	if u.Scheme == "" || u.Host == "" {
		return "", errors.New("endpoint must be an absolute URL")
	}
	return strings.TrimRight(base, "/") + path, nil
}
