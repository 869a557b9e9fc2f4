package sftpgoclient

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"

	operrors "github.com/snapp-incubator/sftpgo-operator/internal/errors"
)

const tokenPath = "/api/v2/token"

// AdminTokenIssuer obtains admin access tokens from SFTPGo using basic authentication.
type AdminTokenIssuer struct {
	baseURL    string
	httpClient *http.Client
}

var _ TokenIssuer = &AdminTokenIssuer{}

func NewAdminTokenIssuer(baseURL string, httpClient *http.Client) *AdminTokenIssuer {
	return &AdminTokenIssuer{
		baseURL:    baseURL,
		httpClient: httpClient,
	}
}

func (i *AdminTokenIssuer) IssueToken(ctx context.Context, username, password string) (*AccessToken, error) {
	endpoint, err := joinURL(i.baseURL, tokenPath)
	if err != nil {
		return nil, operrors.NewAuthIssuanceError(i.baseURL, 0, err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, operrors.NewAuthIssuanceError(endpoint, 0, err)
	}
	req.Header.Set("Authorization", basicAuthHeader(username, password))
	req.Header.Set("Accept", "application/json")

	resp, err := i.httpClient.Do(req)
	if err != nil {
		return nil, operrors.NewAuthIssuanceError(endpoint, 0, err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, operrors.NewAuthIssuanceError(endpoint, resp.StatusCode, err)
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, operrors.NewAuthIssuanceError(endpoint, resp.StatusCode, parseAPIError(body, resp.Status))
	}

	token := &AccessToken{}
	if err := json.Unmarshal(body, token); err != nil {
		return nil, operrors.NewDecodingError("token response", err)
	}
	if token.AccessToken == "" {
		return nil, operrors.NewDecodingError("token response", errors.New("access_token is empty"))
	}
	if token.ExpiresAt.IsZero() {
		return nil, operrors.NewDecodingError("token response", errors.New("expires_at is missing"))
	}

	return token, nil
}

func parseAPIError(body []byte, status string) error {
	apiErr := &APIError{}
	if err := json.Unmarshal(body, apiErr); err != nil || (apiErr.Err == "" && apiErr.Message == "") {
		return fmt.Errorf("unexpected response %s", status)
	}
	return apiErr
}
