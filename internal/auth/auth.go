// Package auth applies helpdesk credentials to outgoing requests.
package auth

import (
	"context"
	"errors"
	"net/http"
)

// Static errors for err113 compliance.
var (
	ErrEmailRequired = errors.New("email is required for basic authentication")
	ErrTokenRequired = errors.New("token is required")
)

// Authentication schemes reported by Authenticator.Scheme.
const (
	SchemeAPIToken = "api_token"
	SchemeOAuth    = "oauth"
	SchemeBasic    = "basic"
)

// Authenticator decorates a request with credentials.
type Authenticator interface {
	Apply(ctx context.Context, req *http.Request) error
	Scheme() string
}

// APITokenAuthenticator authenticates as "{email}/token" with an API token as password.
type APITokenAuthenticator struct {
	email string
	token string
}

// NewAPITokenAuthenticator creates an API token authenticator.
func NewAPITokenAuthenticator(email, token string) (*APITokenAuthenticator, error) {
	if email == "" {
		return nil, ErrEmailRequired
	}

	if token == "" {
		return nil, ErrTokenRequired
	}

	return &APITokenAuthenticator{email: email, token: token}, nil
}

// Apply sets basic auth with the "/token" suffixed email.
func (a *APITokenAuthenticator) Apply(_ context.Context, req *http.Request) error {
	req.SetBasicAuth(a.email+"/token", a.token)

	return nil
}

// Scheme returns SchemeAPIToken.
func (a *APITokenAuthenticator) Scheme() string { return SchemeAPIToken }

// BearerAuthenticator sends a static OAuth access token.
type BearerAuthenticator struct {
	token string
}

// NewBearerAuthenticator creates an OAuth bearer authenticator.
func NewBearerAuthenticator(token string) (*BearerAuthenticator, error) {
	if token == "" {
		return nil, ErrTokenRequired
	}

	return &BearerAuthenticator{token: token}, nil
}

// Apply sets the Authorization bearer header.
func (a *BearerAuthenticator) Apply(_ context.Context, req *http.Request) error {
	req.Header.Set("Authorization", "Bearer "+a.token)

	return nil
}

// Scheme returns SchemeOAuth.
func (a *BearerAuthenticator) Scheme() string { return SchemeOAuth }

// BasicAuthenticator authenticates with an email and password.
type BasicAuthenticator struct {
	email    string
	password string
}

// NewBasicAuthenticator creates a password authenticator.
func NewBasicAuthenticator(email, password string) (*BasicAuthenticator, error) {
	if email == "" {
		return nil, ErrEmailRequired
	}

	return &BasicAuthenticator{email: email, password: password}, nil
}

// Apply sets basic auth with the email and password.
func (a *BasicAuthenticator) Apply(_ context.Context, req *http.Request) error {
	req.SetBasicAuth(a.email, a.password)

	return nil
}

// Scheme returns SchemeBasic.
func (a *BasicAuthenticator) Scheme() string { return SchemeBasic }

// Credentials is the raw credential material of a client configuration.
type Credentials struct {
	Email      string
	APIToken   string
	OAuthToken string
	Password   string
}

// FromCredentials picks an authenticator: OAuth token first, then email with API token,
// then email with password. It returns nil, nil when no credentials are set.
func FromCredentials(creds Credentials) (Authenticator, error) {
	var (
		authenticator Authenticator
		err           error
	)

	switch {
	case creds.OAuthToken != "":
		authenticator, err = NewBearerAuthenticator(creds.OAuthToken)
	case creds.APIToken != "":
		authenticator, err = NewAPITokenAuthenticator(creds.Email, creds.APIToken)
	case creds.Password != "":
		authenticator, err = NewBasicAuthenticator(creds.Email, creds.Password)
	default:
		return nil, nil //nolint:nilnil // anonymous access
	}

	if err != nil {
		return nil, err
	}

	return authenticator, nil
}
