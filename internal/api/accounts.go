package api

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"mime/multipart"
	"net/http"

	"roveri/internal/models"
)

type Credentials struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type Registration struct {
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
	Email     string `json:"email"`
	Password  string `json:"password"`
	Password2 string `json:"password2"`
	Phone     string `json:"phone"`
	City      string `json:"city"`
}

// LoginResult is the login response. The backend may inline the
// identity; when it does not, callers follow up with Me.
type LoginResult struct {
	User    *models.Identity `json:"user"`
	Access  string           `json:"access"`
	Refresh string           `json:"refresh"`
	Detail  string           `json:"detail"`
}

// Login posts credentials and persists the returned token pair.
func (c *Client) Login(ctx context.Context, creds Credentials) (*LoginResult, error) {
	var out LoginResult
	if err := c.sendJSON(ctx, http.MethodPost, "accounts/login/", creds, &out); err != nil {
		return nil, err
	}
	if out.Access != "" {
		if err := c.tokens.SaveTokens(out.Access, out.Refresh); err != nil {
			c.log.Logf("[api] failed to persist login tokens: %v", err)
		}
	}
	return &out, nil
}

// Register creates the account and persists the returned token pair.
// Registration responses do not inline the identity.
func (c *Client) Register(ctx context.Context, reg Registration) error {
	if reg.Password2 == "" {
		reg.Password2 = reg.Password
	}
	var out struct {
		Access  string `json:"access"`
		Refresh string `json:"refresh"`
	}
	if err := c.sendJSON(ctx, http.MethodPost, "auth/register/", reg, &out); err != nil {
		return err
	}
	if out.Access != "" {
		if err := c.tokens.SaveTokens(out.Access, out.Refresh); err != nil {
			c.log.Logf("[api] failed to persist registration tokens: %v", err)
		}
	}
	return nil
}

// Me fetches the authenticated identity ("who am I").
func (c *Client) Me(ctx context.Context) (*models.Identity, error) {
	var id models.Identity
	if err := c.getJSON(ctx, "accounts/user/", &id); err != nil {
		return nil, err
	}
	return &id, nil
}

// Logout asks the backend to invalidate the server-side credential
// state. Callers clear local state regardless of the outcome.
func (c *Client) Logout(ctx context.Context) error {
	return c.sendJSON(ctx, http.MethodPost, "accounts/logout/", nil, nil)
}

// UpdateProfile patches profile fields, optionally with an avatar file,
// as a multipart form. Returns the updated identity.
func (c *Client) UpdateProfile(ctx context.Context, fields map[string]string, avatarName string, avatar io.Reader) (*models.Identity, error) {
	var buf bytes.Buffer
	w := multipart.NewWriter(&buf)
	for key, value := range fields {
		if err := w.WriteField(key, value); err != nil {
			return nil, err
		}
	}
	if avatar != nil {
		part, err := w.CreateFormFile("avatar", avatarName)
		if err != nil {
			return nil, err
		}
		if _, err := io.Copy(part, avatar); err != nil {
			return nil, err
		}
	}
	if err := w.Close(); err != nil {
		return nil, err
	}

	data, err := c.do(ctx, http.MethodPatch, "accounts/profile/", bytes.NewReader(buf.Bytes()), w.FormDataContentType())
	if err != nil {
		return nil, err
	}
	var id models.Identity
	if err := json.Unmarshal(data, &id); err != nil {
		return nil, err
	}
	return &id, nil
}
