package supabase

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
)

// AuthUser is the backend's view of an account.
type AuthUser struct {
	Id    string `json:"id"`
	Email string `json:"email"`
}

// AuthSession is the token pair returned by sign-up and sign-in.
type AuthSession struct {
	AccessToken  string   `json:"access_token"`
	RefreshToken string   `json:"refresh_token"`
	ExpiresIn    int      `json:"expires_in"`
	User         AuthUser `json:"user"`
}

type authError struct {
	Message          string `json:"msg"`
	ErrorDescription string `json:"error_description"`
	Error            string `json:"error"`
}

func (e *authError) text() string {
	if e.Message != "" {
		return e.Message
	}
	if e.ErrorDescription != "" {
		return e.ErrorDescription
	}
	return e.Error
}

// SignUp registers a new account and returns its session.
func (c *Client) SignUp(ctx context.Context, email, password string) (*AuthSession, error) {
	payload := map[string]string{"email": email, "password": password}
	status, body, err := c.do(ctx, http.MethodPost, "/auth/v1/signup", c.AnonKey, payload, nil)
	if err != nil {
		return nil, err
	}
	return decodeSession(status, body)
}

// SignInWithPassword exchanges credentials for a session.
func (c *Client) SignInWithPassword(ctx context.Context, email, password string) (*AuthSession, error) {
	payload := map[string]string{"email": email, "password": password}
	status, body, err := c.do(ctx, http.MethodPost, "/auth/v1/token?grant_type=password", c.AnonKey, payload, nil)
	if err != nil {
		return nil, err
	}
	if status == http.StatusBadRequest || status == http.StatusUnauthorized {
		return nil, ErrInvalidCredentials
	}
	return decodeSession(status, body)
}

// SignOut revokes the session behind the access token.
func (c *Client) SignOut(ctx context.Context, accessToken string) error {
	status, body, err := c.do(ctx, http.MethodPost, "/auth/v1/logout", accessToken, nil, nil)
	if err != nil {
		return err
	}
	if status >= 300 {
		return fmt.Errorf("sign out failed, status %d: %s", status, string(body))
	}
	return nil
}

// GetUser resolves the account behind an access token.
func (c *Client) GetUser(ctx context.Context, accessToken string) (*AuthUser, error) {
	status, body, err := c.do(ctx, http.MethodGet, "/auth/v1/user", accessToken, nil, nil)
	if err != nil {
		return nil, err
	}
	if status != http.StatusOK {
		return nil, fmt.Errorf("get user failed, status %d: %s", status, string(body))
	}
	var user AuthUser
	if err := json.Unmarshal(body, &user); err != nil {
		return nil, fmt.Errorf("decode user: %w", err)
	}
	return &user, nil
}

func decodeSession(status int, body []byte) (*AuthSession, error) {
	if status != http.StatusOK {
		var ae authError
		if err := json.Unmarshal(body, &ae); err == nil && ae.text() != "" {
			return nil, fmt.Errorf("auth error, status %d: %s", status, ae.text())
		}
		return nil, fmt.Errorf("auth error, status %d: %s", status, string(body))
	}
	var session AuthSession
	if err := json.Unmarshal(body, &session); err != nil {
		return nil, fmt.Errorf("decode session: %w", err)
	}
	return &session, nil
}
