package catalog

import (
	"context"
	"errors"
	"strings"

	"hunterprice/internal/domain"
)

// Signup registers a new account. The user still has to log in afterwards.
type Signup struct {
	Email    string
	Password string
	Name     string
	Gender   string
}

// Login exchanges credentials for a session
func (c *Client) Login(ctx context.Context, email, password string) (*domain.CurrentUser, error) {
	if strings.TrimSpace(email) == "" || password == "" {
		return nil, errors.New("email y contraseña son obligatorios")
	}
	var resp loginResponse
	err := c.post(ctx, "login", c.endpoint("login"), loginRequest{Email: email, Password: password}, &resp)
	if err != nil {
		return nil, err
	}
	if resp.User.ID == "" || resp.Token == "" {
		return nil, &DecodeError{Op: "login", Err: errors.New("response without user or token")}
	}
	return &domain.CurrentUser{ID: string(resp.User.ID), Name: resp.User.Name, Token: resp.Token}, nil
}

// Register creates an account
func (c *Client) Register(ctx context.Context, s Signup) error {
	if strings.TrimSpace(s.Email) == "" || s.Password == "" || strings.TrimSpace(s.Name) == "" {
		return errors.New("email, contraseña y nombre son obligatorios")
	}
	req := signupRequest{Email: s.Email, Password: s.Password, Name: s.Name, Gender: s.Gender}
	return c.post(ctx, "signup", c.endpoint("signup"), req, nil)
}
