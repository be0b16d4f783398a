package client

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/quackapp/shift-matching/backend/internal/domain"
)

func decode(body []byte, v any) error {
	if err := json.Unmarshal(body, v); err != nil {
		return fmt.Errorf("error decoding response: %w", err)
	}
	return nil
}

func (c *Client) CompanyLogin(ctx context.Context, username, password string) (*domain.Company, error) {
	req := c.http.R().SetBody(map[string]string{"username": username, "password": password})
	resp, err := c.do(ctx, req, http.MethodPost, "/auth/login")
	if err != nil {
		return nil, err
	}

	var body loginResponse[domain.Company]
	if err := decode(resp.Body(), &body); err != nil {
		return nil, err
	}
	return &body.User, nil
}

// CompanyMe returns the logged-in company.
func (c *Client) CompanyMe(ctx context.Context) (*domain.Company, error) {
	var body struct {
		User domain.Company `json:"user"`
	}
	if err := c.get(ctx, "/auth/me", nil, &body); err != nil {
		return nil, err
	}
	return &body.User, nil
}

func (c *Client) Logout(ctx context.Context) error {
	_, err := c.send(ctx, http.MethodPost, "/auth/logout", nil)
	return err
}

func (c *Client) ForgotPassword(ctx context.Context, email string) (string, error) {
	if email == "" {
		return "", &ValidationError{Message: "Please enter your email"}
	}
	return c.send(ctx, http.MethodPost, "/auth/forgot-password", map[string]string{"email": email})
}

func (c *Client) ResetPassword(ctx context.Context, email, otp, newPassword string) (string, error) {
	if email == "" || otp == "" || newPassword == "" {
		return "", &ValidationError{Message: "Please fill in all fields"}
	}
	return c.send(ctx, http.MethodPost, "/auth/reset-password", map[string]string{
		"email":       email,
		"otp":         otp,
		"newPassword": newPassword,
	})
}
