package client

import (
	"context"
	"fmt"
	"net/http"
	"strings"

	"github.com/quackapp/shift-matching/backend/internal/domain"
)

const minPasswordLength = 8

type CompanyRegistration struct {
	Username string         `json:"username"`
	Name     string         `json:"name"`
	Email    string         `json:"email"`
	Password string         `json:"password"`
	Package  domain.Package `json:"package,omitempty"`
}

type WorkerRegistration struct {
	Name        string `json:"name"`
	Email       string `json:"email"`
	Password    string `json:"password"`
	CompanyCode string `json:"companyCode"`
}

func validatePassword(password string) error {
	if len(password) < minPasswordLength {
		return &ValidationError{Message: fmt.Sprintf("Password must be at least %d characters", minPasswordLength)}
	}
	return nil
}

// RegisterCompany creates a company account. The server signs it in.
func (c *Client) RegisterCompany(ctx context.Context, reg CompanyRegistration) (*domain.Company, error) {
	if reg.Username == "" || reg.Name == "" || reg.Email == "" || reg.Password == "" {
		return nil, &ValidationError{Message: "Please fill in all fields"}
	}
	if err := validatePassword(reg.Password); err != nil {
		return nil, err
	}

	resp, err := c.do(ctx, c.http.R().SetBody(reg), http.MethodPost, "/auth/register")
	if err != nil {
		return nil, err
	}

	var body loginResponse[domain.Company]
	if err := decode(resp.Body(), &body); err != nil {
		return nil, err
	}
	return &body.User, nil
}

// RegisterWorker asks to join the company identified by CompanyCode. The
// account cannot sign in until the company approves it.
func (c *Client) RegisterWorker(ctx context.Context, reg WorkerRegistration) (string, error) {
	if reg.Name == "" || reg.Email == "" || reg.Password == "" || reg.CompanyCode == "" {
		return "", &ValidationError{Message: "Please fill in all fields"}
	}
	if err := validatePassword(reg.Password); err != nil {
		return "", err
	}
	return c.send(ctx, http.MethodPost, "/workers/add", reg)
}

func (c *Client) PendingWorkers(ctx context.Context) ([]domain.Worker, error) {
	workers := []domain.Worker{}
	if err := c.get(ctx, "/workers/pending", nil, &workers); err != nil {
		return nil, err
	}
	return workers, nil
}

func (c *Client) ApprovedWorkers(ctx context.Context) ([]domain.Worker, error) {
	workers := []domain.Worker{}
	if err := c.get(ctx, "/workers/approved", nil, &workers); err != nil {
		return nil, err
	}
	return workers, nil
}

func (c *Client) ApproveWorker(ctx context.Context, workerID int64) (string, error) {
	return c.send(ctx, http.MethodPut, fmt.Sprintf("/workers/approve/%d", workerID), nil)
}

func (c *Client) DeactivateWorker(ctx context.Context, workerID int64) (string, error) {
	return c.send(ctx, http.MethodPut, fmt.Sprintf("/workers/deactivate/%d", workerID), nil)
}

// DeclineWorker deletes a pending registration.
func (c *Client) DeclineWorker(ctx context.Context, workerID int64) (string, error) {
	return c.send(ctx, http.MethodDelete, fmt.Sprintf("/workers/decline/%d", workerID), nil)
}

// Messages returns the board of the signed-in account's company, oldest first.
func (c *Client) Messages(ctx context.Context) ([]domain.Message, error) {
	var body struct {
		Messages []domain.Message `json:"messages"`
	}
	if err := c.get(ctx, "/workers/messages", nil, &body); err != nil {
		return nil, err
	}
	if body.Messages == nil {
		body.Messages = []domain.Message{}
	}
	return body.Messages, nil
}

func (c *Client) SendMessage(ctx context.Context, text string) (*domain.Message, error) {
	text = strings.TrimSpace(text)
	if text == "" {
		return nil, &ValidationError{Message: "Please enter a message"}
	}

	resp, err := c.do(ctx, c.http.R().SetBody(map[string]string{"message": text}), http.MethodPost, "/workers/send-message")
	if err != nil {
		return nil, err
	}

	var msg domain.Message
	if err := decode(resp.Body(), &msg); err != nil {
		return nil, err
	}
	return &msg, nil
}
