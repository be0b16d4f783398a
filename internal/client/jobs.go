package client

import (
	"context"
	"fmt"
	"net/http"
	"strings"

	"github.com/quackapp/shift-matching/backend/internal/domain"
)

type NewJob struct {
	Title           string       `json:"title"`
	Description     string       `json:"description"`
	Location        string       `json:"location"`
	Date            domain.Day   `json:"date"`
	Shift           domain.Shift `json:"shift"`
	WorkersRequired int32        `json:"workersRequired"`
}

func (j NewJob) validate() error {
	if strings.TrimSpace(j.Title) == "" || strings.TrimSpace(j.Description) == "" ||
		strings.TrimSpace(j.Location) == "" || !j.Shift.Valid() || j.Date.IsZero() {
		return &ValidationError{Message: "Please fill in all fields."}
	}
	if j.WorkersRequired < 1 {
		return &ValidationError{Message: "At least one worker is required."}
	}
	return nil
}

// MyJobs returns the jobs the logged-in worker has accepted, in server order.
func (c *Client) MyJobs(ctx context.Context) ([]domain.Job, error) {
	var jobs []domain.Job
	if err := c.get(ctx, "/jobs/mine", nil, &jobs); err != nil {
		return nil, err
	}
	return jobs, nil
}

// OpenJobs returns the jobs the logged-in worker may still accept.
func (c *Client) OpenJobs(ctx context.Context) ([]domain.Job, error) {
	var jobs []domain.Job
	if err := c.get(ctx, "/jobs/worker", nil, &jobs); err != nil {
		return nil, err
	}
	return jobs, nil
}

func (c *Client) CompanyJobs(ctx context.Context) ([]domain.Job, error) {
	var jobs []domain.Job
	if err := c.get(ctx, "/jobs/company", nil, &jobs); err != nil {
		return nil, err
	}
	return jobs, nil
}

func (c *Client) GetJob(ctx context.Context, id int64) (*domain.Job, error) {
	var job domain.Job
	if err := c.get(ctx, fmt.Sprintf("/jobs/%d", id), nil, &job); err != nil {
		return nil, err
	}
	return &job, nil
}

func (c *Client) CreateJob(ctx context.Context, job NewJob) (*domain.Job, error) {
	if err := job.validate(); err != nil {
		return nil, err
	}

	resp, err := c.do(ctx, c.http.R().SetBody(job), http.MethodPost, "/jobs/create")
	if err != nil {
		return nil, err
	}

	var created domain.Job
	if err := decode(resp.Body(), &created); err != nil {
		return nil, err
	}
	return &created, nil
}

// AssignedWorkers lists the workers who accepted a job of the logged-in company.
func (c *Client) AssignedWorkers(ctx context.Context, id int64) ([]domain.WorkerSummary, error) {
	workers := []domain.WorkerSummary{}
	if err := c.get(ctx, fmt.Sprintf("/jobs/assigned-workers/%d", id), nil, &workers); err != nil {
		return nil, err
	}
	return workers, nil
}

func (c *Client) DeleteJob(ctx context.Context, id int64) error {
	_, err := c.send(ctx, http.MethodDelete, fmt.Sprintf("/jobs/job/%d", id), nil)
	return err
}

func (c *Client) AcceptJob(ctx context.Context, id int64) (string, error) {
	return c.send(ctx, http.MethodPut, fmt.Sprintf("/jobs/accept/%d", id), nil)
}

func (c *Client) DeclineJob(ctx context.Context, id int64) (string, error) {
	return c.send(ctx, http.MethodPost, fmt.Sprintf("/jobs/decline/%d", id), nil)
}

// RemoveAccepted withdraws the worker from a job they accepted earlier.
func (c *Client) RemoveAccepted(ctx context.Context, id int64) (string, error) {
	return c.send(ctx, http.MethodPut, fmt.Sprintf("/jobs/remove-accepted/%d", id), nil)
}
