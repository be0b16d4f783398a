package client

import (
	"context"
	"fmt"
	"net/http"

	"github.com/quackapp/shift-matching/backend/internal/domain"
)

type availabilityRequest struct {
	Date  domain.Day   `json:"date"`
	Shift domain.Shift `json:"shift"`
}

type cancelShiftRequest struct {
	WorkerID int64        `json:"workerId"`
	Date     domain.Day   `json:"date"`
	Shift    domain.Shift `json:"shift"`
}

type loginResponse[T any] struct {
	Message string `json:"message"`
	User    T      `json:"user"`
}

func validateDayShift(day domain.Day, shift domain.Shift) error {
	if day.IsZero() {
		return &ValidationError{Message: "Please select a date"}
	}
	if !shift.Valid() {
		return &ValidationError{Message: "Please select a shift"}
	}
	return nil
}

// Me returns the logged-in worker.
func (c *Client) Me(ctx context.Context) (*domain.Worker, error) {
	var w domain.Worker
	if err := c.get(ctx, "/workers/me", nil, &w); err != nil {
		return nil, err
	}
	return &w, nil
}

func (c *Client) WorkerLogin(ctx context.Context, email, password string) (*domain.Worker, error) {
	req := c.http.R().SetBody(map[string]string{"email": email, "password": password})
	resp, err := c.do(ctx, req, http.MethodPost, "/workers/login")
	if err != nil {
		return nil, err
	}

	var body loginResponse[domain.Worker]
	if err := decode(resp.Body(), &body); err != nil {
		return nil, err
	}
	return &body.User, nil
}

// UpsertAvailability declares the worker available on (day, shift). A
// second submission for the same pair updates the existing entry.
func (c *Client) UpsertAvailability(ctx context.Context, workerID int64, day domain.Day, shift domain.Shift) error {
	if err := validateDayShift(day, shift); err != nil {
		return err
	}

	path := fmt.Sprintf("/workers/%d/availability", workerID)
	_, err := c.send(ctx, http.MethodPut, path, availabilityRequest{Date: day, Shift: shift})
	return err
}

func (c *Client) AvailabilityStatus(ctx context.Context, workerID int64) ([]domain.AvailabilityStatus, error) {
	var statuses []domain.AvailabilityStatus
	if err := c.get(ctx, fmt.Sprintf("/workers/%d/availability-status", workerID), nil, &statuses); err != nil {
		return nil, err
	}
	return statuses, nil
}

// WorkersByShiftDate lists the workers available on exactly (day, shift).
// An empty slice is a valid answer, not an error.
func (c *Client) WorkersByShiftDate(ctx context.Context, day domain.Day, shift domain.Shift) ([]domain.WorkerSummary, error) {
	if err := validateDayShift(day, shift); err != nil {
		return nil, err
	}

	workers := []domain.WorkerSummary{}
	query := map[string]string{"date": day.String(), "shift": shift.String()}
	if err := c.get(ctx, "/workers/shift-date", query, &workers); err != nil {
		return nil, err
	}
	if workers == nil {
		workers = []domain.WorkerSummary{}
	}
	return workers, nil
}

func (c *Client) CancelShift(ctx context.Context, entry domain.AvailabilityEntry) error {
	if err := validateDayShift(entry.Date, entry.Shift); err != nil {
		return err
	}

	_, err := c.send(ctx, http.MethodPost, "/workers/cancel-shift", cancelShiftRequest{
		WorkerID: entry.WorkerID,
		Date:     entry.Date,
		Shift:    entry.Shift,
	})
	return err
}

func (c *Client) MyShifts(ctx context.Context) ([]domain.AvailabilityEntry, error) {
	var entries []domain.AvailabilityEntry
	if err := c.get(ctx, "/workers/my-shifts", nil, &entries); err != nil {
		return nil, err
	}
	return entries, nil
}
