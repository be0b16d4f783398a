package handler

import (
	"context"
	"database/sql"
	"errors"
	"log/slog"
	"net/http"
	"strconv"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/quackapp/shift-matching/backend/internal/domain"
	"github.com/samber/lo"
	"golang.org/x/crypto/bcrypt"
)

// RegisterWorker signs a worker up with a company by its username. The
// account is pending until the company approves it.
func (h *Handler) RegisterWorker(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Name        string `json:"name" validate:"required,max=100"`
		Email       string `json:"email" validate:"required,email"`
		Password    string `json:"password" validate:"required,min=8"`
		CompanyCode string `json:"companyCode" validate:"required"`
	}

	if err := h.readJSON(r, &req); err != nil {
		h.badRequest(w, r, err)
		return
	}
	if err := h.validate.Struct(req); err != nil {
		h.badRequest(w, r, err)
		return
	}

	company, err := h.repository.GetCompanyByUsername(strings.TrimSpace(req.CompanyCode))
	if err != nil {
		switch {
		case errors.Is(err, sql.ErrNoRows):
			h.errorResponse(w, r, http.StatusBadRequest, "Invalid company code")
		default:
			h.internalServerError(w, r, err)
		}
		return
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		h.internalServerError(w, r, err)
		return
	}

	worker := &domain.Worker{
		CompanyID:    company.ID,
		Name:         strings.TrimSpace(req.Name),
		Email:        strings.ToLower(req.Email),
		PasswordHash: string(hashedPassword),
	}

	if err := h.repository.RegisterWorker(worker); err != nil {
		var pgErr *pgconn.PgError
		switch {
		case errors.As(err, &pgErr) && pgErr.ConstraintName == "workers_email_key":
			h.errorResponse(w, r, http.StatusConflict, "Email already registered")
		default:
			h.internalServerError(w, r, err)
		}
		return
	}

	h.messageResponse(w, r, http.StatusCreated, "Registration successful. You will be notified by email once you are approved")
}

func (h *Handler) GetPendingWorkers(w http.ResponseWriter, r *http.Request) {
	h.companyWorkers(w, r, false)
}

func (h *Handler) GetApprovedWorkers(w http.ResponseWriter, r *http.Request) {
	h.companyWorkers(w, r, true)
}

func (h *Handler) companyWorkers(w http.ResponseWriter, r *http.Request, active bool) {
	company := r.Context().Value(CompanyCtxKey).(*domain.Company)

	workers, err := h.repository.GetWorkersByCompanyID(company.ID)
	if err != nil {
		h.internalServerError(w, r, err)
		return
	}

	h.writeJSON(w, r, http.StatusOK, lo.Filter(workers, func(worker *domain.Worker, _ int) bool {
		return worker.IsActive == active
	}))
}

// companyWorker loads the {id} worker. Workers of other companies are not found.
func (h *Handler) companyWorker(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		company := r.Context().Value(CompanyCtxKey).(*domain.Company)

		id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
		if err != nil {
			h.errorResponse(w, r, http.StatusBadRequest, "Invalid worker ID")
			return
		}

		worker, err := h.repository.GetWorkerByID(id)
		if err != nil {
			switch {
			case errors.Is(err, sql.ErrNoRows):
				h.notFound(w, r, "Worker not found")
			default:
				h.internalServerError(w, r, err)
			}
			return
		}

		if worker.CompanyID != company.ID {
			h.notFound(w, r, "Worker not found")
			return
		}

		ctx := context.WithValue(r.Context(), WorkerCtxKey, worker)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

func (h *Handler) ApproveWorker(w http.ResponseWriter, r *http.Request) {
	company := r.Context().Value(CompanyCtxKey).(*domain.Company)
	worker := r.Context().Value(WorkerCtxKey).(*domain.Worker)

	if worker.IsActive {
		h.successResponse(w, r, "Worker approved")
		return
	}

	worker.IsActive = true
	if err := h.repository.UpdateWorker(worker); err != nil {
		switch {
		case errors.Is(err, sql.ErrNoRows):
			h.errorResponse(w, r, http.StatusConflict, "Please try again")
		default:
			h.internalServerError(w, r, err)
		}
		return
	}

	mail := domain.MailMessage{
		Type: domain.MailTypeWorkerApproved,
		To:   worker.Email,
		Data: domain.WorkerApprovedMailData{
			WorkerName:  worker.Name,
			CompanyName: company.Name,
		},
	}
	if err := h.publishMail(r.Context(), mail); err != nil {
		slog.Error("failed to publish approval mail", "worker", worker.ID, "error", err)
	}

	h.successResponse(w, r, "Worker approved")
}

// DeactivateWorker blocks an approved worker from signing in.
func (h *Handler) DeactivateWorker(w http.ResponseWriter, r *http.Request) {
	worker := r.Context().Value(WorkerCtxKey).(*domain.Worker)

	if !worker.IsActive {
		h.successResponse(w, r, "Worker deactivated")
		return
	}

	worker.IsActive = false
	if err := h.repository.UpdateWorker(worker); err != nil {
		switch {
		case errors.Is(err, sql.ErrNoRows):
			h.errorResponse(w, r, http.StatusConflict, "Please try again")
		default:
			h.internalServerError(w, r, err)
		}
		return
	}

	h.successResponse(w, r, "Worker deactivated")
}

func (h *Handler) DeclineWorker(w http.ResponseWriter, r *http.Request) {
	company := r.Context().Value(CompanyCtxKey).(*domain.Company)
	worker := r.Context().Value(WorkerCtxKey).(*domain.Worker)

	if worker.IsActive {
		h.errorResponse(w, r, http.StatusConflict, "Worker is already approved")
		return
	}

	if err := h.repository.DeletePendingWorker(worker.ID, company.ID); err != nil {
		switch {
		case errors.Is(err, sql.ErrNoRows):
			h.notFound(w, r, "Worker not found")
		default:
			h.internalServerError(w, r, err)
		}
		return
	}

	h.successResponse(w, r, "Worker request declined")
}
