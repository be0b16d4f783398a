package handler

import (
	"database/sql"
	"errors"
	"log/slog"
	"net/http"
	"slices"
	"strings"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/quackapp/shift-matching/backend/internal/domain"
	"github.com/quackapp/shift-matching/backend/internal/repository"
	"github.com/quackapp/shift-matching/backend/internal/utils"
)

func (h *Handler) CreateJob(w http.ResponseWriter, r *http.Request) {
	company := r.Context().Value(CompanyCtxKey).(*domain.Company)

	var req struct {
		Title           string `json:"title" validate:"required,max=200"`
		Description     string `json:"description" validate:"required"`
		Location        string `json:"location" validate:"required"`
		WorkersRequired int32  `json:"workersRequired" validate:"required,min=1,max=100"`
		dayShiftRequest
	}
	if err := h.readJSON(r, &req); err != nil {
		h.badRequest(w, r, err)
		return
	}
	if err := h.validate.Struct(req); err != nil {
		h.badRequest(w, r, err)
		return
	}

	day, shift := req.parse()
	job := &domain.Job{
		CompanyID:       company.ID,
		Title:           strings.TrimSpace(req.Title),
		Description:     strings.TrimSpace(req.Description),
		Location:        strings.TrimSpace(req.Location),
		Date:            day,
		Shift:           shift,
		WorkersRequired: req.WorkersRequired,
	}

	if err := utils.ValidateJobDate(job, domain.Today(h.now())); err != nil {
		h.badRequest(w, r, err)
		return
	}

	if err := h.repository.CreateJob(job); err != nil {
		h.internalServerError(w, r, err)
		return
	}

	h.writeJSON(w, r, http.StatusCreated, job)
}

func (h *Handler) GetCompanyJobs(w http.ResponseWriter, r *http.Request) {
	company := r.Context().Value(CompanyCtxKey).(*domain.Company)

	jobs, err := h.repository.GetJobsByCompanyID(company.ID)
	if err != nil {
		h.internalServerError(w, r, err)
		return
	}

	h.writeJSON(w, r, http.StatusOK, jobs)
}

// GetMyJobs lists the jobs the worker has accepted.
func (h *Handler) GetMyJobs(w http.ResponseWriter, r *http.Request) {
	worker := r.Context().Value(WorkerCtxKey).(*domain.Worker)

	jobs, err := h.repository.GetAcceptedJobsByWorkerID(worker.ID)
	if err != nil {
		h.internalServerError(w, r, err)
		return
	}

	h.writeJSON(w, r, http.StatusOK, jobs)
}

// GetWorkerJobs lists the open jobs the worker can still accept.
func (h *Handler) GetWorkerJobs(w http.ResponseWriter, r *http.Request) {
	worker := r.Context().Value(WorkerCtxKey).(*domain.Worker)

	jobs, err := h.repository.GetOpenJobsForWorker(worker)
	if err != nil {
		h.internalServerError(w, r, err)
		return
	}

	h.writeJSON(w, r, http.StatusOK, jobs)
}

func (h *Handler) GetJob(w http.ResponseWriter, r *http.Request) {
	job := r.Context().Value(JobCtxKey).(*domain.Job)
	h.writeJSON(w, r, http.StatusOK, job)
}

// GetAssignedWorkers lists who accepted one of the company's jobs.
func (h *Handler) GetAssignedWorkers(w http.ResponseWriter, r *http.Request) {
	job := r.Context().Value(JobCtxKey).(*domain.Job)

	workers, err := h.repository.GetAcceptedWorkers(job.ID)
	if err != nil {
		h.internalServerError(w, r, err)
		return
	}

	h.writeJSON(w, r, http.StatusOK, workers)
}

func (h *Handler) DeleteJob(w http.ResponseWriter, r *http.Request) {
	job := r.Context().Value(JobCtxKey).(*domain.Job)
	company := r.Context().Value(CompanyCtxKey).(*domain.Company)

	if err := h.repository.DeleteJob(job.ID, company.ID); err != nil {
		switch {
		case errors.Is(err, sql.ErrNoRows):
			h.notFound(w, r, "Job not found")
		default:
			h.internalServerError(w, r, err)
		}
		return
	}

	h.successResponse(w, r, "Job deleted")
}

func (h *Handler) AcceptJob(w http.ResponseWriter, r *http.Request) {
	job := r.Context().Value(JobCtxKey).(*domain.Job)
	worker := r.Context().Value(WorkerCtxKey).(*domain.Worker)

	if slices.Contains(job.AcceptedWorkerIDs, worker.ID) {
		h.successResponse(w, r, "You have already accepted this job")
		return
	}

	if err := h.repository.AcceptJob(job.ID, worker.ID); err != nil {
		var pgErr *pgconn.PgError
		switch {
		case errors.As(err, &pgErr) && pgErr.ConstraintName == "job_acceptances_pkey":
			// concurrent duplicate accept
			h.successResponse(w, r, "You have already accepted this job")
		case errors.Is(err, sql.ErrNoRows):
			h.notFound(w, r, "Job not found")
		case errors.Is(err, repository.ErrJobNotOpen):
			h.errorResponse(w, r, http.StatusConflict, "This job is no longer open")
		case errors.Is(err, repository.ErrJobFull):
			h.errorResponse(w, r, http.StatusConflict, "This job has already been filled")
		default:
			h.internalServerError(w, r, err)
		}
		return
	}

	h.notifyJobAccepted(r, job, worker)

	h.successResponse(w, r, "Job accepted successfully")
}

// notifyJobAccepted mails the owning company. A failure here does not undo
// the acceptance, so it is only logged.
func (h *Handler) notifyJobAccepted(r *http.Request, job *domain.Job, worker *domain.Worker) {
	company, err := h.repository.GetCompanyByID(job.CompanyID)
	if err != nil {
		slog.Error("failed to load company for job accepted mail", "job_id", job.ID, "error", err)
		return
	}

	mail := domain.MailMessage{
		Type: domain.MailTypeJobAccepted,
		To:   company.Email,
		Data: domain.JobAcceptedMailData{
			CompanyName: company.Name,
			WorkerName:  worker.Name,
			JobTitle:    job.Title,
			Date:        job.Date.String(),
			Shift:       job.Shift.String(),
		},
	}

	if err := h.publishMail(r.Context(), mail); err != nil {
		slog.Error("failed to publish job accepted mail", "job_id", job.ID, "worker_id", worker.ID, "error", err)
	}
}

func (h *Handler) DeclineJob(w http.ResponseWriter, r *http.Request) {
	job := r.Context().Value(JobCtxKey).(*domain.Job)
	worker := r.Context().Value(WorkerCtxKey).(*domain.Worker)

	if slices.Contains(job.AcceptedWorkerIDs, worker.ID) {
		h.errorResponse(w, r, http.StatusConflict, "You have accepted this job. Remove yourself from it instead.")
		return
	}

	if err := h.repository.DeclineJob(job.ID, worker.ID); err != nil {
		switch {
		case errors.Is(err, sql.ErrNoRows):
			h.notFound(w, r, "Job not found")
		default:
			h.internalServerError(w, r, err)
		}
		return
	}

	h.successResponse(w, r, "Job declined")
}

func (h *Handler) RemoveAccepted(w http.ResponseWriter, r *http.Request) {
	job := r.Context().Value(JobCtxKey).(*domain.Job)
	worker := r.Context().Value(WorkerCtxKey).(*domain.Worker)

	if err := h.repository.RemoveAcceptedWorker(job.ID, worker.ID); err != nil {
		switch {
		case errors.Is(err, sql.ErrNoRows):
			h.notFound(w, r, "You have not accepted this job")
		default:
			h.internalServerError(w, r, err)
		}
		return
	}

	h.successResponse(w, r, "You have been removed from the job")
}
