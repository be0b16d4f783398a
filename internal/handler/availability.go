package handler

import (
	"database/sql"
	"errors"
	"net/http"

	"github.com/quackapp/shift-matching/backend/internal/domain"
)

type dayShiftRequest struct {
	Date  string `json:"date" validate:"required,day"`
	Shift string `json:"shift" validate:"required,shift"`
}

// parse must only be called after validation succeeded.
func (req dayShiftRequest) parse() (domain.Day, domain.Shift) {
	day, _ := domain.ParseDay(req.Date)
	shift, _ := domain.ParseShift(req.Shift)
	return day, shift
}

func (h *Handler) UpsertAvailability(w http.ResponseWriter, r *http.Request) {
	worker := r.Context().Value(WorkerCtxKey).(*domain.Worker)

	var req dayShiftRequest
	if err := h.readJSON(r, &req); err != nil {
		h.badRequest(w, r, err)
		return
	}
	if err := h.validate.Struct(req); err != nil {
		h.badRequest(w, r, err)
		return
	}

	day, shift := req.parse()
	entry := &domain.AvailabilityEntry{WorkerID: worker.ID, Date: day, Shift: shift}
	if err := h.repository.UpsertAvailability(entry); err != nil {
		h.internalServerError(w, r, err)
		return
	}

	h.successResponse(w, r, "Availability updated")
}

func (h *Handler) GetAvailabilityStatus(w http.ResponseWriter, r *http.Request) {
	worker := r.Context().Value(WorkerCtxKey).(*domain.Worker)

	statuses, err := h.repository.GetAvailabilityStatus(worker.ID)
	if err != nil {
		h.internalServerError(w, r, err)
		return
	}

	h.writeJSON(w, r, http.StatusOK, statuses)
}

func (h *Handler) GetMyShifts(w http.ResponseWriter, r *http.Request) {
	worker := r.Context().Value(WorkerCtxKey).(*domain.Worker)

	entries, err := h.repository.GetAvailabilityByWorkerID(worker.ID)
	if err != nil {
		h.internalServerError(w, r, err)
		return
	}

	h.writeJSON(w, r, http.StatusOK, entries)
}

func (h *Handler) GetWorkersByShiftDate(w http.ResponseWriter, r *http.Request) {
	company := r.Context().Value(CompanyCtxKey).(*domain.Company)

	req := dayShiftRequest{
		Date:  r.URL.Query().Get("date"),
		Shift: r.URL.Query().Get("shift"),
	}
	if err := h.validate.Struct(req); err != nil {
		h.badRequest(w, r, err)
		return
	}

	day, shift := req.parse()
	workers, err := h.repository.GetAvailableWorkers(company.ID, day, shift)
	if err != nil {
		h.internalServerError(w, r, err)
		return
	}

	h.writeJSON(w, r, http.StatusOK, workers)
}

func (h *Handler) CancelShift(w http.ResponseWriter, r *http.Request) {
	worker := r.Context().Value(WorkerCtxKey).(*domain.Worker)

	var req struct {
		WorkerID int64 `json:"workerId" validate:"required"`
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

	if req.WorkerID != worker.ID {
		h.forbidden(w, r)
		return
	}

	day, shift := req.parse()
	entry := &domain.AvailabilityEntry{WorkerID: worker.ID, Date: day, Shift: shift}
	if err := h.repository.DeleteAvailability(entry); err != nil {
		switch {
		case errors.Is(err, sql.ErrNoRows):
			h.notFound(w, r, "Availability not found")
		default:
			h.internalServerError(w, r, err)
		}
		return
	}

	h.successResponse(w, r, "Availability removed")
}
