package handler

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"runtime/debug"
	"slices"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/golang-jwt/jwt/v5"
	"github.com/quackapp/shift-matching/backend/internal/domain"
)

type ResponseWriter struct {
	http.ResponseWriter
	StatusCode int
}

func (rw *ResponseWriter) WriteHeader(statusCode int) {
	rw.StatusCode = statusCode
	rw.ResponseWriter.WriteHeader(statusCode)
}

func (h *Handler) logger(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		rw := &ResponseWriter{ResponseWriter: w, StatusCode: http.StatusOK}
		next.ServeHTTP(rw, r)
		duration := time.Since(start)
		slog.Info("request handled", "status", rw.StatusCode, "ip", r.RemoteAddr, "method", r.Method, "path", r.URL.Path, "duration", duration)
	})
}

func (h *Handler) recoverer(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		defer func() {
			if err := recover(); err != nil {
				h.internalServerError(w, r, fmt.Errorf("panic: %v", err))
				fmt.Print(string(debug.Stack()))
			}
		}()
		next.ServeHTTP(w, r)
	})
}

func (h *Handler) auth(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		cookie, err := r.Cookie(tokenCookieName)
		if err != nil {
			switch {
			case errors.Is(err, http.ErrNoCookie):
				h.unauthorized(w, r, "Not logged in")
			default:
				h.internalServerError(w, r, err)
			}
			return
		}

		claims := &AuthClaims{}
		_, err = jwt.ParseWithClaims(cookie.Value, claims, func(t *jwt.Token) (interface{}, error) {
			return []byte(h.config.JWT.Secret), nil
		}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}))
		if err != nil {
			h.unauthorized(w, r, "Invalid token")
			return
		}

		ctx := r.Context()
		ctx = context.WithValue(ctx, RoleCtxKey, claims.Role)
		ctx = context.WithValue(ctx, SubCtxKey, claims.Subject)

		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

func (h *Handler) requiredRole(roles ...domain.Role) func(next http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			role := domain.Role(r.Context().Value(RoleCtxKey).(string))
			if !slices.Contains(roles, role) {
				h.forbidden(w, r)
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}

func (h *Handler) subject(r *http.Request) (int64, error) {
	return strconv.ParseInt(r.Context().Value(SubCtxKey).(string), 10, 64)
}

func (h *Handler) currentWorker(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		sub, err := h.subject(r)
		if err != nil {
			h.internalServerError(w, r, err)
			return
		}

		worker, err := h.repository.GetWorkerByID(sub)
		if err != nil {
			switch {
			case errors.Is(err, sql.ErrNoRows):
				h.unauthorized(w, r, "Worker not found")
			default:
				h.internalServerError(w, r, err)
			}
			return
		}

		if !worker.IsActive {
			h.errorResponse(w, r, http.StatusForbidden, "Your account has been deactivated")
			return
		}

		ctx := context.WithValue(r.Context(), WorkerCtxKey, worker)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

func (h *Handler) currentCompany(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		sub, err := h.subject(r)
		if err != nil {
			h.internalServerError(w, r, err)
			return
		}

		company, err := h.repository.GetCompanyByID(sub)
		if err != nil {
			switch {
			case errors.Is(err, sql.ErrNoRows):
				h.unauthorized(w, r, "Company not found")
			default:
				h.internalServerError(w, r, err)
			}
			return
		}

		ctx := context.WithValue(r.Context(), CompanyCtxKey, company)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// sameWorker only lets a worker reach the {id} routes of their own account.
func (h *Handler) sameWorker(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		worker := r.Context().Value(WorkerCtxKey).(*domain.Worker)

		id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
		if err != nil {
			h.errorResponse(w, r, http.StatusBadRequest, "Invalid worker ID")
			return
		}

		if id != worker.ID {
			h.forbidden(w, r)
			return
		}

		next.ServeHTTP(w, r)
	})
}

func (h *Handler) jobInfo(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		jobID, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
		if err != nil {
			h.errorResponse(w, r, http.StatusBadRequest, "Invalid job ID")
			return
		}

		job, err := h.repository.GetJobByID(jobID)
		if err != nil {
			switch {
			case errors.Is(err, sql.ErrNoRows):
				h.notFound(w, r, "Job not found")
			default:
				h.internalServerError(w, r, err)
			}
			return
		}

		ctx := context.WithValue(r.Context(), JobCtxKey, job)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

func (h *Handler) companyOwnsJob(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		job := r.Context().Value(JobCtxKey).(*domain.Job)
		company := r.Context().Value(CompanyCtxKey).(*domain.Company)

		// do not reveal that another company's job exists
		if job.CompanyID != company.ID {
			h.notFound(w, r, "Job not found")
			return
		}

		next.ServeHTTP(w, r)
	})
}

func (h *Handler) workerSeesJob(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		job := r.Context().Value(JobCtxKey).(*domain.Job)
		worker := r.Context().Value(WorkerCtxKey).(*domain.Worker)

		if job.CompanyID != worker.CompanyID {
			h.notFound(w, r, "Job not found")
			return
		}

		next.ServeHTTP(w, r)
	})
}

// canViewJob admits the owning company and the workers of that company.
func (h *Handler) canViewJob(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		job := r.Context().Value(JobCtxKey).(*domain.Job)

		sub, err := h.subject(r)
		if err != nil {
			h.internalServerError(w, r, err)
			return
		}

		switch domain.Role(r.Context().Value(RoleCtxKey).(string)) {
		case domain.RoleCompany:
			if job.CompanyID == sub {
				next.ServeHTTP(w, r)
				return
			}
		case domain.RoleWorker:
			worker, err := h.repository.GetWorkerByID(sub)
			if err != nil && !errors.Is(err, sql.ErrNoRows) {
				h.internalServerError(w, r, err)
				return
			}
			if err == nil && worker.CompanyID == job.CompanyID {
				next.ServeHTTP(w, r)
				return
			}
		}

		h.notFound(w, r, "Job not found")
	})
}
