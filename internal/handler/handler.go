package handler

import (
	"context"
	"reflect"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-playground/locales/en"
	ut "github.com/go-playground/universal-translator"
	"github.com/go-playground/validator/v10"
	en_translations "github.com/go-playground/validator/v10/translations/en"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/quackapp/shift-matching/backend/internal/config"
	"github.com/quackapp/shift-matching/backend/internal/domain"
	"github.com/quackapp/shift-matching/backend/internal/repository"
	"github.com/quackapp/shift-matching/backend/internal/utils"
	amqp "github.com/rabbitmq/amqp091-go"
	"github.com/redis/go-redis/v9"
)

// MailPublisher is the part of *amqp.Channel the handlers use.
type MailPublisher interface {
	PublishWithContext(ctx context.Context, exchange, key string, mandatory, immediate bool, msg amqp.Publishing) error
}

type Handler struct {
	validate    *validator.Validate
	config      *config.Config
	repository  *repository.Repository
	translator  ut.Translator
	mailChannel MailPublisher
	redisClient *redis.Client
	metrics     *metrics
	registry    *prometheus.Registry
	now         func() time.Time

	Mux *chi.Mux
}

func NewHandler(cfg *config.Config, repo *repository.Repository, mailCh MailPublisher, rdb *redis.Client, registry *prometheus.Registry) (*Handler, error) {
	validate := validator.New(validator.WithRequiredStructEnabled())
	validate.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" || name == "" {
			return fld.Name
		}
		return name
	})

	english := en.New()
	uni := ut.New(english, english)
	trans, _ := uni.GetTranslator("en")
	if err := en_translations.RegisterDefaultTranslations(validate, trans); err != nil {
		return nil, err
	}
	if err := utils.RegisterValidations(validate, trans); err != nil {
		return nil, err
	}

	m, err := newMetrics(registry)
	if err != nil {
		return nil, err
	}

	return &Handler{
		validate:    validate,
		config:      cfg,
		repository:  repo,
		translator:  trans,
		mailChannel: mailCh,
		redisClient: rdb,
		metrics:     m,
		registry:    registry,
		now:         time.Now,

		Mux: chi.NewRouter(),
	}, nil
}

func (h *Handler) RegisterRoutes() {
	h.Mux.Use(h.logger)
	h.Mux.Use(h.recoverer)
	h.Mux.Use(h.instrument)

	h.Mux.Handle("/metrics", promhttp.HandlerFor(h.registry, promhttp.HandlerOpts{}))

	h.Mux.Route("/api", func(r chi.Router) {
		// company accounts
		r.Route("/auth", func(r chi.Router) {
			r.Post("/register", h.RegisterCompany)
			r.Post("/login", h.CompanyLogin)
			r.Post("/logout", h.Logout)
			r.Post("/forgot-password", h.ForgotPassword)
			r.Post("/reset-password", h.ResetPassword)
			r.With(h.auth, h.requiredRole(domain.RoleCompany), h.currentCompany).Get("/me", h.GetCompanyMe)
		})

		r.Route("/workers", func(r chi.Router) {
			r.Post("/login", h.WorkerLogin)
			r.Post("/add", h.RegisterWorker)

			r.Group(func(r chi.Router) {
				r.Use(h.auth)

				r.Group(func(r chi.Router) {
					r.Use(h.requiredRole(domain.RoleCompany))
					r.Use(h.currentCompany)
					r.Get("/shift-date", h.GetWorkersByShiftDate)
					r.Get("/pending", h.GetPendingWorkers)
					r.Get("/approved", h.GetApprovedWorkers)
					r.With(h.companyWorker).Put("/approve/{id}", h.ApproveWorker)
					r.With(h.companyWorker).Put("/deactivate/{id}", h.DeactivateWorker)
					r.With(h.companyWorker).Delete("/decline/{id}", h.DeclineWorker)
				})

				r.With(h.currentAccount).Get("/messages", h.GetMessages)
				r.With(h.currentAccount).Post("/send-message", h.SendMessage)

				r.Group(func(r chi.Router) {
					r.Use(h.requiredRole(domain.RoleWorker))
					r.Use(h.currentWorker)
					r.Get("/me", h.GetWorkerMe)
					r.Get("/my-shifts", h.GetMyShifts)
					r.Post("/cancel-shift", h.CancelShift)
					r.Route("/{id}", func(r chi.Router) {
						r.Use(h.sameWorker)
						r.Put("/availability", h.UpsertAvailability)
						r.Get("/availability-status", h.GetAvailabilityStatus)
					})
				})
			})
		})

		r.Route("/jobs", func(r chi.Router) {
			r.Use(h.auth)

			r.Group(func(r chi.Router) {
				r.Use(h.requiredRole(domain.RoleCompany))
				r.Use(h.currentCompany)
				r.Post("/create", h.CreateJob)
				r.Get("/company", h.GetCompanyJobs)
				r.With(h.jobInfo, h.companyOwnsJob).Delete("/job/{id}", h.DeleteJob)
				r.With(h.jobInfo, h.companyOwnsJob).Get("/assigned-workers/{id}", h.GetAssignedWorkers)
			})

			r.Group(func(r chi.Router) {
				r.Use(h.requiredRole(domain.RoleWorker))
				r.Use(h.currentWorker)
				r.Get("/mine", h.GetMyJobs)
				r.Get("/worker", h.GetWorkerJobs)
				r.With(h.jobInfo, h.workerSeesJob).Put("/accept/{id}", h.AcceptJob)
				r.With(h.jobInfo, h.workerSeesJob).Post("/decline/{id}", h.DeclineJob)
				r.With(h.jobInfo, h.workerSeesJob).Put("/remove-accepted/{id}", h.RemoveAccepted)
			})

			r.With(h.jobInfo, h.canViewJob).Get("/{id}", h.GetJob)
		})
	})
}
