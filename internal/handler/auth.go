package handler

import (
	"cmp"
	"context"
	"database/sql"
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/quackapp/shift-matching/backend/internal/domain"
	"github.com/quackapp/shift-matching/backend/internal/utils"
	"github.com/redis/go-redis/v9"
	"golang.org/x/crypto/bcrypt"
)

const tokenCookieName = "__quack_token"

type AuthClaims struct {
	Role string `json:"role"`
	jwt.RegisteredClaims
}

type loginResponse struct {
	Message string `json:"message"`
	User    any    `json:"user"`
}

// setSession issues the JWT for (role, id) and sets it as an http-only cookie.
func (h *Handler) setSession(w http.ResponseWriter, role domain.Role, id int64) error {
	now := h.now()
	expiration := now.Add(time.Duration(h.config.JWT.Expiration) * time.Hour)

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, AuthClaims{
		Role: string(role),
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(expiration),
			IssuedAt:  jwt.NewNumericDate(now),
			NotBefore: jwt.NewNumericDate(now),
			Subject:   strconv.FormatInt(id, 10),
		},
	})
	ss, err := token.SignedString([]byte(h.config.JWT.Secret))
	if err != nil {
		return err
	}

	cookie := &http.Cookie{
		Name:     tokenCookieName,
		Value:    ss,
		Expires:  expiration,
		Path:     "/",
		HttpOnly: true,
		Secure:   false,
	}

	if h.config.Environment == "production" {
		cookie.Secure = true
		cookie.SameSite = http.SameSiteStrictMode
	}

	http.SetCookie(w, cookie)
	return nil
}

func (h *Handler) CompanyLogin(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Username string `json:"username" validate:"required"`
		Password string `json:"password" validate:"required"`
	}

	if err := h.readJSON(r, &req); err != nil {
		h.badRequest(w, r, err)
		return
	}
	if err := h.validate.Struct(req); err != nil {
		h.badRequest(w, r, err)
		return
	}

	company, err := h.repository.GetCompanyByUsername(req.Username)
	if err != nil {
		switch {
		case errors.Is(err, sql.ErrNoRows):
			h.unauthorized(w, r, "Invalid username or password")
		default:
			h.internalServerError(w, r, err)
		}
		return
	}

	if err := bcrypt.CompareHashAndPassword([]byte(company.PasswordHash), []byte(req.Password)); err != nil {
		switch {
		case errors.Is(err, bcrypt.ErrMismatchedHashAndPassword):
			h.unauthorized(w, r, "Invalid username or password")
		default:
			h.internalServerError(w, r, err)
		}
		return
	}

	if err := h.setSession(w, domain.RoleCompany, company.ID); err != nil {
		h.internalServerError(w, r, err)
		return
	}

	h.writeJSON(w, r, http.StatusOK, loginResponse{Message: "Login successful", User: company})
}

// RegisterCompany creates a company account and signs it in.
func (h *Handler) RegisterCompany(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Username string         `json:"username" validate:"required,alphanum,min=3,max=32"`
		Name     string         `json:"name" validate:"required,max=100"`
		Email    string         `json:"email" validate:"required,email"`
		Password string         `json:"password" validate:"required,min=8"`
		Package  domain.Package `json:"package" validate:"omitempty,oneof=Basic Pro"`
	}

	if err := h.readJSON(r, &req); err != nil {
		h.badRequest(w, r, err)
		return
	}
	if err := h.validate.Struct(req); err != nil {
		h.badRequest(w, r, err)
		return
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		h.internalServerError(w, r, err)
		return
	}

	company := &domain.Company{
		Username:     req.Username,
		Name:         strings.TrimSpace(req.Name),
		Email:        strings.ToLower(req.Email),
		PasswordHash: string(hashedPassword),
		Package:      cmp.Or(req.Package, domain.PackageBasic),
	}

	if err := h.repository.CreateCompany(company); err != nil {
		var pgErr *pgconn.PgError
		switch {
		case errors.As(err, &pgErr) && pgErr.ConstraintName == "companies_username_key":
			h.errorResponse(w, r, http.StatusConflict, "Username already taken")
		case errors.As(err, &pgErr) && pgErr.ConstraintName == "companies_email_key":
			h.errorResponse(w, r, http.StatusConflict, "Email already registered")
		default:
			h.internalServerError(w, r, err)
		}
		return
	}

	if err := h.setSession(w, domain.RoleCompany, company.ID); err != nil {
		h.internalServerError(w, r, err)
		return
	}

	h.writeJSON(w, r, http.StatusCreated, loginResponse{Message: "Registration successful", User: company})
}

func (h *Handler) WorkerLogin(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Email    string `json:"email" validate:"required,email"`
		Password string `json:"password" validate:"required"`
	}

	if err := h.readJSON(r, &req); err != nil {
		h.badRequest(w, r, err)
		return
	}
	if err := h.validate.Struct(req); err != nil {
		h.badRequest(w, r, err)
		return
	}

	worker, err := h.repository.GetWorkerByEmail(req.Email)
	if err != nil {
		switch {
		case errors.Is(err, sql.ErrNoRows):
			h.unauthorized(w, r, "Invalid email or password")
		default:
			h.internalServerError(w, r, err)
		}
		return
	}

	if err := bcrypt.CompareHashAndPassword([]byte(worker.PasswordHash), []byte(req.Password)); err != nil {
		switch {
		case errors.Is(err, bcrypt.ErrMismatchedHashAndPassword):
			h.unauthorized(w, r, "Invalid email or password")
		default:
			h.internalServerError(w, r, err)
		}
		return
	}

	if !worker.IsActive {
		h.errorResponse(w, r, http.StatusForbidden, "Your account is pending approval or has been deactivated")
		return
	}

	if err := h.setSession(w, domain.RoleWorker, worker.ID); err != nil {
		h.internalServerError(w, r, err)
		return
	}

	h.writeJSON(w, r, http.StatusOK, loginResponse{Message: "Login successful", User: worker})
}

func (h *Handler) Logout(w http.ResponseWriter, r *http.Request) {
	http.SetCookie(w, &http.Cookie{
		Name:    tokenCookieName,
		Value:   "",
		Expires: time.Now().Add(-time.Hour),
		Path:    "/",
	})

	h.successResponse(w, r, "Logout successful")
}

func (h *Handler) GetCompanyMe(w http.ResponseWriter, r *http.Request) {
	company := r.Context().Value(CompanyCtxKey).(*domain.Company)
	h.writeJSON(w, r, http.StatusOK, map[string]any{"user": company})
}

func (h *Handler) GetWorkerMe(w http.ResponseWriter, r *http.Request) {
	worker := r.Context().Value(WorkerCtxKey).(*domain.Worker)
	h.writeJSON(w, r, http.StatusOK, worker)
}

func resetPasswordKey(email string) string {
	return fmt.Sprintf("otp_%s_reset_password", email)
}

const forgotPasswordMessage = "If the email is registered, a verification code has been sent"

// ForgotPassword mails an OTP to a company or worker account. Unknown
// emails get the same answer so the endpoint does not reveal accounts.
func (h *Handler) ForgotPassword(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Email string `json:"email" validate:"required,email"`
	}

	if err := h.readJSON(r, &req); err != nil {
		h.badRequest(w, r, err)
		return
	}
	if err := h.validate.Struct(req); err != nil {
		h.badRequest(w, r, err)
		return
	}

	name, err := h.accountName(req.Email)
	if err != nil {
		switch {
		case errors.Is(err, sql.ErrNoRows):
			h.successResponse(w, r, forgotPasswordMessage)
		default:
			h.internalServerError(w, r, err)
		}
		return
	}

	otp := utils.GenerateRandomOTP()

	ctx, cancel := context.WithTimeout(r.Context(), time.Duration(h.config.Redis.OperationTimeout)*time.Second)
	defer cancel()

	if err := h.redisClient.Set(ctx, resetPasswordKey(req.Email), otp, time.Duration(h.config.OTP.Expiration)*time.Second).Err(); err != nil {
		h.internalServerError(w, r, err)
		return
	}

	mail := domain.MailMessage{
		Type: domain.MailTypeResetPassword,
		To:   req.Email,
		Data: domain.ResetPasswordMailData{
			Name:       name,
			OTP:        otp,
			Expiration: h.config.OTP.Expiration / 60, // config is in seconds, the mail shows minutes
		},
	}

	if err := h.publishMail(r.Context(), mail); err != nil {
		h.internalServerError(w, r, err)
		return
	}

	h.successResponse(w, r, forgotPasswordMessage)
}

// accountName looks the email up among companies first, then workers.
func (h *Handler) accountName(email string) (string, error) {
	company, err := h.repository.GetCompanyByEmail(email)
	if err == nil {
		return company.Name, nil
	}
	if !errors.Is(err, sql.ErrNoRows) {
		return "", err
	}

	worker, err := h.repository.GetWorkerByEmail(email)
	if err != nil {
		return "", err
	}
	return worker.Name, nil
}

func (h *Handler) ResetPassword(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Email       string `json:"email" validate:"required,email"`
		OTP         string `json:"otp" validate:"required,len=6,numeric"`
		NewPassword string `json:"newPassword" validate:"required,min=8"`
	}

	if err := h.readJSON(r, &req); err != nil {
		h.badRequest(w, r, err)
		return
	}
	if err := h.validate.Struct(req); err != nil {
		h.badRequest(w, r, err)
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), time.Duration(h.config.Redis.OperationTimeout)*time.Second)
	defer cancel()

	otp, err := h.redisClient.Get(ctx, resetPasswordKey(req.Email)).Result()
	if err != nil {
		switch {
		case errors.Is(err, redis.Nil):
			h.errorResponse(w, r, http.StatusBadRequest, "Invalid or expired verification code")
		default:
			h.internalServerError(w, r, err)
		}
		return
	}

	if otp != req.OTP {
		h.errorResponse(w, r, http.StatusBadRequest, "Invalid or expired verification code")
		return
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(req.NewPassword), bcrypt.DefaultCost)
	if err != nil {
		h.internalServerError(w, r, err)
		return
	}

	if err := h.updatePassword(req.Email, string(hashedPassword)); err != nil {
		switch {
		case errors.Is(err, sql.ErrNoRows):
			h.errorResponse(w, r, http.StatusConflict, "Please try again")
		default:
			h.internalServerError(w, r, err)
		}
		return
	}

	if err := h.redisClient.Del(ctx, resetPasswordKey(req.Email)).Err(); err != nil {
		h.internalServerError(w, r, err)
		return
	}

	h.successResponse(w, r, "Password has been reset")
}

func (h *Handler) updatePassword(email, passwordHash string) error {
	company, err := h.repository.GetCompanyByEmail(email)
	if err == nil {
		company.PasswordHash = passwordHash
		return h.repository.UpdateCompany(company)
	}
	if !errors.Is(err, sql.ErrNoRows) {
		return err
	}

	worker, err := h.repository.GetWorkerByEmail(email)
	if err != nil {
		return err
	}
	worker.PasswordHash = passwordHash
	return h.repository.UpdateWorker(worker)
}
