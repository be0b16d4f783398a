package handler

import (
	"encoding/json"
	"net/http"
	"regexp"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/quackapp/shift-matching/backend/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

func (e *testEnv) expectPendingWorker(id, companyID int64) {
	e.mock.ExpectQuery(regexp.QuoteMeta("FROM workers WHERE id = $1")).WithArgs(id).
		WillReturnRows(sqlmock.NewRows([]string{"company_id", "name", "email", "password_hash", "is_active", "created_at", "version"}).
			AddRow(companyID, "Ben Ortiz", "ben@example.com", "hash", false, time.Now(), int64(1)))
}

func (e *testEnv) expectCompanyByUsername(username string, id int64) {
	e.mock.ExpectQuery(regexp.QuoteMeta("FROM companies WHERE username = $1")).WithArgs(username).
		WillReturnRows(sqlmock.NewRows([]string{"id", "name", "email", "password_hash", "package", "created_at", "version"}).
			AddRow(id, "Harbor Logistics", "ops@harbor.example", "hash", "Pro", time.Now(), int64(1)))
}

func TestRegisterCompany(t *testing.T) {
	env := newTestEnv(t)

	env.mock.ExpectQuery(regexp.QuoteMeta("INSERT INTO companies")).
		WithArgs("harbor", "Harbor Logistics", "ops@harbor.example", sqlmock.AnyArg(), domain.PackageBasic).
		WillReturnRows(sqlmock.NewRows([]string{"id", "created_at", "version"}).AddRow(int64(3), time.Now(), int64(1)))

	rec := env.do(t, http.MethodPost, "/api/auth/register",
		`{"username":"harbor","name":" Harbor Logistics ","email":"OPS@harbor.example","password":"s3cret-pass"}`, nil)
	require.Equal(t, http.StatusCreated, rec.Code)
	assert.Equal(t, "Registration successful", message(t, rec))
	assert.NotContains(t, rec.Body.String(), "s3cret-pass")

	cookies := rec.Result().Cookies()
	require.Len(t, cookies, 1)
	assert.Equal(t, tokenCookieName, cookies[0].Name)
}

func TestRegisterCompany_Conflicts(t *testing.T) {
	env := newTestEnv(t)

	env.mock.ExpectQuery(regexp.QuoteMeta("INSERT INTO companies")).
		WillReturnError(&pgconn.PgError{Code: "23505", ConstraintName: "companies_username_key"})
	rec := env.do(t, http.MethodPost, "/api/auth/register",
		`{"username":"harbor","name":"Harbor","email":"ops@harbor.example","password":"s3cret-pass","package":"Pro"}`, nil)
	assert.Equal(t, http.StatusConflict, rec.Code)
	assert.Equal(t, "Username already taken", message(t, rec))

	env.mock.ExpectQuery(regexp.QuoteMeta("INSERT INTO companies")).
		WillReturnError(&pgconn.PgError{Code: "23505", ConstraintName: "companies_email_key"})
	rec = env.do(t, http.MethodPost, "/api/auth/register",
		`{"username":"harbor2","name":"Harbor","email":"ops@harbor.example","password":"s3cret-pass"}`, nil)
	assert.Equal(t, http.StatusConflict, rec.Code)
	assert.Equal(t, "Email already registered", message(t, rec))
}

func TestRegisterCompany_Validation(t *testing.T) {
	env := newTestEnv(t)

	rec := env.do(t, http.MethodPost, "/api/auth/register",
		`{"username":"harbor","name":"Harbor","email":"ops@harbor.example","password":"short"}`, nil)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, "password must be at least 8 characters in length", message(t, rec))

	rec = env.do(t, http.MethodPost, "/api/auth/register",
		`{"username":"harbor","name":"Harbor","email":"ops@harbor.example","password":"s3cret-pass","package":"Gold"}`, nil)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestRegisterWorker(t *testing.T) {
	env := newTestEnv(t)

	env.expectCompanyByUsername("harbor", 3)
	env.mock.ExpectQuery(regexp.QuoteMeta("VALUES ($1, $2, $3, $4, FALSE)")).
		WithArgs(int64(3), "Ben Ortiz", "ben@example.com", sqlmock.AnyArg()).
		WillReturnRows(sqlmock.NewRows([]string{"id", "is_active", "created_at", "version"}).AddRow(int64(9), false, time.Now(), int64(1)))

	rec := env.do(t, http.MethodPost, "/api/workers/add",
		`{"name":"Ben Ortiz","email":"Ben@example.com","password":"s3cret-pass","companyCode":"harbor"}`, nil)
	require.Equal(t, http.StatusCreated, rec.Code)
	assert.Equal(t, "Registration successful. You will be notified by email once you are approved", message(t, rec))
	assert.Empty(t, rec.Result().Cookies())
}

func TestRegisterWorker_UnknownCompany(t *testing.T) {
	env := newTestEnv(t)

	env.mock.ExpectQuery(regexp.QuoteMeta("FROM companies WHERE username = $1")).WithArgs("nobody").
		WillReturnRows(sqlmock.NewRows([]string{"id", "name", "email", "password_hash", "package", "created_at", "version"}))

	rec := env.do(t, http.MethodPost, "/api/workers/add",
		`{"name":"Ben Ortiz","email":"ben@example.com","password":"s3cret-pass","companyCode":"nobody"}`, nil)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, "Invalid company code", message(t, rec))
}

func TestRegisterWorker_DuplicateEmail(t *testing.T) {
	env := newTestEnv(t)

	env.expectCompanyByUsername("harbor", 3)
	env.mock.ExpectQuery(regexp.QuoteMeta("INSERT INTO workers")).
		WillReturnError(&pgconn.PgError{Code: "23505", ConstraintName: "workers_email_key"})

	rec := env.do(t, http.MethodPost, "/api/workers/add",
		`{"name":"Ben Ortiz","email":"ben@example.com","password":"s3cret-pass","companyCode":"harbor"}`, nil)
	assert.Equal(t, http.StatusConflict, rec.Code)
	assert.Equal(t, "Email already registered", message(t, rec))
}

func TestWorkerLogin_Pending(t *testing.T) {
	env := newTestEnv(t)

	hash, err := bcrypt.GenerateFromPassword([]byte("s3cret-pass"), bcrypt.MinCost)
	require.NoError(t, err)

	env.mock.ExpectQuery(regexp.QuoteMeta("FROM workers WHERE email = $1")).WithArgs("ben@example.com").
		WillReturnRows(sqlmock.NewRows([]string{"id", "company_id", "name", "password_hash", "is_active", "created_at", "version"}).
			AddRow(int64(9), int64(3), "Ben Ortiz", string(hash), false, time.Now(), int64(1)))

	rec := env.do(t, http.MethodPost, "/api/workers/login", `{"email":"ben@example.com","password":"s3cret-pass"}`, nil)
	assert.Equal(t, http.StatusForbidden, rec.Code)
	assert.Equal(t, "Your account is pending approval or has been deactivated", message(t, rec))
	assert.Empty(t, rec.Result().Cookies())
}

func TestPendingAndApprovedWorkers(t *testing.T) {
	env := newTestEnv(t)
	cookie := env.session(t, domain.RoleCompany, 3)

	rows := func() *sqlmock.Rows {
		return sqlmock.NewRows([]string{"id", "name", "email", "password_hash", "is_active", "created_at", "version"}).
			AddRow(int64(7), "Ana Silva", "ana@example.com", "hash", true, time.Now(), int64(1)).
			AddRow(int64(9), "Ben Ortiz", "ben@example.com", "hash", false, time.Now(), int64(1))
	}

	env.expectCompany(3)
	env.mock.ExpectQuery(regexp.QuoteMeta("FROM workers WHERE company_id = $1")).WithArgs(int64(3)).WillReturnRows(rows())
	rec := env.do(t, http.MethodGet, "/api/workers/pending", "", cookie)
	require.Equal(t, http.StatusOK, rec.Code)

	var pending []domain.Worker
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &pending))
	require.Len(t, pending, 1)
	assert.Equal(t, int64(9), pending[0].ID)

	env.expectCompany(3)
	env.mock.ExpectQuery(regexp.QuoteMeta("FROM workers WHERE company_id = $1")).WithArgs(int64(3)).WillReturnRows(rows())
	rec = env.do(t, http.MethodGet, "/api/workers/approved", "", cookie)
	require.Equal(t, http.StatusOK, rec.Code)

	var approved []domain.Worker
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &approved))
	require.Len(t, approved, 1)
	assert.Equal(t, int64(7), approved[0].ID)
}

func TestPendingWorkers_WorkerForbidden(t *testing.T) {
	env := newTestEnv(t)

	rec := env.do(t, http.MethodGet, "/api/workers/pending", "", env.session(t, domain.RoleWorker, 7))
	assert.Equal(t, http.StatusForbidden, rec.Code)
}

func TestApproveWorker(t *testing.T) {
	env := newTestEnv(t)

	env.expectCompany(3)
	env.expectPendingWorker(9, 3)
	env.mock.ExpectQuery(regexp.QuoteMeta("UPDATE workers")).
		WithArgs("Ben Ortiz", "ben@example.com", "hash", true, int64(9), int64(1)).
		WillReturnRows(sqlmock.NewRows([]string{"version"}).AddRow(int64(2)))

	rec := env.do(t, http.MethodPut, "/api/workers/approve/9", "", env.session(t, domain.RoleCompany, 3))
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "Worker approved", message(t, rec))

	require.Len(t, env.mail.messages, 1)
	assert.Equal(t, domain.MailTypeWorkerApproved, env.mail.messages[0].Type)
	assert.Equal(t, "ben@example.com", env.mail.messages[0].To)
	assert.Equal(t, map[string]any{"workerName": "Ben Ortiz", "companyName": "Harbor Logistics"}, env.mail.messages[0].Data)
}

func TestApproveWorker_OtherCompany(t *testing.T) {
	env := newTestEnv(t)

	env.expectCompany(3)
	env.expectPendingWorker(9, 4)

	rec := env.do(t, http.MethodPut, "/api/workers/approve/9", "", env.session(t, domain.RoleCompany, 3))
	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Equal(t, "Worker not found", message(t, rec))
	assert.Empty(t, env.mail.messages)
}

func TestDeactivateWorker(t *testing.T) {
	env := newTestEnv(t)

	env.expectCompany(3)
	env.expectWorker(7, 3)
	env.mock.ExpectQuery(regexp.QuoteMeta("UPDATE workers")).
		WithArgs("Ana Silva", "ana@example.com", "hash", false, int64(7), int64(1)).
		WillReturnRows(sqlmock.NewRows([]string{"version"}).AddRow(int64(2)))

	rec := env.do(t, http.MethodPut, "/api/workers/deactivate/7", "", env.session(t, domain.RoleCompany, 3))
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "Worker deactivated", message(t, rec))
}

func TestDeclineWorker(t *testing.T) {
	env := newTestEnv(t)
	cookie := env.session(t, domain.RoleCompany, 3)

	env.expectCompany(3)
	env.expectPendingWorker(9, 3)
	env.mock.ExpectExec(regexp.QuoteMeta("DELETE FROM workers")).WithArgs(int64(9), int64(3)).
		WillReturnResult(sqlmock.NewResult(0, 1))

	rec := env.do(t, http.MethodDelete, "/api/workers/decline/9", "", cookie)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "Worker request declined", message(t, rec))

	// an approved worker has to be deactivated instead
	env.expectCompany(3)
	env.expectWorker(7, 3)

	rec = env.do(t, http.MethodDelete, "/api/workers/decline/7", "", cookie)
	assert.Equal(t, http.StatusConflict, rec.Code)
	assert.Equal(t, "Worker is already approved", message(t, rec))
}

func TestMessages_WorkerAndCompanyShareBoard(t *testing.T) {
	env := newTestEnv(t)
	now := time.Now()

	env.expectWorker(7, 3)
	env.mock.ExpectQuery(regexp.QuoteMeta("INSERT INTO messages")).
		WithArgs(int64(3), domain.RoleWorker, int64(7), "Ana Silva", "Running late").
		WillReturnRows(sqlmock.NewRows([]string{"id", "created_at"}).AddRow(int64(1), now))

	rec := env.do(t, http.MethodPost, "/api/workers/send-message", `{"message":"  Running late "}`, env.session(t, domain.RoleWorker, 7))
	require.Equal(t, http.StatusCreated, rec.Code)

	var sent domain.Message
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &sent))
	assert.Equal(t, int64(1), sent.ID)
	assert.Equal(t, "Running late", sent.Body)

	env.expectCompany(3)
	env.mock.ExpectQuery(regexp.QuoteMeta("FROM messages WHERE company_id = $1")).WithArgs(int64(3)).
		WillReturnRows(sqlmock.NewRows([]string{"id", "sender_role", "sender_id", "sender_name", "body", "created_at"}).
			AddRow(int64(1), "worker", int64(7), "Ana Silva", "Running late", now))

	rec = env.do(t, http.MethodGet, "/api/workers/messages", "", env.session(t, domain.RoleCompany, 3))
	require.Equal(t, http.StatusOK, rec.Code)

	var body struct {
		Messages []domain.Message `json:"messages"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	require.Len(t, body.Messages, 1)
	assert.Equal(t, domain.RoleWorker, body.Messages[0].SenderRole)
	assert.Equal(t, "Ana Silva", body.Messages[0].SenderName)
}

func TestSendMessage_Blank(t *testing.T) {
	env := newTestEnv(t)

	env.expectCompany(3)
	rec := env.do(t, http.MethodPost, "/api/workers/send-message", `{"message":"   "}`, env.session(t, domain.RoleCompany, 3))
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestMessages_PendingWorkerForbidden(t *testing.T) {
	env := newTestEnv(t)

	env.expectPendingWorker(9, 3)
	rec := env.do(t, http.MethodGet, "/api/workers/messages", "", env.session(t, domain.RoleWorker, 9))
	assert.Equal(t, http.StatusForbidden, rec.Code)
}
