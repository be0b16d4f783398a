package client

import (
	"context"
	"encoding/json"
	"net/http"
	"sync/atomic"
	"testing"

	"github.com/quackapp/shift-matching/backend/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestClient_RegisterWorker(t *testing.T) {
	var got WorkerRegistration
	mux := http.NewServeMux()
	mux.HandleFunc("POST /api/workers/add", func(w http.ResponseWriter, r *http.Request) {
		require.NoError(t, json.NewDecoder(r.Body).Decode(&got))
		writeJSON(w, http.StatusCreated, map[string]string{"message": "Registration successful. You will be notified by email once you are approved"})
	})
	c := newTestClient(t, mux)

	msg, err := c.RegisterWorker(context.Background(), WorkerRegistration{
		Name: "Ben Ortiz", Email: "ben@example.com", Password: "s3cret-pass", CompanyCode: "harbor",
	})
	require.NoError(t, err)
	assert.Contains(t, msg, "once you are approved")
	assert.Equal(t, "harbor", got.CompanyCode)
}

func TestClient_Register_ValidatesLocally(t *testing.T) {
	var calls int32
	mux := http.NewServeMux()
	mux.HandleFunc("/", func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(&calls, 1)
	})
	c := newTestClient(t, mux)

	_, err := c.RegisterWorker(context.Background(), WorkerRegistration{Name: "Ben Ortiz", Email: "ben@example.com", Password: "short", CompanyCode: "harbor"})
	var vErr *ValidationError
	require.ErrorAs(t, err, &vErr)
	assert.Equal(t, "Password must be at least 8 characters", vErr.Message)

	_, err = c.RegisterCompany(context.Background(), CompanyRegistration{Username: "harbor", Password: "s3cret-pass"})
	require.ErrorAs(t, err, &vErr)
	assert.Equal(t, "Please fill in all fields", vErr.Message)

	_, err = c.SendMessage(context.Background(), "   ")
	require.ErrorAs(t, err, &vErr)

	assert.Equal(t, int32(0), atomic.LoadInt32(&calls))
}

func TestClient_RegisterCompany_Conflict(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("POST /api/auth/register", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusConflict, map[string]string{"message": "Username already taken"})
	})
	c := newTestClient(t, mux)

	_, err := c.RegisterCompany(context.Background(), CompanyRegistration{
		Username: "harbor", Name: "Harbor Logistics", Email: "ops@harbor.example", Password: "s3cret-pass",
	})
	var apiErr *APIError
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, http.StatusConflict, apiErr.StatusCode)
	assert.Equal(t, "Username already taken", ServerMessage(err))
}

func TestClient_SendToleratesNonJSONSuccessBody(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("PUT /api/workers/approve/{id}", func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "9", r.PathValue("id"))
		w.Header().Set("Content-Type", "text/plain")
		_, _ = w.Write([]byte("OK"))
	})
	c := newTestClient(t, mux)

	msg, err := c.ApproveWorker(context.Background(), 9)
	require.NoError(t, err)
	assert.Empty(t, msg)
}

func TestClient_PendingWorkersAndDecline(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("GET /api/workers/pending", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, []domain.Worker{{ID: 9, CompanyID: 3, Name: "Ben Ortiz", Email: "ben@example.com"}})
	})
	mux.HandleFunc("DELETE /api/workers/decline/{id}", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, map[string]string{"message": "Worker request declined"})
	})
	c := newTestClient(t, mux)

	workers, err := c.PendingWorkers(context.Background())
	require.NoError(t, err)
	require.Len(t, workers, 1)
	assert.False(t, workers[0].IsActive)

	msg, err := c.DeclineWorker(context.Background(), workers[0].ID)
	require.NoError(t, err)
	assert.Equal(t, "Worker request declined", msg)
}

func TestClient_Messages(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("GET /api/workers/messages", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, map[string]any{"messages": nil})
	})
	mux.HandleFunc("POST /api/workers/send-message", func(w http.ResponseWriter, r *http.Request) {
		var req map[string]string
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		writeJSON(w, http.StatusCreated, domain.Message{ID: 1, CompanyID: 3, SenderRole: domain.RoleWorker, SenderName: "Ana Silva", Body: req["message"]})
	})
	c := newTestClient(t, mux)

	messages, err := c.Messages(context.Background())
	require.NoError(t, err)
	assert.NotNil(t, messages)
	assert.Empty(t, messages)

	msg, err := c.SendMessage(context.Background(), " Running late ")
	require.NoError(t, err)
	assert.Equal(t, "Running late", msg.Body)
}
