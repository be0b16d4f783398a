package handler

import (
	"net/http"
	"strings"

	"github.com/quackapp/shift-matching/backend/internal/domain"
)

// currentAccount loads the signed-in company or worker, whichever the role says.
func (h *Handler) currentAccount(next http.Handler) http.Handler {
	asCompany := h.currentCompany(next)
	asWorker := h.currentWorker(next)

	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if domain.Role(r.Context().Value(RoleCtxKey).(string)) == domain.RoleCompany {
			asCompany.ServeHTTP(w, r)
			return
		}
		asWorker.ServeHTTP(w, r)
	})
}

// board returns the company whose board the caller reads and writes,
// along with the caller as a sender.
func board(r *http.Request) (companyID int64, sender domain.Message) {
	if company, ok := r.Context().Value(CompanyCtxKey).(*domain.Company); ok {
		return company.ID, domain.Message{SenderRole: domain.RoleCompany, SenderID: company.ID, SenderName: company.Name}
	}

	worker := r.Context().Value(WorkerCtxKey).(*domain.Worker)
	return worker.CompanyID, domain.Message{SenderRole: domain.RoleWorker, SenderID: worker.ID, SenderName: worker.Name}
}

func (h *Handler) SendMessage(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Message string `json:"message" validate:"required,max=2000"`
	}

	if err := h.readJSON(r, &req); err != nil {
		h.badRequest(w, r, err)
		return
	}
	if err := h.validate.Struct(req); err != nil {
		h.badRequest(w, r, err)
		return
	}

	body := strings.TrimSpace(req.Message)
	if body == "" {
		h.errorResponse(w, r, http.StatusBadRequest, "message is a required field")
		return
	}

	companyID, msg := board(r)
	msg.CompanyID = companyID
	msg.Body = body

	if err := h.repository.CreateMessage(&msg); err != nil {
		h.internalServerError(w, r, err)
		return
	}

	h.writeJSON(w, r, http.StatusCreated, msg)
}

func (h *Handler) GetMessages(w http.ResponseWriter, r *http.Request) {
	companyID, _ := board(r)

	messages, err := h.repository.GetMessagesByCompanyID(companyID)
	if err != nil {
		h.internalServerError(w, r, err)
		return
	}

	h.writeJSON(w, r, http.StatusOK, map[string]any{"messages": messages})
}
