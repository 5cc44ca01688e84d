package handler

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/kindredhq/kindred/internal/ctxkeys"
	"github.com/kindredhq/kindred/internal/service"
)

type AccountHandler struct {
	accountService *service.AccountService
}

func NewAccountHandler(accountService *service.AccountService) *AccountHandler {
	return &AccountHandler{accountService: accountService}
}

type messageResponse struct {
	Message string `json:"message"`
}

// DeleteAccount handles DELETE /account. The id always comes from the
// verified token resolved by the auth middleware, never from the request.
func (h *AccountHandler) DeleteAccount(w http.ResponseWriter, r *http.Request) {
	account := ctxkeys.Account(r.Context())

	err := h.accountService.DeleteAccount(r.Context(), account.ID)
	if err != nil {
		if errors.Is(err, service.ErrAccountNotFound) {
			respondError(w, http.StatusNotFound, err.Error())
			return
		}
		slog.Error("account deletion failed", "error", err, "account_id", account.ID)
		respondError(w, http.StatusInternalServerError, "internal server error")
		return
	}

	respondJSON(w, http.StatusOK, messageResponse{Message: "account deleted"})
}
