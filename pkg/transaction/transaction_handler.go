package transaction

import (
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/pocketly/pocketly/internal/money"
	"github.com/pocketly/pocketly/internal/rest"
	"github.com/pocketly/pocketly/pkg/category"
	log "github.com/sirupsen/logrus"
)

type TransactionDTO struct {
	Id         int    `json:"id"`
	WalletId   int    `json:"walletId"`
	CategoryId int    `json:"categoryId"`
	Type       string `json:"type,omitempty"`
	// Amount is a positive decimal string, for example "12.50".
	Amount    string    `json:"amount"`
	Note      string    `json:"note,omitempty"`
	Date      time.Time `json:"date"`
	CreatedAt time.Time `json:"createdAt"`
}

type Handler struct {
	service Service
}

func NewHandler(service Service) *Handler {
	return &Handler{service: service}
}

// List godoc
// @Summary List transactions in a date range
// @Tags Transaction
// @Produce json
// @Param from query string true "From date (RFC3339)"
// @Param to query string true "To date (RFC3339)"
// @Success 200 {array} TransactionDTO
// @Failure 400 {object} rest.ErrorResponse "Invalid date range"
// @Router /api/transaction [get]
// @Security XUserId
func (h *Handler) List(w http.ResponseWriter, r *http.Request) {
	from, ok := rest.QueryTime(w, r, "from")
	if !ok {
		return
	}
	to, ok := rest.QueryTime(w, r, "to")
	if !ok {
		return
	}
	transactions, err := h.service.List(r.Context(), from, to)
	if err != nil {
		h.writeError(w, err)
		return
	}
	dtos := make([]TransactionDTO, 0, len(transactions))
	for _, transaction := range transactions {
		dtos = append(dtos, toDTO(transaction))
	}
	rest.WriteJSON(w, http.StatusOK, dtos)
}

// Get godoc
// @Summary Get a transaction
// @Tags Transaction
// @Produce json
// @Param transactionId path int true "Transaction ID"
// @Success 200 {object} TransactionDTO
// @Failure 404 {string} string "Transaction Not Found"
// @Router /api/transaction/{transactionId} [get]
// @Security XUserId
func (h *Handler) Get(w http.ResponseWriter, r *http.Request) {
	id, ok := rest.PathId(w, r, "transactionId")
	if !ok {
		return
	}
	transaction, err := h.service.Get(r.Context(), id)
	if err != nil {
		h.writeError(w, err)
		return
	}
	rest.WriteJSON(w, http.StatusOK, toDTO(transaction))
}

// Create godoc
// @Summary Record a transaction
// @Description Updates the wallet balance and matching budgets
// @Tags Transaction
// @Accept json
// @Produce json
// @Param transaction body TransactionDTO true "Transaction"
// @Success 201 {object} TransactionDTO
// @Failure 400 {object} rest.ErrorResponse "Invalid transaction"
// @Router /api/transaction [post]
// @Security XUserId
func (h *Handler) Create(w http.ResponseWriter, r *http.Request) {
	var dto TransactionDTO
	if err := json.NewDecoder(r.Body).Decode(&dto); err != nil {
		rest.WriteError(w, http.StatusBadRequest, "Invalid request body format", "")
		return
	}
	log.Tracef("Creating transaction: %+v", dto)
	amount, err := money.Parse(dto.Amount)
	if err != nil {
		rest.WriteError(w, http.StatusBadRequest, "Invalid amount", err.Error())
		return
	}
	created, err := h.service.Create(r.Context(), Transaction{
		WalletId:   dto.WalletId,
		CategoryId: dto.CategoryId,
		Type:       category.Type(dto.Type),
		Amount:     amount,
		Note:       dto.Note,
		Date:       dto.Date,
	})
	if err != nil {
		h.writeError(w, err)
		return
	}
	rest.WriteJSON(w, http.StatusCreated, toDTO(created))
}

// Delete godoc
// @Summary Delete a transaction
// @Tags Transaction
// @Param transactionId path int true "Transaction ID"
// @Success 204
// @Failure 404 {string} string "Transaction Not Found"
// @Router /api/transaction/{transactionId} [delete]
// @Security XUserId
func (h *Handler) Delete(w http.ResponseWriter, r *http.Request) {
	id, ok := rest.PathId(w, r, "transactionId")
	if !ok {
		return
	}
	if err := h.service.Delete(r.Context(), id); err != nil {
		h.writeError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *Handler) writeError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, ErrInvalidTransaction):
		rest.WriteError(w, http.StatusBadRequest, "Invalid transaction", err.Error())
	case errors.Is(err, ErrInvalidDateRange):
		rest.WriteError(w, http.StatusBadRequest, "Invalid date range", err.Error())
	case errors.Is(err, ErrTransactionNotFound):
		w.WriteHeader(http.StatusNotFound)
	default:
		http.Error(w, err.Error(), http.StatusInternalServerError)
	}
}

func toDTO(transaction Transaction) TransactionDTO {
	return TransactionDTO{
		Id:         transaction.Id,
		WalletId:   transaction.WalletId,
		CategoryId: transaction.CategoryId,
		Type:       string(transaction.Type),
		Amount:     money.Format(transaction.Amount),
		Note:       transaction.Note,
		Date:       transaction.Date,
		CreatedAt:  transaction.CreatedAt,
	}
}
