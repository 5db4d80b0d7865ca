package wallet

import (
	"encoding/json"
	"errors"
	"net/http"
	"strings"

	"github.com/pocketly/pocketly/internal/money"
	"github.com/pocketly/pocketly/internal/rest"
	"github.com/shopspring/decimal"
	log "github.com/sirupsen/logrus"
)

type WalletDTO struct {
	Id       int    `json:"id"`
	Name     string `json:"name"`
	Icon     string `json:"icon,omitempty"`
	Currency string `json:"currency"`
	// Balance is a decimal string. On create it is the opening balance.
	Balance string `json:"balance,omitempty"`
}

type Handler struct {
	service Service
}

func NewHandler(service Service) *Handler {
	return &Handler{service: service}
}

// GetAll godoc
// @Summary List wallets
// @Tags Wallet
// @Produce json
// @Success 200 {array} WalletDTO
// @Router /api/wallet [get]
// @Security XUserId
func (h *Handler) GetAll(w http.ResponseWriter, r *http.Request) {
	wallets, err := h.service.GetAll(r.Context())
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	dtos := make([]WalletDTO, 0, len(wallets))
	for _, wallet := range wallets {
		dtos = append(dtos, toDTO(wallet))
	}
	rest.WriteJSON(w, http.StatusOK, dtos)
}

// Create godoc
// @Summary Create a wallet
// @Tags Wallet
// @Accept json
// @Produce json
// @Param wallet body WalletDTO true "Wallet"
// @Success 201 {object} WalletDTO
// @Failure 400 {object} rest.ErrorResponse "Invalid request"
// @Router /api/wallet [post]
// @Security XUserId
func (h *Handler) Create(w http.ResponseWriter, r *http.Request) {
	log.Debug("Creating new wallet")
	var dto WalletDTO
	if err := json.NewDecoder(r.Body).Decode(&dto); err != nil {
		rest.WriteError(w, http.StatusBadRequest, "Invalid request body format", "")
		return
	}
	wallet := fromDTO(dto)
	if dto.Balance != "" {
		balance, err := money.Parse(dto.Balance)
		if err != nil {
			rest.WriteError(w, http.StatusBadRequest, "Invalid balance", err.Error())
			return
		}
		wallet.Balance = balance
	}
	created, err := h.service.Create(r.Context(), wallet)
	if err != nil {
		h.writeError(w, err)
		return
	}
	rest.WriteJSON(w, http.StatusCreated, toDTO(created))
}

// Update godoc
// @Summary Update a wallet
// @Description Balance in the body is ignored
// @Tags Wallet
// @Accept json
// @Produce json
// @Param walletId path int true "Wallet ID"
// @Param wallet body WalletDTO true "Wallet"
// @Success 200 {object} WalletDTO
// @Failure 404 {string} string "Wallet Not Found"
// @Router /api/wallet/{walletId} [put]
// @Security XUserId
func (h *Handler) Update(w http.ResponseWriter, r *http.Request) {
	id, ok := rest.PathId(w, r, "walletId")
	if !ok {
		return
	}
	var dto WalletDTO
	if err := json.NewDecoder(r.Body).Decode(&dto); err != nil {
		rest.WriteError(w, http.StatusBadRequest, "Invalid request body format", "")
		return
	}
	dto.Id = id
	updated, err := h.service.Update(r.Context(), fromDTO(dto))
	if err != nil {
		h.writeError(w, err)
		return
	}
	rest.WriteJSON(w, http.StatusOK, toDTO(updated))
}

// Delete godoc
// @Summary Delete a wallet and its transactions
// @Tags Wallet
// @Param walletId path int true "Wallet ID"
// @Success 204
// @Failure 404 {string} string "Wallet Not Found"
// @Router /api/wallet/{walletId} [delete]
// @Security XUserId
func (h *Handler) Delete(w http.ResponseWriter, r *http.Request) {
	id, ok := rest.PathId(w, r, "walletId")
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
	case errors.Is(err, ErrInvalidWallet):
		rest.WriteError(w, http.StatusBadRequest, "Invalid wallet", err.Error())
	case errors.Is(err, ErrWalletNotFound):
		w.WriteHeader(http.StatusNotFound)
	default:
		http.Error(w, err.Error(), http.StatusInternalServerError)
	}
}

func toDTO(wallet Wallet) WalletDTO {
	return WalletDTO{
		Id:       wallet.Id,
		Name:     wallet.Name,
		Icon:     wallet.Icon,
		Currency: wallet.Currency,
		Balance:  money.Format(wallet.Balance),
	}
}

func fromDTO(dto WalletDTO) Wallet {
	return Wallet{
		Id:       dto.Id,
		Name:     dto.Name,
		Icon:     dto.Icon,
		Currency: strings.ToUpper(dto.Currency),
		Balance:  decimal.Zero,
	}
}
