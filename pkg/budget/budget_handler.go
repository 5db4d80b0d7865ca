package budget

import (
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/pocketly/pocketly/internal/money"
	"github.com/pocketly/pocketly/internal/rest"
	log "github.com/sirupsen/logrus"
)

type BudgetDTO struct {
	Id         int       `json:"id"`
	CategoryId int       `json:"categoryId"`
	Total      string    `json:"total"`
	AmountUsed string    `json:"amountUsed"`
	Remaining  string    `json:"remaining"`
	Begin      time.Time `json:"begin"`
	End        time.Time `json:"end"`
}

type GroupDTO struct {
	Label      string      `json:"label"`
	Begin      string      `json:"begin"`
	End        string      `json:"end"`
	Total      string      `json:"total"`
	AmountUsed string      `json:"amountUsed"`
	Budgets    []BudgetDTO `json:"budgets"`
}

type BudgetHandler struct {
	budgetService BudgetService
}

func NewBudgetHandler(budgetService BudgetService) *BudgetHandler {
	return &BudgetHandler{budgetService}
}

// GetAll godoc
// @Summary List budgets
// @Tags Budget
// @Produce json
// @Success 200 {array} BudgetDTO
// @Router /api/budget [get]
// @Security XUserId
func (handler *BudgetHandler) GetAll(w http.ResponseWriter, r *http.Request) {
	budgets, err := handler.budgetService.GetAll(r.Context())
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	rest.WriteJSON(w, http.StatusOK, budgetsToDTO(budgets))
}

// GetGrouped godoc
// @Summary List budgets grouped by period
// @Description Budgets sharing the exact same begin and end are grouped and labelled relative to now, e.g. "This month"
// @Tags Budget
// @Produce json
// @Success 200 {array} GroupDTO
// @Router /api/budget/grouped [get]
// @Security XUserId
func (handler *BudgetHandler) GetGrouped(w http.ResponseWriter, r *http.Request) {
	groups, err := handler.budgetService.GetGrouped(r.Context())
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	dtos := make([]GroupDTO, 0, len(groups))
	for _, group := range groups {
		dtos = append(dtos, GroupDTO{
			Label:      group.Label,
			Begin:      group.Range.Begin,
			End:        group.Range.End,
			Total:      money.Format(group.Total()),
			AmountUsed: money.Format(group.AmountUsed()),
			Budgets:    budgetsToDTO(group.Budgets),
		})
	}
	rest.WriteJSON(w, http.StatusOK, dtos)
}

// Get godoc
// @Summary Get a budget
// @Tags Budget
// @Produce json
// @Param budgetId path int true "Budget ID"
// @Success 200 {object} BudgetDTO
// @Failure 404 {string} string "Budget Not Found"
// @Router /api/budget/{budgetId} [get]
// @Security XUserId
func (handler *BudgetHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, ok := rest.PathId(w, r, "budgetId")
	if !ok {
		return
	}
	budget, err := handler.budgetService.Get(r.Context(), id)
	if err != nil {
		writeError(w, err)
		return
	}
	rest.WriteJSON(w, http.StatusOK, BudgetToDTO(budget))
}

// Create godoc
// @Summary Create a budget
// @Tags Budget
// @Accept json
// @Produce json
// @Param budget body BudgetDTO true "Budget"
// @Success 201 {object} BudgetDTO
// @Failure 400 {object} rest.ErrorResponse "Invalid budget"
// @Router /api/budget [post]
// @Security XUserId
func (handler *BudgetHandler) Create(w http.ResponseWriter, r *http.Request) {
	log.Debug("Creating new budget")
	budget, ok := decodeBudget(w, r)
	if !ok {
		return
	}
	created, err := handler.budgetService.Create(r.Context(), budget)
	if err != nil {
		writeError(w, err)
		return
	}
	rest.WriteJSON(w, http.StatusCreated, BudgetToDTO(created))
}

// Update godoc
// @Summary Update a budget
// @Description Amount used is recalculated from transactions
// @Tags Budget
// @Accept json
// @Produce json
// @Param budgetId path int true "Budget ID"
// @Param budget body BudgetDTO true "Budget"
// @Success 200 {object} BudgetDTO
// @Failure 400 {object} rest.ErrorResponse "Invalid budget"
// @Failure 404 {string} string "Budget Not Found"
// @Router /api/budget/{budgetId} [put]
// @Security XUserId
func (handler *BudgetHandler) Update(w http.ResponseWriter, r *http.Request) {
	id, ok := rest.PathId(w, r, "budgetId")
	if !ok {
		return
	}
	budget, ok := decodeBudget(w, r)
	if !ok {
		return
	}
	budget.Id = id
	updated, err := handler.budgetService.Update(r.Context(), budget)
	if err != nil {
		writeError(w, err)
		return
	}
	rest.WriteJSON(w, http.StatusOK, BudgetToDTO(updated))
}

// Delete godoc
// @Summary Delete a budget
// @Tags Budget
// @Param budgetId path int true "Budget ID"
// @Success 204
// @Failure 404 {string} string "Budget Not Found"
// @Router /api/budget/{budgetId} [delete]
// @Security XUserId
func (handler *BudgetHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, ok := rest.PathId(w, r, "budgetId")
	if !ok {
		return
	}
	if err := handler.budgetService.Delete(r.Context(), id); err != nil {
		writeError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func decodeBudget(w http.ResponseWriter, r *http.Request) (Budget, bool) {
	var dto BudgetDTO
	if err := json.NewDecoder(r.Body).Decode(&dto); err != nil {
		rest.WriteError(w, http.StatusBadRequest, "Invalid request body format", "")
		return Budget{}, false
	}
	total, err := money.Parse(dto.Total)
	if err != nil {
		rest.WriteError(w, http.StatusBadRequest, "Invalid total", err.Error())
		return Budget{}, false
	}
	return Budget{
		CategoryId: dto.CategoryId,
		Total:      total,
		Begin:      dto.Begin,
		End:        dto.End,
	}, true
}

func writeError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, ErrInvalidRange), errors.Is(err, ErrInvalidBudget):
		rest.WriteError(w, http.StatusBadRequest, "Invalid budget", err.Error())
	case errors.Is(err, ErrBudgetNotFound):
		w.WriteHeader(http.StatusNotFound)
	default:
		http.Error(w, err.Error(), http.StatusInternalServerError)
	}
}

func budgetsToDTO(budgets []Budget) []BudgetDTO {
	dtos := make([]BudgetDTO, 0, len(budgets))
	for _, budget := range budgets {
		dtos = append(dtos, BudgetToDTO(budget))
	}
	return dtos
}

func BudgetToDTO(budget Budget) BudgetDTO {
	return BudgetDTO{
		Id:         budget.Id,
		CategoryId: budget.CategoryId,
		Total:      money.Format(budget.Total),
		AmountUsed: money.Format(budget.AmountUsed),
		Remaining:  money.Format(budget.Remaining()),
		Begin:      budget.Begin,
		End:        budget.End,
	}
}
