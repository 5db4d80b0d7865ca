package category

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/pocketly/pocketly/internal/rest"
	log "github.com/sirupsen/logrus"
)

type CategoryDTO struct {
	Id       int    `json:"id"`
	Name     string `json:"name"`
	Icon     string `json:"icon,omitempty"`
	Type     string `json:"type"`
	Position int    `json:"position"`
}

type MoveDTO struct {
	PrecedingId int `json:"precedingId"`
}

type Handler struct {
	service Service
}

func NewHandler(service Service) *Handler {
	return &Handler{service: service}
}

// GetAll godoc
// @Summary List categories
// @Tags Category
// @Produce json
// @Success 200 {array} CategoryDTO
// @Failure 403 {string} string "User not found"
// @Router /api/category [get]
// @Security XUserId
func (h *Handler) GetAll(w http.ResponseWriter, r *http.Request) {
	categories, err := h.service.GetAll(r.Context())
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	dtos := make([]CategoryDTO, 0, len(categories))
	for _, category := range categories {
		dtos = append(dtos, toDTO(category))
	}
	rest.WriteJSON(w, http.StatusOK, dtos)
}

// Create godoc
// @Summary Create a category
// @Tags Category
// @Accept json
// @Produce json
// @Param category body CategoryDTO true "Category"
// @Success 201 {object} CategoryDTO
// @Failure 400 {object} rest.ErrorResponse "Invalid request"
// @Router /api/category [post]
// @Security XUserId
func (h *Handler) Create(w http.ResponseWriter, r *http.Request) {
	log.Debug("Creating new category")
	var dto CategoryDTO
	if err := json.NewDecoder(r.Body).Decode(&dto); err != nil {
		rest.WriteError(w, http.StatusBadRequest, "Invalid request body format", "")
		return
	}
	created, err := h.service.Create(r.Context(), fromDTO(dto))
	if err != nil {
		h.writeError(w, err)
		return
	}
	rest.WriteJSON(w, http.StatusCreated, toDTO(created))
}

// Update godoc
// @Summary Update a category
// @Tags Category
// @Accept json
// @Produce json
// @Param categoryId path int true "Category ID"
// @Param category body CategoryDTO true "Category"
// @Success 200 {object} CategoryDTO
// @Failure 400 {object} rest.ErrorResponse "Invalid request"
// @Failure 404 {string} string "Category Not Found"
// @Router /api/category/{categoryId} [put]
// @Security XUserId
func (h *Handler) Update(w http.ResponseWriter, r *http.Request) {
	id, ok := rest.PathId(w, r, "categoryId")
	if !ok {
		return
	}
	var dto CategoryDTO
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

// Move godoc
// @Summary Move a category after another one
// @Tags Category
// @Accept json
// @Param categoryId path int true "Category ID"
// @Param move body MoveDTO true "Preceding category, 0 for first"
// @Success 204
// @Failure 404 {string} string "Category Not Found"
// @Router /api/category/{categoryId}/move [post]
// @Security XUserId
func (h *Handler) Move(w http.ResponseWriter, r *http.Request) {
	id, ok := rest.PathId(w, r, "categoryId")
	if !ok {
		return
	}
	var dto MoveDTO
	if err := json.NewDecoder(r.Body).Decode(&dto); err != nil {
		rest.WriteError(w, http.StatusBadRequest, "Invalid request body format", "")
		return
	}
	if err := h.service.MoveAfter(r.Context(), id, dto.PrecedingId); err != nil {
		h.writeError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// Delete godoc
// @Summary Delete a category
// @Tags Category
// @Param categoryId path int true "Category ID"
// @Success 204
// @Failure 404 {string} string "Category Not Found"
// @Failure 409 {object} rest.ErrorResponse "Category has transactions"
// @Router /api/category/{categoryId} [delete]
// @Security XUserId
func (h *Handler) Delete(w http.ResponseWriter, r *http.Request) {
	id, ok := rest.PathId(w, r, "categoryId")
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
	case errors.Is(err, ErrInvalidCategory):
		rest.WriteError(w, http.StatusBadRequest, "Invalid category", err.Error())
	case errors.Is(err, ErrCategoryNotFound):
		w.WriteHeader(http.StatusNotFound)
	case errors.Is(err, ErrCategoryInUse):
		rest.WriteError(w, http.StatusConflict, "Category is in use", err.Error())
	default:
		http.Error(w, err.Error(), http.StatusInternalServerError)
	}
}

func toDTO(category Category) CategoryDTO {
	return CategoryDTO{
		Id:       category.Id,
		Name:     category.Name,
		Icon:     category.Icon,
		Type:     string(category.Type),
		Position: category.Position,
	}
}

func fromDTO(dto CategoryDTO) Category {
	return Category{
		Id:   dto.Id,
		Name: dto.Name,
		Icon: dto.Icon,
		Type: Type(dto.Type),
	}
}
