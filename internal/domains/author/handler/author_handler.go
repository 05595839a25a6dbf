package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/google/uuid"

	"library-catalog/internal/domains/author/model"
	"library-catalog/internal/domains/author/service"
	"library-catalog/internal/shared/response"
)

type AuthorHandler struct {
	service service.ServiceInterface
}

func NewAuthorHandler(svc service.ServiceInterface) *AuthorHandler {
	return &AuthorHandler{service: svc}
}

// List - GET /authors
func (h *AuthorHandler) List(c *gin.Context) {
	authors, err := h.service.List(c.Request.Context())
	if err != nil {
		response.InternalError(c, "authors.list", err)
		return
	}

	response.JSON(c, http.StatusOK, authors)
}

// GetByID - GET /authors/:id
func (h *AuthorHandler) GetByID(c *gin.Context) {
	id, ok := h.parseID(c)
	if !ok {
		return
	}

	author, err := h.service.GetByID(c.Request.Context(), id)
	if err != nil {
		h.writeError(c, "authors.get", err)
		return
	}

	response.JSON(c, http.StatusOK, author)
}

// Create - POST /authors
func (h *AuthorHandler) Create(c *gin.Context) {
	var req model.CreateAuthorRequest
	if err := c.BindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, err.Error())
		return
	}

	author, err := h.service.Create(c.Request.Context(), &req)
	if err != nil {
		h.writeError(c, "authors.create", err)
		return
	}

	response.JSON(c, http.StatusCreated, author)
}

// Update - PUT /authors/:id
func (h *AuthorHandler) Update(c *gin.Context) {
	id, ok := h.parseID(c)
	if !ok {
		return
	}

	var req model.UpdateAuthorRequest
	if err := c.BindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, err.Error())
		return
	}

	author, err := h.service.Update(c.Request.Context(), id, &req)
	if err != nil {
		h.writeError(c, "authors.update", err)
		return
	}

	response.JSON(c, http.StatusOK, author)
}

// Delete - DELETE /authors/:id
func (h *AuthorHandler) Delete(c *gin.Context) {
	id, ok := h.parseID(c)
	if !ok {
		return
	}

	if err := h.service.Delete(c.Request.Context(), id); err != nil {
		h.writeError(c, "authors.delete", err)
		return
	}

	response.Message(c, http.StatusOK, "author deleted successfully")
}

// Books - GET /authors/:id/books
func (h *AuthorHandler) Books(c *gin.Context) {
	id, ok := h.parseID(c)
	if !ok {
		return
	}

	books, err := h.service.Books(c.Request.Context(), id)
	if err != nil {
		h.writeError(c, "authors.books", err)
		return
	}

	response.JSON(c, http.StatusOK, books)
}

// Stats - GET /authors/:id/stats
func (h *AuthorHandler) Stats(c *gin.Context) {
	id, ok := h.parseID(c)
	if !ok {
		return
	}

	stats, err := h.service.Stats(c.Request.Context(), id)
	if err != nil {
		h.writeError(c, "authors.stats", err)
		return
	}

	response.JSON(c, http.StatusOK, stats)
}

// Author routes reject a malformed id outright, unlike the book routes
// where an unparseable id reads as a lookup miss.
func (h *AuthorHandler) parseID(c *gin.Context) (uuid.UUID, bool) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.Error(c, http.StatusBadRequest, "invalid author id")
		return uuid.Nil, false
	}
	return id, true
}

func (h *AuthorHandler) writeError(c *gin.Context, operation string, err error) {
	var vErrs validation.Errors
	if errors.As(err, &vErrs) {
		response.Error(c, http.StatusBadRequest, vErrs.Error())
		return
	}

	status := model.ToHTTPStatus(err)
	if status == http.StatusInternalServerError {
		response.InternalError(c, operation, err)
		return
	}
	response.Error(c, status, err.Error())
}
