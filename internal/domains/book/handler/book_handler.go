package handler

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/google/uuid"

	"library-catalog/internal/domains/book/model"
	"library-catalog/internal/domains/book/service"
	"library-catalog/internal/shared/response"
)

type BookHandler struct {
	service service.ServiceInterface
}

func NewBookHandler(svc service.ServiceInterface) *BookHandler {
	return &BookHandler{service: svc}
}

// List - GET /books?genre=&authorId=
func (h *BookHandler) List(c *gin.Context) {
	filter := model.ListFilter{
		Genre:    c.Query("genre"),
		AuthorID: c.Query("authorId"),
	}

	books, err := h.service.List(c.Request.Context(), filter)
	if err != nil {
		response.InternalError(c, "books.list", err)
		return
	}

	response.JSON(c, http.StatusOK, books)
}

// Search - GET /books/search?search=&genre=&authorName=&page=&limit=&sortBy=&order=
// Out-of-range parameters clamp silently; there is no 400 path here.
func (h *BookHandler) Search(c *gin.Context) {
	filter := model.SearchFilter{
		Search:     c.Query("search"),
		Genre:      c.Query("genre"),
		AuthorName: c.Query("authorName"),
		Page:       queryInt(c, "page", 1),
		Limit:      queryInt(c, "limit", model.DefaultPageSize),
		SortBy:     c.DefaultQuery("sortBy", "createdAt"),
		Order:      c.DefaultQuery("order", "desc"),
	}

	result, err := h.service.Search(c.Request.Context(), filter)
	if err != nil {
		response.InternalError(c, "books.search", err)
		return
	}

	response.JSON(c, http.StatusOK, result)
}

// GetByID - GET /books/:id
func (h *BookHandler) GetByID(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.Error(c, http.StatusNotFound, model.ErrBookNotFound.Error())
		return
	}

	book, err := h.service.GetByID(c.Request.Context(), id)
	if err != nil {
		h.writeError(c, "books.get", err)
		return
	}

	response.JSON(c, http.StatusOK, book)
}

// Create - POST /books
func (h *BookHandler) Create(c *gin.Context) {
	var req model.CreateBookRequest
	if err := c.BindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, err.Error())
		return
	}

	book, err := h.service.Create(c.Request.Context(), &req)
	if err != nil {
		h.writeError(c, "books.create", err)
		return
	}

	response.JSON(c, http.StatusCreated, book)
}

// Update - PUT /books/:id
func (h *BookHandler) Update(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.Error(c, http.StatusNotFound, model.ErrBookNotFound.Error())
		return
	}

	var req model.UpdateBookRequest
	if err := c.BindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, err.Error())
		return
	}

	book, err := h.service.Update(c.Request.Context(), id, &req)
	if err != nil {
		h.writeError(c, "books.update", err)
		return
	}

	response.JSON(c, http.StatusOK, book)
}

// Delete - DELETE /books/:id
func (h *BookHandler) Delete(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.Error(c, http.StatusNotFound, model.ErrBookNotFound.Error())
		return
	}

	if err := h.service.Delete(c.Request.Context(), id); err != nil {
		h.writeError(c, "books.delete", err)
		return
	}

	response.Message(c, http.StatusOK, "book deleted successfully")
}

// writeError maps service errors onto the API contract: validation
// failures are 400 with the field-level message, domain errors use the
// model's status table, everything else is logged and returned as 500.
func (h *BookHandler) writeError(c *gin.Context, operation string, err error) {
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

func queryInt(c *gin.Context, key string, defaultValue int) int {
	raw := c.Query(key)
	if raw == "" {
		return defaultValue
	}
	n, err := strconv.Atoi(raw)
	if err != nil {
		return defaultValue
	}
	return n
}
