package handlers

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	"github.com/adibtatriantama/FCC-Book-Trading/application/usecase"
	"github.com/adibtatriantama/FCC-Book-Trading/pkg/auth"
	"github.com/adibtatriantama/FCC-Book-Trading/pkg/common"
	"github.com/adibtatriantama/FCC-Book-Trading/pkg/utils"
)

// BookHandler handles book listing HTTP requests
type BookHandler struct {
	bookService *usecase.BookService
	logger      *zap.Logger
}

// NewBookHandler creates a new book handler
func NewBookHandler(bookService *usecase.BookService, logger *zap.Logger) *BookHandler {
	return &BookHandler{
		bookService: bookService,
		logger:      logger,
	}
}

// AddBookRequest represents the request body for listing a book
type AddBookRequest struct {
	Title       string `json:"title" validate:"required,max=200"`
	Author      string `json:"author" validate:"required,max=200"`
	Description string `json:"description" validate:"max=2000"`
}

// AddBook handles POST /books
func (h *BookHandler) AddBook(w http.ResponseWriter, r *http.Request) {
	userCtx, err := auth.GetUserFromContext(r.Context())
	if err != nil {
		common.RespondError(w, http.StatusUnauthorized, common.StandardErrorCodes.Unauthorized, "Unauthorized")
		return
	}

	var req AddBookRequest
	if err := common.ParseJSONBody(r, &req, maxBodyBytes); err != nil {
		common.RespondError(w, http.StatusBadRequest, common.StandardErrorCodes.BadRequest, "Invalid request body: "+err.Error())
		return
	}
	if err := utils.ValidateStruct(req); err != nil {
		common.RespondError(w, http.StatusBadRequest, common.StandardErrorCodes.ValidationError, err.Error())
		return
	}

	book, err := h.bookService.AddBook(r.Context(), userCtx.UserID, req.Title, req.Author, req.Description)
	if err != nil {
		respondAppError(w, err)
		return
	}

	common.RespondJSON(w, http.StatusCreated, newBookDto(book))
}

// GetBook handles GET /books/{bookID}
func (h *BookHandler) GetBook(w http.ResponseWriter, r *http.Request) {
	bookID := chi.URLParam(r, "bookID")

	book, err := h.bookService.FindBookByID(r.Context(), bookID)
	if err != nil {
		respondAppError(w, err)
		return
	}

	common.RespondJSON(w, http.StatusOK, newBookDto(book))
}

// ListRecentBooks handles GET /books
func (h *BookHandler) ListRecentBooks(w http.ResponseWriter, r *http.Request) {
	books, err := h.bookService.FindRecentBooks(r.Context())
	if err != nil {
		respondAppError(w, err)
		return
	}

	common.RespondJSON(w, http.StatusOK, newBookDtos(books))
}

// ListBooksByOwner handles GET /users/{userID}/books
func (h *BookHandler) ListBooksByOwner(w http.ResponseWriter, r *http.Request) {
	ownerID := chi.URLParam(r, "userID")

	books, err := h.bookService.FindBooksByOwner(r.Context(), ownerID)
	if err != nil {
		respondAppError(w, err)
		return
	}

	common.RespondJSON(w, http.StatusOK, newBookDtos(books))
}

// RemoveBook handles DELETE /books/{bookID}
func (h *BookHandler) RemoveBook(w http.ResponseWriter, r *http.Request) {
	userCtx, err := auth.GetUserFromContext(r.Context())
	if err != nil {
		common.RespondError(w, http.StatusUnauthorized, common.StandardErrorCodes.Unauthorized, "Unauthorized")
		return
	}

	bookID := chi.URLParam(r, "bookID")

	if err := h.bookService.RemoveBook(r.Context(), bookID, userCtx.UserID); err != nil {
		respondAppError(w, err)
		return
	}

	common.RespondJSON(w, http.StatusOK, map[string]string{"message": "book removed"})
}
