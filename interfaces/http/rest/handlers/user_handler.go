package handlers

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	"github.com/adibtatriantama/FCC-Book-Trading/application/usecase"
	"github.com/adibtatriantama/FCC-Book-Trading/domain"
	"github.com/adibtatriantama/FCC-Book-Trading/pkg/auth"
	"github.com/adibtatriantama/FCC-Book-Trading/pkg/common"
	"github.com/adibtatriantama/FCC-Book-Trading/pkg/utils"
)

const maxBodyBytes = 1 << 20

// UserHandler handles user profile HTTP requests
type UserHandler struct {
	userService *usecase.UserService
	logger      *zap.Logger
}

// NewUserHandler creates a new user handler
func NewUserHandler(userService *usecase.UserService, logger *zap.Logger) *UserHandler {
	return &UserHandler{
		userService: userService,
		logger:      logger,
	}
}

// RegisterUserRequest represents the request body for registering a profile
type RegisterUserRequest struct {
	Nickname string `json:"nickname" validate:"required,max=100"`
	City     string `json:"city" validate:"max=100"`
	State    string `json:"state" validate:"max=100"`
}

// UpdateUserRequest represents the request body for updating a profile
type UpdateUserRequest struct {
	Nickname string `json:"nickname" validate:"required,max=100"`
	City     string `json:"city" validate:"max=100"`
	State    string `json:"state" validate:"max=100"`
}

// GetUser handles GET /users/{userID}
func (h *UserHandler) GetUser(w http.ResponseWriter, r *http.Request) {
	userID := chi.URLParam(r, "userID")

	user, err := h.userService.FindUserByID(r.Context(), userID)
	if err != nil {
		respondAppError(w, err)
		return
	}

	common.RespondJSON(w, http.StatusOK, newUserDto(user))
}

// GetMe handles GET /users/me
func (h *UserHandler) GetMe(w http.ResponseWriter, r *http.Request) {
	userCtx, err := auth.GetUserFromContext(r.Context())
	if err != nil {
		common.RespondError(w, http.StatusUnauthorized, common.StandardErrorCodes.Unauthorized, "Unauthorized")
		return
	}

	user, err := h.userService.FindUserByID(r.Context(), userCtx.UserID)
	if err != nil {
		respondAppError(w, err)
		return
	}

	common.RespondJSON(w, http.StatusOK, newUserDto(user))
}

// RegisterUser handles POST /users
func (h *UserHandler) RegisterUser(w http.ResponseWriter, r *http.Request) {
	userCtx, err := auth.GetUserFromContext(r.Context())
	if err != nil {
		common.RespondError(w, http.StatusUnauthorized, common.StandardErrorCodes.Unauthorized, "Unauthorized")
		return
	}

	var req RegisterUserRequest
	if err := common.ParseJSONBody(r, &req, maxBodyBytes); err != nil {
		common.RespondError(w, http.StatusBadRequest, common.StandardErrorCodes.BadRequest, "Invalid request body: "+err.Error())
		return
	}
	if err := utils.ValidateStruct(req); err != nil {
		common.RespondError(w, http.StatusBadRequest, common.StandardErrorCodes.ValidationError, err.Error())
		return
	}

	address := domain.Address{City: req.City, State: req.State}
	user, err := h.userService.RegisterUser(r.Context(), userCtx.UserID, req.Nickname, userCtx.Email, address)
	if err != nil {
		respondAppError(w, err)
		return
	}

	common.RespondJSON(w, http.StatusCreated, newUserDto(user))
}

// UpdateMe handles PUT /users/me
func (h *UserHandler) UpdateMe(w http.ResponseWriter, r *http.Request) {
	userCtx, err := auth.GetUserFromContext(r.Context())
	if err != nil {
		common.RespondError(w, http.StatusUnauthorized, common.StandardErrorCodes.Unauthorized, "Unauthorized")
		return
	}

	var req UpdateUserRequest
	if err := common.ParseJSONBody(r, &req, maxBodyBytes); err != nil {
		common.RespondError(w, http.StatusBadRequest, common.StandardErrorCodes.BadRequest, "Invalid request body: "+err.Error())
		return
	}
	if err := utils.ValidateStruct(req); err != nil {
		common.RespondError(w, http.StatusBadRequest, common.StandardErrorCodes.ValidationError, err.Error())
		return
	}

	address := domain.Address{City: req.City, State: req.State}
	user, err := h.userService.UpdateUser(r.Context(), userCtx.UserID, req.Nickname, address)
	if err != nil {
		respondAppError(w, err)
		return
	}

	common.RespondJSON(w, http.StatusOK, newUserDto(user))
}
