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

// TradeHandler handles trade lifecycle HTTP requests
type TradeHandler struct {
	tradeService *usecase.TradeService
	logger       *zap.Logger
}

// NewTradeHandler creates a new trade handler
func NewTradeHandler(tradeService *usecase.TradeService, logger *zap.Logger) *TradeHandler {
	return &TradeHandler{
		tradeService: tradeService,
		logger:       logger,
	}
}

// CreateTradeRequest represents the request body for proposing a trade
type CreateTradeRequest struct {
	DeciderID        string   `json:"deciderId" validate:"required"`
	DeciderBookIDs   []string `json:"deciderBookIds" validate:"required,min=1"`
	RequesterBookIDs []string `json:"requesterBookIds" validate:"required,min=1"`
}

// CreateTrade handles POST /trades
func (h *TradeHandler) CreateTrade(w http.ResponseWriter, r *http.Request) {
	userCtx, err := auth.GetUserFromContext(r.Context())
	if err != nil {
		common.RespondError(w, http.StatusUnauthorized, common.StandardErrorCodes.Unauthorized, "Unauthorized")
		return
	}

	var req CreateTradeRequest
	if err := common.ParseJSONBody(r, &req, maxBodyBytes); err != nil {
		common.RespondError(w, http.StatusBadRequest, common.StandardErrorCodes.BadRequest, "Invalid request body: "+err.Error())
		return
	}
	if err := utils.ValidateStruct(req); err != nil {
		common.RespondError(w, http.StatusBadRequest, common.StandardErrorCodes.ValidationError, err.Error())
		return
	}

	trade, err := h.tradeService.CreateTrade(r.Context(), usecase.CreateTradeInput{
		RequesterID:      userCtx.UserID,
		DeciderID:        req.DeciderID,
		DeciderBookIDs:   req.DeciderBookIDs,
		RequesterBookIDs: req.RequesterBookIDs,
	})
	if err != nil {
		respondAppError(w, err)
		return
	}

	common.RespondJSON(w, http.StatusCreated, newTradeDto(trade))
}

// GetTrade handles GET /trades/{tradeID}
func (h *TradeHandler) GetTrade(w http.ResponseWriter, r *http.Request) {
	tradeID := chi.URLParam(r, "tradeID")

	trade, err := h.tradeService.FindTradeByID(r.Context(), tradeID)
	if err != nil {
		respondAppError(w, err)
		return
	}

	common.RespondJSON(w, http.StatusOK, newTradeDto(trade))
}

// ListTrades handles GET /trades. The filters are mutually exclusive;
// with no filter it returns the recent accepted trades.
func (h *TradeHandler) ListTrades(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	var err error
	var trades interface{}

	switch {
	case r.URL.Query().Get("deciderId") != "":
		found, ferr := h.tradeService.FindTradesByDecider(ctx, r.URL.Query().Get("deciderId"))
		trades, err = newTradeDtos(found), ferr
	case r.URL.Query().Get("requesterId") != "":
		found, ferr := h.tradeService.FindTradesByRequester(ctx, r.URL.Query().Get("requesterId"))
		trades, err = newTradeDtos(found), ferr
	case r.URL.Query().Get("bookId") != "":
		found, ferr := h.tradeService.FindTradesByBook(ctx, r.URL.Query().Get("bookId"))
		trades, err = newTradeDtos(found), ferr
	default:
		found, ferr := h.tradeService.FindAcceptedTrades(ctx)
		trades, err = newTradeDtos(found), ferr
	}

	if err != nil {
		respondAppError(w, err)
		return
	}

	common.RespondJSON(w, http.StatusOK, trades)
}

// AcceptTrade handles POST /trades/{tradeID}/accept
func (h *TradeHandler) AcceptTrade(w http.ResponseWriter, r *http.Request) {
	userCtx, err := auth.GetUserFromContext(r.Context())
	if err != nil {
		common.RespondError(w, http.StatusUnauthorized, common.StandardErrorCodes.Unauthorized, "Unauthorized")
		return
	}

	tradeID := chi.URLParam(r, "tradeID")

	trade, err := h.tradeService.AcceptTrade(r.Context(), tradeID, userCtx.UserID)
	if err != nil {
		respondAppError(w, err)
		return
	}

	common.RespondJSON(w, http.StatusOK, newTradeDto(trade))
}

// RejectTrade handles POST /trades/{tradeID}/reject
func (h *TradeHandler) RejectTrade(w http.ResponseWriter, r *http.Request) {
	userCtx, err := auth.GetUserFromContext(r.Context())
	if err != nil {
		common.RespondError(w, http.StatusUnauthorized, common.StandardErrorCodes.Unauthorized, "Unauthorized")
		return
	}

	tradeID := chi.URLParam(r, "tradeID")

	trade, err := h.tradeService.RejectTrade(r.Context(), tradeID, userCtx.UserID)
	if err != nil {
		respondAppError(w, err)
		return
	}

	common.RespondJSON(w, http.StatusOK, newTradeDto(trade))
}

// RemoveTrade handles DELETE /trades/{tradeID}
func (h *TradeHandler) RemoveTrade(w http.ResponseWriter, r *http.Request) {
	userCtx, err := auth.GetUserFromContext(r.Context())
	if err != nil {
		common.RespondError(w, http.StatusUnauthorized, common.StandardErrorCodes.Unauthorized, "Unauthorized")
		return
	}

	tradeID := chi.URLParam(r, "tradeID")

	if err := h.tradeService.RemoveTrade(r.Context(), tradeID, userCtx.UserID); err != nil {
		respondAppError(w, err)
		return
	}

	common.RespondJSON(w, http.StatusOK, map[string]string{"message": "trade removed"})
}
