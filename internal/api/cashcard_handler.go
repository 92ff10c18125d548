package api

import (
	"fmt"
	"log/slog"
	"net/http"

	"github.com/maxsplawski/cashcard-rest-api/internal/api/shared"
	"github.com/maxsplawski/cashcard-rest-api/internal/domain"
	"github.com/maxsplawski/cashcard-rest-api/internal/platform/logger"
	"github.com/maxsplawski/cashcard-rest-api/internal/service"
)

// CashCardHandler handles cash card HTTP requests.
type CashCardHandler struct {
	cardService service.CashCardService
	logger      *slog.Logger
}

// NewCashCardHandler creates a new CashCardHandler.
func NewCashCardHandler(cardService service.CashCardService, logger *slog.Logger) *CashCardHandler {
	if logger == nil {
		// ALLOW-PANIC: Constructor enforcing required dependency
		panic("logger cannot be nil for CashCardHandler")
	}

	return &CashCardHandler{
		cardService: cardService,
		logger:      logger.With(slog.String("component", "cashcard_handler")),
	}
}

// List handles GET /cashcards requests.
// It returns one page of the caller's cards, honoring the page, size,
// and sort query parameters.
func (h *CashCardHandler) List(w http.ResponseWriter, r *http.Request) {
	log := logger.FromContextOrDefault(r.Context(), h.logger)

	owner, ok := getOwnerFromContext(r)
	if !ok {
		log.Warn("owner identity not found in request context")
		shared.RespondWithError(w, r, http.StatusUnauthorized, "Owner identity not found")
		return
	}

	page, err := parsePageRequest(r)
	if err != nil {
		log.Warn("invalid pagination parameters",
			slog.String("error", err.Error()),
			slog.String("query", r.URL.RawQuery))
		shared.RespondWithError(w, r, http.StatusBadRequest, err.Error())
		return
	}

	cards, err := h.cardService.List(r.Context(), owner, page)
	if err != nil {
		shared.RespondWithErrorAndLog(w, r, MapErrorToStatusCode(err),
			"Failed to list cash cards", err)
		return
	}

	response := make([]CashCardResponse, 0, len(cards))
	for _, card := range cards {
		response = append(response, cardToResponse(card))
	}

	log.Debug("listed cash cards",
		slog.String("owner", owner),
		slog.Int("count", len(response)))
	shared.RespondWithJSON(w, r, http.StatusOK, response)
}

// GetByID handles GET /cashcards/{id} requests.
// A card that does not exist and a card owned by someone else produce
// the same 404 response.
func (h *CashCardHandler) GetByID(w http.ResponseWriter, r *http.Request) {
	log := logger.FromContextOrDefault(r.Context(), h.logger)

	owner, ok := getOwnerFromContext(r)
	if !ok {
		log.Warn("owner identity not found in request context")
		shared.RespondWithError(w, r, http.StatusUnauthorized, "Owner identity not found")
		return
	}

	id, err := getPathCardID(r)
	if err != nil {
		log.Warn("invalid card ID in path", slog.String("error", err.Error()))
		shared.RespondWithError(w, r, http.StatusBadRequest, err.Error())
		return
	}

	card, err := h.cardService.GetByID(r.Context(), id, owner)
	if err != nil {
		shared.RespondWithErrorAndLog(w, r, MapErrorToStatusCode(err),
			GetSafeErrorMessage(err), err)
		return
	}

	shared.RespondWithJSON(w, r, http.StatusOK, cardToResponse(card))
}

// Create handles POST /cashcards requests.
// The caller supplies an amount; any id or owner in the body is ignored
// and the authenticated identity is pinned as the owner. On success the
// response is 201 with a Location header and no body.
func (h *CashCardHandler) Create(w http.ResponseWriter, r *http.Request) {
	log := logger.FromContextOrDefault(r.Context(), h.logger)

	owner, ok := getOwnerFromContext(r)
	if !ok {
		log.Warn("owner identity not found in request context")
		shared.RespondWithError(w, r, http.StatusUnauthorized, "Owner identity not found")
		return
	}

	var req CashCardRequest
	if err := shared.DecodeJSON(r, &req); err != nil {
		log.Warn("invalid request format",
			slog.String("error", err.Error()),
			slog.String("owner", owner))
		shared.RespondWithError(w, r, http.StatusBadRequest, "Invalid request format")
		return
	}

	card, err := h.cardService.Create(r.Context(), req.Amount, owner)
	if err != nil {
		shared.RespondWithErrorAndLog(w, r, MapErrorToStatusCode(err),
			"Failed to create cash card", err)
		return
	}

	log.Debug("cash card created",
		slog.Int64("card_id", card.ID),
		slog.String("owner", owner))
	w.Header().Set("Location", fmt.Sprintf("/cashcards/%d", card.ID))
	w.WriteHeader(http.StatusCreated)
}

// Update handles PUT /cashcards/{id} requests.
// The body's amount fully replaces the stored amount; id and owner are
// unchanged. Success is 204 with no body, absence (or foreign
// ownership) is 404.
func (h *CashCardHandler) Update(w http.ResponseWriter, r *http.Request) {
	log := logger.FromContextOrDefault(r.Context(), h.logger)

	owner, ok := getOwnerFromContext(r)
	if !ok {
		log.Warn("owner identity not found in request context")
		shared.RespondWithError(w, r, http.StatusUnauthorized, "Owner identity not found")
		return
	}

	id, err := getPathCardID(r)
	if err != nil {
		log.Warn("invalid card ID in path", slog.String("error", err.Error()))
		shared.RespondWithError(w, r, http.StatusBadRequest, err.Error())
		return
	}

	var req CashCardRequest
	if err := shared.DecodeJSON(r, &req); err != nil {
		log.Warn("invalid request format",
			slog.String("error", err.Error()),
			slog.Int64("card_id", id))
		shared.RespondWithError(w, r, http.StatusBadRequest, "Invalid request format")
		return
	}

	if err := h.cardService.Update(r.Context(), id, owner, req.Amount); err != nil {
		shared.RespondWithErrorAndLog(w, r, MapErrorToStatusCode(err),
			GetSafeErrorMessage(err), err)
		return
	}

	log.Debug("cash card updated",
		slog.Int64("card_id", id),
		slog.String("owner", owner))
	w.WriteHeader(http.StatusNoContent)
}

// Delete handles DELETE /cashcards/{id} requests.
// Success is 204 with no body; absence or foreign ownership is 404.
func (h *CashCardHandler) Delete(w http.ResponseWriter, r *http.Request) {
	log := logger.FromContextOrDefault(r.Context(), h.logger)

	owner, ok := getOwnerFromContext(r)
	if !ok {
		log.Warn("owner identity not found in request context")
		shared.RespondWithError(w, r, http.StatusUnauthorized, "Owner identity not found")
		return
	}

	id, err := getPathCardID(r)
	if err != nil {
		log.Warn("invalid card ID in path", slog.String("error", err.Error()))
		shared.RespondWithError(w, r, http.StatusBadRequest, err.Error())
		return
	}

	if err := h.cardService.Delete(r.Context(), id, owner); err != nil {
		shared.RespondWithErrorAndLog(w, r, MapErrorToStatusCode(err),
			GetSafeErrorMessage(err), err)
		return
	}

	log.Debug("cash card deleted",
		slog.Int64("card_id", id),
		slog.String("owner", owner))
	w.WriteHeader(http.StatusNoContent)
}

// cardToResponse converts a domain.CashCard to a CashCardResponse.
func cardToResponse(card *domain.CashCard) CashCardResponse {
	return CashCardResponse{
		ID:     card.ID,
		Amount: card.Amount,
		Owner:  card.Owner,
	}
}
