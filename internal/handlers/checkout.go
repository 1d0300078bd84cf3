package handlers

import (
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/gorilla/sessions"

	"popup-registration-platform/internal/middleware"
	"popup-registration-platform/internal/models"
	"popup-registration-platform/internal/services"
)

const maxBodyBytes = 1 << 20

// CheckoutHandler handles catalog, quote and checkout requests
type CheckoutHandler struct {
	checkoutService services.CheckoutServiceInterface
	sessionStore    sessions.Store
}

// NewCheckoutHandler creates a new checkout handler
func NewCheckoutHandler(checkoutService services.CheckoutServiceInterface, sessionStore sessions.Store) *CheckoutHandler {
	return &CheckoutHandler{
		checkoutService: checkoutService,
		sessionStore:    sessionStore,
	}
}

// SelectionRequest is the client's cart for one popup
type SelectionRequest struct {
	Attendees  []models.AttendeeSelection `json:"attendees"`
	CouponCode string                     `json:"coupon_code,omitempty"`
	GroupID    *int                       `json:"group_id,omitempty"`
	Editing    bool                       `json:"editing"`
}

func (s SelectionRequest) quoteRequest(popupID int) *services.QuoteRequest {
	return &services.QuoteRequest{
		PopupID:    popupID,
		Attendees:  s.Attendees,
		CouponCode: s.CouponCode,
		GroupID:    s.GroupID,
		Editing:    s.Editing,
	}
}

// CheckoutRequest pays for the given selection, or the one saved in the session
type CheckoutRequest struct {
	Selection *SelectionRequest           `json:"selection,omitempty"`
	Billing   services.PaymentBillingInfo `json:"billing"`
}

// CatalogResponse lists the passes of a popup
type CatalogResponse struct {
	PopupID int            `json:"popup_id"`
	Passes  []*models.Pass `json:"passes"`
}

// Catalog handles GET /api/popups/{popupID}/passes
func (h *CheckoutHandler) Catalog(w http.ResponseWriter, r *http.Request) {
	popupID, ok := popupIDParam(w, r)
	if !ok {
		return
	}

	passes, err := h.checkoutService.Catalog(r.Context(), popupID)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}

	writeJSONStatus(w, http.StatusOK, CatalogResponse{PopupID: popupID, Passes: passes})
}

// Quote handles POST /api/popups/{popupID}/quote
func (h *CheckoutHandler) Quote(w http.ResponseWriter, r *http.Request) {
	popupID, ok := popupIDParam(w, r)
	if !ok {
		return
	}

	var req SelectionRequest
	if !decodeBody(w, r, &req) {
		return
	}

	quote, err := h.checkoutService.Quote(r.Context(), req.quoteRequest(popupID))
	if err != nil {
		writeServiceError(w, r, err)
		return
	}

	writeJSONStatus(w, http.StatusOK, quote)
}

// SaveSelection handles PUT /api/popups/{popupID}/selection
func (h *CheckoutHandler) SaveSelection(w http.ResponseWriter, r *http.Request) {
	popupID, ok := popupIDParam(w, r)
	if !ok {
		return
	}

	var req SelectionRequest
	if !decodeBody(w, r, &req) {
		return
	}

	payload, err := json.Marshal(req)
	if err != nil {
		middleware.WriteError(w, r, http.StatusInternalServerError, "Failed to encode selection")
		return
	}

	session := h.checkoutSession(r)
	session.Values[selectionKey(popupID)] = string(payload)
	if err := session.Save(r, w); err != nil {
		log.Printf("Failed to save checkout session: %v", err)
		middleware.WriteError(w, r, http.StatusInternalServerError, "Failed to save selection")
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// Summary handles GET /api/popups/{popupID}/summary
func (h *CheckoutHandler) Summary(w http.ResponseWriter, r *http.Request) {
	popupID, ok := popupIDParam(w, r)
	if !ok {
		return
	}

	selection, found := h.savedSelection(r, popupID)
	if !found {
		middleware.WriteError(w, r, http.StatusNotFound, "No selection saved for this popup")
		return
	}

	quote, err := h.checkoutService.Quote(r.Context(), selection.quoteRequest(popupID))
	if err != nil {
		writeServiceError(w, r, err)
		return
	}

	writeJSONStatus(w, http.StatusOK, quote)
}

// Checkout handles POST /api/popups/{popupID}/checkout
func (h *CheckoutHandler) Checkout(w http.ResponseWriter, r *http.Request) {
	popupID, ok := popupIDParam(w, r)
	if !ok {
		return
	}

	var req CheckoutRequest
	if !decodeBody(w, r, &req) {
		return
	}

	selection := req.Selection
	if selection == nil {
		saved, found := h.savedSelection(r, popupID)
		if !found {
			middleware.WriteError(w, r, http.StatusBadRequest, "No selection to check out")
			return
		}
		selection = saved
	}

	result, err := h.checkoutService.Checkout(r.Context(), selection.quoteRequest(popupID), req.Billing)
	if err != nil {
		if errors.Is(err, models.ErrPaymentRejected) && result != nil {
			writeJSONStatus(w, http.StatusPaymentRequired, result)
			return
		}
		writeServiceError(w, r, err)
		return
	}

	session := h.checkoutSession(r)
	delete(session.Values, selectionKey(popupID))
	if err := session.Save(r, w); err != nil {
		log.Printf("Failed to clear checkout session after payment %s: %v", result.Payment.PaymentID, err)
	}

	writeJSONStatus(w, http.StatusCreated, result)
}

// checkoutSession returns the request's checkout session, starting a fresh one
// when the cookie cannot be decoded
func (h *CheckoutHandler) checkoutSession(r *http.Request) *sessions.Session {
	session, err := h.sessionStore.Get(r, middleware.CheckoutSessionName)
	if err != nil {
		log.Printf("[%s] Unreadable checkout session, starting a new one: %v", middleware.GetRequestID(r.Context()), err)
	}
	if session == nil {
		session = sessions.NewSession(h.sessionStore, middleware.CheckoutSessionName)
		session.Options = &sessions.Options{Path: "/"}
	}
	return session
}

func (h *CheckoutHandler) savedSelection(r *http.Request, popupID int) (*SelectionRequest, bool) {
	session := h.checkoutSession(r)

	raw, ok := session.Values[selectionKey(popupID)].(string)
	if !ok {
		return nil, false
	}

	var selection SelectionRequest
	if err := json.Unmarshal([]byte(raw), &selection); err != nil {
		log.Printf("Discarding unreadable selection for popup %d: %v", popupID, err)
		return nil, false
	}
	return &selection, true
}

func selectionKey(popupID int) string {
	return fmt.Sprintf("selection:%d", popupID)
}

func popupIDParam(w http.ResponseWriter, r *http.Request) (int, bool) {
	popupID, err := strconv.Atoi(chi.URLParam(r, "popupID"))
	if err != nil || popupID <= 0 {
		middleware.WriteError(w, r, http.StatusBadRequest, "Invalid popup ID")
		return 0, false
	}
	return popupID, true
}

func decodeBody(w http.ResponseWriter, r *http.Request, dst interface{}) bool {
	r.Body = http.MaxBytesReader(w, r.Body, maxBodyBytes)
	decoder := json.NewDecoder(r.Body)
	decoder.DisallowUnknownFields()
	if err := decoder.Decode(dst); err != nil {
		middleware.WriteError(w, r, http.StatusBadRequest, fmt.Sprintf("Invalid request body: %v", err))
		return false
	}
	return true
}

// statusForError maps service errors onto HTTP status codes
func statusForError(err error) int {
	switch {
	case errors.Is(err, models.ErrInputState),
		errors.Is(err, models.ErrInvalidInput),
		errors.Is(err, models.ErrCouponInactive):
		return http.StatusBadRequest
	case errors.Is(err, models.ErrPopupNotFound),
		errors.Is(err, models.ErrCouponNotFound):
		return http.StatusNotFound
	case errors.Is(err, models.ErrConfiguration):
		return http.StatusUnprocessableEntity
	case errors.Is(err, models.ErrPaymentRejected):
		return http.StatusPaymentRequired
	default:
		return http.StatusInternalServerError
	}
}

func writeServiceError(w http.ResponseWriter, r *http.Request, err error) {
	status := statusForError(err)
	if status == http.StatusInternalServerError {
		log.Printf("[%s] %s %s failed: %v", middleware.GetRequestID(r.Context()), r.Method, r.URL.Path, err)
		middleware.WriteError(w, r, status, "Internal Server Error")
		return
	}
	middleware.WriteError(w, r, status, err.Error())
}

// writeJSONStatus writes a JSON response with the given status
func writeJSONStatus(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(data); err != nil {
		log.Printf("Failed to write JSON response: %v", err)
	}
}
