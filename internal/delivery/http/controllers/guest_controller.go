package controllers

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strconv"
	"strings"

	"guestgate/internal/delivery/http/helpers"
	"guestgate/internal/domain"
)

// CreateGuestRequest is the request body for POST /guests.
type CreateGuestRequest struct {
	Name    string `json:"name"`
	Email   string `json:"email"`
	EventID int64  `json:"event_id"`
}

// Validate implements helpers.Validator. Email syntax is checked by the
// guest service; the boundary checks only required-ness.
func (c CreateGuestRequest) Validate() []string {
	var errs []string
	if strings.TrimSpace(c.Name) == "" {
		errs = append(errs, "name is required")
	}
	if strings.TrimSpace(c.Email) == "" {
		errs = append(errs, "email is required")
	}
	if c.EventID <= 0 {
		errs = append(errs, "event_id is required")
	}
	return errs
}

// GuestSuccessResponse is the success response envelope for guest endpoints.
type GuestSuccessResponse struct {
	Data  *domain.Guest     `json:"data"`
	Error *helpers.APIError `json:"error"`
}

// ListGuestsSuccessResponse is the success response envelope for GET /guests (200).
type ListGuestsSuccessResponse struct {
	Data  []*domain.Guest   `json:"data"`
	Error *helpers.APIError `json:"error"`
}

// ImportGuestsSuccessResponse is the success response envelope for POST /guests/import (200).
type ImportGuestsSuccessResponse struct {
	Data  *domain.ImportResult `json:"data"`
	Error *helpers.APIError    `json:"error"`
}

type GuestController struct {
	Logger  *slog.Logger
	Service domain.GuestService
}

func NewGuestController(logger *slog.Logger, svc domain.GuestService) *GuestController {
	return &GuestController{
		Logger:  logger,
		Service: svc,
	}
}

// CreateGuest godoc
// @Summary Register a guest
// @Description Registers a guest under an event, issues the access token, and best-effort emails the QR pass. A failed email never fails the registration; sent_at stays unset.
// @Tags guests
// @Accept json
// @Produce json
// @Param guest body CreateGuestRequest true "Guest data"
// @Success 201 {object} controllers.GuestSuccessResponse "data contains the created guest including its token"
// @Failure 400 {object} helpers.APIResponse "error.code: bad_request"
// @Failure 404 {object} helpers.APIResponse "error.code: not_found (unknown event)"
// @Failure 500 {object} helpers.APIResponse "error.code: internal_error"
// @Router /guests [post]
func (c *GuestController) CreateGuest(w http.ResponseWriter, r *http.Request) {
	var req CreateGuestRequest
	if !helpers.DecodeAndValidate(w, r, &req) {
		return
	}
	guest, err := c.Service.CreateGuest(r.Context(), req.EventID, req.Name, req.Email)
	if err != nil {
		c.writeGuestError(w, r, err)
		return
	}
	helpers.WriteJSONSuccess(w, http.StatusCreated, guest)
}

// ImportGuests godoc
// @Summary Bulk import guests from CSV
// @Description Imports guests from a multipart CSV file with name and email columns. Rows missing either column are skipped; rows failing on insert are counted as failed. Both counts are returned alongside the created guests.
// @Tags guests
// @Accept multipart/form-data
// @Produce json
// @Param event_id query int true "Event ID"
// @Param file formData file true "CSV file with name,email header"
// @Success 200 {object} controllers.ImportGuestsSuccessResponse
// @Failure 400 {object} helpers.APIResponse "error.code: bad_request"
// @Failure 404 {object} helpers.APIResponse "error.code: not_found (unknown event)"
// @Failure 500 {object} helpers.APIResponse "error.code: internal_error"
// @Router /guests/import [post]
func (c *GuestController) ImportGuests(w http.ResponseWriter, r *http.Request) {
	eventID, err := strconv.ParseInt(r.URL.Query().Get("event_id"), 10, 64)
	if err != nil || eventID <= 0 {
		helpers.WriteJSONError(w, http.StatusBadRequest, helpers.ErrCodeBadRequest, "invalid event_id")
		return
	}
	file, _, err := r.FormFile("file")
	if err != nil {
		helpers.WriteJSONError(w, http.StatusBadRequest, helpers.ErrCodeBadRequest, "missing file")
		return
	}
	defer file.Close()

	rows, err := parseGuestCSV(file)
	if err != nil {
		helpers.WriteJSONError(w, http.StatusBadRequest, helpers.ErrCodeBadRequest, err.Error())
		return
	}

	result, err := c.Service.ImportGuests(r.Context(), eventID, rows)
	if err != nil {
		c.writeGuestError(w, r, err)
		return
	}
	helpers.WriteJSONSuccess(w, http.StatusOK, result)
}

// parseGuestCSV reads CSV input with a header row and maps the name and
// email columns. Short rows become rows with blank fields, which the
// service skips by policy.
func parseGuestCSV(f io.Reader) ([]domain.ImportRow, error) {
	reader := csv.NewReader(f)
	reader.FieldsPerRecord = -1
	header, err := reader.Read()
	if err != nil {
		return nil, fmt.Errorf("read csv header: %w", err)
	}
	nameCol, emailCol := -1, -1
	for i, col := range header {
		switch strings.ToLower(strings.TrimSpace(col)) {
		case "name":
			nameCol = i
		case "email":
			emailCol = i
		}
	}
	if nameCol < 0 || emailCol < 0 {
		return nil, fmt.Errorf("csv must have name and email columns")
	}

	var rows []domain.ImportRow
	for {
		record, err := reader.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("read csv row: %w", err)
		}
		var row domain.ImportRow
		if nameCol < len(record) {
			row.Name = record[nameCol]
		}
		if emailCol < len(record) {
			row.Email = record[emailCol]
		}
		rows = append(rows, row)
	}
	return rows, nil
}

// ListGuests godoc
// @Summary List guests
// @Description Returns guests most recently created first, optionally filtered by event.
// @Tags guests
// @Produce json
// @Param event_id query int false "Filter by event ID"
// @Success 200 {object} controllers.ListGuestsSuccessResponse
// @Failure 400 {object} helpers.APIResponse "error.code: bad_request"
// @Failure 500 {object} helpers.APIResponse "error.code: internal_error"
// @Router /guests [get]
func (c *GuestController) ListGuests(w http.ResponseWriter, r *http.Request) {
	var eventID *int64
	if s := r.URL.Query().Get("event_id"); s != "" {
		v, err := strconv.ParseInt(s, 10, 64)
		if err != nil || v <= 0 {
			helpers.WriteJSONError(w, http.StatusBadRequest, helpers.ErrCodeBadRequest, "invalid event_id")
			return
		}
		eventID = &v
	}
	guests, err := c.Service.ListGuests(r.Context(), eventID)
	if err != nil {
		c.Logger.ErrorContext(r.Context(), "request failed", "path", r.URL.Path, "method", r.Method, "err", err)
		helpers.WriteJSONError(w, http.StatusInternalServerError, helpers.ErrCodeInternalError, err.Error())
		return
	}
	helpers.WriteJSONSuccess(w, http.StatusOK, guests)
}

// ResendPass godoc
// @Summary Resend a guest's QR pass
// @Description Regenerates the QR pass from the stored token and emails it again. Unlike registration, a dispatch failure is reported to the caller.
// @Tags guests
// @Produce json
// @Param guestID path int true "Guest ID"
// @Success 200 {object} controllers.GuestSuccessResponse "data contains the guest with refreshed sent_at"
// @Failure 400 {object} helpers.APIResponse "error.code: bad_request"
// @Failure 404 {object} helpers.APIResponse "error.code: not_found (unknown guest)"
// @Failure 502 {object} helpers.APIResponse "error.code: dispatch_failed (transport error)"
// @Failure 503 {object} helpers.APIResponse "error.code: misconfigured"
// @Failure 500 {object} helpers.APIResponse "error.code: internal_error"
// @Router /guests/{guestID}/resend [post]
func (c *GuestController) ResendPass(w http.ResponseWriter, r *http.Request) {
	guestID, ok := parseGuestID(w, r.PathValue("guestID"))
	if !ok {
		return
	}
	guest, err := c.Service.ResendPass(r.Context(), guestID)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			helpers.WriteJSONError(w, http.StatusNotFound, helpers.ErrCodeNotFound, "guest not found")
			return
		}
		if errors.Is(err, domain.ErrMisconfigured) {
			helpers.WriteJSONError(w, http.StatusServiceUnavailable, helpers.ErrCodeMisconfigured, "mail transport not configured")
			return
		}
		if errors.Is(err, domain.ErrDispatchFailed) {
			c.Logger.ErrorContext(r.Context(), "pass resend failed", "path", r.URL.Path, "guest_id", guestID, "err", err)
			helpers.WriteJSONError(w, http.StatusBadGateway, helpers.ErrCodeDispatchFailed, err.Error())
			return
		}
		c.Logger.ErrorContext(r.Context(), "request failed", "path", r.URL.Path, "method", r.Method, "err", err)
		helpers.WriteJSONError(w, http.StatusInternalServerError, helpers.ErrCodeInternalError, err.Error())
		return
	}
	helpers.WriteJSONSuccess(w, http.StatusOK, guest)
}

// PassPNG godoc
// @Summary Fetch a guest's QR pass image
// @Description Renders the guest's pass as a PNG. The image is regenerated deterministically on every request; nothing is persisted.
// @Tags guests
// @Produce png
// @Param guestID path int true "Guest ID"
// @Success 200 {file} binary "PNG image"
// @Failure 400 {object} helpers.APIResponse "error.code: bad_request"
// @Failure 404 {object} helpers.APIResponse "error.code: not_found (unknown guest)"
// @Router /guests/qr/{guestID}.png [get]
func (c *GuestController) PassPNG(w http.ResponseWriter, r *http.Request) {
	name := r.PathValue("file")
	idStr, found := strings.CutSuffix(name, ".png")
	if !found {
		helpers.WriteJSONError(w, http.StatusNotFound, helpers.ErrCodeNotFound, "not found")
		return
	}
	guestID, ok := parseGuestID(w, idStr)
	if !ok {
		return
	}
	png, err := c.Service.PassPNG(r.Context(), guestID)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			helpers.WriteJSONError(w, http.StatusNotFound, helpers.ErrCodeNotFound, "guest not found")
			return
		}
		c.Logger.ErrorContext(r.Context(), "request failed", "path", r.URL.Path, "method", r.Method, "err", err)
		helpers.WriteJSONError(w, http.StatusInternalServerError, helpers.ErrCodeInternalError, err.Error())
		return
	}
	w.Header().Set("Content-Type", "image/png")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(png)
}

func (c *GuestController) writeGuestError(w http.ResponseWriter, r *http.Request, err error) {
	if errors.Is(err, domain.ErrNotFound) {
		helpers.WriteJSONError(w, http.StatusNotFound, helpers.ErrCodeNotFound, "event not found")
		return
	}
	if errors.Is(err, domain.ErrInvalidInput) {
		helpers.WriteJSONError(w, http.StatusBadRequest, helpers.ErrCodeBadRequest, "invalid name or email")
		return
	}
	c.Logger.ErrorContext(r.Context(), "request failed", "path", r.URL.Path, "method", r.Method, "err", err)
	helpers.WriteJSONError(w, http.StatusInternalServerError, helpers.ErrCodeInternalError, err.Error())
}

func parseGuestID(w http.ResponseWriter, s string) (int64, bool) {
	id, err := strconv.ParseInt(s, 10, 64)
	if err != nil || id <= 0 {
		helpers.WriteJSONError(w, http.StatusBadRequest, helpers.ErrCodeBadRequest, "invalid guestID")
		return 0, false
	}
	return id, true
}
