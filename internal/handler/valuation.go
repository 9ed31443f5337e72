package handler

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"reflect"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"

	"vehicle-valuation-api/internal/model"
)

// Valuator produces a valuation for a validated query.
type Valuator interface {
	Valuate(ctx context.Context, q model.VehicleQuery) (*model.ValuationRecord, error)
}

type ValuationHandler struct {
	svc           Valuator
	validate      *validator.Validate
	defaultMarket string
	logger        *slog.Logger
}

func NewValuationHandler(svc Valuator, defaultMarket string, logger *slog.Logger) *ValuationHandler {
	return &ValuationHandler{
		svc:           svc,
		validate:      newValidator(),
		defaultMarket: defaultMarket,
		logger:        logger,
	}
}

// Create handles POST /api/valuation. Invalid input is rejected before the
// LLM is called.
func (h *ValuationHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req model.ValuationRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, h.logger, http.StatusBadRequest, model.ErrorResponse{
			Error: "Invalid JSON in request body",
		})
		return
	}

	req.Sanitize()
	if err := h.validate.Struct(req); err != nil {
		h.logger.Info("rejected valuation request", "error", err)
		writeJSON(w, h.logger, http.StatusBadRequest, model.ErrorResponse{
			Error: validationMessage(err),
		})
		return
	}

	q := req.Query(h.defaultMarket)
	h.logger.Info("processing valuation request", "make", q.Make, "model", q.Model)

	record, err := h.svc.Valuate(r.Context(), q)
	if err != nil {
		writeJSON(w, h.logger, http.StatusInternalServerError, model.ErrorResponse{
			Error:        "Failed to calculate valuation. Please try again.",
			ErrorDetails: err.Error(),
		})
		return
	}

	writeJSON(w, h.logger, http.StatusOK, record)
}

// newValidator reports fields by their JSON names and adds the "notfuture"
// rule for model years.
func newValidator() *validator.Validate {
	v := validator.New()

	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})

	_ = v.RegisterValidation("notfuture", func(fl validator.FieldLevel) bool {
		return fl.Field().Int() <= int64(time.Now().Year())
	})

	return v
}

func validationMessage(err error) string {
	var fieldErrs validator.ValidationErrors
	if !errors.As(err, &fieldErrs) {
		return "Invalid vehicle information"
	}

	var missing, invalid []string
	for _, fe := range fieldErrs {
		if fe.Tag() == "required" {
			missing = append(missing, fe.Field())
		} else {
			invalid = append(invalid, fe.Field())
		}
	}

	if len(missing) > 0 {
		return "Missing required vehicle information: " + strings.Join(missing, ", ")
	}
	return "Invalid vehicle information: " + strings.Join(invalid, ", ")
}

// writeJSON encodes v before writing the status, so a value that cannot be
// encoded becomes a 500 instead of an empty answer.
func writeJSON(w http.ResponseWriter, logger *slog.Logger, status int, v any) {
	body, err := json.Marshal(v)
	if err != nil {
		logger.Error("failed to encode response", "status", status, "error", err)
		status = http.StatusInternalServerError
		body, _ = json.Marshal(model.ErrorResponse{Error: "Failed to encode response"})
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if _, err := w.Write(body); err != nil {
		logger.Warn("failed to write response", "error", err)
	}
}
