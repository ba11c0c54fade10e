package http

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"strings"

	"github.com/DRSN-tech/catalog-service/pkg/e"
	"github.com/shopspring/decimal"
)

type ErrorResponse struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
}

func NewErrorResponse(code int, message string) *ErrorResponse {
	return &ErrorResponse{
		Code:    code,
		Message: message,
	}
}

var badRequestErrs = []error{
	e.ErrStatusBadRequest,
	e.ErrProductNameRequired,
	e.ErrInvalidID,
	e.ErrInvalidPrice,
	e.ErrPricePrecision,
	e.ErrInvalidPriceRange,
	e.ErrInvalidPagination,
	e.ErrInvalidStock,
	e.ErrEmptyBatch,
}

func ToHTTPResponse(err error) (int, string) {
	if errors.Is(err, e.ErrProductNotFound) {
		return http.StatusNotFound, e.ErrProductNotFound.Error()
	}

	for _, sentinel := range badRequestErrs {
		if errors.Is(err, sentinel) {
			return http.StatusBadRequest, sentinel.Error()
		}
	}

	if errors.Is(err, e.ErrPoolClosed) || errors.Is(err, e.ErrPoolSaturated) {
		return http.StatusServiceUnavailable, e.ErrPoolSaturated.Error()
	}

	return http.StatusInternalServerError, e.ErrInternalServerError.Error()
}

func WriteError(w http.ResponseWriter, err error) {
	code, msg := ToHTTPResponse(err)
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	json.NewEncoder(w).Encode(NewErrorResponse(code, msg))
}

func WriteSuccess(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(data)
}

// parseID parses a positive int64 path parameter.
func parseID(s string) (int64, error) {
	id, err := strconv.ParseInt(s, 10, 64)
	if err != nil || id <= 0 {
		return 0, e.ErrInvalidID
	}

	return id, nil
}

// parseIntQuery parses an optional non-negative integer query parameter.
func parseIntQuery(s string, defaultValue int) (int, error) {
	if s == "" {
		return defaultValue, nil
	}

	v, err := strconv.Atoi(s)
	if err != nil || v < 0 {
		return 0, e.ErrInvalidPagination
	}

	return v, nil
}

// parseNonNegativeInt parses a required non-negative integer path parameter.
func parseNonNegativeInt(s string) (int, error) {
	v, err := strconv.Atoi(s)
	if err != nil || v < 0 {
		return 0, e.ErrStatusBadRequest
	}

	return v, nil
}

// parsePrice parses a decimal price like "599.99" or "600".
// Returns error if:
// - invalid format
// - negative value
// - more than 2 decimal places
func parsePrice(s string) (decimal.Decimal, error) {
	if strings.TrimSpace(s) == "" {
		return decimal.Zero, e.ErrInvalidPrice
	}

	d, err := decimal.NewFromString(s)
	if err != nil {
		return decimal.Zero, e.ErrInvalidPrice
	}

	// Reject negative
	if d.LessThan(decimal.Zero) {
		return decimal.Zero, e.ErrInvalidPrice
	}

	// Check decimal places
	if d.Exponent() < -2 {
		return decimal.Zero, e.ErrPricePrecision
	}

	return d, nil
}
