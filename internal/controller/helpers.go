package controller

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/go-playground/validator/v10"
	"github.com/rs/zerolog/log"

	domainErrors "github.com/vzabara/nuvei-gateway/internal/domain/errors"
)

var validate = validator.New()

type errorMapping struct {
	err    error
	status int
	code   string
}

var errorMappings = []errorMapping{
	{domainErrors.ErrTransactionNotFound, http.StatusNotFound, "not_found"},
	{domainErrors.ErrMissingCredentials, http.StatusServiceUnavailable, "credentials_not_configured"},
	{domainErrors.ErrGatewayUnreachable, http.StatusBadGateway, "gateway_unreachable"},
	{domainErrors.ErrDuplicateTransaction, http.StatusConflict, "duplicate_transaction"},
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, err error) {
	resp := ErrorResponse{Error: err.Error()}

	var validationErr *domainErrors.ValidationError
	if errors.As(err, &validationErr) {
		resp.Code = "validation_error"
		writeJSON(w, http.StatusBadRequest, resp)
		return
	}

	// A decline is a normal outcome; the processor text is shown verbatim.
	var declinedErr *domainErrors.DeclinedError
	if errors.As(err, &declinedErr) {
		resp.Code = "declined"
		writeJSON(w, http.StatusPaymentRequired, resp)
		return
	}

	// Processor fault detail stays in the logs, not the response.
	var gatewayErr *domainErrors.GatewayError
	if errors.As(err, &gatewayErr) {
		resp.Code = "gateway_error"
		resp.Error = "payment could not be processed"
		writeJSON(w, http.StatusBadGateway, resp)
		return
	}

	for _, m := range errorMappings {
		if errors.Is(err, m.err) {
			resp.Code = m.code
			if m.err == domainErrors.ErrGatewayUnreachable {
				resp.Error = "payment gateway unreachable"
			}
			writeJSON(w, m.status, resp)
			return
		}
	}

	log.Error().Err(err).Msg("unhandled error in handler")
	resp.Code = "internal_error"
	resp.Error = "internal server error"
	writeJSON(w, http.StatusInternalServerError, resp)
}

func decodeAndValidate(r *http.Request, dst any) error {
	if err := json.NewDecoder(r.Body).Decode(dst); err != nil {
		return domainErrors.NewValidationError("body", "invalid JSON: "+err.Error())
	}
	if err := validate.Struct(dst); err != nil {
		if ve, ok := err.(validator.ValidationErrors); ok && len(ve) > 0 {
			return domainErrors.NewValidationError(ve[0].Field(), ve[0].Tag()+" validation failed")
		}
		return domainErrors.NewValidationError("body", err.Error())
	}
	return nil
}
