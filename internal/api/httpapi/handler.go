package httpapi

import (
	"context"
	"io"
	"net/http"

	"github.com/dtroode/projectopen-signup/internal/api/presenter"
	"github.com/dtroode/projectopen-signup/internal/logger"
	"github.com/dtroode/projectopen-signup/internal/model"
)

// maxBodyBytes bounds the registration request body.
const maxBodyBytes = 1 << 20

// RegistrationService registers new users.
type RegistrationService interface {
	Register(ctx context.Context, params model.RegisterParams) (model.RegistrationResult, error)
}

// Registration handles registration HTTP requests.
type Registration struct {
	service RegistrationService
	logger  *logger.Logger
}

// NewRegistration creates a new Registration handler.
func NewRegistration(service RegistrationService, logger *logger.Logger) *Registration {
	return &Registration{
		service: service,
		logger:  logger,
	}
}

// Register decodes the JSON body, runs the workflow and writes the rendered result.
func (h *Registration) Register(w http.ResponseWriter, r *http.Request) {
	body, err := io.ReadAll(http.MaxBytesReader(w, r.Body, maxBodyBytes))
	if err != nil {
		h.logger.Error("Registration handler: failed to read request body",
			"error", err.Error())
		writeResponse(w, presenter.Fault())
		return
	}

	params, err := presenter.DecodeRegister(body)
	if err != nil {
		h.logger.Error("Registration handler: error registering user",
			"error", err.Error())
		writeResponse(w, presenter.Fault())
		return
	}

	res, err := h.service.Register(r.Context(), params)
	resp := presenter.Registration(res, err)
	if resp.StatusCode == http.StatusInternalServerError {
		h.logger.Error("Registration handler: error registering user",
			"email", params.Email,
			"error", err.Error())
	}

	writeResponse(w, resp)
}

// Health reports liveness.
func Health(w http.ResponseWriter, _ *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte(`{"status":"ok"}`))
}

func writeResponse(w http.ResponseWriter, resp presenter.Response) {
	for k, v := range resp.Headers {
		w.Header().Set(k, v)
	}
	w.WriteHeader(resp.StatusCode)
	_, _ = w.Write(resp.Body)
}
