package lambda

import (
	"context"
	"encoding/base64"
	"fmt"
	"net/http"

	"github.com/aws/aws-lambda-go/events"

	"github.com/dtroode/projectopen-signup/internal/api/presenter"
	"github.com/dtroode/projectopen-signup/internal/logger"
	"github.com/dtroode/projectopen-signup/internal/model"
)

// RegistrationService registers new users.
type RegistrationService interface {
	Register(ctx context.Context, params model.RegisterParams) (model.RegistrationResult, error)
}

// Handler serves API Gateway proxy events.
type Handler struct {
	service RegistrationService
	logger  *logger.Logger
}

// NewHandler creates a new Handler.
func NewHandler(service RegistrationService, logger *logger.Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// Handle registers a user from the event body. Failures are always reported
// as responses, never as invocation errors.
func (h *Handler) Handle(ctx context.Context, req events.APIGatewayProxyRequest) (events.APIGatewayProxyResponse, error) {
	log := h.logger.With("request_id", req.RequestContext.RequestID)

	body, err := requestBody(req)
	if err != nil {
		log.Error("Lambda handler: error registering user", "error", err.Error())
		return toProxyResponse(presenter.Fault()), nil
	}

	params, err := presenter.DecodeRegister(body)
	if err != nil {
		log.Error("Lambda handler: error registering user", "error", err.Error())
		return toProxyResponse(presenter.Fault()), nil
	}

	res, err := h.service.Register(ctx, params)
	resp := presenter.Registration(res, err)
	if resp.StatusCode == http.StatusInternalServerError {
		log.Error("Lambda handler: error registering user",
			"email", params.Email,
			"error", err.Error())
	}

	return toProxyResponse(resp), nil
}

func requestBody(req events.APIGatewayProxyRequest) ([]byte, error) {
	if !req.IsBase64Encoded {
		return []byte(req.Body), nil
	}

	body, err := base64.StdEncoding.DecodeString(req.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to decode base64 body: %w", err)
	}

	return body, nil
}

func toProxyResponse(resp presenter.Response) events.APIGatewayProxyResponse {
	return events.APIGatewayProxyResponse{
		StatusCode: resp.StatusCode,
		Headers:    resp.Headers,
		Body:       string(resp.Body),
	}
}
