// Package presenter turns registration outcomes into transport-neutral
// responses shared by the HTTP server and the Lambda handler.
package presenter

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"

	"github.com/dtroode/projectopen-signup/internal/model"
)

// MsgInternal is the opaque message returned for any internal fault.
const MsgInternal = "Internal Server Error"

// CORS headers attached to every response except internal faults.
var corsHeaders = map[string]string{
	"Access-Control-Allow-Origin":  "*",
	"Access-Control-Allow-Methods": "POST",
	"Access-Control-Allow-Headers": "Content-Type",
}

// Response is a rendered reply.
type Response struct {
	StatusCode int
	Headers    map[string]string
	Body       []byte
}

type userView struct {
	ID        string `json:"id"`
	Name      string `json:"name"`
	Email     string `json:"email"`
	Address   string `json:"address"`
	ImageURL  string `json:"imageUrl"`
	CreatedOn string `json:"createdOn"`
}

type createdBody struct {
	Errors    []model.FieldError `json:"errors"`
	User      userView           `json:"user"`
	UploadURL string             `json:"uploadURL"`
}

type fieldErrorsBody struct {
	Errors []model.FieldError `json:"errors"`
}

type messageBody struct {
	Message string `json:"message"`
}

// errNullBody is returned for a literal JSON null, which carries no fields to read.
var errNullBody = errors.New("request body is null")

// DecodeRegister parses a JSON registration body. The body must be a JSON object.
func DecodeRegister(body []byte) (model.RegisterParams, error) {
	if bytes.Equal(bytes.TrimSpace(body), []byte("null")) {
		return model.RegisterParams{}, fmt.Errorf("failed to decode request body: %w", errNullBody)
	}

	var params model.RegisterParams
	if err := json.Unmarshal(body, &params); err != nil {
		return model.RegisterParams{}, fmt.Errorf("failed to decode request body: %w", err)
	}

	return params, nil
}

// Registration renders the outcome of a registration attempt.
func Registration(res model.RegistrationResult, err error) Response {
	var (
		vErr   *model.ValidationError
		dupErr *model.DuplicateEmailError
	)

	switch {
	case err == nil:
		return render(http.StatusCreated, true, createdBody{
			Errors:    []model.FieldError{},
			User:      newUserView(res.User),
			UploadURL: res.UploadURL,
		})
	case errors.As(err, &vErr):
		return render(http.StatusBadRequest, true, messageBody{Message: vErr.Message})
	case errors.As(err, &dupErr):
		return render(http.StatusOK, true, fieldErrorsBody{Errors: dupErr.FieldErrors()})
	default:
		return Fault()
	}
}

// Fault renders an opaque internal error.
func Fault() Response {
	return render(http.StatusInternalServerError, false, messageBody{Message: MsgInternal})
}

func newUserView(u model.User) userView {
	return userView{
		ID:        u.ID,
		Name:      u.Name,
		Email:     u.Email,
		Address:   u.Address,
		ImageURL:  u.ImageURL,
		CreatedOn: model.FormatCreatedOn(u.CreatedOn),
	}
}

func render(status int, cors bool, body any) Response {
	headers := map[string]string{"Content-Type": "application/json"}
	if cors {
		for k, v := range corsHeaders {
			headers[k] = v
		}
	}

	// Bodies are plain structs of strings and cannot fail to marshal.
	data, _ := json.Marshal(body)

	return Response{
		StatusCode: status,
		Headers:    headers,
		Body:       data,
	}
}
