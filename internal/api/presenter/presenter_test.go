package presenter

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dtroode/projectopen-signup/internal/model"
)

func TestDecodeRegister(t *testing.T) {
	t.Run("valid", func(t *testing.T) {
		p, err := DecodeRegister([]byte(`{"name":"A","email":"a@x.com","address":"Addr","password":"p","passwordConfirmation":"p","fileName":"f.png","contentType":"image/png"}`))
		require.NoError(t, err)
		assert.Equal(t, model.RegisterParams{
			Name:                 "A",
			Email:                "a@x.com",
			Address:              "Addr",
			Password:             "p",
			PasswordConfirmation: "p",
			FileName:             "f.png",
			ContentType:          "image/png",
		}, p)
	})

	t.Run("malformed", func(t *testing.T) {
		_, err := DecodeRegister([]byte(`{"name":`))
		require.Error(t, err)
		assert.Contains(t, err.Error(), "failed to decode request body")
	})

	t.Run("empty", func(t *testing.T) {
		_, err := DecodeRegister(nil)
		require.Error(t, err)
	})

	t.Run("null", func(t *testing.T) {
		_, err := DecodeRegister([]byte(" null\n"))
		require.ErrorIs(t, err, errNullBody)
	})

	t.Run("non-string field", func(t *testing.T) {
		_, err := DecodeRegister([]byte(`{"name":1,"email":"a@x.com"}`))
		require.Error(t, err)
	})
}

func TestRegistration(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		res      model.RegistrationResult
		err      error
		wantCode int
		wantCORS bool
		wantBody string
	}{
		{
			name: "created",
			res: model.RegistrationResult{
				User: model.User{
					ID:           "id-1",
					Name:         "A",
					Email:        "a@x.com",
					Address:      "Addr",
					ImageURL:     "https://b.s3.amazonaws.com/f.png",
					PasswordHash: "secret-hash",
					CreatedOn:    time.Date(2024, 1, 2, 3, 4, 5, 0, time.UTC),
				},
				UploadURL: "https://upload",
			},
			wantCode: http.StatusCreated,
			wantCORS: true,
			wantBody: `{"errors":[],"user":{"id":"id-1","name":"A","email":"a@x.com","address":"Addr","imageUrl":"https://b.s3.amazonaws.com/f.png","createdOn":"2024-01-02T03:04:05.000Z"},"uploadURL":"https://upload"}`,
		},
		{
			name:     "validation",
			err:      model.NewValidationError(model.MsgAllFieldsRequired),
			wantCode: http.StatusBadRequest,
			wantCORS: true,
			wantBody: `{"message":"All fields are required"}`,
		},
		{
			name:     "duplicate",
			err:      fmt.Errorf("wrapped: %w", &model.DuplicateEmailError{Email: "a@x.com"}),
			wantCode: http.StatusOK,
			wantCORS: true,
			wantBody: `{"errors":[{"field":"email","message":"Email already registered."}]}`,
		},
		{
			name:     "fault",
			err:      errors.New("store down"),
			wantCode: http.StatusInternalServerError,
			wantCORS: false,
			wantBody: `{"message":"Internal Server Error"}`,
		},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			resp := Registration(tt.res, tt.err)

			assert.Equal(t, tt.wantCode, resp.StatusCode)
			assert.JSONEq(t, tt.wantBody, string(resp.Body))
			assert.Equal(t, "application/json", resp.Headers["Content-Type"])
			if tt.wantCORS {
				assert.Equal(t, "*", resp.Headers["Access-Control-Allow-Origin"])
				assert.Equal(t, "POST", resp.Headers["Access-Control-Allow-Methods"])
				assert.Equal(t, "Content-Type", resp.Headers["Access-Control-Allow-Headers"])
			} else {
				assert.NotContains(t, resp.Headers, "Access-Control-Allow-Origin")
			}
		})
	}
}

func TestRegistration_NeverLeaksPasswordHash(t *testing.T) {
	resp := Registration(model.RegistrationResult{User: model.User{PasswordHash: "$2a$10$abc"}}, nil)

	var body map[string]any
	require.NoError(t, json.Unmarshal(resp.Body, &body))
	assert.NotContains(t, string(resp.Body), "$2a$10$abc")
	assert.NotContains(t, body["user"], "uploadURL")
}
