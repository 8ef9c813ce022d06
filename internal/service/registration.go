package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"github.com/dtroode/projectopen-signup/internal/logger"
	"github.com/dtroode/projectopen-signup/internal/model"
)

// RegistrationOptions tunes the registration workflow.
type RegistrationOptions struct {
	UploadTTL           time.Duration
	RequireConfirmation bool
	BcryptCost          int
}

type Registration struct {
	userStore model.UserStore
	blobStore model.BlobStore
	opts      RegistrationOptions
	logger    *logger.Logger
	now       func() time.Time
}

func NewRegistration(
	userStore model.UserStore,
	blobStore model.BlobStore,
	opts RegistrationOptions,
	logger *logger.Logger,
) *Registration {
	if opts.UploadTTL <= 0 {
		opts.UploadTTL = model.UploadGrantTTL
	}
	if opts.BcryptCost == 0 {
		opts.BcryptCost = bcrypt.DefaultCost
	}

	return &Registration{
		userStore: userStore,
		blobStore: blobStore,
		opts:      opts,
		logger:    logger,
		now:       time.Now,
	}
}

// Register validates params, issues an upload URL and creates the user.
//
// A duplicate email is reported as *model.DuplicateEmailError, bad input as
// *model.ValidationError. Any other error is an internal fault.
func (r *Registration) Register(ctx context.Context, params model.RegisterParams) (model.RegistrationResult, error) {
	r.logger.Debug("Registration service: starting user registration",
		"email", params.Email)

	if err := r.validate(params); err != nil {
		r.logger.Info("Registration service: invalid registration request",
			"email", params.Email,
			"error", err.Error())
		return model.RegistrationResult{}, err
	}

	// The grant is issued before the uniqueness check and simply expires
	// unused when registration is rejected.
	grant, err := r.blobStore.PresignUpload(ctx, params.FileName, params.ContentType, r.opts.UploadTTL)
	if err != nil {
		r.logger.Error("Registration service: failed to issue upload grant",
			"email", params.Email,
			"file_name", params.FileName,
			"error", err.Error())
		return model.RegistrationResult{}, fmt.Errorf("failed to issue upload grant: %w", err)
	}

	_, err = r.userStore.GetByEmail(ctx, params.Email)
	switch {
	case err == nil:
		r.logger.Info("Registration service: user already exists",
			"email", params.Email)
		return model.RegistrationResult{}, &model.DuplicateEmailError{Email: params.Email}
	case !errors.Is(err, model.ErrNotFound):
		r.logger.Error("Registration service: failed to get user by email",
			"email", params.Email,
			"error", err.Error())
		return model.RegistrationResult{}, fmt.Errorf("failed to get user by email: %w", err)
	}

	hash, err := bcrypt.GenerateFromPassword(bcryptInput(params.Password), r.opts.BcryptCost)
	if err != nil {
		r.logger.Error("Registration service: failed to hash password",
			"email", params.Email,
			"error", err.Error())
		return model.RegistrationResult{}, fmt.Errorf("failed to hash password: %w", err)
	}

	user := model.User{
		ID:           uuid.NewString(),
		Name:         params.Name,
		Email:        params.Email,
		Address:      params.Address,
		ImageURL:     model.PublicObjectURL(r.blobStore.Bucket(), params.FileName),
		PasswordHash: string(hash),
		CreatedOn:    r.now().UTC(),
	}

	created, err := r.userStore.Create(ctx, user)
	if errors.Is(err, model.ErrEmailTaken) {
		r.logger.Info("Registration service: email registered concurrently",
			"email", params.Email)
		return model.RegistrationResult{}, &model.DuplicateEmailError{Email: params.Email}
	}
	if err != nil {
		r.logger.Error("Registration service: failed to create user",
			"email", params.Email,
			"error", err.Error())
		return model.RegistrationResult{}, fmt.Errorf("failed to create user: %w", err)
	}

	r.logger.Info("Registration service: user registration completed successfully",
		"email", params.Email,
		"user_id", created.ID)

	created.PasswordHash = ""

	return model.RegistrationResult{
		User:      created,
		UploadURL: grant.URL,
	}, nil
}

// maxPasswordBytes is the longest input bcrypt hashes.
const maxPasswordBytes = 72

// bcryptInput truncates password to the bytes bcrypt actually uses.
func bcryptInput(password string) []byte {
	b := []byte(password)
	if len(b) > maxPasswordBytes {
		b = b[:maxPasswordBytes]
	}
	return b
}

func (r *Registration) validate(params model.RegisterParams) error {
	required := []string{
		params.Name,
		params.Email,
		params.Address,
		params.Password,
		params.FileName,
		params.ContentType,
	}
	if r.opts.RequireConfirmation {
		required = append(required, params.PasswordConfirmation)
	}

	for _, v := range required {
		if v == "" {
			return model.NewValidationError(model.MsgAllFieldsRequired)
		}
	}

	if params.PasswordConfirmation != "" && params.PasswordConfirmation != params.Password {
		return model.NewValidationError(model.MsgConfirmationMismatch)
	}

	return nil
}
