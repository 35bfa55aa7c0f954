package apperr_test

import (
	"errors"
	"fmt"
	"testing"

	"github.com/pathforge/roadmap/internal/apperr"
)

func TestNewValidation(t *testing.T) {
	err := apperr.NewValidation("topic is required")

	if err.Error() != "topic is required" {
		t.Errorf("expected 'topic is required', got %q", err.Error())
	}
	if err.Unwrap() != nil {
		t.Errorf("expected nil unwrap, got %v", err.Unwrap())
	}
}

func TestNewValidationf(t *testing.T) {
	err := apperr.NewValidationf("module %d: hours must be positive", 3)

	if err.Error() != "module 3: hours must be positive" {
		t.Errorf("unexpected message: %q", err.Error())
	}
}

func TestNewValidationWrap(t *testing.T) {
	inner := fmt.Errorf("parse failed")
	err := apperr.NewValidationWrap("invalid request body", inner)

	if err.Error() != "invalid request body: parse failed" {
		t.Errorf("expected 'invalid request body: parse failed', got %q", err.Error())
	}
	if !errors.Is(err, inner) {
		t.Error("expected Unwrap to return inner error")
	}
}

func TestValidationError_SurvivesFmtWrapping(t *testing.T) {
	original := apperr.NewValidation("modules must not be empty")

	wrapped := fmt.Errorf("failed to validate: %w", original)
	doubleWrapped := fmt.Errorf("generate: %w", wrapped)

	var ve *apperr.ValidationError
	if !errors.As(doubleWrapped, &ve) {
		t.Fatal("errors.As should find ValidationError through double wrapping")
	}
	if ve.Message != "modules must not be empty" {
		t.Errorf("expected 'modules must not be empty', got %q", ve.Message)
	}
}

func TestValidationError_NotFoundForPlainErrors(t *testing.T) {
	plain := fmt.Errorf("search provider unavailable")
	wrapped := fmt.Errorf("generate: %w", plain)

	var ve *apperr.ValidationError
	if errors.As(wrapped, &ve) {
		t.Fatal("errors.As should NOT find ValidationError in plain error chain")
	}
}
