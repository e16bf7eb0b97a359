package testutil

import (
	"errors"
	"testing"

	apperrors "folio/internal/errors"
	"folio/internal/models"
)

// AssertAppError checks that err is an *AppError with the expected error code.
func AssertAppError(t *testing.T, err error, expectedCode string) {
	t.Helper()

	if err == nil {
		t.Fatalf("expected AppError with code %q, got nil", expectedCode)
	}

	var appErr *apperrors.AppError
	if !errors.As(err, &appErr) {
		t.Fatalf("expected *AppError, got %T: %v", err, err)
	}

	if appErr.Code != expectedCode {
		t.Errorf("expected error code %q, got %q (message: %s)", expectedCode, appErr.Code, appErr.Message)
	}
}

// AssertPriceUnavailable checks that err is a PRICE_UNAVAILABLE error whose
// message names the holding that could not be priced.
func AssertPriceUnavailable(t *testing.T, err error, assetType models.AssetType, ticker string) {
	t.Helper()

	AssertAppError(t, err, "PRICE_UNAVAILABLE")
	want := "No price data returned for " + assetType.Label() + " " + ticker
	if err.Error() != want {
		t.Errorf("expected message %q, got %q", want, err.Error())
	}
}

// AssertNoError fails the test if err is not nil.
func AssertNoError(t *testing.T, err error) {
	t.Helper()

	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}
