package main

import (
	"errors"
	"net/http"
	"testing"

	cartapp "github.com/arkanhakim/livecart/internal/cart/app"
	checkoutapp "github.com/arkanhakim/livecart/internal/checkout/app"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
)

func TestHTTPStatusFromGRPC(t *testing.T) {
	t.Run("InvalidArgument -> 400", func(t *testing.T) {
		err := status.Error(codes.InvalidArgument, "bad")
		gotStatus, gotCode, _ := httpStatusFromGRPC(err)
		if gotStatus != http.StatusBadRequest || gotCode != "INVALID_ARGUMENT" {
			t.Fatalf("got (%d,%s)", gotStatus, gotCode)
		}
	})

	t.Run("NotFound -> 404", func(t *testing.T) {
		err := status.Error(codes.NotFound, "missing")
		gotStatus, gotCode, _ := httpStatusFromGRPC(err)
		if gotStatus != http.StatusNotFound || gotCode != "NOT_FOUND" {
			t.Fatalf("got (%d,%s)", gotStatus, gotCode)
		}
	})

	t.Run("Unavailable -> 503", func(t *testing.T) {
		err := status.Error(codes.Unavailable, "down")
		gotStatus, gotCode, _ := httpStatusFromGRPC(err)
		if gotStatus != http.StatusServiceUnavailable || gotCode != "UNAVAILABLE" {
			t.Fatalf("got (%d,%s)", gotStatus, gotCode)
		}
	})

	t.Run("DeadlineExceeded -> 503", func(t *testing.T) {
		err := status.Error(codes.DeadlineExceeded, "timeout")
		gotStatus, gotCode, _ := httpStatusFromGRPC(err)
		if gotStatus != http.StatusServiceUnavailable || gotCode != "UNAVAILABLE" {
			t.Fatalf("got (%d,%s)", gotStatus, gotCode)
		}
	})

	t.Run("non-grpc error -> 500", func(t *testing.T) {
		err := errors.New("boom")
		gotStatus, gotCode, _ := httpStatusFromGRPC(err)
		if gotStatus != http.StatusInternalServerError || gotCode != "INTERNAL" {
			t.Fatalf("got (%d,%s)", gotStatus, gotCode)
		}
	})
}

func TestHTTPStatusFromError(t *testing.T) {
	t.Run("storage unavailable -> 503", func(t *testing.T) {
		err := cartapp.ErrStorageUnavailable
		gotStatus, gotCode, _ := httpStatusFromError(err)
		if gotStatus != http.StatusServiceUnavailable || gotCode != "UNAVAILABLE" {
			t.Fatalf("got (%d,%s)", gotStatus, gotCode)
		}
	})

	t.Run("checkout guard -> 422", func(t *testing.T) {
		for _, err := range []error{
			checkoutapp.ErrCartEmpty,
			checkoutapp.ErrInvalidContact,
			checkoutapp.ErrNoPaymentMethod,
		} {
			gotStatus, gotCode, _ := httpStatusFromError(err)
			if gotStatus != http.StatusUnprocessableEntity || gotCode != "CHECKOUT_BLOCKED" {
				t.Fatalf("%v: got (%d,%s)", err, gotStatus, gotCode)
			}
		}
	})

	t.Run("submission failure -> 502", func(t *testing.T) {
		gotStatus, gotCode, _ := httpStatusFromError(checkoutapp.ErrSubmissionFailed)
		if gotStatus != http.StatusBadGateway || gotCode != "SUBMISSION_FAILED" {
			t.Fatalf("got (%d,%s)", gotStatus, gotCode)
		}
	})

	t.Run("wrapped grpc error falls through", func(t *testing.T) {
		err := status.Error(codes.NotFound, "no such doc")
		gotStatus, _, _ := httpStatusFromError(err)
		if gotStatus != http.StatusNotFound {
			t.Fatalf("got %d", gotStatus)
		}
	})
}
