package main

import (
	"errors"
	"net/http"

	cartapp "github.com/arkanhakim/livecart/internal/cart/app"
	catalogapp "github.com/arkanhakim/livecart/internal/catalog/app"
	checkoutapp "github.com/arkanhakim/livecart/internal/checkout/app"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
)

// httpStatusFromGRPC maps gRPC status errors (the Firestore SDK surfaces
// these) to an HTTP status, a stable error code and a message.
func httpStatusFromGRPC(err error) (int, string, string) {
	st, ok := status.FromError(err)
	if !ok {
		return http.StatusInternalServerError, "INTERNAL", "internal error"
	}

	switch st.Code() {
	case codes.InvalidArgument:
		return http.StatusBadRequest, "INVALID_ARGUMENT", st.Message()
	case codes.NotFound:
		return http.StatusNotFound, "NOT_FOUND", st.Message()
	case codes.AlreadyExists:
		return http.StatusConflict, "ALREADY_EXISTS", st.Message()
	case codes.PermissionDenied:
		return http.StatusForbidden, "PERMISSION_DENIED", st.Message()
	case codes.Unavailable, codes.DeadlineExceeded:
		return http.StatusServiceUnavailable, "UNAVAILABLE", "service unavailable"
	case codes.OK:
		return http.StatusInternalServerError, "INTERNAL", "internal error"
	default:
		return http.StatusInternalServerError, "INTERNAL", "internal error"
	}
}

// httpStatusFromError first matches the module's typed errors, then falls
// back to the gRPC mapping.
func httpStatusFromError(err error) (int, string, string) {
	switch {
	case errors.Is(err, catalogapp.ErrInvalidInput):
		return http.StatusBadRequest, "INVALID_ARGUMENT", err.Error()
	case errors.Is(err, catalogapp.ErrNotFound):
		return http.StatusNotFound, "NOT_FOUND", err.Error()
	case errors.Is(err, cartapp.ErrStorageUnavailable):
		return http.StatusServiceUnavailable, "UNAVAILABLE", "cart storage unavailable"
	case errors.Is(err, checkoutapp.ErrCartEmpty),
		errors.Is(err, checkoutapp.ErrInvalidContact),
		errors.Is(err, checkoutapp.ErrInvalidAddress),
		errors.Is(err, checkoutapp.ErrNoPaymentMethod),
		errors.Is(err, checkoutapp.ErrNoForwardStep):
		return http.StatusUnprocessableEntity, "CHECKOUT_BLOCKED", err.Error()
	case errors.Is(err, checkoutapp.ErrSubmissionFailed):
		return http.StatusBadGateway, "SUBMISSION_FAILED", "order submission failed"
	}
	return httpStatusFromGRPC(err)
}
