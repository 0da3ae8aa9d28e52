// Package errors contains helper functions and types to work with errors
package errors

import (
	"errors"
	"net/http"
)

// Category defines error category
type Category int

const (
	// CategoryDataError The client sent some invalid data in the request,
	// for example, missing or malformed fields or out-of-range values.
	CategoryDataError Category = iota + 1
	// CategoryUnauthorized The client is not authorized to access the requested resource
	CategoryUnauthorized
	// CategoryResourceNotFound The client is attempting to access a resource that does not exist
	CategoryResourceNotFound
	// CategoryDataConflict The request conflicts with a business rule (expired message, mismatched signer)
	CategoryDataConflict
	// CategoryBusy The service rejected the request due to admission control; retry later
	CategoryBusy
	// CategoryDependencyFailure A dependent service (database, RPC node) is failing
	CategoryDependencyFailure
	// CategoryGeneralError The service failed in an unexpected way
	CategoryGeneralError
)

// Code is the stable machine-readable error code surfaced to clients.
type Code string

const (
	CodeMissingRequiredFields Code = "MISSING_REQUIRED_FIELDS"
	CodeInvalidWalletAddress  Code = "INVALID_WALLET_ADDRESS"
	CodeMessageExpired        Code = "MESSAGE_EXPIRED"
	CodeSignatureFailed       Code = "SIGNATURE_VERIFICATION_FAILED"
	CodeAddressMismatch       Code = "ADDRESS_MISMATCH"
	CodeUserNotFound          Code = "USER_NOT_FOUND"
	CodeInvalidInput          Code = "INVALID_INPUT"
	CodeServerBusy            Code = "SERVER_BUSY"
	CodeRankingFetchFailed    Code = "RANKING_FETCH_FAILED"
	CodeGameSubmissionFailed  Code = "GAME_SUBMISSION_FAILED"
	CodeAirdropQueueFailed    Code = "AIRDROP_QUEUE_FAILED"
	CodeAirdropExecFailed     Code = "AIRDROP_EXECUTION_FAILED"
	CodeDatabaseError         Code = "DATABASE_ERROR"
	CodeUnauthorized          Code = "UNAUTHORIZED"
	CodeInternalError         Code = "INTERNAL_ERROR"
)

// ServiceError represents service specific type that
// is used all over the services.
type ServiceError struct {
	Category Category
	Code     Code
	Message  string
	Err      error
}

// Error method to comply with error interface
func (err ServiceError) Error() string {
	if err.Err != nil {
		return err.Err.Error()
	}
	return err.Message
}

// Unwrap returns the underlying error
func (err ServiceError) Unwrap() error {
	return err.Err
}

// Is implements the custom condition to check an error is equal to a service error
func (err ServiceError) Is(target error) bool {
	return err.Message == target.Error()
}

// StatusCode returns the HTTP status code for the error category
func (err ServiceError) StatusCode() int {
	switch err.Category {
	case CategoryDataError:
		return http.StatusBadRequest
	case CategoryUnauthorized:
		return http.StatusUnauthorized
	case CategoryResourceNotFound:
		return http.StatusNotFound
	case CategoryDataConflict:
		return http.StatusConflict
	case CategoryBusy:
		return http.StatusServiceUnavailable
	case CategoryDependencyFailure:
		return http.StatusBadGateway
	default:
		return http.StatusInternalServerError
	}
}

// Is checks that provided error is a ServiceError with desired Category
func Is(err error, cat Category) bool {
	var svcErr *ServiceError
	return errors.As(err, &svcErr) && svcErr.Category == cat
}

// CodeOf returns the machine code carried by err, or CodeInternalError
// for errors that escaped without a service classification.
func CodeOf(err error) Code {
	var svcErr *ServiceError
	if errors.As(err, &svcErr) && svcErr.Code != "" {
		return svcErr.Code
	}
	return CodeInternalError
}

// Validation returns an error with category DataError
// the message provided is returned to the user
func Validation(err error, code Code, message string) error {
	if err == nil {
		err = errors.New("validation failed: " + message)
	}
	return &ServiceError{
		Category: CategoryDataError,
		Code:     code,
		Message:  message,
		Err:      err,
	}
}

// NotFound returns an error with category ResourceNotFound
func NotFound(err error, code Code, message string) error {
	if err == nil {
		err = errors.New("resource not found: " + message)
	}
	return &ServiceError{
		Category: CategoryResourceNotFound,
		Code:     code,
		Message:  message,
		Err:      err,
	}
}

// Conflict returns an error with category DataConflict
func Conflict(err error, code Code, message string) error {
	if err == nil {
		err = errors.New("conflict: " + message)
	}
	return &ServiceError{
		Category: CategoryDataConflict,
		Code:     code,
		Message:  message,
		Err:      err,
	}
}

// Unauthorized returns an error with category Unauthorized
func Unauthorized(err error, message string) error {
	if err == nil {
		err = errors.New("unauthorized")
	}
	return &ServiceError{
		Category: CategoryUnauthorized,
		Code:     CodeUnauthorized,
		Message:  message,
		Err:      err,
	}
}

// Busy returns the transient admission-control error; callers should retry later.
func Busy(err error) error {
	return &ServiceError{
		Category: CategoryBusy,
		Code:     CodeServerBusy,
		Message:  "server busy, please retry later",
		Err:      err,
	}
}

// Dependency returns an error with category DependencyFailure.
// The wrapped err is logged; only code and message reach the client.
func Dependency(err error, code Code, message string) error {
	return &ServiceError{
		Category: CategoryDependencyFailure,
		Code:     code,
		Message:  message,
		Err:      err,
	}
}

// General returns a general service error
// the message sent to the user is "Internal Server Error"
func General(err error) error {
	if err == nil {
		err = errors.New("internal server error")
	}
	return &ServiceError{
		Category: CategoryGeneralError,
		Code:     CodeInternalError,
		Message:  "Internal Server Error",
		Err:      err,
	}
}
