// Package platformerrors carries typed, request-scoped errors from the upstream clients to
// the HTTP layer, where they become status codes and the JSON error envelope.
package platformerrors

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

// ErrorType classifies a failure and decides its HTTP status.
type ErrorType string

const (
	ErrorTypeValidation  ErrorType = "VALIDATION"
	ErrorTypeInternal    ErrorType = "INTERNAL"
	ErrorTypeExternal    ErrorType = "EXTERNAL"
	ErrorTypeUnavailable ErrorType = "UNAVAILABLE"
	ErrorTypeTimeout     ErrorType = "TIMEOUT"
)

var statusByType = map[ErrorType]int{
	ErrorTypeValidation:  http.StatusBadRequest,
	ErrorTypeInternal:    http.StatusInternalServerError,
	ErrorTypeExternal:    http.StatusBadGateway,
	ErrorTypeUnavailable: http.StatusServiceUnavailable,
	ErrorTypeTimeout:     http.StatusGatewayTimeout,
}

// Layer records where the error was created.
type Layer string

const (
	LayerDomain         Layer = "domain"
	LayerHandler        Layer = "handler"
	LayerRoute          Layer = "route"
	LayerInfrastructure Layer = "infrastructure"
)

// PlatformError is the error every layer hands to the HTTP responses package.
// UUID is returned to the caller as the error code.
type PlatformError struct {
	UUID      string
	Type      ErrorType
	Message   string
	Err       error
	RequestID string
	Layer     Layer
	Fields    map[string]any
}

func (e *PlatformError) Error() string {
	if e.Err == nil {
		return fmt.Sprintf("%s/%s %s: %s", e.Layer, e.Type, e.UUID, e.Message)
	}
	return fmt.Sprintf("%s/%s %s: %s: %v", e.Layer, e.Type, e.UUID, e.Message, e.Err)
}

func (e *PlatformError) Unwrap() error {
	return e.Err
}

func (e *PlatformError) GetErrorType() ErrorType {
	return e.Type
}

func (e *PlatformError) GetRequestID() string {
	return e.RequestID
}

func (e *PlatformError) GetUUID() string {
	return e.UUID
}

// NewError creates a PlatformError. An empty customUUID generates a fresh code.
func NewError(ctx context.Context, layer Layer, errorType ErrorType, message string, err error, customUUID string) *PlatformError {
	return NewErrorWithContext(ctx, layer, errorType, message, err, customUUID, nil)
}

// NewErrorWithContext is NewError with extra fields that LogError writes next to the error.
func NewErrorWithContext(ctx context.Context, layer Layer, errorType ErrorType, message string, err error, customUUID string, fields map[string]any) *PlatformError {
	code := customUUID
	if code == "" {
		code = uuid.NewString()
	}

	copied := make(map[string]any, len(fields))
	for k, v := range fields {
		copied[k] = v
	}

	return &PlatformError{
		UUID:      code,
		Type:      errorType,
		Message:   message,
		Err:       err,
		RequestID: RequestIDFromContext(ctx),
		Layer:     layer,
		Fields:    copied,
	}
}

// AsError lifts err into layer. Platform errors keep their type, code and fields;
// anything else becomes an internal error.
func AsError(ctx context.Context, layer Layer, err error, message string) *PlatformError {
	if err == nil {
		return nil
	}

	var inner *PlatformError
	if !errors.As(err, &inner) {
		return NewError(ctx, layer, ErrorTypeInternal, message, err, "")
	}
	return NewErrorWithContext(ctx, layer, inner.Type, message, inner, inner.UUID, inner.Fields)
}

// ErrorTypeToHTTPStatus maps error types to HTTP status codes. Unknown types are 500.
func ErrorTypeToHTTPStatus(errorType ErrorType) int {
	if status, ok := statusByType[errorType]; ok {
		return status
	}
	return http.StatusInternalServerError
}

// IsErrorType reports whether err wraps a PlatformError of errorType.
func IsErrorType(err error, errorType ErrorType) bool {
	var platformErr *PlatformError
	return errors.As(err, &platformErr) && platformErr.Type == errorType
}

// LogError writes err with its code, type, layer and fields.
func LogError(logger zerolog.Logger, err *PlatformError) {
	if err == nil {
		return
	}

	event := logger.Error().
		Str("error_code", err.UUID).
		Str("error_type", string(err.Type)).
		Str("layer", string(err.Layer)).
		Int("status", ErrorTypeToHTTPStatus(err.Type))
	if err.RequestID != "" {
		event = event.Str("request_id", err.RequestID)
	}
	if len(err.Fields) > 0 {
		event = event.Fields(err.Fields)
	}
	if err.Err != nil {
		event = event.Err(err.Err)
	}
	event.Msg(err.Message)
}

type requestIDKey struct{}

// WithRequestID stores the request id so errors created downstream can carry it.
func WithRequestID(ctx context.Context, requestID string) context.Context {
	if requestID == "" {
		return ctx
	}
	return context.WithValue(ctx, requestIDKey{}, requestID)
}

// RequestIDFromContext returns the request id stored by WithRequestID.
func RequestIDFromContext(ctx context.Context) string {
	if ctx == nil {
		return ""
	}
	requestID, _ := ctx.Value(requestIDKey{}).(string)
	return requestID
}
