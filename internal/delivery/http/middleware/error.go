package middleware

import (
	"errors"
	"log"

	"placement-pro/internal/pkg/response"

	"github.com/gofiber/fiber/v3"
)

// AppError is what handlers return. Message and Data reach the client only
// for 4xx and 503; Cause is logged, never sent.
type AppError struct {
	StatusCode int
	Message    string
	Data       interface{}
	Cause      error
}

func (e *AppError) Error() string {
	if e == nil {
		return ""
	}
	if e.Cause != nil {
		return e.Message + ": " + e.Cause.Error()
	}
	return e.Message
}

func (e *AppError) Unwrap() error {
	if e == nil {
		return nil
	}
	return e.Cause
}

func NewAppError(statusCode int, message string, data interface{}, cause error) *AppError {
	return &AppError{StatusCode: statusCode, Message: message, Data: data, Cause: cause}
}

type ErrorMiddleware struct {
	logger *log.Logger
}

func NewErrorMiddleware(logger *log.Logger) *ErrorMiddleware {
	if logger == nil {
		logger = log.Default()
	}
	return &ErrorMiddleware{logger: logger}
}

func (m *ErrorMiddleware) Middleware() fiber.Handler {
	return func(c fiber.Ctx) (err error) {
		defer func() {
			if r := recover(); r != nil {
				m.logger.Printf("HTTP panic | rid=%s path=%s panic=%v", RequestID(c), c.Path(), r)
				err = response.Error(c, fiber.StatusInternalServerError, response.MessageInternalServerError, nil)
			}
		}()

		err = c.Next()
		if err == nil {
			return nil
		}

		out := normalizeError(err)
		if out.status >= fiber.StatusInternalServerError {
			m.logger.Printf("HTTP error | rid=%s path=%s status=%d err=%v", RequestID(c), c.Path(), out.status, err)
		}
		return response.Error(c, out.status, out.message, out.data)
	}
}

type clientError struct {
	status  int
	message string
	data    interface{}
}

var internalError = clientError{status: fiber.StatusInternalServerError, message: response.MessageInternalServerError}

// exposed reports whether a status may carry its own message to the client.
func exposed(status int) bool {
	return status < fiber.StatusInternalServerError || status == fiber.StatusServiceUnavailable
}

func normalizeError(err error) clientError {
	var appErr *AppError
	if errors.As(err, &appErr) {
		if appErr.StatusCode <= 0 || !exposed(appErr.StatusCode) {
			return internalError
		}
		out := clientError{status: appErr.StatusCode, message: appErr.Message}
		if out.message == "" {
			out.message = response.DefaultMessage(out.status)
		}
		if out.status < fiber.StatusInternalServerError {
			out.data = appErr.Data
		}
		return out
	}

	var fiberErr *fiber.Error
	if errors.As(err, &fiberErr) {
		if fiberErr.Code <= 0 || !exposed(fiberErr.Code) {
			return internalError
		}
		if fiberErr.Code >= fiber.StatusInternalServerError {
			return clientError{status: fiberErr.Code, message: response.DefaultMessage(fiberErr.Code)}
		}
		msg := fiberErr.Message
		if msg == "" {
			msg = response.DefaultMessage(fiberErr.Code)
		}
		return clientError{status: fiberErr.Code, message: msg}
	}

	return internalError
}
