package utilities

import (
	"errors"
	"fmt"
	"net/http"
)

// ErrorKind classifica as falhas que os handlers convertem em status HTTP.
type ErrorKind string

const (
	KindUpstreamEmpty         ErrorKind = "UPSTREAM_EMPTY"
	KindInvalidUpstreamFormat ErrorKind = "INVALID_UPSTREAM_FORMAT"
	KindBadRequest            ErrorKind = "BAD_REQUEST"
	KindNotFound              ErrorKind = "NOT_FOUND"
	KindNoEligibleAssignee    ErrorKind = "NO_ELIGIBLE_ASSIGNEE"
	KindInternal              ErrorKind = "INTERNAL"
)

// AppError é o erro da aplicação com um tipo explícito.
type AppError struct {
	Kind    ErrorKind
	Message string
	Err     error
}

func (e *AppError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

func (e *AppError) Unwrap() error { return e.Err }

// HTTPStatus devolve o status HTTP correspondente ao tipo do erro.
func (e *AppError) HTTPStatus() int {
	switch e.Kind {
	case KindBadRequest, KindNoEligibleAssignee:
		return http.StatusBadRequest
	case KindNotFound:
		return http.StatusNotFound
	default:
		return http.StatusInternalServerError
	}
}

// NewError cria um AppError sem causa.
func NewError(kind ErrorKind, message string) *AppError {
	return &AppError{Kind: kind, Message: message}
}

// WrapError cria um AppError guardando a causa.
func WrapError(kind ErrorKind, message string, err error) *AppError {
	return &AppError{Kind: kind, Message: message, Err: err}
}

// KindOf devolve o tipo do erro, ou KindInternal se não for um AppError.
func KindOf(err error) ErrorKind {
	var appErr *AppError
	if errors.As(err, &appErr) {
		return appErr.Kind
	}
	return KindInternal
}

// StatusAndDetail converte qualquer erro no par (status, detail) da resposta.
func StatusAndDetail(err error) (int, string) {
	var appErr *AppError
	if errors.As(err, &appErr) {
		return appErr.HTTPStatus(), appErr.Error()
	}
	return http.StatusInternalServerError, err.Error()
}
