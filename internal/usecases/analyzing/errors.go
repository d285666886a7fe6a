package analyzing

import (
	"errors"
	"fmt"
)

var (
	// Erros de validação
	ErrNoKeywords      = errors.New("no keywords provided")
	ErrTooManyKeywords = errors.New("too many keywords")
	ErrInvalidRecord   = errors.New("invalid keyword record")

	// Erros de histórico
	ErrAnalysisNotFound = errors.New("analysis not found")
	ErrHistoryDisabled  = errors.New("analysis history is disabled")
	ErrFetchHistory     = errors.New("error fetching analysis history")

	// Erros de coleta
	ErrCollectionAborted = errors.New("keyword collection aborted")
)

// AnalysisError é um erro com o código da API e detalhes para o cliente
type AnalysisError struct {
	Err     error  // Erro base
	Code    string // Código de erro para API
	Details string // Detalhes adicionais
}

func (e *AnalysisError) Error() string {
	if e.Details != "" {
		return fmt.Sprintf("%s: %s", e.Err.Error(), e.Details)
	}
	return e.Err.Error()
}

func (e *AnalysisError) Unwrap() error {
	return e.Err
}

func NewAnalysisError(err error, code string, details string) *AnalysisError {
	return &AnalysisError{
		Err:     err,
		Code:    code,
		Details: details,
	}
}
