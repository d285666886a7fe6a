package apiErrors

import (
	"net/http"

	jsoniter "github.com/json-iterator/go"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

const (
	// Erros de autenticação
	ErrInvalidToken          = "AUTH_001" // Token ausente ou inválido
	ErrInsufficientPrivilege = "AUTH_002" // Privilégios insuficientes

	// Erros de validação
	ErrInvalidRequest = "VAL_001" // Requisição inválida
	ErrInvalidFormat  = "VAL_002" // Formato de dados inválido

	// Erros de roteamento
	ErrNotFound         = "RTE_001" // Rota inexistente
	ErrMethodNotAllowed = "RTE_002" // Método não suportado pela rota

	// Erros de análise
	ErrNoKeywords        = "ANL_001" // Nenhuma keyword informada
	ErrTooManyKeywords   = "ANL_002" // Lote acima do limite configurado
	ErrInvalidRecord     = "ANL_003" // Registro de métricas inválido
	ErrAnalysisNotFound  = "ANL_004" // Análise não encontrada no histórico
	ErrHistoryDisabled   = "ANL_005" // Histórico desativado
	ErrCollectionAborted = "ANL_006" // Coleta interrompida (timeout ou cancelamento)

	// Erros de cron
	ErrInvalidCronType    = "CRN_001" // Tipo de cron desconhecido
	ErrCronAlreadyRunning = "CRN_002" // Execução em andamento

	// Erros do servidor
	ErrInternalServer    = "SRV_001" // Erro interno do servidor
	ErrDatabaseOperation = "SRV_002" // Erro de operação de banco de dados
)

// Mapeamento de códigos de erro para status HTTP
var httpStatusMap = map[string]int{
	ErrInvalidToken:          http.StatusUnauthorized,
	ErrInsufficientPrivilege: http.StatusForbidden,
	ErrInvalidRequest:        http.StatusBadRequest,
	ErrInvalidFormat:         http.StatusBadRequest,
	ErrNotFound:              http.StatusNotFound,
	ErrMethodNotAllowed:      http.StatusMethodNotAllowed,
	ErrNoKeywords:            http.StatusBadRequest,
	ErrTooManyKeywords:       http.StatusBadRequest,
	ErrInvalidRecord:         http.StatusUnprocessableEntity,
	ErrAnalysisNotFound:      http.StatusNotFound,
	ErrHistoryDisabled:       http.StatusNotImplemented,
	ErrCollectionAborted:     http.StatusGatewayTimeout,
	ErrInvalidCronType:       http.StatusBadRequest,
	ErrCronAlreadyRunning:    http.StatusConflict,
	ErrInternalServer:        http.StatusInternalServerError,
	ErrDatabaseOperation:     http.StatusInternalServerError,
}

// APIError representa um erro de API padronizado
type APIError struct {
	Code    string `json:"code"`              // Código de erro para o cliente
	Message string `json:"message,omitempty"` // Mensagem descritiva (opcional)
	Details any    `json:"details,omitempty"` // Detalhes adicionais (opcional)
}

// StatusFor devolve o status HTTP de um código de erro
func StatusFor(code string) int {
	status, exists := httpStatusMap[code]
	if !exists {
		return http.StatusInternalServerError
	}
	return status
}

// WriteError escreve o erro padronizado para a resposta HTTP
func WriteError(w http.ResponseWriter, code string, message string, details any) {
	apiErr := APIError{
		Code:    code,
		Message: message,
		Details: details,
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(StatusFor(code))
	json.NewEncoder(w).Encode(apiErr)
}
