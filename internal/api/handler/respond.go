package handler

import (
	"fmt"
	"net/http"

	jsoniter "github.com/json-iterator/go"
	"github.com/pkg/errors"
	"github.com/vfg2006/paid-search-advisor/internal/domain"
	"github.com/vfg2006/paid-search-advisor/internal/usecases/analyzing"
	"github.com/vfg2006/paid-search-advisor/internal/usecases/recommending"
	"github.com/vfg2006/paid-search-advisor/pkg/apiErrors"
	"github.com/vfg2006/paid-search-advisor/pkg/log"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

// corpo máximo aceito em POST; comporta alguns milhares de registros de métricas
const maxRequestBodyBytes = 5 << 20

// decodeBody lê o JSON do corpo respeitando maxRequestBodyBytes
func decodeBody(w http.ResponseWriter, r *http.Request, out any) error {
	r.Body = http.MaxBytesReader(w, r.Body, maxRequestBodyBytes)
	return json.NewDecoder(r.Body).Decode(out)
}

func writeJSON(w http.ResponseWriter, r *http.Request, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(payload); err != nil {
		log.ForContext(r.Context()).WithError(err).Error("http: erro ao enviar resposta")
	}
}

// writeServiceError traduz erros dos casos de uso para o formato padronizado da API
func writeServiceError(w http.ResponseWriter, r *http.Request, err error, message string) {
	var analysisErr *analyzing.AnalysisError
	if errors.As(err, &analysisErr) {
		apiErrors.WriteError(w, analysisErr.Code, analysisErr.Error(), nil)
		return
	}

	log.ForContext(r.Context()).WithError(err).Error(message)
	apiErrors.WriteError(w, apiErrors.ErrInternalServer, message, nil)
}

// writeCSV envia as keywords classificadas como anexo CSV
func writeCSV(w http.ResponseWriter, r *http.Request, filename string, classified []domain.ClassifiedKeyword) {
	w.Header().Set("Content-Type", "text/csv; charset=utf-8")
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", filename))

	if err := recommending.WriteCSV(w, classified); err != nil {
		log.ForContext(r.Context()).WithError(err).Error("export: erro ao escrever CSV")
	}
}

// threeLabels indica se o cliente pediu a projeção para YES_PAID, NO_PAID e TEST
func threeLabels(r *http.Request) (bool, error) {
	switch r.URL.Query().Get("labels") {
	case "", "4":
		return false, nil
	case "3":
		return true, nil
	default:
		return false, errors.New("labels deve ser 3 ou 4")
	}
}
