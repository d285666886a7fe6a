package utils

import (
	"bytes"
	stdjson "encoding/json"
	"fmt"

	jsoniter "github.com/json-iterator/go"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

// PrettyJson indenta um valor para logs de trace. []byte é tratado como JSON já serializado;
// conteúdo inválido é devolvido como veio.
func PrettyJson(in any) string {
	buffer, isRaw := in.([]byte)
	if !isRaw {
		marshaled, err := json.Marshal(in)
		if err != nil {
			return fmt.Sprintf("%+v", in)
		}
		buffer = marshaled
	}

	var out bytes.Buffer
	if err := stdjson.Indent(&out, buffer, "", "\t"); err != nil {
		return string(buffer)
	}

	return out.String()
}
