package domain

// Credentials são as chaves informadas pelo usuário na requisição.
// Campos vazios usam os valores da configuração. Nunca são persistidas.
type Credentials struct {
	DataForSEOLogin    string `json:"dataforseo_login,omitempty"`
	DataForSEOPassword string `json:"dataforseo_password,omitempty"`
	GeminiAPIKey       string `json:"gemini_api_key,omitempty"`
}
