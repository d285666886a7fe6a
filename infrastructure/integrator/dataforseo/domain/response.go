package dataforseodomain

// StatusOK é o status_code de sucesso da API, tanto no envelope quanto em cada task
const StatusOK = 20000

// Response é o envelope comum a todos os endpoints live
type Response[T any] struct {
	StatusCode    int       `json:"status_code"`
	StatusMessage string    `json:"status_message"`
	Cost          float64   `json:"cost"`
	TasksCount    int       `json:"tasks_count"`
	TasksError    int       `json:"tasks_error"`
	Tasks         []Task[T] `json:"tasks"`
}

type Task[T any] struct {
	ID            string `json:"id"`
	StatusCode    int    `json:"status_code"`
	StatusMessage string `json:"status_message"`
	Result        []T    `json:"result"`
}

// Credentials são login e senha da API. Vazios usam a configuração.
type Credentials struct {
	Login    string
	Password string
}

// CollectParams define onde e com quais credenciais uma keyword é coletada
type CollectParams struct {
	Location    string
	Language    string
	Credentials Credentials
}
