package dto

// ListQuery parámetros de los listados: ?search=...&order_by=campo|-campo
type ListQuery struct {
	Search  string `query:"search"`
	OrderBy string `query:"order_by"`
}

// ErrorResponse cuerpo de error HTTP. Fields detalla errores de validación campo por campo.
type ErrorResponse struct {
	Code    string            `json:"code"`
	Message string            `json:"message"`
	Fields  map[string]string `json:"fields,omitempty"`
}

// MessageResponse respuesta simple con mensaje.
type MessageResponse struct {
	Message string `json:"message"`
}

// DateLayout formato de fechas (sin hora) en requests y responses.
const DateLayout = "2006-01-02"
