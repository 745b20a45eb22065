package entity

// Principal identidad autenticada de la petición en curso.
// Se pasa explícitamente a los casos de uso; nunca se lee de estado global.
type Principal struct {
	CustomerID string
	SessionID  string
	IsStaff    bool
}
