package orders

import "strings"

type Status string

const (
	StatusPendente    Status = "PENDENTE"
	StatusProcessando Status = "PROCESSANDO"
	StatusEnviado     Status = "ENVIADO"
	StatusEntregue    Status = "ENTREGUE"
	StatusCancelado   Status = "CANCELADO"
)

// StatusAll is the filter sentinel meaning "no status filter". It is never
// stored on an order.
const StatusAll = "TODOS"

// Normalize upper-cases a status before it is written. Admin edits arrive in
// whatever case the form had.
func Normalize(s string) Status {
	return Status(strings.ToUpper(strings.TrimSpace(s)))
}

func (s Status) Valid() bool {
	switch s {
	case StatusPendente, StatusProcessando, StatusEnviado, StatusEntregue, StatusCancelado:
		return true
	}
	return false
}

// Statuses lists every storable status, in lifecycle order. Used to build
// filter dropdowns.
func Statuses() []Status {
	return []Status{StatusPendente, StatusProcessando, StatusEnviado, StatusEntregue, StatusCancelado}
}
