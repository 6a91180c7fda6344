package entity

import "time"

// SequenceCounter estado persistido del asignador de consecutivos.
// Exactamente una fila por cliente, creada junto con el Client.
//
// LastIssued es monótono: solo crece, vía incremento atómico en el datastore.
// Renombrar el código del cliente reescribe Prefix para emisiones futuras;
// LastIssued no se toca, así los consecutivos ya emitidos siguen válidos.
type SequenceCounter struct {
	ID         string
	CompanyID  string
	ClientID   string
	Prefix     string // copia del RefCode vigente del cliente
	LastIssued int64
	CreatedAt  time.Time
	UpdatedAt  time.Time
}
