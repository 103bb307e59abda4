package ports

import "time"

// OperationRecorder registra el resultado y la duración de cada operación del ledger.
type OperationRecorder interface {
	ObserveOperation(operation string, started time.Time, err error)
}

// NopRecorder descarta las observaciones.
type NopRecorder struct{}

func (NopRecorder) ObserveOperation(string, time.Time, error) {}

// Clock permite fijar la hora en tests.
type Clock func() time.Time
