package postgres

import (
	"errors"
	"net"

	"github.com/jackc/pgx/v5/pgconn"

	"github.com/Kauan-Sabino/almoxarifado-api/internal/domain"
)

// isSerializationFailure verifica si el error es un fallo de serialización o
// deadlock (40001, 40P01): el caller puede reintentar con una lectura fresca.
func isSerializationFailure(err error) bool {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return pgErr.Code == "40001" || pgErr.Code == "40P01"
	}
	return false
}

// classifyTxError traduce errores de infraestructura a los errores de dominio:
// fallos de serialización -> ErrConflict; errores de red/conexión ->
// ErrStorageUnavailable. Cualquier otro error se devuelve tal cual.
func classifyTxError(err error) error {
	if err == nil {
		return nil
	}
	if isSerializationFailure(err) {
		return domain.ErrConflict
	}
	var netErr net.Error
	if errors.As(err, &netErr) || pgconn.SafeToRetry(err) {
		return domain.ErrStorageUnavailable
	}
	var connErr *pgconn.ConnectError
	if errors.As(err, &connErr) {
		return domain.ErrStorageUnavailable
	}
	return err
}
