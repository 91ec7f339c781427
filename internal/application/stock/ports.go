package stock

import (
	"context"

	"github.com/Kauan-Sabino/almoxarifado-api/internal/domain/repository"
)

// TxRunner ejecuta una función dentro de una transacción del almacén de datos,
// pasando repositorios atados a esa transacción. Garantiza commit-o-rollback en
// toda salida (éxito, fallo de validación o error): la mutación del producto y la
// del movimiento se persisten como unidad atómica o no se persiste ninguna.
type TxRunner interface {
	Run(ctx context.Context, fn func(
		movRepo repository.MovementRepository,
		productRepo repository.ProductRepository,
	) error) error
}
