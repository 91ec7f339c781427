package stock

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/Kauan-Sabino/almoxarifado-api/internal/domain"
	"github.com/Kauan-Sabino/almoxarifado-api/internal/domain/entity"
	"github.com/Kauan-Sabino/almoxarifado-api/internal/domain/repository"
	domstock "github.com/Kauan-Sabino/almoxarifado-api/internal/domain/stock"
)

// MovementUseCase es el motor transaccional de movimientos de stock: aplica,
// corrige y revierte movimientos contra la cantidad del producto con bloqueo de
// fila (SELECT FOR UPDATE) y Commit/Rollback. Es el único escritor de
// Product.Quantity en todo el sistema.
type MovementUseCase struct {
	txRunner TxRunner
	movRepo  repository.MovementRepository
}

// NewMovementUseCase construye el caso de uso. movRepo se usa solo para lecturas
// fuera de transacción (GetByID, List); toda mutación pasa por txRunner.
func NewMovementUseCase(txRunner TxRunner, movRepo repository.MovementRepository) *MovementUseCase {
	return &MovementUseCase{txRunner: txRunner, movRepo: movRepo}
}

// ApplyInput entrada para registrar un movimiento de stock.
// Date es la fecha de negocio; si viene en cero se usa la hora actual.
type ApplyInput struct {
	ProductID string
	UserID    string
	Quantity  int64
	Type      string
	Date      time.Time
}

// CorrectInput parche parcial para corregir un movimiento existente. Los campos
// nil conservan el valor almacenado sin re-validación.
type CorrectInput struct {
	Quantity *int64
	Type     *string
	Date     *time.Time
	UserID   *string
}

// Result resultado de Apply/Correct: movimiento y producto ya persistidos más la
// alerta de stock bajo (nil si la cantidad resultante no está bajo el mínimo).
type Result struct {
	Movement *entity.Movement
	Product  *entity.Product
	Alert    *domstock.Alert
}

// ReverseResult resultado de Reverse: el producto con el stock ya revertido.
type ReverseResult struct {
	Product *entity.Product
}

// isValidID valida sintácticamente una referencia de identidad (UUID).
// La existencia del usuario no se verifica aquí: eso es del servicio de identidad.
func isValidID(id string) bool {
	_, err := uuid.Parse(id)
	return err == nil
}

// Apply registra un movimiento: valida, bloquea la fila del producto, calcula la
// cantidad resultante y persiste producto y movimiento en una sola transacción.
// Si la cantidad resultante fuera negativa devuelve ErrInsufficientStock sin
// crear ni modificar ningún registro.
func (uc *MovementUseCase) Apply(ctx context.Context, in ApplyInput) (*Result, error) {
	if !isValidID(in.ProductID) || !isValidID(in.UserID) {
		return nil, domain.ErrInvalidInput
	}
	if in.Quantity <= 0 {
		return nil, domain.ErrInvalidInput
	}
	if !entity.ValidMovementType(in.Type) {
		return nil, domain.ErrInvalidInput
	}
	date := in.Date
	if date.IsZero() {
		date = time.Now()
	}

	var res Result
	err := uc.txRunner.Run(ctx, func(
		movRepo repository.MovementRepository,
		productRepo repository.ProductRepository,
	) error {
		// Bloquea la fila del producto: dos salidas concurrentes sobre el mismo
		// producto no pueden validar ambas contra una lectura obsoleta.
		product, err := productRepo.GetForUpdate(in.ProductID)
		if err != nil {
			return err
		}
		if product == nil {
			return domain.ErrProductNotFound
		}

		mov := &entity.Movement{
			ID:        uuid.New().String(),
			ProductID: product.ID,
			Quantity:  in.Quantity,
			Type:      in.Type,
			Date:      date,
			UserID:    in.UserID,
			CreatedAt: time.Now(),
		}
		resulting := product.Quantity + mov.Delta()
		if resulting < 0 {
			return domain.ErrInsufficientStock
		}
		if err := productRepo.UpdateQuantity(product.ID, resulting); err != nil {
			return err
		}
		if err := movRepo.Create(mov); err != nil {
			return err
		}
		product.Quantity = resulting
		product.UpdatedAt = time.Now()
		res = Result{
			Movement: mov,
			Product:  product,
			Alert:    domstock.CheckLevel(resulting, product.MinimumStock),
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &res, nil
}

// Correct aplica un parche parcial a un movimiento y ajusta el stock del producto
// en un solo paso combinado: deshace el efecto almacenado y aplica el nuevo
// (resultante = cantidad - deltaViejo + deltaNuevo), nunca como dos escrituras
// visibles por separado. Valida cada campo presente igual que Apply.
func (uc *MovementUseCase) Correct(ctx context.Context, movementID string, patch CorrectInput) (*Result, error) {
	if !isValidID(movementID) {
		return nil, domain.ErrInvalidInput
	}
	if patch.Quantity != nil && *patch.Quantity <= 0 {
		return nil, domain.ErrInvalidInput
	}
	if patch.Type != nil && !entity.ValidMovementType(*patch.Type) {
		return nil, domain.ErrInvalidInput
	}
	if patch.Date != nil && patch.Date.IsZero() {
		return nil, domain.ErrInvalidInput
	}
	if patch.UserID != nil && !isValidID(*patch.UserID) {
		return nil, domain.ErrInvalidInput
	}

	var res Result
	err := uc.txRunner.Run(ctx, func(
		movRepo repository.MovementRepository,
		productRepo repository.ProductRepository,
	) error {
		mov, err := movRepo.GetForUpdate(movementID)
		if err != nil {
			return err
		}
		if mov == nil {
			return domain.ErrMovementNotFound
		}
		// El producto puede haber sido eliminado con movimientos aún apuntándole:
		// la corrección falla en vez de fingir éxito sin conciliar stock.
		product, err := productRepo.GetForUpdate(mov.ProductID)
		if err != nil {
			return err
		}
		if product == nil {
			return domain.ErrProductNotFound
		}

		oldDelta := mov.Delta()
		patched := *mov
		if patch.Quantity != nil {
			patched.Quantity = *patch.Quantity
		}
		if patch.Type != nil {
			patched.Type = *patch.Type
		}
		if patch.Date != nil {
			patched.Date = *patch.Date
		}
		if patch.UserID != nil {
			patched.UserID = *patch.UserID
		}

		resulting := product.Quantity - oldDelta + patched.Delta()
		if resulting < 0 {
			return domain.ErrInsufficientStock
		}
		if err := productRepo.UpdateQuantity(product.ID, resulting); err != nil {
			return err
		}
		if err := movRepo.Update(&patched); err != nil {
			return err
		}
		product.Quantity = resulting
		product.UpdatedAt = time.Now()
		res = Result{
			Movement: &patched,
			Product:  product,
			Alert:    domstock.CheckLevel(resulting, product.MinimumStock),
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &res, nil
}

// Reverse elimina un movimiento y devuelve su efecto al stock (una salida
// eliminada suma cantidad; una entrada eliminada la resta). Si revertir dejaría
// stock negativo falla con ErrInsufficientStock y el movimiento no se elimina.
func (uc *MovementUseCase) Reverse(ctx context.Context, movementID string) (*ReverseResult, error) {
	if !isValidID(movementID) {
		return nil, domain.ErrInvalidInput
	}

	var res ReverseResult
	err := uc.txRunner.Run(ctx, func(
		movRepo repository.MovementRepository,
		productRepo repository.ProductRepository,
	) error {
		mov, err := movRepo.GetForUpdate(movementID)
		if err != nil {
			return err
		}
		if mov == nil {
			return domain.ErrMovementNotFound
		}
		product, err := productRepo.GetForUpdate(mov.ProductID)
		if err != nil {
			return err
		}
		if product == nil {
			return domain.ErrProductNotFound
		}

		resulting := product.Quantity - mov.Delta()
		if resulting < 0 {
			return domain.ErrInsufficientStock
		}
		if err := productRepo.UpdateQuantity(product.ID, resulting); err != nil {
			return err
		}
		if err := movRepo.Delete(mov.ID); err != nil {
			return err
		}
		product.Quantity = resulting
		product.UpdatedAt = time.Now()
		res = ReverseResult{Product: product}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &res, nil
}

// GetByID obtiene un movimiento por ID (lectura fuera de transacción).
func (uc *MovementUseCase) GetByID(ctx context.Context, id string) (*entity.Movement, error) {
	if !isValidID(id) {
		return nil, domain.ErrInvalidInput
	}
	mov, err := uc.movRepo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if mov == nil {
		return nil, domain.ErrMovementNotFound
	}
	return mov, nil
}

// List lista movimientos con filtros opcionales por producto, usuario, tipo y
// rango de fechas. Valida sintácticamente los filtros presentes.
func (uc *MovementUseCase) List(ctx context.Context, filter repository.MovementFilter, limit, offset int) ([]*entity.Movement, error) {
	if filter.ProductID != "" && !isValidID(filter.ProductID) {
		return nil, domain.ErrInvalidInput
	}
	if filter.UserID != "" && !isValidID(filter.UserID) {
		return nil, domain.ErrInvalidInput
	}
	if filter.Type != "" && !entity.ValidMovementType(filter.Type) {
		return nil, domain.ErrInvalidInput
	}
	return uc.movRepo.List(filter, limit, offset)
}
