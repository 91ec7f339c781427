package http

import (
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/Kauan-Sabino/almoxarifado-api/internal/application/dto"
	"github.com/Kauan-Sabino/almoxarifado-api/internal/application/stock"
	"github.com/Kauan-Sabino/almoxarifado-api/internal/domain/entity"
	"github.com/Kauan-Sabino/almoxarifado-api/internal/domain/repository"
)

// StockHandler maneja las peticiones HTTP de movimientos de stock (protegido).
type StockHandler struct {
	uc *stock.MovementUseCase
}

// NewStockHandler construye el handler.
func NewStockHandler(uc *stock.MovementUseCase) *StockHandler {
	return &StockHandler{uc: uc}
}

// CreateMovement godoc
// @Summary      Registrar movimiento de stock (entrada o salida)
// @Tags         movements
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.CreateMovementRequest  true  "product_id, user_id, quantity, type (entry|exit), date opcional"
// @Success      201   {object}  dto.MovementResultResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/movements [post]
func (h *StockHandler) CreateMovement(c *fiber.Ctx) error {
	var in dto.CreateMovementRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	if err := dto.Validate(in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: err.Error()})
	}
	input := stock.ApplyInput{
		ProductID: in.ProductID,
		UserID:    in.UserID,
		Quantity:  in.Quantity,
		Type:      in.Type,
	}
	if in.Date != nil {
		input.Date = *in.Date
	}
	res, err := h.uc.Apply(c.Context(), input)
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(toMovementResult(res))
}

// CorrectMovement godoc
// @Summary      Corregir un movimiento existente (parche parcial)
// @Description  Deshace el efecto almacenado y aplica el nuevo en un solo paso
//               atómico; los campos ausentes conservan su valor.
// @Tags         movements
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id    path  string  true  "ID del movimiento"
// @Param        body  body  dto.CorrectMovementRequest  true  "campos a corregir"
// @Success      200   {object}  dto.MovementResultResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/movements/{id} [patch]
func (h *StockHandler) CorrectMovement(c *fiber.Ctx) error {
	var in dto.CorrectMovementRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	if err := dto.Validate(in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: err.Error()})
	}
	res, err := h.uc.Correct(c.Context(), c.Params("id"), stock.CorrectInput{
		Quantity: in.Quantity,
		Type:     in.Type,
		Date:     in.Date,
		UserID:   in.UserID,
	})
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(toMovementResult(res))
}

// ReverseMovement godoc
// @Summary      Eliminar un movimiento y revertir su efecto en el stock
// @Tags         movements
// @Security     Bearer
// @Produce      json
// @Param        id  path  string  true  "ID del movimiento"
// @Success      200  {object}  dto.ReverseResultResponse
// @Failure      400  {object}  dto.ErrorResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Failure      409  {object}  dto.ErrorResponse
// @Router       /api/movements/{id} [delete]
func (h *StockHandler) ReverseMovement(c *fiber.Ctx) error {
	res, err := h.uc.Reverse(c.Context(), c.Params("id"))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(dto.ReverseResultResponse{
		Message: "movimiento eliminado y stock revertido",
		Product: toProductDTO(res.Product),
	})
}

// GetMovement godoc
// @Summary      Obtener un movimiento por ID
// @Tags         movements
// @Security     Bearer
// @Produce      json
// @Param        id  path  string  true  "ID del movimiento"
// @Success      200  {object}  dto.MovementResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/movements/{id} [get]
func (h *StockHandler) GetMovement(c *fiber.Ctx) error {
	mov, err := h.uc.GetByID(c.Context(), c.Params("id"))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(toMovementDTO(mov))
}

// ListMovements godoc
// @Summary      Listar movimientos
// @Tags         movements
// @Security     Bearer
// @Produce      json
// @Param        product_id  query  string  false  "Filtrar por producto (UUID)"
// @Param        user_id     query  string  false  "Filtrar por actor (UUID)"
// @Param        type        query  string  false  "entry | exit"
// @Param        from        query  string  false  "Fecha desde (RFC3339)"
// @Param        to          query  string  false  "Fecha hasta (RFC3339)"
// @Success      200  {object}  dto.MovementListResponse
// @Failure      400  {object}  dto.ErrorResponse
// @Router       /api/movements [get]
func (h *StockHandler) ListMovements(c *fiber.Ctx) error {
	var page dto.PageRequest
	if err := c.QueryParser(&page); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "paginación inválida"})
	}
	page.DefaultPage()

	filter := repository.MovementFilter{
		ProductID: c.Query("product_id"),
		UserID:    c.Query("user_id"),
		Type:      c.Query("type"),
	}
	if raw := c.Query("from"); raw != "" {
		t, err := time.Parse(time.RFC3339, raw)
		if err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "from debe ser RFC3339"})
		}
		filter.From = &t
	}
	if raw := c.Query("to"); raw != "" {
		t, err := time.Parse(time.RFC3339, raw)
		if err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "to debe ser RFC3339"})
		}
		filter.To = &t
	}

	list, err := h.uc.List(c.Context(), filter, page.Limit, page.Offset)
	if err != nil {
		return respondError(c, err)
	}
	items := make([]dto.MovementResponse, 0, len(list))
	for _, m := range list {
		items = append(items, toMovementDTO(m))
	}
	return c.JSON(dto.MovementListResponse{
		Items: items,
		Page:  dto.PageResponse{Limit: page.Limit, Offset: page.Offset, Total: len(items)},
	})
}

func toMovementDTO(m *entity.Movement) dto.MovementResponse {
	return dto.MovementResponse{
		ID:        m.ID,
		ProductID: m.ProductID,
		Quantity:  m.Quantity,
		Type:      m.Type,
		Date:      m.Date,
		UserID:    m.UserID,
		CreatedAt: m.CreatedAt,
	}
}

func toProductDTO(p *entity.Product) dto.ProductResponse {
	return dto.ProductResponse{
		ID:           p.ID,
		Name:         p.Name,
		Description:  p.Description,
		Quantity:     p.Quantity,
		MinimumStock: p.MinimumStock,
		CreatedAt:    p.CreatedAt,
		UpdatedAt:    p.UpdatedAt,
	}
}

func toMovementResult(res *stock.Result) dto.MovementResultResponse {
	return dto.MovementResultResponse{
		Data:    toMovementDTO(res.Movement),
		Product: toProductDTO(res.Product),
		Alert:   res.Alert,
	}
}
