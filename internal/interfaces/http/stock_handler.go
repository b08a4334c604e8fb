package http

import (
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/tu-usuario/caja-pos/internal/application/dto"
	"github.com/tu-usuario/caja-pos/internal/application/stock"
	"github.com/tu-usuario/caja-pos/internal/domain/repository"
)

// StockHandler maneja las peticiones HTTP del libro de stock (protegido).
type StockHandler struct {
	uc *stock.RegisterMovementUseCase
}

// NewStockHandler construye el handler.
func NewStockHandler(uc *stock.RegisterMovementUseCase) *StockHandler {
	return &StockHandler{uc: uc}
}

// RegisterMovement godoc
// @Summary      Registrar movimiento de stock
// @Description  Para type=adjustment, quantity es el valor absoluto final del stock; para in/out es el delta.
// @Tags         stock
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.RegisterMovementRequest  true  "product_id, type (in|out|adjustment), quantity, reason, note, reference"
// @Success      201   {object}  dto.RegisterMovementResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/stock/movements [post]
func (h *StockHandler) RegisterMovement(c *fiber.Ctx) error {
	userID := GetUserID(c)
	if userID == "" {
		return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "UNAUTHORIZED", Message: "token inválido"})
	}
	var in dto.RegisterMovementRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	resp, err := h.uc.RegisterMovementFromRequest(c.Context(), userID, in)
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(resp)
}

// History godoc
// @Summary      Historial de movimientos de un producto
// @Description  Orden cronológico inverso, paginado.
// @Tags         stock
// @Security     Bearer
// @Produce      json
// @Param        productId  path   string  true   "ID del producto"
// @Param        limit      query  int     false  "Tamaño de página (default 20)"
// @Param        offset     query  int     false  "Desplazamiento"
// @Success      200  {object}  dto.MovementListResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/stock/history/{productId} [get]
func (h *StockHandler) History(c *fiber.Ctx) error {
	var page dto.PageRequest
	if err := c.QueryParser(&page); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_QUERY", Message: "parámetros inválidos"})
	}
	list, err := h.uc.History(c.Params("productId"), page)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(list)
}

// List godoc
// @Summary      Listar movimientos de stock
// @Tags         stock
// @Security     Bearer
// @Produce      json
// @Param        type        query  string  false  "in, out o adjustment"
// @Param        reason      query  string  false  "purchase, sale, return, damage, adjustment, other"
// @Param        start_date  query  string  false  "YYYY-MM-DD (inclusive)"
// @Param        end_date    query  string  false  "YYYY-MM-DD (exclusive)"
// @Param        limit       query  int     false  "Tamaño de página (default 20)"
// @Param        offset      query  int     false  "Desplazamiento"
// @Success      200  {object}  dto.MovementListResponse
// @Failure      400  {object}  dto.ErrorResponse
// @Router       /api/stock/movements [get]
func (h *StockHandler) List(c *fiber.Ctx) error {
	var q dto.ListMovementsQuery
	if err := c.QueryParser(&q); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_QUERY", Message: "parámetros inválidos"})
	}
	filter := repository.MovementFilter{Type: q.Type, Reason: q.Reason}
	var ok bool
	if filter.From, ok = parseDate(q.StartDate); !ok {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_QUERY", Message: "start_date inválida (YYYY-MM-DD)"})
	}
	if filter.To, ok = parseDate(q.EndDate); !ok {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_QUERY", Message: "end_date inválida (YYYY-MM-DD)"})
	}
	list, err := h.uc.List(filter, q.PageRequest)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(list)
}

// parseDate interpreta YYYY-MM-DD; vacío devuelve nil sin error.
func parseDate(s string) (*time.Time, bool) {
	if s == "" {
		return nil, true
	}
	t, err := time.Parse("2006-01-02", s)
	if err != nil {
		return nil, false
	}
	return &t, true
}
