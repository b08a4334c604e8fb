package http

import (
	"github.com/gofiber/fiber/v2"
	"github.com/tu-usuario/caja-pos/internal/application/dto"
	"github.com/tu-usuario/caja-pos/internal/application/sales"
	"github.com/tu-usuario/caja-pos/internal/domain/repository"
)

// SaleHandler maneja las peticiones HTTP de ventas (protegido).
type SaleHandler struct {
	uc      *sales.CreateSaleUseCase
	receipt *sales.ReceiptUseCase
}

// NewSaleHandler construye el handler.
func NewSaleHandler(uc *sales.CreateSaleUseCase, receipt *sales.ReceiptUseCase) *SaleHandler {
	return &SaleHandler{uc: uc, receipt: receipt}
}

// Create godoc
// @Summary      Registrar venta
// @Description  Convierte el carrito en una venta confirmada, descuenta el stock y genera los movimientos en una sola transacción. Los precios se capturan del catálogo, no del caller.
// @Tags         sales
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.CreateSaleRequest  true  "items (product_id + quantity), discount, payment_method, note"
// @Success      201   {object}  dto.SaleResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/sales [post]
func (h *SaleHandler) Create(c *fiber.Ctx) error {
	userID := GetUserID(c)
	if userID == "" {
		return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "UNAUTHORIZED", Message: "token inválido"})
	}
	var in dto.CreateSaleRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	sale, err := h.uc.CreateSale(c.Context(), userID, in)
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(sale)
}

// List godoc
// @Summary      Listar ventas
// @Tags         sales
// @Security     Bearer
// @Produce      json
// @Param        status      query  string  false  "completed, cancelled o refunded"
// @Param        start_date  query  string  false  "YYYY-MM-DD (inclusive)"
// @Param        end_date    query  string  false  "YYYY-MM-DD (exclusive)"
// @Param        limit       query  int     false  "Tamaño de página (default 20)"
// @Param        offset      query  int     false  "Desplazamiento"
// @Success      200  {object}  dto.SaleListResponse
// @Failure      400  {object}  dto.ErrorResponse
// @Router       /api/sales [get]
func (h *SaleHandler) List(c *fiber.Ctx) error {
	var q dto.ListSalesQuery
	if err := c.QueryParser(&q); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_QUERY", Message: "parámetros inválidos"})
	}
	filter := repository.SaleFilter{Status: q.Status}
	var ok bool
	if filter.From, ok = parseDate(q.StartDate); !ok {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_QUERY", Message: "start_date inválida (YYYY-MM-DD)"})
	}
	if filter.To, ok = parseDate(q.EndDate); !ok {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_QUERY", Message: "end_date inválida (YYYY-MM-DD)"})
	}
	list, err := h.uc.ListSales(filter, q.PageRequest)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(list)
}

// GetByID godoc
// @Summary      Obtener venta por ID
// @Description  Incluye las líneas en el orden original del carrito.
// @Tags         sales
// @Security     Bearer
// @Produce      json
// @Param        id  path  string  true  "ID de la venta"
// @Success      200  {object}  dto.SaleResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/sales/{id} [get]
func (h *SaleHandler) GetByID(c *fiber.Ctx) error {
	sale, err := h.uc.GetSale(c.Params("id"))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(sale)
}

// TodaySummary godoc
// @Summary      Resumen de ventas del día
// @Description  Conteo, total, ganancia y unidades vendidas de las ventas completadas de hoy.
// @Tags         sales
// @Security     Bearer
// @Produce      json
// @Success      200  {object}  dto.TodaySummaryResponse
// @Failure      401  {object}  dto.ErrorResponse
// @Router       /api/sales/summary/today [get]
func (h *SaleHandler) TodaySummary(c *fiber.Ctx) error {
	summary, err := h.uc.TodaySummary()
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(summary)
}

// Receipt godoc
// @Summary      Ticket PDF de una venta
// @Tags         sales
// @Security     Bearer
// @Produce      application/pdf
// @Param        id  path  string  true  "ID de la venta"
// @Success      200  {file}    binary
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/sales/{id}/receipt [get]
func (h *SaleHandler) Receipt(c *fiber.Ctx) error {
	pdfBytes, err := h.receipt.GetReceiptPDF(c.Context(), c.Params("id"))
	if err != nil {
		return respondError(c, err)
	}
	c.Set(fiber.HeaderContentType, "application/pdf")
	c.Set(fiber.HeaderContentDisposition, `inline; filename="ticket.pdf"`)
	return c.Send(pdfBytes)
}
