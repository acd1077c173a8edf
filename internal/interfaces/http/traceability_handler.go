package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/Trazabilidad-api/internal/application/dto"
	"github.com/jhoicas/Trazabilidad-api/internal/application/traceability"
)

// TraceabilityHandler movimientos y proyecciones de la cadena de custodia.
type TraceabilityHandler struct {
	uc *traceability.UseCase
}

func NewTraceabilityHandler(uc *traceability.UseCase) *TraceabilityHandler {
	return &TraceabilityHandler{uc: uc}
}

// RecordMovement godoc
// @Summary      Registrar movimiento
// @Tags         traceability
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.RecordMovementRequest  true  "Movimiento del lote"
// @Success      201   {object}  dto.MovementResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Router       /api/traceability/movements [post]
func (h *TraceabilityHandler) RecordMovement(c *fiber.Ctx) error {
	var in dto.RecordMovementRequest
	if err := parseBody(c, &in); err != nil {
		return writeError(c, err)
	}
	out, err := h.uc.RecordMovement(c.UserContext(), GetUserID(c), in)
	if err != nil {
		return writeError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// ListMovements godoc
// @Summary      Listar movimientos
// @Tags         traceability
// @Security     Bearer
// @Produce      json
// @Param        batch_id       query  string  false  "Lote"
// @Param        company_id     query  string  false  "Empresa origen o destino"
// @Param        movement_type  query  string  false  "Tipo"
// @Param        from           query  string  false  "Desde (RFC 3339 o YYYY-MM-DD)"
// @Param        to             query  string  false  "Hasta (RFC 3339 o YYYY-MM-DD)"
// @Success      200  {object}  dto.MovementListResponse
// @Router       /api/traceability/movements [get]
func (h *TraceabilityHandler) ListMovements(c *fiber.Ctx) error {
	var q dto.MovementListQuery
	if err := parseQuery(c, &q); err != nil {
		return writeError(c, err)
	}
	out, err := h.uc.ListMovements(c.UserContext(), q)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// Chain godoc
// @Summary      Cadena de custodia del lote
// @Tags         traceability
// @Security     Bearer
// @Produce      json
// @Param        id   path  string  true  "ID del lote"
// @Success      200  {object}  dto.ChainResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/traceability/batches/{id}/chain [get]
func (h *TraceabilityHandler) Chain(c *fiber.Ctx) error {
	out, err := h.uc.GetChain(c.UserContext(), c.Params("id"))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// Holder godoc
// @Summary      Tenedor actual del lote
// @Description  Sale del último movimiento: su destino; sin destino sigue el origen, salvo en una venta (sin tenedor). Sin movimientos: la empresa del lote.
// @Tags         traceability
// @Security     Bearer
// @Produce      json
// @Param        id   path  string  true  "ID del lote"
// @Success      200  {object}  dto.HolderResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/traceability/batches/{id}/holder [get]
func (h *TraceabilityHandler) Holder(c *fiber.Ctx) error {
	out, err := h.uc.GetCurrentHolder(c.UserContext(), c.Params("id"))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// Trail godoc
// @Summary      Recorrido geográfico del lote
// @Description  Movimientos de la cadena que tienen coordenadas, en orden cronológico.
// @Tags         traceability
// @Security     Bearer
// @Produce      json
// @Param        id   path  string  true  "ID del lote"
// @Success      200  {object}  dto.TrailResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/traceability/batches/{id}/trail [get]
func (h *TraceabilityHandler) Trail(c *fiber.Ctx) error {
	out, err := h.uc.GetLocationTrail(c.UserContext(), c.Params("id"))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// PublicTrace godoc
// @Summary      Consulta pública de un lote
// @Description  Destino del código QR; no requiere autenticación.
// @Tags         traceability
// @Produce      json
// @Param        batch_number  path  string  true  "Número de lote"
// @Success      200  {object}  dto.PublicTraceResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/traceability/public/{batch_number} [get]
func (h *TraceabilityHandler) PublicTrace(c *fiber.Ctx) error {
	out, err := h.uc.GetPublicTrace(c.UserContext(), c.Params("batch_number"))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}
