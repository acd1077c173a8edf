package http

import (
	"fmt"
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/Trazabilidad-api/internal/application/dto"
	"github.com/jhoicas/Trazabilidad-api/internal/application/reports"
)

const xlsxContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

// ReportHandler dashboard y reportes de movimientos.
type ReportHandler struct {
	uc *reports.UseCase
}

func NewReportHandler(uc *reports.UseCase) *ReportHandler {
	return &ReportHandler{uc: uc}
}

// Dashboard godoc
// @Summary      Indicadores del dashboard
// @Tags         reports
// @Security     Bearer
// @Produce      json
// @Success      200  {object}  dto.DashboardResponse
// @Router       /api/reports/dashboard [get]
func (h *ReportHandler) Dashboard(c *fiber.Ctx) error {
	out, err := h.uc.Dashboard(c.UserContext())
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// Movements godoc
// @Summary      Movimientos por tipo y por empresa
// @Tags         reports
// @Security     Bearer
// @Produce      json
// @Param        from  query  string  false  "Desde"
// @Param        to    query  string  false  "Hasta"
// @Success      200  {object}  dto.MovementReportResponse
// @Failure      400  {object}  dto.ErrorResponse
// @Router       /api/reports/movements [get]
func (h *ReportHandler) Movements(c *fiber.Ctx) error {
	period, err := h.period(c)
	if err != nil {
		return writeError(c, err)
	}
	out, err := h.uc.MovementReport(c.UserContext(), period)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// ExportMovements descarga el XLSX de movimientos del período.
func (h *ReportHandler) ExportMovements(c *fiber.Ctx) error {
	period, err := h.period(c)
	if err != nil {
		return writeError(c, err)
	}
	data, err := h.uc.ExportMovements(c.UserContext(), period)
	if err != nil {
		return writeError(c, err)
	}
	c.Attachment(fmt.Sprintf("movimientos-%s.xlsx", time.Now().Format("20060102")))
	c.Set(fiber.HeaderContentType, xlsxContentType)
	return c.Send(data)
}

func (h *ReportHandler) period(c *fiber.Ctx) (dto.DateRange, error) {
	var q dto.DateRangeQuery
	if err := parseQuery(c, &q); err != nil {
		return dto.DateRange{}, err
	}
	return q.Parse()
}
