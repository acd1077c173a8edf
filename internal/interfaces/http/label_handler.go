package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/Trazabilidad-api/internal/application/dto"
	"github.com/jhoicas/Trazabilidad-api/internal/application/labels"
	"github.com/jhoicas/Trazabilidad-api/internal/application/usecase"
)

// LabelHandler plantillas ZPL, vista previa e impresión.
type LabelHandler struct {
	templates *usecase.LabelTemplateUseCase
	labels    *labels.UseCase
}

func NewLabelHandler(templates *usecase.LabelTemplateUseCase, labelsUC *labels.UseCase) *LabelHandler {
	return &LabelHandler{templates: templates, labels: labelsUC}
}

func (h *LabelHandler) CreateTemplate(c *fiber.Ctx) error {
	var in dto.CreateLabelTemplateRequest
	if err := parseBody(c, &in); err != nil {
		return writeError(c, err)
	}
	out, err := h.templates.Create(c.UserContext(), GetUserID(c), in)
	if err != nil {
		return writeError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

func (h *LabelHandler) GetTemplate(c *fiber.Ctx) error {
	out, err := h.templates.GetByID(c.UserContext(), c.Params("id"))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

func (h *LabelHandler) ListTemplates(c *fiber.Ctx) error {
	var q dto.LabelTemplateListQuery
	if err := parseQuery(c, &q); err != nil {
		return writeError(c, err)
	}
	out, err := h.templates.List(c.UserContext(), q)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

func (h *LabelHandler) UpdateTemplate(c *fiber.Ctx) error {
	var in dto.UpdateLabelTemplateRequest
	if err := parseBody(c, &in); err != nil {
		return writeError(c, err)
	}
	out, err := h.templates.Update(c.UserContext(), c.Params("id"), in)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

func (h *LabelHandler) DeleteTemplate(c *fiber.Ctx) error {
	if err := h.templates.Deactivate(c.UserContext(), c.Params("id")); err != nil {
		return writeError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}

// Preview godoc
// @Summary      Vista previa de etiqueta
// @Tags         labels
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.LabelPreviewRequest  true  "Lote y plantilla"
// @Success      200   {object}  dto.LabelPreviewResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Router       /api/labels/preview [post]
func (h *LabelHandler) Preview(c *fiber.Ctx) error {
	var in dto.LabelPreviewRequest
	if err := parseBody(c, &in); err != nil {
		return writeError(c, err)
	}
	out, err := h.labels.Preview(c.UserContext(), in)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// Print godoc
// @Summary      Imprimir etiquetas
// @Description  Siempre registra la impresión; status indica printed, failed o pending.
// @Tags         labels
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.LabelPrintRequest  true  "Lote, plantilla, cantidad e impresora"
// @Success      201   {object}  dto.LabelPrintResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Router       /api/labels/print [post]
func (h *LabelHandler) Print(c *fiber.Ctx) error {
	var in dto.LabelPrintRequest
	if err := parseBody(c, &in); err != nil {
		return writeError(c, err)
	}
	out, err := h.labels.Print(c.UserContext(), GetUserID(c), in)
	if err != nil {
		return writeError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// ListPrints GET /labels/prints?batch_id=
func (h *LabelHandler) ListPrints(c *fiber.Ctx) error {
	batchID := c.Query("batch_id")
	if batchID == "" {
		return writeError(c, &validationError{msg: "batch_id es obligatorio", details: map[string]string{"batch_id": "es obligatorio"}})
	}
	out, err := h.labels.ListPrints(c.UserContext(), batchID)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}
