package usecase

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/jhoicas/Trazabilidad-api/internal/application/dto"
	"github.com/jhoicas/Trazabilidad-api/internal/domain"
	"github.com/jhoicas/Trazabilidad-api/internal/domain/entity"
	"github.com/jhoicas/Trazabilidad-api/internal/domain/repository"
)

// LabelTemplateUseCase CRUD de plantillas ZPL.
type LabelTemplateUseCase struct {
	repo repository.LabelTemplateRepository
}

func NewLabelTemplateUseCase(repo repository.LabelTemplateRepository) *LabelTemplateUseCase {
	return &LabelTemplateUseCase{repo: repo}
}

// Create crea una plantilla. Unidad por defecto mm; fields por defecto [].
func (uc *LabelTemplateUseCase) Create(ctx context.Context, userID string, in dto.CreateLabelTemplateRequest) (*dto.LabelTemplateResponse, error) {
	if strings.TrimSpace(in.ZPLTemplate) == "" {
		return nil, fmt.Errorf("zpl_template obligatorio: %w", domain.ErrValidation)
	}
	if in.Width <= 0 || in.Height <= 0 {
		return nil, fmt.Errorf("dimensiones inválidas: %w", domain.ErrValidation)
	}
	fields, err := normalizeFields(in.Fields)
	if err != nil {
		return nil, err
	}
	unit := in.Unit
	if unit == "" {
		unit = "mm"
	}
	now := time.Now()
	tpl := &entity.LabelTemplate{
		ID:          uuid.New().String(),
		Name:        strings.TrimSpace(in.Name),
		Description: in.Description,
		Width:       in.Width,
		Height:      in.Height,
		Unit:        unit,
		Fields:      fields,
		ZPLTemplate: in.ZPLTemplate,
		PreviewURL:  in.PreviewURL,
		Active:      true,
		CreatedBy:   userID,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	if err := uc.repo.Create(ctx, tpl); err != nil {
		return nil, err
	}
	out := dto.FromLabelTemplate(tpl)
	return &out, nil
}

func (uc *LabelTemplateUseCase) GetByID(ctx context.Context, id string) (*dto.LabelTemplateResponse, error) {
	tpl, err := uc.get(ctx, id)
	if err != nil {
		return nil, err
	}
	out := dto.FromLabelTemplate(tpl)
	return &out, nil
}

func (uc *LabelTemplateUseCase) List(ctx context.Context, q dto.LabelTemplateListQuery) (*dto.LabelTemplateListResponse, error) {
	q.DefaultPage()
	list, total, err := uc.repo.List(ctx, repository.LabelTemplateFilter{
		Page:       repository.Page{Limit: q.Limit, Offset: q.Offset},
		ActiveOnly: q.ActiveOnly,
	})
	if err != nil {
		return nil, err
	}
	items := make([]dto.LabelTemplateResponse, 0, len(list))
	for _, t := range list {
		items = append(items, dto.FromLabelTemplate(t))
	}
	return &dto.LabelTemplateListResponse{
		Items: items,
		Page:  dto.PageResponse{Limit: q.Limit, Offset: q.Offset, Total: total},
	}, nil
}

func (uc *LabelTemplateUseCase) Update(ctx context.Context, id string, in dto.UpdateLabelTemplateRequest) (*dto.LabelTemplateResponse, error) {
	tpl, err := uc.get(ctx, id)
	if err != nil {
		return nil, err
	}
	setIfPresent(&tpl.Name, in.Name)
	setIfPresent(&tpl.Description, in.Description)
	if in.Width != nil {
		tpl.Width = *in.Width
	}
	if in.Height != nil {
		tpl.Height = *in.Height
	}
	if tpl.Width <= 0 || tpl.Height <= 0 {
		return nil, fmt.Errorf("dimensiones inválidas: %w", domain.ErrValidation)
	}
	setIfPresent(&tpl.Unit, in.Unit)
	if len(in.Fields) > 0 {
		fields, err := normalizeFields(in.Fields)
		if err != nil {
			return nil, err
		}
		tpl.Fields = fields
	}
	if in.ZPLTemplate != nil {
		if strings.TrimSpace(*in.ZPLTemplate) == "" {
			return nil, fmt.Errorf("zpl_template obligatorio: %w", domain.ErrValidation)
		}
		tpl.ZPLTemplate = *in.ZPLTemplate
	}
	setIfPresent(&tpl.PreviewURL, in.PreviewURL)
	if in.Active != nil {
		tpl.Active = *in.Active
	}
	tpl.UpdatedAt = time.Now()
	if err := uc.repo.Update(ctx, tpl); err != nil {
		return nil, err
	}
	out := dto.FromLabelTemplate(tpl)
	return &out, nil
}

// Deactivate retira la plantilla; las impresiones históricas la siguen referenciando.
func (uc *LabelTemplateUseCase) Deactivate(ctx context.Context, id string) error {
	if _, err := uc.get(ctx, id); err != nil {
		return err
	}
	return uc.repo.SetActive(ctx, id, false)
}

func (uc *LabelTemplateUseCase) get(ctx context.Context, id string) (*entity.LabelTemplate, error) {
	tpl, err := uc.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if tpl == nil {
		return nil, fmt.Errorf("plantilla %s: %w", id, domain.ErrNotFound)
	}
	return tpl, nil
}

// normalizeFields exige un arreglo JSON; vacío se guarda como [].
func normalizeFields(raw json.RawMessage) (json.RawMessage, error) {
	if len(raw) == 0 || string(raw) == "null" {
		return json.RawMessage("[]"), nil
	}
	var arr []json.RawMessage
	if err := json.Unmarshal(raw, &arr); err != nil {
		return nil, fmt.Errorf("fields debe ser un arreglo JSON: %w", domain.ErrValidation)
	}
	return raw, nil
}
