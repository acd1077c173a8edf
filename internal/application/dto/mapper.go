package dto

import (
	"github.com/shopspring/decimal"

	"github.com/jhoicas/Trazabilidad-api/internal/domain/entity"
)

// FromUser convierte la entidad en respuesta (sin hash).
func FromUser(u *entity.User) UserResponse {
	return UserResponse{
		ID:          u.ID,
		Name:        u.Name,
		Email:       u.Email,
		Role:        u.Role,
		AvatarURL:   u.AvatarURL,
		HasPassword: u.HasPassword(),
		GitHub:      u.GitHubID != "",
		CreatedAt:   u.CreatedAt,
		UpdatedAt:   u.UpdatedAt,
	}
}

func FromCompany(c *entity.Company) CompanyResponse {
	lat, lon := splitGeo(c.Location)
	return CompanyResponse{
		ID:           c.ID,
		Name:         c.Name,
		TradingName:  c.TradingName,
		Document:     c.Document,
		DocumentType: c.DocumentType,
		CompanyType:  c.CompanyType,
		TypeClass:    entity.ClassifyCompanyType(c.CompanyType),
		Email:        c.Email,
		Phone:        c.Phone,
		Website:      c.Website,
		LogoURL:      c.LogoURL,
		Address:      c.Address,
		Latitude:     lat,
		Longitude:    lon,
		Active:       c.Active,
		CreatedBy:    c.CreatedBy,
		CreatedAt:    c.CreatedAt,
		UpdatedAt:    c.UpdatedAt,
	}
}

func FromProduct(p *entity.Product) ProductResponse {
	return ProductResponse{
		ID:              p.ID,
		Name:            p.Name,
		Description:     p.Description,
		SKU:             p.SKU,
		Barcode:         p.Barcode,
		Category:        p.Category,
		Brand:           p.Brand,
		Unit:            p.Unit,
		Weight:          p.Weight,
		WeightUnit:      p.WeightUnit,
		NutritionalInfo: p.NutritionalInfo,
		Variety:         p.Variety,
		Cultivar:        p.Cultivar,
		Origin:          p.Origin,
		ImageURL:        p.ImageURL,
		Active:          p.Active,
		CreatedBy:       p.CreatedBy,
		CreatedAt:       p.CreatedAt,
		UpdatedAt:       p.UpdatedAt,
	}
}

func FromBatch(b *entity.Batch) BatchResponse {
	return BatchResponse{
		ID:             b.ID,
		BatchNumber:    b.BatchNumber,
		ProductID:      b.ProductID,
		CompanyID:      b.CompanyID,
		Quantity:       b.Quantity,
		Unit:           b.Unit,
		ProductionDate: b.ProductionDate,
		ExpirationDate: b.ExpirationDate,
		Status:         b.Status,
		StatusClass:    entity.ClassifyBatchStatus(b.Status),
		QRCode:         b.QRCode,
		Barcode:        b.Barcode,
		AdditionalInfo: b.AdditionalInfo,
		CreatedBy:      b.CreatedBy,
		CreatedAt:      b.CreatedAt,
		UpdatedAt:      b.UpdatedAt,
	}
}

func FromMovement(m *entity.Movement) MovementResponse {
	lat, lon := splitGeo(m.Location)
	return MovementResponse{
		ID:                   m.ID,
		Seq:                  m.Seq,
		BatchID:              m.BatchID,
		OriginCompanyID:      m.OriginCompanyID,
		DestinationCompanyID: m.DestinationCompanyID,
		Quantity:             m.Quantity,
		Unit:                 m.Unit,
		MovementType:         string(m.Type),
		Status:               m.Status,
		MovementDate:         m.MovementDate,
		Latitude:             lat,
		Longitude:            lon,
		AdditionalInfo:       m.AdditionalInfo,
		CreatedBy:            m.CreatedBy,
		CreatedAt:            m.CreatedAt,
	}
}

func FromLabelTemplate(t *entity.LabelTemplate) LabelTemplateResponse {
	return LabelTemplateResponse{
		ID:          t.ID,
		Name:        t.Name,
		Description: t.Description,
		Width:       t.Width,
		Height:      t.Height,
		Unit:        t.Unit,
		Fields:      t.Fields,
		ZPLTemplate: t.ZPLTemplate,
		PreviewURL:  t.PreviewURL,
		Active:      t.Active,
		CreatedBy:   t.CreatedBy,
		CreatedAt:   t.CreatedAt,
		UpdatedAt:   t.UpdatedAt,
	}
}

func FromLabelPrint(p *entity.LabelPrint) LabelPrintResponse {
	return LabelPrintResponse{
		ID:              p.ID,
		BatchID:         p.BatchID,
		LabelTemplateID: p.LabelTemplateID,
		Quantity:        p.Quantity,
		ZPLData:         p.ZPLData,
		PrinterName:     p.PrinterName,
		PrinterIP:       p.PrinterIP,
		PrinterPort:     p.PrinterPort,
		Status:          p.Status,
		PrintDate:       p.PrintDate,
		CreatedBy:       p.CreatedBy,
	}
}

func splitGeo(g *entity.GeoPoint) (lat, lon *decimal.Decimal) {
	if g == nil {
		return nil, nil
	}
	la, lo := g.Latitude, g.Longitude
	return &la, &lo
}
