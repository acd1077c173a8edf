package reports

import (
	"context"
	"fmt"

	"github.com/xuri/excelize/v2"

	"github.com/jhoicas/Trazabilidad-api/internal/application/dto"
)

const movementsSheet = "Movimientos"

var movementHeaders = []string{
	"Fecha", "Lote", "Producto", "Tipo", "Estado", "Origen", "Destino", "Cantidad", "Unidad", "Latitud", "Longitud",
}

// ExportMovements genera un XLSX con los movimientos del período, en orden cronológico.
func (uc *UseCase) ExportMovements(ctx context.Context, period dto.DateRange) ([]byte, error) {
	rows, err := uc.repo.GetMovements(ctx, period.From, period.To)
	if err != nil {
		return nil, err
	}

	f := excelize.NewFile()
	defer f.Close()
	if err := f.SetSheetName("Sheet1", movementsSheet); err != nil {
		return nil, fmt.Errorf("xlsx: %w", err)
	}
	for i, h := range movementHeaders {
		cell, _ := excelize.CoordinatesToCellName(i+1, 1)
		if err := f.SetCellValue(movementsSheet, cell, h); err != nil {
			return nil, fmt.Errorf("xlsx: %w", err)
		}
	}
	bold, err := f.NewStyle(&excelize.Style{Font: &excelize.Font{Bold: true}})
	if err != nil {
		return nil, fmt.Errorf("xlsx: %w", err)
	}
	lastHeader, _ := excelize.CoordinatesToCellName(len(movementHeaders), 1)
	if err := f.SetCellStyle(movementsSheet, "A1", lastHeader, bold); err != nil {
		return nil, fmt.Errorf("xlsx: %w", err)
	}

	for i, m := range rows {
		values := []any{
			m.MovementDate.UTC().Format("2006-01-02 15:04:05"),
			m.BatchNumber,
			m.ProductName,
			m.Type,
			m.Status,
			m.OriginName,
			m.DestinationName,
			m.Quantity.InexactFloat64(),
			m.Unit,
			"",
			"",
		}
		if m.Latitude != nil && m.Longitude != nil {
			values[9], values[10] = m.Latitude.String(), m.Longitude.String()
		}
		cell, _ := excelize.CoordinatesToCellName(1, i+2)
		if err := f.SetSheetRow(movementsSheet, cell, &values); err != nil {
			return nil, fmt.Errorf("xlsx: %w", err)
		}
	}

	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, fmt.Errorf("xlsx: %w", err)
	}
	return buf.Bytes(), nil
}
