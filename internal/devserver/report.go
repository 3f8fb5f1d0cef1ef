package devserver

import (
	"fmt"

	"github.com/xuri/excelize/v2"
)

const reportSheet = "Solicitudes"

var reportHeaders = []string{
	"ID",
	"Recibido",
	"Solicitante",
	"Cédula",
	"Centro de Costos",
	"No. Anticipo",
	"Fecha Inicio",
	"Fecha Final",
	"Ciudad Origen",
	"Ciudad Destino",
	"Dinero Entregado",
	"Saldo",
	"Conceptos",
}

// buildReport renders the stored submissions as one workbook, one row per
// request. The report always covers everything stored; the period label only
// tags the suggested file name.
func buildReport(subs []storedSubmission) ([]byte, error) {
	file := excelize.NewFile()
	defer file.Close()

	index, err := file.NewSheet(reportSheet)
	if err != nil {
		return nil, fmt.Errorf("creating sheet: %w", err)
	}
	file.SetActiveSheet(index)
	if err := file.DeleteSheet("Sheet1"); err != nil {
		return nil, fmt.Errorf("removing default sheet: %w", err)
	}

	for col, header := range reportHeaders {
		cell, err := excelize.CoordinatesToCellName(col+1, 1)
		if err != nil {
			return nil, err
		}
		if err := file.SetCellStr(reportSheet, cell, header); err != nil {
			return nil, fmt.Errorf("writing header: %w", err)
		}
	}

	for i, sub := range subs {
		req := sub.Request
		row := []interface{}{
			sub.ID,
			sub.ReceivedAt.Format("2006-01-02 15:04:05"),
			req.Solicitante,
			req.CedulaCiudadania,
			req.CentroCostos,
			req.NoAnticipo,
			req.FechaInicio,
			req.FechaFinal,
			req.CiudadOrigen,
			req.CiudadDestino,
			req.DineroEntregado.StringFixed(2),
			req.Saldo.StringFixed(2),
			len(req.Conceptos),
		}
		cell, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			return nil, err
		}
		if err := file.SetSheetRow(reportSheet, cell, &row); err != nil {
			return nil, fmt.Errorf("writing row %d: %w", i+2, err)
		}
	}

	buf, err := file.WriteToBuffer()
	if err != nil {
		return nil, fmt.Errorf("serializing workbook: %w", err)
	}
	return buf.Bytes(), nil
}
