package geocoding

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/xuri/excelize/v2"

	"github.com/propdash/portfolio-service/internal/constants"
	"github.com/propdash/portfolio-service/internal/models"
	"github.com/propdash/portfolio-service/internal/utils"
)

const missingCoordinate = "N/A"

var exportHeader = []string{"ID", "Name", "Address", "Region", "Latitude", "Longitude"}

var bulkValidate = validator.New()

// ParseInput decodes a JSON array of property records. Each record needs
// an id, a name, an address and a region; otherwise nothing is returned.
func ParseInput(data []byte) ([]models.Property, error) {
	var props []models.Property
	if err := json.Unmarshal(data, &props); err != nil {
		return nil, fmt.Errorf("%w: input must be a JSON array of properties: %v", utils.ErrInvalidPayload, err)
	}
	if len(props) == 0 {
		return nil, fmt.Errorf("%w: input contains no properties", utils.ErrInvalidPayload)
	}
	if err := validateRecords(props); err != nil {
		return nil, err
	}
	return props, nil
}

func validateRecords(props []models.Property) error {
	for i, p := range props {
		if err := bulkValidate.Struct(p); err != nil {
			var verrs validator.ValidationErrors
			if errors.As(err, &verrs) && len(verrs) > 0 {
				return fmt.Errorf("%w: record %d: missing or invalid %s", utils.ErrInvalidPayload, i, verrs[0].Namespace())
			}
			return fmt.Errorf("%w: record %d: %v", utils.ErrInvalidPayload, i, err)
		}
	}
	return nil
}

// WriteJSON writes props as a 2-space indented JSON array.
func WriteJSON(w io.Writer, props []models.Property) error {
	out, err := json.MarshalIndent(props, "", "  ")
	if err != nil {
		return err
	}
	_, err = w.Write(out)
	return err
}

func exportRow(p models.Property) []string {
	return []string{
		p.ID,
		p.Name,
		p.Location.Address,
		p.Location.Region,
		formatCoordinate(p.Location.Lat),
		formatCoordinate(p.Location.Lng),
	}
}

func formatCoordinate(v *float64) string {
	if v == nil {
		return missingCoordinate
	}
	return strconv.FormatFloat(*v, 'f', -1, 64)
}

// WriteCSV writes the export columns with every cell double-quoted and
// "N/A" for missing coordinates. Rows are newline separated.
func WriteCSV(w io.Writer, props []models.Property) error {
	rows := make([]string, 0, len(props)+1)
	rows = append(rows, csvLine(exportHeader))
	for _, p := range props {
		rows = append(rows, csvLine(exportRow(p)))
	}
	_, err := io.WriteString(w, strings.Join(rows, "\n"))
	return err
}

func csvLine(cells []string) string {
	quoted := make([]string, len(cells))
	for i, c := range cells {
		quoted[i] = `"` + strings.ReplaceAll(c, `"`, `""`) + `"`
	}
	return strings.Join(quoted, ",")
}

// WriteXLSX writes the export columns to a single-sheet workbook.
// Coordinates are numeric cells.
func WriteXLSX(w io.Writer, props []models.Property) error {
	f := excelize.NewFile()

	sheet := constants.GeocodeSheetName
	if err := f.SetSheetName("Sheet1", sheet); err != nil {
		f.Close()
		return fmt.Errorf("failed to name sheet: %w", err)
	}

	header := make([]any, len(exportHeader))
	for i, h := range exportHeader {
		header[i] = h
	}
	if err := f.SetSheetRow(sheet, "A1", &header); err != nil {
		f.Close()
		return fmt.Errorf("failed to write header: %w", err)
	}

	for i, p := range props {
		cell, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			f.Close()
			return err
		}
		row := []any{
			p.ID,
			p.Name,
			p.Location.Address,
			p.Location.Region,
			xlsxCoordinate(p.Location.Lat),
			xlsxCoordinate(p.Location.Lng),
		}
		if err := f.SetSheetRow(sheet, cell, &row); err != nil {
			f.Close()
			return fmt.Errorf("failed to write row %d: %w", i+2, err)
		}
	}

	if err := f.SetPanes(sheet, &excelize.Panes{
		Freeze:      true,
		YSplit:      1,
		TopLeftCell: "A2",
		ActivePane:  "bottomLeft",
	}); err != nil {
		f.Close()
		return fmt.Errorf("failed to freeze header: %w", err)
	}

	if _, err := f.WriteTo(w); err != nil {
		f.Close()
		return fmt.Errorf("failed to write workbook: %w", err)
	}
	return f.Close()
}

func xlsxCoordinate(v *float64) any {
	if v == nil {
		return missingCoordinate
	}
	return *v
}

// ParseXLSX reads records from the first sheet of a workbook laid out like
// WriteXLSX output (ID, Name, Address, Region, optional coordinates).
func ParseXLSX(r io.Reader) ([]models.Property, error) {
	f, err := excelize.OpenReader(r)
	if err != nil {
		return nil, fmt.Errorf("%w: not a workbook: %v", utils.ErrInvalidPayload, err)
	}
	defer f.Close()

	sheets := f.GetSheetList()
	if len(sheets) == 0 {
		return nil, fmt.Errorf("%w: workbook has no sheets", utils.ErrInvalidPayload)
	}
	rows, err := f.GetRows(sheets[0])
	if err != nil {
		return nil, fmt.Errorf("%w: %v", utils.ErrInvalidPayload, err)
	}
	if len(rows) < 2 {
		return nil, fmt.Errorf("%w: input contains no properties", utils.ErrInvalidPayload)
	}

	props := make([]models.Property, 0, len(rows)-1)
	for _, row := range rows[1:] {
		cell := func(i int) string {
			if i < len(row) {
				return strings.TrimSpace(row[i])
			}
			return ""
		}
		props = append(props, models.Property{
			ID:   cell(0),
			Name: cell(1),
			Location: models.Location{
				Address: cell(2),
				Region:  cell(3),
				Lat:     parseCoordinate(cell(4)),
				Lng:     parseCoordinate(cell(5)),
			},
		})
	}
	if err := validateRecords(props); err != nil {
		return nil, err
	}
	return props, nil
}

func parseCoordinate(s string) *float64 {
	if s == "" || s == missingCoordinate {
		return nil
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return nil
	}
	return &v
}
