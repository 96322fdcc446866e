package transfer

import (
	"bytes"
	"context"
	"encoding/csv"
	"errors"
	"fmt"
	"reflect"
	"sort"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/mmdatafocus/blending_backend/models"
	"github.com/mmdatafocus/blending_backend/utils"
	"github.com/shopspring/decimal"
	"github.com/xuri/excelize/v2"
)

type ImportedRow struct {
	Row  int               `json:"row"`
	Data map[string]string `json:"data"`
}

type FailedRow struct {
	Row   int               `json:"row"`
	Data  map[string]string `json:"data"`
	Error string            `json:"error"`
}

type ImportSummary struct {
	Total      int `json:"total"`
	Successful int `json:"successful"`
	Failed     int `json:"failed"`
}

type ImportResult struct {
	Successful []ImportedRow `json:"successful"`
	Failed     []FailedRow   `json:"failed"`
	Summary    ImportSummary `json:"summary"`
}

var validate = newRowValidator()

func newRowValidator() *validator.Validate {
	v := validator.New()
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		return fld.Tag.Get("csv")
	})
	return v
}

// Import parses an uploaded delimited-text or xlsx file and creates one
// record per valid row. Rows fail independently: a bad row goes into the
// failed list with its row number and message, and the batch continues.
func Import(ctx context.Context, store *models.Store, entityKey string, filename string, data []byte) (*ImportResult, error) {
	columns, ok := exportColumns[entityKey]
	if !ok {
		return nil, fmt.Errorf("unknown entity key %q", entityKey)
	}

	rows, err := parseRows(filename, data)
	if err != nil {
		return nil, err
	}
	if len(rows) == 0 {
		return nil, errors.New("file has no header row")
	}

	header := make(map[string]int)
	for i, name := range rows[0] {
		header[strings.ToLower(strings.TrimSpace(name))] = i
	}

	result := &ImportResult{
		Successful: []ImportedRow{},
		Failed:     []FailedRow{},
	}

	for idx, raw := range rows[1:] {
		rowNo := idx + 2
		if isBlankRow(raw) {
			continue
		}

		cells := make(map[string]string)
		for _, column := range columns {
			if pos, ok := header[column]; ok && pos < len(raw) {
				cells[column] = strings.TrimSpace(raw[pos])
			}
		}

		result.Summary.Total++
		if err := createFromRow(ctx, store, entityKey, cells); err != nil {
			result.Failed = append(result.Failed, FailedRow{Row: rowNo, Data: cells, Error: err.Error()})
			result.Summary.Failed++
			continue
		}
		result.Successful = append(result.Successful, ImportedRow{Row: rowNo, Data: cells})
		result.Summary.Successful++
	}

	return result, nil
}

func parseRows(filename string, data []byte) ([][]string, error) {
	if strings.HasSuffix(strings.ToLower(filename), ".xlsx") {
		f, err := excelize.OpenReader(bytes.NewReader(data))
		if err != nil {
			return nil, fmt.Errorf("unable to open spreadsheet: %v", err)
		}
		defer f.Close()

		sheets := f.GetSheetList()
		if len(sheets) == 0 {
			return nil, errors.New("spreadsheet has no sheets")
		}
		rows, err := f.GetRows(sheets[0])
		if err != nil {
			return nil, fmt.Errorf("unable to read sheet: %v", err)
		}
		return rows, nil
	}

	reader := csv.NewReader(bytes.NewReader(data))
	reader.FieldsPerRecord = -1
	reader.TrimLeadingSpace = true
	rows, err := reader.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("unable to parse delimited text: %v", err)
	}
	return rows, nil
}

func isBlankRow(raw []string) bool {
	for _, cell := range raw {
		if strings.TrimSpace(cell) != "" {
			return false
		}
	}
	return true
}

func createFromRow(ctx context.Context, store *models.Store, entityKey string, cells map[string]string) error {
	switch entityKey {
	case models.EntityKeyCommodities:
		return createCommodityFromRow(ctx, store, cells)
	case models.EntityKeyUOMs:
		return createUOMFromRow(ctx, store, cells)
	case models.EntityKeyLocations:
		return createLocationFromRow(ctx, store, cells)
	case models.EntityKeyCounterParties:
		return createCounterPartyFromRow(ctx, store, cells)
	case models.EntityKeyBlends:
		return createBlendFromRow(ctx, store, cells)
	case models.EntityKeyBlendComponents:
		return createBlendComponentFromRow(ctx, store, cells)
	case models.EntityKeyCapacity:
		return createCapacityFromRow(ctx, store, cells)
	}
	return fmt.Errorf("unknown entity key %q", entityKey)
}

func createCommodityFromRow(ctx context.Context, store *models.Store, cells map[string]string) error {
	row := struct {
		Name string `csv:"name" validate:"required"`
	}{Name: cells["name"]}
	if err := validate.Struct(row); err != nil {
		return rowValidationError(err)
	}

	input := &models.NewCommodity{Name: &row.Name}
	if v, ok := nonEmpty(cells, "description"); ok {
		input.Description = &v
	}
	if v, ok := nonEmpty(cells, "uom_id"); ok {
		id, err := utils.ParseInt(v)
		if err != nil {
			return fmt.Errorf("uom_id: %v", err)
		}
		input.UomId = &id
	}
	if v, ok := nonEmpty(cells, "density"); ok {
		d, err := utils.ParseDecimal(v)
		if err != nil {
			return fmt.Errorf("density: %v", err)
		}
		input.Density = &d
	}
	if v, ok := nonEmpty(cells, "energy_uom"); ok {
		input.EnergyUom = &v
	}
	active, err := activeCell(cells)
	if err != nil {
		return err
	}
	input.IsActive = active

	_, err = store.CreateCommodity(ctx, input)
	return err
}

func createUOMFromRow(ctx context.Context, store *models.Store, cells map[string]string) error {
	row := struct {
		Name string `csv:"name" validate:"required"`
	}{Name: cells["name"]}
	if err := validate.Struct(row); err != nil {
		return rowValidationError(err)
	}

	input := &models.NewUOM{Name: &row.Name}
	if v, ok := nonEmpty(cells, "description"); ok {
		input.Description = &v
	}
	if v, ok := nonEmpty(cells, "type"); ok {
		input.Type = &v
	}
	if v, ok := nonEmpty(cells, "base_uom"); ok {
		d, err := utils.ParseDecimal(v)
		if err != nil {
			return fmt.Errorf("base_uom: %v", err)
		}
		input.BaseUom = &d
	}
	active, err := activeCell(cells)
	if err != nil {
		return err
	}
	input.IsActive = active

	_, err = store.CreateUOM(ctx, input)
	return err
}

func createLocationFromRow(ctx context.Context, store *models.Store, cells map[string]string) error {
	row := struct {
		Name string `csv:"name" validate:"required"`
	}{Name: cells["name"]}
	if err := validate.Struct(row); err != nil {
		return rowValidationError(err)
	}

	input := &models.NewLocation{Name: &row.Name}
	if v, ok := nonEmpty(cells, "location_type"); ok {
		input.LocationType = &v
	}
	if v, ok := nonEmpty(cells, "address"); ok {
		input.Address = &v
	}
	if v, ok := nonEmpty(cells, "counterparty_id"); ok {
		id, err := utils.ParseInt(v)
		if err != nil {
			return fmt.Errorf("counterparty_id: %v", err)
		}
		input.CounterPartyId = &id
	}
	active, err := activeCell(cells)
	if err != nil {
		return err
	}
	input.IsActive = active

	_, err = store.CreateLocation(ctx, input)
	return err
}

func createCounterPartyFromRow(ctx context.Context, store *models.Store, cells map[string]string) error {
	row := struct {
		Name         string `csv:"name" validate:"required"`
		CreditStatus string `csv:"credit_status" validate:"omitempty,oneof=approved pending rejected unset"`
	}{Name: cells["name"], CreditStatus: strings.ToLower(cells["credit_status"])}
	if err := validate.Struct(row); err != nil {
		return rowValidationError(err)
	}

	input := &models.NewCounterParty{Name: &row.Name}
	if v, ok := nonEmpty(cells, "type"); ok {
		input.Type = &v
	}
	if v, ok := nonEmpty(cells, "contact_info"); ok {
		input.ContactInfo = &v
	}
	if row.CreditStatus != "" {
		status := models.CreditStatus(row.CreditStatus)
		input.CreditStatus = &status
	}
	active, err := activeCell(cells)
	if err != nil {
		return err
	}
	input.IsActive = active

	_, err = store.CreateCounterParty(ctx, input)
	return err
}

func createBlendFromRow(ctx context.Context, store *models.Store, cells map[string]string) error {
	row := struct {
		Name string `csv:"name" validate:"required"`
	}{Name: cells["name"]}
	if err := validate.Struct(row); err != nil {
		return rowValidationError(err)
	}

	input := &models.NewBlend{Name: &row.Name}
	if v, ok := nonEmpty(cells, "commodity_id"); ok {
		id, err := utils.ParseInt(v)
		if err != nil {
			return fmt.Errorf("commodity_id: %v", err)
		}
		input.CommodityId = &id
	}
	if v, ok := nonEmpty(cells, "description"); ok {
		input.Description = &v
	}
	active, err := activeCell(cells)
	if err != nil {
		return err
	}
	input.IsActive = active

	_, err = store.CreateBlend(ctx, input)
	return err
}

func createBlendComponentFromRow(ctx context.Context, store *models.Store, cells map[string]string) error {
	row := struct {
		BlendId              string `csv:"blend_id" validate:"required"`
		ComponentCommodityId string `csv:"component_commodity_id" validate:"required"`
		Percentage           string `csv:"percentage" validate:"required"`
	}{
		BlendId:              cells["blend_id"],
		ComponentCommodityId: cells["component_commodity_id"],
		Percentage:           cells["percentage"],
	}
	if err := validate.Struct(row); err != nil {
		return rowValidationError(err)
	}

	blendId, err := utils.ParseInt(row.BlendId)
	if err != nil {
		return fmt.Errorf("blend_id: %v", err)
	}
	commodityId, err := utils.ParseInt(row.ComponentCommodityId)
	if err != nil {
		return fmt.Errorf("component_commodity_id: %v", err)
	}
	percentage, err := utils.ParseDecimal(row.Percentage)
	if err != nil {
		return fmt.Errorf("percentage: %v", err)
	}
	if percentage.IsNegative() || percentage.GreaterThan(decimal.NewFromInt(100)) {
		return fmt.Errorf("percentage must be between 0 and 100, got %s", percentage.String())
	}
	if _, err := store.GetBlend(ctx, blendId); err != nil {
		return fmt.Errorf("blend %d not found", blendId)
	}
	if _, err := store.GetCommodity(ctx, commodityId); err != nil {
		return fmt.Errorf("commodity %d not found", commodityId)
	}

	input := &models.NewBlendComponent{
		BlendId:              &blendId,
		ComponentCommodityId: &commodityId,
		Percentage:           &percentage,
	}
	active, err := activeCell(cells)
	if err != nil {
		return err
	}
	input.IsActive = active

	_, err = store.CreateBlendComponent(ctx, input)
	return err
}

func createCapacityFromRow(ctx context.Context, store *models.Store, cells map[string]string) error {
	input := &models.NewCapacity{}
	if v, ok := nonEmpty(cells, "commodity_id"); ok {
		id, err := utils.ParseInt(v)
		if err != nil {
			return fmt.Errorf("commodity_id: %v", err)
		}
		input.CommodityId = &id
	}
	if v, ok := nonEmpty(cells, "location_id"); ok {
		id, err := utils.ParseInt(v)
		if err != nil {
			return fmt.Errorf("location_id: %v", err)
		}
		input.LocationId = &id
	}
	if v, ok := nonEmpty(cells, "capacity_type"); ok {
		input.CapacityType = &v
	}
	if v, ok := nonEmpty(cells, "quantity"); ok {
		d, err := utils.ParseDecimal(v)
		if err != nil {
			return fmt.Errorf("quantity: %v", err)
		}
		input.Quantity = &d
	}
	if v, ok := nonEmpty(cells, "start_date"); ok {
		input.StartDate = &v
	}
	if v, ok := nonEmpty(cells, "end_date"); ok {
		input.EndDate = &v
	}
	active, err := activeCell(cells)
	if err != nil {
		return err
	}
	input.IsActive = active

	_, err = store.CreateCapacity(ctx, input)
	return err
}

func nonEmpty(cells map[string]string, column string) (string, bool) {
	v := cells[column]
	return v, v != ""
}

func activeCell(cells map[string]string) (*bool, error) {
	v, ok := nonEmpty(cells, "is_active")
	if !ok {
		return nil, nil
	}
	b, err := utils.ParseBool(v)
	if err != nil {
		return nil, fmt.Errorf("is_active: %v", err)
	}
	return &b, nil
}

func rowValidationError(err error) error {
	fields := utils.ProcessValidationErrors(err)
	keys := make([]string, 0, len(fields))
	for k := range fields {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	parts := make([]string, 0, len(keys))
	for _, k := range keys {
		parts = append(parts, fmt.Sprintf("%s (%s)", k, fields[k]))
	}
	return fmt.Errorf("validation failed: %s", strings.Join(parts, ", "))
}
