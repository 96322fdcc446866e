// Package transfer shapes catalog collections into delimited-text and
// spreadsheet blobs and parses uploaded files back into records.
package transfer

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"github.com/mmdatafocus/blending_backend/models"
	"github.com/shopspring/decimal"
)

// Column order is part of the contract: an exported file round-trips
// through the matching import template.
var exportColumns = map[string][]string{
	models.EntityKeyCommodities:     {"name", "description", "uom_id", "density", "energy_uom", "is_active"},
	models.EntityKeyUOMs:            {"name", "description", "type", "base_uom", "is_active"},
	models.EntityKeyLocations:       {"name", "location_type", "address", "counterparty_id", "is_active"},
	models.EntityKeyCounterParties:  {"name", "type", "contact_info", "credit_status", "is_active"},
	models.EntityKeyBlends:          {"name", "commodity_id", "description", "is_active"},
	models.EntityKeyBlendComponents: {"blend_id", "component_commodity_id", "percentage", "is_active"},
	models.EntityKeyCapacity:        {"commodity_id", "location_id", "capacity_type", "quantity", "start_date", "end_date", "is_active"},
}

var genericTemplateColumns = []string{"column1", "column2"}

// Columns returns the column list for an entity key; unknown keys fall back
// to a two-column generic template.
func Columns(entityKey string) []string {
	if cols, ok := exportColumns[entityKey]; ok {
		return cols
	}
	return genericTemplateColumns
}

// Template renders the header-only delimited blob for an entity key.
func Template(entityKey string) string {
	return strings.Join(Columns(entityKey), ",")
}

// Export renders the collection behind entityKey as delimited text.
func Export(ctx context.Context, store *models.Store, entityKey string) (string, error) {
	rows, err := collectRows(ctx, store, entityKey)
	if err != nil {
		return "", err
	}
	return renderDelimited(Columns(entityKey), rows), nil
}

func collectRows(ctx context.Context, store *models.Store, entityKey string) ([][]string, error) {
	switch entityKey {
	case models.EntityKeyCommodities:
		commodities, err := store.GetCommodities(ctx)
		if err != nil {
			return nil, err
		}
		rows := make([][]string, 0, len(commodities))
		for _, c := range commodities {
			rows = append(rows, []string{c.Name, c.Description, intCell(c.UomId), c.Density.String(), c.EnergyUom, boolCell(c.IsActive)})
		}
		return rows, nil
	case models.EntityKeyUOMs:
		uoms, err := store.GetUOMs(ctx)
		if err != nil {
			return nil, err
		}
		rows := make([][]string, 0, len(uoms))
		for _, u := range uoms {
			rows = append(rows, []string{u.Name, u.Description, u.Type, u.BaseUom.String(), boolCell(u.IsActive)})
		}
		return rows, nil
	case models.EntityKeyLocations:
		locations, err := store.GetLocations(ctx)
		if err != nil {
			return nil, err
		}
		rows := make([][]string, 0, len(locations))
		for _, l := range locations {
			rows = append(rows, []string{l.Name, l.LocationType, l.Address, intCell(l.CounterPartyId), boolCell(l.IsActive)})
		}
		return rows, nil
	case models.EntityKeyCounterParties:
		counterParties, err := store.GetCounterParties(ctx)
		if err != nil {
			return nil, err
		}
		rows := make([][]string, 0, len(counterParties))
		for _, cp := range counterParties {
			rows = append(rows, []string{cp.Name, cp.Type, cp.ContactInfo, string(cp.CreditStatus), boolCell(cp.IsActive)})
		}
		return rows, nil
	case models.EntityKeyBlends:
		blends, err := store.GetBlends(ctx)
		if err != nil {
			return nil, err
		}
		rows := make([][]string, 0, len(blends))
		for _, b := range blends {
			rows = append(rows, []string{b.Name, intCell(b.CommodityId), b.Description, boolCell(b.IsActive)})
		}
		return rows, nil
	case models.EntityKeyBlendComponents:
		components, err := store.GetBlendComponents(ctx)
		if err != nil {
			return nil, err
		}
		rows := make([][]string, 0, len(components))
		for _, bc := range components {
			rows = append(rows, []string{intCell(bc.BlendId), intCell(bc.ComponentCommodityId), bc.Percentage.String(), boolCell(bc.IsActive)})
		}
		return rows, nil
	case models.EntityKeyCapacity:
		capacities, err := store.GetCapacities(ctx)
		if err != nil {
			return nil, err
		}
		rows := make([][]string, 0, len(capacities))
		for _, c := range capacities {
			rows = append(rows, []string{intCell(c.CommodityId), intCell(c.LocationId), c.CapacityType, quantityCell(c.Quantity), c.StartDate, c.EndDate, boolCell(c.IsActive)})
		}
		return rows, nil
	}
	return nil, fmt.Errorf("unknown entity key %q", entityKey)
}

// renderDelimited joins cells with commas, quoting only cells that contain
// the delimiter. Nil-valued cells arrive here as empty strings.
func renderDelimited(columns []string, rows [][]string) string {
	var sb strings.Builder
	sb.WriteString(strings.Join(columns, ","))
	for _, row := range rows {
		sb.WriteString("\n")
		for i, cell := range row {
			if i > 0 {
				sb.WriteString(",")
			}
			if strings.Contains(cell, ",") {
				sb.WriteString(`"` + cell + `"`)
			} else {
				sb.WriteString(cell)
			}
		}
	}
	return sb.String()
}

// unset references are exported as empty cells, not zeros
func intCell(id int) string {
	if id == 0 {
		return ""
	}
	return strconv.Itoa(id)
}

func boolCell(b *bool) string {
	if b == nil {
		return ""
	}
	return strconv.FormatBool(*b)
}

func quantityCell(d decimal.Decimal) string {
	return d.String()
}
