package repository

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"propchat/internal/model"
	"propchat/internal/utils"
)

// Column aliases seen across exported property datasets. Headers are
// matched after lowercasing and trimming; unmapped columns are kept in
// the record's Details.
var columnAliases = map[string]string{
	"id":                "id",
	"property_id":       "id",
	"listing_id":        "id",
	"projectname":       "project_name",
	"project_name":      "project_name",
	"project":           "project_name",
	"city":              "city",
	"locality":          "locality",
	"location":          "locality",
	"area":              "locality",
	"landmark":          "landmark",
	"pincode":           "pincode",
	"pin_code":          "pincode",
	"price":             "price",
	"price_inr":         "price",
	"price_cr":          "price_cr",
	"price_in_cr":       "price_cr",
	"bhk":               "bedrooms",
	"bedrooms":          "bedrooms",
	"beds":              "bedrooms",
	"bathrooms":         "bathrooms",
	"baths":             "bathrooms",
	"balcony":           "balconies",
	"balconies":         "balconies",
	"property_type":     "property_type",
	"unit_type":         "property_type",
	"type":              "property_type",
	"possession_status": "possession_status",
	"possession":        "possession_status",
	"status":            "possession_status",
}

// LoadCSV reads a property dataset from a CSV file. Rows that cannot
// be keyed (bad id cell) or that are ragged are skipped and counted;
// unparseable or negative numeric cells degrade to absent fields.
func LoadCSV(path string) (*Dataset, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open dataset %s: %w", path, err)
	}
	defer f.Close()

	dataset, err := readCSV(f)
	if err != nil {
		return nil, fmt.Errorf("failed to read dataset %s: %w", path, err)
	}
	return dataset, nil
}

func readCSV(r io.Reader) (*Dataset, error) {
	reader := csv.NewReader(r)

	header, err := reader.Read()
	if err != nil {
		return nil, fmt.Errorf("failed to read header: %w", err)
	}

	columns := make([]string, len(header))
	hasIDColumn := false
	for i, name := range header {
		key := strings.ToLower(strings.TrimSpace(strings.TrimPrefix(name, "\ufeff")))
		if canonical, ok := columnAliases[key]; ok {
			columns[i] = canonical
			if canonical == "id" {
				hasIDColumn = true
			}
		} else {
			columns[i] = key
		}
	}

	var records []model.PropertyRecord
	skipped := 0
	rowID := int64(0)

	for {
		row, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			skipped++
			continue
		}

		rowID++
		record, ok := buildRecord(columns, row, hasIDColumn, rowID)
		if !ok {
			skipped++
			continue
		}
		records = append(records, record)
	}

	return NewDataset(records, skipped), nil
}

func buildRecord(columns []string, row []string, hasIDColumn bool, rowID int64) (model.PropertyRecord, bool) {
	record := model.PropertyRecord{}
	details := model.JSONMap{}
	idSet := false

	for i, column := range columns {
		value := strings.TrimSpace(row[i])
		if value == "" || strings.EqualFold(value, "na") ||
			strings.EqualFold(value, "n/a") || strings.EqualFold(value, "null") {
			continue
		}

		switch column {
		case "id":
			id, err := strconv.ParseInt(value, 10, 64)
			if err != nil {
				return model.PropertyRecord{}, false
			}
			record.ID = id
			idSet = true
		case "project_name":
			record.ProjectName = strPtr(value)
		case "city":
			record.City = strPtr(value)
		case "locality":
			record.Locality = strPtr(value)
		case "landmark":
			record.Landmark = strPtr(value)
		case "pincode":
			record.Pincode = intCell(value)
		case "price":
			if rupees, err := utils.ParseAmount(value); err == nil {
				record.Price = &rupees
			}
		case "price_cr":
			if crores, err := strconv.ParseFloat(value, 64); err == nil && crores >= 0 {
				rupees := crores * 10_000_000
				record.Price = &rupees
			}
		case "bedrooms":
			record.Bedrooms = intCell(value)
		case "bathrooms":
			record.Bathrooms = intCell(value)
		case "balconies":
			record.Balconies = intCell(value)
		case "property_type":
			record.PropertyType = strPtr(value)
		case "possession_status":
			record.PossessionStatus = strPtr(value)
		default:
			details[column] = value
		}
	}

	if hasIDColumn && !idSet {
		return model.PropertyRecord{}, false
	}
	if !idSet {
		record.ID = rowID
	}
	if len(details) > 0 {
		record.Details = details
	}
	return record, true
}

func strPtr(value string) *string {
	return &value
}

// intCell coerces a numeric cell to an int, tolerating float notation.
// Unparseable or negative cells come back nil rather than failing the row.
func intCell(value string) *int {
	if n, err := strconv.Atoi(value); err == nil && n >= 0 {
		return &n
	}
	if f, err := strconv.ParseFloat(value, 64); err == nil && f >= 0 {
		n := int(f)
		return &n
	}
	return nil
}
