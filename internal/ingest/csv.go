// Package ingest loads and exports delimited claims tables.
package ingest

import (
	"encoding/csv"
	"fmt"
	"io"
	"regexp"
	"strconv"
	"strings"

	"github.com/kalluru498/health-claims-analyzer/internal/model"
)

// Column names recognized in the input header. Only "comment" is required;
// the rest degrade to zero values when absent.
const (
	colClaimID        = "claim_id"
	colComment        = "comment"
	colCategory       = "category"
	colSpecialty      = "specialty"
	colInsuranceType  = "insurance_type"
	colCPTCode        = "cpt_code"
	colAmountExpected = "amount_expected"
	colAmountPaid     = "amount_paid"
)

var whitespaceRe = regexp.MustCompile(`\s+`)

// LoadClaims parses a CSV claims table. The first row must be a header.
// A table without a "comment" column fails with *model.SchemaError and
// returns no rows.
func LoadClaims(r io.Reader) ([]model.ClaimRecord, error) {
	reader := csv.NewReader(r)
	reader.FieldsPerRecord = -1 // Ragged rows are padded below

	header, err := reader.Read()
	if err != nil {
		return nil, fmt.Errorf("read header: %w", err)
	}

	index := make(map[string]int, len(header))
	for i, name := range header {
		index[strings.ToLower(strings.TrimSpace(name))] = i
	}
	if _, ok := index[colComment]; !ok {
		return nil, &model.SchemaError{Column: colComment}
	}

	field := func(row []string, name string) string {
		i, ok := index[name]
		if !ok || i >= len(row) {
			return ""
		}
		return strings.TrimSpace(row[i])
	}
	amount := func(row []string, name string) float64 {
		v, err := strconv.ParseFloat(field(row, name), 64)
		if err != nil {
			return 0
		}
		return v
	}

	var records []model.ClaimRecord
	for {
		row, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("read row %d: %w", len(records)+2, err)
		}
		records = append(records, model.ClaimRecord{
			ClaimID:        field(row, colClaimID),
			Comment:        CleanText(field(row, colComment)),
			Category:       field(row, colCategory),
			Specialty:      field(row, colSpecialty),
			InsuranceType:  field(row, colInsuranceType),
			CPTCode:        field(row, colCPTCode),
			AmountExpected: amount(row, colAmountExpected),
			AmountPaid:     amount(row, colAmountPaid),
		})
	}

	return records, nil
}

// CleanText collapses whitespace runs, trims, and lowercases a comment.
// This is the basic cleanup applied at load time; full normalization
// (stop words, lemmatization) happens in the pipeline.
func CleanText(s string) string {
	return strings.ToLower(strings.TrimSpace(whitespaceRe.ReplaceAllString(s, " ")))
}

// WriteEnriched writes the enriched table as CSV: the original columns
// followed by the derived ones, matching the exported report schema.
func WriteEnriched(w io.Writer, rows []model.EnrichedClaim) error {
	writer := csv.NewWriter(w)

	header := []string{
		colClaimID, colComment, colCategory, colSpecialty, colInsuranceType,
		colCPTCode, colAmountExpected, colAmountPaid,
		"cleaned", "Sentiment", "Polarity", "Topic", "Topic Label", "Predicted Category",
	}
	if err := writer.Write(header); err != nil {
		return fmt.Errorf("write header: %w", err)
	}

	for _, row := range rows {
		record := []string{
			row.ClaimID,
			row.Comment,
			row.Category,
			row.Specialty,
			row.InsuranceType,
			row.CPTCode,
			strconv.FormatFloat(row.AmountExpected, 'f', 2, 64),
			strconv.FormatFloat(row.AmountPaid, 'f', 2, 64),
			row.Cleaned,
			string(row.Sentiment),
			strconv.FormatFloat(row.Polarity, 'f', 4, 64),
			strconv.Itoa(row.Topic),
			row.TopicLabel,
			row.PredictedCategory,
		}
		if err := writer.Write(record); err != nil {
			return fmt.Errorf("write row: %w", err)
		}
	}

	writer.Flush()
	return writer.Error()
}
