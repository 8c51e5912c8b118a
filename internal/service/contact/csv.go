package contact

import (
	"context"
	"encoding/csv"
	"io"
	"strconv"
	"strings"

	"github.com/google/uuid"

	"github.com/vijaykushwaha-03/AI-EMAIL-Camping/internal/domain"
	"github.com/vijaykushwaha-03/AI-EMAIL-Camping/internal/pkg/logger"
)

// ImportResult summarizes one CSV import run.
type ImportResult struct {
	Imported int      `json:"imported"`
	Skipped  int      `json:"skipped"`
	Errors   []string `json:"errors,omitempty"`
}

// Recognized header aliases, lowercased. Exported CSVs from common CRMs
// disagree on column naming, so we accept the usual variants.
var (
	emailHeaders   = map[string]bool{"email": true, "email address": true, "mail": true}
	nameHeaders    = map[string]bool{"name": true, "full name": true, "fullname": true}
	companyHeaders = map[string]bool{"company": true, "company name": true, "organization": true}
)

// ImportCSV reads contacts from r and creates one per valid row. The first
// row must be a header containing at least an email column. Rows with an
// invalid email are skipped and reported; duplicates are skipped silently
// so re-importing the same file is safe.
func (s *Service) ImportCSV(ctx context.Context, r io.Reader) (*ImportResult, error) {
	reader := csv.NewReader(r)
	reader.TrimLeadingSpace = true
	reader.FieldsPerRecord = -1

	header, err := reader.Read()
	if err != nil {
		return nil, err
	}

	emailCol, nameCol, companyCol := -1, -1, -1
	for i, h := range header {
		switch key := strings.ToLower(strings.TrimSpace(h)); {
		case emailHeaders[key]:
			emailCol = i
		case nameHeaders[key]:
			nameCol = i
		case companyHeaders[key]:
			companyCol = i
		}
	}
	if emailCol == -1 {
		return nil, ErrInvalidEmail
	}

	result := &ImportResult{}
	line := 1
	for {
		row, err := reader.Read()
		if err == io.EOF {
			break
		}
		line++
		if err != nil {
			result.Skipped++
			result.Errors = append(result.Errors, rowError(line, "malformed row"))
			continue
		}
		if emailCol >= len(row) || !domain.ValidEmail(row[emailCol]) {
			result.Skipped++
			result.Errors = append(result.Errors, rowError(line, "invalid email"))
			continue
		}

		c := &domain.Contact{
			ID:         uuid.New().String(),
			Email:      domain.NormalizeEmail(row[emailCol]),
			Subscribed: true,
		}
		if nameCol >= 0 && nameCol < len(row) {
			c.Name = strings.TrimSpace(row[nameCol])
		}
		if companyCol >= 0 && companyCol < len(row) {
			c.Company = strings.TrimSpace(row[companyCol])
		}

		if _, err := s.repo.Create(ctx, c); err != nil {
			if err == ErrDuplicateEmail {
				result.Skipped++
				continue
			}
			return result, err
		}
		result.Imported++
	}

	logger.Info("csv import finished", "imported", result.Imported, "skipped", result.Skipped)
	return result, nil
}

func rowError(line int, msg string) string {
	return "row " + strconv.Itoa(line) + ": " + msg
}
