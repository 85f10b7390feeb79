// Package importer loads knowledge points from Excel or CSV content files
// into the database. Expected columns: id, kind, content, pronunciation,
// translation, tags, prerequisites; tags and prerequisites are
// semicolon-separated lists.
package importer

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/xuri/excelize/v2"

	"github.com/example/tutorbot/internal/database"
	"github.com/example/tutorbot/pkg/models"
)

// Config defines the import configuration
type Config struct {
	FilePath  string // Path to the Excel or CSV file
	SheetName string // Name of the sheet to import (Excel only)
	StartRow  int    // The row to start importing from (1-based index)
	ListSep   string // Separator inside tag/prerequisite cells
}

// DefaultConfig returns the default import configuration
func DefaultConfig() Config {
	return Config{
		SheetName: "Sheet1",
		StartRow:  2, // skip the header row
		ListSep:   ";",
	}
}

// Result holds the result of an import operation
type Result struct {
	TotalProcessed int
	Imported       int
	Skipped        int
	Errors         []string
}

// ImportKnowledgePoints imports knowledge points from an Excel or CSV file
func ImportKnowledgePoints(config Config) (*Result, error) {
	ext := strings.ToLower(filepath.Ext(config.FilePath))
	if ext == ".csv" {
		return importFromCSV(config)
	}
	return importFromExcel(config)
}

// importFromExcel imports knowledge points from an Excel file
func importFromExcel(config Config) (*Result, error) {
	f, err := excelize.OpenFile(config.FilePath)
	if err != nil {
		return nil, fmt.Errorf("failed to open Excel file: %v", err)
	}
	defer f.Close()

	rows, err := f.GetRows(config.SheetName)
	if err != nil {
		return nil, fmt.Errorf("failed to get rows: %v", err)
	}

	repo := database.NewKnowledgePointRepository()
	result := &Result{Errors: make([]string, 0)}

	for i, row := range rows {
		if i < config.StartRow-1 {
			continue
		}
		result.TotalProcessed++
		if err := processRow(row, config, repo, result); err != nil {
			result.Errors = append(result.Errors, fmt.Sprintf("Row %d: %v", i+1, err))
		}
	}
	return result, nil
}

// importFromCSV imports knowledge points from a CSV file
func importFromCSV(config Config) (*Result, error) {
	file, err := os.Open(config.FilePath)
	if err != nil {
		return nil, fmt.Errorf("failed to open CSV file: %v", err)
	}
	defer file.Close()

	reader := csv.NewReader(file)
	reader.FieldsPerRecord = -1
	reader.LazyQuotes = true

	repo := database.NewKnowledgePointRepository()
	result := &Result{Errors: make([]string, 0)}

	rowNum := 0
	for {
		row, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("failed to read CSV row: %v", err)
		}
		rowNum++
		if rowNum < config.StartRow {
			continue
		}
		result.TotalProcessed++
		if err := processRow(row, config, repo, result); err != nil {
			result.Errors = append(result.Errors, fmt.Sprintf("Row %d: %v", rowNum, err))
		}
	}
	return result, nil
}

// processRow validates one row and upserts the knowledge point
func processRow(row []string, config Config, repo *database.KnowledgePointRepository, result *Result) error {
	if len(row) < 3 {
		result.Skipped++
		return fmt.Errorf("expected at least 3 columns, got %d", len(row))
	}

	id := strings.TrimSpace(cell(row, 0))
	kind := strings.ToLower(strings.TrimSpace(cell(row, 1)))
	content := strings.TrimSpace(cell(row, 2))

	if id == "" || content == "" {
		result.Skipped++
		return fmt.Errorf("id and content are required")
	}
	if kind != string(models.KindVocabulary) && kind != string(models.KindGrammar) {
		result.Skipped++
		return fmt.Errorf("unknown kind %q", kind)
	}

	kp := &models.KnowledgePoint{
		ID:            id,
		Kind:          models.KnowledgePointKind(kind),
		Content:       content,
		Pronunciation: strings.TrimSpace(cell(row, 3)),
		Translation:   strings.TrimSpace(cell(row, 4)),
		Tags:          splitList(cell(row, 5), config.ListSep),
		Prerequisites: splitList(cell(row, 6), config.ListSep),
	}

	if err := repo.Upsert(kp); err != nil {
		result.Skipped++
		return err
	}
	result.Imported++
	return nil
}

func cell(row []string, i int) string {
	if i < len(row) {
		return row[i]
	}
	return ""
}

func splitList(value, sep string) []string {
	var items []string
	for _, part := range strings.Split(value, sep) {
		if trimmed := strings.TrimSpace(part); trimmed != "" {
			items = append(items, trimmed)
		}
	}
	return items
}
