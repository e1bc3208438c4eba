package survey

import (
	"encoding/csv"
	"fmt"
	"io"
	"net/http"
	"os"
	"strings"

	"survey-insights/internal/model"
	"survey-insights/pkg/utils"
)

// ------------------- Loading -------------------

// LoadTable reads the survey file (local path or http(s) URL) into a Table.
// The row count equals the number of data lines in the file; empty cells
// become absent keys.
func LoadTable(pathOrURL string) (*Table, error) {
	fmt.Printf("➡️ Loading survey data from %s\n", pathOrURL)

	reader, closer, err := openSource(pathOrURL)
	if err != nil {
		return nil, &model.LoadError{Path: pathOrURL, Err: err}
	}
	defer closer()

	csvReader := csv.NewReader(reader)
	csvReader.LazyQuotes = true
	csvReader.FieldsPerRecord = -1

	rawHeader, err := csvReader.Read()
	if err != nil {
		return nil, &model.LoadError{Path: pathOrURL, Err: fmt.Errorf("failed to read header: %w", err)}
	}

	// Clean header names: trim whitespace and remove stray quotes
	columns := make([]string, len(rawHeader))
	for i, h := range rawHeader {
		columns[i] = strings.ReplaceAll(strings.TrimSpace(h), `"`, "")
	}
	if err := checkHeader(columns); err != nil {
		return nil, err
	}

	table := &Table{Columns: columns}
	for {
		row, err := csvReader.Read()
		if err == io.EOF {
			break
		} else if err != nil {
			return nil, &model.LoadError{Path: pathOrURL, Err: fmt.Errorf("read error at row %d: %w", table.Len()+2, err)}
		}

		rec := make(Record)
		for i, cell := range row {
			if i >= len(columns) {
				break
			}
			cell = strings.TrimSpace(cell)
			if cell == "" {
				continue
			}
			rec[columns[i]] = utils.ParseValue(cell)
		}
		table.Rows = append(table.Rows, rec)
	}

	if err := checkColumnContent(table); err != nil {
		return nil, err
	}

	fmt.Printf("📄 Loaded %d responses (%d columns) from %s\n", table.Len(), len(columns), pathOrURL)
	return table, nil
}

// openSource opens a local file or an HTTP source for reading.
func openSource(pathOrURL string) (io.Reader, func(), error) {
	if strings.HasPrefix(pathOrURL, "http://") || strings.HasPrefix(pathOrURL, "https://") {
		resp, err := http.Get(pathOrURL)
		if err != nil {
			return nil, nil, fmt.Errorf("failed to GET survey file: %w", err)
		}
		if resp.StatusCode != http.StatusOK {
			resp.Body.Close()
			return nil, nil, fmt.Errorf("unexpected status %s fetching survey file", resp.Status)
		}
		return resp.Body, func() { resp.Body.Close() }, nil
	}

	file, err := os.Open(pathOrURL)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to open survey file: %w", err)
	}
	return file, func() { file.Close() }, nil
}

// checkHeader verifies every required analysis column is present.
func checkHeader(columns []string) error {
	present := make(map[string]bool, len(columns))
	for _, c := range columns {
		present[c] = true
	}
	for _, required := range RequiredColumns {
		if !present[required] {
			return &model.DataQualityError{Column: required, Reason: "missing from header"}
		}
	}
	return nil
}

// checkColumnContent rejects required columns that are entirely empty.
func checkColumnContent(t *Table) error {
	if t.Len() == 0 {
		return nil
	}
	for _, required := range RequiredColumns {
		filled := 0
		for _, rec := range t.Rows {
			if _, ok := rec[required]; ok {
				filled++
			}
		}
		if filled == 0 {
			return &model.DataQualityError{Column: required, Reason: "entirely empty"}
		}
	}
	return nil
}
