package csvexport

import (
	"bufio"
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"
	"time"

	"tariffscope/pkg/models"
)

// Export holds everything parsed from one utility CSV download: the
// account metadata from the file preamble and the interval readings.
type Export struct {
	Account  models.Account
	Readings []models.Reading
}

// MalformedReadingError reports a data row whose timestamp or usage value
// is missing or unparseable. Rows cannot be skipped silently, a dropped
// row corrupts the yearly total.
type MalformedReadingError struct {
	Line  int
	Field string
	Value string
}

func (e *MalformedReadingError) Error() string {
	return fmt.Sprintf("line %d: malformed %s value %q", e.Line, e.Field, e.Value)
}

// The export file starts with a metadata preamble (Name, Address, Account
// Number) followed by the column header row. Different portals label the
// first column differently.
var headerPrefixes = []string{"SERVICE,DATE,", "TYPE,DATE,"}

// Timestamps in the export use the American date format with 24-hour times
const timestampLayout = "01/02/2006 15:04"

// ReadFile parses a utility interval export from disk
func ReadFile(path string) (*Export, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening export: %w", err)
	}
	defer f.Close()

	return Read(f)
}

// Read parses a utility interval export. It scans the preamble for account
// metadata until it finds the header row, then reads every data row. Any
// row with an unparseable timestamp or usage value aborts with a
// MalformedReadingError.
func Read(r io.Reader) (*Export, error) {
	br := bufio.NewReader(r)

	export := &Export{}

	headerLine, preambleLines, err := scanPreamble(br, &export.Account)
	if err != nil {
		return nil, err
	}

	cols, err := columnIndices(headerLine)
	if err != nil {
		return nil, err
	}

	reader := csv.NewReader(br)
	reader.FieldsPerRecord = -1
	reader.TrimLeadingSpace = true

	lineNum := preambleLines + 1 // header row line number
	for {
		record, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("reading export row: %w", err)
		}
		lineNum++

		// Trailing blank line
		if len(record) == 1 && strings.TrimSpace(record[0]) == "" {
			continue
		}

		reading, err := parseRow(record, cols, lineNum)
		if err != nil {
			return nil, err
		}
		export.Readings = append(export.Readings, reading)
	}

	return export, nil
}

// scanPreamble consumes lines up to and including the header row, filling
// in account metadata as it goes. Returns the header line and how many
// preamble lines preceded it.
func scanPreamble(br *bufio.Reader, account *models.Account) (string, int, error) {
	lines := 0
	for {
		line, err := br.ReadString('\n')
		if err == io.EOF && line == "" {
			return "", 0, fmt.Errorf("could not find the header row in the export")
		}
		if err != nil && err != io.EOF {
			return "", 0, fmt.Errorf("reading export preamble: %w", err)
		}

		trimmed := strings.TrimSpace(line)
		for _, prefix := range headerPrefixes {
			if strings.HasPrefix(trimmed, prefix) {
				return trimmed, lines, nil
			}
		}
		lines++

		key, value, found := strings.Cut(trimmed, ",")
		if found {
			switch key {
			case "Name":
				account.Name = strings.TrimSpace(value)
			case "Address":
				account.Address = strings.TrimSpace(value)
			case "Account Number":
				account.AccountNumber = strings.TrimSpace(value)
			}
		}

		if err == io.EOF {
			return "", 0, fmt.Errorf("could not find the header row in the export")
		}
	}
}

type columns struct {
	date      int
	startTime int
	usage     int
	units     int // -1 when absent
}

func columnIndices(headerLine string) (columns, error) {
	fields := strings.Split(headerLine, ",")
	cols := columns{date: -1, startTime: -1, usage: -1, units: -1}
	for i, f := range fields {
		switch strings.TrimSpace(f) {
		case "DATE":
			cols.date = i
		case "START TIME":
			cols.startTime = i
		case "USAGE":
			cols.usage = i
		case "UNITS":
			cols.units = i
		}
	}
	if cols.date < 0 || cols.startTime < 0 || cols.usage < 0 {
		return cols, fmt.Errorf("export header is missing DATE, START TIME or USAGE columns: %s", headerLine)
	}
	return cols, nil
}

func parseRow(record []string, cols columns, lineNum int) (models.Reading, error) {
	var reading models.Reading

	if len(record) <= cols.usage || len(record) <= cols.startTime {
		return reading, &MalformedReadingError{Line: lineNum, Field: "row", Value: strings.Join(record, ",")}
	}

	dateStr := strings.TrimSpace(record[cols.date])
	timeStr := strings.TrimSpace(record[cols.startTime])
	ts, err := time.Parse(timestampLayout, dateStr+" "+timeStr)
	if err != nil {
		return reading, &MalformedReadingError{Line: lineNum, Field: "timestamp", Value: dateStr + " " + timeStr}
	}
	reading.Timestamp = ts

	usageStr := strings.TrimSpace(record[cols.usage])
	usage, err := strconv.ParseFloat(usageStr, 64)
	if err != nil {
		return reading, &MalformedReadingError{Line: lineNum, Field: "usage", Value: usageStr}
	}

	// Some portals export watt-hours, convert to kWh
	if cols.units >= 0 && len(record) > cols.units {
		units := strings.TrimSpace(record[cols.units])
		if strings.Contains(units, "Wh") && !strings.Contains(units, "kWh") {
			usage /= 1000
		}
	}
	reading.KWh = usage

	return reading, nil
}
