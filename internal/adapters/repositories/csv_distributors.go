package repositories

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"medication-route-service/internal/domain"
	"os"
	"strconv"
	"strings"
)

// Accepted header spellings, matched case-insensitively.
var (
	nameColumns = []string{"nombre", "name"}
	latColumns  = []string{"latitud", "latitude", "lat"}
	lonColumns  = []string{"longitud", "longitude", "lon", "lng"}
)

// Read distributors from a CSV file with a name, latitude and longitude column.
func LoadDistributorsCSV(path string) ([]domain.Stop, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("load distributors: open %q: %w", path, err)
	}
	defer f.Close()

	stops, err := ParseDistributorsCSV(f)
	if err != nil {
		return nil, fmt.Errorf("load distributors: %q: %w", path, err)
	}
	return stops, nil
}

// Parse distributor rows. The header row locates the columns, so column order
// and extra columns do not matter.
func ParseDistributorsCSV(r io.Reader) ([]domain.Stop, error) {
	reader := csv.NewReader(r)
	reader.TrimLeadingSpace = true
	reader.FieldsPerRecord = -1

	header, err := reader.Read()
	if errors.Is(err, io.EOF) {
		return nil, errors.New("parse distributors: empty csv")
	}
	if err != nil {
		return nil, fmt.Errorf("parse distributors: read header: %w", err)
	}

	nameIdx := columnIndex(header, nameColumns)
	latIdx := columnIndex(header, latColumns)
	lonIdx := columnIndex(header, lonColumns)
	if nameIdx < 0 || latIdx < 0 || lonIdx < 0 {
		return nil, fmt.Errorf("parse distributors: header %v must contain name, latitude and longitude columns", header)
	}
	width := max(nameIdx, latIdx, lonIdx) + 1

	seen := make(map[string]struct{})
	stops := make([]domain.Stop, 0, 16)
	for line := 2; ; line++ {
		record, err := reader.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("parse distributors: line %d: %w", line, err)
		}
		if len(record) < width {
			return nil, fmt.Errorf("parse distributors: line %d: expected at least %d fields, got %d", line, width, len(record))
		}

		name := strings.TrimSpace(record[nameIdx])
		if name == "" {
			return nil, fmt.Errorf("parse distributors: line %d: name cannot be empty", line)
		}
		if _, dup := seen[name]; dup {
			return nil, fmt.Errorf("parse distributors: line %d: duplicate distributor %q", line, name)
		}
		seen[name] = struct{}{}

		lat, err := strconv.ParseFloat(strings.TrimSpace(record[latIdx]), 64)
		if err != nil {
			return nil, fmt.Errorf("parse distributors: line %d: latitude: %w", line, err)
		}
		lon, err := strconv.ParseFloat(strings.TrimSpace(record[lonIdx]), 64)
		if err != nil {
			return nil, fmt.Errorf("parse distributors: line %d: longitude: %w", line, err)
		}

		stop := domain.NewStop(name, lat, lon)
		if !stop.Location.Valid() {
			return nil, fmt.Errorf("parse distributors: line %d: coordinates (%v, %v) out of range", line, lat, lon)
		}
		stops = append(stops, stop)
	}

	return stops, nil
}

func columnIndex(header []string, names []string) int {
	for i, h := range header {
		h = strings.ToLower(strings.TrimSpace(strings.TrimPrefix(h, "\ufeff")))
		for _, n := range names {
			if h == n {
				return i
			}
		}
	}
	return -1
}
