package export

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"strings"
	"time"

	"github.com/xuri/excelize/v2"
)

type Format string

const (
	FormatCSV  Format = "csv"
	FormatXLSX Format = "xlsx"
)

const (
	contentTypeCSV  = "text/csv"
	contentTypeXLSX = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"
)

// Artifact is a generated downloadable payload. Single use, never persisted.
type Artifact struct {
	ContentType string
	Filename    string
	Payload     []byte
}

func ParseFormat(s string) (Format, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "csv":
		return FormatCSV, nil
	case "xlsx", "excel":
		return FormatXLSX, nil
	default:
		return "", fmt.Errorf("unsupported export format %q", s)
	}
}

// encode renders a fixed header plus rows into the requested format. The
// column set never varies with which fields happen to be populated; absent
// values arrive as empty strings and render as empty cells.
func encode(entity string, header []string, rows [][]string, format Format, now time.Time) (*Artifact, error) {
	switch format {
	case FormatCSV:
		payload, err := encodeCSV(header, rows)
		if err != nil {
			return nil, err
		}
		return &Artifact{
			ContentType: contentTypeCSV,
			Filename:    filename(entity, now, "csv"),
			Payload:     payload,
		}, nil
	case FormatXLSX:
		payload, err := encodeXLSX(header, rows)
		if err != nil {
			return nil, err
		}
		return &Artifact{
			ContentType: contentTypeXLSX,
			Filename:    filename(entity, now, "xlsx"),
			Payload:     payload,
		}, nil
	default:
		return nil, fmt.Errorf("unsupported export format %q", format)
	}
}

func filename(entity string, now time.Time, ext string) string {
	return fmt.Sprintf("%s-%s.%s", entity, now.Format("20060102-150405"), ext)
}

func encodeCSV(header []string, rows [][]string) ([]byte, error) {
	var buf bytes.Buffer
	w := csv.NewWriter(&buf)
	if err := w.Write(header); err != nil {
		return nil, err
	}
	for _, row := range rows {
		if err := w.Write(row); err != nil {
			return nil, err
		}
	}
	w.Flush()
	if err := w.Error(); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func encodeXLSX(header []string, rows [][]string) ([]byte, error) {
	f := excelize.NewFile()
	defer func() {
		_ = f.Close()
	}()

	sw, err := f.NewStreamWriter("Sheet1")
	if err != nil {
		return nil, err
	}

	writeRow := func(rowIdx int, values []string) error {
		cell, err := excelize.CoordinatesToCellName(1, rowIdx)
		if err != nil {
			return err
		}
		cells := make([]interface{}, len(values))
		for i, v := range values {
			cells[i] = v
		}
		return sw.SetRow(cell, cells)
	}

	if err := writeRow(1, header); err != nil {
		return nil, err
	}
	for i, row := range rows {
		if err := writeRow(i+2, row); err != nil {
			return nil, err
		}
	}
	if err := sw.Flush(); err != nil {
		return nil, err
	}

	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
