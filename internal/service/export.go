package service

import (
	"fmt"
	"strings"
	"time"
)

// CSVExport - готовый к отдаче клиенту экспорт: содержимое и имя файла
type CSVExport struct {
	Filename string
	Content  string
}

// buildCSV собирает CSV из заголовка и строк. Значения с запятыми,
// кавычками, переводами строк или пробелами оборачиваются в кавычки,
// кавычки внутри удваиваются.
func buildCSV(header []string, rows [][]string) string {
	var b strings.Builder

	writeRow := func(values []string) {
		for i, value := range values {
			if i > 0 {
				b.WriteByte(',')
			}
			b.WriteString(csvField(value))
		}
		b.WriteByte('\n')
	}

	writeRow(header)
	for _, row := range rows {
		writeRow(row)
	}

	return b.String()
}

func csvField(value string) string {
	if strings.ContainsAny(value, ",\"\n ") {
		return `"` + strings.ReplaceAll(value, `"`, `""`) + `"`
	}
	return value
}

// exportFilename - имя файла экспорта с датой: <entity>_export_<ISO-date>.csv
func exportFilename(entity string, now time.Time) string {
	return fmt.Sprintf("%s_export_%s.csv", entity, now.Format("2006-01-02"))
}
