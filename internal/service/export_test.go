package service

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestBuildCSVQuoting(t *testing.T) {
	content := buildCSV(
		[]string{"Name", "Notes"},
		[][]string{
			{"plain", "simple"},
			{"with,comma", `say "hi"`},
			{"multi\nline", "has space"},
		},
	)

	lines := strings.SplitN(content, "\n", 3)
	require.Equal(t, "Name,Notes", lines[0])
	require.Equal(t, "plain,simple", lines[1])
	require.Contains(t, content, `"with,comma"`)
	require.Contains(t, content, `"say ""hi"""`)
	require.Contains(t, content, "\"multi\nline\"")
	require.Contains(t, content, `"has space"`)
	require.True(t, strings.HasSuffix(content, "\n"))
}

func TestBuildCSVRowCount(t *testing.T) {
	rows := [][]string{{"a"}, {"b"}, {"c"}}
	content := buildCSV([]string{"col"}, rows)

	// Заголовок + строки данных
	require.Equal(t, len(rows)+1, strings.Count(content, "\n"))
}

func TestExportFilename(t *testing.T) {
	now := time.Date(2025, 3, 14, 10, 30, 0, 0, time.UTC)
	require.Equal(t, "tenants_export_2025-03-14.csv", exportFilename("tenants", now))
	require.Equal(t, "transactions_export_2025-03-14.csv", exportFilename("transactions", now))
}
