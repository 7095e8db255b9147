package report

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"tally/internal/core"
)

func TestRenderText(t *testing.T) {
	totals := Aggregate([]core.Transaction{
		tx("GROCERIES", 80),
		tx("PETROL", 20),
	})
	out := RenderText(totals, "2025-03")
	lines := strings.Split(strings.TrimRight(out, "\n"), "\n")
	require.Len(t, lines, 6)

	assert.Equal(t, "Category totals - 2025-03", lines[0])
	assert.Equal(t, strings.Repeat("=", len(lines[0])), lines[1])
	assert.Contains(t, lines[2], "Category")
	assert.Contains(t, lines[2], "Amount")
	assert.Contains(t, lines[2], "%")
	assert.Contains(t, lines[3], "GROCERIES")
	assert.Contains(t, lines[3], "80.00")
	assert.Contains(t, lines[3], "80.0%")
	assert.Contains(t, lines[4], "PETROL")
	assert.Contains(t, lines[5], "TOTAL")

	full := RenderText(totals, "")
	assert.Contains(t, full, "All months")
	assert.Contains(t, full, "TOTAL")
	assert.Contains(t, full, "100.00")
	assert.Contains(t, full, "100.0%")
}

func TestRenderTextEmptySet(t *testing.T) {
	out := RenderText(Aggregate(nil), "")
	assert.Contains(t, out, "All months")
	assert.Contains(t, out, "TOTAL")
	assert.Contains(t, out, "0.00")
	assert.Contains(t, out, "0.0%")
}
