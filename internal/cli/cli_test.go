package cli_test

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	"tally/internal/cli"
)

const statement = `15/03/2025,4.50,TESCO STORES 2041
16/03/2025,1.80,SHELL FILLING STATION
17/03/2025,-1200.00,SALARY MARCH
`

const ruleFile = `tesco => GROCERIES
shell => PETROL
salary => INCOME
`

func writeFixtures(t *testing.T) (csvPath, rulesPath string) {
	t.Helper()
	dir := t.TempDir()
	csvPath = filepath.Join(dir, "statement.csv")
	rulesPath = filepath.Join(dir, "rules.txt")
	require.NoError(t, os.WriteFile(csvPath, []byte(statement), 0o644))
	require.NoError(t, os.WriteFile(rulesPath, []byte(ruleFile), 0o644))
	return csvPath, rulesPath
}

func runTallyctl(t *testing.T, args ...string) (string, error) {
	t.Helper()
	var out bytes.Buffer
	cmd := cli.NewRootCommand()
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	cmd.SetArgs(args)
	err := cmd.Execute()
	return out.String(), err
}

func TestCategorize(t *testing.T) {
	csvPath, rulesPath := writeFixtures(t)

	out, err := runTallyctl(t, "categorize", csvPath, "--rules", rulesPath)
	require.NoError(t, err)

	assert.Contains(t, out, "date,amount,description,category")
	assert.Contains(t, out, "15/03/2025,4.50,TESCO STORES 2041,GROCERIES")
	// Small fuel charges are coffee bought at the till, not petrol.
	assert.Contains(t, out, "16/03/2025,1.80,SHELL FILLING STATION,COFFEE")
	assert.Contains(t, out, "17/03/2025,-1200.00,SALARY MARCH,INCOME")
}

func TestCategorizeWithoutRules(t *testing.T) {
	csvPath, _ := writeFixtures(t)

	out, err := runTallyctl(t, "categorize", csvPath)
	require.NoError(t, err)
	assert.Contains(t, out, "UNCATEGORISED")
}

func TestReport(t *testing.T) {
	csvPath, rulesPath := writeFixtures(t)

	out, err := runTallyctl(t, "report", csvPath, "--rules", rulesPath)
	require.NoError(t, err)

	assert.Contains(t, out, "Category totals - All months")
	assert.Contains(t, out, "GROCERIES")
	assert.Contains(t, out, "TOTAL")
	assert.Contains(t, out, "Net")
}

func TestReportMonthFilter(t *testing.T) {
	csvPath, rulesPath := writeFixtures(t)

	out, err := runTallyctl(t, "report", csvPath, "--rules", rulesPath, "--month", "2025-03")
	require.NoError(t, err)
	assert.Contains(t, out, "Category totals - 2025-03")

	out, err = runTallyctl(t, "report", csvPath, "--rules", rulesPath, "--month", "2024-01")
	require.NoError(t, err)
	assert.Contains(t, out, "0.00")
}

func TestExport(t *testing.T) {
	csvPath, rulesPath := writeFixtures(t)
	outPath := filepath.Join(t.TempDir(), "report.xlsx")

	out, err := runTallyctl(t, "export", csvPath, "--rules", rulesPath, "--out", outPath)
	require.NoError(t, err)
	assert.Contains(t, out, outPath)

	f, err := excelize.OpenFile(outPath)
	require.NoError(t, err)
	defer f.Close()
	assert.Contains(t, f.GetSheetList(), "Totals")
	assert.Contains(t, f.GetSheetList(), "Transactions")
}

func TestMissingStatement(t *testing.T) {
	_, err := runTallyctl(t, "report", "/no/such/file.csv")
	require.Error(t, err)
}
