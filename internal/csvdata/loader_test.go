package csvdata

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const prospectsHeader = "company_name,industry,company_size,location,job_title,function_area,seniority,salary_min,salary_max,days_open,contact_name,contact_title,email,tier_score"

func writeTemp(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestReadProspects(t *testing.T) {
	csv := prospectsHeader + "\n" +
		"Acme BV,Finance,50-200,Amsterdam,Controller,Finance,Senior,55000,70000,34,Jan de Vries,HR Manager,jan@acme.nl,87\n" +
		"Beta NV,Tech & Finance,200+,Utrecht,Data Engineer,Engineering,Medior,60000,80000,12,Kim Bakker,Recruiter,kim@beta.nl,92\n"

	rows, err := ReadProspects(writeTemp(t, "prospects.csv", csv))
	require.NoError(t, err)
	require.Len(t, rows, 2)

	assert.Equal(t, "Acme BV", rows[0].CompanyName)
	assert.Equal(t, 55000, rows[0].SalaryMin)
	assert.Equal(t, 70000, rows[0].SalaryMax)
	assert.Equal(t, 34, rows[0].DaysOpen)
	assert.Equal(t, 87.0, rows[0].TierScore)
	assert.Equal(t, "Kim Bakker", rows[1].ContactName)
}

func TestReadProspectsMissingColumns(t *testing.T) {
	csv := "company_name,industry\nAcme BV,Finance\n"

	_, err := ReadProspects(writeTemp(t, "prospects.csv", csv))
	require.Error(t, err)

	var missing *MissingColumnError
	require.True(t, errors.As(err, &missing))
	assert.Equal(t, []string{
		"company_size", "location", "job_title", "function_area", "seniority",
		"salary_min", "salary_max", "days_open",
		"contact_name", "contact_title", "email", "tier_score",
	}, missing.Columns)
}

func TestReadProspectsMalformedNumeric(t *testing.T) {
	csv := prospectsHeader + "\n" +
		"Acme BV,Finance,50-200,Amsterdam,Controller,Finance,Senior,not-a-number,70000,34,Jan,HR,jan@acme.nl,87\n"

	_, err := ReadProspects(writeTemp(t, "prospects.csv", csv))
	require.Error(t, err)

	var malformed *MalformedValueError
	require.True(t, errors.As(err, &malformed))
	assert.Equal(t, "salary_min", malformed.Column)
	assert.Equal(t, 1, malformed.Row)
	assert.Equal(t, "not-a-number", malformed.Value)
}

func TestReadProspectsSheetExportFloats(t *testing.T) {
	// sheet exports sometimes render integer cells as "55000.0"
	csv := prospectsHeader + "\n" +
		"Acme BV,Finance,50-200,Amsterdam,Controller,Finance,Senior,55000.0,70000,34,Jan,HR,jan@acme.nl,87.5\n"

	rows, err := ReadProspects(writeTemp(t, "prospects.csv", csv))
	require.NoError(t, err)
	assert.Equal(t, 55000, rows[0].SalaryMin)
	assert.Equal(t, 87.5, rows[0].TierScore)
}

func TestReadProspectsRejectsInvalidUTF8(t *testing.T) {
	bad := prospectsHeader + "\nAcme\xff\xfe,Finance,,,,,,1,2,3,,,x@y.z,5\n"

	_, err := ReadProspects(writeTemp(t, "prospects.csv", bad))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "UTF-8")
}

func TestReadMarket(t *testing.T) {
	csv := "sector,average_salary,open_positions,growth_percentage,shortage_level,top_skills,market_trend\n" +
		"Finance,62000,340,4.2,high,\"Excel, SQL\",groeiend\n" +
		"Tech,75000,1200,8.9,critical,\"Go, Kubernetes\",sterk groeiend\n"

	rows, err := ReadMarket(writeTemp(t, "market.csv", csv))
	require.NoError(t, err)
	require.Len(t, rows, 2)
	assert.Equal(t, "Finance", rows[0].Sector)
	assert.Equal(t, 62000, rows[0].AverageSalary)
	assert.Equal(t, 8.9, rows[1].GrowthPercentage)
	assert.Equal(t, "Go, Kubernetes", rows[1].TopSkills)
}

func TestReadMarketMissingColumn(t *testing.T) {
	csv := "sector,average_salary,open_positions,growth_percentage,shortage_level,top_skills\nFinance,1,2,3,high,SQL\n"

	_, err := ReadMarket(writeTemp(t, "market.csv", csv))
	var missing *MissingColumnError
	require.True(t, errors.As(err, &missing))
	assert.Equal(t, []string{"market_trend"}, missing.Columns)
}
