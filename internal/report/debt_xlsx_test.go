package report_test

import (
	"bytes"
	"testing"
	"time"

	"github.com/SscSPs/partner_ledger_app/internal/core/domain"
	"github.com/SscSPs/partner_ledger_app/internal/report"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
)

func TestWriteDebtSummaries(t *testing.T) {
	last := time.Date(2024, 5, 17, 9, 0, 0, 0, time.UTC)
	summaries := []domain.DebtSummary{
		{PartnerID: "p1", PartnerName: "An Phát", PartnerType: domain.PartnerSupplier, DebtAmount: decimal.NewFromInt(-500), DebtLimit: decimal.NewFromInt(400), IsOverLimit: true, LastTransactionDate: &last},
		{PartnerID: "p2", PartnerName: "Bình Minh", PartnerType: domain.PartnerCustomer, DebtAmount: decimal.NewFromInt(1200), DebtLimit: decimal.NewFromInt(5000)},
	}

	var buf bytes.Buffer
	require.NoError(t, report.WriteDebtSummaries(&buf, summaries, last))

	f, err := excelize.OpenReader(&buf)
	require.NoError(t, err)
	defer f.Close()

	rows, err := f.GetRows(report.DebtSheetName)
	require.NoError(t, err)
	require.GreaterOrEqual(t, len(rows), 3)

	assert.Equal(t, "Đối tác", rows[0][0])
	assert.Equal(t, []string{"An Phát", "SUPPLIER", "500", "Có", "400", "Có", "17/05/2024"}, rows[1])
	assert.Equal(t, "Bình Minh", rows[2][0])
	assert.Equal(t, "Nợ", rows[2][3])
	assert.Equal(t, "Không", rows[2][5])
}

func TestWriteDebtSummaries_Empty(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, report.WriteDebtSummaries(&buf, nil, time.Now()))

	f, err := excelize.OpenReader(&buf)
	require.NoError(t, err)
	defer f.Close()

	rows, err := f.GetRows(report.DebtSheetName)
	require.NoError(t, err)
	assert.Equal(t, "Đối tác", rows[0][0])
}

func TestDirection(t *testing.T) {
	assert.Equal(t, "Nợ", report.Direction(domain.DebtSummary{DebtAmount: decimal.NewFromInt(1)}))
	assert.Equal(t, "Có", report.Direction(domain.DebtSummary{DebtAmount: decimal.NewFromInt(-1)}))
	assert.Equal(t, "", report.Direction(domain.DebtSummary{DebtAmount: decimal.Zero}))
}
