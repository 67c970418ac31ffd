package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/cakebro/bakery-api/internal/domain/entity"
	"github.com/cakebro/bakery-api/internal/domain/repository"
	"github.com/cakebro/bakery-api/pkg/apperror"
	"github.com/cakebro/bakery-api/pkg/email"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeSummarySender captures daily summary emails instead of sending them
type fakeSummarySender struct {
	to   []string
	sent []email.DailyReport
	err  error
}

func (f *fakeSummarySender) SendDailySalesReport(toEmail string, report email.DailyReport) error {
	if f.err != nil {
		return f.err
	}
	f.to = append(f.to, toEmail)
	f.sent = append(f.sent, report)
	return nil
}

func TestResolveWindow(t *testing.T) {
	// Thursday in a leap-year February
	ref := time.Date(2024, 2, 15, 13, 45, 0, 0, time.Local)

	tests := []struct {
		period    ReportPeriod
		wantStart time.Time
		wantEnd   time.Time
		wantLabel string
	}{
		{
			period:    PeriodDaily,
			wantStart: time.Date(2024, 2, 15, 0, 0, 0, 0, time.Local),
			wantEnd:   time.Date(2024, 2, 15, 23, 59, 59, 0, time.Local),
			wantLabel: "15 Feb 2024",
		},
		{
			period:    PeriodWeekly,
			wantStart: time.Date(2024, 2, 12, 0, 0, 0, 0, time.Local),
			wantEnd:   time.Date(2024, 2, 18, 23, 59, 59, 0, time.Local),
			wantLabel: "12 Feb 2024 - 18 Feb 2024",
		},
		{
			period:    PeriodMonthly,
			wantStart: time.Date(2024, 2, 1, 0, 0, 0, 0, time.Local),
			wantEnd:   time.Date(2024, 2, 29, 23, 59, 59, 0, time.Local),
			wantLabel: "February 2024",
		},
		{
			period:    PeriodYearly,
			wantStart: time.Date(2024, 1, 1, 0, 0, 0, 0, time.Local),
			wantEnd:   time.Date(2024, 12, 31, 23, 59, 59, 0, time.Local),
			wantLabel: "2024",
		},
	}

	for _, tc := range tests {
		t.Run(string(tc.period), func(t *testing.T) {
			window, err := ResolveWindow(tc.period, ref)
			require.NoError(t, err)
			assert.True(t, window.Start.Equal(tc.wantStart), "start %v", window.Start)
			assert.True(t, window.End.Equal(tc.wantEnd), "end %v", window.End)
			assert.Equal(t, tc.wantLabel, window.Label)
		})
	}
}

func TestResolveWindow_WeekStartsMonday(t *testing.T) {
	// A Monday resolves to itself, a Sunday to the preceding Monday
	monday := time.Date(2024, 2, 12, 8, 0, 0, 0, time.Local)
	sunday := time.Date(2024, 2, 18, 8, 0, 0, 0, time.Local)

	w1, err := ResolveWindow(PeriodWeekly, monday)
	require.NoError(t, err)
	w2, err := ResolveWindow(PeriodWeekly, sunday)
	require.NoError(t, err)

	assert.True(t, w1.Start.Equal(w2.Start))
	assert.Equal(t, time.Monday, w1.Start.Weekday())
}

func TestResolveWindow_UnknownPeriod(t *testing.T) {
	_, err := ResolveWindow("quarterly", time.Now())
	require.Error(t, err)
}

func TestParseReportDate(t *testing.T) {
	parsed, err := ParseReportDate("2024-02-15")
	require.NoError(t, err)
	assert.Equal(t, 2024, parsed.Year())
	assert.Equal(t, time.February, parsed.Month())
	assert.Equal(t, 15, parsed.Day())

	_, err = ParseReportDate("15/02/2024")
	require.Error(t, err)

	today, err := ParseReportDate("  ")
	require.NoError(t, err)
	assert.Equal(t, time.Now().Day(), today.Day())
}

func TestBuildReport(t *testing.T) {
	reportRepo := &fakeReportRepo{
		total: 4520,
		products: []repository.ProductSalesRow{
			{ProductName: "Chocolate Cake", SizeName: "1kg", TotalQuantity: 3, TotalValue: 1500},
		},
		invoices: []entity.Invoice{{GrandTotal: 4520}},
	}
	dailyRepo := &fakeDailySaleRepo{row: &entity.DailySale{
		TotalAmount:    620,
		TotalOrders:    2,
		TotalItemsSold: 5,
	}}

	svc := NewReportService(reportRepo, dailyRepo, nil, nil, nil, "Cake Bro", "owner@example.com")

	report, err := svc.BuildReport(context.Background(), PeriodMonthly, time.Date(2024, 2, 15, 0, 0, 0, 0, time.Local))
	require.NoError(t, err)

	assert.Equal(t, "Cake Bro", report.ShopName)
	assert.Equal(t, int64(4520), report.TotalSales)
	assert.Equal(t, "February 2024", report.Window.Label)
	require.Len(t, report.Products, 1)
	require.Len(t, report.Invoices, 1)

	// The today block comes from the ledger, not the report window
	assert.Equal(t, int64(620), report.Today.TotalAmount)
	assert.Equal(t, int64(2), report.Today.TotalOrders)
	assert.Equal(t, int64(5), report.Today.TotalItemsSold)
}

func TestBuildReport_NoSalesToday(t *testing.T) {
	svc := NewReportService(&fakeReportRepo{}, &fakeDailySaleRepo{}, nil, nil, nil, "Cake Bro", "")

	report, err := svc.BuildReport(context.Background(), PeriodDaily, time.Now())
	require.NoError(t, err)

	assert.Zero(t, report.Today.TotalAmount)
	assert.Zero(t, report.Today.TotalOrders)
}

func TestEmailDailySummary_DefaultsToOwner(t *testing.T) {
	sender := &fakeSummarySender{}
	dailyRepo := &fakeDailySaleRepo{row: &entity.DailySale{TotalAmount: 620, TotalOrders: 2}}
	svc := NewReportService(&fakeReportRepo{}, dailyRepo, sender, nil, nil, "Cake Bro", "owner@example.com")

	require.NoError(t, svc.EmailDailySummary(context.Background(), "  "))

	require.Len(t, sender.sent, 1)
	assert.Equal(t, "owner@example.com", sender.to[0])
	assert.Equal(t, "Cake Bro", sender.sent[0].ShopName)
	assert.Equal(t, int64(620), sender.sent[0].TotalAmount)
	assert.True(t, sender.sent[0].HasSales)
}

func TestEmailDailySummary_ZeroRevenueMeansNoSales(t *testing.T) {
	// Counters can tick without revenue; the flag follows the amount
	sender := &fakeSummarySender{}
	dailyRepo := &fakeDailySaleRepo{row: &entity.DailySale{TotalAmount: 0, TotalOrders: 1}}
	svc := NewReportService(&fakeReportRepo{}, dailyRepo, sender, nil, nil, "Cake Bro", "owner@example.com")

	require.NoError(t, svc.EmailDailySummary(context.Background(), ""))

	require.Len(t, sender.sent, 1)
	assert.False(t, sender.sent[0].HasSales)
}

func TestEmailDailySummary_NoRecipientConfigured(t *testing.T) {
	svc := NewReportService(&fakeReportRepo{}, &fakeDailySaleRepo{}, &fakeSummarySender{}, nil, nil, "Cake Bro", "")

	err := svc.EmailDailySummary(context.Background(), "")
	require.Error(t, err)
	assert.Equal(t, 400, apperror.GetAppError(err).Code)
}

func TestEmailDailySummary_SendFailure(t *testing.T) {
	sender := &fakeSummarySender{err: errors.New("smtp down")}
	svc := NewReportService(&fakeReportRepo{}, &fakeDailySaleRepo{}, sender, nil, nil, "Cake Bro", "owner@example.com")

	err := svc.EmailDailySummary(context.Background(), "")
	require.Error(t, err)
	assert.Equal(t, 502, apperror.GetAppError(err).Code)
}

func TestExportFilename(t *testing.T) {
	ref := time.Date(2024, 2, 15, 0, 0, 0, 0, time.Local)
	assert.Equal(t, "sales_report_weekly_2024-02-15.xlsx", exportFilename(PeriodWeekly, ref, "xlsx"))
	assert.Equal(t, "sales_report_daily_2024-02-15.pdf", exportFilename(PeriodDaily, ref, "pdf"))
}
