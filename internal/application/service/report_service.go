package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/cakebro/bakery-api/internal/domain/entity"
	"github.com/cakebro/bakery-api/internal/domain/repository"
	"github.com/cakebro/bakery-api/pkg/apperror"
	"github.com/cakebro/bakery-api/pkg/email"
)

// ReportPeriod selects the reporting window shape
type ReportPeriod string

const (
	PeriodDaily   ReportPeriod = "daily"
	PeriodWeekly  ReportPeriod = "weekly"
	PeriodMonthly ReportPeriod = "monthly"
	PeriodYearly  ReportPeriod = "yearly"
)

// IsValid checks if the report period is valid
func (p ReportPeriod) IsValid() bool {
	switch p {
	case PeriodDaily, PeriodWeekly, PeriodMonthly, PeriodYearly:
		return true
	}
	return false
}

// ReportWindow is a resolved inclusive time window for a report
type ReportWindow struct {
	Period ReportPeriod `json:"period"`
	Start  time.Time    `json:"start"`
	End    time.Time    `json:"end"`
	Label  string       `json:"label"`
}

// TodaySummary is the ledger row for the current date, always reported
// alongside the selected window regardless of what that window covers.
type TodaySummary struct {
	Date           time.Time `json:"date"`
	TotalAmount    int64     `json:"total_amount"`
	TotalOrders    int64     `json:"total_orders"`
	TotalItemsSold int64     `json:"total_items_sold"`
}

// SalesReport is the full payload behind the report screen and its exports
type SalesReport struct {
	ShopName    string                       `json:"shop_name"`
	Window      ReportWindow                 `json:"window"`
	TotalSales  int64                        `json:"total_sales"`
	Products    []repository.ProductSalesRow `json:"products"`
	Invoices    []entity.Invoice             `json:"invoices"`
	Today       TodaySummary                 `json:"today"`
	GeneratedAt time.Time                    `json:"generated_at"`
}

// XLSXExporter renders a sales report as a spreadsheet
type XLSXExporter interface {
	Build(report *SalesReport) ([]byte, error)
}

// PDFExporter renders a sales report as a PDF document
type PDFExporter interface {
	Render(ctx context.Context, report *SalesReport) ([]byte, error)
}

// DailySummarySender delivers the end-of-day summary email
type DailySummarySender interface {
	SendDailySalesReport(toEmail string, report email.DailyReport) error
}

// ReportService builds time-windowed sales reports and their exports
type ReportService struct {
	reportRepo    repository.ReportRepository
	dailySaleRepo repository.DailySaleRepository
	emailSender   DailySummarySender
	xlsxExporter  XLSXExporter
	pdfExporter   PDFExporter
	shopName      string
	ownerEmail    string
}

// NewReportService creates a new report service
func NewReportService(
	reportRepo repository.ReportRepository,
	dailySaleRepo repository.DailySaleRepository,
	emailSender DailySummarySender,
	xlsxExporter XLSXExporter,
	pdfExporter PDFExporter,
	shopName string,
	ownerEmail string,
) *ReportService {
	return &ReportService{
		reportRepo:    reportRepo,
		dailySaleRepo: dailySaleRepo,
		emailSender:   emailSender,
		xlsxExporter:  xlsxExporter,
		pdfExporter:   pdfExporter,
		shopName:      shopName,
		ownerEmail:    ownerEmail,
	}
}

// ResolveWindow maps a period and reference date to the inclusive window it
// covers. Weeks run Monday through Sunday.
func ResolveWindow(period ReportPeriod, ref time.Time) (ReportWindow, error) {
	if !period.IsValid() {
		return ReportWindow{}, apperror.NewBadRequestError(fmt.Sprintf("Unknown report period %q.", period))
	}

	day := time.Date(ref.Year(), ref.Month(), ref.Day(), 0, 0, 0, 0, ref.Location())
	window := ReportWindow{Period: period}

	switch period {
	case PeriodDaily:
		window.Start = day
		window.End = day.AddDate(0, 0, 1).Add(-time.Second)
		window.Label = day.Format("02 Jan 2006")
	case PeriodWeekly:
		offset := (int(day.Weekday()) + 6) % 7
		window.Start = day.AddDate(0, 0, -offset)
		window.End = window.Start.AddDate(0, 0, 7).Add(-time.Second)
		window.Label = fmt.Sprintf("%s - %s",
			window.Start.Format("02 Jan 2006"), window.End.Format("02 Jan 2006"))
	case PeriodMonthly:
		window.Start = time.Date(day.Year(), day.Month(), 1, 0, 0, 0, 0, day.Location())
		window.End = window.Start.AddDate(0, 1, 0).Add(-time.Second)
		window.Label = window.Start.Format("January 2006")
	case PeriodYearly:
		window.Start = time.Date(day.Year(), time.January, 1, 0, 0, 0, 0, day.Location())
		window.End = window.Start.AddDate(1, 0, 0).Add(-time.Second)
		window.Label = window.Start.Format("2006")
	}
	return window, nil
}

// ParseReportDate parses the optional reference date parameter. A blank value
// means today.
func ParseReportDate(value string) (time.Time, error) {
	value = strings.TrimSpace(value)
	if value == "" {
		return time.Now(), nil
	}
	t, err := time.ParseInLocation("2006-01-02", value, time.Local)
	if err != nil {
		return time.Time{}, apperror.NewBadRequestError("Invalid date. Use the YYYY-MM-DD format.")
	}
	return t, nil
}

// BuildReport assembles the sales report for a period and reference date. The
// today block is always computed for the current date, independent of the
// requested window.
func (s *ReportService) BuildReport(ctx context.Context, period ReportPeriod, ref time.Time) (*SalesReport, error) {
	window, err := ResolveWindow(period, ref)
	if err != nil {
		return nil, err
	}

	total, err := s.reportRepo.TotalInWindow(ctx, window.Start, window.End)
	if err != nil {
		return nil, err
	}
	products, err := s.reportRepo.ProductBreakdown(ctx, window.Start, window.End)
	if err != nil {
		return nil, err
	}
	invoices, err := s.reportRepo.InvoicesInWindow(ctx, window.Start, window.End)
	if err != nil {
		return nil, err
	}

	today, err := s.todaySummary(ctx)
	if err != nil {
		return nil, err
	}

	return &SalesReport{
		ShopName:    s.shopName,
		Window:      window,
		TotalSales:  total,
		Products:    products,
		Invoices:    invoices,
		Today:       today,
		GeneratedAt: time.Now(),
	}, nil
}

// ExportXLSX builds the report and renders it as a spreadsheet
func (s *ReportService) ExportXLSX(ctx context.Context, period ReportPeriod, ref time.Time) (string, []byte, error) {
	report, err := s.BuildReport(ctx, period, ref)
	if err != nil {
		return "", nil, err
	}
	data, err := s.xlsxExporter.Build(report)
	if err != nil {
		return "", nil, err
	}
	return exportFilename(period, ref, "xlsx"), data, nil
}

// ExportPDF builds the report and renders it through the PDF converter. A
// converter failure maps to a delivery error so the caller can distinguish it
// from a bad request.
func (s *ReportService) ExportPDF(ctx context.Context, period ReportPeriod, ref time.Time) (string, []byte, error) {
	report, err := s.BuildReport(ctx, period, ref)
	if err != nil {
		return "", nil, err
	}
	data, err := s.pdfExporter.Render(ctx, report)
	if err != nil {
		if apperror.IsAppError(err) {
			return "", nil, err
		}
		return "", nil, apperror.NewDeliveryError(fmt.Sprintf("PDF generation failed: %v", err))
	}
	return exportFilename(period, ref, "pdf"), data, nil
}

// EmailDailySummary sends today's ledger totals to the shop owner, or to an
// explicit recipient when one is given.
func (s *ReportService) EmailDailySummary(ctx context.Context, toEmail string) error {
	toEmail = strings.TrimSpace(toEmail)
	if toEmail == "" {
		toEmail = s.ownerEmail
	}
	if toEmail == "" {
		return apperror.NewBadRequestError("No recipient email is configured.")
	}

	today, err := s.todaySummary(ctx)
	if err != nil {
		return err
	}

	report := email.DailyReport{
		ShopName:    s.shopName,
		ReportDate:  today.Date.Format("02 Jan 2006"),
		TotalAmount: today.TotalAmount,
		HasSales:    today.TotalAmount > 0,
	}
	if err := s.emailSender.SendDailySalesReport(toEmail, report); err != nil {
		return apperror.NewDeliveryError(fmt.Sprintf("Could not send the summary email: %v", err))
	}
	return nil
}

// todaySummary reads today's ledger row, zero-valued when no sales yet
func (s *ReportService) todaySummary(ctx context.Context) (TodaySummary, error) {
	now := time.Now()
	summary := TodaySummary{
		Date: time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location()),
	}

	row, err := s.dailySaleRepo.GetByDate(ctx, now)
	if err != nil {
		return summary, err
	}
	if row != nil {
		summary.TotalAmount = row.TotalAmount
		summary.TotalOrders = row.TotalOrders
		summary.TotalItemsSold = row.TotalItemsSold
	}
	return summary, nil
}

// exportFilename builds the attachment filename for a report download
func exportFilename(period ReportPeriod, ref time.Time, ext string) string {
	return fmt.Sprintf("sales_report_%s_%s.%s", period, ref.Format("2006-01-02"), ext)
}
