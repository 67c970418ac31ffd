package export

import (
	"bytes"
	"context"
	"fmt"
	"html/template"
	"io"
	"mime/multipart"
	"net/http"
	"time"

	"github.com/cakebro/bakery-api/internal/application/service"
)

// GotenbergRenderer converts the sales report into a PDF through a Gotenberg
// instance. The report is rendered to print-styled HTML and posted to the
// chromium conversion endpoint.
type GotenbergRenderer struct {
	baseURL    string
	httpClient *http.Client
	tmpl       *template.Template
}

// NewGotenbergRenderer creates a new renderer for the given Gotenberg URL
func NewGotenbergRenderer(baseURL string) *GotenbergRenderer {
	return &GotenbergRenderer{
		baseURL: baseURL,
		httpClient: &http.Client{
			Timeout: 30 * time.Second,
		},
		tmpl: template.Must(template.New("sales_report").Funcs(template.FuncMap{
			"inc": func(i int) int { return i + 1 },
		}).Parse(reportTemplate)),
	}
}

// Ping checks if the remote Gotenberg service is available
func (r *GotenbergRenderer) Ping(ctx context.Context) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, fmt.Sprintf("%s/health", r.baseURL), nil)
	if err != nil {
		return err
	}
	resp, err := r.httpClient.Do(req)
	if err != nil {
		return err
	}
	defer func() {
		_ = resp.Body.Close()
	}()
	if resp.StatusCode >= 400 {
		return fmt.Errorf("gotenberg returned status %d", resp.StatusCode)
	}
	return nil
}

// Render converts a sales report into a PDF document
func (r *GotenbergRenderer) Render(ctx context.Context, report *service.SalesReport) ([]byte, error) {
	var html bytes.Buffer
	if err := r.tmpl.Execute(&html, report); err != nil {
		return nil, fmt.Errorf("failed to render report template: %w", err)
	}
	return r.convertHTML(ctx, html.String())
}

func (r *GotenbergRenderer) convertHTML(ctx context.Context, html string) ([]byte, error) {
	body := &bytes.Buffer{}
	writer := multipart.NewWriter(body)
	part, err := writer.CreateFormFile("files", "index.html")
	if err != nil {
		return nil, err
	}
	if _, err := io.Copy(part, bytes.NewBufferString(html)); err != nil {
		return nil, err
	}
	if err := writer.Close(); err != nil {
		return nil, err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, fmt.Sprintf("%s/forms/chromium/convert/html", r.baseURL), body)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", writer.FormDataContentType())

	resp, err := r.httpClient.Do(req)
	if err != nil {
		return nil, err
	}
	defer func() {
		_ = resp.Body.Close()
	}()
	if resp.StatusCode >= 400 {
		return nil, fmt.Errorf("render failed with status %d", resp.StatusCode)
	}
	return io.ReadAll(resp.Body)
}

// reportTemplate is the print-styled HTML behind the PDF export
const reportTemplate = `<!DOCTYPE html>
<html>
<head>
<meta charset="UTF-8">
<style>
  body { font-family: 'Helvetica Neue', Arial, sans-serif; color: #1a1a2e; margin: 24px; }
  h1 { font-size: 22px; margin-bottom: 2px; }
  .period { color: #4a5568; margin-bottom: 16px; }
  .total { font-size: 18px; font-weight: bold; margin-bottom: 24px; }
  table { width: 100%; border-collapse: collapse; margin-bottom: 28px; }
  th { background: #f4f7fa; text-align: left; padding: 6px 8px; border-bottom: 2px solid #d45d4a; }
  td { padding: 6px 8px; border-bottom: 1px solid #e2e8f0; }
  .num { text-align: right; }
  h2 { font-size: 16px; border-bottom: 1px solid #e2e8f0; padding-bottom: 4px; }
</style>
</head>
<body>
  <h1>{{.ShopName}} - Sales Report</h1>
  <div class="period">{{.Window.Label}}</div>
  <div class="total">Total Sales: &#8377;{{.TotalSales}}</div>

  <h2>Product Breakdown</h2>
  <table>
    <tr><th>Product</th><th>Size</th><th class="num">Quantity</th><th class="num">Value (&#8377;)</th></tr>
    {{range .Products}}
    <tr>
      <td>{{.ProductName}}</td>
      <td>{{.SizeName}}</td>
      <td class="num">{{.TotalQuantity}}</td>
      <td class="num">{{.TotalValue}}</td>
    </tr>
    {{end}}
  </table>

  <h2>Invoices</h2>
  <table>
    <tr><th>S.No</th><th>Bill No</th><th>Customer</th><th>Phone</th><th>Date &amp; Time</th><th>Payment</th><th class="num">Amount (&#8377;)</th></tr>
    {{range $i, $inv := .Invoices}}
    <tr>
      <td>{{inc $i}}</td>
      <td>{{$inv.ID}}</td>
      <td>{{with $inv.Customer}}{{.Name}}{{else}}N/A{{end}}</td>
      <td>{{with $inv.Customer}}{{.Phone}}{{else}}N/A{{end}}</td>
      <td>{{$inv.Date.Format "02 Jan 2006 15:04"}}</td>
      <td>{{$inv.PaymentMethod}}</td>
      <td class="num">{{$inv.GrandTotal}}</td>
    </tr>
    {{end}}
  </table>
</body>
</html>
`
