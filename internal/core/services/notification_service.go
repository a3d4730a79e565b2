package services

import (
	"context"
	"fmt"
	"html/template"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"github.com/fincontrolapp/fincontrol_backend/internal/core/domain"
	portsrepo "github.com/fincontrolapp/fincontrol_backend/internal/core/ports/repositories"
	portssvc "github.com/fincontrolapp/fincontrol_backend/internal/core/ports/services"
)

// defaultNotifyWindowDays is how far ahead the due-date notice looks.
const defaultNotifyWindowDays = 3

var dueNoticeTmpl = template.Must(template.New("dueNotice").Parse(`
<h2>Próximos Vencimentos</h2>
<p>Você tem {{len .Rows}} contas a vencer nos próximos {{.WindowDays}} dias:</p>

<table style="width: 100%; border-collapse: collapse;">
  <thead>
    <tr style="background-color: #f3f4f6;">
      <th style="padding: 8px; text-align: left; border: 1px solid #e5e7eb;">Descrição</th>
      <th style="padding: 8px; text-align: left; border: 1px solid #e5e7eb;">Categoria</th>
      <th style="padding: 8px; text-align: left; border: 1px solid #e5e7eb;">Vencimento</th>
      <th style="padding: 8px; text-align: right; border: 1px solid #e5e7eb;">Valor</th>
    </tr>
  </thead>
  <tbody>
    {{range .Rows}}
    <tr>
      <td style="padding: 8px; border: 1px solid #e5e7eb;">{{.Description}}</td>
      <td style="padding: 8px; border: 1px solid #e5e7eb;">{{.CategoryName}}</td>
      <td style="padding: 8px; border: 1px solid #e5e7eb;">{{.DueDate}}</td>
      <td style="padding: 8px; text-align: right; border: 1px solid #e5e7eb; color: {{.Color}};">{{.Sign}}{{.Amount}}</td>
    </tr>
    {{end}}
  </tbody>
</table>

<p style="margin-top: 20px;">Acesse o sistema para mais detalhes e para efetuar os pagamentos.</p>
`))

type dueNoticeRow struct {
	Description  string
	CategoryName string
	DueDate      string
	Amount       string
	Sign         string
	Color        string
}

type notificationService struct {
	BaseService
	txnRepo      portsrepo.TransactionRepositoryFacade
	categoryRepo portsrepo.CategoryRepositoryFacade
	reporting    portssvc.ReportingSvcFacade
}

// NewNotificationService creates a new NotificationService.
func NewNotificationService(txnRepo portsrepo.TransactionRepositoryFacade, categoryRepo portsrepo.CategoryRepositoryFacade, reporting portssvc.ReportingSvcFacade) portssvc.NotificationSvcFacade {
	return &notificationService{
		txnRepo:      txnRepo,
		categoryRepo: categoryRepo,
		reporting:    reporting,
	}
}

// Ensure notificationService implements the NotificationSvcFacade interface
var _ portssvc.NotificationSvcFacade = (*notificationService)(nil)

// BuildDueNotice renders the upcoming-due-date notice. Delivery is left to an
// external mailer; this only prepares the HTML.
func (s *notificationService) BuildDueNotice(ctx context.Context, windowDays int) (*domain.DueNotice, error) {
	if windowDays <= 0 {
		windowDays = defaultNotifyWindowDays
	}

	upcoming, err := s.reporting.Upcoming(ctx, windowDays)
	if err != nil {
		s.LogError(ctx, err, "Failed to fetch upcoming transactions for notice")
		return nil, fmt.Errorf("failed to fetch upcoming transactions: %w", err)
	}

	categories, err := s.categoryRepo.ListCategories(ctx)
	if err != nil {
		s.LogError(ctx, err, "Failed to fetch categories for notice")
		return nil, fmt.Errorf("failed to fetch categories: %w", err)
	}
	nameOf := make(map[string]string, len(categories))
	for _, c := range categories {
		nameOf[c.CategoryID] = c.Name
	}

	rows := make([]dueNoticeRow, 0, len(upcoming))
	for _, txn := range upcoming {
		categoryName := "Sem categoria"
		if txn.CategoryID != nil {
			if name, ok := nameOf[*txn.CategoryID]; ok {
				categoryName = name
			}
		}
		sign, color := "-", "red"
		if txn.Type == domain.Income {
			sign, color = "+", "green"
		}
		rows = append(rows, dueNoticeRow{
			Description:  txn.Description,
			CategoryName: categoryName,
			DueDate:      formatDueDatePtBR(txn.DueDate),
			Amount:       formatBRL(txn.Amount),
			Sign:         sign,
			Color:        color,
		})
	}

	var buf strings.Builder
	if err := dueNoticeTmpl.Execute(&buf, struct {
		WindowDays int
		Rows       []dueNoticeRow
	}{WindowDays: windowDays, Rows: rows}); err != nil {
		s.LogError(ctx, err, "Failed to render due notice")
		return nil, fmt.Errorf("failed to render due notice: %w", err)
	}

	return &domain.DueNotice{
		WindowDays:   windowDays,
		Transactions: upcoming,
		HTML:         buf.String(),
	}, nil
}

var ptBRMonths = [...]string{
	"janeiro", "fevereiro", "março", "abril", "maio", "junho",
	"julho", "agosto", "setembro", "outubro", "novembro", "dezembro",
}

func formatDueDatePtBR(t time.Time) string {
	return fmt.Sprintf("%02d de %s", t.Day(), ptBRMonths[t.Month()-1])
}

// formatBRL renders an amount as Brazilian currency, e.g. R$ 1.234,56.
func formatBRL(amount decimal.Decimal) string {
	fixed := amount.Abs().StringFixed(2)
	intPart, fracPart, _ := strings.Cut(fixed, ".")

	var grouped strings.Builder
	for i, digit := range intPart {
		if i > 0 && (len(intPart)-i)%3 == 0 {
			grouped.WriteByte('.')
		}
		grouped.WriteRune(digit)
	}
	return "R$ " + grouped.String() + "," + fracPart
}
