package email

import (
	"bytes"
	"context"
	"fmt"
	"html/template"

	"go.uber.org/zap"

	"github.com/seu-repo/quickpos/internal/domain"
)

// Provider defines the interface for email providers
type Provider interface {
	Send(ctx context.Context, to, subject, body string, isHTML bool) error
}

// Config holds email service configuration
type Config struct {
	// Provider type: "sendgrid" or "smtp"
	Provider string

	// From email address
	FromEmail string
	FromName  string

	// SendGrid configuration
	SendGridAPIKey string

	// SMTP configuration (for Mailhog or other SMTP servers)
	SMTPHost     string
	SMTPPort     int
	SMTPUsername string
	SMTPPassword string
	SMTPUseTLS   bool

	// Store details shown on receipts
	StoreName    string
	StoreAddress string
}

// DefaultConfig returns a default configuration for development (Mailhog)
func DefaultConfig() *Config {
	return &Config{
		Provider:     "smtp",
		FromEmail:    "noreply@quickpos.id",
		FromName:     "QuickPOS",
		SMTPHost:     "localhost",
		SMTPPort:     1025, // Mailhog default port
		SMTPUseTLS:   false,
		StoreName:    "QuickPOS Store",
		StoreAddress: "Jakarta Selatan",
	}
}

// Service sends transactional mail: customer receipts and end-of-day
// reports for plans that carry those features.
type Service struct {
	config    *Config
	provider  Provider
	templates map[string]*template.Template
	log       *zap.Logger
}

// NewService creates a new email service
func NewService(config *Config, log *zap.Logger) (*Service, error) {
	if config == nil {
		config = DefaultConfig()
	}

	s := &Service{
		config:    config,
		templates: make(map[string]*template.Template),
		log:       log,
	}

	switch config.Provider {
	case "sendgrid":
		if config.SendGridAPIKey == "" {
			return nil, fmt.Errorf("SendGrid API key is required")
		}
		s.provider = NewSendGridProvider(config.SendGridAPIKey, config.FromEmail, config.FromName)
	case "smtp":
		s.provider = NewSMTPProvider(
			config.SMTPHost,
			config.SMTPPort,
			config.SMTPUsername,
			config.SMTPPassword,
			config.FromEmail,
			config.FromName,
			config.SMTPUseTLS,
		)
	default:
		return nil, fmt.Errorf("unknown email provider: %s", config.Provider)
	}

	s.loadTemplates()

	return s, nil
}

func (s *Service) loadTemplates() {
	s.templates["receipt"] = template.Must(template.New("receipt").Parse(receiptTemplate))
	s.templates["daily_report"] = template.Must(template.New("daily_report").Parse(dailyReportTemplate))
}

// Send sends a plain-text email
func (s *Service) Send(ctx context.Context, to, subject, body string) error {
	s.log.Info("Sending email",
		zap.String("to", to),
		zap.String("subject", subject),
	)

	if err := s.provider.Send(ctx, to, subject, body, false); err != nil {
		s.log.Error("Failed to send email",
			zap.String("to", to),
			zap.Error(err),
		)
		return fmt.Errorf("failed to send email: %w", err)
	}

	return nil
}

// SendHTML sends an HTML email
func (s *Service) SendHTML(ctx context.Context, to, subject, htmlBody string) error {
	s.log.Info("Sending HTML email",
		zap.String("to", to),
		zap.String("subject", subject),
	)

	if err := s.provider.Send(ctx, to, subject, htmlBody, true); err != nil {
		s.log.Error("Failed to send HTML email",
			zap.String("to", to),
			zap.Error(err),
		)
		return fmt.Errorf("failed to send HTML email: %w", err)
	}

	return nil
}

// SendTemplate renders a named template and sends it as HTML
func (s *Service) SendTemplate(ctx context.Context, to, templateName string, data map[string]interface{}) error {
	tmpl, ok := s.templates[templateName]
	if !ok {
		return fmt.Errorf("template not found: %s", templateName)
	}

	if data == nil {
		data = make(map[string]interface{})
	}
	data["StoreName"] = s.config.StoreName
	data["StoreAddress"] = s.config.StoreAddress

	var buf bytes.Buffer
	if err := tmpl.Execute(&buf, data); err != nil {
		return fmt.Errorf("failed to execute template: %w", err)
	}

	subject, ok := data["Subject"].(string)
	if !ok {
		subject = fmt.Sprintf("Notification from %s", s.config.StoreName)
	}

	return s.SendHTML(ctx, to, subject, buf.String())
}

// SendReceipt mails the customer a rendered copy of a recorded transaction.
func (s *Service) SendReceipt(ctx context.Context, to string, tx *domain.Transaction) error {
	customerName := "Pelanggan"
	if tx.Customer != nil && tx.Customer.Name != "" {
		customerName = tx.Customer.Name
	}

	lines := make([]map[string]interface{}, 0, len(tx.Items))
	for _, it := range tx.Items {
		lines = append(lines, map[string]interface{}{
			"Name":     it.Name,
			"Quantity": it.Quantity,
			"Subtotal": fmt.Sprintf("%.0f", it.UnitPrice*float64(it.Quantity)),
		})
	}

	data := map[string]interface{}{
		"Subject":       fmt.Sprintf("Receipt #%s", tx.ID),
		"CustomerName":  customerName,
		"TransactionID": tx.ID,
		"Date":          tx.CreatedAt.Format("2006-01-02 15:04"),
		"Lines":         lines,
		"Subtotal":      fmt.Sprintf("%.0f", tx.Subtotal),
		"Discount":      fmt.Sprintf("%.0f", tx.Discount),
		"Tax":           fmt.Sprintf("%.0f", tx.Tax),
		"Total":         fmt.Sprintf("%.0f", tx.Total),
		"PaymentMethod": string(tx.PaymentMethod),
	}

	return s.SendTemplate(ctx, to, "receipt", data)
}

// SendDailyReport mails the owner the closed-shift figures.
func (s *Service) SendDailyReport(ctx context.Context, to string, summary *domain.ShiftSummary, expenseTotal float64) error {
	sellers := make([]map[string]interface{}, 0, len(summary.BestSellers))
	for _, bs := range summary.BestSellers {
		sellers = append(sellers, map[string]interface{}{
			"Name":     bs.Name,
			"Quantity": bs.Quantity,
			"Revenue":  fmt.Sprintf("%.0f", bs.Revenue),
		})
	}

	data := map[string]interface{}{
		"Subject":          fmt.Sprintf("Daily Report %s", summary.OpenedAt.Format("2006-01-02")),
		"ShiftID":          summary.ShiftID,
		"TotalSales":       fmt.Sprintf("%.0f", summary.TotalSales),
		"TransactionCount": summary.TransactionCount,
		"CashSales":        fmt.Sprintf("%.0f", summary.CashSales),
		"CashVariance":     fmt.Sprintf("%.0f", summary.CashVariance),
		"ExpenseTotal":     fmt.Sprintf("%.0f", expenseTotal),
		"BestSellers":      sellers,
	}

	return s.SendTemplate(ctx, to, "daily_report", data)
}
