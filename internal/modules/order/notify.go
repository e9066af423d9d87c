package order

import (
	"bytes"
	"context"
	"fmt"
	"log/slog"
	"strings"
	"sync"
	"text/template"
	"time"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/georgemunganga/gluto-backend/internal/mail"
)

// Notifier tells the operations mailbox and the customer about a new order.
// Sends run in the background; a failed send is logged and counted, never
// returned to the caller.
type Notifier interface {
	OrderPlaced(o *Order)
}

var (
	summaryTmpl = template.Must(template.New("summary").Funcs(template.FuncMap{
		"money": func(v float64) string { return fmt.Sprintf("$%.2f", v) },
		"stamp": func(t time.Time) string { return t.Format("2006-01-02 15:04 MST") },
	}).Parse(`New Order Received - Order #{{.OrderNumber}}

Customer Information:
- Name: {{.FullName}}
- Position: {{.PositionTitle}}
- Company: {{.CompanyName}}
- Email: {{.Email}}
- Phone: {{.PhoneNumber}}
- Address: {{.Address}}
- Priority: {{.InquiryPriority}}

Order Items:
{{range .Items}}- {{.ProductName}} (Quantity: {{.Quantity}}, Price: {{money .Price}})
{{end}}
Total Amount: {{money .TotalAmount}}

Order placed at: {{stamp .CreatedAt}}
`))

	confirmationTmpl = template.Must(template.New("confirmation").Parse(`Dear {{.Order.FullName}},

Thank you for your order with GLUTO INTERNATIONAL. We have received your inquiry and will process it according to your specified priority level ({{.Order.InquiryPriority}}).

{{.Summary}}
Best regards,
GLUTO INTERNATIONAL Team
`))
)

// MailNotifier sends order emails through a mail.Sender.
type MailNotifier struct {
	sender     mail.Sender
	adminEmail string
	timeout    time.Duration
	results    *prometheus.CounterVec
	log        *slog.Logger
	wg         sync.WaitGroup
}

// NewMailNotifier creates a notifier. results, if non-nil, is incremented
// with the "kind" and "result" labels for every send.
func NewMailNotifier(sender mail.Sender, adminEmail string, timeout time.Duration, results *prometheus.CounterVec, log *slog.Logger) *MailNotifier {
	if log == nil {
		log = slog.Default()
	}
	return &MailNotifier{sender: sender, adminEmail: adminEmail, timeout: timeout, results: results, log: log}
}

func (n *MailNotifier) OrderPlaced(o *Order) {
	admin, customer, err := render(o)
	if err != nil {
		n.log.Error("render order notification", "order", o.OrderNumber, "error", err)
		n.count("admin", "error")
		n.count("customer", "error")
		return
	}
	admin.To = []string{n.adminEmail}
	customer.To = []string{o.Email}

	n.wg.Add(2)
	go n.send("admin", o.OrderNumber, admin)
	go n.send("customer", o.OrderNumber, customer)
}

// Wait blocks until in-flight sends finish or ctx is done.
func (n *MailNotifier) Wait(ctx context.Context) error {
	done := make(chan struct{})
	go func() {
		n.wg.Wait()
		close(done)
	}()
	select {
	case <-done:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

func (n *MailNotifier) send(kind, orderNumber string, msg mail.Message) {
	defer n.wg.Done()
	ctx, cancel := context.WithTimeout(context.Background(), n.timeout)
	defer cancel()

	if err := n.sender.Send(ctx, msg); err != nil {
		n.log.Error("order notification failed", "kind", kind, "order", orderNumber, "error", err)
		n.count(kind, "error")
		return
	}
	n.log.Info("order notification sent", "kind", kind, "order", orderNumber)
	n.count(kind, "sent")
}

func (n *MailNotifier) count(kind, result string) {
	if n.results != nil {
		n.results.WithLabelValues(kind, result).Inc()
	}
}

func render(o *Order) (admin, customer mail.Message, err error) {
	var summary bytes.Buffer
	if err = summaryTmpl.Execute(&summary, o); err != nil {
		return admin, customer, err
	}
	var confirmation bytes.Buffer
	err = confirmationTmpl.Execute(&confirmation, struct {
		Order   *Order
		Summary string
	}{o, summary.String()})
	if err != nil {
		return admin, customer, err
	}

	subject := fmt.Sprintf("New Order #%s", o.OrderNumber)
	if company := strings.TrimSpace(o.CompanyName); company != "" {
		subject += " - " + company
	}
	admin = mail.Message{Subject: subject, Body: summary.String()}
	customer = mail.Message{
		Subject: fmt.Sprintf("Order Confirmation #%s - GLUTO INTERNATIONAL", o.OrderNumber),
		Body:    confirmation.String(),
	}
	return admin, customer, nil
}
