package services

import (
	"bytes"
	"fmt"
	"html/template"

	"github.com/creat233/idfinder-sub001/internal/models"
	"github.com/creat233/idfinder-sub001/internal/utils"
)

// The one fixed template behind every recovery alert sent to the operations
// mailbox. Payout lines are rendered so the operator can settle the three
// parties by phone without opening the back office.
var recoveryAlertTmpl = template.Must(template.New("recovery_alert").Parse(`<html>
<body style="font-family: Arial, sans-serif; color: #1a1a2e;">
  <h2>{{.Title}}</h2>
  <h3>Document</h3>
  <ul>
    <li>Type: {{.DocumentType}}</li>
    <li>Number: {{.CardNumber}}</li>
    <li>Found at: {{.FoundLocation}}</li>
    <li>Status: {{.Status}}</li>
  </ul>
  <h3>Owner</h3>
  <ul>
    <li>Name: {{.OwnerName}}</li>
    <li>Phone: {{.OwnerPhone}}</li>
  </ul>
  <h3>Reporter</h3>
  <ul>
    <li>Phone: {{.ReporterPhone}}</li>
  </ul>
  {{if .HasPromo}}
  <h3>Promo code</h3>
  <ul>
    <li>Code: {{.PromoCode}}</li>
    <li>Discount: {{.Discount}}</li>
  </ul>
  {{end}}
  <h3>Payout summary</h3>
  <ul>
    {{range .PayoutLines}}<li>{{.}}</li>
    {{end}}
  </ul>
</body>
</html>`))

type recoveryAlertData struct {
	Title         string
	DocumentType  string
	CardNumber    string
	FoundLocation string
	Status        string
	OwnerName     string
	OwnerPhone    string
	ReporterPhone string
	HasPromo      bool
	PromoCode     string
	Discount      string
	PayoutLines   []string
}

// RenderRecoveryAlert produces the HTML body for one recovery alert email.
func RenderRecoveryAlert(alert *models.RecoveryAlert, title string) (string, error) {
	item := alert.Item

	data := recoveryAlertData{
		Title:         title,
		DocumentType:  string(item.DocumentType),
		CardNumber:    item.CardNumber,
		FoundLocation: item.FoundLocation,
		Status:        string(item.Status),
		ReporterPhone: item.ReporterPhone,
	}

	if item.Recovery != nil {
		data.OwnerName = item.Recovery.OwnerName
		data.OwnerPhone = item.Recovery.OwnerPhone
	}

	if alert.Usage != nil {
		data.HasPromo = true
		data.Discount = utils.FormatCurrency(alert.Usage.DiscountAmount, item.Currency)
		if alert.PromoCode != nil {
			data.PromoCode = alert.PromoCode.Code
		}
	}

	if alert.Payout != nil {
		for _, line := range alert.Payout.Lines {
			data.PayoutLines = append(data.PayoutLines, formatPayoutLine(line))
		}
	}

	var buf bytes.Buffer
	if err := recoveryAlertTmpl.Execute(&buf, data); err != nil {
		return "", fmt.Errorf("failed to render recovery alert: %w", err)
	}

	return buf.String(), nil
}

func formatPayoutLine(line models.PayoutLine) string {
	amount := utils.FormatCurrency(line.Amount, line.Currency)
	verb := "is owed"
	if line.IsCharge {
		verb = "pays"
	}

	label := string(line.Party)
	if line.Phone != "" {
		label = fmt.Sprintf("%s (%s)", label, line.Phone)
	}

	return fmt.Sprintf("%s %s %s", label, verb, amount)
}
