package notification

import (
	"context"
	"fmt"

	"github.com/sendgrid/sendgrid-go"
	"github.com/sendgrid/sendgrid-go/helpers/mail"
)

// Mailer emails the account holder about each mutation via SendGrid.
type Mailer struct {
	apiKey    string
	fromEmail string
	fromName  string
}

func NewMailer(apiKey, fromEmail, fromName string) *Mailer {
	return &Mailer{apiKey: apiKey, fromEmail: fromEmail, fromName: fromName}
}

func (m *Mailer) Notify(ctx context.Context, ev Event) error {
	subject, body := mailContent(ev)
	from := mail.NewEmail(m.fromName, m.fromEmail)
	to := mail.NewEmail(ev.OwnerName, ev.OwnerEmail)
	html := fmt.Sprintf("<html><body><p>%s</p></body></html>", body)
	msg := mail.NewSingleEmail(from, subject, to, body, html)

	client := sendgrid.NewSendClient(m.apiKey)
	resp, err := client.SendWithContext(ctx, msg)
	if err != nil {
		return fmt.Errorf("send notification mail: %w", err)
	}
	if resp.StatusCode >= 400 {
		return fmt.Errorf("sendgrid status %d: %s", resp.StatusCode, resp.Body)
	}
	return nil
}

func mailContent(ev Event) (subject, body string) {
	amount := ev.Amount.StringFixed(2)
	switch ev.Kind {
	case KindDeposit:
		return "Deposit confirmation",
			fmt.Sprintf("%s$ was deposited to account %s.", amount, ev.AccountNumber)
	case KindWithdraw:
		return "Withdrawal confirmation",
			fmt.Sprintf("%s$ was withdrawn from account %s.", amount, ev.AccountNumber)
	case KindTransferOut:
		return "Transfer sent",
			fmt.Sprintf("%s$ was transferred from account %s.", amount, ev.AccountNumber)
	case KindTransferIn:
		return "Transfer received",
			fmt.Sprintf("%s$ was received into account %s.", amount, ev.AccountNumber)
	case KindLoanRequest:
		return "Loan request submitted",
			fmt.Sprintf("A loan request for %s$ on account %s was submitted.", amount, ev.AccountNumber)
	case KindLoanRepaid:
		return "Loan repaid",
			fmt.Sprintf("A loan of %s$ on account %s was repaid.", amount, ev.AccountNumber)
	default:
		return "Account activity",
			fmt.Sprintf("Activity of %s$ on account %s.", amount, ev.AccountNumber)
	}
}
