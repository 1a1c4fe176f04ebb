package mailingservices

import (
	"context"
	"fmt"
	"log"
	"os"
	"time"

	"github.com/mailgun/mailgun-go/v4"
)

type Mailgun struct {
	Client *mailgun.MailgunImpl
	From   string
}

func (m *Mailgun) Init() {
	domain := os.Getenv("SOCIALNET_MG_DOMAIN")
	apiKey := os.Getenv("SOCIALNET_MG_PUBLIC_API_KEY")
	m.Client = mailgun.NewMailgun(domain, apiKey)
	m.From = os.Getenv("SOCIALNET_EMAIL_FROM")
	log.Println("Mailgun client initialized")
}

// SendResetPassword mails the password reset link to the user.
func (m *Mailgun) SendResetPassword(recipient, resetLink string) (string, error) {
	subject := "Reset your password"
	body := fmt.Sprintf("Click the link below to reset your password:\n\n%s\n\nThe link expires in 20 minutes. If you didn't ask for a reset, ignore this mail.", resetLink)

	message := m.Client.NewMessage(m.From, subject, body, recipient)
	ctx, cancel := context.WithTimeout(context.Background(), time.Second*10)
	defer cancel()

	_, id, err := m.Client.Send(ctx, message)
	if err != nil {
		log.Printf("SendResetPassword error: %v", err)
		return "", err
	}
	return id, nil
}
