package email

import (
	"fmt"

	"chefmarket_backend/internal/config"
	"chefmarket_backend/internal/models"

	"gopkg.in/gomail.v2"
)

// Provider отправляет транзакционные письма платформы
type Provider interface {
	SendEntitlementGranted(user *models.User, sub *models.Subscription) error
}

// SMTPProvider - реализация через gomail
type SMTPProvider struct {
	dialer    *gomail.Dialer
	fromEmail string
	fromName  string
}

// NewSMTPProvider создает провайдер из конфигурации
func NewSMTPProvider(cfg *config.Config) *SMTPProvider {
	return &SMTPProvider{
		dialer:    gomail.NewDialer(cfg.Email.SMTPHost, cfg.Email.SMTPPort, cfg.Email.SMTPUsername, cfg.Email.SMTPPassword),
		fromEmail: cfg.Email.FromEmail,
		fromName:  cfg.Email.FromName,
	}
}

// SendEntitlementGranted шлет подтверждение активации подписки
func (p *SMTPProvider) SendEntitlementGranted(user *models.User, sub *models.Subscription) error {
	m := gomail.NewMessage()
	m.SetAddressHeader("From", p.fromEmail, p.fromName)
	m.SetHeader("To", user.Email)
	m.SetHeader("Subject", fmt.Sprintf("Your %s subscription is active", sub.PlanName))
	m.SetBody("text/plain", fmt.Sprintf(
		"Hi %s,\n\nYour %s subscription is active until %s.\n\nThe ChefMarket Team",
		user.Name, sub.PlanName, sub.EndDate.Format("02 Jan 2006"),
	))

	return p.dialer.DialAndSend(m)
}

// NoopProvider - заглушка для окружений без SMTP
type NoopProvider struct{}

func (NoopProvider) SendEntitlementGranted(*models.User, *models.Subscription) error { return nil }
