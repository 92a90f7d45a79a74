package smtp

import (
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/spf13/viper"
	"gopkg.in/gomail.v2"

	"github.com/roastline/beanbot/pkg/logger"
)

// Client represents the mail client used for out-of-band alerts.
type Client struct {
	dialer *gomail.Dialer
}

func NewClient(dialer *gomail.Dialer) *Client {
	return &Client{dialer: dialer}
}

// SendStockAlert emails an aggregated critical-stock alert to the
// inventory owner. Delivery is best-effort: failures are logged, never
// returned, so the in-app notification path is unaffected.
func (c *Client) SendStockAlert(to string, subject string, lines []string) {
	msg := gomail.NewMessage()

	domain := viper.GetString("service.smtp.domain")
	messageID := generateMessageID(domain)

	msg.SetHeader("Message-ID", messageID)
	msg.SetHeader("Date", time.Now().Format(time.RFC1123Z))
	msg.SetHeader("From", viper.GetString("service.smtp.email"))
	msg.SetHeader("To", to)
	msg.SetHeader("Subject", subject)
	msg.SetBody("text/plain", strings.Join(lines, "\n"))
	if err := c.dialer.DialAndSend(msg); err != nil {
		logger.Log.Errorf("failed to send stock alert to %s: %v", to, err)
		return
	}

	logger.Log.Infof("Stock alert sent to %s", to)
}

func generateMessageID(domain string) string {
	uniqueID := uuid.New().String()
	return fmt.Sprintf("<%s@%s>", uniqueID, domain)
}
