// Package notify sends best-effort staff alerts through the Telegram Bot
// API. When no bot token is configured the notifier is disabled and every
// call is a no-op, so development setups run without credentials.
package notify

import (
	"fmt"
	"log"
	"strconv"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"

	"citizendesk/backend/internal/models"
)

// TelegramNotifier posts new-complaint alerts to a staff channel.
type TelegramNotifier struct {
	BotAPI *tgbotapi.BotAPI
	ChatID int64
}

// NewTelegramNotifier creates the notifier. An empty token or chat ID
// returns (nil, nil): the feature is off, not broken.
func NewTelegramNotifier(token, chatID string) (*TelegramNotifier, error) {
	if token == "" || chatID == "" {
		return nil, nil
	}

	id, err := strconv.ParseInt(chatID, 10, 64)
	if err != nil {
		return nil, fmt.Errorf("invalid TELEGRAM_STAFF_CHAT_ID: %w", err)
	}

	bot, err := tgbotapi.NewBotAPI(token)
	if err != nil {
		return nil, err
	}
	bot.Debug = false
	log.Printf("INFO: Telegram notifier authorized on account %s", bot.Self.UserName)

	return &TelegramNotifier{BotAPI: bot, ChatID: id}, nil
}

// ComplaintReceived alerts the staff channel about a new complaint. Send
// failures are logged and swallowed; intake must never fail on a
// notification problem.
func (n *TelegramNotifier) ComplaintReceived(complaint *models.Complaint) {
	text := fmt.Sprintf("New complaint %s\nCounty: %s\nSubject: %s",
		complaint.TicketID, complaint.County, complaint.Subject)

	msg := tgbotapi.NewMessage(n.ChatID, text)
	if _, err := n.BotAPI.Send(msg); err != nil {
		log.Printf("ERROR: Failed to send Telegram alert for %s: %v", complaint.TicketID, err)
	}
}
