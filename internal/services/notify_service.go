package services

import (
	"context"
	"fmt"
	"html"
	"log"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"

	"taskhub/internal/models"
	"taskhub/internal/repositories"
)

// TaskNotifier pushes task events to the assignee over whatever channels the
// user opted into (Telegram, email). All sends are fire-and-forget: a failed
// notification is logged and never affects the request that triggered it.
type TaskNotifier struct {
	bot   *tgbotapi.BotAPI
	users repositories.UserRepository
	email EmailService
}

// NewTaskNotifier returns nil when no bot token is configured; callers are
// expected to treat a nil notifier as "notifications disabled".
func NewTaskNotifier(botToken string, users repositories.UserRepository, email EmailService) *TaskNotifier {
	if botToken == "" && email == nil {
		return nil
	}
	var bot *tgbotapi.BotAPI
	if botToken != "" {
		b, err := tgbotapi.NewBotAPI(botToken)
		if err != nil {
			log.Printf("[notify][init][err] telegram bot init failed, telegram channel disabled: %v", err)
		} else {
			bot = b
			log.Printf("[notify][init] telegram authorized as %s", b.Self.UserName)
		}
	}
	return &TaskNotifier{bot: bot, users: users, email: email}
}

// NotifyAssignee sends "<prefix>" plus a short task summary to the assignee.
func (n *TaskNotifier) NotifyAssignee(ctx context.Context, task *models.Task, prefix string) {
	if n == nil || task == nil {
		return
	}
	chatID, notifyTG, address, notifyEmail, err := n.users.GetNotifySettings(ctx, task.AssigneeID)
	if err != nil {
		log.Printf("[notify][err] settings lookup failed for user=%d: %v", task.AssigneeID, err)
		return
	}

	if n.bot != nil && notifyTG && chatID != 0 {
		msg := tgbotapi.NewMessage(chatID, formatTaskMessage(prefix, task))
		msg.ParseMode = tgbotapi.ModeHTML
		msg.DisableWebPagePreview = true
		if _, err := n.bot.Send(msg); err != nil {
			log.Printf("[notify][tg][err] chatID=%d task=%d: %v", chatID, task.ID, err)
		}
	}

	if n.email != nil && notifyEmail && address != "" {
		if err := n.email.SendTaskAssignedEmail(address, task); err != nil {
			log.Printf("[notify][email][err] to=%q task=%d: %v", address, task.ID, err)
		}
	}
}

func formatTaskMessage(prefix string, t *models.Task) string {
	due := "—"
	if t.Deadline != nil {
		due = t.Deadline.Format("2006-01-02 15:04")
	}
	return prefix + "\n" +
		"• <b>" + html.EscapeString(t.Title) + "</b>\n" +
		"• Status: <code>" + string(t.Status) + "</code>\n" +
		"• Priority: <code>" + string(t.Priority) + "</code>\n" +
		"• Deadline: <code>" + due + "</code>\n" +
		"• " + fmt.Sprintf("task #%d", t.ID)
}
