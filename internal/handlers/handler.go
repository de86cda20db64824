// Package handlers adapts Telegram updates to the platform-neutral
// events the dispatcher consumes, and delivers its replies.
package handlers

import (
	"strconv"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"go.uber.org/zap"

	"telegram-todo-bot/internal/dispatch"
	"telegram-todo-bot/internal/models"
)

type Handler struct {
	Bot        *tgbotapi.BotAPI
	Dispatcher *dispatch.Dispatcher
	Log        *zap.Logger
}

func New(bot *tgbotapi.BotAPI, d *dispatch.Dispatcher, log *zap.Logger) *Handler {
	return &Handler{Bot: bot, Dispatcher: d, Log: log}
}

// HandleUpdate processes a single update. Failures are logged and the
// message is dropped; nothing here takes the update loop down.
func (h *Handler) HandleUpdate(upd tgbotapi.Update) {
	if upd.Message == nil {
		return
	}
	chatID := upd.Message.Chat.ID
	ev := eventFrom(upd.Message)

	reply, err := h.Dispatcher.HandleEvent(ev)
	if err != nil {
		h.Log.Error("handling message failed",
			zap.String("user", ev.UserID), zap.Error(err))
		return
	}
	if reply == "" {
		return
	}

	if _, err := h.Bot.Send(tgbotapi.NewMessage(chatID, reply)); err != nil {
		h.Log.Error("sending reply failed",
			zap.Int64("chat", chatID), zap.Error(err))
	}
}

// Notify pushes an unsolicited message (daily digest) to a user.
func (h *Handler) Notify(userID, text string) error {
	chatID, err := strconv.ParseInt(userID, 10, 64)
	if err != nil {
		return err
	}
	_, err = h.Bot.Send(tgbotapi.NewMessage(chatID, text))
	return err
}

// eventFrom maps a Telegram message onto the event union: /start acts
// as the follow event, messages without text stay text-less.
func eventFrom(msg *tgbotapi.Message) models.Event {
	ev := models.Event{
		Type:   models.EventMessage,
		UserID: strconv.FormatInt(msg.Chat.ID, 10),
	}
	if msg.IsCommand() && msg.Command() == "start" {
		ev.Type = models.EventFollow
		return ev
	}
	if msg.Text != "" {
		text := msg.Text
		ev.Text = &text
	}
	return ev
}
