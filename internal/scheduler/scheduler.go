// Package scheduler pushes a daily digest of open items to every user
// that owns at least one.
package scheduler

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/go-co-op/gocron/v2"
	"go.uber.org/zap"

	"telegram-todo-bot/internal/dispatch"
	"telegram-todo-bot/internal/models"
	"telegram-todo-bot/internal/storage"
)

// Sender delivers an unsolicited message to a user.
type Sender interface {
	Notify(userID, text string) error
}

// Start registers the digest job at "HH:MM" local time and starts the
// scheduler. The returned scheduler should be shut down on exit.
func Start(at string, store storage.ItemStore, sender Sender, log *zap.Logger) (gocron.Scheduler, error) {
	hour, minute, err := parseAt(at)
	if err != nil {
		return nil, err
	}

	s, err := gocron.NewScheduler()
	if err != nil {
		return nil, err
	}

	_, err = s.NewJob(
		gocron.DailyJob(1, gocron.NewAtTimes(gocron.NewAtTime(uint(hour), uint(minute), 0))),
		gocron.NewTask(func() {
			users, err := store.ListUserIDs()
			if err != nil {
				log.Error("digest: listing users failed", zap.Error(err))
				return
			}
			for _, userID := range users {
				if err := sendDigest(userID, store, sender); err != nil {
					log.Error("digest: sending failed",
						zap.String("user", userID), zap.Error(err))
				}
			}
		}),
	)
	if err != nil {
		return nil, err
	}

	s.Start()
	return s, nil
}

func sendDigest(userID string, store storage.ItemStore, sender Sender) error {
	items, err := store.ListItems(userID, "")
	if err != nil {
		return err
	}

	var open []models.Item
	for _, it := range items {
		if !it.Done {
			open = append(open, it)
		}
	}
	if len(open) == 0 {
		return nil
	}

	text := "📋 每日待辦提醒\n" + dispatch.FormatItems(open)
	return sender.Notify(userID, text)
}

func parseAt(at string) (int, int, error) {
	parts := strings.Split(at, ":")
	if len(parts) != 2 {
		return 0, 0, fmt.Errorf("digest time %q: want HH:MM", at)
	}
	hour, err := strconv.Atoi(parts[0])
	if err != nil || hour < 0 || hour > 23 {
		return 0, 0, fmt.Errorf("digest time %q: bad hour", at)
	}
	minute, err := strconv.Atoi(parts[1])
	if err != nil || minute < 0 || minute > 59 {
		return 0, 0, fmt.Errorf("digest time %q: bad minute", at)
	}
	return hour, minute, nil
}
