// Package dispatch interprets inbound chat messages: a fixed command
// table, the +/++ shorthand grammar, and two multi-turn flows
// (step-by-step add and edit) held as per-user dialog state.
package dispatch

import (
	"strconv"
	"strings"

	"go.uber.org/zap"

	"telegram-todo-bot/internal/models"
	"telegram-todo-bot/internal/storage"
)

type Dispatcher struct {
	Store    storage.ItemStore
	Sessions *Sessions
	Log      *zap.Logger
}

func New(store storage.ItemStore, log *zap.Logger) *Dispatcher {
	return &Dispatcher{Store: store, Sessions: NewSessions(), Log: log}
}

// HandleEvent routes one inbound event and returns the reply text. An
// empty reply means nothing should be sent. A non-nil error is a store
// failure: the caller logs it and the message is dropped without reply.
func (d *Dispatcher) HandleEvent(ev models.Event) (string, error) {
	switch ev.Type {
	case models.EventFollow:
		return replyWelcome, nil
	case models.EventMessage:
	default:
		return "", nil
	}

	if ev.Text == nil {
		return replyTextOnly, nil
	}
	t := strings.TrimSpace(*ev.Text)

	// An active flow consumes everything, shorthand included.
	if st := d.Sessions.Get(ev.UserID); st != nil {
		return d.handleDialog(ev.UserID, t, st)
	}

	switch {
	case strings.Contains(t, "++"):
		return d.handleBatchShorthand(ev.UserID, t)
	case strings.Contains(t, "+"):
		return d.handleSingleShorthand(ev.UserID, t)
	}
	return d.handleCommand(ev.UserID, t, *ev.Text)
}

func (d *Dispatcher) handleSingleShorthand(userID, text string) (string, error) {
	req, ok := parseSingle(text)
	if !ok {
		return errSingleUsage, nil
	}
	if _, err := d.Store.AddItem(userID, req.Category, req.SubCategory, req.Title, req.Place); err != nil {
		return "", err
	}
	return replyAdded(req.Title, req.Category, req.SubCategory, req.Place), nil
}

func (d *Dispatcher) handleBatchShorthand(userID, text string) (string, error) {
	req, ok := parseBatch(text)
	if !ok {
		return errBatchUsage, nil
	}
	if len(req.Titles) == 0 {
		return replyEmptyBatch, nil
	}
	for _, title := range req.Titles {
		if _, err := d.Store.AddItem(userID, req.Category, req.SubCategory, title, req.Place); err != nil {
			return "", err
		}
	}
	return replyBatchAdded(req.Category, req.SubCategory, req.Place, len(req.Titles)), nil
}

// handleCommand matches the fixed command table. raw is the untrimmed
// original text, echoed back in the fallback reply.
func (d *Dispatcher) handleCommand(userID, t, raw string) (string, error) {
	lower := strings.ToLower(t)

	switch {
	case lower == "ping":
		return replyPong, nil

	case lower == "新增" || lower == "add":
		d.Sessions.Set(userID, &models.DialogState{
			Action: models.ActionAddItem,
			Stage:  models.StageCategory,
		})
		return promptAddStart, nil

	case strings.HasPrefix(lower, "編輯 ") || strings.HasPrefix(lower, "edit "):
		return d.startEdit(userID, t)

	case strings.HasPrefix(lower, "刪除 ") || strings.HasPrefix(lower, "del "):
		ids, ok := parseIDList(afterCommand(t))
		if !ok {
			return errDeleteUsage, nil
		}
		n, err := d.Store.DeleteItems(userID, ids)
		if err != nil {
			return "", err
		}
		return replyDeleted(n), nil

	case strings.HasPrefix(lower, "完成 ") || strings.HasPrefix(lower, "done "):
		ids, ok := parseIDList(afterCommand(t))
		if !ok {
			return errDoneUsage, nil
		}
		n, err := d.Store.MarkDone(userID, ids)
		if err != nil {
			return "", err
		}
		return replyMarkedDone(n), nil

	case lower == "help":
		return replyHelp, nil

	case strings.HasPrefix(lower, "echo "):
		return t[len("echo "):], nil

	case strings.HasPrefix(lower, "list"):
		category := strings.TrimSpace(t[len("list"):])
		items, err := d.Store.ListItems(userID, category)
		if err != nil {
			return "", err
		}
		return FormatItems(items), nil
	}

	return replyFallback(raw), nil
}

func (d *Dispatcher) startEdit(userID, t string) (string, error) {
	parts := strings.Split(t, " ")
	id, err := strconv.ParseInt(parts[1], 10, 64)
	if err != nil {
		return errEditUsage, nil
	}

	it, err := d.Store.GetItem(userID, id)
	if err != nil {
		return "", err
	}
	if it == nil {
		return replyItemNotFound(id), nil
	}

	d.Sessions.Set(userID, &models.DialogState{
		Action: models.ActionEditItem,
		Stage:  models.StageFieldChoice,
		ItemID: id,
	})
	return replyEditIntro(it), nil
}

// afterCommand returns everything after the command word.
func afterCommand(t string) string {
	parts := strings.SplitN(t, " ", 2)
	if len(parts) < 2 {
		return ""
	}
	return parts[1]
}

// parseIDList parses "1, 2,3". One bad token fails the whole list; ids
// are kept in order and not deduplicated.
func parseIDList(s string) ([]int64, bool) {
	var ids []int64
	for _, tok := range strings.Split(s, ",") {
		id, err := strconv.ParseInt(strings.TrimSpace(tok), 10, 64)
		if err != nil {
			return nil, false
		}
		ids = append(ids, id)
	}
	return ids, true
}
