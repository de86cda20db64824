package dispatch

import (
	"strings"

	"go.uber.org/zap"

	"telegram-todo-bot/internal/models"
)

const cancelWord = "取消"

// skipToken reports whether the input means "no place".
func skipToken(s string) bool {
	switch strings.ToLower(s) {
	case "無", "none", "skip":
		return true
	}
	return false
}

// handleDialog advances the user's active flow by one step. text is
// already trimmed. The cancel word wins over every stage of every flow.
func (d *Dispatcher) handleDialog(userID, text string, st *models.DialogState) (string, error) {
	if strings.EqualFold(text, cancelWord) {
		d.Sessions.Delete(userID)
		return replyCanceled, nil
	}

	switch st.Action {
	case models.ActionAddItem:
		return d.advanceAdd(userID, text, st)
	case models.ActionEditItem:
		return d.advanceEdit(userID, text, st)
	}

	// Unreachable by construction; discard so the user is not stuck.
	d.Log.Warn("dialog state with unknown action",
		zap.String("user", userID), zap.String("action", string(st.Action)))
	d.Sessions.Delete(userID)
	return errUnknown, nil
}

func (d *Dispatcher) advanceAdd(userID, text string, st *models.DialogState) (string, error) {
	switch st.Stage {
	case models.StageCategory:
		st.Draft.Category = text
		st.Stage = models.StageSubCategory
		d.Sessions.Set(userID, st)
		return promptSubCategory, nil

	case models.StageSubCategory:
		st.Draft.SubCategory = text
		st.Stage = models.StageTitle
		d.Sessions.Set(userID, st)
		return promptTitle, nil

	case models.StageTitle:
		st.Draft.Title = text
		st.Stage = models.StagePlace
		d.Sessions.Set(userID, st)
		return promptPlace, nil

	case models.StagePlace:
		if !skipToken(text) {
			st.Draft.Place = &text
		}
		draft := st.Draft
		if _, err := d.Store.AddItem(userID, draft.Category, draft.SubCategory, draft.Title, draft.Place); err != nil {
			d.Sessions.Delete(userID)
			return "", err
		}
		d.Sessions.Delete(userID)
		return replyAdded(draft.Title, draft.Category, draft.SubCategory, draft.Place), nil
	}

	d.Sessions.Delete(userID)
	return errUnknown, nil
}

func (d *Dispatcher) advanceEdit(userID, text string, st *models.DialogState) (string, error) {
	switch st.Stage {
	case models.StageFieldChoice:
		switch text {
		case "1", "名稱":
			st.Field = models.FieldTitle
			st.Stage = models.StageNewValue
			d.Sessions.Set(userID, st)
			return promptNewTitle, nil
		case "2", "地點":
			st.Field = models.FieldPlace
			st.Stage = models.StageNewValue
			d.Sessions.Set(userID, st)
			return promptNewPlace, nil
		}
		// The one stage that rejects input without dropping state.
		return replyBadChoice, nil

	case models.StageNewValue:
		var value *string
		if !(st.Field == models.FieldPlace && skipToken(text)) {
			value = &text
		}
		ok, err := d.Store.EditItem(userID, st.ItemID, st.Field, value)
		d.Sessions.Delete(userID)
		if err != nil {
			return "", err
		}
		if !ok {
			return replyEditFailed(st.ItemID), nil
		}
		return replyEdited(st.ItemID), nil
	}

	d.Sessions.Delete(userID)
	return errUnknown, nil
}
