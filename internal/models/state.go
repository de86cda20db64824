package models

// Action names an in-progress multi-turn flow.
type Action string

const (
	ActionAddItem  Action = "add_item"
	ActionEditItem Action = "edit_item"
)

// Stage is the current step within a flow.
type Stage string

const (
	StageCategory    Stage = "awaiting_category"
	StageSubCategory Stage = "awaiting_sub_category"
	StageTitle       Stage = "awaiting_title"
	StagePlace       Stage = "awaiting_place"
	StageFieldChoice Stage = "awaiting_field_choice"
	StageNewValue    Stage = "awaiting_new_value"
)

// Field is an item attribute that the edit flow may change.
type Field string

const (
	FieldTitle Field = "title"
	FieldPlace Field = "place"
)

// ItemDraft accumulates the add flow's answers.
type ItemDraft struct {
	Category    string
	SubCategory string
	Title       string
	Place       *string
}

// DialogState holds one user's active flow between webhook invocations.
// It lives only in process memory.
type DialogState struct {
	Action Action
	Stage  Stage

	Draft ItemDraft // add flow

	ItemID int64 // edit flow
	Field  Field // edit flow, set after the field choice
}
