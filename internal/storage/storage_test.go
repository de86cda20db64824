package storage

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"telegram-todo-bot/internal/models"
)

func newTestDB(t *testing.T) *DB {
	t.Helper()
	db, err := New(filepath.Join(t.TempDir(), "test.db"), "")
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })
	return db
}

func strptr(s string) *string { return &s }

func TestAddItemFindOrCreatesCategories(t *testing.T) {
	db := newTestDB(t)

	id1, err := db.AddItem("u1", "工作", "專案", "a", nil)
	require.NoError(t, err)
	id2, err := db.AddItem("u1", "工作", "專案", "b", nil)
	require.NoError(t, err)
	assert.Greater(t, id2, id1, "ids are monotonically increasing")

	// same names, one category and one sub-category row
	var categories, subs int
	require.NoError(t, db.db.Get(&categories, `SELECT COUNT(*) FROM categories`))
	require.NoError(t, db.db.Get(&subs, `SELECT COUNT(*) FROM sub_categories`))
	assert.Equal(t, 1, categories)
	assert.Equal(t, 1, subs)

	// same category name for another user is a separate scope
	_, err = db.AddItem("u2", "工作", "專案", "c", nil)
	require.NoError(t, err)
	require.NoError(t, db.db.Get(&categories, `SELECT COUNT(*) FROM categories`))
	assert.Equal(t, 2, categories)
}

func TestGetItem(t *testing.T) {
	db := newTestDB(t)
	id, err := db.AddItem("u1", "c", "s", "title", strptr("place"))
	require.NoError(t, err)

	it, err := db.GetItem("u1", id)
	require.NoError(t, err)
	require.NotNil(t, it)
	assert.Equal(t, "title", it.Title)
	assert.Equal(t, "c", it.Category)
	assert.Equal(t, "s", it.SubCategory)
	require.NotNil(t, it.Place)
	assert.Equal(t, "place", *it.Place)
	assert.False(t, it.Done)
	assert.Nil(t, it.CompletedAt)

	// other user, absent id
	it, err = db.GetItem("u2", id)
	require.NoError(t, err)
	assert.Nil(t, it)
	it, err = db.GetItem("u1", 999)
	require.NoError(t, err)
	assert.Nil(t, it)
}

func TestEditItem(t *testing.T) {
	db := newTestDB(t)
	id, _ := db.AddItem("u1", "c", "s", "old", strptr("somewhere"))

	ok, err := db.EditItem("u1", id, models.FieldTitle, strptr("new"))
	require.NoError(t, err)
	assert.True(t, ok)

	ok, err = db.EditItem("u1", id, models.FieldPlace, nil) // clear
	require.NoError(t, err)
	assert.True(t, ok)

	it, _ := db.GetItem("u1", id)
	assert.Equal(t, "new", it.Title)
	assert.Nil(t, it.Place)

	// wrong owner and unknown field are not updates
	ok, err = db.EditItem("u2", id, models.FieldTitle, strptr("x"))
	require.NoError(t, err)
	assert.False(t, ok)
	ok, err = db.EditItem("u1", id, models.Field("desc"), strptr("x"))
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestDeleteItemsOwnershipAndCount(t *testing.T) {
	db := newTestDB(t)
	mine, _ := db.AddItem("u1", "c", "s", "mine", nil)
	theirs, _ := db.AddItem("u2", "c", "s", "theirs", nil)

	n, err := db.DeleteItems("u1", []int64{mine, theirs, 999})
	require.NoError(t, err)
	assert.Equal(t, 1, n)

	it, _ := db.GetItem("u2", theirs)
	assert.NotNil(t, it, "foreign item untouched")
}

func TestMarkDoneSetsCompletionTime(t *testing.T) {
	db := newTestDB(t)
	id, _ := db.AddItem("u1", "c", "s", "x", nil)

	n, err := db.MarkDone("u1", []int64{id})
	require.NoError(t, err)
	assert.Equal(t, 1, n)

	it, _ := db.GetItem("u1", id)
	assert.True(t, it.Done)
	require.NotNil(t, it.CompletedAt)

	// repeated id in one call counts twice, per command semantics
	n, err = db.MarkDone("u1", []int64{id, id})
	require.NoError(t, err)
	assert.Equal(t, 2, n)
}

func TestListItemsOrderAndFilter(t *testing.T) {
	db := newTestDB(t)
	_, _ = db.AddItem("u1", "b-cat", "s", "second", nil)
	_, _ = db.AddItem("u1", "a-cat", "s", "first", nil)
	_, _ = db.AddItem("u1", "a-cat", "s", "third", nil)
	_, _ = db.AddItem("u2", "a-cat", "s", "foreign", nil)

	items, err := db.ListItems("u1", "")
	require.NoError(t, err)
	require.Len(t, items, 3)
	assert.Equal(t, "a-cat", items[0].Category)
	assert.Equal(t, "first", items[0].Title)
	assert.Equal(t, "third", items[1].Title, "same category ordered by id")
	assert.Equal(t, "b-cat", items[2].Category)

	filtered, err := db.ListItems("u1", "b-cat")
	require.NoError(t, err)
	require.Len(t, filtered, 1)
	assert.Equal(t, "second", filtered[0].Title)
}

func TestListUserIDs(t *testing.T) {
	db := newTestDB(t)
	ids, err := db.ListUserIDs()
	require.NoError(t, err)
	assert.Empty(t, ids)

	_, _ = db.AddItem("u2", "c", "s", "x", nil)
	_, _ = db.AddItem("u1", "c", "s", "y", nil)
	_, _ = db.AddItem("u1", "c", "s", "z", nil)

	ids, err = db.ListUserIDs()
	require.NoError(t, err)
	assert.Equal(t, []string{"u1", "u2"}, ids)
}
