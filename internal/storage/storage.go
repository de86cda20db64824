// Package storage persists categories, sub-categories and items. The
// backend is SQLite for local use and PostgreSQL when DATABASE_URL is
// set; both speak through the same DB type.
package storage

import (
	"database/sql"
	"embed"
	"errors"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"
	_ "github.com/lib/pq"
	_ "modernc.org/sqlite"

	"telegram-todo-bot/internal/models"
)

//go:embed schema_sqlite.sql schema_postgres.sql
var ddl embed.FS

// ItemStore is the persistence contract the command engine talks to.
type ItemStore interface {
	AddItem(userID, category, subCategory, title string, place *string) (int64, error)
	GetItem(userID string, itemID int64) (*models.Item, error)
	EditItem(userID string, itemID int64, field models.Field, value *string) (bool, error)
	DeleteItems(userID string, ids []int64) (int, error)
	MarkDone(userID string, ids []int64) (int, error)
	ListItems(userID, category string) ([]models.Item, error)
	ListUserIDs() ([]string, error)
}

type DB struct {
	db      *sqlx.DB
	dialect string // "sqlite" or "postgres"
}

// New opens the database. databaseURL selects PostgreSQL; otherwise a
// SQLite file at path is created on first use. The schema is applied
// idempotently.
func New(path, databaseURL string) (*DB, error) {
	var (
		db      *sqlx.DB
		dialect string
		err     error
	)
	if databaseURL != "" {
		dialect = "postgres"
		db, err = sqlx.Open("postgres", databaseURL)
	} else {
		dialect = "sqlite"
		db, err = sqlx.Open("sqlite", path+"?_pragma=foreign_keys(1)")
	}
	if err != nil {
		return nil, fmt.Errorf("opening %s database: %w", dialect, err)
	}

	d := &DB{db: db, dialect: dialect}
	if err := d.migrate(); err != nil {
		db.Close()
		return nil, fmt.Errorf("applying schema: %w", err)
	}
	return d, nil
}

func (d *DB) Close() error { return d.db.Close() }

func (d *DB) migrate() error {
	b, err := ddl.ReadFile("schema_" + d.dialect + ".sql")
	if err != nil {
		return err
	}
	_, err = d.db.Exec(string(b))
	return err
}

// q rewrites ? placeholders for the active dialect.
func (d *DB) q(query string) string {
	if d.dialect == "postgres" {
		return sqlx.Rebind(sqlx.DOLLAR, query)
	}
	return query
}

// categoryID finds or lazily creates the user's category.
func (d *DB) categoryID(userID, name string) (int64, error) {
	var id int64
	err := d.db.QueryRow(d.q(`SELECT id FROM categories WHERE user_id=? AND name=?`), userID, name).Scan(&id)
	if err == nil {
		return id, nil
	}
	if !errors.Is(err, sql.ErrNoRows) {
		return 0, err
	}
	err = d.db.QueryRow(d.q(`INSERT INTO categories (user_id, name) VALUES (?,?) RETURNING id`), userID, name).Scan(&id)
	return id, err
}

// subCategoryID finds or lazily creates a sub-category under categoryID.
func (d *DB) subCategoryID(categoryID int64, name string) (int64, error) {
	var id int64
	err := d.db.QueryRow(d.q(`SELECT id FROM sub_categories WHERE category_id=? AND name=?`), categoryID, name).Scan(&id)
	if err == nil {
		return id, nil
	}
	if !errors.Is(err, sql.ErrNoRows) {
		return 0, err
	}
	err = d.db.QueryRow(d.q(`INSERT INTO sub_categories (category_id, name) VALUES (?,?) RETURNING id`), categoryID, name).Scan(&id)
	return id, err
}

func (d *DB) AddItem(userID, category, subCategory, title string, place *string) (int64, error) {
	cid, err := d.categoryID(userID, category)
	if err != nil {
		return 0, fmt.Errorf("resolving category %q: %w", category, err)
	}
	sid, err := d.subCategoryID(cid, subCategory)
	if err != nil {
		return 0, fmt.Errorf("resolving sub-category %q: %w", subCategory, err)
	}

	var id int64
	err = d.db.QueryRow(d.q(`
        INSERT INTO items (user_id, category_id, sub_category_id, title, place, done)
        VALUES (?,?,?,?,?,?) RETURNING id`),
		userID, cid, sid, title, place, false,
	).Scan(&id)
	if err != nil {
		return 0, fmt.Errorf("inserting item: %w", err)
	}
	return id, nil
}

const itemColumns = `
    SELECT i.id, i.user_id, i.title, i.place, i.done, i.completed_date,
           c.name, sc.name
    FROM items i
    JOIN categories c ON i.category_id = c.id
    JOIN sub_categories sc ON i.sub_category_id = sc.id`

func scanItem(row interface{ Scan(...any) error }) (*models.Item, error) {
	var (
		it        models.Item
		place     sql.NullString
		completed sql.NullInt64
	)
	err := row.Scan(&it.ID, &it.UserID, &it.Title, &place, &it.Done, &completed,
		&it.Category, &it.SubCategory)
	if err != nil {
		return nil, err
	}
	if place.Valid {
		it.Place = &place.String
	}
	if completed.Valid {
		t := time.Unix(completed.Int64, 0)
		it.CompletedAt = &t
	}
	return &it, nil
}

// GetItem returns nil without error when the item does not exist or is
// owned by another user.
func (d *DB) GetItem(userID string, itemID int64) (*models.Item, error) {
	row := d.db.QueryRow(d.q(itemColumns+` WHERE i.id=? AND i.user_id=?`), itemID, userID)
	it, err := scanItem(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("loading item %d: %w", itemID, err)
	}
	return it, nil
}

// EditItem updates one field of an owned item. A nil value clears the
// place; the title column rejects NULL at the schema level.
func (d *DB) EditItem(userID string, itemID int64, field models.Field, value *string) (bool, error) {
	var col string
	switch field {
	case models.FieldTitle:
		col = "title"
	case models.FieldPlace:
		col = "place"
	default:
		return false, nil
	}

	res, err := d.db.Exec(d.q(`UPDATE items SET `+col+`=? WHERE id=? AND user_id=?`), value, itemID, userID)
	if err != nil {
		return false, fmt.Errorf("updating item %d: %w", itemID, err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return false, err
	}
	return n > 0, nil
}

// DeleteItems removes the listed ids one by one, skipping ids the user
// does not own. Ids are not deduplicated.
func (d *DB) DeleteItems(userID string, ids []int64) (int, error) {
	deleted := 0
	for _, id := range ids {
		var probe int64
		err := d.db.QueryRow(d.q(`SELECT id FROM items WHERE id=? AND user_id=?`), id, userID).Scan(&probe)
		if errors.Is(err, sql.ErrNoRows) {
			continue
		}
		if err != nil {
			return deleted, fmt.Errorf("checking item %d: %w", id, err)
		}
		if _, err := d.db.Exec(d.q(`DELETE FROM items WHERE id=?`), id); err != nil {
			return deleted, fmt.Errorf("deleting item %d: %w", id, err)
		}
		deleted++
	}
	return deleted, nil
}

// MarkDone flags the listed owned ids as done with the current time.
func (d *DB) MarkDone(userID string, ids []int64) (int, error) {
	updated := 0
	now := time.Now().Unix()
	for _, id := range ids {
		var probe int64
		err := d.db.QueryRow(d.q(`SELECT id FROM items WHERE id=? AND user_id=?`), id, userID).Scan(&probe)
		if errors.Is(err, sql.ErrNoRows) {
			continue
		}
		if err != nil {
			return updated, fmt.Errorf("checking item %d: %w", id, err)
		}
		if _, err := d.db.Exec(d.q(`UPDATE items SET done=?, completed_date=? WHERE id=?`), true, now, id); err != nil {
			return updated, fmt.Errorf("marking item %d done: %w", id, err)
		}
		updated++
	}
	return updated, nil
}

// ListItems returns the user's items ordered by category name then item
// id, so the formatter can group them in a single pass. category filters
// when non-empty.
func (d *DB) ListItems(userID, category string) ([]models.Item, error) {
	query := itemColumns + ` WHERE i.user_id=?`
	args := []any{userID}
	if category != "" {
		query += ` AND c.name=?`
		args = append(args, category)
	}
	query += ` ORDER BY c.name, i.id`

	rows, err := d.db.Query(d.q(query), args...)
	if err != nil {
		return nil, fmt.Errorf("listing items: %w", err)
	}
	defer rows.Close()

	var res []models.Item
	for rows.Next() {
		it, err := scanItem(rows)
		if err != nil {
			return nil, err
		}
		res = append(res, *it)
	}
	return res, rows.Err()
}

// ListUserIDs returns every user that owns at least one item.
func (d *DB) ListUserIDs() ([]string, error) {
	var ids []string
	if err := d.db.Select(&ids, `SELECT DISTINCT user_id FROM items ORDER BY user_id`); err != nil {
		return nil, fmt.Errorf("listing users: %w", err)
	}
	return ids, nil
}
