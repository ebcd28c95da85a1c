package repositories

import (
	"context"
	"errors"
	"fmt"

	"github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5"
	"github.com/yigit/camnote/internal/app/models"
	"github.com/yigit/camnote/internal/pkg/apperrors"
	"github.com/yigit/camnote/internal/pkg/logger"
)

// IContentRepository defines storage for notices, events and benefits.
// Every method addresses one category's table.
type IContentRepository interface {
	FindAll(ctx context.Context, category models.Category) ([]*models.ContentItem, error)
	FindByDepartment(ctx context.Context, category models.Category, department string) ([]*models.ContentItem, error)
	FindByID(ctx context.Context, category models.Category, id string) (*models.ContentItem, error)
	Create(ctx context.Context, item *models.ContentItem) error
	Update(ctx context.Context, item *models.ContentItem) error
	Delete(ctx context.Context, category models.Category, id string) error
	IncrementViewCount(ctx context.Context, category models.Category, id string) (int, error)
	TopByViewCount(ctx context.Context, category models.Category, department string, limit int) ([]*models.ContentItem, error)
}

// categoryTables maps categories to table names. Table names are never taken
// from request input directly.
var categoryTables = map[models.Category]string{
	models.CategoryNotices:  "notices",
	models.CategoryEvents:   "events",
	models.CategoryBenefits: "benefits",
}

// ErrUnknownCategory is returned for a category with no backing table
var ErrUnknownCategory = errors.New("unknown content category")

// ContentRepository handles the three content tables
type ContentRepository struct {
	db DBTX
	sb squirrel.StatementBuilderType
}

// NewContentRepository creates a new ContentRepository
func NewContentRepository(db DBTX) *ContentRepository {
	return &ContentRepository{
		db: db,
		sb: squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar),
	}
}

func tableFor(category models.Category) (string, error) {
	table, ok := categoryTables[category]
	if !ok {
		return "", fmt.Errorf("%w: %s", ErrUnknownCategory, category)
	}
	return table, nil
}

func (r *ContentRepository) selectItems(table string) squirrel.SelectBuilder {
	return r.sb.Select("id", "title", "content", "department", "created_at", "COALESCE(view_count, 0)").
		From(table)
}

func scanItem(row pgx.Row, category models.Category) (*models.ContentItem, error) {
	item := &models.ContentItem{Category: category}
	if err := row.Scan(&item.ID, &item.Title, &item.Content, &item.Department, &item.CreatedAt, &item.ViewCount); err != nil {
		return nil, err
	}
	return item, nil
}

func (r *ContentRepository) queryItems(ctx context.Context, category models.Category, qb squirrel.SelectBuilder) ([]*models.ContentItem, error) {
	sql, args, err := qb.ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build content query: %w", err)
	}

	rows, err := r.db.Query(ctx, sql, args...)
	if err != nil {
		logger.Error().Err(err).Str("category", string(category)).Msg("Error querying content")
		return nil, fmt.Errorf("error querying %s: %w", category, err)
	}
	defer rows.Close()

	items := make([]*models.ContentItem, 0)
	for rows.Next() {
		item, err := scanItem(rows, category)
		if err != nil {
			return nil, fmt.Errorf("error scanning %s row: %w", category, err)
		}
		items = append(items, item)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating %s rows: %w", category, err)
	}
	return items, nil
}

// FindAll returns every item of the category in store order
func (r *ContentRepository) FindAll(ctx context.Context, category models.Category) ([]*models.ContentItem, error) {
	table, err := tableFor(category)
	if err != nil {
		return nil, err
	}
	return r.queryItems(ctx, category, r.selectItems(table))
}

// FindByDepartment returns the department's items, newest first
func (r *ContentRepository) FindByDepartment(ctx context.Context, category models.Category, department string) ([]*models.ContentItem, error) {
	table, err := tableFor(category)
	if err != nil {
		return nil, err
	}
	qb := r.selectItems(table).
		Where(squirrel.Eq{"department": department}).
		OrderBy("created_at DESC NULLS LAST")
	return r.queryItems(ctx, category, qb)
}

// FindByID retrieves a single item
func (r *ContentRepository) FindByID(ctx context.Context, category models.Category, id string) (*models.ContentItem, error) {
	table, err := tableFor(category)
	if err != nil {
		return nil, err
	}

	sql, args, err := r.selectItems(table).Where(squirrel.Eq{"id": id}).ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build content query: %w", err)
	}

	item, err := scanItem(r.db.QueryRow(ctx, sql, args...), category)
	if err != nil {
		if noSuchRow(err) {
			return nil, apperrors.ErrContentNotFound
		}
		return nil, fmt.Errorf("error retrieving %s item: %w", category, err)
	}
	return item, nil
}

// Create inserts a new item with a zero view count
func (r *ContentRepository) Create(ctx context.Context, item *models.ContentItem) error {
	table, err := tableFor(item.Category)
	if err != nil {
		return err
	}

	sql, args, err := r.sb.Insert(table).
		Columns("id", "title", "content", "department", "created_at", "view_count").
		Values(item.ID, item.Title, item.Content, item.Department, item.CreatedAt, 0).
		ToSql()
	if err != nil {
		return fmt.Errorf("failed to build create content query: %w", err)
	}

	if _, err := r.db.Exec(ctx, sql, args...); err != nil {
		logger.Error().Err(err).Str("category", string(item.Category)).Msg("Error creating content")
		return fmt.Errorf("error creating %s item: %w", item.Category, err)
	}
	item.ViewCount = 0
	return nil
}

// Update rewrites title, content and department of an existing item
func (r *ContentRepository) Update(ctx context.Context, item *models.ContentItem) error {
	table, err := tableFor(item.Category)
	if err != nil {
		return err
	}

	sql, args, err := r.sb.Update(table).
		Set("title", item.Title).
		Set("content", item.Content).
		Set("department", item.Department).
		Where(squirrel.Eq{"id": item.ID}).
		ToSql()
	if err != nil {
		return fmt.Errorf("failed to build update content query: %w", err)
	}

	tag, err := r.db.Exec(ctx, sql, args...)
	if err != nil {
		if noSuchRow(err) {
			return apperrors.ErrContentNotFound
		}
		logger.Error().Err(err).Str("category", string(item.Category)).Str("id", item.ID).Msg("Error updating content")
		return fmt.Errorf("error updating %s item: %w", item.Category, err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrContentNotFound
	}
	return nil
}

// Delete removes an item
func (r *ContentRepository) Delete(ctx context.Context, category models.Category, id string) error {
	table, err := tableFor(category)
	if err != nil {
		return err
	}

	sql, args, err := r.sb.Delete(table).Where(squirrel.Eq{"id": id}).ToSql()
	if err != nil {
		return fmt.Errorf("failed to build delete content query: %w", err)
	}

	tag, err := r.db.Exec(ctx, sql, args...)
	if err != nil {
		if noSuchRow(err) {
			return apperrors.ErrContentNotFound
		}
		logger.Error().Err(err).Str("category", string(category)).Str("id", id).Msg("Error deleting content")
		return fmt.Errorf("error deleting %s item: %w", category, err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrContentNotFound
	}
	return nil
}

// IncrementViewCount adds one view in a single statement and returns the new
// count. A NULL count is treated as 0.
func (r *ContentRepository) IncrementViewCount(ctx context.Context, category models.Category, id string) (int, error) {
	table, err := tableFor(category)
	if err != nil {
		return 0, err
	}

	sql, args, err := r.sb.Update(table).
		Set("view_count", squirrel.Expr("COALESCE(view_count, 0) + 1")).
		Where(squirrel.Eq{"id": id}).
		Suffix("RETURNING view_count").
		ToSql()
	if err != nil {
		return 0, fmt.Errorf("failed to build increment view count query: %w", err)
	}

	var count int
	if err := r.db.QueryRow(ctx, sql, args...).Scan(&count); err != nil {
		if noSuchRow(err) {
			return 0, apperrors.ErrContentNotFound
		}
		return 0, fmt.Errorf("error incrementing view count: %w", err)
	}
	return count, nil
}

// TopByViewCount returns the most viewed items of a department, or of every
// department when department is empty.
func (r *ContentRepository) TopByViewCount(ctx context.Context, category models.Category, department string, limit int) ([]*models.ContentItem, error) {
	table, err := tableFor(category)
	if err != nil {
		return nil, err
	}
	qb := r.selectItems(table)
	if department != "" {
		qb = qb.Where(squirrel.Eq{"department": department})
	}
	qb = qb.OrderBy("COALESCE(view_count, 0) DESC", "created_at DESC NULLS LAST").
		Limit(uint64(limit))
	return r.queryItems(ctx, category, qb)
}
