package repositories

import (
	"context"
	"database/sql"

	"taskhub/internal/models"
)

type TagRepository interface {
	Store(ctx context.Context, tag *models.TaskTag) error
	FindByID(ctx context.Context, id int64) (*models.TaskTag, error)
	FindAll(ctx context.Context) ([]models.TaskTag, error)
	Update(ctx context.Context, tag *models.TaskTag) error
	Delete(ctx context.Context, id int64) error

	// task <-> tag junction
	ReplaceTaskTags(ctx context.Context, taskID int64, tagIDs []int64) error
	FindTaskTagIDs(ctx context.Context, taskID int64) ([]int64, error)
}

type tagRepository struct {
	db *sql.DB
}

func NewTagRepository(db *sql.DB) TagRepository {
	return &tagRepository{db: db}
}

func (r *tagRepository) Store(ctx context.Context, tag *models.TaskTag) error {
	return r.db.QueryRowContext(ctx,
		`INSERT INTO task_tags (name, color) VALUES ($1, $2) RETURNING id`,
		tag.Name, tag.Color,
	).Scan(&tag.ID)
}

func (r *tagRepository) FindByID(ctx context.Context, id int64) (*models.TaskTag, error) {
	tag := &models.TaskTag{}
	err := r.db.QueryRowContext(ctx,
		`SELECT id, name, color FROM task_tags WHERE id = $1`, id,
	).Scan(&tag.ID, &tag.Name, &tag.Color)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, err
	}
	return tag, nil
}

func (r *tagRepository) FindAll(ctx context.Context) ([]models.TaskTag, error) {
	rows, err := r.db.QueryContext(ctx, `SELECT id, name, color FROM task_tags ORDER BY name`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var tags []models.TaskTag
	for rows.Next() {
		var t models.TaskTag
		if err := rows.Scan(&t.ID, &t.Name, &t.Color); err != nil {
			return nil, err
		}
		tags = append(tags, t)
	}
	return tags, rows.Err()
}

func (r *tagRepository) Update(ctx context.Context, tag *models.TaskTag) error {
	_, err := r.db.ExecContext(ctx,
		`UPDATE task_tags SET name=$1, color=$2 WHERE id=$3`,
		tag.Name, tag.Color, tag.ID)
	return err
}

func (r *tagRepository) Delete(ctx context.Context, id int64) error {
	// junction rows go away via ON DELETE CASCADE
	_, err := r.db.ExecContext(ctx, `DELETE FROM task_tags WHERE id = $1`, id)
	return err
}

func (r *tagRepository) ReplaceTaskTags(ctx context.Context, taskID int64, tagIDs []int64) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx, `DELETE FROM task_tag_rel WHERE task_id = $1`, taskID); err != nil {
		return err
	}
	for _, tagID := range tagIDs {
		if _, err := tx.ExecContext(ctx,
			`INSERT INTO task_tag_rel (task_id, tag_id) VALUES ($1, $2)`, taskID, tagID); err != nil {
			return err
		}
	}
	return tx.Commit()
}

func (r *tagRepository) FindTaskTagIDs(ctx context.Context, taskID int64) ([]int64, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT tag_id FROM task_tag_rel WHERE task_id = $1 ORDER BY tag_id`, taskID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var ids []int64
	for rows.Next() {
		var id int64
		if err := rows.Scan(&id); err != nil {
			return nil, err
		}
		ids = append(ids, id)
	}
	return ids, rows.Err()
}
