package repositories

import (
	"context"
	"database/sql"

	"taskhub/internal/models"
)

// ModuleRepository reads the platform module registry. This service never
// writes to it; installation state is the installer's business.
type ModuleRepository interface {
	FindInstalledApplications(ctx context.Context) ([]models.Module, error)
	FindInstalled(ctx context.Context, limit int) ([]models.Module, error)
}

type moduleRepository struct {
	db *sql.DB
}

func NewModuleRepository(db *sql.DB) ModuleRepository {
	return &moduleRepository{db: db}
}

const moduleColumns = `id, name, COALESCE(shortdesc,''), COALESCE(icon,''),
       COALESCE(category,''), COALESCE(summary,''), state, application`

func (r *moduleRepository) FindInstalledApplications(ctx context.Context) ([]models.Module, error) {
	query := `SELECT ` + moduleColumns + ` FROM modules
		WHERE state = $1 AND application = TRUE
		ORDER BY name`
	return r.queryModules(ctx, query, models.ModuleStateInstalled)
}

func (r *moduleRepository) FindInstalled(ctx context.Context, limit int) ([]models.Module, error) {
	query := `SELECT ` + moduleColumns + ` FROM modules
		WHERE state = $1
		ORDER BY name
		LIMIT $2`
	return r.queryModules(ctx, query, models.ModuleStateInstalled, limit)
}

func (r *moduleRepository) queryModules(ctx context.Context, query string, args ...interface{}) ([]models.Module, error) {
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var modules []models.Module
	for rows.Next() {
		var m models.Module
		if err := rows.Scan(
			&m.ID, &m.Name, &m.ShortDesc, &m.Icon,
			&m.Category, &m.Summary, &m.State, &m.Application,
		); err != nil {
			return nil, err
		}
		modules = append(modules, m)
	}
	return modules, rows.Err()
}
