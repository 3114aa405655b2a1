package subscriber

import (
	"context"
	"fmt"

	"github.com/wb-go/wbf/dbpg"
)

// Repository resolves which users follow a tracked item.
type Repository struct {
	db *dbpg.DB
}

// NewRepository creates a new subscriber repository.
func NewRepository(db *dbpg.DB) *Repository {
	return &Repository{db: db}
}

// ByCompany returns the users who marked the company as a favorite.
func (r *Repository) ByCompany(ctx context.Context, companyID int64) ([]int64, error) {
	query := `
		SELECT user_id
		FROM favorite_companies
		WHERE company_id = $1
		ORDER BY user_id;
    `

	return r.userIDs(ctx, query, companyID)
}

// ByIndicator returns the users who follow an economic indicator of a country.
func (r *Repository) ByIndicator(ctx context.Context, baseName, country string) ([]int64, error) {
	query := `
		SELECT user_id
		FROM favorite_indicators
		WHERE base_name = $1 AND country = $2
		ORDER BY user_id;
    `

	return r.userIDs(ctx, query, baseName, country)
}

func (r *Repository) userIDs(ctx context.Context, query string, args ...any) ([]int64, error) {
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to get subscribers: %w", err)
	}
	defer rows.Close()

	var ids []int64
	for rows.Next() {
		var id int64
		if err := rows.Scan(&id); err != nil {
			return nil, fmt.Errorf("failed to scan subscriber: %w", err)
		}

		ids = append(ids, id)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate subscribers: %w", err)
	}

	return ids, nil
}
