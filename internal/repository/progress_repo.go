package repository

import (
	"fmt"
	"time"

	"englishpath/internal/database"
	"englishpath/internal/models"
)

// ProgressRepository mirrors the progress store into SQL. It satisfies
// Persister and loads the persisted state back at startup.
type ProgressRepository struct {
	db *database.DB
}

// NewProgressRepository creates a new progress repository
func NewProgressRepository(db *database.DB) *ProgressRepository {
	return &ProgressRepository{db: db}
}

type userRow struct {
	ID          int64     `db:"id"`
	Username    string    `db:"username"`
	DisplayName string    `db:"display_name"`
	Points      int       `db:"points"`
	LastModule  string    `db:"last_module"`
	CreatedAt   time.Time `db:"created_at"`
}

type recordRow struct {
	UserID    int64     `db:"user_id"`
	Module    string    `db:"module"`
	ItemKey   string    `db:"item_key"`
	Completed bool      `db:"completed"`
	UpdatedAt time.Time `db:"updated_at"`
}

// SaveUser inserts or updates a user row
func (r *ProgressRepository) SaveUser(user models.User) error {
	if err := saveUser(r.db, user); err != nil {
		return fmt.Errorf("failed to save user %d: %w", user.ID, err)
	}
	return nil
}

// SaveProgress writes the user row and the given records in one transaction
func (r *ProgressRepository) SaveProgress(user models.User, records []models.CompletionRecord) error {
	err := r.db.WithTx(func(tx *database.Tx) error {
		if err := saveUser(tx, user); err != nil {
			return err
		}
		query := tx.GetDialect().UpsertRecordQuery()
		for _, rec := range records {
			if _, err := tx.Exec(query, user.ID, string(rec.Module), rec.ItemKey, rec.Completed, rec.UpdatedAt.UTC()); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return fmt.Errorf("failed to save progress for user %d: %w", user.ID, err)
	}
	return nil
}

// LoadAll reads every user and their completion records
func (r *ProgressRepository) LoadAll() ([]models.User, map[int64][]models.CompletionRecord, error) {
	var userRows []userRow
	err := r.db.Select(&userRows, `
		SELECT id, username, display_name, points, last_module, created_at
		FROM users
		ORDER BY id
	`)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to load users: %w", err)
	}

	var recordRows []recordRow
	err = r.db.Select(&recordRows, `
		SELECT user_id, module, item_key, completed, updated_at
		FROM completion_records
		ORDER BY user_id, module, item_key
	`)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to load completion records: %w", err)
	}

	users := make([]models.User, 0, len(userRows))
	for _, row := range userRows {
		users = append(users, models.User{
			ID:          row.ID,
			Username:    row.Username,
			DisplayName: row.DisplayName,
			Points:      row.Points,
			LastModule:  row.LastModule,
			CreatedAt:   row.CreatedAt.UTC(),
		})
	}

	records := make(map[int64][]models.CompletionRecord)
	for _, row := range recordRows {
		records[row.UserID] = append(records[row.UserID], models.CompletionRecord{
			Module:    models.ModuleKey(row.Module),
			ItemKey:   row.ItemKey,
			Completed: row.Completed,
			UpdatedAt: row.UpdatedAt.UTC(),
		})
	}
	return users, records, nil
}

// DeleteUser removes one user and their records
func (r *ProgressRepository) DeleteUser(userID int64) error {
	return r.db.WithTx(func(tx *database.Tx) error {
		if _, err := tx.Exec("DELETE FROM completion_records WHERE user_id = ?", userID); err != nil {
			return fmt.Errorf("failed to delete records of user %d: %w", userID, err)
		}
		if _, err := tx.Exec("DELETE FROM users WHERE id = ?", userID); err != nil {
			return fmt.Errorf("failed to delete user %d: %w", userID, err)
		}
		return nil
	})
}

// Clear deletes all users and records
func (r *ProgressRepository) Clear() error {
	return r.db.WithTx(func(tx *database.Tx) error {
		if _, err := tx.Exec("DELETE FROM completion_records"); err != nil {
			return fmt.Errorf("failed to clear completion records: %w", err)
		}
		if _, err := tx.Exec("DELETE FROM users"); err != nil {
			return fmt.Errorf("failed to clear users: %w", err)
		}
		return nil
	})
}

func saveUser(q database.DBTX, user models.User) error {
	_, err := q.Exec(q.GetDialect().UpsertUserQuery(),
		user.ID,
		user.Username,
		user.DisplayName,
		user.Points,
		user.LastModule,
		user.CreatedAt.UTC(),
		time.Now().UTC(),
	)
	return err
}
