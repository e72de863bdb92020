package repository

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/jmoiron/sqlx"
	"github.com/jmoiron/sqlx/types"

	"github.com/noah-isme/skill-exchange-api/internal/models"
)

// ProfileRepository persists full skill profiles, one row per user. Teaching
// and learning lists plus availability live in JSONB columns because a
// profile is always read and replaced wholesale.
type ProfileRepository struct {
	db *sqlx.DB
}

// NewProfileRepository constructs the repository.
func NewProfileRepository(db *sqlx.DB) *ProfileRepository {
	return &ProfileRepository{db: db}
}

type profileRow struct {
	UserID       string         `db:"user_id"`
	CanTeach     types.JSONText `db:"can_teach"`
	WantToLearn  types.JSONText `db:"want_to_learn"`
	Availability types.JSONText `db:"availability"`
	CreatedAt    time.Time      `db:"created_at"`
	UpdatedAt    time.Time      `db:"updated_at"`
}

const profileColumns = "user_id, can_teach, want_to_learn, availability, created_at, updated_at"

// GetAllProfiles returns every persisted profile.
func (r *ProfileRepository) GetAllProfiles(ctx context.Context) ([]models.Profile, error) {
	query := fmt.Sprintf("SELECT %s FROM skill_profiles ORDER BY user_id", profileColumns)
	var rows []profileRow
	if err := r.db.SelectContext(ctx, &rows, query); err != nil {
		return nil, fmt.Errorf("list skill profiles: %w", err)
	}
	profiles := make([]models.Profile, 0, len(rows))
	for i := range rows {
		profile, err := rows[i].toModel()
		if err != nil {
			return nil, err
		}
		profiles = append(profiles, *profile)
	}
	return profiles, nil
}

// GetProfile returns a single profile row. Absence surfaces as sql.ErrNoRows.
func (r *ProfileRepository) GetProfile(ctx context.Context, userID string) (*models.Profile, error) {
	query := fmt.Sprintf("SELECT %s FROM skill_profiles WHERE user_id = $1", profileColumns)
	var row profileRow
	if err := r.db.GetContext(ctx, &row, query, userID); err != nil {
		return nil, err
	}
	return row.toModel()
}

// Upsert replaces the stored profile for the user. Saving is always a full
// snapshot write; there is no partial-field merge.
func (r *ProfileRepository) Upsert(ctx context.Context, profile *models.Profile) error {
	row, err := rowFromModel(profile)
	if err != nil {
		return err
	}
	now := time.Now().UTC()
	if row.CreatedAt.IsZero() {
		row.CreatedAt = now
	}
	row.UpdatedAt = now

	const query = `INSERT INTO skill_profiles (user_id, can_teach, want_to_learn, availability, created_at, updated_at)
		VALUES (:user_id, :can_teach, :want_to_learn, :availability, :created_at, :updated_at)
		ON CONFLICT (user_id) DO UPDATE
		SET can_teach = EXCLUDED.can_teach,
		    want_to_learn = EXCLUDED.want_to_learn,
		    availability = EXCLUDED.availability,
		    updated_at = EXCLUDED.updated_at`
	if _, err := r.db.NamedExecContext(ctx, query, row); err != nil {
		return fmt.Errorf("upsert skill profile: %w", err)
	}
	profile.CreatedAt = row.CreatedAt
	profile.UpdatedAt = row.UpdatedAt
	return nil
}

// Delete removes the user's profile. Missing rows are not an error: absence
// simply excludes the user from matching.
func (r *ProfileRepository) Delete(ctx context.Context, userID string) error {
	if _, err := r.db.ExecContext(ctx, "DELETE FROM skill_profiles WHERE user_id = $1", userID); err != nil {
		return fmt.Errorf("delete skill profile: %w", err)
	}
	return nil
}

// List returns a profile page matching the filter, with the total count.
func (r *ProfileRepository) List(ctx context.Context, filter models.ProfileFilter) ([]models.Profile, int, error) {
	conditions := []string{"1=1"}
	args := []interface{}{}

	if filter.Search != "" {
		conditions = append(conditions, fmt.Sprintf("(LOWER(user_id) LIKE $%d OR can_teach::text ILIKE $%d OR want_to_learn::text ILIKE $%d)",
			len(args)+1, len(args)+2, len(args)+3))
		needle := "%" + strings.ToLower(filter.Search) + "%"
		args = append(args, needle, needle, needle)
	}

	where := strings.Join(conditions, " AND ")

	var total int
	countQuery := fmt.Sprintf("SELECT COUNT(*) FROM skill_profiles WHERE %s", where)
	if err := r.db.GetContext(ctx, &total, countQuery, args...); err != nil {
		return nil, 0, fmt.Errorf("count skill profiles: %w", err)
	}

	page := filter.Page
	if page < 1 {
		page = 1
	}
	size := filter.PageSize
	if size <= 0 || size > 100 {
		size = 20
	}
	offset := (page - 1) * size

	query := fmt.Sprintf("SELECT %s FROM skill_profiles WHERE %s ORDER BY user_id LIMIT %d OFFSET %d",
		profileColumns, where, size, offset)
	var rows []profileRow
	if err := r.db.SelectContext(ctx, &rows, query, args...); err != nil {
		return nil, 0, fmt.Errorf("list skill profiles: %w", err)
	}

	profiles := make([]models.Profile, 0, len(rows))
	for i := range rows {
		profile, err := rows[i].toModel()
		if err != nil {
			return nil, 0, err
		}
		profiles = append(profiles, *profile)
	}
	return profiles, total, nil
}

func (row *profileRow) toModel() (*models.Profile, error) {
	profile := &models.Profile{
		UserID:    row.UserID,
		CreatedAt: row.CreatedAt,
		UpdatedAt: row.UpdatedAt,
	}
	if len(row.CanTeach) > 0 {
		if err := json.Unmarshal(row.CanTeach, &profile.CanTeach); err != nil {
			return nil, fmt.Errorf("decode can_teach for %s: %w", row.UserID, err)
		}
	}
	if len(row.WantToLearn) > 0 {
		if err := json.Unmarshal(row.WantToLearn, &profile.WantToLearn); err != nil {
			return nil, fmt.Errorf("decode want_to_learn for %s: %w", row.UserID, err)
		}
	}
	if len(row.Availability) > 0 {
		if err := json.Unmarshal(row.Availability, &profile.Availability); err != nil {
			return nil, fmt.Errorf("decode availability for %s: %w", row.UserID, err)
		}
	}
	return profile, nil
}

func rowFromModel(profile *models.Profile) (*profileRow, error) {
	canTeach, err := json.Marshal(profile.CanTeach)
	if err != nil {
		return nil, fmt.Errorf("encode can_teach: %w", err)
	}
	wantToLearn, err := json.Marshal(profile.WantToLearn)
	if err != nil {
		return nil, fmt.Errorf("encode want_to_learn: %w", err)
	}
	availability, err := json.Marshal(profile.Availability)
	if err != nil {
		return nil, fmt.Errorf("encode availability: %w", err)
	}
	return &profileRow{
		UserID:       profile.UserID,
		CanTeach:     types.JSONText(canTeach),
		WantToLearn:  types.JSONText(wantToLearn),
		Availability: types.JSONText(availability),
		CreatedAt:    profile.CreatedAt,
		UpdatedAt:    profile.UpdatedAt,
	}, nil
}
