package repository

import (
	"context"
	"database/sql"
	"errors"
	"strings"
	"time"

	"skill-twin/internal/database"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

var ErrUserNotFound = errors.New("user not found")

type User struct {
	ID           uuid.UUID
	Email        string
	PasswordHash string
	FullName     string
	CreatedAt    time.Time
}

// ProfileFacts are the presence facts and experience figure the twin
// and alignment computations consume; content never leaves the row.
type ProfileFacts struct {
	HasFullName           bool
	HasBio                bool
	HasEducationLevel     bool
	HasFieldOfStudy       bool
	HasInterests          bool
	HasResume             bool
	HasAcademicBackground bool
	YearsOfExperience     float64
}

// Profile is the full editable profile row. Interests are stored as a
// comma-separated text column and split on read.
type Profile struct {
	ID                 uuid.UUID
	Email              string
	FullName           string
	Bio                string
	EducationLevel     string
	FieldOfStudy       string
	Interests          []string
	AcademicBackground string
	YearsOfExperience  float64
	HasResume          bool
	CreatedAt          time.Time
}

// ProfileUpdate carries partial updates; nil fields keep the stored
// value.
type ProfileUpdate struct {
	FullName           *string
	Bio                *string
	EducationLevel     *string
	FieldOfStudy       *string
	Interests          *[]string
	AcademicBackground *string
	YearsOfExperience  *float64
}

type UserRepository interface {
	Create(ctx context.Context, email, passwordHash, fullName string) (User, error)
	FindByEmail(ctx context.Context, email string) (User, error)
	FindByID(ctx context.Context, id uuid.UUID) (User, error)
	ProfileFacts(ctx context.Context, id uuid.UUID) (ProfileFacts, error)
	GetProfile(ctx context.Context, id uuid.UUID) (Profile, error)
	UpdateProfile(ctx context.Context, id uuid.UUID, up ProfileUpdate) (Profile, error)
}

type PostgresUserRepository struct {
	db database.DB
}

func NewPostgresUserRepository(db database.DB) *PostgresUserRepository {
	return &PostgresUserRepository{db: db}
}

func (r *PostgresUserRepository) Create(ctx context.Context, email, passwordHash, fullName string) (User, error) {
	u := User{ID: uuid.New(), Email: email, PasswordHash: passwordHash, FullName: fullName, CreatedAt: time.Now().UTC()}
	_, err := r.db.Exec(ctx,
		`INSERT INTO users (id, email, password_hash, full_name, created_at, updated_at)
		 VALUES ($1,$2,$3,$4,$5,$5)`,
		u.ID, u.Email, u.PasswordHash, u.FullName, u.CreatedAt,
	)
	if err != nil {
		return User{}, err
	}
	return u, nil
}

func (r *PostgresUserRepository) FindByEmail(ctx context.Context, email string) (User, error) {
	row := r.db.QueryRow(ctx,
		`SELECT id, email, password_hash, COALESCE(full_name, ''), created_at FROM users WHERE email = $1`,
		email,
	)
	return scanUser(row)
}

func (r *PostgresUserRepository) FindByID(ctx context.Context, id uuid.UUID) (User, error) {
	row := r.db.QueryRow(ctx,
		`SELECT id, email, password_hash, COALESCE(full_name, ''), created_at FROM users WHERE id = $1`,
		id,
	)
	return scanUser(row)
}

func (r *PostgresUserRepository) ProfileFacts(ctx context.Context, id uuid.UUID) (ProfileFacts, error) {
	row := r.db.QueryRow(ctx,
		`SELECT COALESCE(full_name, '') <> '',
		        COALESCE(bio, '') <> '',
		        COALESCE(education_level, '') <> '',
		        COALESCE(field_of_study, '') <> '',
		        COALESCE(interests, '') <> '',
		        COALESCE(resume_text, '') <> '',
		        COALESCE(academic_background, '') <> '',
		        COALESCE(years_of_experience, 0)
		 FROM users WHERE id = $1`,
		id,
	)

	var f ProfileFacts
	if err := row.Scan(&f.HasFullName, &f.HasBio, &f.HasEducationLevel, &f.HasFieldOfStudy,
		&f.HasInterests, &f.HasResume, &f.HasAcademicBackground, &f.YearsOfExperience); err != nil {
		if err == sql.ErrNoRows || errors.Is(err, pgx.ErrNoRows) {
			return ProfileFacts{}, ErrUserNotFound
		}
		return ProfileFacts{}, err
	}
	return f, nil
}

const profileColumns = `id, email, COALESCE(full_name, ''), COALESCE(bio, ''),
	        COALESCE(education_level, ''), COALESCE(field_of_study, ''),
	        COALESCE(interests, ''), COALESCE(academic_background, ''),
	        COALESCE(years_of_experience, 0), COALESCE(resume_text, '') <> '', created_at`

func (r *PostgresUserRepository) GetProfile(ctx context.Context, id uuid.UUID) (Profile, error) {
	row := r.db.QueryRow(ctx, `SELECT `+profileColumns+` FROM users WHERE id = $1`, id)
	return scanProfile(row)
}

func (r *PostgresUserRepository) UpdateProfile(ctx context.Context, id uuid.UUID, up ProfileUpdate) (Profile, error) {
	var interests *string
	if up.Interests != nil {
		joined := joinInterests(*up.Interests)
		interests = &joined
	}

	row := r.db.QueryRow(ctx,
		`UPDATE users SET
			full_name = COALESCE($2, full_name),
			bio = COALESCE($3, bio),
			education_level = COALESCE($4, education_level),
			field_of_study = COALESCE($5, field_of_study),
			interests = COALESCE($6, interests),
			academic_background = COALESCE($7, academic_background),
			years_of_experience = COALESCE($8, years_of_experience),
			updated_at = now()
		 WHERE id = $1
		 RETURNING `+profileColumns,
		id, up.FullName, up.Bio, up.EducationLevel, up.FieldOfStudy,
		interests, up.AcademicBackground, up.YearsOfExperience,
	)
	return scanProfile(row)
}

func scanProfile(row database.Row) (Profile, error) {
	var p Profile
	var interests string
	if err := row.Scan(&p.ID, &p.Email, &p.FullName, &p.Bio, &p.EducationLevel,
		&p.FieldOfStudy, &interests, &p.AcademicBackground,
		&p.YearsOfExperience, &p.HasResume, &p.CreatedAt); err != nil {
		if err == sql.ErrNoRows || errors.Is(err, pgx.ErrNoRows) {
			return Profile{}, ErrUserNotFound
		}
		return Profile{}, err
	}
	p.Interests = splitInterests(interests)
	return p, nil
}

func joinInterests(interests []string) string {
	kept := make([]string, 0, len(interests))
	for _, it := range interests {
		if t := strings.TrimSpace(it); t != "" {
			kept = append(kept, t)
		}
	}
	return strings.Join(kept, ",")
}

func splitInterests(raw string) []string {
	out := make([]string, 0)
	for _, part := range strings.Split(raw, ",") {
		if t := strings.TrimSpace(part); t != "" {
			out = append(out, t)
		}
	}
	return out
}

func scanUser(row database.Row) (User, error) {
	var u User
	if err := row.Scan(&u.ID, &u.Email, &u.PasswordHash, &u.FullName, &u.CreatedAt); err != nil {
		if err == sql.ErrNoRows || errors.Is(err, pgx.ErrNoRows) {
			return User{}, ErrUserNotFound
		}
		return User{}, err
	}
	return u, nil
}
