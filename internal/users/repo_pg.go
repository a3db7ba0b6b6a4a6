package users

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgconn"
)

// PGRepo persists users in Postgres via database/sql.
type PGRepo struct {
	DB *sql.DB
}

const pgUniqueViolation = "23505"

func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == pgUniqueViolation
}

func (r *PGRepo) Create(ctx context.Context, user User, contact ContactDetails) error {
	tx, err := r.DB.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	const insertUser = `
INSERT INTO users (id, first_name, last_name, email, password_hash, is_active, created_at, updated_at)
VALUES ($1, $2, $3, $4, $5, $6, now(), now())`
	if _, err := tx.ExecContext(ctx, insertUser,
		user.ID, user.FirstName, user.LastName, user.Email, user.PasswordHash, user.IsActive,
	); err != nil {
		if isUniqueViolation(err) {
			return ErrEmailTaken
		}
		return err
	}

	const insertContact = `
INSERT INTO contact_details (id, user_id, phone, email, github, linkedin, portfolio, location)
VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`
	if _, err := tx.ExecContext(ctx, insertContact,
		newID(contact.ID), user.ID,
		nullableString(contact.Phone), contact.Email,
		nullableString(contact.GitHub), nullableString(contact.LinkedIn),
		nullableString(contact.Portfolio), nullableString(contact.Location),
	); err != nil {
		return err
	}

	return tx.Commit()
}

const userColumns = `id, first_name, last_name, email, password_hash, is_active, created_at, updated_at`

func (r *PGRepo) GetByID(ctx context.Context, userID string) (User, error) {
	const query = `SELECT ` + userColumns + ` FROM users WHERE id = $1 LIMIT 1`
	return r.scanUser(r.DB.QueryRowContext(ctx, query, userID))
}

func (r *PGRepo) GetByEmail(ctx context.Context, email string) (User, error) {
	const query = `SELECT ` + userColumns + ` FROM users WHERE email = $1 LIMIT 1`
	return r.scanUser(r.DB.QueryRowContext(ctx, query, email))
}

func (r *PGRepo) scanUser(row *sql.Row) (User, error) {
	var user User
	err := row.Scan(
		&user.ID,
		&user.FirstName,
		&user.LastName,
		&user.Email,
		&user.PasswordHash,
		&user.IsActive,
		&user.CreatedAt,
		&user.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return User{}, ErrNotFound
		}
		return User{}, err
	}
	return user, nil
}

func (r *PGRepo) Activate(ctx context.Context, email string) (bool, error) {
	const query = `
UPDATE users SET is_active = TRUE, updated_at = now()
WHERE email = $1
RETURNING (SELECT is_active FROM users WHERE email = $1)`
	var wasActive bool
	err := r.DB.QueryRowContext(ctx, query, email).Scan(&wasActive)
	if errors.Is(err, sql.ErrNoRows) {
		return false, ErrNotFound
	}
	if err != nil {
		return false, err
	}
	return wasActive, nil
}

func (r *PGRepo) GetProfile(ctx context.Context, userID string) (Profile, error) {
	user, err := r.GetByID(ctx, userID)
	if err != nil {
		return Profile{}, err
	}
	profile := Profile{
		User:           user,
		Experiences:    []Experience{},
		Education:      []Education{},
		Skills:         []Skill{},
		Certifications: []Certification{},
		Projects:       []Project{},
		References:     []Reference{},
	}

	if contact, err := r.getContact(ctx, userID); err != nil {
		return Profile{}, err
	} else if contact != nil {
		profile.ContactDetails = contact
	}

	if profile.Experiences, err = r.listExperiences(ctx, userID); err != nil {
		return Profile{}, err
	}
	if profile.Education, err = r.listEducation(ctx, userID); err != nil {
		return Profile{}, err
	}
	if profile.Skills, err = r.listSkills(ctx, userID); err != nil {
		return Profile{}, err
	}
	if profile.Certifications, err = r.listCertifications(ctx, userID); err != nil {
		return Profile{}, err
	}
	if profile.Projects, err = r.listProjects(ctx, userID); err != nil {
		return Profile{}, err
	}
	if profile.References, err = r.listReferences(ctx, userID); err != nil {
		return Profile{}, err
	}
	if profile.ResumeFile, err = r.getResumeFile(ctx, userID); err != nil {
		return Profile{}, err
	}
	return profile, nil
}

func (r *PGRepo) getContact(ctx context.Context, userID string) (*ContactDetails, error) {
	const query = `
SELECT id, phone, email, github, linkedin, portfolio, location
FROM contact_details WHERE user_id = $1 LIMIT 1`
	var c ContactDetails
	var phone, github, linkedin, portfolio, location sql.NullString
	err := r.DB.QueryRowContext(ctx, query, userID).Scan(
		&c.ID, &phone, &c.Email, &github, &linkedin, &portfolio, &location,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	c.Phone = phone.String
	c.GitHub = github.String
	c.LinkedIn = linkedin.String
	c.Portfolio = portfolio.String
	c.Location = location.String
	return &c, nil
}

func (r *PGRepo) listExperiences(ctx context.Context, userID string) ([]Experience, error) {
	const query = `
SELECT id, job_title, company, start_date, on_going, end_date, description
FROM experiences WHERE user_id = $1 ORDER BY start_date DESC`
	rows, err := r.DB.QueryContext(ctx, query, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := []Experience{}
	for rows.Next() {
		var exp Experience
		var endDate sql.NullTime
		var description sql.NullString
		if err := rows.Scan(&exp.ID, &exp.JobTitle, &exp.Company, &exp.StartDate, &exp.OnGoing, &endDate, &description); err != nil {
			return nil, err
		}
		if endDate.Valid {
			t := endDate.Time
			exp.EndDate = &t
		}
		exp.Description = description.String
		out = append(out, exp)
	}
	return out, rows.Err()
}

func (r *PGRepo) listEducation(ctx context.Context, userID string) ([]Education, error) {
	const query = `
SELECT id, degree, university, graduation_year
FROM education WHERE user_id = $1 ORDER BY graduation_year DESC`
	rows, err := r.DB.QueryContext(ctx, query, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := []Education{}
	for rows.Next() {
		var edu Education
		if err := rows.Scan(&edu.ID, &edu.Degree, &edu.University, &edu.GraduationYear); err != nil {
			return nil, err
		}
		out = append(out, edu)
	}
	return out, rows.Err()
}

func (r *PGRepo) listSkills(ctx context.Context, userID string) ([]Skill, error) {
	const query = `SELECT id, name FROM user_skills WHERE user_id = $1 ORDER BY name`
	rows, err := r.DB.QueryContext(ctx, query, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := []Skill{}
	for rows.Next() {
		var skill Skill
		if err := rows.Scan(&skill.ID, &skill.Name); err != nil {
			return nil, err
		}
		out = append(out, skill)
	}
	return out, rows.Err()
}

func (r *PGRepo) listCertifications(ctx context.Context, userID string) ([]Certification, error) {
	const query = `
SELECT id, certification_name, issuer, date_issued, date_expires
FROM certifications WHERE user_id = $1 ORDER BY certification_name`
	rows, err := r.DB.QueryContext(ctx, query, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := []Certification{}
	for rows.Next() {
		var cert Certification
		var issuer sql.NullString
		var issued, expires sql.NullTime
		if err := rows.Scan(&cert.ID, &cert.Name, &issuer, &issued, &expires); err != nil {
			return nil, err
		}
		cert.Issuer = issuer.String
		if issued.Valid {
			t := issued.Time
			cert.DateIssued = &t
		}
		if expires.Valid {
			t := expires.Time
			cert.DateExpires = &t
		}
		out = append(out, cert)
	}
	return out, rows.Err()
}

func (r *PGRepo) listProjects(ctx context.Context, userID string) ([]Project, error) {
	const query = `
SELECT id, project_name, description, project_link
FROM projects WHERE user_id = $1 ORDER BY project_name`
	rows, err := r.DB.QueryContext(ctx, query, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := []Project{}
	for rows.Next() {
		var p Project
		var description, link sql.NullString
		if err := rows.Scan(&p.ID, &p.Name, &description, &link); err != nil {
			return nil, err
		}
		p.Description = description.String
		p.Link = link.String
		out = append(out, p)
	}
	return out, rows.Err()
}

func (r *PGRepo) listReferences(ctx context.Context, userID string) ([]Reference, error) {
	const query = `
SELECT id, reference_name, email, phone, linkedin, relation
FROM re_references WHERE user_id = $1 ORDER BY reference_name`
	rows, err := r.DB.QueryContext(ctx, query, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := []Reference{}
	for rows.Next() {
		var ref Reference
		var phone, linkedin sql.NullString
		if err := rows.Scan(&ref.ID, &ref.Name, &ref.Email, &phone, &linkedin, &ref.Relation); err != nil {
			return nil, err
		}
		ref.Phone = phone.String
		ref.LinkedIn = linkedin.String
		out = append(out, ref)
	}
	return out, rows.Err()
}

func (r *PGRepo) getResumeFile(ctx context.Context, userID string) (*ResumeFile, error) {
	const query = `
SELECT id, storage_key, file_name, uploaded_at
FROM resume_files WHERE user_id = $1 LIMIT 1`
	var file ResumeFile
	err := r.DB.QueryRowContext(ctx, query, userID).Scan(&file.ID, &file.StorageKey, &file.FileName, &file.UploadedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &file, nil
}

func (r *PGRepo) UpdateProfile(ctx context.Context, userID string, update ProfileUpdate) error {
	tx, err := r.DB.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	const updateUser = `
UPDATE users SET
  first_name = COALESCE($2, first_name),
  last_name = COALESCE($3, last_name),
  email = COALESCE($4, email),
  updated_at = now()
WHERE id = $1`
	res, err := tx.ExecContext(ctx, updateUser, userID,
		nullableStringPtr(update.FirstName),
		nullableStringPtr(update.LastName),
		nullableStringPtr(update.Email),
	)
	if err != nil {
		if isUniqueViolation(err) {
			return ErrEmailTaken
		}
		return err
	}
	if affected, _ := res.RowsAffected(); affected == 0 {
		return ErrNotFound
	}

	if update.ContactDetails != nil {
		const upsertContact = `
INSERT INTO contact_details (id, user_id, phone, email, github, linkedin, portfolio, location)
VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
ON CONFLICT (user_id) DO UPDATE SET
  phone = EXCLUDED.phone,
  email = EXCLUDED.email,
  github = EXCLUDED.github,
  linkedin = EXCLUDED.linkedin,
  portfolio = EXCLUDED.portfolio,
  location = EXCLUDED.location`
		c := update.ContactDetails
		if _, err := tx.ExecContext(ctx, upsertContact,
			newID(c.ID), userID,
			nullableString(c.Phone), c.Email,
			nullableString(c.GitHub), nullableString(c.LinkedIn),
			nullableString(c.Portfolio), nullableString(c.Location),
		); err != nil {
			return err
		}
	}

	if update.Experiences != nil {
		if err := replaceExperiences(ctx, tx, userID, *update.Experiences); err != nil {
			return err
		}
	}
	if update.Education != nil {
		if err := replaceEducation(ctx, tx, userID, *update.Education); err != nil {
			return err
		}
	}
	if update.Skills != nil {
		if err := replaceSkills(ctx, tx, userID, *update.Skills); err != nil {
			return err
		}
	}
	if update.Certifications != nil {
		if err := replaceCertifications(ctx, tx, userID, *update.Certifications); err != nil {
			return err
		}
	}
	if update.Projects != nil {
		if err := replaceProjects(ctx, tx, userID, *update.Projects); err != nil {
			return err
		}
	}
	if update.References != nil {
		if err := replaceReferences(ctx, tx, userID, *update.References); err != nil {
			return err
		}
	}

	return tx.Commit()
}

func replaceExperiences(ctx context.Context, tx *sql.Tx, userID string, items []Experience) error {
	if _, err := tx.ExecContext(ctx, `DELETE FROM experiences WHERE user_id = $1`, userID); err != nil {
		return err
	}
	const insert = `
INSERT INTO experiences (id, user_id, job_title, company, start_date, on_going, end_date, description)
VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`
	for _, exp := range items {
		var endDate any
		if exp.EndDate != nil {
			endDate = *exp.EndDate
		}
		if _, err := tx.ExecContext(ctx, insert,
			newID(exp.ID), userID, exp.JobTitle, exp.Company, exp.StartDate, exp.OnGoing, endDate, nullableString(exp.Description),
		); err != nil {
			return err
		}
	}
	return nil
}

func replaceEducation(ctx context.Context, tx *sql.Tx, userID string, items []Education) error {
	if _, err := tx.ExecContext(ctx, `DELETE FROM education WHERE user_id = $1`, userID); err != nil {
		return err
	}
	const insert = `
INSERT INTO education (id, user_id, degree, university, graduation_year)
VALUES ($1, $2, $3, $4, $5)`
	for _, edu := range items {
		if _, err := tx.ExecContext(ctx, insert, newID(edu.ID), userID, edu.Degree, edu.University, edu.GraduationYear); err != nil {
			return err
		}
	}
	return nil
}

func replaceSkills(ctx context.Context, tx *sql.Tx, userID string, items []Skill) error {
	if _, err := tx.ExecContext(ctx, `DELETE FROM user_skills WHERE user_id = $1`, userID); err != nil {
		return err
	}
	const insert = `INSERT INTO user_skills (id, user_id, name) VALUES ($1, $2, $3)`
	for _, skill := range items {
		if _, err := tx.ExecContext(ctx, insert, newID(skill.ID), userID, skill.Name); err != nil {
			return err
		}
	}
	return nil
}

func replaceCertifications(ctx context.Context, tx *sql.Tx, userID string, items []Certification) error {
	if _, err := tx.ExecContext(ctx, `DELETE FROM certifications WHERE user_id = $1`, userID); err != nil {
		return err
	}
	const insert = `
INSERT INTO certifications (id, user_id, certification_name, issuer, date_issued, date_expires)
VALUES ($1, $2, $3, $4, $5, $6)`
	for _, cert := range items {
		if _, err := tx.ExecContext(ctx, insert,
			newID(cert.ID), userID, cert.Name, nullableString(cert.Issuer), nullableTime(cert.DateIssued), nullableTime(cert.DateExpires),
		); err != nil {
			return err
		}
	}
	return nil
}

func replaceProjects(ctx context.Context, tx *sql.Tx, userID string, items []Project) error {
	if _, err := tx.ExecContext(ctx, `DELETE FROM projects WHERE user_id = $1`, userID); err != nil {
		return err
	}
	const insert = `
INSERT INTO projects (id, user_id, project_name, description, project_link)
VALUES ($1, $2, $3, $4, $5)`
	for _, p := range items {
		if _, err := tx.ExecContext(ctx, insert, newID(p.ID), userID, p.Name, nullableString(p.Description), nullableString(p.Link)); err != nil {
			return err
		}
	}
	return nil
}

func replaceReferences(ctx context.Context, tx *sql.Tx, userID string, items []Reference) error {
	if _, err := tx.ExecContext(ctx, `DELETE FROM re_references WHERE user_id = $1`, userID); err != nil {
		return err
	}
	const insert = `
INSERT INTO re_references (id, user_id, reference_name, email, phone, linkedin, relation)
VALUES ($1, $2, $3, $4, $5, $6, $7)`
	for _, ref := range items {
		if _, err := tx.ExecContext(ctx, insert,
			newID(ref.ID), userID, ref.Name, ref.Email, nullableString(ref.Phone), nullableString(ref.LinkedIn), ref.Relation,
		); err != nil {
			return err
		}
	}
	return nil
}

func (r *PGRepo) UpsertResumeFile(ctx context.Context, userID string, file ResumeFile) error {
	const query = `
INSERT INTO resume_files (id, user_id, storage_key, file_name, uploaded_at)
VALUES ($1, $2, $3, $4, now())
ON CONFLICT (user_id) DO UPDATE SET
  storage_key = EXCLUDED.storage_key,
  file_name = EXCLUDED.file_name,
  uploaded_at = now()`
	_, err := r.DB.ExecContext(ctx, query, newID(file.ID), userID, file.StorageKey, file.FileName)
	if err != nil {
		return fmt.Errorf("upsert resume file: %w", err)
	}
	return nil
}

func newID(id string) string {
	if id != "" {
		return id
	}
	return uuid.NewString()
}

func nullableString(value string) any {
	if value == "" {
		return nil
	}
	return value
}

func nullableStringPtr(value *string) any {
	if value == nil {
		return nil
	}
	return *value
}

func nullableTime(value *time.Time) any {
	if value == nil {
		return nil
	}
	return *value
}
