package sqlite

import (
	"context"
	"database/sql"
	"errors"

	nexus "github.com/specs-nexus/nexus"
	"github.com/specs-nexus/nexus/officers"
)

type OfficerRepository struct {
	db *sql.DB
}

func NewOfficerRepository(db *sql.DB) *OfficerRepository {
	return &OfficerRepository{db: db}
}

const officerColumns = `id, email, password, student_number, full_name, year, block, position, archived`

func scanOfficer(s interface{ Scan(...any) error }) (*nexus.Officer, error) {
	var (
		o        nexus.Officer
		year     sql.NullString
		block    sql.NullString
		position sql.NullString
	)

	err := s.Scan(&o.ID, &o.Email, &o.Password, &o.StudentNumber,
		&o.FullName, &year, &block, &position, &o.Archived)
	if err != nil {
		return nil, err
	}

	o.Year = year.String
	o.Block = block.String
	o.Position = position.String

	return &o, nil
}

func (repo *OfficerRepository) OfficerByEmail(ctx context.Context, email string) (*nexus.Officer, error) {
	row := repo.db.QueryRowContext(ctx,
		`SELECT `+officerColumns+` FROM officers WHERE email = ?`, email)

	o, err := scanOfficer(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, officers.ErrOfficerNotFound
	}

	return o, err
}

func (repo *OfficerRepository) OfficerByID(ctx context.Context, id int64) (*nexus.Officer, error) {
	row := repo.db.QueryRowContext(ctx,
		`SELECT `+officerColumns+` FROM officers WHERE id = ?`, id)

	o, err := scanOfficer(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, officers.ErrOfficerNotFound
	}

	return o, err
}

func (repo *OfficerRepository) ActiveOfficers(ctx context.Context) ([]nexus.Officer, error) {
	rows, err := repo.db.QueryContext(ctx,
		`SELECT `+officerColumns+` FROM officers WHERE archived = 0 ORDER BY full_name`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []nexus.Officer
	for rows.Next() {
		o, err := scanOfficer(rows)
		if err != nil {
			return nil, err
		}

		out = append(out, *o)
	}

	return out, rows.Err()
}

func (repo *OfficerRepository) OfficerExists(ctx context.Context, email, studentNumber string) (bool, error) {
	var n int
	err := repo.db.QueryRowContext(ctx,
		`SELECT COUNT(*) FROM officers WHERE email = ? OR student_number = ?`,
		email, studentNumber).Scan(&n)

	return n > 0, err
}

func (repo *OfficerRepository) CreateOfficer(ctx context.Context, officer *nexus.Officer) error {
	result, err := repo.db.ExecContext(ctx, `
		INSERT INTO officers (email, password, student_number, full_name, year, block, position)
		VALUES (?, ?, ?, ?, ?, ?, ?)`,
		officer.Email, officer.Password, officer.StudentNumber,
		officer.FullName, nullString(officer.Year), nullString(officer.Block),
		nullString(officer.Position))
	if err != nil {
		return err
	}

	id, err := result.LastInsertId()
	if err != nil {
		return err
	}

	officer.ID = id
	return nil
}

func (repo *OfficerRepository) UpdateOfficer(ctx context.Context, officer *nexus.Officer) error {
	_, err := repo.db.ExecContext(ctx, `
		UPDATE officers
		SET email = ?, password = ?, student_number = ?, full_name = ?,
			year = ?, block = ?, position = ?
		WHERE id = ?`,
		officer.Email, officer.Password, officer.StudentNumber,
		officer.FullName, nullString(officer.Year), nullString(officer.Block),
		nullString(officer.Position), officer.ID)
	return err
}

func (repo *OfficerRepository) ArchiveOfficer(ctx context.Context, id int64) error {
	_, err := repo.db.ExecContext(ctx,
		`UPDATE officers SET archived = 1 WHERE id = ?`, id)
	return err
}
