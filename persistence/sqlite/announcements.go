package sqlite

import (
	"context"
	"database/sql"
	"errors"

	nexus "github.com/specs-nexus/nexus"
	"github.com/specs-nexus/nexus/announcements"
)

type AnnouncementRepository struct {
	db *sql.DB
}

func NewAnnouncementRepository(db *sql.DB) *AnnouncementRepository {
	return &AnnouncementRepository{db: db}
}

func scanAnnouncement(s interface{ Scan(...any) error }) (*nexus.Announcement, error) {
	var (
		a           nexus.Announcement
		description sql.NullString
		imageURL    sql.NullString
		location    sql.NullString
		date        sql.NullTime
	)

	err := s.Scan(&a.ID, &a.Title, &description, &imageURL, &location,
		&date, &a.Archived)
	if err != nil {
		return nil, err
	}

	a.Description = description.String
	a.ImageURL = imageURL.String
	a.Location = location.String
	if date.Valid {
		t := date.Time
		a.Date = &t
	}

	return &a, nil
}

func (repo *AnnouncementRepository) ActiveAnnouncements(ctx context.Context) ([]nexus.Announcement, error) {
	rows, err := repo.db.QueryContext(ctx, `
		SELECT id, title, description, image_url, location, date, archived
		FROM announcements
		WHERE archived = 0
		ORDER BY id DESC`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []nexus.Announcement
	for rows.Next() {
		a, err := scanAnnouncement(rows)
		if err != nil {
			return nil, err
		}

		out = append(out, *a)
	}

	return out, rows.Err()
}

func (repo *AnnouncementRepository) AnnouncementByID(ctx context.Context, id int64) (*nexus.Announcement, error) {
	row := repo.db.QueryRowContext(ctx, `
		SELECT id, title, description, image_url, location, date, archived
		FROM announcements
		WHERE id = ?`, id)

	a, err := scanAnnouncement(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, announcements.ErrAnnouncementNotFound
	}

	return a, err
}

func (repo *AnnouncementRepository) CreateAnnouncement(ctx context.Context, a *nexus.Announcement) error {
	result, err := repo.db.ExecContext(ctx, `
		INSERT INTO announcements (title, description, image_url, location, date)
		VALUES (?, ?, ?, ?, ?)`,
		a.Title, a.Description, nullString(a.ImageURL),
		nullString(a.Location), nullTime(a.Date))
	if err != nil {
		return err
	}

	id, err := result.LastInsertId()
	if err != nil {
		return err
	}

	a.ID = id
	return nil
}

func (repo *AnnouncementRepository) UpdateAnnouncement(ctx context.Context, a *nexus.Announcement) error {
	_, err := repo.db.ExecContext(ctx, `
		UPDATE announcements
		SET title = ?, description = ?, image_url = ?, location = ?, date = ?
		WHERE id = ?`,
		a.Title, a.Description, nullString(a.ImageURL),
		nullString(a.Location), nullTime(a.Date), a.ID)
	return err
}

func (repo *AnnouncementRepository) ArchiveAnnouncement(ctx context.Context, id int64) error {
	_, err := repo.db.ExecContext(ctx,
		`UPDATE announcements SET archived = 1 WHERE id = ?`, id)
	return err
}
