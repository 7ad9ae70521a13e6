package sqlite

import (
	"context"
	"database/sql"
	"errors"

	nexus "github.com/specs-nexus/nexus"
	"github.com/specs-nexus/nexus/events"
)

type EventRepository struct {
	db *sql.DB
}

func NewEventRepository(db *sql.DB) *EventRepository {
	return &EventRepository{db: db}
}

const eventColumns = `e.id, e.title, e.description, e.date, e.image_url, e.location,
	e.registration_start, e.registration_end, e.archived,
	(SELECT COUNT(*) FROM event_participants p WHERE p.event_id = e.id)`

func scanEvent(s interface{ Scan(...any) error }) (*nexus.Event, error) {
	var (
		e           nexus.Event
		description sql.NullString
		imageURL    sql.NullString
		location    sql.NullString
		regStart    sql.NullTime
		regEnd      sql.NullTime
	)

	err := s.Scan(&e.ID, &e.Title, &description, &e.Date, &imageURL,
		&location, &regStart, &regEnd, &e.Archived, &e.ParticipantCount)
	if err != nil {
		return nil, err
	}

	e.Description = description.String
	e.ImageURL = imageURL.String
	e.Location = location.String
	if regStart.Valid {
		t := regStart.Time
		e.RegistrationStart = &t
	}
	if regEnd.Valid {
		t := regEnd.Time
		e.RegistrationEnd = &t
	}

	return &e, nil
}

func (repo *EventRepository) ActiveEvents(ctx context.Context) ([]nexus.Event, error) {
	rows, err := repo.db.QueryContext(ctx,
		`SELECT `+eventColumns+` FROM events e WHERE e.archived = 0 ORDER BY e.date`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []nexus.Event
	for rows.Next() {
		e, err := scanEvent(rows)
		if err != nil {
			return nil, err
		}

		out = append(out, *e)
	}

	return out, rows.Err()
}

func (repo *EventRepository) EventByID(ctx context.Context, id int64) (*nexus.Event, error) {
	row := repo.db.QueryRowContext(ctx,
		`SELECT `+eventColumns+` FROM events e WHERE e.id = ?`, id)

	e, err := scanEvent(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, events.ErrEventNotFound
	}

	return e, err
}

func (repo *EventRepository) Participants(ctx context.Context, eventID int64) ([]nexus.User, error) {
	rows, err := repo.db.QueryContext(ctx, `
		SELECT u.id, u.email, u.student_number, u.full_name, u.year, u.block
		FROM users u
		JOIN event_participants p ON p.user_id = u.id
		WHERE p.event_id = ?
		ORDER BY u.full_name`, eventID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []nexus.User
	for rows.Next() {
		var (
			u     nexus.User
			year  sql.NullString
			block sql.NullString
		)

		err := rows.Scan(&u.ID, &u.Email, &u.StudentNumber, &u.FullName, &year, &block)
		if err != nil {
			return nil, err
		}

		u.Year = nexus.Year(year.String)
		u.Block = block.String

		out = append(out, u)
	}

	return out, rows.Err()
}

func (repo *EventRepository) IsParticipant(ctx context.Context, eventID, userID int64) (bool, error) {
	var n int
	err := repo.db.QueryRowContext(ctx,
		`SELECT COUNT(*) FROM event_participants WHERE event_id = ? AND user_id = ?`,
		eventID, userID).Scan(&n)

	return n > 0, err
}

func (repo *EventRepository) AddParticipant(ctx context.Context, eventID, userID int64) error {
	_, err := repo.db.ExecContext(ctx,
		`INSERT OR IGNORE INTO event_participants (event_id, user_id) VALUES (?, ?)`,
		eventID, userID)
	return err
}

func (repo *EventRepository) RemoveParticipant(ctx context.Context, eventID, userID int64) error {
	_, err := repo.db.ExecContext(ctx,
		`DELETE FROM event_participants WHERE event_id = ? AND user_id = ?`,
		eventID, userID)
	return err
}

func (repo *EventRepository) CreateEvent(ctx context.Context, event *nexus.Event) error {
	result, err := repo.db.ExecContext(ctx, `
		INSERT INTO events (title, description, date, image_url, location,
			registration_start, registration_end)
		VALUES (?, ?, ?, ?, ?, ?, ?)`,
		event.Title, event.Description, event.Date,
		nullString(event.ImageURL), nullString(event.Location),
		nullTime(event.RegistrationStart), nullTime(event.RegistrationEnd))
	if err != nil {
		return err
	}

	id, err := result.LastInsertId()
	if err != nil {
		return err
	}

	event.ID = id
	return nil
}

func (repo *EventRepository) UpdateEvent(ctx context.Context, event *nexus.Event) error {
	_, err := repo.db.ExecContext(ctx, `
		UPDATE events
		SET title = ?, description = ?, date = ?, image_url = ?, location = ?,
			registration_start = ?, registration_end = ?
		WHERE id = ?`,
		event.Title, event.Description, event.Date,
		nullString(event.ImageURL), nullString(event.Location),
		nullTime(event.RegistrationStart), nullTime(event.RegistrationEnd),
		event.ID)
	return err
}

func (repo *EventRepository) ArchiveEvent(ctx context.Context, id int64) error {
	_, err := repo.db.ExecContext(ctx,
		`UPDATE events SET archived = 1 WHERE id = ?`, id)
	return err
}
