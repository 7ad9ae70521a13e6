// Package events covers member event registration and officer event
// management.
package events

import (
	"context"
	"errors"
	"time"

	"go.uber.org/zap"

	nexus "github.com/specs-nexus/nexus"
)

var (
	ErrEventNotFound          = errors.New("event not found")
	ErrRegistrationNotStarted = errors.New("registration for this event has not started yet")
	ErrRegistrationEnded      = errors.New("registration for this event has ended")
)

// Draft carries the officer-supplied fields for creating or updating an
// event. ImageURL is set by the transport after saving the upload.
type Draft struct {
	Title             string
	Description       string
	Date              time.Time
	Location          string
	ImageURL          string
	RegistrationStart *time.Time
	RegistrationEnd   *time.Time
}

type Repository interface {
	ActiveEvents(ctx context.Context) ([]nexus.Event, error)
	EventByID(ctx context.Context, id int64) (*nexus.Event, error)
	Participants(ctx context.Context, eventID int64) ([]nexus.User, error)
	IsParticipant(ctx context.Context, eventID, userID int64) (bool, error)
	AddParticipant(ctx context.Context, eventID, userID int64) error
	RemoveParticipant(ctx context.Context, eventID, userID int64) error
	CreateEvent(ctx context.Context, event *nexus.Event) error
	UpdateEvent(ctx context.Context, event *nexus.Event) error
	ArchiveEvent(ctx context.Context, id int64) error
}

type Service interface {

	// List returns active events with the caller's participation flagged.
	// A zero userID (officer listings) leaves the flag unset.
	List(ctx context.Context, userID int64) ([]nexus.Event, error)

	// Join registers the member for an event inside its registration
	// window. Joining twice is not an error; the message says so.
	Join(ctx context.Context, eventID, userID int64) (string, error)

	// Leave removes the member while the registration window is open.
	Leave(ctx context.Context, eventID, userID int64) (string, error)

	Participants(ctx context.Context, eventID int64) ([]nexus.User, error)

	Create(ctx context.Context, draft Draft) (*nexus.Event, error)
	Update(ctx context.Context, id int64, draft Draft) (*nexus.Event, error)
	Archive(ctx context.Context, id int64) error
}

func NewService(repo Repository) Service {
	log := zap.L().With(
		zap.String("service", "events"),
	)

	return &service{
		repo: repo,
		log:  log,
	}
}

type service struct {
	repo Repository
	log  *zap.Logger
}

func (svc *service) List(ctx context.Context, userID int64) ([]nexus.Event, error) {
	events, err := svc.repo.ActiveEvents(ctx)
	if err != nil {
		return nil, err
	}

	if userID == 0 {
		return events, nil
	}

	for i := range events {
		joined, err := svc.repo.IsParticipant(ctx, events[i].ID, userID)
		if err != nil {
			return nil, err
		}

		events[i].IsParticipant = joined
	}

	return events, nil
}

func (svc *service) Join(ctx context.Context, eventID, userID int64) (string, error) {
	log := svc.log.With(
		zap.String("action", "join"),
		zap.Int64("event_id", eventID),
		zap.Int64("user_id", userID),
	)

	event, err := svc.repo.EventByID(ctx, eventID)
	if err != nil {
		log.Error(err.Error())
		return "", ErrEventNotFound
	}

	now := time.Now().UTC()
	if event.RegistrationStart != nil && now.Before(*event.RegistrationStart) {
		log.Error(ErrRegistrationNotStarted.Error())
		return "", ErrRegistrationNotStarted
	}

	if event.RegistrationEnd != nil && now.After(*event.RegistrationEnd) {
		log.Error(ErrRegistrationEnded.Error())
		return "", ErrRegistrationEnded
	}

	joined, err := svc.repo.IsParticipant(ctx, eventID, userID)
	if err != nil {
		log.Error(err.Error())
		return "", err
	}

	if joined {
		log.Info("already participating")
		return "Already participating in this event", nil
	}

	if err := svc.repo.AddParticipant(ctx, eventID, userID); err != nil {
		log.Error(err.Error())
		return "", err
	}

	log.Info("joined event")
	return "Successfully joined the event", nil
}

func (svc *service) Leave(ctx context.Context, eventID, userID int64) (string, error) {
	log := svc.log.With(
		zap.String("action", "leave"),
		zap.Int64("event_id", eventID),
		zap.Int64("user_id", userID),
	)

	event, err := svc.repo.EventByID(ctx, eventID)
	if err != nil {
		log.Error(err.Error())
		return "", ErrEventNotFound
	}

	now := time.Now().UTC()
	if event.RegistrationEnd != nil && now.After(*event.RegistrationEnd) {
		log.Error(ErrRegistrationEnded.Error())
		return "", ErrRegistrationEnded
	}

	joined, err := svc.repo.IsParticipant(ctx, eventID, userID)
	if err != nil {
		log.Error(err.Error())
		return "", err
	}

	if !joined {
		log.Info("not participating")
		return "You are not participating in this event", nil
	}

	if err := svc.repo.RemoveParticipant(ctx, eventID, userID); err != nil {
		log.Error(err.Error())
		return "", err
	}

	log.Info("left event")
	return "Successfully left the event", nil
}

func (svc *service) Participants(ctx context.Context, eventID int64) ([]nexus.User, error) {
	if _, err := svc.repo.EventByID(ctx, eventID); err != nil {
		return nil, ErrEventNotFound
	}

	return svc.repo.Participants(ctx, eventID)
}

func (svc *service) Create(ctx context.Context, draft Draft) (*nexus.Event, error) {
	log := svc.log.With(
		zap.String("action", "create"),
		zap.String("title", draft.Title),
	)

	start := draft.RegistrationStart
	if start == nil {
		now := time.Now().UTC()
		start = &now
	}

	event := &nexus.Event{
		Title:             draft.Title,
		Description:       draft.Description,
		Date:              draft.Date,
		Location:          draft.Location,
		ImageURL:          draft.ImageURL,
		RegistrationStart: start,
		RegistrationEnd:   draft.RegistrationEnd,
	}

	if err := svc.repo.CreateEvent(ctx, event); err != nil {
		log.Error(err.Error())
		return nil, err
	}

	log.Info("event created", zap.Int64("event_id", event.ID))
	return event, nil
}

func (svc *service) Update(ctx context.Context, id int64, draft Draft) (*nexus.Event, error) {
	log := svc.log.With(
		zap.String("action", "update"),
		zap.Int64("event_id", id),
	)

	event, err := svc.repo.EventByID(ctx, id)
	if err != nil {
		log.Error(err.Error())
		return nil, ErrEventNotFound
	}

	event.Title = draft.Title
	event.Description = draft.Description
	event.Date = draft.Date
	event.Location = draft.Location

	if draft.ImageURL != "" {
		event.ImageURL = draft.ImageURL
	}

	if draft.RegistrationStart != nil {
		event.RegistrationStart = draft.RegistrationStart
	}

	if draft.RegistrationEnd != nil {
		event.RegistrationEnd = draft.RegistrationEnd
	}

	if err := svc.repo.UpdateEvent(ctx, event); err != nil {
		log.Error(err.Error())
		return nil, err
	}

	log.Info("event updated")
	return event, nil
}

func (svc *service) Archive(ctx context.Context, id int64) error {
	log := svc.log.With(
		zap.String("action", "archive"),
		zap.Int64("event_id", id),
	)

	if _, err := svc.repo.EventByID(ctx, id); err != nil {
		log.Error(err.Error())
		return ErrEventNotFound
	}

	if err := svc.repo.ArchiveEvent(ctx, id); err != nil {
		log.Error(err.Error())
		return err
	}

	log.Info("event archived")
	return nil
}
