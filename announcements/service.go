// Package announcements serves organization announcements to members and
// lets officers manage them.
package announcements

import (
	"context"
	"errors"
	"time"

	"go.uber.org/zap"

	nexus "github.com/specs-nexus/nexus"
)

var ErrAnnouncementNotFound = errors.New("announcement not found")

type Draft struct {
	Title       string
	Description string
	Date        *time.Time
	Location    string
	ImageURL    string
}

type Repository interface {
	ActiveAnnouncements(ctx context.Context) ([]nexus.Announcement, error)
	AnnouncementByID(ctx context.Context, id int64) (*nexus.Announcement, error)
	CreateAnnouncement(ctx context.Context, a *nexus.Announcement) error
	UpdateAnnouncement(ctx context.Context, a *nexus.Announcement) error
	ArchiveAnnouncement(ctx context.Context, id int64) error
}

type Service interface {
	List(ctx context.Context) ([]nexus.Announcement, error)
	Create(ctx context.Context, draft Draft) (*nexus.Announcement, error)
	Update(ctx context.Context, id int64, draft Draft) (*nexus.Announcement, error)
	Archive(ctx context.Context, id int64) error
}

func NewService(repo Repository) Service {
	log := zap.L().With(
		zap.String("service", "announcements"),
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

func (svc *service) List(ctx context.Context) ([]nexus.Announcement, error) {
	return svc.repo.ActiveAnnouncements(ctx)
}

func (svc *service) Create(ctx context.Context, draft Draft) (*nexus.Announcement, error) {
	log := svc.log.With(
		zap.String("action", "create"),
		zap.String("title", draft.Title),
	)

	announcement := &nexus.Announcement{
		Title:       draft.Title,
		Description: draft.Description,
		Date:        draft.Date,
		Location:    draft.Location,
		ImageURL:    draft.ImageURL,
	}

	if err := svc.repo.CreateAnnouncement(ctx, announcement); err != nil {
		log.Error(err.Error())
		return nil, err
	}

	log.Info("announcement created", zap.Int64("announcement_id", announcement.ID))
	return announcement, nil
}

func (svc *service) Update(ctx context.Context, id int64, draft Draft) (*nexus.Announcement, error) {
	log := svc.log.With(
		zap.String("action", "update"),
		zap.Int64("announcement_id", id),
	)

	announcement, err := svc.repo.AnnouncementByID(ctx, id)
	if err != nil {
		log.Error(err.Error())
		return nil, ErrAnnouncementNotFound
	}

	announcement.Title = draft.Title
	announcement.Description = draft.Description
	announcement.Date = draft.Date
	announcement.Location = draft.Location

	if draft.ImageURL != "" {
		announcement.ImageURL = draft.ImageURL
	}

	if err := svc.repo.UpdateAnnouncement(ctx, announcement); err != nil {
		log.Error(err.Error())
		return nil, err
	}

	log.Info("announcement updated")
	return announcement, nil
}

func (svc *service) Archive(ctx context.Context, id int64) error {
	log := svc.log.With(
		zap.String("action", "archive"),
		zap.Int64("announcement_id", id),
	)

	if _, err := svc.repo.AnnouncementByID(ctx, id); err != nil {
		log.Error(err.Error())
		return ErrAnnouncementNotFound
	}

	if err := svc.repo.ArchiveAnnouncement(ctx, id); err != nil {
		log.Error(err.Error())
		return err
	}

	log.Info("announcement archived")
	return nil
}
