package announcements

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/suite"

	nexus "github.com/specs-nexus/nexus"
)

type fakeAnnouncementRepository struct {
	nextID        int64
	announcements map[int64]nexus.Announcement
}

func newFakeAnnouncementRepository() *fakeAnnouncementRepository {
	return &fakeAnnouncementRepository{
		nextID:        1,
		announcements: make(map[int64]nexus.Announcement),
	}
}

func (repo *fakeAnnouncementRepository) ActiveAnnouncements(ctx context.Context) ([]nexus.Announcement, error) {
	out := make([]nexus.Announcement, 0, len(repo.announcements))
	for _, a := range repo.announcements {
		if !a.Archived {
			out = append(out, a)
		}
	}

	return out, nil
}

func (repo *fakeAnnouncementRepository) AnnouncementByID(ctx context.Context, id int64) (*nexus.Announcement, error) {
	a, ok := repo.announcements[id]
	if !ok || a.Archived {
		return nil, ErrAnnouncementNotFound
	}

	return &a, nil
}

func (repo *fakeAnnouncementRepository) CreateAnnouncement(ctx context.Context, a *nexus.Announcement) error {
	a.ID = repo.nextID
	repo.nextID++
	repo.announcements[a.ID] = *a
	return nil
}

func (repo *fakeAnnouncementRepository) UpdateAnnouncement(ctx context.Context, a *nexus.Announcement) error {
	repo.announcements[a.ID] = *a
	return nil
}

func (repo *fakeAnnouncementRepository) ArchiveAnnouncement(ctx context.Context, id int64) error {
	a := repo.announcements[id]
	a.Archived = true
	repo.announcements[id] = a
	return nil
}

type announcementsTestSuite struct {
	suite.Suite
	repo *fakeAnnouncementRepository
	svc  Service
}

func (suite *announcementsTestSuite) SetupTest() {
	suite.repo = newFakeAnnouncementRepository()
	suite.svc = NewService(suite.repo)
}

func (suite *announcementsTestSuite) TestCreateAndList() {
	ctx := context.Background()

	date := time.Date(2026, time.March, 14, 17, 0, 0, 0, time.UTC)
	created, err := suite.svc.Create(ctx, Draft{
		Title:       "General Assembly",
		Description: "First GA of the semester.",
		Date:        &date,
		Location:    "Auditorium",
		ImageURL:    "/static/announcement_images/ga.png",
	})
	suite.NoError(err)
	suite.NotZero(created.ID)

	announcements, err := suite.svc.List(ctx)
	suite.NoError(err)
	suite.Len(announcements, 1)
	suite.Equal("General Assembly", announcements[0].Title)
}

func (suite *announcementsTestSuite) TestUpdate() {
	ctx := context.Background()

	created, err := suite.svc.Create(ctx, Draft{
		Title:    "Old Title",
		ImageURL: "/static/announcement_images/old.png",
	})
	suite.NoError(err)

	updated, err := suite.svc.Update(ctx, created.ID, Draft{
		Title:       "New Title",
		Description: "Rescheduled.",
	})
	suite.NoError(err)
	suite.Equal("New Title", updated.Title)
	suite.Equal("Rescheduled.", updated.Description)

	// No replacement image keeps the existing one.
	suite.Equal("/static/announcement_images/old.png", updated.ImageURL)
}

func (suite *announcementsTestSuite) TestUpdateNotFound() {
	ctx := context.Background()

	_, err := suite.svc.Update(ctx, 99, Draft{Title: "Ghost"})
	suite.ErrorIs(err, ErrAnnouncementNotFound)
}

func (suite *announcementsTestSuite) TestArchive() {
	ctx := context.Background()

	created, err := suite.svc.Create(ctx, Draft{Title: "Soon Gone"})
	suite.NoError(err)

	suite.NoError(suite.svc.Archive(ctx, created.ID))

	announcements, err := suite.svc.List(ctx)
	suite.NoError(err)
	suite.Empty(announcements)

	suite.ErrorIs(suite.svc.Archive(ctx, created.ID), ErrAnnouncementNotFound)
}

func TestAnnouncementsTestSuite(t *testing.T) {
	suite.Run(t, new(announcementsTestSuite))
}
