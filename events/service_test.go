package events

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/suite"

	nexus "github.com/specs-nexus/nexus"
)

type fakeEventRepository struct {
	events       map[int64]*nexus.Event
	participants map[int64]map[int64]bool
	nextID       int64
}

func newFakeEventRepository() *fakeEventRepository {
	return &fakeEventRepository{
		events:       make(map[int64]*nexus.Event),
		participants: make(map[int64]map[int64]bool),
		nextID:       1,
	}
}

func (r *fakeEventRepository) ActiveEvents(ctx context.Context) ([]nexus.Event, error) {
	var out []nexus.Event
	for _, e := range r.events {
		if !e.Archived {
			out = append(out, *e)
		}
	}
	return out, nil
}

func (r *fakeEventRepository) EventByID(ctx context.Context, id int64) (*nexus.Event, error) {
	e, ok := r.events[id]
	if !ok {
		return nil, ErrEventNotFound
	}

	copied := *e
	return &copied, nil
}

func (r *fakeEventRepository) Participants(ctx context.Context, eventID int64) ([]nexus.User, error) {
	var out []nexus.User
	for userID := range r.participants[eventID] {
		out = append(out, nexus.User{ID: userID})
	}
	return out, nil
}

func (r *fakeEventRepository) IsParticipant(ctx context.Context, eventID, userID int64) (bool, error) {
	return r.participants[eventID][userID], nil
}

func (r *fakeEventRepository) AddParticipant(ctx context.Context, eventID, userID int64) error {
	if r.participants[eventID] == nil {
		r.participants[eventID] = make(map[int64]bool)
	}
	r.participants[eventID][userID] = true
	return nil
}

func (r *fakeEventRepository) RemoveParticipant(ctx context.Context, eventID, userID int64) error {
	delete(r.participants[eventID], userID)
	return nil
}

func (r *fakeEventRepository) CreateEvent(ctx context.Context, event *nexus.Event) error {
	event.ID = r.nextID
	r.nextID++

	copied := *event
	r.events[event.ID] = &copied
	return nil
}

func (r *fakeEventRepository) UpdateEvent(ctx context.Context, event *nexus.Event) error {
	copied := *event
	r.events[event.ID] = &copied
	return nil
}

func (r *fakeEventRepository) ArchiveEvent(ctx context.Context, id int64) error {
	if e, ok := r.events[id]; ok {
		e.Archived = true
	}
	return nil
}

type eventsTestSuite struct {
	suite.Suite
	ctx  context.Context
	repo *fakeEventRepository
	svc  Service
}

func (suite *eventsTestSuite) SetupTest() {
	suite.ctx = context.Background()
	suite.repo = newFakeEventRepository()
	suite.svc = NewService(suite.repo)
}

func (suite *eventsTestSuite) openEvent() *nexus.Event {
	start := time.Now().UTC().Add(-time.Hour)
	end := time.Now().UTC().Add(time.Hour)

	event, err := suite.svc.Create(suite.ctx, Draft{
		Title:             "General Assembly",
		Description:       "First meeting of the semester",
		Date:              time.Now().UTC().Add(24 * time.Hour),
		RegistrationStart: &start,
		RegistrationEnd:   &end,
	})
	if err != nil {
		suite.FailNow(err.Error())
	}

	return event
}

func (suite *eventsTestSuite) TestJoinAndLeave() {
	event := suite.openEvent()

	msg, err := suite.svc.Join(suite.ctx, event.ID, 7)
	suite.NoError(err)
	suite.Equal("Successfully joined the event", msg)

	msg, err = suite.svc.Join(suite.ctx, event.ID, 7)
	suite.NoError(err)
	suite.Equal("Already participating in this event", msg)

	msg, err = suite.svc.Leave(suite.ctx, event.ID, 7)
	suite.NoError(err)
	suite.Equal("Successfully left the event", msg)

	msg, err = suite.svc.Leave(suite.ctx, event.ID, 7)
	suite.NoError(err)
	suite.Equal("You are not participating in this event", msg)
}

func (suite *eventsTestSuite) TestJoinBeforeRegistrationOpens() {
	start := time.Now().UTC().Add(time.Hour)

	event, err := suite.svc.Create(suite.ctx, Draft{
		Title:             "Hackathon",
		Date:              time.Now().UTC().Add(48 * time.Hour),
		RegistrationStart: &start,
	})
	suite.NoError(err)

	_, err = suite.svc.Join(suite.ctx, event.ID, 7)
	suite.ErrorIs(err, ErrRegistrationNotStarted)
}

func (suite *eventsTestSuite) TestJoinAfterRegistrationEnds() {
	start := time.Now().UTC().Add(-2 * time.Hour)
	end := time.Now().UTC().Add(-time.Hour)

	event, err := suite.svc.Create(suite.ctx, Draft{
		Title:             "Hackathon",
		Date:              time.Now().UTC().Add(48 * time.Hour),
		RegistrationStart: &start,
		RegistrationEnd:   &end,
	})
	suite.NoError(err)

	_, err = suite.svc.Join(suite.ctx, event.ID, 7)
	suite.ErrorIs(err, ErrRegistrationEnded)
}

func (suite *eventsTestSuite) TestJoinUnknownEvent() {
	_, err := suite.svc.Join(suite.ctx, 99, 7)
	suite.ErrorIs(err, ErrEventNotFound)
}

func (suite *eventsTestSuite) TestCreateDefaultsRegistrationStart() {
	event, err := suite.svc.Create(suite.ctx, Draft{
		Title: "Orientation",
		Date:  time.Now().UTC().Add(24 * time.Hour),
	})
	suite.NoError(err)

	if suite.NotNil(event.RegistrationStart) {
		suite.WithinDuration(time.Now().UTC(), *event.RegistrationStart, time.Minute)
	}
}

func (suite *eventsTestSuite) TestListFlagsParticipation() {
	event := suite.openEvent()

	_, err := suite.svc.Join(suite.ctx, event.ID, 7)
	suite.NoError(err)

	events, err := suite.svc.List(suite.ctx, 7)
	suite.NoError(err)

	if suite.Len(events, 1) {
		suite.True(events[0].IsParticipant)
	}

	// Officer listings carry no caller identity.
	events, err = suite.svc.List(suite.ctx, 0)
	suite.NoError(err)

	if suite.Len(events, 1) {
		suite.False(events[0].IsParticipant)
	}
}

func (suite *eventsTestSuite) TestArchiveHidesEvent() {
	event := suite.openEvent()

	err := suite.svc.Archive(suite.ctx, event.ID)
	suite.NoError(err)

	events, err := suite.svc.List(suite.ctx, 0)
	suite.NoError(err)
	suite.Empty(events)
}

func TestEventsTestSuite(t *testing.T) {
	suite.Run(t, new(eventsTestSuite))
}
