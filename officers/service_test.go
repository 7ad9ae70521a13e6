package officers

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/suite"
	"github.com/xuri/excelize/v2"

	nexus "github.com/specs-nexus/nexus"
	"github.com/specs-nexus/nexus/auth"
)

type fakeOfficerRepository struct {
	officers map[int64]*nexus.Officer
	nextID   int64
}

func newFakeOfficerRepository() *fakeOfficerRepository {
	return &fakeOfficerRepository{
		officers: make(map[int64]*nexus.Officer),
		nextID:   1,
	}
}

func (r *fakeOfficerRepository) OfficerByEmail(ctx context.Context, email string) (*nexus.Officer, error) {
	for _, o := range r.officers {
		if o.Email == email {
			copied := *o
			return &copied, nil
		}
	}
	return nil, ErrOfficerNotFound
}

func (r *fakeOfficerRepository) OfficerByID(ctx context.Context, id int64) (*nexus.Officer, error) {
	o, ok := r.officers[id]
	if !ok {
		return nil, ErrOfficerNotFound
	}

	copied := *o
	return &copied, nil
}

func (r *fakeOfficerRepository) ActiveOfficers(ctx context.Context) ([]nexus.Officer, error) {
	var out []nexus.Officer
	for _, o := range r.officers {
		if !o.Archived {
			out = append(out, *o)
		}
	}
	return out, nil
}

func (r *fakeOfficerRepository) OfficerExists(ctx context.Context, email, studentNumber string) (bool, error) {
	for _, o := range r.officers {
		if o.Email == email || o.StudentNumber == studentNumber {
			return true, nil
		}
	}
	return false, nil
}

func (r *fakeOfficerRepository) CreateOfficer(ctx context.Context, officer *nexus.Officer) error {
	officer.ID = r.nextID
	r.nextID++

	copied := *officer
	r.officers[officer.ID] = &copied
	return nil
}

func (r *fakeOfficerRepository) UpdateOfficer(ctx context.Context, officer *nexus.Officer) error {
	copied := *officer
	r.officers[officer.ID] = &copied
	return nil
}

func (r *fakeOfficerRepository) ArchiveOfficer(ctx context.Context, id int64) error {
	if o, ok := r.officers[id]; ok {
		o.Archived = true
	}
	return nil
}

type officersTestSuite struct {
	suite.Suite
	ctx  context.Context
	repo *fakeOfficerRepository
	svc  Service
}

func (suite *officersTestSuite) SetupTest() {
	tokens, err := auth.New("test-secret", 30*time.Minute)
	if err != nil {
		suite.FailNow(err.Error())
	}

	suite.ctx = context.Background()
	suite.repo = newFakeOfficerRepository()
	suite.svc = NewService(suite.repo, tokens)
}

func (suite *officersTestSuite) createOfficer(email, studentNumber string) *nexus.Officer {
	officer, err := suite.svc.Create(suite.ctx, Draft{
		FullName:      "Ada Lovelace",
		Email:         email,
		Password:      "s3cret!",
		StudentNumber: studentNumber,
		Position:      "President",
	})
	if err != nil {
		suite.FailNow(err.Error())
	}

	return officer
}

func (suite *officersTestSuite) TestLogin() {
	suite.createOfficer("ada@specs.org", "2021-00001")

	token, officer, err := suite.svc.Login(suite.ctx, "ada@specs.org", "s3cret!")
	suite.NoError(err)
	suite.NotEmpty(token)
	suite.Equal("Ada Lovelace", officer.FullName)
}

func (suite *officersTestSuite) TestLoginWrongPassword() {
	suite.createOfficer("ada@specs.org", "2021-00001")

	_, _, err := suite.svc.Login(suite.ctx, "ada@specs.org", "wrong")
	suite.ErrorIs(err, ErrInvalidCredentials)
}

func (suite *officersTestSuite) TestLoginArchivedOfficer() {
	officer := suite.createOfficer("ada@specs.org", "2021-00001")

	err := suite.svc.Archive(suite.ctx, officer.ID)
	suite.NoError(err)

	_, _, err = suite.svc.Login(suite.ctx, "ada@specs.org", "s3cret!")
	suite.ErrorIs(err, ErrOfficerArchived)
}

func (suite *officersTestSuite) TestCreateRejectsDuplicate() {
	suite.createOfficer("ada@specs.org", "2021-00001")

	_, err := suite.svc.Create(suite.ctx, Draft{
		FullName:      "Another Ada",
		Email:         "ada@specs.org",
		Password:      "other",
		StudentNumber: "2021-00002",
	})
	suite.ErrorIs(err, ErrOfficerExists)
}

func (suite *officersTestSuite) TestUpdateKeepsPasswordWhenBlank() {
	officer := suite.createOfficer("ada@specs.org", "2021-00001")
	originalHash := suite.repo.officers[officer.ID].Password

	updated, err := suite.svc.Update(suite.ctx, officer.ID, Draft{
		FullName:      "Ada L.",
		Email:         "ada@specs.org",
		StudentNumber: "2021-00001",
		Position:      "Adviser",
	})
	suite.NoError(err)
	suite.Equal("Ada L.", updated.FullName)
	suite.Equal(originalHash, suite.repo.officers[officer.ID].Password)
}

func (suite *officersTestSuite) TestImport() {
	workbook := excelize.NewFile()
	sheet := workbook.GetSheetName(0)

	header := []string{"full_name", "email", "password", "student_number", "year", "block", "position"}
	for i, name := range header {
		cell, _ := excelize.CoordinatesToCellName(i+1, 1)
		workbook.SetCellValue(sheet, cell, name)
	}

	rows := [][]string{
		{"Grace Hopper", "grace@specs.org", "pw1", "2021-00010", "3rd Year", "A", "Secretary"},
		{"No Email", "", "pw2", "2021-00011", "", "", ""},
		{"Alan Turing", "alan@specs.org", "pw3", "2021-00012", "4th Year", "B", "Treasurer"},
	}

	for r, row := range rows {
		for c, value := range row {
			cell, _ := excelize.CoordinatesToCellName(c+1, r+2)
			workbook.SetCellValue(sheet, cell, value)
		}
	}

	buf, err := workbook.WriteToBuffer()
	if err != nil {
		suite.FailNow(err.Error())
	}

	// Alan already exists; only Grace should be imported.
	suite.createOfficer("alan@specs.org", "2021-00012")

	created, err := suite.svc.Import(suite.ctx, buf.Bytes())
	suite.NoError(err)
	suite.Equal(1, created)

	officers, err := suite.svc.List(suite.ctx)
	suite.NoError(err)
	suite.Len(officers, 2)
}

func TestOfficersTestSuite(t *testing.T) {
	suite.Run(t, new(officersTestSuite))
}
