package repository

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	ierr "github.com/atinyakov/passportkeeper/internal/errors"
	"github.com/atinyakov/passportkeeper/internal/models"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/suite"
	"go.uber.org/zap"
)

type CSVRepositorySuite struct {
	suite.Suite
	dir     string
	newRepo *CSVRepository[models.NewPassport]
	oldRepo *CSVRepository[models.OldPassport]
}

func TestCSVRepositorySuite(t *testing.T) {
	suite.Run(t, new(CSVRepositorySuite))
}

func (s *CSVRepositorySuite) SetupTest() {
	s.dir = s.T().TempDir()
	s.newRepo = NewNewPassportRepository(s.dir, zap.NewNop())
	s.oldRepo = NewOldPassportRepository(s.dir, zap.NewNop())
}

func (s *CSVRepositorySuite) readFile(name string) string {
	b, err := os.ReadFile(filepath.Join(s.dir, name))
	s.Require().NoError(err)
	return string(b)
}

func (s *CSVRepositorySuite) writeFile(name, content string) {
	s.Require().NoError(os.WriteFile(filepath.Join(s.dir, name), []byte(content), 0o644))
}

func newPassport(id, name string, t models.PassType) models.NewPassport {
	return models.NewPassport{
		PassType: t, ID: id, Name: name, DOB: "1990-01-01", Nationality: "USA",
		PhoneNumber: "1234567890", CreatedDate: "2024-03-10", AppointmentDate: "2024-04-10",
		Payment: t.Payment(), PaymentStatus: "Yes",
	}
}

func oldPassport(id, number string, t models.PassType, balance string) models.OldPassport {
	return models.OldPassport{
		PassType: t, ID: id, Name: "Jane Roe", DOB: "1980-05-05", IssueDate: "2010-01-01",
		ExpiredDate: "2020-01-01", PassportNumber: number, AccountNumber: "1111222233",
		Balance: models.NewMoney(decimal.RequireFromString(balance)), CreatedDate: "2024-03-10",
		AppointmentDate: "2024-03-12", Payment: t.Payment(), PaymentStatus: "Yes",
	}
}

func (s *CSVRepositorySuite) TestLoadMissingFiles() {
	records, err := s.newRepo.Load()
	s.Require().NoError(err)
	s.Empty(records)

	old, err := s.oldRepo.Load()
	s.Require().NoError(err)
	s.Empty(old)
}

func (s *CSVRepositorySuite) TestSaveSplitsBySubType() {
	records := []models.NewPassport{
		newPassport("A1", "John Doe", models.Regular),
		newPassport("A2", "Ann Lee", models.Urgent),
		newPassport("A3", "Bob Ray", models.Regular),
	}
	s.Require().NoError(s.newRepo.Save(records))

	regular := strings.Split(strings.TrimSpace(s.readFile(RegularFile)), "\n")
	s.Require().Len(regular, 3)
	s.Equal(strings.Join(models.NewPassportHeader, ","), regular[0])
	s.True(strings.HasPrefix(regular[1], "Regular,A1,John Doe,"))
	s.True(strings.HasPrefix(regular[2], "Regular,A3,Bob Ray,"))

	urgent := strings.Split(strings.TrimSpace(s.readFile(UrgentFile)), "\n")
	s.Require().Len(urgent, 2)
	s.Equal("Urgent,A2,Ann Lee,1990-01-01,USA,1234567890,2024-03-10,2024-04-10,25000,Yes", urgent[1])
}

func (s *CSVRepositorySuite) TestSaveWritesHeadersForEmptyFamily() {
	s.Require().NoError(s.oldRepo.Save(nil))

	header := strings.Join(models.OldPassportHeader, ",") + "\n"
	s.Equal(header, s.readFile(ExpiredRegularFile))
	s.Equal(header, s.readFile(ExpiredUrgentFile))
}

func (s *CSVRepositorySuite) TestRoundTripLoadsRegularFileFirst() {
	records := []models.NewPassport{
		newPassport("U1", "Ann Lee", models.Urgent),
		newPassport("R1", "John Doe", models.Regular),
		newPassport("R2", "Bob Ray", models.Regular),
	}
	s.Require().NoError(s.newRepo.Save(records))

	loaded, err := s.newRepo.Load()
	s.Require().NoError(err)
	s.Require().Len(loaded, 3)
	s.Equal([]models.NewPassport{records[1], records[2], records[0]}, loaded)
}

func (s *CSVRepositorySuite) TestOldRoundTripFormatsBalance() {
	records := []models.OldPassport{
		oldPassport("O1", "P100", models.ExpiredRegular, "1500"),
		oldPassport("O2", "P200", models.ExpiredUrgent, "99.999"),
	}
	s.Require().NoError(s.oldRepo.Save(records))

	s.Contains(s.readFile(ExpiredRegularFile), ",1500.00,")
	s.Contains(s.readFile(ExpiredUrgentFile), ",100.00,")

	loaded, err := s.oldRepo.Load()
	s.Require().NoError(err)
	s.Require().Len(loaded, 2)
	s.Equal("O1", loaded[0].ID)
	s.True(loaded[0].Balance.Equal(decimal.NewFromInt(1500)))
	s.Equal("100.00", loaded[1].Balance.StringFixed(2))
}

func (s *CSVRepositorySuite) TestLoadSkipsMalformedRows() {
	header := strings.Join(models.NewPassportHeader, ",")
	s.writeFile(RegularFile, header+"\r\n"+
		"Regular,A1,John Doe,1990-01-01,USA,123,2024-03-10,2024-04-10,5000,Yes\r\n"+
		"\r\n"+
		"Regular,A2,Doe, John,1990-01-01,USA,123,2024-03-10,2024-04-10,5000,Yes\r\n"+
		"Bogus,A3,Ann Lee,1990-01-01,USA,123,2024-03-10,2024-04-10,5000,Yes\r\n")

	loaded, err := s.newRepo.Load()
	s.Require().NoError(err)
	s.Require().Len(loaded, 1)
	s.Equal("A1", loaded[0].ID)
	s.Equal("Yes", loaded[0].PaymentStatus)
}

func (s *CSVRepositorySuite) TestLoadSkipsOverlongRow() {
	header := strings.Join(models.NewPassportHeader, ",")
	s.writeFile(RegularFile, header+"\n"+
		"Regular,A1,"+strings.Repeat("x", 70000)+"\n"+
		"Regular,A2,Ann Lee,1990-01-01,USA,123,2024-03-10,2024-04-10,5000,Yes\n")

	loaded, err := s.newRepo.Load()
	s.Require().NoError(err)
	s.Require().Len(loaded, 1)
	s.Equal("A2", loaded[0].ID)
}

func (s *CSVRepositorySuite) TestLoadSkipsBadBalance() {
	header := strings.Join(models.OldPassportHeader, ",")
	s.writeFile(ExpiredRegularFile, header+"\n"+
		"ExpiredRegular,O1,Jane Roe,1980-05-05,2010-01-01,2020-01-01,P100,1111,lots,2024-03-10,2024-04-10,5000,Yes\n"+
		"ExpiredRegular,O2,Jane Roe,1980-05-05,2010-01-01,2020-01-01,P200,1111,7.5,2024-03-10,2024-04-10,5000,Yes\n")

	loaded, err := s.oldRepo.Load()
	s.Require().NoError(err)
	s.Require().Len(loaded, 1)
	s.Equal("O2", loaded[0].ID)
	s.Equal("7.50", loaded[0].Balance.StringFixed(2))
}

func (s *CSVRepositorySuite) TestSaveLeavesFamilyIntactWhenAFileCannotBeOpened() {
	s.Require().NoError(s.newRepo.Save([]models.NewPassport{newPassport("A1", "John Doe", models.Regular)}))
	before := s.readFile(RegularFile)

	s.Require().NoError(os.Remove(filepath.Join(s.dir, UrgentFile)))
	s.Require().NoError(os.Mkdir(filepath.Join(s.dir, UrgentFile), 0o755))

	err := s.newRepo.Save(nil)
	s.Require().Error(err)
	s.True(ierr.Is(err, ierr.ErrStorage))
	s.Equal(before, s.readFile(RegularFile))
}

func (s *CSVRepositorySuite) TestSaveFailsWhenDirectoryMissing() {
	repo := NewNewPassportRepository(filepath.Join(s.dir, "missing"), zap.NewNop())

	err := repo.Save([]models.NewPassport{newPassport("A1", "John Doe", models.Regular)})
	s.Require().Error(err)
	s.True(ierr.Is(err, ierr.ErrStorage))
	s.Contains(ierr.Hint(err), "for writing")
}

func (s *CSVRepositorySuite) TestFileFor() {
	s.Equal(RegularFile, FileFor(models.Regular))
	s.Equal(UrgentFile, FileFor(models.Urgent))
	s.Equal(ExpiredRegularFile, FileFor(models.ExpiredRegular))
	s.Equal(ExpiredUrgentFile, FileFor(models.ExpiredUrgent))
	s.Empty(FileFor("Bogus"))
}
