package postgres_test

import (
	"testing"
	"time"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/twofourteen/hr-portal/internal/attendance"
	attendancePostgres "github.com/twofourteen/hr-portal/internal/attendance/postgres"
)

func TestAttendancePostgres(t *testing.T) {
	RegisterFailHandler(Fail)
	RunSpecs(t, "Attendance Postgres Suite")
}

// SQLiteAttendance is a SQLite-compatible model for testing
type SQLiteAttendance struct {
	ID          string     `gorm:"column:id;primaryKey"`
	UserID      string     `gorm:"column:user_id;not null;index"`
	TimeIn      time.Time  `gorm:"column:time_in;not null"`
	TimeOut     *time.Time `gorm:"column:time_out"`
	TotalWorked *string    `gorm:"column:total_worked"`
}

func (SQLiteAttendance) TableName() string {
	return "attendance_log"
}

var _ = Describe("AttendanceRepository", func() {
	var (
		db   *gorm.DB
		repo *attendancePostgres.AttendanceRepository
	)

	BeforeEach(func() {
		var err error

		db, err = gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
			Logger: logger.Default.LogMode(logger.Silent),
		})
		Expect(err).NotTo(HaveOccurred())

		err = db.AutoMigrate(&SQLiteAttendance{})
		Expect(err).NotTo(HaveOccurred())

		repo = attendancePostgres.NewAttendanceRepository(db)
	})

	AfterEach(func() {
		sqlDB, err := db.DB()
		Expect(err).NotTo(HaveOccurred())
		err = sqlDB.Close()
		Expect(err).NotTo(HaveOccurred())
	})

	Describe("Create", func() {
		It("assigns an id and persists the record", func() {
			rec := &attendance.Attendance{
				UserID: "emp-1",
				TimeIn: time.Date(2025, 11, 18, 9, 0, 0, 0, time.UTC),
			}

			err := repo.Create(rec)
			Expect(err).NotTo(HaveOccurred())
			Expect(rec.ID).NotTo(BeEmpty())

			got, err := repo.GetByID(rec.ID)
			Expect(err).NotTo(HaveOccurred())
			Expect(got.UserID).To(Equal("emp-1"))
			Expect(got.TimeOut).To(BeNil())
		})
	})

	Describe("GetActive", func() {
		It("returns nil when the user has no open session", func() {
			got, err := repo.GetActive("emp-1")
			Expect(err).NotTo(HaveOccurred())
			Expect(got).To(BeNil())
		})

		It("finds the open session and ignores closed ones", func() {
			closedAt := time.Date(2025, 11, 17, 17, 0, 0, 0, time.UTC)
			worked := "28800 seconds"
			closed := &attendance.Attendance{
				UserID:      "emp-1",
				TimeIn:      closedAt.Add(-8 * time.Hour),
				TimeOut:     &closedAt,
				TotalWorked: &worked,
			}
			Expect(repo.Create(closed)).To(Succeed())

			open := &attendance.Attendance{
				UserID: "emp-1",
				TimeIn: time.Date(2025, 11, 18, 9, 0, 0, 0, time.UTC),
			}
			Expect(repo.Create(open)).To(Succeed())

			got, err := repo.GetActive("emp-1")
			Expect(err).NotTo(HaveOccurred())
			Expect(got).NotTo(BeNil())
			Expect(got.ID).To(Equal(open.ID))
		})
	})

	Describe("Close", func() {
		It("stamps time_out and the stored duration", func() {
			rec := &attendance.Attendance{
				UserID: "emp-1",
				TimeIn: time.Date(2025, 11, 18, 9, 0, 0, 0, time.UTC),
			}
			Expect(repo.Create(rec)).To(Succeed())

			out := rec.TimeIn.Add(4 * time.Hour)
			err := repo.Close(rec.ID, out, "14400 seconds")
			Expect(err).NotTo(HaveOccurred())

			got, err := repo.GetByID(rec.ID)
			Expect(err).NotTo(HaveOccurred())
			Expect(got.TimeOut).NotTo(BeNil())
			Expect(*got.TotalWorked).To(Equal("14400 seconds"))
		})

		It("does not touch an already-closed record", func() {
			rec := &attendance.Attendance{
				UserID: "emp-1",
				TimeIn: time.Date(2025, 11, 18, 9, 0, 0, 0, time.UTC),
			}
			Expect(repo.Create(rec)).To(Succeed())
			Expect(repo.Close(rec.ID, rec.TimeIn.Add(time.Hour), "3600 seconds")).To(Succeed())

			Expect(repo.Close(rec.ID, rec.TimeIn.Add(5*time.Hour), "18000 seconds")).To(Succeed())

			got, err := repo.GetByID(rec.ID)
			Expect(err).NotTo(HaveOccurred())
			Expect(*got.TotalWorked).To(Equal("3600 seconds"))
		})
	})

	Describe("ListBetween", func() {
		It("returns records within the window, newest first", func() {
			day := time.Date(2025, 11, 18, 0, 0, 0, 0, time.UTC)

			early := &attendance.Attendance{UserID: "emp-1", TimeIn: day.Add(9 * time.Hour)}
			late := &attendance.Attendance{UserID: "emp-1", TimeIn: day.Add(14 * time.Hour)}
			yesterday := &attendance.Attendance{UserID: "emp-1", TimeIn: day.Add(-10 * time.Hour)}
			Expect(repo.Create(early)).To(Succeed())
			Expect(repo.Create(late)).To(Succeed())
			Expect(repo.Create(yesterday)).To(Succeed())

			got, err := repo.ListBetween("emp-1", day, day.AddDate(0, 0, 1))
			Expect(err).NotTo(HaveOccurred())
			Expect(got).To(HaveLen(2))
			Expect(got[0].ID).To(Equal(late.ID))
			Expect(got[1].ID).To(Equal(early.ID))
		})
	})
})
