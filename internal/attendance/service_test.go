package attendance_test

import (
	"log/slog"
	"os"
	"testing"
	"time"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
	"github.com/google/uuid"

	"github.com/twofourteen/hr-portal/internal/attendance"
)

func TestAttendance(t *testing.T) {
	RegisterFailHandler(Fail)
	RunSpecs(t, "Attendance Suite")
}

// Mock repository for testing
type mockAttendanceRepository struct {
	records     map[string]*attendance.Attendance
	createError error
	getError    error
	closeError  error
}

func newMockAttendanceRepository() *mockAttendanceRepository {
	return &mockAttendanceRepository{records: make(map[string]*attendance.Attendance)}
}

func (m *mockAttendanceRepository) Create(a *attendance.Attendance) error {
	if m.createError != nil {
		return m.createError
	}
	a.ID = uuid.NewString()
	clone := *a
	m.records[a.ID] = &clone
	return nil
}

func (m *mockAttendanceRepository) GetByID(id string) (*attendance.Attendance, error) {
	if m.getError != nil {
		return nil, m.getError
	}
	rec, ok := m.records[id]
	if !ok {
		return nil, attendance.ErrNotFound
	}
	clone := *rec
	return &clone, nil
}

func (m *mockAttendanceRepository) GetActive(userID string) (*attendance.Attendance, error) {
	if m.getError != nil {
		return nil, m.getError
	}
	for _, rec := range m.records {
		if rec.UserID == userID && rec.TimeOut == nil {
			clone := *rec
			return &clone, nil
		}
	}
	return nil, nil
}

func (m *mockAttendanceRepository) ListBetween(userID string, from, to time.Time) ([]*attendance.Attendance, error) {
	if m.getError != nil {
		return nil, m.getError
	}
	var out []*attendance.Attendance
	for _, rec := range m.records {
		if rec.UserID == userID && !rec.TimeIn.Before(from) && rec.TimeIn.Before(to) {
			clone := *rec
			out = append(out, &clone)
		}
	}
	return out, nil
}

func (m *mockAttendanceRepository) Close(id string, timeOut time.Time, totalWorked string) error {
	if m.closeError != nil {
		return m.closeError
	}
	if rec, ok := m.records[id]; ok && rec.TimeOut == nil {
		rec.TimeOut = &timeOut
		rec.TotalWorked = &totalWorked
	}
	return nil
}

func (m *mockAttendanceRepository) openCount(userID string) int {
	n := 0
	for _, rec := range m.records {
		if rec.UserID == userID && rec.TimeOut == nil {
			n++
		}
	}
	return n
}

var _ = Describe("AttendanceService", func() {
	var (
		svc      *attendance.Service
		mockRepo *mockAttendanceRepository
		clock    time.Time
	)

	BeforeEach(func() {
		mockRepo = newMockAttendanceRepository()
		logger := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelError}))
		clock = time.Date(2025, 11, 18, 9, 0, 0, 0, time.UTC)
		svc = attendance.NewService(mockRepo, logger, func() time.Time { return clock })
	})

	Describe("ClockIn", func() {
		It("creates an open session stamped with the current time", func() {
			rec, err := svc.ClockIn("emp-1")

			Expect(err).ToNot(HaveOccurred())
			Expect(rec.ID).ToNot(BeEmpty())
			Expect(rec.TimeIn).To(Equal(clock))
			Expect(rec.TimeOut).To(BeNil())
			Expect(rec.TotalWorked).To(BeNil())
		})

		Context("when a session is already open", func() {
			It("fails and creates no second record", func() {
				_, err := svc.ClockIn("emp-1")
				Expect(err).ToNot(HaveOccurred())

				_, err = svc.ClockIn("emp-1")
				Expect(err).To(Equal(attendance.ErrAlreadyClockedIn))
				Expect(mockRepo.openCount("emp-1")).To(Equal(1))
				Expect(mockRepo.records).To(HaveLen(1))
			})

			It("does not block a different user", func() {
				_, err := svc.ClockIn("emp-1")
				Expect(err).ToNot(HaveOccurred())

				_, err = svc.ClockIn("emp-2")
				Expect(err).ToNot(HaveOccurred())
			})
		})
	})

	Describe("ClockOut", func() {
		var open *attendance.Attendance

		BeforeEach(func() {
			var err error
			open, err = svc.ClockIn("emp-1")
			Expect(err).ToNot(HaveOccurred())
		})

		It("stores the elapsed duration in whole seconds", func() {
			clock = clock.Add(7*time.Hour + 30*time.Minute)

			rec, err := svc.ClockOut(open.ID, "emp-1")

			Expect(err).ToNot(HaveOccurred())
			Expect(rec.TimeOut).ToNot(BeNil())
			Expect(*rec.TimeOut).To(Equal(clock))
			Expect(rec.TotalWorked).ToNot(BeNil())
			Expect(*rec.TotalWorked).To(Equal("27000 seconds"))
		})

		It("leaves no open session afterwards", func() {
			clock = clock.Add(time.Hour)
			_, err := svc.ClockOut(open.ID, "emp-1")
			Expect(err).ToNot(HaveOccurred())
			Expect(mockRepo.openCount("emp-1")).To(Equal(0))
		})

		It("rejects a second close and keeps the stored duration", func() {
			clock = clock.Add(time.Hour)
			_, err := svc.ClockOut(open.ID, "emp-1")
			Expect(err).ToNot(HaveOccurred())

			clock = clock.Add(3 * time.Hour)
			_, err = svc.ClockOut(open.ID, "emp-1")
			Expect(err).To(Equal(attendance.ErrAlreadyClosed))

			stored := mockRepo.records[open.ID]
			Expect(*stored.TotalWorked).To(Equal("3600 seconds"))
		})

		It("returns not found for a non-owner, indistinguishable from a missing id", func() {
			_, errOther := svc.ClockOut(open.ID, "emp-2")
			_, errMissing := svc.ClockOut("no-such-id", "emp-1")

			Expect(errOther).To(Equal(attendance.ErrNotFound))
			Expect(errMissing).To(Equal(attendance.ErrNotFound))
		})
	})

	Describe("Overview", func() {
		It("sums only completed sessions from today", func() {
			first, err := svc.ClockIn("emp-1")
			Expect(err).ToNot(HaveOccurred())
			clock = clock.Add(2 * time.Hour)
			_, err = svc.ClockOut(first.ID, "emp-1")
			Expect(err).ToNot(HaveOccurred())

			clock = clock.Add(30 * time.Minute)
			_, err = svc.ClockIn("emp-1")
			Expect(err).ToNot(HaveOccurred())

			overview, err := svc.Overview("emp-1")

			Expect(err).ToNot(HaveOccurred())
			Expect(overview.TodayLogs).To(HaveLen(2))
			Expect(overview.ActiveLog).ToNot(BeNil())
			Expect(overview.TotalWorkedSeconds).To(Equal(int64(7200)))
		})

		It("reports zero when the user has no records", func() {
			overview, err := svc.Overview("emp-9")

			Expect(err).ToNot(HaveOccurred())
			Expect(overview.TodayLogs).To(BeEmpty())
			Expect(overview.ActiveLog).To(BeNil())
			Expect(overview.TotalWorkedSeconds).To(BeZero())
		})
	})
})
