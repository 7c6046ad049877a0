package roster_test

import (
	"log/slog"
	"os"
	"testing"
	"time"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/twofourteen/hr-portal/internal/roster"
)

func TestRoster(t *testing.T) {
	RegisterFailHandler(Fail)
	RunSpecs(t, "Roster Suite")
}

// Mock repository for testing
type mockRosterRepository struct {
	employees []*roster.Employee
	sessions  map[string]*roster.LatestSession
	breaks    map[string]*roster.ActiveBreak
	allBreaks []*roster.BreakWithEmployee
	listError error
}

func newMockRosterRepository() *mockRosterRepository {
	return &mockRosterRepository{
		sessions: make(map[string]*roster.LatestSession),
		breaks:   make(map[string]*roster.ActiveBreak),
	}
}

func (m *mockRosterRepository) ListEmployees() ([]*roster.Employee, error) {
	if m.listError != nil {
		return nil, m.listError
	}
	return m.employees, nil
}

func (m *mockRosterRepository) LatestSession(userID string) (*roster.LatestSession, error) {
	return m.sessions[userID], nil
}

func (m *mockRosterRepository) ActiveBreak(userID string) (*roster.ActiveBreak, error) {
	return m.breaks[userID], nil
}

func (m *mockRosterRepository) ListBreaksBetween(from, to time.Time) ([]*roster.BreakWithEmployee, error) {
	var out []*roster.BreakWithEmployee
	for _, b := range m.allBreaks {
		if !b.BreakStart.Before(from) && b.BreakStart.Before(to) {
			out = append(out, b)
		}
	}
	return out, nil
}

var _ = Describe("RosterService", func() {
	var (
		svc      *roster.Service
		mockRepo *mockRosterRepository
		clock    time.Time
	)

	employee := func(id, first, last string) *roster.Employee {
		return &roster.Employee{ID: id, FirstName: first, LastName: last, Email: first + "@example.com", Role: "Employee"}
	}

	BeforeEach(func() {
		mockRepo = newMockRosterRepository()
		logger := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelError}))
		clock = time.Date(2025, 11, 18, 14, 0, 0, 0, time.UTC)
		svc = roster.NewService(mockRepo, logger, func() time.Time { return clock })
	})

	Describe("Roster", func() {
		It("derives Working, On Break and Clocked Out from the latest records", func() {
			mockRepo.employees = []*roster.Employee{
				employee("emp-1", "Ada", "Lovelace"),
				employee("emp-2", "Grace", "Hopper"),
				employee("emp-3", "Alan", "Turing"),
				employee("emp-4", "Edsger", "Dijkstra"),
			}

			morning := clock.Add(-5 * time.Hour)
			noon := clock.Add(-2 * time.Hour)

			// emp-1 clocked in this morning and is still in.
			mockRepo.sessions["emp-1"] = &roster.LatestSession{ID: "a1", UserID: "emp-1", TimeIn: morning}
			// emp-2 is in and currently on lunch.
			mockRepo.sessions["emp-2"] = &roster.LatestSession{ID: "a2", UserID: "emp-2", TimeIn: morning}
			mockRepo.breaks["emp-2"] = &roster.ActiveBreak{BreakType: "Lunch", BreakStart: clock.Add(-20 * time.Minute)}
			// emp-3 clocked out at noon.
			mockRepo.sessions["emp-3"] = &roster.LatestSession{ID: "a3", UserID: "emp-3", TimeIn: morning, TimeOut: &noon}
			// emp-4 never clocked in.

			resp, err := svc.Roster()

			Expect(err).ToNot(HaveOccurred())
			Expect(resp.Employees).To(HaveLen(4))

			byID := map[string]*roster.EmployeeStatus{}
			for _, row := range resp.Employees {
				byID[row.ID] = row
			}

			Expect(byID["emp-1"].Status).To(Equal(roster.StatusWorking))
			Expect(byID["emp-1"].WorkedSeconds).To(Equal(int64(5 * 3600)))

			Expect(byID["emp-2"].Status).To(Equal(roster.StatusOnBreak))
			Expect(*byID["emp-2"].BreakType).To(Equal("Lunch"))

			Expect(byID["emp-3"].Status).To(Equal(roster.StatusClockedOut))
			Expect(byID["emp-3"].TimeOut).ToNot(BeNil())

			Expect(byID["emp-4"].Status).To(Equal(roster.StatusClockedOut))
			Expect(byID["emp-4"].TimeIn).To(BeNil())

			Expect(resp.Summary).To(Equal(roster.Summary{Total: 4, Working: 1, OnBreak: 1, ClockedOut: 2}))
		})

		It("ignores a stale break under a closed session", func() {
			noon := clock.Add(-2 * time.Hour)
			mockRepo.employees = []*roster.Employee{employee("emp-1", "Ada", "Lovelace")}
			mockRepo.sessions["emp-1"] = &roster.LatestSession{ID: "a1", UserID: "emp-1", TimeIn: clock.Add(-6 * time.Hour), TimeOut: &noon}
			mockRepo.breaks["emp-1"] = &roster.ActiveBreak{BreakType: "Short Break", BreakStart: clock.Add(-10 * time.Minute)}

			resp, err := svc.Roster()

			Expect(err).ToNot(HaveOccurred())
			Expect(resp.Employees[0].Status).To(Equal(roster.StatusClockedOut))
			Expect(resp.Employees[0].BreakType).To(BeNil())
		})

		It("returns an empty roster when there are no employees", func() {
			resp, err := svc.Roster()

			Expect(err).ToNot(HaveOccurred())
			Expect(resp.Employees).To(BeEmpty())
			Expect(resp.Summary.Total).To(BeZero())
		})
	})

	Describe("TodayBreaks", func() {
		It("returns only breaks that started today", func() {
			today := roster.BreakWithEmployee{ID: "b1", UserID: "emp-1", BreakType: "Lunch", BreakStart: clock.Add(-time.Hour)}
			yesterday := roster.BreakWithEmployee{ID: "b2", UserID: "emp-1", BreakType: "Lunch", BreakStart: clock.AddDate(0, 0, -1)}
			mockRepo.allBreaks = []*roster.BreakWithEmployee{&today, &yesterday}

			resp, err := svc.TodayBreaks()

			Expect(err).ToNot(HaveOccurred())
			Expect(resp.Breaks).To(HaveLen(1))
			Expect(resp.Breaks[0].ID).To(Equal("b1"))
		})

		It("sums completed break seconds per employee, skipping open breaks", func() {
			lunchDur := "1800 seconds"
			shortDur := "600 seconds"
			end := clock.Add(-time.Hour)
			mockRepo.allBreaks = []*roster.BreakWithEmployee{
				{ID: "b1", UserID: "emp-1", BreakType: "Lunch", BreakStart: clock.Add(-3 * time.Hour), BreakEnd: &end, BreakDuration: &lunchDur},
				{ID: "b2", UserID: "emp-1", BreakType: "Short Break", BreakStart: clock.Add(-2 * time.Hour), BreakEnd: &end, BreakDuration: &shortDur},
				{ID: "b3", UserID: "emp-2", BreakType: "Lunch", BreakStart: clock.Add(-10 * time.Minute)},
			}

			resp, err := svc.TodayBreaks()

			Expect(err).ToNot(HaveOccurred())
			Expect(resp.Breaks).To(HaveLen(3))
			Expect(resp.TotalsByUser).To(HaveKeyWithValue("emp-1", int64(2400)))
			Expect(resp.TotalsByUser).ToNot(HaveKey("emp-2"))
		})
	})
})
