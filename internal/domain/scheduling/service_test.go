package scheduling

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"

	"github.com/frontdesk/frontdesk/internal/domain/doctor"
	"github.com/frontdesk/frontdesk/internal/platform/httperr"
)

// -- Mock Repositories --

type mockRepo struct {
	appts map[uuid.UUID]*Appointment
}

func newMockRepo() *mockRepo {
	return &mockRepo{appts: make(map[uuid.UUID]*Appointment)}
}

func (m *mockRepo) hasBookedConflict(a *Appointment) bool {
	if a.Status != StatusBooked {
		return false
	}
	for _, other := range m.appts {
		if other.ID != a.ID && other.Status == StatusBooked &&
			other.DoctorID == a.DoctorID && other.Date == a.Date && other.Time == a.Time {
			return true
		}
	}
	return false
}

func (m *mockRepo) Create(_ context.Context, a *Appointment) error {
	a.ID = uuid.New()
	if m.hasBookedConflict(a) {
		return httperr.Conflictf("doctor %s already has a booking at %s %s", a.DoctorID, a.Date, a.Time)
	}
	a.CreatedAt = time.Now()
	a.UpdatedAt = time.Now()
	copied := *a
	m.appts[a.ID] = &copied
	return nil
}

func (m *mockRepo) GetByID(_ context.Context, id uuid.UUID) (*Appointment, error) {
	a, ok := m.appts[id]
	if !ok {
		return nil, httperr.NotFoundf("appointment %s not found", id)
	}
	copied := *a
	return &copied, nil
}

func (m *mockRepo) Update(_ context.Context, a *Appointment) error {
	if _, ok := m.appts[a.ID]; !ok {
		return httperr.NotFoundf("appointment %s not found", a.ID)
	}
	if m.hasBookedConflict(a) {
		return httperr.Conflictf("doctor %s already has a booking at %s %s", a.DoctorID, a.Date, a.Time)
	}
	copied := *a
	m.appts[a.ID] = &copied
	return nil
}

func (m *mockRepo) Delete(_ context.Context, id uuid.UUID) error {
	if _, ok := m.appts[id]; !ok {
		return httperr.NotFoundf("appointment %s not found", id)
	}
	delete(m.appts, id)
	return nil
}

func (m *mockRepo) List(_ context.Context, date string) ([]*Appointment, error) {
	var items []*Appointment
	for _, a := range m.appts {
		if date != "" && a.Date != date {
			continue
		}
		copied := *a
		items = append(items, &copied)
	}
	// repo contract: ordered by (date, time)
	for i := 0; i < len(items); i++ {
		for j := i + 1; j < len(items); j++ {
			if items[j].Date < items[i].Date ||
				(items[j].Date == items[i].Date && items[j].Time < items[i].Time) {
				items[i], items[j] = items[j], items[i]
			}
		}
	}
	return items, nil
}

func (m *mockRepo) BookedTimes(_ context.Context, doctorID uuid.UUID, date string) ([]string, error) {
	var times []string
	for _, a := range m.appts {
		if a.DoctorID == doctorID && a.Date == date && a.Status == StatusBooked {
			times = append(times, a.Time)
		}
	}
	return times, nil
}

type mockDirectory struct {
	doctors map[uuid.UUID]*doctor.Doctor
}

func newMockDirectory() *mockDirectory {
	return &mockDirectory{doctors: make(map[uuid.UUID]*doctor.Doctor)}
}

func (m *mockDirectory) add() uuid.UUID {
	id := uuid.New()
	m.doctors[id] = &doctor.Doctor{ID: id, Name: "Dr. Smith", Status: doctor.StatusAvailable}
	return id
}

func (m *mockDirectory) GetByID(_ context.Context, id uuid.UUID) (*doctor.Doctor, error) {
	d, ok := m.doctors[id]
	if !ok {
		return nil, httperr.NotFoundf("doctor %s not found", id)
	}
	return d, nil
}

func newTestService() (*Service, *mockRepo, *mockDirectory) {
	repo := newMockRepo()
	dir := newMockDirectory()
	return NewService(repo, dir), repo, dir
}

// -- Tests --

func TestCreateAppointment(t *testing.T) {
	svc, _, dir := newTestService()
	docID := dir.add()

	a, err := svc.Create(context.Background(), CreateInput{
		PatientName: "Alice", DoctorID: docID, Date: "2024-01-15", Time: "09:00",
	})
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	if a.Status != StatusBooked {
		t.Errorf("expected status Booked, got %q", a.Status)
	}
	if a.ID == uuid.Nil {
		t.Error("expected id to be assigned")
	}
}

func TestCreateAppointment_UnknownDoctor(t *testing.T) {
	svc, repo, _ := newTestService()
	_, err := svc.Create(context.Background(), CreateInput{
		PatientName: "Alice", DoctorID: uuid.New(), Date: "2024-01-15", Time: "09:00",
	})
	if !httperr.IsNotFound(err) {
		t.Fatalf("expected not found, got %v", err)
	}
	if len(repo.appts) != 0 {
		t.Error("expected no record created on failed booking")
	}
}

func TestCreateAppointment_Conflict(t *testing.T) {
	svc, _, dir := newTestService()
	docID := dir.add()
	in := CreateInput{PatientName: "Alice", DoctorID: docID, Date: "2024-01-15", Time: "09:00"}

	if _, err := svc.Create(context.Background(), in); err != nil {
		t.Fatalf("first Create: %v", err)
	}
	in.PatientName = "Bob"
	if _, err := svc.Create(context.Background(), in); !httperr.IsConflict(err) {
		t.Fatalf("expected conflict, got %v", err)
	}

	slots, err := svc.AvailableSlots(context.Background(), docID, "2024-01-15")
	if err != nil {
		t.Fatalf("AvailableSlots: %v", err)
	}
	for _, s := range slots {
		if s == "09:00" {
			t.Error("booked slot 09:00 still available")
		}
	}
}

func TestCreateAppointment_Validation(t *testing.T) {
	svc, _, dir := newTestService()
	docID := dir.add()

	cases := []struct {
		name string
		in   CreateInput
	}{
		{"empty name", CreateInput{DoctorID: docID, Date: "2024-01-15", Time: "09:00"}},
		{"missing doctor", CreateInput{PatientName: "x", Date: "2024-01-15", Time: "09:00"}},
		{"bad date", CreateInput{PatientName: "x", DoctorID: docID, Date: "15/01/2024", Time: "09:00"}},
		{"bad time", CreateInput{PatientName: "x", DoctorID: docID, Date: "2024-01-15", Time: "9am"}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if _, err := svc.Create(context.Background(), tc.in); !httperr.IsValidation(err) {
				t.Errorf("expected validation error, got %v", err)
			}
		})
	}
}

func TestAvailableSlots_FullDay(t *testing.T) {
	svc, _, dir := newTestService()
	docID := dir.add()

	slots, err := svc.AvailableSlots(context.Background(), docID, "2024-01-15")
	if err != nil {
		t.Fatalf("AvailableSlots: %v", err)
	}
	if len(slots) != 16 {
		t.Fatalf("expected 16 slots, got %d", len(slots))
	}
}

func TestAvailableSlots_MinusBookings(t *testing.T) {
	svc, _, dir := newTestService()
	docID := dir.add()

	for _, at := range []string{"09:00", "10:30", "16:30"} {
		if _, err := svc.Create(context.Background(), CreateInput{
			PatientName: "p", DoctorID: docID, Date: "2024-01-15", Time: at,
		}); err != nil {
			t.Fatalf("Create %s: %v", at, err)
		}
	}

	slots, err := svc.AvailableSlots(context.Background(), docID, "2024-01-15")
	if err != nil {
		t.Fatalf("AvailableSlots: %v", err)
	}
	if len(slots) != 13 {
		t.Fatalf("expected 13 slots, got %d", len(slots))
	}
}

func TestAvailableSlots_CanceledDoesNotBlock(t *testing.T) {
	svc, _, dir := newTestService()
	docID := dir.add()

	a, err := svc.Create(context.Background(), CreateInput{
		PatientName: "p", DoctorID: docID, Date: "2024-01-15", Time: "09:00",
	})
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	if _, err := svc.SetStatus(context.Background(), a.ID, StatusCanceled); err != nil {
		t.Fatalf("SetStatus: %v", err)
	}

	slots, err := svc.AvailableSlots(context.Background(), docID, "2024-01-15")
	if err != nil {
		t.Fatalf("AvailableSlots: %v", err)
	}
	if len(slots) != 16 {
		t.Errorf("expected canceled booking to free the slot, got %d slots", len(slots))
	}

	// The slot can be booked again.
	if _, err := svc.Create(context.Background(), CreateInput{
		PatientName: "q", DoctorID: docID, Date: "2024-01-15", Time: "09:00",
	}); err != nil {
		t.Errorf("rebooking freed slot: %v", err)
	}
}

func TestAvailableSlots_UnknownDoctor(t *testing.T) {
	svc, _, _ := newTestService()
	if _, err := svc.AvailableSlots(context.Background(), uuid.New(), "2024-01-15"); !httperr.IsNotFound(err) {
		t.Errorf("expected not found, got %v", err)
	}
}

func TestAvailableSlots_Idempotent(t *testing.T) {
	svc, _, dir := newTestService()
	docID := dir.add()
	svc.Create(context.Background(), CreateInput{
		PatientName: "p", DoctorID: docID, Date: "2024-01-15", Time: "11:00",
	})

	first, err := svc.AvailableSlots(context.Background(), docID, "2024-01-15")
	if err != nil {
		t.Fatalf("AvailableSlots: %v", err)
	}
	second, err := svc.AvailableSlots(context.Background(), docID, "2024-01-15")
	if err != nil {
		t.Fatalf("AvailableSlots: %v", err)
	}
	if len(first) != len(second) {
		t.Fatalf("results differ in length: %d vs %d", len(first), len(second))
	}
	for i := range first {
		if first[i] != second[i] {
			t.Errorf("slot %d differs: %s vs %s", i, first[i], second[i])
		}
	}
}

func TestListAppointments_DateFilterAndOrder(t *testing.T) {
	svc, _, dir := newTestService()
	docID := dir.add()

	svc.Create(context.Background(), CreateInput{PatientName: "c", DoctorID: docID, Date: "2024-01-16", Time: "09:00"})
	svc.Create(context.Background(), CreateInput{PatientName: "b", DoctorID: docID, Date: "2024-01-15", Time: "10:00"})
	svc.Create(context.Background(), CreateInput{PatientName: "a", DoctorID: docID, Date: "2024-01-15", Time: "09:00"})

	all, err := svc.List(context.Background(), "")
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if len(all) != 3 {
		t.Fatalf("expected 3 appointments, got %d", len(all))
	}
	wantNames := []string{"a", "b", "c"}
	for i, want := range wantNames {
		if all[i].PatientName != want {
			t.Errorf("position %d: expected %q, got %q", i, want, all[i].PatientName)
		}
	}

	day, err := svc.List(context.Background(), "2024-01-15")
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if len(day) != 2 {
		t.Fatalf("expected 2 appointments on 2024-01-15, got %d", len(day))
	}
}

func TestUpdateAppointment_PartialMerge(t *testing.T) {
	svc, _, dir := newTestService()
	docID := dir.add()
	a, err := svc.Create(context.Background(), CreateInput{
		PatientName: "Alice", DoctorID: docID, Date: "2024-01-15", Time: "09:00",
	})
	if err != nil {
		t.Fatalf("Create: %v", err)
	}

	newTime := "09:30"
	updated, err := svc.Update(context.Background(), a.ID, UpdateInput{Time: &newTime})
	if err != nil {
		t.Fatalf("Update: %v", err)
	}
	if updated.Time != "09:30" {
		t.Errorf("expected time 09:30, got %q", updated.Time)
	}
	if updated.PatientName != "Alice" || updated.Date != "2024-01-15" {
		t.Error("expected other fields untouched")
	}
}

func TestUpdateAppointment_MoveOntoBookedSlot(t *testing.T) {
	svc, _, dir := newTestService()
	docID := dir.add()
	svc.Create(context.Background(), CreateInput{
		PatientName: "Alice", DoctorID: docID, Date: "2024-01-15", Time: "09:00",
	})
	b, err := svc.Create(context.Background(), CreateInput{
		PatientName: "Bob", DoctorID: docID, Date: "2024-01-15", Time: "09:30",
	})
	if err != nil {
		t.Fatalf("Create: %v", err)
	}

	taken := "09:00"
	if _, err := svc.Update(context.Background(), b.ID, UpdateInput{Time: &taken}); !httperr.IsConflict(err) {
		t.Errorf("expected conflict, got %v", err)
	}
}

func TestSetAppointmentStatus_AnyTransition(t *testing.T) {
	svc, _, dir := newTestService()
	docID := dir.add()
	a, err := svc.Create(context.Background(), CreateInput{
		PatientName: "Alice", DoctorID: docID, Date: "2024-01-15", Time: "09:00",
	})
	if err != nil {
		t.Fatalf("Create: %v", err)
	}

	for _, status := range []string{StatusCompleted, StatusBooked, StatusCanceled, StatusBooked} {
		if _, err := svc.SetStatus(context.Background(), a.ID, status); err != nil {
			t.Errorf("SetStatus(%q): %v", status, err)
		}
	}
	if _, err := svc.SetStatus(context.Background(), a.ID, "Rescheduled"); !httperr.IsValidation(err) {
		t.Errorf("expected validation error, got %v", err)
	}
}

func TestDeleteAppointment_NotFoundWhenRepeated(t *testing.T) {
	svc, _, dir := newTestService()
	docID := dir.add()
	a, err := svc.Create(context.Background(), CreateInput{
		PatientName: "Alice", DoctorID: docID, Date: "2024-01-15", Time: "09:00",
	})
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	if err := svc.Delete(context.Background(), a.ID); err != nil {
		t.Fatalf("Delete: %v", err)
	}
	if err := svc.Delete(context.Background(), a.ID); !httperr.IsNotFound(err) {
		t.Errorf("expected not found, got %v", err)
	}
}
