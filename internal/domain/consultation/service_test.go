package consultation

import (
	"context"
	"encoding/json"
	"testing"
	"time"
)

type mockRepo struct {
	consultations map[int64]*Consultation
	nextID        int64
}

func newMockRepo() *mockRepo {
	return &mockRepo{consultations: make(map[int64]*Consultation), nextID: 1}
}

func (m *mockRepo) Create(_ context.Context, userID int64, in *CreateInput) (int64, error) {
	id := m.nextID
	m.nextID++
	status := in.Status
	if status == "" {
		status = StatusScheduled
	}
	m.consultations[id] = &Consultation{
		ID:               id,
		UserID:           userID,
		DoctorID:         in.DoctorID,
		ConsultationDate: in.ConsultationDate,
		ConsultationTime: in.ConsultationTime,
		Reason:           in.Reason,
		Status:           status,
		Notes:            in.Notes,
		CreatedAt:        time.Now(),
		UpdatedAt:        time.Now(),
	}
	return id, nil
}

func (m *mockRepo) GetByID(_ context.Context, id, userID int64) (*Consultation, error) {
	con, ok := m.consultations[id]
	if !ok || con.UserID != userID {
		return nil, nil
	}
	cp := *con
	return &cp, nil
}

func (m *mockRepo) GetForDoctor(_ context.Context, id, doctorID int64) (*Consultation, error) {
	con, ok := m.consultations[id]
	if !ok || con.DoctorID == nil || *con.DoctorID != doctorID {
		return nil, nil
	}
	cp := *con
	name := "Patient"
	cp.PatientName = &name
	return &cp, nil
}

func (m *mockRepo) ListByUser(_ context.Context, userID int64) ([]*Consultation, error) {
	out := []*Consultation{}
	for _, con := range m.consultations {
		if con.UserID == userID {
			cp := *con
			out = append(out, &cp)
		}
	}
	return out, nil
}

func (m *mockRepo) ListByDoctor(_ context.Context, doctorID int64) ([]*Consultation, error) {
	out := []*Consultation{}
	for _, con := range m.consultations {
		if con.DoctorID != nil && *con.DoctorID == doctorID {
			cp := *con
			out = append(out, &cp)
		}
	}
	return out, nil
}

func (m *mockRepo) ListUpcoming(_ context.Context, userID int64, from string) ([]*Consultation, error) {
	out := []*Consultation{}
	for _, con := range m.consultations {
		if con.UserID == userID && con.ConsultationDate >= from && con.Status == StatusScheduled {
			cp := *con
			out = append(out, &cp)
		}
	}
	return out, nil
}

func (m *mockRepo) Update(_ context.Context, id, userID int64, upd *Update) (int64, error) {
	con, ok := m.consultations[id]
	if !ok || con.UserID != userID {
		return 0, nil
	}
	if upd.DoctorID != nil {
		con.DoctorID = upd.DoctorID
	}
	if upd.ConsultationDate != nil {
		con.ConsultationDate = *upd.ConsultationDate
	}
	if upd.ConsultationTime != nil {
		con.ConsultationTime = *upd.ConsultationTime
	}
	if upd.Reason != nil {
		con.Reason = upd.Reason
	}
	if upd.Notes != nil {
		con.Notes = upd.Notes
	}
	return 1, nil
}

func (m *mockRepo) UpdateStatus(_ context.Context, id, doctorID int64, status string) (int64, error) {
	con, ok := m.consultations[id]
	if !ok || con.DoctorID == nil || *con.DoctorID != doctorID {
		return 0, nil
	}
	con.Status = status
	return 1, nil
}

func (m *mockRepo) Delete(_ context.Context, id, userID int64) (int64, error) {
	con, ok := m.consultations[id]
	if !ok || con.UserID != userID {
		return 0, nil
	}
	delete(m.consultations, id)
	return 1, nil
}

func newTestService() *Service {
	return NewService(newMockRepo())
}

func TestCreate_DefaultsToScheduled(t *testing.T) {
	svc := newTestService()

	con, err := svc.Create(context.Background(), 5, &CreateInput{
		ConsultationDate: "2026-04-01", ConsultationTime: "10:30",
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if con.Status != StatusScheduled {
		t.Errorf("expected scheduled, got %s", con.Status)
	}
}

func TestCreate_RejectsUnknownStatus(t *testing.T) {
	svc := newTestService()

	_, err := svc.Create(context.Background(), 5, &CreateInput{
		ConsultationDate: "2026-04-01", ConsultationTime: "10:30", Status: "pending",
	})
	if err != ErrInvalidStatus {
		t.Errorf("expected ErrInvalidStatus, got %v", err)
	}
}

func TestUpcoming_OnlyScheduledFuture(t *testing.T) {
	svc := newTestService()
	ctx := context.Background()
	svc.now = func() time.Time {
		return time.Date(2026, 3, 10, 12, 0, 0, 0, time.UTC)
	}

	svc.Create(ctx, 5, &CreateInput{ConsultationDate: "2026-03-15", ConsultationTime: "09:00"})
	svc.Create(ctx, 5, &CreateInput{ConsultationDate: "2026-03-01", ConsultationTime: "09:00"})
	svc.Create(ctx, 5, &CreateInput{ConsultationDate: "2026-03-20", ConsultationTime: "09:00", Status: StatusCancelled})

	upcoming, err := svc.Upcoming(ctx, 5)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(upcoming) != 1 || upcoming[0].ConsultationDate != "2026-03-15" {
		t.Errorf("expected only the future scheduled consultation, got %+v", upcoming)
	}
}

func TestUpdateStatus_DoctorScoped(t *testing.T) {
	svc := newTestService()
	ctx := context.Background()

	doctorID := int64(9)
	con, _ := svc.Create(ctx, 5, &CreateInput{
		ConsultationDate: "2026-04-01", ConsultationTime: "10:30", DoctorID: &doctorID,
	})

	if _, err := svc.UpdateStatus(ctx, con.ID, 10, StatusCompleted); err != ErrUpdateDenied {
		t.Errorf("expected ErrUpdateDenied for unassigned doctor, got %v", err)
	}
	if _, err := svc.UpdateStatus(ctx, con.ID, doctorID, "done"); err != ErrInvalidStatus {
		t.Errorf("expected ErrInvalidStatus, got %v", err)
	}

	updated, err := svc.UpdateStatus(ctx, con.ID, doctorID, StatusCompleted)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if updated.Status != StatusCompleted {
		t.Errorf("status not updated: %s", updated.Status)
	}
	if updated.PatientName == nil {
		t.Error("expected patient name joined into doctor view")
	}
}

func TestUpdate_OwnerScoped(t *testing.T) {
	svc := newTestService()
	ctx := context.Background()
	con, _ := svc.Create(ctx, 5, &CreateInput{ConsultationDate: "2026-04-01", ConsultationTime: "10:30"})

	reason := "follow-up"
	if _, err := svc.Update(ctx, con.ID, 6, &Update{Reason: &reason}); err != ErrUpdateDenied {
		t.Errorf("expected ErrUpdateDenied for other owner, got %v", err)
	}
	if _, err := svc.Update(ctx, con.ID, 5, &Update{}); err != ErrNoFields {
		t.Errorf("expected ErrNoFields, got %v", err)
	}

	updated, err := svc.Update(ctx, con.ID, 5, &Update{Reason: &reason})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if updated.Reason == nil || *updated.Reason != "follow-up" {
		t.Errorf("reason not updated: %v", updated.Reason)
	}
}

func TestCreate_WithoutDoctor(t *testing.T) {
	svc := newTestService()
	ctx := context.Background()

	con, err := svc.Create(ctx, 5, &CreateInput{ConsultationDate: "2026-04-01", ConsultationTime: "10:30"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if con.DoctorID != nil {
		t.Errorf("expected unassigned booking, got doctor %d", *con.DoctorID)
	}

	got, err := svc.Get(ctx, con.ID, 5)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got.DoctorID != nil || got.DoctorName != nil {
		t.Errorf("expected nil doctor fields, got %+v", got)
	}
}

func TestUpdate_PatientCannotChangeStatus(t *testing.T) {
	svc := newTestService()
	ctx := context.Background()
	con, _ := svc.Create(ctx, 5, &CreateInput{ConsultationDate: "2026-04-01", ConsultationTime: "10:30"})

	// A status key in the patient payload does not bind to anything.
	var upd Update
	if err := json.Unmarshal([]byte(`{"status":"completed"}`), &upd); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if _, err := svc.Update(ctx, con.ID, 5, &upd); err != ErrNoFields {
		t.Errorf("expected ErrNoFields, got %v", err)
	}

	reason := "second opinion"
	if err := json.Unmarshal([]byte(`{"status":"completed","reason":"second opinion"}`), &upd); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	updated, err := svc.Update(ctx, con.ID, 5, &upd)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if updated.Status != StatusScheduled {
		t.Errorf("patient update changed status to %s", updated.Status)
	}
	if updated.Reason == nil || *updated.Reason != reason {
		t.Errorf("reason not updated: %v", updated.Reason)
	}
}

func TestDelete_OwnerScoped(t *testing.T) {
	svc := newTestService()
	ctx := context.Background()
	con, _ := svc.Create(ctx, 5, &CreateInput{ConsultationDate: "2026-04-01", ConsultationTime: "10:30"})

	if err := svc.Delete(ctx, con.ID, 6); err != ErrDeleteDenied {
		t.Errorf("expected ErrDeleteDenied for other owner, got %v", err)
	}
	if err := svc.Delete(ctx, con.ID, 5); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}
