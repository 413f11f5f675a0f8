package healthrecord

import (
	"context"
	"testing"
	"time"
)

type mockRepo struct {
	records map[int64]*Record
	nextID  int64
}

func newMockRepo() *mockRepo {
	return &mockRepo{records: make(map[int64]*Record), nextID: 1}
}

func (m *mockRepo) Create(_ context.Context, userID int64, in *CreateInput) (int64, error) {
	id := m.nextID
	m.nextID++
	m.records[id] = &Record{
		ID:         id,
		UserID:     userID,
		RecordDate: in.RecordDate,
		Symptoms:   in.Symptoms,
		Diagnosis:  in.Diagnosis,
		Treatment:  in.Treatment,
		Notes:      in.Notes,
		CreatedAt:  time.Now(),
		UpdatedAt:  time.Now(),
	}
	return id, nil
}

func (m *mockRepo) GetByID(_ context.Context, id, userID int64) (*Record, error) {
	rec, ok := m.records[id]
	if !ok || rec.UserID != userID {
		return nil, nil
	}
	cp := *rec
	return &cp, nil
}

func (m *mockRepo) ListByUser(_ context.Context, userID int64) ([]*Record, error) {
	out := []*Record{}
	for _, rec := range m.records {
		if rec.UserID == userID {
			cp := *rec
			out = append(out, &cp)
		}
	}
	return out, nil
}

func (m *mockRepo) Update(_ context.Context, id, userID int64, upd *Update) (int64, error) {
	rec, ok := m.records[id]
	if !ok || rec.UserID != userID {
		return 0, nil
	}
	if upd.RecordDate != nil {
		rec.RecordDate = *upd.RecordDate
	}
	if upd.Symptoms != nil {
		rec.Symptoms = upd.Symptoms
	}
	if upd.Diagnosis != nil {
		rec.Diagnosis = upd.Diagnosis
	}
	if upd.Treatment != nil {
		rec.Treatment = upd.Treatment
	}
	if upd.Notes != nil {
		rec.Notes = upd.Notes
	}
	return 1, nil
}

func (m *mockRepo) Delete(_ context.Context, id, userID int64) (int64, error) {
	rec, ok := m.records[id]
	if !ok || rec.UserID != userID {
		return 0, nil
	}
	delete(m.records, id)
	return 1, nil
}

func TestCreateAndGet(t *testing.T) {
	svc := NewService(newMockRepo())
	ctx := context.Background()

	symptoms := "headache"
	rec, err := svc.Create(ctx, 7, &CreateInput{RecordDate: "2026-01-15", Symptoms: &symptoms})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if rec.UserID != 7 {
		t.Errorf("expected owner 7, got %d", rec.UserID)
	}

	got, err := svc.Get(ctx, rec.ID, 7)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got.Symptoms == nil || *got.Symptoms != "headache" {
		t.Errorf("unexpected symptoms: %v", got.Symptoms)
	}
}

func TestGet_OtherOwnerHidden(t *testing.T) {
	svc := NewService(newMockRepo())
	ctx := context.Background()

	rec, _ := svc.Create(ctx, 7, &CreateInput{RecordDate: "2026-01-15"})

	_, err := svc.Get(ctx, rec.ID, 8)
	if err != ErrNotFound {
		t.Errorf("expected ErrNotFound for other owner, got %v", err)
	}
}

func TestUpdate_NoFields(t *testing.T) {
	svc := NewService(newMockRepo())
	ctx := context.Background()
	rec, _ := svc.Create(ctx, 7, &CreateInput{RecordDate: "2026-01-15"})

	_, err := svc.Update(ctx, rec.ID, 7, &Update{})
	if err != ErrNoFields {
		t.Errorf("expected ErrNoFields, got %v", err)
	}
}

func TestUpdate_OwnerScoped(t *testing.T) {
	svc := NewService(newMockRepo())
	ctx := context.Background()
	rec, _ := svc.Create(ctx, 7, &CreateInput{RecordDate: "2026-01-15"})

	diag := "migraine"
	if _, err := svc.Update(ctx, rec.ID, 8, &Update{Diagnosis: &diag}); err != ErrUpdateDenied {
		t.Errorf("expected ErrUpdateDenied for other owner, got %v", err)
	}

	updated, err := svc.Update(ctx, rec.ID, 7, &Update{Diagnosis: &diag})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if updated.Diagnosis == nil || *updated.Diagnosis != "migraine" {
		t.Errorf("diagnosis not updated: %v", updated.Diagnosis)
	}
}

func TestDelete_OwnerScoped(t *testing.T) {
	svc := NewService(newMockRepo())
	ctx := context.Background()
	rec, _ := svc.Create(ctx, 7, &CreateInput{RecordDate: "2026-01-15"})

	if err := svc.Delete(ctx, rec.ID, 8); err != ErrDeleteDenied {
		t.Errorf("expected ErrDeleteDenied for other owner, got %v", err)
	}
	if err := svc.Delete(ctx, rec.ID, 7); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if _, err := svc.Get(ctx, rec.ID, 7); err != ErrNotFound {
		t.Errorf("expected ErrNotFound after delete, got %v", err)
	}
}
