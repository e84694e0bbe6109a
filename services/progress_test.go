// services/progress_test.go
package services

import "testing"

func TestProgressSaveIsUpsert(t *testing.T) {
	svc := NewProgressService(newTestDB(t))

	if err := svc.Save(42, "full_name", `{"full_name":""}`, "someuser"); err != nil {
		t.Fatalf("first save: %v", err)
	}
	if err := svc.Save(42, "email", `{"full_name":"A B C"}`, "someuser"); err != nil {
		t.Fatalf("second save: %v", err)
	}

	row, err := svc.Load(42)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if row == nil {
		t.Fatal("load returned nil after save")
	}
	if row.CurrentStage != "email" {
		t.Errorf("stage = %q, want the latest write", row.CurrentStage)
	}
	if row.UserData != `{"full_name":"A B C"}` {
		t.Errorf("user data = %q, want the latest write", row.UserData)
	}

	var count int64
	if err := svc.DB.Raw("SELECT COUNT(*) FROM registration_progresses WHERE user_id = ?", 42).Scan(&count).Error; err != nil {
		t.Fatalf("count rows: %v", err)
	}
	if count != 1 {
		t.Fatalf("checkpoint rows = %d, want 1", count)
	}
}

func TestProgressLoadMissing(t *testing.T) {
	svc := NewProgressService(newTestDB(t))

	row, err := svc.Load(999)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if row != nil {
		t.Fatal("load of a missing checkpoint returned a row")
	}
}

func TestProgressDelete(t *testing.T) {
	svc := NewProgressService(newTestDB(t))

	if err := svc.Save(42, "phone", "{}", ""); err != nil {
		t.Fatalf("save: %v", err)
	}
	if err := svc.Delete(42); err != nil {
		t.Fatalf("delete: %v", err)
	}
	row, err := svc.Load(42)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if row != nil {
		t.Fatal("checkpoint still present after delete")
	}
	// Deleting again is a no-op, not an error.
	if err := svc.Delete(42); err != nil {
		t.Fatalf("second delete: %v", err)
	}
}
