package core

import (
	"errors"
	"testing"
)

func draftMapping() Mapping {
	return Mapping{
		{Key: "Title", Value: TextValue("Draft")},
		{Key: "Author", Value: TextValue("J. Doe")},
		{Key: "Subject", Value: TextValue("Quarterly report")},
	}
}

func TestReconcile(t *testing.T) {
	t.Run("Empty Edit List Returns Original", func(t *testing.T) {
		original := draftMapping()

		result, err := Reconcile(original, nil)
		if err != nil {
			t.Fatalf("Reconcile failed: %v", err)
		}

		if len(result) != len(original) {
			t.Fatalf("Expected %d entries, got %d", len(original), len(result))
		}
		for i := range original {
			if result[i] != original[i] {
				t.Errorf("Entry %d changed: %+v != %+v", i, result[i], original[i])
			}
		}
	})

	t.Run("Delete Removes Only That Key", func(t *testing.T) {
		result, err := Reconcile(draftMapping(), []EditRow{
			{Key: "Author", Value: "ignored on delete", Delete: true},
		})
		if err != nil {
			t.Fatalf("Reconcile failed: %v", err)
		}

		if result.Has("Author") {
			t.Error("Author should be gone")
		}
		if v, _ := result.Get("Title"); v.Text != "Draft" {
			t.Errorf("Title changed: %q", v.Text)
		}
		if v, _ := result.Get("Subject"); v.Text != "Quarterly report" {
			t.Errorf("Subject changed: %q", v.Text)
		}
	})

	t.Run("New Rows Append In Entry Order", func(t *testing.T) {
		result, err := Reconcile(draftMapping(), []EditRow{
			{Key: "Keywords", Value: "go,pdf", New: true},
			{Key: "Producer", Value: "pdfmeta", New: true},
		})
		if err != nil {
			t.Fatalf("Reconcile failed: %v", err)
		}

		keys := result.Keys()
		if keys[len(keys)-2] != "Keywords" || keys[len(keys)-1] != "Producer" {
			t.Errorf("Additions not appended in order: %v", keys)
		}
	})

	t.Run("Unfilled New Row Is Dropped Silently", func(t *testing.T) {
		original := draftMapping()
		result, err := Reconcile(original, []EditRow{
			{Key: "", Value: "typed a value but no key", New: true},
		})
		if err != nil {
			t.Fatalf("Reconcile failed: %v", err)
		}
		if len(result) != len(original) {
			t.Errorf("Placeholder row changed the mapping: %v", result.Keys())
		}
	})

	t.Run("Duplicate New Keys Fail", func(t *testing.T) {
		_, err := Reconcile(draftMapping(), []EditRow{
			{Key: "Producer", Value: "a", New: true},
			{Key: "Producer", Value: "b", New: true},
		})

		var dup *DuplicateKeyError
		if !errors.As(err, &dup) {
			t.Fatalf("Expected DuplicateKeyError, got %v", err)
		}
		if dup.Key != "Producer" {
			t.Errorf("Wrong key reported: %q", dup.Key)
		}
	})

	t.Run("New Row Colliding With Original Fails", func(t *testing.T) {
		_, err := Reconcile(draftMapping(), []EditRow{
			{Key: "Title", Value: "second title", New: true},
		})

		var dup *DuplicateKeyError
		if !errors.As(err, &dup) {
			t.Fatalf("Expected DuplicateKeyError, got %v", err)
		}
	})

	t.Run("Rename Keeps Position", func(t *testing.T) {
		result, err := Reconcile(draftMapping(), []EditRow{
			{OriginalKey: "Author", Key: "Creator", Value: "J. Doe"},
		})
		if err != nil {
			t.Fatalf("Reconcile failed: %v", err)
		}

		keys := result.Keys()
		if keys[1] != "Creator" {
			t.Errorf("Renamed key moved: %v", keys)
		}
		if result.Has("Author") {
			t.Error("Old key survived the rename")
		}
	})

	t.Run("Rename Onto Surviving Key Fails", func(t *testing.T) {
		_, err := Reconcile(draftMapping(), []EditRow{
			{OriginalKey: "Author", Key: "Title", Value: "J. Doe"},
		})

		var dup *DuplicateKeyError
		if !errors.As(err, &dup) {
			t.Fatalf("Expected DuplicateKeyError, got %v", err)
		}
	})

	t.Run("Value Edit Keeps Order", func(t *testing.T) {
		result, err := Reconcile(draftMapping(), []EditRow{
			{Key: "Title", Value: "Final"},
		})
		if err != nil {
			t.Fatalf("Reconcile failed: %v", err)
		}

		if result[0].Key != "Title" || result[0].Value.Text != "Final" {
			t.Errorf("In-place edit misplaced: %+v", result[0])
		}
	})

	t.Run("Delete Then Re-Add Same Key", func(t *testing.T) {
		result, err := Reconcile(draftMapping(), []EditRow{
			{Key: "Author", Delete: true},
			{Key: "Author", Value: "A. Nother", New: true},
		})
		if err != nil {
			t.Fatalf("Reconcile failed: %v", err)
		}

		keys := result.Keys()
		if keys[len(keys)-1] != "Author" {
			t.Errorf("Re-added key should append at the end: %v", keys)
		}
		if v, _ := result.Get("Author"); v.Text != "A. Nother" {
			t.Errorf("Wrong value after re-add: %q", v.Text)
		}
	})

	t.Run("Row For Absent Key Becomes Addition", func(t *testing.T) {
		result, err := Reconcile(draftMapping(), []EditRow{
			{Key: "Keywords", Value: "go,pdf"},
		})
		if err != nil {
			t.Fatalf("Reconcile failed: %v", err)
		}
		if keys := result.Keys(); keys[len(keys)-1] != "Keywords" {
			t.Errorf("Expected Keywords appended, got %v", keys)
		}
	})

	t.Run("Deleting Absent Key Is A No-Op", func(t *testing.T) {
		original := draftMapping()
		result, err := Reconcile(original, []EditRow{
			{Key: "Keywords", Delete: true},
		})
		if err != nil {
			t.Fatalf("Reconcile failed: %v", err)
		}
		if !result.Equal(original) {
			t.Errorf("Mapping changed: %v", result.Keys())
		}
	})

	t.Run("Empty Key On Existing Row Fails", func(t *testing.T) {
		_, err := Reconcile(draftMapping(), []EditRow{
			{OriginalKey: "Title", Key: "", Value: "Final"},
		})
		if !errors.Is(err, ErrEmptyKey) {
			t.Fatalf("Expected ErrEmptyKey, got %v", err)
		}
	})

	t.Run("Inputs Are Not Mutated", func(t *testing.T) {
		original := draftMapping()
		edits := []EditRow{
			{Key: "Title", Value: "Final"},
			{Key: "Author", Delete: true},
		}

		if _, err := Reconcile(original, edits); err != nil {
			t.Fatalf("Reconcile failed: %v", err)
		}

		if !original.Equal(draftMapping()) {
			t.Error("Original mapping was mutated")
		}
		if edits[0].Value != "Final" || !edits[1].Delete {
			t.Error("Edit rows were mutated")
		}
	})
}
