// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package activity

import (
	"fmt"
	"os"
	"path/filepath"
	"testing"
)

// TestRecordNewestFirst verifies ordering and entry contents.
func TestRecordNewestFirst(t *testing.T) {
	log := Open(filepath.Join(t.TempDir(), "activity.json"))

	log.Record(TypeCreate, "blog", "First post")
	log.Record(TypePublish, "blog", "First post")

	entries := log.List()
	if len(entries) != 2 {
		t.Fatalf("List() returned %d entries, want 2", len(entries))
	}
	if entries[0].Type != TypePublish {
		t.Errorf("newest entry type = %q, want %q", entries[0].Type, TypePublish)
	}
	if entries[1].Type != TypeCreate {
		t.Errorf("oldest entry type = %q, want %q", entries[1].Type, TypeCreate)
	}
	if entries[0].ID == "" || entries[0].Timestamp.IsZero() {
		t.Error("entries must get an id and timestamp on Record")
	}
}

// TestCapEvictsOldest fills the log past its cap and checks that only the
// newest MaxEntries survive.
func TestCapEvictsOldest(t *testing.T) {
	log := Open(filepath.Join(t.TempDir(), "activity.json"))

	for i := 0; i < MaxEntries+10; i++ {
		log.Record(TypeUpdate, "blog", fmt.Sprintf("post %d", i))
	}

	entries := log.List()
	if len(entries) != MaxEntries {
		t.Fatalf("List() returned %d entries, want %d", len(entries), MaxEntries)
	}
	wantNewest := fmt.Sprintf("post %d", MaxEntries+9)
	if entries[0].Title != wantNewest {
		t.Errorf("newest title = %q, want %q", entries[0].Title, wantNewest)
	}
	wantOldest := fmt.Sprintf("post %d", 10)
	if entries[MaxEntries-1].Title != wantOldest {
		t.Errorf("oldest surviving title = %q, want %q", entries[MaxEntries-1].Title, wantOldest)
	}
}

// TestPersistence verifies that a reopened log sees previously recorded
// entries.
func TestPersistence(t *testing.T) {
	path := filepath.Join(t.TempDir(), "activity.json")

	log := Open(path)
	log.Record(TypeDelete, "contact", "Spam inquiry")

	reopened := Open(path)
	entries := reopened.List()
	if len(entries) != 1 {
		t.Fatalf("reopened log has %d entries, want 1", len(entries))
	}
	if entries[0].Target != "contact" || entries[0].Title != "Spam inquiry" {
		t.Errorf("unexpected entry after reopen: %+v", entries[0])
	}
}

// TestOpenCorruptFile verifies that a mangled file yields an empty log
// instead of an error.
func TestOpenCorruptFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "activity.json")
	if err := os.WriteFile(path, []byte("{not json"), 0o644); err != nil {
		t.Fatal(err)
	}

	log := Open(path)
	if entries := log.List(); len(entries) != 0 {
		t.Errorf("corrupt file produced %d entries, want 0", len(entries))
	}

	// The log must still accept new entries afterwards.
	log.Record(TypeCreate, "course", "Recovered")
	if entries := log.List(); len(entries) != 1 {
		t.Errorf("post-recovery List() = %d entries, want 1", len(entries))
	}
}

// TestClear verifies that Clear empties the log and removes the file.
func TestClear(t *testing.T) {
	path := filepath.Join(t.TempDir(), "activity.json")

	log := Open(path)
	log.Record(TypeCreate, "blog", "Post")
	log.Clear()

	if entries := log.List(); len(entries) != 0 {
		t.Errorf("List() after Clear = %d entries, want 0", len(entries))
	}
	if _, err := os.Stat(path); !os.IsNotExist(err) {
		t.Errorf("backing file still exists after Clear (stat err: %v)", err)
	}

	// Clearing an already empty log is fine.
	log.Clear()
}
