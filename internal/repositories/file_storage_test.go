package repositories

import (
	"context"
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/10-menachi/AirBnB-clone-v3/internal/models"
)

var testNow = time.Date(2017, 3, 25, 2, 17, 6, 0, time.UTC)

func TestFileStorageSnapshotSurvivesReopen(t *testing.T) {
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "file.json")
	s, err := NewFileStorage(ctx, path, nil)
	if err != nil {
		t.Fatalf("NewFileStorage returned error: %v", err)
	}
	user := &models.User{Email: "a@b.c", FirstName: "Betty"}
	if err := user.SetPassword("pwd"); err != nil {
		t.Fatal(err)
	}
	state := &models.State{Name: "California"}
	save(t, s, state, user)

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("snapshot not written: %v", err)
	}
	var raw map[string]map[string]any
	if err := json.Unmarshal(data, &raw); err != nil {
		t.Fatalf("snapshot is not a JSON object: %v", err)
	}
	entry, ok := raw["State."+state.ID]
	if !ok {
		t.Fatalf("missing key State.%s in %s", state.ID, data)
	}
	if entry["__class__"] != "State" || entry["name"] != "California" {
		t.Fatalf("unexpected entry %v", entry)
	}
	if pw, _ := raw["User."+user.ID]["password"].(string); !strings.HasPrefix(pw, "$2") {
		t.Fatalf("expected a bcrypt hash in the snapshot, got %q", pw)
	}

	reopened, err := NewFileStorage(ctx, path, nil)
	if err != nil {
		t.Fatalf("reopen returned error: %v", err)
	}
	sess := reopened.Session()
	defer sess.Close()
	got, err := sess.Get(ctx, models.KindUser, user.ID)
	if err != nil {
		t.Fatalf("Get after reopen returned error: %v", err)
	}
	if u := got.(*models.User); u.FirstName != "Betty" || !u.CheckPassword("pwd") {
		t.Fatalf("user did not survive reopen: %+v", u)
	}
}

func TestFileStorageReadsAreCopies(t *testing.T) {
	ctx := context.Background()
	s := openFile(t)
	state := &models.State{Name: "California"}
	save(t, s, state)

	sess := s.Session()
	defer sess.Close()
	got, _ := sess.Get(ctx, models.KindState, state.ID)
	got.(*models.State).Name = "changed without save"

	again, _ := s.Session().Get(ctx, models.KindState, state.ID)
	if again.(*models.State).Name != "California" {
		t.Fatalf("committed state mutated without Save: %q", again.(*models.State).Name)
	}
}

func TestFileStorageWriteLeavesOnlySnapshot(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "file.json")
	s, err := NewFileStorage(context.Background(), path, nil)
	if err != nil {
		t.Fatalf("NewFileStorage returned error: %v", err)
	}
	for _, name := range []string{"Nevada", "Oregon", "Utah"} {
		save(t, s, &models.State{Name: name})
	}
	entries, err := os.ReadDir(dir)
	if err != nil {
		t.Fatal(err)
	}
	if len(entries) != 1 || entries[0].Name() != "file.json" {
		var names []string
		for _, e := range entries {
			names = append(names, e.Name())
		}
		t.Fatalf("expected only file.json, got %v", names)
	}
	info, err := os.Stat(path)
	if err != nil {
		t.Fatal(err)
	}
	if perm := info.Mode().Perm(); perm != 0o600 {
		t.Fatalf("expected mode 0600, got %o", perm)
	}
}

func TestFileStorageRejectsCorruptSnapshot(t *testing.T) {
	path := filepath.Join(t.TempDir(), "file.json")
	if err := os.WriteFile(path, []byte("{not json"), 0o600); err != nil {
		t.Fatal(err)
	}
	if _, err := NewFileStorage(context.Background(), path, nil); err == nil {
		t.Fatal("expected an error for a corrupt snapshot")
	}
}

func TestFileStorageFailedWriteKeepsState(t *testing.T) {
	ctx := context.Background()
	dir := t.TempDir()
	s, err := NewFileStorage(ctx, filepath.Join(dir, "missing-dir", "file.json"), nil)
	if err != nil {
		t.Fatalf("NewFileStorage returned error: %v", err)
	}
	sess := s.Session()
	defer sess.Close()
	sess.New(&models.State{Name: "Lost"})
	if err := sess.Save(ctx); !errors.Is(err, ErrPersistence) {
		t.Fatalf("expected ErrPersistence, got %v", err)
	}
	if n, _ := sess.Count(ctx, ""); n != 0 {
		t.Fatalf("failed flush left %d records in memory", n)
	}
}

func TestApplyOpsOrdering(t *testing.T) {
	state := &models.State{Name: "S"}
	state.Touch(testNow)
	city := &models.City{StateID: state.ID, Name: "C"}
	city.Touch(testNow)

	snap := map[string]models.Record{}
	ops := []op{{kind: opPut, rec: state}, {kind: opPut, rec: city}, {kind: opDelete, rec: state}}
	if err := applyOps(snap, ops); err != nil {
		t.Fatalf("applyOps returned error: %v", err)
	}
	if len(snap) != 0 {
		t.Fatalf("expected the city to cascade with its state, got %v", snap)
	}
}
