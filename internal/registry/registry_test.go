package registry

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/ferrylab/tagmind/internal/model"
)

func writeFile(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "reminders.toml")
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestLoad(t *testing.T) {
	path := writeFile(t, `
[[reminder]]
name = "Coffee Machine"
tag = "tag-coffee"
interval = 3
unit = "days"

[[reminder]]
name = "Litter Box"
tag = "tag-litter"
interval = 12
unit = "hours"

[groups]
"kitchen-door" = ["Coffee Machine", "Litter Box"]
`)
	reg, err := Load(path)
	if err != nil {
		t.Fatal(err)
	}
	if reg.Len() != 2 {
		t.Fatalf("expected 2 reminders, got %d", reg.Len())
	}

	rem, ok := reg.ByKey("coffee_machine")
	if !ok {
		t.Fatal("coffee_machine not found by key")
	}
	if rem.Interval != 3 || rem.Unit != model.UnitDays {
		t.Errorf("unexpected interval config: %d %s", rem.Interval, rem.Unit)
	}

	if _, ok := reg.ByTag("tag-litter"); !ok {
		t.Error("tag-litter not found by tag")
	}

	members, ok := reg.Group("kitchen-door")
	if !ok {
		t.Fatal("group kitchen-door not found")
	}
	if len(members) != 2 || members[0] != "Coffee Machine" || members[1] != "Litter Box" {
		t.Errorf("unexpected group members: %v", members)
	}
}

func TestLoad_Defaults(t *testing.T) {
	path := writeFile(t, `
[[reminder]]
name = "Plants"
tag = "tag-plants"
`)
	reg, err := Load(path)
	if err != nil {
		t.Fatal(err)
	}
	rem, ok := reg.ByKey("plants")
	if !ok {
		t.Fatal("plants not found")
	}
	if rem.Interval != model.DefaultInterval {
		t.Errorf("interval = %d, want default %d", rem.Interval, model.DefaultInterval)
	}
	if rem.Unit != model.DefaultUnit {
		t.Errorf("unit = %s, want default %s", rem.Unit, model.DefaultUnit)
	}
}

func TestLoad_DuplicateNameRejected(t *testing.T) {
	// Names that normalize to the same key are duplicates.
	path := writeFile(t, `
[[reminder]]
name = "Coffee Machine"
tag = "t1"

[[reminder]]
name = "coffee machine"
tag = "t2"
`)
	_, err := Load(path)
	if err == nil {
		t.Fatal("expected duplicate name error")
	}
	if !strings.Contains(err.Error(), "duplicate reminder name") {
		t.Errorf("unexpected error: %v", err)
	}
}

func TestLoad_InvalidUnitRejected(t *testing.T) {
	path := writeFile(t, `
[[reminder]]
name = "Plants"
tag = "t1"
interval = 2
unit = "weeks"
`)
	if _, err := Load(path); err == nil {
		t.Fatal("expected invalid unit error")
	}
}

func TestLoad_MissingFile(t *testing.T) {
	if _, err := Load(filepath.Join(t.TempDir(), "nope.toml")); err == nil {
		t.Fatal("expected error for missing file")
	}
}

func TestNew_SharedTagFirstBindingWins(t *testing.T) {
	reg, err := New([]*model.Reminder{
		{Name: "A", Tag: "shared", Interval: 1, Unit: model.UnitDays},
		{Name: "B", Tag: "shared", Interval: 1, Unit: model.UnitDays},
	}, nil)
	if err != nil {
		t.Fatal(err)
	}
	rem, ok := reg.ByTag("shared")
	if !ok || rem.Name != "A" {
		t.Errorf("expected first binding to win, got %+v", rem)
	}
}
