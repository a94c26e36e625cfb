package registry

import (
	"errors"
	"testing"

	"github.com/vovakirdan/tui-maze/internal/maze"
)

func TestRegisterAndCreate(t *testing.T) {
	Register("test-box", "Test Box", func() *maze.Layout {
		return &maze.Layout{Name: "test-box", Rows: []string{"###", "#P#", "###"}}
	})

	if !Exists("test-box") {
		t.Fatal("Exists(test-box) = false after Register")
	}

	l, err := Create("test-box")
	if err != nil {
		t.Fatalf("Create() error = %v", err)
	}
	if l.Name != "test-box" || len(l.Rows) != 3 {
		t.Errorf("Create() = %+v, expected test-box with 3 rows", l)
	}

	found := false
	for _, info := range List() {
		if info.Name == "test-box" {
			found = info.Title == "Test Box"
		}
	}
	if !found {
		t.Error("List() does not include test-box with its title")
	}
}

func TestCreateUnknown(t *testing.T) {
	if _, err := Create("no-such-maze"); !errors.Is(err, ErrUnknownLayout) {
		t.Errorf("Create() error = %v, expected ErrUnknownLayout", err)
	}
}

func TestDuplicateRegisterPanics(t *testing.T) {
	f := func() *maze.Layout { return &maze.Layout{} }
	Register("dup", "Dup", f)

	defer func() {
		if recover() == nil {
			t.Error("second Register did not panic")
		}
	}()
	Register("dup", "Dup", f)
}
