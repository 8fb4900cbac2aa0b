package fs_test

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"pgregory.net/rapid"

	"github.com/aretw0/notes/pkg/adapters/fs"
	"github.com/aretw0/notes/pkg/core"
)

// TestStoreModel drives random add/remove/read/list sequences against a real
// store file and compares every result with a plain slice model.
func TestStoreModel(t *testing.T) {
	rapid.Check(t, func(rt *rapid.T) {
		dir, err := os.MkdirTemp("", "notes-model-")
		if err != nil {
			rt.Fatalf("mkdir temp: %v", err)
		}
		defer os.RemoveAll(dir)

		ctx := context.Background()
		repo := fs.NewRepository(fs.Config{Path: filepath.Join(dir, "notes.json"), Strict: true})
		svc := core.NewService(repo, core.ServiceConfig{})
		var model core.Collection

		title := rapid.StringMatching(`[A-Za-z]{0,3}`)
		snapshot := func() []byte {
			data, err := os.ReadFile(repo.Path)
			if err != nil && !errors.Is(err, os.ErrNotExist) {
				rt.Fatalf("read store: %v", err)
			}
			return data
		}

		steps := rapid.IntRange(1, 30).Draw(rt, "steps")
		for i := 0; i < steps; i++ {
			switch rapid.IntRange(0, 3).Draw(rt, "op") {
			case 0: // add
				tt := title.Draw(rt, "add-title")
				body := rapid.String().Draw(rt, "add-body")
				before := snapshot()
				err := svc.Add(ctx, tt, body)
				if _, exists := model.Find(tt); exists {
					if !errors.Is(err, core.ErrDuplicateTitle) {
						rt.Fatalf("add(%q) on existing title: got %v", tt, err)
					}
					if string(snapshot()) != string(before) {
						rt.Fatalf("duplicate add changed the file")
					}
					continue
				}
				if err != nil {
					rt.Fatalf("add(%q): %v", tt, err)
				}
				model = append(model, core.Note{Title: tt, Body: body})
				got, err := svc.Read(ctx, tt)
				if err != nil || got.Body != body {
					rt.Fatalf("read after add(%q) = %v, %v", tt, got, err)
				}

			case 1: // remove
				tt := title.Draw(rt, "remove-title")
				before := snapshot()
				n, err := svc.Remove(ctx, tt)
				kept := model.Without(tt)
				if len(kept) == len(model) {
					if !errors.Is(err, core.ErrNotFound) || n != 0 {
						rt.Fatalf("remove(%q) miss: got %d, %v", tt, n, err)
					}
					if string(snapshot()) != string(before) {
						rt.Fatalf("missed remove changed the file")
					}
					continue
				}
				if err != nil || n != len(model)-len(kept) {
					rt.Fatalf("remove(%q): got %d, %v", tt, n, err)
				}
				model = kept
				if _, err := svc.Read(ctx, tt); !errors.Is(err, core.ErrNotFound) {
					rt.Fatalf("read after remove(%q): %v", tt, err)
				}

			case 2: // read twice
				tt := title.Draw(rt, "read-title")
				first, err1 := svc.Read(ctx, tt)
				second, err2 := svc.Read(ctx, tt)
				if first != second || (err1 == nil) != (err2 == nil) {
					rt.Fatalf("read(%q) not idempotent", tt)
				}
				want, ok := model.Find(tt)
				if ok != (err1 == nil) || (ok && want != first) {
					rt.Fatalf("read(%q) = %v, %v; model has %v, %v", tt, first, err1, want, ok)
				}

			case 3: // list
				titles, err := svc.List(ctx)
				if err != nil {
					rt.Fatalf("list: %v", err)
				}
				want := model.Titles()
				if len(titles) != len(want) {
					rt.Fatalf("list = %v, want %v", titles, want)
				}
				for j := range want {
					if titles[j] != want[j] {
						rt.Fatalf("list = %v, want %v", titles, want)
					}
				}
			}
		}
	})
}

func TestList_InsertionOrder(t *testing.T) {
	ctx := context.Background()
	repo := newRepo(t, "notes.json", true)
	svc := core.NewService(repo, core.ServiceConfig{})

	titles, err := svc.List(ctx)
	if err != nil || len(titles) != 0 {
		t.Fatalf("list on absent store = %v, %v", titles, err)
	}

	if err := svc.Add(ctx, "a", "x"); err != nil {
		t.Fatal(err)
	}
	if err := svc.Add(ctx, "b", "y"); err != nil {
		t.Fatal(err)
	}

	titles, err = svc.List(ctx)
	if err != nil {
		t.Fatal(err)
	}
	if len(titles) != 2 || titles[0] != "a" || titles[1] != "b" {
		t.Errorf("expected [a b], got %v", titles)
	}
}
