package core_test

import (
	"testing"

	"github.com/google/go-cmp/cmp"
	"pgregory.net/rapid"

	"github.com/aretw0/notes/pkg/core"
)

func TestCollection_Without_PreservesOrder(t *testing.T) {
	c := core.Collection{{Title: "a"}, {Title: "b"}, {Title: "a"}, {Title: "c"}}

	got := c.Without("a")
	want := core.Collection{{Title: "b"}, {Title: "c"}}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("Without mismatch (-want +got):\n%s", diff)
	}
	if len(c) != 4 {
		t.Errorf("Without must not modify the receiver, len=%d", len(c))
	}
}

func TestEvent_String(t *testing.T) {
	e := core.Event{Type: core.EventModify, Path: "notes.json"}
	if got := e.String(); got != "MODIFY notes.json" {
		t.Errorf("unexpected event string %q", got)
	}
}

func noteGen() *rapid.Generator[core.Note] {
	return rapid.Custom(func(t *rapid.T) core.Note {
		return core.Note{
			Title: rapid.StringMatching(`[a-c]{0,2}`).Draw(t, "title"),
			Body:  rapid.String().Draw(t, "body"),
		}
	})
}

func TestCollection_Properties(t *testing.T) {
	rapid.Check(t, func(rt *rapid.T) {
		c := core.Collection(rapid.SliceOf(noteGen()).Draw(rt, "notes"))
		title := rapid.StringMatching(`[a-c]{0,2}`).Draw(rt, "probe")

		kept := c.Without(title)
		if _, found := kept.Find(title); found {
			rt.Fatalf("Without(%q) left a matching note", title)
		}

		first, found := c.Find(title)
		if found != (len(kept) < len(c)) {
			rt.Fatalf("Find and Without disagree on %q", title)
		}
		if found {
			for _, n := range c {
				if n.Title == title {
					if n != first {
						rt.Fatalf("Find did not return the first match")
					}
					break
				}
			}
		}

		if len(c.Titles()) != len(c) {
			rt.Fatalf("Titles length %d, want %d", len(c.Titles()), len(c))
		}
	})
}
