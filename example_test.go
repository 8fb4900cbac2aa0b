package notes_test

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/aretw0/notes"
)

func Example() {
	dir, err := os.MkdirTemp("", "notes-example-")
	if err != nil {
		panic(err)
	}
	defer os.RemoveAll(dir)

	ctx := context.Background()
	svc, err := notes.New(filepath.Join(dir, "notes.json"))
	if err != nil {
		panic(err)
	}

	_ = svc.Add(ctx, "Shopping", "Milk, eggs")
	_ = svc.Add(ctx, "Ideas", "Write more Go")
	if err := svc.Add(ctx, "Shopping", "Bread"); errors.Is(err, notes.ErrDuplicateTitle) {
		fmt.Println("Note title taken!")
	}

	titles, _ := svc.List(ctx)
	fmt.Println(titles)

	n, _ := svc.Read(ctx, "Shopping")
	fmt.Println(n.Body)

	// Output:
	// Note title taken!
	// [Shopping Ideas]
	// Milk, eggs
}
