// Package notes is the composition root for the note store.
//
// A store is one file holding an ordered collection of notes, each a title
// and a body. Titles are unique keys: adding a taken title fails and leaves
// the file untouched. Every operation loads the whole collection, works on
// it in memory and, for add and remove, writes the whole collection back.
//
// Usage:
//
//	svc, err := notes.New("notes.json", notes.WithLogger(logger))
//	if err != nil {
//		return err
//	}
//	if err := svc.Add(ctx, "Shopping", "Milk, eggs"); errors.Is(err, notes.ErrDuplicateTitle) {
//		// title taken
//	}
//
// The default adapter stores JSON (`[{"title":"...","body":"..."}]`); a
// .yaml path stores YAML and a .db path stores SQLite.
package notes
