// Package diary is the composition root of the diary journaling library.
//
// It connects the core model (Document, Entry, Commit and the editing
// Session) with the storage adapters, following a hexagonal layout: the
// core never touches the filesystem, adapters implement core.Repository.
//
// A journal is a named list of entries. Every entry keeps the full history
// of its text as timestamped commits; revising appends, nothing is ever
// overwritten. Journals are stored in a line-oriented text format (see
// package codec) that round-trips exactly. JSON and YAML exports are chosen
// by file extension.
//
// Usage:
//
//	svc, err := diary.New("./journals", diary.WithLogger(logger))
//
//	doc := svc.Create("Field notes")
//	session := svc.NewSession(doc)
//	buf, _ := session.Compose()
//	buf.InsertString("saw a heron")
//	_, _ = session.Commit()
//
//	err = svc.Save(ctx, doc, "field.diary")
package diary
