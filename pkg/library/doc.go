// Package library implements the catalog manager of a lending library.
//
// A Library owns two insertion-ordered collections, books and users, and the
// borrow/return transitions between them. Every mutation rewrites the affected
// collection through a Gateway before it returns. A Library is safe for
// concurrent use; one lock serializes mutations together with their writes.
//
//	gw := library.NewGateway(st, store.JSON, nil)
//	lib, err := library.New(ctx, gw)
//	if err != nil {
//		return err
//	}
//	_ = lib.AddBook(ctx, library.NewBook("1984", "George Orwell", "1234567891"))
//	outcome, err := lib.BorrowBook(ctx, "001", "1234567891")
package library
