// Package bookmarks is the client's local mirror of the caller's bookmarks.
//
// The mirror is derived state: it is rebuilt from the server listing and
// patched only after the server has confirmed a change. Nothing here is ever
// sent back to the server.
//
// Typical Usage
//
//	err := dbx.WithTx(ctx, db, nil, func(ctx context.Context, tx dbx.DBTX) error {
//	    repo := bookmarks.NewSQLiteRepository(tx)
//	    if err := repo.Clear(ctx); err != nil {
//	        return err
//	    }
//	    for _, it := range items {
//	        if err := repo.Put(ctx, it); err != nil {
//	            return err
//	        }
//	    }
//	    return nil
//	})
package bookmarks
