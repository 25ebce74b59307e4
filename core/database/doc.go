// Package database handles the optional relational database connection.
//
// It provides a wrapper around GORM to properly configure MySQL or SQLite
// connections based on the application's configuration. The database backs
// the sync run history and nothing else: the catalog itself lives in the
// versioned content store.
//
// # Connect
//
// The Connect function establishes a connection with sane pool settings and
// verifies it with a ping. Callers treat failures as a degradation, not a
// startup error.
//
// # Usage
//
//	db, err := database.Connect(cfg.Database)
//	if err != nil {
//	    log.Warn("Sync history disabled", zap.Error(err))
//	}
package database
