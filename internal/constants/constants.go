package constants

import "time"

const (
	DatabaseTimeout = 5 * time.Second
	RequestTimeout  = 30 * time.Second
	BatchTimeout    = 2 * time.Minute
)

const (
	DBMaxOpenConns    = 100
	DBMaxIdleConns    = 10
	DBConnMaxLifetime = 1 * time.Hour
	DBMaxIdleTime     = 10 * time.Minute
)

const (
	// RatingWindow is the maximum rating distance between two queue entries
	// that may be paired.
	RatingWindow = 500

	// QueueScanLimit bounds one batch sweep of a position bucket.
	QueueScanLimit = 1000
)

const (
	ShutdownTimeout = 5 * time.Second
)
