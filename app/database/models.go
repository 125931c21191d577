package database

import (
	"time"
)

// File is the registry record of a data file
type File struct {
	Name        string
	FirstSeenAt time.Time // Publication time reported in feeds, fixed on first sighting
	ModifiedAt  time.Time // Last observed modification time
	CreatedAt   time.Time
}
