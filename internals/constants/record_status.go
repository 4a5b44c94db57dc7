package constants

// RecordStatus menggantikan soft delete berbasis deleted_at:
// baris tidak pernah dihapus fisik, cukup ditandai tombstoned.
type RecordStatus string

const (
	StatusActive     RecordStatus = "active"
	StatusTombstoned RecordStatus = "tombstoned"
)

func (s RecordStatus) IsActive() bool { return s == StatusActive }
