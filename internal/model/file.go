// Package model defines database models
package model

type File struct {
	ID string `gorm:"primaryKey;type:uuid" json:"id"`

	// Original file name without its extension. The stored blob lives
	// under ID + "." + Ext so renames never touch the backend
	Name string `gorm:"type:varchar(255);not null" json:"name"`
	Ext  string `gorm:"not null" json:"ext"`
	Mime string `gorm:"not null" json:"mime"`
	Size int64  `json:"size"`

	// sha256 of the content, computed once at upload
	Hash    string `gorm:"not null" json:"hash"`
	OwnerID string `gorm:"index" json:"-"`
	Public  bool   `gorm:"default:false;not null" json:"public"`

	// Unix millisecond timestamp
	CreatedAt int64 `gorm:"not null" json:"created_at"`
}

// BlobKey derives the storage key of the file's content. ID is unique and
// immutable, so keys never collide and never move.
func (f *File) BlobKey() string {
	return f.ID + "." + f.Ext
}

// FileUser links a file to a user owning it. A file with no remaining
// links is an orphan and gets reclaimed by the flush job.
type FileUser struct {
	ID     string `gorm:"primaryKey;type:uuid" json:"id"`
	UserID string `gorm:"index;not null" json:"user_id"`
	FileID string `gorm:"index;not null" json:"file_id"`
}
