package repository

// Repository defines the interface for the cached welcome-photo handle.
// The handle is a Telegram file_id obtained from the first raw upload
// and reused for every later /start.
type Repository interface {
	GetFileID() (string, error)
	SetFileID(fileID string) error
}
