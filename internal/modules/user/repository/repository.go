package repository

// Repository defines the interface for known-user persistence
type Repository interface {
	AddUser(userID int64) error
	ListUsers() ([]int64, error)
}
