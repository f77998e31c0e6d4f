package repository

// Repository defines the interface for admin-set persistence
type Repository interface {
	Load() ([]int64, error)
	Save(ids []int64) error
}
