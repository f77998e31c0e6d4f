package repository

// Table maps anchor message IDs posted in the support chat to the
// originating user ID. One entry is created per forwarded user message
// and consumed the first time a staff reply targets that anchor.
type Table interface {
	Create(anchorID int, userID int64)
	ResolveAndConsume(anchorID int) (int64, bool)
}
