package errors

import "errors"

var (
	ErrMissingBotToken      = errors.New("TELEGRAM_BOT_TOKEN environment variable is required")
	ErrMissingSupportChatID = errors.New("SUPPORT_CHAT_ID is not set or is not a number")
	ErrMissingOwnerID       = errors.New("OWNER_ID is not set or is not a number")
	ErrUnauthorized         = errors.New("unauthorized user")
	ErrOwnerImmutable       = errors.New("owner cannot be removed from admins")
)
