//go:generate go run github.com/abice/go-enum --file=$GOFILE --names --nocase

package domain

// State represents the wizard conversation state
// ENUM(idle,collecting_content,collecting_buttons,awaiting_confirmation)
type State string
