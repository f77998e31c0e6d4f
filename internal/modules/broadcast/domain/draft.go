package domain

// Button is an inline keyboard link attached to a broadcast
type Button struct {
	Label string
	URL   string
}

// Draft holds the broadcast content collected across wizard steps.
// Either Text or PhotoFileID is set, never both.
type Draft struct {
	Text        string
	PhotoFileID string
	Caption     string
	Buttons     []Button
}

// Session is a single admin's wizard conversation
type Session struct {
	State State
	Draft Draft
}
