package models

// AppSettings is the process-wide settings singleton.
// ParentPinHash holds a bcrypt hash of the 4-digit parental PIN.
type AppSettings struct {
	ParentPinHash        string
	BreakReminderMinutes int
	SoundEnabled         bool
	ReadAloudEnabled     bool
}
