package models

import "time"

// Medication is a tracked drug record. Schedule is free text describing when
// the medication should be taken.
type Medication struct {
	ID        int64
	Name      string
	Dose      string
	Schedule  string
	Notes     string
	CreatedAt time.Time
	// LastTaken is derived from the adherence log and is only populated by
	// listing queries. Nil when the medication has never been taken.
	LastTaken *time.Time
}

// MedicationInput carries the mutable fields of a Medication for create and
// update operations.
type MedicationInput struct {
	Name     string
	Dose     string
	Schedule string
	Notes    string
}

// TakenEvent records that a medication was taken. Events are append-only.
type TakenEvent struct {
	ID      int64
	MedID   int64
	TakenAt time.Time
}

// LogEntry is a TakenEvent joined with the medication it references.
type LogEntry struct {
	ID       int64
	MedID    int64
	TakenAt  time.Time
	Name     string
	Dose     string
	Schedule string
}
