package models

import "time"

// AuditLogEntry is the DB representation of one hash-chain link. The table is
// append-only; there is no update or delete path in any repository.
type AuditLogEntry struct {
	AuditID      string    `db:"audit_id"`
	CompanyID    string    `db:"company_id"`
	Sequence     int64     `db:"sequence"`
	ActorID      string    `db:"actor_id"`
	TargetType   string    `db:"target_type"`
	TargetID     string    `db:"target_id"`
	Action       string    `db:"action"`
	BeforeValue  string    `db:"before_value"` // Nullable JSON snapshot
	AfterValue   string    `db:"after_value"`  // Nullable JSON snapshot
	OccurredAt   time.Time `db:"occurred_at"`
	PreviousHash string    `db:"previous_hash"`
	CurrentHash  string    `db:"current_hash"`
}
