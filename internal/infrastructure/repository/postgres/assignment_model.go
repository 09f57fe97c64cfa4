package postgres

type assignmentTableModel struct {
	Participant string `db:"participant"`
	EventID     string `db:"event_id"`
}
