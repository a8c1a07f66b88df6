package posts

// Operation names a mutating action on an existing post
type Operation string

const (
	OpEdit         Operation = "edit"
	OpChangeStatus Operation = "change status of"
	OpDelete       Operation = "delete"
)

// allowedOperations is the single source of truth for which operations a
// post's status permits. Completed is fully terminal. Closed still permits
// edit and delete but no further status change.
var allowedOperations = map[Status]map[Operation]bool{
	StatusEnabled: {
		OpEdit:         true,
		OpChangeStatus: true,
		OpDelete:       true,
	},
	StatusCompleted: {},
	StatusClosed: {
		OpEdit:   true,
		OpDelete: true,
	},
}

// Allows reports whether op may be applied to a post in status s
func (s Status) Allows(op Operation) bool {
	return allowedOperations[s][op]
}

// checkAllowed returns a *StatusError when the post's status forbids op
func checkAllowed(p *Post, op Operation) error {
	if p.Status.Allows(op) {
		return nil
	}
	return &StatusError{ID: p.ID, Status: p.Status, Operation: op}
}
