package complaint

import "citizendesk/backend/internal/models"

// allowedTransitions is the closed transition table for manual status
// changes. Assignment and external replies have their own rules and do not
// consult this table.
var allowedTransitions = map[models.ComplaintStatus]map[models.ComplaintStatus]bool{
	models.StatusPending: {
		models.StatusInProgress: true,
		models.StatusResolved:   true,
		models.StatusClosed:     true,
	},
	models.StatusInProgress: {
		models.StatusResolved: true,
		models.StatusClosed:   true,
	},
	models.StatusResolved: {
		models.StatusClosed:     true,
		models.StatusInProgress: true, // reopen
	},
	models.StatusClosed: {
		models.StatusInProgress: true, // reopen
	},
}

// CanTransition reports whether a manual change from one status to another
// is permitted.
func CanTransition(from, to models.ComplaintStatus) bool {
	return allowedTransitions[from][to]
}
