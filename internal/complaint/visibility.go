package complaint

import "citizendesk/backend/internal/models"

// Visible reports whether a staff member may see a complaint.
// attorney_general sees everything; complaint_handler sees their assigned
// backlog, complaints they attended, and unclaimed pending work;
// head_of_communications has no complaint visibility.
func Visible(role models.Role, email string, c *models.Complaint) bool {
	switch role {
	case models.RoleAttorneyGeneral:
		return true
	case models.RoleComplaintHandler:
		return c.AssignedToEmail == email ||
			c.AttendedByEmail == email ||
			c.Status == models.StatusPending
	default:
		return false
	}
}

// FilterVisible returns the subset of complaints the staff member may see.
func FilterVisible(role models.Role, email string, complaints []models.Complaint) []models.Complaint {
	visible := make([]models.Complaint, 0, len(complaints))
	for i := range complaints {
		if Visible(role, email, &complaints[i]) {
			visible = append(visible, complaints[i])
		}
	}
	return visible
}
