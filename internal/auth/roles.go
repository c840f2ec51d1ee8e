// Package auth provides staff credential checking, admin session tokens,
// and the role capability table that gates every admin operation.
package auth

import "citizendesk/backend/internal/models"

// Action is a named admin capability checked against the capability table.
type Action string

const (
	ActionViewComplaints   Action = "complaints.view"
	ActionAssignComplaint  Action = "complaints.assign"
	ActionReplyComplaint   Action = "complaints.reply"
	ActionChangeStatus     Action = "complaints.status"
	ActionChangePriority   Action = "complaints.priority"
	ActionManageNews       Action = "news.manage"
	ActionViewNews         Action = "news.view"
	ActionViewActivity     Action = "activity.view"
	ActionViewDashboard    Action = "dashboard.view"
	ActionSearch           Action = "search"
	ActionSubscribeToFeeds Action = "feed.subscribe"
)

// capabilities maps each role to its permitted actions. Every role check in
// the admin API goes through this table so a role change is one edit here.
var capabilities = map[models.Role]map[Action]bool{
	models.RoleAttorneyGeneral: {
		ActionViewComplaints:   true,
		ActionAssignComplaint:  true,
		ActionReplyComplaint:   true,
		ActionChangeStatus:     true,
		ActionChangePriority:   true,
		ActionViewNews:         true,
		ActionViewActivity:     true,
		ActionViewDashboard:    true,
		ActionSearch:           true,
		ActionSubscribeToFeeds: true,
	},
	models.RoleComplaintHandler: {
		ActionViewComplaints:   true,
		ActionReplyComplaint:   true,
		ActionViewDashboard:    true,
		ActionSearch:           true,
		ActionSubscribeToFeeds: true,
	},
	models.RoleHeadOfCommunications: {
		ActionManageNews:       true,
		ActionViewNews:         true,
		ActionViewActivity:     true,
		ActionViewDashboard:    true,
		ActionSearch:           true,
		ActionSubscribeToFeeds: true,
	},
}

// Can reports whether the role is permitted to perform the action.
func Can(role models.Role, action Action) bool {
	return capabilities[role][action]
}
