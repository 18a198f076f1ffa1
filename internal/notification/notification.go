// Package notification delivers leave workflow emails on a best-effort
// basis. Senders never block a state transition: callers log failures
// and surface them to the user as soft warnings at most.
package notification

import (
	"context"
	"errors"
	"fmt"
)

var ErrNoRecipient = errors.New("recipient has no email address")

// LeaveNotice carries everything the message templates need, already
// denormalized so senders stay free of repository lookups.
type LeaveNotice struct {
	RequesterName  string
	RequesterEmail string
	EmployeeNumber string

	ManagerName  string
	ManagerEmail string

	LeaveTypeName   string
	StartDate       string
	EndDate         string
	TotalDays       float64
	Status          string
	Comments        string
	RejectionReason string
	ApproverName    string
}

//go:generate mockgen -source=notification.go -destination=mock/sender_mock.go -package=mock
type Sender interface {
	// SendLeaveSubmitted confirms a new request to the requester.
	SendLeaveSubmitted(ctx context.Context, n LeaveNotice) error
	// SendManagerAlert tells the direct manager a request awaits review.
	SendManagerAlert(ctx context.Context, n LeaveNotice) error
	// SendLeaveDecision informs the requester of an approval/rejection.
	SendLeaveDecision(ctx context.Context, n LeaveNotice) error
}

func submittedSubject(n LeaveNotice) string {
	return fmt.Sprintf("Leave Request Submitted - %s to %s", n.StartDate, n.EndDate)
}

func submittedBody(n LeaveNotice) string {
	return fmt.Sprintf(
		"Dear %s,\n\nYour leave request has been submitted and is pending approval.\n\n"+
			"Details:\n- Type: %s\n- Dates: %s to %s\n- Total Days: %g\n- Status: %s\n\n"+
			"You will receive another email once your request has been reviewed.\n\nThank you!",
		n.RequesterName, n.LeaveTypeName, n.StartDate, n.EndDate, n.TotalDays, n.Status,
	)
}

func managerSubject(n LeaveNotice) string {
	return fmt.Sprintf("New Leave Request - %s", n.RequesterName)
}

func managerBody(n LeaveNotice) string {
	comments := "No additional comments provided."
	if n.Comments != "" {
		comments = "Comments: " + n.Comments
	}
	return fmt.Sprintf(
		"Dear %s,\n\nA new leave request requires your approval.\n\n"+
			"Employee: %s (%s)\nLeave Type: %s\nDates: %s to %s\nTotal Days: %g\nStatus: %s\n%s\n\n"+
			"Please log into the system to review and manage this request.\n\nThank you!",
		n.ManagerName, n.RequesterName, n.EmployeeNumber, n.LeaveTypeName,
		n.StartDate, n.EndDate, n.TotalDays, n.Status, comments,
	)
}

func decisionSubject(n LeaveNotice) string {
	switch n.Status {
	case "APPROVED":
		return fmt.Sprintf("Leave Request Approved - %s to %s", n.StartDate, n.EndDate)
	default:
		return fmt.Sprintf("Leave Request Rejected - %s to %s", n.StartDate, n.EndDate)
	}
}

func decisionBody(n LeaveNotice) string {
	approver := n.ApproverName
	if approver == "" {
		approver = "System"
	}

	if n.Status == "APPROVED" {
		return fmt.Sprintf(
			"Dear %s,\n\nYour leave request has been approved!\n\n"+
				"Details:\n- Type: %s\n- Dates: %s to %s\n- Total Days: %g\n- Approved by: %s\n\n"+
				"Enjoy your time off!",
			n.RequesterName, n.LeaveTypeName, n.StartDate, n.EndDate, n.TotalDays, approver,
		)
	}

	reason := n.RejectionReason
	if reason == "" {
		reason = "No reason provided"
	}
	return fmt.Sprintf(
		"Dear %s,\n\nUnfortunately your leave request has been rejected.\n\n"+
			"Details:\n- Type: %s\n- Dates: %s to %s\n- Total Days: %g\n- Reason: %s\n- Reviewed by: %s\n\n"+
			"Please refer back to your manager for more information.",
		n.RequesterName, n.LeaveTypeName, n.StartDate, n.EndDate, n.TotalDays, reason, approver,
	)
}
