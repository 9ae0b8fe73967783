// Package access holds the authorization table. It decides only whether a
// role may invoke an operation; ownership of individual rows is checked by
// the owning service.
package access

import (
	"slices"

	"github.com/BruksfildServices01/staffing-scheduler/internal/httperr"
)

type Operation string

const (
	OpMeView         Operation = "me.view"
	OpMeChangePasswd Operation = "me.password"

	OpBookingCreate  Operation = "booking.create"
	OpBookingListOwn Operation = "booking.list.own"
	OpBookingList    Operation = "booking.list"
	OpBookingUpdate  Operation = "booking.update"
	OpBookingDelete  Operation = "booking.delete"

	OpAdminBookingCreate Operation = "admin.booking.create"
	OpAdminBookingList   Operation = "admin.booking.list"
	OpAdminBookingUpdate Operation = "admin.booking.update"
	OpAdminBookingDelete Operation = "admin.booking.delete"

	OpProjectCreate Operation = "project.create"
	OpProjectList   Operation = "project.list"
	OpProjectUpdate Operation = "project.update"
	OpProjectDelete Operation = "project.delete"

	OpAssignmentCreate       Operation = "assignment.create"
	OpAssignmentList         Operation = "assignment.list"
	OpAssignmentListDetailed Operation = "assignment.list.detailed"
	OpAssignmentUpdate       Operation = "assignment.update"
	OpAssignmentStatus       Operation = "assignment.status"
	OpAssignmentDelete       Operation = "assignment.delete"

	OpEmployeeTasks Operation = "employee.tasks"
	OpEmployeeList  Operation = "employee.list"

	OpUserList   Operation = "user.list"
	OpUserCreate Operation = "user.create"
	OpUserUpdate Operation = "user.update"
	OpUserDelete Operation = "user.delete"

	OpAuditList     Operation = "audit.list"
	OpDashboardView Operation = "dashboard.view"
)

var (
	anyone    = []Role{RoleAdmin, RoleManager, RoleEmployee, RoleClient}
	staff     = []Role{RoleAdmin, RoleManager}
	adminOnly = []Role{RoleAdmin}
)

var table = map[Operation][]Role{
	OpMeView:         anyone,
	OpMeChangePasswd: anyone,

	OpBookingCreate:  {RoleClient},
	OpBookingListOwn: {RoleClient},
	OpBookingList:    staff,
	OpBookingUpdate:  {RoleAdmin, RoleManager, RoleClient},
	OpBookingDelete:  {RoleAdmin, RoleClient},

	OpAdminBookingCreate: adminOnly,
	OpAdminBookingList:   adminOnly,
	OpAdminBookingUpdate: adminOnly,
	OpAdminBookingDelete: adminOnly,

	OpProjectCreate: staff,
	OpProjectList:   {RoleAdmin, RoleManager, RoleEmployee},
	OpProjectUpdate: staff,
	OpProjectDelete: staff,

	OpAssignmentCreate:       staff,
	OpAssignmentList:         {RoleAdmin, RoleManager, RoleEmployee},
	OpAssignmentListDetailed: staff,
	OpAssignmentUpdate:       staff,
	OpAssignmentStatus:       {RoleEmployee},
	OpAssignmentDelete:       staff,

	OpEmployeeTasks: {RoleEmployee},
	OpEmployeeList:  staff,

	OpUserList:   adminOnly,
	OpUserCreate: adminOnly,
	OpUserUpdate: adminOnly,
	OpUserDelete: adminOnly,

	OpAuditList:     adminOnly,
	OpDashboardView: staff,
}

// Operations lists every operation known to the table.
func Operations() []Operation {
	ops := make([]Operation, 0, len(table))
	for op := range table {
		ops = append(ops, op)
	}
	slices.Sort(ops)
	return ops
}

// Allowed returns the roles permitted to invoke op. Unknown operations
// permit nobody.
func Allowed(op Operation) []Role {
	return slices.Clone(table[op])
}

// Authorize is the gate every request passes. A nil identity means there is
// no session.
func Authorize(id *Identity, op Operation) error {
	if id == nil || id.UserID == 0 {
		return httperr.ErrUnauthorized()
	}
	if !slices.Contains(table[op], id.Role) {
		return httperr.ErrForbidden()
	}
	return nil
}
