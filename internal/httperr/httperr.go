package httperr

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
)

type HTTPError struct {
	Code    string `json:"error_code"`
	Message string `json:"message"`
}

var messages = map[string]string{
	"missing_fields":              "Required fields are missing.",
	"invalid_request":             "Invalid request body.",
	"invalid_credentials":         "Invalid email or password.",
	"unauthorized":                "Authentication required.",
	"forbidden":                   "You are not allowed to perform this action.",
	"invalid_status":              "Status must be one of assigned, working, completed, rejected.",
	"no_fields_to_update":         "No fields to update.",
	"email_exists":                "Email already registered.",
	"invalid_role":                "Unknown role.",
	"invalid_client":              "client_id must reference a client user.",
	"invalid_manager":             "manager_id must reference a manager or admin.",
	"invalid_date":                "Dates must use the YYYY-MM-DD format.",
	"password_too_short":          "Password must have at least 6 characters.",
	"invalid_email_domain":        "The email domain does not look valid.",
	"booking_already_has_project": "This booking already has a project.",
	"booking_not_found":           "Booking not found.",
	"project_not_found":           "Project not found.",
	"employee_not_found":          "Employee not found.",
	"assignment_not_found":        "Assignment not found.",
	"user_not_found":              "User not found.",
	"invalid_project_status":      "Status must be one of planned, active, completed.",
	"wrong_password":              "Current password is incorrect.",
	"client_has_bookings":         "This client still owns bookings.",
	"invalid_id":                  "Invalid id in path.",
	"store_error":                 "A storage error occurred.",
	"internal_error":              "Internal server error.",
}

func Write(c *gin.Context, status int, code, message string) {
	c.JSON(status, HTTPError{
		Code:    code,
		Message: message,
	})
}

func BadRequest(c *gin.Context, code, message string) {
	Write(c, http.StatusBadRequest, code, message)
}

func NotFound(c *gin.Context, code, message string) {
	Write(c, http.StatusNotFound, code, message)
}

func Internal(c *gin.Context, code, message string) {
	Write(c, http.StatusInternalServerError, code, message)
}

func Unauthorized(c *gin.Context, code, message string) {
	Write(c, http.StatusUnauthorized, code, message)
}

func Forbidden(c *gin.Context, code, message string) {
	Write(c, http.StatusForbidden, code, message)
}

// Respond maps err onto the response. Store failures carry their detail in
// the message for administrative tooling.
func Respond(c *gin.Context, err error) {
	var be BusinessError
	if errors.As(err, &be) {
		msg, ok := messages[be.Code]
		if !ok {
			msg = be.Code
		}
		Write(c, StatusOf(err), be.Code, msg)
		return
	}

	var se *StoreError
	if errors.As(err, &se) {
		Internal(c, "store_error", se.Error())
		return
	}

	Internal(c, "internal_error", err.Error())
}

// Abort is Respond for middleware: it also stops the handler chain.
func Abort(c *gin.Context, err error) {
	Respond(c, err)
	c.Abort()
}
