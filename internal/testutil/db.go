// Package testutil provides fixtures shared by package tests.
package testutil

import (
	"errors"
	"strings"
	"testing"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	dbpkg "github.com/BruksfildServices01/staffing-scheduler/internal/db"
	"github.com/BruksfildServices01/staffing-scheduler/internal/models"
)

// NewDB opens a private in-memory sqlite database with every table migrated.
// The pool is capped at one connection so transactions serialize the same
// way they would against a single postgres session.
func NewDB(t *testing.T) *gorm.DB {
	t.Helper()

	name := strings.NewReplacer("/", "_", " ", "_").Replace(t.Name())
	dsn := "file:" + name + "?mode=memory&cache=shared"
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{TranslateError: true})
	if err != nil {
		t.Fatalf("open db: %v", err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		t.Fatalf("sql db: %v", err)
	}
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() { _ = sqlDB.Close() })

	if err := dbpkg.Migrate(db); err != nil {
		t.Fatalf("migrate: %v", err)
	}
	return db
}

// CreateUser inserts a user whose password is "secret1".
func CreateUser(t *testing.T, db *gorm.DB, name, email, role string) *models.User {
	t.Helper()

	hashed, err := bcrypt.GenerateFromPassword([]byte("secret1"), bcrypt.MinCost)
	if err != nil {
		t.Fatalf("hash: %v", err)
	}
	u := &models.User{Name: name, Email: email, PasswordHash: string(hashed), Role: role}
	if err := db.Create(u).Error; err != nil {
		t.Fatalf("create user %s: %v", email, err)
	}
	return u
}

func CreateBooking(t *testing.T, db *gorm.DB, clientID uint, title string) *models.Booking {
	t.Helper()

	b := &models.Booking{ClientID: clientID, Title: title, Description: title + " description", Status: "pending"}
	if err := db.Create(b).Error; err != nil {
		t.Fatalf("create booking: %v", err)
	}
	return b
}

func CreateProject(t *testing.T, db *gorm.DB, bookingID, managerID uint, name string) *models.Project {
	t.Helper()

	p := &models.Project{BookingID: bookingID, ManagerID: managerID, Name: name, Status: "planned"}
	if err := db.Create(p).Error; err != nil {
		t.Fatalf("create project: %v", err)
	}
	return p
}

func CreateAssignment(t *testing.T, db *gorm.DB, projectID, employeeID, assignedBy uint) *models.Assignment {
	t.Helper()

	a := &models.Assignment{ProjectID: projectID, EmployeeID: employeeID, AssignedBy: assignedBy, Status: "assigned"}
	if err := db.Create(a).Error; err != nil {
		t.Fatalf("create assignment: %v", err)
	}
	return a
}

// ErrInjected is what FailDeletes makes the store report.
var ErrInjected = errors.New("injected delete failure")

// FailDeletes makes every later DELETE against table fail with ErrInjected.
func FailDeletes(t *testing.T, db *gorm.DB, table string) {
	t.Helper()

	err := db.Callback().Delete().Before("gorm:delete").Register("testutil:fail_"+table, func(tx *gorm.DB) {
		if tx.Statement.Table == table {
			_ = tx.AddError(ErrInjected)
		}
	})
	if err != nil {
		t.Fatalf("register callback: %v", err)
	}
}
