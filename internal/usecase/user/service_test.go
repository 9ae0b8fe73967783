package user_test

import (
	"context"
	"testing"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"github.com/BruksfildServices01/staffing-scheduler/internal/audit"
	"github.com/BruksfildServices01/staffing-scheduler/internal/domain/access"
	domain "github.com/BruksfildServices01/staffing-scheduler/internal/domain/user"
	"github.com/BruksfildServices01/staffing-scheduler/internal/httperr"
	"github.com/BruksfildServices01/staffing-scheduler/internal/infra/repository"
	"github.com/BruksfildServices01/staffing-scheduler/internal/models"
	"github.com/BruksfildServices01/staffing-scheduler/internal/testutil"
	"github.com/BruksfildServices01/staffing-scheduler/internal/usecase/user"
)

func newService(t *testing.T) (*user.Service, *gorm.DB, *access.Identity) {
	t.Helper()
	db := testutil.NewDB(t)
	admin := testutil.CreateUser(t, db, "Ada", "ada@example.com", "admin")
	svc := user.NewService(repository.NewUserGormRepository(db), audit.Discard).WithHashCost(bcrypt.MinCost)
	return svc, db, &access.Identity{UserID: admin.ID, Role: access.RoleAdmin}
}

func TestCreateAccountNormalizesAndRejectsDuplicates(t *testing.T) {
	svc, _, _ := newService(t)
	ctx := context.Background()

	u, err := svc.CreateAccount(ctx, user.CreateInput{
		Name: "Eve", Email: "  Eve@Example.COM ", Password: "secret1", Role: "Employee",
	})
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if u.Email != "eve@example.com" || u.Role != "employee" || u.PasswordHash == "secret1" {
		t.Fatalf("unexpected user: %+v", u)
	}

	_, err = svc.CreateAccount(ctx, user.CreateInput{Name: "Eve2", Email: "eve@example.com", Password: "secret1", Role: "client"})
	if !httperr.IsBusiness(err, "email_exists") {
		t.Fatalf("expected email_exists, got %v", err)
	}

	_, err = svc.CreateAccount(ctx, user.CreateInput{Name: "Short", Email: "s@example.com", Password: "123", Role: "client"})
	if !httperr.IsBusiness(err, "password_too_short") {
		t.Fatalf("expected password_too_short, got %v", err)
	}

	_, err = svc.CreateAccount(ctx, user.CreateInput{Name: "Who", Email: "w@example.com", Password: "secret1", Role: "owner"})
	if !httperr.IsBusiness(err, "invalid_role") {
		t.Fatalf("expected invalid_role, got %v", err)
	}

	_, err = svc.CreateAccount(ctx, user.CreateInput{Email: "n@example.com", Password: "secret1", Role: "client"})
	if !httperr.IsBusiness(err, "missing_fields") {
		t.Fatalf("expected missing_fields, got %v", err)
	}
}

func TestAdminUpdate(t *testing.T) {
	svc, db, admin := newService(t)
	ctx := context.Background()
	eve := testutil.CreateUser(t, db, "Eve", "eve@example.com", "employee")
	testutil.CreateUser(t, db, "Max", "max@example.com", "manager")

	if _, err := svc.Update(ctx, admin, eve.ID, domain.Patch{}); !httperr.IsBusiness(err, "no_fields_to_update") {
		t.Fatalf("empty patch: %v", err)
	}

	taken := "max@example.com"
	if _, err := svc.Update(ctx, admin, eve.ID, domain.Patch{Email: &taken}); !httperr.IsBusiness(err, "email_exists") {
		t.Fatalf("duplicate email: %v", err)
	}

	name, role, password := "Eve Adams", "manager", "newpass1"
	got, err := svc.Update(ctx, admin, eve.ID, domain.Patch{Name: &name, Role: &role, Password: &password})
	if err != nil {
		t.Fatalf("update: %v", err)
	}
	if got.Name != "Eve Adams" || got.Role != "manager" {
		t.Fatalf("unexpected user: %+v", got)
	}
	if bcrypt.CompareHashAndPassword([]byte(got.PasswordHash), []byte("newpass1")) != nil {
		t.Fatal("password was not re-hashed")
	}

	if _, err := svc.Update(ctx, admin, 9999, domain.Patch{Name: &name}); !httperr.IsKind(err, httperr.KindNotFound) {
		t.Fatalf("missing user: %v", err)
	}
}

func TestAdminOnlyOperations(t *testing.T) {
	svc, db, admin := newService(t)
	ctx := context.Background()
	m := testutil.CreateUser(t, db, "Max", "max@example.com", "manager")
	testutil.CreateUser(t, db, "Zed", "zed@example.com", "employee")
	testutil.CreateUser(t, db, "Amy", "amy@example.com", "employee")
	manager := &access.Identity{UserID: m.ID, Role: access.RoleManager}

	if _, err := svc.List(ctx, manager); !httperr.IsKind(err, httperr.KindForbidden) {
		t.Fatalf("manager list: %v", err)
	}
	if err := svc.Delete(ctx, manager, m.ID); !httperr.IsKind(err, httperr.KindForbidden) {
		t.Fatalf("manager delete: %v", err)
	}

	employees, err := svc.ListEmployees(ctx, manager)
	if err != nil || len(employees) != 2 || employees[0].Name != "Amy" {
		t.Fatalf("employees: %+v %v", employees, err)
	}

	all, err := svc.List(ctx, admin)
	if err != nil || len(all) != 4 {
		t.Fatalf("list: %d %v", len(all), err)
	}

	created, err := svc.Create(ctx, admin, user.CreateInput{Name: "Root2", Email: "root2@example.com", Password: "secret1", Role: "admin"})
	if err != nil || created.Role != "admin" {
		t.Fatalf("admin create: %+v %v", created, err)
	}

	if err := svc.Delete(ctx, admin, created.ID); err != nil {
		t.Fatalf("delete: %v", err)
	}
	if err := svc.Delete(ctx, admin, created.ID); !httperr.IsKind(err, httperr.KindNotFound) {
		t.Fatalf("second delete: %v", err)
	}
}

func TestChangePassword(t *testing.T) {
	svc, db, _ := newService(t)
	ctx := context.Background()
	c := testutil.CreateUser(t, db, "Cleo", "cleo@example.com", "client")
	me := &access.Identity{UserID: c.ID, Role: access.RoleClient}

	if err := svc.ChangePassword(ctx, me, "wrong", "another1"); !httperr.IsBusiness(err, "wrong_password") {
		t.Fatalf("wrong current: %v", err)
	}
	if err := svc.ChangePassword(ctx, me, "secret1", "another1"); err != nil {
		t.Fatalf("change: %v", err)
	}

	var stored models.User
	db.First(&stored, c.ID)
	if bcrypt.CompareHashAndPassword([]byte(stored.PasswordHash), []byte("another1")) != nil {
		t.Fatal("password not changed")
	}

	if err := svc.ChangePassword(ctx, nil, "a", "b"); !httperr.IsKind(err, httperr.KindUnauthorized) {
		t.Fatalf("anonymous change: %v", err)
	}
}

func TestClientWithBookingsKeepsRole(t *testing.T) {
	svc, db, admin := newService(t)
	ctx := context.Background()
	cleo := testutil.CreateUser(t, db, "Cleo", "cleo@example.com", "client")
	b := testutil.CreateBooking(t, db, cleo.ID, "Gala")

	employee := "employee"
	if _, err := svc.Update(ctx, admin, cleo.ID, domain.Patch{Role: &employee}); !httperr.IsBusiness(err, "client_has_bookings") {
		t.Fatalf("role change: %v", err)
	}

	var stored models.User
	db.First(&stored, cleo.ID)
	if stored.Role != "client" {
		t.Fatalf("role changed to %q", stored.Role)
	}

	client, phone := "client", "555-0101"
	if _, err := svc.Update(ctx, admin, cleo.ID, domain.Patch{Role: &client, Phone: &phone}); err != nil {
		t.Fatalf("keeping the client role: %v", err)
	}

	db.Delete(&models.Booking{}, b.ID)
	got, err := svc.Update(ctx, admin, cleo.ID, domain.Patch{Role: &employee})
	if err != nil || got.Role != "employee" {
		t.Fatalf("role change without bookings: %+v %v", got, err)
	}
}

func TestClientWithBookingsCannotBeDeleted(t *testing.T) {
	svc, db, admin := newService(t)
	ctx := context.Background()
	cleo := testutil.CreateUser(t, db, "Cleo", "cleo@example.com", "client")
	b := testutil.CreateBooking(t, db, cleo.ID, "Gala")

	if err := svc.Delete(ctx, admin, cleo.ID); !httperr.IsBusiness(err, "client_has_bookings") {
		t.Fatalf("delete: %v", err)
	}
	var n int64
	db.Model(&models.User{}).Where("id = ?", cleo.ID).Count(&n)
	if n != 1 {
		t.Fatal("client was deleted")
	}

	db.Delete(&models.Booking{}, b.ID)
	if err := svc.Delete(ctx, admin, cleo.ID); err != nil {
		t.Fatalf("delete without bookings: %v", err)
	}
}
