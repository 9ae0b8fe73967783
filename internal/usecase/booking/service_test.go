package booking_test

import (
	"context"
	"errors"
	"testing"

	"gorm.io/gorm"

	"github.com/BruksfildServices01/staffing-scheduler/internal/audit"
	"github.com/BruksfildServices01/staffing-scheduler/internal/domain/access"
	domain "github.com/BruksfildServices01/staffing-scheduler/internal/domain/booking"
	"github.com/BruksfildServices01/staffing-scheduler/internal/httperr"
	"github.com/BruksfildServices01/staffing-scheduler/internal/infra/repository"
	"github.com/BruksfildServices01/staffing-scheduler/internal/models"
	"github.com/BruksfildServices01/staffing-scheduler/internal/testutil"
	"github.com/BruksfildServices01/staffing-scheduler/internal/usecase/booking"
)

type fixture struct {
	db      *gorm.DB
	svc     *booking.Service
	admin   *access.Identity
	manager *access.Identity
	client  *access.Identity
	other   *access.Identity
	worker  *access.Identity
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	db := testutil.NewDB(t)

	ident := func(u *models.User) *access.Identity {
		return &access.Identity{UserID: u.ID, Role: access.Role(u.Role)}
	}

	return &fixture{
		db:      db,
		svc:     booking.NewService(repository.NewBookingGormRepository(db), audit.Discard),
		admin:   ident(testutil.CreateUser(t, db, "Ada", "ada@example.com", "admin")),
		manager: ident(testutil.CreateUser(t, db, "Max", "max@example.com", "manager")),
		client:  ident(testutil.CreateUser(t, db, "Cleo", "cleo@example.com", "client")),
		other:   ident(testutil.CreateUser(t, db, "Otto", "otto@example.com", "client")),
		worker:  ident(testutil.CreateUser(t, db, "Eve", "eve@example.com", "employee")),
	}
}

func count(t *testing.T, db *gorm.DB, model any) int64 {
	t.Helper()
	var n int64
	if err := db.Model(model).Count(&n).Error; err != nil {
		t.Fatalf("count: %v", err)
	}
	return n
}

func TestCreateOwnsBookingAsCaller(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	b, err := f.svc.Create(ctx, f.client, booking.CreateInput{Title: "Stage crew", Description: "Four people"})
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if b.ClientID != f.client.UserID || b.Status != domain.StatusPending {
		t.Fatalf("unexpected booking: %+v", b)
	}

	quoted, err := f.svc.Create(ctx, f.client, booking.CreateInput{Title: "Ushers", Description: "Two", Status: domain.StatusApproved})
	if err != nil || quoted.Status != domain.StatusApproved {
		t.Fatalf("caller status should be kept: %+v %v", quoted, err)
	}

	if _, err := f.svc.Create(ctx, f.client, booking.CreateInput{Title: "No description"}); !httperr.IsBusiness(err, "missing_fields") {
		t.Fatalf("expected missing_fields, got %v", err)
	}
	if _, err := f.svc.Create(ctx, f.manager, booking.CreateInput{Title: "x", Description: "y"}); !httperr.IsKind(err, httperr.KindForbidden) {
		t.Fatalf("expected forbidden, got %v", err)
	}
	if _, err := f.svc.Create(ctx, nil, booking.CreateInput{Title: "x", Description: "y"}); !httperr.IsKind(err, httperr.KindUnauthorized) {
		t.Fatalf("expected unauthorized, got %v", err)
	}
}

func TestAdminCreateRequiresClient(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	in := booking.AdminCreateInput{
		CreateInput: booking.CreateInput{Title: "Gala", Description: "Waiters"},
		ClientID:    f.worker.UserID,
	}
	if _, err := f.svc.AdminCreate(ctx, f.admin, in); !httperr.IsBusiness(err, "invalid_client") {
		t.Fatalf("expected invalid_client, got %v", err)
	}

	in.ClientID = f.client.UserID
	in.Status = domain.StatusApproved
	b, err := f.svc.AdminCreate(ctx, f.admin, in)
	if err != nil {
		t.Fatalf("admin create: %v", err)
	}
	if b.ClientID != f.client.UserID || b.Status != domain.StatusApproved {
		t.Fatalf("unexpected booking: %+v", b)
	}
}

func TestListFilters(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	b1 := testutil.CreateBooking(t, f.db, f.client.UserID, "one")
	b2 := testutil.CreateBooking(t, f.db, f.client.UserID, "two")
	testutil.CreateBooking(t, f.db, f.other.UserID, "three")
	testutil.CreateProject(t, f.db, b1.ID, f.manager.UserID, "P1")
	f.db.Model(&models.Booking{}).Where("id = ?", b2.ID).Update("status", domain.StatusApproved)

	all, err := f.svc.List(ctx, f.manager, domain.All())
	if err != nil || len(all) != 3 {
		t.Fatalf("all: %d %v", len(all), err)
	}

	unassigned, err := f.svc.List(ctx, f.manager, domain.Unassigned())
	if err != nil {
		t.Fatalf("unassigned: %v", err)
	}
	if len(unassigned) != 2 {
		t.Fatalf("expected 2 unassigned, got %d", len(unassigned))
	}
	for _, b := range unassigned {
		if b.ID == b1.ID {
			t.Fatal("booking with a project listed as unassigned")
		}
	}

	approved, err := f.svc.List(ctx, f.admin, domain.ByStatus(domain.StatusApproved))
	if err != nil || len(approved) != 1 || approved[0].ID != b2.ID {
		t.Fatalf("by status: %+v %v", approved, err)
	}

	mine, err := f.svc.ListMine(ctx, f.other)
	if err != nil || len(mine) != 1 || mine[0].Title != "three" {
		t.Fatalf("mine: %+v %v", mine, err)
	}

	if _, err := f.svc.List(ctx, f.client, domain.All()); !httperr.IsKind(err, httperr.KindForbidden) {
		t.Fatalf("client listing all: %v", err)
	}
}

func TestUpdateOwnership(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	b := testutil.CreateBooking(t, f.db, f.client.UserID, "Original")

	title := "Renamed"
	if _, err := f.svc.Update(ctx, f.other, b.ID, domain.Patch{Title: &title}); !httperr.IsKind(err, httperr.KindNotFoundOrDenied) {
		t.Fatalf("foreign update: %v", err)
	}
	if _, err := f.svc.Update(ctx, f.other, 9999, domain.Patch{Title: &title}); !httperr.IsKind(err, httperr.KindNotFoundOrDenied) {
		t.Fatalf("missing update: %v", err)
	}

	var stored models.Booking
	f.db.First(&stored, b.ID)
	if stored.Title != "Original" {
		t.Fatalf("foreign update mutated booking: %q", stored.Title)
	}

	// a client cannot move its booking to another client
	other := f.other.UserID
	got, err := f.svc.Update(ctx, f.client, b.ID, domain.Patch{Title: &title, ClientID: &other})
	if err != nil {
		t.Fatalf("owner update: %v", err)
	}
	if got.Title != "Renamed" || got.ClientID != f.client.UserID {
		t.Fatalf("unexpected booking: %+v", got)
	}

	status := domain.StatusApproved
	got, err = f.svc.Update(ctx, f.manager, b.ID, domain.Patch{Status: &status})
	if err != nil || got.Status != domain.StatusApproved {
		t.Fatalf("manager update: %+v %v", got, err)
	}

	if _, err := f.svc.Update(ctx, f.client, b.ID, domain.Patch{}); !httperr.IsBusiness(err, "no_fields_to_update") {
		t.Fatalf("empty patch: %v", err)
	}
	if _, err := f.svc.Update(ctx, f.worker, b.ID, domain.Patch{Title: &title}); !httperr.IsKind(err, httperr.KindForbidden) {
		t.Fatalf("employee update: %v", err)
	}
}

func TestAdminUpdateReowns(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	b := testutil.CreateBooking(t, f.db, f.client.UserID, "Original")

	worker := f.worker.UserID
	if _, err := f.svc.AdminUpdate(ctx, f.admin, b.ID, domain.Patch{ClientID: &worker}); !httperr.IsBusiness(err, "invalid_client") {
		t.Fatalf("expected invalid_client, got %v", err)
	}

	other := f.other.UserID
	got, err := f.svc.AdminUpdate(ctx, f.admin, b.ID, domain.Patch{ClientID: &other})
	if err != nil || got.ClientID != other {
		t.Fatalf("re-own: %+v %v", got, err)
	}

	if _, err := f.svc.AdminUpdate(ctx, f.admin, 9999, domain.Patch{ClientID: &other}); !httperr.IsKind(err, httperr.KindNotFound) {
		t.Fatalf("missing booking: %v", err)
	}
}

func TestDeleteCascades(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	b := testutil.CreateBooking(t, f.db, f.client.UserID, "Festival")
	keep := testutil.CreateBooking(t, f.db, f.other.UserID, "Other")
	p := testutil.CreateProject(t, f.db, b.ID, f.manager.UserID, "Festival crew")
	pk := testutil.CreateProject(t, f.db, keep.ID, f.manager.UserID, "Other crew")
	testutil.CreateAssignment(t, f.db, p.ID, f.worker.UserID, f.manager.UserID)
	testutil.CreateAssignment(t, f.db, p.ID, f.worker.UserID, f.manager.UserID)
	testutil.CreateAssignment(t, f.db, pk.ID, f.worker.UserID, f.manager.UserID)

	if _, err := f.svc.Delete(ctx, f.other, b.ID); !httperr.IsKind(err, httperr.KindNotFoundOrDenied) {
		t.Fatalf("foreign delete: %v", err)
	}
	if n := count(t, f.db, &models.Assignment{}); n != 3 {
		t.Fatalf("foreign delete removed assignments: %d left", n)
	}

	removed, err := f.svc.Delete(ctx, f.client, b.ID)
	if err != nil {
		t.Fatalf("delete: %v", err)
	}
	if removed.Projects != 1 || removed.Assignments != 2 {
		t.Fatalf("unexpected cascade: %+v", removed)
	}

	if n := count(t, f.db, &models.Booking{}); n != 1 {
		t.Fatalf("bookings left: %d", n)
	}
	if n := count(t, f.db, &models.Project{}); n != 1 {
		t.Fatalf("projects left: %d", n)
	}
	if n := count(t, f.db, &models.Assignment{}); n != 1 {
		t.Fatalf("assignments left: %d", n)
	}

	if _, err := f.svc.AdminDelete(ctx, f.admin, b.ID); !httperr.IsKind(err, httperr.KindNotFound) {
		t.Fatalf("second delete: %v", err)
	}
	if _, err := f.svc.Delete(ctx, f.manager, keep.ID); !httperr.IsKind(err, httperr.KindForbidden) {
		t.Fatalf("manager delete: %v", err)
	}
}

func TestDeleteRollsBackOnFailure(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	b := testutil.CreateBooking(t, f.db, f.client.UserID, "Festival")
	p := testutil.CreateProject(t, f.db, b.ID, f.manager.UserID, "Festival crew")
	testutil.CreateAssignment(t, f.db, p.ID, f.worker.UserID, f.manager.UserID)

	// assignments go first, so the failure lands mid-cascade
	testutil.FailDeletes(t, f.db, "projects")

	_, err := f.svc.AdminDelete(ctx, f.admin, b.ID)
	var se *httperr.StoreError
	if !errors.As(err, &se) || !errors.Is(err, testutil.ErrInjected) {
		t.Fatalf("expected store error, got %v", err)
	}

	if n := count(t, f.db, &models.Assignment{}); n != 1 {
		t.Fatalf("assignments left: %d", n)
	}
	if n := count(t, f.db, &models.Project{}); n != 1 {
		t.Fatalf("projects left: %d", n)
	}
	if n := count(t, f.db, &models.Booking{}); n != 1 {
		t.Fatalf("bookings left: %d", n)
	}
}
