package booking

import (
	"context"
	"errors"
	"strings"
	"time"

	"gorm.io/gorm"

	"github.com/BruksfildServices01/staffing-scheduler/internal/audit"
	"github.com/BruksfildServices01/staffing-scheduler/internal/domain/access"
	domain "github.com/BruksfildServices01/staffing-scheduler/internal/domain/booking"
	"github.com/BruksfildServices01/staffing-scheduler/internal/httperr"
	"github.com/BruksfildServices01/staffing-scheduler/internal/models"
)

// ======================================================
// INPUT
// ======================================================

type CreateInput struct {
	Title          string
	Description    string
	Location       string
	RequiredSkills string
	StartDate      *time.Time
	EndDate        *time.Time
	Budget         *float64

	// Status defaults to pending when blank.
	Status string
}

// AdminCreateInput books on behalf of a client.
type AdminCreateInput struct {
	CreateInput
	ClientID uint
}

// ======================================================
// SERVICE
// ======================================================

type Service struct {
	repo  domain.Repository
	audit audit.Recorder
}

func NewService(repo domain.Repository, audit audit.Recorder) *Service {
	return &Service{repo: repo, audit: audit}
}

// --------------------------------------------------
// Create
// --------------------------------------------------

func (s *Service) Create(
	ctx context.Context,
	id *access.Identity,
	in CreateInput,
) (*models.Booking, error) {

	if err := access.Authorize(id, access.OpBookingCreate); err != nil {
		return nil, err
	}
	return s.create(ctx, id, id.UserID, in)
}

func (s *Service) AdminCreate(
	ctx context.Context,
	id *access.Identity,
	in AdminCreateInput,
) (*models.Booking, error) {

	if err := access.Authorize(id, access.OpAdminBookingCreate); err != nil {
		return nil, err
	}
	if in.ClientID == 0 {
		return nil, httperr.ErrBusiness("missing_fields")
	}
	if err := s.assertClient(ctx, in.ClientID); err != nil {
		return nil, err
	}
	return s.create(ctx, id, in.ClientID, in.CreateInput)
}

func (s *Service) create(
	ctx context.Context,
	id *access.Identity,
	clientID uint,
	in CreateInput,
) (*models.Booking, error) {

	if strings.TrimSpace(in.Title) == "" || strings.TrimSpace(in.Description) == "" {
		return nil, httperr.ErrBusiness("missing_fields")
	}

	status := strings.TrimSpace(in.Status)
	if status == "" {
		status = domain.StatusPending
	}

	b := &models.Booking{
		ClientID:       clientID,
		Title:          in.Title,
		Description:    in.Description,
		Location:       in.Location,
		RequiredSkills: in.RequiredSkills,
		StartDate:      in.StartDate,
		EndDate:        in.EndDate,
		Budget:         in.Budget,
		Status:         status,
	}

	if err := s.repo.CreateBooking(ctx, b); err != nil {
		return nil, httperr.Store("create booking", err)
	}

	s.audit.Dispatch(audit.NewEvent(id.UserID, "booking_created", "booking", b.ID, nil))
	return b, nil
}

// --------------------------------------------------
// List
// --------------------------------------------------

// List serves staff with any filter.
func (s *Service) List(
	ctx context.Context,
	id *access.Identity,
	f domain.Filter,
) ([]models.Booking, error) {

	if err := access.Authorize(id, access.OpBookingList); err != nil {
		return nil, err
	}
	return s.list(ctx, f)
}

// ListMine returns the caller's own bookings.
func (s *Service) ListMine(
	ctx context.Context,
	id *access.Identity,
) ([]models.Booking, error) {

	if err := access.Authorize(id, access.OpBookingListOwn); err != nil {
		return nil, err
	}
	return s.list(ctx, domain.ByClient(id.UserID))
}

func (s *Service) AdminList(
	ctx context.Context,
	id *access.Identity,
	f domain.Filter,
) ([]models.Booking, error) {

	if err := access.Authorize(id, access.OpAdminBookingList); err != nil {
		return nil, err
	}
	return s.list(ctx, f)
}

func (s *Service) list(ctx context.Context, f domain.Filter) ([]models.Booking, error) {
	out, err := s.repo.ListBookings(ctx, f)
	if err != nil {
		return nil, httperr.Store("list bookings", err)
	}
	return out, nil
}

// --------------------------------------------------
// Update
// --------------------------------------------------

// Update applies p. Clients may only touch their own bookings and never
// re-own them.
func (s *Service) Update(
	ctx context.Context,
	id *access.Identity,
	bookingID uint,
	p domain.Patch,
) (*models.Booking, error) {

	if err := access.Authorize(id, access.OpBookingUpdate); err != nil {
		return nil, err
	}
	if id.Role != access.RoleAdmin {
		p.ClientID = nil
	}
	return s.update(ctx, id, bookingID, p)
}

func (s *Service) AdminUpdate(
	ctx context.Context,
	id *access.Identity,
	bookingID uint,
	p domain.Patch,
) (*models.Booking, error) {

	if err := access.Authorize(id, access.OpAdminBookingUpdate); err != nil {
		return nil, err
	}
	return s.update(ctx, id, bookingID, p)
}

func (s *Service) update(
	ctx context.Context,
	id *access.Identity,
	bookingID uint,
	p domain.Patch,
) (*models.Booking, error) {

	cols := p.Columns()
	if len(cols) == 0 {
		return nil, httperr.ErrBusiness("no_fields_to_update")
	}

	if _, err := s.load(ctx, id, bookingID); err != nil {
		return nil, err
	}

	if p.ClientID != nil {
		if err := s.assertClient(ctx, *p.ClientID); err != nil {
			return nil, err
		}
	}

	b, err := s.repo.UpdateBooking(ctx, bookingID, cols)
	if err != nil {
		return nil, httperr.Store("update booking", err)
	}

	s.audit.Dispatch(audit.NewEvent(id.UserID, "booking_updated", "booking", b.ID, cols))
	return b, nil
}

// --------------------------------------------------
// Delete
// --------------------------------------------------

// Delete removes the booking together with its projects and their
// assignments.
func (s *Service) Delete(
	ctx context.Context,
	id *access.Identity,
	bookingID uint,
) (domain.Cascade, error) {

	if err := access.Authorize(id, access.OpBookingDelete); err != nil {
		return domain.Cascade{}, err
	}
	return s.delete(ctx, id, bookingID)
}

func (s *Service) AdminDelete(
	ctx context.Context,
	id *access.Identity,
	bookingID uint,
) (domain.Cascade, error) {

	if err := access.Authorize(id, access.OpAdminBookingDelete); err != nil {
		return domain.Cascade{}, err
	}
	return s.delete(ctx, id, bookingID)
}

func (s *Service) delete(
	ctx context.Context,
	id *access.Identity,
	bookingID uint,
) (domain.Cascade, error) {

	if _, err := s.load(ctx, id, bookingID); err != nil {
		return domain.Cascade{}, err
	}

	removed, err := s.repo.DeleteBookingCascade(ctx, bookingID)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return domain.Cascade{}, s.missing(id)
	}
	if err != nil {
		return domain.Cascade{}, httperr.Store("delete booking", err)
	}

	s.audit.Dispatch(audit.NewEvent(id.UserID, "booking_deleted", "booking", bookingID, removed))
	return removed, nil
}

// --------------------------------------------------
// Helpers
// --------------------------------------------------

// load fetches the booking the caller is about to mutate. A client asking
// for a foreign booking gets the same answer as for a missing one.
func (s *Service) load(
	ctx context.Context,
	id *access.Identity,
	bookingID uint,
) (*models.Booking, error) {

	b, err := s.repo.GetBooking(ctx, bookingID)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, s.missing(id)
	}
	if err != nil {
		return nil, httperr.Store("get booking", err)
	}

	if !id.Role.IsStaff() && b.ClientID != id.UserID {
		return nil, s.missing(id)
	}
	return b, nil
}

func (s *Service) missing(id *access.Identity) error {
	if id.Role.IsStaff() {
		return httperr.ErrNotFound("booking_not_found")
	}
	return httperr.ErrNotFoundOrDenied("booking_not_found")
}

func (s *Service) assertClient(ctx context.Context, clientID uint) error {
	u, err := s.repo.GetUser(ctx, clientID)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return httperr.ErrBusiness("invalid_client")
	}
	if err != nil {
		return httperr.Store("get client", err)
	}
	if u.Role != string(access.RoleClient) {
		return httperr.ErrBusiness("invalid_client")
	}
	return nil
}
