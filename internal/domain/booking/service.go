package booking

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/docport/docport/internal/domain/catalog"
	"github.com/docport/docport/internal/domain/payment"
)

var (
	// ErrUnknownTreatment rejects bookings whose treatment does not
	// name a catalog entry.
	ErrUnknownTreatment = errors.New("unknown treatment")
	// ErrInvalidBooking rejects admission requests with missing fields.
	ErrInvalidBooking = errors.New("invalid booking")
	// ErrSettlementIncomplete reports that the payment record was
	// written but the booking could not be marked paid, so the caller
	// must re-drive settlement rather than assume success.
	ErrSettlementIncomplete = errors.New("settlement incomplete")
)

// TreatmentCatalog is the slice of the catalog this domain reads.
type TreatmentCatalog interface {
	List(ctx context.Context) ([]*catalog.Treatment, error)
	GetByName(ctx context.Context, name string) (*catalog.Treatment, error)
}

// PaymentLog records settled payments and removes them again when
// settlement compensation kicks in.
type PaymentLog interface {
	Record(ctx context.Context, p *payment.Payment) error
	Remove(ctx context.Context, id primitive.ObjectID) error
}

// Notifier sends confirmation messages to the patient. Delivery is
// fire-and-forget; a booking or settlement never fails on it.
type Notifier interface {
	BookingConfirmed(ctx context.Context, patient, treatment, date, slot string)
	PaymentReceived(ctx context.Context, patient, treatment, transactionID string)
}

type Service struct {
	bookings Repository
	catalog  TreatmentCatalog
	payments PaymentLog
	notifier Notifier
}

func NewService(bookings Repository, cat TreatmentCatalog, payments PaymentLog) *Service {
	return &Service{bookings: bookings, catalog: cat, payments: payments}
}

// WithNotifier enables confirmation emails. Without it admissions and
// settlements proceed silently.
func (s *Service) WithNotifier(n Notifier) *Service {
	s.notifier = n
	return s
}

// Admit accepts or rejects a new booking. The dedup key is
// (treatment, date, patient); the store's unique index is the arbiter,
// so concurrent admissions for the same key can never both succeed.
// A rejection returns the conflicting record with Accepted=false and a
// nil error — already-booked is an answer, not a fault.
func (s *Service) Admit(ctx context.Context, b *Booking) (*AdmissionResult, error) {
	if b.Treatment == "" || b.AppointmentDate == "" || b.Slot == "" || b.Patient == "" {
		return nil, fmt.Errorf("%w: treatment, appointmentDate, slot and patient are required", ErrInvalidBooking)
	}

	if _, err := s.catalog.GetByName(ctx, b.Treatment); err != nil {
		if errors.Is(err, catalog.ErrNotFound) {
			return nil, fmt.Errorf("%w: %q", ErrUnknownTreatment, b.Treatment)
		}
		return nil, err
	}

	err := s.bookings.Insert(ctx, b)
	if err == nil {
		if s.notifier != nil {
			go s.notifier.BookingConfirmed(context.WithoutCancel(ctx), b.Patient, b.Treatment, b.AppointmentDate, b.Slot)
		}
		return &AdmissionResult{Accepted: true, Booking: b}, nil
	}
	if !errors.Is(err, ErrDuplicate) {
		return nil, err
	}

	existing, err := s.bookings.FindByKey(ctx, b.Treatment, b.AppointmentDate, b.Patient)
	if err != nil {
		// The index said duplicate but the record is gone; report the
		// rejection without the conflicting document.
		if errors.Is(err, ErrNotFound) {
			return &AdmissionResult{Accepted: false}, nil
		}
		return nil, err
	}
	return &AdmissionResult{Accepted: false, Booking: existing}, nil
}

// Availability computes per-treatment remaining slots for a date:
// each treatment's full slot template, in original order, minus the
// slots already booked for that treatment on that date.
func (s *Service) Availability(ctx context.Context, date string) ([]*catalog.Treatment, error) {
	treatments, err := s.catalog.List(ctx)
	if err != nil {
		return nil, err
	}

	booked, err := s.bookings.ListByDate(ctx, date)
	if err != nil {
		return nil, err
	}

	// treatment name -> set of booked slots
	bookedSlots := make(map[string]map[string]bool, len(booked))
	for _, b := range booked {
		if bookedSlots[b.Treatment] == nil {
			bookedSlots[b.Treatment] = make(map[string]bool)
		}
		bookedSlots[b.Treatment][b.Slot] = true
	}

	for _, t := range treatments {
		taken := bookedSlots[t.Name]
		if len(taken) == 0 {
			continue
		}
		remaining := make([]string, 0, len(t.Slots))
		for _, slot := range t.Slots {
			if !taken[slot] {
				remaining = append(remaining, slot)
			}
		}
		t.Slots = remaining
	}

	return treatments, nil
}

// DefaultDate is today's date in the catalog's display format, used
// when the availability query omits an explicit date.
func DefaultDate() string {
	return time.Now().Format("January 2, 2006")
}

func (s *Service) Get(ctx context.Context, id primitive.ObjectID) (*Booking, error) {
	return s.bookings.GetByID(ctx, id)
}

func (s *Service) ListByPatient(ctx context.Context, email string) ([]*Booking, error) {
	return s.bookings.ListByPatient(ctx, email)
}

// Settle records a completed payment and marks the booking paid. The
// booking is resolved first so a missing id fails before any payment
// document exists. The two writes are not atomic in the store; when
// the booking update fails after the payment insert, the payment is
// removed again and ErrSettlementIncomplete is returned so the caller
// can re-drive.
func (s *Service) Settle(ctx context.Context, id primitive.ObjectID, pay *payment.Payment) (*Booking, error) {
	if pay.TransactionID == "" {
		return nil, fmt.Errorf("%w: transactionId is required", ErrInvalidBooking)
	}

	if _, err := s.bookings.GetByID(ctx, id); err != nil {
		return nil, err
	}

	pay.BookingID = id
	if pay.CreatedAt.IsZero() {
		pay.CreatedAt = time.Now()
	}
	if err := s.payments.Record(ctx, pay); err != nil {
		return nil, err
	}

	if err := s.bookings.MarkPaid(ctx, id, pay.TransactionID); err != nil {
		if rmErr := s.payments.Remove(ctx, pay.ID); rmErr != nil {
			return nil, fmt.Errorf("%w: booking update failed (%v) and payment %s could not be removed: %v",
				ErrSettlementIncomplete, err, pay.ID.Hex(), rmErr)
		}
		return nil, err
	}

	updated, err := s.bookings.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if s.notifier != nil {
		go s.notifier.PaymentReceived(context.WithoutCancel(ctx), updated.Patient, updated.Treatment, updated.TransactionID)
	}
	return updated, nil
}
