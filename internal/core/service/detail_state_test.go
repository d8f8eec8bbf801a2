package service

import (
	"context"
	"errors"
	"testing"

	"github.com/spotcheck/spotcheck/internal/core/domain"
)

func TestDetailStateFoundAppliesDefaults(t *testing.T) {
	gw := &stubGateway{
		getByIDFn: func(_ context.Context, id string) (*domain.Cafe, error) {
			if id != "c1" {
				t.Fatalf("fetched id %q, want c1", id)
			}
			return &domain.Cafe{ID: "c1", Name: "Library Brew", TotalSeats: 100, AvailableSeats: 30}, nil
		},
	}

	d := NewDetailState(gw, discardLogger)
	d.Load(context.Background(), "c1")

	if got := d.Phase(); got != PhaseFound {
		t.Fatalf("phase = %q, want %q", got, PhaseFound)
	}
	c := d.Cafe()
	if c.Emoji != domain.DefaultEmoji {
		t.Errorf("Emoji = %q, want the default", c.Emoji)
	}
	if c.Photo != domain.DefaultPhotoURL {
		t.Errorf("Photo = %q, want the stock URL", c.Photo)
	}
	if c.Hours == nil || c.Hours.Weekday.Open != "07:00" {
		t.Errorf("Hours = %+v, want the default schedule", c.Hours)
	}
	if c.Amenities == nil || !c.Amenities.Wifi {
		t.Errorf("Amenities = %+v, want the defaults", c.Amenities)
	}
	if c.NoiseLevel != domain.NoiseModerate {
		t.Errorf("NoiseLevel = %q, want Moderate", c.NoiseLevel)
	}
}

func TestDetailStateNotFound(t *testing.T) {
	gw := &stubGateway{
		getByIDFn: func(context.Context, string) (*domain.Cafe, error) {
			return nil, domain.ErrCafeNotFound
		},
	}

	d := NewDetailState(gw, discardLogger)
	d.Load(context.Background(), "missing")

	if got := d.Phase(); got != PhaseNotFound {
		t.Fatalf("phase = %q, want %q", got, PhaseNotFound)
	}
	if d.Cafe() != nil {
		t.Fatal("Cafe() should be nil in the not-found state")
	}
	if d.LastError() != nil {
		t.Fatal("genuine absence should not surface as an error")
	}
}

func TestDetailStateTransportFailureRendersAsNotFound(t *testing.T) {
	boom := &domain.TransportError{Op: "get_by_id", Err: errors.New("timeout")}
	gw := &stubGateway{
		getByIDFn: func(context.Context, string) (*domain.Cafe, error) {
			return nil, boom
		},
	}

	d := NewDetailState(gw, discardLogger)
	d.Load(context.Background(), "c1")

	if got := d.Phase(); got != PhaseNotFound {
		t.Fatalf("phase = %q, want %q: failures render as not-found", got, PhaseNotFound)
	}
	if !errors.Is(d.LastError(), boom) {
		t.Fatalf("LastError = %v, want the transport error kept", d.LastError())
	}
}

func TestDetailStateOccupancy(t *testing.T) {
	gw := &stubGateway{
		getByIDFn: func(context.Context, string) (*domain.Cafe, error) {
			return &domain.Cafe{ID: "c1", Name: "Library Brew", TotalSeats: 100, AvailableSeats: 30}, nil
		},
	}

	d := NewDetailState(gw, discardLogger)
	if d.Occupancy() != 0 {
		t.Fatal("occupancy before a load should be 0")
	}

	d.Load(context.Background(), "c1")
	if got := d.Occupancy(); got != 70 {
		t.Fatalf("occupancy = %d%%, want 70%%", got)
	}
}
