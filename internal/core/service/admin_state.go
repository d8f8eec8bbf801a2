package service

import (
	"context"
	"fmt"
	"strconv"

	"github.com/go-playground/validator/v10"
	"github.com/rs/zerolog"

	"github.com/spotcheck/spotcheck/internal/core/domain"
	"github.com/spotcheck/spotcheck/internal/core/ports"
)

// FormMode distinguishes the two entry modes of the admin café form.
type FormMode string

const (
	ModeCreate FormMode = "create"
	ModeEdit   FormMode = "edit"
)

const (
	defaultFormSeats = 50
)

// AdminState drives the admin dashboard: its own copy of the café list and
// a single draft record edited through the create/edit modal. Field changes
// merge into the draft without replacing sibling fields; submit routes to
// create or update by mode, then closes the modal and re-derives the list
// from the server. There is no optimistic update anywhere.
type AdminState struct {
	gateway  ports.CafeGateway
	validate *validator.Validate
	logger   zerolog.Logger

	phase     Phase
	cafes     []domain.Cafe
	modalOpen bool
	mode      FormMode
	editingID string
	draft     ports.CafeDraft
	lastErr   error
}

func NewAdminState(gateway ports.CafeGateway, logger zerolog.Logger) *AdminState {
	return &AdminState{
		gateway:  gateway,
		validate: validator.New(),
		logger:   logger,
		phase:    PhaseLoading,
	}
}

// Refresh re-fetches the full list. A failure degrades to an empty table.
func (a *AdminState) Refresh(ctx context.Context) {
	a.phase = PhaseLoading
	cafes, err := a.gateway.ListAll(ctx)
	a.lastErr = err
	if err != nil {
		a.logger.Warn().Err(err).Msg("admin list fetch failed")
		cafes = nil
	}
	a.cafes = cafes
	a.phase = phaseFor(len(cafes))
}

// Cafes returns the loaded collection in server order.
func (a *AdminState) Cafes() []domain.Cafe { return a.cafes }

// Phase returns the current machine state.
func (a *AdminState) Phase() Phase { return a.phase }

// LastError returns the failure behind the current view, if any.
func (a *AdminState) LastError() error { return a.lastErr }

// Summary derives the dashboard stat cards from the loaded collection.
func (a *AdminState) Summary() DashboardSummary {
	var s DashboardSummary
	s.TotalCafes = len(a.cafes)
	for _, c := range a.cafes {
		if c.Status == domain.StatusAvailable {
			s.AvailableCafes++
		}
		s.TotalSeats += c.TotalSeats
		s.AvailableSeats += c.AvailableSeats
	}
	return s
}

// defaultDraft is the blank form: 50/50 seats, Available, default hours,
// amenities and emoji.
func defaultDraft() ports.CafeDraft {
	return ports.CafeDraft{
		Emoji:          domain.DefaultEmoji,
		TotalSeats:     defaultFormSeats,
		AvailableSeats: defaultFormSeats,
		Status:         domain.StatusAvailable,
		Hours:          domain.DefaultHours(),
		Amenities:      domain.DefaultAmenities(),
		NoiseLevel:     domain.NoiseModerate,
	}
}

// OpenCreate opens the modal in create mode with a fresh default draft.
func (a *AdminState) OpenCreate() {
	a.mode = ModeCreate
	a.editingID = ""
	a.draft = defaultDraft()
	a.modalOpen = true
}

// OpenEdit opens the modal in edit mode with the draft initialized from an
// existing record. Optional nested fields absent on the source fall back
// to the same defaults the create form starts with.
func (a *AdminState) OpenEdit(cafe domain.Cafe) {
	a.mode = ModeEdit
	a.editingID = cafe.ID
	d := ports.CafeDraft{
		Name:           cafe.Name,
		Location:       cafe.Location,
		Description:    cafe.Description,
		Emoji:          cafe.Emoji,
		Photo:          cafe.Photo,
		TotalSeats:     cafe.TotalSeats,
		AvailableSeats: cafe.AvailableSeats,
		Status:         cafe.Status,
		Hours:          domain.DefaultHours(),
		Amenities:      domain.DefaultAmenities(),
		NoiseLevel:     cafe.NoiseLevel,
	}
	if d.Emoji == "" {
		d.Emoji = domain.DefaultEmoji
	}
	if cafe.Hours != nil {
		d.Hours = *cafe.Hours
	}
	if cafe.Amenities != nil {
		d.Amenities = *cafe.Amenities
	}
	if d.NoiseLevel == "" {
		d.NoiseLevel = domain.NoiseModerate
	}
	a.draft = d
	a.modalOpen = true
}

// CloseModal discards nothing: the draft stays until the next Open call,
// matching the original form behavior.
func (a *AdminState) CloseModal() { a.modalOpen = false }

// ModalOpen reports whether the form modal is showing.
func (a *AdminState) ModalOpen() bool { return a.modalOpen }

// Mode returns the form entry mode.
func (a *AdminState) Mode() FormMode { return a.mode }

// Draft returns the current draft record.
func (a *AdminState) Draft() ports.CafeDraft { return a.draft }

// SetField merges a single top-level field change into the draft, leaving
// every sibling untouched. Seat counts parse as integers and fall back to
// 0 on malformed input, mirroring the original form's parseInt handling.
func (a *AdminState) SetField(name, value string) error {
	switch name {
	case "name":
		a.draft.Name = value
	case "location":
		a.draft.Location = value
	case "description":
		a.draft.Description = value
	case "emoji":
		a.draft.Emoji = value
	case "photo":
		a.draft.Photo = value
	case "totalSeats":
		a.draft.TotalSeats = atoiOrZero(value)
	case "availableSeats":
		a.draft.AvailableSeats = atoiOrZero(value)
	case "status":
		a.draft.Status = domain.CafeStatus(value)
	case "noiseLevel":
		a.draft.NoiseLevel = domain.NoiseLevel(value)
	default:
		return fmt.Errorf("unknown field %q", name)
	}
	return nil
}

// SetHours merges one open/close time into the draft's schedule for a
// single day, preserving the day's other bound and the other days.
func (a *AdminState) SetHours(day, field, value string) error {
	var dh *domain.DayHours
	switch day {
	case "weekday":
		dh = &a.draft.Hours.Weekday
	case "saturday":
		dh = &a.draft.Hours.Saturday
	case "sunday":
		dh = &a.draft.Hours.Sunday
	default:
		return fmt.Errorf("unknown day %q", day)
	}
	switch field {
	case "open":
		dh.Open = value
	case "close":
		dh.Close = value
	default:
		return fmt.Errorf("unknown hours field %q", field)
	}
	return nil
}

// ToggleAmenity flips a single amenity flag on the draft.
func (a *AdminState) ToggleAmenity(name string) error {
	switch name {
	case "wifi":
		a.draft.Amenities.Wifi = !a.draft.Amenities.Wifi
	case "powerOutlets":
		a.draft.Amenities.PowerOutlets = !a.draft.Amenities.PowerOutlets
	case "quietZone":
		a.draft.Amenities.QuietZone = !a.draft.Amenities.QuietZone
	case "foodAvailable":
		a.draft.Amenities.FoodAvailable = !a.draft.Amenities.FoodAvailable
	default:
		return fmt.Errorf("unknown amenity %q", name)
	}
	return nil
}

// ValidateDraft checks the draft against the form constraints, including
// 0 <= availableSeats <= totalSeats.
func (a *AdminState) ValidateDraft() error {
	return a.validate.Struct(a.draft)
}

// Submit validates the draft and routes it to create or update by mode.
// Whatever the outcome, the modal closes and the list is re-fetched from
// the server; the returned error is for the blocking alert the admin UI
// shows on failure.
func (a *AdminState) Submit(ctx context.Context) error {
	if err := a.ValidateDraft(); err != nil {
		return err
	}

	var err error
	if a.mode == ModeEdit {
		_, err = a.gateway.Update(ctx, a.editingID, a.draft)
	} else {
		_, err = a.gateway.Create(ctx, a.draft)
	}

	a.modalOpen = false
	a.Refresh(ctx)

	if err != nil {
		a.logger.Error().Err(err).Str("mode", string(a.mode)).Msg("cafe save failed")
		return fmt.Errorf("failed to save café: %w", err)
	}
	return nil
}

// Delete removes a café after the confirm callback approves it. A declined
// confirmation issues no call and leaves the list untouched.
func (a *AdminState) Delete(ctx context.Context, id string, confirm func(name string) bool) error {
	name := id
	for _, c := range a.cafes {
		if c.ID == id {
			name = c.Name
			break
		}
	}
	if !confirm(name) {
		return nil
	}

	err := a.gateway.Delete(ctx, id)
	a.Refresh(ctx)
	if err != nil {
		a.logger.Error().Err(err).Str("cafe_id", id).Msg("cafe delete failed")
		return fmt.Errorf("failed to delete café: %w", err)
	}
	return nil
}

// PatchSeats updates only the available-seat count of a café, then
// re-fetches.
func (a *AdminState) PatchSeats(ctx context.Context, id string, availableSeats int, notes string) error {
	_, err := a.gateway.PatchSeats(ctx, id, availableSeats, notes)
	a.Refresh(ctx)
	if err != nil {
		a.logger.Error().Err(err).Str("cafe_id", id).Msg("seat update failed")
		return fmt.Errorf("failed to update seats: %w", err)
	}
	return nil
}

// Stats fetches the backend's aggregate overview.
func (a *AdminState) Stats(ctx context.Context) (*domain.StatsOverview, error) {
	return a.gateway.StatsOverview(ctx)
}

func atoiOrZero(s string) int {
	n, err := strconv.Atoi(s)
	if err != nil {
		return 0
	}
	return n
}
