package availability

import (
	"context"
	"errors"
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/harentsoaR/doctors-portal/internal/models"
)

func cleaning() models.Service {
	return models.Service{Name: "Cleaning", Slots: []string{"9am", "10am", "11am"}}
}

func TestCompute_RemovesBookedSlot(t *testing.T) {
	bookings := []models.Booking{{Treatment: "Cleaning", Date: "2024-01-01", Slot: "10am"}}

	got := Compute("2024-01-01", []models.Service{cleaning()}, bookings)

	require.Len(t, got, 1)
	assert.Equal(t, []string{"9am", "11am"}, got[0].Slots)
}

func TestCompute_NoBookingsReturnsTemplate(t *testing.T) {
	got := Compute("2024-01-01", []models.Service{cleaning()}, nil)
	assert.Equal(t, cleaning().Slots, got[0].Slots)
}

func TestCompute_FullyBookedServiceIsKept(t *testing.T) {
	bookings := []models.Booking{
		{Treatment: "Cleaning", Date: "d", Slot: "9am"},
		{Treatment: "Cleaning", Date: "d", Slot: "10am"},
		{Treatment: "Cleaning", Date: "d", Slot: "11am"},
	}
	got := Compute("d", []models.Service{cleaning()}, bookings)

	require.Len(t, got, 1)
	assert.Equal(t, "Cleaning", got[0].Name)
	assert.NotNil(t, got[0].Slots)
	assert.Empty(t, got[0].Slots)
}

func TestCompute_IgnoresOtherDatesAndTreatments(t *testing.T) {
	services := []models.Service{cleaning(), {Name: "Filling", Slots: []string{"9am", "10am"}}}
	bookings := []models.Booking{
		{Treatment: "Cleaning", Date: "other-day", Slot: "9am"},
		{Treatment: "Filling", Date: "d", Slot: "9am"},
		{Treatment: "Whitening", Date: "d", Slot: "10am"},
	}
	got := Compute("d", services, bookings)

	require.Len(t, got, 2)
	assert.Equal(t, []string{"9am", "10am", "11am"}, got[0].Slots)
	assert.Equal(t, []string{"10am"}, got[1].Slots)
}

func TestCompute_DoesNotMutateTemplate(t *testing.T) {
	services := []models.Service{cleaning()}
	bookings := []models.Booking{{Treatment: "Cleaning", Date: "d", Slot: "9am"}}

	first := Compute("d", services, bookings)
	second := Compute("d", services, bookings)

	assert.Equal(t, []string{"9am", "10am", "11am"}, services[0].Slots)
	assert.Equal(t, first, second)
}

func TestCompute_BookingOrderDoesNotMatter(t *testing.T) {
	services := []models.Service{
		{Name: "A", Slots: []string{"1", "2", "3", "4", "5", "6"}},
		{Name: "B", Slots: []string{"1", "2", "3"}},
	}
	bookings := []models.Booking{
		{Treatment: "A", Date: "d", Slot: "2"},
		{Treatment: "A", Date: "d", Slot: "5"},
		{Treatment: "B", Date: "d", Slot: "1"},
		{Treatment: "A", Date: "d", Slot: "2"},
		{Treatment: "B", Date: "x", Slot: "3"},
	}
	want := Compute("d", services, bookings)

	r := rand.New(rand.NewSource(1))
	for i := 0; i < 20; i++ {
		shuffled := append([]models.Booking(nil), bookings...)
		r.Shuffle(len(shuffled), func(a, b int) { shuffled[a], shuffled[b] = shuffled[b], shuffled[a] })
		assert.Equal(t, want, Compute("d", services, shuffled))
	}
	assert.Equal(t, []string{"1", "3", "4", "6"}, want[0].Slots)
	assert.Equal(t, []string{"2", "3"}, want[1].Slots)
}

type stubServices struct {
	services []models.Service
	err      error
}

func (s stubServices) List(context.Context) ([]models.Service, error) { return s.services, s.err }

type stubBookings struct {
	bookings []models.Booking
	err      error
	gotDate  *string
}

func (s stubBookings) ListByDate(_ context.Context, date string) ([]models.Booking, error) {
	if s.gotDate != nil {
		*s.gotDate = date
	}
	return s.bookings, s.err
}

func TestEngine_ForDate(t *testing.T) {
	var gotDate string
	e := NewEngine(
		stubServices{services: []models.Service{cleaning()}},
		stubBookings{bookings: []models.Booking{{Treatment: "Cleaning", Date: "2024-01-01", Slot: "10am"}}, gotDate: &gotDate},
	)

	got, err := e.ForDate(context.Background(), "2024-01-01")
	require.NoError(t, err)
	assert.Equal(t, "2024-01-01", gotDate)
	assert.Equal(t, []string{"9am", "11am"}, got[0].Slots)
}

func TestEngine_ForDateStoreErrors(t *testing.T) {
	boom := errors.New("boom")

	_, err := NewEngine(stubServices{err: boom}, stubBookings{}).ForDate(context.Background(), "d")
	assert.ErrorIs(t, err, boom)

	_, err = NewEngine(stubServices{}, stubBookings{err: boom}).ForDate(context.Background(), "d")
	assert.ErrorIs(t, err, boom)
}
