package repository

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/harentsoaR/doctors-portal/internal/models"
	"github.com/harentsoaR/doctors-portal/internal/store"
	"github.com/harentsoaR/doctors-portal/internal/store/memory"
	"github.com/harentsoaR/doctors-portal/internal/store/mongostore"
)

var (
	_ store.Collection[models.Booking] = (*memory.Collection[models.Booking])(nil)
	_ store.Collection[models.Booking] = (*mongostore.Collection[models.Booking])(nil)
	_ store.Collection[models.User]    = (*mongostore.Collection[models.User])(nil)
)

func TestBookingRepository(t *testing.T) {
	ctx := context.Background()
	repo := NewBookingRepository(memory.NewCollection[models.Booking]([]string{"treatment", "date", "patient"}))

	first := &models.Booking{Treatment: "Cleaning", Date: "2024-01-01", Slot: "9am", Patient: "a@x.com"}
	require.NoError(t, repo.Insert(ctx, first))
	require.NoError(t, repo.Insert(ctx, &models.Booking{Treatment: "Cleaning", Date: "2024-01-02", Slot: "9am", Patient: "a@x.com"}))
	require.NoError(t, repo.Insert(ctx, &models.Booking{Treatment: "Cleaning", Date: "2024-01-01", Slot: "10am", Patient: "b@x.com"}))

	err := repo.Insert(ctx, &models.Booking{Treatment: "Cleaning", Date: "2024-01-01", Slot: "11am", Patient: "a@x.com"})
	assert.ErrorIs(t, err, store.ErrDuplicate)

	got, err := repo.FindByKey(ctx, "Cleaning", "2024-01-01", "a@x.com")
	require.NoError(t, err)
	assert.Equal(t, first.ID, got.ID)
	assert.Equal(t, "9am", got.Slot)

	_, err = repo.FindByKey(ctx, "Cleaning", "2024-01-03", "a@x.com")
	assert.ErrorIs(t, err, store.ErrNotFound)

	byDate, err := repo.ListByDate(ctx, "2024-01-01")
	require.NoError(t, err)
	assert.Len(t, byDate, 2)

	byPatient, err := repo.ListByPatient(ctx, "a@x.com")
	require.NoError(t, err)
	assert.Len(t, byPatient, 2)
}

func TestUserRepository_UpsertKeepsRole(t *testing.T) {
	ctx := context.Background()
	repo := NewUserRepository(memory.NewCollection[models.User]([]string{"email"}))

	res, err := repo.Upsert(ctx, "a@x.com", "")
	require.NoError(t, err)
	assert.Equal(t, int64(1), res.UpsertedCount)

	_, err = repo.MakeAdmin(ctx, "a@x.com")
	require.NoError(t, err)

	_, err = repo.Upsert(ctx, "a@x.com", "Ann")
	require.NoError(t, err)

	u, err := repo.FindByEmail(ctx, "a@x.com")
	require.NoError(t, err)
	assert.Equal(t, "Ann", u.Name)
	assert.True(t, u.IsAdmin())
}

func TestUserRepository_MakeAdminUnknownUser(t *testing.T) {
	repo := NewUserRepository(memory.NewCollection[models.User]([]string{"email"}))

	_, err := repo.MakeAdmin(context.Background(), "ghost@x.com")
	assert.ErrorIs(t, err, store.ErrNotFound)

	users, err := repo.List(context.Background())
	require.NoError(t, err)
	assert.Empty(t, users, "promotion must not create a user")
}

func TestDoctorRepository(t *testing.T) {
	ctx := context.Background()
	repo := NewDoctorRepository(memory.NewCollection[models.Doctor]([]string{"email"}))

	require.NoError(t, repo.Insert(ctx, &models.Doctor{Name: "Dr. A", Email: "a@x.com", Specialty: "Orthodontics"}))
	assert.ErrorIs(t, repo.Insert(ctx, &models.Doctor{Name: "Dr. A2", Email: "a@x.com"}), store.ErrDuplicate)

	doctors, err := repo.List(ctx)
	require.NoError(t, err)
	require.Len(t, doctors, 1)
	assert.Equal(t, "Orthodontics", doctors[0].Specialty)

	assert.ErrorIs(t, repo.DeleteByEmail(ctx, "b@x.com"), store.ErrNotFound)
	assert.NoError(t, repo.DeleteByEmail(ctx, "a@x.com"))
}
