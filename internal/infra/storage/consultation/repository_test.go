package consultation

import (
	"context"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-SalonBookingService/internal/domain"
)

func TestRepository_Create(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	mock.ExpectQuery(`INSERT INTO consultations \(client_id,status,notes\) VALUES \(\$1,\$2,\$3\) RETURNING id, created_at`).
		WithArgs(int64(5), "pending", "перезвоните после 18").
		WillReturnRows(sqlmock.NewRows([]string{"id", "created_at"}).AddRow(int64(11), time.Now()))

	c, err := NewRepository(db).Create(context.Background(), &domain.Consultation{
		ClientID: 5,
		Status:   domain.ConsultationPending,
		Notes:    "перезвоните после 18",
	})
	require.NoError(t, err)
	assert.Equal(t, int64(11), c.ID)
	assert.NoError(t, mock.ExpectationsWereMet())
}
