//go:build integration

package main_test

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/wait"
	"go.uber.org/zap"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"

	"github.com/wrnass1/hotelbooking/internal/application"
	"github.com/wrnass1/hotelbooking/internal/cache"
	bookingDomain "github.com/wrnass1/hotelbooking/internal/domain/booking"
	hotelDomain "github.com/wrnass1/hotelbooking/internal/domain/hotel"
	roomDomain "github.com/wrnass1/hotelbooking/internal/domain/room"
	"github.com/wrnass1/hotelbooking/internal/repository"
)

// testInfra holds shared test infrastructure.
type testInfra struct {
	DB      *gorm.DB
	Cleanup func()
}

// bookingStack holds wired-up application services backed by the test
// database. Kafka and Redis are left nil; the services degrade to direct
// reads and skip publishing.
type bookingStack struct {
	Bookings *application.BookingService
	Hotels   *application.HotelService
	Rooms    *application.RoomService
}

// setupPostgres starts a PostgreSQL testcontainer, migrates the schema, and
// installs the non-overlap exclusion constraint the production migrations
// carry.
func setupPostgres(t *testing.T) *testInfra {
	t.Helper()
	ctx := context.Background()

	req := testcontainers.ContainerRequest{
		Image:        "postgres:16-alpine",
		ExposedPorts: []string{"5432/tcp"},
		Env: map[string]string{
			"POSTGRES_USER":     "test",
			"POSTGRES_PASSWORD": "test",
			"POSTGRES_DB":       "test_hotelbooking",
		},
		WaitingFor: wait.ForLog("database system is ready to accept connections").
			WithOccurrence(2).
			WithStartupTimeout(60 * time.Second),
	}
	container, err := testcontainers.GenericContainer(ctx, testcontainers.GenericContainerRequest{
		ContainerRequest: req,
		Started:          true,
	})
	require.NoError(t, err, "failed to start PostgreSQL container")

	host, err := container.Host(ctx)
	require.NoError(t, err)
	port, err := container.MappedPort(ctx, "5432")
	require.NoError(t, err)

	dsn := fmt.Sprintf("host=%s port=%s user=test password=test dbname=test_hotelbooking sslmode=disable", host, port.Port())

	// Poll until GORM can actually connect and ping.
	var db *gorm.DB
	require.Eventually(t, func() bool {
		var err error
		db, err = gorm.Open(postgres.Open(dsn), &gorm.Config{})
		if err != nil {
			return false
		}
		sqlDB, err := db.DB()
		if err != nil {
			return false
		}
		return sqlDB.Ping() == nil
	}, 30*time.Second, 1*time.Second, "PostgreSQL not ready for connections")

	require.NoError(t, db.Exec(`CREATE EXTENSION IF NOT EXISTS btree_gist`).Error)
	require.NoError(t, db.AutoMigrate(
		&repository.HotelModel{},
		&repository.FacilityModel{},
		&repository.HotelFacilityModel{},
		&repository.RoomModel{},
		&repository.AmenityModel{},
		&repository.RoomAmenityModel{},
		&repository.BookingModel{},
		&repository.UserModel{},
		&repository.APIKeyModel{},
	))
	require.NoError(t, db.Exec(`
		ALTER TABLE bookings ADD CONSTRAINT bookings_no_overlap
		EXCLUDE USING gist (room_id WITH =, daterange(check_in, check_out) WITH &&)
		WHERE (status <> 'cancelled')`).Error)

	cleanup := func() {
		if err := container.Terminate(ctx); err != nil {
			t.Logf("failed to terminate PostgreSQL container: %v", err)
		}
	}

	return &testInfra{DB: db, Cleanup: cleanup}
}

// setupStack wires the application services against the test database.
func setupStack(t *testing.T, db *gorm.DB) *bookingStack {
	t.Helper()
	logger := zap.NewNop()
	cacheSvc := cache.NewService(nil, time.Minute, logger)

	hotelRepo := repository.NewGormHotelRepository(db)
	roomRepo := repository.NewGormRoomRepository(db)
	bookingRepo := repository.NewGormBookingRepository(db)
	reportRepo := repository.NewGormReportRepository(db)
	facilityRepo := repository.NewGormFacilityRepository(db)
	amenityRepo := repository.NewGormAmenityRepository(db)
	pricing := bookingDomain.NewNightlyPricingCalculator()

	return &bookingStack{
		Bookings: application.NewBookingService(bookingRepo, roomRepo, reportRepo, pricing, nil, cacheSvc, logger),
		Hotels:   application.NewHotelService(hotelRepo, facilityRepo, cacheSvc, logger),
		Rooms:    application.NewRoomService(roomRepo, hotelRepo, amenityRepo, cacheSvc, logger),
	}
}

// seedRoom persists a hotel and a room and returns the room's domain object.
func seedRoom(t *testing.T, db *gorm.DB, nightlyRateCents int64, maxOccupancy int) *roomDomain.Room {
	t.Helper()
	ctx := context.Background()

	h, err := hotelDomain.NewHotel("Test Hotel", "1 Test Street", "Testville", "US", "", 4)
	require.NoError(t, err)
	require.NoError(t, repository.NewGormHotelRepository(db).Save(ctx, h))

	rm, err := roomDomain.NewRoom(h.ID(), "101", "double", nightlyRateCents, maxOccupancy, "")
	require.NoError(t, err)
	require.NoError(t, repository.NewGormRoomRepository(db).Save(ctx, rm))
	return rm
}

func bookingRequest(roomID uuid.UUID, checkIn, checkOut time.Time, guests int) application.CreateBookingRequest {
	return application.CreateBookingRequest{
		RoomID:     roomID,
		GuestName:  "Jane Doe",
		GuestEmail: "jane@example.com",
		CheckIn:    checkIn,
		CheckOut:   checkOut,
		GuestCount: guests,
	}
}
