package scheduler

import (
	"bytes"
	"context"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/houseofplants/houseofplants/internal/database/events"
	"github.com/houseofplants/houseofplants/internal/entities"
	"github.com/houseofplants/houseofplants/internal/logutil"
)

func setupArchiver(t *testing.T, schedule string) (*EventArchiver, *events.Repository) {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(&entities.User{}, &entities.Event{}))

	repo := events.NewRepository(db)
	return NewEventArchiver(repo, schedule), repo
}

func TestEventArchiver_StartStop(t *testing.T) {
	archiver, _ := setupArchiver(t, "*/30 * * * *")

	assert.False(t, archiver.IsRunning())

	require.NoError(t, archiver.Start(context.Background()))
	assert.True(t, archiver.IsRunning())

	// Starting twice is a no-op, not an error.
	require.NoError(t, archiver.Start(context.Background()))

	archiver.Stop()
	assert.False(t, archiver.IsRunning())

	// Stopping twice is fine too.
	archiver.Stop()
}

func TestEventArchiver_InvalidSchedule(t *testing.T) {
	archiver, _ := setupArchiver(t, "not a schedule")

	err := archiver.Start(context.Background())
	require.Error(t, err)
	assert.False(t, archiver.IsRunning())
}

func TestEventArchiver_StopsOnContextCancel(t *testing.T) {
	archiver, _ := setupArchiver(t, "*/30 * * * *")

	ctx, cancel := context.WithCancel(context.Background())
	require.NoError(t, archiver.Start(ctx))
	require.True(t, archiver.IsRunning())

	cancel()

	deadline := time.After(2 * time.Second)
	for archiver.IsRunning() {
		select {
		case <-deadline:
			t.Fatal("archiver still running after context cancel")
		case <-time.After(10 * time.Millisecond):
		}
	}
}

// The archiver logs through the logger carried by its start context.
func TestEventArchiver_UsesContextLogger(t *testing.T) {
	archiver, repo := setupArchiver(t, "*/30 * * * *")

	require.NoError(t, repo.Create(&entities.Event{
		Title:    "Past swap",
		StartsAt: time.Now().Add(-time.Hour),
	}))

	var buf bytes.Buffer
	ctx := logutil.WithLogger(context.Background(), zerolog.New(&buf))

	require.NoError(t, archiver.Start(ctx))
	defer archiver.Stop()

	archiver.RunNow()

	assert.Contains(t, buf.String(), "event archiver started")
	assert.Contains(t, buf.String(), "archived past events")
}

func TestEventArchiver_RunNow(t *testing.T) {
	archiver, repo := setupArchiver(t, "*/30 * * * *")
	now := time.Now()

	past := &entities.Event{Title: "Past swap", StartsAt: now.Add(-time.Hour)}
	future := &entities.Event{Title: "Future swap", StartsAt: now.Add(time.Hour)}
	require.NoError(t, repo.Create(past))
	require.NoError(t, repo.Create(future))

	archiver.RunNow()

	archivedEvent, err := repo.GetByID(past.ID)
	require.NoError(t, err)
	assert.True(t, archivedEvent.Archived)

	stillUpcoming, err := repo.GetByID(future.ID)
	require.NoError(t, err)
	assert.False(t, stillUpcoming.Archived)
}
