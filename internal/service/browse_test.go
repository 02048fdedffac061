package service

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	domainerrors "github.com/royentertainment/roy-server/internal/errors"
)

func testBrowseService(t *testing.T) *BrowseService {
	t.Helper()

	svc := NewBrowseService(testStore(t), BrowseOptions{
		PageSize: 2,
		Debounce: 10 * time.Millisecond,
		Expiry:   time.Hour,
	}, testLogger())
	t.Cleanup(svc.Stop)

	return svc
}

func TestBrowseService_CreateAndGet(t *testing.T) {
	svc := testBrowseService(t)

	sessionID, created, err := svc.Create()
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(sessionID, "qs-"))
	assert.Equal(t, 3, created.ResultCount())

	got, err := svc.Get(sessionID)
	require.NoError(t, err)
	assert.Same(t, created, got)
	assert.Equal(t, 1, svc.Count())
}

func TestBrowseService_Get_NotFound(t *testing.T) {
	svc := testBrowseService(t)

	_, err := svc.Get("qs-missing")
	require.Error(t, err)

	var domainErr *domainerrors.Error
	require.True(t, domainerrors.As(err, &domainErr))
	assert.Equal(t, domainerrors.CodeNotFound, domainErr.Code)
}

func TestBrowseService_Destroy(t *testing.T) {
	svc := testBrowseService(t)

	sessionID, session, err := svc.Create()
	require.NoError(t, err)

	require.NoError(t, svc.Destroy(sessionID))
	assert.Equal(t, 0, svc.Count())

	_, err = svc.Get(sessionID)
	assert.Error(t, err)

	// The closed session ignores further mutations.
	session.SetGenre("Drama")
	assert.Equal(t, 3, session.ResultCount())
}

func TestBrowseService_Destroy_NotFound(t *testing.T) {
	svc := testBrowseService(t)
	assert.Error(t, svc.Destroy("qs-missing"))
}

func TestBrowseService_ReapExpired(t *testing.T) {
	svc := testBrowseService(t)

	staleID, _, err := svc.Create()
	require.NoError(t, err)
	_, _, err = svc.Create()
	require.NoError(t, err)

	// Touch only the second session past the stale one's expiry horizon.
	svc.mu.Lock()
	svc.sessions[staleID].lastAccess = time.Now().Add(-2 * time.Hour)
	svc.mu.Unlock()

	reaped := svc.reapExpired(time.Now())
	assert.Equal(t, 1, reaped)
	assert.Equal(t, 1, svc.Count())

	_, err = svc.Get(staleID)
	assert.Error(t, err)
}

func TestBrowseService_Stop_ClosesSessions(t *testing.T) {
	svc := NewBrowseService(testStore(t), BrowseOptions{Expiry: time.Hour}, testLogger())

	_, session, err := svc.Create()
	require.NoError(t, err)

	svc.Stop()
	assert.Equal(t, 0, svc.Count())

	before := session.Criteria()
	session.SetGenre("Drama")
	assert.Equal(t, before, session.Criteria())
}
