package domain

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var testNow = time.Date(2026, time.March, 10, 12, 0, 0, 0, time.UTC)

func TestNewClient_Defaults(t *testing.T) {
	c := NewClient("  Acme  ", testNow)

	assert.NotEmpty(t, c.ID)
	assert.Equal(t, "Acme", c.Name)
	assert.True(t, c.Active)
	assert.Equal(t, StatusActive, c.Status)
	assert.NotNil(t, c.Activities)
	assert.NotNil(t, c.ExtraHours)
	assert.NotNil(t, c.Photos)
	assert.NotNil(t, c.StateHistory)
}

func TestNormalize_ToleratesMissingFields(t *testing.T) {
	var c Client
	require.NoError(t, json.Unmarshal([]byte(`{"id":"c1","name":"Old","active":false}`), &c))

	c.Normalize()

	assert.Equal(t, StatusClosed, c.Status)
	assert.NotNil(t, c.Activities)
	assert.Empty(t, c.ExtraHours)
}

func TestExtraHours_AddAndRemoveAreExact(t *testing.T) {
	c := NewClient("Acme", testNow)
	c.BillableTime = 100

	entry, err := NewExtraHoursEntry(2.5, "2026-03-09", "weekend fix", testNow)
	require.NoError(t, err)
	assert.Equal(t, int64(9000), entry.Seconds)

	c.AddExtraHours(entry)
	assert.Equal(t, int64(9100), c.BillableTime)

	removed, err := c.RemoveExtraHours(entry.ID)
	require.NoError(t, err)
	assert.Equal(t, entry.ID, removed.ID)
	assert.Equal(t, int64(100), c.BillableTime)
	assert.Empty(t, c.ExtraHours)
}

func TestExtraHours_AwkwardFractionsRoundTrip(t *testing.T) {
	c := NewClient("Acme", testNow)
	var ids []string
	for _, h := range []float64{0.1, 0.2, 1.0 / 3.0, 7.77} {
		e, err := NewExtraHoursEntry(h, "", "", testNow)
		require.NoError(t, err)
		c.AddExtraHours(e)
		ids = append(ids, e.ID)
	}
	for _, id := range ids {
		_, err := c.RemoveExtraHours(id)
		require.NoError(t, err)
	}
	assert.Equal(t, int64(0), c.BillableTime)
}

func TestExtraHours_RejectsInvalid(t *testing.T) {
	_, err := NewExtraHoursEntry(0, "", "", testNow)
	assert.Error(t, err)

	_, err = NewExtraHoursEntry(1, "yesterday", "", testNow)
	assert.ErrorIs(t, err, ErrInvalidDeliveryDate)

	c := NewClient("Acme", testNow)
	_, err = c.RemoveExtraHours("missing")
	assert.ErrorIs(t, err, ErrExtraHoursNotFound)
}

func TestSetStatus_AppendsHistory(t *testing.T) {
	c := NewClient("Acme", testNow)

	assert.True(t, c.SetStatus(StatusClosed, testNow.Add(time.Hour)))
	assert.False(t, c.Active)
	assert.False(t, c.SetStatus(StatusClosed, testNow.Add(2*time.Hour)), "same status is a no-op")

	assert.True(t, c.SetStatus(StatusWaiting, testNow.Add(3*time.Hour)))
	assert.True(t, c.Active)

	require.Len(t, c.StateHistory, 2)
	assert.Equal(t, StatusActive, c.StateHistory[0].From)
	assert.Equal(t, StatusClosed, c.StateHistory[0].To)
	assert.Equal(t, StatusWaiting, c.StateHistory[1].To)
}

func TestClone_IsDeep(t *testing.T) {
	c := NewClient("Acme", testNow)
	c.Activities[ActivityWork] = 10
	c.Photos = append(c.Photos, Attachment{ID: "p1"})

	cp := c.Clone()
	cp.Activities[ActivityWork] = 99
	cp.Photos[0].ID = "changed"

	assert.Equal(t, int64(10), c.Activities[ActivityWork])
	assert.Equal(t, "p1", c.Photos[0].ID)
}

func TestToRemote_StripsPayloads(t *testing.T) {
	c := NewClient("Acme", testNow)
	c.Photos = []Attachment{{ID: "p1", Data: "aGVsbG8=", URL: "https://blob/p1"}}

	r := c.ToRemote("owner-1")

	assert.Equal(t, "owner-1", r.OwnerID)
	require.Len(t, r.Photos, 1)
	assert.Empty(t, r.Photos[0].Data)
	assert.Equal(t, "https://blob/p1", r.Photos[0].URL)
	assert.Equal(t, "aGVsbG8=", c.Photos[0].Data, "source must not be modified")
}
