package services

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"focuswork/internal/domain"
)

var mergeNow = time.Date(2026, time.March, 10, 12, 0, 0, 0, time.UTC)

func localClient() domain.Client {
	c := domain.NewClient("Acme", mergeNow)
	c.ID = "c1"
	c.Total = 7200
	c.BillableTime = 3600
	c.Activities[domain.ActivityWork] = 7200
	c.Tasks = domain.Tasks{Urgent: "invoice"}
	c.DeliveryDate = "2026-04-01"
	return c
}

func TestMergeClient_RemoteStatusWinsLocalTotalKept(t *testing.T) {
	local := localClient()
	remote := &domain.RemoteClient{
		ID:        "c1",
		Name:      "Acme Corp",
		Status:    domain.StatusClosed,
		UpdatedAt: mergeNow.Add(time.Hour),
	}

	merged := MergeClient(remote, &local)

	require.NotNil(t, merged)
	assert.Equal(t, domain.StatusClosed, merged.Status)
	assert.False(t, merged.Active)
	assert.Equal(t, "Acme Corp", merged.Name)
	assert.Equal(t, int64(7200), merged.Total)
	assert.Equal(t, int64(3600), merged.BillableTime)
	assert.Equal(t, "invoice", merged.Tasks.Urgent)
	assert.Equal(t, "2026-04-01", merged.DeliveryDate)
	assert.Equal(t, mergeNow.Add(time.Hour), merged.UpdatedAt)
}

func TestMergeClient_EmptyRemoteFieldsKeepLocal(t *testing.T) {
	local := localClient()
	local.Email = "ops@acme.test"
	local.Notes = "call back"

	merged := MergeClient(&domain.RemoteClient{ID: "c1"}, &local)

	assert.Equal(t, "Acme", merged.Name)
	assert.Equal(t, "ops@acme.test", merged.Email)
	assert.Equal(t, "call back", merged.Notes)
	assert.Equal(t, domain.StatusActive, merged.Status)
	assert.True(t, merged.Active)
}

func TestMergeClient_ActivitiesKeepLargerValue(t *testing.T) {
	local := localClient()
	local.Activities[domain.ActivityCalls] = 50

	merged := MergeClient(&domain.RemoteClient{
		ID: "c1",
		Activities: map[domain.ActivityKind]int64{
			domain.ActivityWork:  100,
			domain.ActivityCalls: 300,
		},
	}, &local)

	assert.Equal(t, int64(7200), merged.Activities[domain.ActivityWork])
	assert.Equal(t, int64(300), merged.Activities[domain.ActivityCalls])
}

func TestMergeClient_AttachmentBackfill(t *testing.T) {
	local := localClient()
	local.Photos = []domain.Attachment{
		{ID: "p1", ClientID: "c1", Data: "ZGF0YQ==", ContentType: "image/png", Name: "a.png"},
		{ID: "p2", ClientID: "c1", Data: "bG9jYWw="},
	}
	remote := &domain.RemoteClient{
		ID: "c1",
		Photos: []domain.Attachment{
			{ID: "p3", URL: "https://blob/p3"},
			{ID: "p1", URL: "https://blob/p1"},
			{ID: "p3", URL: "https://blob/dup"},
		},
	}

	merged := MergeClient(remote, &local)

	require.Len(t, merged.Photos, 3)
	assert.Equal(t, "p3", merged.Photos[0].ID, "remote order first")
	assert.Equal(t, "https://blob/p3", merged.Photos[0].URL)
	assert.Equal(t, "p1", merged.Photos[1].ID)
	assert.Equal(t, "ZGF0YQ==", merged.Photos[1].Data, "payload backfilled from local")
	assert.Equal(t, "https://blob/p1", merged.Photos[1].URL)
	assert.Equal(t, "a.png", merged.Photos[1].Name)
	assert.Equal(t, "p2", merged.Photos[2].ID, "local-only appended")
}

func TestMergeClient_NilRemoteAttachmentsKeepLocal(t *testing.T) {
	local := localClient()
	local.Files = []domain.Attachment{{ID: "f1", Data: "eA=="}}

	merged := MergeClient(&domain.RemoteClient{ID: "c1"}, &local)

	require.Len(t, merged.Files, 1)
	assert.Equal(t, "eA==", merged.Files[0].Data)
}

func TestMergeClient_Idempotent(t *testing.T) {
	local := localClient()
	local.Photos = []domain.Attachment{{ID: "p1", Data: "ZGF0YQ=="}}
	remote := &domain.RemoteClient{
		ID:         "c1",
		Name:       "Renamed",
		Notes:      "remote notes",
		Status:     domain.StatusWaiting,
		Tags:       []string{"vip"},
		Activities: map[domain.ActivityKind]int64{domain.ActivityTravel: 90},
		Photos:     []domain.Attachment{{ID: "p1", URL: "https://blob/p1"}, {ID: "p9"}},
		UpdatedAt:  mergeNow.Add(time.Minute),
	}

	once := MergeClient(remote, &local)
	twice := MergeClient(remote, once)

	assert.Equal(t, once, twice)
}

func TestMergeClient_DoesNotMutateInputs(t *testing.T) {
	local := localClient()
	remote := &domain.RemoteClient{
		ID:         "c1",
		Activities: map[domain.ActivityKind]int64{domain.ActivityWork: 99999},
	}

	_ = MergeClient(remote, &local)

	assert.Equal(t, int64(7200), local.Activities[domain.ActivityWork])
}

func TestMergeClient_NilInputs(t *testing.T) {
	assert.Nil(t, MergeClient(nil, nil))

	local := localClient()
	fromLocal := MergeClient(nil, &local)
	require.NotNil(t, fromLocal)
	assert.Equal(t, local.ID, fromLocal.ID)

	fromRemote := MergeClient(&domain.RemoteClient{
		ID:        "r1",
		Name:      "Remote only",
		CreatedAt: mergeNow,
	}, nil)
	require.NotNil(t, fromRemote)
	assert.Equal(t, "Remote only", fromRemote.Name)
	assert.True(t, fromRemote.Active)
	assert.Equal(t, domain.StatusActive, fromRemote.Status)
	assert.NotNil(t, fromRemote.Activities)
	assert.Equal(t, mergeNow, fromRemote.CreatedAt)
}

func TestMergeClients_UnionSortedByCreation(t *testing.T) {
	older := localClient()
	older.ID = "b"
	older.CreatedAt = mergeNow.Add(-time.Hour)
	newer := localClient()
	newer.ID = "a"

	merged := MergeClients(
		[]domain.RemoteClient{{ID: "z", Name: "Remote", CreatedAt: mergeNow.Add(-2 * time.Hour)}},
		[]domain.Client{newer, older},
	)

	require.Len(t, merged, 3)
	assert.Equal(t, []string{"z", "b", "a"}, []string{merged[0].ID, merged[1].ID, merged[2].ID})
}
