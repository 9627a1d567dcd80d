package inventory

import (
	"context"
	"encoding/json"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"dockpanel/internal/testutil"
)

func TestFetcher_FetchContainers(t *testing.T) {
	rt := testutil.NewFakeRuntime()
	rt.AddContainer("c1", "web", "running")
	rt.AddContainer("c2", "db", "exited")
	rt.AddContainer("c3", "cache", "running")

	batch := NewFetcher(rt).FetchContainers(context.Background())
	require.NoError(t, batch.Err())
	require.Len(t, batch.Items, 3)

	records := batch.Records()
	assert.Equal(t, []string{"c1", "c2", "c3"}, ids(records))

	running, stopped := Partition(records)
	assert.Equal(t, []string{"c1", "c3"}, ids(running))
	assert.Equal(t, []string{"c2"}, ids(stopped))
	assert.Equal(t, 3, rt.CallCount("Inspect"))
}

func TestFetcher_EmptyListing(t *testing.T) {
	rt := testutil.NewFakeRuntime()

	batch := NewFetcher(rt).FetchContainers(context.Background())
	require.NoError(t, batch.Err())
	assert.Empty(t, batch.Records())
	assert.Equal(t, 0, rt.CallCount("Inspect"))
}

func TestFetcher_InspectFailureCaptured(t *testing.T) {
	rt := testutil.NewFakeRuntime()
	rt.AddContainer("c1", "web", "running")
	rt.AddContainer("c2", "db", "exited")
	rt.SetError("Inspect:c2", errors.New("daemon hiccup"))

	batch := NewFetcher(rt).FetchContainers(context.Background())
	require.Error(t, batch.Err())
	assert.Contains(t, batch.Err().Error(), "daemon hiccup")

	assert.Equal(t, []string{"c1"}, ids(batch.Records()))
	failed := batch.Failed()
	require.Len(t, failed, 1)
	assert.Equal(t, "c2", failed[0].ID)
}

func TestFetcher_ListFailure(t *testing.T) {
	rt := testutil.NewFakeRuntime()
	rt.SetError("ListContainerIDs", errors.New("cannot connect"))

	batch := NewFetcher(rt).FetchContainers(context.Background())
	require.Error(t, batch.Err())
	assert.Empty(t, batch.Items)
	assert.Equal(t, 0, rt.CallCount("Inspect"))
}

func TestFetcher_FetchImages(t *testing.T) {
	rt := &testutil.MockRuntime{}
	rt.On("ListDanglingImageIDs", mock.Anything).Return([]string{"sha256:a", "sha256:b"}, nil)
	rt.On("Inspect", mock.Anything, "sha256:a").Return(json.RawMessage(`{"Id":"sha256:a","Size":2048}`), nil)
	rt.On("Inspect", mock.Anything, "sha256:b").Return(json.RawMessage(`{"Id":"sha256:b","RepoTags":null,"Size":0}`), nil)

	batch := NewFetcher(rt).FetchImages(context.Background())
	require.NoError(t, batch.Err())

	records := batch.Records()
	require.Len(t, records, 2)
	assert.Equal(t, "sha256:a", records[0].ID)
	assert.Equal(t, "2.048kB", records[0].SizeHuman)
	assert.Equal(t, "N/A", records[1].RepoTags)
	rt.AssertExpectations(t)
}
