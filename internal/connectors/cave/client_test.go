package cave

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cajal/microns-kit/internal/core/domain"
)

func newTestClient(t *testing.T, handler http.Handler) *Client {
	t.Helper()

	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)

	client, err := NewClient(srv.URL, "minnie65_phase3_v1",
		WithToken("test-token"), WithHTTPClient(srv.Client()))
	require.NoError(t, err)
	return client
}

func TestNewClient(t *testing.T) {
	t.Run("requires a datastack", func(t *testing.T) {
		_, err := NewClient("", "")
		assert.ErrorIs(t, err, domain.ErrInvalidInput)
	})

	t.Run("defaults to the global server", func(t *testing.T) {
		client, err := NewClient("", "minnie65_phase3_v1")
		require.NoError(t, err)
		assert.Equal(t, DefaultServer, client.server)
		assert.Equal(t, "minnie65_phase3_v1", client.Datastack())
	})
}

func TestClient_DatastackInfo(t *testing.T) {
	client := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/info/api/v2/datastack/full/minnie65_phase3_v1", r.URL.Path)
		assert.Equal(t, "Bearer test-token", r.Header.Get("Authorization"))
		assert.NotEmpty(t, r.Header.Get("X-Request-Id"))
		fmt.Fprint(w, `{
			"description": "minnie65 phase 3",
			"local_server": "https://minnie.microns-daf.com",
			"segmentation_source": "graphene://https://minnie.microns-daf.com/segmentation/table/minnie3_v1",
			"synapse_table": "synapses_pni_2",
			"aligned_volume": {"name": "minnie65_phase3", "image_source": "precomputed://gs://iarpa_microns/minnie/minnie65/em"}
		}`)
	}))

	info, err := client.DatastackInfo(context.Background())

	require.NoError(t, err)
	assert.Equal(t, "minnie65 phase 3", info.Description)
	assert.Equal(t, "synapses_pni_2", info.SynapseTable)
	assert.Equal(t, "minnie65_phase3", info.AlignedVolume.Name)
}

func TestClient_MaterializationVersions(t *testing.T) {
	t.Run("sorted newest first", func(t *testing.T) {
		client := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			assert.Equal(t, "/materialize/api/v2/datastack/minnie65_phase3_v1/versions", r.URL.Path)
			fmt.Fprint(w, `[117, 343, 661]`)
		}))

		versions, err := client.MaterializationVersions(context.Background())

		require.NoError(t, err)
		assert.Equal(t, []int{661, 343, 117}, versions)
	})

	t.Run("missing datastack yields APIError", func(t *testing.T) {
		client := newTestClient(t, http.NotFoundHandler())

		_, err := client.MaterializationVersions(context.Background())

		assert.True(t, IsNotFound(err))
	})

	t.Run("rejected token yields unauthorized", func(t *testing.T) {
		client := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
			w.WriteHeader(http.StatusUnauthorized)
		}))

		_, err := client.MaterializationVersions(context.Background())

		assert.True(t, IsUnauthorized(err))
	})
}

func TestClient_PinVersion(t *testing.T) {
	handler := http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		fmt.Fprint(w, `[117, 343, 661]`)
	})

	t.Run("pins an existing version", func(t *testing.T) {
		client := newTestClient(t, handler)

		require.NoError(t, client.PinVersion(context.Background(), 343))

		ver, err := client.Version()
		require.NoError(t, err)
		assert.Equal(t, 343, ver)
	})

	t.Run("unknown version rejected", func(t *testing.T) {
		client := newTestClient(t, handler)

		err := client.PinVersion(context.Background(), 999)

		assert.ErrorIs(t, err, domain.ErrNotFound)
	})

	t.Run("unpinned client reports ErrNoVersionPinned", func(t *testing.T) {
		client := newTestClient(t, handler)

		_, err := client.Version()

		assert.ErrorIs(t, err, domain.ErrNoVersionPinned)
	})
}

func TestClient_PinLatest(t *testing.T) {
	t.Run("pins the newest version", func(t *testing.T) {
		client := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
			fmt.Fprint(w, `[117, 661, 343]`)
		}))

		ver, err := client.PinLatest(context.Background())

		require.NoError(t, err)
		assert.Equal(t, 661, ver)
	})

	t.Run("no versions available", func(t *testing.T) {
		client := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
			fmt.Fprint(w, `[]`)
		}))

		_, err := client.PinLatest(context.Background())

		assert.ErrorIs(t, err, domain.ErrNotFound)
	})
}
