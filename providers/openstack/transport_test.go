package openstack_test

import (
	"fmt"
	"net/http"
	"testing"

	"github.com/SebastienDorgan/anykeys/api"
	"github.com/SebastienDorgan/anykeys/providers/openstack"
	gc "github.com/gophercloud/gophercloud"
	th "github.com/gophercloud/gophercloud/testhelper"
	"github.com/gophercloud/gophercloud/testhelper/client"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tidwall/gjson"
)

func newTestTransport(calls *int) *openstack.ComputeTransport {
	return openstack.NewComputeTransport(func(region string) (*gc.ServiceClient, error) {
		*calls++
		return client.ServiceClient(), nil
	})
}

func TestTransportGet(t *testing.T) {
	th.SetupHTTP()
	defer th.TeardownHTTP()
	th.Mux.HandleFunc("/os-keypairs", func(w http.ResponseWriter, r *http.Request) {
		th.TestMethod(t, r, "GET")
		th.TestHeader(t, r, "X-Auth-Token", client.TokenID)
		w.Header().Add("Content-Type", "application/json")
		fmt.Fprint(w, listOutput)
	})

	calls := 0
	transport := newTestTransport(&calls)
	body, err := transport.Get("os-keypairs", "RegionOne")
	require.NoError(t, err)
	assert.Equal(t, "7e:eb:ab:24:ba:d1:e1:88:ae:9a:fb:66:53:df:d3:bd", gjson.GetBytes(body, "keypairs.0.keypair.fingerprint").String())

	_, err = transport.Get("os-keypairs", "RegionOne")
	require.NoError(t, err)
	assert.Equal(t, 1, calls)
	_, err = transport.Get("os-keypairs", "RegionTwo")
	require.NoError(t, err)
	assert.Equal(t, 2, calls)
}

func TestTransportPost(t *testing.T) {
	th.SetupHTTP()
	defer th.TeardownHTTP()
	th.Mux.HandleFunc("/os-keypairs", func(w http.ResponseWriter, r *http.Request) {
		th.TestMethod(t, r, "POST")
		th.TestHeader(t, r, "X-Auth-Token", client.TokenID)
		th.TestJSONRequest(t, r, `{"keypair": {"name": "testKeypairName"}}`)
		w.Header().Add("Content-Type", "application/json")
		fmt.Fprint(w, createOutput)
	})

	calls := 0
	body, err := newTestTransport(&calls).Post("os-keypairs", "RegionOne", map[string]interface{}{
		"keypair": map[string]string{"name": "testKeypairName"},
	})
	require.NoError(t, err)
	assert.Equal(t, "kp-0a35b0e4-6b11-4c24-8ba4-4e1b3ea10f5f", gjson.GetBytes(body, "keypair.id").String())
}

func TestTransportDelete(t *testing.T) {
	th.SetupHTTP()
	defer th.TeardownHTTP()
	deletes := 0
	th.Mux.HandleFunc("/os-keypairs/pk", func(w http.ResponseWriter, r *http.Request) {
		th.TestMethod(t, r, "DELETE")
		th.TestHeader(t, r, "X-Auth-Token", client.TokenID)
		deletes++
		w.WriteHeader(http.StatusAccepted)
	})

	calls := 0
	err := newTestTransport(&calls).Delete("os-keypairs", "RegionOne", "pk")
	assert.NoError(t, err)
	assert.Equal(t, 1, deletes)
}

func TestTransportRemoteErrors(t *testing.T) {
	th.SetupHTTP()
	defer th.TeardownHTTP()
	th.Mux.HandleFunc("/os-keypairs/missing", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
		fmt.Fprint(w, `{"itemNotFound": {"message": "The resource could not be found.", "code": 404}}`)
	})
	th.Mux.HandleFunc("/os-keypairs", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadRequest)
		fmt.Fprint(w, `{"badRequest": {"message": "Keypair data is invalid", "code": 400}}`)
	})

	calls := 0
	transport := newTestTransport(&calls)
	err := transport.Delete("os-keypairs", "RegionOne", "missing")
	assert.True(t, api.IsRemote(err))
	assert.Equal(t, 404, api.StatusCode(err))

	_, err = transport.Post("os-keypairs", "RegionOne", map[string]interface{}{"keypair": map[string]string{"name": "pk"}})
	assert.True(t, api.IsRemote(err))
	assert.Equal(t, 400, api.StatusCode(err))
	assert.Contains(t, err.Error(), "Keypair data is invalid")
}

func TestTransportClientError(t *testing.T) {
	transport := openstack.NewComputeTransport(func(region string) (*gc.ServiceClient, error) {
		return nil, fmt.Errorf("no compute endpoint in region %s", region)
	})
	_, err := transport.Get("os-keypairs", "RegionX")
	assert.Error(t, err)
	assert.False(t, api.IsRemote(err))
	assert.Contains(t, err.Error(), "RegionX")
}

func TestProviderError(t *testing.T) {
	err := openstack.ProviderError(gc.ErrDefault404{ErrUnexpectedResponseCode: gc.ErrUnexpectedResponseCode{Actual: 404, Body: []byte("gone")}})
	assert.True(t, api.IsRemote(err))
	assert.Equal(t, 404, api.StatusCode(err))

	err = openstack.ProviderError(&gc.ErrDefault500{ErrUnexpectedResponseCode: gc.ErrUnexpectedResponseCode{Actual: 500}})
	assert.Equal(t, 500, api.StatusCode(err))

	err = openstack.ProviderError(gc.ErrUnexpectedResponseCode{Actual: 418})
	assert.Equal(t, 418, api.StatusCode(err))

	plain := fmt.Errorf("dial tcp: connection refused")
	assert.Equal(t, plain, openstack.ProviderError(plain))
}
