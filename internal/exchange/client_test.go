package exchange

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const ratesBody = `{"base":"USD","rates":{"USD":1.0,"EUR":0.92,"AUD":1.52,"GBP":0.79}}`

func newUpstream(t *testing.T, handler http.HandlerFunc) (*httptest.Server, *Client) {
	upstream := httptest.NewServer(handler)
	t.Cleanup(upstream.Close)
	return upstream, NewClient(upstream.URL, "test-api-key")
}

func TestClient_GetRates(t *testing.T) {
	t.Run("Rates are sorted by currency code", func(t *testing.T) {
		_, client := newUpstream(t, func(w http.ResponseWriter, r *http.Request) {
			// ключ передается параметром запроса
			assert.Equal(t, "test-api-key", r.URL.Query().Get("access_key"))
			w.Write([]byte(ratesBody))
		})

		rates, err := client.GetRates(context.Background())
		require.NoError(t, err)
		require.Len(t, rates, 4)

		assert.Equal(t, "AUD", rates[0].CurrencyCode)
		assert.Equal(t, "EUR", rates[1].CurrencyCode)
		assert.Equal(t, "GBP", rates[2].CurrencyCode)
		assert.Equal(t, "USD", rates[3].CurrencyCode)
		assert.Equal(t, 0.92, rates[1].Rate)
	})

	t.Run("Missing rates field", func(t *testing.T) {
		_, client := newUpstream(t, func(w http.ResponseWriter, r *http.Request) {
			w.Write([]byte(`{"base":"USD"}`))
		})

		_, err := client.GetRates(context.Background())
		assert.Error(t, err)
		assert.ErrorIs(t, err, ErrNoData)
	})

	t.Run("Upstream status is passed through", func(t *testing.T) {
		_, client := newUpstream(t, func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusBadGateway)
		})

		_, err := client.GetRates(context.Background())
		require.Error(t, err)

		var upstream *UpstreamError
		require.True(t, errors.As(err, &upstream))
		assert.Equal(t, http.StatusBadGateway, upstream.Status)
	})

	t.Run("Unreadable body is a transport error", func(t *testing.T) {
		_, client := newUpstream(t, func(w http.ResponseWriter, r *http.Request) {
			w.Write([]byte("not json at all"))
		})

		_, err := client.GetRates(context.Background())
		require.Error(t, err)

		var transport *TransportError
		assert.True(t, errors.As(err, &transport))
	})

	t.Run("Unreachable upstream is a transport error", func(t *testing.T) {
		upstream, client := newUpstream(t, func(w http.ResponseWriter, r *http.Request) {})
		upstream.Close()

		_, err := client.GetRates(context.Background())
		require.Error(t, err)

		var transport *TransportError
		assert.True(t, errors.As(err, &transport))
	})
}

func TestClient_SearchRate(t *testing.T) {
	t.Run("Lookup is case-insensitive", func(t *testing.T) {
		_, client := newUpstream(t, func(w http.ResponseWriter, r *http.Request) {
			w.Write([]byte(ratesBody))
		})

		lower, err := client.SearchRate(context.Background(), "eur")
		require.NoError(t, err)

		upper, err := client.SearchRate(context.Background(), "EUR")
		require.NoError(t, err)

		assert.Equal(t, lower, upper)
		assert.Equal(t, 0.92, lower)
	})

	t.Run("Unknown currency code", func(t *testing.T) {
		_, client := newUpstream(t, func(w http.ResponseWriter, r *http.Request) {
			w.Write([]byte(ratesBody))
		})

		_, err := client.SearchRate(context.Background(), "XYZ")
		assert.Error(t, err)
		assert.ErrorIs(t, err, ErrRateNotFound)
	})

	t.Run("Missing rates field", func(t *testing.T) {
		_, client := newUpstream(t, func(w http.ResponseWriter, r *http.Request) {
			w.Write([]byte(`{}`))
		})

		_, err := client.SearchRate(context.Background(), "EUR")
		assert.Error(t, err)
		assert.ErrorIs(t, err, ErrNoData)
	})
}

func TestNormalizeCode(t *testing.T) {
	assert.Equal(t, "EUR", NormalizeCode("eur"))
	assert.Equal(t, "EUR", NormalizeCode("EUR"))
}
