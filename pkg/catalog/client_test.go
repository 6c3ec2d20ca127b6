package catalog

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFetchProducts(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/products", r.URL.Path)
		assert.Equal(t, "100", r.URL.Query().Get("limit"))

		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{
			"products": [
				{"id": 1, "title": "Laptop", "category": "electronics", "brand": "Acme", "rating": 4.5},
				{"id": 2, "title": "Mouse", "category": "accessories", "brand": "Globex", "rating": 3.9}
			],
			"total": 2, "skip": 0, "limit": 100
		}`))
	}))
	defer server.Close()

	client := NewClient(ClientConfig{BaseURL: server.URL})

	products, err := client.FetchProducts()
	require.NoError(t, err)
	require.Len(t, products, 2)

	assert.Equal(t, int64(1), products[0].ID)
	assert.Equal(t, "Laptop", products[0].Title)
	assert.Equal(t, "electronics", products[0].Category)
	assert.Equal(t, 4.5, products[0].Rating)
}

func TestFetchProducts_ServerError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
		w.Write([]byte(`{"message": "something broke"}`))
	}))
	defer server.Close()

	client := NewClient(ClientConfig{BaseURL: server.URL})

	_, err := client.FetchProducts()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "something broke")
}

func TestFetchProducts_MalformedBody(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("not json"))
	}))
	defer server.Close()

	client := NewClient(ClientConfig{BaseURL: server.URL})

	_, err := client.FetchProducts()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to decode response")
}

func TestFetchProducts_Timeout(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		time.Sleep(200 * time.Millisecond)
	}))
	defer server.Close()

	client := NewClient(ClientConfig{BaseURL: server.URL, Timeout: 20 * time.Millisecond})

	_, err := client.FetchProducts()
	require.Error(t, err)
}
