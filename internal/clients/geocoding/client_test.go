package geocoding

import (
	"bytes"
	"context"
	"io"
	"net/http"
	"os"
	"testing"
	"time"

	"github.com/maxaizer/jobhub-importer/internal/domain/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type mockHTTPClient struct {
	mock.Mock
}

func (m *mockHTTPClient) Do(req *http.Request) (*http.Response, error) {
	args := m.Called(req)
	resp, _ := args.Get(0).(*http.Response)
	return resp, args.Error(1)
}

func fixture(t *testing.T, name string) *http.Response {
	file, err := os.ReadFile("testdata/" + name)
	require.NoError(t, err)

	return &http.Response{
		StatusCode: 200,
		Body:       io.NopCloser(bytes.NewBuffer(file)),
	}
}

func Test_GeocodingClient_Geocode_ShouldBeSuccessful(t *testing.T) {
	mockClient := &mockHTTPClient{}
	mockClient.On("Do", mock.MatchedBy(func(req *http.Request) bool {
		return req.URL.String() == "https://maps.googleapis.com/maps/api/geocode/json?address=Rome%2C+Italy&key=secret"
	})).Return(fixture(t, "geocode_rome.json"), nil)

	client := NewClient("secret")
	client.SetHTTPClient(mockClient)

	location, err := client.Geocode(context.Background(), "Rome, Italy")

	require.NoError(t, err)
	require.NotNil(t, location)
	assert.InDelta(t, 41.8967068, location.Lat, 1e-9)
	assert.InDelta(t, 12.4822025, location.Lng, 1e-9)
	assert.Equal(t, "Rome, Metropolitan City of Rome Capital, Italy", location.FormattedAddress)
	mockClient.AssertExpectations(t)
}

func Test_GeocodingClient_ZeroResults_ReturnsNil(t *testing.T) {
	mockClient := &mockHTTPClient{}
	mockClient.On("Do", mock.Anything).Return(fixture(t, "geocode_zero_results.json"), nil)

	client := NewClient("secret")
	client.SetHTTPClient(mockClient)

	location, err := client.Geocode(context.Background(), "Nowhere")

	assert.NoError(t, err)
	assert.Nil(t, location)
}

func Test_GeocodingClient_DeniedStatus_ReturnsError(t *testing.T) {
	mockClient := &mockHTTPClient{}
	mockClient.On("Do", mock.Anything).Return(fixture(t, "geocode_denied.json"), nil)

	client := NewClient("bad")
	client.SetHTTPClient(mockClient)

	_, err := client.Geocode(context.Background(), "Rome")

	assert.ErrorContains(t, err, "REQUEST_DENIED")
}

type mockGeocoder struct {
	mock.Mock
}

func (m *mockGeocoder) Geocode(ctx context.Context, address string) (*models.GeoLocation, error) {
	args := m.Called(ctx, address)
	location, _ := args.Get(0).(*models.GeoLocation)
	return location, args.Error(1)
}

func Test_CachedClient_SameAddress_CallsProviderOnce(t *testing.T) {
	inner := &mockGeocoder{}
	inner.On("Geocode", mock.Anything, "Rome, Italy").
		Return(&models.GeoLocation{Lat: 41.9, Lng: 12.5, FormattedAddress: "Rome, Italy"}, nil).Once()

	client := NewCachedClient(inner, time.Hour)

	first, err := client.Geocode(context.Background(), "Rome, Italy")
	require.NoError(t, err)
	second, err := client.Geocode(context.Background(), " rome, italy ")
	require.NoError(t, err)

	assert.Equal(t, first, second)
	inner.AssertNumberOfCalls(t, "Geocode", 1)
}

func Test_CachedClient_Miss_IsCached(t *testing.T) {
	inner := &mockGeocoder{}
	inner.On("Geocode", mock.Anything, "Atlantis").Return(nil, nil).Once()

	client := NewCachedClient(inner, time.Hour)

	for i := 0; i < 2; i++ {
		location, err := client.Geocode(context.Background(), "Atlantis")
		assert.NoError(t, err)
		assert.Nil(t, location)
	}
	inner.AssertNumberOfCalls(t, "Geocode", 1)
}
