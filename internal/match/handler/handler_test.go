package handler

import (
	"bytes"
	"encoding/json"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"match-service/internal/config"
	"match-service/internal/match/model"
)

func testConfig() config.Config {
	return config.Config{MaxUploadMB: 16}
}

func multipartBody(t *testing.T, catalog string, listings []string, fields map[string]string) (*bytes.Buffer, string) {
	t.Helper()
	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)

	if catalog != "" {
		fw, err := mw.CreateFormFile("catalog", "catalog.ndjson")
		require.NoError(t, err)
		_, err = fw.Write([]byte(catalog))
		require.NoError(t, err)
	}
	for _, l := range listings {
		fw, err := mw.CreateFormFile("listings", "listings.ndjson")
		require.NoError(t, err)
		_, err = fw.Write([]byte(l))
		require.NoError(t, err)
	}
	for k, v := range fields {
		require.NoError(t, mw.WriteField(k, v))
	}
	require.NoError(t, mw.Close())
	return &buf, mw.FormDataContentType()
}

func TestMatchHandler(t *testing.T) {
	catalog := `{"product_name":"P1","manufacturer":"Acme","model":"X100"}`
	listings := []string{
		`{"title":"Acme X100 Camera","manufacturer":"Acme Corp","price":"129.99"}` + "\n" +
			`{"title":"Acme gadget","manufacturer":"Acme"}` + "\n" +
			`broken line`,
	}

	body, ctype := multipartBody(t, catalog, listings, nil)
	req := httptest.NewRequest(http.MethodPost, "/match", body)
	req.Header.Set("Content-Type", ctype)
	rec := httptest.NewRecorder()

	Match(testConfig(), zerolog.Nop())(rec, req)
	require.Equal(t, http.StatusOK, rec.Code)

	var resp struct {
		Groups   []model.Group `json:"groups"`
		Listings int           `json:"listings"`
		Matched  int           `json:"matched"`
		Skipped  int           `json:"skipped"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))

	assert.Equal(t, 2, resp.Listings)
	assert.Equal(t, 1, resp.Matched)
	assert.Equal(t, 1, resp.Skipped)
	require.Len(t, resp.Groups, 1)
	assert.Equal(t, "P1", resp.Groups[0].ProductName)
	require.Len(t, resp.Groups[0].Listings, 1)
	assert.Equal(t, "129.99", resp.Groups[0].Listings[0]["price"])
}

func TestMatchHandlerMissingCatalog(t *testing.T) {
	body, ctype := multipartBody(t, "", []string{`{"title":"x"}`}, nil)
	req := httptest.NewRequest(http.MethodPost, "/match", body)
	req.Header.Set("Content-Type", ctype)
	rec := httptest.NewRecorder()

	Match(testConfig(), zerolog.Nop())(rec, req)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestMatchHandlerBadCatalogEntry(t *testing.T) {
	catalog := `{"product_name":"P1","manufacturer":"","model":""}`
	body, ctype := multipartBody(t, catalog, []string{`{"title":"Acme X100"}`}, nil)
	req := httptest.NewRequest(http.MethodPost, "/match", body)
	req.Header.Set("Content-Type", ctype)
	rec := httptest.NewRecorder()

	Match(testConfig(), zerolog.Nop())(rec, req)
	require.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, rec.Body.String(), "catalog")
}

func TestHelpers(t *testing.T) {
	assert.Equal(t, 3, atoi("3", 1))
	assert.Equal(t, 1, atoi("", 1))
	assert.Equal(t, 1, atoi("-2", 1))
	assert.True(t, toBool("on", false))
	assert.False(t, toBool("0", true))
	assert.True(t, toBool("garbage", true))
}
