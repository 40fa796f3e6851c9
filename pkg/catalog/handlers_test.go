package catalog

import (
	"bytes"
	"encoding/json"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/footagedesk/catalogsync/pkg/binder"
	"github.com/footagedesk/catalogsync/pkg/errcodes"
	"github.com/footagedesk/catalogsync/pkg/payments"
	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestContext(t *testing.T, payload, method, path string) (echo.Context, *httptest.ResponseRecorder) {
	t.Helper()

	e := echo.New()
	b, err := binder.New()
	require.NoError(t, err)
	e.Binder = b
	e.HTTPErrorHandler = errcodes.NewHandler().Handle

	req := httptest.NewRequest(method, path, strings.NewReader(payload))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rr := httptest.NewRecorder()
	return e.NewContext(req, rr), rr
}

func newMultipartContext(t *testing.T, fields map[string]string, filename string, file []byte) (echo.Context, *httptest.ResponseRecorder) {
	t.Helper()

	body := &bytes.Buffer{}
	w := multipart.NewWriter(body)
	for k, v := range fields {
		require.NoError(t, w.WriteField(k, v))
	}
	if filename != "" {
		fw, err := w.CreateFormFile("file", filename)
		require.NoError(t, err)
		_, err = fw.Write(file)
		require.NoError(t, err)
	}
	require.NoError(t, w.Close())

	e := echo.New()
	b, err := binder.New()
	require.NoError(t, err)
	e.Binder = b
	e.HTTPErrorHandler = errcodes.NewHandler().Handle

	req := httptest.NewRequest(http.MethodPost, "/upload", body)
	req.Header.Set(echo.HeaderContentType, w.FormDataContentType())
	rr := httptest.NewRecorder()
	return e.NewContext(req, rr), rr
}

func newTestHandler(t *testing.T) (*handler, *payments.Fake) {
	t.Helper()

	db := newTestDB(t)
	fake := payments.NewFake()
	return &handler{
		syncer: NewSyncer(NewService(db), payments.NewReconciler(fake, ""), false),
	}, fake
}

func TestHandlerSync(t *testing.T) {
	t.Parallel()

	h, fake := newTestHandler(t)

	payload := `{"items":[{"vid":"V001","title":"Sunset","EX_price":"55000"}],"update_target":"both"}`
	c, rr := newTestContext(t, payload, http.MethodPost, "/sync")

	err := h.sync(c)
	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, rr.Code)

	resp := syncResponse{}
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &resp))
	assert.Equal(t, 1, resp.Succeeded)
	assert.Equal(t, 0, resp.Failed)
	assert.NotEmpty(t, resp.BatchID)
	assert.Equal(t, "synced 1 rows, 0 failed", resp.Message)
	assert.NotEmpty(t, resp.Logs)

	assert.Equal(t, 1, fake.ProductCount())
}

func TestHandlerSync_TargetAlias(t *testing.T) {
	t.Parallel()

	h, fake := newTestHandler(t)

	payload := `{"items":[{"vid":"V001","title":"Sunset"}],"update_target":"supabase"}`
	c, rr := newTestContext(t, payload, http.MethodPost, "/sync")

	err := h.sync(c)
	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, rr.Code)
	assert.Equal(t, 0, fake.ProductCount())
}

func TestHandlerSync_RequiresItems(t *testing.T) {
	t.Parallel()

	h, _ := newTestHandler(t)

	c, _ := newTestContext(t, `{"items":[]}`, http.MethodPost, "/sync")

	err := h.sync(c)
	require.Error(t, err)
}

func TestHandlerUpload_ParseOnly(t *testing.T) {
	t.Parallel()

	h, fake := newTestHandler(t)

	csvData := []byte("vid,title\nV001,Sunset\nV002,Harbor\n")
	c, rr := newMultipartContext(t, nil, "catalog.csv", csvData)

	err := h.upload(c)
	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, rr.Code)

	resp := struct {
		Items []Row `json:"items"`
	}{}
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &resp))
	require.Len(t, resp.Items, 2)
	assert.Equal(t, "V001", resp.Items[0]["vid"])

	// Parse-only never touches the backends.
	assert.Equal(t, 0, fake.ProductCount())
}

func TestHandlerUpload_SyncsParsedRows(t *testing.T) {
	t.Parallel()

	h, fake := newTestHandler(t)

	csvData := []byte("vid,title,EX_price\nV001,Sunset,55000\n")
	c, rr := newMultipartContext(t, map[string]string{
		"sync":          "true",
		"update_target": "both",
	}, "catalog.csv", csvData)

	err := h.upload(c)
	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, rr.Code)

	resp := syncResponse{}
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &resp))
	assert.Equal(t, 1, resp.Succeeded)
	assert.Equal(t, 1, fake.ProductCount())
}

func TestHandlerUpload_UnsupportedFormat(t *testing.T) {
	t.Parallel()

	h, _ := newTestHandler(t)

	c, _ := newMultipartContext(t, nil, "catalog.zip", []byte{0x50, 0x4b, 0x03, 0x04, 0x00, 0x00})

	err := h.upload(c)
	require.Error(t, err)
	assert.True(t, errors.Is(err, errcodes.UnsupportedFileFormat()))
}

func TestHandlerUpload_RequiresFileOrItems(t *testing.T) {
	t.Parallel()

	h, _ := newTestHandler(t)

	c, _ := newMultipartContext(t, map[string]string{"sync": "false"}, "", nil)

	err := h.upload(c)
	require.Error(t, err)
}
