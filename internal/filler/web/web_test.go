package web_test

import (
	"bytes"
	"encoding/json"
	"io"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/go-kit/kit/log"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	"github.com/creocert/sheet-filler/internal/filler"
	"github.com/creocert/sheet-filler/internal/filler/web"
	"github.com/creocert/sheet-filler/internal/parser"
	"github.com/creocert/sheet-filler/internal/path"
	"github.com/creocert/sheet-filler/internal/placeholder"
	"github.com/creocert/sheet-filler/internal/response"
	"github.com/creocert/sheet-filler/internal/workbook"
	"github.com/creocert/sheet-filler/internal/xlsx"
)

func newServer(t *testing.T) (*httptest.Server, *path.Builder) {
	t.Helper()
	logger := log.NewNopLogger()

	p, err := path.NewBuilder(t.TempDir(), t.TempDir(), func() string { return "uuid" })
	require.NoError(t, err)

	prs, err := parser.New()
	require.NoError(t, err)

	resolver, err := placeholder.New()
	require.NoError(t, err)

	svc := filler.NewService(p, prs, workbook.NewExtractor(), xlsx.NewFacade(resolver, logger).FillIn, logger)

	handler := web.NewHandler(svc, response.Build, p, func() string { return "uuid" }, logger)
	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)
	return server, p
}

func writeTemplate(t *testing.T, p *path.Builder, build func(f *excelize.File)) {
	t.Helper()
	f := excelize.NewFile()
	build(f)
	require.NoError(t, f.SaveAs(p.Template()))
}

func workbookBytes(t *testing.T, build func(f *excelize.File)) []byte {
	t.Helper()
	f := excelize.NewFile()
	build(f)
	buf, err := f.WriteToBuffer()
	require.NoError(t, err)
	return buf.Bytes()
}

func multipartBody(t *testing.T, filename string, workbook []byte, mapping string) (io.Reader, string) {
	t.Helper()
	var body bytes.Buffer
	w := multipart.NewWriter(&body)
	if workbook != nil {
		part, err := w.CreateFormFile("file", filename)
		require.NoError(t, err)
		_, err = part.Write(workbook)
		require.NoError(t, err)
	}
	if mapping != "" {
		require.NoError(t, w.WriteField("mapping", mapping))
	}
	require.NoError(t, w.Close())
	return &body, w.FormDataContentType()
}

func postGenerate(t *testing.T, server *httptest.Server, body io.Reader, contentType string) *http.Response {
	t.Helper()
	resp, err := http.Post(server.URL+"/api/generate", contentType, body)
	require.NoError(t, err)
	t.Cleanup(func() { resp.Body.Close() })
	return resp
}

func errorMessage(t *testing.T, resp *http.Response) string {
	t.Helper()
	var body struct {
		Error string `json:"error"`
	}
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	return body.Error
}

func TestGenerate(t *testing.T) {
	t.Run("success", func(t *testing.T) {
		server, p := newServer(t)
		writeTemplate(t, p, func(f *excelize.File) {
			f.SetCellValue("Sheet1", "A1", "{NAME}: {Grade}")
		})

		upload := workbookBytes(t, func(f *excelize.File) {
			f.SetCellValue("Sheet1", "A1", "NAME")
			f.SetCellValue("Sheet1", "A2", "Ana")
			f.NewSheet("Grades")
			f.SetCellValue("Grades", "A1", "NAME")
			f.SetCellValue("Grades", "B1", "Grade")
			f.SetCellValue("Grades", "A2", "Ana")
			f.SetCellValue("Grades", "B2", "95")
		})
		body, contentType := multipartBody(t, "rows.xlsx", upload, `{"NAME":"NAME","Grade":"Grade"}`)
		resp := postGenerate(t, server, body, contentType)

		require.Equal(t, http.StatusOK, resp.StatusCode)
		assert.Equal(t, "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet", resp.Header.Get("Content-Type"))
		disposition := resp.Header.Get("Content-Disposition")
		assert.True(t, strings.HasPrefix(disposition, "attachment; filename=filled_multi_sheets_"))

		data, err := io.ReadAll(resp.Body)
		require.NoError(t, err)
		out, err := excelize.OpenReader(bytes.NewReader(data))
		require.NoError(t, err)
		require.Equal(t, []string{"Ana"}, out.GetSheetList())
		cell, err := out.GetCellValue("Ana", "A1")
		require.NoError(t, err)
		assert.Equal(t, "Ana: 95", cell)
	})

	t.Run("no file", func(t *testing.T) {
		server, _ := newServer(t)
		body, contentType := multipartBody(t, "", nil, "")
		resp := postGenerate(t, server, body, contentType)

		assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
		assert.Equal(t, "file is required", errorMessage(t, resp))
	})

	t.Run("one sheet upload", func(t *testing.T) {
		server, p := newServer(t)
		writeTemplate(t, p, func(f *excelize.File) {})

		upload := workbookBytes(t, func(f *excelize.File) {
			f.SetCellValue("Sheet1", "A1", "NAME")
			f.SetCellValue("Sheet1", "A2", "Ana")
		})
		body, contentType := multipartBody(t, "rows.xlsx", upload, "")
		resp := postGenerate(t, server, body, contentType)

		assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
		assert.NotEmpty(t, errorMessage(t, resp))
	})

	t.Run("missing template", func(t *testing.T) {
		server, _ := newServer(t)
		upload := workbookBytes(t, func(f *excelize.File) {
			f.SetCellValue("Sheet1", "A1", "NAME")
			f.SetCellValue("Sheet1", "A2", "Ana")
			f.NewSheet("Grades")
		})
		body, contentType := multipartBody(t, "rows.xlsx", upload, "")
		resp := postGenerate(t, server, body, contentType)

		assert.Equal(t, http.StatusInternalServerError, resp.StatusCode)
		assert.NotEmpty(t, errorMessage(t, resp))
	})

	t.Run("method not allowed", func(t *testing.T) {
		server, _ := newServer(t)
		resp, err := http.Get(server.URL + "/api/generate")
		require.NoError(t, err)
		defer resp.Body.Close()
		assert.Equal(t, http.StatusMethodNotAllowed, resp.StatusCode)
	})
}

func TestPing(t *testing.T) {
	server, _ := newServer(t)
	resp, err := http.Get(server.URL + "/api/ping")
	require.NoError(t, err)
	defer resp.Body.Close()

	require.Equal(t, http.StatusOK, resp.StatusCode)
	data, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	assert.JSONEq(t, `{"ok":true}`, string(data))
}

func TestUploadTemplate(t *testing.T) {
	server, _ := newServer(t)

	var body bytes.Buffer
	w := multipart.NewWriter(&body)
	part, err := w.CreateFormFile("file", "certificate.pptx")
	require.NoError(t, err)
	_, err = part.Write([]byte("pptx bytes"))
	require.NoError(t, err)
	require.NoError(t, w.WriteField("type", "certificate"))
	require.NoError(t, w.Close())

	resp, err := http.Post(server.URL+"/api/upload-template", w.FormDataContentType(), &body)
	require.NoError(t, err)
	defer resp.Body.Close()
	require.Equal(t, http.StatusOK, resp.StatusCode)

	list, err := http.Get(server.URL + "/api/templates")
	require.NoError(t, err)
	defer list.Body.Close()
	data, err := io.ReadAll(list.Body)
	require.NoError(t, err)
	assert.JSONEq(t, `{"templates":["certificate.pptx"]}`, string(data))

	static, err := http.Get(server.URL + "/uploads/templates/certificate.pptx")
	require.NoError(t, err)
	defer static.Body.Close()
	content, err := io.ReadAll(static.Body)
	require.NoError(t, err)
	assert.Equal(t, "pptx bytes", string(content))
}
