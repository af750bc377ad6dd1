package server_test

import (
	"bytes"
	"encoding/json"
	"fmt"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rezonia/facturx-engine/internal/server"
)

func newTestServer() *server.Server {
	config := &server.Config{
		Address: ":8080",
		Debug:   true,
	}
	return server.NewServer(config)
}

func minimalPDF() []byte {
	var buf bytes.Buffer
	buf.WriteString("%PDF-1.7\n")

	objects := []string{
		"1 0 obj\n<< /Type /Catalog /Pages 2 0 R >>\nendobj\n",
		"2 0 obj\n<< /Type /Pages /Kids [3 0 R] /Count 1 >>\nendobj\n",
		"3 0 obj\n<< /Type /Page /Parent 2 0 R /MediaBox [0 0 595 842] /Resources << >> >>\nendobj\n",
	}

	offsets := make([]int, 0, len(objects))
	for _, obj := range objects {
		offsets = append(offsets, buf.Len())
		buf.WriteString(obj)
	}

	xref := buf.Len()
	buf.WriteString(fmt.Sprintf("xref\n0 %d\n", len(objects)+1))
	buf.WriteString("0000000000 65535 f \n")
	for _, off := range offsets {
		buf.WriteString(fmt.Sprintf("%010d 00000 n \n", off))
	}
	buf.WriteString(fmt.Sprintf("trailer\n<< /Size %d /Root 1 0 R >>\nstartxref\n%d\n%%%%EOF\n", len(objects)+1, xref))

	return buf.Bytes()
}

const sampleRequestJSON = `{
	"invoice": {
		"number": "RE-2025-0042",
		"issue_date": "2025-10-31",
		"due_date": "2025-11-30",
		"currency": "EUR",
		"sub_total": "100.00",
		"tax_amount": "19.00",
		"total_amount": "119.00",
		"tax_rate": "0.19",
		"items": [
			{"description": "Consulting", "quantity": "1", "unit_price": "100", "total_price": "100"}
		]
	},
	"seller": {
		"name": "ACME GmbH",
		"street": "Hauptstr. 1",
		"postal_code": "10115",
		"city": "Berlin",
		"country": "DE",
		"tax_id": "DE123456789"
	},
	"buyer": {
		"name": "Kunde AG"
	}
}`

func TestHealthEndpoint(t *testing.T) {
	srv := newTestServer()

	req := httptest.NewRequest(http.MethodGet, "/health", nil)
	w := httptest.NewRecorder()

	srv.Handler().ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)

	var response map[string]interface{}
	err := json.Unmarshal(w.Body.Bytes(), &response)
	require.NoError(t, err)

	assert.Equal(t, "ok", response["status"])
	assert.NotEmpty(t, response["time"])
}

func TestSerializeEndpoint(t *testing.T) {
	srv := newTestServer()

	req := httptest.NewRequest(http.MethodPost, "/api/v1/serialize", strings.NewReader(sampleRequestJSON))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()

	srv.Handler().ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)

	var response server.SerializeResponse
	err := json.Unmarshal(w.Body.Bytes(), &response)
	require.NoError(t, err)

	assert.Contains(t, response.Payload, "rsm:CrossIndustryInvoice")
	assert.Contains(t, response.Payload, "RE-2025-0042")
	assert.Empty(t, response.Warnings)
}

func TestSerializeEndpoint_InvalidBody(t *testing.T) {
	srv := newTestServer()

	req := httptest.NewRequest(http.MethodPost, "/api/v1/serialize", strings.NewReader("not json"))
	w := httptest.NewRecorder()

	srv.Handler().ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestSerializeEndpoint_LineItemFault(t *testing.T) {
	srv := newTestServer()

	body := strings.Replace(sampleRequestJSON, `"quantity": "1"`, `"quantity": "many"`, 1)
	req := httptest.NewRequest(http.MethodPost, "/api/v1/serialize", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()

	srv.Handler().ServeHTTP(w, req)

	assert.Equal(t, http.StatusUnprocessableEntity, w.Code)

	var response server.ErrorResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &response))
	assert.Equal(t, "line_item", response.Kind)
}

func multipartBody(t *testing.T, files map[string][]byte, fields map[string]string) (*bytes.Buffer, string) {
	t.Helper()

	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	for name, data := range files {
		fw, err := mw.CreateFormFile(name, name+".bin")
		require.NoError(t, err)
		_, err = fw.Write(data)
		require.NoError(t, err)
	}
	for name, value := range fields {
		require.NoError(t, mw.WriteField(name, value))
	}
	require.NoError(t, mw.Close())
	return &buf, mw.FormDataContentType()
}

func TestEmbedEndpoint(t *testing.T) {
	srv := newTestServer()

	payload := []byte(`<?xml version='1.0' encoding='UTF-8'?><x/>`)
	body, contentType := multipartBody(t, map[string][]byte{
		"container": minimalPDF(),
		"payload":   payload,
	}, nil)

	req := httptest.NewRequest(http.MethodPost, "/api/v1/embed", body)
	req.Header.Set("Content-Type", contentType)
	w := httptest.NewRecorder()

	srv.Handler().ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "application/pdf", w.Header().Get("Content-Type"))
	assert.True(t, bytes.HasPrefix(w.Body.Bytes(), []byte("%PDF")))
}

func TestEmbedEndpoint_MissingContainer(t *testing.T) {
	srv := newTestServer()

	body, contentType := multipartBody(t, map[string][]byte{
		"payload": []byte("<x/>"),
	}, nil)

	req := httptest.NewRequest(http.MethodPost, "/api/v1/embed", body)
	req.Header.Set("Content-Type", contentType)
	w := httptest.NewRecorder()

	srv.Handler().ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestEmbedEndpoint_CorruptContainer(t *testing.T) {
	srv := newTestServer()

	body, contentType := multipartBody(t, map[string][]byte{
		"container": []byte("junk"),
		"payload":   []byte("<x/>"),
	}, nil)

	req := httptest.NewRequest(http.MethodPost, "/api/v1/embed", body)
	req.Header.Set("Content-Type", contentType)
	w := httptest.NewRecorder()

	srv.Handler().ServeHTTP(w, req)

	assert.Equal(t, http.StatusUnprocessableEntity, w.Code)

	var response server.ErrorResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &response))
	assert.Equal(t, "container_parse", response.Kind)
}

func TestGenerateEndpoint(t *testing.T) {
	srv := newTestServer()

	body, contentType := multipartBody(t, map[string][]byte{
		"container": minimalPDF(),
	}, map[string]string{
		"invoice": sampleRequestJSON,
	})

	req := httptest.NewRequest(http.MethodPost, "/api/v1/generate", body)
	req.Header.Set("Content-Type", contentType)
	w := httptest.NewRecorder()

	srv.Handler().ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.True(t, bytes.HasPrefix(w.Body.Bytes(), []byte("%PDF")))
	assert.Empty(t, w.Header().Get("X-Formatting-Warnings"))
}

func TestInspectEndpoint(t *testing.T) {
	srv := newTestServer()

	// Build a hybrid container through the generate endpoint first.
	body, contentType := multipartBody(t, map[string][]byte{
		"container": minimalPDF(),
	}, map[string]string{
		"invoice": sampleRequestJSON,
	})
	genReq := httptest.NewRequest(http.MethodPost, "/api/v1/generate", body)
	genReq.Header.Set("Content-Type", contentType)
	genW := httptest.NewRecorder()
	srv.Handler().ServeHTTP(genW, genReq)
	require.Equal(t, http.StatusOK, genW.Code)

	req := httptest.NewRequest(http.MethodPost, "/api/v1/inspect", bytes.NewReader(genW.Body.Bytes()))
	w := httptest.NewRecorder()
	srv.Handler().ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)

	var report map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &report))
	assert.Equal(t, true, report["attachment_found"])
	assert.Equal(t, "RE-2025-0042", report["invoice_number"])
}

func TestInspectEndpoint_EmptyBody(t *testing.T) {
	srv := newTestServer()

	req := httptest.NewRequest(http.MethodPost, "/api/v1/inspect", nil)
	w := httptest.NewRecorder()

	srv.Handler().ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
}
