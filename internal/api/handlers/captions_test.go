package handlers

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/Abhyam-Mathur/speech-to-text-backend/internal/storage/models"
)

const sampleVTT = "WEBVTT\n\n00:00:01.500 --> 00:00:04.000\nHello there\n\n00:00:05.000 --> 00:00:08.250\nGeneral Kenobi\n"

func TestImportCaptionsRawBody(t *testing.T) {
	req := httptest.NewRequest(http.MethodPost, "/captions", strings.NewReader(sampleVTT))
	req.Header.Set("Content-Type", "text/vtt")
	rr := httptest.NewRecorder()

	ImportCaptions(rr, req)

	if rr.Code != http.StatusOK {
		t.Fatalf("status = %d, body = %s", rr.Code, rr.Body.String())
	}
	resp := decodeBody[models.CaptionsResponse](t, rr)
	if len(resp.Segments) != 2 {
		t.Fatalf("segments = %+v", resp.Segments)
	}
	if resp.Segments[0].Text != "Hello there" || resp.Segments[0].Start != 1.5 {
		t.Errorf("first segment = %+v", resp.Segments[0])
	}
	if resp.Segments[1].End != 8.25 {
		t.Errorf("second segment = %+v", resp.Segments[1])
	}
}

func TestImportCaptionsMultipart(t *testing.T) {
	body, contentType := multipartUpload(t, "file", "captions.vtt", sampleVTT)
	req := httptest.NewRequest(http.MethodPost, "/captions", body)
	req.Header.Set("Content-Type", contentType)
	rr := httptest.NewRecorder()

	ImportCaptions(rr, req)

	if rr.Code != http.StatusOK {
		t.Fatalf("status = %d, body = %s", rr.Code, rr.Body.String())
	}
	if resp := decodeBody[models.CaptionsResponse](t, rr); len(resp.Segments) != 2 {
		t.Errorf("segments = %+v", resp.Segments)
	}
}

func TestImportCaptionsInvalidDocument(t *testing.T) {
	req := httptest.NewRequest(http.MethodPost, "/captions", strings.NewReader("NOT A VTT FILE"))
	rr := httptest.NewRecorder()

	ImportCaptions(rr, req)

	if rr.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400", rr.Code)
	}
	if body := decodeBody[errorResponse](t, rr); !strings.Contains(body.Error, "invalid captions") {
		t.Errorf("error = %q", body.Error)
	}
}

func TestImportCaptionsEmptyBody(t *testing.T) {
	req := httptest.NewRequest(http.MethodPost, "/captions", strings.NewReader(""))
	rr := httptest.NewRecorder()

	ImportCaptions(rr, req)

	if rr.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400", rr.Code)
	}
}
