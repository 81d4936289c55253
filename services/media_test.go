package services

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"
	"time"

	"beyt_client/api"
)

func TestUpload_SignsThenPushes(t *testing.T) {
	var signedPublicID string
	backend := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != api.RouteUploadSignature {
			t.Fatalf("unexpected backend path: %s", r.URL.Path)
		}
		var req map[string]string
		json.NewDecoder(r.Body).Decode(&req)
		signedPublicID = req["public_id"]
		json.NewEncoder(w).Encode(UploadSignature{
			Signature: "sig",
			Timestamp: 1700000000,
			APIKey:    "key",
			CloudName: "demo",
		})
	}))
	defer backend.Close()

	var gotSignature, gotFileName string
	host := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/demo/auto/upload" {
			t.Fatalf("unexpected upload path: %s", r.URL.Path)
		}
		r.ParseMultipartForm(1 << 20)
		gotSignature = r.FormValue("signature")
		if _, header, err := r.FormFile("file"); err == nil {
			gotFileName = header.Filename
		}
		json.NewEncoder(w).Encode(map[string]string{
			"secure_url": "https://cdn.example.com/uploads/villa.jpg",
		})
	}))
	defer host.Close()

	imgPath := filepath.Join(t.TempDir(), "villa.jpg")
	if err := os.WriteFile(imgPath, []byte("jpeg-bytes"), 0644); err != nil {
		t.Fatalf("write fixture: %v", err)
	}

	client := api.NewClient(backend.URL, 2*time.Second, nil)
	media := NewMediaService(client)
	media.uploadBase = host.URL

	url, err := media.Upload(context.Background(), imgPath)
	if err != nil {
		t.Fatalf("upload: %v", err)
	}

	if url != "https://cdn.example.com/uploads/villa.jpg" {
		t.Fatalf("unexpected url: %s", url)
	}
	if signedPublicID != "uploads/villa" {
		t.Fatalf("unexpected public id: %s", signedPublicID)
	}
	if gotSignature != "sig" {
		t.Fatalf("signature not forwarded: %s", gotSignature)
	}
	if gotFileName != "villa.jpg" {
		t.Fatalf("file part missing: %s", gotFileName)
	}
}
