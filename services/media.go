package services

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log"
	"mime/multipart"
	"net/http"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"beyt_client/api"
)

// MediaService uploads listing images: the backend signs each upload, the
// bytes go straight to the media host.
type MediaService struct {
	client     *api.Client
	http       *http.Client
	uploadBase string
}

func NewMediaService(client *api.Client) *MediaService {
	return &MediaService{
		client:     client,
		http:       &http.Client{Timeout: 60 * time.Second}, // media uploads are slow
		uploadBase: "https://api.cloudinary.com/v1_1",
	}
}

// UploadSignature is the signed-upload descriptor from the backend.
type UploadSignature struct {
	Signature string `json:"signature"`
	Timestamp int64  `json:"timestamp"`
	APIKey    string `json:"apiKey"`
	CloudName string `json:"cloudName"`
}

const uploadFolder = "uploads"

// UploadAll uploads the files sequentially and returns their hosted URLs in
// input order.
func (s *MediaService) UploadAll(ctx context.Context, paths []string) ([]string, error) {
	urls := make([]string, 0, len(paths))
	for _, p := range paths {
		url, err := s.Upload(ctx, p)
		if err != nil {
			return nil, fmt.Errorf("upload %s: %w", filepath.Base(p), err)
		}
		urls = append(urls, url)
	}
	return urls, nil
}

// Upload signs and pushes one file, returning its secure URL.
func (s *MediaService) Upload(ctx context.Context, path string) (string, error) {
	name := filepath.Base(path)
	publicID := uploadFolder + "/" + strings.TrimSuffix(name, filepath.Ext(name))

	var sig UploadSignature
	err := s.client.Post(ctx, api.RouteUploadSignature, map[string]string{
		"folder":    uploadFolder,
		"public_id": publicID,
	}, &sig)
	if err != nil {
		return "", fmt.Errorf("generate signature: %w", err)
	}

	file, err := os.Open(path)
	if err != nil {
		return "", err
	}
	defer file.Close()

	var buf bytes.Buffer
	form := multipart.NewWriter(&buf)

	part, err := form.CreateFormFile("file", name)
	if err != nil {
		return "", err
	}
	if _, err := io.Copy(part, file); err != nil {
		return "", err
	}
	form.WriteField("api_key", sig.APIKey)
	form.WriteField("timestamp", strconv.FormatInt(sig.Timestamp, 10))
	form.WriteField("folder", uploadFolder)
	form.WriteField("public_id", publicID)
	form.WriteField("signature", sig.Signature)
	if err := form.Close(); err != nil {
		return "", err
	}

	uploadURL := fmt.Sprintf("%s/%s/auto/upload", s.uploadBase, sig.CloudName)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, uploadURL, &buf)
	if err != nil {
		return "", err
	}
	req.Header.Set("Content-Type", form.FormDataContentType())

	resp, err := s.http.Do(req)
	if err != nil {
		return "", &api.NetworkError{Op: http.MethodPost, URL: uploadURL, Err: err}
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", err
	}
	if resp.StatusCode >= 400 {
		return "", &api.HTTPError{Op: http.MethodPost, URL: uploadURL, Status: resp.StatusCode, Body: body}
	}

	var result struct {
		SecureURL string `json:"secure_url"`
	}
	if err := json.Unmarshal(body, &result); err != nil {
		return "", err
	}

	log.Printf("services: uploaded %s", name)
	return result.SecureURL, nil
}
