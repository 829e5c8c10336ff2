package ocr

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"net/url"

	"github.com/opengs/tesswrap/raster"
)

// Builds multipart upload with the encoded image under "file" plus extra text fields
func newUploadRequest(ctx context.Context, endpoint string, image []byte, fields map[string]string) (*http.Request, error) {
	body := &bytes.Buffer{}
	writer := multipart.NewWriter(body)
	imagePart, err := writer.CreateFormFile("file", "data")
	if err != nil {
		return nil, errors.Join(errors.New("failed to prepare multipart form data: failed to prepare image for sending as file"), err)
	}
	if _, err = io.Copy(imagePart, bytes.NewReader(image)); err != nil {
		return nil, errors.Join(errors.New("failed to prepare multipart form data: failed to write image to multipart"), err)
	}
	for name, value := range fields {
		if err = writer.WriteField(name, value); err != nil {
			return nil, errors.Join(fmt.Errorf("failed to prepare multipart form data: failed to write %s to multipart", name), err)
		}
	}
	if err = writer.Close(); err != nil {
		return nil, errors.Join(errors.New("failed to prepare multipart form data: failed to finalize writer"), err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, body)
	if err != nil {
		return nil, errors.Join(errors.New("failed to prepare HTTP request"), err)
	}
	req.Header.Set("Content-Type", writer.FormDataContentType())
	return req, nil
}

// Sends request and decodes JSON response into out
func doJSON(client *http.Client, req *http.Request, out any) error {
	if client == nil {
		client = http.DefaultClient
	}
	resp, err := client.Do(req)
	if err != nil {
		return errors.Join(errors.New("HTTP request to external server failed"), err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("bad status code from external sever: status code %d", resp.StatusCode)
	}

	responseBytes, err := io.ReadAll(resp.Body)
	if err != nil {
		return errors.Join(errors.New("error while reading response body from remote server"), err)
	}
	if err := json.Unmarshal(responseBytes, out); err != nil {
		return errors.Join(errors.New("failed to unmarshall response from remote server"), err)
	}
	return nil
}

func checkBaseURL(baseURL string) error {
	u, err := url.Parse(baseURL)
	if err != nil {
		return errors.Join(errors.New("bad server URL"), err)
	}
	if u.Scheme != "http" && u.Scheme != "https" || u.Host == "" {
		return fmt.Errorf("bad server URL: %q", baseURL)
	}
	return nil
}

func encodeForUpload(image *raster.Raster, mimeType string) ([]byte, error) {
	encoded, err := raster.EncodeBytes(image, mimeType)
	if err != nil {
		return nil, errors.Join(errors.New("failed to prepare image for upload"), err)
	}
	return encoded, nil
}
