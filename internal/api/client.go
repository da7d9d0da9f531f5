// Package api is the HTTP client for the mutasi server: the outlet and
// product catalogs, the PDF preview endpoint, form submission, and login.
package api

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
	"os"
	"path/filepath"
	"strings"

	"github.com/hwgcc/mutasi-flow/internal/form"
	"github.com/hwgcc/mutasi-flow/internal/model"
)

// ErrAuthExpired is returned when the server answers 401. The caller must
// abandon what it was doing and send the user through the login flow.
var ErrAuthExpired = errors.New("sesi berakhir, silakan login ulang")

// SessionCookie is the cookie carrying the access token.
const SessionCookie = "sb_access_token"

// Client talks to one mutasi server.
type Client struct {
	httpClient *http.Client
	token      func() string
	baseURL    string
}

// NewClient creates a client for baseURL. token supplies the current session
// token per request; it may return empty when the user has not logged in.
// No request timeout is imposed here: the preview request in particular is
// only cancelled through its context.
func NewClient(baseURL string, token func() string) *Client {
	if token == nil {
		token = func() string { return "" }
	}
	return &Client{
		baseURL:    strings.TrimRight(baseURL, "/"),
		token:      token,
		httpClient: &http.Client{},
	}
}

// PreviewResponse is the success body of the preview endpoint.
type PreviewResponse struct {
	PDFBase64   string `json:"pdf_base64"`
	PDFFileName string `json:"pdf_file_name"`
}

type errorResponse struct {
	Error string `json:"error"`
}

type outletWire struct {
	ID   json.Number `json:"id"`
	Name string      `json:"name"`
}

// Outlets fetches the outlet master catalog.
func (c *Client) Outlets(ctx context.Context) ([]model.Outlet, error) {
	resp, err := c.get(ctx, "/api/outlets", nil)
	if err != nil {
		return nil, err
	}
	defer func() { _ = resp.Body.Close() }()

	if err := c.checkStatus(resp); err != nil {
		return nil, err
	}

	var wire []outletWire
	if err := json.NewDecoder(resp.Body).Decode(&wire); err != nil {
		return nil, fmt.Errorf("failed to decode outlet catalog: %w", err)
	}

	outlets := make([]model.Outlet, 0, len(wire))
	for _, w := range wire {
		if w.Name == "" {
			continue
		}
		outlets = append(outlets, model.Outlet{ID: w.ID.String(), Name: w.Name})
	}
	return outlets, nil
}

// Products fetches the product catalog available at the given outlet. Any
// non-2xx status or malformed body is an error; the caller decides whether
// and how to retry.
func (c *Client) Products(ctx context.Context, outletID string) ([]model.Product, error) {
	resp, err := c.get(ctx, "/api/products", url.Values{"outlet_id": {outletID}})
	if err != nil {
		return nil, err
	}
	defer func() { _ = resp.Body.Close() }()

	if err := c.checkStatus(resp); err != nil {
		return nil, err
	}

	var products []model.Product
	if err := json.NewDecoder(resp.Body).Decode(&products); err != nil {
		return nil, fmt.Errorf("failed to decode product catalog: %w", err)
	}
	return products, nil
}

// Preview posts the assembled form and returns the rendered PDF artifact.
func (c *Client) Preview(ctx context.Context, p form.Payload) (PreviewResponse, error) {
	resp, err := c.postForm(ctx, "/preview", p, nil)
	if err != nil {
		return PreviewResponse{}, err
	}
	defer func() { _ = resp.Body.Close() }()

	if err := c.checkStatus(resp); err != nil {
		return PreviewResponse{}, err
	}

	var preview PreviewResponse
	if err := json.NewDecoder(resp.Body).Decode(&preview); err != nil {
		return PreviewResponse{}, fmt.Errorf("failed to decode preview response: %w", err)
	}
	if preview.PDFBase64 == "" {
		return PreviewResponse{}, errors.New("server tidak mengembalikan dokumen pratinjau")
	}
	return preview, nil
}

// ProgressWrapper lets callers observe upload progress: it receives the
// request body and its total size and returns the reader actually sent.
type ProgressWrapper func(body io.Reader, size int64) io.Reader

// Submit posts the assembled form for persistence.
func (c *Client) Submit(ctx context.Context, p form.Payload, progress ProgressWrapper) error {
	resp, err := c.postForm(ctx, "/submit", p, progress)
	if err != nil {
		return err
	}
	defer func() { _ = resp.Body.Close() }()

	return c.checkStatus(resp)
}

// Login exchanges credentials for a session token.
func (c *Client) Login(ctx context.Context, email, password string) (string, error) {
	values := url.Values{
		"email":    {email},
		"password": {password},
		"next":     {"/"},
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/login",
		strings.NewReader(values.Encode()))
	if err != nil {
		return "", fmt.Errorf("failed to create login request: %w", err)
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	// The server answers a successful login with a redirect carrying the
	// session cookie; don't follow it.
	client := &http.Client{
		CheckRedirect: func(*http.Request, []*http.Request) error {
			return http.ErrUseLastResponse
		},
	}
	resp, err := client.Do(req)
	if err != nil {
		return "", fmt.Errorf("login request failed: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	for _, cookie := range resp.Cookies() {
		if cookie.Name == SessionCookie && cookie.Value != "" {
			return cookie.Value, nil
		}
	}

	if resp.StatusCode >= 400 {
		return "", fmt.Errorf("login gagal: %s", c.serverError(resp, "periksa email dan password"))
	}
	return "", errors.New("login gagal: server tidak mengembalikan token sesi")
}

func (c *Client) get(ctx context.Context, path string, query url.Values) (*http.Response, error) {
	endpoint := c.baseURL + path
	if len(query) > 0 {
		endpoint += "?" + query.Encode()
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	c.attachSession(req)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("request to %s failed: %w", path, err)
	}
	return resp, nil
}

func (c *Client) postForm(ctx context.Context, path string, p form.Payload, progress ProgressWrapper) (*http.Response, error) {
	buf, contentType, err := encodeMultipart(p)
	if err != nil {
		return nil, err
	}

	size := int64(buf.Len())
	var body io.Reader = buf
	if progress != nil {
		body = progress(buf, size)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+path, body)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Content-Type", contentType)
	req.ContentLength = size
	c.attachSession(req)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("request to %s failed: %w", path, err)
	}
	return resp, nil
}

// encodeMultipart mirrors the form into a multipart body, attaching the
// optional file as the file_upload part.
func encodeMultipart(p form.Payload) (*bytes.Buffer, string, error) {
	buf := &bytes.Buffer{}
	w := multipart.NewWriter(buf)

	fields := map[string]string{
		"no_form":            p.NoForm,
		"tanggal":            p.Tanggal,
		"outlet_pengirim_id": p.OutletPengirimID,
		"outlet_penerima_id": p.OutletPenerimaID,
		"dibuat_oleh":        p.DibuatOleh,
		"disetujui_oleh":     p.DisetujuiOleh,
		"diterima_oleh":      p.DiterimaOleh,
		"items_json":         p.ItemsJSON,
	}
	for name, value := range fields {
		if err := w.WriteField(name, value); err != nil {
			return nil, "", fmt.Errorf("failed to write form field %s: %w", name, err)
		}
	}

	if p.AttachmentPath != "" {
		f, err := os.Open(p.AttachmentPath)
		if err != nil {
			return nil, "", fmt.Errorf("failed to open attachment: %w", err)
		}
		defer func() { _ = f.Close() }()

		part, err := w.CreateFormFile("file_upload", filepath.Base(p.AttachmentPath))
		if err != nil {
			return nil, "", fmt.Errorf("failed to create attachment part: %w", err)
		}
		if _, err := io.Copy(part, f); err != nil {
			return nil, "", fmt.Errorf("failed to copy attachment: %w", err)
		}
	}

	if err := w.Close(); err != nil {
		return nil, "", fmt.Errorf("failed to finalize form body: %w", err)
	}
	return buf, w.FormDataContentType(), nil
}

func (c *Client) attachSession(req *http.Request) {
	if token := c.token(); token != "" {
		req.AddCookie(&http.Cookie{Name: SessionCookie, Value: token})
	}
}

// checkStatus maps non-success statuses to errors. 401 becomes the
// ErrAuthExpired sentinel; anything else surfaces the server-supplied
// message when one exists.
func (c *Client) checkStatus(resp *http.Response) error {
	switch {
	case resp.StatusCode >= 200 && resp.StatusCode < 300:
		return nil
	case resp.StatusCode == http.StatusUnauthorized:
		return ErrAuthExpired
	default:
		return fmt.Errorf("server menolak permintaan (%d): %s",
			resp.StatusCode, c.serverError(resp, "terjadi kesalahan pada server"))
	}
}

func (c *Client) serverError(resp *http.Response, fallback string) string {
	body, err := io.ReadAll(io.LimitReader(resp.Body, 1<<20))
	if err != nil {
		return fallback
	}
	var parsed errorResponse
	if err := json.Unmarshal(body, &parsed); err == nil && parsed.Error != "" {
		return parsed.Error
	}
	return fallback
}
