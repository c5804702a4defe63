package mediastore

import (
	"bytes"
	"context"
	"crypto/sha1"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"mime/multipart"
	"net/http"
	"net/url"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/sirupsen/logrus"
)

// Client implements Store against a Cloudinary-style API. Mutating requests
// are signed: sha1 over the sorted parameter string plus the API secret.
type Client struct {
	base   string // e.g. https://api.cloudinary.com
	cloud  string
	key    string
	secret string
	folder string
	http   *http.Client
	log    *logrus.Logger
}

func NewClient(baseURL, cloud, key, secret, folder string, logger *logrus.Logger) *Client {
	return &Client{
		base:   strings.TrimRight(baseURL, "/"),
		cloud:  cloud,
		key:    key,
		secret: secret,
		folder: folder,
		http:   &http.Client{Timeout: 30 * time.Second},
		log:    logger,
	}
}

func (c *Client) sign(params map[string]string) string {
	keys := make([]string, 0, len(params))
	for k := range params {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	pairs := make([]string, 0, len(keys))
	for _, k := range keys {
		pairs = append(pairs, k+"="+params[k])
	}
	sum := sha1.Sum([]byte(strings.Join(pairs, "&") + c.secret))
	return hex.EncodeToString(sum[:])
}

func (c *Client) endpoint(action string) string {
	return c.base + "/v1_1/" + c.cloud + "/image/" + action
}

// Upload sends the image bytes under folder/publicID and returns the hosted
// secure URL plus the full public id needed for later deletion.
func (c *Client) Upload(ctx context.Context, data []byte, publicID string) (Upload, error) {
	ts := strconv.FormatInt(time.Now().Unix(), 10)
	params := map[string]string{
		"folder":    c.folder,
		"public_id": publicID,
		"timestamp": ts,
	}

	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	for k, v := range params {
		if err := mw.WriteField(k, v); err != nil {
			return Upload{}, fmt.Errorf("%w: %v", ErrUploadFailed, err)
		}
	}
	if err := mw.WriteField("api_key", c.key); err != nil {
		return Upload{}, fmt.Errorf("%w: %v", ErrUploadFailed, err)
	}
	if err := mw.WriteField("signature", c.sign(params)); err != nil {
		return Upload{}, fmt.Errorf("%w: %v", ErrUploadFailed, err)
	}
	fw, err := mw.CreateFormFile("file", publicID)
	if err != nil {
		return Upload{}, fmt.Errorf("%w: %v", ErrUploadFailed, err)
	}
	if _, err := fw.Write(data); err != nil {
		return Upload{}, fmt.Errorf("%w: %v", ErrUploadFailed, err)
	}
	if err := mw.Close(); err != nil {
		return Upload{}, fmt.Errorf("%w: %v", ErrUploadFailed, err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.endpoint("upload"), &buf)
	if err != nil {
		return Upload{}, fmt.Errorf("%w: %v", ErrUploadFailed, err)
	}
	req.Header.Set("Content-Type", mw.FormDataContentType())

	resp, err := c.http.Do(req)
	if err != nil {
		return Upload{}, fmt.Errorf("%w: %v", ErrUploadFailed, err)
	}
	defer resp.Body.Close()
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		c.log.Warnf("mediastore: upload of %s returned %d", publicID, resp.StatusCode)
		return Upload{}, fmt.Errorf("%w: status %d", ErrUploadFailed, resp.StatusCode)
	}

	var body struct {
		SecureURL string `json:"secure_url"`
		PublicID  string `json:"public_id"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		return Upload{}, fmt.Errorf("%w: decode response: %v", ErrUploadFailed, err)
	}
	return Upload{URL: body.SecureURL, PublicID: body.PublicID}, nil
}

// Remove deletes an asset by public id. Ids without a folder prefix are
// assumed to live under the client's configured folder.
func (c *Client) Remove(ctx context.Context, publicID string) error {
	if !strings.Contains(publicID, "/") && c.folder != "" {
		publicID = c.folder + "/" + publicID
	}
	ts := strconv.FormatInt(time.Now().Unix(), 10)
	params := map[string]string{
		"public_id": publicID,
		"timestamp": ts,
	}

	form := url.Values{}
	for k, v := range params {
		form.Set(k, v)
	}
	form.Set("api_key", c.key)
	form.Set("signature", c.sign(params))

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.endpoint("destroy"),
		strings.NewReader(form.Encode()))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	resp, err := c.http.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return fmt.Errorf("media destroy: status %d", resp.StatusCode)
	}

	var body struct {
		Result string `json:"result"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		return fmt.Errorf("media destroy: decode response: %v", err)
	}
	if body.Result == "not found" {
		return ErrAssetNotFound
	}
	if body.Result != "ok" {
		return fmt.Errorf("media destroy: result %q", body.Result)
	}
	return nil
}
