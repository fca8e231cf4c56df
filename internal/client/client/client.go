package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/dmitrijs2005/folio/internal/client/models"
	"github.com/dmitrijs2005/folio/internal/common"
	"github.com/dmitrijs2005/folio/internal/netx"
)

// HTTPClient is a thin JSON client for the folio API. It is safe for
// concurrent use; the token is passed per call and never cached here.
type HTTPClient struct {
	baseURL string
	http    *http.Client
}

func NewHTTPClient(baseURL string, timeout time.Duration) *HTTPClient {
	return &HTTPClient{
		baseURL: strings.TrimRight(baseURL, "/"),
		http:    &http.Client{Timeout: timeout},
	}
}

type credentials struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

func (c *HTTPClient) do(ctx context.Context, method, path, token string, in, out any) error {
	var body io.Reader
	if in != nil {
		b, err := json.Marshal(in)
		if err != nil {
			return fmt.Errorf("encode request: %w", err)
		}
		body = bytes.NewReader(b)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, body)
	if err != nil {
		return err
	}
	if in != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	req.Header.Set("Accept", "application/json")
	if token != "" {
		req.Header.Set(common.AuthorizationHeaderName, common.BearerScheme+token)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("%w: %w", ErrUnavailable, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 300 {
		return decodeAPIError(resp)
	}

	if out == nil {
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("decode %s %s: %w", method, path, err)
	}
	return nil
}

func decodeAPIError(resp *http.Response) error {
	apiErr := &APIError{Status: resp.StatusCode}

	var env struct {
		Code    string `json:"code"`
		Message string `json:"message"`
	}
	if err := json.NewDecoder(io.LimitReader(resp.Body, 64<<10)).Decode(&env); err == nil {
		apiErr.Code, apiErr.Message = env.Code, env.Message
	}

	if apiErr.Code == "" {
		apiErr.Message = resp.Status
		switch resp.StatusCode {
		case http.StatusUnauthorized:
			apiErr.Code = common.CodeInvalidToken
		case http.StatusNotFound:
			apiErr.Code = common.CodeNotFound
		default:
			apiErr.Code = common.CodeInternal
		}
	}
	return apiErr
}

func (c *HTTPClient) Health(ctx context.Context) error {
	return c.do(ctx, http.MethodGet, "/health", "", nil, nil)
}

func (c *HTTPClient) Register(ctx context.Context, email, password string) (*models.AuthResponse, error) {
	var res models.AuthResponse
	if err := c.do(ctx, http.MethodPost, "/auth/register", "", credentials{email, password}, &res); err != nil {
		return nil, err
	}
	return &res, nil
}

func (c *HTTPClient) Login(ctx context.Context, email, password string) (*models.AuthResponse, error) {
	var res models.AuthResponse
	if err := c.do(ctx, http.MethodPost, "/auth/login", "", credentials{email, password}, &res); err != nil {
		return nil, err
	}
	return &res, nil
}

// WhoAmI resolves token to the account it was issued for.
func (c *HTTPClient) WhoAmI(ctx context.Context, token string) (*models.Account, error) {
	var acc models.Account
	if err := c.do(ctx, http.MethodGet, "/auth/user", token, nil, &acc); err != nil {
		return nil, err
	}
	return &acc, nil
}

func (c *HTTPClient) UpdateProfile(ctx context.Context, token string, upd models.ProfileUpdate) (*models.Account, error) {
	var acc models.Account
	if err := c.do(ctx, http.MethodPut, "/auth/user", token, upd, &acc); err != nil {
		return nil, err
	}
	return &acc, nil
}

func (c *HTTPClient) UpdateBio(ctx context.Context, token, bio string) (*models.Account, error) {
	var acc models.Account
	in := map[string]string{"bio": bio}
	if err := c.do(ctx, http.MethodPut, "/portfolio/bio", token, in, &acc); err != nil {
		return nil, err
	}
	return &acc, nil
}

func (c *HTTPClient) PictureUploadURL(ctx context.Context, token string) (*models.PictureUpload, error) {
	var res models.PictureUpload
	if err := c.do(ctx, http.MethodPost, "/auth/user/picture", token, nil, &res); err != nil {
		return nil, err
	}
	return &res, nil
}

func (c *HTTPClient) PictureDownloadURL(ctx context.Context, token string) (string, error) {
	var res struct {
		URL string `json:"url"`
	}
	if err := c.do(ctx, http.MethodGet, "/auth/user/picture", token, nil, &res); err != nil {
		return "", err
	}
	return res.URL, nil
}

// UploadPicture asks for a presigned URL, uploads data there and then
// points the profile at the new object key.
func (c *HTTPClient) UploadPicture(ctx context.Context, token, contentType string, data []byte) (*models.Account, error) {
	up, err := c.PictureUploadURL(ctx, token)
	if err != nil {
		return nil, err
	}
	if err := netx.PutPresigned(ctx, c.http, up.UploadURL, contentType, data); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrUnavailable, err)
	}
	return c.UpdateProfile(ctx, token, models.ProfileUpdate{Picture: &up.Key})
}

func (c *HTTPClient) ListAcademic(ctx context.Context, token string) ([]models.Academic, error) {
	var list []models.Academic
	if err := c.do(ctx, http.MethodGet, "/portfolio/academic", token, nil, &list); err != nil {
		return nil, err
	}
	return list, nil
}

func (c *HTTPClient) CreateAcademic(ctx context.Context, token string, rec models.Academic) (*models.Academic, error) {
	var out models.Academic
	if err := c.do(ctx, http.MethodPost, "/portfolio/academic", token, rec, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *HTTPClient) UpdateAcademic(ctx context.Context, token string, rec models.Academic) (*models.Academic, error) {
	var out models.Academic
	if err := c.do(ctx, http.MethodPut, "/portfolio/academic/"+url.PathEscape(rec.ID), token, rec, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *HTTPClient) DeleteAcademic(ctx context.Context, token, id string) error {
	return c.do(ctx, http.MethodDelete, "/portfolio/academic/"+url.PathEscape(id), token, nil, nil)
}

func (c *HTTPClient) ListProjects(ctx context.Context, token string) ([]models.Project, error) {
	var list []models.Project
	if err := c.do(ctx, http.MethodGet, "/portfolio/project", token, nil, &list); err != nil {
		return nil, err
	}
	return list, nil
}

func (c *HTTPClient) CreateProject(ctx context.Context, token string, rec models.Project) (*models.Project, error) {
	var out models.Project
	if err := c.do(ctx, http.MethodPost, "/portfolio/project", token, rec, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *HTTPClient) UpdateProject(ctx context.Context, token string, rec models.Project) (*models.Project, error) {
	var out models.Project
	if err := c.do(ctx, http.MethodPut, "/portfolio/project/"+url.PathEscape(rec.ID), token, rec, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *HTTPClient) DeleteProject(ctx context.Context, token, id string) error {
	return c.do(ctx, http.MethodDelete, "/portfolio/project/"+url.PathEscape(id), token, nil, nil)
}

// SubmitContact posts the public contact form and returns the message id.
func (c *HTTPClient) SubmitContact(ctx context.Context, msg models.Message) (string, error) {
	var res struct {
		ID string `json:"id"`
	}
	if err := c.do(ctx, http.MethodPost, "/contact", "", msg, &res); err != nil {
		return "", err
	}
	return res.ID, nil
}

func (c *HTTPClient) ListMessages(ctx context.Context, token string) ([]models.Message, error) {
	var list []models.Message
	if err := c.do(ctx, http.MethodGet, "/contact", token, nil, &list); err != nil {
		return nil, err
	}
	return list, nil
}
