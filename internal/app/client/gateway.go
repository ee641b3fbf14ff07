package client

import (
	"bytes"
	"context"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"sync"
	"time"

	"golang.org/x/exp/slog"

	"github.com/Reinvik/nexus-lean-sub000/internal/app/client/config"
	"github.com/Reinvik/nexus-lean-sub000/internal/domain/audit"
	"github.com/Reinvik/nexus-lean-sub000/internal/domain/card"
	"github.com/Reinvik/nexus-lean-sub000/internal/domain/company"
	"github.com/Reinvik/nexus-lean-sub000/internal/domain/report"
	"github.com/Reinvik/nexus-lean-sub000/internal/domain/user"
)

// Gateway is the remote data gateway contract the capture service, sync
// engine and view depend on. Every call either returns data or an error;
// no retries happen at this boundary.
type Gateway interface {
	Health(ctx context.Context) error
	Login(ctx context.Context, login, password string) (token, companyID string, err error)
	Register(ctx context.Context, login, password, companyID string) error

	ListCards(ctx context.Context, view string) ([]card.Card, error)
	CreateCard(ctx context.Context, req card.CreateRequest) (card.Card, error)
	UpdateCard(ctx context.Context, id int, req card.UpdateRequest) error
	DeleteCard(ctx context.Context, id int) error

	ListAudits(ctx context.Context, view string) ([]audit.Audit, error)
	CreateAudit(ctx context.Context, req audit.CreateRequest) (audit.Audit, error)

	ListCompanies(ctx context.Context) ([]company.Company, error)
	Summary(ctx context.Context) (*report.Summary, error)

	// UploadAttachment stores a binary blob under the given unique object
	// name and returns its publicly addressable URL.
	UploadAttachment(ctx context.Context, objectName string, data []byte, contentType string) (string, error)

	SetToken(token string)
}

type httpGateway struct {
	client    *http.Client
	config    *config.Config
	log       *slog.Logger
	baseURL   string
	userAgent string

	// The token is written on login and read from the sync and watch
	// goroutines.
	tokenMu sync.RWMutex
	token   string
}

func NewHTTPGateway(cfg *config.Config, log *slog.Logger) *httpGateway {
	client := &http.Client{
		// Interactive calls get a short per-request deadline via context;
		// this is the hard ceiling for large list payloads.
		Timeout: time.Duration(cfg.ListTimeout) * time.Second,
		Transport: &http.Transport{
			MaxIdleConns:        100,
			IdleConnTimeout:     90 * time.Second,
			MaxIdleConnsPerHost: 10,
		},
	}

	scheme := "http://"
	if cfg.EnableTLS {
		scheme = "https://"
	}

	return &httpGateway{
		client:    client,
		config:    cfg,
		log:       log.With("component", "gateway"),
		baseURL:   scheme + cfg.ServerAddress,
		userAgent: "NexusLean-Client/1.0",
	}
}

func (g *httpGateway) SetToken(token string) {
	g.tokenMu.Lock()
	g.token = token
	g.tokenMu.Unlock()
}

func (g *httpGateway) bearer() string {
	g.tokenMu.RLock()
	defer g.tokenMu.RUnlock()
	return g.token
}

func (g *httpGateway) Health(ctx context.Context) error {
	ctx, cancel := g.interactive(ctx)
	defer cancel()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, g.baseURL+"/api/health", nil)
	if err != nil {
		return fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("User-Agent", g.userAgent)

	resp, err := g.client.Do(req)
	if err != nil {
		return fmt.Errorf("server unreachable: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("server returned status %d", resp.StatusCode)
	}
	return nil
}

func (g *httpGateway) Login(ctx context.Context, login, password string) (string, string, error) {
	ctx, cancel := g.interactive(ctx)
	defer cancel()

	resp, err := g.doRequest(ctx, http.MethodPost, "/api/auth/login", user.BaseRequest{
		Login:    login,
		Password: password,
	})
	if err != nil {
		return "", "", err
	}

	var loginResp struct {
		Token     string `json:"token"`
		CompanyID string `json:"company_id"`
	}
	if err := g.parseResponse(resp, &loginResp); err != nil {
		return "", "", err
	}

	g.SetToken(loginResp.Token)
	return loginResp.Token, loginResp.CompanyID, nil
}

func (g *httpGateway) Register(ctx context.Context, login, password, companyID string) error {
	ctx, cancel := g.interactive(ctx)
	defer cancel()

	resp, err := g.doRequest(ctx, http.MethodPost, "/api/auth/register", struct {
		Login     string `json:"login"`
		Password  string `json:"password"`
		CompanyID string `json:"company_id,omitempty"`
	}{login, password, companyID})
	if err != nil {
		return err
	}
	return g.parseResponse(resp, nil)
}

func (g *httpGateway) ListCards(ctx context.Context, view string) ([]card.Card, error) {
	path := "/api/cards"
	if view != "" {
		path += "?view=" + url.QueryEscape(view)
	}

	resp, err := g.doRequest(ctx, http.MethodGet, path, nil)
	if err != nil {
		return nil, err
	}

	var listResp card.ListResponse
	if err := g.parseResponse(resp, &listResp); err != nil {
		return nil, err
	}
	return listResp.Cards, nil
}

func (g *httpGateway) CreateCard(ctx context.Context, req card.CreateRequest) (card.Card, error) {
	ctx, cancel := g.interactive(ctx)
	defer cancel()

	resp, err := g.doRequest(ctx, http.MethodPost, "/api/cards", req)
	if err != nil {
		return card.Card{}, err
	}

	var created card.Card
	if err := g.parseResponse(resp, &created); err != nil {
		return card.Card{}, err
	}
	return created, nil
}

func (g *httpGateway) UpdateCard(ctx context.Context, id int, req card.UpdateRequest) error {
	ctx, cancel := g.interactive(ctx)
	defer cancel()

	resp, err := g.doRequest(ctx, http.MethodPut, fmt.Sprintf("/api/cards/%d", id), req)
	if err != nil {
		return err
	}
	return g.parseResponse(resp, nil)
}

func (g *httpGateway) DeleteCard(ctx context.Context, id int) error {
	ctx, cancel := g.interactive(ctx)
	defer cancel()

	resp, err := g.doRequest(ctx, http.MethodDelete, fmt.Sprintf("/api/cards/%d", id), nil)
	if err != nil {
		return err
	}
	return g.parseResponse(resp, nil)
}

func (g *httpGateway) ListAudits(ctx context.Context, view string) ([]audit.Audit, error) {
	path := "/api/audits"
	if view != "" {
		path += "?view=" + url.QueryEscape(view)
	}

	resp, err := g.doRequest(ctx, http.MethodGet, path, nil)
	if err != nil {
		return nil, err
	}

	var listResp audit.ListResponse
	if err := g.parseResponse(resp, &listResp); err != nil {
		return nil, err
	}
	return listResp.Audits, nil
}

func (g *httpGateway) CreateAudit(ctx context.Context, req audit.CreateRequest) (audit.Audit, error) {
	ctx, cancel := g.interactive(ctx)
	defer cancel()

	resp, err := g.doRequest(ctx, http.MethodPost, "/api/audits", req)
	if err != nil {
		return audit.Audit{}, err
	}

	var created audit.Audit
	if err := g.parseResponse(resp, &created); err != nil {
		return audit.Audit{}, err
	}
	return created, nil
}

func (g *httpGateway) ListCompanies(ctx context.Context) ([]company.Company, error) {
	ctx, cancel := g.interactive(ctx)
	defer cancel()

	resp, err := g.doRequest(ctx, http.MethodGet, "/api/companies", nil)
	if err != nil {
		return nil, err
	}

	var listResp company.ListResponse
	if err := g.parseResponse(resp, &listResp); err != nil {
		return nil, err
	}
	return listResp.Companies, nil
}

func (g *httpGateway) Summary(ctx context.Context) (*report.Summary, error) {
	ctx, cancel := g.interactive(ctx)
	defer cancel()

	resp, err := g.doRequest(ctx, http.MethodGet, "/api/summary", nil)
	if err != nil {
		return nil, err
	}

	var summary report.Summary
	if err := g.parseResponse(resp, &summary); err != nil {
		return nil, err
	}
	return &summary, nil
}

func (g *httpGateway) UploadAttachment(ctx context.Context, objectName string, data []byte, contentType string) (string, error) {
	resp, err := g.doRequest(ctx, http.MethodPost, "/api/attachments", struct {
		Name        string `json:"name"`
		ContentType string `json:"content_type,omitempty"`
		Data        string `json:"data"` // base64
	}{objectName, contentType, base64.StdEncoding.EncodeToString(data)})
	if err != nil {
		return "", err
	}

	var uploadResp struct {
		URL string `json:"url"`
	}
	if err := g.parseResponse(resp, &uploadResp); err != nil {
		return "", err
	}
	return uploadResp.URL, nil
}

// interactive bounds a single interactive call; list queries keep the
// client-wide ceiling instead.
func (g *httpGateway) interactive(ctx context.Context) (context.Context, context.CancelFunc) {
	return context.WithTimeout(ctx, time.Duration(g.config.RequestTimeout)*time.Second)
}

func (g *httpGateway) doRequest(ctx context.Context, method, path string, body any) (*http.Response, error) {
	var reqBody io.Reader
	if body != nil {
		jsonData, err := json.Marshal(body)
		if err != nil {
			return nil, fmt.Errorf("marshal request body: %w", err)
		}
		reqBody = bytes.NewBuffer(jsonData)
	}

	req, err := http.NewRequestWithContext(ctx, method, g.baseURL+path, reqBody)
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}

	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("User-Agent", g.userAgent)
	if token := g.bearer(); token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	g.log.Debug("sending request", "method", method, "url", req.URL.String())

	resp, err := g.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("do request: %w", err)
	}

	return resp, nil
}

func (g *httpGateway) parseResponse(resp *http.Response, result any) error {
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("read response: %w", err)
	}

	g.log.Debug("received response", "status", resp.StatusCode)

	if resp.StatusCode >= 400 {
		var errResp struct {
			Error  string `json:"error"`
			Detail string `json:"detail"`
		}
		if err := json.Unmarshal(body, &errResp); err == nil {
			if errResp.Error != "" {
				return fmt.Errorf("server error: %s", errResp.Error)
			}
			if errResp.Detail != "" {
				return fmt.Errorf("server error: %s", errResp.Detail)
			}
		}
		return fmt.Errorf("server error: status %d", resp.StatusCode)
	}

	if result != nil {
		if err := json.Unmarshal(body, result); err != nil {
			return fmt.Errorf("parse response: %w", err)
		}
	}

	return nil
}
