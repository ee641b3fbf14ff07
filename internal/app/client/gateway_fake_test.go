package client

import (
	"context"
	"fmt"
	"io"
	"sync"

	"golang.org/x/exp/slog"

	"github.com/Reinvik/nexus-lean-sub000/internal/domain/audit"
	"github.com/Reinvik/nexus-lean-sub000/internal/domain/card"
	"github.com/Reinvik/nexus-lean-sub000/internal/domain/company"
	"github.com/Reinvik/nexus-lean-sub000/internal/domain/report"
)

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

// fakeGateway is an in-memory Gateway. The on* hooks override individual
// calls; unset hooks fall through to a simple working default.
type fakeGateway struct {
	mu     sync.Mutex
	nextID int
	cards  []card.Card
	audits []audit.Audit

	uploads     []string
	listCalls   int
	createCalls int

	onListCards   func(call int, view string) ([]card.Card, error)
	onCreateCard  func(call int, req card.CreateRequest) (card.Card, error)
	onCreateAudit func(req audit.CreateRequest) (audit.Audit, error)
	onUpload      func(objectName string) (string, error)
}

func (g *fakeGateway) Health(context.Context) error { return nil }

func (g *fakeGateway) Login(context.Context, string, string) (string, string, error) {
	return "token", "acme", nil
}

func (g *fakeGateway) Register(context.Context, string, string, string) error { return nil }

func (g *fakeGateway) ListCards(_ context.Context, view string) ([]card.Card, error) {
	g.mu.Lock()
	g.listCalls++
	call := g.listCalls
	hook := g.onListCards
	cards := append([]card.Card(nil), g.cards...)
	g.mu.Unlock()

	if hook != nil {
		return hook(call, view)
	}
	return cards, nil
}

func (g *fakeGateway) CreateCard(_ context.Context, req card.CreateRequest) (card.Card, error) {
	g.mu.Lock()
	g.createCalls++
	call := g.createCalls
	hook := g.onCreateCard
	g.mu.Unlock()

	if hook != nil {
		return hook(call, req)
	}

	g.mu.Lock()
	defer g.mu.Unlock()
	g.nextID++
	c := card.Card{
		ID:             g.nextID,
		CardNo:         g.nextID,
		CompanyID:      req.CompanyID,
		Area:           req.Area,
		Description:    req.Description,
		Responsible:    req.Responsible,
		Status:         card.Status(req.Status),
		BeforePhotoURL: req.BeforePhotoURL,
		AfterPhotoURL:  req.AfterPhotoURL,
	}
	g.cards = append(g.cards, c)
	return c, nil
}

func (g *fakeGateway) UpdateCard(_ context.Context, id int, req card.UpdateRequest) error {
	g.mu.Lock()
	defer g.mu.Unlock()
	for i := range g.cards {
		if g.cards[i].ID == id {
			applyCardUpdate(&g.cards[i], req)
			return nil
		}
	}
	return fmt.Errorf("card %d not found", id)
}

func (g *fakeGateway) DeleteCard(_ context.Context, id int) error { return nil }

func (g *fakeGateway) ListAudits(context.Context, string) ([]audit.Audit, error) {
	g.mu.Lock()
	defer g.mu.Unlock()
	return append([]audit.Audit(nil), g.audits...), nil
}

func (g *fakeGateway) CreateAudit(_ context.Context, req audit.CreateRequest) (audit.Audit, error) {
	g.mu.Lock()
	hook := g.onCreateAudit
	g.mu.Unlock()
	if hook != nil {
		return hook(req)
	}

	g.mu.Lock()
	defer g.mu.Unlock()
	g.nextID++
	a := audit.Audit{
		ID:        g.nextID,
		CompanyID: req.CompanyID,
		Area:      req.Area,
		Auditor:   req.Auditor,
		Score:     audit.Score(req.Entries),
	}
	g.audits = append(g.audits, a)
	return a, nil
}

func (g *fakeGateway) ListCompanies(context.Context) ([]company.Company, error) {
	return []company.Company{{ID: "acme", Name: "Acme"}}, nil
}

func (g *fakeGateway) Summary(context.Context) (*report.Summary, error) {
	return &report.Summary{}, nil
}

func (g *fakeGateway) UploadAttachment(_ context.Context, objectName string, _ []byte, _ string) (string, error) {
	g.mu.Lock()
	hook := g.onUpload
	g.mu.Unlock()
	if hook != nil {
		return hook(objectName)
	}

	g.mu.Lock()
	defer g.mu.Unlock()
	g.uploads = append(g.uploads, objectName)
	return "https://objects.test/" + objectName, nil
}

func (g *fakeGateway) SetToken(string) {}

func (g *fakeGateway) uploadCount() int {
	g.mu.Lock()
	defer g.mu.Unlock()
	return len(g.uploads)
}

func (g *fakeGateway) cardCount() int {
	g.mu.Lock()
	defer g.mu.Unlock()
	return len(g.cards)
}
