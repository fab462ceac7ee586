// Package page holds the decorated front-end pages, keyed by name. Their
// layout lives in an opaque JSON document owned by the web client.
package page

import (
	"encoding/json"
	"errors"
	"fmt"
	"time"
)

// NameWeb is the page that carries the public site's navigation menu.
const NameWeb = "web"

var (
	ErrPageNotFound  = errors.New("page not found")
	ErrDuplicatePage = errors.New("page name already exists")
	ErrInvalidPage   = errors.New("invalid page")
)

type Page struct {
	id        string
	name      string
	data      json.RawMessage
	createdAt time.Time
	updatedAt time.Time
}

func NewPage(name string, data []byte) (*Page, error) {
	if name == "" {
		return nil, fmt.Errorf("%w: name is required", ErrInvalidPage)
	}
	if !json.Valid(data) {
		return nil, fmt.Errorf("%w: data of %s is not valid JSON", ErrInvalidPage, name)
	}
	now := time.Now().UTC()
	return &Page{
		name:      name,
		data:      append(json.RawMessage(nil), data...),
		createdAt: now,
		updatedAt: now,
	}, nil
}

type ReconstructParams struct {
	ID        string
	Name      string
	Data      []byte
	CreatedAt time.Time
	UpdatedAt time.Time
}

func Reconstruct(p ReconstructParams) *Page {
	return &Page{
		id:        p.ID,
		name:      p.Name,
		data:      p.Data,
		createdAt: p.CreatedAt,
		updatedAt: p.UpdatedAt,
	}
}

func (p *Page) ID() string            { return p.id }
func (p *Page) Name() string          { return p.name }
func (p *Page) Data() json.RawMessage { return p.data }
func (p *Page) CreatedAt() time.Time  { return p.createdAt }
func (p *Page) UpdatedAt() time.Time  { return p.updatedAt }
func (p *Page) SetID(id string)       { p.id = id }
