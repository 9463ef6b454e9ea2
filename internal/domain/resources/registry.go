// Package resources holds the fixed set of readable resources the server
// exposes: the live product catalog plus two static multilingual guides.
package resources

import (
	"context"
	"errors"
	"fmt"

	"github.com/xandys/eccbc-mcp/internal/infra/catalog"
)

var ErrUnknownResource = errors.New("unknown resource")

// MIMEType is the content type of every registered resource.
const MIMEType = "text/plain"

// Resource URIs, fixed and case-sensitive.
const (
	CatalogURI = "eccbc://catalog"
	DarijaURI  = "eccbc://darija"
	ContextURI = "eccbc://context"
)

// Descriptor describes one readable resource.
type Descriptor struct {
	URI         string
	Name        string
	Description string
	MIMEType    string
}

// Producer builds the text content of a resource. Producers degrade
// gracefully: an upstream failure becomes failure text, not an error.
type Producer func(ctx context.Context) string

// Registry maps the fixed resource URIs to their producers. It is read-only
// after construction.
type Registry struct {
	order     []Descriptor
	producers map[string]Producer
}

// NewRegistry registers the three ECCBC resources in their fixed order:
// catalog, darija guide, business context.
func NewRegistry(client *catalog.Client) *Registry {
	r := &Registry{producers: make(map[string]Producer)}
	r.add(Descriptor{
		URI:         CatalogURI,
		Name:        "Catalogue produits ECCBC",
		Description: "Catalogue complet des produits avec stock en temps réel",
		MIMEType:    MIMEType,
	}, func(ctx context.Context) string {
		return renderCatalog(ctx, client)
	})
	r.add(Descriptor{
		URI:         DarijaURI,
		Name:        "Guide expressions Darija",
		Description: "Expressions darija courantes pour commandes boissons",
		MIMEType:    MIMEType,
	}, staticProducer(darijaGuide))
	r.add(Descriptor{
		URI:         ContextURI,
		Name:        "Contexte business ECCBC",
		Description: "Informations contextuelles sur l'entreprise et processus",
		MIMEType:    MIMEType,
	}, staticProducer(businessContext))
	return r
}

func (r *Registry) add(d Descriptor, p Producer) {
	r.order = append(r.order, d)
	r.producers[d.URI] = p
}

// List returns all descriptors in registration order.
func (r *Registry) List() []Descriptor {
	out := make([]Descriptor, len(r.order))
	copy(out, r.order)
	return out
}

// Read produces the text content for uri. Unregistered URIs fail with
// ErrUnknownResource; registered ones always succeed.
func (r *Registry) Read(ctx context.Context, uri string) (string, error) {
	produce, ok := r.producers[uri]
	if !ok {
		return "", fmt.Errorf("%w: %s", ErrUnknownResource, uri)
	}
	return produce(ctx), nil
}

func staticProducer(text string) Producer {
	return func(context.Context) string { return text }
}
