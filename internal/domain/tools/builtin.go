package tools

import (
	"context"
	"fmt"

	"github.com/xandys/eccbc-mcp/internal/infra/catalog"
)

// Tool names exposed by the server.
const (
	SearchProducts     = "search_products"
	CheckStock         = "check_stock"
	GetAllProducts     = "get_all_products"
	CreateOrder        = "create_order"
	GetCustomerHistory = "get_customer_history"
)

// FullProfile is the complete tool set, served over stdio.
var FullProfile = []string{SearchProducts, CheckStock, GetAllProducts, CreateOrder, GetCustomerHistory}

// HTTPProfile is the reduced set the HTTP front-end exposes. The two
// front-ends deliberately diverge; both sets stay explicit.
var HTTPProfile = []string{SearchProducts, CheckStock, CreateOrder}

type builtin struct {
	descriptor Descriptor
	handler    Handler
}

// NewBuiltinRegistry builds a registry with the named built-in tools bound
// to client, registered in the order given.
func NewBuiltinRegistry(client *catalog.Client, profile []string) (*Registry, error) {
	all := builtins(client)
	r := NewRegistry()
	for _, name := range profile {
		b, ok := all[name]
		if !ok {
			return nil, fmt.Errorf("%w: %s", ErrUnknownTool, name)
		}
		if err := r.Register(b.descriptor, b.handler); err != nil {
			return nil, err
		}
	}
	return r, nil
}

// MustBuiltinRegistry is NewBuiltinRegistry for start-up wiring, where a bad
// profile is a programming error.
func MustBuiltinRegistry(client *catalog.Client, profile []string) *Registry {
	r, err := NewBuiltinRegistry(client, profile)
	if err != nil {
		panic(err)
	}
	return r
}

func builtins(client *catalog.Client) map[string]builtin {
	return map[string]builtin{
		SearchProducts: {
			descriptor: Descriptor{
				Name:        SearchProducts,
				Description: "Rechercher des produits par nom en français, arabe ou anglais",
				Params: []Param{
					{Name: "search_term", Type: TypeString, Description: "Terme de recherche (coca, فانتا, sprite, etc.)", Required: true},
					{Name: "language", Type: TypeString, Description: "Langue de recherche (fr, ar, en)", Default: "fr"},
				},
			},
			handler: func(ctx context.Context, args Args) map[string]any {
				res := client.SearchProducts(ctx, args.String("search_term"), args.String("language"))
				return withCount(res.Fold(), "products")
			},
		},
		CheckStock: {
			descriptor: Descriptor{
				Name:        CheckStock,
				Description: "Vérifier la disponibilité d'un produit spécifique",
				Params: []Param{
					{Name: "product_id", Type: TypeInteger, Description: "ID du produit à vérifier", Required: true},
					{Name: "language", Type: TypeString, Description: "Langue pour la réponse (fr, ar, en)", Default: "fr"},
				},
			},
			handler: func(ctx context.Context, args Args) map[string]any {
				return client.CheckStock(ctx, args.Int("product_id"), args.String("language")).Fold()
			},
		},
		GetAllProducts: {
			descriptor: Descriptor{
				Name:        GetAllProducts,
				Description: "Récupérer tous les produits disponibles avec stock",
				Params: []Param{
					{Name: "active_only", Type: TypeBoolean, Description: "Récupérer seulement les produits actifs", Default: true},
				},
			},
			handler: func(ctx context.Context, args Args) map[string]any {
				return withCount(client.ListProducts(ctx, args.Bool("active_only")).Fold(), "products")
			},
		},
		CreateOrder: {
			descriptor: Descriptor{
				Name:        CreateOrder,
				Description: "Créer une nouvelle commande pour un client",
				Params: []Param{
					{Name: "customer_phone", Type: TypeString, Description: "Numéro WhatsApp du client", Required: true},
					{Name: "items", Type: TypeArray, Description: "Liste des produits commandés", Required: true, Items: []Param{
						{Name: "product_id", Type: TypeInteger, Required: true},
						{Name: "quantity", Type: TypeInteger, Required: true},
					}},
					{Name: "customer_name", Type: TypeString, Description: "Nom optionnel du client"},
					{Name: "language", Type: TypeString, Description: "Langue de communication", Default: "fr"},
					{Name: "notes", Type: TypeString, Description: "Notes supplémentaires"},
				},
			},
			handler: func(ctx context.Context, args Args) map[string]any {
				return client.CreateOrder(ctx, catalog.OrderRequest{
					CustomerPhone: args.String("customer_phone"),
					Items:         orderItems(args["items"]),
					CustomerName:  args.String("customer_name"),
					Language:      args.String("language"),
					Notes:         args.String("notes"),
				}).Fold()
			},
		},
		GetCustomerHistory: {
			descriptor: Descriptor{
				Name:        GetCustomerHistory,
				Description: "Récupérer l'historique des commandes d'un client",
				Params: []Param{
					{Name: "customer_phone", Type: TypeString, Description: "Numéro du client", Required: true},
					{Name: "limit", Type: TypeInteger, Description: "Nombre max de commandes", Default: 10},
				},
			},
			handler: func(ctx context.Context, args Args) map[string]any {
				return withCount(client.OrderHistory(ctx, args.String("customer_phone"), args.Int("limit")).Fold(), "orders")
			},
		},
	}
}

// withCount annotates a successful result with the length of the named
// sequence, zero when the value is not a sequence.
func withCount(out map[string]any, key string) map[string]any {
	if success, _ := out["success"].(bool); !success {
		return out
	}
	n := 0
	if seq, ok := out[key].([]any); ok {
		n = len(seq)
	}
	out["count"] = n
	return out
}

// orderItems converts the validated items argument into typed order lines.
func orderItems(v any) []catalog.OrderItem {
	arr, _ := v.([]any)
	items := make([]catalog.OrderItem, 0, len(arr))
	for _, el := range arr {
		obj, ok := el.(map[string]any)
		if !ok {
			continue
		}
		productID, _ := obj["product_id"].(int)
		quantity, _ := obj["quantity"].(int)
		items = append(items, catalog.OrderItem{ProductID: productID, Quantity: quantity})
	}
	return items
}
