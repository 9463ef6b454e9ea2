package resources

import (
	"context"
	"fmt"
	"strings"

	"github.com/xandys/eccbc-mcp/internal/infra/catalog"
)

// catalogUnavailable is the full content of the catalog resource when the
// upstream listing fails. The read itself still succeeds.
const catalogUnavailable = "Erreur: Impossible de récupérer le catalogue"

// renderCatalog builds the catalog text from a live listing of active
// products, one block per product in upstream order.
func renderCatalog(ctx context.Context, client *catalog.Client) string {
	res := client.ListProducts(ctx, true)
	if !res.OK() {
		return catalogUnavailable
	}
	products, _ := res.Payload()["products"].([]any)

	var b strings.Builder
	b.WriteString("=== CATALOGUE ECCBC ===\n\n")
	for _, item := range products {
		product, ok := item.(map[string]any)
		if !ok {
			continue
		}
		fmt.Fprintf(&b, "• %s (Code: %s)\n", textField(product, "name", "N/A"), textField(product, "code", "N/A"))
		if nameAr, ok := product["name_ar"].(string); ok && nameAr != "" {
			fmt.Fprintf(&b, "  العربية: %s\n", nameAr)
		}
		fmt.Fprintf(&b, "  Prix: %v MAD\n", numField(product, "price"))
		fmt.Fprintf(&b, "  Stock: %v %s\n", numField(product, "available_quantity"), textField(product, "unit_type", "unités"))
		fmt.Fprintf(&b, "  Format: %s\n\n", textField(product, "unit_size", "Standard"))
	}
	return b.String()
}

func textField(product map[string]any, key, fallback string) string {
	if s, ok := product[key].(string); ok && s != "" {
		return s
	}
	return fallback
}

func numField(product map[string]any, key string) any {
	if v, ok := product[key]; ok && v != nil {
		return v
	}
	return 0
}
