// Package custom holds extensions registered at init: GraphQL
// _extension resolvers and similar hooks.
package custom

import (
	"context"
	"fmt"

	"github.com/mitchellh/mapstructure"

	"shopzone.GO/core/apperr"
	"shopzone.GO/graphql"
	gqlregistry "shopzone.GO/graphql/registry"
	"shopzone.GO/service/cart"
	"shopzone.GO/service/checkout"
)

func init() {
	gqlregistry.Register("quote", Quote)
}

// QuoteArgs is the args shape of _extension(name: "quote").
type QuoteArgs struct {
	Items []struct {
		ProductID uint `mapstructure:"productId"`
		Quantity  int  `mapstructure:"quantity"`
	} `mapstructure:"items"`
}

// Quote prices a list of {productId, quantity} lines with the checkout
// rates, without touching any session.
func Quote(ctx context.Context, args map[string]interface{}) (interface{}, error) {
	const op = "graphql.quote"
	env, ok := graphql.EnvFromContext(ctx)
	if !ok {
		return nil, fmt.Errorf("%s: no catalog in context", op)
	}
	var in QuoteArgs
	if err := mapstructure.WeakDecode(args, &in); err != nil {
		return nil, apperr.Invalid(op, "args", err.Error())
	}

	st := cart.NewStore()
	qty := make(map[uint]int, len(in.Items))
	for _, line := range in.Items {
		if line.Quantity <= 0 {
			continue
		}
		p, found, err := env.Catalog.Product(ctx, line.ProductID)
		if err != nil {
			return nil, err
		}
		if !found {
			return nil, apperr.NotFound(op, fmt.Sprintf("product %d", line.ProductID))
		}
		if qty[p.ID] == 0 {
			st.Add(p)
		}
		qty[p.ID] += line.Quantity
		st.SetQuantity(p.ID, qty[p.ID])
	}
	items := st.Items()
	return struct {
		Items     []cart.LineItem  `json:"items"`
		Breakdown checkout.Display `json:"breakdown"`
	}{items, checkout.Compute(items, env.Rates).Display()}, nil
}
