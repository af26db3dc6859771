package resolvers

import (
	"context"
	"encoding/json"
	"strconv"

	gql "github.com/graph-gophers/graphql-go"

	"shopzone.GO/core/i18n"
	"shopzone.GO/graphql"
	gqlmodels "shopzone.GO/graphql/models"
	gqlregistry "shopzone.GO/graphql/registry"
	"shopzone.GO/service/catalog"
	"shopzone.GO/service/checkout"
)

// QueryResolver is the single resolver for all Query fields.
// New Query fields: use RegisterSchemaExtension + add method on QueryResolver,
// or use _extension for fully dynamic resolvers.
type QueryResolver struct {
	catalog *catalog.Service
	rates   checkout.Rates
}

func NewQueryResolver(svc *catalog.Service, rates checkout.Rates) *QueryResolver {
	return &QueryResolver{catalog: svc, rates: rates}
}

type ProductsArgs struct {
	Search      *string
	Category    *string
	PageSize    *int32
	CurrentPage *int32
}

// Products filters like the storefront: substring on name, exact category.
func (r *QueryResolver) Products(ctx context.Context, args ProductsArgs) (*gqlmodels.ProductSearchResult, error) {
	f := catalog.DefaultFilter()
	if args.Search != nil {
		f.Search = *args.Search
	}
	if args.Category != nil && *args.Category != "" {
		f.Category = *args.Category
	}
	res, err := r.catalog.Browse(ctx, f)
	if err != nil {
		return nil, err
	}

	ps, cp := defaultPageSize(args.PageSize), defaultCurrentPage(args.CurrentPage)
	lang := graphql.LanguageFromContext(ctx)
	page := paginate(res.Products, cp, ps)
	items := make([]*gqlmodels.Product, len(page))
	for i, p := range page {
		items[i] = productToModel(p, lang)
	}
	return &gqlmodels.ProductSearchResult{
		Items:      items,
		TotalCount: int32(len(res.Products)),
		Empty:      res.Empty,
		PageInfo: &gqlmodels.PageInfo{
			PageSize:    int32(ps),
			CurrentPage: int32(cp),
			TotalPages:  int32(totalPages(len(res.Products), ps)),
		},
	}, nil
}

func (r *QueryResolver) Product(ctx context.Context, args struct{ ID gql.ID }) (*gqlmodels.Product, error) {
	id, err := strconv.ParseUint(string(args.ID), 10, 64)
	if err != nil {
		return nil, nil
	}
	p, ok, err := r.catalog.Product(ctx, uint(id))
	if err != nil || !ok {
		return nil, err
	}
	return productToModel(p, graphql.LanguageFromContext(ctx)), nil
}

func (r *QueryResolver) Featured(ctx context.Context) ([]*gqlmodels.Product, error) {
	products, err := r.catalog.Products(ctx)
	if err != nil {
		return nil, err
	}
	lang := graphql.LanguageFromContext(ctx)
	out := []*gqlmodels.Product{}
	for _, p := range products {
		if p.Featured {
			out = append(out, productToModel(p, lang))
		}
	}
	return out, nil
}

// Categories lists "All" and the product categories. lang overrides the
// request language.
func (r *QueryResolver) Categories(ctx context.Context, args struct{ Lang *string }) ([]*gqlmodels.Category, error) {
	lang := graphql.LanguageFromContext(ctx)
	if args.Lang != nil {
		lang, _ = i18n.Parse(*args.Lang)
	}
	names := append([]string{catalog.CategoryAll}, catalog.Categories()...)
	out := make([]*gqlmodels.Category, len(names))
	for i, n := range names {
		out[i] = &gqlmodels.Category{Name: n, Label: i18n.Category(lang, n)}
	}
	return out, nil
}

func (r *QueryResolver) Components(ctx context.Context) ([]*gqlmodels.CustomComponent, error) {
	list, err := r.catalog.Components(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]*gqlmodels.CustomComponent, len(list))
	for i, c := range list {
		out[i] = componentToModel(c)
	}
	return out, nil
}

// Extension dispatches to registered custom resolvers.
func (r *QueryResolver) Extension(ctx context.Context, args struct {
	Name string
	Args *string
}) (*string, error) {
	m := make(map[string]interface{})
	if args.Args != nil && *args.Args != "" {
		if err := json.Unmarshal([]byte(*args.Args), &m); err != nil {
			return nil, err
		}
	}
	ctx = graphql.WithEnv(ctx, &graphql.Env{Catalog: r.catalog, Rates: r.rates})
	out, err := gqlregistry.Resolve(ctx, args.Name, m)
	if err != nil {
		return nil, err
	}
	b, err := json.Marshal(out)
	if err != nil {
		return nil, err
	}
	s := string(b)
	return &s, nil
}
