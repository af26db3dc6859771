package graphqlserver

import (
	gql "github.com/graph-gophers/graphql-go"
	"github.com/graph-gophers/graphql-go/relay"

	"shopzone.GO/graphql"
	"shopzone.GO/graphql/resolvers"
	"shopzone.GO/service/catalog"
	"shopzone.GO/service/checkout"
)

// NewSchema parses the base schema plus extensions over the catalog.
func NewSchema(svc *catalog.Service, rates checkout.Rates) (*gql.Schema, error) {
	return gql.ParseSchema(graphql.Schema(), resolvers.NewQueryResolver(svc, rates), gql.UseFieldResolvers())
}

// Handler returns an http.Handler for GraphQL (relay format).
func Handler(schema *gql.Schema) *relay.Handler {
	return &relay.Handler{Schema: schema}
}
