package graphqlserver

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strconv"

	gql "github.com/graph-gophers/graphql-go"
	"github.com/graph-gophers/graphql-go/relay"

	"mixtape.GO/graphql"
	gqlmodels "mixtape.GO/graphql/models"
	gqlregistry "mixtape.GO/graphql/registry"
	"mixtape.GO/service/cart"
	"mixtape.GO/service/catalog"
	"mixtape.GO/service/checkout"
)

// RootResolver is the root for graphql-go. Query fields resolve on the
// embedded QueryResolver.
type RootResolver struct {
	*QueryResolver
}

// QueryResolver implements Query fields over the catalog and cart services.
type QueryResolver struct {
	catalog  *catalog.Service
	carts    *cart.Sessions
	checkout *checkout.Service
}

// ProductsArgs matches products(query: String).
type ProductsArgs struct {
	Query *string
}

func (r *QueryResolver) Products(ctx context.Context, args ProductsArgs) ([]*gqlmodels.Product, error) {
	q := ""
	if args.Query != nil {
		q = *args.Query
	}
	products, err := r.catalog.Search(ctx, q)
	if err != nil {
		return nil, err
	}
	out := make([]*gqlmodels.Product, 0, len(products))
	for i := range products {
		out = append(out, gqlmodels.NewProduct(&products[i]))
	}
	return out, nil
}

// ProductArgs matches product(id: ID!).
type ProductArgs struct {
	ID gql.ID
}

// Product returns null for unknown ids.
func (r *QueryResolver) Product(ctx context.Context, args ProductArgs) (*gqlmodels.Product, error) {
	id, err := strconv.ParseUint(string(args.ID), 10, 64)
	if err != nil {
		return nil, nil
	}
	p, err := r.catalog.GetProduct(ctx, uint(id))
	if errors.Is(err, catalog.ErrNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return gqlmodels.NewProduct(p), nil
}

// Cart returns the cart of the session in ctx, empty without a session.
func (r *QueryResolver) Cart(ctx context.Context) (*gqlmodels.Cart, error) {
	snap := cart.Snapshot{Entries: []cart.Entry{}}
	if id := graphql.SessionIDFromContext(ctx); id != "" {
		snap = r.carts.View(ctx, id)
	}
	out := gqlmodels.NewCart(snap)
	if r.checkout != nil {
		if res, err := r.checkout.Preview(snap); err == nil {
			out.CheckoutURL = &res.URL
		}
	}
	return out, nil
}

// ExtensionArgs matches extension(name: String!, args: String).
type ExtensionArgs struct {
	Name string
	Args *string
}

// Extension dispatches to a resolver registered in graphql/registry.
func (r *QueryResolver) Extension(ctx context.Context, args ExtensionArgs) (*string, error) {
	in := map[string]interface{}{}
	if args.Args != nil && *args.Args != "" {
		if err := json.Unmarshal([]byte(*args.Args), &in); err != nil {
			return nil, fmt.Errorf("extension %s: args must be a JSON object: %w", args.Name, err)
		}
	}
	res, err := gqlregistry.Resolve(ctx, args.Name, in)
	if err != nil {
		return nil, err
	}
	if res == nil {
		return nil, nil
	}
	b, err := json.Marshal(res)
	if err != nil {
		return nil, err
	}
	out := string(b)
	return &out, nil
}

func (r *QueryResolver) Extensions() []string {
	return gqlregistry.Names()
}

// NewSchema parses the schema and returns a graphql-go Schema.
func NewSchema(catalogSvc *catalog.Service, carts *cart.Sessions, checkoutSvc *checkout.Service) (*gql.Schema, error) {
	root := &RootResolver{QueryResolver: &QueryResolver{catalog: catalogSvc, carts: carts, checkout: checkoutSvc}}
	return gql.ParseSchema(graphql.Schema(), root, gql.UseFieldResolvers())
}

// Handler returns an http.Handler for GraphQL (relay format).
func Handler(schema *gql.Schema) *relay.Handler {
	return &relay.Handler{Schema: schema}
}
