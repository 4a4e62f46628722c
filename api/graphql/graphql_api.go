package graphql

import (
	"net/http"

	"github.com/graph-gophers/graphql-go"
	"github.com/labstack/echo/v4"

	"mixtape.GO/api"
	graphqlpkg "mixtape.GO/graphql"
	"mixtape.GO/graphqlserver"
)

func init() {
	api.RegisterRoute(RegisterGraphQLRoutes)
}

// RegisterGraphQLRoutes mounts /graphql and /playground.
func RegisterGraphQLRoutes(e *echo.Echo, deps *api.Deps) {
	schema, err := graphqlserver.NewSchema(deps.Catalog, deps.Carts, deps.Checkout)
	if err != nil {
		panic("graphql schema: " + err.Error())
	}
	registerRoutes(e, deps, schema)
}

func registerRoutes(e *echo.Echo, deps *api.Deps, schema *graphql.Schema) {
	h := sessionContext(graphqlserver.Handler(schema))
	// queries only read the cart, so no session is issued here
	e.POST("/graphql", h, deps.ReadSession())
	e.GET("/graphql", h, deps.ReadSession())
	e.GET("/playground", echo.WrapHandler(playgroundHandler()))
}

// sessionContext hands the cart session from the cookie to the resolvers.
func sessionContext(next http.Handler) echo.HandlerFunc {
	return func(c echo.Context) error {
		r := c.Request()
		ctx := graphqlpkg.WithSessionID(r.Context(), api.SessionID(c))
		next.ServeHTTP(c.Response(), r.WithContext(ctx))
		return nil
	}
}

func playgroundHandler() http.Handler {
	html := `<!DOCTYPE html>
<html>
<head>
	<title>Mixtape GraphQL Playground</title>
	<link rel="stylesheet" href="https://cdn.jsdelivr.net/npm/graphql-playground-react/build/static/css/index.css"/>
</head>
<body>
	<div id="root"/>
	<script src="https://cdn.jsdelivr.net/npm/graphql-playground-react/build/static/js/middleware.js"></script>
	<script>window.addEventListener('load', function() {
		GraphQLPlayground.init({ endpoint: '/graphql' });
	})</script>
</body>
</html>`
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/html")
		w.Write([]byte(html))
	})
}
