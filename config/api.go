package config

// GetAuthSkipperPaths returns route paths readable without credentials.
// Only GET requests are let through; writes on the same paths stay gated.
func GetAuthSkipperPaths() []string {
	return []string{
		"/api/products",
		"/api/products/:id",
		"/api/products/:id/price",
		"/api/realtime/prices",
	}
}
