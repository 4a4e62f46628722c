package cmd

import (
	"testing"

	"github.com/spf13/cobra"

	"mixtape.GO/core/registry"
)

func TestRegistry_Register_Apply(t *testing.T) {
	registry.GlobalRegistry.UnlockForTesting(registry.KeyRegistryCmd)
	Register(&cobra.Command{
		Use: "test:registry",
		RunE: func(c *cobra.Command, args []string) error {
			c.Print("ok")
			return nil
		},
	})
	Apply()

	out, err := run(t, "test:registry")
	if err != nil {
		t.Fatalf("Execute: %v", err)
	}
	if out != "ok" {
		t.Errorf("output = %q, want ok", out)
	}

	defer func() {
		if r := recover(); r == nil {
			t.Error("expected panic when registering after Apply")
		}
		registry.GlobalRegistry.UnlockForTesting(registry.KeyRegistryCmd)
	}()
	Register(&cobra.Command{Use: "test:late"})
}
