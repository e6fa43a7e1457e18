package scope_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/vendra-hq/vendra-sdk/pkg/scope"
)

var menuChain = scope.Chain{
	Leaf: "menus m",
	Links: []scope.Link{
		{Table: "stores s", On: "s.id = m.store_id", Active: "s.status = 'ACTIVE'"},
	},
	TenantColumn: "s.tenant_id",
}

func TestChainFrom(t *testing.T) {
	require.Equal(t,
		"menus m JOIN stores s ON s.id = m.store_id AND s.status = 'ACTIVE'",
		menuChain.From(),
	)
}

func TestChainQuery(t *testing.T) {
	t.Run("tenant check always first", func(t *testing.T) {
		require.Equal(t,
			"SELECT 1 FROM menus m JOIN stores s ON s.id = m.store_id AND s.status = 'ACTIVE' WHERE s.tenant_id = $1",
			menuChain.Query("1"),
		)
	})

	t.Run("extra conditions appended", func(t *testing.T) {
		require.Equal(t,
			"SELECT m.id, m.name FROM menus m JOIN stores s ON s.id = m.store_id AND s.status = 'ACTIVE' WHERE s.tenant_id = $1 AND m.id = $2",
			menuChain.Query("m.id, m.name", "m.id = $2"),
		)
	})
}

func TestChainMultiHop(t *testing.T) {
	chain := scope.Chain{
		Leaf: "menu_categories mc",
		Links: []scope.Link{
			{Table: "menus m", On: "m.id = mc.menu_id"},
			{Table: "stores s", On: "s.id = m.store_id", Active: "s.status = 'ACTIVE'"},
		},
		TenantColumn: "s.tenant_id",
	}
	require.Equal(t,
		"SELECT 1 FROM menu_categories mc JOIN menus m ON m.id = mc.menu_id"+
			" JOIN stores s ON s.id = m.store_id AND s.status = 'ACTIVE' WHERE s.tenant_id = $1 AND mc.id = $2",
		chain.Query("1", "mc.id = $2"),
	)
}

func TestChainOuterLink(t *testing.T) {
	chain := scope.Chain{
		Leaf: "menu_items mi",
		Links: []scope.Link{
			{Table: "menus m", On: "m.id = mi.menu_id"},
			{Table: "product_variants v", On: "v.id = mi.variant_id", Outer: true},
		},
		TenantColumn: "m.tenant_id",
	}
	require.Equal(t,
		"menu_items mi JOIN menus m ON m.id = mi.menu_id LEFT JOIN product_variants v ON v.id = mi.variant_id",
		chain.From(),
	)
}
