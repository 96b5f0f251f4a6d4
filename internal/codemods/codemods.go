// Package codemods holds the codemods shipped with upshift. Each codemod
// addresses one breaking change; the release that introduced it is recorded
// in the catalog, not here.
package codemods

import (
	"github.com/conn-castle/upshift/internal/transform"
)

// Stable codemod identifiers.
const (
	ScopedPackages       transform.ID = "scoped-packages"
	CreateAppFactory     transform.ID = "create-app-factory"
	LifecycleHooks       transform.ID = "lifecycle-hooks"
	StoreOnce            transform.ID = "store-subscribe-once"
	RouterHistoryFactory transform.ID = "router-history-factory"
	TestingPackage       transform.ID = "testing-package"
)

// All returns every built-in codemod definition.
func All() []transform.Definition {
	return []transform.Definition{
		scopedPackages(),
		createAppFactory(),
		lifecycleHooks(),
		storeSubscribeOnce(),
		routerHistoryFactory(),
		testingPackage(),
	}
}

// Registry returns a registry holding All.
func Registry() (*transform.Registry, error) {
	return transform.NewRegistry(All()...)
}

func scopedPackages() transform.Definition {
	return transform.Definition{
		ID:          ScopedPackages,
		Description: "Import from the scoped @upshift/* packages instead of upshift/*",
		Rules: []transform.Rule{
			{Kind: transform.RuleImportSource, From: "upshift/core", To: "@upshift/core"},
			{Kind: transform.RuleImportSource, From: "upshift/router", To: "@upshift/router"},
			{Kind: transform.RuleImportSource, From: "upshift/store", To: "@upshift/store"},
		},
	}
}

func createAppFactory() transform.Definition {
	return transform.Definition{
		ID:          CreateAppFactory,
		Description: "Replace `new App(...)` with the createApp(...) factory",
		Rules: []transform.Rule{
			{Kind: transform.RuleCall, From: "new App", To: "createApp"},
		},
	}
}

func lifecycleHooks() transform.Definition {
	return transform.Definition{
		ID:          LifecycleHooks,
		Description: "Rename class lifecycle methods to the onX hook names",
		Rules: []transform.Rule{
			{Kind: transform.RuleIdentifier, From: "componentWillMount", To: "onBeforeMount"},
			{Kind: transform.RuleIdentifier, From: "componentDidMount", To: "onMounted"},
			{Kind: transform.RuleIdentifier, From: "componentWillUnmount", To: "onBeforeUnmount"},
		},
	}
}

func storeSubscribeOnce() transform.Definition {
	return transform.Definition{
		ID:          StoreOnce,
		Description: "Rename store.subscribeOnce(...) to store.once(...)",
		Rules: []transform.Rule{
			{Kind: transform.RuleMember, From: "subscribeOnce", To: "once"},
		},
	}
}

func routerHistoryFactory() transform.Definition {
	return transform.Definition{
		ID:          RouterHistoryFactory,
		Description: "Use the createWeb*History router factories",
		Rules: []transform.Rule{
			{Kind: transform.RuleIdentifier, From: "createBrowserHistory", To: "createWebHistory"},
			{Kind: transform.RuleIdentifier, From: "createHashHistory", To: "createWebHashHistory"},
		},
	}
}

func testingPackage() transform.Definition {
	return transform.Definition{
		ID:          TestingPackage,
		Description: "Import test helpers from @upshift/testing",
		Rules: []transform.Rule{
			{Kind: transform.RuleImportSource, From: "upshift/test-utils", To: "@upshift/testing"},
			{Kind: transform.RuleImportSource, From: "@upshift/test-utils", To: "@upshift/testing"},
		},
	}
}
