package amocrm

import (
	"slices"
	"strings"

	"github.com/s0up4200/amocrm/request"
)

// Paths shared by most resources of the v2 JSON API
const apiV2 = "/private/api/v2/json"

// resource describes how a model talks to the API
type resource struct {
	name     string
	scheme   request.AuthScheme
	listPath string
	setPath  string
}

// registry maps model names to their definitions. Adding a model means
// adding a line here.
var registry = map[string]resource{
	"account":           {name: "account", listPath: apiV2 + "/accounts/current"},
	"call":              {name: "call", scheme: request.AuthLegacy, setPath: "/api/calls/add/"},
	"catalog":           {name: "catalog", listPath: apiV2 + "/catalogs/list", setPath: apiV2 + "/catalogs/set"},
	"catalog_element":   {name: "catalog_element", listPath: apiV2 + "/catalog_elements/list", setPath: apiV2 + "/catalog_elements/set"},
	"company":           {name: "company", listPath: apiV2 + "/company/list", setPath: apiV2 + "/company/set"},
	"contact":           {name: "contact", listPath: apiV2 + "/contacts/list", setPath: apiV2 + "/contacts/set"},
	"customer":          {name: "customer", listPath: apiV2 + "/customers/list", setPath: apiV2 + "/customers/set"},
	"customers_periods": {name: "customers_periods", listPath: apiV2 + "/customers_periods/list", setPath: apiV2 + "/customers_periods/set"},
	"custom_field":      {name: "custom_field", setPath: apiV2 + "/fields/set"},
	"lead":              {name: "lead", listPath: apiV2 + "/leads/list", setPath: apiV2 + "/leads/set"},
	"links":             {name: "links", listPath: apiV2 + "/links/list", setPath: apiV2 + "/links/set"},
	"note":              {name: "note", listPath: apiV2 + "/notes/list", setPath: apiV2 + "/notes/set"},
	"pipelines":         {name: "pipelines", listPath: apiV2 + "/pipelines/list", setPath: apiV2 + "/pipelines/set"},
	"task":              {name: "task", listPath: apiV2 + "/tasks/list", setPath: apiV2 + "/tasks/set"},
	"transaction":       {name: "transaction", listPath: apiV2 + "/transactions/list", setPath: apiV2 + "/transactions/set"},
	"unsorted":          {name: "unsorted", scheme: request.AuthLegacy, listPath: "/api/unsorted/list/", setPath: "/api/unsorted/add/"},
	"webhooks":          {name: "webhooks", listPath: apiV2 + "/webhooks/list", setPath: apiV2 + "/webhooks/subscribe"},
	"widgets":           {name: "widgets", listPath: apiV2 + "/widgets/list", setPath: apiV2 + "/widgets/set"},
}

// lookup resolves snake_case, CamelCase and mixed case spellings
func lookup(name string) (resource, bool) {
	normalized := normalizeName(name)
	if res, ok := registry[normalized]; ok {
		return res, true
	}

	// "WebHooks" normalizes to web_hooks
	compact := strings.ReplaceAll(normalized, "_", "")
	for key, res := range registry {
		if strings.ReplaceAll(key, "_", "") == compact {
			return res, true
		}
	}
	return resource{}, false
}

// normalizeName turns "CatalogElement" or "catalog-element" into "catalog_element"
func normalizeName(name string) string {
	name = strings.TrimSpace(name)

	var b strings.Builder
	for i, r := range name {
		switch {
		case r == '-' || r == ' ':
			b.WriteByte('_')
		case r >= 'A' && r <= 'Z':
			if i > 0 && name[i-1] != '_' && name[i-1] != '-' && !(name[i-1] >= 'A' && name[i-1] <= 'Z') {
				b.WriteByte('_')
			}
			b.WriteRune(r + ('a' - 'A'))
		default:
			b.WriteRune(r)
		}
	}
	return b.String()
}

// ModelNames returns the registered model names in alphabetical order
func ModelNames() []string {
	names := make([]string, 0, len(registry))
	for name := range registry {
		names = append(names, name)
	}
	slices.Sort(names)
	return names
}

// ModelInfo describes a registered model
type ModelInfo struct {
	Name    string
	Scheme  request.AuthScheme
	CanList bool
	CanSet  bool
}

// Describe returns the registered models in alphabetical order
func Describe() []ModelInfo {
	names := ModelNames()
	infos := make([]ModelInfo, 0, len(names))
	for _, name := range names {
		res := registry[name]
		infos = append(infos, ModelInfo{
			Name:    res.name,
			Scheme:  res.scheme,
			CanList: res.listPath != "",
			CanSet:  res.setPath != "",
		})
	}
	return infos
}
