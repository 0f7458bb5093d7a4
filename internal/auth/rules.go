package auth

import "regexp"

// Rule pairs a path pattern with the HTTP methods it covers.
type Rule struct {
	Pattern *regexp.Regexp
	Methods []string
}

// Matches reports whether the rule covers the given path and method.
func (r Rule) Matches(path, method string) bool {
	if !r.Pattern.MatchString(path) {
		return false
	}
	for _, m := range r.Methods {
		if m == method {
			return true
		}
	}
	return false
}

// Ruleset is the static route classification consumed by the Authorizer.
// It is configuration, not data: built once at startup and never mutated,
// so tests can substitute minimal rule sets.
type Ruleset struct {
	// PublicPaths are exact paths that never require a token.
	PublicPaths map[string]struct{}

	// PublicRules are pattern+method pairs that never require a token.
	PublicRules []Rule

	// AdminRules are pattern+method pairs requiring the admin claim.
	AdminRules []Rule

	// UserOverrideRules are allowed for any authenticated identity and
	// take precedence over AdminRules where the two overlap (e.g. a user
	// mutating their own cart under the admin-protected users prefix).
	UserOverrideRules []Rule
}

func rule(pattern string, methods ...string) Rule {
	return Rule{Pattern: regexp.MustCompile(pattern), Methods: methods}
}

// DefaultRuleset returns the production route tables.
func DefaultRuleset() Ruleset {
	return Ruleset{
		PublicPaths: map[string]struct{}{
			"/api/v1/users/login":    {},
			"/api/v1/users/register": {},
			"/health":                {},
		},
		PublicRules: []Rule{
			rule(`^/api/v1/products(/|$)`, "GET"),
			rule(`^/api/v1/category(/|$)`, "GET"),
			rule(`^/api/v1/attributes(/|$)`, "GET"),
			rule(`^/api/v1/restaurants(/|$)`, "GET"),
			rule(`^/public/uploads(/|$)`, "GET"),
			rule(`^/api/v1/users/register(/|$)`, "POST"),
			rule(`^/api/v1/users/login(/|$)`, "POST"),
			rule(`^/api/v1/restaurants/nearest(/|$)`, "POST"),
			rule(`^/api/v1/orders(/|$)`, "POST"),
			rule(`^/api/v1/payments/webhook(/|$)`, "POST"),
		},
		AdminRules: []Rule{
			rule(`^/api/v1/products(/|$)`, "POST", "DELETE", "PUT"),
			rule(`^/api/v1/restaurants(/|$)`, "POST", "DELETE", "PUT"),
			rule(`^/api/v1/users(/|$)`, "DELETE", "PUT"),
			rule(`^/api/v1/attributes(/|$)`, "POST", "DELETE", "PUT"),
			rule(`^/api/v1/category(/|$)`, "POST", "DELETE", "PUT"),
			rule(`^/api/v1/orders(/|$)`, "GET", "DELETE", "PUT"),
			rule(`^/api/v1/uploads(/|$)`, "POST"),
		},
		UserOverrideRules: []Rule{
			rule(`^/api/v1/users/[^/]+/cart(/|$)`, "GET", "POST", "PUT", "DELETE"),
			rule(`^/api/v1/orders/user/[^/]+$`, "GET"),
		},
	}
}
