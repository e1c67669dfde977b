package authz

import "strings"

// Rule binds one route pattern and method to a requirement.
type Rule struct {
	Method      string
	Path        string
	Requirement Requirement
}

// Policy is an immutable route table. Routes without a rule fall back to the
// default requirement.
type Policy struct {
	rules    map[string]Requirement
	fallback Requirement
}

// NewPolicy builds a policy. Later rules override earlier ones for the same
// method and path.
func NewPolicy(fallback Requirement, rules ...Rule) *Policy {
	p := &Policy{rules: make(map[string]Requirement, len(rules)), fallback: fallback}
	for _, r := range rules {
		p.rules[key(r.Method, r.Path)] = r.Requirement
	}
	return p
}

// Lookup returns the requirement for a method and a registered route pattern.
func (p *Policy) Lookup(method, path string) Requirement {
	if req, ok := p.rules[key(method, path)]; ok {
		return req
	}
	return p.fallback
}

func key(method, path string) string {
	return strings.ToUpper(method) + " " + path
}
