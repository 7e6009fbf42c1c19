package runtime

import "strings"

// Qualify joins a namespace prefix and a bare name into a qualified path
// ("a::b::name"); ns == "" returns name unchanged.
func Qualify(ns, name string) string {
	if ns == "" {
		return name
	}
	return ns + "::" + name
}

// SplitQualified splits a possibly-qualified name into its namespace prefix
// (empty if unqualified) and final segment.
func SplitQualified(name string) (ns, local string) {
	i := strings.LastIndex(name, "::")
	if i < 0 {
		return "", name
	}
	return name[:i], name[i+2:]
}

// IsQualified reports whether name already carries a "::" namespace path.
func IsQualified(name string) bool {
	return strings.Contains(name, "::")
}

// AmbiguousNameError reports unqualified lookup matching more than one
// candidate through the using-namespace search list (§4.3 AmbiguousCall).
type AmbiguousNameError struct {
	Name       string
	Candidates []string
}

func (e *AmbiguousNameError) Error() string {
	return "ambiguous reference to " + e.Name + ": " + strings.Join(e.Candidates, ", ")
}

// Resolver implements the §4.3 unqualified-name search: current namespace
// first, then each `using`-ed namespace in declaration order. exists
// reports whether a fully-qualified candidate is actually defined.
type Resolver struct {
	Current string
	Usings  []string
}

// Resolve finds the qualified name `name` refers to. An already-qualified
// name is returned unchanged without consulting exists. Otherwise a match in
// the current namespace wins outright; failing that, the using-namespaces
// are tried (in order) and more than one match among them is
// AmbiguousNameError; failing that, the bare root-namespace name is tried.
// Zero matches is reported by returning found == false.
func (r *Resolver) Resolve(name string, exists func(qualified string) bool) (string, bool, error) {
	if IsQualified(name) {
		return name, exists(name), nil
	}

	if q := Qualify(r.Current, name); exists(q) {
		return q, true, nil
	}

	var candidates []string
	seen := map[string]bool{}
	add := func(q string) {
		if !seen[q] && exists(q) {
			seen[q] = true
			candidates = append(candidates, q)
		}
	}

	for _, ns := range r.Usings {
		add(Qualify(ns, name))
	}

	switch len(candidates) {
	case 0:
		// Bare (root-namespace) declarations are always in the search path.
		return name, exists(name), nil
	case 1:
		return candidates[0], true, nil
	default:
		return "", false, &AmbiguousNameError{Name: name, Candidates: candidates}
	}
}
