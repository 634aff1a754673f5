package platform

// Platform names form a closed set. leetcode is connectable but has no
// fetch adapter yet, so syncing it reports not-implemented.
const (
	LinkedIn   = "linkedin"
	GitHub     = "github"
	Coursera   = "coursera"
	Udemy      = "udemy"
	HackerRank = "hackerrank"
	LeetCode   = "leetcode"
	Devfolio   = "devfolio"
)

var supported = map[string]bool{
	LinkedIn:   true,
	GitHub:     true,
	Coursera:   true,
	Udemy:      true,
	HackerRank: true,
	LeetCode:   true,
	Devfolio:   true,
}

// Supported reports whether name is a connectable platform.
func Supported(name string) bool {
	return supported[name]
}

// Registry maps platform names to their fetch adapters.
type Registry struct {
	adapters map[string]Adapter
}

func NewRegistry(adapters ...Adapter) *Registry {
	r := &Registry{adapters: make(map[string]Adapter, len(adapters))}
	for _, a := range adapters {
		r.adapters[a.Name()] = a
	}
	return r
}

// Lookup returns the adapter for name, or nil when syncing the platform
// is not implemented.
func (r *Registry) Lookup(name string) Adapter {
	return r.adapters[name]
}
