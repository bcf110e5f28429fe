package wishlists

import "fmt"

// dedupeName resolves a candidate wishlist name against the user's existing
// names. An unused candidate is accepted unchanged; otherwise suffixes " 1",
// " 2", ... are probed in order and the first free variant wins. Each probed
// suffix is strictly increasing, so the loop always terminates.
func dedupeName(candidate string, existing []string) string {
	taken := make(map[string]struct{}, len(existing))
	for _, name := range existing {
		taken[name] = struct{}{}
	}

	if _, ok := taken[candidate]; !ok {
		return candidate
	}
	for suffix := 1; ; suffix++ {
		probe := fmt.Sprintf("%s %d", candidate, suffix)
		if _, ok := taken[probe]; !ok {
			return probe
		}
	}
}
