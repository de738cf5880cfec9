package algos

// FindCycle walks the graph depth-first starting from each key in order and
// returns the first cycle found, as the path of nodes that forms it. It
// returns nil when the graph is acyclic.
func FindCycle[K comparable](keys []K, edges func(K) []K) (cycle []K) {
	visited := map[K]bool{}
	onStack := map[K]int{}
	var path []K

	var dfs func(K) bool
	dfs = func(k K) bool {
		if i, ok := onStack[k]; ok {
			cycle = append([]K(nil), path[i:]...)
			return true
		}
		if visited[k] {
			return false
		}

		visited[k] = true
		onStack[k] = len(path)
		path = append(path, k)

		for _, dep := range edges(k) {
			if dfs(dep) {
				return true
			}
		}

		path = path[:len(path)-1]
		delete(onStack, k)
		return false
	}

	for _, k := range keys {
		if dfs(k) {
			return cycle
		}
	}

	return nil
}
