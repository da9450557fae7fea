package utils

// CartesianProduct returns every combination taking one element from each set,
// in lexicographic order of set positions. No sets yields no combinations.
func CartesianProduct[T any](sets [][]T) [][]T {
	if len(sets) == 0 {
		return nil
	}

	result := [][]T{{}}
	for _, set := range sets {
		next := make([][]T, 0, len(result)*len(set))
		for _, prefix := range result {
			for _, item := range set {
				combination := make([]T, len(prefix), len(prefix)+1)
				copy(combination, prefix)
				next = append(next, append(combination, item))
			}
		}
		result = next
	}
	return result
}
