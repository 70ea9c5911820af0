package common

// SearchWithError is like [sort.Search] but allows f to return an error, and exits earlier on error.
// The int value returned is the same as what sort.Search returns if no error.
func SearchWithError(n int, f func(int) (bool, error)) (int, error) {
	// f(-1) == false and f(n) == true by definition,
	// loop keeps f(i-1) == false and f(j) == true
	i, j := 0, n
	for i < j {
		h := int(uint(i+j) >> 1)
		ok, err := f(h)
		if err != nil {
			return -1, err
		}
		if !ok {
			i = h + 1
		} else {
			j = h
		}
	}
	return i, nil
}
