package matching

import "math"

// solveAssignment solves the minimum-cost perfect-matching problem on a
// square cost matrix with the primal-dual shortest-augmenting-path method
// (O(n³)). It returns, for each row, the column it was assigned to.
//
// Cells may hold +Inf to mark forbidden (padding) slots; they are replaced
// internally by a finite cost larger than any achievable finite total, so
// the dual updates stay well-defined while padded slots still lose to every
// real pairing.
func solveAssignment(cost [][]float64) []int {
	n := len(cost)
	if n == 0 {
		return nil
	}

	finiteSum := 0.0
	for i := 0; i < n; i++ {
		for j := 0; j < n; j++ {
			if !math.IsInf(cost[i][j], 1) {
				finiteSum += math.Abs(cost[i][j])
			}
		}
	}
	forbidden := finiteSum + 1

	a := make([][]float64, n)
	for i := 0; i < n; i++ {
		a[i] = make([]float64, n)
		for j := 0; j < n; j++ {
			if math.IsInf(cost[i][j], 1) {
				a[i][j] = forbidden
			} else {
				a[i][j] = cost[i][j]
			}
		}
	}

	// u, v are row/column potentials; p[j] is the row matched to column j.
	// Index 0 is a sentinel, rows and columns are 1-based here.
	u := make([]float64, n+1)
	v := make([]float64, n+1)
	p := make([]int, n+1)
	way := make([]int, n+1)

	for i := 1; i <= n; i++ {
		p[0] = i
		j0 := 0
		minv := make([]float64, n+1)
		used := make([]bool, n+1)
		for j := range minv {
			minv[j] = math.Inf(1)
		}

		for {
			used[j0] = true
			i0 := p[j0]
			delta := math.Inf(1)
			j1 := 0
			for j := 1; j <= n; j++ {
				if used[j] {
					continue
				}
				cur := a[i0-1][j-1] - u[i0] - v[j]
				if cur < minv[j] {
					minv[j] = cur
					way[j] = j0
				}
				if minv[j] < delta {
					delta = minv[j]
					j1 = j
				}
			}
			for j := 0; j <= n; j++ {
				if used[j] {
					u[p[j]] += delta
					v[j] -= delta
				} else {
					minv[j] -= delta
				}
			}
			j0 = j1
			if p[j0] == 0 {
				break
			}
		}

		// Walk the augmenting path back, flipping assignments.
		for {
			j1 := way[j0]
			p[j0] = p[j1]
			j0 = j1
			if j0 == 0 {
				break
			}
		}
	}

	result := make([]int, n)
	for j := 1; j <= n; j++ {
		if p[j] > 0 {
			result[p[j]-1] = j - 1
		}
	}
	return result
}
