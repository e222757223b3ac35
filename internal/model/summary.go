package model

// Summary holds the server-computed application counts.
type Summary struct {
	Total    int            `json:"total"`
	ByStatus map[Status]int `json:"by_status"`
}

// Count returns the number of applications with the given status.
func (s Summary) Count(status Status) int {
	return s.ByStatus[status]
}
